package director

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/ivlev/slideanim/internal/analyzer"
	"github.com/ivlev/slideanim/internal/anim"
	"github.com/ivlev/slideanim/internal/schema"
)

type fakeLoader map[string]image.Image

func (l fakeLoader) Load(src string) (image.Image, error) {
	img, ok := l[src]
	if !ok {
		return nil, errors.New("missing " + src)
	}
	return img, nil
}

type fakeDetector []analyzer.Block

func (d fakeDetector) Detect(image.Image) ([]analyzer.Block, error) {
	return d, nil
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPresentation(t *testing.T) {
	loader := fakeLoader{
		"deck.pdf#1": image.NewGray(image.Rect(0, 0, 200, 100)),
		"deck.pdf#2": image.NewGray(image.Rect(0, 0, 200, 100)),
	}
	det := fakeDetector{
		{Rect: image.Rect(100, 60, 180, 90)},
		{Rect: image.Rect(10, 10, 190, 40)},
	}

	pages, err := Analyze([]string{"deck.pdf#1", "deck.pdf#2"}, loader, det)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	p, err := NewDirector().Presentation("deck", pages)
	if err != nil {
		t.Fatalf("Presentation failed: %v", err)
	}
	if err := schema.Validate(p); err != nil {
		t.Fatalf("generated presentation is invalid: %v", err)
	}
	if len(p.Steps) != 2 {
		t.Fatalf("Expected 2 steps, got %d", len(p.Steps))
	}

	step := p.Steps[0]
	if len(step.Elements) != 5 {
		t.Fatalf("Expected image + 2 callouts, got %d elements", len(step.Elements))
	}
	img, ok := step.Elements[0].(*schema.Image)
	if !ok || img.Src != "deck.pdf#1" {
		t.Fatalf("First element should be the page image, got %#v", step.Elements[0])
	}
	if !near(img.Width, 92) || !near(img.Height, 46) {
		t.Errorf("Page frame: got %vx%v, want 92x46", img.Width, img.Height)
	}

	// The upper block is read first.
	first := step.Elements[2].(*schema.Text)
	second := step.Elements[4].(*schema.Text)
	if first.Content != "1" || first.Phase != anim.Early {
		t.Errorf("First callout: %q in %s", first.Content, first.Phase)
	}
	if second.Phase != anim.Late {
		t.Errorf("Second callout phase: %s", second.Phase)
	}
	if first.Position.Y <= second.Position.Y {
		t.Errorf("First callout should be above the second: %v vs %v", first.Position.Y, second.Position.Y)
	}
}

func TestPresentationWithoutPages(t *testing.T) {
	if _, err := NewDirector().Presentation("empty", nil); err == nil {
		t.Error("Expected error, got nil")
	}
}

func TestAnalyzeLoadError(t *testing.T) {
	_, err := Analyze([]string{"missing.png"}, fakeLoader{}, fakeDetector{})
	if err == nil {
		t.Error("Expected error, got nil")
	}
}

func TestSelectBlocks(t *testing.T) {
	d := NewDirector()
	d.MaxCallouts = 3
	bounds := image.Rect(0, 0, 1000, 1000)
	blocks := []analyzer.Block{
		{Rect: image.Rect(500, 105, 600, 200)}, // same row as the next one
		{Rect: image.Rect(100, 100, 200, 200)},
		{Rect: image.Rect(100, 500, 900, 900)},
		{Rect: image.Rect(0, 0, 5, 5)}, // dropped, smallest
	}

	got := d.selectBlocks(blocks, bounds)
	want := []image.Rectangle{
		image.Rect(100, 100, 200, 200),
		image.Rect(500, 105, 600, 200),
		image.Rect(100, 500, 900, 900),
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d blocks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Rect != want[i] {
			t.Errorf("Block %d: got %v, want %v", i, got[i].Rect, want[i])
		}
	}
}

func TestProject(t *testing.T) {
	d := NewDirector()
	bounds := image.Rect(0, 0, 200, 100)
	frame := d.pageFrame(bounds)
	if !near(frame.x0, 4) || !near(frame.y0, 73) || !near(frame.x1, 96) || !near(frame.y1, 27) {
		t.Fatalf("Unexpected frame: %+v", frame)
	}

	r := frame.project(image.Rect(0, 0, 100, 50), bounds)
	if !near(r.x0, 4) || !near(r.y0, 73) || !near(r.x1, 50) || !near(r.y1, 50) {
		t.Errorf("Unexpected projection: %+v", r)
	}

	tall := d.pageFrame(image.Rect(0, 0, 50, 100))
	if !near(tall.Dx(), 46) || !near(tall.Dy(), 92) {
		t.Errorf("Portrait frame: %+v", tall)
	}
}

func TestFrames(t *testing.T) {
	d := NewDirector()
	tests := []struct {
		blocks int
		want   int
	}{
		{0, 60},
		{3, 90},
		{20, 240},
	}
	for _, tt := range tests {
		if got := d.frames(tt.blocks); got != tt.want {
			t.Errorf("frames(%d) = %d, want %d", tt.blocks, got, tt.want)
		}
	}
}
