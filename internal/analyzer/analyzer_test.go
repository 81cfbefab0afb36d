package analyzer

import (
	"image"
	"image/color"
	"testing"
)

// page returns a black image with white rectangles.
func page(bounds image.Rectangle, rects ...image.Rectangle) *image.Gray {
	img := image.NewGray(bounds)
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func TestContrastDetector(t *testing.T) {
	img := page(image.Rect(0, 0, 200, 200), image.Rect(50, 50, 150, 150))

	blocks, err := NewContrastDetector().Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d: %v", len(blocks), blocks)
	}

	r := blocks[0].Rect
	if !image.Rect(50, 50, 150, 150).In(r) || !r.In(image.Rect(40, 40, 160, 160)) {
		t.Errorf("Block does not match the rectangle: %v", r)
	}
	if c := blocks[0].Confidence; c <= 0 || c > 1 {
		t.Errorf("Confidence out of range: %v", c)
	}
}

func TestContrastDetectorSeparateBlocks(t *testing.T) {
	img := page(image.Rect(0, 0, 300, 200),
		image.Rect(20, 20, 80, 60),
		image.Rect(200, 120, 280, 180),
	)
	blocks, err := NewContrastDetector().Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d: %v", len(blocks), blocks)
	}
}

func TestContrastDetectorOffsetBounds(t *testing.T) {
	img := page(image.Rect(100, 100, 300, 300), image.Rect(150, 150, 250, 250))
	blocks, err := NewContrastDetector().Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(blocks) != 1 || !image.Rect(150, 150, 250, 250).In(blocks[0].Rect) {
		t.Errorf("Expected one block around the rectangle, got %v", blocks)
	}
}

func TestContrastDetectorIgnoresFramesAndNoise(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"uniform", page(image.Rect(0, 0, 100, 100))},
		{"page frame", page(image.Rect(0, 0, 200, 200), image.Rect(2, 2, 198, 198))},
		{"speck", page(image.Rect(0, 0, 200, 200), image.Rect(100, 100, 102, 102))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := NewContrastDetector().Detect(tt.img)
			if err != nil {
				t.Fatalf("Detect failed: %v", err)
			}
			if len(blocks) != 0 {
				t.Errorf("Expected no blocks, got %v", blocks)
			}
		})
	}
}

func TestContrastDetectorEmptyImage(t *testing.T) {
	if _, err := NewContrastDetector().Detect(image.NewGray(image.Rectangle{})); err == nil {
		t.Error("Expected error, got nil")
	}
}

func TestMergeOverlapping(t *testing.T) {
	got := mergeOverlapping([]image.Rectangle{
		image.Rect(0, 0, 10, 10),
		image.Rect(50, 50, 60, 60),
		image.Rect(5, 5, 20, 20),
	})
	if len(got) != 2 || got[0] != image.Rect(0, 0, 20, 20) {
		t.Errorf("Unexpected merge result: %v", got)
	}
}

func TestDetectorRegistry(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{"contrast", false},
		{"", false},
		{"ocr", true},
		{"invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			detector, err := NewDetector(tt.variant)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if detector == nil {
				t.Error("Expected detector, got nil")
			}
		})
	}
}
