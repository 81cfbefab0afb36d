// Package director turns analyzed pages into a presentation: one step per
// page with numbered callouts that appear in reading order.
package director

import (
	"fmt"
	"image"
	"sort"

	"github.com/ivlev/slideanim/internal/analyzer"
	"github.com/ivlev/slideanim/internal/anim"
	"github.com/ivlev/slideanim/internal/schema"
)

// Page is one analyzed page image.
type Page struct {
	Src    string          // image element src, e.g. "deck.pdf#3"
	Bounds image.Rectangle // bounds of the analyzed render
	Blocks []analyzer.Block
}

// Loader resolves image element sources. *source.Store implements it.
type Loader interface {
	Load(src string) (image.Image, error)
}

// Director lays out callouts over page images.
type Director struct {
	MaxCallouts    int     // largest blocks kept per page
	RowThreshold   float64 // share of page height treated as one text row
	FramesPerBlock int
	MinFrames      int
	MaxFrames      int
	Margin         float64 // plane units around the page
}

func NewDirector() *Director {
	return &Director{
		MaxCallouts:    6,
		RowThreshold:   0.03,
		FramesPerBlock: 30,
		MinFrames:      60,
		MaxFrames:      240,
		Margin:         4,
	}
}

// Analyze loads every src and detects its blocks.
func Analyze(srcs []string, loader Loader, det analyzer.Detector) ([]Page, error) {
	pages := make([]Page, 0, len(srcs))
	for _, src := range srcs {
		img, err := loader.Load(src)
		if err != nil {
			return nil, err
		}
		blocks, err := det.Detect(img)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src, err)
		}
		pages = append(pages, Page{Src: src, Bounds: img.Bounds(), Blocks: blocks})
	}
	return pages, nil
}

// Presentation builds a presentation with one step per page.
func (d *Director) Presentation(name string, pages []Page) (*schema.Presentation, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to direct")
	}
	p := &schema.Presentation{
		Name:  name,
		Title: name,
		Landing: schema.Landing{
			Title:    name,
			Subtitle: fmt.Sprintf("%d pages", len(pages)),
		},
	}
	for i, pg := range pages {
		p.Steps = append(p.Steps, d.Step(i, pg))
	}
	return p, nil
}

var calloutPhases = []anim.Phase{anim.Early, anim.Middle, anim.Late, anim.Final}

// Step shows the page and reveals its callouts spread over the
// early..final phases.
func (d *Director) Step(index int, pg Page) schema.Step {
	frame := d.pageFrame(pg.Bounds)
	elements := schema.Elements{
		&schema.Image{
			Base: schema.Base{
				Position: &schema.Position{X: 50, Y: 50},
				Width:    frame.Dx(),
				Height:   frame.Dy(),
				Phase:    anim.Immediate,
			},
			Src: pg.Src,
		},
	}

	blocks := d.selectBlocks(pg.Blocks, pg.Bounds)
	for k, b := range blocks {
		r := frame.project(b.Rect, pg.Bounds)
		phase := calloutPhases[k*len(calloutPhases)/len(blocks)]
		elements = append(elements,
			&schema.Arrow{
				Base: schema.Base{
					Phase: phase,
					Color: "highlight",
					Entry: anim.FromLeft,
				},
				Start: schema.Position{X: r.x0, Y: r.y1 - 0.8},
				End:   schema.Position{X: r.x1, Y: r.y1 - 0.8},
				Head:  "none",
			},
			&schema.Text{
				Base: schema.Base{
					Position: &schema.Position{X: r.x0, Y: r.y0 + 2.5},
					Phase:    phase,
					Color:    "highlight",
					Entry:    anim.ZoomIn,
				},
				Content:    fmt.Sprint(k + 1),
				FontSize:   14,
				FontWeight: "bold",
				Align:      "left",
				VAlign:     "center",
			},
		)
	}

	return schema.Step{
		Name:            fmt.Sprintf("page_%d", index+1),
		Elements:        elements,
		AnimationFrames: d.frames(len(blocks)),
		Notes:           fmt.Sprintf("%s: %d regions", pg.Src, len(blocks)),
	}
}

// frames is the step length for n callouts.
func (d *Director) frames(n int) int {
	return min(max(n*d.FramesPerBlock, d.MinFrames), d.MaxFrames)
}

// selectBlocks keeps the largest blocks and sorts them in reading order
// (top-to-bottom, left-to-right).
func (d *Director) selectBlocks(blocks []analyzer.Block, bounds image.Rectangle) []analyzer.Block {
	sorted := make([]analyzer.Block, len(blocks))
	copy(sorted, blocks)

	if d.MaxCallouts > 0 && len(sorted) > d.MaxCallouts {
		sort.SliceStable(sorted, func(i, j int) bool {
			return area(sorted[i].Rect) > area(sorted[j].Rect)
		})
		sorted = sorted[:d.MaxCallouts]
	}

	threshold := int(d.RowThreshold * float64(bounds.Dy()))
	sort.SliceStable(sorted, func(i, j int) bool {
		yDiff := sorted[i].Rect.Min.Y - sorted[j].Rect.Min.Y
		if abs(yDiff) > threshold {
			return yDiff < 0
		}
		return sorted[i].Rect.Min.X < sorted[j].Rect.Min.X
	})
	return sorted
}

// planeRect is a rectangle on the 0-100 plane, y up: y0 is the top edge.
type planeRect struct {
	x0, y0, x1, y1 float64
}

func (r planeRect) Dx() float64 { return r.x1 - r.x0 }
func (r planeRect) Dy() float64 { return r.y0 - r.y1 }

// pageFrame fits a page of the given bounds into the plane, centered.
func (d *Director) pageFrame(bounds image.Rectangle) planeRect {
	avail := 100 - 2*d.Margin
	w, h := avail, avail
	if bounds.Dx() > 0 && bounds.Dy() > 0 {
		aspect := float64(bounds.Dx()) / float64(bounds.Dy())
		if aspect >= 1 {
			h = avail / aspect
		} else {
			w = avail * aspect
		}
	}
	return planeRect{x0: 50 - w/2, y0: 50 + h/2, x1: 50 + w/2, y1: 50 - h/2}
}

// project maps a pixel rectangle of the page onto the frame.
func (r planeRect) project(px, bounds image.Rectangle) planeRect {
	sx := r.Dx() / float64(bounds.Dx())
	sy := r.Dy() / float64(bounds.Dy())
	return planeRect{
		x0: r.x0 + float64(px.Min.X-bounds.Min.X)*sx,
		y0: r.y0 - float64(px.Min.Y-bounds.Min.Y)*sy,
		x1: r.x0 + float64(px.Max.X-bounds.Min.X)*sx,
		y1: r.y0 - float64(px.Max.Y-bounds.Min.Y)*sy,
	}
}

func area(r image.Rectangle) int {
	return r.Dx() * r.Dy()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
