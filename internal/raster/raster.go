// Package raster rasterizes recorded frames into RGBA images.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/ivlev/slideanim/internal/canvas"
)

// Renderer draws frames at a fixed output size.
type Renderer struct {
	Width, Height int
	Assets        canvas.Assets
}

func New(width, height int, assets canvas.Assets) *Renderer {
	return &Renderer{Width: width, Height: height, Assets: assets}
}

// Render draws f into a new image.
func (r *Renderer) Render(f *canvas.Frame) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	r.RenderInto(dst, f)
	return dst
}

// RenderInto replaces the contents of dst with f. The plane is mapped onto
// the centered square of dst whose side is its shorter dimension.
func (r *Renderer) RenderInto(dst *image.RGBA, f *canvas.Frame) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(f.Background), image.Point{}, draw.Src)
	p := newPainter(dst, f.Transform, r.Assets)
	for _, s := range f.Shapes {
		p.shape(s)
	}
}

type painter struct {
	dst    *image.RGBA
	tr     canvas.Transform
	assets canvas.Assets
	ras    *vector.Rasterizer

	side, ox, oy float64
}

func newPainter(dst *image.RGBA, tr canvas.Transform, assets canvas.Assets) *painter {
	b := dst.Bounds()
	side := float64(min(b.Dx(), b.Dy()))
	return &painter{
		dst:    dst,
		tr:     tr,
		assets: assets,
		ras:    vector.NewRasterizer(1, 1),
		side:   side,
		ox:     float64(b.Min.X) + (float64(b.Dx())-side)/2,
		oy:     float64(b.Min.Y) + (float64(b.Dy())-side)/2,
	}
}

// pt maps a plane position to pixels.
func (p *painter) pt(q canvas.Point) vec {
	q = p.tr.Point(q)
	return vec{p.ox + q.X/100*p.side, p.oy + (1-q.Y/100)*p.side}
}

// size maps a plane length to pixels.
func (p *painter) size(v float64) float64 {
	return v / 100 * p.side * p.tr.Scale
}

// width is a stroke width in pixels, at least one pixel.
func (p *painter) width(v float64) float64 {
	return math.Max(1, p.size(v))
}

func (p *painter) pts(in []canvas.Point) []vec {
	out := make([]vec, len(in))
	for i, q := range in {
		out[i] = p.pt(q)
	}
	return out
}

// box returns the pixel bounds of a plane box anchored at its lower-left corner.
func (p *painter) box(x, y, w, h float64) (x0, y0, x1, y1 float64) {
	a := p.pt(canvas.Point{X: x, Y: y})
	b := p.pt(canvas.Point{X: x + w, Y: y + h})
	return math.Min(a.x, b.x), math.Min(a.y, b.y), math.Max(a.x, b.x), math.Max(a.y, b.y)
}

func (p *painter) shape(s canvas.Shape) {
	switch s := s.(type) {
	case canvas.Rect:
		p.rect(s)
	case canvas.Circle:
		p.circle(s)
	case canvas.Wedge:
		p.wedge(s)
	case canvas.Line:
		p.line(s.Points, s.Color, s.Width, s.Alpha, s.Dashed)
	case canvas.Arrow:
		p.arrow(s)
	case canvas.Polygon:
		p.polygon(s)
	case canvas.Text:
		p.text(s)
	case canvas.Image:
		p.image(s)
	}
}

func (p *painter) rect(s canvas.Rect) {
	x0, y0, x1, y1 := p.box(s.X, s.Y, s.W, s.H)
	r := p.size(s.Radius)
	p.fill([]contour{{pts: roundedRect(x0, y0, x1, y1, r)}}, s.Fill, s.Alpha)
	if s.StrokeWidth <= 0 {
		return
	}
	sw := p.width(s.StrokeWidth)
	if s.Dashed {
		outline := roundedRect(x0, y0, x1, y1, r)
		outline = append(outline, outline[0])
		p.dashed(outline, sw, s.Stroke, s.Alpha)
		return
	}
	p.fill(ring(
		roundedRect(x0-sw/2, y0-sw/2, x1+sw/2, y1+sw/2, r+sw/2),
		roundedRect(x0+sw/2, y0+sw/2, x1-sw/2, y1-sw/2, r-sw/2),
	), s.Stroke, s.Alpha)
}

// ring is outer with inner punched out; a degenerate inner leaves outer solid.
func ring(outer, inner []vec) []contour {
	cs := []contour{{pts: outer}}
	if math.Abs(signedArea(inner)) > 0 && sameWinding(outer, inner) {
		cs = append(cs, contour{pts: inner, hole: true})
	}
	return cs
}

// sameWinding rejects insets that turned inside out.
func sameWinding(a, b []vec) bool {
	return (signedArea(a) > 0) == (signedArea(b) > 0)
}

func (p *painter) circle(s canvas.Circle) {
	c, r := p.pt(s.Center), p.size(s.R)
	if r <= 0 {
		return
	}
	p.fill([]contour{{pts: circle(c, r)}}, s.Fill, s.Alpha)
	if s.StrokeWidth > 0 {
		sw := p.width(s.StrokeWidth)
		in := r - sw/2
		cs := []contour{{pts: circle(c, r+sw/2)}}
		if in > 0 {
			cs = append(cs, contour{pts: circle(c, in), hole: true})
		}
		p.fill(cs, s.Stroke, s.Alpha)
	}
}

func (p *painter) wedge(s canvas.Wedge) {
	c, r := p.pt(s.Center), p.size(s.R)
	if r <= 0 || s.To == s.From {
		return
	}
	pts := arc(c, r, s.From, s.To)
	if in := p.size(s.Inner); in > 0 {
		inner := arc(c, in, s.From, s.To)
		for i := len(inner) - 1; i >= 0; i-- {
			pts = append(pts, inner[i])
		}
	} else {
		pts = append(pts, c)
	}
	p.fill([]contour{{pts: pts}}, s.Fill, s.Alpha)
}

func (p *painter) line(in []canvas.Point, c color.NRGBA, width, alpha float64, dashed bool) {
	if len(in) < 2 {
		return
	}
	pts, w := p.pts(in), p.width(width)
	if dashed {
		p.dashed(pts, w, c, alpha)
		return
	}
	p.fill(stroke(pts, w), c, alpha)
}

func (p *painter) dashed(pts []vec, w float64, c color.NRGBA, alpha float64) {
	var cs []contour
	for _, run := range dashes(pts, 3*w+4, 2*w+3) {
		cs = append(cs, stroke(run, w)...)
	}
	p.fill(cs, c, alpha)
}

func (p *painter) arrow(s canvas.Arrow) {
	if len(s.Points) < 2 {
		return
	}
	pts, w := p.pts(s.Points), p.width(s.Width)
	tip := pts[len(pts)-1]
	var dir vec
	for i := len(pts) - 2; i >= 0 && dir == (vec{}); i-- {
		dir = tip.sub(pts[i]).unit()
	}
	if dir == (vec{}) {
		return
	}
	hs := math.Max(p.size(s.HeadSize), 2*w)
	n := vec{-dir.y, dir.x}

	var head []vec
	shaft := append([]vec(nil), pts...)
	switch s.Head {
	case canvas.HeadTriangle:
		base := tip.sub(dir.mul(hs))
		head = []vec{tip, base.add(n.mul(hs / 2)), base.sub(n.mul(hs / 2))}
		shaft[len(shaft)-1] = tip.sub(dir.mul(hs * 0.8))
	case canvas.HeadCircle:
		head = circle(tip, hs/2)
	case canvas.HeadDiamond:
		mid := tip.sub(dir.mul(hs / 2))
		head = []vec{tip, mid.add(n.mul(hs / 3)), tip.sub(dir.mul(hs)), mid.sub(n.mul(hs / 3))}
		shaft[len(shaft)-1] = tip.sub(dir.mul(hs / 2))
	}

	if s.Dashed {
		p.dashed(shaft, w, s.Color, s.Alpha)
	} else {
		p.fill(stroke(shaft, w), s.Color, s.Alpha)
	}
	if head != nil {
		p.fill([]contour{{pts: head}}, s.Color, s.Alpha)
	}
}

func (p *painter) polygon(s canvas.Polygon) {
	if len(s.Points) < 3 {
		return
	}
	pts := p.pts(s.Points)
	p.fill([]contour{{pts: pts}}, s.Fill, s.Alpha)
	if s.StrokeWidth > 0 {
		p.fill(stroke(append(pts, pts[0]), p.width(s.StrokeWidth)), s.Stroke, s.Alpha)
	}
}

// image draws an asset fitted inside its box with its aspect ratio kept.
// Unknown sources leave a dashed placeholder.
func (p *painter) image(s canvas.Image) {
	alpha := s.Alpha * p.tr.Alpha
	if alpha <= 0 {
		return
	}
	x0, y0, x1, y1 := p.box(s.X, s.Y, s.W, s.H)
	var img image.Image
	if p.assets != nil {
		img, _ = p.assets.Image(s.Src)
	}
	if img == nil || img.Bounds().Empty() {
		outline := roundedRect(x0, y0, x1, y1, 0)
		p.dashed(append(outline, outline[0]), 1, color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}, s.Alpha)
		return
	}

	sb := img.Bounds()
	k := math.Min((x1-x0)/float64(sb.Dx()), (y1-y0)/float64(sb.Dy()))
	if k <= 0 {
		return
	}
	dx := (x0+x1)/2 - k*float64(sb.Dx())/2 - k*float64(sb.Min.X)
	dy := (y0+y1)/2 - k*float64(sb.Dy())/2 - k*float64(sb.Min.Y)
	var opts *xdraw.Options
	if alpha < 1 {
		opts = &xdraw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(math.Round(alpha * 255))})}
	}
	xdraw.CatmullRom.Transform(p.dst, f64.Aff3{k, 0, dx, 0, k, dy}, img, sb, xdraw.Over, opts)

	if s.BorderWidth > 0 {
		bw := p.width(s.BorderWidth)
		p.fill(ring(
			roundedRect(x0-bw, y0-bw, x1+bw, y1+bw, 0),
			roundedRect(x0, y0, x1, y1, 0),
		), s.Border, s.Alpha)
	}
}
