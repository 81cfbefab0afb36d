package render

import (
	"image/color"
	"strings"

	"github.com/ivlev/slideanim/internal/anim"
	"github.com/ivlev/slideanim/internal/canvas"
	"github.com/ivlev/slideanim/internal/schema"
	"github.com/ivlev/slideanim/internal/style"
)

// Corner radius of rounded boxes, in plane units.
const boxRadius = 0.6

// ctx is the resolved animation state of one element. Offsets passed to its
// helpers are relative to the anchor and are scaled by the continuous
// effect and zoom entry; the anchor itself never scales.
type ctx struct {
	dst   canvas.Surface
	theme *style.Theme
	base  *schema.Base
	kind  schema.Kind

	x, y   float64
	dx, dy float64
	w, h   float64
	scale  float64
	alpha  float64
	step   float64
	speed  float64
}

func (c *ctx) pt(ox, oy float64) canvas.Point {
	return canvas.Point{X: c.x + ox*c.scale, Y: c.y + oy*c.scale}
}

// abs maps an absolute plane position through the entry offset.
func (c *ctx) abs(p schema.Position) canvas.Point {
	return canvas.Point{X: p.X + c.dx, Y: p.Y + c.dy}
}

func (c *ctx) l(v float64) float64 {
	return v * c.scale
}

// lw converts a stroke width in points to scaled plane units.
func (c *ctx) lw(points float64) float64 {
	return points * canvas.PointUnit * c.scale
}

func (c *ctx) color(name, fallback string) color.NRGBA {
	return c.theme.ColorOr(name, fallback)
}

// accent is the element color override or fallback.
func (c *ctx) accent(fallback string) color.NRGBA {
	return c.theme.ColorOr(c.base.Color, fallback)
}

// item returns the alpha of sub-item i of n under the element's stagger
// setting.
func (c *ctx) item(i, n int) (float64, error) {
	return anim.StaggerAlpha(c.alpha, i, n, c.base.Staggered(c.kind))
}

func (c *ctx) draw(s canvas.Shape) {
	c.dst.Draw(s)
}

// box draws a rounded rectangle of size w x h centered at offset (ox, oy).
func (c *ctx) box(ox, oy, w, h float64, fill, stroke color.NRGBA, strokePt, alpha float64) {
	if alpha <= 0 {
		return
	}
	p := c.pt(ox-w/2, oy-h/2)
	c.draw(canvas.Rect{
		X: p.X, Y: p.Y, W: c.l(w), H: c.l(h),
		Fill:        fill,
		Stroke:      stroke,
		StrokeWidth: c.lw(strokePt),
		Radius:      c.l(boxRadius),
		Alpha:       alpha,
	})
}

// bar draws a square-cornered rectangle with its lower-left corner at
// offset (ox, oy).
func (c *ctx) bar(ox, oy, w, h float64, fill color.NRGBA, alpha float64) {
	if alpha <= 0 || w <= 0 || h <= 0 {
		return
	}
	p := c.pt(ox, oy)
	c.draw(canvas.Rect{X: p.X, Y: p.Y, W: c.l(w), H: c.l(h), Fill: fill, Alpha: alpha})
}

type textOpt func(*canvas.Text)

func bold(t *canvas.Text)   { t.Bold = true }
func mono(t *canvas.Text)   { t.Mono = true }
func italic(t *canvas.Text) { t.Italic = true }

func align(a canvas.Align) textOpt {
	return func(t *canvas.Text) { t.Align = a }
}

func valign(v canvas.VAlign) textOpt {
	return func(t *canvas.Text) { t.VAlign = v }
}

// text draws s centered at offset (ox, oy). size is in points.
func (c *ctx) text(ox, oy float64, s string, size float64, col color.NRGBA, alpha float64, opts ...textOpt) {
	if alpha <= 0 || s == "" {
		return
	}
	t := canvas.Text{
		Pos:     c.pt(ox, oy),
		Content: s,
		Size:    size * c.scale,
		Color:   col,
		Alpha:   anim.Clamp01(alpha),
	}
	for _, o := range opts {
		o(&t)
	}
	c.draw(t)
}

func (c *ctx) line(a, b canvas.Point, col color.NRGBA, widthPt, alpha float64) {
	if alpha <= 0 {
		return
	}
	c.draw(canvas.Line{Points: []canvas.Point{a, b}, Color: col, Width: c.lw(widthPt), Alpha: alpha})
}

func (c *ctx) arrow(pts []canvas.Point, col color.NRGBA, widthPt, alpha float64, head canvas.HeadStyle) {
	if alpha <= 0 || len(pts) < 2 {
		return
	}
	c.draw(canvas.Arrow{
		Points:   pts,
		Color:    col,
		Width:    c.lw(widthPt),
		HeadSize: c.l(1.5),
		Head:     head,
		Alpha:    alpha,
	})
}

func (c *ctx) circle(ox, oy, r float64, fill, stroke color.NRGBA, strokePt, alpha float64) {
	if alpha <= 0 {
		return
	}
	c.draw(canvas.Circle{
		Center:      c.pt(ox, oy),
		R:           c.l(r),
		Fill:        fill,
		Stroke:      stroke,
		StrokeWidth: c.lw(strokePt),
		Alpha:       alpha,
	})
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// clip shortens s to n runes without a marker.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// fitLines splits s into lines and limits them to the space a w x h box
// offers at the given font size.
func fitLines(s string, w, h, size float64) []string {
	lineH := size * canvas.PointUnit * 1.4
	charW := size * canvas.PointUnit * 0.6
	maxLines := int(h / lineH)
	maxChars := int(w / charW)
	if maxLines < 1 {
		maxLines = 1
	}
	if maxChars < 4 {
		maxChars = 4
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for i, l := range lines {
		lines[i] = truncate(strings.ReplaceAll(l, "\t", "    "), maxChars)
	}
	return lines
}

// lineHeight returns the spacing of consecutive lines at size points.
func lineHeight(size float64) float64 {
	return size * canvas.PointUnit * 1.4
}

// headStyle maps a schema head name to a canvas arrow head.
func headStyle(name string) canvas.HeadStyle {
	switch name {
	case "circle":
		return canvas.HeadCircle
	case "diamond":
		return canvas.HeadDiamond
	case "none":
		return canvas.HeadNone
	}
	return canvas.HeadTriangle
}

func orString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
