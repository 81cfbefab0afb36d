// Package svg serializes recorded frames as SVG documents.
package svg

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/ivlev/slideanim/internal/canvas"
)

const (
	sansFont = "Helvetica, Arial, sans-serif"
	monoFont = "Menlo, Consolas, monospace"
)

// Encoder writes frames at a fixed output size. Image primitives are
// embedded as PNG data when Assets resolves them and linked otherwise.
type Encoder struct {
	Width, Height int
	Assets        canvas.Assets
}

func New(width, height int, assets canvas.Assets) *Encoder {
	return &Encoder{Width: width, Height: height, Assets: assets}
}

// Encode writes f as a standalone SVG document.
func (e *Encoder) Encode(w io.Writer, f *canvas.Frame) error {
	side := float64(min(e.Width, e.Height))
	d := &doc{
		tr:     f.Transform,
		assets: e.Assets,
		side:   side,
		ox:     (float64(e.Width) - side) / 2,
		oy:     (float64(e.Height) - side) / 2,
	}
	fmt.Fprintf(&d.buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		e.Width, e.Height, e.Width, e.Height)
	fmt.Fprintf(&d.buf, `  <rect x="0" y="0" width="%d" height="%d"%s/>`+"\n", e.Width, e.Height, paint("fill", f.Background, 1))
	if f.Transform.Alpha < 1 {
		fmt.Fprintf(&d.buf, `  <g opacity="%s">`+"\n", num(math.Max(0, f.Transform.Alpha)))
	} else {
		d.buf.WriteString("  <g>\n")
	}
	for _, s := range f.Shapes {
		if err := d.shape(s); err != nil {
			return err
		}
	}
	d.buf.WriteString("  </g>\n</svg>\n")
	_, err := w.Write(d.buf.Bytes())
	return err
}

type doc struct {
	buf    bytes.Buffer
	tr     canvas.Transform
	assets canvas.Assets

	side, ox, oy float64
}

type xy struct{ x, y float64 }

func (d *doc) pt(q canvas.Point) xy {
	q = d.tr.Point(q)
	return xy{d.ox + q.X/100*d.side, d.oy + (1-q.Y/100)*d.side}
}

func (d *doc) size(v float64) float64 {
	return v / 100 * d.side * d.tr.Scale
}

func (d *doc) width(v float64) float64 {
	return math.Max(1, d.size(v))
}

func (d *doc) box(x, y, w, h float64) (x0, y0, bw, bh float64) {
	a := d.pt(canvas.Point{X: x, Y: y})
	b := d.pt(canvas.Point{X: x + w, Y: y + h})
	return math.Min(a.x, b.x), math.Min(a.y, b.y), math.Abs(b.x - a.x), math.Abs(b.y - a.y)
}

func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// paint renders a fill or stroke attribute pair, "none" when invisible.
func paint(attr string, c color.NRGBA, alpha float64) string {
	if !canvas.Visible(c, alpha) {
		return fmt.Sprintf(` %s="none"`, attr)
	}
	s := fmt.Sprintf(` %s="%s"`, attr, hex(c))
	if a := math.Min(1, alpha) * float64(c.A) / 255; a < 1 {
		s += fmt.Sprintf(` %s-opacity="%s"`, attr, num(a))
	}
	return s
}

func (d *doc) strokeAttrs(c color.NRGBA, width, alpha float64, dashed bool) string {
	w := d.width(width)
	s := paint("stroke", c, alpha) + fmt.Sprintf(` stroke-width="%s"`, num(w))
	if dashed {
		s += fmt.Sprintf(` stroke-dasharray="%s %s"`, num(3*w+4), num(2*w+3))
	}
	return s
}

func (d *doc) points(in []canvas.Point) string {
	parts := make([]string, len(in))
	for i, q := range in {
		p := d.pt(q)
		parts[i] = num(p.x) + "," + num(p.y)
	}
	return strings.Join(parts, " ")
}

func (d *doc) shape(s canvas.Shape) error {
	switch s := s.(type) {
	case canvas.Rect:
		x, y, w, h := d.box(s.X, s.Y, s.W, s.H)
		r := d.size(s.Radius)
		fmt.Fprintf(&d.buf, `    <rect x="%s" y="%s" width="%s" height="%s"`, num(x), num(y), num(w), num(h))
		if r > 0 {
			fmt.Fprintf(&d.buf, ` rx="%s"`, num(r))
		}
		d.buf.WriteString(paint("fill", s.Fill, s.Alpha))
		if s.StrokeWidth > 0 {
			d.buf.WriteString(d.strokeAttrs(s.Stroke, s.StrokeWidth, s.Alpha, s.Dashed))
		}
		d.buf.WriteString("/>\n")
	case canvas.Circle:
		c := d.pt(s.Center)
		fmt.Fprintf(&d.buf, `    <circle cx="%s" cy="%s" r="%s"%s`, num(c.x), num(c.y), num(d.size(s.R)), paint("fill", s.Fill, s.Alpha))
		if s.StrokeWidth > 0 {
			d.buf.WriteString(d.strokeAttrs(s.Stroke, s.StrokeWidth, s.Alpha, false))
		}
		d.buf.WriteString("/>\n")
	case canvas.Wedge:
		d.wedge(s)
	case canvas.Line:
		if len(s.Points) < 2 {
			return nil
		}
		fmt.Fprintf(&d.buf, `    <polyline points="%s" fill="none"%s stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
			d.points(s.Points), d.strokeAttrs(s.Color, s.Width, s.Alpha, s.Dashed))
	case canvas.Arrow:
		d.arrow(s)
	case canvas.Polygon:
		if len(s.Points) < 3 {
			return nil
		}
		fmt.Fprintf(&d.buf, `    <polygon points="%s"%s`, d.points(s.Points), paint("fill", s.Fill, s.Alpha))
		if s.StrokeWidth > 0 {
			d.buf.WriteString(d.strokeAttrs(s.Stroke, s.StrokeWidth, s.Alpha, false))
		}
		d.buf.WriteString("/>\n")
	case canvas.Text:
		return d.text(s)
	case canvas.Image:
		return d.image(s)
	}
	return nil
}

// wedge is emitted as a sampled path so full rings need no special case.
func (d *doc) wedge(s canvas.Wedge) {
	if s.R <= 0 || s.To == s.From {
		return
	}
	sample := func(r float64, reverse bool) []canvas.Point {
		n := max(2, int(math.Ceil(math.Abs(s.To-s.From)/5)))
		pts := make([]canvas.Point, 0, n+1)
		for i := 0; i <= n; i++ {
			t := float64(i) / float64(n)
			if reverse {
				t = 1 - t
			}
			a := (s.From + (s.To-s.From)*t) * math.Pi / 180
			pts = append(pts, canvas.Point{X: s.Center.X + r*math.Cos(a), Y: s.Center.Y + r*math.Sin(a)})
		}
		return pts
	}
	pts := sample(s.R, false)
	if s.Inner > 0 {
		pts = append(pts, sample(s.Inner, true)...)
	} else {
		pts = append(pts, s.Center)
	}
	fmt.Fprintf(&d.buf, `    <polygon points="%s"%s/>`+"\n", d.points(pts), paint("fill", s.Fill, s.Alpha))
}

func (d *doc) arrow(s canvas.Arrow) {
	if len(s.Points) < 2 {
		return
	}
	tip := d.pt(s.Points[len(s.Points)-1])
	var dx, dy float64
	for i := len(s.Points) - 2; i >= 0; i-- {
		p := d.pt(s.Points[i])
		if l := math.Hypot(tip.x-p.x, tip.y-p.y); l > 0 {
			dx, dy = (tip.x-p.x)/l, (tip.y-p.y)/l
			break
		}
	}
	if dx == 0 && dy == 0 {
		return
	}
	w := d.width(s.Width)
	hs := math.Max(d.size(s.HeadSize), 2*w)
	nx, ny := -dy, dx
	at := func(back, side float64) string {
		return num(tip.x-dx*back+nx*side) + "," + num(tip.y-dy*back+ny*side)
	}

	shaft := make([]string, 0, len(s.Points))
	for _, q := range s.Points[:len(s.Points)-1] {
		p := d.pt(q)
		shaft = append(shaft, num(p.x)+","+num(p.y))
	}
	switch s.Head {
	case canvas.HeadTriangle:
		shaft = append(shaft, at(hs*0.8, 0))
	case canvas.HeadDiamond:
		shaft = append(shaft, at(hs/2, 0))
	default:
		shaft = append(shaft, at(0, 0))
	}
	fmt.Fprintf(&d.buf, `    <polyline points="%s" fill="none"%s stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
		strings.Join(shaft, " "), d.strokeAttrs(s.Color, s.Width, s.Alpha, s.Dashed))

	fill := paint("fill", s.Color, s.Alpha)
	switch s.Head {
	case canvas.HeadTriangle:
		fmt.Fprintf(&d.buf, `    <polygon points="%s %s %s"%s/>`+"\n", at(0, 0), at(hs, hs/2), at(hs, -hs/2), fill)
	case canvas.HeadDiamond:
		fmt.Fprintf(&d.buf, `    <polygon points="%s %s %s %s"%s/>`+"\n", at(0, 0), at(hs/2, hs/3), at(hs, 0), at(hs/2, -hs/3), fill)
	case canvas.HeadCircle:
		fmt.Fprintf(&d.buf, `    <circle cx="%s" cy="%s" r="%s"%s/>`+"\n", num(tip.x), num(tip.y), num(hs/2), fill)
	}
}

func (d *doc) text(t canvas.Text) error {
	if !canvas.Visible(t.Color, t.Alpha) || t.Content == "" {
		return nil
	}
	px := d.size(t.Size * canvas.PointUnit)
	lines := strings.Split(t.Content, "\n")
	advance := px * 1.4
	p := d.pt(t.Pos)

	block := float64(len(lines)-1) * advance
	top := p.y - block/2
	switch t.VAlign {
	case canvas.VAlignTop:
		top = p.y + px/2
	case canvas.VAlignBottom:
		top = p.y - block - px/2
	}
	anchor := "middle"
	switch t.Align {
	case canvas.AlignLeft:
		anchor = "start"
	case canvas.AlignRight:
		anchor = "end"
	}
	family := sansFont
	if t.Mono {
		family = monoFont
	}

	fmt.Fprintf(&d.buf, `    <text x="%s" y="%s" font-family="%s" font-size="%s" text-anchor="%s" dominant-baseline="middle"%s`,
		num(p.x), num(top), family, num(px), anchor, paint("fill", t.Color, t.Alpha))
	if t.Bold {
		d.buf.WriteString(` font-weight="bold"`)
	}
	if t.Italic {
		d.buf.WriteString(` font-style="italic"`)
	}
	d.buf.WriteString(">")
	for i, line := range lines {
		if len(lines) > 1 {
			dy := "0"
			if i > 0 {
				dy = num(advance)
			}
			fmt.Fprintf(&d.buf, `<tspan x="%s" dy="%s">`, num(p.x), dy)
		}
		if err := xml.EscapeText(&d.buf, []byte(line)); err != nil {
			return err
		}
		if len(lines) > 1 {
			d.buf.WriteString("</tspan>")
		}
	}
	d.buf.WriteString("</text>\n")
	return nil
}

func (d *doc) image(s canvas.Image) error {
	if s.Alpha <= 0 {
		return nil
	}
	x, y, w, h := d.box(s.X, s.Y, s.W, s.H)
	href := s.Src
	if d.assets != nil {
		if img, ok := d.assets.Image(s.Src); ok {
			var buf bytes.Buffer
			if err := png.Encode(&buf, img); err != nil {
				return fmt.Errorf("svg: encode %s: %w", s.Src, err)
			}
			href = "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
		}
	}
	fmt.Fprintf(&d.buf, `    <image x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="xMidYMid meet" href="`,
		num(x), num(y), num(w), num(h))
	if err := xml.EscapeText(&d.buf, []byte(href)); err != nil {
		return err
	}
	d.buf.WriteString(`"`)
	if s.Alpha < 1 {
		fmt.Fprintf(&d.buf, ` opacity="%s"`, num(s.Alpha))
	}
	d.buf.WriteString("/>\n")
	if s.BorderWidth > 0 {
		fmt.Fprintf(&d.buf, `    <rect x="%s" y="%s" width="%s" height="%s" fill="none"%s/>`+"\n",
			num(x), num(y), num(w), num(h), d.strokeAttrs(s.Border, s.BorderWidth, s.Alpha, false))
	}
	return nil
}
