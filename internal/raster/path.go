package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/ivlev/slideanim/internal/canvas"
)

// vec is a point in pixel space.
type vec struct{ x, y float64 }

func (a vec) add(b vec) vec             { return vec{a.x + b.x, a.y + b.y} }
func (a vec) sub(b vec) vec             { return vec{a.x - b.x, a.y - b.y} }
func (a vec) mul(k float64) vec         { return vec{a.x * k, a.y * k} }
func (a vec) len() float64              { return math.Hypot(a.x, a.y) }
func (a vec) lerp(b vec, t float64) vec { return a.add(b.sub(a).mul(t)) }

func (a vec) unit() vec {
	l := a.len()
	if l == 0 {
		return vec{}
	}
	return a.mul(1 / l)
}

// contour is a closed polygon. Holes are wound against filled contours so
// the non-zero coverage of the rasterizer cancels them out.
type contour struct {
	pts  []vec
	hole bool
}

func signedArea(pts []vec) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].x*pts[j].y - pts[j].x*pts[i].y
	}
	return a / 2
}

// arcSegments picks a polygon resolution for a circle of radius r pixels.
func arcSegments(r float64) int {
	n := int(math.Ceil(r / 2))
	return max(12, min(n, 128))
}

// arc samples a circular arc of radius r around c. Angles are in degrees,
// counter-clockwise in plane orientation, so y is flipped.
func arc(c vec, r, from, to float64) []vec {
	span := to - from
	n := max(2, int(math.Ceil(float64(arcSegments(r))*math.Abs(span)/360)))
	pts := make([]vec, 0, n+1)
	for i := 0; i <= n; i++ {
		a := (from + span*float64(i)/float64(n)) * math.Pi / 180
		pts = append(pts, vec{c.x + r*math.Cos(a), c.y - r*math.Sin(a)})
	}
	return pts
}

func circle(c vec, r float64) []vec {
	pts := arc(c, r, 0, 360)
	return pts[:len(pts)-1]
}

// roundedRect returns the outline of the pixel rectangle [x0,x1]x[y0,y1].
func roundedRect(x0, y0, x1, y1, r float64) []vec {
	r = math.Min(r, math.Min((x1-x0)/2, (y1-y0)/2))
	if r <= 0.5 {
		return []vec{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
	}
	var pts []vec
	pts = append(pts, arc(vec{x1 - r, y0 + r}, r, 90, 0)...)
	pts = append(pts, arc(vec{x1 - r, y1 - r}, r, 0, -90)...)
	pts = append(pts, arc(vec{x0 + r, y1 - r}, r, -90, -180)...)
	pts = append(pts, arc(vec{x0 + r, y0 + r}, r, 180, 90)...)
	return pts
}

// segment is the quad covering a stroke of width w from a to b.
func segment(a, b vec, w float64) []vec {
	d := b.sub(a).unit()
	if d == (vec{}) {
		return nil
	}
	n := vec{-d.y, d.x}.mul(w / 2)
	return []vec{a.add(n), b.add(n), b.sub(n), a.sub(n)}
}

// stroke turns a polyline into quads with round joins.
func stroke(pts []vec, w float64) []contour {
	if len(pts) < 2 || w <= 0 {
		return nil
	}
	var cs []contour
	for i := 0; i+1 < len(pts); i++ {
		if q := segment(pts[i], pts[i+1], w); q != nil {
			cs = append(cs, contour{pts: q})
		}
	}
	if w >= 2 {
		for _, p := range pts[1 : len(pts)-1] {
			cs = append(cs, contour{pts: circle(p, w/2)})
		}
	}
	return cs
}

// dashes splits a polyline into dash runs of on pixels separated by off.
func dashes(pts []vec, on, off float64) [][]vec {
	var out [][]vec
	var cur []vec
	drawing, left := true, on
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		seg := b.sub(a).len()
		pos := 0.0
		if drawing && len(cur) == 0 {
			cur = append(cur, a)
		}
		for seg-pos > left {
			pos += left
			p := a.lerp(b, pos/seg)
			if drawing {
				out = append(out, append(cur, p))
				cur = nil
				left = off
			} else {
				cur = []vec{p}
				left = on
			}
			drawing = !drawing
		}
		left -= seg - pos
		if drawing {
			cur = append(cur, b)
		}
	}
	if drawing && len(cur) > 1 {
		out = append(out, cur)
	}
	return out
}

// fill rasterizes contours into the painter's destination.
func (p *painter) fill(cs []contour, c color.NRGBA, alpha float64) {
	alpha *= p.tr.Alpha
	if !canvas.Visible(c, alpha) || len(cs) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, ct := range cs {
		for _, v := range ct.pts {
			minX, maxX = math.Min(minX, v.x), math.Max(maxX, v.x)
			minY, maxY = math.Min(minY, v.y), math.Max(maxY, v.y)
		}
	}
	r := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	r = r.Intersect(p.dst.Bounds())
	if r.Empty() {
		return
	}

	p.ras.Reset(r.Dx(), r.Dy())
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for _, ct := range cs {
		pts := ct.pts
		if len(pts) < 3 {
			continue
		}
		// Fill contours are positive in pixel space, holes negative.
		reverse := (signedArea(pts) < 0) != ct.hole
		at := func(i int) vec {
			if reverse {
				return pts[len(pts)-1-i]
			}
			return pts[i]
		}
		v := at(0)
		p.ras.MoveTo(float32(v.x-ox), float32(v.y-oy))
		for i := 1; i < len(pts); i++ {
			v = at(i)
			p.ras.LineTo(float32(v.x-ox), float32(v.y-oy))
		}
		p.ras.ClosePath()
	}
	p.ras.Draw(p.dst, r, image.NewUniform(withAlpha(c, alpha)), image.Point{})
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	a := math.Round(float64(c.A) * math.Max(0, math.Min(1, alpha)))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a)}
}
