package render

import (
	"math"
	"sort"

	"github.com/ivlev/slideanim/internal/canvas"
	"github.com/ivlev/slideanim/internal/schema"
)

// Projector is an orthographic camera over a data cube. Data is normalized
// to [-1,1] per axis using the camera limits.
type Projector struct {
	lim            [3][2]float64
	right, up, fwd [3]float64
	k              float64
}

// NewProjector positions the camera of cam at step progress and fits the
// normalized cube into a panel of the given side.
func NewProjector(cam *schema.Camera, progress, side float64) Projector {
	elev, azim := cam.View(progress)
	el, az := elev*math.Pi/180, azim*math.Pi/180
	x, y, z := cam.Limits()
	return Projector{
		lim:   [3][2]float64{x, y, z},
		right: [3]float64{-math.Sin(az), math.Cos(az), 0},
		up:    [3]float64{-math.Sin(el) * math.Cos(az), -math.Sin(el) * math.Sin(az), math.Cos(el)},
		fwd:   [3]float64{math.Cos(el) * math.Cos(az), math.Cos(el) * math.Sin(az), math.Sin(el)},
		// Half the panel over the half diagonal of the unit cube.
		k: side / 2 / math.Sqrt(3),
	}
}

func (p Projector) normalize(v [3]float64) [3]float64 {
	var out [3]float64
	for i := range v {
		lo, hi := p.lim[i][0], p.lim[i][1]
		out[i] = (v[i]-lo)/(hi-lo)*2 - 1
	}
	return out
}

// Project returns the panel offset of a data point and its depth; larger
// depth is closer to the viewer.
func (p Projector) Project(x, y, z float64) (sx, sy, depth float64) {
	n := p.normalize([3]float64{x, y, z})
	dot := func(a [3]float64) float64 { return a[0]*n[0] + a[1]*n[1] + a[2]*n[2] }
	return dot(p.right) * p.k, dot(p.up) * p.k, dot(p.fwd)
}

// projectUnit projects a point already in normalized cube coordinates.
func (p Projector) projectUnit(v [3]float64) (sx, sy float64) {
	dot := func(a [3]float64) float64 { return a[0]*v[0] + a[1]*v[1] + a[2]*v[2] }
	return dot(p.right) * p.k, dot(p.up) * p.k
}

// drawAxes draws the panel and the three axes through the cube center.
func drawAxes(c *ctx, proj Projector) {
	c.box(0, 0, c.w, c.h, c.color("#0D0D14", "panel"), c.color("dim", "dim"), 1, c.alpha)
	axes := []struct {
		dir   [3]float64
		label string
		col   string
	}{
		{[3]float64{1, 0, 0}, "x", "warning"},
		{[3]float64{0, 1, 0}, "y", "success"},
		{[3]float64{0, 0, 1}, "z", "primary"},
	}
	for _, ax := range axes {
		col := c.color(ax.col, "axis")
		var neg, tip [3]float64
		for i := range ax.dir {
			neg[i] = -ax.dir[i]
			tip[i] = ax.dir[i] * 1.15
		}
		x0, y0 := proj.projectUnit(neg)
		x1, y1 := proj.projectUnit(ax.dir)
		c.line(c.pt(x0, y0), c.pt(x1, y1), col, 1, c.alpha*0.7)
		lx, ly := proj.projectUnit(tip)
		c.text(lx, ly, ax.label, 7, col, c.alpha, bold)
	}
}

type projected struct {
	x, y      float64
	depth     float64
	alpha     float64
	colorName string
	label     string
}

// projectAll projects pts with their stagger alphas, far points first.
func projectAll(c *ctx, proj Projector, pts []schema.Point3D) ([]projected, error) {
	out := make([]projected, 0, len(pts))
	err := staggered(c, len(pts), func(i int, a float64) {
		p := pts[i]
		x, y, d := proj.Project(p.X, p.Y, p.Z)
		out = append(out, projected{x: x, y: y, depth: d, alpha: a, colorName: p.Color, label: p.Label})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].depth < out[j].depth })
	return out, nil
}

func drawScatter3D(c *ctx, el *schema.Scatter3D) error {
	proj := NewProjector(&el.Camera, c.step, math.Min(c.w, c.h))
	drawAxes(c, proj)
	pts, err := projectAll(c, proj, el.Points)
	if err != nil {
		return err
	}
	ox, oy, _ := proj.Project(0, 0, 0)
	r := schema.Or(el.PointSize, 1.2)
	for _, p := range pts {
		col := c.color(p.colorName, "point")
		if c.base.Color != "" && p.colorName == "" {
			col = c.accent("point")
		}
		if el.ShowVectors {
			c.line(c.pt(ox, oy), c.pt(p.x, p.y), col, 1, p.alpha*0.5)
		}
		c.circle(p.x, p.y, r, col, c.color("text", "text"), 0.5, p.alpha)
		c.text(p.x+1.5, p.y+1.5, p.label, 7, c.color("text", "text"), p.alpha, align(canvas.AlignLeft))
	}
	return nil
}

func drawVector3D(c *ctx, el *schema.Vector3D) error {
	proj := NewProjector(&el.Camera, c.step, math.Min(c.w, c.h))
	drawAxes(c, proj)
	vecs, err := projectAll(c, proj, el.Vectors)
	if err != nil {
		return err
	}
	ox, oy, _ := proj.Project(0, 0, 0)
	for _, v := range vecs {
		col := c.color(v.colorName, "vector")
		// The shaft grows with the item alpha.
		tip := canvas.Point{X: ox + (v.x-ox)*v.alpha, Y: oy + (v.y-oy)*v.alpha}
		c.arrow([]canvas.Point{c.pt(ox, oy), c.pt(tip.X, tip.Y)}, col, 2, v.alpha, canvas.HeadTriangle)
		c.text(v.x*1.08, v.y*1.08, v.label, 8, col, v.alpha, bold)
	}
	return nil
}
