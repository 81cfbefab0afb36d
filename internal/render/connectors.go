package render

import (
	"math"

	"github.com/ivlev/slideanim/internal/anim"
	"github.com/ivlev/slideanim/internal/canvas"
	"github.com/ivlev/slideanim/internal/schema"
)

// arcSamples is the number of segments used to approximate an arc arrow.
const arcSamples = 32

func drawArrow(c *ctx, el *schema.Arrow) error {
	start := c.abs(el.Start)
	end := c.abs(el.End)
	tip := canvas.Point{
		X: anim.Lerp(start.X, end.X, c.alpha),
		Y: anim.Lerp(start.Y, end.Y, c.alpha),
	}
	width := c.w
	if el.Style == "fancy" {
		width *= 1.5
	}
	c.draw(canvas.Arrow{
		Points:   []canvas.Point{start, tip},
		Color:    c.accent("primary"),
		Width:    c.lw(width),
		HeadSize: c.l(schema.Or(el.HeadSize, 1.5)),
		Head:     headStyle(el.Head),
		Alpha:    c.alpha,
		Dashed:   el.Style == "dashed",
	})
	return nil
}

// ArcPoint returns the point at t in [0,1] along the quadratic curve from
// start to end that bulges by height/50 of the chord length, to the left
// of the travel direction when up is true.
func ArcPoint(start, end canvas.Point, height float64, up bool, t float64) canvas.Point {
	dx, dy := end.X-start.X, end.Y-start.Y
	rad := height / 50
	if !up {
		rad = -rad
	}
	ctrl := canvas.Point{
		X: (start.X+end.X)/2 - dy*rad,
		Y: (start.Y+end.Y)/2 + dx*rad,
	}
	u := 1 - t
	return canvas.Point{
		X: u*u*start.X + 2*u*t*ctrl.X + t*t*end.X,
		Y: u*u*start.Y + 2*u*t*ctrl.Y + t*t*end.Y,
	}
}

func drawArcArrow(c *ctx, el *schema.ArcArrow) error {
	start, end := c.abs(el.Start), c.abs(el.End)
	height := schema.Or(el.ArcHeight, 20)
	up := el.Direction != "down"
	n := int(math.Ceil(arcSamples * c.alpha))
	if n < 1 {
		n = 1
	}
	pts := make([]canvas.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := c.alpha * float64(i) / float64(n)
		pts = append(pts, ArcPoint(start, end, height, up, t))
	}
	c.arrow(pts, c.accent("primary"), c.w, c.alpha, headStyle(el.Head))
	return nil
}

// ParticleT returns the position along the path of particle i of n. The
// particles travel twice along the path while the element reveals.
func ParticleT(i, n int, local, speed float64) float64 {
	return math.Mod(float64(i)/float64(n)+math.Min(1, local*speed)*2, 1)
}

func drawParticleFlow(c *ctx, el *schema.ParticleFlow) error {
	start, end := c.abs(el.Start), c.abs(el.End)
	n := el.Count()
	spread := schema.FloatOr(el.Spread, 0.5)
	size := schema.Or(el.ParticleSize, 30) / 30
	col := c.accent("accent")
	for i := 0; i < n; i++ {
		t := ParticleT(i, n, c.alpha, c.speed)
		p := canvas.Point{
			X: anim.Lerp(start.X, end.X, t),
			Y: anim.Lerp(start.Y, end.Y, t) + math.Sin(float64(i)*1.5)*spread*5,
		}
		wave := math.Sin(math.Pi * t)
		a := (0.3 + 0.7*wave) * c.alpha
		if a <= 0 {
			continue
		}
		c.draw(canvas.Circle{
			Center: p,
			R:      c.l(size * (0.4 + 0.3*wave)),
			Fill:   col,
			Alpha:  a,
		})
	}
	return nil
}
