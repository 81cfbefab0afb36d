package render

import (
	"fmt"

	"github.com/ivlev/slideanim/internal/canvas"
	"github.com/ivlev/slideanim/internal/schema"
)

// scoreColor grades a 0-100 score.
func scoreColor(score float64) string {
	switch {
	case score > 66:
		return "success"
	case score > 33:
		return "accent"
	}
	return "warning"
}

func drawSimilarityMeter(c *ctx, el *schema.SimilarityMeter) error {
	r := schema.Or(el.Radius, 8)
	current := el.Score * c.alpha
	center := c.pt(0, 0)
	c.draw(canvas.Wedge{
		Center: center, R: c.l(r), Inner: c.l(r * 0.7),
		From: 0, To: 180,
		Fill:  c.color("track", "track"),
		Alpha: c.alpha,
	})
	if current > 0 {
		c.draw(canvas.Wedge{
			Center: center, R: c.l(r), Inner: c.l(r * 0.7),
			From: 180 * (1 - current/100), To: 180,
			Fill:  c.accent(scoreColor(current)),
			Alpha: c.alpha,
		})
	}
	c.text(0, 2, fmt.Sprintf("%d%%", int(current)), 12, c.color("text", "text"), c.alpha, bold)
	c.text(0, -2.5, el.Label, 8, c.color("dim", "dim"), c.alpha)
	return nil
}

func drawProgressBar(c *ctx, el *schema.ProgressBar) error {
	w := c.w
	pct := el.Fraction() * c.alpha
	p := c.pt(-w/2, -2)
	c.draw(canvas.Rect{
		X: p.X, Y: p.Y, W: c.l(w), H: c.l(4),
		Fill: c.color("track", "track"), Radius: c.l(boxRadius), Alpha: c.alpha,
	})
	if pct > 0 {
		c.draw(canvas.Rect{
			X: p.X, Y: p.Y, W: c.l(w * pct), H: c.l(4),
			Fill: c.accent("success"), Radius: c.l(boxRadius), Alpha: c.alpha,
		})
	}
	c.text(0, 5, el.Label, 9, c.color("text", "text"), c.alpha)
	if el.ShowPercent {
		c.text(w/2+1.5, 0, fmt.Sprintf("%d%%", int(pct*100+0.5)), 8, c.color("dim", "dim"), c.alpha, align(canvas.AlignLeft))
	}
	return nil
}

func drawWeightComparison(c *ctx, el *schema.WeightComparison) error {
	w, h := c.w, c.h
	n := len(el.BeforeWeights)
	var barH float64
	if n > 0 {
		barH = h/float64(n) - 1
	}
	half := w/2 - 2
	before, after := c.color("warning", "warning"), c.color("success", "success")
	c.text(-w/4, h/2+2, orString(el.BeforeLabel, "Before"), 8, before, c.alpha, bold)
	c.text(w/4+2, h/2+2, orString(el.AfterLabel, "After"), 8, after, c.alpha, bold)
	return staggered(c, n, func(i int, a float64) {
		by := h/2 - float64(i)*(barH+1) - barH/2
		c.bar(-w/2, by-barH/2, half*el.BeforeWeights[i]*a, barH, before, a)
		if i < len(el.AfterWeights) {
			c.bar(2, by-barH/2, half*el.AfterWeights[i]*a, barH, after, a)
		}
		if i < len(el.Labels) {
			c.text(0, by, clip(el.Labels[i], 6), 6, c.color("text", "text"), a)
		}
	})
}

func drawSlider(c *ctx, el *schema.ParameterSlider) error {
	w := c.w
	pct := el.Fraction() * c.alpha
	c.text(0, 5, el.Label, 9, c.color("text", "text"), c.alpha, bold)
	p := c.pt(-w/2, -1)
	c.draw(canvas.Rect{
		X: p.X, Y: p.Y, W: c.l(w), H: c.l(2),
		Fill: c.color("track", "track"), Stroke: c.color("#555555", "dim"),
		StrokeWidth: c.lw(0.5), Radius: c.l(0.5), Alpha: c.alpha,
	})
	accent := c.accent("accent")
	if pct > 0 {
		c.draw(canvas.Rect{X: p.X, Y: p.Y, W: c.l(w * pct), H: c.l(2), Fill: accent, Radius: c.l(0.5), Alpha: c.alpha})
	}
	hx := -w/2 + w*pct
	c.circle(hx, 0, 1.5, accent, c.color("text", "text"), 1, c.alpha)
	value := el.MinValue + (el.CurrentValue-el.MinValue)*c.alpha
	c.text(0, -4, fmt.Sprintf("%.2f", value), 8, accent, c.alpha, mono)
	if el.Description != "" {
		c.text(0, -7, truncate(el.Description, 40), 6, c.color("dim", "dim"), c.alpha, italic)
	}
	return nil
}
