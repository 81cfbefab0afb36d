package render

import (
	"github.com/ivlev/slideanim/internal/canvas"
	"github.com/ivlev/slideanim/internal/schema"
)

// flowColors cycle over flow steps without an explicit color.
var flowColors = []string{"warning", "primary", "success", "accent"}

// staggered calls fn for every item with its alpha, skipping hidden items.
func staggered(c *ctx, n int, fn func(i int, a float64)) error {
	if n == 0 {
		_, err := c.item(0, 0)
		return err
	}
	for i := 0; i < n; i++ {
		a, err := c.item(i, n)
		if err != nil {
			return err
		}
		if a > 0 {
			fn(i, a)
		}
	}
	return nil
}

func drawBulletList(c *ctx, el *schema.BulletList) error {
	items := el.Items
	bullet := el.Bullet
	if bullet == "" {
		bullet = "•"
	}
	spacing := schema.Or(el.Spacing, 5)
	size := schema.Or(el.FontSize, 10)
	col := c.accent("text")
	return staggered(c, len(items), func(i int, a float64) {
		y := c.h/2 - 1 - float64(i)*spacing
		c.text(-c.w/2+0.5, y, bullet+" "+items[i], size, col, a, align(canvas.AlignLeft))
	})
}

func drawChecklist(c *ctx, el *schema.Checklist) error {
	items := el.Items
	spacing := schema.Or(el.Spacing, 5)
	size := schema.Or(el.FontSize, 10)
	check := c.color(el.CheckColor, "success")
	return staggered(c, len(items), func(i int, a float64) {
		y := c.h/2 - 1.5 - float64(i)*spacing
		x := -c.w/2 + 0.5
		if el.Checked(i) {
			c.bar(x, y-1.5, 3, 3, check, a)
			c.text(x+1.5, y, "v", 7, c.color("bg", "bg"), a, bold)
		} else {
			p := c.pt(x, y-1.5)
			c.draw(canvas.Rect{
				X: p.X, Y: p.Y, W: c.l(3), H: c.l(3),
				Stroke: c.color("dim", "dim"), StrokeWidth: c.lw(1), Alpha: a,
			})
		}
		c.text(x+5, y, items[i], size, c.accent("text"), a, align(canvas.AlignLeft))
	})
}

func drawTimeline(c *ctx, el *schema.Timeline) error {
	w := c.w
	n := len(el.Events)
	c.line(c.pt(-w/2, 0), c.pt(w/2, 0), c.color(el.LineColor, "dim"), 2, c.alpha)
	return staggered(c, n, func(i int, a float64) {
		ev := el.Events[i]
		ex := -w/2 + (float64(i)+0.5)*w/float64(n)
		col := c.color(ev.Color, "primary")
		c.circle(ex, 0, 1.5, col, c.color("text", "text"), 1, a)
		c.text(ex, 4, truncate(ev.Title, 18), 7, c.color("text", "text"), a, bold)
		c.text(ex, -4, ev.Date, 6, c.color("dim", "dim"), a)
		if ev.Description != "" {
			c.text(ex, -6.5, truncate(ev.Description, 22), 5, c.color("dim", "dim"), a, italic)
		}
	})
}

func drawFlow(c *ctx, el *schema.Flow) error {
	w := c.w
	n := len(el.Steps)
	var stepW float64
	if n > 0 {
		stepW = w/float64(n) - 3
	}
	const stepH = 12
	return staggered(c, n, func(i int, a float64) {
		s := el.Steps[i]
		sx := -w/2 + float64(i)*(stepW+3) + stepW/2
		col := c.color(s.Color, flowColors[i%len(flowColors)])
		c.box(sx, 0, stepW, stepH, c.color("bg_light", "bg_light"), col, 2, a)
		c.text(sx, 1, truncate(s.Title, 14), 9, col, a, bold)
		c.text(sx, -3, truncate(s.Subtitle, 16), 7, c.color("dim", "dim"), a)
		if i < n-1 {
			from := c.pt(sx+stepW/2+0.5, 0)
			to := c.pt(sx+stepW/2+2.5, 0)
			c.arrow([]canvas.Point{from, to}, c.color("dim", "dim"), 1.5, a, canvas.HeadTriangle)
		}
	})
}

func drawGrid(c *ctx, el *schema.Grid) error {
	cols, rows := el.Dims()
	w, h := c.w, c.h
	cellW := schema.Or(el.CellWidth, w/float64(cols)-2)
	cellH := schema.Or(el.CellHeight, h/float64(rows)-2)
	if len(el.Items) == 0 {
		return nil
	}
	return staggered(c, len(el.Items), func(i int, a float64) {
		item := el.Items[i]
		r, col := i/cols, i%cols
		cx := -w/2 + float64(col)*(cellW+2) + cellW/2 + 1
		cy := h/2 - float64(r)*(cellH+2) - cellH/2 - 1
		edge := c.color(item.Color, "primary")
		c.box(cx, cy, cellW, cellH, c.color("bg_light", "bg_light"), edge, 1.5, a)
		c.text(cx, cy+2, truncate(item.Title, 16), 8, edge, a, bold)
		c.text(cx, cy-2, truncate(item.Description, 22), 7, c.color("text", "text"), a)
	})
}

func drawStackedBoxes(c *ctx, el *schema.StackedBoxes) error {
	n := len(el.Items)
	base := schema.Or(el.BaseWidth, c.w)
	boxH := schema.Or(el.BoxHeight, 10)
	dec := schema.FloatOr(el.WidthDecrease, 4)
	spacing := schema.Or(el.Spacing, 12)
	return staggered(c, n, func(i int, a float64) {
		item := el.Items[i]
		bw := base - float64(i)*dec
		if bw < 2 {
			bw = 2
		}
		by := (float64(n)/2 - float64(i) - 0.5) * spacing
		col := c.color(item.Color, flowColors[(i+1)%len(flowColors)])
		c.box(0, by, bw, boxH, c.color("bg_light", "bg_light"), col, 2, a)
		c.text(0, by+1, item.Title, 10, col, a, bold)
		c.text(0, by-2.5, truncate(item.Description, 40), 7, c.color("text", "text"), a)
	})
}
