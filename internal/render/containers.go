package render

import (
	"math"

	"github.com/ivlev/slideanim/internal/canvas"
	"github.com/ivlev/slideanim/internal/schema"
)

func drawBox(c *ctx, el *schema.Box) error {
	w, h := c.w, c.h
	edge := c.accent("primary")
	if el.BorderColor != "" {
		edge = c.color(el.BorderColor, "primary")
	}
	c.box(0, 0, w, h, c.color(el.FillColor, "bg_light"), edge, 2, c.alpha)

	title := el.Title
	if el.Icon != "" {
		title = el.Icon + " " + title
	}
	c.text(0, h/4, title, 11, edge, c.alpha, bold)
	for i, l := range fitLines(el.Content, w-2, h/2, 9) {
		c.text(0, -h/6-float64(i)*lineHeight(9), l, 9, c.color("text", "text"), c.alpha)
	}
	return nil
}

func drawComparison(c *ctx, el *schema.Comparison) error {
	w, h := c.w, c.h
	half := w/2 - 2
	sides := []struct {
		ox             float64
		title, content string
		col            string
		def            string
	}{
		{-w/4 - 1, el.LeftTitle, el.LeftContent, el.LeftColor, "warning"},
		{w/4 + 1, el.RightTitle, el.RightContent, el.RightColor, "success"},
	}
	for _, s := range sides {
		edge := c.color(s.col, s.def)
		c.box(s.ox, 0, half, h, c.color("bg_light", "bg_light"), edge, 2, c.alpha)
		c.text(s.ox, h/4, s.title, 11, edge, c.alpha, bold)
		for i, l := range fitLines(s.content, half-2, h/2, 9) {
			c.text(s.ox, -h/8-float64(i)*lineHeight(9), l, 9, c.color("text", "text"), c.alpha)
		}
	}
	c.text(0, 0, "vs", 9, c.color("dim", "dim"), c.alpha, bold)
	return nil
}

func drawConversation(c *ctx, el *schema.Conversation) error {
	w, h := c.w, c.h
	msgs := el.Messages
	n := len(msgs)
	var msgH float64
	if n > 0 {
		msgH = math.Min(h/float64(n)-2, 10)
	}
	msgW := 0.7 * w
	return staggered(c, n, func(i int, a float64) {
		m := msgs[i]
		my := h/2 - float64(i)*(msgH+2) - msgH/2 - 1
		mx := w/2 - msgW/2 - 2
		name := m.Name
		col := c.color(el.AssistantColor, "primary")
		if m.IsUser() {
			mx = -mx
			col = c.color(el.UserColor, "accent")
			if name == "" {
				name = "User"
			}
		} else if name == "" {
			name = "Assistant"
		}
		c.box(mx, my, msgW, msgH, col, col, 1, 0.4*a)
		c.text(mx-msgW/2+1.5, my+msgH/2-1, name, 6, col, a, bold, align(canvas.AlignLeft), valign(canvas.VAlignTop))
		c.text(mx, my-1, truncate(m.Content, 40), 8, c.color("text", "text"), a)
	})
}

func drawImage(c *ctx, el *schema.Image) error {
	w, h := c.w, c.h
	if el.Shadow {
		c.bar(-w/2+0.8, -h/2-0.8, w, h, c.color("#000000", "bg"), 0.4*c.alpha)
	}
	p := c.pt(-w/2, -h/2)
	img := canvas.Image{X: p.X, Y: p.Y, W: c.l(w), H: c.l(h), Src: el.Src, Alpha: c.alpha}
	if el.Border {
		img.Border = c.accent("dim")
		img.BorderWidth = c.lw(1.5)
	}
	c.draw(img)
	if el.Caption != "" {
		c.text(0, -h/2-2.5, el.Caption, 8, c.color("dim", "dim"), c.alpha, italic)
	}
	return nil
}
