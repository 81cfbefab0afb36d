package render

import (
	"errors"

	"github.com/ivlev/slideanim/internal/anim"
	"github.com/ivlev/slideanim/internal/canvas"
	"github.com/ivlev/slideanim/internal/schema"
)

// RenderLanding clears dst and draws the landing page of p. Title, subtitle,
// tagline, welcome message and footer reveal one phase after another.
func (e *Engine) RenderLanding(dst canvas.Surface, p *schema.Presentation, progress float64) error {
	if p == nil {
		return errors.New("render: nil presentation")
	}
	progress = anim.Clamp01(progress)
	l := p.Landing
	accent := e.theme.ColorOr(l.PrimaryColor, "primary")
	title := l.Title
	if title == "" {
		title = p.DisplayTitle()
	}

	reveal := func(ph anim.Phase) float64 {
		a, _ := anim.ResolveLocalProgress(progress, ph, 0, 1, anim.EaseOutCubic)
		return a
	}
	text := func(y float64, s string, size float64, name string, a float64, bold, italic bool) {
		if s == "" || a <= 0 {
			return
		}
		c := accent
		if name != "" {
			c = e.theme.Color(name)
		}
		dst.Draw(canvas.Text{
			Pos:     canvas.Point{X: 50, Y: y},
			Content: s,
			Size:    size,
			Color:   c,
			Alpha:   a,
			Bold:    bold,
			Italic:  italic,
		})
	}

	dst.Clear(e.theme.Color("bg"))

	a := reveal(anim.Immediate)
	text(62-(1-a)*4, title, 28, "", a, true, false)
	if a > 0 {
		if l.IconLeft != "" {
			dst.Draw(canvas.Text{Pos: canvas.Point{X: 14, Y: 62}, Content: l.IconLeft, Size: 28, Color: accent, Alpha: a})
		}
		if l.IconRight != "" {
			dst.Draw(canvas.Text{Pos: canvas.Point{X: 86, Y: 62}, Content: l.IconRight, Size: 28, Color: accent, Alpha: a})
		}
		half := 22 * a
		dst.Draw(canvas.Line{
			Points: []canvas.Point{{X: 50 - half, Y: 55}, {X: 50 + half, Y: 55}},
			Color:  accent,
			Width:  0.4,
			Alpha:  a,
		})
	}
	text(50, l.Subtitle, 16, "text", reveal(anim.Early), false, false)
	text(44, l.Tagline, 12, "dim", reveal(anim.Middle), false, true)
	text(30, l.WelcomeMessage, 11, "secondary", reveal(anim.Late), false, false)
	text(8, l.Footer, 9, "dim", reveal(anim.Final), false, false)
	if p.Author != "" {
		text(4, p.Author, 7, "dim", reveal(anim.Final), false, true)
	}
	return nil
}
