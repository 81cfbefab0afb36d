package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/ivlev/slideanim/internal/anim"
	"github.com/ivlev/slideanim/internal/canvas"
	"github.com/ivlev/slideanim/internal/schema"
	"github.com/ivlev/slideanim/internal/style"
)

// presetPoints converts a style preset size, given in pixels of a 1080p
// frame, to points.
func presetPoints(size float64) float64 {
	return size * canvas.PointsPerPlane / 1080
}

func drawText(c *ctx, el *schema.Text) error {
	size := el.FontSize
	colorName := "text"
	isBold := el.FontWeight == "bold"
	if p, ok := style.Preset(el.Style); ok {
		if size == 0 {
			size = presetPoints(p.Size)
		}
		colorName = p.Color
		isBold = isBold || p.Bold
	}
	if size == 0 {
		size = 14
	}
	opts := []textOpt{align(textAlign(el.Align)), valign(textVAlign(el.VAlign))}
	if isBold {
		opts = append(opts, bold)
	}
	if el.Family == "monospace" || el.Family == "mono" {
		opts = append(opts, mono)
	}
	if el.Style == "caption" {
		opts = append(opts, italic)
	}
	c.text(0, 0, el.Content, size, c.accent(colorName), c.alpha, opts...)
	return nil
}

func textAlign(ha string) canvas.Align {
	switch ha {
	case "left":
		return canvas.AlignLeft
	case "right":
		return canvas.AlignRight
	}
	return canvas.AlignCenter
}

func textVAlign(va string) canvas.VAlign {
	switch va {
	case "top":
		return canvas.VAlignTop
	case "bottom":
		return canvas.VAlignBottom
	}
	return canvas.VAlignMiddle
}

// Typed returns the visible part of content after fraction typed of it,
// by character or by word.
func Typed(content string, typed float64, byWord bool) (string, bool) {
	typed = anim.Clamp01(typed)
	if byWord {
		words := strings.Fields(content)
		n := int(float64(len(words)) * typed)
		return strings.Join(words[:n], " "), n == len(words)
	}
	runes := []rune(content)
	n := int(float64(len(runes)) * typed)
	return string(runes[:n]), n == len(runes)
}

func drawTypewriter(c *ctx, el *schema.TypewriterText) error {
	visible, done := Typed(el.Content, c.alpha*c.speed, el.Reveal == "word")
	if !done && schema.BoolOr(el.ShowCursor, true) {
		cursor := el.CursorChar
		if cursor == "" {
			cursor = "|"
		}
		visible += cursor
	}
	c.text(0, 0, visible, schema.Or(el.FontSize, 14), c.accent("text"), math.Min(1, c.alpha*2), mono)
	return nil
}

// CounterValue formats the counter at local progress p.
func CounterValue(el *schema.Counter, p float64) string {
	v := anim.Lerp(el.From, el.Value, anim.Clamp01(p))
	return el.Prefix + strconv.FormatFloat(v, 'f', el.Decimals, 64) + el.Suffix
}

func drawCounter(c *ctx, el *schema.Counter) error {
	size := schema.Or(el.FontSize, 24)
	col := c.accent("accent")
	s := CounterValue(el, c.alpha)
	if el.Glow {
		for _, r := range []float64{0.6, 0.3} {
			c.text(0, 0, s, size*(1+r*0.15), col, c.alpha*0.25, bold)
		}
	}
	c.text(0, 0, s, size, col, c.alpha, bold)
	if el.Label != "" {
		c.text(0, -c.h/2-1.5, el.Label, 9, c.color("dim", "dim"), c.alpha)
	}
	return nil
}

// codeLines draws code top-left aligned inside a w x h panel whose top
// edge is at offset top.
func codeLines(c *ctx, code string, w, h, top, size float64, numbered bool, alpha float64) {
	lines := fitLines(code, w-4, h-2, size)
	lh := lineHeight(size)
	col := c.color("secondary", "secondary")
	for i, l := range lines {
		if numbered {
			l = strconv.Itoa(i+1) + "  " + l
		}
		c.text(-w/2+2, top-1.5-float64(i)*lh, l, size, col, alpha, mono, align(canvas.AlignLeft), valign(canvas.VAlignTop))
	}
}

func drawCodeBlock(c *ctx, el *schema.CodeBlock) error {
	w, h := c.w, c.h
	c.box(0, 0, w, h, c.color("code_bg", "code_bg"), c.color("dim", "dim"), 1.5, c.alpha)
	codeLines(c, el.Code, w, h, h/2, schema.Or(el.FontSize, 9), el.LineNumbers, c.alpha)
	if el.Language != "" {
		c.text(w/2-1, h/2-1, el.Language, 6, c.color("dim", "dim"), c.alpha, align(canvas.AlignRight), valign(canvas.VAlignTop))
	}
	return nil
}

func drawCodeExecution(c *ctx, el *schema.CodeExecution) error {
	w, h := c.w, c.h
	// Code panel over the upper half, output panel below it.
	c.box(0, h/4, w, h/2, c.color("code_bg", "code_bg"), c.color("dim", "dim"), 1.5, c.alpha)
	codeLines(c, el.Code, w, h/2, h/2, 9, false, c.alpha)

	out := anim.Clamp01(2*c.alpha - 0.5)
	if out <= 0 {
		return nil
	}
	c.box(0, -0.4*h+0.175*h, w, 0.35*h, c.color("code_bg", "code_bg"), c.color("success", "success"), 1.5, out)
	c.text(-w/2+2, -0.05*h-1, ">>>", 7, c.color("success", "success"), out, mono, align(canvas.AlignLeft), valign(canvas.VAlignTop))
	for i, l := range fitLines(el.Output, w-4, 0.35*h-2, 9) {
		c.text(0, -0.25*h-float64(i)*lineHeight(9), l, 9, c.color("text", "text"), out, mono)
	}
	return nil
}
