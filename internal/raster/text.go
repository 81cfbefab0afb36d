package raster

import (
	"image"
	"image/color"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/slideanim/internal/canvas"
)

var face = basicfont.Face7x13

// glyphHeight is the native line height of face in pixels.
const glyphHeight = 13

// italicShear slants glyphs by this fraction of their height.
const italicShear = 0.2

// The bitmap face only covers printable ASCII.
var asciiReplacer = strings.NewReplacer(
	"•", "*", "●", "o", "○", "o", "…", "...", "→", "->", "←", "<-",
	"↑", "^", "↓", "v", "✓", "v", "✔", "v", "✗", "x", "✘", "x",
	"—", "-", "–", "-", "“", "\"", "”", "\"", "‘", "'", "’", "'",
	"×", "x", "·", ".", "▶", ">", "°", "o", "≈", "~", "≤", "<=", "≥", ">=",
)

// ASCII returns s with characters outside the bitmap face substituted.
func ASCII(s string) string {
	s = asciiReplacer.Replace(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if r < 0x20 || r > 0x7e {
			return '?'
		}
		return r
	}, s)
}

// glyphMask renders one line at native size.
func glyphMask(line string, bold bool) *image.Alpha {
	w := font.MeasureString(face, line).Ceil()
	if bold {
		w++
	}
	mask := image.NewAlpha(image.Rect(0, 0, max(w, 1), glyphHeight))
	d := &font.Drawer{Dst: mask, Src: image.Opaque, Face: face, Dot: fixed.P(0, face.Ascent)}
	d.DrawString(line)
	if bold {
		d.Dot = fixed.P(1, face.Ascent)
		d.DrawString(line)
	}
	return mask
}

// tint turns a coverage mask into a colored image.
func tint(mask *image.Alpha, c color.NRGBA, alpha float64) *image.NRGBA {
	img := image.NewNRGBA(mask.Rect)
	for i, a := range mask.Pix {
		if a == 0 {
			continue
		}
		j := i * 4
		img.Pix[j], img.Pix[j+1], img.Pix[j+2] = c.R, c.G, c.B
		img.Pix[j+3] = uint8(math.Round(float64(a) * float64(c.A) / 255 * alpha))
	}
	return img
}

func (p *painter) text(t canvas.Text) {
	alpha := math.Min(1, t.Alpha*p.tr.Alpha)
	if !canvas.Visible(t.Color, alpha) || t.Content == "" {
		return
	}
	px := p.size(t.Size * canvas.PointUnit)
	if px < 2 {
		return
	}
	k := px / glyphHeight
	advance := px * 1.4
	lines := strings.Split(ASCII(t.Content), "\n")

	anchor := p.pt(t.Pos)
	block := float64(len(lines)-1)*advance + px
	top := anchor.y - block/2
	switch t.VAlign {
	case canvas.VAlignTop:
		top = anchor.y
	case canvas.VAlignBottom:
		top = anchor.y - block
	}

	shear := 0.0
	if t.Italic {
		shear = italicShear * k
	}
	for i, line := range lines {
		if line == "" {
			continue
		}
		mask := glyphMask(line, t.Bold)
		w := k * float64(mask.Rect.Dx())
		left := anchor.x - w/2
		switch t.Align {
		case canvas.AlignLeft:
			left = anchor.x
		case canvas.AlignRight:
			left = anchor.x - w
		}
		y := top + float64(i)*advance
		s2d := f64.Aff3{k, -shear, left + shear*glyphHeight/2, 0, k, y}
		xdraw.BiLinear.Transform(p.dst, s2d, tint(mask, t.Color, alpha), mask.Rect, xdraw.Over, nil)
	}
}
