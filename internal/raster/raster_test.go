package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/slideanim/internal/canvas"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func rgba(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

type assetMap map[string]image.Image

func (m assetMap) Image(src string) (image.Image, bool) {
	img, ok := m[src]
	return img, ok
}

func frame(shapes ...canvas.Shape) *canvas.Frame {
	f := canvas.NewFrame(white)
	for _, s := range shapes {
		f.Draw(s)
	}
	return f
}

func TestBackground(t *testing.T) {
	img := New(8, 4, nil).Render(frame())
	require.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, rgba(white), img.RGBAAt(x, y))
		}
	}
}

func TestRectFillPlaneOrientation(t *testing.T) {
	img := New(100, 100, nil).Render(frame(canvas.Rect{X: 10, Y: 10, W: 30, H: 30, Fill: red, Alpha: 1}))
	// y grows upwards on the plane, so the rect sits in the lower-left.
	assert.Equal(t, rgba(red), img.RGBAAt(25, 75))
	assert.Equal(t, rgba(white), img.RGBAAt(25, 25))
	assert.Equal(t, rgba(white), img.RGBAAt(75, 75))
}

func TestSquareViewport(t *testing.T) {
	img := New(200, 100, nil).Render(frame(canvas.Rect{X: 0, Y: 0, W: 100, H: 100, Fill: black, Alpha: 1}))
	assert.Equal(t, rgba(white), img.RGBAAt(10, 50))
	assert.Equal(t, rgba(black), img.RGBAAt(100, 50))
	assert.Equal(t, rgba(white), img.RGBAAt(190, 50))
}

func TestTransformAlphaHidesShapes(t *testing.T) {
	f := frame(canvas.Rect{X: 0, Y: 0, W: 100, H: 100, Fill: black, Alpha: 1})
	f.Apply(canvas.Transform{Alpha: 0, Scale: 1})
	img := New(20, 20, nil).Render(f)
	assert.Equal(t, rgba(white), img.RGBAAt(10, 10))
}

func TestTransformTranslate(t *testing.T) {
	f := frame(canvas.Rect{X: 0, Y: 0, W: 50, H: 100, Fill: black, Alpha: 1})
	f.Apply(canvas.Transform{Alpha: 1, Scale: 1, DX: 50})
	img := New(100, 100, nil).Render(f)
	assert.Equal(t, rgba(white), img.RGBAAt(25, 50))
	assert.Equal(t, rgba(black), img.RGBAAt(75, 50))
}

func TestCircleStrokeIsRing(t *testing.T) {
	img := New(100, 100, nil).Render(frame(canvas.Circle{
		Center: canvas.Point{X: 50, Y: 50}, R: 30, Stroke: red, StrokeWidth: 4, Alpha: 1,
	}))
	assert.Equal(t, rgba(white), img.RGBAAt(50, 50))
	assert.Equal(t, rgba(red), img.RGBAAt(80, 50))
}

func TestWedgeQuadrant(t *testing.T) {
	img := New(100, 100, nil).Render(frame(canvas.Wedge{
		Center: canvas.Point{X: 50, Y: 50}, R: 40, From: 0, To: 90, Fill: red, Alpha: 1,
	}))
	assert.Equal(t, rgba(red), img.RGBAAt(65, 35))
	assert.Equal(t, rgba(white), img.RGBAAt(35, 65))
	assert.Equal(t, rgba(white), img.RGBAAt(35, 35))
}

func TestLineAndArrow(t *testing.T) {
	img := New(100, 100, nil).Render(frame(
		canvas.Line{Points: []canvas.Point{{X: 10, Y: 80}, {X: 90, Y: 80}}, Color: black, Width: 2, Alpha: 1},
		canvas.Arrow{Points: []canvas.Point{{X: 10, Y: 20}, {X: 90, Y: 20}}, Color: red, Width: 2, HeadSize: 8, Alpha: 1},
	))
	assert.Equal(t, rgba(black), img.RGBAAt(50, 20))
	assert.Equal(t, rgba(red), img.RGBAAt(50, 80))
	assert.Equal(t, rgba(white), img.RGBAAt(50, 50))
}

func TestDashes(t *testing.T) {
	runs := dashes([]vec{{0, 0}, {50, 0}, {100, 0}}, 10, 10)
	require.Len(t, runs, 5)
	for _, run := range runs {
		first, last := run[0], run[len(run)-1]
		assert.InDelta(t, 10, last.x-first.x, 1e-9)
	}
}

func TestText(t *testing.T) {
	r := New(540, 540, nil)
	img := r.Render(frame(canvas.Text{
		Pos: canvas.Point{X: 50, Y: 50}, Content: "HI", Size: 26, Color: black, Alpha: 1, Align: canvas.AlignLeft,
	}))
	inked := 0
	for y := 0; y < 540; y++ {
		for x := 0; x < 540; x++ {
			if img.RGBAAt(x, y) != rgba(white) {
				inked++
				assert.GreaterOrEqual(t, x, 269)
				assert.InDelta(t, 270, y, 20)
			}
		}
	}
	assert.Greater(t, inked, 0)
}

func TestASCII(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"• item", "* item"},
		{"a → b", "a -> b"},
		{"wait…", "wait..."},
		{"two\nlines", "two\nlines"},
		{"привет", "??????"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ASCII(tt.in))
		})
	}
}

func TestImageAsset(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+3] = 255, 255
	}
	r := New(100, 100, assetMap{"logo.png": src})

	img := r.Render(frame(canvas.Image{X: 20, Y: 20, W: 60, H: 60, Src: "logo.png", Alpha: 1}))
	assert.Equal(t, rgba(red), img.RGBAAt(50, 50))

	img = r.Render(frame(canvas.Image{X: 20, Y: 20, W: 60, H: 60, Src: "missing.png", Alpha: 1}))
	assert.Equal(t, rgba(white), img.RGBAAt(50, 50))
}
