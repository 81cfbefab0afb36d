package canvas

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformPoint(t *testing.T) {
	tr := Transform{Alpha: 1, Scale: 0.5, DX: 10}
	got := tr.Point(Point{X: 100, Y: 0})
	assert.InDelta(t, 85, got.X, 1e-9)
	assert.InDelta(t, 25, got.Y, 1e-9)

	moved := tr.Then(Identity()).Point(Center)
	assert.InDelta(t, 60, moved.X, 1e-9)
}

func TestTransformThen(t *testing.T) {
	a := Transform{Alpha: 0.5, Scale: 2, DX: 1, DY: 2}
	b := Transform{Alpha: 0.5, Scale: 0.5, DX: 3, DY: 0}
	p := Point{X: 20, Y: 70}

	want := b.Point(a.Point(p))
	got := a.Then(b).Point(p)
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
	assert.InDelta(t, 0.25, a.Then(b).Alpha, 1e-9)
}

func TestFrameRecords(t *testing.T) {
	f := NewFrame(color.NRGBA{A: 255})
	assert.True(t, f.Transform.IsIdentity())

	f.Draw(Rect{W: 1, H: 1, Alpha: 1})
	f.Draw(Text{Content: "hi", Alpha: 1})
	f.Apply(Transform{Alpha: 0.5, Scale: 1})

	assert.Equal(t, 2, f.Len())
	assert.InDelta(t, 0.5, f.Transform.Alpha, 1e-9)
}

func TestFrameClear(t *testing.T) {
	f := NewFrame(color.NRGBA{A: 255})
	f.Draw(Circle{R: 1, Alpha: 1})
	f.Apply(Transform{Alpha: 0.2, Scale: 3})

	bg := color.NRGBA{R: 10, G: 10, B: 10, A: 255}
	f.Clear(bg)
	assert.Equal(t, 0, f.Len())
	assert.Equal(t, bg, f.Background)
	assert.True(t, f.Transform.IsIdentity())
}
