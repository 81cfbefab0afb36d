package canvas

import "image/color"

// Center of the plane; frame transforms scale around it.
var Center = Point{X: 50, Y: 50}

// Transform is a frame-level alpha, uniform scale about Center and
// translation in plane units.
type Transform struct {
	Alpha  float64
	Scale  float64
	DX, DY float64
}

// Identity leaves a frame untouched.
func Identity() Transform {
	return Transform{Alpha: 1, Scale: 1}
}

// IsIdentity reports whether t changes nothing.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// Then returns the transform that applies t first and o second.
func (t Transform) Then(o Transform) Transform {
	return Transform{
		Alpha: t.Alpha * o.Alpha,
		Scale: t.Scale * o.Scale,
		DX:    t.DX*o.Scale + o.DX,
		DY:    t.DY*o.Scale + o.DY,
	}
}

// Point maps a plane position through t.
func (t Transform) Point(p Point) Point {
	return Point{
		X: Center.X + (p.X-Center.X)*t.Scale + t.DX,
		Y: Center.Y + (p.Y-Center.Y)*t.Scale + t.DY,
	}
}

// Frame records the primitives of one rendered frame in draw order.
type Frame struct {
	Background color.NRGBA
	Shapes     []Shape
	Transform  Transform
}

// NewFrame returns an empty frame with the identity transform.
func NewFrame(bg color.NRGBA) *Frame {
	return &Frame{Background: bg, Transform: Identity()}
}

func (f *Frame) Clear(bg color.NRGBA) {
	f.Background = bg
	f.Shapes = f.Shapes[:0]
	f.Transform = Identity()
}

func (f *Frame) Draw(s Shape) {
	f.Shapes = append(f.Shapes, s)
}

func (f *Frame) Apply(t Transform) {
	f.Transform = f.Transform.Then(t)
}

// Len returns the number of recorded primitives.
func (f *Frame) Len() int {
	return len(f.Shapes)
}
