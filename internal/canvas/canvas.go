// Package canvas defines the drawing primitives produced by the renderer.
//
// Coordinates live on a 0-100 plane in both axes with y growing upwards.
// Backends map the plane onto a centered square viewport whose side is the
// shorter output dimension, so circles stay round. Radii and stroke widths
// are plane units; font sizes are points, with PointsPerPlane points
// spanning the viewport side.
package canvas

import (
	"image"
	"image/color"
)

// PointsPerPlane is the number of font points across the viewport side.
const PointsPerPlane = 540.0

// PointUnit converts points to plane units.
const PointUnit = 100.0 / PointsPerPlane

// Point is a position on the plane.
type Point struct {
	X, Y float64
}

// Align is the horizontal anchor of a text run.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// VAlign is the vertical anchor of a text run.
type VAlign int

const (
	VAlignMiddle VAlign = iota
	VAlignTop
	VAlignBottom
)

// Shape is one drawing primitive.
type Shape interface {
	isShape()
}

// Rect is an axis-aligned rectangle anchored at its lower-left corner.
type Rect struct {
	X, Y, W, H  float64
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
	Radius      float64
	Alpha       float64
	Dashed      bool
}

// Circle is a disc, optionally outlined.
type Circle struct {
	Center      Point
	R           float64
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
	Alpha       float64
}

// Wedge is a filled circular sector between two angles in degrees,
// counter-clockwise from the positive x axis. Inner > 0 makes it a ring
// segment.
type Wedge struct {
	Center   Point
	R, Inner float64
	From, To float64
	Fill     color.NRGBA
	Alpha    float64
}

// Line is an open polyline.
type Line struct {
	Points []Point
	Color  color.NRGBA
	Width  float64
	Alpha  float64
	Dashed bool
}

// Arrow is a polyline ending in an arrow head.
type Arrow struct {
	Points   []Point
	Color    color.NRGBA
	Width    float64
	HeadSize float64
	Head     HeadStyle
	Alpha    float64
	Dashed   bool
}

// HeadStyle selects the decoration at the end of an arrow.
type HeadStyle int

const (
	HeadTriangle HeadStyle = iota
	HeadCircle
	HeadDiamond
	HeadNone
)

// Polygon is a closed filled path.
type Polygon struct {
	Points      []Point
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
	Alpha       float64
}

// Text is a single or multi-line run of text.
type Text struct {
	Pos     Point
	Content string
	Size    float64
	Color   color.NRGBA
	Alpha   float64
	Align   Align
	VAlign  VAlign
	Bold    bool
	Italic  bool
	Mono    bool
}

// Image draws a preloaded asset into a box anchored at its lower-left corner.
type Image struct {
	X, Y, W, H  float64
	Src         string
	Alpha       float64
	Border      color.NRGBA
	BorderWidth float64
}

func (Rect) isShape()    {}
func (Circle) isShape()  {}
func (Wedge) isShape()   {}
func (Line) isShape()    {}
func (Arrow) isShape()   {}
func (Polygon) isShape() {}
func (Text) isShape()    {}
func (Image) isShape()   {}

// Assets resolves the sources of Image primitives for backends.
type Assets interface {
	Image(src string) (image.Image, bool)
}

// Surface receives primitives from the renderer.
type Surface interface {
	// Clear starts a new frame on a solid background.
	Clear(bg color.NRGBA)
	Draw(s Shape)
	// Apply composes a frame-level transform over everything drawn.
	Apply(t Transform)
}

// Visible reports whether c contributes to the output.
func Visible(c color.NRGBA, alpha float64) bool {
	return c.A > 0 && alpha > 0
}
