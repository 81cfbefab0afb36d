package effects

import (
	"fmt"

	"github.com/ivlev/slideanim/internal/canvas"
)

// Kind names a step transition.
type Kind string

const (
	None       Kind = "none"
	Fade       Kind = "fade"
	SlideLeft  Kind = "slide_left"
	SlideRight Kind = "slide_right"
	SlideUp    Kind = "slide_up"
	SlideDown  Kind = "slide_down"
	Zoom       Kind = "zoom"
)

// Transition maps transition progress in [0,1] to a frame transform. At 1
// every transition is the identity.
type Transition interface {
	Transform(progress float64) canvas.Transform
}

type NoTransition struct{}

func (NoTransition) Transform(float64) canvas.Transform {
	return canvas.Identity()
}

// FadeTransition fades the incoming step in from the background.
type FadeTransition struct{}

func (FadeTransition) Transform(q float64) canvas.Transform {
	t := canvas.Identity()
	t.Alpha = clamp(q)
	return t
}

// SlideTransition moves the incoming step in from an offset of one plane
// width or height.
type SlideTransition struct {
	FromX, FromY float64
}

func (s SlideTransition) Transform(q float64) canvas.Transform {
	rest := 1 - clamp(q)
	t := canvas.Identity()
	t.DX = s.FromX * rest
	t.DY = s.FromY * rest
	return t
}

// ZoomTransition grows the incoming step from the center of the plane.
type ZoomTransition struct{}

func (ZoomTransition) Transform(q float64) canvas.Transform {
	q = clamp(q)
	return canvas.Transform{Alpha: q, Scale: q}
}

// NewTransition creates the transition for kind. The empty kind means none.
func NewTransition(kind Kind) (Transition, error) {
	switch kind {
	case None, "":
		return NoTransition{}, nil
	case Fade:
		return FadeTransition{}, nil
	case SlideLeft:
		return SlideTransition{FromX: 100}, nil
	case SlideRight:
		return SlideTransition{FromX: -100}, nil
	case SlideUp:
		return SlideTransition{FromY: -100}, nil
	case SlideDown:
		return SlideTransition{FromY: 100}, nil
	case Zoom:
		return ZoomTransition{}, nil
	default:
		return nil, fmt.Errorf("unknown transition: %s", kind)
	}
}

// Kinds lists the supported transitions.
func Kinds() []Kind {
	return []Kind{None, Fade, SlideLeft, SlideRight, SlideUp, SlideDown, Zoom}
}

func (k Kind) Valid() bool {
	_, err := NewTransition(k)
	return err == nil
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
