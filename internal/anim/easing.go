package anim

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// Easing names a remapping of linear progress in [0,1].
type Easing string

const (
	Linear       Easing = "linear"
	EaseIn       Easing = "ease_in"
	EaseOut      Easing = "ease_out"
	EaseInOut    Easing = "ease_in_out"
	EaseInCubic  Easing = "ease_in_cubic"
	EaseOutCubic Easing = "ease_out_cubic"
	ElasticOut   Easing = "elastic_out"
	BounceOut    Easing = "bounce_out"
)

// DefaultEasing is used when an element does not name one.
const DefaultEasing = EaseInOut

// Func maps t in [0,1] to eased progress.
type Func func(t float64) float64

var easings = map[Easing]Func{
	Linear:       func(t float64) float64 { return t },
	EaseIn:       fromTween(ease.InQuad),
	EaseOut:      fromTween(ease.OutQuad),
	EaseInOut:    smoothstep,
	EaseInCubic:  fromTween(ease.InCubic),
	EaseOutCubic: fromTween(ease.OutCubic),
	ElasticOut:   fromTween(ease.OutElastic),
	BounceOut:    fromTween(ease.OutBounce),
}

// Easings lists every known easing name in a stable order.
func Easings() []Easing {
	return []Easing{Linear, EaseIn, EaseOut, EaseInOut, EaseInCubic, EaseOutCubic, ElasticOut, BounceOut}
}

// Valid reports whether e names a known easing. The empty name is valid and
// resolves to DefaultEasing.
func (e Easing) Valid() bool {
	if e == "" {
		return true
	}
	_, ok := easings[e]
	return ok
}

// Lookup returns the easing function for e.
func Lookup(e Easing) (Func, error) {
	if e == "" {
		e = DefaultEasing
	}
	fn, ok := easings[e]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", e)
	}
	return fn, nil
}

// Monotonic reports whether the easing never decreases. elastic_out and
// bounce_out oscillate around 1 and are not.
func (e Easing) Monotonic() bool {
	return e != ElasticOut && e != BounceOut
}

// fromTween adapts a gween tween function to the unit interval.
func fromTween(fn ease.TweenFunc) Func {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// smoothstep is the ease_in_out curve used by the designer preview.
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
