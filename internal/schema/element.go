package schema

import "github.com/ivlev/slideanim/internal/anim"

// Element is one visual element of a step. The set of implementations is
// closed; use New or the variant structs to create one.
type Element interface {
	Kind() Kind
	// Common returns the animation and layout fields shared by all variants.
	Common() *Base
	validate(v validator)
}

// Position is a point on the 0-100 plane with y growing upwards.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Point3D is a labelled point or vector in data space.
type Point3D struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Z     float64 `json:"z" yaml:"z"`
	Color string  `json:"color,omitempty" yaml:"color,omitempty"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// Base holds the fields every element shares. Zero values select the
// defaults; they are resolved by the accessors and never written back.
type Base struct {
	ID              string      `json:"id,omitempty" yaml:"id,omitempty"`
	Position        *Position   `json:"position,omitempty" yaml:"position,omitempty"`
	Width           float64     `json:"width,omitempty" yaml:"width,omitempty"`
	Height          float64     `json:"height,omitempty" yaml:"height,omitempty"`
	Phase           anim.Phase  `json:"animation_phase,omitempty" yaml:"animation_phase,omitempty"`
	Duration        float64     `json:"duration,omitempty" yaml:"duration,omitempty"`
	Delay           float64     `json:"delay,omitempty" yaml:"delay,omitempty"`
	Speed           float64     `json:"speed,omitempty" yaml:"speed,omitempty"`
	Easing          anim.Easing `json:"easing,omitempty" yaml:"easing,omitempty"`
	Entry           anim.Entry  `json:"entry_animation,omitempty" yaml:"entry_animation,omitempty"`
	EntryDistance   float64     `json:"entry_distance,omitempty" yaml:"entry_distance,omitempty"`
	Effect          anim.Effect `json:"continuous_effect,omitempty" yaml:"continuous_effect,omitempty"`
	EffectFrequency float64     `json:"effect_frequency,omitempty" yaml:"effect_frequency,omitempty"`
	Stagger         *bool       `json:"stagger,omitempty" yaml:"stagger,omitempty"`
	Color           string      `json:"color,omitempty" yaml:"color,omitempty"`
}

func (b *Base) Common() *Base { return b }

// Anchor returns the element position, (50,50) when unset.
func (b *Base) Anchor() Position {
	if b.Position == nil {
		return Position{X: 50, Y: 50}
	}
	return *b.Position
}

// Size returns width and height, falling back to the defaults of kind.
func (b *Base) Size(kind Kind) (w, h float64) {
	w, h = DefaultSize(kind)
	if b.Width > 0 {
		w = b.Width
	}
	if b.Height > 0 {
		h = b.Height
	}
	return w, h
}

func (b *Base) AnimationPhase() anim.Phase {
	if b.Phase == "" {
		return anim.Early
	}
	return b.Phase
}

func (b *Base) AnimationDuration() float64 {
	if b.Duration == 0 {
		return 1
	}
	return b.Duration
}

func (b *Base) AnimationSpeed() float64 {
	if b.Speed == 0 {
		return 1
	}
	return b.Speed
}

func (b *Base) EntryOffsetDistance() float64 {
	if b.EntryDistance == 0 {
		return anim.DefaultEntryDistance
	}
	return b.EntryDistance
}

func (b *Base) Frequency() float64 {
	if b.EffectFrequency == 0 {
		return 1
	}
	return b.EffectFrequency
}

// Staggered reports whether items of kind reveal one after another.
func (b *Base) Staggered(kind Kind) bool {
	if b.Stagger == nil {
		return StaggerDefault(kind)
	}
	return *b.Stagger
}

// Bool returns a pointer to v, for optional flags in literals.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v, for optional numbers in literals.
func Float(v float64) *float64 { return &v }

// BoolOr dereferences p or returns def.
func BoolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// FloatOr dereferences p or returns def.
func FloatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Or returns v when positive, def otherwise.
func Or(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
