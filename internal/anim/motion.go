package anim

import (
	"fmt"
	"math"
)

// Effect is a periodic size modulation applied after an element is revealed.
type Effect string

const (
	NoEffect  Effect = "none"
	Pulse     Effect = "pulse"
	Breathing Effect = "breathing"
)

func (e Effect) Valid() bool {
	switch e {
	case "", NoEffect, Pulse, Breathing:
		return true
	}
	return false
}

func (e Effect) amplitude() float64 {
	switch e {
	case Pulse:
		return 0.10
	case Breathing:
		return 0.05
	}
	return 0
}

// EffectScale returns the size multiplier of a continuous effect. It stays 1
// until the element is fully revealed.
func EffectScale(effect Effect, frequency, local, stepProgress float64) float64 {
	if local < 1 {
		return 1
	}
	a := effect.amplitude()
	if a == 0 {
		return 1
	}
	return 1 + a*math.Sin(2*math.Pi*frequency*stepProgress)
}

// Entry is the direction an element slides in from.
type Entry string

const (
	NoEntry    Entry = "none"
	FromLeft   Entry = "left"
	FromRight  Entry = "right"
	FromTop    Entry = "top"
	FromBottom Entry = "bottom"
	ZoomIn     Entry = "zoom"
)

// DefaultEntryDistance is the slide distance in plane units.
const DefaultEntryDistance = 15.0

func (e Entry) Valid() bool {
	switch e {
	case "", NoEntry, FromLeft, FromRight, FromTop, FromBottom, ZoomIn:
		return true
	}
	return false
}

// EntryOffset returns the position offset and size multiplier for an entry
// animation at local progress p. The plane has y growing upwards, so an
// element entering from the top starts above its anchor.
func EntryOffset(entry Entry, distance, p float64) (dx, dy, scale float64) {
	rest := (1 - Clamp01(p)) * distance
	switch entry {
	case FromLeft:
		return -rest, 0, 1
	case FromRight:
		return rest, 0, 1
	case FromTop:
		return 0, rest, 1
	case FromBottom:
		return 0, -rest, 1
	case ZoomIn:
		return 0, 0, Clamp01(p)
	}
	return 0, 0, 1
}

// StaggerAlpha returns the alpha of item i out of n. With stagger every item
// owns an equal slice of progress: it becomes visible once p > i/n and fully
// visible once p >= (i+1)/n.
func StaggerAlpha(p float64, i, n int, stagger bool) (float64, error) {
	if !stagger {
		return Clamp01(p), nil
	}
	if n <= 0 {
		return 0, fmt.Errorf("stagger over %d items", n)
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("stagger index %d out of range [0,%d)", i, n)
	}
	return Clamp01(p*float64(n) - float64(i)), nil
}
