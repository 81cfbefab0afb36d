package anim

import (
	"fmt"
	"math"
)

// Phase is one of five equal bands of step progress.
type Phase string

const (
	Immediate Phase = "immediate"
	Early     Phase = "early"
	Middle    Phase = "middle"
	Late      Phase = "late"
	Final     Phase = "final"
)

const (
	// BandWidth is the width of one phase band in step progress.
	BandWidth = 0.2
	// DelayUnit converts an element delay into step progress.
	DelayUnit = 0.05
)

var bands = map[Phase][2]float64{
	Immediate: {0.0, 0.2},
	Early:     {0.2, 0.4},
	Middle:    {0.4, 0.6},
	Late:      {0.6, 0.8},
	Final:     {0.8, 1.0},
}

// Phases lists the phases in playback order.
func Phases() []Phase {
	return []Phase{Immediate, Early, Middle, Late, Final}
}

func (p Phase) Valid() bool {
	_, ok := bands[p]
	return ok
}

// Band returns the half-open progress interval of the phase.
func (p Phase) Band() (start, end float64, ok bool) {
	b, ok := bands[p]
	return b[0], b[1], ok
}

// Window returns the reveal window of an element. Both edges stay inside the
// phase band, so a long delay or duration cannot leak into the next phase.
func Window(phase Phase, delay, duration float64) (start, end float64, err error) {
	bandStart, bandEnd, ok := phase.Band()
	if !ok {
		return 0, 0, fmt.Errorf("unknown animation phase %q", phase)
	}
	if duration <= 0 {
		return 0, 0, fmt.Errorf("duration must be positive, got %v", duration)
	}
	if delay < 0 {
		return 0, 0, fmt.Errorf("delay must not be negative, got %v", delay)
	}
	start = math.Min(bandStart+delay*DelayUnit, bandEnd)
	end = math.Min(start+duration*BandWidth, bandEnd)
	return start, end, nil
}

// ResolveLocalProgress maps step progress to the eased local progress of an
// element. The result is 0 before the reveal window, 1 at and after its end
// and always within [0,1].
func ResolveLocalProgress(stepProgress float64, phase Phase, delay, duration float64, easing Easing) (float64, error) {
	fn, err := Lookup(easing)
	if err != nil {
		return 0, err
	}
	start, end, err := Window(phase, delay, duration)
	if err != nil {
		return 0, err
	}
	if stepProgress < start {
		return 0, nil
	}
	if stepProgress >= end {
		return 1, nil
	}
	return Clamp01(fn((stepProgress - start) / (end - start))), nil
}
