package effects

import (
	"testing"

	"github.com/ivlev/slideanim/internal/canvas"
)

func TestTransitionsEndAtIdentity(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(string(k), func(t *testing.T) {
			tr, err := NewTransition(k)
			if err != nil {
				t.Fatalf("NewTransition(%s): %v", k, err)
			}
			if got := tr.Transform(1); !got.IsIdentity() {
				t.Errorf("at q=1 got %+v, want identity", got)
			}
			if got := tr.Transform(2); !got.IsIdentity() {
				t.Errorf("q is not clamped: %+v", got)
			}
		})
	}
}

func TestTransitionStart(t *testing.T) {
	tests := []struct {
		kind Kind
		want canvas.Transform
	}{
		{None, canvas.Transform{Alpha: 1, Scale: 1}},
		{Fade, canvas.Transform{Alpha: 0, Scale: 1}},
		{SlideLeft, canvas.Transform{Alpha: 1, Scale: 1, DX: 100}},
		{SlideRight, canvas.Transform{Alpha: 1, Scale: 1, DX: -100}},
		{SlideUp, canvas.Transform{Alpha: 1, Scale: 1, DY: -100}},
		{SlideDown, canvas.Transform{Alpha: 1, Scale: 1, DY: 100}},
		{Zoom, canvas.Transform{Alpha: 0, Scale: 0}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			tr, _ := NewTransition(tt.kind)
			if got := tr.Transform(0); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSlideHalfway(t *testing.T) {
	tr, _ := NewTransition(SlideLeft)
	if got := tr.Transform(0.25); got.DX != 75 {
		t.Errorf("DX = %v, want 75", got.DX)
	}
}

func TestUnknownTransition(t *testing.T) {
	if _, err := NewTransition("spin"); err == nil {
		t.Error("expected error for unknown transition")
	}
	if Kind("spin").Valid() {
		t.Error("spin should not be valid")
	}
	if !Kind("").Valid() {
		t.Error("empty kind should mean none")
	}
}
