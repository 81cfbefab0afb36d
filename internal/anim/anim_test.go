package anim

import (
	"math"
	"testing"
)

func TestEasingBoundaries(t *testing.T) {
	for _, e := range Easings() {
		t.Run(string(e), func(t *testing.T) {
			fn, err := Lookup(e)
			if err != nil {
				t.Fatalf("lookup: %v", err)
			}
			if got := fn(0); abs(got) > 1e-6 {
				t.Errorf("f(0) = %v, want 0", got)
			}
			if got := fn(1); abs(got-1) > 1e-6 {
				t.Errorf("f(1) = %v, want 1", got)
			}
		})
	}
}

func TestEasingKnownValues(t *testing.T) {
	tests := []struct {
		easing Easing
		t      float64
		want   float64
	}{
		{Linear, 0.25, 0.25},
		{EaseIn, 0.5, 0.25},
		{EaseOut, 0.5, 0.75},
		{EaseInOut, 0.5, 0.5},
		{EaseInOut, 0.25, 0.15625},
		{EaseInCubic, 0.5, 0.125},
		{EaseOutCubic, 0.5, 0.875},
		{BounceOut, 0.5, 0.765625},
	}
	for _, tt := range tests {
		t.Run(string(tt.easing), func(t *testing.T) {
			fn, _ := Lookup(tt.easing)
			if got := fn(tt.t); abs(got-tt.want) > 1e-5 {
				t.Errorf("%s(%v) = %v, want %v", tt.easing, tt.t, got, tt.want)
			}
		})
	}
}

func TestUnknownEasing(t *testing.T) {
	if _, err := Lookup("wobble"); err == nil {
		t.Fatal("expected error for unknown easing")
	}
	if Easing("wobble").Valid() {
		t.Error("wobble should not be valid")
	}
	if !Easing("").Valid() {
		t.Error("empty easing should fall back to the default")
	}
}

func TestResolverMonotonic(t *testing.T) {
	for _, e := range Easings() {
		if !e.Monotonic() {
			continue
		}
		for _, ph := range Phases() {
			prev := -1.0
			for i := 0; i <= 1000; i++ {
				p := float64(i) / 1000
				got, err := ResolveLocalProgress(p, ph, 0.5, 0.8, e)
				if err != nil {
					t.Fatalf("%s/%s: %v", e, ph, err)
				}
				if got < prev-1e-9 {
					t.Fatalf("%s/%s: progress %v gave %v after %v", e, ph, p, got, prev)
				}
				if got < 0 || got > 1 {
					t.Fatalf("%s/%s: %v out of range", e, ph, got)
				}
				prev = got
			}
		}
	}
}

func TestResolverBounded(t *testing.T) {
	for _, e := range []Easing{ElasticOut, BounceOut} {
		for i := 0; i <= 200; i++ {
			got, err := ResolveLocalProgress(float64(i)/200, Middle, 0, 1, e)
			if err != nil {
				t.Fatal(err)
			}
			if got < 0 || got > 1 {
				t.Errorf("%s: %v out of [0,1]", e, got)
			}
		}
	}
}

func TestResolverPhaseEdges(t *testing.T) {
	for _, ph := range Phases() {
		start, end, _ := ph.Band()
		t.Run(string(ph), func(t *testing.T) {
			if got, _ := ResolveLocalProgress(start, ph, 0, 1, Linear); got != 0 {
				t.Errorf("at band start got %v, want 0", got)
			}
			if got, _ := ResolveLocalProgress(end, ph, 0, 1, Linear); got != 1 {
				t.Errorf("at band end got %v, want 1", got)
			}
			if start > 0 {
				if got, _ := ResolveLocalProgress(start-0.01, ph, 0, 1, Linear); got != 0 {
					t.Errorf("before band got %v, want 0", got)
				}
			}
		})
	}
}

func TestResolverEarlyScenario(t *testing.T) {
	tests := []struct {
		progress float64
		want     float64
	}{
		{0.0, 0},
		{0.3, 0.5},
		{0.4, 1},
		{0.9, 1},
	}
	for _, tt := range tests {
		got, err := ResolveLocalProgress(tt.progress, Early, 0, 1, EaseInOut)
		if err != nil {
			t.Fatal(err)
		}
		if abs(got-tt.want) > 1e-6 {
			t.Errorf("progress %.1f: got %v, want %v", tt.progress, got, tt.want)
		}
	}
}

func TestWindowClampedToBand(t *testing.T) {
	start, end, err := Window(Early, 10, 3)
	if err != nil {
		t.Fatal(err)
	}
	if start != 0.4 || end != 0.4 {
		t.Errorf("window = [%v,%v], want [0.4,0.4]", start, end)
	}
	got, _ := ResolveLocalProgress(0.39, Early, 10, 3, Linear)
	if got != 0 {
		t.Errorf("before collapsed window got %v", got)
	}
	got, _ = ResolveLocalProgress(0.4, Early, 10, 3, Linear)
	if got != 1 {
		t.Errorf("at collapsed window got %v", got)
	}
}

func TestResolverErrors(t *testing.T) {
	if _, err := ResolveLocalProgress(0.5, "sometime", 0, 1, Linear); err == nil {
		t.Error("expected error for unknown phase")
	}
	if _, err := ResolveLocalProgress(0.5, Early, 0, 0, Linear); err == nil {
		t.Error("expected error for zero duration")
	}
	if _, err := ResolveLocalProgress(0.5, Early, -1, 1, Linear); err == nil {
		t.Error("expected error for negative delay")
	}
}

func TestEffectScale(t *testing.T) {
	if got := EffectScale(Pulse, 1, 0.5, 0.25); got != 1 {
		t.Errorf("effect applied before reveal: %v", got)
	}
	if got := EffectScale(Pulse, 1, 1, 0.25); abs(got-1.1) > 1e-9 {
		t.Errorf("pulse peak = %v, want 1.1", got)
	}
	if got := EffectScale(Breathing, 1, 1, 0.75); abs(got-0.95) > 1e-9 {
		t.Errorf("breathing trough = %v, want 0.95", got)
	}
	if got := EffectScale(NoEffect, 1, 1, 0.25); got != 1 {
		t.Errorf("none = %v", got)
	}
}

func TestEntryOffset(t *testing.T) {
	tests := []struct {
		entry          Entry
		dx, dy, scale  float64
	}{
		{FromLeft, -7.5, 0, 1},
		{FromRight, 7.5, 0, 1},
		{FromTop, 0, 7.5, 1},
		{FromBottom, 0, -7.5, 1},
		{ZoomIn, 0, 0, 0.5},
		{NoEntry, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.entry), func(t *testing.T) {
			dx, dy, s := EntryOffset(tt.entry, 15, 0.5)
			if dx != tt.dx || dy != tt.dy || s != tt.scale {
				t.Errorf("got (%v,%v,%v), want (%v,%v,%v)", dx, dy, s, tt.dx, tt.dy, tt.scale)
			}
		})
	}
	if dx, dy, _ := EntryOffset(FromLeft, 15, 1); dx != 0 || dy != 0 {
		t.Errorf("offset at rest = (%v,%v)", dx, dy)
	}
}

func TestStaggerFloor(t *testing.T) {
	for n := 1; n <= 7; n++ {
		for k := 0; k <= 100; k++ {
			p := float64(k) / 100
			full, partial := 0, 0
			for i := 0; i < n; i++ {
				a, err := StaggerAlpha(p, i, n, true)
				if err != nil {
					t.Fatal(err)
				}
				switch {
				case a >= 1:
					full++
				case a > 0:
					partial++
				}
			}
			if want := int(math.Floor(p * float64(n))); full != want {
				t.Errorf("n=%d p=%v: %d fully visible, want %d", n, p, full, want)
			}
			if partial > 1 {
				t.Errorf("n=%d p=%v: %d partial items", n, p, partial)
			}
		}
	}
}

func TestStaggerFlowScenario(t *testing.T) {
	full, partial := 0, 0
	for i := 0; i < 4; i++ {
		a, _ := StaggerAlpha(0.5, i, 4, true)
		switch {
		case a >= 1:
			full++
		case a > 0:
			partial++
		}
	}
	if full != 2 || partial != 0 {
		t.Errorf("got %d full, %d partial; want 2 and 0", full, partial)
	}
}

func TestStaggerEmpty(t *testing.T) {
	if _, err := StaggerAlpha(0.5, 0, 0, true); err == nil {
		t.Error("expected error for stagger over zero items")
	}
	if a, err := StaggerAlpha(0.5, 0, 0, false); err != nil || a != 0.5 {
		t.Errorf("unstaggered = %v, %v", a, err)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
