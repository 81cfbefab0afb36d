package schema

import (
	"fmt"
	"strings"

	"github.com/ivlev/slideanim/internal/style"
)

// ValidationError is a schema defect found before rendering.
type ValidationError struct {
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return e.Path + ": " + e.Msg
}

// ValidationErrors collects every defect of one document.
type ValidationErrors []*ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks p and returns ValidationErrors, or nil when p is valid.
func Validate(p *Presentation) error {
	var errs ValidationErrors
	theme, err := style.Default().WithOverrides(p.ColorOverrides)
	if err != nil {
		errs = append(errs, &ValidationError{Path: "color_overrides", Msg: err.Error()})
		theme = style.Default()
	}
	v := validator{errs: &errs, theme: theme}
	p.validate(v)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateStep checks a single step against the default theme.
func ValidateStep(s *Step) error {
	var errs ValidationErrors
	s.validate(validator{errs: &errs, theme: style.Default()})
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type validator struct {
	errs  *ValidationErrors
	theme *style.Theme
	path  string
}

func (v validator) at(field string) validator {
	if field == "" {
		return v
	}
	if v.path != "" {
		field = v.path + "." + field
	}
	return validator{errs: v.errs, theme: v.theme, path: field}
}

func (v validator) index(i int) validator {
	return validator{errs: v.errs, theme: v.theme, path: fmt.Sprintf("%s[%d]", v.path, i)}
}

func (v validator) fail(format string, args ...any) {
	*v.errs = append(*v.errs, &ValidationError{Path: v.path, Msg: fmt.Sprintf(format, args...)})
}

func (v validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.at(field).fail("is required")
	}
}

func (v validator) nonEmpty(field string, n int) {
	if n == 0 {
		v.at(field).fail("must not be empty")
	}
}

func (v validator) atMost(field string, n, limit int) {
	if n > limit {
		v.at(field).fail("at most %d entries, got %d", limit, n)
	}
}

func (v validator) nonNegative(field string, value float64) {
	if value < 0 {
		v.at(field).fail("must not be negative, got %v", value)
	}
}

func (v validator) between(field string, value, lo, hi float64) {
	if value < lo || value > hi {
		v.at(field).fail("must be within [%v,%v], got %v", lo, hi, value)
	}
}

func (v validator) color(field, name string) {
	if name != "" && !v.theme.Valid(name) {
		v.at(field).fail("unknown color %q", name)
	}
}

func (v validator) oneOf(field, value string, allowed ...string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.at(field).fail("must be one of %s, got %q", strings.Join(allowed, "|"), value)
}

func (p *Presentation) validate(v validator) {
	v.required("name", p.Name)
	v.color("landing.primary_color", p.Landing.PrimaryColor)
	v.nonEmpty("steps", len(p.Steps))
	for i := range p.Steps {
		p.Steps[i].validate(v.at("steps").index(i))
	}
}

func (s *Step) validate(v validator) {
	v.nonNegative("animation_frames", float64(s.AnimationFrames))
	if s.Transition != "" && !s.Transition.Valid() {
		v.at("transition").fail("unknown transition %q", s.Transition)
	}
	for i, el := range s.Elements {
		ev := v.at("elements").index(i)
		if el == nil {
			ev.fail("element is empty")
			continue
		}
		el.Common().validateBase(ev)
		el.validate(ev)
	}
}

func (b *Base) validateBase(v validator) {
	if b.Phase != "" && !b.Phase.Valid() {
		v.at("animation_phase").fail("unknown animation phase %q", b.Phase)
	}
	if !b.Easing.Valid() {
		v.at("easing").fail("unknown easing %q", b.Easing)
	}
	if !b.Entry.Valid() {
		v.at("entry_animation").fail("unknown entry animation %q", b.Entry)
	}
	if !b.Effect.Valid() {
		v.at("continuous_effect").fail("unknown continuous effect %q", b.Effect)
	}
	v.nonNegative("width", b.Width)
	v.nonNegative("height", b.Height)
	v.nonNegative("duration", b.Duration)
	v.nonNegative("delay", b.Delay)
	v.nonNegative("speed", b.Speed)
	v.nonNegative("entry_distance", b.EntryDistance)
	v.nonNegative("effect_frequency", b.EffectFrequency)
	v.color("color", b.Color)
}
