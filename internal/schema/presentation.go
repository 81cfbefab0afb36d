package schema

import "github.com/ivlev/slideanim/internal/effects"

// DefaultFrames is the frame count of a step that does not set one.
const DefaultFrames = 60

// Presentation is the root of a schema document.
type Presentation struct {
	Name           string            `json:"name" yaml:"name"`
	Title          string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description    string            `json:"description,omitempty" yaml:"description,omitempty"`
	Author         string            `json:"author,omitempty" yaml:"author,omitempty"`
	Language       string            `json:"language,omitempty" yaml:"language,omitempty"`
	Version        string            `json:"version,omitempty" yaml:"version,omitempty"`
	Landing        Landing           `json:"landing" yaml:"landing,omitempty"`
	Steps          Steps             `json:"steps" yaml:"steps,omitempty"`
	ColorOverrides map[string]string `json:"color_overrides,omitempty" yaml:"color_overrides,omitempty"`
}

// DisplayTitle returns the title, or the name when the title is empty.
func (p *Presentation) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

// Landing is the page shown before the first step.
type Landing struct {
	Title          string `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle       string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Tagline        string `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	WelcomeMessage string `json:"welcome_message,omitempty" yaml:"welcome_message,omitempty"`
	Footer         string `json:"footer,omitempty" yaml:"footer,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty" yaml:"primary_color,omitempty"`
	IconLeft       string `json:"icon_left,omitempty" yaml:"icon_left,omitempty"`
	IconRight      string `json:"icon_right,omitempty" yaml:"icon_right,omitempty"`
}

// Step is one slide. Elements are drawn in order, later ones on top.
type Step struct {
	Name            string       `json:"name" yaml:"name"`
	Title           string       `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle        string       `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Elements        Elements     `json:"elements" yaml:"elements,omitempty"`
	AnimationFrames int          `json:"animation_frames,omitempty" yaml:"animation_frames,omitempty"`
	Transition      effects.Kind `json:"transition,omitempty" yaml:"transition,omitempty"`
	Notes           string       `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Frames returns the frame count of the step animation.
func (s *Step) Frames() int {
	if s.AnimationFrames <= 0 {
		return DefaultFrames
	}
	return s.AnimationFrames
}

// Steps is the ordered step list of a presentation.
type Steps []Step

// Elements is the ordered element list of a step.
type Elements []Element
