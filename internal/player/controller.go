// Package player drives interactive playback of a presentation.
package player

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/ivlev/slideanim/internal/canvas"
	"github.com/ivlev/slideanim/internal/effects"
	"github.com/ivlev/slideanim/internal/render"
	"github.com/ivlev/slideanim/internal/schema"
)

// Landing is the step index of the landing page.
const Landing = -1

// Options tune the controller.
type Options struct {
	// LandingFrames is the length of the landing page animation.
	LandingFrames int
	// Transition is used for steps that do not name their own.
	Transition effects.Kind
	// TransitionFrames is the length of a step transition.
	TransitionFrames int
}

func DefaultOptions() Options {
	return Options{LandingFrames: schema.DefaultFrames, Transition: effects.None, TransitionFrames: 20}
}

// Controller owns the current step and its frame counter. It starts on the
// landing page with its animation running.
type Controller struct {
	p    *schema.Presentation
	opts Options

	step      int
	frame     int
	animating bool

	kind  effects.Kind
	tween *gween.Tween
	trans float64
}

func NewController(p *schema.Presentation, opts Options) *Controller {
	if opts.LandingFrames <= 0 {
		opts.LandingFrames = schema.DefaultFrames
	}
	c := &Controller{p: p, opts: opts}
	c.Reset()
	return c
}

// CurrentStep returns the step index, Landing for the landing page.
func (c *Controller) CurrentStep() int { return c.step }

// Frame returns the frame counter of the current step.
func (c *Controller) Frame() int { return c.frame }

// Animating reports whether the current step is still playing.
func (c *Controller) Animating() bool { return c.animating }

// StepCount returns the number of steps after the landing page.
func (c *Controller) StepCount() int { return len(c.p.Steps) }

// Step returns the current step, nil on the landing page.
func (c *Controller) Step() *schema.Step {
	if c.step < 0 || c.step >= len(c.p.Steps) {
		return nil
	}
	return &c.p.Steps[c.step]
}

// FrameFor returns the animation length of step i, 0 when i is out of range.
func (c *Controller) FrameFor(i int) int {
	switch {
	case i == Landing:
		return c.opts.LandingFrames
	case i < 0 || i >= len(c.p.Steps):
		return 0
	}
	return c.p.Steps[i].Frames()
}

// Progress maps the frame counter onto [0,1]. A single-frame step is
// always complete.
func (c *Controller) Progress() float64 {
	n := c.FrameFor(c.step)
	if n <= 1 {
		return 1
	}
	return float64(c.frame) / float64(n-1)
}

// Transition returns the transition into the current step and its progress.
func (c *Controller) Transition() (effects.Kind, float64) {
	if c.tween == nil {
		return effects.None, 1
	}
	return c.kind, c.trans
}

// Advance moves to the next step and starts its animation. It reports
// false on the last step.
func (c *Controller) Advance() bool {
	if c.step >= len(c.p.Steps)-1 {
		return false
	}
	c.step++
	c.frame = 0
	c.animating = true
	c.startTransition(c.p.Steps[c.step].Transition)
	return true
}

// Retreat moves to the previous step and shows it fully revealed. It is
// ignored while a step is animating and on the landing page.
func (c *Controller) Retreat() bool {
	if c.animating || c.step <= Landing {
		return false
	}
	c.show(c.step - 1)
	return true
}

// Reset returns to the landing page and replays it.
func (c *Controller) Reset() {
	c.step = Landing
	c.frame = 0
	c.animating = true
	c.tween = nil
}

// Jump shows step i fully revealed; i is clamped to the valid range.
func (c *Controller) Jump(i int) {
	c.show(max(Landing, min(i, len(c.p.Steps)-1)))
}

func (c *Controller) show(i int) {
	c.step = i
	c.frame = max(0, c.FrameFor(i)-1)
	c.animating = false
	c.tween = nil
}

func (c *Controller) startTransition(kind effects.Kind) {
	if kind == "" {
		kind = c.opts.Transition
	}
	if kind == "" || kind == effects.None || c.opts.TransitionFrames <= 0 {
		c.tween = nil
		return
	}
	c.kind = kind
	c.tween = gween.New(0, 1, float32(c.opts.TransitionFrames), ease.OutCubic)
	c.trans = 0
}

// Tick advances the current animation by one frame.
func (c *Controller) Tick() {
	if c.tween != nil {
		v, done := c.tween.Update(1)
		c.trans = float64(v)
		if done {
			c.tween = nil
		}
	}
	if !c.animating {
		return
	}
	last := c.FrameFor(c.step) - 1
	if c.frame < last {
		c.frame++
	}
	if c.frame >= last {
		c.animating = false
	}
}

// Render draws the current frame onto dst.
func (c *Controller) Render(dst canvas.Surface, e *render.Engine) error {
	if c.step == Landing {
		return e.RenderLanding(dst, c.p, c.Progress())
	}
	kind, q := c.Transition()
	return e.RenderStep(dst, c.Step(), c.Progress(), kind, q)
}

// Action is a playback command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrevious
	ActionReset
	ActionFullscreen
	ActionQuit
)

// Apply performs a navigation action and reports whether the view changed.
// Fullscreen and quit belong to the window and are ignored here.
func (c *Controller) Apply(a Action) bool {
	switch a {
	case ActionNext:
		return c.Advance()
	case ActionPrevious:
		return c.Retreat()
	case ActionReset:
		c.Reset()
		return true
	}
	return false
}
