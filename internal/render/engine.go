// Package render turns schema steps into canvas primitives.
//
// RenderStep is a pure function of its arguments: the same step and
// progress always produce the same primitives, and the model is never
// mutated. Engines are safe for concurrent use.
package render

import (
	"errors"
	"fmt"

	"github.com/ivlev/slideanim/internal/anim"
	"github.com/ivlev/slideanim/internal/canvas"
	"github.com/ivlev/slideanim/internal/effects"
	"github.com/ivlev/slideanim/internal/schema"
	"github.com/ivlev/slideanim/internal/style"
)

// Engine draws steps with a fixed theme.
type Engine struct {
	theme *style.Theme

	// ShowTitle draws the step title and subtitle at the top of the plane.
	ShowTitle bool
	// ShowPhaseMarkers draws the phase bands and a progress cursor along
	// the bottom edge.
	ShowPhaseMarkers bool
}

// New returns an engine for theme, or the default theme when nil.
func New(theme *style.Theme) *Engine {
	if theme == nil {
		theme = style.Default()
	}
	return &Engine{theme: theme, ShowTitle: true}
}

// ForPresentation builds an engine with the presentation's color overrides.
func ForPresentation(p *schema.Presentation) (*Engine, error) {
	theme := style.Default()
	if len(p.ColorOverrides) > 0 {
		var err error
		if theme, err = theme.WithOverrides(p.ColorOverrides); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
	}
	return New(theme), nil
}

func (e *Engine) Theme() *style.Theme {
	return e.theme
}

// RenderStep clears dst and draws step at progress in [0,1]. A transition
// other than none transforms the whole frame by transitionProgress after
// all elements are drawn.
func (e *Engine) RenderStep(dst canvas.Surface, step *schema.Step, progress float64, transition effects.Kind, transitionProgress float64) error {
	if step == nil {
		return errors.New("render: nil step")
	}
	tr, err := effects.NewTransition(transition)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	progress = anim.Clamp01(progress)

	dst.Clear(e.theme.Color("bg"))
	if e.ShowTitle {
		e.drawTitle(dst, step)
	}
	for i, el := range step.Elements {
		if el == nil {
			return fmt.Errorf("render: element %d is nil", i)
		}
		if err := e.renderElement(dst, el, progress); err != nil {
			return fmt.Errorf("render: element %d (%s): %w", i, el.Kind(), err)
		}
	}
	if e.ShowPhaseMarkers {
		e.drawPhaseMarkers(dst, progress)
	}
	if transition != "" && transition != effects.None {
		dst.Apply(tr.Transform(transitionProgress))
	}
	return nil
}

// Frame renders step into a new recorded frame.
func (e *Engine) Frame(step *schema.Step, progress float64, transition effects.Kind, transitionProgress float64) (*canvas.Frame, error) {
	f := canvas.NewFrame(e.theme.Color("bg"))
	if err := e.RenderStep(f, step, progress, transition, transitionProgress); err != nil {
		return nil, err
	}
	return f, nil
}

// LandingFrame renders the landing page into a new recorded frame.
func (e *Engine) LandingFrame(p *schema.Presentation, progress float64) (*canvas.Frame, error) {
	f := canvas.NewFrame(e.theme.Color("bg"))
	if err := e.RenderLanding(f, p, progress); err != nil {
		return nil, err
	}
	return f, nil
}

// RenderElement draws a single element on top of whatever dst holds.
func (e *Engine) RenderElement(dst canvas.Surface, el schema.Element, progress float64) error {
	if el == nil {
		return errors.New("render: nil element")
	}
	if err := e.renderElement(dst, el, anim.Clamp01(progress)); err != nil {
		return fmt.Errorf("render: %s: %w", el.Kind(), err)
	}
	return nil
}

func (e *Engine) renderElement(dst canvas.Surface, el schema.Element, progress float64) error {
	c, err := e.resolve(dst, el, progress)
	if err != nil || c == nil {
		return err
	}
	return draw(c, el)
}

// resolve computes the animation state of el at step progress. It returns
// nil when the element has not started revealing.
func (e *Engine) resolve(dst canvas.Surface, el schema.Element, progress float64) (*ctx, error) {
	b := el.Common()
	local, err := anim.ResolveLocalProgress(progress, b.AnimationPhase(), b.Delay, b.AnimationDuration(), b.Easing)
	if err != nil {
		return nil, err
	}
	if local <= 0 {
		return nil, nil
	}
	dx, dy, zoom := anim.EntryOffset(b.Entry, b.EntryOffsetDistance(), local)
	pos := b.Anchor()
	w, h := b.Size(el.Kind())
	return &ctx{
		dst:   dst,
		theme: e.theme,
		base:  b,
		kind:  el.Kind(),
		x:     pos.X + dx,
		y:     pos.Y + dy,
		dx:    dx,
		dy:    dy,
		w:     w,
		h:     h,
		scale: zoom * anim.EffectScale(b.Effect, b.Frequency(), local, progress),
		alpha: local,
		step:  progress,
		speed: b.AnimationSpeed(),
	}, nil
}

func draw(c *ctx, el schema.Element) error {
	switch el := el.(type) {
	case *schema.Text:
		return drawText(c, el)
	case *schema.TypewriterText:
		return drawTypewriter(c, el)
	case *schema.Counter:
		return drawCounter(c, el)
	case *schema.CodeBlock:
		return drawCodeBlock(c, el)
	case *schema.CodeExecution:
		return drawCodeExecution(c, el)
	case *schema.Box:
		return drawBox(c, el)
	case *schema.Comparison:
		return drawComparison(c, el)
	case *schema.Conversation:
		return drawConversation(c, el)
	case *schema.Image:
		return drawImage(c, el)
	case *schema.BulletList:
		return drawBulletList(c, el)
	case *schema.Checklist:
		return drawChecklist(c, el)
	case *schema.Timeline:
		return drawTimeline(c, el)
	case *schema.Flow:
		return drawFlow(c, el)
	case *schema.Grid:
		return drawGrid(c, el)
	case *schema.StackedBoxes:
		return drawStackedBoxes(c, el)
	case *schema.Arrow:
		return drawArrow(c, el)
	case *schema.ArcArrow:
		return drawArcArrow(c, el)
	case *schema.ParticleFlow:
		return drawParticleFlow(c, el)
	case *schema.NeuralNetwork:
		return drawNeuralNetwork(c, el)
	case *schema.AttentionHeatmap:
		return drawHeatmap(c, el)
	case *schema.TokenFlow:
		return drawTokenFlow(c, el)
	case *schema.ModelComparison:
		return drawModelComparison(c, el)
	case *schema.SimilarityMeter:
		return drawSimilarityMeter(c, el)
	case *schema.ProgressBar:
		return drawProgressBar(c, el)
	case *schema.WeightComparison:
		return drawWeightComparison(c, el)
	case *schema.ParameterSlider:
		return drawSlider(c, el)
	case *schema.Scatter3D:
		return drawScatter3D(c, el)
	case *schema.Vector3D:
		return drawVector3D(c, el)
	}
	return fmt.Errorf("no renderer for %T", el)
}

func (e *Engine) drawTitle(dst canvas.Surface, step *schema.Step) {
	if step.Title != "" {
		dst.Draw(canvas.Text{
			Pos:     canvas.Point{X: 50, Y: 96},
			Content: step.Title,
			Size:    18,
			Color:   e.theme.Color("primary"),
			Alpha:   1,
			VAlign:  canvas.VAlignTop,
			Bold:    true,
		})
	}
	if step.Subtitle != "" {
		dst.Draw(canvas.Text{
			Pos:     canvas.Point{X: 50, Y: 90},
			Content: step.Subtitle,
			Size:    11,
			Color:   e.theme.Color("dim"),
			Alpha:   1,
			VAlign:  canvas.VAlignTop,
		})
	}
}

func (e *Engine) drawPhaseMarkers(dst canvas.Surface, progress float64) {
	dim := e.theme.Color("dim")
	dst.Draw(canvas.Line{
		Points: []canvas.Point{{X: 10, Y: 3.5}, {X: 90, Y: 3.5}},
		Color:  dim,
		Width:  0.2,
		Alpha:  0.6,
	})
	for _, ph := range anim.Phases() {
		start, _, _ := ph.Band()
		x := 10 + start*80
		dst.Draw(canvas.Line{
			Points: []canvas.Point{{X: x, Y: 2.8}, {X: x, Y: 4.2}},
			Color:  dim,
			Width:  0.2,
			Alpha:  0.6,
		})
		dst.Draw(canvas.Text{
			Pos:     canvas.Point{X: x + 8, Y: 1},
			Content: string(ph),
			Size:    6,
			Color:   dim,
			Alpha:   0.8,
		})
	}
	dst.Draw(canvas.Circle{
		Center: canvas.Point{X: 10 + progress*80, Y: 3.5},
		R:      0.6,
		Fill:   e.theme.Color("accent"),
		Alpha:  1,
	})
}
