package engine

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/slideanim/internal/config"
	"github.com/ivlev/slideanim/internal/effects"
	"github.com/ivlev/slideanim/internal/raster"
	"github.com/ivlev/slideanim/internal/render"
	"github.com/ivlev/slideanim/internal/schema"
)

func deck() *schema.Presentation {
	return &schema.Presentation{
		Name:  "deck",
		Title: "Deck",
		Steps: schema.Steps{
			{Name: "one", AnimationFrames: 3, Elements: schema.Elements{
				&schema.Text{Content: "hello"},
			}},
			{Name: "two", AnimationFrames: 2, Transition: effects.SlideLeft},
			{Name: "three", AnimationFrames: 4, Transition: effects.None},
		},
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Width, cfg.Height = 32, 24
	cfg.Workers = 3
	cfg.TransitionType = "fade"
	cfg.TransitionFrames = 2
	cfg.LandingFrames = 2
	cfg.HoldFrames = 1
	cfg.ShowStats = false
	return cfg
}

type memEncoder struct {
	frames []*image.RGBA
	closed bool
	fail   error
}

func (m *memEncoder) WriteFrame(img image.Image) error {
	if m.fail != nil {
		return m.fail
	}
	src := img.(*image.RGBA)
	cp := image.NewRGBA(src.Rect)
	copy(cp.Pix, src.Pix)
	m.frames = append(m.frames, cp)
	return nil
}

func (m *memEncoder) Close() error {
	m.closed = true
	return nil
}

func TestPlan(t *testing.T) {
	p := NewExportProject(testConfig(), deck(), render.New(nil), nil, nil)
	plan := p.Plan()
	require.Len(t, plan, 4)

	assert.Equal(t, LandingStep, plan[0].StepIndex)
	assert.Equal(t, 2, plan[0].Frames)
	assert.Equal(t, effects.None, plan[0].Transition)

	// Steps without a transition use the configured default.
	assert.Equal(t, 0, plan[1].StepIndex)
	assert.Equal(t, effects.Fade, plan[1].Transition)
	assert.Equal(t, 2, plan[1].TransitionFrames)

	assert.Equal(t, effects.SlideLeft, plan[2].Transition)
	assert.Equal(t, effects.None, plan[3].Transition)
	assert.Equal(t, 0, plan[3].TransitionFrames)

	for _, seg := range plan {
		assert.Equal(t, 1, seg.HoldFrames)
		assert.Equal(t, 32, seg.Width)
	}
}

func TestPlanWithoutLanding(t *testing.T) {
	cfg := testConfig()
	cfg.IncludeLanding = false
	plan := NewExportProject(cfg, deck(), render.New(nil), nil, nil).Plan()
	require.Len(t, plan, 3)
	assert.Equal(t, 0, plan[0].StepIndex)
	assert.Equal(t, effects.None, plan[0].Transition)
}

func TestJobs(t *testing.T) {
	plan := []config.FrameParams{
		{StepIndex: 0, Frames: 3, HoldFrames: 2},
		{StepIndex: 1, Frames: 1},
	}
	jobs := Jobs(plan)
	require.Len(t, jobs, 6)
	assert.Equal(t, 1, jobs[5].Segment)
	assert.True(t, jobs[4].Last())
	assert.False(t, jobs[3].Last())
	assert.True(t, jobs[5].Last())
}

func TestJobProgress(t *testing.T) {
	params := config.FrameParams{Frames: 5, HoldFrames: 2}
	want := []float64{0, 0.25, 0.5, 0.75, 1, 1, 1}
	for i, w := range want {
		assert.InDelta(t, w, Job{Params: params, Frame: i}.Progress(), 1e-9, "frame %d", i)
	}
	assert.Equal(t, 1.0, Job{Params: config.FrameParams{Frames: 1}}.Progress())
}

func TestJobTransition(t *testing.T) {
	params := config.FrameParams{Frames: 6, Transition: effects.Zoom, TransitionFrames: 4}

	kind, q := Job{Params: params, Frame: 0}.Transition()
	assert.Equal(t, effects.Zoom, kind)
	assert.Equal(t, 0.0, q)

	prev := q
	for i := 1; i < 4; i++ {
		_, q := Job{Params: params, Frame: i}.Transition()
		assert.Greater(t, q, prev)
		assert.Less(t, q, 1.0)
		prev = q
	}

	kind, q = Job{Params: params, Frame: 4}.Transition()
	assert.Equal(t, effects.None, kind)
	assert.Equal(t, 1.0, q)

	kind, _ = Job{Params: config.FrameParams{Frames: 3, Transition: effects.None, TransitionFrames: 4}}.Transition()
	assert.Equal(t, effects.None, kind)
}

func TestRunWritesFramesInOrder(t *testing.T) {
	cfg := testConfig()
	enc := &memEncoder{}
	eng := render.New(nil)
	p := NewExportProject(cfg, deck(), eng, nil, enc)

	require.NoError(t, p.Run(context.Background()))
	assert.True(t, enc.closed)

	jobs := Jobs(p.Plan())
	require.Len(t, enc.frames, len(jobs))
	assert.Equal(t, len(jobs), p.Stats.Frames)
	assert.Equal(t, 4, p.Stats.Segments)

	ras := raster.New(cfg.Width, cfg.Height, nil)
	for i, j := range jobs {
		f, err := p.frame(j)
		require.NoError(t, err)
		want := ras.Render(f)
		assert.Equal(t, want.Pix, enc.frames[i].Pix, "frame %d", i)
	}
}

func TestRunErrors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		cfg := testConfig()
		cfg.IncludeLanding = false
		p := NewExportProject(cfg, &schema.Presentation{Name: "empty"}, render.New(nil), nil, &memEncoder{})
		assert.Error(t, p.Run(context.Background()))
	})

	t.Run("encoder", func(t *testing.T) {
		boom := errors.New("boom")
		enc := &memEncoder{fail: boom}
		p := NewExportProject(testConfig(), deck(), render.New(nil), nil, enc)
		err := p.Run(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, boom))
		assert.False(t, enc.closed)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p := NewExportProject(testConfig(), deck(), render.New(nil), nil, &memEncoder{})
		err := p.Run(ctx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestStatsReport(t *testing.T) {
	s := Stats{Build: "dev", Segments: 2, Frames: 60, Total: 2e9}
	assert.InDelta(t, 30.0, s.FPS(), 1e-9)
	assert.Contains(t, s.Report(), "Segments: 2 | Frames: 60")
	assert.Contains(t, s.Report(), "Effective FPS: 30.00")
	assert.Equal(t, 0.0, Stats{}.FPS())

	path := t.TempDir() + "/bench.log"
	require.NoError(t, s.AppendLog(path))
	require.NoError(t, s.AppendLog(path))
}
