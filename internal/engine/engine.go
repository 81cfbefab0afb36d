package engine

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/slideanim/internal/anim"
	"github.com/ivlev/slideanim/internal/canvas"
	"github.com/ivlev/slideanim/internal/config"
	"github.com/ivlev/slideanim/internal/effects"
	"github.com/ivlev/slideanim/internal/raster"
	"github.com/ivlev/slideanim/internal/render"
	"github.com/ivlev/slideanim/internal/schema"
	"github.com/ivlev/slideanim/internal/system"
	"github.com/ivlev/slideanim/internal/video"
)

// LandingStep marks the landing page segment in a plan.
const LandingStep = -1

// ExportProject renders every step of a presentation and streams the
// frames to an encoder in order.
type ExportProject struct {
	Config       *config.Config
	Presentation *schema.Presentation
	Engine       *render.Engine
	Assets       canvas.Assets
	Encoder      video.Encoder

	Stats Stats
}

func NewExportProject(cfg *config.Config, p *schema.Presentation, eng *render.Engine, assets canvas.Assets, enc video.Encoder) *ExportProject {
	return &ExportProject{
		Config:       cfg,
		Presentation: p,
		Engine:       eng,
		Assets:       assets,
		Encoder:      enc,
	}
}

// Plan lists the exported segments: the landing page when enabled, then
// every step. The first segment never has an incoming transition.
func (p *ExportProject) Plan() []config.FrameParams {
	cfg := p.Config
	var plan []config.FrameParams
	add := func(index, frames int, kind effects.Kind) {
		if kind == "" {
			kind = cfg.Transition()
		}
		if len(plan) == 0 {
			kind = effects.None
		}
		tf := cfg.TransitionFrames
		if kind == effects.None {
			tf = 0
		}
		plan = append(plan, config.FrameParams{
			Width:            cfg.Width,
			Height:           cfg.Height,
			FPS:              cfg.FPS,
			StepIndex:        index,
			Frames:           max(1, frames),
			HoldFrames:       cfg.HoldFrames,
			Transition:       kind,
			TransitionFrames: tf,
		})
	}

	if cfg.IncludeLanding {
		add(LandingStep, cfg.LandingFrames, effects.None)
	}
	for i := range p.Presentation.Steps {
		step := &p.Presentation.Steps[i]
		add(i, step.Frames(), step.Transition)
	}
	return plan
}

// Job is one output frame.
type Job struct {
	Segment int
	Params  config.FrameParams
	Frame   int
}

// Jobs flattens a plan into output frames.
func Jobs(plan []config.FrameParams) []Job {
	var jobs []Job
	for s, params := range plan {
		for f := 0; f < params.Total(); f++ {
			jobs = append(jobs, Job{Segment: s, Params: params, Frame: f})
		}
	}
	return jobs
}

var transitionEasing, _ = anim.Lookup(anim.EaseOutCubic)

// Progress returns the step progress of the job frame. Hold frames keep
// the final state.
func (j Job) Progress() float64 {
	if j.Params.Frames <= 1 {
		return 1
	}
	return anim.Clamp01(float64(j.Frame) / float64(j.Params.Frames-1))
}

// Transition returns the incoming transition of the job frame.
func (j Job) Transition() (effects.Kind, float64) {
	tf := j.Params.TransitionFrames
	if j.Params.Transition == effects.None || tf <= 0 || j.Frame >= tf {
		return effects.None, 1
	}
	return j.Params.Transition, transitionEasing(float64(j.Frame) / float64(tf))
}

// Last reports whether the job is the final frame of its segment.
func (j Job) Last() bool {
	return j.Frame == j.Params.Total()-1
}

func (p *ExportProject) frame(j Job) (*canvas.Frame, error) {
	if j.Params.StepIndex == LandingStep {
		return p.Engine.LandingFrame(p.Presentation, j.Progress())
	}
	kind, q := j.Transition()
	return p.Engine.Frame(&p.Presentation.Steps[j.Params.StepIndex], j.Progress(), kind, q)
}

func (p *ExportProject) segmentName(params config.FrameParams) string {
	if params.StepIndex == LandingStep {
		return "landing"
	}
	return p.Presentation.Steps[params.StepIndex].Name
}

func (p *ExportProject) Run(ctx context.Context) error {
	startTime := time.Now()
	cfg := p.Config

	plan := p.Plan()
	jobs := Jobs(plan)
	if len(jobs) == 0 {
		return fmt.Errorf("презентация не содержит кадров")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = system.DefaultWorkers()
	}

	fmt.Println("--- [PROJECT: EXPORT ENGINE] ---")
	fmt.Printf("[*] Презентация: %s | Шагов: %d | Кадров: %d\n", p.Presentation.DisplayTitle(), len(p.Presentation.Steps), len(jobs))
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS | Потоков: %d\n", cfg.Width, cfg.Height, cfg.FPS, workers)
	fmt.Println("-----------------------------")

	ras := raster.New(cfg.Width, cfg.Height, p.Assets)
	var renderTime, encodeTime time.Duration

	// Кадры рендерятся пачками параллельно, а в энкодер уходят строго по порядку
	batch := workers * 2
	for lo := 0; lo < len(jobs); lo += batch {
		hi := min(lo+batch, len(jobs))
		imgs := make([]*image.RGBA, hi-lo)

		renderStart := time.Now()
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := lo; i < hi; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				j := jobs[i]
				f, err := p.frame(j)
				if err != nil {
					return fmt.Errorf("шаг %q, кадр %d: %w", p.segmentName(j.Params), j.Frame, err)
				}
				img := system.GetImage(cfg.Width, cfg.Height)
				ras.RenderInto(img, f)
				imgs[i-lo] = img
				return nil
			})
		}
		err := g.Wait()
		renderTime += time.Since(renderStart)
		if err != nil {
			release(imgs)
			return err
		}

		encodeStart := time.Now()
		for k, img := range imgs {
			if err := p.Encoder.WriteFrame(img); err != nil {
				release(imgs)
				return fmt.Errorf("ошибка записи кадра %d: %w", lo+k, err)
			}
			if j := jobs[lo+k]; j.Last() {
				fmt.Printf("[>] Ready: %d/%d (%s)\n", j.Segment+1, len(plan), p.segmentName(j.Params))
			}
		}
		release(imgs)
		encodeTime += time.Since(encodeStart)
	}

	closeStart := time.Now()
	if err := p.Encoder.Close(); err != nil {
		return fmt.Errorf("ошибка сборки финального видео: %w", err)
	}
	encodeTime += time.Since(closeStart)

	p.Stats = Stats{
		Build:    cfg.BuildVersion,
		Input:    cfg.InputPath,
		Segments: len(plan),
		Frames:   len(jobs),
		Total:    time.Since(startTime),
		Render:   renderTime,
		Encode:   encodeTime,
	}
	if cfg.ShowStats {
		fmt.Print(p.Stats.Report())
		fmt.Println(system.MemoryReport())
		if err := p.Stats.AppendLog(BenchmarkLog); err != nil {
			fmt.Printf("[!] Не удалось записать %s: %v\n", BenchmarkLog, err)
		}
	}
	return nil
}

func release(imgs []*image.RGBA) {
	for _, img := range imgs {
		if img != nil {
			system.PutImage(img)
		}
	}
}

// BenchmarkLog collects one line per export when stats are enabled.
const BenchmarkLog = "benchmark.log"

// Stats summarizes an export run.
type Stats struct {
	Build    string
	Input    string
	Segments int
	Frames   int
	Total    time.Duration
	Render   time.Duration
	Encode   time.Duration
}

// FPS is the effective number of frames produced per second.
func (s Stats) FPS() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Total.Seconds()
}

func (s Stats) Report() string {
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Segments: %d | Frames: %d\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoding: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		s.Build, s.Segments, s.Frames, s.Total.Seconds(), s.Render.Seconds(), s.Encode.Seconds(), s.FPS(),
	)
}

func (s Stats) AppendLog(path string) error {
	entry := fmt.Sprintf("[%s] Build: %s | Input: %s | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		s.Build, s.Input, s.Frames, s.Total.Seconds(), s.Render.Seconds(), s.Encode.Seconds(), s.FPS(),
	)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(entry); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
