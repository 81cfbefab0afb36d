// Package window shows a presentation in an ebiten window.
package window

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ivlev/slideanim/internal/canvas"
	"github.com/ivlev/slideanim/internal/player"
	"github.com/ivlev/slideanim/internal/raster"
	"github.com/ivlev/slideanim/internal/render"
	"github.com/ivlev/slideanim/internal/schema"
)

// Bindings maps keys to playback actions.
var Bindings = map[ebiten.Key]player.Action{
	ebiten.KeySpace:      player.ActionNext,
	ebiten.KeyArrowRight: player.ActionNext,
	ebiten.KeyB:          player.ActionPrevious,
	ebiten.KeyArrowLeft:  player.ActionPrevious,
	ebiten.KeyR:          player.ActionReset,
	ebiten.KeyF:          player.ActionFullscreen,
	ebiten.KeyQ:          player.ActionQuit,
	ebiten.KeyEscape:     player.ActionQuit,
}

// Config sizes the window and its frame clock.
type Config struct {
	Width, Height int
	FPS           int
	Fullscreen    bool
}

// Window implements ebiten.Game on top of a player.Controller.
type Window struct {
	p      *schema.Presentation
	ctl    *player.Controller
	engine *render.Engine
	ras    *raster.Renderer
	resume *player.ResumeStore
	cfg    Config

	frame  *canvas.Frame
	buf    *image.RGBA
	screen *ebiten.Image
	err    error
}

func New(p *schema.Presentation, ctl *player.Controller, engine *render.Engine, assets canvas.Assets, resume *player.ResumeStore, cfg Config) *Window {
	return &Window{
		p:      p,
		ctl:    ctl,
		engine: engine,
		ras:    raster.New(cfg.Width, cfg.Height, assets),
		resume: resume,
		cfg:    cfg,
		frame:  canvas.NewFrame(engine.Theme().Color("bg")),
		buf:    image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
	}
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.cfg.Width, w.cfg.Height)
	ebiten.SetWindowTitle(w.p.DisplayTitle())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(w.cfg.Fullscreen)
	if w.cfg.FPS > 0 {
		ebiten.SetTPS(w.cfg.FPS)
	}

	err := ebiten.RunGame(w)
	w.saveResume()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (w *Window) saveResume() {
	if w.resume == nil {
		return
	}
	if err := w.resume.Save(w.p.Name, w.ctl.CurrentStep()); err != nil {
		log.Printf("[!] Не удалось сохранить позицию: %v", err)
	}
}

func (w *Window) Update() error {
	if w.err != nil {
		return w.err
	}
	for key, action := range Bindings {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		switch action {
		case player.ActionQuit:
			return ebiten.Termination
		case player.ActionFullscreen:
			ebiten.SetFullscreen(!ebiten.IsFullscreen())
		default:
			if w.ctl.Apply(action) {
				w.announce()
			}
		}
	}
	w.ctl.Tick()
	return nil
}

func (w *Window) announce() {
	step := w.ctl.CurrentStep()
	if step == player.Landing {
		fmt.Println("[*] Титульная страница")
		return
	}
	fmt.Printf("[>] Шаг %d/%d: %s\n", step+1, w.ctl.StepCount(), w.ctl.Step().Name)
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.err != nil {
		return
	}
	if err := w.ctl.Render(w.frame, w.engine); err != nil {
		w.err = fmt.Errorf("шаг %d: %w", w.ctl.CurrentStep()+1, err)
		return
	}
	w.ras.RenderInto(w.buf, w.frame)
	if w.screen == nil {
		w.screen = ebiten.NewImage(w.cfg.Width, w.cfg.Height)
	}
	w.screen.WritePixels(w.buf.Pix)
	screen.DrawImage(w.screen, nil)
}

func (w *Window) Layout(int, int) (int, int) {
	return w.cfg.Width, w.cfg.Height
}
