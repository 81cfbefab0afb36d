package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ivlev/slideanim/internal/analyzer"
	"github.com/ivlev/slideanim/internal/canvas"
	"github.com/ivlev/slideanim/internal/config"
	"github.com/ivlev/slideanim/internal/director"
	"github.com/ivlev/slideanim/internal/engine"
	"github.com/ivlev/slideanim/internal/player"
	"github.com/ivlev/slideanim/internal/player/window"
	"github.com/ivlev/slideanim/internal/raster"
	"github.com/ivlev/slideanim/internal/schema"
	"github.com/ivlev/slideanim/internal/source"
	"github.com/ivlev/slideanim/internal/svg"
	"github.com/ivlev/slideanim/internal/system"
	"github.com/ivlev/slideanim/internal/video"
)

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() == 0 {
		return errors.New("укажите файл схемы")
	}

	failed := 0
	for _, path := range fs.Args() {
		p, err := schema.Load(path)
		var verrs schema.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			failed++
			fmt.Printf("[-] %s: %d ошибок\n", path, len(verrs))
			for _, e := range verrs {
				fmt.Printf("    %s\n", e)
			}
		case err != nil:
			failed++
			fmt.Printf("[-] %s: %v\n", path, err)
		default:
			fmt.Printf("[+] ok %s (%s, шагов: %d)\n", path, p.DisplayTitle(), len(p.Steps))
		}
	}
	if failed > 0 {
		return fmt.Errorf("схем с ошибками: %d", failed)
	}
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPtr := fs.String("config", "", "Путь к файлу проекта")
	dirPtr := fs.String("dir", "", "Папка с презентациями (по умолчанию из проекта)")
	fs.Parse(args)

	cfg, err := config.LoadOrDefault(*configPtr)
	if err != nil {
		return err
	}
	dir := cfg.PresentationsDir
	if *dirPtr != "" {
		dir = *dirPtr
	}

	entries, err := schema.List(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("[*] В %s нет презентаций\n", dir)
		return nil
	}
	for _, e := range entries {
		if e.Err != nil {
			fmt.Printf("[!] %s: %v\n", e.Path, e.Err)
			continue
		}
		fmt.Printf("[*] %-40s %-30s шагов: %-3d %s\n", e.Path, e.Title, e.Steps, e.ModTime.Format("2006-01-02 15:04"))
	}
	return nil
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	pf := newProjectFlags(fs)
	stepPtr := fs.Int("step", 0, "Номер шага с нуля (-1 - титульная страница)")
	progressPtr := fs.Float64("progress", 1, "Прогресс анимации шага 0..1")
	transPtr := fs.Float64("transition-progress", 1, "Прогресс входящего перехода 0..1")
	formatPtr := fs.String("format", "", "Формат: png или svg (по умолчанию по расширению -o)")
	outputPtr := fs.String("o", "", "Путь к кадру (если пусто, генерируется в output/)")
	fs.Parse(args)

	cfg, err := pf.load()
	if err != nil {
		return err
	}
	prj, err := openProject(fs, cfg)
	if err != nil {
		return err
	}

	format := strings.ToLower(*formatPtr)
	if format == "" {
		format = "png"
		if strings.EqualFold(filepath.Ext(*outputPtr), ".svg") {
			format = "svg"
		}
	}
	if format != "png" && format != "svg" {
		return fmt.Errorf("неизвестный формат %q", format)
	}

	step := *stepPtr
	if step < engine.LandingStep || step >= len(prj.p.Steps) {
		return fmt.Errorf("шаг %d вне диапазона [-1,%d]", step, len(prj.p.Steps)-1)
	}

	frame, err := renderFrame(prj, step, *progressPtr, *transPtr)
	if err != nil {
		return err
	}
	label := "landing"
	if step != engine.LandingStep {
		label = fmt.Sprintf("step%02d", step)
	}

	out := *outputPtr
	if out == "" {
		out = defaultOutput(cfg, prj.p, "_"+label+"."+format)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	file, err := os.Create(out)
	if err != nil {
		return err
	}
	defer file.Close()

	if format == "svg" {
		err = svg.New(cfg.Width, cfg.Height, prj.assets).Encode(file, frame)
	} else {
		err = png.Encode(file, raster.New(cfg.Width, cfg.Height, prj.assets).Render(frame))
	}
	if err != nil {
		return fmt.Errorf("запись %s: %w", out, err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Printf("[+++] Успех! Результат: %s\n", out)
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	pf := newProjectFlags(fs)
	outputPtr := fs.String("o", "", "Путь к видео (.mp4) или папке для PNG (если пусто, генерируется в output/)")
	audioPtr := fs.String("audio", "", "Путь к аудиодорожке")
	landingPtr := fs.Bool("landing", true, "Включить титульную страницу")
	holdPtr := fs.Int("hold", -1, "Пауза после анимации шага в кадрах (-1 - из проекта)")
	qualityPtr := fs.Int("quality", -1, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	statsPtr := fs.Bool("stats", false, "Показать отчет о производительности")
	fs.Parse(args)

	cfg, err := pf.load()
	if err != nil {
		return err
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "landing":
			cfg.IncludeLanding = *landingPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		}
	})
	if *holdPtr >= 0 {
		cfg.HoldFrames = *holdPtr
	}
	if *qualityPtr >= 0 {
		cfg.Quality = *qualityPtr
	}

	prj, err := openProject(fs, cfg)
	if err != nil {
		return err
	}

	out := *outputPtr
	if out == "" {
		out = cfg.OutputPath
	}
	if out == "" {
		out = defaultOutput(cfg, prj.p, ".mp4")
	}
	cfg.OutputPath = out

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var enc video.Encoder
	if isVideo(out) {
		if err := system.CheckFFmpeg(); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return err
		}
		if cfg.VideoEncoder == "" {
			cfg.VideoEncoder = system.GetBestH264Encoder()
			if cfg.VideoEncoder != "libx264" {
				fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", cfg.VideoEncoder)
			}
		}
		if *audioPtr != "" {
			if d, err := system.GetAudioDuration(*audioPtr); err == nil {
				fmt.Printf("[*] Аудио: %s (%.2fs)\n", *audioPtr, d)
			} else {
				log.Printf("[!] Не удалось получить длительность аудио: %v", err)
			}
		}
		ffmpeg, err := video.NewFFmpegEncoder(ctx, out, video.Params{
			Width:     cfg.Width,
			Height:    cfg.Height,
			FPS:       cfg.FPS,
			Encoder:   cfg.VideoEncoder,
			Quality:   cfg.Quality,
			AudioPath: *audioPtr,
		})
		if err != nil {
			return err
		}
		enc = ffmpeg
	} else {
		seq, err := video.NewPNGSequence(out)
		if err != nil {
			return err
		}
		enc = seq
	}

	if cfg.ShowStats {
		fmt.Printf("[*] CPU: %s\n", system.CPUModel())
	}
	project := engine.NewExportProject(cfg, prj.p, prj.engine, prj.assets, enc)
	if err := project.Run(ctx); err != nil {
		return fmt.Errorf("ошибка проекта: %w", err)
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", out)
	return nil
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	pf := newProjectFlags(fs)
	resumePtr := fs.Bool("resume", false, "Продолжить с последнего показанного шага")
	fullscreenPtr := fs.Bool("fullscreen", false, "Полноэкранный режим")
	fs.Parse(args)

	cfg, err := pf.load()
	if err != nil {
		return err
	}
	if *fullscreenPtr {
		cfg.Fullscreen = true
	}
	prj, err := openProject(fs, cfg)
	if err != nil {
		return err
	}

	ctl := player.NewController(prj.p, player.Options{
		LandingFrames:    cfg.LandingFrames,
		Transition:       cfg.Transition(),
		TransitionFrames: cfg.TransitionFrames,
	})

	resume, err := player.OpenResumeStore()
	if err != nil {
		log.Printf("[!] Позиция показа не будет сохранена: %v", err)
	}
	if *resumePtr {
		step, ok, err := resume.Load(prj.p.Name)
		switch {
		case err != nil:
			log.Printf("[!] Не удалось прочитать позицию: %v", err)
		case ok:
			ctl.Jump(step)
			fmt.Printf("[*] Продолжаем с шага %d\n", step+1)
		}
	}

	fmt.Println("[*] Управление: Пробел/→ - дальше, B/← - назад, R - сначала, F - полный экран, Q/Esc - выход")
	w := window.New(prj.p, ctl, prj.engine, prj.assets, resume, window.Config{
		Width:      cfg.Width,
		Height:     cfg.Height,
		FPS:        cfg.FPS,
		Fullscreen: cfg.Fullscreen,
	})
	return w.Run()
}

func runNew(args []string) error {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	configPtr := fs.String("config", "", "Путь к файлу проекта")
	namePtr := fs.String("name", "", "Имя презентации")
	outputPtr := fs.String("o", "", "Путь к файлу схемы (.json или .yaml)")
	fromPtr := fs.String("from", "", "PDF, изображение или папка с изображениями: по шагу на страницу")
	detectorPtr := fs.String("detector", "contrast", "Детектор блоков для -from")
	fs.Parse(args)

	name := *namePtr
	if name == "" {
		name = "example_presentation"
		if *fromPtr != "" {
			base := filepath.Base(*fromPtr)
			name = strings.ReplaceAll(strings.TrimSuffix(base, filepath.Ext(base)), " ", "_")
		}
	}

	out := *outputPtr
	if out == "" {
		cfg, err := config.LoadOrDefault(*configPtr)
		if err != nil {
			return err
		}
		out = schema.GeneratePath(cfg.PresentationsDir, name)
	}
	if _, err := os.Stat(out); err == nil {
		return fmt.Errorf("файл %s уже существует", out)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}

	p := schema.Example(name)
	if *fromPtr != "" {
		var err error
		if p, err = importPages(*fromPtr, filepath.Dir(out), name, *detectorPtr); err != nil {
			return err
		}
	}
	if err := schema.Save(out, p); err != nil {
		return err
	}
	fmt.Printf("[+++] Успех! Создана презентация: %s (шагов: %d)\n", out, len(p.Steps))
	return nil
}

// importPages builds a presentation with one step per page of path. Image
// sources are written relative to dir.
func importPages(path, dir, name, variant string) (*schema.Presentation, error) {
	det, err := analyzer.NewDetector(variant)
	if err != nil {
		return nil, err
	}
	refs, err := source.PageRefs(path, dir)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации источника: %w", err)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("в источнике нет страниц или изображений")
	}

	fmt.Printf("[*] Анализ страниц: %d\n", len(refs))
	pages, err := director.Analyze(refs, source.NewStore(dir, analysisDPI), det)
	if err != nil {
		return nil, err
	}
	for _, pg := range pages {
		fmt.Printf("[>] %s: блоков %d\n", pg.Src, len(pg.Blocks))
	}
	return director.NewDirector().Presentation(name, pages)
}

// analysisDPI keeps block detection fast on large pages.
const analysisDPI = 72

// renderFrame records one frame of step, or of the landing page.
func renderFrame(prj *project, step int, progress, transition float64) (*canvas.Frame, error) {
	if step == engine.LandingStep {
		return prj.engine.LandingFrame(prj.p, progress)
	}
	s := &prj.p.Steps[step]
	kind := s.Transition
	if kind == "" {
		kind = prj.cfg.Transition()
	}
	return prj.engine.Frame(s, progress, kind, transition)
}

func isVideo(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov", ".mkv", ".webm":
		return true
	}
	return false
}
