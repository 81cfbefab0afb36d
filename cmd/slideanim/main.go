package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/slideanim/internal/config"
	"github.com/ivlev/slideanim/internal/render"
	"github.com/ivlev/slideanim/internal/schema"
	"github.com/ivlev/slideanim/internal/source"
	"github.com/ivlev/slideanim/internal/style"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

const usage = `Использование: slideanim <команда> [флаги] [файл]

Команды:
  validate  проверить схему презентации
  list      показать презентации в папке
  render    отрисовать один кадр в PNG или SVG
  export    экспортировать презентацию в MP4 или набор PNG
  play      показать презентацию в окне
  new       создать пример презентации
`

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	commands := map[string]func(args []string) error{
		"validate": runValidate,
		"list":     runList,
		"render":   runRender,
		"export":   runExport,
		"play":     runPlay,
		"new":      runNew,
	}
	name := os.Args[1]
	if name == "-h" || name == "-help" || name == "help" {
		fmt.Print(usage)
		return
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "[-] Неизвестная команда %q\n\n%s", name, usage)
		os.Exit(2)
	}
	if err := cmd(os.Args[2:]); err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}
}

// projectFlags are shared by the commands that render frames. Only flags
// set on the command line override the project file.
type projectFlags struct {
	fs *flag.FlagSet

	config     *string
	width      *int
	height     *int
	preset     *string
	fps        *int
	workers    *int
	transition *string
	transFrame *int
	dpi        *int
	markers    *bool
}

func newProjectFlags(fs *flag.FlagSet) *projectFlags {
	d := config.Default()
	return &projectFlags{
		fs:         fs,
		config:     fs.String("config", "", "Путь к файлу проекта (по умолчанию: "+config.DefaultFile+", если есть)"),
		width:      fs.Int("width", d.Width, "Ширина"),
		height:     fs.Int("height", d.Height, "Высота"),
		preset:     fs.String("preset", "", "Пресет формата: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram), 1:1"),
		fps:        fs.Int("fps", d.FPS, "FPS"),
		workers:    fs.Int("workers", d.Workers, "Потоки (0 - по числу ядер)"),
		transition: fs.String("transition", d.TransitionType, "Переход между шагами: none, fade, slide_left, slide_right, slide_up, slide_down, zoom"),
		transFrame: fs.Int("transition-frames", d.TransitionFrames, "Длительность перехода в кадрах"),
		dpi:        fs.Int("dpi", d.DPI, "DPI для страниц PDF"),
		markers:    fs.Bool("phase-markers", false, "Показывать фазы анимации внизу кадра"),
	}
}

// load reads the project file and applies the flags that were set.
func (f *projectFlags) load() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(*f.config)
	if err != nil {
		return nil, err
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			cfg.Width = *f.width
		case "height":
			cfg.Height = *f.height
		case "fps":
			cfg.FPS = *f.fps
		case "workers":
			cfg.Workers = *f.workers
		case "transition":
			cfg.TransitionType = *f.transition
		case "transition-frames":
			cfg.TransitionFrames = *f.transFrame
		case "dpi":
			cfg.DPI = *f.dpi
		case "phase-markers":
			cfg.PhaseMarkers = *f.markers
		}
	})
	switch *f.preset {
	case "":
	case "16:9":
		cfg.Width, cfg.Height = 1280, 720
	case "9:16":
		cfg.Width, cfg.Height = 720, 1280
	case "4:5":
		cfg.Width, cfg.Height = 1080, 1350
	case "1:1":
		cfg.Width, cfg.Height = 1080, 1080
	default:
		return nil, fmt.Errorf("неизвестный пресет %q", *f.preset)
	}
	cfg.BuildVersion = Version
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// inputPath returns the positional schema argument, or the newest schema in
// the presentations directory.
func inputPath(fs *flag.FlagSet, cfg *config.Config) (string, error) {
	if fs.NArg() > 0 {
		return fs.Arg(0), nil
	}
	latest, err := schema.FindLatest(cfg.PresentationsDir)
	if err != nil {
		return "", fmt.Errorf("%w. Укажите файл или положите схему в %s/", err, cfg.PresentationsDir)
	}
	fmt.Printf("[*] Выбран файл: %s\n", latest)
	return latest, nil
}

// project is a loaded presentation ready to render.
type project struct {
	cfg    *config.Config
	p      *schema.Presentation
	engine *render.Engine
	assets *source.Store
}

func openProject(fs *flag.FlagSet, cfg *config.Config) (*project, error) {
	path, err := inputPath(fs, cfg)
	if err != nil {
		return nil, err
	}
	cfg.InputPath = path

	p, err := schema.Load(path)
	if err != nil {
		return nil, err
	}

	theme, err := style.Default().WithOverrides(cfg.Theme)
	if err != nil {
		return nil, fmt.Errorf("тема проекта: %w", err)
	}
	if theme, err = theme.WithOverrides(p.ColorOverrides); err != nil {
		return nil, fmt.Errorf("color_overrides: %w", err)
	}
	eng := render.New(theme)
	eng.ShowPhaseMarkers = cfg.PhaseMarkers

	assets := source.NewStore(filepath.Dir(path), cfg.DPI)
	if err := assets.Preload(p, cfg.Workers); err != nil {
		// Отсутствующие изображения рисуются заглушкой
		log.Printf("[!] Не все изображения загружены: %v", err)
	}
	if n := assets.Len(); n > 0 {
		fmt.Printf("[*] Загружено изображений: %d\n", n)
	}
	return &project{cfg: cfg, p: p, engine: eng, assets: assets}, nil
}

// defaultOutput builds output/<name>_<timestamp><suffix>.
func defaultOutput(cfg *config.Config, p *schema.Presentation, suffix string) string {
	name := p.Name
	if name == "" {
		base := filepath.Base(cfg.InputPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	cleanName := strings.ReplaceAll(name, " ", "_")
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(cfg.OutputDir, cleanName+"_"+timestamp+suffix)
}
