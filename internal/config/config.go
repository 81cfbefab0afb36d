package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/slideanim/internal/effects"
)

// DefaultFile is the project file looked up in the working directory.
const DefaultFile = "slideanim.yaml"

type Config struct {
	InputPath        string            `yaml:"-"`
	OutputPath       string            `yaml:"output,omitempty"`
	Width            int               `yaml:"width"`
	Height           int               `yaml:"height"`
	FPS              int               `yaml:"fps"`
	Workers          int               `yaml:"workers"`
	TransitionType   string            `yaml:"transition"`
	TransitionFrames int               `yaml:"transition_frames"`
	LandingFrames    int               `yaml:"landing_frames"`
	IncludeLanding   bool              `yaml:"include_landing"`
	HoldFrames       int               `yaml:"hold_frames"`
	DPI              int               `yaml:"dpi"`
	PresentationsDir string            `yaml:"presentations_dir"`
	OutputDir        string            `yaml:"output_dir"`
	VideoEncoder     string            `yaml:"encoder,omitempty"`
	Quality          int               `yaml:"quality"` // 0 picks the encoder default
	ShowStats        bool              `yaml:"show_stats"`
	PhaseMarkers     bool              `yaml:"phase_markers"`
	Fullscreen       bool              `yaml:"fullscreen"`
	Theme            map[string]string `yaml:"theme,omitempty"`
	BuildVersion     string            `yaml:"-"`
}

// FrameParams describes the frames exported for one step.
type FrameParams struct {
	Width, Height    int
	FPS              int
	StepIndex        int
	Frames           int
	HoldFrames       int
	Transition       effects.Kind
	TransitionFrames int
}

// Total is the number of frames the step contributes to an export.
func (p FrameParams) Total() int {
	return p.Frames + p.HoldFrames
}

// Duration is the length of the step segment in seconds.
func (p FrameParams) Duration() float64 {
	if p.FPS <= 0 {
		return 0
	}
	return float64(p.Total()) / float64(p.FPS)
}

func Default() *Config {
	return &Config{
		Width:            1280,
		Height:           720,
		FPS:              30,
		Workers:          4,
		TransitionType:   string(effects.Fade),
		TransitionFrames: 15,
		LandingFrames:    60,
		IncludeLanding:   true,
		HoldFrames:       30,
		DPI:              150,
		PresentationsDir: "presentations",
		OutputDir:        "output",
	}
}

// Load reads a project file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, or DefaultFile when path is empty. A missing
// DefaultFile yields the defaults; a missing explicit path is an error.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := Load(DefaultFile)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("resolution must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return fmt.Errorf("resolution must be even for yuv420p, got %dx%d", c.Width, c.Height)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("fps must be between 1 and 240, got %d", c.FPS)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Workers)
	}
	if c.TransitionFrames < 0 || c.LandingFrames < 0 || c.HoldFrames < 0 {
		return fmt.Errorf("frame counts cannot be negative")
	}
	if c.TransitionType != "" && !effects.Kind(c.TransitionType).Valid() {
		return fmt.Errorf("transition must be one of %v, got %q", effects.Kinds(), c.TransitionType)
	}
	if c.Quality < 0 || c.Quality > 100 {
		return fmt.Errorf("quality must be between 0 and 100, got %d", c.Quality)
	}
	return nil
}

// Transition returns the configured default step transition.
func (c *Config) Transition() effects.Kind {
	if c.TransitionType == "" {
		return effects.None
	}
	return effects.Kind(c.TransitionType)
}
