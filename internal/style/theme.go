package style

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// Default palette of the dark presentation theme.
var palette = map[string]string{
	"primary":    "#3B82F6",
	"secondary":  "#10B981",
	"accent":     "#F59E0B",
	"highlight":  "#EC4899",
	"purple":     "#A78BFA",
	"cyan":       "#06B6D4",
	"text":       "#F0F0F0",
	"dim":        "#6B7280",
	"bg":         "#0A0A0A",
	"bg_light":   "#1A1A1A",
	"panel":      "#12121A",
	"code_bg":    "#0D1117",
	"track":      "#333333",
	"warning":    "#EF4444",
	"success":    "#10B981",
	"error":      "#EF4444",
	"vector":     "#FF6B9D",
	"grid":       "#303030",
	"axis":       "#60A5FA",
	"point":      "#34D399",
	"projection": "#6B7280",
	"neuron":     "#4ECDC4",
	"active":     "#FF6B6B",
	"inactive":   "#95A5A6",
	"correct":    "#2ECC71",
	"wrong":      "#E74C3C",
	"connection": "#BDC3C7",
}

// Font sizes in points, relative to a 1080p frame.
const (
	TitleSize    = 36.0
	SubtitleSize = 26.0
	NormalSize   = 22.0
	SmallSize    = 18.0
	TinySize     = 16.0
	CodeSize     = 14.0
)

// Frame count presets for steps.
const (
	FramesFast   = 60
	FramesNormal = 90
	FramesSlow   = 120
)

// TextPreset bundles the font settings of a named text role.
type TextPreset struct {
	Size  float64
	Bold  bool
	Color string
}

var presets = map[string]TextPreset{
	"title":    {Size: TitleSize, Bold: true, Color: "text"},
	"subtitle": {Size: SubtitleSize, Color: "dim"},
	"body":     {Size: NormalSize, Color: "text"},
	"caption":  {Size: SmallSize, Color: "dim"},
	"footer":   {Size: TinySize, Color: "dim"},
	"heading":  {Size: SubtitleSize, Bold: true, Color: "primary"},
}

// Preset returns the named text preset.
func Preset(name string) (TextPreset, bool) {
	p, ok := presets[name]
	return p, ok
}

// Theme resolves symbolic color names. A Theme is immutable once built.
type Theme struct {
	colors map[string]color.NRGBA
}

// Default returns the built-in dark theme.
func Default() *Theme {
	t := &Theme{colors: make(map[string]color.NRGBA, len(palette))}
	for name, hex := range palette {
		c, err := ParseHex(hex)
		if err != nil {
			panic(fmt.Sprintf("style: bad palette entry %s: %v", name, err))
		}
		t.colors[name] = c
	}
	return t
}

// WithOverrides returns a copy of t with the given colors replaced. Values
// may be hex codes or names of other theme colors.
func (t *Theme) WithOverrides(overrides map[string]string) (*Theme, error) {
	out := &Theme{colors: make(map[string]color.NRGBA, len(t.colors)+len(overrides))}
	for k, v := range t.colors {
		out.colors[k] = v
	}
	for _, name := range sortedKeys(overrides) {
		c, ok := t.Lookup(overrides[name])
		if !ok {
			return nil, fmt.Errorf("color override %q: invalid color %q", name, overrides[name])
		}
		out.colors[name] = c
	}
	return out, nil
}

// Lookup resolves a symbolic name or hex code.
func (t *Theme) Lookup(name string) (color.NRGBA, bool) {
	if strings.HasPrefix(name, "#") {
		c, err := ParseHex(name)
		return c, err == nil
	}
	c, ok := t.colors[name]
	return c, ok
}

// Color resolves name, falling back to the text color.
func (t *Theme) Color(name string) color.NRGBA {
	if c, ok := t.Lookup(name); ok {
		return c
	}
	return t.colors["text"]
}

// ColorOr resolves name, or fallback when name is empty or unknown.
func (t *Theme) ColorOr(name, fallback string) color.NRGBA {
	if c, ok := t.Lookup(name); ok && name != "" {
		return c
	}
	return t.Color(fallback)
}

// Names lists the symbolic colors in the theme.
func (t *Theme) Names() []string {
	names := make([]string, 0, len(t.colors))
	for k := range t.colors {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Valid reports whether name resolves to a color.
func (t *Theme) Valid(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// ParseHex parses #RGB, #RRGGBB or #RRGGBBAA.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is translucent.
func Hex(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Mix blends a toward b by t in [0,1].
func Mix(a, b color.NRGBA, t float64) color.NRGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5) }
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
