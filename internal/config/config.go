// Package config loads the scene configuration from TOML.
//
// A file only needs the keys it changes; everything else keeps the values
// from Default. Unknown keys are rejected so typos do not pass silently.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"scrollscene/internal/tween"
	"scrollscene/quarkgl"
)

// DefaultPath is looked up when no -config flag is given. It may be absent.
const DefaultPath = "scrollscene.toml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the whole configuration file.
type Config struct {
	Window   Window    `toml:"window"`
	Scene    Scene     `toml:"scene"`
	Motion   Motion    `toml:"motion"`
	Tween    Tween     `toml:"tween"`
	Sections []Section `toml:"section"`
}

// Window configures the host surface.
type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// RenderScale is the framebuffer resolution relative to the window.
	RenderScale float64 `toml:"render_scale"`
	TPS         int     `toml:"tps"`
}

// Scene configures what is drawn. The color fields are live-tunable: a
// reload applies them without restarting.
type Scene struct {
	MaterialColor string `toml:"material_color"`
	ParticleColor string `toml:"particle_color"`
	LightColor    string `toml:"light_color"`
	Background    string `toml:"background"`

	ObjectsDistance float64    `toml:"objects_distance"`
	ParticleCount   int        `toml:"particle_count"`
	ParticleSize    float64    `toml:"particle_size"`
	Seed            int64      `toml:"seed"`
	ToonSteps       int        `toml:"toon_steps"`
	LightPosition   [3]float64 `toml:"light_position"`
	LightIntensity  float64    `toml:"light_intensity"`
	Ambient         float64    `toml:"ambient"`
	FOV             float64    `toml:"fov"` // vertical, degrees
	CameraDistance  float64    `toml:"camera_distance"`
}

// Motion configures the frame driver.
type Motion struct {
	Smoothing  float64 `toml:"smoothing"`
	MaxDelta   float64 `toml:"max_delta"`
	ScrollStep float64 `toml:"scroll_step"` // pixels per wheel notch
}

// Tween configures the section-change rotation burst.
type Tween struct {
	Duration float64    `toml:"duration"`
	Ease     string     `toml:"ease"`
	Delta    [3]float64 `toml:"delta"`
	Overlap  string     `toml:"overlap"`
}

// Shape names a section mesh.
type Shape string

const (
	ShapeTorus     Shape = "torus"
	ShapeCone      Shape = "cone"
	ShapeTorusKnot Shape = "torusknot"
)

// shapeCycle fills in sections that do not name a shape.
var shapeCycle = []Shape{ShapeTorus, ShapeCone, ShapeTorusKnot}

// Section is one page section: a caption and the object shown beside it.
type Section struct {
	Title string `toml:"title"`
	Shape Shape  `toml:"shape"`
}

// Default returns the configuration of the original page.
func Default() Config {
	return Config{
		Window: Window{
			Title:       "scrollscene",
			Width:       1000,
			Height:      800,
			RenderScale: 0.5,
			TPS:         60,
		},
		Scene: Scene{
			MaterialColor:   "#59d2f3",
			ParticleColor:   "#f4afba",
			LightColor:      "#aae1d8",
			Background:      "#1e1a20",
			ObjectsDistance: 4,
			ParticleCount:   200,
			ParticleSize:    0.1,
			ToonSteps:       5,
			LightPosition:   [3]float64{1, 1, 0},
			LightIntensity:  1,
			Ambient:         0.15,
			FOV:             35,
			CameraDistance:  6,
		},
		Motion: Motion{
			Smoothing:  1.2,
			ScrollStep: 100,
		},
		Tween: Tween{
			Duration: 1.5,
			Ease:     "power2.inOut",
			Delta:    [3]float64{6, 3, 1.5},
			Overlap:  "override",
		},
		Sections: []Section{
			{Title: "My Portfolio", Shape: ShapeTorus},
			{Title: "My projects", Shape: ShapeCone},
			{Title: "Contact me", Shape: ShapeTorusKnot},
		},
	}
}

// Decode reads TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	sections := cfg.Sections
	cfg.Sections = nil
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Sections == nil {
		cfg.Sections = sections
	}
	for i := range cfg.Sections {
		if cfg.Sections[i].Shape == "" {
			cfg.Sections[i].Shape = shapeCycle[i%len(shapeCycle)]
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the file at path. A missing file yields the defaults unless
// required is set.
func Load(path string, required bool) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Decode(bytes.NewReader(b))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.RenderScale <= 0 || c.Window.RenderScale > 4 {
		bad("window.render_scale %v not in (0, 4]", c.Window.RenderScale)
	}
	if c.Window.TPS <= 0 {
		bad("window.tps %d", c.Window.TPS)
	}

	for _, f := range []struct{ name, value string }{
		{"scene.material_color", c.Scene.MaterialColor},
		{"scene.particle_color", c.Scene.ParticleColor},
		{"scene.light_color", c.Scene.LightColor},
		{"scene.background", c.Scene.Background},
	} {
		if _, err := ParseColor(f.value); err != nil {
			bad("%s: %v", f.name, err)
		}
	}
	if c.Scene.ObjectsDistance <= 0 {
		bad("scene.objects_distance %v", c.Scene.ObjectsDistance)
	}
	if c.Scene.ParticleCount < 0 {
		bad("scene.particle_count %d", c.Scene.ParticleCount)
	}
	if c.Scene.ParticleSize <= 0 {
		bad("scene.particle_size %v", c.Scene.ParticleSize)
	}
	if c.Scene.FOV <= 0 || c.Scene.FOV >= 180 {
		bad("scene.fov %v not in (0, 180)", c.Scene.FOV)
	}
	if c.Scene.CameraDistance <= 0 {
		bad("scene.camera_distance %v", c.Scene.CameraDistance)
	}

	if c.Motion.Smoothing < 0 {
		bad("motion.smoothing %v", c.Motion.Smoothing)
	}
	if c.Motion.MaxDelta < 0 {
		bad("motion.max_delta %v", c.Motion.MaxDelta)
	}
	if c.Motion.ScrollStep <= 0 {
		bad("motion.scroll_step %v", c.Motion.ScrollStep)
	}

	if c.Tween.Duration < 0 {
		bad("tween.duration %v", c.Tween.Duration)
	}
	if _, err := tween.Parse(c.Tween.Ease); err != nil {
		bad("tween.ease: %v", err)
	}
	if _, err := tween.ParsePolicy(c.Tween.Overlap); err != nil {
		bad("tween.overlap: %v", err)
	}

	if len(c.Sections) == 0 {
		bad("at least one [[section]] is required")
	}
	for i, s := range c.Sections {
		switch s.Shape {
		case ShapeTorus, ShapeCone, ShapeTorusKnot:
		default:
			bad("section %d: unknown shape %q", i, s.Shape)
		}
	}
	return errors.Join(errs...)
}

// Transition returns the section transition. The config must be valid.
func (c Config) Transition() tween.Transition {
	ease, err := tween.Parse(c.Tween.Ease)
	if err != nil {
		ease = tween.PowerInOut(2)
	}
	d := c.Tween.Delta
	return tween.Transition{
		Duration: c.Tween.Duration,
		Ease:     ease,
		Delta:    quarkgl.V3(quarkgl.Scalar(d[0]), quarkgl.Scalar(d[1]), quarkgl.Scalar(d[2])),
	}
}

// OverlapPolicy returns the tween overlap policy. The config must be valid.
func (c Config) OverlapPolicy() tween.Policy {
	p, _ := tween.ParsePolicy(c.Tween.Overlap)
	return p
}

// Palette is the live-tunable part of the scene.
type Palette struct {
	Material   quarkgl.Color
	Particle   quarkgl.Color
	Light      quarkgl.Color
	Background quarkgl.Color
}

// Palette resolves the scene colors. The config must be valid.
func (c Config) Palette() Palette {
	must := func(s string) quarkgl.Color {
		col, err := ParseColor(s)
		if err != nil {
			return quarkgl.RGB(0xFF, 0x00, 0xFF)
		}
		return col
	}
	return Palette{
		Material:   must(c.Scene.MaterialColor),
		Particle:   must(c.Scene.ParticleColor),
		Light:      must(c.Scene.LightColor),
		Background: must(c.Scene.Background),
	}
}

// ParseColor parses a CSS hex color ("#rrggbb" or "#rgb").
func ParseColor(s string) (quarkgl.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return quarkgl.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return quarkgl.RGB(r, g, b), nil
}
