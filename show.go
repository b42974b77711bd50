package fireworks

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultShowWidth and DefaultShowHeight size a show that omits them.
	DefaultShowWidth  = 500
	DefaultShowHeight = 750
)

// ShowConfig is the YAML description of a fireworks show.
//
//	width: 330
//	height: 430
//	loop: true
//	background: "#0b1026"
//	fireworks:
//	  - launch: {x: 165, y: 430}
//	    blast: {x: 165, y: 115}
//	    power: 100
//	    colors: ["#FF0000", "lime"]
type ShowConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Loop keeps the scene ticking every frame. When false the scene ticks
	// exactly once and the first frame stays on screen.
	Loop       bool            `yaml:"loop"`
	Background *Color          `yaml:"background"`
	Seed       uint64          `yaml:"seed"`
	Prune      bool            `yaml:"prune"`
	Flash      *FlashConfig    `yaml:"flash"`
	Fireworks  []FireworkSpec  `yaml:"fireworks"`
	AutoLaunch *AutoLaunchSpec `yaml:"autoLaunch"`
}

// FlashConfig enables the background flash on detonation.
type FlashConfig struct {
	Strength float64 `yaml:"strength"`
	Ticks    int     `yaml:"ticks"`
}

// FireworkSpec is one firework of a show.
type FireworkSpec struct {
	Launch      Vec2    `yaml:"launch"`
	Blast       Vec2    `yaml:"blast"`
	Power       int     `yaml:"power"`
	Radius      float64 `yaml:"radius"`
	ChargeSpeed float64 `yaml:"chargeSpeed"`
	// Delay is the number of ticks before the charge is launched.
	Delay  int     `yaml:"delay"`
	Colors Palette `yaml:"colors"`
	// Rainbow, when positive and Colors is empty, generates a palette of
	// that many evenly spaced hues.
	Rainbow int `yaml:"rainbow"`
}

// AutoLaunchSpec is the YAML form of AutoLaunch.
type AutoLaunchSpec struct {
	Interval    int     `yaml:"interval"`
	Power       Range   `yaml:"power"`
	Radius      Range   `yaml:"radius"`
	Height      Range   `yaml:"height"`
	ChargeSpeed float64 `yaml:"chargeSpeed"`
	Colors      Palette `yaml:"colors"`
	Rainbow     int     `yaml:"rainbow"`
}

// Show is a built show: the scene, the launcher feeding it and the loop
// flag for the frame clock.
type Show struct {
	Scene    *Scene
	Launcher *Launcher
	Loop     bool
}

// DefaultShow returns the classic single firework: a 330x430 sky with one
// charge rising from the bottom centre to 100 units above the middle.
func DefaultShow() *ShowConfig {
	const w, h = 330, 430
	return &ShowConfig{
		Width:  w,
		Height: h,
		Loop:   true,
		Fireworks: []FireworkSpec{{
			Launch: Vec2{X: w / 2, Y: h},
			Blast:  Vec2{X: w / 2, Y: h/2 - 100},
			Power:  100,
			Colors: DefaultPalette,
		}},
	}
}

// LoadShow parses YAML show data, applies defaults and validates it.
func LoadShow(data []byte) (*ShowConfig, error) {
	var cfg ShowConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse show: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid show: %w", err)
	}
	return &cfg, nil
}

// LoadShowFile reads and parses the show at path.
func LoadShowFile(path string) (*ShowConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read show: %w", err)
	}
	return LoadShow(data)
}

func (c *ShowConfig) applyDefaults() {
	if c.Width == 0 {
		c.Width = DefaultShowWidth
	}
	if c.Height == 0 {
		c.Height = DefaultShowHeight
	}
}

// Validate reports the first invalid field, prefixed with its path.
func (c *ShowConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("size: must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.Flash != nil && (c.Flash.Strength < 0 || c.Flash.Strength > 1 || c.Flash.Ticks < 0) {
		return fmt.Errorf("flash: strength %g ticks %d out of range", c.Flash.Strength, c.Flash.Ticks)
	}
	for i := range c.Fireworks {
		if err := c.Fireworks[i].validate(); err != nil {
			return fmt.Errorf("fireworks[%d].%w", i, err)
		}
	}
	if c.AutoLaunch != nil {
		if err := c.AutoLaunch.toAutoLaunch().Validate(); err != nil {
			return fmt.Errorf("autoLaunch.%w", err)
		}
	}
	return nil
}

func (s FireworkSpec) palette() Palette {
	if len(s.Colors) == 0 && s.Rainbow > 0 {
		return RainbowPalette(s.Rainbow)
	}
	return s.Colors
}

func (s FireworkSpec) validate() error {
	if len(s.palette()) == 0 {
		return fmt.Errorf("colors: %w", ErrEmptyPalette)
	}
	if s.Power < 0 {
		return fmt.Errorf("power: must not be negative, got %d", s.Power)
	}
	if s.Radius < 0 {
		return fmt.Errorf("radius: must not be negative, got %g", s.Radius)
	}
	if s.ChargeSpeed < 0 || s.ChargeSpeed > 1 {
		return fmt.Errorf("chargeSpeed: %g outside (0, 1]", s.ChargeSpeed)
	}
	if s.Delay < 0 {
		return fmt.Errorf("delay: must not be negative, got %d", s.Delay)
	}
	return nil
}

func (s FireworkSpec) config(rng Rand) FireworkConfig {
	return FireworkConfig{
		LaunchPoint: s.Launch,
		BlastPoint:  s.Blast,
		ChargeSpeed: s.ChargeSpeed,
		BlastPower:  s.Power,
		BlastRadius: s.Radius,
		Colors:      s.palette(),
		Rand:        rng,
	}
}

func (s *AutoLaunchSpec) toAutoLaunch() AutoLaunch {
	def := DefaultAutoLaunch()
	a := AutoLaunch{
		Interval:    s.Interval,
		Power:       s.Power,
		Radius:      s.Radius,
		Height:      s.Height,
		ChargeSpeed: s.ChargeSpeed,
	}
	if a.Interval == 0 {
		a.Interval = def.Interval
	}
	if a.Power == (Range{}) {
		a.Power = def.Power
	}
	if a.Radius == (Range{}) {
		a.Radius = def.Radius
	}
	if a.Height == (Range{}) {
		a.Height = def.Height
	}
	switch {
	case len(s.Colors) > 0:
		a.Palettes = []Palette{s.Colors}
	case s.Rainbow > 0:
		rainbow := RainbowPalette(s.Rainbow)
		// Each burst gets one hue plus white sparks.
		for _, c := range rainbow {
			a.Palettes = append(a.Palettes, Palette{c, ColorWhite})
		}
	default:
		a.Palettes = def.Palettes
	}
	return a
}

// Build creates the scene on surface, adds every firework and wires the
// launcher. Fireworks without a delay are added to the scene directly.
func (c *ShowConfig) Build(surface Surface) (*Show, error) {
	if !validSurface(surface) {
		return nil, errors.New("build show: invalid surface")
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("build show: %w", err)
	}

	scene := NewScene(surface, c.Width, c.Height)
	if c.Background != nil {
		scene.Background = *c.Background
	}
	scene.PruneFinished = c.Prune
	if c.Flash != nil {
		scene.SetFlash(c.Flash.Strength, c.Flash.Ticks)
	}

	rng := NewRand(c.Seed)
	launcher := NewLauncher(scene, rng)
	scene.AddEntity(launcher)

	for i, spec := range c.Fireworks {
		cfg := spec.config(rng)
		if spec.Delay == 0 {
			if _, err := scene.AddFirework(cfg); err != nil {
				return nil, fmt.Errorf("build show: fireworks[%d]: %w", i, err)
			}
			continue
		}
		if err := launcher.Schedule(spec.Delay, cfg); err != nil {
			return nil, fmt.Errorf("build show: fireworks[%d]: %w", i, err)
		}
	}
	if c.AutoLaunch != nil {
		a := c.AutoLaunch.toAutoLaunch()
		if err := launcher.SetAuto(&a); err != nil {
			return nil, fmt.Errorf("build show: %w", err)
		}
	}

	return &Show{Scene: scene, Launcher: launcher, Loop: c.Loop}, nil
}
