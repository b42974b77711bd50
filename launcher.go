package fireworks

import (
	"errors"
	"fmt"
	"math"
)

// AutoLaunch describes periodic random launches.
type AutoLaunch struct {
	// Interval is the number of ticks between launches.
	Interval int
	// Power is the particle count range.
	Power Range
	// Radius is the blast radius range.
	Radius Range
	// Height is the blast height band as a fraction of the scene height,
	// measured from the top.
	Height Range
	// ChargeSpeed is passed through to every firework.
	ChargeSpeed float64
	// Palettes lists the palettes to pick from; one is chosen per launch.
	Palettes []Palette
}

// DefaultAutoLaunch returns settings close to the single demo firework.
func DefaultAutoLaunch() AutoLaunch {
	return AutoLaunch{
		Interval: 60,
		Power:    Range{Min: 60, Max: 120},
		Radius:   Range{Min: 40, Max: 70},
		Height:   Range{Min: 0.2, Max: 0.5},
		Palettes: []Palette{DefaultPalette},
	}
}

// Validate reports the first invalid field.
func (a AutoLaunch) Validate() error {
	if a.Interval <= 0 {
		return fmt.Errorf("interval: must be positive, got %d", a.Interval)
	}
	if a.Power.Min < 0 || a.Power.Max < a.Power.Min {
		return fmt.Errorf("power: invalid range [%g, %g]", a.Power.Min, a.Power.Max)
	}
	if a.Radius.Min < 0 || a.Radius.Max < a.Radius.Min {
		return fmt.Errorf("radius: invalid range [%g, %g]", a.Radius.Min, a.Radius.Max)
	}
	if a.Height.Min < 0 || a.Height.Max > 1 || a.Height.Max < a.Height.Min {
		return fmt.Errorf("height: invalid range [%g, %g]", a.Height.Min, a.Height.Max)
	}
	if a.ChargeSpeed < 0 || a.ChargeSpeed > 1 {
		return fmt.Errorf("chargeSpeed: %g outside (0, 1]", a.ChargeSpeed)
	}
	if len(a.Palettes) == 0 {
		return fmt.Errorf("palettes: %w", ErrEmptyPalette)
	}
	for i, p := range a.Palettes {
		if len(p) == 0 {
			return fmt.Errorf("palettes[%d]: %w", i, ErrEmptyPalette)
		}
	}
	return nil
}

type scheduledLaunch struct {
	at       uint64
	firework *Firework
}

// Launcher is a Scene entity that adds fireworks to its scene: scheduled
// ones after a delay, random ones at a fixed interval, and targeted ones on
// demand.
type Launcher struct {
	scene *Scene
	rng   Rand
	queue []scheduledLaunch
	auto  *AutoLaunch
	ticks uint64
}

// NewLauncher creates a launcher feeding scene. A nil rng selects the
// process-wide source.
func NewLauncher(scene *Scene, rng Rand) *Launcher {
	if rng == nil {
		rng = globalRand{}
	}
	return &Launcher{scene: scene, rng: rng}
}

// Schedule validates cfg and launches it delay ticks after the launcher's
// current tick. A zero delay launches on the next launcher tick.
func (l *Launcher) Schedule(delay int, cfg FireworkConfig) error {
	if delay < 0 {
		return fmt.Errorf("schedule: negative delay %d", delay)
	}
	if cfg.Rand == nil {
		cfg.Rand = l.rng
	}
	f, err := NewFirework(cfg)
	if err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	l.queue = append(l.queue, scheduledLaunch{at: l.ticks + uint64(delay), firework: f})
	return nil
}

// SetAuto enables periodic launches. Passing nil disables them.
func (l *Launcher) SetAuto(a *AutoLaunch) error {
	if a == nil {
		l.auto = nil
		return nil
	}
	if err := a.Validate(); err != nil {
		return fmt.Errorf("auto launch: %w", err)
	}
	cp := *a
	l.auto = &cp
	return nil
}

// Pending returns the number of scheduled fireworks not yet launched.
func (l *Launcher) Pending() int {
	return len(l.queue)
}

// Idle reports whether the launcher has nothing left to launch. An idle
// launcher stays in its scene so later Schedule and LaunchTo calls still
// fire; it is never pruned.
func (l *Launcher) Idle() bool {
	return l.auto == nil && len(l.queue) == 0
}

// Tick launches every scheduled firework that is due and, when auto launch
// is enabled, a random firework every Interval ticks.
func (l *Launcher) Tick() {
	waiting := l.queue[:0]
	for _, s := range l.queue {
		if s.at <= l.ticks {
			l.scene.AddEntity(s.firework)
			continue
		}
		waiting = append(waiting, s)
	}
	clear(l.queue[len(waiting):])
	l.queue = waiting

	if l.auto != nil && l.ticks%uint64(l.auto.Interval) == 0 {
		if _, err := l.launchRandom(); err != nil {
			logger.Printf("error: auto launch: %v", err)
		}
	}
	l.ticks++
}

// LaunchTo sends a random firework from the bottom edge straight up to
// target. Without auto launch settings DefaultAutoLaunch supplies power,
// radius and palette.
func (l *Launcher) LaunchTo(target Vec2) (*Firework, error) {
	a := l.settings()
	_, h := l.scene.Size()
	return l.scene.AddFirework(l.randomConfig(a, Vec2{X: target.X, Y: h}, target))
}

func (l *Launcher) launchRandom() (*Firework, error) {
	a := l.settings()
	w, h := l.scene.Size()
	if w <= 0 || h <= 0 {
		return nil, errors.New("scene has no area")
	}
	x := w * (0.1 + 0.8*l.rng.Float64())
	bx := x + (l.rng.Float64()-0.5)*w*0.2
	bx = math.Max(0, math.Min(w, bx))
	by := h * a.Height.Random(l.rng)
	return l.scene.AddFirework(l.randomConfig(a, Vec2{X: x, Y: h}, Vec2{X: bx, Y: by}))
}

func (l *Launcher) settings() AutoLaunch {
	if l.auto != nil {
		return *l.auto
	}
	return DefaultAutoLaunch()
}

func (l *Launcher) randomConfig(a AutoLaunch, from, to Vec2) FireworkConfig {
	return FireworkConfig{
		LaunchPoint: from,
		BlastPoint:  to,
		ChargeSpeed: a.ChargeSpeed,
		BlastPower:  int(math.Round(a.Power.Random(l.rng))),
		BlastRadius: a.Radius.Random(l.rng),
		Colors:      a.Palettes[l.rng.IntN(len(a.Palettes))],
		Rand:        l.rng,
	}
}
