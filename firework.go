package fireworks

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultBlastRadius is the spread radius used when FireworkConfig.BlastRadius is 0.
	DefaultBlastRadius = 50.0
	// DefaultChargeSpeed is the fraction of the remaining distance a charge
	// covers per tick when FireworkConfig.ChargeSpeed is 0.
	DefaultChargeSpeed = 0.05
	// ChargeSize is the radius of the rising charge.
	ChargeSize = 4.0
	// BlastTolerance is the per-axis distance at which a charge detonates.
	BlastTolerance = 5.0

	minParticleLife   = 60
	particleLifeRange = 60
)

// ErrEmptyPalette is returned when a firework is configured without colors.
var ErrEmptyPalette = errors.New("empty palette")

// State is the phase of a Firework.
type State uint8

const (
	StateCharging  State = iota // charge rising toward the blast point
	StateExploding              // charge spent, particles alive or gone
)

func (s State) String() string {
	switch s {
	case StateCharging:
		return "charging"
	case StateExploding:
		return "exploding"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// FireworkConfig describes a single firework.
type FireworkConfig struct {
	// LaunchPoint is where the charge starts.
	LaunchPoint Vec2
	// BlastPoint is where the charge detonates.
	BlastPoint Vec2
	// ChargeSpeed is the fraction of the remaining distance covered per
	// tick, in (0, 1]. Zero selects DefaultChargeSpeed.
	ChargeSpeed float64
	// BlastPower is the number of particles spawned on detonation.
	BlastPower int
	// BlastRadius scales particle speed. Zero selects DefaultBlastRadius.
	BlastRadius float64
	// Colors is the palette particles sample from, with replacement.
	Colors Palette
	// Rand drives angle, speed, color and life of particles. Nil selects
	// the process-wide source.
	Rand Rand
}

// charge is the projectile phase of a firework.
type charge struct {
	pos    Vec2
	target Vec2
	speed  float64
	size   float64
	color  Color
}

// blast is the explosion configuration and its live particles.
type blast struct {
	colors    Palette
	power     int
	radius    float64
	particles []*Particle
}

// Firework owns a charge that rises toward its blast point and, once it
// arrives, the particles of its explosion. Call Tick once per frame.
//
// A Firework never removes itself. Once exploding with no particles left it
// draws nothing; whether it stays in a Scene is the Scene's policy.
type Firework struct {
	state   State
	charge  charge
	blast   blast
	rng     Rand
	surface Surface
}

// NewFirework validates cfg and returns a Firework in StateCharging.
func NewFirework(cfg FireworkConfig) (*Firework, error) {
	if len(cfg.Colors) == 0 {
		return nil, fmt.Errorf("new firework: %w", ErrEmptyPalette)
	}
	if cfg.BlastPower < 0 {
		return nil, fmt.Errorf("new firework: negative blast power %d", cfg.BlastPower)
	}
	if cfg.BlastRadius < 0 {
		return nil, fmt.Errorf("new firework: negative blast radius %g", cfg.BlastRadius)
	}
	if cfg.ChargeSpeed < 0 || cfg.ChargeSpeed > 1 {
		return nil, fmt.Errorf("new firework: charge speed %g outside (0, 1]", cfg.ChargeSpeed)
	}

	speed := cfg.ChargeSpeed
	if speed == 0 {
		speed = DefaultChargeSpeed
	}
	radius := cfg.BlastRadius
	if radius == 0 {
		radius = DefaultBlastRadius
	}
	rng := cfg.Rand
	if rng == nil {
		rng = globalRand{}
	}

	colors := make(Palette, len(cfg.Colors))
	copy(colors, cfg.Colors)

	return &Firework{
		state: StateCharging,
		charge: charge{
			pos:    cfg.LaunchPoint,
			target: cfg.BlastPoint,
			speed:  speed,
			size:   ChargeSize,
			color:  ColorWhite,
		},
		blast: blast{
			colors: colors,
			power:  cfg.BlastPower,
			radius: radius,
		},
		rng: rng,
	}, nil
}

// Bind associates the firework and its particles, current and future, with
// a drawing surface. An absent surface is logged and the previous binding
// is kept.
func (f *Firework) Bind(s Surface) {
	if !validSurface(s) {
		logger.Printf("error: firework bind: invalid surface %v", s)
		return
	}
	f.surface = s
	for _, p := range f.blast.particles {
		p.Bind(s)
	}
}

// Surface returns the bound surface, or nil.
func (f *Firework) Surface() Surface {
	return f.surface
}

// State returns the current phase.
func (f *Firework) State() State {
	return f.state
}

// ChargePosition returns the current position of the charge.
func (f *Firework) ChargePosition() Vec2 {
	return f.charge.pos
}

// ParticleCount returns the number of live particles.
func (f *Firework) ParticleCount() int {
	return len(f.blast.particles)
}

// Particles returns the live particles. The returned slice MUST NOT be mutated.
func (f *Firework) Particles() []*Particle {
	return f.blast.particles
}

// Finished reports whether the firework has exploded and every particle
// has died.
func (f *Firework) Finished() bool {
	return f.state == StateExploding && len(f.blast.particles) == 0
}

// Tick advances the firework by one step and draws it on the bound surface.
//
// An unbound firework is not frozen: the charge keeps rising and particles
// keep ageing, so binding later shows the show where it would be. Only the
// drawing is skipped, with one warning per tick.
func (f *Firework) Tick() {
	bound := f.surface != nil
	if !bound {
		logger.Printf("warning: firework has no surface (state %s)", f.state)
	}

	switch f.state {
	case StateCharging:
		f.moveCharge()
		if bound {
			fillCircle(f.surface, f.charge.pos.X, f.charge.pos.Y, f.charge.size, f.charge.color)
		}
	case StateExploding:
		f.updateParticles(bound)
	}
}

// moveCharge closes the configured fraction of the gap to the blast point
// and detonates once both axes are inside BlastTolerance.
func (f *Firework) moveCharge() {
	c := &f.charge
	c.pos.X += (c.target.X - c.pos.X) * c.speed
	c.pos.Y += (c.target.Y - c.pos.Y) * c.speed

	if math.Abs(c.pos.X-c.target.X) < BlastTolerance &&
		math.Abs(c.pos.Y-c.target.Y) < BlastTolerance {
		f.state = StateExploding
		f.detonate(c.target.X, c.target.Y)
	}
}

// detonate spawns BlastPower particles at (x, y). Each particle gets a
// uniform heading, a speed in [1, 1+radius*0.1), a palette color and a life
// in [60, 120) ticks.
func (f *Firework) detonate(x, y float64) {
	b := &f.blast
	if cap(b.particles)-len(b.particles) < b.power {
		grown := make([]*Particle, len(b.particles), len(b.particles)+b.power)
		copy(grown, b.particles)
		b.particles = grown
	}
	for i := 0; i < b.power; i++ {
		angle := f.rng.Float64() * 2 * math.Pi
		speed := f.rng.Float64()*b.radius*0.1 + 1
		c := b.colors[f.rng.IntN(len(b.colors))]
		life := minParticleLife + f.rng.IntN(particleLifeRange)

		p := NewParticle(x, y, c, angle, speed, life)
		if f.surface != nil {
			p.Bind(f.surface)
		}
		b.particles = append(b.particles, p)
	}
}

// updateParticles advances and draws every particle, then compacts the
// slice in place, dropping dead particles.
func (f *Firework) updateParticles(draw bool) {
	alive := f.blast.particles[:0]
	for _, p := range f.blast.particles {
		p.Advance()
		if draw {
			p.Draw()
		}
		if p.Alive() {
			alive = append(alive, p)
		}
	}
	// Release dropped pointers held in the tail.
	for i := len(alive); i < len(f.blast.particles); i++ {
		f.blast.particles[i] = nil
	}
	f.blast.particles = alive
}
