package fireworks

import "math"

const (
	// ParticleStartSize is the radius of a freshly spawned particle.
	ParticleStartSize = 2.0
	// ParticleSizeDecay is subtracted from a particle's size every tick.
	ParticleSizeDecay = 0.05
)

// Particle is a single decaying point spawned by a detonation. It moves in a
// straight line at a constant speed, shrinks every tick, and is removed by
// its owning Firework once Life reaches zero.
type Particle struct {
	X, Y  float64
	Color Color
	// Angle is the direction of travel in radians.
	Angle float64
	// Speed is the distance travelled per tick.
	Speed float64
	// Life is the number of ticks left.
	Life int
	// Size is the radius, floored at 0.
	Size float64

	surface Surface
}

// NewParticle creates an unbound particle at (x, y).
func NewParticle(x, y float64, c Color, angle, speed float64, life int) *Particle {
	return &Particle{
		X:     x,
		Y:     y,
		Color: c,
		Angle: angle,
		Speed: speed,
		Life:  life,
		Size:  ParticleStartSize,
	}
}

// Bind associates the particle with a drawing surface. An absent surface is
// logged and the previous binding, if any, is kept.
func (p *Particle) Bind(s Surface) {
	if !validSurface(s) {
		logger.Printf("error: particle bind: invalid surface %v", s)
		return
	}
	p.surface = s
}

// Surface returns the bound surface, or nil.
func (p *Particle) Surface() Surface {
	return p.surface
}

// Advance moves the particle one tick along its heading, decrements its
// life and shrinks it.
func (p *Particle) Advance() {
	p.X += math.Cos(p.Angle) * p.Speed
	p.Y += math.Sin(p.Angle) * p.Speed
	p.Life--
	p.Size = math.Max(0, p.Size-ParticleSizeDecay)
}

// Alive reports whether the particle has ticks left.
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// Draw paints the particle as a filled circle on its bound surface. Without
// a binding it logs a warning and does nothing.
func (p *Particle) Draw() {
	if p.surface == nil {
		logger.Printf("warning: particle at (%.1f, %.1f) has no surface", p.X, p.Y)
		return
	}
	fillCircle(p.surface, p.X, p.Y, p.Size, p.Color)
}
