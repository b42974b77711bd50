package fireworks

import (
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"
)

func demoConfig() FireworkConfig {
	return FireworkConfig{
		LaunchPoint: Vec2{X: 165, Y: 430},
		BlastPoint:  Vec2{X: 165, Y: 115},
		BlastPower:  100,
		Colors:      DefaultPalette,
		Rand:        rand.New(rand.NewPCG(1, 2)),
	}
}

func mustFirework(t *testing.T, cfg FireworkConfig) *Firework {
	t.Helper()
	f, err := NewFirework(cfg)
	if err != nil {
		t.Fatalf("NewFirework: %v", err)
	}
	return f
}

// tickUntilExploding ticks f until it detonates and returns the number of
// ticks taken.
func tickUntilExploding(t *testing.T, f *Firework, limit int) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		f.Tick()
		if f.State() == StateExploding {
			return i
		}
	}
	t.Fatalf("no detonation within %d ticks", limit)
	return 0
}

func TestNewFireworkDefaults(t *testing.T) {
	f := mustFirework(t, FireworkConfig{Colors: DefaultPalette})
	if f.State() != StateCharging {
		t.Errorf("state = %v, want charging", f.State())
	}
	if f.blast.radius != DefaultBlastRadius {
		t.Errorf("radius = %v, want %v", f.blast.radius, DefaultBlastRadius)
	}
	if f.charge.speed != DefaultChargeSpeed {
		t.Errorf("charge speed = %v, want %v", f.charge.speed, DefaultChargeSpeed)
	}
	if f.charge.size != ChargeSize || f.charge.color != ColorWhite {
		t.Errorf("charge = %+v, want size %v white", f.charge, ChargeSize)
	}
}

func TestNewFireworkValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  FireworkConfig
	}{
		{"empty palette", FireworkConfig{}},
		{"negative power", FireworkConfig{Colors: DefaultPalette, BlastPower: -1}},
		{"negative radius", FireworkConfig{Colors: DefaultPalette, BlastRadius: -5}},
		{"charge speed above one", FireworkConfig{Colors: DefaultPalette, ChargeSpeed: 1.5}},
		{"negative charge speed", FireworkConfig{Colors: DefaultPalette, ChargeSpeed: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFirework(tt.cfg); err == nil {
				t.Error("NewFirework returned nil error")
			}
		})
	}

	_, err := NewFirework(FireworkConfig{})
	if !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("err = %v, want ErrEmptyPalette", err)
	}
}

func TestNewFireworkCopiesPalette(t *testing.T) {
	colors := Palette{{R: 1, A: 1}}
	f := mustFirework(t, FireworkConfig{Colors: colors, BlastPower: 5, Rand: fixedRand{}})
	colors[0] = Color{B: 1, A: 1}
	f.detonate(0, 0)
	for _, p := range f.Particles() {
		if p.Color != (Color{R: 1, A: 1}) {
			t.Fatalf("particle color = %v, want red", p.Color)
		}
	}
}

func TestChargeMovesFivePercent(t *testing.T) {
	f := mustFirework(t, demoConfig())
	f.Tick()
	pos := f.ChargePosition()
	assertNear(t, "x", pos.X, 165)
	assertNear(t, "y", pos.Y, 430+(115-430)*0.05)
}

func TestChargeConvergesMonotonically(t *testing.T) {
	starts := []struct{ from, to Vec2 }{
		{Vec2{165, 430}, Vec2{165, 115}},
		{Vec2{0, 0}, Vec2{300, 200}},
		{Vec2{500, 750}, Vec2{-20, 10}},
		{Vec2{10, 10}, Vec2{10.5, 40}},
	}
	for _, s := range starts {
		cfg := demoConfig()
		cfg.LaunchPoint, cfg.BlastPoint = s.from, s.to
		f := mustFirework(t, cfg)

		dist := math.Hypot(s.to.X-s.from.X, s.to.Y-s.from.Y)
		for i := 0; f.State() == StateCharging; i++ {
			if i > 1000 {
				t.Fatalf("%v -> %v: no detonation", s.from, s.to)
			}
			f.Tick()
			pos := f.ChargePosition()
			d := math.Hypot(s.to.X-pos.X, s.to.Y-pos.Y)
			if d >= dist {
				t.Fatalf("%v -> %v: distance %v did not decrease from %v", s.from, s.to, d, dist)
			}
			dist = d
		}
		pos := f.ChargePosition()
		if math.Abs(pos.X-s.to.X) >= BlastTolerance || math.Abs(pos.Y-s.to.Y) >= BlastTolerance {
			t.Errorf("%v -> %v: detonated at %v outside tolerance", s.from, s.to, pos)
		}
	}
}

func TestChargeSpeedHonored(t *testing.T) {
	cfg := demoConfig()
	cfg.ChargeSpeed = 0.5
	f := mustFirework(t, cfg)
	f.Tick()
	assertNear(t, "y", f.ChargePosition().Y, 430+(115-430)*0.5)

	fast := tickUntilExploding(t, mustFirework(t, cfg), 1000)
	slow := tickUntilExploding(t, mustFirework(t, demoConfig()), 1000)
	if fast >= slow {
		t.Errorf("ticks at speed 0.5 = %d, at default = %d; want fewer", fast, slow)
	}
}

func TestDemoScenario(t *testing.T) {
	f := mustFirework(t, demoConfig())
	var s recordingSurface
	f.Bind(&s)

	tickUntilExploding(t, f, 500)
	pos := f.ChargePosition()
	if math.Abs(pos.X-165) >= 5 || math.Abs(pos.Y-115) >= 5 {
		t.Errorf("charge at %v, want within 5 of (165, 115)", pos)
	}
	if f.ParticleCount() != 100 {
		t.Fatalf("particles = %d, want 100", f.ParticleCount())
	}

	for i := 0; i < 120; i++ {
		f.Tick()
	}
	if f.ParticleCount() != 0 {
		t.Errorf("particles after 120 ticks = %d, want 0", f.ParticleCount())
	}
	if !f.Finished() {
		t.Error("Finished() = false, want true")
	}
	if f.State() != StateExploding {
		t.Errorf("state = %v, want exploding", f.State())
	}
}

func TestDetonationFiresOnce(t *testing.T) {
	f := mustFirework(t, demoConfig())
	tickUntilExploding(t, f, 500)
	first := f.ParticleCount()
	for i := 0; i < 200; i++ {
		f.Tick()
		if f.ParticleCount() > first {
			t.Fatalf("particle count grew to %d after detonation", f.ParticleCount())
		}
		if f.State() != StateExploding {
			t.Fatalf("state returned to %v", f.State())
		}
	}
}

func TestDetonateParticleRanges(t *testing.T) {
	palette := Palette{{R: 1, A: 1}, {G: 1, A: 1}, {B: 1, A: 1}}
	for _, radius := range []float64{0, 10, 50, 120} {
		f := mustFirework(t, FireworkConfig{
			BlastPower:  100,
			BlastRadius: radius,
			Colors:      palette,
			Rand:        rand.New(rand.NewPCG(42, uint64(radius))),
		})
		f.detonate(20, 30)

		if f.ParticleCount() != 100 {
			t.Fatalf("radius %v: particles = %d, want 100", radius, f.ParticleCount())
		}
		r := f.blast.radius
		for i, p := range f.Particles() {
			if p.Speed < 1 || p.Speed >= 1+r*0.1 {
				t.Errorf("radius %v: particle %d speed %v outside [1, %v)", radius, i, p.Speed, 1+r*0.1)
			}
			if p.Life < 60 || p.Life >= 120 {
				t.Errorf("radius %v: particle %d life %d outside [60, 120)", radius, i, p.Life)
			}
			if p.Angle < 0 || p.Angle >= 2*math.Pi {
				t.Errorf("radius %v: particle %d angle %v outside [0, 2π)", radius, i, p.Angle)
			}
			if p.X != 20 || p.Y != 30 || p.Size != ParticleStartSize {
				t.Errorf("radius %v: particle %d = %+v, want at (20, 30) size 2", radius, i, p)
			}
			found := false
			for _, c := range palette {
				if p.Color == c {
					found = true
				}
			}
			if !found {
				t.Errorf("radius %v: particle %d color %v not in palette", radius, i, p.Color)
			}
		}
	}
}

func TestDetonateUsesInjectedRand(t *testing.T) {
	palette := Palette{{R: 1, A: 1}, {G: 1, A: 1}, {B: 1, A: 1}}
	f := mustFirework(t, FireworkConfig{
		BlastPower: 3,
		Colors:     palette,
		Rand:       fixedRand{f: 0.5, n: 2},
	})
	f.detonate(0, 0)
	for _, p := range f.Particles() {
		assertNear(t, "angle", p.Angle, math.Pi)
		assertNear(t, "speed", p.Speed, 0.5*50*0.1+1)
		if p.Life != 62 {
			t.Errorf("life = %d, want 62", p.Life)
		}
		if p.Color != palette[2] {
			t.Errorf("color = %v, want %v", p.Color, palette[2])
		}
	}
}

func TestZeroPowerDetonation(t *testing.T) {
	cfg := demoConfig()
	cfg.BlastPower = 0
	f := mustFirework(t, cfg)
	tickUntilExploding(t, f, 500)
	if f.ParticleCount() != 0 || !f.Finished() {
		t.Errorf("particles = %d finished = %v, want 0 true", f.ParticleCount(), f.Finished())
	}
}

func TestParticlesRemovedExactlyAtZeroLife(t *testing.T) {
	f := mustFirework(t, FireworkConfig{Colors: DefaultPalette})
	lives := []int{1, 2, 3, 3, 5}
	for _, l := range lives {
		f.blast.particles = append(f.blast.particles, NewParticle(0, 0, ColorWhite, 0, 1, l))
	}
	f.state = StateExploding

	want := []int{4, 3, 1, 1, 0}
	for i, w := range want {
		f.Tick()
		if f.ParticleCount() != w {
			t.Fatalf("after tick %d particles = %d, want %d", i+1, f.ParticleCount(), w)
		}
		for _, p := range f.Particles() {
			if p.Life <= 0 {
				t.Fatalf("after tick %d a dead particle is still collected", i+1)
			}
		}
	}
}

func TestCompactionKeepsAdjacentSurvivors(t *testing.T) {
	f := mustFirework(t, FireworkConfig{Colors: DefaultPalette})
	// Dead particles next to each other must not shield a survivor from
	// its update.
	for _, l := range []int{1, 1, 10, 1, 10} {
		f.blast.particles = append(f.blast.particles, NewParticle(0, 0, ColorWhite, 0, 1, l))
	}
	f.state = StateExploding
	f.Tick()
	if f.ParticleCount() != 2 {
		t.Fatalf("particles = %d, want 2", f.ParticleCount())
	}
	for _, p := range f.Particles() {
		if p.Life != 9 {
			t.Errorf("survivor life = %d, want 9", p.Life)
		}
	}
}

func TestFireworkDrawsCharge(t *testing.T) {
	var s recordingSurface
	f := mustFirework(t, demoConfig())
	f.Bind(&s)
	f.Tick()
	if s.count("circle") != 1 {
		t.Fatalf("circles = %d, want 1", s.count("circle"))
	}
	c := s.calls[len(s.calls)-1]
	if c.r != ChargeSize {
		t.Errorf("charge radius = %v, want %v", c.r, ChargeSize)
	}
	if s.calls[len(s.calls)-2].color != ColorWhite {
		t.Errorf("charge color = %v, want white", s.calls[len(s.calls)-2].color)
	}
}

func TestFireworkDrawsEveryParticle(t *testing.T) {
	var s recordingSurface
	f := mustFirework(t, demoConfig())
	f.Bind(&s)
	tickUntilExploding(t, f, 500)
	for _, p := range f.Particles() {
		if p.Surface() != Surface(&s) {
			t.Fatal("particle not bound to the firework surface")
		}
	}

	s.reset()
	n := f.ParticleCount()
	f.Tick()
	if s.count("circle") != n {
		t.Errorf("circles = %d, want %d", s.count("circle"), n)
	}
}

func TestFireworkBindAfterDetonationBindsParticles(t *testing.T) {
	captureLog(t)
	f := mustFirework(t, demoConfig())
	tickUntilExploding(t, f, 500)

	var s recordingSurface
	f.Bind(&s)
	for _, p := range f.Particles() {
		if p.Surface() != Surface(&s) {
			t.Fatal("existing particle not bound")
		}
	}
}

func TestFireworkUnboundStillAdvances(t *testing.T) {
	buf := captureLog(t)
	f := mustFirework(t, demoConfig())
	f.Tick()
	if f.ChargePosition().Y >= 430 {
		t.Error("unbound firework did not advance its charge")
	}
	if !strings.Contains(buf.String(), "warning") {
		t.Errorf("log = %q, want a warning", buf.String())
	}

	tickUntilExploding(t, f, 500)
	buf.Reset()
	f.Tick()
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Errorf("warnings per unbound tick = %d, want 1", got)
	}
}

func TestFireworkBindNilPointerSurface(t *testing.T) {
	captureLog(t)
	var nilSurface *recordingSurface
	f := mustFirework(t, demoConfig())
	f.Bind(nilSurface)
	if f.Surface() != nil {
		t.Fatal("firework bound to nil pointer surface")
	}
	tickUntilExploding(t, f, 200)
	f.Tick()
}

func TestFireworkBindAbsentSurface(t *testing.T) {
	buf := captureLog(t)
	f := mustFirework(t, demoConfig())
	f.Bind(nil)
	if f.Surface() != nil {
		t.Error("firework bound to nil surface")
	}
	if !strings.Contains(buf.String(), "error") {
		t.Errorf("log = %q, want an error", buf.String())
	}
	var typedNil *Canvas
	f.Bind(typedNil)
	if f.Surface() != nil {
		t.Error("firework bound to typed nil canvas")
	}
}

func TestStateString(t *testing.T) {
	if StateCharging.String() != "charging" || StateExploding.String() != "exploding" {
		t.Errorf("strings = %q, %q", StateCharging, StateExploding)
	}
	if got := State(9).String(); got != "State(9)" {
		t.Errorf("State(9).String() = %q", got)
	}
}
