package fireworks

import (
	"math/rand/v2"
	"testing"
)

// nopSurface discards every primitive.
type nopSurface struct{}

func (nopSurface) BeginPath()                           {}
func (nopSurface) SetFillColor(Color)                   {}
func (nopSurface) FillCircle(x, y, r float64)           {}
func (nopSurface) FillRect(x, y, width, height float64) {}

// setupBenchScene creates a scene with n fireworks that have all detonated.
func setupBenchScene(b *testing.B, n, power int) *Scene {
	b.Helper()
	scene := NewScene(nopSurface{}, 800, 600)
	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < n; i++ {
		f, err := scene.AddFirework(FireworkConfig{
			LaunchPoint: Vec2{X: float64(i%10) * 80, Y: 600},
			BlastPoint:  Vec2{X: float64(i%10) * 80, Y: 600},
			BlastPower:  power,
			Colors:      DefaultPalette,
			Rand:        rng,
		})
		if err != nil {
			b.Fatal(err)
		}
		f.Tick()
	}
	return scene
}

func BenchmarkSceneTick_10Fireworks(b *testing.B) {
	scene := setupBenchScene(b, 10, 100)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		scene.Tick()
	}
}

func BenchmarkSceneTick_10000Particles(b *testing.B) {
	scene := setupBenchScene(b, 10, 1000)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		scene.Tick()
	}
}

func BenchmarkDetonate(b *testing.B) {
	f, err := NewFirework(FireworkConfig{
		BlastPower: 100,
		Colors:     DefaultPalette,
		Rand:       rand.New(rand.NewPCG(1, 1)),
	})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		f.blast.particles = f.blast.particles[:0]
		f.detonate(0, 0)
	}
}
