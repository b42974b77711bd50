package fireworks

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// flash brightens the scene background when a charge detonates and fades
// back over a fixed number of ticks.
type flash struct {
	strength float64
	ticks    float32
	tween    *gween.Tween
	level    float64
	// peak holds the full strength for the first step after a trigger.
	peak bool
}

func newFlash(strength float64, ticks int) *flash {
	return &flash{strength: strength, ticks: float32(ticks)}
}

// trigger restarts the fade from full strength.
func (fl *flash) trigger() {
	fl.tween = gween.New(float32(fl.strength), 0, fl.ticks, ease.OutQuad)
	fl.level = fl.strength
	fl.peak = true
}

// step advances the fade by one tick and returns the current level. The
// first step after trigger returns the full strength.
func (fl *flash) step() float64 {
	if fl.tween == nil {
		return 0
	}
	if fl.peak {
		fl.peak = false
		return fl.level
	}
	v, done := fl.tween.Update(1)
	fl.level = float64(v)
	if done {
		fl.tween = nil
		fl.level = 0
	}
	return fl.level
}
