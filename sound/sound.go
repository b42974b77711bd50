// Package sound plays detonation bangs through the system speaker using beep.
package sound

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the speaker sample rate.
const SampleRate = beep.SampleRate(44100)

// BangDuration is the length of one bang.
const BangDuration = 400 * time.Millisecond

// Player plays bangs on the speaker. The zero value is not usable; create
// one with Init.
type Player struct {
	rng *rand.Rand
}

// Init opens the speaker. It must be called at most once per process.
func Init() (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("sound: speaker init: %w", err)
	}
	return &Player{rng: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))}, nil
}

// Bang plays a burst whose loudness grows with power, the particle count
// of the detonating firework.
func (p *Player) Bang(power int) {
	vol := math.Min(1, 0.3+float64(power)/300)
	speaker.Play(NewBurst(SampleRate, BangDuration, vol, p.rng.Uint64()))
}

// Burst is a streamer producing an exponentially decaying mix of white
// noise and a low thump.
type Burst struct {
	sr     beep.SampleRate
	rng    *rand.Rand
	volume float64
	total  int
	pos    int
}

// NewBurst returns a burst lasting d at volume in [0, 1].
func NewBurst(sr beep.SampleRate, d time.Duration, volume float64, seed uint64) *Burst {
	return &Burst{
		sr:     sr,
		rng:    rand.New(rand.NewPCG(seed, seed>>1|1)),
		volume: math.Max(0, math.Min(1, volume)),
		total:  sr.N(d),
	}
}

// Len returns the burst length in samples.
func (b *Burst) Len() int {
	return b.total
}

// Stream fills samples and reports false once the burst is drained.
func (b *Burst) Stream(samples [][2]float64) (n int, ok bool) {
	if b.pos >= b.total {
		return 0, false
	}
	for i := range samples {
		if b.pos >= b.total {
			break
		}
		t := float64(b.pos) / float64(b.sr)
		progress := float64(b.pos) / float64(b.total)
		noise := b.rng.Float64()*2 - 1
		thump := math.Sin(2 * math.Pi * 55 * t)
		v := (0.7*noise + 0.3*thump) * b.volume * math.Exp(-5*progress)
		samples[i][0] = v
		samples[i][1] = v
		b.pos++
		n++
	}
	return n, true
}

// Err always returns nil.
func (b *Burst) Err() error {
	return nil
}
