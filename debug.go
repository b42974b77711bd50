package fireworks

import "time"

// debugStats holds per-tick timing and population metrics.
// Only collected when Scene.debug is true.
type debugStats struct {
	frame     uint64
	tickTime  time.Duration
	entities  int
	charging  int
	exploding int
	particles int
}

// particleCounter is implemented by Firework.
type particleCounter interface {
	ParticleCount() int
}

func collectStats(s *Scene, tickTime time.Duration) debugStats {
	stats := debugStats{
		frame:    s.frame,
		tickTime: tickTime,
		entities: len(s.entities),
	}
	for _, e := range s.entities {
		if st, ok := e.(stater); ok {
			switch st.State() {
			case StateCharging:
				stats.charging++
			case StateExploding:
				stats.exploding++
			}
		}
		if pc, ok := e.(particleCounter); ok {
			stats.particles += pc.ParticleCount()
		}
	}
	return stats
}

// debugLog prints the stats line for one tick.
func (s *Scene) debugLog(stats debugStats) {
	logger.Printf("tick %d: %v | entities: %d | charging: %d | exploding: %d | particles: %d",
		stats.frame, stats.tickTime, stats.entities, stats.charging, stats.exploding, stats.particles)
}
