package fireworks

import (
	"fmt"
	"time"
)

// Entity is anything a Scene advances once per tick. Entities draw as part
// of their Tick.
type Entity interface {
	Tick()
}

// Binder is implemented by entities that paint onto a Surface. The Scene
// binds them to its own surface when they are added.
type Binder interface {
	Bind(s Surface)
}

// finisher is implemented by entities that can report they have nothing
// left to do.
type finisher interface {
	Finished() bool
}

// stater is implemented by Firework.
type stater interface {
	State() State
}

// DefaultBackground is the night-sky fill painted before every tick.
var DefaultBackground = MustParseColor("#0b1026")

// Scene owns a drawing surface and an ordered list of entities. Each Tick
// fills the background and then ticks every entity in insertion order.
//
// A Scene is not safe for concurrent use; drive it from a single frame
// clock such as Run or termsurface.Run.
type Scene struct {
	// Background is the fill color painted over the whole surface each tick.
	Background Color
	// PruneFinished removes entities that report Finished after a tick.
	// When false, finished fireworks stay in the scene and draw nothing.
	PruneFinished bool
	// OnDetonate, when set, is called on the tick a firework's charge
	// detonates, after the firework has spawned its particles.
	OnDetonate func(f *Firework)

	surface       Surface
	width, height float64

	entities []Entity
	pending  []Entity
	ticking  bool

	flash      *flash
	flashLevel float64

	debug bool
	frame uint64
}

// NewScene creates a scene that paints a width x height area of surface.
// An absent surface is logged; the scene still ticks but paints nothing.
func NewScene(surface Surface, width, height float64) *Scene {
	if !validSurface(surface) {
		logger.Printf("error: new scene: invalid surface %v", surface)
		surface = nil
	}
	return &Scene{
		Background: DefaultBackground,
		surface:    surface,
		width:      width,
		height:     height,
	}
}

// Surface returns the scene's drawing surface, or nil.
func (s *Scene) Surface() Surface {
	return s.surface
}

// Size returns the painted area.
func (s *Scene) Size() (width, height float64) {
	return s.width, s.height
}

// AddEntity appends e to the scene and binds it to the scene surface if it
// implements Binder. Entities added while the scene is ticking join after
// the current tick completes.
func (s *Scene) AddEntity(e Entity) {
	if e == nil {
		logger.Printf("error: add entity: nil entity")
		return
	}
	if b, ok := e.(Binder); ok && s.surface != nil {
		b.Bind(s.surface)
	}
	if s.ticking {
		s.pending = append(s.pending, e)
		return
	}
	s.entities = append(s.entities, e)
}

// AddFirework creates a firework from cfg and adds it to the scene.
func (s *Scene) AddFirework(cfg FireworkConfig) (*Firework, error) {
	f, err := NewFirework(cfg)
	if err != nil {
		return nil, err
	}
	s.AddEntity(f)
	return f, nil
}

// Entities returns the scene's entities. The returned slice MUST NOT be mutated.
func (s *Scene) Entities() []Entity {
	return s.entities
}

// Frame returns the number of completed ticks.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// SetFlash enables a background flash on every detonation. strength is the
// initial blend toward white in [0, 1] and ticks the fade duration. A
// non-positive value for either disables the flash.
func (s *Scene) SetFlash(strength float64, ticks int) {
	if strength <= 0 || ticks <= 0 {
		s.flash = nil
		s.flashLevel = 0
		return
	}
	s.flash = newFlash(clamp01(strength), ticks)
}

// SetDebugMode enables or disables per-tick stats on the package logger.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Tick advances the scene by exactly one step: the background is painted,
// then every entity ticks in order.
func (s *Scene) Tick() {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.flash != nil {
		s.flashLevel = s.flash.step()
	}
	s.Render()

	s.ticking = true
	for _, e := range s.entities {
		s.tickEntity(e)
	}
	s.ticking = false

	if len(s.pending) > 0 {
		s.entities = append(s.entities, s.pending...)
		clear(s.pending)
		s.pending = s.pending[:0]
	}
	if s.PruneFinished {
		s.prune()
	}

	if s.debug {
		s.debugLog(collectStats(s, time.Since(t0)))
	}
	s.frame++
}

// Render paints the background over the whole scene area.
func (s *Scene) Render() {
	if s.surface == nil {
		logger.Printf("warning: scene has no surface")
		return
	}
	bg := s.Background
	if s.flashLevel > 0 {
		bg = bg.Lerp(ColorWhite, s.flashLevel)
	}
	s.surface.BeginPath()
	s.surface.SetFillColor(bg)
	s.surface.FillRect(0, 0, s.width, s.height)
}

// tickEntity ticks e, recovering from a panic so one faulty entity cannot
// stop the others.
func (s *Scene) tickEntity(e Entity) {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("recovered entity %T panic: %v", e, r)
		}
	}()

	st, tracked := e.(stater)
	var before State
	if tracked {
		before = st.State()
	}
	e.Tick()
	if !tracked || before != StateCharging || st.State() != StateExploding {
		return
	}
	if s.flash != nil {
		s.flash.trigger()
	}
	if f, ok := e.(*Firework); ok && s.OnDetonate != nil {
		s.OnDetonate(f)
	}
}

// prune drops finished entities, keeping order.
func (s *Scene) prune() {
	kept := s.entities[:0]
	for _, e := range s.entities {
		if f, ok := e.(finisher); ok && f.Finished() {
			continue
		}
		kept = append(kept, e)
	}
	clear(s.entities[len(kept):])
	s.entities = kept
}

func (s *Scene) String() string {
	return fmt.Sprintf("Scene(%gx%g, %d entities, frame %d)", s.width, s.height, len(s.entities), s.frame)
}
