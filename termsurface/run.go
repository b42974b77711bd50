package termsurface

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/fireworks"
)

// Config configures the terminal frame clock.
type Config struct {
	// TPS is the number of scene ticks per second. Zero means 60.
	TPS int
	// Loop ticks the scene every frame. When false the scene ticks once and
	// the frame stays on screen until the user quits.
	Loop bool
}

// Run drives scene at a fixed rate and shows every finished frame until ctx
// is done or the user presses q, Escape or Ctrl-C. The scene must paint on
// surf. Events are read on a separate goroutine; the scene is only touched
// from the calling goroutine.
func Run(ctx context.Context, surf *Surface, scene *fireworks.Scene, cfg Config) error {
	if !surf.Valid() || scene == nil {
		return errors.New("termsurface: surface and scene are required")
	}
	tps := cfg.TPS
	if tps <= 0 {
		tps = 60
	}

	quit := make(chan struct{})
	resized := make(chan struct{}, 1)
	go pollEvents(surf.screen, quit, resized)

	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	ticked := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-quit:
			return nil
		case <-resized:
			surf.Resize()
			surf.screen.Sync()
		case <-ticker.C:
			if cfg.Loop || !ticked {
				scene.Tick()
				ticked = true
			}
			surf.screen.Show()
		}
	}
}

// pollEvents forwards quit keys and resizes until the screen is finalized.
func pollEvents(screen tcell.Screen, quit chan<- struct{}, resized chan<- struct{}) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			select {
			case resized <- struct{}{}:
			default:
			}
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				close(quit)
				return
			}
		}
	}
}
