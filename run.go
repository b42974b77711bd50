package fireworks

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the desktop frame clock.
type RunConfig struct {
	Title string
	// Width and Height size the window. Zero uses the canvas size.
	Width, Height int
	// TPS is the number of scene ticks per second. Zero keeps ebiten's
	// default of 60.
	TPS int
	// Loop ticks the scene every frame. When false the scene ticks once.
	Loop bool
	// ShowFPS overlays the measured FPS and TPS.
	ShowFPS bool
	// SnapshotDir receives PNG snapshots taken with the P key. Empty uses
	// DefaultSnapshotDir.
	SnapshotDir string
	// Launcher, when set, launches a firework toward every left click.
	Launcher *Launcher
}

// Run opens a window and drives scene from ebiten's frame clock until the
// window is closed or Escape is pressed. The scene paints into canvas,
// which must be the scene's surface.
func Run(scene *Scene, canvas *Canvas, cfg RunConfig) error {
	if scene == nil || !canvas.Valid() {
		return errors.New("run: scene and canvas are required")
	}
	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = DefaultSnapshotDir
	}
	bounds := canvas.Image().Bounds()
	if cfg.Width == 0 || cfg.Height == 0 {
		cfg.Width, cfg.Height = bounds.Dx(), bounds.Dy()
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)

	g := &game{scene: scene, canvas: canvas, cfg: cfg}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene  *Scene
	canvas *Canvas
	cfg    RunConfig
	ticked bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.cfg.Launcher != nil && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if _, err := g.cfg.Launcher.LaunchTo(Vec2{X: float64(x), Y: float64(y)}); err != nil {
			logger.Printf("error: click launch: %v", err)
		}
	}
	if g.cfg.Loop || !g.ticked {
		g.scene.Tick()
		g.ticked = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		path, err := g.canvas.Snapshot(g.cfg.SnapshotDir, fmt.Sprintf("frame-%d", g.scene.Frame()))
		if err != nil {
			logger.Printf("error: %v", err)
		} else {
			logger.Printf("snapshot written to %s", path)
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.canvas.DrawTo(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.canvas.Image().Bounds()
	return b.Dx(), b.Dy()
}
