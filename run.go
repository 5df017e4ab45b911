package lumen

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// ShowFPS adds an FPS widget to the overlay.
	ShowFPS bool
	// ExitWhenScriptDone ends the loop once an attached TestRunner finishes.
	ExitWhenScriptDone bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	cfg   RunConfig
	w, h  int
}

func (g *game) Update() error {
	g.scene.Update()
	if g.cfg.ExitWhenScriptDone && g.scene.testRunner != nil && g.scene.testRunner.Done() &&
		len(g.scene.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !g.cfg.Resizable {
		return g.cfg.Width, g.cfg.Height
	}
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.scene.SetViewport(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives scene until the window closes. It blocks and
// must be called from the main goroutine.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("lumen: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ShowFPS {
		fps := NewFPSWidget()
		fps.SetPosition(8, float64(cfg.Height)-40)
		scene.Overlay().AddChild(fps)
	}
	scene.SetViewport(float64(cfg.Width), float64(cfg.Height))

	g := &game{scene: scene, cfg: cfg, w: cfg.Width, h: cfg.Height}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("lumen: run: %w", err)
	}
	return nil
}
