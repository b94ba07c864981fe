package cardstack

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// ExitWhenScriptDone ends the game loop once an attached TestRunner has
	// finished its steps.
	ExitWhenScriptDone bool
}

// errScriptDone terminates RunGame cleanly after a script completes.
var errScriptDone = errors.New("script done")

// game adapts a Scene to ebiten.Game. The window size drives the scene
// viewport, so resizing the window fires the scene's resize handlers.
type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	g.scene.Update()
	if g.cfg.ExitWhenScriptDone && g.scene.testRunner != nil && g.scene.testRunner.Done() {
		return errScriptDone
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.SetViewport(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and runs scene until the window closes.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	scene.SetViewport(float64(cfg.Width), float64(cfg.Height))

	if cfg.ShowFPS {
		scene.Root().AddChild(NewFPSWidget())
	}

	err := ebiten.RunGame(&game{scene: scene, cfg: cfg})
	if errors.Is(err, errScriptDone) {
		return nil
	}
	return err
}
