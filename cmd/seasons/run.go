package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/cardstack"
	"github.com/phanxgames/cardstack/internal/assets"
	"github.com/phanxgames/cardstack/internal/config"
)

var (
	runScript      string
	runFPS         bool
	runScreenshots string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the card stack window",
	Long: `Run opens a resizable window with the card stack, the pointer trail and the
loading overlay.

With --script, a JSON script drives the window and the program exits when the
script ends. Scripts may invoke the "advance" and "reject" actions.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if res := cfg.Validate(); !res.Valid() {
			return fmt.Errorf("invalid configuration: %s", res.Errors[0])
		}
		return runApp(cmd.Context(), cfg)
	},
}

func init() {
	runCmd.Flags().StringVar(&runScript, "script", "", "JSON script to drive the window")
	runCmd.Flags().BoolVar(&runFPS, "fps", false, "show the FPS counter")
	runCmd.Flags().StringVar(&runScreenshots, "screenshots", "screenshots", "directory for script screenshots")
}

func runApp(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	fonts, err := assets.LoadFonts(cfg.Theme.TitleSize, cfg.Theme.BodySize)
	if err != nil {
		return err
	}
	opts.Theme.TitleFont = fonts.Title
	opts.Theme.BodyFont = fonts.Body

	scene := cardstack.NewScene()
	scene.SetLogger(slog.Default())
	scene.ClearColor = opts.Theme.Background
	scene.ScreenshotDir = runScreenshots
	scene.SetViewport(float64(cfg.Window.Width), float64(cfg.Window.Height))

	ctrl := cardstack.NewController(scene, cfg.CardList(), opts)
	ctrl.OnRotate = func(dir cardstack.Direction, front cardstack.Card) {
		slog.Info("card dismissed", "direction", dir, "front", front.Title)
	}

	var ready <-chan error
	var onReady func()
	if cfg.Trail.Enabled {
		ready, onReady = startTrail(ctx, scene, cfg, opts)
	}
	if cfg.Loader.Enabled {
		lc := cardstack.DefaultLoaderConfig()
		lc.Font = opts.Theme.BodyFont
		loader := cardstack.NewLoader(scene, lc)
		loader.OnDone = onReady
		loader.Track(ready)
	} else if ready != nil {
		if err := <-ready; err != nil {
			slog.Warn("trail images failed, using shapes", "error", err)
		}
		onReady()
	}

	if runScript != "" {
		data, err := os.ReadFile(runScript)
		if err != nil {
			return fmt.Errorf("error reading script: %w", err)
		}
		runner, err := cardstack.LoadTestScript(data)
		if err != nil {
			return err
		}
		runner.Bind("advance", func() { ctrl.Advance() })
		runner.Bind("reject", func() { ctrl.Reject() })
		scene.SetTestRunner(runner)
	}

	return cardstack.Run(scene, cardstack.RunConfig{
		Title:              cfg.Window.Title,
		Width:              cfg.Window.Width,
		Height:             cfg.Window.Height,
		ShowFPS:            runFPS || cfg.Window.ShowFPS,
		ExitWhenScriptDone: runScript != "",
	})
}

// startTrail attaches the pointer trail. Without an image directory the
// built-in shapes are used at once and ready is nil. Otherwise the images
// decode in the background; once ready yields, onReady installs them and must
// run on the game thread.
func startTrail(ctx context.Context, scene *cardstack.Scene, cfg *config.Config, opts cardstack.Options) (ready <-chan error, onReady func()) {
	trail := cardstack.NewTrail(scene, nil, cfg.TrailOptions())
	size := int(cfg.Trail.Size)
	if size <= 0 {
		size = 96
	}
	shapes := func() []image.Image {
		th := opts.Theme
		palette := []color.Color{rgba(th.AdvanceColor), rgba(th.RejectColor), rgba(th.TitleColor)}
		return assets.Shapes(6, size, palette)
	}

	if cfg.Trail.Images == "" {
		trail.SetImages(assets.ToEbiten(shapes()))
		return nil, func() {}
	}

	var loaded []image.Image
	ch := make(chan error, 1)
	go func() {
		imgs, err := assets.LoadTrailImages(ctx, os.DirFS(cfg.Trail.Images), uint(size))
		loaded = imgs
		ch <- err
	}()

	return ch, func() {
		if len(loaded) == 0 {
			loaded = shapes()
		}
		trail.SetImages(assets.ToEbiten(loaded))
		slog.Debug("trail images ready", "count", len(loaded))
	}
}

func rgba(c cardstack.Color) color.Color {
	return color.NRGBA{R: uint8(c.R * 255), G: uint8(c.G * 255), B: uint8(c.B * 255), A: uint8(c.A * 255)}
}
