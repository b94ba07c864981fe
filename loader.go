package cardstack

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// LoaderConfig tunes the loading overlay.
type LoaderConfig struct {
	Background Color
	BarColor   Color
	TrackColor Color
	TextColor  Color
	Font       Font
	BarWidth   float64
	BarHeight  float64
	Fill       float32 // seconds for the optimistic 0→100 fill
	Finish     float32 // seconds to top up once ready
	Exit       float32 // seconds for the slide away
}

// DefaultLoaderConfig returns the stock overlay look and timings.
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		Background: Color{0.118, 0.188, 0.337, 1},
		BarColor:   Color{0.957, 0.447, 0.18, 1},
		TrackColor: Color{1, 1, 1, 0.2},
		TextColor:  ColorWhite,
		BarWidth:   240,
		BarHeight:  6,
		Fill:       2.2,
		Finish:     0.5,
		Exit:       0.9,
	}
}

// Loader is a full-viewport overlay with a progress bar that covers the scene
// until its tracked work is ready, then slides up out of view and removes
// itself. While visible it swallows pointer input.
type Loader struct {
	scene    *Scene
	cfg      LoaderConfig
	overlay  *Node
	track    *Node
	bar      *Node
	percent  *Node
	progress float64
	fill     *Tween
	ready    <-chan error
	waiting  bool
	finished bool
	done     bool
	resize   CallbackHandle

	// OnDone runs once the overlay has left and been removed.
	OnDone func()
}

// NewLoader adds the overlay to scene and starts the progress fill.
func NewLoader(scene *Scene, cfg LoaderConfig) *Loader {
	l := &Loader{scene: scene, cfg: cfg}

	l.overlay = NewRect("loader", 0, 0, cfg.Background)
	l.overlay.Interactable = true
	l.overlay.ZIndex = 1000
	l.overlay.RenderLayer = 200

	l.track = NewRect("loader-track", cfg.BarWidth, cfg.BarHeight, cfg.TrackColor)
	l.bar = NewRect("loader-bar", 0, cfg.BarHeight, cfg.BarColor)
	l.percent = NewText("loader-percent", "0%", cfg.Font)
	l.percent.TextBlock.Color = cfg.TextColor
	l.percent.TextBlock.Align = TextAlignCenter
	l.percent.TextBlock.WrapWidth = cfg.BarWidth
	for _, n := range []*Node{l.track, l.bar, l.percent} {
		n.RenderLayer = 200
		l.overlay.AddChild(n)
	}

	scene.Root().AddChild(l.overlay)
	l.layout()
	l.resize = scene.OnResize(func(w, h float64) { l.layout() })

	l.fill = scene.Animator().Play(NewTween(nil, cfg.Fill, ease.InOutQuad).Field(&l.progress, 100))
	l.fill.OnUpdate = l.sync
	l.overlay.OnUpdate = l.poll
	return l
}

// Progress returns the displayed progress in percent.
func (l *Loader) Progress() float64 {
	return l.progress
}

// Done reports whether the overlay has finished and been removed.
func (l *Loader) Done() bool {
	return l.done
}

// Overlay returns the overlay node. It is disposed once the loader is done.
func (l *Loader) Overlay() *Node {
	return l.overlay
}

// Track finishes the loader once ready yields a value or is closed. A nil
// channel counts as ready. An error is logged and does not hold the overlay.
func (l *Loader) Track(ready <-chan error) {
	if ready == nil {
		l.Finish()
		return
	}
	l.ready = ready
	l.waiting = true
}

// poll checks the tracked channel without blocking, once per frame.
func (l *Loader) poll(float64) {
	if !l.waiting {
		return
	}
	select {
	case err, ok := <-l.ready:
		l.waiting = false
		if ok && err != nil {
			l.scene.Logger().Warn("loading failed, continuing", "error", err)
		}
		l.Finish()
	default:
	}
}

// Finish tops the progress up to 100, then slides the overlay away.
func (l *Loader) Finish() {
	if l.finished {
		return
	}
	l.finished = true
	l.waiting = false
	a := l.scene.Animator()
	l.fill.Kill()
	top := NewTween(nil, l.cfg.Finish, ease.Linear).Field(&l.progress, 100)
	top.OnUpdate = l.sync
	_, vh := l.scene.Viewport()
	a.Sequence(
		top,
		NewTween(l.overlay, l.cfg.Exit, ease.InOutQuart).Y(-vh).Then(l.remove),
	)
}

func (l *Loader) remove() {
	l.overlay.Visible = false
	l.resize.Remove()
	l.overlay.Dispose()
	l.done = true
	l.scene.Logger().Debug("loader done")
	if l.OnDone != nil {
		l.OnDone()
	}
}

// sync writes progress into the bar width and the percent label.
func (l *Loader) sync() {
	l.bar.Width = l.cfg.BarWidth * l.progress / 100
	l.percent.TextBlock.SetContent(fmt.Sprintf("%d%%", int(math.Round(l.progress))))
}

func (l *Loader) layout() {
	vw, vh := l.scene.Viewport()
	l.overlay.Width, l.overlay.Height = vw, vh
	x := (vw - l.cfg.BarWidth) / 2
	y := vh / 2
	l.track.SetPosition(x, y)
	l.bar.SetPosition(x, y)
	l.percent.SetPosition(x, y+l.cfg.BarHeight+12)
}
