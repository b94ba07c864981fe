package cardstack

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// TrailConfig tunes the pointer trail.
type TrailConfig struct {
	NarrowBreakpoint float64 // viewports narrower than this use NarrowSpacing
	NarrowSpacing    float64
	WideSpacing      float64
	MaxRotation      float64 // degrees either way
	Size             float64 // displayed size of each image; 0 keeps the image size
	GrowDuration     float32
	ShrinkDelay      float32
	ShrinkDuration   float32
	ShrinkScale      float64
}

// DefaultTrailConfig returns the stock trail tuning.
func DefaultTrailConfig() TrailConfig {
	return TrailConfig{
		NarrowBreakpoint: 900,
		NarrowSpacing:    100,
		WideSpacing:      180,
		MaxRotation:      20,
		GrowDuration:     0.4,
		ShrinkDelay:      0.3,
		ShrinkDuration:   1,
		ShrinkScale:      0.2,
	}
}

// Spacing returns the spawn distance for a viewport of width vw.
func (c TrailConfig) Spacing(vw float64) float64 {
	if vw < c.NarrowBreakpoint {
		return c.NarrowSpacing
	}
	return c.WideSpacing
}

// Trail drops a short-lived image at the pointer every time it has travelled
// the spacing distance since the last drop. Images are used in turn.
type Trail struct {
	scene  *Scene
	cfg    TrailConfig
	layer  *Node
	images []*ebiten.Image
	next   int
	last   Vec2
	hasPos bool
	move   CallbackHandle
	up     CallbackHandle
	rng    *rand.Rand
	live   int
}

// NewTrail starts a trail on scene. A trail with no images never spawns.
func NewTrail(scene *Scene, images []*ebiten.Image, cfg TrailConfig) *Trail {
	t := &Trail{
		scene:  scene,
		cfg:    cfg,
		images: images,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	t.layer = NewContainer("trail")
	t.layer.ZIndex = -1
	scene.Root().AddChild(t.layer)
	t.move = scene.OnPointerMove(t.pointerMoved)
	t.up = scene.OnPointerUp(t.pointerUp)
	return t
}

// SetImages replaces the image set. The cycle restarts at the first image.
func (t *Trail) SetImages(images []*ebiten.Image) {
	t.images = images
	t.next = 0
}

// Layer returns the node that holds trail sprites.
func (t *Trail) Layer() *Node {
	return t.layer
}

// Live returns the number of sprites currently on screen.
func (t *Trail) Live() int {
	return t.live
}

func (t *Trail) pointerMoved(ctx PointerContext) {
	p := Vec2{X: ctx.GlobalX, Y: ctx.GlobalY}
	if !t.hasPos {
		t.hasPos = true
		t.last = p
		t.spawn(p)
		return
	}
	vw, _ := t.scene.Viewport()
	if math.Hypot(p.X-t.last.X, p.Y-t.last.Y) > t.cfg.Spacing(vw) {
		t.last = p
		t.spawn(p)
	}
}

// pointerUp forgets the last spawn point when a touch lifts, so the next
// touch starts a fresh trail.
func (t *Trail) pointerUp(ctx PointerContext) {
	if ctx.PointerID > 0 {
		t.hasPos = false
	}
}

func (t *Trail) spawn(p Vec2) {
	if len(t.images) == 0 {
		return
	}
	img := t.images[t.next]
	t.next = (t.next + 1) % len(t.images)

	n := NewSprite("trail-image", img)
	if img != nil {
		b := img.Bounds()
		w, h := float64(b.Dx()), float64(b.Dy())
		if t.cfg.Size > 0 {
			w, h = t.cfg.Size, t.cfg.Size
			n.Width, n.Height = w, h
		}
		n.PivotX, n.PivotY = w/2, h/2
	}
	n.X, n.Y = p.X, p.Y
	n.ScaleX, n.ScaleY = 0, 0
	n.Alpha = 0
	n.Rotation = (t.rng.Float64()*2 - 1) * t.cfg.MaxRotation * math.Pi / 180
	t.layer.AddChild(n)
	t.live++

	a := t.scene.Animator()
	a.Play(NewTween(n, t.cfg.GrowDuration, ease.OutCubic).Scale(1).Alpha(1))
	a.Play(NewTween(n, t.cfg.ShrinkDuration, ease.InCubic).
		Scale(t.cfg.ShrinkScale).
		Alpha(0).
		After(t.cfg.ShrinkDelay).
		Then(func() {
			n.Dispose()
			t.live--
		}))
}

// Close stops spawning and removes every trail sprite.
func (t *Trail) Close() {
	t.move.Remove()
	t.up.Remove()
	t.layer.Dispose()
	t.live = 0
}
