package cardstack

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, animator, viewport,
// input state and render buffers.
type Scene struct {
	root   *Node
	anim   Animator
	logger *slog.Logger
	debug  bool

	// ClearColor fills the screen before each Draw. A zero alpha skips the fill.
	ClearColor Color

	// Viewport
	width, height float64
	resize        handlerList[Vec2]
	resizeIDs     uint32

	elapsed float64

	// Render state
	commands []RenderCommand
	sortBuf  []RenderCommand

	// Input state
	handlers     handlerRegistry
	captured     [maxPointers]*Node
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	dragDeadZone float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	touchIDs     []ebiten.TouchID
	injectQueue  []syntheticPointerEvent

	// Automation
	testRunner      *TestRunner
	screenshotQueue []string
	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string
}

// NewScene creates a new scene with a pre-created, interactable root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	s := &Scene{
		root:          root,
		logger:        slog.Default(),
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:       make([]RenderCommand, 0, defaultCommandCap),
		dragDeadZone:  defaultDragDeadZone,
		ScreenshotDir: "screenshots",
	}
	root.scene = s
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Animator returns the scene's tween runner.
func (s *Scene) Animator() *Animator {
	return &s.anim
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *slog.Logger {
	return s.logger
}

// SetLogger replaces the scene's logger. A nil logger restores slog.Default().
func (s *Scene) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	s.logger = l
}

// Elapsed returns the simulated time in seconds since the scene was created.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// Viewport returns the current viewport size in pixels.
func (s *Scene) Viewport() (w, h float64) {
	return s.width, s.height
}

// SetViewport changes the viewport size. Resize handlers fire only when the
// size actually changes.
func (s *Scene) SetViewport(w, h float64) {
	if w == s.width && h == s.height {
		return
	}
	s.width, s.height = w, h
	s.logger.Debug("viewport resized", "width", w, "height", h)
	s.resize.fire(Vec2{X: w, Y: h})
}

// OnResize registers fn to run after every viewport size change.
func (s *Scene) OnResize(fn func(w, h float64)) CallbackHandle {
	s.resizeIDs++
	id := s.resizeIDs
	s.resize.add(id, func(v Vec2) { fn(v.X, v.Y) })
	return CallbackHandle{remove: func() { s.resize.remove(id) }}
}

// Update advances the scene by one tick at the current TPS: script runner,
// transforms, input, per-node OnUpdate hooks and animations.
func (s *Scene) Update() {
	s.step(1.0/float64(ebiten.TPS()), true)
}

// step runs a single frame of dt seconds. pollDevices=false restricts input
// to injected events.
func (s *Scene) step(dt float64, pollDevices bool) {
	s.elapsed += dt
	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	// Refresh world transforms first so hit testing sees this frame's layout.
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.processInput(pollDevices)
	updateNodes(s.root, dt)
	s.anim.Update(float32(dt))
}

// updateNodes runs OnUpdate hooks depth-first. Nodes disposed by a hook are
// skipped.
func updateNodes(n *Node, dt float64) {
	if n.disposed {
		return
	}
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for i := 0; i < len(n.children); i++ {
		child := n.children[i]
		updateNodes(child, dt)
		if i < len(n.children) && n.children[i] != child {
			i-- // child removed itself
		}
	}
}

// Draw traverses the scene tree, emits render commands, sorts them, and
// submits them to the given screen image.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.commands = s.commands[:0]
	treeOrder := 0
	s.traverse(s.root, identityTransform, 1.0, false, &treeOrder)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	s.mergeSort()

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submit(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// SetDebugMode enables or disables debug mode. When enabled, tree operations
// on nodes attached to this scene panic on disposed nodes and warn about deep
// trees, and per-frame timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}
