package cardstack

import "math"

// GestureConfig tunes the front-card drag.
type GestureConfig struct {
	MinimumMovement  float64 // pixels before a press becomes a drag
	EdgeResistance   float64 // 0 = free past the bounds, 1 = hard stop
	NarrowBreakpoint float64 // viewports narrower than this use NarrowThreshold
	NarrowThreshold  float64
	WideThreshold    float64
	InertiaCarry     float64 // seconds of release velocity carried into the coast
	InertiaIdle      float64 // seconds without movement after which velocity is zero
}

// DefaultGestureConfig returns the stock drag tuning.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		MinimumMovement:  6,
		EdgeResistance:   0.65,
		NarrowBreakpoint: 600,
		NarrowThreshold:  40,
		WideThreshold:    80,
		InertiaCarry:     0.1,
		InertiaIdle:      0.1,
	}
}

// Threshold returns the accept distance for a viewport of width vw.
func (c GestureConfig) Threshold(vw float64) float64 {
	if vw < c.NarrowBreakpoint {
		return c.NarrowThreshold
	}
	return c.WideThreshold
}

// Classify returns the direction of a horizontal offset.
func Classify(x float64) Direction {
	switch {
	case x > 0:
		return DirectionRight
	case x < 0:
		return DirectionLeft
	}
	return DirectionNone
}

// Resist damps the part of x that lies beyond ±bound by the resistance
// factor r. Offsets within the bound pass through unchanged.
func Resist(x, bound, r float64) float64 {
	switch {
	case x > bound:
		return bound + (x-bound)*(1-r)
	case x < -bound:
		return -bound + (x+bound)*(1-r)
	}
	return x
}

// Decide returns the accepted direction for a release at offset x, or
// DirectionNone when the drag is cancelled. dir must agree with the sign of
// the offset and the offset must exceed threshold.
func Decide(dir Direction, x, threshold float64) Direction {
	switch {
	case dir == DirectionRight && x > threshold:
		return DirectionRight
	case dir == DirectionLeft && x < -threshold:
		return DirectionLeft
	}
	return DirectionNone
}

// DragState is the phase of a drag binding.
type DragState uint8

const (
	DragIdle     DragState = iota // no press
	DragPressing                  // pressed, movement still under the minimum
	DragDragging                  // moving
)

// DragSession is the state of one press-to-release cycle.
type DragSession struct {
	X         float64   // current offset
	Direction Direction // classification of X at the last update
	Dragged   bool      // movement passed the minimum
	Velocity  float64   // px/s at the last update
}

// Release describes a cancelled drag.
type Release struct {
	Session DragSession
	// CarryX is where inertia takes the card before it settles, clamped to
	// the bounds.
	CarryX float64
}

// DragHandlers receives the outcome of drags on a bound node. Any field may
// be nil.
type DragHandlers struct {
	OnPress     func()
	OnDirection func(Direction)
	OnAccept    func(Direction)
	OnCancel    func(Release)
	OnTap       func()
}

// DragBinding makes a node draggable along X. A binding lives exactly as long
// as its node stays the front card; Teardown detaches it.
type DragBinding struct {
	scene    *Scene
	node     *Node
	cfg      GestureConfig
	bound    float64
	handlers DragHandlers

	state   DragState
	pointer int // pointer that owns the current session
	session DragSession
	originX float64
	lastX   float64
	lastT   float64
	torn    bool
}

// BindDrag attaches a horizontal drag to node. bound is how far the node may
// move either way before edge resistance applies.
func BindDrag(scene *Scene, node *Node, cfg GestureConfig, bound float64, h DragHandlers) *DragBinding {
	b := &DragBinding{scene: scene, node: node, cfg: cfg, bound: bound, handlers: h}
	node.OnPointerDown = b.press
	node.OnDragStart = b.move
	node.OnDrag = b.move
	node.OnDragEnd = b.release
	node.OnClick = b.click
	node.OnPointerUp = b.up
	return b
}

// Node returns the bound node.
func (b *DragBinding) Node() *Node {
	return b.node
}

// State returns the binding's current phase.
func (b *DragBinding) State() DragState {
	return b.state
}

// Session returns a copy of the current or most recent drag session.
func (b *DragBinding) Session() DragSession {
	return b.session
}

// Active reports whether the binding is still attached.
func (b *DragBinding) Active() bool {
	return !b.torn
}

// Teardown detaches the binding from its node and drops any pointer capture
// held by it. Safe to call more than once.
func (b *DragBinding) Teardown() {
	if b.torn {
		return
	}
	b.torn = true
	b.state = DragIdle
	n := b.node
	n.OnPointerDown = nil
	n.OnDragStart = nil
	n.OnDrag = nil
	n.OnDragEnd = nil
	n.OnClick = nil
	n.OnPointerUp = nil
	b.scene.releaseNode(n)
	b.handlers = DragHandlers{}
}

func (b *DragBinding) press(ctx PointerContext) {
	if b.torn || b.state != DragIdle {
		return
	}
	if b.handlers.OnPress != nil {
		b.handlers.OnPress()
		if b.torn {
			return
		}
	}
	b.scene.Animator().Kill(b.node)
	b.state = DragPressing
	b.pointer = ctx.PointerID
	b.session = DragSession{X: b.node.X, Direction: Classify(b.node.X)}
	b.originX = b.node.X
	b.lastX = b.node.X
	b.lastT = b.scene.Elapsed()
	b.scene.CapturePointer(ctx.PointerID, b.node)
}

// owns reports whether events from pointerID belong to the current session.
// Other fingers on the card are ignored until the session ends.
func (b *DragBinding) owns(pointerID int) bool {
	return !b.torn && b.state != DragIdle && pointerID == b.pointer
}

func (b *DragBinding) move(ctx DragContext) {
	if !b.owns(ctx.PointerID) {
		return
	}
	if b.state == DragPressing {
		if math.Hypot(ctx.GlobalX-ctx.StartX, ctx.GlobalY-ctx.StartY) <= b.cfg.MinimumMovement {
			return
		}
		b.state = DragDragging
		b.session.Dragged = true
	}

	x := Resist(b.originX+ctx.GlobalX-ctx.StartX, b.bound, b.cfg.EdgeResistance)
	b.node.X = x
	b.node.MarkDirty()

	now := b.scene.Elapsed()
	if dt := now - b.lastT; dt > 0 {
		b.session.Velocity = (x - b.lastX) / dt
		b.lastX, b.lastT = x, now
	}
	b.session.X = x

	if dir := Classify(x); dir != b.session.Direction {
		b.session.Direction = dir
		if b.handlers.OnDirection != nil {
			b.handlers.OnDirection(dir)
		}
	}
}

func (b *DragBinding) release(ctx DragContext) {
	if !b.owns(ctx.PointerID) {
		return
	}
	b.move(ctx)
	if b.torn {
		return
	}
	if b.state == DragPressing {
		b.state = DragIdle
		b.tap()
		return
	}
	b.state = DragIdle

	if b.scene.Elapsed()-b.lastT > b.cfg.InertiaIdle {
		b.session.Velocity = 0
	}
	vw, _ := b.scene.Viewport()
	if dir := Decide(b.session.Direction, b.node.X, b.cfg.Threshold(vw)); dir != DirectionNone {
		if b.handlers.OnAccept != nil {
			b.handlers.OnAccept(dir)
		}
		return
	}
	if b.handlers.OnCancel != nil {
		carry := b.node.X + b.session.Velocity*b.cfg.InertiaCarry
		carry = max(-b.bound, min(b.bound, carry))
		b.handlers.OnCancel(Release{Session: b.session, CarryX: carry})
	}
}

func (b *DragBinding) click(ctx ClickContext) {
	if !b.owns(ctx.PointerID) || b.state != DragPressing {
		return
	}
	b.state = DragIdle
	b.tap()
}

func (b *DragBinding) up(ctx PointerContext) {
	if b.owns(ctx.PointerID) {
		b.state = DragIdle
	}
}

func (b *DragBinding) tap() {
	if b.handlers.OnTap != nil {
		b.handlers.OnTap()
	}
}
