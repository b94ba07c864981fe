package cardstack

import (
	"github.com/tanema/gween/ease"
)

// Phase is the controller's dismissal state.
type Phase uint8

const (
	PhaseIdle     Phase = iota // front card at rest or being dragged
	PhaseExiting               // front card animating off-screen
	PhaseRotating              // queue rotating and stack re-rendering
	PhaseEntering              // new front card animating in
)

// glowAlpha is the opacity of a control's highlight color at full glow.
const glowAlpha = 0.45

// String returns the lower-case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseExiting:
		return "exiting"
	case PhaseRotating:
		return "rotating"
	case PhaseEntering:
		return "entering"
	default:
		return "idle"
	}
}

// Controller owns the card queue, the rendered stack, the front-card drag
// and the advance/reject controls.
//
// A dismissal runs Idle → Exiting → Rotating → Entering → Idle. The queue
// rotates exactly once per dismissal, in the exit tween's completion.
// Dismiss is refused while Exiting or Rotating; during Entering the entrance
// is finished at once and the new dismissal proceeds.
type Controller struct {
	scene *Scene
	opts  Options
	queue *Queue

	root    *Node
	stack   *Stack
	advance *Control
	reject  *Control
	binding *DragBinding

	phase    Phase
	lastDir  Direction
	entrance *Tween
	resize   CallbackHandle
	inert    bool
	closed   bool

	// OnRotate, if set, runs after each rotation with the new front card.
	OnRotate func(dir Direction, front Card)
}

// NewController builds the stack for cards under the scene root. With a nil
// scene or no cards the controller is inert: it creates nothing and every
// action is a no-op.
func NewController(scene *Scene, cards []Card, opts Options) *Controller {
	c := &Controller{scene: scene, opts: opts, queue: NewQueue(cards)}
	if scene == nil || len(cards) == 0 {
		c.inert = true
		if scene != nil {
			scene.Logger().Debug("card stack inert", "cards", len(cards))
		}
		return c
	}

	scene.SetDragDeadZone(opts.Gesture.MinimumMovement)

	c.root = NewContainer("card-stack")
	c.root.Interactable = true
	scene.Root().AddChild(c.root)

	c.stack = NewStack(c.root, opts.Layout, opts.Theme)

	th := opts.Theme
	c.reject = NewControl(scene, "reject", "Nope", th.TitleFont, th.ButtonWidth, th.ButtonHeight, th, th.RejectColor, th.RejectColor.WithAlpha(glowAlpha), opts.Timing)
	c.advance = NewControl(scene, "advance", "Yes!", th.TitleFont, th.ButtonWidth, th.ButtonHeight, th, th.AdvanceColor, th.AdvanceColor.WithAlpha(glowAlpha), opts.Timing)
	c.reject.Node().OnClick = func(ClickContext) { c.Reject() }
	c.advance.Node().OnClick = func(ClickContext) { c.Advance() }
	c.root.AddChild(c.reject.Node())
	c.root.AddChild(c.advance.Node())

	c.layout()
	c.render()
	c.resize = scene.OnResize(func(w, h float64) { c.onResize() })
	scene.Logger().Debug("card stack ready", "cards", c.queue.Len())
	return c
}

// Inert reports whether the controller was built without a scene or cards.
func (c *Controller) Inert() bool {
	return c.inert
}

// Phase returns the current dismissal phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Queue returns the card queue.
func (c *Controller) Queue() *Queue {
	return c.queue
}

// Stack returns the stack renderer, or nil when inert.
func (c *Controller) Stack() *Stack {
	return c.stack
}

// Front returns the front card node, or nil.
func (c *Controller) Front() *Node {
	if c.stack == nil {
		return nil
	}
	return c.stack.Front()
}

// Binding returns the drag binding on the front card, or nil.
func (c *Controller) Binding() *DragBinding {
	return c.binding
}

// Controls returns the advance and reject buttons, or nils when inert.
func (c *Controller) Controls() (advance, reject *Control) {
	return c.advance, c.reject
}

// Advance dismisses the front card to the right.
func (c *Controller) Advance() bool {
	return c.Dismiss(DirectionRight)
}

// Reject dismisses the front card to the left.
func (c *Controller) Reject() bool {
	return c.Dismiss(DirectionLeft)
}

// Dismiss reacts the matching control, animates the front card off-screen
// toward dir and, once that animation completes, rotates the queue and
// re-renders. DirectionNone falls back to the last drag direction, then
// right. Returns false when nothing was started.
func (c *Controller) Dismiss(dir Direction) bool {
	if c.inert || c.closed || c.queue.Len() == 0 {
		return false
	}
	switch c.phase {
	case PhaseExiting, PhaseRotating:
		c.scene.Logger().Debug("dismiss refused", "phase", c.phase, "direction", dir)
		return false
	case PhaseEntering:
		c.finishEntrance()
	}
	front := c.stack.Front()
	if front == nil {
		return false
	}
	if dir == DirectionNone {
		dir = c.lastDir
	}
	if dir == DirectionNone {
		dir = DirectionRight
	}
	c.lastDir = dir

	if dir == DirectionRight {
		c.advance.Pulse()
	} else {
		c.reject.Shake()
	}

	c.teardownBinding()
	front.Interactable = false
	a := c.scene.Animator()
	a.Kill(front)

	vw, _ := c.scene.Viewport()
	cardW, _ := c.stack.CardSize()
	distance := max(vw, 2*cardW)

	c.phase = PhaseExiting
	a.Play(NewTween(front, c.opts.Timing.Exit, ease.InCubic).
		X(dir.Sign() * distance).
		Alpha(0).
		Then(func() { c.completeExit(dir) }))
	c.scene.Logger().Debug("dismiss", "direction", dir)
	return true
}

// completeExit runs once per dismissal, from the exit tween's completion.
func (c *Controller) completeExit(dir Direction) {
	if c.closed {
		return
	}
	c.phase = PhaseRotating
	c.queue.Rotate(dir)
	c.render()
	c.advance.Reset()
	c.reject.Reset()

	front := c.stack.Front()
	c.phase = PhaseEntering
	a := c.scene.Animator()
	t := c.opts.Timing
	a.Set(NewTween(front, 0, nil).Scale(t.EntranceScale).Alpha(t.EntranceAlpha))
	c.entrance = a.Play(NewTween(front, t.Entrance, ease.OutCubic).
		Scale(1).
		Alpha(1).
		Then(func() {
			c.entrance = nil
			c.phase = PhaseIdle
		}))

	card, _ := c.queue.Front()
	c.scene.Logger().Debug("card rotated", "direction", dir, "front", card.Title)
	if c.OnRotate != nil {
		c.OnRotate(dir, card)
	}
}

// finishEntrance jumps the entrance to its end and returns to Idle.
func (c *Controller) finishEntrance() {
	if c.phase != PhaseEntering {
		return
	}
	if c.entrance != nil {
		c.entrance.Kill()
		c.entrance = nil
	}
	if front := c.stack.Front(); front != nil {
		front.ScaleX, front.ScaleY = 1, 1
		front.Alpha = 1
		front.MarkDirty()
	}
	c.phase = PhaseIdle
}

// settle coasts the front card to carryX and springs it back to rest.
func (c *Controller) settle(carryX float64) {
	front := c.stack.Front()
	if front == nil {
		return
	}
	a := c.scene.Animator()
	a.Kill(front)
	t := c.opts.Timing
	var steps []*Tween
	if carryX != front.X {
		steps = append(steps, NewTween(front, t.Carry, ease.OutQuad).X(carryX))
	}
	steps = append(steps, NewTween(front, t.Settle, ease.OutElastic).X(0).Alpha(1))
	a.Sequence(steps...)
	c.advance.Reset()
	c.reject.Reset()
}

// render rebuilds the stack from the queue and binds the new front card.
func (c *Controller) render() {
	c.teardownBinding()
	c.stack.Render(c.queue)
	front := c.stack.Front()
	if front == nil {
		return
	}
	c.binding = BindDrag(c.scene, front, c.opts.Gesture, c.stack.Bound(), DragHandlers{
		OnPress: func() {
			c.finishEntrance()
		},
		OnDirection: c.highlight,
		OnAccept: func(dir Direction) {
			c.Dismiss(dir)
		},
		OnCancel: func(r Release) {
			c.scene.Logger().Debug("drag cancelled", "x", r.Session.X, "velocity", r.Session.Velocity)
			c.settle(r.CarryX)
		},
		OnTap: func() {
			if f := c.stack.Front(); f != nil && (f.X != 0 || f.Alpha != 1) {
				c.settle(f.X)
			}
		},
	})
}

func (c *Controller) highlight(dir Direction) {
	if dir != DirectionNone {
		c.lastDir = dir
	}
	switch dir {
	case DirectionRight:
		c.advance.Highlight(true)
		c.reject.Reset()
	case DirectionLeft:
		c.reject.Highlight(true)
		c.advance.Reset()
	default:
		c.advance.Reset()
		c.reject.Reset()
	}
}

func (c *Controller) teardownBinding() {
	if c.binding != nil {
		c.binding.Teardown()
		c.binding = nil
	}
}

// layout positions the stack anchor and the buttons for the viewport.
func (c *Controller) layout() {
	vw, vh := c.scene.Viewport()
	c.stack.Layout(vw, vh)

	th := c.opts.Theme
	y := th.StackTop + th.CardHeight + th.ButtonGap + th.ButtonHeight/2
	off := (th.ButtonWidth + th.ButtonGap) / 2
	c.reject.SetRest(vw/2-off, y)
	c.advance.SetRest(vw/2+off, y)
}

func (c *Controller) onResize() {
	if c.closed {
		return
	}
	c.layout()
	switch c.phase {
	case PhaseIdle:
		c.render()
	case PhaseEntering:
		c.finishEntrance()
		c.render()
	}
	// Exiting and Rotating re-render from the exit completion.
}

// Close removes the stack and controls from the scene and detaches the
// resize handler. The controller is inert afterwards.
func (c *Controller) Close() {
	if c.inert || c.closed {
		return
	}
	c.closed = true
	c.teardownBinding()
	c.resize.Remove()
	c.stack.Clear()
	c.root.Dispose()
	c.phase = PhaseIdle
	c.entrance = nil
}
