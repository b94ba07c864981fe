package cardstack

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 6.0 // pixels
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	hitNode  *Node
	dragging bool
	button   MouseButton // button captured at press time
}

// --- Handler registry ---

type handler[T any] struct {
	id uint32
	fn func(T)
}

// handlerList is an ordered set of callbacks keyed by registration id.
type handlerList[T any] struct {
	entries []handler[T]
}

func (l *handlerList[T]) add(id uint32, fn func(T)) {
	l.entries = append(l.entries, handler[T]{id: id, fn: fn})
}

func (l *handlerList[T]) remove(id uint32) {
	for i := range l.entries {
		if l.entries[i].id == id {
			copy(l.entries[i:], l.entries[i+1:])
			l.entries[len(l.entries)-1] = handler[T]{}
			l.entries = l.entries[:len(l.entries)-1]
			return
		}
	}
}

// fire calls every handler registered at the time of the call. Handlers
// may remove themselves or register new ones while firing.
func (l *handlerList[T]) fire(v T) {
	if len(l.entries) == 0 {
		return
	}
	snapshot := make([]handler[T], len(l.entries))
	copy(snapshot, l.entries)
	for _, h := range snapshot {
		h.fn(v)
	}
}

type handlerRegistry struct {
	pointerDown handlerList[PointerContext]
	pointerUp   handlerList[PointerContext]
	pointerMove handlerList[PointerContext]
	click       handlerList[ClickContext]
	dragStart   handlerList[DragContext]
	drag        handlerList[DragContext]
	dragEnd     handlerList[DragContext]
	nextID      uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	remove func()
}

// Remove unregisters this callback so it no longer fires. Safe to call more
// than once and on the zero value.
func (h *CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove()
	h.remove = nil
}

func register[T any](reg *handlerRegistry, list *handlerList[T], fn func(T)) CallbackHandle {
	reg.nextID++
	id := reg.nextID
	list.add(id, fn)
	return CallbackHandle{remove: func() { list.remove(id) }}
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pointerUp, fn)
}

// OnPointerMove registers a scene-level callback fired whenever a pointer
// changes position, whether or not a button is held.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pointerMove, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.click, fn)
}

// OnDragStart registers a scene-level callback for drag start events.
func (s *Scene) OnDragStart(fn func(DragContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.dragStart, fn)
}

// OnDrag registers a scene-level callback for drag events.
func (s *Scene) OnDrag(fn func(DragContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.drag, fn)
}

// OnDragEnd registers a scene-level callback for drag end events.
func (s *Scene) OnDragEnd(fn func(DragContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.dragEnd, fn)
}

// CapturePointer routes all events for pointerID to the given node.
func (s *Scene) CapturePointer(pointerID int, node *Node) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = node
	}
}

// releaseNode drops every capture and press target that refers to n, so a
// node being torn down no longer receives the rest of an in-flight gesture.
func (s *Scene) releaseNode(n *Node) {
	for i := range s.captured {
		if s.captured[i] == n {
			s.captured[i] = nil
		}
		if s.pointers[i].hitNode == n {
			s.pointers[i].hitNode = nil
			s.pointers[i].dragging = false
		}
	}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
// Releasing within the dead zone counts as a click.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// DragDeadZone returns the minimum drag movement in pixels.
func (s *Scene) DragDeadZone() float64 {
	return s.dragDeadZone
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise derives AABB from node dimensions.
// Containers with no HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending hit-testable nodes to buf. Skips Visible=false or
// Interactable=false subtrees.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range sortedChildren(n) {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput handles one frame of pointer input. Injected events take the
// place of device input for the frame they are consumed in.
func (s *Scene) processInput(pollDevices bool) {
	if s.processInjectedInput() {
		return
	}
	if !pollDevices {
		return
	}
	s.processMousePointer()
	s.processTouchPointers()
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}

	s.processPointer(0, float64(mx), float64(my), pressed, button)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(s.touchIDs[:0])
	s.touchIDs = touchIDs

	var active [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !active[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton) {
	ps := &s.pointers[pointerID]

	var target *Node
	if s.captured[pointerID] != nil {
		target = s.captured[pointerID]
	} else {
		target = s.hitTest(wx, wy)
	}

	moved := wx != ps.lastX || wy != ps.lastY

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = wx, wy
		ps.lastX, ps.lastY = wx, wy
		ps.hitNode = target
		ps.dragging = false
		s.firePointerDown(target, pointerID, wx, wy, button)

	case !pressed && ps.down:
		if ps.dragging {
			s.fireDrag(&s.handlers.dragEnd, EventDragEnd, ps.hitNode, pointerID, wx, wy, ps, ps.button)
		} else if ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, pointerID, wx, wy, ps.button)
		}
		s.firePointerUp(target, pointerID, wx, wy, ps.button)

		s.captured[pointerID] = nil
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
		ps.lastX, ps.lastY = wx, wy

	case pressed && ps.down:
		if moved {
			s.firePointerMove(target, pointerID, wx, wy, ps.button)
			if !ps.dragging && math.Hypot(wx-ps.startX, wy-ps.startY) > s.dragDeadZone {
				ps.dragging = true
				s.fireDrag(&s.handlers.dragStart, EventDragStart, ps.hitNode, pointerID, wx, wy, ps, ps.button)
			}
			if ps.dragging {
				s.fireDrag(&s.handlers.drag, EventDrag, ps.hitNode, pointerID, wx, wy, ps, ps.button)
			}
		}
		ps.lastX, ps.lastY = wx, wy

	default:
		if moved {
			s.firePointerMove(target, pointerID, wx, wy, button)
			ps.lastX, ps.lastY = wx, wy
		}
	}
}

// --- Event dispatch ---

func (s *Scene) pointerContext(node *Node, pointerID int, wx, wy float64, button MouseButton) PointerContext {
	ctx := PointerContext{
		Node: node, GlobalX: wx, GlobalY: wy,
		Button: button, PointerID: pointerID,
	}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
		ctx.UserData = node.UserData
	}
	return ctx
}

func (s *Scene) firePointerDown(node *Node, pointerID int, wx, wy float64, button MouseButton) {
	ctx := s.pointerContext(node, pointerID, wx, wy, button)
	s.handlers.pointerDown.fire(ctx)
	if node != nil && node.OnPointerDown != nil {
		node.OnPointerDown(ctx)
	}
}

func (s *Scene) firePointerUp(node *Node, pointerID int, wx, wy float64, button MouseButton) {
	ctx := s.pointerContext(node, pointerID, wx, wy, button)
	s.handlers.pointerUp.fire(ctx)
	if node != nil && node.OnPointerUp != nil {
		node.OnPointerUp(ctx)
	}
}

func (s *Scene) firePointerMove(node *Node, pointerID int, wx, wy float64, button MouseButton) {
	s.handlers.pointerMove.fire(s.pointerContext(node, pointerID, wx, wy, button))
}

func (s *Scene) fireClick(node *Node, pointerID int, wx, wy float64, button MouseButton) {
	p := s.pointerContext(node, pointerID, wx, wy, button)
	ctx := ClickContext(p)
	s.handlers.click.fire(ctx)
	if node != nil && node.OnClick != nil {
		node.OnClick(ctx)
	}
}

func (s *Scene) fireDrag(list *handlerList[DragContext], event EventType, node *Node, pointerID int, wx, wy float64, ps *pointerState, button MouseButton) {
	ctx := DragContext{
		PointerContext: s.pointerContext(node, pointerID, wx, wy, button),
		StartX:         ps.startX,
		StartY:         ps.startY,
		DeltaX:         wx - ps.lastX,
		DeltaY:         wy - ps.lastY,
	}
	list.fire(ctx)
	if node == nil {
		return
	}
	var fn func(DragContext)
	switch event {
	case EventDragStart:
		fn = node.OnDragStart
	case EventDrag:
		fn = node.OnDrag
	case EventDragEnd:
		fn = node.OnDragEnd
	}
	if fn != nil {
		fn(ctx)
	}
}
