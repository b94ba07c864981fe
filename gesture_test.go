package cardstack

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		x    float64
		want Direction
	}{
		{12, DirectionRight},
		{-0.5, DirectionLeft},
		{0, DirectionNone},
	}
	for _, tt := range tests {
		if got := Classify(tt.x); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestResist(t *testing.T) {
	tests := []struct {
		name        string
		x, bound, r float64
		want        float64
	}{
		{"inside", 50, 80, 0.65, 50},
		{"at bound", 80, 80, 0.65, 80},
		{"beyond right", 180, 80, 0.65, 115},
		{"beyond left", -180, 80, 0.65, -115},
		{"no resistance", 180, 80, 0, 180},
		{"hard stop", 180, 80, 1, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resist(tt.x, tt.bound, tt.r); !approxEqual(got, tt.want, 1e-9) {
				t.Errorf("Resist(%v, %v, %v) = %v, want %v", tt.x, tt.bound, tt.r, got, tt.want)
			}
		})
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		x    float64
		want Direction
	}{
		{"right past threshold", DirectionRight, 45, DirectionRight},
		{"right short", DirectionRight, 35, DirectionNone},
		{"right at threshold", DirectionRight, 40, DirectionNone},
		{"left past threshold", DirectionLeft, -41, DirectionLeft},
		{"direction disagrees", DirectionLeft, 60, DirectionNone},
		{"no direction", DirectionNone, 0, DirectionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.dir, tt.x, 40); got != tt.want {
				t.Errorf("Decide(%v, %v, 40) = %v, want %v", tt.dir, tt.x, got, tt.want)
			}
		})
	}
}

func TestThreshold(t *testing.T) {
	c := DefaultGestureConfig()
	tests := []struct {
		vw   float64
		want float64
	}{
		{320, 40},
		{599, 40},
		{600, 80},
		{1280, 80},
	}
	for _, tt := range tests {
		if got := c.Threshold(tt.vw); got != tt.want {
			t.Errorf("Threshold(%v) = %v, want %v", tt.vw, got, tt.want)
		}
	}
}

// dragFixture is a scene with one draggable 200×100 node centered at
// (250, 100) in a 500-wide viewport.
type dragFixture struct {
	scene    *Scene
	node     *Node
	binding  *DragBinding
	presses  int
	dirs     []Direction
	accepted []Direction
	cancels  []Release
	taps     int
}

func newDragFixture(t *testing.T) *dragFixture {
	t.Helper()
	f := &dragFixture{scene: NewScene()}
	f.scene.SetViewport(500, 400)
	f.node = NewContainer("card")
	f.node.Interactable = true
	f.node.PivotX, f.node.PivotY = 100, 50
	f.node.HitShape = HitRect{Width: 200, Height: 100}
	anchor := NewContainer("anchor")
	anchor.X, anchor.Y = 250, 100
	anchor.Interactable = true
	anchor.AddChild(f.node)
	f.scene.Root().AddChild(anchor)

	f.binding = BindDrag(f.scene, f.node, DefaultGestureConfig(), 80, DragHandlers{
		OnPress:     func() { f.presses++ },
		OnDirection: func(d Direction) { f.dirs = append(f.dirs, d) },
		OnAccept:    func(d Direction) { f.accepted = append(f.accepted, d) },
		OnCancel:    func(r Release) { f.cancels = append(f.cancels, r) },
		OnTap:       func() { f.taps++ },
	})
	return f
}

func (f *dragFixture) drag(dx float64, frames int) {
	f.scene.InjectDrag(250, 100, 250+dx, 100, frames)
	runFrames(f.scene, frames)
}

func TestBindDragCancelShort(t *testing.T) {
	f := newDragFixture(t)
	f.drag(35, 7)

	if f.presses != 1 {
		t.Errorf("presses = %d, want 1", f.presses)
	}
	if len(f.accepted) != 0 {
		t.Fatalf("accepted = %v, want none", f.accepted)
	}
	if len(f.cancels) != 1 {
		t.Fatalf("cancels = %d, want 1", len(f.cancels))
	}
	r := f.cancels[0]
	if r.Session.X != 35 || !r.Session.Dragged {
		t.Errorf("session = %+v, want X 35 and dragged", r.Session)
	}
	if r.CarryX != 35 {
		t.Errorf("CarryX = %v, want 35 (velocity reset on a still release)", r.CarryX)
	}
	if len(f.dirs) != 1 || f.dirs[0] != DirectionRight {
		t.Errorf("direction changes = %v, want [right]", f.dirs)
	}
	if f.binding.State() != DragIdle {
		t.Errorf("State = %d, want idle", f.binding.State())
	}
}

func TestBindDragAcceptPastThreshold(t *testing.T) {
	f := newDragFixture(t)
	f.drag(45, 7)
	if len(f.accepted) != 1 || f.accepted[0] != DirectionRight {
		t.Errorf("accepted = %v, want [right]", f.accepted)
	}
	if len(f.cancels) != 0 {
		t.Error("accepted drag should not cancel")
	}
}

func TestBindDragAcceptLeft(t *testing.T) {
	f := newDragFixture(t)
	f.drag(-60, 5)
	if len(f.accepted) != 1 || f.accepted[0] != DirectionLeft {
		t.Errorf("accepted = %v, want [left]", f.accepted)
	}
}

func TestBindDragResistance(t *testing.T) {
	f := newDragFixture(t)
	f.scene.InjectPress(250, 100)
	f.scene.InjectMove(350, 100)
	f.scene.InjectMove(430, 100)
	runFrames(f.scene, 3)

	want := 80 + (180-80)*(1-0.65)
	if !approxEqual(f.node.X, want, 1e-9) {
		t.Errorf("X = %v, want %v", f.node.X, want)
	}
}

func TestBindDragTap(t *testing.T) {
	f := newDragFixture(t)
	f.drag(3, 3)
	if f.taps != 1 {
		t.Errorf("taps = %d, want 1", f.taps)
	}
	if len(f.accepted)+len(f.cancels) != 0 {
		t.Error("a tap should neither accept nor cancel")
	}
	if f.node.X != 0 {
		t.Errorf("X = %v, want 0", f.node.X)
	}
}

func TestBindDragDirectionChanges(t *testing.T) {
	f := newDragFixture(t)
	f.scene.InjectPress(250, 100)
	f.scene.InjectMove(270, 100)
	f.scene.InjectMove(280, 100)
	f.scene.InjectMove(230, 100)
	f.scene.InjectMove(250, 100)
	runFrames(f.scene, 5)

	want := []Direction{DirectionRight, DirectionLeft, DirectionNone}
	if len(f.dirs) != len(want) {
		t.Fatalf("dirs = %v, want %v", f.dirs, want)
	}
	for i := range want {
		if f.dirs[i] != want[i] {
			t.Errorf("dirs = %v, want %v", f.dirs, want)
			break
		}
	}
}

func TestBindDragCapturesPointer(t *testing.T) {
	f := newDragFixture(t)
	f.scene.InjectPress(250, 100)
	f.scene.InjectMove(260, 100)
	runFrames(f.scene, 2)
	if f.scene.captured[0] != f.node {
		t.Error("press should capture the pointer")
	}
	if f.binding.State() != DragDragging {
		t.Errorf("State = %d, want dragging", f.binding.State())
	}
}

func TestBindDragInertiaCarry(t *testing.T) {
	f := newDragFixture(t)
	// A release that moves on its last frame keeps its velocity.
	f.scene.InjectPress(250, 100)
	f.scene.InjectMove(260, 100)
	f.scene.InjectMove(270, 100)
	f.scene.InjectRelease(280, 100)
	runFrames(f.scene, 4)

	if len(f.cancels) != 1 {
		t.Fatalf("cancels = %d, want 1", len(f.cancels))
	}
	r := f.cancels[0]
	if r.Session.Velocity <= 0 {
		t.Errorf("velocity = %v, want positive", r.Session.Velocity)
	}
	if r.CarryX <= 30 || r.CarryX > 80 {
		t.Errorf("CarryX = %v, want beyond the release point and within the bound", r.CarryX)
	}
}

func TestBindDragTeardown(t *testing.T) {
	f := newDragFixture(t)
	f.scene.InjectPress(250, 100)
	f.scene.InjectMove(270, 100)
	runFrames(f.scene, 2)

	f.binding.Teardown()
	f.binding.Teardown()
	if f.binding.Active() {
		t.Error("binding should be inactive")
	}
	if f.node.OnPointerDown != nil || f.node.OnDrag != nil {
		t.Error("node callbacks should be cleared")
	}
	if f.scene.captured[0] != nil {
		t.Error("capture should be released")
	}

	f.scene.InjectMove(300, 100)
	f.scene.InjectRelease(300, 100)
	runFrames(f.scene, 2)
	if len(f.accepted)+len(f.cancels) != 0 {
		t.Error("torn-down binding should report nothing")
	}
	if f.node.X != 20 {
		t.Errorf("X = %v, want 20 (unchanged after teardown)", f.node.X)
	}
}

func TestBindDragPressKillsTweens(t *testing.T) {
	f := newDragFixture(t)
	a := f.scene.Animator()
	a.Play(NewTween(f.node, 1, nil).X(60))
	f.scene.InjectPress(250, 100)
	runFrames(f.scene, 1)
	if a.Tweening(f.node) {
		t.Error("press should stop tweens on the node")
	}
}

func TestBindDragSecondTouchTapIgnored(t *testing.T) {
	f := newDragFixture(t)
	s := f.scene
	s.InjectTouch(1, 250, 100, true)
	s.InjectTouch(1, 310, 100, true)
	s.InjectTouch(2, 310, 100, true)
	s.InjectTouch(2, 310, 100, false)
	runFrames(s, 4)

	if f.binding.State() != DragDragging {
		t.Fatalf("State = %d after a second finger tapped, want dragging", f.binding.State())
	}
	if f.taps != 0 {
		t.Errorf("taps = %d, want 0", f.taps)
	}

	s.InjectTouch(1, 320, 100, true)
	s.InjectTouch(1, 320, 100, false)
	runFrames(s, 2)

	if f.presses != 1 {
		t.Errorf("presses = %d, want 1", f.presses)
	}
	if len(f.accepted) != 1 || f.accepted[0] != DirectionRight {
		t.Errorf("accepted = %v, want [right]", f.accepted)
	}
	if f.node.X != 70 {
		t.Errorf("X = %v, want 70", f.node.X)
	}
}

func TestBindDragSecondTouchDragIgnored(t *testing.T) {
	f := newDragFixture(t)
	s := f.scene
	s.InjectTouch(1, 250, 100, true)
	s.InjectTouch(1, 280, 100, true)
	s.InjectTouch(2, 280, 100, true)
	s.InjectTouch(2, 330, 100, true)
	s.InjectTouch(2, 380, 100, true)
	s.InjectTouch(2, 380, 100, false)
	runFrames(s, 6)

	if f.node.X != 30 {
		t.Errorf("X = %v after another finger dragged, want 30", f.node.X)
	}
	if len(f.accepted)+len(f.cancels) != 0 {
		t.Fatal("the other finger's release should not end the drag")
	}

	s.InjectTouch(1, 280, 100, false)
	runFrames(s, 1)
	if len(f.cancels) != 1 {
		t.Fatalf("cancels = %d, want 1", len(f.cancels))
	}
	if got := f.cancels[0].Session.X; got != 30 {
		t.Errorf("Session.X = %v, want 30", got)
	}
}
