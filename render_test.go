package cardstack

import "testing"

// traverseScene fills s.commands the way Draw does, without submitting.
func traverseScene(s *Scene) {
	s.commands = s.commands[:0]
	treeOrder := 0
	s.traverse(s.root, identityTransform, 1, false, &treeOrder)
}

func TestSolidRectEmitsScaledCommand(t *testing.T) {
	s := NewScene()
	r := NewRect("r", 40, 20, Color{1, 0, 0, 1})
	r.X, r.Y = 10, 5
	s.Root().AddChild(r)

	traverseScene(s)

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	cmd := s.commands[0]
	want := [6]float32{40, 0, 0, 20, 10, 5}
	if cmd.Transform != want {
		t.Errorf("Transform = %v, want %v", cmd.Transform, want)
	}
	if cmd.image != nil {
		t.Error("solid rect should defer to the white pixel")
	}
}

func TestZeroSizeRectSkipped(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(NewRect("empty", 0, 10, ColorWhite))
	traverseScene(s)
	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestInvisibleSubtreeSkipped(t *testing.T) {
	s := NewScene()
	parent := NewContainer("parent")
	parent.Visible = false
	parent.AddChild(NewRect("child", 10, 10, ColorWhite))
	s.Root().AddChild(parent)

	traverseScene(s)
	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestNonRenderableKeepsChildren(t *testing.T) {
	s := NewScene()
	parent := NewRect("parent", 10, 10, ColorWhite)
	parent.Renderable = false
	parent.AddChild(NewRect("child", 10, 10, ColorWhite))
	s.Root().AddChild(parent)

	traverseScene(s)
	if len(s.commands) != 1 {
		t.Errorf("commands = %d, want 1 (child only)", len(s.commands))
	}
}

func TestTransparentNodeSkipped(t *testing.T) {
	s := NewScene()
	r := NewRect("r", 10, 10, ColorWhite)
	r.Alpha = 0
	s.Root().AddChild(r)
	traverseScene(s)
	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

func TestCommandAlphaInherited(t *testing.T) {
	s := NewScene()
	parent := NewContainer("parent")
	parent.Alpha = 0.5
	child := NewRect("child", 10, 10, Color{1, 1, 1, 0.5})
	parent.AddChild(child)
	s.Root().AddChild(parent)

	traverseScene(s)
	if got := s.commands[0].Color.A; got != 0.25 {
		t.Errorf("alpha = %v, want 0.25", got)
	}
}

func TestZIndexOrdersSiblings(t *testing.T) {
	s := NewScene()
	a := NewRect("a", 10, 10, Color{1, 0, 0, 1})
	b := NewRect("b", 10, 10, Color{0, 1, 0, 1})
	a.ZIndex = 2
	b.ZIndex = 1
	s.Root().AddChild(a)
	s.Root().AddChild(b)

	traverseScene(s)
	s.mergeSort()
	if s.commands[0].Color.G != 1 || s.commands[1].Color.R != 1 {
		t.Error("lower ZIndex should draw first")
	}
}

func TestRenderLayerSortsAcrossTree(t *testing.T) {
	s := NewScene()
	top := NewRect("top", 10, 10, Color{1, 0, 0, 1})
	top.RenderLayer = 200
	s.Root().AddChild(top)
	for i := 0; i < 5; i++ {
		s.Root().AddChild(NewRect("r", 10, 10, Color{0, 0, 1, 1}))
	}

	traverseScene(s)
	s.mergeSort()
	last := s.commands[len(s.commands)-1]
	if last.RenderLayer != 200 {
		t.Errorf("last RenderLayer = %d, want 200", last.RenderLayer)
	}
	for i := 1; i < len(s.commands)-1; i++ {
		if s.commands[i].treeOrder < s.commands[i-1].treeOrder {
			t.Fatal("sort must keep tree order within a layer")
		}
	}
}

func TestMergeSortStable(t *testing.T) {
	s := NewScene()
	layers := []uint8{3, 1, 2, 1, 3, 0, 2, 1}
	for i, l := range layers {
		s.commands = append(s.commands, RenderCommand{RenderLayer: l, treeOrder: i})
	}
	s.mergeSort()
	for i := 1; i < len(s.commands); i++ {
		if !commandLessOrEqual(&s.commands[i-1], &s.commands[i]) {
			t.Fatalf("commands out of order at %d: %+v", i, s.commands)
		}
	}
}
