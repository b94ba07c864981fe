package cardstack

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertAffine(t *testing.T, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if !approxEqual(got[i], want[i], 1e-6) {
			t.Errorf("matrix = %v, want %v", got, want)
			return
		}
	}
}

func TestComputeLocalTransformIdentity(t *testing.T) {
	assertAffine(t, computeLocalTransform(NewContainer("n")), identityTransform)
}

func TestComputeLocalTransform(t *testing.T) {
	tests := []struct {
		name  string
		setup func(n *Node)
		want  [6]float64
	}{
		{"translate", func(n *Node) { n.X, n.Y = 10, 20 }, [6]float64{1, 0, 0, 1, 10, 20}},
		{"scale", func(n *Node) { n.ScaleX, n.ScaleY = 2, 3 }, [6]float64{2, 0, 0, 3, 0, 0}},
		{"pivot", func(n *Node) { n.PivotX, n.PivotY = 5, 5 }, [6]float64{1, 0, 0, 1, -5, -5}},
		{"pivot scaled", func(n *Node) {
			n.X, n.Y = 100, 100
			n.PivotX, n.PivotY = 10, 20
			n.ScaleX, n.ScaleY = 0.5, 0.5
		}, [6]float64{0.5, 0, 0, 0.5, 95, 90}},
		{"rotate 90", func(n *Node) { n.Rotation = math.Pi / 2 }, [6]float64{0, 1, -1, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewContainer("n")
			tt.setup(n)
			assertAffine(t, computeLocalTransform(n), tt.want)
		})
	}
}

func TestMultiplyAffine(t *testing.T) {
	parent := [6]float64{2, 0, 0, 2, 10, 10}
	child := [6]float64{1, 0, 0, 1, 5, 5}
	assertAffine(t, multiplyAffine(parent, child), [6]float64{2, 0, 0, 2, 20, 20})
}

func TestInvertAffineRoundTrip(t *testing.T) {
	n := NewContainer("n")
	n.X, n.Y = 30, -12
	n.ScaleX, n.ScaleY = 1.5, 0.75
	n.Rotation = 0.4
	n.PivotX, n.PivotY = 8, 4
	m := computeLocalTransform(n)
	assertAffine(t, multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertAffineSingular(t *testing.T) {
	assertAffine(t, invertAffine([6]float64{0, 0, 0, 0, 5, 5}), identityTransform)
}

func TestUpdateWorldTransformInherits(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	parent.X, parent.Y = 100, 50
	parent.ScaleX, parent.ScaleY = 2, 2
	parent.Alpha = 0.5
	child := NewContainer("child")
	child.X, child.Y = 10, 10
	child.Alpha = 0.5
	root.AddChild(parent)
	parent.AddChild(child)

	updateWorldTransform(root, identityTransform, 1, false)

	wx, wy := child.LocalToWorld(0, 0)
	if wx != 120 || wy != 70 {
		t.Errorf("child origin = (%v, %v), want (120, 70)", wx, wy)
	}
	if child.WorldAlpha() != 0.25 {
		t.Errorf("WorldAlpha = %v, want 0.25", child.WorldAlpha())
	}
}

func TestUpdateWorldTransformParentChangePropagates(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	child := NewContainer("child")
	child.X = 5
	root.AddChild(parent)
	parent.AddChild(child)
	updateWorldTransform(root, identityTransform, 1, false)

	parent.SetPosition(100, 0)
	updateWorldTransform(root, identityTransform, 1, false)

	if wx, _ := child.LocalToWorld(0, 0); wx != 105 {
		t.Errorf("child world X = %v, want 105", wx)
	}
}

func TestWorldToLocal(t *testing.T) {
	n := NewContainer("n")
	n.X, n.Y = 200, 150
	n.PivotX, n.PivotY = 50, 25
	n.ScaleX, n.ScaleY = 0.5, 0.5
	updateWorldTransform(n, identityTransform, 1, false)

	lx, ly := n.WorldToLocal(200, 150)
	if !approxEqual(lx, 50, epsilon) || !approxEqual(ly, 25, epsilon) {
		t.Errorf("WorldToLocal = (%v, %v), want pivot (50, 25)", lx, ly)
	}
	wx, wy := n.LocalToWorld(lx, ly)
	if !approxEqual(wx, 200, epsilon) || !approxEqual(wy, 150, epsilon) {
		t.Errorf("round trip = (%v, %v), want (200, 150)", wx, wy)
	}
}

func TestSettersMarkDirty(t *testing.T) {
	tests := []struct {
		name string
		fn   func(n *Node)
	}{
		{"SetPosition", func(n *Node) { n.SetPosition(1, 2) }},
		{"SetScale", func(n *Node) { n.SetScale(2, 2) }},
		{"SetPivot", func(n *Node) { n.SetPivot(3, 3) }},
		{"SetAlpha", func(n *Node) { n.SetAlpha(0.5) }},
		{"MarkDirty", func(n *Node) { n.MarkDirty() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewContainer("n")
			n.transformDirty = false
			tt.fn(n)
			if !n.transformDirty {
				t.Error("transformDirty should be true")
			}
		})
	}
}
