package cardstack

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// color32 is a compact RGBA color using float32, for render commands only.
type color32 struct {
	R, G, B, A float32
}

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Transform   [6]float32
	Color       color32
	RenderLayer uint8
	image       *ebiten.Image // nil draws the shared white pixel
	treeOrder   int           // assigned during traversal for stable sort
}

// whitePixel is a 1x1 white image used for solid sprites. Created on first
// submit so that building and traversing scenes never touches the GPU.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// affine32 converts a [6]float64 affine matrix to [6]float32.
func affine32(m [6]float64) [6]float32 {
	return [6]float32{float32(m[0]), float32(m[1]), float32(m[2]), float32(m[3]), float32(m[4]), float32(m[5])}
}

// scaleAffine returns m * Scale(sx, sy).
func scaleAffine(m [6]float64, sx, sy float64) [6]float64 {
	return [6]float64{m[0] * sx, m[1] * sx, m[2] * sy, m[3] * sy, m[4], m[5]}
}

// sortedChildren returns n's children in ZIndex order, rebuilding the cached
// order when it is stale.
func sortedChildren(n *Node) []*Node {
	if len(n.children) == 0 {
		return nil
	}
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		return n.sortedChildren
	}
	return n.children
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a node.
// Stable insertion sort: few children, usually nearly sorted.
func rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// traverse walks the node tree depth-first, updating transforms and emitting
// render commands for visible, renderable nodes.
func (s *Scene) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool, treeOrder *int) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.Renderable && n.worldAlpha > 0 {
		switch n.Type {
		case NodeTypeSprite:
			s.emitSprite(n, treeOrder)
		case NodeTypeText:
			s.emitText(n, treeOrder)
		}
	}

	for _, child := range sortedChildren(n) {
		s.traverse(child, n.worldTransform, n.worldAlpha, recompute, treeOrder)
	}
}

func (s *Scene) emitSprite(n *Node, treeOrder *int) {
	img := n.image
	transform := n.worldTransform
	if img == nil {
		if n.Width <= 0 || n.Height <= 0 {
			return
		}
		transform = scaleAffine(transform, n.Width, n.Height)
	} else if n.Width > 0 && n.Height > 0 {
		b := img.Bounds()
		transform = scaleAffine(transform, n.Width/float64(b.Dx()), n.Height/float64(b.Dy()))
	}
	*treeOrder++
	s.commands = append(s.commands, RenderCommand{
		Transform:   affine32(transform),
		Color:       tint(n.Color, n.worldAlpha),
		RenderLayer: n.RenderLayer,
		image:       img,
		treeOrder:   *treeOrder,
	})
}

func (s *Scene) emitText(n *Node, treeOrder *int) {
	if n.TextBlock == nil {
		return
	}
	img := n.TextBlock.render()
	if img == nil {
		return
	}
	*treeOrder++
	s.commands = append(s.commands, RenderCommand{
		Transform:   affine32(n.worldTransform),
		Color:       tint(n.Color, n.worldAlpha),
		RenderLayer: n.RenderLayer,
		image:       img,
		treeOrder:   *treeOrder,
	})
}

func tint(c Color, alpha float64) color32 {
	return color32{float32(c.R), float32(c.G), float32(c.B), float32(c.A * alpha)}
}

// --- Merge sort ---

// commandLessOrEqual returns true if a should sort before or at the same position as b.
// Using <= for treeOrder ensures stability.
func commandLessOrEqual(a, b *RenderCommand) bool {
	if a.RenderLayer != b.RenderLayer {
		return a.RenderLayer < b.RenderLayer
	}
	return a.treeOrder <= b.treeOrder
}

// mergeSort sorts s.commands in-place using s.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]RenderCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			mid := min(i+width, n)
			hi := min(i+2*width, n)
			mergeRun(a, b, i, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], src[i:mid])
	copy(dst[k:], src[j:hi])
}

// --- Submission ---

// submit draws the sorted commands onto target.
func (s *Scene) submit(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		op.GeoM.Reset()
		op.GeoM.SetElement(0, 0, float64(cmd.Transform[0]))
		op.GeoM.SetElement(1, 0, float64(cmd.Transform[1]))
		op.GeoM.SetElement(0, 1, float64(cmd.Transform[2]))
		op.GeoM.SetElement(1, 1, float64(cmd.Transform[3]))
		op.GeoM.SetElement(0, 2, float64(cmd.Transform[4]))
		op.GeoM.SetElement(1, 2, float64(cmd.Transform[5]))

		// Premultiplied color scale.
		a := cmd.Color.A
		op.ColorScale.Reset()
		op.ColorScale.Scale(cmd.Color.R*a, cmd.Color.G*a, cmd.Color.B*a, a)
		op.Filter = ebiten.FilterLinear
		img := cmd.image
		if img == nil {
			img = ensureWhitePixel()
		}
		target.DrawImage(img, &op)
	}
}
