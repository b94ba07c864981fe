package cardstack

import "github.com/tanema/gween/ease"

// Control is a clickable button with a glow that reacts to drags and
// dismissals. It never changes stack state on its own; OnClick is wired by
// the owner.
type Control struct {
	scene  *Scene
	timing Timing
	node   *Node
	bg     *Node
	glow   *Node
	label  *Node
	rest   Color
	accent Color
	restX  float64
}

// NewControl builds a w×h button labelled text. rest is the background color,
// accent the pulse color and glow the highlight color.
func NewControl(scene *Scene, name, text string, font Font, w, h float64, theme Theme, accent, glow Color, timing Timing) *Control {
	c := &Control{scene: scene, timing: timing, rest: theme.ButtonColor, accent: accent}

	c.node = NewContainer(name)
	c.node.PivotX, c.node.PivotY = w/2, h/2
	c.node.HitShape = HitRect{Width: w, Height: h}
	c.node.Interactable = true

	const spread = 6
	c.glow = NewRect("glow", w+2*spread, h+2*spread, glow)
	c.glow.X, c.glow.Y = -spread, -spread
	c.glow.Alpha = 0
	c.node.AddChild(c.glow)

	c.bg = NewRect("bg", w, h, theme.ButtonColor)
	c.node.AddChild(c.bg)

	c.label = NewText("label", text, font)
	c.label.TextBlock.Align = TextAlignCenter
	c.label.TextBlock.WrapWidth = w
	c.label.TextBlock.Color = theme.LabelColor
	_, lh := c.label.TextBlock.Size()
	c.label.Y = (h - lh) / 2
	c.node.AddChild(c.label)

	return c
}

// Node returns the button's root node.
func (c *Control) Node() *Node {
	return c.node
}

// SetRest moves the button's rest position, cancelling any shake.
func (c *Control) SetRest(x, y float64) {
	c.scene.Animator().Kill(c.node)
	c.restX = x
	c.node.SetPosition(x, y)
}

// GlowAlpha returns the current glow opacity.
func (c *Control) GlowAlpha() float64 {
	return c.glow.Alpha
}

// Highlight fades the glow in or out.
func (c *Control) Highlight(on bool) {
	to := 0.0
	if on {
		to = 1
	}
	a := c.scene.Animator()
	a.Kill(c.glow)
	a.Play(NewTween(c.glow, c.timing.Highlight, ease.OutQuad).Alpha(to))
}

// Reset fades the glow out.
func (c *Control) Reset() {
	c.Highlight(false)
}

// Pulse flashes the background to the accent color and back.
func (c *Control) Pulse() {
	a := c.scene.Animator()
	a.Kill(c.bg)
	a.Sequence(
		NewTween(c.bg, c.timing.Pulse, ease.OutQuad).Color(c.accent),
		NewTween(c.bg, c.timing.Pulse, ease.InQuad).Color(c.rest),
		NewTween(c.bg, c.timing.Highlight, ease.OutQuad).Color(c.rest),
	)
}

// Shake jolts the button sideways and settles it back at rest.
func (c *Control) Shake() {
	a := c.scene.Animator()
	a.Kill(c.node)
	c.node.X = c.restX
	c.node.MarkDirty()

	keys := []float64{-10, 10, -6, 6, 0}
	steps := make([]*Tween, 0, len(keys)+1)
	for _, k := range keys {
		steps = append(steps, NewTween(c.node, c.timing.ShakeStep, ease.Linear).X(c.restX+k))
	}
	steps = append(steps, NewTween(c.node, c.timing.ShakeSettle, ease.OutQuad).X(c.restX))
	a.Sequence(steps...)
}

// Close disposes the button.
func (c *Control) Close() {
	c.node.Dispose()
}
