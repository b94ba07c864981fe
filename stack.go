package cardstack

import "fmt"

// StackLayout describes how queue positions map to the visual stack.
type StackLayout struct {
	Visible     int     // number of cards drawn
	StepOffset  float64 // horizontal peek per position, in pixels
	ScaleStep   float64 // scale lost per position
	OpacityStep float64 // alpha lost per position
}

// DefaultStackLayout returns a three-card stack peeking 20px to the right.
func DefaultStackLayout() StackLayout {
	return StackLayout{Visible: 3, StepOffset: 20, ScaleStep: 0.08, OpacityStep: 0.25}
}

// Slot is the visual state of one stack position.
type Slot struct {
	X           float64
	Scale       float64
	Alpha       float64
	ZIndex      int
	Interactive bool
}

// Slot returns the visual state of position i, where 0 is the front.
func (l StackLayout) Slot(i int) Slot {
	fi := float64(i)
	return Slot{
		X:           l.StepOffset * fi,
		Scale:       1 - l.ScaleStep*fi,
		Alpha:       1 - l.OpacityStep*fi,
		ZIndex:      10 - i,
		Interactive: i == 0,
	}
}

// Count returns how many of n cards are drawn.
func (l StackLayout) Count(n int) int {
	return max(0, min(l.Visible, n))
}

// Stack renders the top of a Queue as card nodes under a single area node.
// Every Render discards the previous card nodes and builds new ones.
type Stack struct {
	area    *Node
	layout  StackLayout
	theme   Theme
	nodes   []*Node
	cardW   float64
	areaW   float64
	renders int
}

// NewStack creates a stack whose area node is added to parent.
func NewStack(parent *Node, layout StackLayout, theme Theme) *Stack {
	area := NewContainer("stack-area")
	area.Interactable = true
	parent.AddChild(area)
	return &Stack{area: area, layout: layout, theme: theme}
}

// Area returns the node that anchors the stack.
func (s *Stack) Area() *Node {
	return s.area
}

// Layout positions the stack for a viewport of the given size. Takes effect
// for cards on the next Render.
func (s *Stack) Layout(vw, vh float64) {
	s.areaW = vw
	side := max(s.theme.Margin, s.theme.DragRoom)
	s.cardW = max(0, min(s.theme.CardWidth, vw-2*side))
	s.area.SetPosition(vw/2, s.theme.StackTop+s.theme.CardHeight/2)
}

// CardSize returns the size of a rendered card.
func (s *Stack) CardSize() (w, h float64) {
	return s.cardW, s.theme.CardHeight
}

// Bound returns how far the front card may be dragged either way before
// edge resistance applies: half the free space beside it.
func (s *Stack) Bound() float64 {
	return max(0, (s.areaW-s.cardW)/2)
}

// Render disposes the current card nodes and creates one per visible queue
// position. Only the front node is interactable.
func (s *Stack) Render(q *Queue) {
	s.Clear()
	s.renders++
	for i, card := range q.Top(s.layout.Count(q.Len())) {
		n := s.buildCard(i, card)
		slot := s.layout.Slot(i)
		n.X = slot.X
		n.ScaleX, n.ScaleY = slot.Scale, slot.Scale
		n.Alpha = slot.Alpha
		n.ZIndex = slot.ZIndex
		n.Interactable = slot.Interactive
		s.area.AddChild(n)
		s.nodes = append(s.nodes, n)
	}
}

// Clear disposes every rendered card node.
func (s *Stack) Clear() {
	for _, n := range s.nodes {
		n.Dispose()
	}
	s.nodes = s.nodes[:0]
}

// Front returns the front card node, or nil when nothing is rendered.
func (s *Stack) Front() *Node {
	if len(s.nodes) == 0 {
		return nil
	}
	return s.nodes[0]
}

// Nodes returns the rendered card nodes, front first.
func (s *Stack) Nodes() []*Node {
	return s.nodes
}

// Renders returns how many times Render has run.
func (s *Stack) Renders() int {
	return s.renders
}

// buildCard creates the node tree for one card. The node's origin is its
// center so that scaling keeps the card centered on the anchor.
func (s *Stack) buildCard(i int, card Card) *Node {
	w, h := s.cardW, s.theme.CardHeight
	pad := s.theme.CardPadding
	textW := max(0, w-2*pad)

	n := NewContainer(fmt.Sprintf("card-%d", i))
	n.PivotX, n.PivotY = w/2, h/2
	n.HitShape = HitRect{Width: w, Height: h}
	n.UserData = card

	n.AddChild(NewRect("bg", w, h, s.theme.CardColor))

	title := newCardText("title", card.Title, s.theme.TitleFont, s.theme.TitleColor, textW)
	title.X, title.Y = pad, pad
	n.AddChild(title)

	_, titleH := title.TextBlock.Size()
	body := newCardText("body", card.Body, s.theme.BodyFont, s.theme.BodyColor, textW)
	body.X, body.Y = pad, pad+titleH+pad/2
	n.AddChild(body)

	prompt := newCardText("prompt", card.Prompt, s.theme.TitleFont, s.theme.PromptColor, textW)
	_, promptH := prompt.TextBlock.Size()
	prompt.X, prompt.Y = pad, h-pad-promptH
	n.AddChild(prompt)

	return n
}

func newCardText(name, content string, font Font, c Color, wrap float64) *Node {
	t := NewText(name, content, font)
	t.TextBlock.Align = TextAlignCenter
	t.TextBlock.WrapWidth = wrap
	t.TextBlock.Color = c
	return t
}
