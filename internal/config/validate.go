package config

import (
	"fmt"
	"strings"
)

// ValidationResults collects problems found by Validate.
type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found.
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResults) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResults) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks ranges, colors and content. Unknown keys are warnings.
func (c *Config) Validate() ValidationResults {
	var r ValidationResults

	for _, k := range c.Undecoded {
		r.warnf("unknown key %q", k)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		r.errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	c.validateTheme(&r)
	c.validateStack(&r)
	c.validateGesture(&r)
	c.validateDragRoom(&r)
	c.validateTrail(&r)
	c.validateCards(&r)
	return r
}

func (c *Config) validateTheme(r *ValidationResults) {
	t := c.Theme
	sizes := []struct {
		name string
		v    float64
	}{
		{"card_width", t.CardWidth},
		{"card_height", t.CardHeight},
		{"button_width", t.ButtonWidth},
		{"button_height", t.ButtonHeight},
		{"title_size", t.TitleSize},
		{"body_size", t.BodySize},
	}
	for _, s := range sizes {
		if s.v <= 0 {
			r.errorf("theme.%s must be positive, got %g", s.name, s.v)
		}
	}
	if t.CardPadding < 0 || t.Margin < 0 || t.DragRoom < 0 || t.ButtonGap < 0 || t.StackTop < 0 {
		r.errorf("theme spacing values must not be negative")
	}
	if t.CardPadding*2 >= t.CardWidth && t.CardWidth > 0 {
		r.warnf("theme.card_padding %g leaves no room for text in a %g wide card", t.CardPadding, t.CardWidth)
	}
	if _, err := c.Options(); err != nil {
		r.errorf("%v", err)
	}
}

func (c *Config) validateStack(r *ValidationResults) {
	s := c.Stack
	if s.Visible < 1 {
		r.errorf("stack.visible must be at least 1, got %d", s.Visible)
	}
	last := float64(max(s.Visible-1, 0))
	if s.ScaleStep < 0 || 1-s.ScaleStep*last <= 0 {
		r.errorf("stack.scale_step %g makes the back card vanish", s.ScaleStep)
	}
	if s.OpacityStep < 0 || 1-s.OpacityStep*last <= 0 {
		r.warnf("stack.opacity_step %g makes the back card invisible", s.OpacityStep)
	}
}

func (c *Config) validateGesture(r *ValidationResults) {
	g := c.Gesture
	if g.MinimumMovement < 0 {
		r.errorf("gesture.minimum_movement must not be negative")
	}
	if g.EdgeResistance < 0 || g.EdgeResistance > 1 {
		r.errorf("gesture.edge_resistance must be within [0, 1], got %g", g.EdgeResistance)
	}
	if g.NarrowThreshold <= 0 || g.WideThreshold <= 0 {
		r.errorf("gesture thresholds must be positive")
	}
	if g.NarrowThreshold > g.WideThreshold {
		r.warnf("gesture.narrow_threshold %g exceeds wide_threshold %g", g.NarrowThreshold, g.WideThreshold)
	}
	if g.MinimumMovement >= g.NarrowThreshold {
		r.warnf("gesture.minimum_movement %g is not below narrow_threshold %g", g.MinimumMovement, g.NarrowThreshold)
	}
}

func (c *Config) validateDragRoom(r *ValidationResults) {
	room := max(c.Theme.Margin, c.Theme.DragRoom)
	if room < c.Gesture.NarrowThreshold {
		r.warnf("theme.drag_room %g is below gesture.narrow_threshold %g; narrow viewports meet edge resistance before a drag is accepted",
			room, c.Gesture.NarrowThreshold)
	}
}

func (c *Config) validateTrail(r *ValidationResults) {
	t := c.Trail
	if !t.Enabled {
		return
	}
	if t.NarrowSpacing <= 0 || t.WideSpacing <= 0 {
		r.errorf("trail spacing must be positive")
	}
	if t.Size < 0 {
		r.errorf("trail.size must not be negative")
	}
}

func (c *Config) validateCards(r *ValidationResults) {
	if len(c.Cards) == 0 {
		r.warnf("no cards configured; the stack will be empty")
		return
	}
	seen := make(map[string]int, len(c.Cards))
	for i, card := range c.Cards {
		title := strings.TrimSpace(card.Title)
		if title == "" {
			r.errorf("cards[%d].title is required", i)
			continue
		}
		if card.Body == "" {
			r.warnf("cards[%d] (%s) has no body", i, title)
		}
		if j, ok := seen[title]; ok {
			r.warnf("cards[%d] repeats the title of cards[%d] (%s)", i, j, title)
		}
		seen[title] = i
	}
}
