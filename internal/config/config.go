package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/cardstack"
)

//go:embed default.toml
var defaultTOML string

// Config represents the application configuration
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Theme   ThemeConfig   `toml:"theme"`
	Stack   StackConfig   `toml:"stack"`
	Gesture GestureConfig `toml:"gesture"`
	Trail   TrailConfig   `toml:"trail"`
	Loader  LoaderConfig  `toml:"loader"`
	Cards   []CardConfig  `toml:"cards"`

	// Source is the file the config was read from, empty for defaults.
	Source string `toml:"-"`
	// Undecoded lists keys present in the file that no field accepted.
	Undecoded []string `toml:"-"`
}

// WindowConfig sizes the application window.
type WindowConfig struct {
	Title   string `toml:"title"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	ShowFPS bool   `toml:"show_fps"`
}

// ThemeConfig holds sizes and hex colors.
type ThemeConfig struct {
	CardWidth    float64 `toml:"card_width"`
	CardHeight   float64 `toml:"card_height"`
	CardPadding  float64 `toml:"card_padding"`
	StackTop     float64 `toml:"stack_top"`
	Margin       float64 `toml:"margin"`
	DragRoom     float64 `toml:"drag_room"`
	ButtonWidth  float64 `toml:"button_width"`
	ButtonHeight float64 `toml:"button_height"`
	ButtonGap    float64 `toml:"button_gap"`
	TitleSize    float64 `toml:"title_size"`
	BodySize     float64 `toml:"body_size"`
	Background   string  `toml:"background"`
	Card         string  `toml:"card"`
	Title        string  `toml:"title"`
	Body         string  `toml:"body"`
	Prompt       string  `toml:"prompt"`
	Button       string  `toml:"button"`
	Label        string  `toml:"label"`
	Advance      string  `toml:"advance"`
	Reject       string  `toml:"reject"`
}

// StackConfig mirrors cardstack.StackLayout.
type StackConfig struct {
	Visible     int     `toml:"visible"`
	StepOffset  float64 `toml:"step_offset"`
	ScaleStep   float64 `toml:"scale_step"`
	OpacityStep float64 `toml:"opacity_step"`
}

// GestureConfig mirrors the tunable parts of cardstack.GestureConfig.
type GestureConfig struct {
	MinimumMovement  float64 `toml:"minimum_movement"`
	EdgeResistance   float64 `toml:"edge_resistance"`
	NarrowBreakpoint float64 `toml:"narrow_breakpoint"`
	NarrowThreshold  float64 `toml:"narrow_threshold"`
	WideThreshold    float64 `toml:"wide_threshold"`
}

// TrailConfig configures the pointer trail.
type TrailConfig struct {
	Enabled          bool    `toml:"enabled"`
	Images           string  `toml:"images"` // directory of PNG/JPEG files; empty uses built-in shapes
	Size             float64 `toml:"size"`
	NarrowBreakpoint float64 `toml:"narrow_breakpoint"`
	NarrowSpacing    float64 `toml:"narrow_spacing"`
	WideSpacing      float64 `toml:"wide_spacing"`
}

// LoaderConfig toggles the loading overlay.
type LoaderConfig struct {
	Enabled bool `toml:"enabled"`
}

// CardConfig is one card of content.
type CardConfig struct {
	Title  string `toml:"title"`
	Body   string `toml:"body"`
	Prompt string `toml:"prompt"`
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "seasons", "config.toml")
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	if _, err := toml.Decode(defaultTOML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return &cfg
}

// Load reads path over the defaults. An empty path means the XDG config
// file, which may be absent.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = GetConfigFilePath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	cfg, err := Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// Decode parses TOML over the defaults. A [[cards]] list in data replaces the
// default cards as a whole.
func Decode(data string) (*Config, error) {
	cfg := Default()
	cards := cfg.Cards
	cfg.Cards = nil

	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, err
	}
	if !md.IsDefined("cards") {
		cfg.Cards = cards
	}
	for _, k := range md.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, k.String())
	}
	return cfg, nil
}

// CardList converts the configured cards.
func (c *Config) CardList() []cardstack.Card {
	out := make([]cardstack.Card, len(c.Cards))
	for i, cc := range c.Cards {
		out[i] = cardstack.Card{Title: cc.Title, Body: cc.Body, Prompt: cc.Prompt}
	}
	return out
}

// Options converts the configuration into controller options. Fonts are
// left for the caller to fill in.
func (c *Config) Options() (cardstack.Options, error) {
	opts := cardstack.DefaultOptions()

	opts.Layout = cardstack.StackLayout{
		Visible:     c.Stack.Visible,
		StepOffset:  c.Stack.StepOffset,
		ScaleStep:   c.Stack.ScaleStep,
		OpacityStep: c.Stack.OpacityStep,
	}

	g := c.Gesture
	opts.Gesture.MinimumMovement = g.MinimumMovement
	opts.Gesture.EdgeResistance = g.EdgeResistance
	opts.Gesture.NarrowBreakpoint = g.NarrowBreakpoint
	opts.Gesture.NarrowThreshold = g.NarrowThreshold
	opts.Gesture.WideThreshold = g.WideThreshold

	t := c.Theme
	th := &opts.Theme
	th.CardWidth = t.CardWidth
	th.CardHeight = t.CardHeight
	th.CardPadding = t.CardPadding
	th.StackTop = t.StackTop
	th.Margin = t.Margin
	th.DragRoom = t.DragRoom
	th.ButtonWidth = t.ButtonWidth
	th.ButtonHeight = t.ButtonHeight
	th.ButtonGap = t.ButtonGap

	colors := []struct {
		name string
		hex  string
		dst  *cardstack.Color
	}{
		{"background", t.Background, &th.Background},
		{"card", t.Card, &th.CardColor},
		{"title", t.Title, &th.TitleColor},
		{"body", t.Body, &th.BodyColor},
		{"prompt", t.Prompt, &th.PromptColor},
		{"button", t.Button, &th.ButtonColor},
		{"label", t.Label, &th.LabelColor},
		{"advance", t.Advance, &th.AdvanceColor},
		{"reject", t.Reject, &th.RejectColor},
	}
	for _, col := range colors {
		v, err := ParseColor(col.hex)
		if err != nil {
			return opts, fmt.Errorf("theme.%s: %w", col.name, err)
		}
		*col.dst = v
	}
	return opts, nil
}

// TrailOptions converts the trail section.
func (c *Config) TrailOptions() cardstack.TrailConfig {
	tc := cardstack.DefaultTrailConfig()
	tc.Size = c.Trail.Size
	tc.NarrowBreakpoint = c.Trail.NarrowBreakpoint
	tc.NarrowSpacing = c.Trail.NarrowSpacing
	tc.WideSpacing = c.Trail.WideSpacing
	return tc
}

// ParseColor parses a "#rrggbb" hex color into an opaque cardstack.Color.
func ParseColor(hex string) (cardstack.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return cardstack.Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return cardstack.Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}
