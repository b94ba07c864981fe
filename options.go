package cardstack

// Theme holds the sizes, colors and fonts of the card stack and its controls.
type Theme struct {
	CardWidth   float64 // preferred width; shrinks to fit narrow viewports
	CardHeight  float64
	CardPadding float64
	StackTop    float64 // distance from the top of the viewport to the stack
	Margin      float64 // minimum horizontal space kept free on each side
	DragRoom    float64 // free space beside the card before edge resistance; narrows the card on small viewports

	ButtonWidth  float64
	ButtonHeight float64
	ButtonGap    float64 // space between the stack and the buttons, and between buttons

	Background  Color
	CardColor   Color
	TitleColor  Color
	BodyColor   Color
	PromptColor Color

	ButtonColor  Color // button rest color
	LabelColor   Color
	AdvanceColor Color // pulse and glow for advance
	RejectColor  Color // glow for reject

	TitleFont Font
	BodyFont  Font
}

// Timing holds durations in seconds for the stack transitions.
type Timing struct {
	Exit          float32
	Entrance      float32
	EntranceScale float64 // scale the new front card starts from
	EntranceAlpha float64 // alpha the new front card starts from
	Carry         float32 // inertial coast before settling
	Settle        float32 // elastic return to rest
	Highlight     float32
	Pulse         float32
	ShakeStep     float32
	ShakeSettle   float32
}

// Options configures a Controller.
type Options struct {
	Layout  StackLayout
	Gesture GestureConfig
	Theme   Theme
	Timing  Timing
}

// DefaultTheme returns the stock palette and sizes. Fonts are left nil.
func DefaultTheme() Theme {
	return Theme{
		CardWidth:    340,
		CardHeight:   288,
		CardPadding:  20,
		StackTop:     96,
		Margin:       16,
		DragRoom:     48,
		ButtonWidth:  120,
		ButtonHeight: 48,
		ButtonGap:    24,
		Background:   Color{0.988, 0.961, 0.898, 1},
		CardColor:    Color{1, 1, 1, 1},
		TitleColor:   Color{0.118, 0.188, 0.337, 1},
		BodyColor:    Color{0.231, 0.259, 0.322, 1},
		PromptColor:  Color{0.957, 0.447, 0.18, 1},
		ButtonColor:  Color{0.957, 0.447, 0.18, 1},
		LabelColor:   Color{1, 1, 1, 1},
		AdvanceColor: Color{0.298, 0.686, 0.314, 1},
		RejectColor:  Color{0.957, 0.447, 0.18, 1},
	}
}

// DefaultTiming returns the stock transition timings.
func DefaultTiming() Timing {
	return Timing{
		Exit:          0.4,
		Entrance:      0.4,
		EntranceScale: 0.9,
		EntranceAlpha: 0.7,
		Carry:         0.15,
		Settle:        0.3,
		Highlight:     0.2,
		Pulse:         0.15,
		ShakeStep:     0.07,
		ShakeSettle:   0.1,
	}
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		Layout:  DefaultStackLayout(),
		Gesture: DefaultGestureConfig(),
		Theme:   DefaultTheme(),
		Timing:  DefaultTiming(),
	}
}
