package cardstack

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type tweenGoal struct {
	field *float64
	to    float64
}

// Tween animates float64 fields toward goal values. Build one with NewTween
// and the goal methods (X, Y, Scale, Alpha, Color, Field), then hand it to an
// Animator or call Update yourself each frame.
//
// Start values are read when the delay has elapsed, not at construction.
// If the target node is disposed or the tween is killed, it stops without
// calling OnComplete.
type Tween struct {
	target   *Node
	duration float32
	fn       ease.TweenFunc
	goals    []tweenGoal
	tweens   []*gween.Tween

	// Delay postpones the start by this many seconds.
	Delay float32
	// OnUpdate runs after every write.
	OnUpdate func()
	// OnComplete runs once, after the final values are written.
	OnComplete func()

	waited  float32
	started bool
	killed  bool
	Done    bool
}

// NewTween creates a tween on node lasting duration seconds. node may be nil
// for tweens that only drive Field goals.
func NewTween(node *Node, duration float32, fn ease.TweenFunc) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	return &Tween{target: node, duration: duration, fn: fn}
}

// Field adds a goal for an arbitrary field.
func (t *Tween) Field(field *float64, to float64) *Tween {
	t.goals = append(t.goals, tweenGoal{field: field, to: to})
	return t
}

// X adds a goal for the target's X.
func (t *Tween) X(to float64) *Tween { return t.Field(&t.target.X, to) }

// Y adds a goal for the target's Y.
func (t *Tween) Y(to float64) *Tween { return t.Field(&t.target.Y, to) }

// Scale adds goals for both ScaleX and ScaleY.
func (t *Tween) Scale(to float64) *Tween {
	return t.Field(&t.target.ScaleX, to).Field(&t.target.ScaleY, to)
}

// Alpha adds a goal for the target's Alpha.
func (t *Tween) Alpha(to float64) *Tween { return t.Field(&t.target.Alpha, to) }

// Rotation adds a goal for the target's Rotation in radians.
func (t *Tween) Rotation(to float64) *Tween { return t.Field(&t.target.Rotation, to) }

// Color adds goals for all four components of the target's Color.
func (t *Tween) Color(to Color) *Tween {
	c := &t.target.Color
	return t.Field(&c.R, to.R).Field(&c.G, to.G).Field(&c.B, to.B).Field(&c.A, to.A)
}

// After sets Delay and returns t.
func (t *Tween) After(seconds float32) *Tween {
	t.Delay = seconds
	return t
}

// Then sets OnComplete and returns t.
func (t *Tween) Then(fn func()) *Tween {
	t.OnComplete = fn
	return t
}

// Kill stops the tween without completing it.
func (t *Tween) Kill() {
	if t.Done {
		return
	}
	t.killed = true
	t.Done = true
}

// Killed reports whether the tween was stopped before completing.
func (t *Tween) Killed() bool {
	return t.killed
}

// Update advances the tween by dt seconds.
func (t *Tween) Update(dt float32) {
	if t.Done {
		return
	}
	if t.target != nil && t.target.IsDisposed() {
		t.killed = true
		t.Done = true
		return
	}

	if !t.started {
		t.waited += dt
		if t.waited < t.Delay {
			return
		}
		// Carry the part of dt that overran the delay into the first step.
		dt = t.waited - t.Delay
		t.start()
		if t.duration <= 0 {
			t.finish()
			return
		}
	}

	allDone := true
	for i, g := range t.goals {
		val, finished := t.tweens[i].Update(dt)
		*g.field = float64(val)
		if !finished {
			allDone = false
		}
	}
	t.touch()
	if allDone {
		t.finish()
	}
}

func (t *Tween) start() {
	t.started = true
	if t.duration <= 0 {
		return
	}
	t.tweens = make([]*gween.Tween, len(t.goals))
	for i, g := range t.goals {
		t.tweens[i] = gween.New(float32(*g.field), float32(g.to), t.duration, t.fn)
	}
}

// finish writes exact goal values and fires OnComplete.
func (t *Tween) finish() {
	for _, g := range t.goals {
		*g.field = g.to
	}
	t.touch()
	t.Done = true
	if t.OnComplete != nil {
		t.OnComplete()
	}
}

func (t *Tween) touch() {
	if t.target != nil {
		t.target.MarkDirty()
	}
	if t.OnUpdate != nil {
		t.OnUpdate()
	}
}

// Animator runs tweens every frame. Each Scene owns one, advanced from
// Scene.Update.
type Animator struct {
	active   []*Tween
	pending  []*Tween
	updating bool
}

// Play schedules t and returns it. Tweens added while the animator is
// updating begin on the next frame.
func (a *Animator) Play(t *Tween) *Tween {
	if a.updating {
		a.pending = append(a.pending, t)
	} else {
		a.active = append(a.active, t)
	}
	return t
}

// Set applies t's goals immediately with no transition and fires its
// OnComplete.
func (a *Animator) Set(t *Tween) {
	t.started = true
	t.finish()
}

// Sequence plays steps one after another; each step starts when the previous
// one completes. The OnComplete of every step still runs. Killing a step
// ends the sequence. Returns the first step, or nil for no steps.
func (a *Animator) Sequence(steps ...*Tween) *Tween {
	if len(steps) == 0 {
		return nil
	}
	for i := 0; i < len(steps)-1; i++ {
		cur, next := steps[i], steps[i+1]
		done := cur.OnComplete
		cur.OnComplete = func() {
			if done != nil {
				done()
			}
			a.Play(next)
		}
	}
	return a.Play(steps[0])
}

// Kill stops every tween targeting node. None of them complete.
func (a *Animator) Kill(node *Node) {
	for _, t := range a.active {
		if t.target == node {
			t.Kill()
		}
	}
	for _, t := range a.pending {
		if t.target == node {
			t.Kill()
		}
	}
}

// Tweening reports whether any live tween targets node.
func (a *Animator) Tweening(node *Node) bool {
	for _, t := range a.active {
		if t.target == node && !t.Done {
			return true
		}
	}
	for _, t := range a.pending {
		if t.target == node && !t.Done {
			return true
		}
	}
	return false
}

// Len returns the number of live tweens.
func (a *Animator) Len() int {
	n := 0
	for _, t := range a.active {
		if !t.Done {
			n++
		}
	}
	for _, t := range a.pending {
		if !t.Done {
			n++
		}
	}
	return n
}

// Update advances every live tween by dt seconds in the order they were
// played, then drops finished ones.
func (a *Animator) Update(dt float32) {
	a.updating = true
	for _, t := range a.active {
		t.Update(dt)
	}
	a.updating = false

	live := a.active[:0]
	for _, t := range a.active {
		if !t.Done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(a.active); i++ {
		a.active[i] = nil
	}
	a.active = append(live, a.pending...)
	for i := range a.pending {
		a.pending[i] = nil
	}
	a.pending = a.pending[:0]
}
