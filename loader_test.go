package cardstack

import (
	"errors"
	"testing"
)

func newTestLoader() (*Scene, *Loader) {
	s := NewScene()
	s.SetViewport(800, 600)
	return s, NewLoader(s, DefaultLoaderConfig())
}

func TestLoaderCoversViewport(t *testing.T) {
	s, l := newTestLoader()
	o := l.Overlay()
	if o.Width != 800 || o.Height != 600 {
		t.Errorf("overlay size = (%v, %v), want (800, 600)", o.Width, o.Height)
	}
	s.SetViewport(400, 300)
	if o.Width != 400 || o.Height != 300 {
		t.Errorf("overlay size after resize = (%v, %v), want (400, 300)", o.Width, o.Height)
	}
}

func TestLoaderProgressFills(t *testing.T) {
	s, l := newTestLoader()
	runSeconds(s, 1)
	p := l.Progress()
	if p <= 0 || p >= 100 {
		t.Errorf("Progress after 1s = %v, want between 0 and 100", p)
	}
	if l.bar.Width <= 0 || l.bar.Width >= l.cfg.BarWidth {
		t.Errorf("bar width = %v, want partial", l.bar.Width)
	}
	if got := l.percent.TextBlock.Content; got == "0%" {
		t.Errorf("percent label = %q, should follow progress", got)
	}
}

func TestLoaderHoldsUntilReady(t *testing.T) {
	s, l := newTestLoader()
	ready := make(chan error, 1)
	l.Track(ready)

	runSeconds(s, 4)
	if l.Done() {
		t.Fatal("loader should wait for the tracked work")
	}
	if l.Progress() != 100 {
		t.Errorf("Progress = %v, want 100 after the fill", l.Progress())
	}

	ready <- nil
	runSeconds(s, 2)
	if !l.Done() {
		t.Error("loader should finish once ready")
	}
	if !l.Overlay().IsDisposed() {
		t.Error("overlay should be removed")
	}
}

func TestLoaderErrorDoesNotHold(t *testing.T) {
	s, l := newTestLoader()
	ready := make(chan error, 1)
	ready <- errors.New("missing images")
	l.Track(ready)
	runSeconds(s, 2)
	if !l.Done() {
		t.Error("a failed load should still clear the overlay")
	}
}

func TestLoaderClosedChannel(t *testing.T) {
	s, l := newTestLoader()
	ready := make(chan error)
	close(ready)
	l.Track(ready)
	runSeconds(s, 2)
	if !l.Done() {
		t.Error("a closed channel counts as ready")
	}
}

func TestLoaderFinishEarly(t *testing.T) {
	s, l := newTestLoader()
	var done int
	l.OnDone = func() { done++ }
	runFrames(s, 5)
	l.Track(nil)

	runSeconds(s, float64(l.cfg.Finish))
	if l.Progress() != 100 {
		t.Errorf("Progress = %v, want 100 after the top-up", l.Progress())
	}
	if l.Done() {
		t.Error("overlay should still be sliding away")
	}
	runSeconds(s, float64(l.cfg.Exit)+0.1)
	if done != 1 {
		t.Errorf("OnDone calls = %d, want 1", done)
	}
}

func TestLoaderSwallowsInput(t *testing.T) {
	s, l := newTestLoader()
	below := interactiveRect(s, "below", 0, 0, 800, 600)
	var clicks int
	below.OnClick = func(ClickContext) { clicks++ }

	s.InjectClick(100, 100)
	runFrames(s, 2)
	if clicks != 0 {
		t.Error("clicks should not reach nodes under the overlay")
	}

	l.Track(nil)
	runSeconds(s, 2)
	s.InjectClick(100, 100)
	runFrames(s, 2)
	if clicks != 1 {
		t.Errorf("clicks after the loader = %d, want 1", clicks)
	}
}
