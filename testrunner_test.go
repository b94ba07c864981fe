package cardstack

import (
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "drag", "fromX": 480, "fromY": 240, "toX": 600, "toY": 240, "frames": 8},
			{"action": "wait", "frames": 30},
			{"action": "invoke", "name": "advance"},
			{"action": "resize", "width": 500, "height": 720}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if st := runner.steps[1]; st.FromX != 480 || st.ToX != 600 || st.Frames != 8 {
		t.Errorf("drag step = %+v", st)
	}
	if st := runner.steps[3]; st.Name != "advance" {
		t.Errorf("invoke name = %q, want advance", st.Name)
	}
	if st := runner.steps[4]; st.Width != 500 || st.Height != 720 {
		t.Errorf("resize step = %+v", st)
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid json", `not json`, "parse test script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "jump"}]}`, "unknown action"},
		{"invoke without name", `{"steps": [{"action": "invoke"}]}`, "needs a name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestRunnerStepClick(t *testing.T) {
	s := NewScene()
	n := interactiveRect(s, "n", 0, 0, 200, 200)
	var clicks int
	n.OnClick = func(ClickContext) { clicks++ }

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// First frame: the runner queues press+release and the press is consumed.
	runFrames(s, 1)
	if runner.Done() {
		t.Error("runner should not be done while injections are pending")
	}
	runFrames(s, 2)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerWait(t *testing.T) {
	s := NewScene()
	var calls int
	runner, _ := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "invoke", "name": "mark"}
	]}`))
	runner.Bind("mark", func() { calls++ })
	s.SetTestRunner(runner)

	runFrames(s, 3)
	if calls != 0 {
		t.Fatal("invoke ran before the wait elapsed")
	}
	runFrames(s, 1)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerResize(t *testing.T) {
	s := NewScene()
	runner, _ := LoadTestScript([]byte(`{"steps": [{"action": "resize", "width": 320, "height": 480}]}`))
	s.SetTestRunner(runner)
	runFrames(s, 1)
	if w, h := s.Viewport(); w != 320 || h != 480 {
		t.Errorf("Viewport = (%v, %v), want (320, 480)", w, h)
	}
}

func TestRunnerUnboundInvoke(t *testing.T) {
	s := NewScene()
	runner, _ := LoadTestScript([]byte(`{"steps": [{"action": "invoke", "name": "missing"}]}`))
	s.SetTestRunner(runner)
	runFrames(s, 1)
	if !runner.Done() {
		t.Error("an unbound invoke should be skipped")
	}
}

func TestRunnerScreenshotQueues(t *testing.T) {
	s := NewScene()
	runner, _ := LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "start"}]}`))
	s.SetTestRunner(runner)
	runFrames(s, 1)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "start" {
		t.Errorf("screenshotQueue = %v, want [start]", s.screenshotQueue)
	}
}

func TestRunnerDrivesController(t *testing.T) {
	s := NewScene()
	s.SetViewport(960, 720)
	c := NewController(s, seasons(), DefaultOptions())

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "invoke", "name": "reject"},
		{"action": "wait", "frames": 60},
		{"action": "drag", "fromX": 480, "fromY": 240, "toX": 600, "toY": 240, "frames": 6},
		{"action": "wait", "frames": 60}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.Bind("reject", func() { c.Reject() })
	s.SetTestRunner(runner)

	for i := 0; i < 400 && !runner.Done(); i++ {
		s.step(frame, false)
	}
	settleAll(s)
	if !runner.Done() {
		t.Fatal("script did not finish")
	}
	if c.Queue().Tally(DirectionLeft) != 1 || c.Queue().Tally(DirectionRight) != 1 {
		t.Errorf("tallies left=%d right=%d, want 1 each", c.Queue().Tally(DirectionLeft), c.Queue().Tally(DirectionRight))
	}
	if frontTitle(c) != "Winter" {
		t.Errorf("front = %q, want Winter", frontTitle(c))
	}
}
