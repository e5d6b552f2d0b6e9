package adorn

import (
	"errors"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "command", "target": "tip", "command": "fade-in"},
			{"action": "expect", "target": "tip", "state": "visible"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[3].Target != "tip" || runner.steps[3].Command != "fade-in" {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "drag"}]}`},
		{"unknown command", `{"steps": [{"action": "command", "target": "tip", "command": "explode"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunnerStep_Click(t *testing.T) {
	s := newInputScene(interactableRect("r", 200, 200))

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	clicks := 0
	s.OnClick(func(ClickContext) { clicks++ })

	runner.step(s)
	if s.PendingInjections() != 2 {
		t.Fatalf("expected 2 queued events, got %d", s.PendingInjections())
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	s.processInjectedInput()
	s.processInjectedInput()
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}

	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewScene()

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	for frame := 1; frame <= 3; frame++ {
		runner.step(s)
		if runner.Done() {
			t.Fatalf("done during wait at frame %d", frame)
		}
	}

	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", s.screenshotQueue)
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := NewScene()

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	runner.step(s)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	s.injectQueue = s.injectQueue[:0]
	runner.step(s)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "after" {
		t.Errorf("expected screenshot 'after', got %v", s.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerDrivesAdorner(t *testing.T) {
	s, host := newTestScene(t)
	newTestAdorner(t, s, host, DefaultConfig())

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "expect", "target": "host", "state": "hidden"},
		{"action": "hover", "x": 150, "y": 150},
		{"action": "expect", "target": "host", "state": "fading-in"},
		{"action": "wait", "frames": 2},
		{"action": "expect", "target": "host", "state": "visible"},
		{"action": "command", "target": "host", "command": "hide"},
		{"action": "expect", "target": "host", "state": "hidden"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	for i := 0; i < 20 && !runner.Done(); i++ {
		s.tick(0.125, false)
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	for _, err := range runner.Failures() {
		t.Error(err)
	}
}

func TestRunnerRecordsFailures(t *testing.T) {
	s, host := newTestScene(t)
	newTestAdorner(t, s, host, DefaultConfig())
	logs := observe(s)

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "expect", "target": "host", "state": "visible"},
		{"action": "expect", "target": "nobody", "state": "hidden"},
		{"action": "command", "target": "nobody", "command": "show"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	for !runner.Done() {
		s.tick(0, false)
	}

	if n := len(runner.Failures()); n != 3 {
		t.Fatalf("failures = %d, want 3: %v", n, runner.Failures())
	}
	if n := logs.FilterMessage("test step failed").Len(); n != 3 {
		t.Errorf("logged %d failures, want 3", n)
	}
}

func TestRunnerCommandErrorsAreWrapped(t *testing.T) {
	s, host := newTestScene(t)
	cfg := DefaultConfig()
	cfg.AdornedPartName = "missing"
	newTestAdorner(t, s, host, cfg)

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "command", "target": "host", "command": "show"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	s.tick(0, false)

	if f := runner.Failures(); len(f) != 1 || !errors.Is(f[0], ErrPartNotFound) {
		t.Errorf("failures = %v, want one ErrPartNotFound", f)
	}
}
