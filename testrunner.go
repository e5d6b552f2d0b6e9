package adorn

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Target  string  `json:"target,omitempty"`
	Command string  `json:"command,omitempty"`
	State   string  `json:"state,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, adorner commands, state checks and
// screenshots across frames. Attach to a Scene via SetTestRunner.
//
// Supported actions:
//
//	hover       {"x", "y"}             move the pointer
//	click       {"x", "y"}             press and release (two frames)
//	wait        {"frames"}             idle for a number of frames
//	command     {"target", "command"}  run an adorner command by name
//	expect      {"target", "state"}    record a failure if the state differs
//	screenshot  {"label"}              capture the next drawn frame
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	failures  []error
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "hover", "click", "wait", "expect", "screenshot":
		case "command":
			if _, err := ParseCommand(st.Command); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner advances one
// step per frame from Scene.Update, before input is processed.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns the errors recorded by failed expect and command steps.
func (r *TestRunner) Failures() []error {
	return r.failures
}

// step advances the test runner by one frame.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "hover":
		s.InjectHover(st.X, st.Y)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "command":
		cmd, _ := ParseCommand(st.Command)
		if err := s.Execute(st.Target, cmd); err != nil {
			r.fail(s, r.cursor-1, err)
		}
	case "expect":
		r.expect(s, st)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) expect(s *Scene, st testStep) {
	a := s.Adorner(st.Target)
	if a == nil {
		r.fail(s, r.cursor-1, fmt.Errorf("no adorner named %q", st.Target))
		return
	}
	if got := a.State().String(); got != st.State {
		r.fail(s, r.cursor-1, fmt.Errorf("adorner %q: state %s, want %s", st.Target, got, st.State))
	}
}

func (r *TestRunner) fail(s *Scene, index int, err error) {
	err = fmt.Errorf("step %d: %w", index, err)
	r.failures = append(r.failures, err)
	s.logger.Warn("test step failed", zap.Error(err))
}
