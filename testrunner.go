package lumen

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a test script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	DY     float64 `yaml:"dy,omitempty"`
	Top    float64 `yaml:"top,omitempty"`
	Key    string  `yaml:"key,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []scriptStep `yaml:"steps"`
}

// ErrEmptyScript is returned by LoadTestScript for a script with no steps.
var ErrEmptyScript = errors.New("test script has no steps")

var scriptKeys = map[string]Key{
	"escape":   KeyEscape,
	"home":     KeyHome,
	"end":      KeyEnd,
	"pageup":   KeyPageUp,
	"pagedown": KeyPageDown,
	"up":       KeyArrowUp,
	"down":     KeyArrowDown,
	"space":    KeySpace,
}

// TestRunner sequences injected input, scrolling and screenshots across
// frames for scripted visual checks. Attach to a Scene via SetTestRunner.
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a test script and returns a TestRunner ready to be
// attached to a Scene via SetTestRunner. Scripts are YAML; JSON scripts parse
// as well.
//
//	steps:
//	  - {action: scroll, dy: 800}
//	  - {action: wait, frames: 30}
//	  - {action: screenshot, label: services}
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", ErrEmptyScript)
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "click", "move", "drag", "scroll", "scrollTo", "wait":
		case "key":
			if _, ok := scriptKeys[st.Key]; !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called at the start of every Update.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections and smooth scrolls before advancing.
	if len(s.injectQueue) > 0 || s.camera.Scrolling() {
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
	s.logger.Debug("test step", zap.Int("index", r.cursor-1), zap.String("action", st.Action))

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "scroll":
		s.InjectScroll(st.DY)
	case "scrollTo":
		s.camera.SetScrollTop(st.Top)
	case "key":
		s.InjectKey(scriptKeys[st.Key])
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
