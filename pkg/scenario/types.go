package scenario

import (
	"fmt"
	"time"
)

// StepType identifies the action a Step performs.
type StepType string

const (
	// StepNavigate requests the page load a URL, with optional fallback routes.
	StepNavigate StepType = "navigate"

	// StepScroll issues a relative viewport scroll, used as a probe to
	// reveal lazily rendered UI.
	StepScroll StepType = "scroll"

	// StepFill types a value into the first actionable input matching the
	// selector or one of its alternates.
	StepFill StepType = "fill"

	// StepClick clicks the first actionable element matching the selector
	// or one of its alternates.
	StepClick StepType = "click"

	// StepWait is a pure delay that lets client-side rendering settle.
	StepWait StepType = "wait"
)

// Step is one atomic browser action. Each step is self-contained: it carries
// its own timeout and fallback data, so executing a step never depends on
// state left behind by a previous one.
//
// Steps are exploratory by default: a step that cannot find its target is
// recorded and the run continues. Set Required to abort the scenario with an
// Error outcome when the step fails.
type Step struct {
	Type StepType `yaml:"type"`

	// Navigate fields. URL may be absolute or a path resolved against the
	// configured base URL. Fallbacks are alternative routes tried in order
	// when the primary navigation fails.
	URL       string   `yaml:"url,omitempty"`
	Fallbacks []string `yaml:"fallbacks,omitempty"`

	// Fill/Click fields. AltSelectors are tried in authored order after the
	// primary selector fails to resolve.
	Selector     string   `yaml:"selector,omitempty"`
	AltSelectors []string `yaml:"alt_selectors,omitempty"`
	Value        string   `yaml:"value,omitempty"`

	// Scroll deltas in CSS pixels. A zero DeltaY scrolls by one viewport
	// height, measured from the live page.
	DeltaX float64 `yaml:"delta_x,omitempty"`
	DeltaY float64 `yaml:"delta_y,omitempty"`

	// Duration of a wait step.
	Duration Duration `yaml:"duration,omitempty"`

	// Timeout in milliseconds for this step's engine operations. Zero means
	// the executor's default.
	Timeout float64 `yaml:"timeout,omitempty"`

	Required bool `yaml:"required,omitempty"`
}

// AssertionMode controls the polarity of the final assertion.
type AssertionMode string

const (
	// ExpectVisible passes when every marker becomes visible in time.
	ExpectVisible AssertionMode = "visible"

	// ExpectAbsent passes when no marker becomes visible within the grace
	// timeout. Used to prove something did NOT happen, such as a success
	// banner after a rejected sign-in.
	ExpectAbsent AssertionMode = "absent"
)

// Assertion is the final expected-state predicate of a scenario. Texts are
// page markers checked for visibility; all of them must satisfy the mode.
type Assertion struct {
	// Texts are literal page texts to look for. Each is matched with the
	// engine's text selector.
	Texts []string `yaml:"texts,omitempty"`

	// Selector is an optional explicit selector checked in addition to Texts.
	Selector string `yaml:"selector,omitempty"`

	Mode AssertionMode `yaml:"mode,omitempty"`

	// Timeout in milliseconds. Zero means the evaluator's default, which is
	// deliberately shorter than step timeouts.
	Timeout float64 `yaml:"timeout,omitempty"`
}

// Scenario is one named end-to-end flow under test. Scenarios are defined at
// configuration time and never mutated afterwards; a run only reads them.
type Scenario struct {
	Name           string    `yaml:"name"`
	Steps          []Step    `yaml:"steps"`
	FinalAssertion Assertion `yaml:"assert"`
}

// Validate reports the first structural problem in the scenario definition.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("scenario %q step %d: %w", s.Name, i, err)
		}
	}
	a := s.FinalAssertion
	if len(a.Texts) == 0 && a.Selector == "" {
		return fmt.Errorf("scenario %q has no final assertion target", s.Name)
	}
	switch a.Mode {
	case "", ExpectVisible, ExpectAbsent:
	default:
		return fmt.Errorf("scenario %q: unknown assertion mode %q", s.Name, a.Mode)
	}
	return nil
}

func (s *Step) validate() error {
	switch s.Type {
	case StepNavigate:
		if s.URL == "" {
			return fmt.Errorf("navigate step needs a url")
		}
	case StepFill:
		if s.Selector == "" {
			return fmt.Errorf("fill step needs a selector")
		}
	case StepClick:
		if s.Selector == "" {
			return fmt.Errorf("click step needs a selector")
		}
	case StepWait:
		if s.Duration <= 0 {
			return fmt.Errorf("wait step needs a positive duration")
		}
	case StepScroll:
	default:
		return fmt.Errorf("unknown step type %q", s.Type)
	}
	return nil
}

// Status is the terminal verdict of a scenario run.
type Status string

const (
	// StatusPassed means every step completed or was recoverably skipped and
	// the final assertion held.
	StatusPassed Status = "passed"

	// StatusFailed means the final assertion did not hold. A test failure,
	// not an infrastructure one.
	StatusFailed Status = "failed"

	// StatusErrored means the run could not produce a verdict: the session
	// could not be acquired, a required step failed, or the engine broke.
	StatusErrored Status = "errored"
)

// Outcome is the terminal record of one scenario run. Exactly one Outcome is
// produced per run, even when failure happens mid-sequence.
type Outcome struct {
	RunID        string        `json:"run_id"`
	ScenarioName string        `json:"scenario"`
	Status       Status        `json:"status"`
	FailedStep   *int          `json:"failed_step,omitempty"`
	Message      string        `json:"message"`
	Duration     time.Duration `json:"duration"`
}

// Passed reports whether the outcome is a pass.
func (o Outcome) Passed() bool { return o.Status == StatusPassed }
