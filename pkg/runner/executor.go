package runner

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/entrhq/flowprobe/pkg/logging"
	"github.com/entrhq/flowprobe/pkg/scenario"
)

// Defaults are the timeout budgets applied when a step or assertion does not
// carry its own. All values are milliseconds.
type Defaults struct {
	// StepTimeout bounds locator resolution and element actions.
	StepTimeout float64

	// NavTimeout bounds navigation commits, which are allowed a longer
	// budget than element actions.
	NavTimeout float64

	// SettleTimeout bounds the best-effort content-ready wait after a
	// navigation. Its expiry never aborts the scenario.
	SettleTimeout float64

	// AssertTimeout bounds the final assertion. Deliberately shorter than
	// step timeouts since assertion is the final gate, not exploration.
	AssertTimeout float64
}

// StepResult records what happened to one step. A nil Err means the step
// completed; a recoverable Err means the step was exploratory and the run
// continued past it.
type StepResult struct {
	Index int
	Step  scenario.Step
	Err   *EngineError
}

// StepExecutor runs an ordered step sequence against a session's page,
// tolerating per-step failure. It never reorders steps and keeps no state
// between them beyond the recorded results.
type StepExecutor struct {
	baseURL  string
	defaults Defaults
	fallback *FallbackNavigator
	log      *logging.Logger
}

// NewStepExecutor creates an executor. baseURL is prepended to step URLs
// that are bare paths.
func NewStepExecutor(baseURL string, defaults Defaults, fallback *FallbackNavigator, log *logging.Logger) *StepExecutor {
	return &StepExecutor{
		baseURL:  strings.TrimRight(baseURL, "/"),
		defaults: defaults,
		fallback: fallback,
		log:      log,
	}
}

// Run executes steps sequentially. It returns the per-step results and, when
// a required step failed or the engine broke, the error that aborted the
// run together with the index it happened at.
func (e *StepExecutor) Run(page Page, steps []scenario.Step) ([]StepResult, *EngineError, int) {
	results := make([]StepResult, 0, len(steps))

	for i, step := range steps {
		err := e.runStep(page, step)
		results = append(results, StepResult{Index: i, Step: step, Err: err})

		if err == nil {
			continue
		}
		if !err.Kind.Recoverable() {
			return results, err, i
		}
		if step.Required {
			e.log.Warnf("required step %d (%s) failed: %v", i, step.Type, err)
			return results, err, i
		}
		e.log.Debugf("exploratory step %d (%s) failed, continuing: %v", i, step.Type, err)
	}
	return results, nil, -1
}

func (e *StepExecutor) runStep(page Page, step scenario.Step) *EngineError {
	switch step.Type {
	case scenario.StepNavigate:
		return e.navigate(page, step)
	case scenario.StepScroll:
		return e.scroll(page, step)
	case scenario.StepFill:
		return e.interact(page, step, "fill")
	case scenario.StepClick:
		return e.interact(page, step, "click")
	case scenario.StepWait:
		time.Sleep(step.Duration.Std())
		return nil
	default:
		return newError(KindUnexpectedEngine, "run step",
			fmt.Errorf("unknown step type %q", step.Type))
	}
}

// navigate commits the navigation and then gives the page a bounded chance
// to reach a content-ready state. The settle wait is allowed to expire
// without consequence; slow third-party resources must not stall the run.
func (e *StepExecutor) navigate(page Page, step scenario.Step) *EngineError {
	timeout := step.Timeout
	if timeout == 0 {
		timeout = e.defaults.NavTimeout
	}

	target := e.resolveURL(step.URL)
	fallbacks := make([]string, len(step.Fallbacks))
	for i, route := range step.Fallbacks {
		fallbacks[i] = e.resolveURL(route)
	}

	if err := e.fallback.Navigate(page, target, fallbacks, timeout); err != nil {
		return err
	}

	if err := page.WaitReady(e.defaults.SettleTimeout); err != nil {
		e.log.Debugf("content-ready wait expired after navigation, proceeding: %v", err)
	}
	return nil
}

func (e *StepExecutor) scroll(page Page, step scenario.Step) *EngineError {
	dx, dy := step.DeltaX, step.DeltaY
	if dx == 0 && dy == 0 {
		height, err := page.InnerHeight()
		if err != nil {
			return classifyStep("read viewport height", err)
		}
		dy = height
	}
	if err := page.Scroll(dx, dy); err != nil {
		return classifyStep("scroll", err)
	}
	return nil
}

// interact resolves the step's target through the fallback navigator before
// acting on it. A target no alternative could resolve is ElementNotFound,
// which is recoverable unless the step is required.
func (e *StepExecutor) interact(page Page, step scenario.Step, action string) *EngineError {
	timeout := step.Timeout
	if timeout == 0 {
		timeout = e.defaults.StepTimeout
	}

	selector, found, err := e.fallback.Resolve(page, step.Selector, step.AltSelectors, timeout)
	if err != nil {
		return err
	}
	if !found {
		return newError(KindElementNotFound, action,
			fmt.Errorf("no visible target for %q or %d alternative(s)", step.Selector, len(step.AltSelectors)))
	}

	var actErr error
	switch action {
	case "fill":
		actErr = page.Fill(selector, step.Value, timeout)
	case "click":
		actErr = page.Click(selector, timeout)
	}
	if actErr != nil {
		return classifyStep(action+" "+selector, actErr)
	}
	return nil
}

// resolveURL joins bare paths onto the configured base URL. Absolute URLs
// pass through untouched.
func (e *StepExecutor) resolveURL(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.IsAbs() {
		return raw
	}
	if e.baseURL == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return e.baseURL + raw
}
