package runner

import (
	"errors"
	"fmt"
	"time"

	"github.com/entrhq/flowprobe/pkg/logging"
	"github.com/entrhq/flowprobe/pkg/scenario"
)

// Evaluator checks a scenario's final expected-state predicate within a
// bounded timeout. A predicate that never holds in time is a concrete
// negative result, not an error: "not found in time" and "element absent"
// are indistinguishable to the caller, and must be.
type Evaluator struct {
	defaults Defaults
	log      *logging.Logger
}

// NewEvaluator creates an evaluator with the given default budgets.
func NewEvaluator(defaults Defaults, log *logging.Logger) *Evaluator {
	return &Evaluator{defaults: defaults, log: log}
}

// Check evaluates the assertion against the current page state. It returns
// whether the predicate held and a human-readable diagnostic naming the
// first expectation that was not met. The error is non-nil only for engine
// breakage; assertion timeouts always come back as ok=false.
//
// All targets share a single deadline: the assertion's timeout bounds the
// whole predicate, not each marker, so a multi-marker assertion can never
// block for a multiple of its authored budget. Targets checked after the
// deadline get a single immediate probe.
func (ev *Evaluator) Check(page Page, a scenario.Assertion) (bool, string, *EngineError) {
	timeout := a.Timeout
	if timeout == 0 {
		timeout = ev.defaults.AssertTimeout
	}

	mode := a.Mode
	if mode == "" {
		mode = scenario.ExpectVisible
	}

	deadline := time.Now().Add(time.Duration(timeout) * time.Millisecond)
	for _, target := range ev.targets(a) {
		remaining := float64(time.Until(deadline)) / float64(time.Millisecond)
		if remaining < 0 {
			remaining = 0
		}
		visible, err := page.IsVisible(target.selector, remaining)
		if err != nil {
			return false, "", newError(KindUnexpectedEngine, "assert "+target.selector, err)
		}

		switch mode {
		case scenario.ExpectVisible:
			if !visible {
				msg := fmt.Sprintf("expected %s to be visible within %.0fms, but it never appeared", target.label, timeout)
				ev.log.Infof("assertion failed: %v",
					newError(KindAssertionTimeout, "assert "+target.selector, errors.New(msg)))
				return false, msg, nil
			}
		case scenario.ExpectAbsent:
			if visible {
				msg := fmt.Sprintf("expected %s to stay absent, but it became visible within the %.0fms grace window", target.label, timeout)
				ev.log.Infof("assertion failed: %s", msg)
				return false, msg, nil
			}
		}
	}

	return true, "", nil
}

type assertTarget struct {
	selector string
	label    string
}

// targets expands the assertion into engine selectors. Texts use the
// engine's text matcher, the same form the recorded flows assert with.
func (ev *Evaluator) targets(a scenario.Assertion) []assertTarget {
	targets := make([]assertTarget, 0, len(a.Texts)+1)
	for _, text := range a.Texts {
		targets = append(targets, assertTarget{
			selector: "text=" + text,
			label:    fmt.Sprintf("marker %q", text),
		})
	}
	if a.Selector != "" {
		targets = append(targets, assertTarget{
			selector: a.Selector,
			label:    fmt.Sprintf("element %q", a.Selector),
		})
	}
	return targets
}
