package scenario

import "time"

// Builders for defining scenarios in Go. Scenario definitions stay data:
// fallbacks are ordered lists on the step, never inline branching in code.

// Navigate creates a navigation step. Extra routes are fallbacks tried in
// order when the primary navigation fails.
func Navigate(url string, fallbacks ...string) Step {
	return Step{Type: StepNavigate, URL: url, Fallbacks: fallbacks}
}

// Scroll creates a probe step that scrolls down by one viewport height.
func Scroll() Step {
	return Step{Type: StepScroll}
}

// ScrollBy creates a scroll step with explicit deltas in CSS pixels.
func ScrollBy(dx, dy float64) Step {
	return Step{Type: StepScroll, DeltaX: dx, DeltaY: dy}
}

// Fill creates a form-fill step. Alternate selectors are tried in order when
// the primary selector does not resolve to a visible input.
func Fill(selector, value string, alts ...string) Step {
	return Step{Type: StepFill, Selector: selector, Value: value, AltSelectors: alts}
}

// Click creates a click step with optional alternate selectors.
func Click(selector string, alts ...string) Step {
	return Step{Type: StepClick, Selector: selector, AltSelectors: alts}
}

// Settle creates a pure-delay step. Not a readiness check, but tolerated as
// a budget trade-off when the application renders client side.
func Settle(d time.Duration) Step {
	return Step{Type: StepWait, Duration: Duration(d)}
}

// WithTimeout returns a copy of the step with an explicit timeout in
// milliseconds.
func (s Step) WithTimeout(ms float64) Step {
	s.Timeout = ms
	return s
}

// AsRequired returns a copy of the step marked required. A required step
// that fails aborts the scenario with an Error outcome at its index.
func (s Step) AsRequired() Step {
	s.Required = true
	return s
}

// VisibleWithin builds an expected-present assertion: every text must become
// visible before the timeout.
func VisibleWithin(ms float64, texts ...string) Assertion {
	return Assertion{Texts: texts, Mode: ExpectVisible, Timeout: ms}
}

// AbsentWithin builds an expected-absent assertion: the run passes only if
// none of the texts becomes visible within the grace timeout.
func AbsentWithin(ms float64, texts ...string) Assertion {
	return Assertion{Texts: texts, Mode: ExpectAbsent, Timeout: ms}
}
