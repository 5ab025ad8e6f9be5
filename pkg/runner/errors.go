package runner

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an engine failure. The classification decides how far the
// failure propagates: recoverable kinds are swallowed and recorded at the
// step-executor boundary, while environment and unexpected-engine failures
// escalate past the scenario runner.
type Kind int

const (
	// KindEnvironment means the session could not be acquired. Fatal to the
	// run, but an infrastructure problem rather than a test verdict.
	KindEnvironment Kind = iota

	// KindStepTimeout means a single step's wait expired. Recoverable.
	KindStepTimeout

	// KindElementNotFound means locator resolution failed after every
	// alternative. Recoverable unless the step is required.
	KindElementNotFound

	// KindAssertionTimeout means the final predicate never held. Converts to
	// a Failed verdict, never a crash.
	KindAssertionTimeout

	// KindUnexpectedEngine covers automation-engine errors outside the
	// defined categories. Escalates to an Errored outcome.
	KindUnexpectedEngine
)

// String returns the kind's wire name.
func (k Kind) String() string {
	switch k {
	case KindEnvironment:
		return "environment"
	case KindStepTimeout:
		return "step_timeout"
	case KindElementNotFound:
		return "element_not_found"
	case KindAssertionTimeout:
		return "assertion_timeout"
	case KindUnexpectedEngine:
		return "unexpected_engine"
	default:
		return "unknown"
	}
}

// Recoverable reports whether the kind may be swallowed and recorded instead
// of aborting the run.
func (k Kind) Recoverable() bool {
	switch k {
	case KindStepTimeout, KindElementNotFound, KindAssertionTimeout:
		return true
	default:
		return false
	}
}

// EngineError is a classified failure from the automation engine or the
// components driving it.
type EngineError struct {
	Kind Kind
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying engine error.
func (e *EngineError) Unwrap() error { return e.Err }

// Is matches EngineErrors by kind, so errors.Is works with sentinel values.
func (e *EngineError) Is(target error) bool {
	var other *EngineError
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// newError builds a classified error for op.
func newError(kind Kind, op string, err error) *EngineError {
	return &EngineError{Kind: kind, Op: op, Err: err}
}

// classifyStep wraps a raw engine error from a step operation. Timeouts
// become recoverable StepTimeouts; anything else is an unexpected engine
// failure.
func classifyStep(op string, err error) *EngineError {
	if err == nil {
		return nil
	}
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr
	}
	if isTimeout(err) {
		return newError(KindStepTimeout, op, err)
	}
	return newError(KindUnexpectedEngine, op, err)
}

// isTimeout sniffs the engine's timeout errors. The playwright driver does
// not export a sentinel, but its timeout messages always carry the word.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded")
}
