package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/entrhq/flowprobe/pkg/logging"
	"github.com/entrhq/flowprobe/pkg/scenario"
)

// State is a position in the scenario run lifecycle.
type State int

const (
	StateInit State = iota
	StateSessionAcquired
	StateExecuting
	StateAsserting
	StatePassed
	StateFailed
	StateErrored
	StateTornDown
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateSessionAcquired:
		return "session_acquired"
	case StateExecuting:
		return "executing"
	case StateAsserting:
		return "asserting"
	case StatePassed:
		return "passed"
	case StateFailed:
		return "failed"
	case StateErrored:
		return "errored"
	case StateTornDown:
		return "torn_down"
	default:
		return "unknown"
	}
}

// ScenarioRunner orchestrates one scenario run: acquire a session, execute
// the steps, evaluate the final assertion, and guarantee teardown. The run
// walks Init → SessionAcquired → Executing → Asserting → a terminal state,
// and Release runs exactly once no matter where the walk stops.
type ScenarioRunner struct {
	sessions SessionProvider
	executor *StepExecutor
	eval     *Evaluator
	log      *logging.Logger
}

// NewScenarioRunner wires a runner from its collaborators.
func NewScenarioRunner(sessions SessionProvider, executor *StepExecutor, eval *Evaluator, log *logging.Logger) *ScenarioRunner {
	return &ScenarioRunner{
		sessions: sessions,
		executor: executor,
		eval:     eval,
		log:      log,
	}
}

// Run executes one scenario to a terminal Outcome. Every exit path produces
// an Outcome; partial execution is never silently dropped.
func (r *ScenarioRunner) Run(ctx context.Context, sc scenario.Scenario) scenario.Outcome {
	runID := uuid.New().String()
	start := time.Now()
	state := StateInit
	r.log.Infof("scenario %q starting (run %s)", sc.Name, runID)

	outcome := func(status scenario.Status, failedStep *int, message string) scenario.Outcome {
		r.log.Infof("scenario %q finished: %s (%s)", sc.Name, status, message)
		return scenario.Outcome{
			RunID:        runID,
			ScenarioName: sc.Name,
			Status:       status,
			FailedStep:   failedStep,
			Message:      message,
			Duration:     time.Since(start),
		}
	}

	if err := sc.Validate(); err != nil {
		return outcome(scenario.StatusErrored, nil, err.Error())
	}

	// Init -> SessionAcquired. A failure here is an environment problem,
	// not a test verdict.
	session, err := r.sessions.Acquire(ctx)
	if err != nil {
		return outcome(scenario.StatusErrored, nil,
			fmt.Sprintf("could not acquire browser session: %v", err))
	}
	state = StateSessionAcquired

	// Release runs on every exit path below, exactly once. The session
	// tolerates close errors internally, so teardown never masks the verdict.
	defer func() {
		r.log.Debugf("scenario %q tearing down from state %s", sc.Name, state)
		session.Release()
		state = StateTornDown
		r.log.Debugf("scenario %q session released (state %s)", sc.Name, state)
	}()

	if ctx.Err() != nil {
		return outcome(scenario.StatusErrored, nil, "run cancelled before execution")
	}

	// SessionAcquired -> Executing.
	state = StateExecuting
	page := session.Page()
	results, stepErr, failedAt := r.executor.Run(page, sc.Steps)
	r.logStepSummary(sc.Name, results)

	if stepErr != nil {
		state = StateErrored
		return outcome(scenario.StatusErrored, &failedAt,
			fmt.Sprintf("step %d (%s) failed irrecoverably: %v", failedAt, sc.Steps[failedAt].Type, stepErr))
	}

	if ctx.Err() != nil {
		return outcome(scenario.StatusErrored, nil, "run cancelled before assertion")
	}

	// Executing -> Asserting.
	state = StateAsserting
	ok, diag, assertErr := r.eval.Check(page, sc.FinalAssertion)
	if assertErr != nil {
		state = StateErrored
		return outcome(scenario.StatusErrored, nil,
			fmt.Sprintf("assertion could not be evaluated: %v", assertErr))
	}
	if !ok {
		state = StateFailed
		return outcome(scenario.StatusFailed, nil, diag)
	}

	state = StatePassed
	return outcome(scenario.StatusPassed, nil, "final assertion held")
}

func (r *ScenarioRunner) logStepSummary(name string, results []StepResult) {
	recovered := 0
	for _, res := range results {
		if res.Err != nil {
			recovered++
		}
	}
	if recovered > 0 {
		r.log.Infof("scenario %q: %d of %d steps recovered via fallbacks or were skipped",
			name, recovered, len(results))
	}
}
