// Package runner implements the exploratory navigation-and-assertion
// engine: it executes scenario steps against a browser session, falls back
// to alternative routes and selectors when expected UI is absent, and
// evaluates the final assertion into a pass/fail outcome.
//
// # Architecture
//
// Four collaborators make up one scenario run:
//
//  1. StepExecutor runs the ordered step list, tolerating per-step failure
//  2. FallbackNavigator resolves the first actionable target among ordered
//     alternatives when the primary one is missing
//  3. Evaluator checks the final expected-state predicate within a bounded
//     timeout, converting "never appeared" into a clean negative
//  4. ScenarioRunner drives the state machine around them and guarantees
//     the session is released exactly once on every exit path
//
// The engine consumes the automation engine through the Page and Session
// interfaces, so tests drive the whole state machine with scripted stubs.
//
// # Failure policy
//
// Failures are tagged values, not control flow. A step that cannot find its
// target records an ElementNotFound and the run keeps exploring, unless the
// step was authored as required. Only environment failures and unclassified
// engine errors abort a run, and even those still produce an Outcome and
// still release the session.
package runner
