// Package report aggregates scenario outcomes for the CI collaborator. It
// deliberately stops at plain text and JSON records; rendering belongs to
// downstream tooling.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/entrhq/flowprobe/pkg/scenario"
)

// Summary collects one Outcome per scenario run. Safe for concurrent Add
// from parallel runs.
type Summary struct {
	mu       sync.Mutex
	outcomes []scenario.Outcome
}

// NewSummary creates an empty summary.
func NewSummary() *Summary {
	return &Summary{}
}

// Add records an outcome.
func (s *Summary) Add(o scenario.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = append(s.outcomes, o)
}

// Outcomes returns the recorded outcomes sorted by scenario name for
// reproducible output regardless of completion order.
func (s *Summary) Outcomes() []scenario.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]scenario.Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScenarioName < out[j].ScenarioName
	})
	return out
}

// ExitCode is non-zero when any outcome failed or errored.
func (s *Summary) ExitCode() int {
	for _, o := range s.Outcomes() {
		if o.Status != scenario.StatusPassed {
			return 1
		}
	}
	return 0
}

// WriteText writes one line per outcome plus a count line.
func (s *Summary) WriteText(w io.Writer) error {
	outcomes := s.Outcomes()
	counts := map[scenario.Status]int{}

	for _, o := range outcomes {
		counts[o.Status]++
		line := fmt.Sprintf("%-7s  %-32s  %s", statusLabel(o.Status), o.ScenarioName, o.Message)
		if o.FailedStep != nil {
			line += fmt.Sprintf(" (step %d)", *o.FailedStep)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n%d passed, %d failed, %d errored\n",
		counts[scenario.StatusPassed], counts[scenario.StatusFailed], counts[scenario.StatusErrored])
	return err
}

// WriteJSON writes the outcomes as a JSON array.
func (s *Summary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Outcomes())
}

func statusLabel(st scenario.Status) string {
	switch st {
	case scenario.StatusPassed:
		return "PASS"
	case scenario.StatusFailed:
		return "FAIL"
	case scenario.StatusErrored:
		return "ERROR"
	default:
		return string(st)
	}
}
