package pgcheck

import (
	"github.com/tracklane/pgcheck/internal/outcome"
)

// Status classifies a single test outcome.
type Status string

// The three possible outcome statuses. StatusSkipped covers both tests
// a script explicitly skipped and conditions the runner could not
// determine.
const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Outcome is the result of one validation test.
type Outcome struct {
	// Name identifies the test, e.g. "Database connectivity".
	Name string

	// Status is passed, failed, or skipped.
	Status Status

	// Message is the full detail for the outcome. For script tests this
	// is the original diagnostic message, marker included.
	Message string
}

// Summary holds per-status outcome counts for one run.
type Summary struct {
	Passed  int
	Failed  int
	Skipped int
}

// Total returns the total number of outcomes. It always equals
// Passed+Failed+Skipped.
func (s Summary) Total() int {
	return s.Passed + s.Failed + s.Skipped
}

// convertOutcomes converts internal outcomes to the public API type.
func convertOutcomes(list outcome.List) []Outcome {
	if len(list) == 0 {
		return nil
	}
	out := make([]Outcome, len(list))
	for i, o := range list {
		out[i] = Outcome{
			Name:    o.Name,
			Status:  Status(o.Status),
			Message: o.Message,
		}
	}
	return out
}

// internalOutcomes converts public outcomes back to the internal type
// for rendering and counting.
func internalOutcomes(outs []Outcome) outcome.List {
	list := make(outcome.List, len(outs))
	for i, o := range outs {
		list[i] = outcome.Outcome{
			Name:    o.Name,
			Status:  outcome.Status(o.Status),
			Message: o.Message,
		}
	}
	return list
}

// summarize counts outcomes by status.
func summarize(outs []Outcome) Summary {
	c := internalOutcomes(outs).Counts()
	return Summary{
		Passed:  c.Passed,
		Failed:  c.Failed,
		Skipped: c.Skipped,
	}
}
