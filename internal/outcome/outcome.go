// Package outcome defines the result model shared by every part of the
// validation run: built-in checks, SQL-file results, and report rendering.
package outcome

// Status is the tri-state result of a single check.
// Skipped also covers results that could not be determined; the runner
// does not distinguish the two.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Outcome records one test result.
type Outcome struct {
	// Name is the free-text identifier of the check.
	Name string

	// Status is one of exactly three values: passed, failed, skipped.
	Status Status

	// Message holds detail text: error output, a success note, or a
	// skip reason.
	Message string
}

// Passed builds a passed outcome.
func Passed(name, message string) Outcome {
	return Outcome{Name: name, Status: StatusPassed, Message: message}
}

// Failed builds a failed outcome.
func Failed(name, message string) Outcome {
	return Outcome{Name: name, Status: StatusFailed, Message: message}
}

// Skipped builds a skipped outcome.
func Skipped(name, message string) Outcome {
	return Outcome{Name: name, Status: StatusSkipped, Message: message}
}

// List is an ordered sequence of outcomes for a single run.
// Ordering follows execution order: built-in checks first, then results
// harvested from the SQL test file.
type List []Outcome

// Counts holds per-status totals for a list of outcomes.
type Counts struct {
	Passed  int
	Failed  int
	Skipped int
}

// Total returns the number of outcomes counted.
func (c Counts) Total() int {
	return c.Passed + c.Failed + c.Skipped
}

// Counts tallies the list by status. Anything other than passed or
// failed counts as skipped, so Total always equals len(l).
func (l List) Counts() Counts {
	var c Counts
	for _, o := range l {
		switch o.Status {
		case StatusPassed:
			c.Passed++
		case StatusFailed:
			c.Failed++
		default:
			c.Skipped++
		}
	}
	return c
}

// Success reports whether the run passed overall: true iff no outcome
// failed. Skipped outcomes never affect the verdict.
func (l List) Success() bool {
	return l.Counts().Failed == 0
}
