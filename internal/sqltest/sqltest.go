// Package sqltest executes a user-supplied SQL test file and harvests
// its results from the diagnostic messages the script emits while
// running (see the notice package for the message protocol).
package sqltest

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"

	"github.com/tracklane/pgcheck/internal/notice"
	"github.com/tracklane/pgcheck/internal/outcome"
)

// Collector is the captured notice stream that script results are read
// from. The runner installs the real collector as the connection's
// notice handler at connect time; Run resets it before executing so
// chatter from earlier statements does not leak into the script's
// results.
type Collector interface {
	Reset()
	Outcomes() outcome.List
}

// Run executes the script at path as a single request and returns one
// outcome per marked diagnostic message it emitted.
//
// A missing file is not an error: there are simply no SQL tests to run,
// and Run returns an empty list. A file that exists but cannot be read
// yields a single "File execution" failure.
//
// A script that aborts by raising yields exactly one failure outcome.
// When the error text carries the TEST FAILED: marker the script
// signaled a test failure through the error channel; the name of the
// failing test cannot be recovered from the error text, so the outcome
// gets a generic name. Any other raised error is reported as a plain
// SQL execution failure.
//
// The returned error is the raw read or driver error behind a failure
// outcome, for callers that render server diagnostics the flattened
// outcome message loses (position, detail, hint). Every failure is
// already folded into the outcome list, so callers that only need
// results may ignore it.
func Run(ctx context.Context, db *sql.DB, notices Collector, path string) (outcome.List, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return outcome.List{outcome.Failed("File execution", err.Error())}, err
	}

	notices.Reset()

	// No bind parameters, so lib/pq submits the whole script through
	// the simple query protocol and the server executes its statements
	// sequentially within the one request.
	if _, err := db.ExecContext(ctx, string(script)); err != nil {
		return outcome.List{classify(err)}, err
	}

	return notices.Outcomes(), nil
}

func classify(err error) outcome.Outcome {
	msg := strings.TrimSpace(err.Error())
	if strings.Contains(msg, notice.MarkerFailed) {
		return outcome.Failed("Database validation", msg)
	}
	return outcome.Failed("SQL Execution", "SQL Error: "+msg)
}
