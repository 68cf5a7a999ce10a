// Package pgcheck provides the public API for the pgcheck database
// validation tool. It connects to a PostgreSQL instance, runs a fixed
// suite of built-in diagnostic checks plus an optional SQL test file,
// and assembles the results into a structured, persistable report.
package pgcheck

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
// Use errors.Is() to check for these errors.
var (
	// ErrMissingDatabaseURL is returned when no database URL is provided.
	ErrMissingDatabaseURL = errors.New("pgcheck: database URL required")

	// ErrConnectionFailed is returned when the database connection fails.
	ErrConnectionFailed = errors.New("pgcheck: connection failed")

	// ErrReportWrite is returned when the report file cannot be written.
	ErrReportWrite = errors.New("pgcheck: report write failed")
)

// ConnectionError provides detailed information about a database connection error.
type ConnectionError struct {
	// URL is the database URL (with password redacted).
	URL string

	// Cause is the underlying error from the database driver.
	Cause error
}

// Error returns a formatted error message.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("pgcheck: failed to connect to %s: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target error.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnectionFailed
}

// ReportError provides detailed information about a report persistence failure.
type ReportError struct {
	// Dir is the directory the report file was being written into.
	Dir string

	// Cause is the underlying filesystem error.
	Cause error
}

// Error returns a formatted error message.
func (e *ReportError) Error() string {
	return fmt.Sprintf("pgcheck: failed to write report to %s: %v", e.Dir, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ReportError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target error.
func (e *ReportError) Is(target error) bool {
	return target == ErrReportWrite
}
