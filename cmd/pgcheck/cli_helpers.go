package main

import (
	"github.com/tracklane/pgcheck/internal/cli"
)

// OptionalSpinner wraps cli.Spinner with optional enable/disable
// support, so call sites don't have to branch on output mode.
//
// Usage:
//
//	spinner := NewOptionalSpinner("Executing SQL test file...", cli.Default().IsTTY())
//	defer spinner.Stop()
type OptionalSpinner struct {
	spinner *cli.Spinner
	enabled bool
}

// NewOptionalSpinner creates and starts a spinner.
// If enabled is false, all operations are no-ops.
func NewOptionalSpinner(message string, enabled bool) *OptionalSpinner {
	if !enabled {
		return &OptionalSpinner{enabled: false}
	}
	s := cli.NewSpinner(message)
	s.Start()
	return &OptionalSpinner{spinner: s, enabled: true}
}

// Stop stops the spinner. No-op if disabled. Safe to call multiple times.
func (o *OptionalSpinner) Stop() {
	if o.enabled && o.spinner != nil {
		o.spinner.Stop()
	}
}

// StopWithSuccess stops the spinner with a success line. No-op if disabled.
func (o *OptionalSpinner) StopWithSuccess(message string) {
	if o.enabled && o.spinner != nil {
		o.spinner.StopWithSuccess(message)
	}
}

// StopWithError stops the spinner with an error line. No-op if disabled.
func (o *OptionalSpinner) StopWithError(message string) {
	if o.enabled && o.spinner != nil {
		o.spinner.StopWithError(message)
	}
}
