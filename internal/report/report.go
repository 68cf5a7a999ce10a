// Package report renders a validation run as the plain-text report shown
// on the console and written to disk, or as JSON for machine consumers.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tracklane/pgcheck/internal/outcome"
)

// Report is one run's worth of results plus the metadata stamped into
// the rendered output.
type Report struct {
	RunID     string
	Generated time.Time
	Outcomes  outcome.List
}

var (
	headerRule  = strings.Repeat("=", 60)
	sectionRule = strings.Repeat("-", 40)
)

// Render formats the report as text: a header with totals, one section
// per non-empty status group, and the overall verdict. Passed entries
// show the name only; failed and skipped entries include their detail
// message. Skipped tests never affect the verdict.
func (r *Report) Render() string {
	c := r.Outcomes.Counts()

	lines := []string{
		headerRule,
		"DATABASE VALIDATION TEST REPORT",
		headerRule,
		"Generated: " + r.Generated.Format("2006-01-02 15:04:05"),
		"Run ID: " + r.RunID,
		fmt.Sprintf("Total Tests: %d", c.Total()),
		fmt.Sprintf("Passed: %d", c.Passed),
		fmt.Sprintf("Failed: %d", c.Failed),
		fmt.Sprintf("Skipped: %d", c.Skipped),
		"",
	}

	if c.Failed > 0 {
		lines = append(lines, "FAILED TESTS:", sectionRule)
		for _, o := range r.Outcomes {
			if o.Status == outcome.StatusFailed {
				lines = append(lines, "✗ "+o.Name, "  "+o.Message)
			}
		}
		lines = append(lines, "")
	}

	if c.Passed > 0 {
		lines = append(lines, "PASSED TESTS:", sectionRule)
		for _, o := range r.Outcomes {
			if o.Status == outcome.StatusPassed {
				lines = append(lines, "✓ "+o.Name)
			}
		}
		lines = append(lines, "")
	}

	if c.Skipped > 0 {
		lines = append(lines, "SKIPPED TESTS:", sectionRule)
		for _, o := range r.Outcomes {
			if o.Status == outcome.StatusSkipped {
				lines = append(lines, "- "+o.Name, "  "+o.Message)
			}
		}
		lines = append(lines, "")
	}

	if c.Failed == 0 {
		lines = append(lines, "OVERALL RESULT: ✓ ALL TESTS PASSED")
	} else {
		lines = append(lines, fmt.Sprintf("OVERALL RESULT: ✗ %d TEST(S) FAILED", c.Failed))
	}
	lines = append(lines, headerRule)

	return strings.Join(lines, "\n")
}

type jsonOutcome struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type jsonReport struct {
	RunID     string        `json:"run_id"`
	Generated time.Time     `json:"generated"`
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Success   bool          `json:"success"`
	Results   []jsonOutcome `json:"results"`
}

// RenderJSON formats the report as indented JSON with the same totals
// and verdict as the text rendering.
func (r *Report) RenderJSON() ([]byte, error) {
	c := r.Outcomes.Counts()

	out := jsonReport{
		RunID:     r.RunID,
		Generated: r.Generated,
		Total:     c.Total(),
		Passed:    c.Passed,
		Failed:    c.Failed,
		Skipped:   c.Skipped,
		Success:   c.Failed == 0,
		Results:   make([]jsonOutcome, 0, len(r.Outcomes)),
	}
	for _, o := range r.Outcomes {
		out.Results = append(out.Results, jsonOutcome{
			Name:    o.Name,
			Status:  string(o.Status),
			Message: o.Message,
		})
	}

	return json.MarshalIndent(out, "", "  ")
}

// Filename returns the timestamped report file name for a run generated
// at the given time, e.g. test_report_20250314_091502.txt.
func Filename(generated time.Time) string {
	return "test_report_" + generated.Format("20060102_150405") + ".txt"
}

// WriteFile writes the text rendering into dir under the timestamped
// name and returns the written path.
func (r *Report) WriteFile(dir string) (string, error) {
	path := filepath.Join(dir, Filename(r.Generated))
	if err := os.WriteFile(path, []byte(r.Render()), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
