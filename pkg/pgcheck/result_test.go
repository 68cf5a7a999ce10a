package pgcheck

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func sampleOutcomes() []Outcome {
	return []Outcome{
		{Name: "Database connectivity", Status: StatusPassed, Message: "Connection successful"},
		{Name: "Database schema", Status: StatusFailed, Message: "No tables found - schema needs to be created"},
		{Name: "replication lag", Status: StatusSkipped, Message: "TEST SKIPPED: replication lag (no standby)"},
	}
}

func TestNewRunResult(t *testing.T) {
	result := NewRunResult(sampleOutcomes())

	if _, err := uuid.Parse(result.RunID); err != nil {
		t.Errorf("RunID %q is not a valid UUID: %v", result.RunID, err)
	}
	if time.Since(result.Generated) > time.Minute {
		t.Errorf("Generated = %v, want roughly now", result.Generated)
	}
	want := Summary{Passed: 1, Failed: 1, Skipped: 1}
	if result.Summary != want {
		t.Errorf("Summary = %+v, want %+v", result.Summary, want)
	}
	if result.Summary.Total() != 3 {
		t.Errorf("Total() = %d, want 3", result.Summary.Total())
	}
	if result.ReportFile != "" {
		t.Errorf("ReportFile = %q before WriteReport, want empty", result.ReportFile)
	}
}

func TestRunResult_Success(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []Outcome
		want     bool
	}{
		{"no outcomes", nil, true},
		{"all passed", []Outcome{{Name: "a", Status: StatusPassed}}, true},
		{"skip does not fail", []Outcome{{Name: "a", Status: StatusSkipped}}, true},
		{"one failure", []Outcome{
			{Name: "a", Status: StatusPassed},
			{Name: "b", Status: StatusFailed},
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewRunResult(tt.outcomes).Success(); got != tt.want {
				t.Errorf("Success() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunResult_Report(t *testing.T) {
	result := NewRunResult(sampleOutcomes())
	text := result.Report()

	for _, want := range []string{
		"DATABASE VALIDATION TEST REPORT",
		"Run ID: " + result.RunID,
		"Total Tests: 3",
		"FAILED TESTS:",
		"PASSED TESTS:",
		"SKIPPED TESTS:",
		"OVERALL RESULT: ✗ 1 TEST(S) FAILED",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}
}

func TestRunResult_ReportJSON(t *testing.T) {
	result := NewRunResult(sampleOutcomes())

	data, err := result.ReportJSON()
	if err != nil {
		t.Fatalf("ReportJSON() error = %v", err)
	}

	var doc struct {
		RunID   string `json:"run_id"`
		Total   int    `json:"total"`
		Success bool   `json:"success"`
		Results []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"results"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshaling report JSON: %v", err)
	}

	if doc.RunID != result.RunID {
		t.Errorf("run_id = %q, want %q", doc.RunID, result.RunID)
	}
	if doc.Total != 3 {
		t.Errorf("total = %d, want 3", doc.Total)
	}
	if doc.Success {
		t.Error("success = true with a failed outcome")
	}
	if len(doc.Results) != 3 {
		t.Fatalf("results has %d entries, want 3", len(doc.Results))
	}
	if doc.Results[0].Name != "Database connectivity" || doc.Results[0].Status != "passed" {
		t.Errorf("results[0] = %+v, want the connectivity outcome", doc.Results[0])
	}
}

func TestRunResult_WriteReport(t *testing.T) {
	dir := t.TempDir()
	result := NewRunResult(sampleOutcomes())

	path, err := result.WriteReport(dir)
	if err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}
	if result.ReportFile != path {
		t.Errorf("ReportFile = %q, want %q", result.ReportFile, path)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("report written to %q, want directory %q", path, dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report file: %v", err)
	}
	if string(data) != result.Report() {
		t.Error("file contents should match the rendered report")
	}
}

func TestRunResult_WriteReport_MissingDir(t *testing.T) {
	result := NewRunResult(sampleOutcomes())

	_, err := result.WriteReport(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrReportWrite) {
		t.Errorf("WriteReport() error = %v, want ErrReportWrite", err)
	}
	if result.ReportFile != "" {
		t.Errorf("ReportFile = %q, want empty after a failed write", result.ReportFile)
	}
}

// ===========================================================================
// Conversion Tests
// ===========================================================================

func TestSummarize_UnknownStatus(t *testing.T) {
	// An out-of-range status is counted as skipped so the totals always
	// add up.
	outs := []Outcome{
		{Name: "a", Status: StatusPassed},
		{Name: "b", Status: Status("mystery")},
	}

	s := summarize(outs)
	want := Summary{Passed: 1, Skipped: 1}
	if s != want {
		t.Errorf("summarize() = %+v, want %+v", s, want)
	}
	if s.Total() != len(outs) {
		t.Errorf("Total() = %d, want %d", s.Total(), len(outs))
	}
}
