package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func init() {
	// Force plain mode in tests so style functions return raw text (no ANSI codes).
	SetDefault(&Config{Mode: ModePlain})
}

func TestDiagnosticRenderFullContext(t *testing.T) {
	d := &Diagnostic{
		Message:   `syntax error at or near "SLECT"`,
		File:      "test_database_validation.sql",
		Line:      12,
		Column:    1,
		Source:    "SLECT COUNT(*) FROM tenants;",
		SpanStart: 1,
		SpanEnd:   5,
		Label:     "unknown statement",
		Notes:     []string{"the server aborted the script at this statement"},
		Helps:     []string{"run the file through psql to see the full server output"},
	}

	output := d.Render()

	checks := []string{
		"error",
		`syntax error at or near "SLECT"`,
		"-->",
		"test_database_validation.sql:12:1",
		"12",
		"SLECT COUNT(*) FROM tenants;",
		"^^^^^",
		"unknown statement",
		"note: the server aborted the script at this statement",
		"help: run the file through psql",
	}
	for _, want := range checks {
		if !strings.Contains(output, want) {
			t.Errorf("Render output missing %q\ngot:\n%s", want, output)
		}
	}
}

func TestDiagnosticRenderFileOnly(t *testing.T) {
	d := &Diagnostic{
		Message: "could not open script",
		File:    "test_database_validation.sql",
	}

	output := d.Render()

	if !strings.Contains(output, "test_database_validation.sql") {
		t.Errorf("Render output missing file\ngot:\n%s", output)
	}
	// Should NOT have ":0" or source/caret lines when line==0
	if strings.Contains(output, ":0") {
		t.Errorf("Render should not include :0 for line 0\ngot:\n%s", output)
	}
	if strings.Contains(output, "^") {
		t.Errorf("Render should not include a caret without source context\ngot:\n%s", output)
	}
}

func TestDiagnosticCaretFallsBackToColumn(t *testing.T) {
	d := &Diagnostic{
		Message: "syntax error",
		File:    "t.sql",
		Line:    3,
		Column:  8,
		Source:  "SELECT frm users;",
	}

	output := d.Render()

	// Caret at column 8: seven spaces after the pipe, then one caret.
	if !strings.Contains(output, "| "+strings.Repeat(" ", 7)+"^") {
		t.Errorf("caret not aligned to column 8\ngot:\n%s", output)
	}
}

func TestDiagnosticNoCaretWithoutPosition(t *testing.T) {
	d := &Diagnostic{
		Message: "script failed",
		File:    "t.sql",
		Line:    3,
		Source:  "DROP TABLE audit;",
	}

	output := d.Render()

	if strings.Contains(output, "^") {
		t.Errorf("Render should not include a caret without span or column\ngot:\n%s", output)
	}
	if !strings.Contains(output, "DROP TABLE audit;") {
		t.Errorf("Render missing source line\ngot:\n%s", output)
	}
}

func TestFormatError(t *testing.T) {
	if got := FormatError(nil); got != "" {
		t.Errorf("FormatError(nil) = %q, want empty", got)
	}

	got := FormatError(errors.New("no database connection information found"))
	want := "error: no database connection information found\n"
	if got != want {
		t.Errorf("FormatError() = %q, want %q", got, want)
	}
}

func TestFormatWarning(t *testing.T) {
	got := FormatWarning("failed to save report: permission denied")
	want := "warning: failed to save report: permission denied\n"
	if got != want {
		t.Errorf("FormatWarning() = %q, want %q", got, want)
	}
}

func TestSourceLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.sql")
	content := "-- header\nSELECT 1;\nSELECT 2;\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		line int
		want string
		ok   bool
	}{
		{"second line", path, 2, "SELECT 1;", true},
		{"past end of file", path, 99, "", false},
		{"line zero", path, 0, "", false},
		{"missing file", filepath.Join(t.TempDir(), "absent.sql"), 1, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SourceLine(tt.path, tt.line)
			if got != tt.want || ok != tt.ok {
				t.Errorf("SourceLine(%q, %d) = (%q, %v), want (%q, %v)", tt.path, tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}
