package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Diagnostic is a rich error message rendered in compiler style, used
// for SQL script failures where the server reports a position:
//
//	error: syntax error at or near "SLECT"
//	  --> test_database_validation.sql:12:1
//	   |
//	12 | SLECT COUNT(*) FROM tenants;
//	   | ^
//	   |
//	help: run the file through psql to see the full server output
type Diagnostic struct {
	Message string

	// Location of the failure. Line and Column are 1-indexed; zero
	// means unknown and suppresses that part of the location.
	File   string
	Line   int
	Column int

	// Source is the offending line, shown under the location when set.
	Source string

	// SpanStart/SpanEnd are 1-indexed columns for the caret run.
	// When SpanStart is zero the caret falls back to Column.
	SpanStart int
	SpanEnd   int
	Label     string

	Notes []string
	Helps []string
}

// Render formats the diagnostic for CLI display.
func (d *Diagnostic) Render() string {
	var b strings.Builder

	b.WriteString(Error("error"))
	b.WriteString(": ")
	b.WriteString(d.Message)
	b.WriteString("\n")

	if d.File != "" {
		b.WriteString("  ")
		b.WriteString(Arrow())
		b.WriteString(" ")
		loc := d.File
		if d.Line > 0 {
			loc = fmt.Sprintf("%s:%d", d.File, d.Line)
			if d.Column > 0 {
				loc = fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
			}
		}
		b.WriteString(FilePath(loc))
		b.WriteString("\n")
	}

	if d.Source != "" && d.Line > 0 {
		b.WriteString(d.renderSource())
	}

	for _, note := range d.Notes {
		b.WriteString(Note("note"))
		b.WriteString(": ")
		b.WriteString(note)
		b.WriteString("\n")
	}
	for _, help := range d.Helps {
		b.WriteString(Help("help"))
		b.WriteString(": ")
		b.WriteString(help)
		b.WriteString("\n")
	}

	return b.String()
}

// renderSource renders the source line with line number, pipes, and an
// optional caret run.
func (d *Diagnostic) renderSource() string {
	var b strings.Builder

	lineStr := fmt.Sprintf("%d", d.Line)
	padding := strings.Repeat(" ", len(lineStr))

	b.WriteString(padding)
	b.WriteString(" ")
	b.WriteString(Pipe())
	b.WriteString("\n")

	b.WriteString(LineNum(lineStr))
	b.WriteString(" ")
	b.WriteString(Pipe())
	b.WriteString(" ")
	b.WriteString(d.Source)
	b.WriteString("\n")

	start := d.SpanStart
	if start == 0 {
		start = d.Column
	}
	if start > 0 {
		end := d.SpanEnd
		if end < start {
			end = start
		}

		b.WriteString(padding)
		b.WriteString(" ")
		b.WriteString(Pipe())
		b.WriteString(" ")
		if start > 1 {
			b.WriteString(strings.Repeat(" ", start-1))
		}
		b.WriteString(Pointer(strings.Repeat("^", end-start+1)))
		if d.Label != "" {
			b.WriteString(" ")
			b.WriteString(d.Label)
		}
		b.WriteString("\n")

		b.WriteString(padding)
		b.WriteString(" ")
		b.WriteString(Pipe())
		b.WriteString("\n")
	}

	return b.String()
}

// FormatError formats a plain error for CLI display.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return Error("error") + ": " + err.Error() + "\n"
}

// FormatWarning formats a warning message.
func FormatWarning(msg string) string {
	return Warning("warning") + ": " + msg + "\n"
}

// SourceLine reads the 1-indexed line from a file, for attaching source
// context to a Diagnostic. ok is false when the file cannot be read or
// has fewer lines.
func SourceLine(path string, line int) (string, bool) {
	if line < 1 {
		return "", false
	}

	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		n++
		if n == line {
			return scanner.Text(), true
		}
	}
	return "", false
}
