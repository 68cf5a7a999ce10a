package cli

import "github.com/charmbracelet/lipgloss"

// ANSI 256 colors for broad terminal compatibility.
var (
	// Message type styles
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleNote    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleHelp    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	// Diagnostic display styles
	styleLineNum  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	stylePipe     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	stylePointer  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleFilePath = lipgloss.NewStyle().Bold(true)

	// Progress styles
	styleProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleFailed   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	// Misc styles
	styleHeader = lipgloss.NewStyle().Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Styled text functions - these check EnableColors() internally.

// Error returns text styled as an error label.
func Error(s string) string {
	if !EnableColors() {
		return s
	}
	return styleError.Render(s)
}

// Warning returns text styled as a warning label.
func Warning(s string) string {
	if !EnableColors() {
		return s
	}
	return styleWarning.Render(s)
}

// Note returns text styled as a note label.
func Note(s string) string {
	if !EnableColors() {
		return s
	}
	return styleNote.Render(s)
}

// Help returns text styled as a help label.
func Help(s string) string {
	if !EnableColors() {
		return s
	}
	return styleHelp.Render(s)
}

// Success returns text styled as a success message.
func Success(s string) string {
	if !EnableColors() {
		return s
	}
	return styleSuccess.Render(s)
}

// Info returns text styled as informational text.
func Info(s string) string {
	if !EnableColors() {
		return s
	}
	return styleInfo.Render(s)
}

// LineNum returns text styled as a line number.
func LineNum(s string) string {
	if !EnableColors() {
		return s
	}
	return styleLineNum.Render(s)
}

// Pipe returns a pipe character styled for diagnostic display.
func Pipe() string {
	if !EnableColors() {
		return "|"
	}
	return stylePipe.Render("|")
}

// Arrow returns the --> location marker styled for diagnostic display.
func Arrow() string {
	if !EnableColors() {
		return "-->"
	}
	return stylePipe.Render("-->")
}

// Pointer returns text styled as a pointer (^^^^).
func Pointer(s string) string {
	if !EnableColors() {
		return s
	}
	return stylePointer.Render(s)
}

// FilePath returns text styled as a file path.
func FilePath(s string) string {
	if !EnableColors() {
		return s
	}
	return styleFilePath.Render(s)
}

// Progress returns text styled for progress display.
func Progress(s string) string {
	if !EnableColors() {
		return s
	}
	return styleProgress.Render(s)
}

// Failed returns text styled as "failed" (error).
func Failed(s string) string {
	if !EnableColors() {
		return s
	}
	return styleFailed.Render(s)
}

// Header returns text styled as a section header.
func Header(s string) string {
	if !EnableColors() {
		return s
	}
	return styleHeader.Render(s)
}

// Dim returns text styled as dim/muted.
func Dim(s string) string {
	if !EnableColors() {
		return s
	}
	return styleDim.Render(s)
}

// Status line helpers. The markers match what lands in the saved
// report, so console and file read the same.

// OK returns "✓ message" with the mark styled for success.
func OK(message string) string {
	return Success("✓") + " " + message
}

// Fail returns "✗ message" with the mark styled as an error.
func Fail(message string) string {
	return Failed("✗") + " " + message
}

// Warn returns "⚠ message" with the mark styled as a warning.
func Warn(message string) string {
	return Warning("⚠") + " " + message
}
