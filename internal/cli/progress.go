package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Spinner provides an animated spinner for indeterminate operations,
// such as waiting on a connection attempt or a long-running SQL script.
type Spinner struct {
	message string
	writer  io.Writer
	active  bool
	done    chan struct{}
	mu      sync.Mutex
	frames  []string
	current int
}

// SpinnerFrames are the animation frames for the spinner.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerFramesASCII are ASCII fallback frames for non-Unicode terminals.
var SpinnerFramesASCII = []string{"|", "/", "-", "\\"}

// NewSpinner creates a new spinner with the given message.
func NewSpinner(message string) *Spinner {
	frames := SpinnerFrames
	// Use ASCII frames if not in TTY mode (simpler for logs)
	if !EnableColors() {
		frames = SpinnerFramesASCII
	}
	return &Spinner{
		message: message,
		writer:  os.Stderr,
		frames:  frames,
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	if !EnableColors() {
		// In non-TTY mode, just print the message once
		fmt.Fprintf(s.writer, "%s...\n", s.message)
		return
	}

	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.spin()
}

// spin runs the animation loop.
func (s *Spinner) spin() {
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			frame := Progress(s.frames[s.current])
			msg := s.message
			s.current = (s.current + 1) % len(s.frames)
			s.mu.Unlock()

			// Clear line and write new frame
			fmt.Fprintf(s.writer, "\r%s %s", frame, msg)
		}
	}
}

// Stop stops the spinner and clears the line.
func (s *Spinner) Stop() {
	if !EnableColors() {
		return
	}

	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	close(s.done)
	s.mu.Unlock()

	// Clear the spinner line
	fmt.Fprintf(s.writer, "\r%s\r", strings.Repeat(" ", len(s.message)+10))
}

// StopWithSuccess stops the spinner with a success message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	fmt.Fprintln(s.writer, OK(message))
}

// StopWithError stops the spinner with an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	fmt.Fprintln(s.writer, Fail(message))
}
