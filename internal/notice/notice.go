// Package notice implements the diagnostic-message protocol that SQL test
// files use to report results. Scripts emit ordinary server notices tagged
// with one of three markers (TEST PASSED:, TEST FAILED:, TEST SKIPPED:),
// and the collector turns the captured stream back into structured
// outcomes after execution.
package notice

import (
	"strings"

	"github.com/lib/pq"

	"github.com/tracklane/pgcheck/internal/outcome"
)

// Markers recognized in diagnostic messages. Classification checks them
// in this order and the first match wins.
const (
	MarkerPassed  = "TEST PASSED:"
	MarkerFailed  = "TEST FAILED:"
	MarkerSkipped = "TEST SKIPPED:"
)

// Parse classifies a single diagnostic message. The returned outcome's
// name is the message with the marker and surrounding whitespace removed;
// the message field keeps the full original text. ok is false when the
// message carries no marker, in which case it produces no outcome at all.
func Parse(message string) (outcome.Outcome, bool) {
	switch {
	case strings.Contains(message, MarkerPassed):
		return outcome.Passed(testName(message, MarkerPassed), message), true
	case strings.Contains(message, MarkerFailed):
		return outcome.Failed(testName(message, MarkerFailed), message), true
	case strings.Contains(message, MarkerSkipped):
		return outcome.Skipped(testName(message, MarkerSkipped), message), true
	}
	return outcome.Outcome{}, false
}

// ParseAll classifies an ordered message stream, dropping unmarked
// messages. The result preserves emission order, so len(result) is at
// most len(messages).
func ParseAll(messages []string) outcome.List {
	var list outcome.List
	for _, msg := range messages {
		if o, ok := Parse(msg); ok {
			list = append(list, o)
		}
	}
	return list
}

func testName(message, marker string) string {
	return strings.TrimSpace(strings.ReplaceAll(message, marker, ""))
}

// Collector accumulates diagnostic messages emitted on a connection, in
// emission order. Install Handle as the connection's notice handler at
// connect time, then Reset before each script so earlier chatter (for
// example from CREATE EXTENSION IF NOT EXISTS) does not leak into the
// script's results.
//
// A Collector is not safe for concurrent use; the runner executes one
// statement at a time on a single connection, which is the only place
// notices come from.
type Collector struct {
	messages []string
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Handle records one server notice. Its signature matches what
// pq.ConnectorWithNoticeHandler expects; lib/pq delivers notices as
// *pq.Error values whose Message holds the primary text.
func (c *Collector) Handle(n *pq.Error) {
	if n == nil {
		return
	}
	c.messages = append(c.messages, n.Message)
}

// Reset discards everything captured so far.
func (c *Collector) Reset() {
	c.messages = nil
}

// Messages returns a copy of the captured stream in emission order.
func (c *Collector) Messages() []string {
	out := make([]string, len(c.messages))
	copy(out, c.messages)
	return out
}

// Outcomes parses the captured stream into structured results.
func (c *Collector) Outcomes() outcome.List {
	return ParseAll(c.messages)
}
