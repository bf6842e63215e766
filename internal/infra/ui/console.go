// Where: cli/internal/infra/ui/console.go
// What: Console output helpers for consistent CLI UX.
// Why: Standardize status prefixes and the log sink used by invoke.
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/poruru-code/sls-cli/internal/domain/inspect"
	"github.com/poruru-code/sls-cli/internal/meta"
)

// Console provides helper methods for formatted output.
type Console struct {
	Out          io.Writer
	EmojiEnabled bool
}

// New creates a new Console writing to the provided writer.
func New(out io.Writer) *Console {
	return &Console{Out: out, EmojiEnabled: true}
}

// Info prints an info message.
func (c *Console) Info(msg string) {
	fmt.Fprintf(c.Out, "%s\n", msg)
}

// Warn prints a warning message with an emoji.
func (c *Console) Warn(msg string) {
	prefix := c.emojiPrefix("⚠️")
	if prefix == "" {
		prefix = "[warn] "
	}
	fmt.Fprintf(c.Out, "%s%s\n", prefix, msg)
}

// Error prints an error line.
// Example: ✗ service file not found.
func (c *Console) Error(err error) {
	fmt.Fprintf(c.Out, "✗ %v\n", err)
}

func (c *Console) emojiPrefix(emoji string) string {
	if !c.EmojiEnabled || strings.TrimSpace(emoji) == "" {
		return ""
	}
	return emoji + " "
}

// LogSink prints invoke log entries as "<Name>: <entry>" lines and counts
// the errors it was given.
type LogSink struct {
	Out    io.Writer
	Prefix string

	mu     sync.Mutex
	errors int
}

// NewLogSink returns a LogSink using the CLI display name as prefix.
func NewLogSink(out io.Writer) *LogSink {
	return &LogSink{Out: out, Prefix: meta.DisplayName + ": "}
}

// Log prints one entry. Strings print verbatim, errors print their message,
// anything else is rendered as a literal.
func (s *LogSink) Log(v any) {
	var line string
	switch typed := v.(type) {
	case string:
		line = typed
	case error:
		line = typed.Error()
	default:
		line = inspect.Format(typed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := v.(error); ok {
		s.errors++
	}
	fmt.Fprintf(s.Out, "%s%s\n", s.Prefix, line)
}

// Errors returns how many errors were logged.
func (s *LogSink) Errors() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors
}
