package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch tracks the start time of an operation and logs completion with
// elapsed duration. It is safe for sequential use by a single goroutine.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

// newStopwatch captures the current time as start.
func newStopwatch(l *log.Logger) *stopwatch {
	return &stopwatch{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since the stopwatch was created.
// Example output: "Rendered 8 cards (1.234s)"
func (s *stopwatch) done(msg string) {
	s.logger.Infof("%s (%s)", msg, time.Since(s.start).Round(time.Millisecond))
}
