// Package progress defines the small reporting abstraction the timeline
// assembler exposes to observing callers.
//
// The assembler and its supervisor depend only on [Reporter]; the caller owns
// all UI and logging concerns. Reports are purely cosmetic: nothing in the
// pipeline couples business logic to a reported value.
package progress

// Reporter receives progress notifications from a long-running operation.
//
// current counts completed steps out of total. The message is a short
// human-readable description of the current stage.
type Reporter interface {
	Report(current, total int, message string)
}

// Func adapts an ordinary function to the Reporter interface.
type Func func(current, total int, message string)

// Report implements Reporter.
func (f Func) Report(current, total int, message string) { f(current, total, message) }

// Noop is a Reporter that discards all notifications.
type Noop struct{}

// Report implements Reporter.
func (Noop) Report(int, int, string) {}
