// Package diag holds the diagnostic logger shared by scrollfx and its
// physics subsystem.
package diag

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but
// may be replaced by SetLogger. Callers prefix their lines with "[scrollfx]"
// or "[physics]".
var Logf func(format string, v ...any) = log.Printf

// SetLogger replaces the logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = func(string, ...any) {}
		return
	}
	Logf = f
}

// Once logs a message the first time it is called and drops the rest.
// Used for conditions that would otherwise repeat every frame.
type Once struct {
	done bool
}

// Logf logs through the package logger unless this Once already fired.
func (o *Once) Logf(format string, v ...any) {
	if o.done {
		return
	}
	o.done = true
	Logf(format, v...)
}

// Reset re-arms the Once.
func (o *Once) Reset() {
	o.done = false
}
