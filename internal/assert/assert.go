// Package assert checks caller preconditions of the simulation core.
//
// Release builds turn every check into a no-op and the core falls back to a
// safe degenerate result. Building with -tags chladnidebug makes a failed
// check panic at the call site instead.
package assert

import "fmt"

// That panics with the formatted message when cond is false and assertions
// are enabled.
func That(cond bool, format string, args ...any) {
	if enabled && !cond {
		panic(fmt.Sprintf("chladni: "+format, args...))
	}
}

// Enabled reports whether this binary was built with assertions.
func Enabled() bool { return enabled }
