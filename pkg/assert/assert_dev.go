//go:build !release

package assert

import "fmt"

// That panics with the formatted message when cond is false. It guards internal invariants that
// can only break through a programming error, never through caller-supplied input.
func That(cond bool, format string, args ...any) { //nolint:goprintffuncname // it's ok
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
