// Package check grades exercise solutions by comparing actual values with
// expected ones and printing feedback for the student.
//
// A Spec describes one comparison. Evaluate runs a single Spec and Run runs an
// ordered list of them, printing a diagnostic block for every failure and a
// final summary line:
//
//	report, err := check.Run([]check.Spec{
//		{Actual: "x + 1", Expected: 5},
//		{Actual: 3.14159, Expected: 3.14, Message: "pi rounded to two places"},
//	}, check.Bindings{"x": 4})
//
// Configuration mistakes (a non-string actual without a message, an unknown
// mode, an expression that does not parse) abort with an error. Mismatches are
// reported, counted and never abort.
package check

import "fmt"

// Mode selects how a comparator signals a mismatch.
type Mode string

const (
	// ModeCompare expects the comparator to report match or mismatch. A
	// mismatch prints the expected and actual values.
	ModeCompare Mode = "compare"

	// ModeCheck expects the comparator to fail with an *AssertionError. A
	// mismatch prints the assertion text.
	ModeCheck Mode = "check"
)

// Undefined replaces the actual value when its expression references an
// identifier missing from the bindings.
const Undefined = "undefined"

// Bindings maps identifiers to values for resolving string actual values.
// A nil map disables expression resolution.
type Bindings map[string]any

// Spec is a single test specification.
type Spec struct {
	// Actual is the value under test. When bindings are supplied and Actual is
	// a string, it is an expression resolved against the bindings.
	Actual any

	// Expected is the value Actual is compared with.
	Expected any

	// Message is printed when the test fails. It may be empty only when Actual
	// is a string, in which case "invalid result for <Actual>" is used.
	Message string

	// Compare is the comparator. Nil means Rounded{Places: 2} in compare mode.
	Compare Comparator

	// Mode overrides the comparator's natural mode. It is ignored when
	// Compare is nil.
	Mode Mode
}

// String renders the spec in a stable form used to seed the congratulation phrase.
func (s Spec) String() string {
	cmp := "default"
	if s.Compare != nil {
		cmp = s.Compare.Name()
	}
	return fmt.Sprintf("(%#v, %#v, %q, %s, %q)", s.Actual, s.Expected, s.Message, cmp, string(s.Mode))
}
