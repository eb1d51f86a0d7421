// Package gradecheck provides public constants for tools that run the
// gradecheck CLI, such as autograder harnesses and CI jobs.
package gradecheck

// Exit codes returned by the gradecheck CLI.
const (
	// ExitSuccess indicates every test passed.
	ExitSuccess = 0

	// ExitFailure indicates at least one failed test or a runtime error
	// (unreadable file, comparator error).
	ExitFailure = 1

	// ExitConfigError indicates an invalid exercise: schema violation, bad
	// comparator settings, unknown mode or an expression that cannot be
	// evaluated.
	ExitConfigError = 2
)
