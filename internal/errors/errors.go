// Package errors provides structured error types and exit codes for gradecheck.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess     = 0 // All tests passed
	ExitFailure     = 1 // At least one test failed, or a runtime error occurred
	ExitConfigError = 2 // Invalid invocation: bad test specification, mode, expression or exercise file
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindExpression
	KindLoad
	KindValidation
)

// String returns a short lowercase name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindExpression:
		return "expression"
	case KindLoad:
		return "load"
	case KindValidation:
		return "validation"
	default:
		return "runtime"
	}
}

// Error is the base error type for gradecheck.
type Error struct {
	Kind    ErrorKind
	Message string
	Source  string // Exercise file if applicable
	Test    int    // 1-based test index if applicable
	Cause   error  // Underlying error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Source != "" && e.Test > 0 {
		return fmt.Sprintf("[%s] test %d: %s", e.Source, e.Test, msg)
	}
	if e.Source != "" {
		return fmt.Sprintf("[%s] %s", e.Source, msg)
	}
	if e.Test > 0 {
		return fmt.Sprintf("test %d: %s", e.Test, msg)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindExpression, KindValidation:
		return ExitConfigError
	default:
		return ExitFailure
	}
}

// New creates a new runtime error.
func New(message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *Error {
	return Config(fmt.Sprintf(format, args...))
}

// Expression creates an error for an expression that could not be parsed or evaluated.
func Expression(expr string, cause error) *Error {
	return &Error{
		Kind:    KindExpression,
		Message: fmt.Sprintf("cannot evaluate %q", expr),
		Cause:   cause,
	}
}

// Load creates an error for an exercise file that could not be read or decoded.
func Load(path string, cause error) *Error {
	return &Error{
		Kind:    KindLoad,
		Message: "cannot load exercise",
		Source:  path,
		Cause:   cause,
	}
}

// Validation creates an error for an exercise file that does not satisfy the schema.
func Validation(path string, cause error) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "invalid exercise",
		Source:  path,
		Cause:   cause,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// AtTest returns a copy of err annotated with a 1-based test index.
// Errors that are not *Error are wrapped as runtime errors first.
func AtTest(err error, index int) *Error {
	var ge *Error
	if !errors.As(err, &ge) {
		return &Error{Kind: KindRuntime, Message: err.Error(), Test: index}
	}
	cp := *ge
	cp.Test = index
	return &cp
}

// InFile returns a copy of err annotated with the exercise file it came from.
func InFile(err error, path string) *Error {
	var ge *Error
	if !errors.As(err, &ge) {
		return &Error{Kind: KindRuntime, Message: err.Error(), Source: path}
	}
	cp := *ge
	cp.Source = path
	return &cp
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == kind
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ge *Error
	if errors.As(err, &ge) {
		return ge.ExitCode()
	}
	return ExitFailure
}
