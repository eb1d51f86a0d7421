package check

import (
	"io"

	"github.com/AndreyAkinshin/gradecheck/internal/output"
)

// Option configures Evaluate and Run.
type Option func(*settings)

type settings struct {
	out      *output.Writer
	places   int
	exercise string
	phrase   string
}

func newSettings(opts []Option) *settings {
	s := &settings{
		out:    output.New(),
		places: DefaultPlaces,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithOutput sends all feedback to w instead of standard output. Colors are
// disabled.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		quiet, width := s.out.Quiet(), s.out.Width()
		s.out = output.NewWithWriters(w, w, false)
		s.out.SetQuiet(quiet)
		s.out.SetWidth(width)
	}
}

// WithColor enables or disables ANSI colors.
func WithColor(color bool) Option {
	return func(s *settings) { s.out.SetColor(color) }
}

// WithQuiet suppresses per-test diagnostics. The summary line is still printed.
func WithQuiet(quiet bool) Option {
	return func(s *settings) { s.out.SetQuiet(quiet) }
}

// WithWidth sets the column at which failure messages are wrapped.
func WithWidth(width int) Option {
	return func(s *settings) { s.out.SetWidth(width) }
}

// WithPlaces sets the decimal places of the default comparator.
func WithPlaces(places int) Option {
	return func(s *settings) { s.places = places }
}

// WithExercise names the exercise. The name is reported and contributes to
// the congratulation phrase seed.
func WithExercise(name string) Option {
	return func(s *settings) { s.exercise = name }
}

// WithPhrase forces the congratulation phrase printed after a fully passing run.
func WithPhrase(phrase string) Option {
	return func(s *settings) { s.phrase = phrase }
}
