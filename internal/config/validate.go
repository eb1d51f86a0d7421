package config

import "fmt"

// Accepted setting ranges.
const (
	MinWrapWidth = 20
	MaxPlaces    = 15
)

// ValidationError represents an invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks settings for errors.
func Validate(s *Settings) error {
	if s.WrapWidth < MinWrapWidth {
		return &ValidationError{
			Field:   "GRADECHECK_WRAP_WIDTH",
			Message: fmt.Sprintf("must be at least %d, got %d", MinWrapWidth, s.WrapWidth),
		}
	}
	if s.Places < -MaxPlaces || s.Places > MaxPlaces {
		return &ValidationError{
			Field:   "GRADECHECK_PLACES",
			Message: fmt.Sprintf("must be between %d and %d, got %d", -MaxPlaces, MaxPlaces, s.Places),
		}
	}
	return nil
}
