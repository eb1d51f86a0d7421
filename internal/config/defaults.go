package config

// Default setting values.
const (
	DefaultWrapWidth = 79
	DefaultPlaces    = 2
)

// applyDefaults fills in default values for unset settings. An explicitly
// empty or zero width means the default.
func applyDefaults(s *Settings) {
	if s.WrapWidth == 0 {
		s.WrapWidth = DefaultWrapWidth
	}
}
