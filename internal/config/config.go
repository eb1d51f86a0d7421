// Package config loads gradecheck CLI settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings holds the CLI settings read from environment variables.
type Settings struct {
	WrapWidth int  `env:"GRADECHECK_WRAP_WIDTH" envDefault:"79"`
	Places    int  `env:"GRADECHECK_PLACES" envDefault:"2"`
	Quiet     bool `env:"GRADECHECK_QUIET"`
	NoColor   bool `env:"GRADECHECK_NO_COLOR"`

	// StdNoColor follows https://no-color.org: any non-empty value disables color.
	StdNoColor string `env:"NO_COLOR"`
}

// ColorDisabled reports whether either no-color variable is set.
func (s *Settings) ColorDisabled() bool {
	return s.NoColor || s.StdNoColor != ""
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads settings from the process environment, applies defaults and
// validates them.
func Load() (*Settings, error) {
	var s Settings
	if err := ParseEnv(&s); err != nil {
		return nil, err
	}
	return finish(&s)
}

// LoadFrom is Load over an explicit environment instead of the process one.
func LoadFrom(environ map[string]string) (*Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return finish(&s)
}

func finish(s *Settings) (*Settings, error) {
	applyDefaults(s)
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}
