package gradecheck_test

import (
	"testing"

	"github.com/AndreyAkinshin/gradecheck/internal/errors"
	"github.com/AndreyAkinshin/gradecheck/pkg/gradecheck"
)

func TestExitCodeValues(t *testing.T) {
	tests := []struct {
		name     string
		constant int
		expected int
	}{
		{"ExitSuccess", gradecheck.ExitSuccess, 0},
		{"ExitFailure", gradecheck.ExitFailure, 1},
		{"ExitConfigError", gradecheck.ExitConfigError, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("gradecheck.%s = %d, want %d", tt.name, tt.constant, tt.expected)
			}
		})
	}
}

// TestExitCodeConsistency keeps the public constants in line with the codes
// the CLI actually returns.
func TestExitCodeConsistency(t *testing.T) {
	tests := []struct {
		name     string
		public   int
		internal int
	}{
		{"Success", gradecheck.ExitSuccess, errors.ExitSuccess},
		{"Failure", gradecheck.ExitFailure, errors.ExitFailure},
		{"ConfigError", gradecheck.ExitConfigError, errors.ExitConfigError},
		{"ExpressionKind", gradecheck.ExitConfigError, errors.Expression("x +", nil).ExitCode()},
		{"LoadKind", gradecheck.ExitFailure, errors.Load("a.yaml", nil).ExitCode()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.public != tt.internal {
				t.Errorf("exit code mismatch: gradecheck constant = %d, errors value = %d",
					tt.public, tt.internal)
			}
		})
	}
}
