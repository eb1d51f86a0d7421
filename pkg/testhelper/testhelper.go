// Package testhelper runs gradecheck exercises from ordinary Go tests.
//
// Exercise authors who write their reference solutions in Go can keep the
// exercise file as the single source of truth and check a solution with:
//
//	func TestSolution(t *testing.T) {
//	    testhelper.RunExercise(t, "testdata/sum.yaml", map[string]any{
//	        "result": solution.Sum([]int{1, 2, 3}),
//	    })
//	}
//
// Feedback that a learner would see is attached to the test failure.
package testhelper

import (
	"bytes"
	"testing"

	"github.com/AndreyAkinshin/gradecheck/internal/exercise"
	"github.com/AndreyAkinshin/gradecheck/pkg/check"
)

// RunExercise loads the exercise at path and runs all of its tests with the
// exercise bindings merged with bindings. A failing test marks tb as failed
// and logs the captured feedback. A load or configuration error is fatal.
//
// The returned report is nil when the exercise could not be run.
func RunExercise(tb testing.TB, path string, bindings map[string]any, opts ...check.Option) *check.Report {
	tb.Helper()

	ex, err := exercise.Load(path)
	if err != nil {
		tb.Fatalf("load exercise: %v", err)
		return nil
	}
	specs, err := ex.Specs(check.DefaultPlaces)
	if err != nil {
		tb.Fatalf("%v", err)
		return nil
	}

	var buf bytes.Buffer
	all := append(ex.Options(), opts...)
	all = append(all, check.WithOutput(&buf))

	report, err := check.Run(specs, ex.BindingsWith(bindings), all...)
	if err != nil {
		tb.Fatalf("%s: %v", ex.DisplayName(), err)
		return nil
	}
	if !report.OK() {
		tb.Errorf("%s: %d of %d tests failed:\n%s", ex.DisplayName(), report.Failed, report.Total, buf.String())
	}
	return report
}

// Check evaluates a single spec. A mismatch marks tb as failed with the
// diagnostic block that Evaluate would print.
func Check(tb testing.TB, spec check.Spec, bindings check.Bindings, opts ...check.Option) bool {
	tb.Helper()

	var buf bytes.Buffer
	ok, err := check.Evaluate(spec, bindings, append(opts, check.WithOutput(&buf))...)
	if err != nil {
		tb.Fatalf("%v", err)
		return false
	}
	if !ok {
		tb.Errorf("%s", buf.String())
	}
	return ok
}
