package testhelper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/gradecheck/pkg/check"
)

// recorder captures failures instead of failing the enclosing test.
type recorder struct {
	testing.TB
	errors []string
	fatals []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}

const sumExercise = `
exercise: sum
phrase: "Well done!"
bindings:
  offset: 1
tests:
  - actual: "result + offset"
    expected: 7
    message: "sum of 1, 2, 3 plus offset"
  - actual: "result / 4"
    expected: 1.5
`

func writeExercise(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sum.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunExercise_Pass(t *testing.T) {
	t.Parallel()
	path := writeExercise(t, sumExercise)

	rec := &recorder{TB: t}
	report := RunExercise(rec, path, map[string]any{"result": 6})

	if len(rec.errors) != 0 || len(rec.fatals) != 0 {
		t.Fatalf("errors = %v, fatals = %v", rec.errors, rec.fatals)
	}
	if report == nil || report.Passed != 2 || report.Phrase != "Well done!" {
		t.Errorf("report = %+v", report)
	}
}

func TestRunExercise_Fail(t *testing.T) {
	t.Parallel()
	path := writeExercise(t, sumExercise)

	rec := &recorder{TB: t}
	report := RunExercise(rec, path, map[string]any{"result": 5})

	if len(rec.fatals) != 0 {
		t.Fatalf("fatals = %v", rec.fatals)
	}
	if report == nil || report.Failed != 1 {
		t.Fatalf("report = %+v", report)
	}
	if len(rec.errors) != 1 {
		t.Fatalf("errors = %v, want one", rec.errors)
	}
	msg := rec.errors[0]
	for _, want := range []string{
		"sum: 1 of 2 tests failed",
		"⚠️ Error: sum of 1, 2, 3 plus offset",
		" Expected value:  7",
		" Actual value:    6",
		"1 error occurred!",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("failure message missing %q:\n%s", want, msg)
		}
	}
}

func TestRunExercise_LoadError(t *testing.T) {
	t.Parallel()

	rec := &recorder{TB: t}
	report := RunExercise(rec, filepath.Join(t.TempDir(), "missing.yaml"), nil)

	if report != nil {
		t.Errorf("report = %+v, want nil", report)
	}
	if len(rec.fatals) != 1 || !strings.Contains(rec.fatals[0], "load exercise") {
		t.Errorf("fatals = %v", rec.fatals)
	}
}

func TestRunExercise_ConfigError(t *testing.T) {
	t.Parallel()
	path := writeExercise(t, `
tests:
  - actual: 5
    expected: 5
`)

	rec := &recorder{TB: t}
	if report := RunExercise(rec, path, nil); report != nil {
		t.Errorf("report = %+v, want nil", report)
	}
	if len(rec.fatals) != 1 || !strings.Contains(rec.fatals[0], "no error message given") {
		t.Errorf("fatals = %v", rec.fatals)
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	rec := &recorder{TB: t}
	if !Check(rec, check.Spec{Actual: "x * 2", Expected: 8}, check.Bindings{"x": 4}) {
		t.Error("Check() = false, want true")
	}
	if Check(rec, check.Spec{Actual: "x * 2", Expected: 9}, check.Bindings{"x": 4}) {
		t.Error("Check() = true, want false")
	}
	if len(rec.errors) != 1 || !strings.HasPrefix(rec.errors[0], "⚠️ Error: invalid result for x * 2") {
		t.Errorf("errors = %v", rec.errors)
	}

	Check(rec, check.Spec{Actual: 1, Expected: 1}, nil)
	if len(rec.fatals) != 1 {
		t.Errorf("fatals = %v, want one config error", rec.fatals)
	}
}
