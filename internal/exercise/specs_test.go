package exercise

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	gcerrors "github.com/AndreyAkinshin/gradecheck/internal/errors"
	"github.com/AndreyAkinshin/gradecheck/pkg/check"
)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool { return &v }

func TestCompare_Comparator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		compare Compare
		want    string
	}{
		{"rounded default places", Compare{Kind: KindRounded}, "rounded(3)"},
		{"rounded explicit places", Compare{Kind: KindRounded, Places: intPtr(1)}, "rounded(1)"},
		{"tolerance defaults", Compare{Kind: KindTolerance}, "tolerance(relative,1e-09)"},
		{"tolerance absolute", Compare{Kind: KindTolerance, Tolerance: floatPtr(0.5), ToleranceMode: "absolute"}, "tolerance(absolute,0.5)"},
		{"exact", Compare{Kind: KindExact}, "exact"},
		{"predicate", Compare{Kind: KindPredicate, Expr: "actual > expected"}, "predicate(actual > expected)"},
		{"assert", Compare{Kind: KindAssert, Expr: "actual == expected"}, "assertion(actual == expected)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cmp, err := tt.compare.Comparator(3)
			if err != nil {
				t.Fatalf("Comparator() error = %v", err)
			}
			if cmp.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", cmp.Name(), tt.want)
			}
		})
	}
}

func TestCompare_ToleranceFields(t *testing.T) {
	t.Parallel()

	c := Compare{
		Kind:          KindTolerance,
		Tolerance:     floatPtr(0.01),
		ToleranceMode: "ulp",
		ArrayOrder:    "unordered",
		NaNEqualsNaN:  boolPtr(false),
	}
	cmp, err := c.Comparator(2)
	if err != nil {
		t.Fatalf("Comparator() error = %v", err)
	}
	want := check.Tolerance{FloatTolerance: 0.01, ToleranceMode: "ulp", ArrayOrder: "unordered", NaNEqualsNaN: false}
	if cmp != want {
		t.Errorf("Comparator() = %+v, want %+v", cmp, want)
	}
}

func TestCompare_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		compare  Compare
		wantKind gcerrors.ErrorKind
	}{
		{"unknown kind", Compare{Kind: "fuzzy"}, gcerrors.KindConfig},
		{"predicate syntax", Compare{Kind: KindPredicate, Expr: "actual >"}, gcerrors.KindExpression},
		{"predicate unknown name", Compare{Kind: KindPredicate, Expr: "foo > 1"}, gcerrors.KindExpression},
		{"assert non-bool", Compare{Kind: KindAssert, Expr: `"text"`}, gcerrors.KindExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.compare.Comparator(2)
			if !gcerrors.IsKind(err, tt.wantKind) {
				t.Errorf("Comparator() error = %v, want kind %v", err, tt.wantKind)
			}
		})
	}
}

func TestExercise_Specs(t *testing.T) {
	t.Parallel()

	ex := &Exercise{
		Path: "ex.yaml",
		Tests: []Test{
			{Actual: "x + 1", Expected: int64(5)},
			{Actual: 3.5, Expected: 3.5, Message: "m", Mode: "check", Compare: &Compare{Kind: KindExact}},
		},
	}
	specs, err := ex.Specs(2)
	if err != nil {
		t.Fatalf("Specs() error = %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("len(specs) = %d, want 2", len(specs))
	}
	if specs[0].Compare != nil || specs[0].Actual != "x + 1" || specs[0].Expected != int64(5) {
		t.Errorf("specs[0] = %+v", specs[0])
	}
	if specs[1].Compare != (check.Exact{}) || specs[1].Mode != check.ModeCheck || specs[1].Message != "m" {
		t.Errorf("specs[1] = %+v", specs[1])
	}
}

func TestExercise_SpecsErrorLocation(t *testing.T) {
	t.Parallel()

	ex := &Exercise{
		Path: "ex.yaml",
		Tests: []Test{
			{Actual: "a", Expected: "a"},
			{Actual: "a", Expected: "a", Compare: &Compare{Kind: KindPredicate, Expr: "actual +"}},
		},
	}
	_, err := ex.Specs(2)
	if !gcerrors.IsKind(err, gcerrors.KindExpression) {
		t.Fatalf("Specs() error = %v, want expression error", err)
	}
	if !strings.HasPrefix(err.Error(), "[ex.yaml] test 2: ") {
		t.Errorf("error = %q, want file and test index", err.Error())
	}
	if gcerrors.GetExitCode(err) != gcerrors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", gcerrors.GetExitCode(err), gcerrors.ExitConfigError)
	}
}

func TestExercise_BindingsWith(t *testing.T) {
	t.Parallel()

	none := &Exercise{}
	if b := none.BindingsWith(nil); b != nil {
		t.Errorf("BindingsWith(nil) = %#v, want nil", b)
	}
	if b := none.BindingsWith(map[string]any{"x": 1}); b["x"] != 1 {
		t.Errorf("BindingsWith(overrides) = %#v", b)
	}

	ex := &Exercise{Bindings: map[string]any{"x": int64(1), "y": int64(2)}}
	b := ex.BindingsWith(map[string]any{"x": int64(10)})
	if b["x"] != int64(10) || b["y"] != int64(2) {
		t.Errorf("BindingsWith() = %#v", b)
	}
	if ex.Bindings["x"] != int64(1) {
		t.Error("BindingsWith() modified the file bindings")
	}

	empty := &Exercise{Bindings: map[string]any{}}
	if b := empty.BindingsWith(nil); b == nil {
		t.Error("BindingsWith() = nil for an empty bindings section")
	}
}

func TestExercise_Options(t *testing.T) {
	t.Parallel()

	specs := []check.Spec{{Actual: "ok", Expected: "ok"}}

	run := func(ex *Exercise) *check.Report {
		t.Helper()
		var buf bytes.Buffer
		report, err := check.Run(specs, nil, append(ex.Options(), check.WithOutput(&buf))...)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return report
	}

	if r := run(&Exercise{Name: "lists", Phrase: "Yeah! 😎"}); r.Exercise != "lists" || r.Phrase != "Yeah! 😎" {
		t.Errorf("report = %+v", r)
	}
	if r := run(&Exercise{Name: "lists"}); r.Phrase != check.Phrase("lists", specs) {
		t.Errorf("Phrase = %q, want seeded phrase", r.Phrase)
	}
	if opts := (&Exercise{}).Options(); len(opts) != 0 {
		t.Errorf("Options() = %d options, want 0", len(opts))
	}
}

func TestExercise_EndToEnd(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "expected.json", `{"total": 12, "items": [3, 4, 5]}`)
	path := writeFile(t, dir, "ex.yaml", `
exercise: basket
bindings:
  total: 12
  items: [5, 4, 3]
  price: 2.499
tests:
  - actual: total
    expected: 12
  - actual: price
    expected: 2.5
  - actual: items
    expected: [3, 4, 5]
    compare: {kind: tolerance, array_order: unordered}
  - actual: "total * 2"
    expected: 20
    compare: {kind: predicate, expr: "actual > expected"}
  - actual: items
    expected: 3
    compare: {kind: assert, expr: "len(actual) == expected"}
`)

	ex, err := Load(filepath.Clean(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	specs, err := ex.Specs(check.DefaultPlaces)
	if err != nil {
		t.Fatalf("Specs() error = %v", err)
	}

	var buf bytes.Buffer
	report, err := check.Run(specs, ex.BindingsWith(nil), append(ex.Options(), check.WithOutput(&buf))...)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.OK() {
		t.Errorf("report = %+v\noutput:\n%s", report, buf.String())
	}
	if want := "✅ 5 tests passed. " + check.Phrase("basket", specs) + "\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestExercise_Identifiers(t *testing.T) {
	t.Parallel()

	ex := &Exercise{Tests: []Test{
		{Actual: "total + offset"},
		{Actual: "offset * 2"},
		{Actual: 5},
		{Actual: "not an expression!"},
		{Actual: "true"},
	}}
	want := []string{"offset", "total"}
	if got := ex.Identifiers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Identifiers() = %v, want %v", got, want)
	}
}
