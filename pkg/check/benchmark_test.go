package check

import (
	"io"
	"math"
	"testing"
)

func BenchmarkRounded_Float(b *testing.B) {
	r := Rounded{Places: 2}

	b.ResetTimer()
	for b.Loop() {
		r.match(3.14159, 3.14)
	}
}

func BenchmarkTolerance_SmallArray(b *testing.B) {
	tol := DefaultTolerance()
	expected := []any{1.0, 2.0, 3.0, 4.0, 5.0}
	actual := []any{1.0, 2.0, 3.0, 4.0, 5.0}

	b.ResetTimer()
	for b.Loop() {
		tol.match(actual, expected)
	}
}

func BenchmarkTolerance_LargeArray(b *testing.B) {
	tol := DefaultTolerance()
	expected := make([]any, 1000)
	actual := make([]float64, 1000)
	for i := range 1000 {
		expected[i] = float64(i)
		actual[i] = float64(i)
	}

	b.ResetTimer()
	for b.Loop() {
		tol.match(actual, expected)
	}
}

func BenchmarkTolerance_UnorderedArray(b *testing.B) {
	tol := Tolerance{FloatTolerance: 1e-9, ToleranceMode: "relative", ArrayOrder: "unordered"}
	expected := []any{5.0, 4.0, 3.0, 2.0, 1.0}
	actual := []any{1.0, 2.0, 3.0, 4.0, 5.0}

	b.ResetTimer()
	for b.Loop() {
		tol.match(actual, expected)
	}
}

func BenchmarkTolerance_DeepNested(b *testing.B) {
	tol := DefaultTolerance()
	nested := func() map[string]any {
		return map[string]any{
			"level1": map[string]any{
				"level2": map[string]any{
					"level3": map[string]any{"value": 42.0},
				},
			},
		}
	}
	expected, actual := nested(), nested()

	b.ResetTimer()
	for b.Loop() {
		tol.match(actual, expected)
	}
}

func BenchmarkCompareValues_WithDiff(b *testing.B) {
	opts := compareOptions{Tolerance: DefaultTolerance()}
	expected := map[string]any{"name": "test", "value": 42.0}
	actual := map[string]any{"name": "test", "value": 43.0}

	b.ResetTimer()
	for b.Loop() {
		compareValues(expected, actual, opts, "")
	}
}

func BenchmarkUlpDiff(b *testing.B) {
	a := 1.0
	c := 1.0000000000000002

	b.ResetTimer()
	for b.Loop() {
		ulpDiff(a, c)
	}
}

func BenchmarkTolerance_NaN(b *testing.B) {
	tol := DefaultTolerance()
	actual := math.NaN()

	b.ResetTimer()
	for b.Loop() {
		tol.match(actual, "NaN")
	}
}

func BenchmarkEvaluate_Expression(b *testing.B) {
	spec := Spec{Actual: "x * 2 + 1", Expected: 9}
	bindings := Bindings{"x": 4}
	opts := []Option{WithOutput(io.Discard)}

	b.ResetTimer()
	for b.Loop() {
		Evaluate(spec, bindings, opts...)
	}
}

func BenchmarkPhrase(b *testing.B) {
	specs := []Spec{{Actual: "x", Expected: 1}, {Actual: 2.5, Expected: 2.5}}

	b.ResetTimer()
	for b.Loop() {
		Phrase("space_invader", specs)
	}
}
