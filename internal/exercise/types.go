// Package exercise loads exercise files (YAML or JSON) and turns them into
// test specifications for the check package.
package exercise

// Exercise is a decoded exercise file.
type Exercise struct {
	Path     string         // File the exercise was loaded from
	Name     string         // Identifier from the "exercise" field, may be empty
	Phrase   string         // Forced congratulation phrase, may be empty
	Bindings map[string]any // Nil when the file has no bindings section
	Tests    []Test
}

// Test is a single entry of the tests list.
type Test struct {
	Actual   any
	Expected any
	Message  string
	Compare  *Compare // Nil selects the default rounded comparator
	Mode     string
}

// Compare holds the comparator settings of a test.
type Compare struct {
	Kind          string
	Places        *int
	Tolerance     *float64
	ToleranceMode string
	ArrayOrder    string
	NaNEqualsNaN  *bool
	Expr          string
}

// Comparator kinds accepted in exercise files.
const (
	KindRounded   = "rounded"
	KindTolerance = "tolerance"
	KindExact     = "exact"
	KindPredicate = "predicate"
	KindAssert    = "assert"
)

// Extensions lists the file extensions Load accepts.
var Extensions = []string{".yaml", ".yml", ".json"}
