package check

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/AndreyAkinshin/gradecheck/internal/expr"
)

// compareOptions drives the structural comparison shared by Exact and Tolerance.
type compareOptions struct {
	Tolerance

	// specialFloats lets the expected strings "NaN", "Infinity" and
	// "-Infinity" match the corresponding float values, for expected data
	// decoded from JSON or YAML.
	specialFloats bool

	// boolsAsNumbers compares true and false as 1 and 0 against numbers.
	boolsAsNumbers bool
}

func compareValues(expected, actual any, opts compareOptions, path string) (bool, string) {
	if expected == nil && actual == nil {
		return true, ""
	}
	if expected == nil || actual == nil {
		return false, fmt.Sprintf("%s: expected %s, got %s", pathStr(path), FormatValue(expected), FormatValue(actual))
	}

	if opts.boolsAsNumbers {
		expected, actual = boolAsNumber(expected, actual), boolAsNumber(actual, expected)
	}

	if str, ok := expected.(string); ok && opts.specialFloats && isSpecialFloat(str) {
		return compareSpecialFloat(str, actual, opts, path)
	}

	switch exp := expected.(type) {
	case int64, float64:
		return compareNumbers(exp, actual, opts, path)
	case string:
		if act, ok := actual.(string); ok && exp == act {
			return true, ""
		}
		return false, fmt.Sprintf("%s: expected %q, got %s", pathStr(path), exp, FormatValue(actual))
	case bool:
		if act, ok := actual.(bool); ok && exp == act {
			return true, ""
		}
		return false, fmt.Sprintf("%s: expected %v, got %s", pathStr(path), exp, FormatValue(actual))
	case map[string]any:
		return compareMaps(exp, actual, opts, path)
	case []any:
		return compareArrays(exp, actual, opts, path)
	default:
		if reflect.DeepEqual(expected, actual) {
			return true, ""
		}
		return false, fmt.Sprintf("%s: expected %v (%T), got %v (%T)", pathStr(path), expected, expected, actual, actual)
	}
}

// boolAsNumber returns v as 0 or 1 when it is a bool and other is a number.
func boolAsNumber(v, other any) any {
	b, ok := v.(bool)
	if !ok || !isNumber(other) {
		return v
	}
	if b {
		return int64(1)
	}
	return int64(0)
}

func compareNumbers(expected, actual any, opts compareOptions, path string) (bool, string) {
	if !isNumber(actual) {
		return false, fmt.Sprintf("%s: expected number, got %s (%T)", pathStr(path), FormatValue(actual), actual)
	}
	if ei, ok := expected.(int64); ok {
		if ai, ok := actual.(int64); ok {
			if ei == ai {
				return true, ""
			}
			if opts.Tolerance.FloatTolerance == 0 {
				return false, fmt.Sprintf("%s: expected %d, got %d", pathStr(path), ei, ai)
			}
		}
	}
	e, _ := toFloat(expected)
	a, _ := toFloat(actual)
	if floatsEqual(e, a, opts.Tolerance) {
		return true, ""
	}
	return false, fmt.Sprintf("%s: expected %s, got %s%s", pathStr(path), FormatValue(expected), FormatValue(actual), toleranceSuffix(opts.Tolerance))
}

func toleranceSuffix(t Tolerance) string {
	if t.FloatTolerance == 0 {
		return ""
	}
	return fmt.Sprintf(" (tolerance: %v %s)", t.FloatTolerance, t.ToleranceMode)
}

func floatsEqual(expected, actual float64, t Tolerance) bool {
	if math.IsNaN(expected) && math.IsNaN(actual) {
		return t.NaNEqualsNaN
	}
	if math.IsInf(expected, 1) && math.IsInf(actual, 1) {
		return true
	}
	if math.IsInf(expected, -1) && math.IsInf(actual, -1) {
		return true
	}
	if math.IsNaN(expected) || math.IsNaN(actual) ||
		math.IsInf(expected, 0) || math.IsInf(actual, 0) {
		return false
	}

	switch t.ToleranceMode {
	case "absolute":
		return math.Abs(expected-actual) <= t.FloatTolerance
	case "ulp":
		return ulpDiff(expected, actual) <= int64(t.FloatTolerance)
	default:
		if expected == 0 {
			return math.Abs(actual) <= t.FloatTolerance
		}
		return math.Abs((expected-actual)/expected) <= t.FloatTolerance
	}
}

// ulpDiff returns the distance between a and b in units in the last place.
func ulpDiff(a, b float64) int64 {
	ai := int64(math.Float64bits(a))
	bi := int64(math.Float64bits(b))
	if ai < 0 {
		ai = math.MinInt64 - ai
	}
	if bi < 0 {
		bi = math.MinInt64 - bi
	}
	diff := ai - bi
	if diff < 0 {
		return -diff
	}
	return diff
}

func compareMaps(expected map[string]any, actual any, opts compareOptions, path string) (bool, string) {
	act, ok := actual.(map[string]any)
	if !ok {
		return false, fmt.Sprintf("%s: expected object, got %T", pathStr(path), actual)
	}

	for _, key := range sortedKeys(expected) {
		if _, ok := act[key]; !ok {
			return false, fmt.Sprintf("%s: missing key %q", pathStr(path), key)
		}
	}
	for _, key := range sortedKeys(act) {
		if _, ok := expected[key]; !ok {
			return false, fmt.Sprintf("%s: unexpected key %q", pathStr(path), key)
		}
	}

	for _, key := range sortedKeys(expected) {
		keyPath := path + "." + key
		if path == "" {
			keyPath = key
		}
		if ok, diff := compareValues(expected[key], act[key], opts, keyPath); !ok {
			return false, diff
		}
	}
	return true, ""
}

func compareArrays(expected []any, actual any, opts compareOptions, path string) (bool, string) {
	act, ok := actual.([]any)
	if !ok {
		return false, fmt.Sprintf("%s: expected array, got %T", pathStr(path), actual)
	}
	if len(expected) != len(act) {
		return false, fmt.Sprintf("%s: expected %d elements, got %d", pathStr(path), len(expected), len(act))
	}

	if opts.ArrayOrder == "unordered" {
		return compareArraysUnordered(expected, act, opts, path)
	}

	for i := range expected {
		indexPath := fmt.Sprintf("%s[%d]", path, i)
		if ok, diff := compareValues(expected[i], act[i], opts, indexPath); !ok {
			return false, diff
		}
	}
	return true, ""
}

func compareArraysUnordered(expected, actual []any, opts compareOptions, path string) (bool, string) {
	matched := make([]bool, len(actual))

	for i, exp := range expected {
		found := false
		for j, act := range actual {
			if matched[j] {
				continue
			}
			if ok, _ := compareValues(exp, act, opts, ""); ok {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			return false, fmt.Sprintf("%s[%d]: no matching element found for %s", path, i, FormatValue(exp))
		}
	}
	return true, ""
}

func compareSpecialFloat(expected string, actual any, opts compareOptions, path string) (bool, string) {
	act, ok := toFloat(actual)
	if !ok {
		return false, fmt.Sprintf("%s: expected float, got %T", pathStr(path), actual)
	}

	switch expected {
	case "NaN":
		if math.IsNaN(act) {
			if opts.NaNEqualsNaN {
				return true, ""
			}
			return false, fmt.Sprintf("%s: NaN != NaN (set nan_equals_nan to allow)", pathStr(path))
		}
		return false, fmt.Sprintf("%s: expected NaN, got %s", pathStr(path), FormatValue(act))
	case "Infinity", "+Infinity":
		if math.IsInf(act, 1) {
			return true, ""
		}
		return false, fmt.Sprintf("%s: expected +Infinity, got %s", pathStr(path), FormatValue(act))
	case "-Infinity":
		if math.IsInf(act, -1) {
			return true, ""
		}
		return false, fmt.Sprintf("%s: expected -Infinity, got %s", pathStr(path), FormatValue(act))
	}
	return false, fmt.Sprintf("%s: unexpected special float %q", pathStr(path), expected)
}

func isSpecialFloat(s string) bool {
	return s == "NaN" || s == "Infinity" || s == "+Infinity" || s == "-Infinity"
}

// normalize converts a value into the shapes the comparison understands:
// int64, float64, string, bool, []any and map[string]any. Values of other
// kinds are returned unchanged and compared with reflect.DeepEqual.
func normalize(v any) any {
	v = expr.Normalize(v)
	switch v.(type) {
	case nil, int64, float64, string, bool:
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = normalize(iter.Value().Interface())
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	}
	return v
}

func toNumber(v any) (any, bool) {
	n := expr.Normalize(v)
	switch n.(type) {
	case int64, float64:
		return n, true
	}
	return nil, false
}

func isNumber(v any) bool {
	_, ok := toNumber(v)
	return ok
}

func toFloat(v any) (float64, bool) {
	switch x := expr.Normalize(v).(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func numbersEqual(a, b any) bool {
	if ai, ok := a.(int64); ok {
		if bi, ok := b.(int64); ok {
			return ai == bi
		}
	}
	af, _ := toFloat(a)
	bf, _ := toFloat(b)
	return af == bf
}

// pathStr formats a path for messages. Returns "value" for the top-level value.
func pathStr(path string) string {
	if path == "" {
		return "value"
	}
	return strings.TrimPrefix(path, ".")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
