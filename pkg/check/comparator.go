package check

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Comparator decides whether an actual value matches the expected one.
//
// The set of comparators is closed: Rounded, Tolerance, Exact, Predicate and
// Assertion. Custom logic goes through Predicate or Assertion.
type Comparator interface {
	// Name identifies the comparator in reports.
	Name() string

	// natural is the mode used when Spec.Mode is empty.
	natural() Mode

	// validate reports invalid comparator parameters.
	validate() error

	// match compares the values. A mismatch is reported as ok == false with
	// an optional human-readable detail. err is reserved for failures that
	// are neither a match nor a mismatch.
	match(actual, expected any) (ok bool, detail string, err error)
}

// DefaultPlaces is the number of decimal places the default comparator rounds to.
const DefaultPlaces = 2

// Rounded rounds numeric actual values to Places decimal places before
// comparing them with expected. Non-numeric values, and numeric values whose
// rounded form differs, fall back to Exact equality.
type Rounded struct {
	Places int
}

func (r Rounded) Name() string { return fmt.Sprintf("rounded(%d)", r.Places) }
func (Rounded) natural() Mode { return ModeCompare }
func (Rounded) validate() error { return nil }

func (r Rounded) match(actual, expected any) (bool, string, error) {
	if rounded, ok := round(actual, r.Places); ok {
		if e, ok := toNumber(expected); ok && numbersEqual(rounded, e) {
			return true, "", nil
		}
	}
	ok, detail := Exact{}.compare(actual, expected)
	return ok, detail, nil
}

// round rounds a numeric value to places decimal places. The rounding is
// correctly rounded on the exact binary value, half to even.
func round(v any, places int) (any, bool) {
	n, ok := toNumber(v)
	if !ok {
		return nil, false
	}
	switch x := n.(type) {
	case int64:
		if places >= 0 {
			return x, true
		}
		return roundFloat(float64(x), places), true
	case float64:
		return roundFloat(x, places), true
	}
	return nil, false
}

func roundFloat(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if places < 0 {
		scale := math.Pow(10, float64(-places))
		return math.RoundToEven(x/scale) * scale
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return r
}

// Tolerance compares values structurally. Numbers match within FloatTolerance
// according to ToleranceMode; arrays and objects are compared element by
// element.
type Tolerance struct {
	// FloatTolerance is the allowed difference. For "ulp" mode it is
	// truncated to an integer number of units in the last place.
	FloatTolerance float64

	// ToleranceMode is "relative" (default), "absolute" or "ulp".
	ToleranceMode string

	// NaNEqualsNaN treats NaN values as equal when true.
	NaNEqualsNaN bool

	// ArrayOrder is "strict" (default) or "unordered".
	ArrayOrder string
}

// DefaultTolerance returns the default tolerance settings.
func DefaultTolerance() Tolerance {
	return Tolerance{
		FloatTolerance: 1e-9,
		ToleranceMode:  "relative",
		NaNEqualsNaN:   true,
		ArrayOrder:     "strict",
	}
}

func (t Tolerance) Name() string {
	mode := t.ToleranceMode
	if mode == "" {
		mode = "relative"
	}
	return fmt.Sprintf("tolerance(%s,%g)", mode, t.FloatTolerance)
}

func (Tolerance) natural() Mode { return ModeCompare }

func (t Tolerance) validate() error {
	switch t.ToleranceMode {
	case "", "relative", "absolute", "ulp":
		// valid (empty defaults to relative)
	default:
		return fmt.Errorf("invalid tolerance mode: %q (must be \"relative\", \"absolute\", or \"ulp\")", t.ToleranceMode)
	}
	switch t.ArrayOrder {
	case "", "strict", "unordered":
		// valid (empty defaults to strict)
	default:
		return fmt.Errorf("invalid array order: %q (must be \"strict\" or \"unordered\")", t.ArrayOrder)
	}
	if t.FloatTolerance < 0 || math.IsNaN(t.FloatTolerance) {
		return fmt.Errorf("invalid float tolerance: %v (must be non-negative)", t.FloatTolerance)
	}
	return nil
}

func (t Tolerance) match(actual, expected any) (bool, string, error) {
	opts := compareOptions{Tolerance: t, specialFloats: true}
	ok, detail := compareValues(normalize(expected), normalize(actual), opts, "")
	return ok, detail, nil
}

// Exact compares values for equality. Integers and floats with the same
// numeric value are equal, and booleans equal 1 and 0 when compared with a
// number. Arrays and objects are compared element by element.
type Exact struct{}

func (Exact) Name() string { return "exact" }
func (Exact) natural() Mode { return ModeCompare }
func (Exact) validate() error { return nil }

func (e Exact) match(actual, expected any) (bool, string, error) {
	ok, detail := e.compare(actual, expected)
	return ok, detail, nil
}

func (Exact) compare(actual, expected any) (bool, string) {
	opts := compareOptions{Tolerance: Tolerance{ToleranceMode: "absolute"}, boolsAsNumbers: true}
	return compareValues(normalize(expected), normalize(actual), opts, "")
}

// Predicate is a custom comparator reporting whether actual matches expected.
// In check mode a false result becomes an assertion naming both values.
type Predicate struct {
	Label string
	Func  func(actual, expected any) bool
}

func (p Predicate) Name() string { return labelled("predicate", p.Label) }
func (Predicate) natural() Mode { return ModeCompare }

func (p Predicate) validate() error {
	if p.Func == nil {
		return errors.New("predicate comparator has no function")
	}
	return nil
}

func (p Predicate) match(actual, expected any) (bool, string, error) {
	if p.Func(actual, expected) {
		return true, "", nil
	}
	return false, fmt.Sprintf("%s failed: expected %s, got %s", p.Name(), FormatValue(expected), FormatValue(actual)), nil
}

// Assertion is a custom comparator that returns an *AssertionError when actual
// does not match expected. Any other error aborts the evaluation.
type Assertion struct {
	Label string
	Func  func(actual, expected any) error
}

func (a Assertion) Name() string { return labelled("assertion", a.Label) }
func (Assertion) natural() Mode { return ModeCheck }

func (a Assertion) validate() error {
	if a.Func == nil {
		return errors.New("assertion comparator has no function")
	}
	return nil
}

func (a Assertion) match(actual, expected any) (bool, string, error) {
	err := a.Func(actual, expected)
	if err == nil {
		return true, "", nil
	}
	var ae *AssertionError
	if errors.As(err, &ae) {
		return false, ae.Message, nil
	}
	return false, "", err
}

func labelled(kind, label string) string {
	if label == "" {
		return kind
	}
	return kind + "(" + label + ")"
}

// AssertionError is the failure an Assertion comparator returns on mismatch.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	return e.Message
}

// Failf returns an *AssertionError with a formatted message.
func Failf(format string, args ...any) error {
	return &AssertionError{Message: fmt.Sprintf(format, args...)}
}

// Assert returns nil when cond holds and an *AssertionError otherwise.
func Assert(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return Failf(format, args...)
}

// FormatValue renders a value for diagnostics. Integral floats keep a trailing
// ".0" so they can be told apart from integers.
func FormatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case nil:
		return "nil"
	}
	return fmt.Sprintf("%v", v)
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
