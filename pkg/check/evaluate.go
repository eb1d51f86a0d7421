package check

import (
	"errors"
	"strings"

	gcerrors "github.com/AndreyAkinshin/gradecheck/internal/errors"
	"github.com/AndreyAkinshin/gradecheck/internal/expr"
)

// Outcome is the result of evaluating one Spec.
type Outcome struct {
	Index      int    `json:"index"` // 1-based position in the run, 0 for Evaluate
	Passed     bool   `json:"passed"`
	Message    string `json:"message"`
	Mode       Mode   `json:"mode"`
	Comparator string `json:"comparator"`
	Expected   any    `json:"expected"`
	Actual     any    `json:"actual"`           // After expression resolution
	Detail     string `json:"detail,omitempty"` // Comparator detail or assertion text on failure
}

// Evaluate checks a single spec and reports whether it passed. A failure is
// printed as a diagnostic block; the returned error is reserved for invalid
// specs, unevaluable expressions and non-assertion comparator errors.
func Evaluate(spec Spec, bindings Bindings, opts ...Option) (bool, error) {
	o, err := EvaluateOutcome(spec, bindings, opts...)
	if err != nil {
		return false, err
	}
	return o.Passed, nil
}

// EvaluateOutcome is Evaluate returning the full outcome record.
func EvaluateOutcome(spec Spec, bindings Bindings, opts ...Option) (Outcome, error) {
	return evaluate(spec, bindings, newSettings(opts))
}

func evaluate(spec Spec, bindings Bindings, s *settings) (Outcome, error) {
	message := spec.Message
	if message == "" {
		src, ok := spec.Actual.(string)
		if !ok {
			return Outcome{}, gcerrors.Config("no error message given, but actual value is not a string")
		}
		message = "invalid result for " + src
	}

	actual, err := resolve(spec.Actual, bindings)
	if err != nil {
		return Outcome{}, err
	}

	cmp, mode, err := comparatorFor(spec, s.places)
	if err != nil {
		return Outcome{}, err
	}

	o := Outcome{
		Message:    message,
		Mode:       mode,
		Comparator: cmp.Name(),
		Expected:   spec.Expected,
		Actual:     actual,
	}

	ok, detail, err := cmp.match(actual, spec.Expected)
	if err != nil {
		return Outcome{}, gcerrors.Wrap(err, cmp.Name()+" failed")
	}
	o.Passed = ok
	if ok {
		return o, nil
	}

	switch mode {
	case ModeCompare:
		o.Detail = detail
		s.out.Diagnostic(message,
			" Expected value:  "+FormatValue(spec.Expected),
			" Actual value:    "+FormatValue(actual))
	case ModeCheck:
		if detail == "" {
			detail = "values do not match"
		}
		o.Detail = strings.TrimSpace(detail)
		s.out.Diagnostic(message, o.Detail)
	}
	return o, nil
}

// resolve evaluates a string actual value against the bindings. An undefined
// identifier resolves to Undefined.
func resolve(actual any, bindings Bindings) (any, error) {
	src, ok := actual.(string)
	if !ok || bindings == nil {
		return actual, nil
	}
	v, err := expr.Eval(src, bindings)
	if err != nil {
		var undef *expr.UndefinedError
		if errors.As(err, &undef) {
			return Undefined, nil
		}
		return nil, gcerrors.Expression(src, err)
	}
	return v, nil
}

// comparatorFor resolves the comparator and mode of a spec.
func comparatorFor(spec Spec, places int) (Comparator, Mode, error) {
	if spec.Compare == nil {
		return Rounded{Places: places}, ModeCompare, nil
	}
	if err := spec.Compare.validate(); err != nil {
		return nil, "", gcerrors.Configf("invalid comparator %s: %v", spec.Compare.Name(), err)
	}
	mode := spec.Mode
	if mode == "" {
		mode = spec.Compare.natural()
	}
	switch mode {
	case ModeCompare, ModeCheck:
		return spec.Compare, mode, nil
	}
	return nil, "", gcerrors.Configf("invalid test mode: %s", string(spec.Mode))
}
