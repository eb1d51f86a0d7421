package exercise

import (
	"maps"
	"slices"

	gcerrors "github.com/AndreyAkinshin/gradecheck/internal/errors"
	"github.com/AndreyAkinshin/gradecheck/internal/expr"
	"github.com/AndreyAkinshin/gradecheck/pkg/check"
)

// Specs converts the tests into check specifications. Comparators without
// explicit places round to defaultPlaces. Predicate and assert expressions
// are compiled here, so an invalid expression fails before anything runs.
func (e *Exercise) Specs(defaultPlaces int) ([]check.Spec, error) {
	specs := make([]check.Spec, 0, len(e.Tests))
	for i, t := range e.Tests {
		spec, err := t.Spec(defaultPlaces)
		if err != nil {
			return nil, gcerrors.InFile(gcerrors.AtTest(err, i+1), e.Path)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Spec converts a single test.
func (t Test) Spec(defaultPlaces int) (check.Spec, error) {
	spec := check.Spec{
		Actual:   t.Actual,
		Expected: t.Expected,
		Message:  t.Message,
		Mode:     check.Mode(t.Mode),
	}
	if t.Compare == nil {
		return spec, nil
	}
	cmp, err := t.Compare.Comparator(defaultPlaces)
	if err != nil {
		return check.Spec{}, err
	}
	spec.Compare = cmp
	return spec, nil
}

// Comparator builds the comparator described by c.
func (c *Compare) Comparator(defaultPlaces int) (check.Comparator, error) {
	switch c.Kind {
	case KindRounded:
		places := defaultPlaces
		if c.Places != nil {
			places = *c.Places
		}
		return check.Rounded{Places: places}, nil

	case KindTolerance:
		tol := check.DefaultTolerance()
		if c.Tolerance != nil {
			tol.FloatTolerance = *c.Tolerance
		}
		if c.ToleranceMode != "" {
			tol.ToleranceMode = c.ToleranceMode
		}
		if c.ArrayOrder != "" {
			tol.ArrayOrder = c.ArrayOrder
		}
		if c.NaNEqualsNaN != nil {
			tol.NaNEqualsNaN = *c.NaNEqualsNaN
		}
		return tol, nil

	case KindExact:
		return check.Exact{}, nil

	case KindPredicate:
		p, err := compilePredicate(c.Expr)
		if err != nil {
			return nil, gcerrors.Expression(c.Expr, err)
		}
		return check.Predicate{Label: c.Expr, Func: p.match}, nil

	case KindAssert:
		p, err := compilePredicate(c.Expr)
		if err != nil {
			return nil, gcerrors.Expression(c.Expr, err)
		}
		return check.Assertion{Label: c.Expr, Func: p.assert}, nil
	}
	return nil, gcerrors.Configf("unknown comparator kind: %q", c.Kind)
}

// BindingsWith returns the file bindings overlaid with overrides. The result
// is nil, which disables expression resolution, only when the file has no
// bindings section and there are no overrides.
func (e *Exercise) BindingsWith(overrides map[string]any) check.Bindings {
	if e.Bindings == nil && len(overrides) == 0 {
		return nil
	}
	b := make(check.Bindings, len(e.Bindings)+len(overrides))
	maps.Copy(b, e.Bindings)
	maps.Copy(b, overrides)
	return b
}

// Identifiers returns the sorted names referenced by string actual values
// that parse as expressions.
func (e *Exercise) Identifiers() []string {
	seen := make(map[string]bool)
	for _, t := range e.Tests {
		src, ok := t.Actual.(string)
		if !ok {
			continue
		}
		p, err := expr.Parse(src)
		if err != nil {
			continue
		}
		for _, name := range p.Identifiers() {
			seen[name] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Options returns the run options carried by the file.
func (e *Exercise) Options() []check.Option {
	var opts []check.Option
	if e.Name != "" {
		opts = append(opts, check.WithExercise(e.Name))
	}
	if e.Phrase != "" {
		opts = append(opts, check.WithPhrase(e.Phrase))
	}
	return opts
}

// DisplayName is the exercise identifier, or the file path when there is none.
func (e *Exercise) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Path
}
