package exercise

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/AndreyAkinshin/gradecheck/pkg/check"
)

// predicateEnv declares the only variables a predicate may reference.
var predicateEnv = map[string]any{
	"actual":   nil,
	"expected": nil,
}

// predicate is a compiled boolean expression over actual and expected.
type predicate struct {
	source  string
	program *vm.Program
}

func compilePredicate(source string) (*predicate, error) {
	program, err := expr.Compile(source, expr.Env(predicateEnv), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling expression: %w", err)
	}
	return &predicate{source: source, program: program}, nil
}

func (p *predicate) eval(actual, expected any) (bool, error) {
	result, err := expr.Run(p.program, map[string]any{
		"actual":   actual,
		"expected": expected,
	})
	if err != nil {
		return false, fmt.Errorf("running expression %q: %w", p.source, err)
	}

	ok, isBool := result.(bool)
	if !isBool {
		return false, fmt.Errorf("expression %q did not evaluate to a boolean: %v", p.source, result)
	}
	return ok, nil
}

// match backs the predicate kind. A runtime error counts as a mismatch.
func (p *predicate) match(actual, expected any) bool {
	ok, err := p.eval(actual, expected)
	return err == nil && ok
}

// assert backs the assert kind. A false result is an assertion failure; a
// runtime error aborts the evaluation.
func (p *predicate) assert(actual, expected any) error {
	ok, err := p.eval(actual, expected)
	if err != nil {
		return err
	}
	if !ok {
		return check.Failf("assertion failed: %s (actual: %s, expected: %s)",
			p.source, check.FormatValue(actual), check.FormatValue(expected))
	}
	return nil
}
