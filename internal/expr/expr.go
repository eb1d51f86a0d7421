// Package expr evaluates a restricted expression language against a variable
// binding map.
//
// The grammar covers identifiers, number, string and boolean literals,
// parentheses, unary signs and the arithmetic operators + - * / // % **.
// Arithmetic follows Python semantics: / is true division, // and % floor
// toward negative infinity, and int ** negative int yields a float. Integer
// results that do not fit in an int64 are computed as floats. Nothing
// else is evaluated: there are no calls, attribute lookups or indexing.
package expr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrDivisionByZero is returned when the right operand of /, // or % is zero.
var ErrDivisionByZero = errors.New("division by zero")

// UndefinedError reports an identifier missing from the binding map.
type UndefinedError struct {
	Name string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("name %q is not defined", e.Name)
}

// TypeError reports operands an operator does not support.
type TypeError struct {
	Op    string
	Left  any
	Right any
}

func (e *TypeError) Error() string {
	if e.Left == nil {
		return fmt.Sprintf("bad operand type for unary %s: %s", e.Op, typeName(e.Right))
	}
	return fmt.Sprintf("unsupported operand types for %s: %s and %s", e.Op, typeName(e.Left), typeName(e.Right))
}

// SyntaxError reports an expression that does not match the grammar.
type SyntaxError struct {
	Source string
	Cause  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid expression %q: %v", e.Source, e.Cause)
}

func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

// Program is a parsed expression, safe for repeated evaluation.
type Program struct {
	source string
	root   *Expression
}

// Parse parses source into a Program.
func Parse(source string) (*Program, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &SyntaxError{Source: source, Cause: errors.New("empty expression")}
	}
	root, err := parser.ParseString("", source)
	if err != nil {
		return nil, &SyntaxError{Source: source, Cause: err}
	}
	return &Program{source: source, root: root}, nil
}

// Eval parses and evaluates source against vars.
func Eval(source string, vars map[string]any) (any, error) {
	p, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return p.Eval(vars)
}

// Source returns the text the program was parsed from.
func (p *Program) Source() string {
	return p.source
}

// Eval evaluates the program. Integers come back as int64, other numbers as
// float64. Bound values that are not numbers, strings or booleans are returned
// unchanged when referenced directly and rejected by every operator.
func (p *Program) Eval(vars map[string]any) (any, error) {
	e := &evaluator{vars: vars}
	return e.expression(p.root)
}

// Identifiers returns the sorted, de-duplicated identifiers the program references.
func (p *Program) Identifiers() []string {
	seen := make(map[string]bool)
	collectExpression(p.root, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectExpression(e *Expression, seen map[string]bool) {
	collectTerm(e.Left, seen)
	for _, r := range e.Right {
		collectTerm(r.Term, seen)
	}
}

func collectTerm(t *Term, seen map[string]bool) {
	collectUnary(t.Left, seen)
	for _, r := range t.Right {
		collectUnary(r.Unary, seen)
	}
}

func collectUnary(u *Unary, seen map[string]bool) {
	if u.Unary != nil {
		collectUnary(u.Unary, seen)
		return
	}
	switch {
	case u.Power.Base.Ident != nil:
		seen[*u.Power.Base.Ident] = true
	case u.Power.Base.Sub != nil:
		collectExpression(u.Power.Base.Sub, seen)
	}
	if u.Power.Exponent != nil {
		collectUnary(u.Power.Exponent, seen)
	}
}
