package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type evaluator struct {
	vars map[string]any
}

func (e *evaluator) expression(n *Expression) (any, error) {
	acc, err := e.term(n.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range n.Right {
		rhs, err := e.term(r.Term)
		if err != nil {
			return nil, err
		}
		if acc, err = binary(r.Op, acc, rhs); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (e *evaluator) term(n *Term) (any, error) {
	acc, err := e.unary(n.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range n.Right {
		rhs, err := e.unary(r.Unary)
		if err != nil {
			return nil, err
		}
		if acc, err = binary(r.Op, acc, rhs); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (e *evaluator) unary(n *Unary) (any, error) {
	if n.Unary == nil {
		return e.power(n.Power)
	}
	v, err := e.unary(n.Unary)
	if err != nil {
		return nil, err
	}
	switch x := numeric(v).(type) {
	case int64:
		if n.Op == "-" {
			if x == math.MinInt64 {
				return -float64(x), nil
			}
			return -x, nil
		}
		return x, nil
	case float64:
		if n.Op == "-" {
			return -x, nil
		}
		return x, nil
	}
	return nil, &TypeError{Op: n.Op, Right: v}
}

func (e *evaluator) power(n *Power) (any, error) {
	base, err := e.primary(n.Base)
	if err != nil {
		return nil, err
	}
	if n.Exponent == nil {
		return base, nil
	}
	exp, err := e.unary(n.Exponent)
	if err != nil {
		return nil, err
	}
	return binary("**", base, exp)
}

func (e *evaluator) primary(n *Primary) (any, error) {
	switch {
	case n.Float != nil:
		return *n.Float, nil
	case n.Int != nil:
		return *n.Int, nil
	case n.String != nil:
		return unquote(*n.String)
	case n.Bool != nil:
		return bool(*n.Bool), nil
	case n.Ident != nil:
		v, ok := e.vars[*n.Ident]
		if !ok {
			return nil, &UndefinedError{Name: *n.Ident}
		}
		return Normalize(v), nil
	case n.Sub != nil:
		return e.expression(n.Sub)
	}
	return nil, fmt.Errorf("empty operand at %s", n.Pos)
}

// unquote decodes a double- or single-quoted string literal.
func unquote(lit string) (string, error) {
	if strings.HasPrefix(lit, "'") {
		inner := lit[1 : len(lit)-1]
		inner = strings.ReplaceAll(inner, `\'`, `'`)
		inner = strings.ReplaceAll(inner, `"`, `\"`)
		lit = `"` + inner + `"`
	}
	s, err := strconv.Unquote(lit)
	if err != nil {
		return "", fmt.Errorf("invalid string literal %s: %w", lit, err)
	}
	return s, nil
}

// Normalize converts Go numeric types to int64 or float64 so bound values
// combine with literals. Other values are returned unchanged.
func Normalize(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return uint64ToNumber(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return uint64ToNumber(x)
	case float32:
		return float64(x)
	}
	return v
}

func uint64ToNumber(x uint64) any {
	if x > math.MaxInt64 {
		return float64(x)
	}
	return int64(x)
}

// numeric returns v as int64 or float64, treating booleans as 0 and 1.
// Any other value is returned unchanged.
func numeric(v any) any {
	if b, ok := v.(bool); ok {
		if b {
			return int64(1)
		}
		return int64(0)
	}
	return Normalize(v)
}

func binary(op string, left, right any) (any, error) {
	if ls, ok := left.(string); ok {
		return stringOp(op, ls, right)
	}
	if rs, ok := right.(string); ok && op == "*" {
		if n, ok := numeric(left).(int64); ok {
			return repeat(rs, n)
		}
	}

	l, r := numeric(left), numeric(right)
	li, lInt := l.(int64)
	ri, rInt := r.(int64)
	if lInt && rInt {
		return intOp(op, li, ri)
	}
	lf, lok := toFloat(l)
	rf, rok := toFloat(r)
	if !lok || !rok {
		return nil, &TypeError{Op: op, Left: left, Right: right}
	}
	return floatOp(op, lf, rf)
}

func stringOp(op string, left string, right any) (any, error) {
	switch op {
	case "+":
		if rs, ok := right.(string); ok {
			return left + rs, nil
		}
	case "*":
		if n, ok := numeric(right).(int64); ok {
			return repeat(left, n)
		}
	}
	return nil, &TypeError{Op: op, Left: left, Right: right}
}

// maxRepeatLen bounds the length of a string produced by repetition.
const maxRepeatLen = 1 << 20

func repeat(s string, n int64) (string, error) {
	if n <= 0 || s == "" {
		return "", nil
	}
	if n > int64(maxRepeatLen/len(s)) {
		return "", fmt.Errorf("string repetition exceeds %d bytes", maxRepeatLen)
	}
	return strings.Repeat(s, int(n)), nil
}

// intOp applies op to two integers. Results that do not fit in an int64
// are computed in float64 instead of wrapping around.
func intOp(op string, l, r int64) (any, error) {
	switch op {
	case "+":
		if sum, ok := addInt(l, r); ok {
			return sum, nil
		}
	case "-":
		if r == math.MinInt64 {
			if l < 0 {
				return l - r, nil
			}
			break
		}
		if diff, ok := addInt(l, -r); ok {
			return diff, nil
		}
	case "*":
		if prod, ok := mulInt(l, r); ok {
			return prod, nil
		}
	case "/":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		return float64(l) / float64(r), nil
	case "//":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		if l == math.MinInt64 && r == -1 {
			break
		}
		q := l / r
		if (l%r != 0) && ((l < 0) != (r < 0)) {
			q--
		}
		return q, nil
	case "%":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		if r == -1 {
			return int64(0), nil
		}
		m := l % r
		if m != 0 && ((m < 0) != (r < 0)) {
			m += r
		}
		return m, nil
	case "**":
		if r < 0 {
			return math.Pow(float64(l), float64(r)), nil
		}
		if result, ok := powInt(l, r); ok {
			return result, nil
		}
	default:
		return nil, fmt.Errorf("unknown operator %q", op)
	}
	return floatOp(op, float64(l), float64(r))
}

func addInt(a, b int64) (int64, bool) {
	s := a + b
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
		return 0, false
	}
	return s, true
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}

// powInt computes base**exp for exp >= 0 by squaring.
func powInt(base, exp int64) (int64, bool) {
	result := int64(1)
	for {
		if exp&1 == 1 {
			var ok bool
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp == 0 {
			return result, true
		}
		var ok bool
		if base, ok = mulInt(base, base); !ok {
			return 0, false
		}
	}
}

func floatOp(op string, l, r float64) (any, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		return l / r, nil
	case "//":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		return math.Floor(l / r), nil
	case "%":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		m := math.Mod(l, r)
		if m != 0 && ((m < 0) != (r < 0)) {
			m += r
		}
		return m, nil
	case "**":
		return math.Pow(l, r), nil
	}
	return nil, fmt.Errorf("unknown operator %q", op)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func typeName(v any) string {
	switch v.(type) {
	case int64:
		return "int"
	case float64:
		return "float"
	case string:
		return "str"
	case bool:
		return "bool"
	case nil:
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
