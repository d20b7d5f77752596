package interp

import (
	"math"
	"strings"

	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/value"
	"github.com/shantanunp/grizzly/pkg/ast"
)

// evalBinaryOp implements §4.3's operator semantics. `and`/`or` are
// short-circuiting and return the deciding operand rather than a
// coerced bool; every other operator evaluates both sides first.
func (it *Interpreter) evalBinaryOp(e *ast.BinaryOp, frame *Frame, fn *ast.FunctionDef) (value.Value, error) {
	switch e.Op {
	case "and":
		left, err := it.evalExpr(e.Left, frame, fn)
		if err != nil {
			return nil, err
		}
		if !left.Truthy() {
			return left, nil
		}
		return it.evalExpr(e.Right, frame, fn)

	case "or":
		left, err := it.evalExpr(e.Left, frame, fn)
		if err != nil {
			return nil, err
		}
		if left.Truthy() {
			return left, nil
		}
		return it.evalExpr(e.Right, frame, fn)
	}

	left, err := it.evalExpr(e.Left, frame, fn)
	if err != nil {
		return nil, err
	}
	right, err := it.evalExpr(e.Right, frame, fn)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "+":
		return addValues(left, right, e)
	case "-":
		return numericOp(left, right, e, func(a, b float64) float64 { return a - b })
	case "*":
		return mulValues(left, right, e)
	case "/":
		return divValues(left, right, e)
	case "//":
		return floorDivValues(left, right, e)
	case "%":
		return modValues(left, right, e)
	case "**":
		return powValues(left, right, e)
	case "==":
		return value.Boolean(value.Equal(left, right)), nil
	case "!=":
		return value.Boolean(!value.Equal(left, right)), nil
	case "<", ">", "<=", ">=":
		return compareValues(left, right, e.Op, e)
	case "in":
		return inValues(left, right, e)
	case "not in":
		v, err := inValues(left, right, e)
		if err != nil {
			return nil, err
		}
		return value.Boolean(!v.Truthy()), nil
	default:
		return nil, diag.NewRuntimeError(e.Pos(), "unknown operator %q", e.Op)
	}
}

func (it *Interpreter) evalUnaryOp(e *ast.UnaryOp, frame *Frame, fn *ast.FunctionDef) (value.Value, error) {
	v, err := it.evalExpr(e.Right, frame, fn)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "not":
		return value.Boolean(!v.Truthy()), nil
	case "-":
		n, ok := v.(*value.Number)
		if !ok {
			return nil, diag.NewRuntimeError(e.Pos(), "bad operand for unary -: %s", v.TypeName())
		}
		if n.IsInt {
			return value.Int(-n.Int), nil
		}
		return value.Float(-n.Float), nil
	default:
		return nil, diag.NewRuntimeError(e.Pos(), "unknown unary operator %q", e.Op)
	}
}

func addValues(left, right value.Value, e *ast.BinaryOp) (value.Value, error) {
	if ls, ok := left.(*value.Str); ok {
		rs, ok := right.(*value.Str)
		if !ok {
			return nil, diag.NewRuntimeError(e.Pos(), "cannot concatenate str and %s", right.TypeName())
		}
		return value.NewString(ls.Val + rs.Val), nil
	}
	if ll, ok := left.(*value.List); ok {
		rl, ok := right.(*value.List)
		if !ok {
			return nil, diag.NewRuntimeError(e.Pos(), "cannot concatenate list and %s", right.TypeName())
		}
		out := make([]value.Value, 0, len(ll.Items)+len(rl.Items))
		out = append(out, ll.Items...)
		out = append(out, rl.Items...)
		return value.NewList(out), nil
	}
	ln, lok := left.(*value.Number)
	rn, rok := right.(*value.Number)
	if !lok || !rok {
		return nil, diag.NewRuntimeError(e.Pos(), "unsupported operand types for +: %s and %s", left.TypeName(), right.TypeName())
	}
	if ln.IsInt && rn.IsInt {
		return value.Int(ln.Int + rn.Int), nil
	}
	return value.Float(ln.AsFloat() + rn.AsFloat()), nil
}

func mulValues(left, right value.Value, e *ast.BinaryOp) (value.Value, error) {
	if ll, ok := left.(*value.List); ok {
		n, ok := right.(*value.Number)
		if !ok || !n.IsInt {
			return nil, diag.NewRuntimeError(e.Pos(), "list repetition count must be an integer")
		}
		return repeatList(ll, int(n.Int)), nil
	}
	if rl, ok := right.(*value.List); ok {
		n, ok := left.(*value.Number)
		if !ok || !n.IsInt {
			return nil, diag.NewRuntimeError(e.Pos(), "list repetition count must be an integer")
		}
		return repeatList(rl, int(n.Int)), nil
	}
	return numericOp(left, right, e, func(a, b float64) float64 { return a * b })
}

func repeatList(l *value.List, n int) *value.List {
	if n < 0 {
		n = 0
	}
	out := make([]value.Value, 0, len(l.Items)*n)
	for i := 0; i < n; i++ {
		out = append(out, l.Items...)
	}
	return value.NewList(out)
}

func divValues(left, right value.Value, e *ast.BinaryOp) (value.Value, error) {
	ln, lok := left.(*value.Number)
	rn, rok := right.(*value.Number)
	if !lok || !rok {
		return nil, diag.NewRuntimeError(e.Pos(), "unsupported operand types for /: %s and %s", left.TypeName(), right.TypeName())
	}
	if rn.AsFloat() == 0 {
		return nil, diag.NewRuntimeError(e.Pos(), "division by zero")
	}
	return value.Float(ln.AsFloat() / rn.AsFloat()), nil
}

func floorDivValues(left, right value.Value, e *ast.BinaryOp) (value.Value, error) {
	ln, lok := left.(*value.Number)
	rn, rok := right.(*value.Number)
	if !lok || !rok {
		return nil, diag.NewRuntimeError(e.Pos(), "unsupported operand types for //: %s and %s", left.TypeName(), right.TypeName())
	}
	if rn.AsFloat() == 0 {
		return nil, diag.NewRuntimeError(e.Pos(), "division by zero")
	}
	q := math.Floor(ln.AsFloat() / rn.AsFloat())
	if ln.IsInt && rn.IsInt {
		return value.Int(int64(q)), nil
	}
	return value.Float(q), nil
}

// modValues follows the sign of the divisor, matching the reference
// grammar's Python-style `%` rather than Go's truncating remainder.
func modValues(left, right value.Value, e *ast.BinaryOp) (value.Value, error) {
	ln, lok := left.(*value.Number)
	rn, rok := right.(*value.Number)
	if !lok || !rok {
		return nil, diag.NewRuntimeError(e.Pos(), "unsupported operand types for %%: %s and %s", left.TypeName(), right.TypeName())
	}
	if rn.AsFloat() == 0 {
		return nil, diag.NewRuntimeError(e.Pos(), "modulo by zero")
	}
	a, b := ln.AsFloat(), rn.AsFloat()
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	if ln.IsInt && rn.IsInt {
		return value.Int(int64(m)), nil
	}
	return value.Float(m), nil
}

func powValues(left, right value.Value, e *ast.BinaryOp) (value.Value, error) {
	ln, lok := left.(*value.Number)
	rn, rok := right.(*value.Number)
	if !lok || !rok {
		return nil, diag.NewRuntimeError(e.Pos(), "unsupported operand types for **: %s and %s", left.TypeName(), right.TypeName())
	}
	result := math.Pow(ln.AsFloat(), rn.AsFloat())
	if ln.IsInt && rn.IsInt && rn.Int >= 0 {
		return value.Int(int64(math.Round(result))), nil
	}
	return value.Float(result), nil
}

func numericOp(left, right value.Value, e *ast.BinaryOp, f func(a, b float64) float64) (value.Value, error) {
	ln, lok := left.(*value.Number)
	rn, rok := right.(*value.Number)
	if !lok || !rok {
		return nil, diag.NewRuntimeError(e.Pos(), "unsupported operand types for %s: %s and %s", e.Op, left.TypeName(), right.TypeName())
	}
	result := f(ln.AsFloat(), rn.AsFloat())
	if ln.IsInt && rn.IsInt {
		return value.Int(int64(result)), nil
	}
	return value.Float(result), nil
}

func compareValues(left, right value.Value, op string, e *ast.BinaryOp) (value.Value, error) {
	cmp, ok := value.Compare(left, right)
	if !ok {
		return nil, diag.NewRuntimeError(e.Pos(), "cannot compare %s and %s", left.TypeName(), right.TypeName())
	}
	switch op {
	case "<":
		return value.Boolean(cmp < 0), nil
	case ">":
		return value.Boolean(cmp > 0), nil
	case "<=":
		return value.Boolean(cmp <= 0), nil
	case ">=":
		return value.Boolean(cmp >= 0), nil
	}
	return nil, diag.NewRuntimeError(e.Pos(), "unknown comparison operator %q", op)
}

// inValues implements §4.3's `in`: substring for string-in-string,
// element membership (by ==) for list-in, key presence for dict-in.
func inValues(left, right value.Value, e *ast.BinaryOp) (value.Value, error) {
	switch rv := right.(type) {
	case *value.Str:
		ls, ok := left.(*value.Str)
		if !ok {
			return nil, diag.NewRuntimeError(e.Pos(), "'in <str>' requires str as left operand, not %s", left.TypeName())
		}
		return value.Boolean(strings.Contains(rv.Val, ls.Val)), nil
	case *value.List:
		for _, item := range rv.Items {
			if value.Equal(left, item) {
				return value.True, nil
			}
		}
		return value.False, nil
	case *value.Dict:
		ls, ok := left.(*value.Str)
		if !ok {
			return nil, diag.NewRuntimeError(e.Pos(), "'in <dict>' requires str as left operand, not %s", left.TypeName())
		}
		_, found := rv.Get(ls.Val)
		return value.Boolean(found), nil
	default:
		return nil, diag.NewRuntimeError(e.Pos(), "argument of type %q is not iterable", right.TypeName())
	}
}
