package interp

import (
	"strings"

	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/value"
	"github.com/shantanunp/grizzly/pkg/ast"
)

// evalExpr dispatches one Expression node.
func (it *Interpreter) evalExpr(expr ast.Expression, frame *Frame, fn *ast.FunctionDef) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return it.lookupName(e.Name, frame, e.Pos())

	case *ast.StringLiteral:
		return value.NewString(e.Value), nil

	case *ast.NumberLiteral:
		if e.IsInt {
			return value.Int(e.Int), nil
		}
		return value.Float(e.Double), nil

	case *ast.BooleanLiteral:
		return value.Boolean(e.Value), nil

	case *ast.NullLiteral:
		return value.NullValue, nil

	case *ast.ListLiteral:
		items := make([]value.Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := it.evalExpr(el, frame, fn)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return value.NewList(items), nil

	case *ast.DictLiteral:
		d := value.NewDict()
		for _, entry := range e.Entries {
			kv, err := it.evalExpr(entry.Key, frame, fn)
			if err != nil {
				return nil, err
			}
			vv, err := it.evalExpr(entry.Value, frame, fn)
			if err != nil {
				return nil, err
			}
			d.Set(dictKeyOf(kv), vv)
		}
		return d, nil

	case *ast.BinaryOp:
		return it.evalBinaryOp(e, frame, fn)

	case *ast.UnaryOp:
		return it.evalUnaryOp(e, frame, fn)

	case *ast.AttrAccess, *ast.DictAccess:
		res, err := it.evalAccessChain(expr, frame, fn)
		if err != nil {
			return nil, err
		}
		return res.val, nil

	case *ast.MethodCall:
		return it.evalMethodCall(e, frame, fn)

	case *ast.FunctionCallExpression:
		return it.evalFunctionCall(e, frame, fn)

	default:
		return nil, diag.NewRuntimeError(expr.Pos(), "unhandled expression type %T", expr)
	}
}

func (it *Interpreter) evalMethodCall(e *ast.MethodCall, frame *Frame, fn *ast.FunctionDef) (value.Value, error) {
	objRes, err := it.evalAccessChain(e.Object, frame, fn)
	if err != nil {
		return nil, err
	}
	if objRes.shortCircuited {
		return value.NullValue, nil
	}
	if value.IsNull(objRes.val) {
		if it.cfg.NullHandling == Strict {
			return nil, diag.NewRuntimeError(e.Pos(), "cannot call method %q on null", e.Name)
		}
		return value.NullValue, nil
	}

	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := it.evalExpr(a, frame, fn)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch recv := objRes.val.(type) {
	case *value.Str:
		return callStringMethod(recv, e.Name, args, e.Pos())
	case *value.List:
		return callListMethod(recv, e.Name, args, e.Pos())
	case *value.Dict:
		return callDictMethod(recv, e.Name, args, e.Pos())
	default:
		return nil, diag.NewRuntimeError(e.Pos(), "%s has no method %q", recv.TypeName(), e.Name)
	}
}

func (it *Interpreter) evalFunctionCall(e *ast.FunctionCallExpression, frame *Frame, fn *ast.FunctionDef) (value.Value, error) {
	if strings.HasPrefix(e.Name, "re.") {
		return it.callRegexFunction(e, frame, fn)
	}
	if builtin, ok := builtinFuncs[e.Name]; ok {
		args := make([]value.Value, len(e.Args))
		for i, a := range e.Args {
			v, err := it.evalExpr(a, frame, fn)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return builtin(it, args, e.Pos())
	}

	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := it.evalExpr(a, frame, fn)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return it.callFunctionByName(e.Name, args, e.Pos())
}
