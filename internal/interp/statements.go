package interp

import (
	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/token"
	"github.com/shantanunp/grizzly/internal/value"
	"github.com/shantanunp/grizzly/pkg/ast"
)

// execBlock executes a sequence of statements in order, stopping and
// propagating the first non-normal execResult (return/break/continue)
// or error.
func (it *Interpreter) execBlock(stmts []ast.Statement, frame *Frame, fn *ast.FunctionDef) (execResult, error) {
	for _, stmt := range stmts {
		result, err := it.execStmt(stmt, frame, fn)
		if err != nil {
			return execResult{}, err
		}
		if !result.isNormal() {
			return result, nil
		}
	}
	return normalResult, nil
}

// execStmt dispatches one Statement node, matching the tagged-variant
// pattern used throughout this package.
func (it *Interpreter) execStmt(stmt ast.Statement, frame *Frame, fn *ast.FunctionDef) (execResult, error) {
	if limErr := it.checkBudget(stmt.Pos()); limErr != nil {
		return execResult{}, limErr
	}

	switch s := stmt.(type) {
	case *ast.Assignment:
		return it.execAssignment(s, frame, fn)

	case *ast.IfStatement:
		return it.execIf(s, frame, fn)

	case *ast.ForLoop:
		return it.execFor(s, frame, fn)

	case *ast.WhileLoop:
		return it.execWhile(s, frame, fn)

	case *ast.ReturnStatement:
		if s.Value == nil {
			return returning(value.NullValue), nil
		}
		v, err := it.evalExpr(s.Value, frame, fn)
		if err != nil {
			return execResult{}, err
		}
		return returning(v), nil

	case *ast.BreakStatement:
		return breakResult, nil

	case *ast.ContinueStatement:
		return continueResult, nil

	case *ast.ExpressionStatement:
		if _, err := it.evalExpr(s.Expr, frame, fn); err != nil {
			return execResult{}, err
		}
		return normalResult, nil

	case *ast.FunctionCallStatement:
		if _, err := it.evalExpr(s.Call, frame, fn); err != nil {
			return execResult{}, err
		}
		return normalResult, nil

	case *ast.ImportStatement:
		// Module imports are resolved once at construction (New); at
		// statement execution time there is nothing left to do.
		return normalResult, nil

	default:
		return execResult{}, diag.NewRuntimeError(stmt.Pos(), "unhandled statement type %T", stmt)
	}
}

func (it *Interpreter) execAssignment(s *ast.Assignment, frame *Frame, fn *ast.FunctionDef) (execResult, error) {
	v, err := it.evalExpr(s.Value, frame, fn)
	if err != nil {
		return execResult{}, err
	}
	if err := it.assignTo(s.Target, v, frame, fn); err != nil {
		return execResult{}, err
	}
	return normalResult, nil
}

// assignTo implements the lvalue rule of §4.2: target is an
// Identifier, AttrAccess, or DictAccess. Assignment targets are not
// access-tracked — tracking covers reads, not writes.
func (it *Interpreter) assignTo(target ast.Expression, v value.Value, frame *Frame, fn *ast.FunctionDef) error {
	switch t := target.(type) {
	case *ast.Identifier:
		frame.Set(t.Name, v)
		return nil

	case *ast.AttrAccess:
		obj, err := it.evalExpr(t.Object, frame, fn)
		if err != nil {
			return err
		}
		dict, ok := obj.(*value.Dict)
		if !ok {
			return diag.NewRuntimeError(t.Pos(), "cannot assign attribute %q on %s", t.Attr, obj.TypeName())
		}
		dict.Set(t.Attr, v)
		return nil

	case *ast.DictAccess:
		obj, err := it.evalExpr(t.Object, frame, fn)
		if err != nil {
			return err
		}
		keyVal, err := it.evalExpr(t.Key, frame, fn)
		if err != nil {
			return err
		}
		switch container := obj.(type) {
		case *value.Dict:
			container.Set(dictKeyOf(keyVal), v)
			return nil
		case *value.List:
			n, ok := keyVal.(*value.Number)
			if !ok || !n.IsInt {
				return diag.NewRuntimeError(t.Pos(), "list index must be an integer")
			}
			idx := int(n.Int)
			if idx < 0 {
				idx += len(container.Items)
			}
			if idx < 0 || idx >= len(container.Items) {
				return diag.NewRuntimeError(t.Pos(), "list assignment index out of range")
			}
			container.Items[idx] = v
			return nil
		default:
			return diag.NewRuntimeError(t.Pos(), "cannot index-assign into %s", obj.TypeName())
		}

	default:
		return diag.NewRuntimeError(target.Pos(), "invalid assignment target")
	}
}

func (it *Interpreter) execIf(s *ast.IfStatement, frame *Frame, fn *ast.FunctionDef) (execResult, error) {
	cond, err := it.evalExpr(s.Cond, frame, fn)
	if err != nil {
		return execResult{}, err
	}
	if cond.Truthy() {
		return it.execBlock(s.Then, frame, fn)
	}
	for i, elifCond := range s.ElifConds {
		v, err := it.evalExpr(elifCond, frame, fn)
		if err != nil {
			return execResult{}, err
		}
		if v.Truthy() {
			return it.execBlock(s.ElifBody[i], frame, fn)
		}
	}
	if s.Else != nil {
		return it.execBlock(s.Else, frame, fn)
	}
	return normalResult, nil
}

func (it *Interpreter) execFor(s *ast.ForLoop, frame *Frame, fn *ast.FunctionDef) (execResult, error) {
	iterable, err := it.evalExpr(s.Iterable, frame, fn)
	if err != nil {
		return execResult{}, err
	}
	items, err := iterate(iterable, s.Pos())
	if err != nil {
		return execResult{}, err
	}
	for _, item := range items {
		if limErr := it.checkBudget(s.Pos()); limErr != nil {
			return execResult{}, limErr
		}
		frame.Set(s.Var, item)
		result, err := it.execBlock(s.Body, frame, fn)
		if err != nil {
			return execResult{}, err
		}
		switch result.sig {
		case signalBreak:
			return normalResult, nil
		case signalReturn:
			return result, nil
		case signalContinue, signalNone:
			continue
		}
	}
	return normalResult, nil
}

func (it *Interpreter) execWhile(s *ast.WhileLoop, frame *Frame, fn *ast.FunctionDef) (execResult, error) {
	for {
		cond, err := it.evalExpr(s.Cond, frame, fn)
		if err != nil {
			return execResult{}, err
		}
		if !cond.Truthy() {
			return normalResult, nil
		}
		if limErr := it.checkBudget(s.Pos()); limErr != nil {
			return execResult{}, limErr
		}
		result, err := it.execBlock(s.Body, frame, fn)
		if err != nil {
			return execResult{}, err
		}
		switch result.sig {
		case signalBreak:
			return normalResult, nil
		case signalReturn:
			return result, nil
		case signalContinue, signalNone:
			continue
		}
	}
}

// iterate produces the sequence of Values a `for` loop (or a builtin
// like sorted/zip/enumerate) walks over: a string, list, or dict
// (keys, matching Python's default dict iteration).
func iterate(v value.Value, pos token.Position) ([]value.Value, error) {
	switch t := v.(type) {
	case *value.List:
		out := make([]value.Value, len(t.Items))
		copy(out, t.Items)
		return out, nil
	case *value.Dict:
		keys := t.Keys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			out[i] = value.NewString(k)
		}
		return out, nil
	case *value.Str:
		runes := []rune(t.Val)
		out := make([]value.Value, len(runes))
		for i, r := range runes {
			out[i] = value.NewString(string(r))
		}
		return out, nil
	default:
		return nil, diag.NewRuntimeError(pos, "%s is not iterable", v.TypeName())
	}
}
