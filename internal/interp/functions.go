package interp

import (
	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/token"
	"github.com/shantanunp/grizzly/internal/value"
	"github.com/shantanunp/grizzly/pkg/ast"
)

// lookupName resolves an identifier per §3's Environments rule: frame,
// then module namespace (user-defined functions aren't first-class
// values here, so only the frame and a literal `None`/`True`/`False`
// would land here — those are parsed as literals, not identifiers),
// then built-ins are handled separately by the call-expression path.
// A bare identifier that resolves to neither is a NameError.
func (it *Interpreter) lookupName(name string, frame *Frame, pos token.Position) (value.Value, error) {
	if v, ok := frame.Get(name); ok {
		return v, nil
	}
	return nil, diag.NewRuntimeError(pos, "NameError: name %q is not defined", name)
}

// callUserFunction invokes fn with args bound positionally into a
// fresh flat Frame (§4.3 Function calls), enforcing the recursion
// depth cap and returning the value of its ReturnStatement, or
// NullValue if the body falls off the end without one.
func (it *Interpreter) callUserFunction(fn *ast.FunctionDef, args []value.Value, pos token.Position) (value.Value, error) {
	it.callDepth++
	defer func() { it.callDepth-- }()

	limit := it.cfg.RecursionLimit
	if limit <= 0 {
		limit = 256
	}
	if it.callDepth > limit {
		return nil, &diag.LimitError{Kind: diag.LimitRecursion, Value: int64(it.callDepth), Pos: pos}
	}

	if len(args) != len(fn.Params) {
		return nil, diag.NewRuntimeError(pos, "%s() takes %d argument(s) but %d given", fn.Name, len(fn.Params), len(args))
	}

	frame := NewFrame()
	for i, p := range fn.Params {
		frame.Set(p, args[i])
	}

	result, err := it.execBlock(fn.Body, frame, fn)
	if err != nil {
		return nil, err
	}
	switch result.sig {
	case signalReturn:
		return result.value, nil
	case signalBreak:
		return nil, diag.NewRuntimeError(pos, "'break' outside loop")
	case signalContinue:
		return nil, diag.NewRuntimeError(pos, "'continue' outside loop")
	}
	return value.NullValue, nil
}

// callFunctionByName resolves a call target that isn't a built-in
// (checked by the caller first) against the module's user-defined
// functions.
func (it *Interpreter) callFunctionByName(name string, args []value.Value, pos token.Position) (value.Value, error) {
	fn := it.program.FunctionByName(name)
	if fn == nil {
		return nil, diag.NewRuntimeError(pos, "NameError: name %q is not defined", name)
	}
	return it.callUserFunction(fn, args, pos)
}
