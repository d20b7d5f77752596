package interp

import (
	"github.com/dlclark/regexp2"

	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/token"
	"github.com/shantanunp/grizzly/internal/value"
	"github.com/shantanunp/grizzly/pkg/ast"
)

// callRegexFunction dispatches the `re.*` module namespace (§4.3),
// backed by github.com/dlclark/regexp2 for PCRE-style pattern support
// (lookaround, backreferences) that Go's RE2-based regexp package
// cannot express.
func (it *Interpreter) callRegexFunction(e *ast.FunctionCallExpression, frame *Frame, fn *ast.FunctionDef) (value.Value, error) {
	if !it.re {
		return nil, diag.NewRuntimeError(e.Pos(), "NameError: name %q is not defined (missing `import re`)", e.Name)
	}

	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := it.evalExpr(a, frame, fn)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch e.Name {
	case "re.match":
		return reMatch(args, e.Pos(), true)
	case "re.search":
		return reMatch(args, e.Pos(), false)
	case "re.findall":
		return reFindall(args, e.Pos())
	case "re.sub":
		return reSub(args, e.Pos())
	case "re.split":
		return reSplit(args, e.Pos())
	default:
		return nil, diag.NewRuntimeError(e.Pos(), "NameError: name %q is not defined", e.Name)
	}
}

func compilePattern(v value.Value, pos token.Position) (*regexp2.Regexp, error) {
	pat, ok := v.(*value.Str)
	if !ok {
		return nil, diag.NewRuntimeError(pos, "re pattern must be a str, not %q", v.TypeName())
	}
	re, err := regexp2.Compile(pat.Val, regexp2.None)
	if err != nil {
		return nil, diag.NewRuntimeError(pos, "invalid regex %q: %s", pat.Val, err.Error())
	}
	return re, nil
}

// matchResultDict builds the `{matched, value, start, end, groups}`
// dict §4.3 specifies for match/search.
func matchResultDict(m *regexp2.Match) *value.Dict {
	d := value.NewDict()
	if m == nil {
		d.Set("matched", value.False)
		d.Set("value", value.NullValue)
		d.Set("start", value.Int(-1))
		d.Set("end", value.Int(-1))
		d.Set("groups", value.NewList(nil))
		return d
	}
	groups := m.Groups()
	groupVals := make([]value.Value, len(groups))
	for i, g := range groups {
		if g.Length == 0 && len(g.Captures) == 0 {
			groupVals[i] = value.NullValue
			continue
		}
		groupVals[i] = value.NewString(g.String())
	}
	d.Set("matched", value.True)
	d.Set("value", value.NewString(m.String()))
	d.Set("start", value.Int(int64(m.Index)))
	d.Set("end", value.Int(int64(m.Index+m.Length)))
	d.Set("groups", value.NewList(groupVals))
	return d
}

func reMatch(args []value.Value, pos token.Position, anchoredOnly bool) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr(pos, "re.match", 2, len(args))
	}
	re, err := compilePattern(args[0], pos)
	if err != nil {
		return nil, err
	}
	text, err := reqStr(args[1], pos, "re.match")
	if err != nil {
		return nil, err
	}
	m, err := re.FindStringMatch(text)
	if err != nil {
		return nil, diag.NewRuntimeError(pos, "regex execution failed: %s", err.Error())
	}
	if m == nil {
		return matchResultDict(nil), nil
	}
	if anchoredOnly && m.Index != 0 {
		return matchResultDict(nil), nil
	}
	return matchResultDict(m), nil
}

func reFindall(args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr(pos, "re.findall", 2, len(args))
	}
	re, err := compilePattern(args[0], pos)
	if err != nil {
		return nil, err
	}
	text, err := reqStr(args[1], pos, "re.findall")
	if err != nil {
		return nil, err
	}
	var out []value.Value
	m, err := re.FindStringMatch(text)
	if err != nil {
		return nil, diag.NewRuntimeError(pos, "regex execution failed: %s", err.Error())
	}
	for m != nil {
		out = append(out, value.NewString(m.String()))
		m, err = re.FindNextMatch(m)
		if err != nil {
			return nil, diag.NewRuntimeError(pos, "regex execution failed: %s", err.Error())
		}
	}
	return value.NewList(out), nil
}

func reSub(args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 3 {
		return nil, argErr(pos, "re.sub", 3, len(args))
	}
	re, err := compilePattern(args[0], pos)
	if err != nil {
		return nil, err
	}
	repl, err := reqStr(args[1], pos, "re.sub")
	if err != nil {
		return nil, err
	}
	text, err := reqStr(args[2], pos, "re.sub")
	if err != nil {
		return nil, err
	}
	out, err := re.Replace(text, repl, -1, -1)
	if err != nil {
		return nil, diag.NewRuntimeError(pos, "regex execution failed: %s", err.Error())
	}
	return value.NewString(out), nil
}

func reSplit(args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr(pos, "re.split", 2, len(args))
	}
	re, err := compilePattern(args[0], pos)
	if err != nil {
		return nil, err
	}
	text, err := reqStr(args[1], pos, "re.split")
	if err != nil {
		return nil, err
	}
	var out []value.Value
	last := 0
	m, err := re.FindStringMatch(text)
	if err != nil {
		return nil, diag.NewRuntimeError(pos, "regex execution failed: %s", err.Error())
	}
	for m != nil {
		out = append(out, value.NewString(text[last:m.Index]))
		last = m.Index + m.Length
		m, err = re.FindNextMatch(m)
		if err != nil {
			return nil, diag.NewRuntimeError(pos, "regex execution failed: %s", err.Error())
		}
	}
	out = append(out, value.NewString(text[last:]))
	return value.NewList(out), nil
}
