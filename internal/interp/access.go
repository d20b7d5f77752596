package interp

import (
	"strconv"

	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/token"
	"github.com/shantanunp/grizzly/internal/tracker"
	"github.com/shantanunp/grizzly/internal/value"
	"github.com/shantanunp/grizzly/pkg/ast"
)

// accessResult is what evaluating one link of a chained access
// produces: the value seen so far, whether an upstream break already
// short-circuited the rest of the chain, the name of this link's segment (for the next
// link to cite if it turns out this value was null), and the full
// textual path accumulated so far.
type accessResult struct {
	val            value.Value
	shortCircuited bool
	segment        string
	path           string
}

// evalAccessChain evaluates an expression that may be part of a
// chained `.`/`?.`/`[`/`?[` access, implementing the null-handling
// modes and access tracking of §4.3/§4.5.
//
// The rule that makes this tractable: a "break" (PATH_BROKEN,
// EXPECTED_NULL, KEY_NOT_FOUND, INDEX_OUT_OF_BOUNDS) is the only
// thing that sets shortCircuited. A successful retrieval of a null
// value (VALUE_NULL) is not itself a break — it lets the *next* link
// in the chain discover the null and record the break against the
// segment that held it, which is what makes scenario 3/4 in §8 record
// exactly one EXPECTED_NULL/PATH_BROKEN rather than one per
// subsequent segment.
func (it *Interpreter) evalAccessChain(expr ast.Expression, frame *Frame, fn *ast.FunctionDef) (accessResult, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		v, err := it.lookupName(e.Name, frame, e.Pos())
		if err != nil {
			return accessResult{}, err
		}
		return accessResult{val: v, segment: e.Name, path: e.Name}, nil

	case *ast.AttrAccess:
		obj, err := it.evalAccessChain(e.Object, frame, fn)
		if err != nil {
			return accessResult{}, err
		}
		path := obj.path + "." + e.Attr
		if obj.shortCircuited {
			return accessResult{val: value.NullValue, shortCircuited: true, segment: e.Attr, path: path}, nil
		}
		if value.IsNull(obj.val) {
			return it.recordBreak(e.Safe, obj.segment, path, e.Pos())
		}
		dict, ok := obj.val.(*value.Dict)
		if !ok {
			return accessResult{}, diag.NewRuntimeError(e.Pos(), "cannot access attribute %q of %s", e.Attr, obj.val.TypeName())
		}
		v, found := dict.Get(e.Attr)
		if !found {
			return it.recordMissing(tracker.KeyNotFound, e.Attr, path, e.Pos())
		}
		it.recordResolved(path, v, e.Pos())
		return accessResult{val: v, segment: e.Attr, path: path}, nil

	case *ast.DictAccess:
		obj, err := it.evalAccessChain(e.Object, frame, fn)
		if err != nil {
			return accessResult{}, err
		}
		keyVal, err := it.evalExpr(e.Key, frame, fn)
		if err != nil {
			return accessResult{}, err
		}
		segName := keySegmentName(keyVal)
		path := obj.path + "[" + segName + "]"
		if obj.shortCircuited {
			return accessResult{val: value.NullValue, shortCircuited: true, segment: segName, path: path}, nil
		}
		if value.IsNull(obj.val) {
			return it.recordBreak(e.Safe, obj.segment, path, e.Pos())
		}
		switch container := obj.val.(type) {
		case *value.Dict:
			key := dictKeyOf(keyVal)
			v, found := container.Get(key)
			if !found {
				return it.recordMissing(tracker.KeyNotFound, key, path, e.Pos())
			}
			it.recordResolved(path, v, e.Pos())
			return accessResult{val: v, segment: key, path: path}, nil
		case *value.List:
			n, ok := keyVal.(*value.Number)
			if !ok || !n.IsInt {
				return accessResult{}, diag.NewRuntimeError(e.Pos(), "list index must be an integer")
			}
			idx := int(n.Int)
			if idx < 0 {
				idx += len(container.Items)
			}
			if idx < 0 || idx >= len(container.Items) {
				return it.recordMissing(tracker.IndexOutOfBounds, segName, path, e.Pos())
			}
			v := container.Items[idx]
			it.recordResolved(path, v, e.Pos())
			return accessResult{val: v, segment: segName, path: path}, nil
		default:
			return accessResult{}, diag.NewRuntimeError(e.Pos(), "cannot index into %s", obj.val.TypeName())
		}

	default:
		// Any other expression kind is not itself part of a tracked
		// chain (e.g. a method call or a literal used as the base of
		// a further access); evaluate it normally and let the caller
		// treat its result as an opaque, unsegmented base value.
		v, err := it.evalExpr(expr, frame, fn)
		if err != nil {
			return accessResult{}, err
		}
		return accessResult{val: v, path: expr.String()}, nil
	}
}

// recordBreak handles "an operator was applied to a value that is
// already null": it never raises in SAFE/SILENT (yields NullValue and
// records PATH_BROKEN/EXPECTED_NULL), and raises a RuntimeError in
// STRICT unless the operator itself was safe-nav.
func (it *Interpreter) recordBreak(safe bool, brokenSegment, path string, pos token.Position) (accessResult, error) {
	status := tracker.PathBroken
	if safe {
		status = tracker.ExpectedNull
	}
	if status == tracker.PathBroken && it.cfg.NullHandling == Strict {
		return accessResult{}, diag.NewRuntimeError(pos, "cannot access %q: value is null", path).WithPath(path)
	}
	it.tracker.Record(tracker.NewAccessRecord(path, status, brokenSegment, value.NullValue, pos.Line, safe))
	return accessResult{val: value.NullValue, shortCircuited: true, segment: brokenSegment, path: path}, nil
}

// recordMissing handles a dict key or list index that was not found:
// STRICT raises, SAFE/SILENT record and yield NullValue.
func (it *Interpreter) recordMissing(status tracker.Status, brokenSegment, path string, pos token.Position) (accessResult, error) {
	if it.cfg.NullHandling == Strict {
		return accessResult{}, diag.NewRuntimeError(pos, "%s: %q", missingMessage(status), path).WithPath(path)
	}
	it.tracker.Record(tracker.NewAccessRecord(path, status, brokenSegment, value.NullValue, pos.Line, false))
	return accessResult{val: value.NullValue, shortCircuited: true, segment: brokenSegment, path: path}, nil
}

func missingMessage(status tracker.Status) string {
	if status == tracker.IndexOutOfBounds {
		return "index out of bounds"
	}
	return "key not found"
}

// recordResolved records a successful access (the value may itself
// still be null or empty) and never raises.
func (it *Interpreter) recordResolved(path string, v value.Value, pos token.Position) {
	status := tracker.Success
	switch {
	case value.IsNull(v):
		status = tracker.ValueNull
	case value.Empty(v):
		status = tracker.ValueEmpty
	}
	it.tracker.Record(tracker.NewAccessRecord(path, status, "", v, pos.Line, false))
}

// dictKeyOf stringifies a value used as a dict key, per §4.3's "Dict
// lookup by non-string key first stringifies numeric keys."
func dictKeyOf(v value.Value) string {
	switch t := v.(type) {
	case *value.Str:
		return t.Val
	case *value.Number:
		return t.String()
	case *value.Bool:
		return t.String()
	default:
		return v.String()
	}
}

func keySegmentName(v value.Value) string {
	if s, ok := v.(*value.Str); ok {
		return strconv.Quote(s.Val)
	}
	return v.String()
}
