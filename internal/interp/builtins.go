package interp

import (
	"math"
	"sort"
	"strconv"

	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/token"
	"github.com/shantanunp/grizzly/internal/value"
)

// builtinFunc is the shape of every entry in builtinFuncs. it is
// passed through (rather than closed over) so builtins needing
// interpreter state — none currently do, but e.g. a future `eval`-like
// extension would — have it available without changing the table.
type builtinFunc func(it *Interpreter, args []value.Value, pos token.Position) (value.Value, error)

// builtinFuncs is the exhaustive §4.3 built-in function table. Unknown
// names fall through to callFunctionByName, which raises NameError.
var builtinFuncs = map[string]builtinFunc{
	"len":        biLen,
	"str":        biStr,
	"int":        biInt,
	"float":      biFloat,
	"bool":       biBool,
	"range":      biRange,
	"enumerate":  biEnumerate,
	"zip":        biZip,
	"sorted":     biSorted,
	"reversed":   biReversed,
	"any":        biAny,
	"all":        biAll,
	"list":       biList,
	"dict":       biDict,
	"type":       biType,
	"isinstance": biIsinstance,
	"hasattr":    biHasattr,
	"getattr":    biGetattr,
	"print":      biPrint,
	"min":        biMin,
	"max":        biMax,
	"sum":        biSum,
	"abs":        biAbs,
	"round":      biRound,
}

func argErr(pos token.Position, name string, want int, got int) error {
	return diag.NewRuntimeError(pos, "%s() takes %d argument(s) but %d given", name, want, got)
}

func biLen(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr(pos, "len", 1, len(args))
	}
	switch v := args[0].(type) {
	case *value.Str:
		return value.Int(int64(len([]rune(v.Val)))), nil
	case *value.List:
		return value.Int(int64(len(v.Items))), nil
	case *value.Dict:
		return value.Int(int64(v.Len())), nil
	default:
		return nil, diag.NewRuntimeError(pos, "object of type %q has no len()", v.TypeName())
	}
}

func biStr(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr(pos, "str", 1, len(args))
	}
	return value.NewString(args[0].String()), nil
}

func biInt(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr(pos, "int", 1, len(args))
	}
	switch v := args[0].(type) {
	case *value.Number:
		return value.Int(int64(v.AsFloat())), nil
	case *value.Str:
		n, err := strconv.ParseFloat(v.Val, 64)
		if err != nil {
			return nil, diag.NewRuntimeError(pos, "invalid literal for int(): %q", v.Val)
		}
		return value.Int(int64(n)), nil
	case *value.Bool:
		if v.Val {
			return value.Int(1), nil
		}
		return value.Int(0), nil
	default:
		return nil, diag.NewRuntimeError(pos, "int() argument must be a string or a number, not %q", v.TypeName())
	}
}

func biFloat(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr(pos, "float", 1, len(args))
	}
	switch v := args[0].(type) {
	case *value.Number:
		return value.Float(v.AsFloat()), nil
	case *value.Str:
		n, err := strconv.ParseFloat(v.Val, 64)
		if err != nil {
			return nil, diag.NewRuntimeError(pos, "could not convert string to float: %q", v.Val)
		}
		return value.Float(n), nil
	case *value.Bool:
		if v.Val {
			return value.Float(1), nil
		}
		return value.Float(0), nil
	default:
		return nil, diag.NewRuntimeError(pos, "float() argument must be a string or a number, not %q", v.TypeName())
	}
}

func biBool(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr(pos, "bool", 1, len(args))
	}
	return value.Boolean(args[0].Truthy()), nil
}

func biRange(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	var start, stop, step int64 = 0, 0, 1
	asInt := func(v value.Value) (int64, error) {
		n, ok := v.(*value.Number)
		if !ok {
			return 0, diag.NewRuntimeError(pos, "range() arguments must be integers")
		}
		return int64(n.AsFloat()), nil
	}
	switch len(args) {
	case 1:
		s, err := asInt(args[0])
		if err != nil {
			return nil, err
		}
		stop = s
	case 2:
		a, err := asInt(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asInt(args[1])
		if err != nil {
			return nil, err
		}
		start, stop = a, b
	case 3:
		a, err := asInt(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asInt(args[1])
		if err != nil {
			return nil, err
		}
		c, err := asInt(args[2])
		if err != nil {
			return nil, err
		}
		start, stop, step = a, b, c
	default:
		return nil, diag.NewRuntimeError(pos, "range() takes 1 to 3 arguments but %d given", len(args))
	}
	if step == 0 {
		return nil, diag.NewRuntimeError(pos, "range() arg 3 must not be zero")
	}
	var out []value.Value
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, value.Int(i))
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, value.Int(i))
		}
	}
	return value.NewList(out), nil
}

func biEnumerate(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, diag.NewRuntimeError(pos, "enumerate() takes 1 or 2 arguments but %d given", len(args))
	}
	items, err := iterate(args[0], pos)
	if err != nil {
		return nil, err
	}
	start := int64(0)
	if len(args) == 2 {
		n, ok := args[1].(*value.Number)
		if !ok {
			return nil, diag.NewRuntimeError(pos, "enumerate() start must be an integer")
		}
		start = int64(n.AsFloat())
	}
	out := make([]value.Value, len(items))
	for i, item := range items {
		out[i] = value.NewList([]value.Value{value.Int(start + int64(i)), item})
	}
	return value.NewList(out), nil
}

func biZip(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) == 0 {
		return value.NewList(nil), nil
	}
	seqs := make([][]value.Value, len(args))
	shortest := -1
	for i, a := range args {
		items, err := iterate(a, pos)
		if err != nil {
			return nil, err
		}
		seqs[i] = items
		if shortest == -1 || len(items) < shortest {
			shortest = len(items)
		}
	}
	out := make([]value.Value, shortest)
	for i := 0; i < shortest; i++ {
		tuple := make([]value.Value, len(seqs))
		for j := range seqs {
			tuple[j] = seqs[j][i]
		}
		out[i] = value.NewList(tuple)
	}
	return value.NewList(out), nil
}

func biSorted(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, diag.NewRuntimeError(pos, "sorted() takes 1 or 2 arguments but %d given", len(args))
	}
	items, err := iterate(args[0], pos)
	if err != nil {
		return nil, err
	}
	reverse := false
	if len(args) == 2 {
		reverse = args[1].Truthy()
	}
	out := make([]value.Value, len(items))
	copy(out, items)
	var sortErr error
	sort.SliceStable(out, func(i, j int) bool {
		cmp, ok := value.Compare(out[i], out[j])
		if !ok {
			sortErr = diag.NewRuntimeError(pos, "cannot compare %s and %s", out[i].TypeName(), out[j].TypeName())
			return false
		}
		if reverse {
			return cmp > 0
		}
		return cmp < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return value.NewList(out), nil
}

func biReversed(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr(pos, "reversed", 1, len(args))
	}
	items, err := iterate(args[0], pos)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, len(items))
	for i, v := range items {
		out[len(items)-1-i] = v
	}
	return value.NewList(out), nil
}

func biAny(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr(pos, "any", 1, len(args))
	}
	items, err := iterate(args[0], pos)
	if err != nil {
		return nil, err
	}
	for _, v := range items {
		if v.Truthy() {
			return value.True, nil
		}
	}
	return value.False, nil
}

func biAll(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr(pos, "all", 1, len(args))
	}
	items, err := iterate(args[0], pos)
	if err != nil {
		return nil, err
	}
	for _, v := range items {
		if !v.Truthy() {
			return value.False, nil
		}
	}
	return value.True, nil
}

func biList(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) == 0 {
		return value.NewList(nil), nil
	}
	if len(args) != 1 {
		return nil, argErr(pos, "list", 1, len(args))
	}
	items, err := iterate(args[0], pos)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, len(items))
	copy(out, items)
	return value.NewList(out), nil
}

func biDict(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) == 0 {
		return value.NewDict(), nil
	}
	if len(args) != 1 {
		return nil, argErr(pos, "dict", 1, len(args))
	}
	src, ok := args[0].(*value.Dict)
	if !ok {
		return nil, diag.NewRuntimeError(pos, "dict() argument must be a dict, not %q", args[0].TypeName())
	}
	out := value.NewDict()
	for _, k := range src.Keys() {
		v, _ := src.Get(k)
		out.Set(k, v)
	}
	return out, nil
}

func biType(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr(pos, "type", 1, len(args))
	}
	return value.NewString(args[0].TypeName()), nil
}

func biIsinstance(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr(pos, "isinstance", 2, len(args))
	}
	name, ok := args[1].(*value.Str)
	if !ok {
		return nil, diag.NewRuntimeError(pos, "isinstance() arg 2 must be a type-name string")
	}
	return value.Boolean(args[0].TypeName() == name.Val), nil
}

func biHasattr(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 2 {
		return nil, argErr(pos, "hasattr", 2, len(args))
	}
	d, ok := args[0].(*value.Dict)
	if !ok {
		return value.False, nil
	}
	name, ok := args[1].(*value.Str)
	if !ok {
		return nil, diag.NewRuntimeError(pos, "hasattr() arg 2 must be a string")
	}
	_, found := d.Get(name.Val)
	return value.Boolean(found), nil
}

func biGetattr(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, diag.NewRuntimeError(pos, "getattr() takes 2 or 3 arguments but %d given", len(args))
	}
	d, ok := args[0].(*value.Dict)
	if !ok {
		return nil, diag.NewRuntimeError(pos, "getattr() arg 1 must be a dict, not %q", args[0].TypeName())
	}
	name, ok := args[1].(*value.Str)
	if !ok {
		return nil, diag.NewRuntimeError(pos, "getattr() arg 2 must be a string")
	}
	if v, found := d.Get(name.Val); found {
		return v, nil
	}
	if len(args) == 3 {
		return args[2], nil
	}
	return nil, diag.NewRuntimeError(pos, "AttributeError: %q", name.Val)
}

// biPrint is a no-op: script code has no console; printing exists only
// so templates ported from elsewhere still parse and run.
func biPrint(_ *Interpreter, _ []value.Value, _ token.Position) (value.Value, error) {
	return value.NullValue, nil
}

func biMin(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	return extremum(args, pos, "min", -1)
}

func biMax(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	return extremum(args, pos, "max", 1)
}

func extremum(args []value.Value, pos token.Position, name string, want int) (value.Value, error) {
	var items []value.Value
	if len(args) == 1 {
		vals, err := iterate(args[0], pos)
		if err != nil {
			return nil, err
		}
		items = vals
	} else {
		items = args
	}
	if len(items) == 0 {
		return nil, diag.NewRuntimeError(pos, "%s() arg is an empty sequence", name)
	}
	best := items[0]
	for _, v := range items[1:] {
		cmp, ok := value.Compare(v, best)
		if !ok {
			return nil, diag.NewRuntimeError(pos, "cannot compare %s and %s", v.TypeName(), best.TypeName())
		}
		if cmp == want {
			best = v
		}
	}
	return best, nil
}

func biSum(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, diag.NewRuntimeError(pos, "sum() takes 1 or 2 arguments but %d given", len(args))
	}
	items, err := iterate(args[0], pos)
	if err != nil {
		return nil, err
	}
	isInt := true
	var fsum float64
	var isum int64
	if len(args) == 2 {
		n, ok := args[1].(*value.Number)
		if !ok {
			return nil, diag.NewRuntimeError(pos, "sum() start must be a number")
		}
		isInt = n.IsInt
		isum = n.Int
		fsum = n.AsFloat()
	}
	for _, v := range items {
		n, ok := v.(*value.Number)
		if !ok {
			return nil, diag.NewRuntimeError(pos, "unsupported operand type for sum(): %q", v.TypeName())
		}
		isInt = isInt && n.IsInt
		isum += n.Int
		fsum += n.AsFloat()
	}
	if isInt {
		return value.Int(isum), nil
	}
	return value.Float(fsum), nil
}

func biAbs(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 1 {
		return nil, argErr(pos, "abs", 1, len(args))
	}
	n, ok := args[0].(*value.Number)
	if !ok {
		return nil, diag.NewRuntimeError(pos, "bad operand type for abs(): %q", args[0].TypeName())
	}
	if n.IsInt {
		if n.Int < 0 {
			return value.Int(-n.Int), nil
		}
		return n, nil
	}
	return value.Float(math.Abs(n.Float)), nil
}

func biRound(_ *Interpreter, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, diag.NewRuntimeError(pos, "round() takes 1 or 2 arguments but %d given", len(args))
	}
	n, ok := args[0].(*value.Number)
	if !ok {
		return nil, diag.NewRuntimeError(pos, "bad operand type for round(): %q", args[0].TypeName())
	}
	ndigits := 0
	hasDigits := false
	if len(args) == 2 {
		d, ok := args[1].(*value.Number)
		if !ok {
			return nil, diag.NewRuntimeError(pos, "round() second argument must be an integer")
		}
		ndigits = int(d.AsFloat())
		hasDigits = true
	}
	mult := math.Pow(10, float64(ndigits))
	rounded := math.Round(n.AsFloat()*mult) / mult
	if !hasDigits {
		return value.Int(int64(rounded)), nil
	}
	return value.Float(rounded), nil
}
