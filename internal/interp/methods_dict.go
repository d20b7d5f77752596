package interp

import (
	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/token"
	"github.com/shantanunp/grizzly/internal/value"
)

// callDictMethod dispatches §4.3's exhaustive dict method list.
func callDictMethod(recv *value.Dict, name string, args []value.Value, pos token.Position) (value.Value, error) {
	switch name {
	case "get":
		if len(args) < 1 || len(args) > 2 {
			return nil, diag.NewRuntimeError(pos, "get() takes 1 or 2 arguments but %d given", len(args))
		}
		key := dictKeyOf(args[0])
		if v, ok := recv.Get(key); ok {
			return v, nil
		}
		if len(args) == 2 {
			return args[1], nil
		}
		return value.NullValue, nil

	case "keys":
		keys := recv.Keys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			out[i] = value.NewString(k)
		}
		return value.NewList(out), nil

	case "values":
		keys := recv.Keys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			v, _ := recv.Get(k)
			out[i] = v
		}
		return value.NewList(out), nil

	case "items":
		keys := recv.Keys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			v, _ := recv.Get(k)
			out[i] = value.NewList([]value.Value{value.NewString(k), v})
		}
		return value.NewList(out), nil

	case "pop":
		if len(args) < 1 || len(args) > 2 {
			return nil, diag.NewRuntimeError(pos, "pop() takes 1 or 2 arguments but %d given", len(args))
		}
		key := dictKeyOf(args[0])
		if v, ok := recv.Get(key); ok {
			recv.Delete(key)
			return v, nil
		}
		if len(args) == 2 {
			return args[1], nil
		}
		return nil, diag.NewRuntimeError(pos, "KeyError: %q", key)

	case "update":
		if len(args) != 1 {
			return nil, argErr(pos, "update", 1, len(args))
		}
		other, ok := args[0].(*value.Dict)
		if !ok {
			return nil, diag.NewRuntimeError(pos, "update() argument must be a dict, not %q", args[0].TypeName())
		}
		for _, k := range other.Keys() {
			v, _ := other.Get(k)
			recv.Set(k, v)
		}
		return value.NullValue, nil

	case "clear":
		for _, k := range recv.Keys() {
			recv.Delete(k)
		}
		return value.NullValue, nil

	case "copy":
		out := value.NewDict()
		for _, k := range recv.Keys() {
			v, _ := recv.Get(k)
			out.Set(k, v)
		}
		return out, nil

	case "setdefault":
		if len(args) < 1 || len(args) > 2 {
			return nil, diag.NewRuntimeError(pos, "setdefault() takes 1 or 2 arguments but %d given", len(args))
		}
		key := dictKeyOf(args[0])
		if v, ok := recv.Get(key); ok {
			return v, nil
		}
		def := value.Value(value.NullValue)
		if len(args) == 2 {
			def = args[1]
		}
		recv.Set(key, def)
		return def, nil

	default:
		return nil, diag.NewRuntimeError(pos, "dict has no method %q", name)
	}
}
