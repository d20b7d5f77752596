package interp

import (
	"sort"

	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/token"
	"github.com/shantanunp/grizzly/internal/value"
)

// callListMethod dispatches §4.3's exhaustive list method list. All
// mutating methods operate in place, per the mutability contract: a
// shared OUTPUT list observes every mutation made through any holder.
func callListMethod(recv *value.List, name string, args []value.Value, pos token.Position) (value.Value, error) {
	switch name {
	case "append":
		if len(args) != 1 {
			return nil, argErr(pos, "append", 1, len(args))
		}
		recv.Items = append(recv.Items, args[0])
		return value.NullValue, nil

	case "extend":
		if len(args) != 1 {
			return nil, argErr(pos, "extend", 1, len(args))
		}
		other, ok := args[0].(*value.List)
		if !ok {
			return nil, diag.NewRuntimeError(pos, "extend() argument must be a list, not %q", args[0].TypeName())
		}
		recv.Items = append(recv.Items, other.Items...)
		return value.NullValue, nil

	case "insert":
		if len(args) != 2 {
			return nil, argErr(pos, "insert", 2, len(args))
		}
		n, ok := args[0].(*value.Number)
		if !ok {
			return nil, diag.NewRuntimeError(pos, "insert() index must be an integer")
		}
		idx := clampInsertIndex(int(n.AsFloat()), len(recv.Items))
		recv.Items = append(recv.Items, nil)
		copy(recv.Items[idx+1:], recv.Items[idx:])
		recv.Items[idx] = args[1]
		return value.NullValue, nil

	case "remove":
		if len(args) != 1 {
			return nil, argErr(pos, "remove", 1, len(args))
		}
		for i, item := range recv.Items {
			if value.Equal(item, args[0]) {
				recv.Items = append(recv.Items[:i], recv.Items[i+1:]...)
				return value.NullValue, nil
			}
		}
		return nil, diag.NewRuntimeError(pos, "list.remove(x): x not in list")

	case "pop":
		idx := len(recv.Items) - 1
		if len(args) == 1 {
			n, ok := args[0].(*value.Number)
			if !ok {
				return nil, diag.NewRuntimeError(pos, "pop() index must be an integer")
			}
			idx = int(n.AsFloat())
			if idx < 0 {
				idx += len(recv.Items)
			}
		}
		if idx < 0 || idx >= len(recv.Items) {
			return nil, diag.NewRuntimeError(pos, "pop index out of range")
		}
		v := recv.Items[idx]
		recv.Items = append(recv.Items[:idx], recv.Items[idx+1:]...)
		return v, nil

	case "clear":
		recv.Items = nil
		return value.NullValue, nil

	case "copy":
		out := make([]value.Value, len(recv.Items))
		copy(out, recv.Items)
		return value.NewList(out), nil

	case "sort":
		reverse := false
		if len(args) == 1 {
			reverse = args[0].Truthy()
		}
		var sortErr error
		sort.SliceStable(recv.Items, func(i, j int) bool {
			cmp, ok := value.Compare(recv.Items[i], recv.Items[j])
			if !ok {
				sortErr = diag.NewRuntimeError(pos, "cannot compare %s and %s", recv.Items[i].TypeName(), recv.Items[j].TypeName())
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
		return value.NullValue, nil

	case "index":
		if len(args) < 1 || len(args) > 3 {
			return nil, diag.NewRuntimeError(pos, "index() takes 1 to 3 arguments but %d given", len(args))
		}
		start, end := 0, len(recv.Items)
		if len(args) > 1 {
			if n, ok := args[1].(*value.Number); ok {
				start = int(n.AsFloat())
			}
		}
		if len(args) > 2 {
			if n, ok := args[2].(*value.Number); ok {
				end = int(n.AsFloat())
			}
		}
		if start < 0 {
			start = 0
		}
		if end > len(recv.Items) {
			end = len(recv.Items)
		}
		for i := start; i < end; i++ {
			if value.Equal(recv.Items[i], args[0]) {
				return value.Int(int64(i)), nil
			}
		}
		return nil, diag.NewRuntimeError(pos, "%s is not in list", args[0].String())

	case "count":
		if len(args) != 1 {
			return nil, argErr(pos, "count", 1, len(args))
		}
		n := 0
		for _, item := range recv.Items {
			if value.Equal(item, args[0]) {
				n++
			}
		}
		return value.Int(int64(n)), nil

	case "reverse":
		for i, j := 0, len(recv.Items)-1; i < j; i, j = i+1, j-1 {
			recv.Items[i], recv.Items[j] = recv.Items[j], recv.Items[i]
		}
		return value.NullValue, nil

	default:
		return nil, diag.NewRuntimeError(pos, "list has no method %q", name)
	}
}

func clampInsertIndex(idx, n int) int {
	if idx < 0 {
		idx += n
	}
	if idx < 0 {
		return 0
	}
	if idx > n {
		return n
	}
	return idx
}
