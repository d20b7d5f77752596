package interp

import (
	"strings"

	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/token"
	"github.com/shantanunp/grizzly/internal/value"
)

// callStringMethod dispatches §4.3's exhaustive string method list.
func callStringMethod(recv *value.Str, name string, args []value.Value, pos token.Position) (value.Value, error) {
	s := recv.Val
	switch name {
	case "upper":
		return value.NewString(strings.ToUpper(s)), nil
	case "lower":
		return value.NewString(strings.ToLower(s)), nil
	case "strip":
		return value.NewString(strings.TrimSpace(s)), nil
	case "lstrip":
		return value.NewString(strings.TrimLeft(s, " \t\n\r\v\f")), nil
	case "rstrip":
		return value.NewString(strings.TrimRight(s, " \t\n\r\v\f")), nil
	case "replace":
		if len(args) < 2 || len(args) > 3 {
			return nil, argErr(pos, "replace", 2, len(args))
		}
		old, err := reqStr(args[0], pos, "replace")
		if err != nil {
			return nil, err
		}
		newS, err := reqStr(args[1], pos, "replace")
		if err != nil {
			return nil, err
		}
		n := -1
		if len(args) == 3 {
			cnt, ok := args[2].(*value.Number)
			if !ok {
				return nil, diag.NewRuntimeError(pos, "replace() count must be an integer")
			}
			n = int(cnt.AsFloat())
		}
		return value.NewString(strings.Replace(s, old, newS, n)), nil
	case "split":
		sep := ""
		if len(args) >= 1 {
			sv, err := reqStr(args[0], pos, "split")
			if err != nil {
				return nil, err
			}
			sep = sv
		}
		var parts []string
		if sep == "" {
			parts = strings.Fields(s)
		} else {
			parts = strings.Split(s, sep)
		}
		out := make([]value.Value, len(parts))
		for i, p := range parts {
			out[i] = value.NewString(p)
		}
		return value.NewList(out), nil
	case "splitlines":
		parts := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
		if len(parts) > 0 && parts[len(parts)-1] == "" && strings.HasSuffix(s, "\n") {
			parts = parts[:len(parts)-1]
		}
		out := make([]value.Value, len(parts))
		for i, p := range parts {
			out[i] = value.NewString(p)
		}
		return value.NewList(out), nil
	case "startswith":
		return strPrefixSuffix(s, args, pos, "startswith", strings.HasPrefix)
	case "endswith":
		return strPrefixSuffix(s, args, pos, "endswith", strings.HasSuffix)
	case "find":
		sub, err := reqStr(arg0(args), pos, "find")
		if err != nil {
			return nil, err
		}
		start := 0
		if len(args) > 1 {
			n, _ := args[1].(*value.Number)
			if n != nil {
				start = int(n.AsFloat())
			}
		}
		if start < 0 || start > len(s) {
			start = 0
		}
		idx := strings.Index(s[start:], sub)
		if idx < 0 {
			return value.Int(-1), nil
		}
		return value.Int(int64(start + idx)), nil
	case "rfind":
		sub, err := reqStr(arg0(args), pos, "rfind")
		if err != nil {
			return nil, err
		}
		return value.Int(int64(strings.LastIndex(s, sub))), nil
	case "index":
		sub, err := reqStr(arg0(args), pos, "index")
		if err != nil {
			return nil, err
		}
		idx := strings.Index(s, sub)
		if idx < 0 {
			return nil, diag.NewRuntimeError(pos, "substring not found: %q", sub)
		}
		return value.Int(int64(idx)), nil
	case "capitalize":
		if s == "" {
			return value.NewString(s), nil
		}
		return value.NewString(strings.ToUpper(s[:1]) + strings.ToLower(s[1:])), nil
	case "title":
		return value.NewString(strings.Title(strings.ToLower(s))), nil
	case "swapcase":
		var sb strings.Builder
		for _, r := range s {
			switch {
			case 'a' <= r && r <= 'z':
				sb.WriteRune(r - 32)
			case 'A' <= r && r <= 'Z':
				sb.WriteRune(r + 32)
			default:
				sb.WriteRune(r)
			}
		}
		return value.NewString(sb.String()), nil
	case "islower":
		return value.Boolean(s != "" && s == strings.ToLower(s) && s != strings.ToUpper(s)), nil
	case "isupper":
		return value.Boolean(s != "" && s == strings.ToUpper(s) && s != strings.ToLower(s)), nil
	case "isnumeric":
		if s == "" {
			return value.False, nil
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return value.False, nil
			}
		}
		return value.True, nil
	case "ljust":
		return strJust(s, args, pos, "ljust", true)
	case "rjust":
		return strJust(s, args, pos, "rjust", false)
	case "center":
		return strCenter(s, args, pos)
	case "join":
		if len(args) != 1 {
			return nil, argErr(pos, "join", 1, len(args))
		}
		list, ok := args[0].(*value.List)
		if !ok {
			return nil, diag.NewRuntimeError(pos, "join() argument must be a list, not %q", args[0].TypeName())
		}
		parts := make([]string, len(list.Items))
		for i, item := range list.Items {
			sv, ok := item.(*value.Str)
			if !ok {
				return nil, diag.NewRuntimeError(pos, "sequence item %d: expected str, got %q", i, item.TypeName())
			}
			parts[i] = sv.Val
		}
		return value.NewString(strings.Join(parts, s)), nil
	case "format":
		return value.NewString(formatString(s, args)), nil
	default:
		return nil, diag.NewRuntimeError(pos, "str has no method %q", name)
	}
}

func arg0(args []value.Value) value.Value {
	if len(args) == 0 {
		return value.NullValue
	}
	return args[0]
}

func reqStr(v value.Value, pos token.Position, method string) (string, error) {
	s, ok := v.(*value.Str)
	if !ok {
		return "", diag.NewRuntimeError(pos, "%s() argument must be a str, not %q", method, v.TypeName())
	}
	return s.Val, nil
}

func strPrefixSuffix(s string, args []value.Value, pos token.Position, name string, f func(s, prefix string) bool) (value.Value, error) {
	sub, err := reqStr(arg0(args), pos, name)
	if err != nil {
		return nil, err
	}
	start := 0
	end := len(s)
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
	if end > len(s) {
		end = len(s)
	}
	if start > end {
		return value.False, nil
	}
	return value.Boolean(f(s[start:end], sub)), nil
}

func strJust(s string, args []value.Value, pos token.Position, name string, left bool) (value.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, diag.NewRuntimeError(pos, "%s() takes 1 or 2 arguments but %d given", name, len(args))
	}
	n, ok := args[0].(*value.Number)
	if !ok {
		return nil, diag.NewRuntimeError(pos, "%s() width must be an integer", name)
	}
	width := int(n.AsFloat())
	fill := " "
	if len(args) == 2 {
		fv, err := reqStr(args[1], pos, name)
		if err != nil {
			return nil, err
		}
		fill = fv
	}
	pad := width - len([]rune(s))
	if pad <= 0 {
		return value.NewString(s), nil
	}
	padding := strings.Repeat(fill, pad)
	if left {
		return value.NewString(s + padding), nil
	}
	return value.NewString(padding + s), nil
}

func strCenter(s string, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, diag.NewRuntimeError(pos, "center() takes 1 or 2 arguments but %d given", len(args))
	}
	n, ok := args[0].(*value.Number)
	if !ok {
		return nil, diag.NewRuntimeError(pos, "center() width must be an integer")
	}
	width := int(n.AsFloat())
	fill := " "
	if len(args) == 2 {
		fv, err := reqStr(args[1], pos, "center")
		if err != nil {
			return nil, err
		}
		fill = fv
	}
	pad := width - len([]rune(s))
	if pad <= 0 {
		return value.NewString(s), nil
	}
	left := pad / 2
	right := pad - left
	return value.NewString(strings.Repeat(fill, left) + s + strings.Repeat(fill, right)), nil
}

// formatString implements a minimal `{}`-placeholder substitution, the
// common case templates reach for; it does not implement the full
// mini-language (field names, format specs).
func formatString(s string, args []value.Value) string {
	var sb strings.Builder
	argi := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '{' && i+1 < len(s) && s[i+1] == '}' {
			if argi < len(args) {
				sb.WriteString(args[argi].String())
				argi++
			}
			i++
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
