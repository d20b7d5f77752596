// Package jsonbridge maps between JSON and Grizzly's value.Value tree.
// It lives outside the core engine (SPEC_FULL.md §1/§6): the engine
// itself only ever sees a value.Value, never raw JSON bytes.
package jsonbridge

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/shantanunp/grizzly/internal/value"
)

// Reserved keys a future XML adapter would use to carry attributes and
// text content alongside child elements; XML support itself is out of
// scope (spec.md §1), so nothing in this package produces or consumes
// them yet.
const (
	AttributesKey = "_attributes"
	TextKey       = "_text"
)

// Decode parses JSON bytes into a value.Value. Object keys are walked
// in source order via gjson.Result.ForEach, so the resulting *value.Dict
// preserves the input's field order — a bare encoding/json Unmarshal
// into map[string]any would randomize it.
func Decode(data []byte) (value.Value, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("jsonbridge: invalid JSON input")
	}
	return decodeResult(gjson.ParseBytes(data)), nil
}

func decodeResult(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.NullValue
	case gjson.False:
		return value.False
	case gjson.True:
		return value.True
	case gjson.Number:
		return decodeNumber(r)
	case gjson.String:
		return value.NewString(r.String())
	case gjson.JSON:
		if r.IsArray() {
			return decodeArray(r)
		}
		return decodeObject(r)
	default:
		return value.NullValue
	}
}

// decodeNumber classifies a JSON number as int or float purely by
// whether its raw source text contains a decimal point or exponent,
// matching the lexer's own NUMBER-literal classification rule.
func decodeNumber(r gjson.Result) value.Value {
	if strings.ContainsAny(r.Raw, ".eE") {
		return value.Float(r.Float())
	}
	return value.Int(r.Int())
}

func decodeArray(r gjson.Result) value.Value {
	elems := r.Array()
	items := make([]value.Value, len(elems))
	for i, el := range elems {
		items[i] = decodeResult(el)
	}
	return value.NewList(items)
}

func decodeObject(r gjson.Result) value.Value {
	d := value.NewDict()
	r.ForEach(func(key, val gjson.Result) bool {
		d.Set(key.String(), decodeResult(val))
		return true
	})
	return d
}

// Encode converts v into a plain `any` tree (map[string]any, []any,
// string, float64/int64, bool, nil) suitable for encoding/json.Marshal.
// Dict key order is not preserved across this boundary: Go's
// encoding/json sorts map keys on marshal, so callers that need
// order-preserving output should serialize the Dict's Keys() directly
// rather than going through Marshal.
func Encode(v value.Value) any {
	switch t := v.(type) {
	case *value.Null, nil:
		return nil
	case *value.Bool:
		return t.Val
	case *value.Str:
		return t.Val
	case *value.Number:
		if t.IsInt {
			return t.Int
		}
		return t.Float
	case *value.List:
		out := make([]any, len(t.Items))
		for i, item := range t.Items {
			out[i] = Encode(item)
		}
		return out
	case *value.Dict:
		out := make(map[string]any, t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			out[k] = Encode(val)
		}
		return out
	case *value.Decimal:
		return t.Val.String()
	case *value.DateTime:
		return t.String()
	default:
		return nil
	}
}

// Marshal encodes v as a JSON document via encoding/json. Object key
// order within the output is not guaranteed (see Encode).
func Marshal(v value.Value) ([]byte, error) {
	return json.Marshal(Encode(v))
}

// MarshalOrdered renders v as JSON text by hand, preserving Dict
// insertion order end to end — for callers (the CLI's `run` output)
// where the order-preservation invariant must hold on the
// wire, not just inside the runtime.
func MarshalOrdered(v value.Value) ([]byte, error) {
	var sb strings.Builder
	if err := writeOrdered(&sb, v); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func writeOrdered(sb *strings.Builder, v value.Value) error {
	switch t := v.(type) {
	case nil, *value.Null:
		sb.WriteString("null")
	case *value.Bool:
		if t.Val {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case *value.Str:
		b, err := json.Marshal(t.Val)
		if err != nil {
			return err
		}
		sb.Write(b)
	case *value.Number:
		var b []byte
		var err error
		if t.IsInt {
			b, err = json.Marshal(t.Int)
		} else {
			b, err = json.Marshal(t.Float)
		}
		if err != nil {
			return err
		}
		sb.Write(b)
	case *value.List:
		sb.WriteByte('[')
		for i, item := range t.Items {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeOrdered(sb, item); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case *value.Dict:
		sb.WriteByte('{')
		for i, k := range t.Keys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			sb.Write(kb)
			sb.WriteByte(':')
			val, _ := t.Get(k)
			if err := writeOrdered(sb, val); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	case *value.Decimal:
		b, err := json.Marshal(t.Val.String())
		if err != nil {
			return err
		}
		sb.Write(b)
	case *value.DateTime:
		b, err := json.Marshal(t.String())
		if err != nil {
			return err
		}
		sb.Write(b)
	default:
		sb.WriteString("null")
	}
	return nil
}
