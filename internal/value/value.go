// Package value implements Grizzly's runtime value model: a tagged
// variant over string, number, bool, null, list, dict, decimal, and
// datetime, matching §3/§4.4 of the specification.
//
// Dicts and lists are mutable, reference-counted-by-Go's-GC container
// types: two holders of the same *List or *Dict observe each other's
// mutations, which is what lets helper functions fill a shared
// OUTPUT. Equality is structural (deep, with a visited-set guard to
// tolerate an adversarial cyclic input); truthiness and typeName are defined for
// every variant.
package value

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Value is the common interface implemented by every runtime value
// variant. It intentionally exposes only what every variant can do
// uniformly; type-specific behavior lives in type switches in the
// interpreter and builtins packages, matching the teacher's
// preference for exhaustive switches over deep interface hierarchies.
type Value interface {
	// TypeName returns the type-name string used by type()/isinstance().
	TypeName() string
	// Truthy reports whether the value is truthy per §3's rules.
	Truthy() bool
	// String renders the value the way `str(...)` would.
	String() string
}

// Null is the singleton null value.
type Null struct{}

// NullValue is the single shared Null instance; all nulls compare equal.
var NullValue = &Null{}

func (*Null) TypeName() string { return "NoneType" }
func (*Null) Truthy() bool     { return false }
func (*Null) String() string   { return "None" }

// Bool wraps a boolean; True and False below are the shared singletons.
type Bool struct{ Val bool }

// True and False are the shared Bool singletons, matching the
// teacher's BoolValue.TRUE/FALSE pattern so comparisons can use
// pointer identity as a fast path without changing observable
// behavior (equality still falls back to value comparison).
var (
	True  = &Bool{Val: true}
	False = &Bool{Val: false}
)

// Boolean returns the shared True/False singleton for b.
func Boolean(b bool) *Bool {
	if b {
		return True
	}
	return False
}

func (b *Bool) TypeName() string { return "bool" }
func (b *Bool) Truthy() bool     { return b.Val }
func (b *Bool) String() string {
	if b.Val {
		return "True"
	}
	return "False"
}

// String (the value variant) wraps a UTF-8 Go string.
type Str struct{ Val string }

// NewString constructs a string value.
func NewString(s string) *Str { return &Str{Val: s} }

func (s *Str) TypeName() string { return "str" }
func (s *Str) Truthy() bool     { return s.Val != "" }
func (s *Str) String() string   { return s.Val }

// Number is an int64-or-float64 scalar, carrying an is-integer bit so
// `1` and `1.0` keep their distinct textual form while comparing
// equal numerically.
type Number struct {
	IsInt bool
	Int   int64
	Float float64
}

// Int constructs an integer Number.
func Int(v int64) *Number { return &Number{IsInt: true, Int: v} }

// Float constructs a double Number.
func Float(v float64) *Number { return &Number{IsInt: false, Float: v} }

func (n *Number) TypeName() string {
	if n.IsInt {
		return "int"
	}
	return "float"
}

// AsFloat returns the number widened to float64 regardless of tag.
func (n *Number) AsFloat() float64 {
	if n.IsInt {
		return float64(n.Int)
	}
	return n.Float
}

func (n *Number) Truthy() bool {
	if n.IsInt {
		return n.Int != 0
	}
	return n.Float != 0
}

func (n *Number) String() string {
	if n.IsInt {
		return strconv.FormatInt(n.Int, 10)
	}
	return strconv.FormatFloat(n.Float, 'g', -1, 64)
}

// List is a mutable, ordered, reference-shared sequence of values.
type List struct{ Items []Value }

// NewList constructs a List wrapping items (no copy).
func NewList(items []Value) *List { return &List{Items: items} }

func (*List) TypeName() string { return "list" }
func (l *List) Truthy() bool   { return len(l.Items) > 0 }
func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, v := range l.Items {
		parts[i] = reprOf(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Dict is a mutable, insertion-ordered, string-keyed mapping. Order
// is preserved end to end, per §3/§8's round-trip invariant: it is
// backed by a key slice alongside the lookup map rather than a bare
// Go map, since Go map iteration order is randomized.
type Dict struct {
	keys []string
	m    map[string]Value
}

// NewDict constructs an empty, insertion-ordered Dict.
func NewDict() *Dict {
	return &Dict{m: make(map[string]Value)}
}

func (*Dict) TypeName() string { return "dict" }
func (d *Dict) Truthy() bool   { return len(d.keys) > 0 }

// Get returns the value for key and whether it was present.
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.m[key]
	return v, ok
}

// Set inserts or updates key, preserving first-insertion order.
func (d *Dict) Set(key string, v Value) {
	if _, exists := d.m[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.m[key] = v
}

// Delete removes key if present.
func (d *Dict) Delete(key string) {
	if _, ok := d.m[key]; !ok {
		return
	}
	delete(d.m, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the dict's keys in insertion order.
func (d *Dict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

func (d *Dict) String() string {
	parts := make([]string, 0, len(d.keys))
	for _, k := range d.keys {
		parts = append(parts, strconv.Quote(k)+": "+reprOf(d.m[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Decimal wraps an arbitrary-precision base-10 decimal, backed by
// github.com/shopspring/decimal (see SPEC_FULL.md §4.4 for why
// math/big's Float/Rat are not a fit).
type Decimal struct{ Val decimal.Decimal }

// NewDecimal constructs a Decimal value.
func NewDecimal(d decimal.Decimal) *Decimal { return &Decimal{Val: d} }

func (*Decimal) TypeName() string { return "decimal" }
func (d *Decimal) Truthy() bool   { return !d.Val.IsZero() }
func (d *Decimal) String() string { return d.Val.String() }

// DateTime wraps an instant with zone. Always truthy per §3.
type DateTime struct{ Val time.Time }

// NewDateTime constructs a DateTime value.
func NewDateTime(t time.Time) *DateTime { return &DateTime{Val: t} }

func (*DateTime) TypeName() string { return "datetime" }
func (*DateTime) Truthy() bool     { return true }
func (d *DateTime) String() string { return d.Val.Format(time.RFC3339) }

// reprOf renders v the way it would appear nested inside a list/dict
// literal, quoting strings, unlike the bare String() a top-level
// str(v) would produce.
func reprOf(v Value) string {
	if s, ok := v.(*Str); ok {
		return strconv.Quote(s.Val)
	}
	return v.String()
}

// IsNull reports whether v is the null singleton.
func IsNull(v Value) bool {
	_, ok := v.(*Null)
	return ok
}

// Empty reports whether v is an empty string/list/dict. Non-container,
// non-string values are never "empty" in this sense.
func Empty(v Value) bool {
	switch t := v.(type) {
	case *Str:
		return t.Val == ""
	case *List:
		return len(t.Items) == 0
	case *Dict:
		return t.Len() == 0
	default:
		return false
	}
}
