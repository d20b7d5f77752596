package value

import (
	"strconv"
)

// Equal implements `==` for any pair of values. Numbers compare by
// value across int/double tags; strings compare by code point;
// bools compare by identity; lists/dicts compare structurally
// (element-wise), with a visited-set guard so an injected cycle
// terminates instead of recursing forever; across non-matching kinds
// the result is false, except that a numeric string compares equal to
// its parsed number (`"42" == 42`), per §8's literal scenario 5/§4.3.
func Equal(a, b Value) bool {
	return equalGuarded(a, b, make(map[cyclePair]bool))
}

type cyclePair struct{ a, b any }

func equalGuarded(a, b Value, seen map[cyclePair]bool) bool {
	switch av := a.(type) {
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Bool:
		bv, ok := b.(*Bool)
		return ok && av.Val == bv.Val
	case *Number:
		if bv, ok := b.(*Number); ok {
			return av.AsFloat() == bv.AsFloat()
		}
		if bs, ok := b.(*Str); ok {
			return numericStringEqual(bs.Val, av)
		}
		return false
	case *Str:
		if bv, ok := b.(*Str); ok {
			return av.Val == bv.Val
		}
		if bn, ok := b.(*Number); ok {
			return numericStringEqual(av.Val, bn)
		}
		return false
	case *Decimal:
		bv, ok := b.(*Decimal)
		return ok && av.Val.Equal(bv.Val)
	case *DateTime:
		bv, ok := b.(*DateTime)
		return ok && av.Val.Equal(bv.Val)
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		key := cyclePair{av, bv}
		if seen[key] {
			return true
		}
		seen[key] = true
		for i := range av.Items {
			if !equalGuarded(av.Items[i], bv.Items[i], seen) {
				return false
			}
		}
		return true
	case *Dict:
		bv, ok := b.(*Dict)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		key := cyclePair{av, bv}
		if seen[key] {
			return true
		}
		seen[key] = true
		for _, k := range av.keys {
			bval, ok := bv.Get(k)
			if !ok {
				return false
			}
			if !equalGuarded(av.m[k], bval, seen) {
				return false
			}
		}
		return true
	}
	return false
}

func numericStringEqual(s string, n *Number) bool {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return f == n.AsFloat()
}

// Compare implements `<`/`>`/`<=`/`>=` between two values of matching
// kind. Numbers compare by value across int/double tags, strings by
// code point order, bools false<true. Comparing mismatched kinds is
// a caller error (type error), signaled by ok=false.
func Compare(a, b Value) (cmp int, ok bool) {
	switch av := a.(type) {
	case *Number:
		bv, isNum := b.(*Number)
		if !isNum {
			return 0, false
		}
		af, bf := av.AsFloat(), bv.AsFloat()
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	case *Str:
		bv, isStr := b.(*Str)
		if !isStr {
			return 0, false
		}
		switch {
		case av.Val < bv.Val:
			return -1, true
		case av.Val > bv.Val:
			return 1, true
		default:
			return 0, true
		}
	case *Bool:
		bv, isBool := b.(*Bool)
		if !isBool {
			return 0, false
		}
		ai, bi := boolInt(av.Val), boolInt(bv.Val)
		return ai - bi, true
	case *Decimal:
		bv, isDec := b.(*Decimal)
		if !isDec {
			return 0, false
		}
		return av.Val.Cmp(bv.Val), true
	case *DateTime:
		bv, isDT := b.(*DateTime)
		if !isDT {
			return 0, false
		}
		switch {
		case av.Val.Before(bv.Val):
			return -1, true
		case av.Val.After(bv.Val):
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
