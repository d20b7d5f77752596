package value

import "testing"

func TestDictPreservesInsertionOrder(t *testing.T) {
	d := NewDict()
	d.Set("c", Int(3))
	d.Set("a", Int(1))
	d.Set("b", Int(2))
	d.Set("a", Int(99)) // re-set of an existing key must not move it

	got := d.Keys()
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	v, ok := d.Get("a")
	if !ok || !Equal(v, Int(99)) {
		t.Errorf("Get(a) = %v, want 99 (last write wins, order unchanged)", v)
	}
}

// TestDictItemsRoundTrip covers §8's "dict(d.items()) == d" invariant
// at the value-model level: re-inserting a dict's own keys/values in
// Keys() order reproduces an equal dict.
func TestDictItemsRoundTrip(t *testing.T) {
	d := NewDict()
	d.Set("firstName", NewString("Jane"))
	d.Set("income", Int(85000))

	rebuilt := NewDict()
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		rebuilt.Set(k, v)
	}
	if !Equal(d, rebuilt) {
		t.Errorf("rebuilt dict %s != original %s", rebuilt.String(), d.String())
	}
}

func TestNumberEqualityAcrossIntFloatTag(t *testing.T) {
	if !Equal(Int(2), Float(2.0)) {
		t.Error("Int(2) should equal Float(2.0)")
	}
	if Equal(Int(2), Float(2.5)) {
		t.Error("Int(2) should not equal Float(2.5)")
	}
}

func TestNumericStringEquality(t *testing.T) {
	if !Equal(NewString("42"), Int(42)) {
		t.Error(`"42" should equal 42`)
	}
	if !Equal(Int(42), NewString("42")) {
		t.Error(`42 should equal "42" (symmetric)`)
	}
	if Equal(NewString("abc"), Int(42)) {
		t.Error(`"abc" should not equal 42`)
	}
}

func TestListEqualityIsElementwise(t *testing.T) {
	a := NewList([]Value{Int(1), NewString("x")})
	b := NewList([]Value{Int(1), NewString("x")})
	c := NewList([]Value{Int(1), NewString("y")})

	if !Equal(a, b) {
		t.Error("lists with equal elements should be equal")
	}
	if Equal(a, c) {
		t.Error("lists with differing elements should not be equal")
	}
}

func TestEqualityDoesNotLoopOnCycle(t *testing.T) {
	a := NewList(nil)
	a.Items = append(a.Items, a) // a contains itself

	b := NewList(nil)
	b.Items = append(b.Items, b)

	// If the cycle guard in equalGuarded were missing, this call would
	// never return; reaching the assertion below is the test.
	if !Equal(a, b) {
		t.Error("self-referential lists of the same shape should compare equal under the cycle guard")
	}
}

func TestTruthiness(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"empty string", NewString(""), false},
		{"nonempty string", NewString("x"), true},
		{"zero int", Int(0), false},
		{"nonzero int", Int(1), true},
		{"zero float", Float(0), false},
		{"empty list", NewList(nil), false},
		{"nonempty list", NewList([]Value{Int(1)}), true},
		{"empty dict", NewDict(), false},
		{"null", NullValue, false},
		{"false", False, false},
		{"true", True, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompareMismatchedKindsNotOK(t *testing.T) {
	if _, ok := Compare(Int(1), NewString("1")); ok {
		t.Error("Compare(int, str) should report ok=false")
	}
}

func TestIsNullAndEmpty(t *testing.T) {
	if !IsNull(NullValue) {
		t.Error("IsNull(NullValue) should be true")
	}
	if IsNull(Int(0)) {
		t.Error("IsNull(Int(0)) should be false")
	}
	if !Empty(NewString("")) || !Empty(NewList(nil)) || !Empty(NewDict()) {
		t.Error("Empty() should be true for empty string/list/dict")
	}
	if Empty(Int(0)) {
		t.Error("Empty() should never be true for a non-container, non-string value")
	}
}
