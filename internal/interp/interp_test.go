package interp

import (
	"errors"
	"testing"

	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/parser"
	"github.com/shantanunp/grizzly/internal/value"
)

func mustCompile(t *testing.T, source string) *Interpreter {
	t.Helper()
	prog, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parser.Parse: %v", err)
	}
	return New(prog, DefaultConfig())
}

func evalExprProgram(t *testing.T, expr string) value.Value {
	t.Helper()
	it := mustCompile(t, "def transform(INPUT):\n    return "+expr+"\n")
	out, err := it.Execute(value.NullValue)
	if err != nil {
		t.Fatalf("Execute(%q): %v", expr, err)
	}
	return out
}

// TestOperatorPrecedenceResults covers §8 literal scenario 5 at the
// evaluated-value level (the parser test covers the AST shape).
func TestOperatorPrecedenceResults(t *testing.T) {
	tests := []struct {
		expr string
		want value.Value
	}{
		{"True or False and False", value.True},
		{"2 + 3 * 4", value.Int(14)},
		{"2 ** 3 ** 2", value.Int(512)},
	}
	for _, tt := range tests {
		got := evalExprProgram(t, tt.expr)
		if !value.Equal(got, tt.want) {
			t.Errorf("eval(%q) = %s, want %s", tt.expr, got.String(), tt.want.String())
		}
	}
}

func TestStrAndNumberAdditionIsForbidden(t *testing.T) {
	it := mustCompile(t, `def transform(INPUT):
    return "x" + 1
`)
	if _, err := it.Execute(value.NullValue); err == nil {
		t.Fatal("expected a runtime error adding a str and a number")
	}
}

// TestRecursionLimit covers §8 literal scenario 6.
func TestRecursionLimit(t *testing.T) {
	prog, err := parser.Parse(`def f(n):
    return f(n - 1)

def transform(INPUT):
    return f(100)
`)
	if err != nil {
		t.Fatalf("parser.Parse: %v", err)
	}
	cfg := DefaultConfig()
	cfg.RecursionLimit = 8
	it := New(prog, cfg)

	_, err = it.Execute(value.NullValue)
	if err == nil {
		t.Fatal("expected a recursion-limit error")
	}
	var limErr *diag.LimitError
	if !errors.As(err, &limErr) {
		t.Fatalf("err = %T, want *diag.LimitError", err)
	}
	if limErr.Kind != diag.LimitRecursion {
		t.Errorf("Kind = %v, want %v", limErr.Kind, diag.LimitRecursion)
	}
}

func TestStatementLimit(t *testing.T) {
	prog, err := parser.Parse(`def transform(INPUT):
    x = 0
    while True:
        x = x + 1
    return x
`)
	if err != nil {
		t.Fatalf("parser.Parse: %v", err)
	}
	cfg := DefaultConfig()
	cfg.StatementLimit = 50
	it := New(prog, cfg)

	_, err = it.Execute(value.NullValue)
	if err == nil {
		t.Fatal("expected a statement-limit error for an infinite loop")
	}
	var limErr *diag.LimitError
	if !errors.As(err, &limErr) || limErr.Kind != diag.LimitStatement {
		t.Fatalf("err = %v, want a *diag.LimitError of kind statement", err)
	}
}

// TestSafeModeNeverPanics is a spot-check of §8's "execute never
// panics" invariant: a battery of malformed-access expressions must
// not panic under SAFE mode (each returns a value or an error).
func TestSafeModeNeverPanics(t *testing.T) {
	exprs := []string{
		"INPUT.nope",
		"INPUT[0]",
		"INPUT.a.b.c",
		"len(INPUT)",
		"INPUT.upper()",
	}
	for _, expr := range exprs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("eval(%q) panicked: %v", expr, r)
				}
			}()
			it := mustCompile(t, "def transform(INPUT):\n    return "+expr+"\n")
			_, _ = it.Execute(value.NullValue)
		}()
	}
}

func TestStrictModeRaisesOnBrokenPath(t *testing.T) {
	prog, err := parser.Parse(`def transform(INPUT):
    OUTPUT = {}
    OUTPUT["city"] = INPUT.deal.loan.city
    return OUTPUT
`)
	if err != nil {
		t.Fatalf("parser.Parse: %v", err)
	}
	cfg := DefaultConfig()
	cfg.NullHandling = Strict

	loan := value.NewDict()
	loan.Set("loan", value.NullValue)
	deal := value.NewDict()
	deal.Set("deal", loan)

	it := New(prog, cfg)
	if _, err := it.Execute(deal); err == nil {
		t.Fatal("expected a runtime error in STRICT mode when a chain passes through null")
	}
}

func TestBuiltinFunctions(t *testing.T) {
	tests := []struct {
		expr string
		want value.Value
	}{
		{`len("abc")`, value.Int(3)},
		{`len([1, 2, 3])`, value.Int(3)},
		{"str(42)", value.NewString("42")},
		{"int(\"7\")", value.Int(7)},
		{"abs(-5)", value.Int(5)},
		{"max([1, 9, 3])", value.Int(9)},
		{"min([1, 9, 3])", value.Int(1)},
		{"sum([1, 2, 3])", value.Int(6)},
		{"sorted([3, 1, 2])", value.NewList([]value.Value{value.Int(1), value.Int(2), value.Int(3)})},
	}
	for _, tt := range tests {
		got := evalExprProgram(t, tt.expr)
		if !value.Equal(got, tt.want) {
			t.Errorf("eval(%q) = %s, want %s", tt.expr, got.String(), tt.want.String())
		}
	}
}

func TestStringAndListMethods(t *testing.T) {
	tests := []struct {
		expr string
		want value.Value
	}{
		{`"Jane".upper()`, value.NewString("JANE")},
		{`" x ".strip()`, value.NewString("x")},
		{`"a,b,c".split(",")`, value.NewList([]value.Value{value.NewString("a"), value.NewString("b"), value.NewString("c")})},
		{"[1, 2, 2].count(2)", value.Int(2)},
	}
	for _, tt := range tests {
		got := evalExprProgram(t, tt.expr)
		if !value.Equal(got, tt.want) {
			t.Errorf("eval(%q) = %s, want %s", tt.expr, got.String(), tt.want.String())
		}
	}
}

func TestOutOfLoopBreakIsRuntimeError(t *testing.T) {
	it := mustCompile(t, "def transform(INPUT):\n    break\n")
	_, err := it.Execute(value.NullValue)
	if err == nil {
		t.Fatal("expected a runtime error for a break outside any loop")
	}
	var rerr *diag.RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("err = %T, want *diag.RuntimeError", err)
	}
}

func TestOutOfLoopContinueIsRuntimeError(t *testing.T) {
	it := mustCompile(t, "def transform(INPUT):\n    continue\n")
	_, err := it.Execute(value.NullValue)
	if err == nil {
		t.Fatal("expected a runtime error for a continue outside any loop")
	}
	var rerr *diag.RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("err = %T, want *diag.RuntimeError", err)
	}
}

func TestBreakAndContinueInForLoop(t *testing.T) {
	it := mustCompile(t, `def transform(INPUT):
    total = 0
    for x in [1, 2, 3, 4, 5]:
        if x == 4:
            break
        if x == 2:
            continue
        total = total + x
    return total
`)
	out, err := it.Execute(value.NullValue)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	// 1 + 3 = 4 (2 skipped by continue, loop stops before 5 via break at 4)
	if !value.Equal(out, value.Int(4)) {
		t.Errorf("total = %s, want 4", out.String())
	}
}
