package parser

import (
	"testing"

	"github.com/shantanunp/grizzly/pkg/ast"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse(%q): %v", source, err)
	}
	return prog
}

func TestParseRequiresTransform(t *testing.T) {
	if _, err := Parse("def helper(x):\n    return x\n"); err == nil {
		t.Fatal("expected an error when no transform function is defined")
	}
}

func TestParseEmptyBodyTransform(t *testing.T) {
	prog := mustParse(t, "def transform(INPUT):\n    OUTPUT = {}\n    return OUTPUT\n")

	fn := prog.FunctionByName("transform")
	if fn == nil {
		t.Fatal("expected a transform function")
	}
	if len(fn.Params) != 1 || fn.Params[0] != "INPUT" {
		t.Fatalf("params = %v, want [INPUT]", fn.Params)
	}
	if len(fn.Body) != 2 {
		t.Fatalf("body has %d statements, want 2", len(fn.Body))
	}
	if _, ok := fn.Body[0].(*ast.Assignment); !ok {
		t.Errorf("body[0] = %T, want *ast.Assignment", fn.Body[0])
	}
	if _, ok := fn.Body[1].(*ast.ReturnStatement); !ok {
		t.Errorf("body[1] = %T, want *ast.ReturnStatement", fn.Body[1])
	}
}

func parseSingleExpr(t *testing.T, body string) ast.Expression {
	t.Helper()
	prog := mustParse(t, "def transform(INPUT):\n"+body+"\n")
	fn := prog.FunctionByName("transform")
	last := fn.Body[len(fn.Body)-1]
	ret, ok := last.(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("last statement = %T, want *ast.ReturnStatement", last)
	}
	return ret.Value
}

// TestOperatorPrecedence covers §8 literal scenario 5.
func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"or-and", "    return True or False and False", "(True or (False and False))"},
		{"additive-multiplicative", "    return 2 + 3 * 4", "(2 + (3 * 4))"},
		{"exponent-right-assoc", "    return 2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"not-below-comparison", "    return not a == b", "(not (a == b))"},
		{"not-in", "    return a not in b", "(a not in b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := parseSingleExpr(t, tt.expr)
			if got := expr.String(); got != tt.want {
				t.Errorf("parsed %q = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParseSafeNavigationChain(t *testing.T) {
	expr := parseSingleExpr(t, "    return INPUT?.deal?.loan?.city")

	access, ok := expr.(*ast.AttrAccess)
	if !ok {
		t.Fatalf("expr = %T, want *ast.AttrAccess", expr)
	}
	if !access.Safe {
		t.Error("expected the outermost AttrAccess to be Safe")
	}
	if access.Attr != "city" {
		t.Errorf("Attr = %q, want city", access.Attr)
	}
}

func TestParseQualifiedCallFolding(t *testing.T) {
	expr := parseSingleExpr(t, "    return re.match(pattern, text)")

	call, ok := expr.(*ast.FunctionCallExpression)
	if !ok {
		t.Fatalf("expr = %T, want *ast.FunctionCallExpression", expr)
	}
	if call.Name != "re.match" {
		t.Errorf("Name = %q, want re.match", call.Name)
	}
	if len(call.Args) != 2 {
		t.Errorf("len(Args) = %d, want 2", len(call.Args))
	}
}

func TestParseAttrAccessWithoutCallIsNotFolded(t *testing.T) {
	expr := parseSingleExpr(t, "    return re.pattern")

	if _, ok := expr.(*ast.AttrAccess); !ok {
		t.Fatalf("expr = %T, want *ast.AttrAccess (no call should not fold into a qualified name)", expr)
	}
}

func TestParseListAndDictLiterals(t *testing.T) {
	expr := parseSingleExpr(t, `    return {"fullName": name, "income": income}`)

	dict, ok := expr.(*ast.DictLiteral)
	if !ok {
		t.Fatalf("expr = %T, want *ast.DictLiteral", expr)
	}
	if len(dict.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(dict.Entries))
	}

	listExpr := parseSingleExpr(t, "    return [1, 2, 3]")
	list, ok := listExpr.(*ast.ListLiteral)
	if !ok {
		t.Fatalf("expr = %T, want *ast.ListLiteral", listExpr)
	}
	if len(list.Elements) != 3 {
		t.Errorf("len(Elements) = %d, want 3", len(list.Elements))
	}
}

func TestParseForAndWhileLoops(t *testing.T) {
	prog := mustParse(t, "def transform(INPUT):\n    for b in INPUT.items:\n        x = b\n    OUTPUT = {}\n    return OUTPUT\n")
	fn := prog.FunctionByName("transform")
	forLoop, ok := fn.Body[0].(*ast.ForLoop)
	if !ok {
		t.Fatalf("body[0] = %T, want *ast.ForLoop", fn.Body[0])
	}
	if forLoop.Var != "b" {
		t.Errorf("Var = %q, want b", forLoop.Var)
	}

	prog = mustParse(t, "def transform(INPUT):\n    while x:\n        x = 0\n    OUTPUT = {}\n    return OUTPUT\n")
	fn = prog.FunctionByName("transform")
	if _, ok := fn.Body[0].(*ast.WhileLoop); !ok {
		t.Fatalf("body[0] = %T, want *ast.WhileLoop", fn.Body[0])
	}
}

func TestParseIfElifElse(t *testing.T) {
	src := "def transform(INPUT):\n" +
		"    if a:\n" +
		"        x = 1\n" +
		"    elif b:\n" +
		"        x = 2\n" +
		"    else:\n" +
		"        x = 3\n" +
		"    OUTPUT = {}\n" +
		"    return OUTPUT\n"
	prog := mustParse(t, src)
	fn := prog.FunctionByName("transform")
	ifStmt, ok := fn.Body[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("body[0] = %T, want *ast.IfStatement", fn.Body[0])
	}
	if len(ifStmt.ElifConds) != 1 {
		t.Fatalf("len(ElifConds) = %d, want 1", len(ifStmt.ElifConds))
	}
	if ifStmt.Else == nil {
		t.Error("expected an Else block")
	}
}

// TestEveryNodePositionWithinSource covers §8's "every AST node's
// line number lies within the source" invariant for a representative
// program.
func TestEveryNodePositionWithinSource(t *testing.T) {
	source := "def transform(INPUT):\n    OUTPUT = {}\n    return OUTPUT\n"
	prog := mustParse(t, source)
	lines := 1
	for _, c := range source {
		if c == '\n' {
			lines++
		}
	}

	fn := prog.FunctionByName("transform")
	for _, stmt := range fn.Body {
		if pos := stmt.Pos(); pos.Line < 1 || pos.Line > lines {
			t.Errorf("statement %T has out-of-range line %d (source has %d lines)", stmt, pos.Line, lines)
		}
	}
}
