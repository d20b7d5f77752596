package ast

import (
	"strings"

	"github.com/shantanunp/grizzly/internal/token"
)

// FunctionDef declares a module-level function: `def name(params): body`.
type FunctionDef struct {
	Token  token.Token // the 'def' token
	Name   string
	Params []string
	Body   []Statement
}

func (f *FunctionDef) statementNode()       {}
func (f *FunctionDef) Pos() token.Position  { return f.Token.Pos }
func (f *FunctionDef) String() string {
	var sb strings.Builder
	sb.WriteString("def ")
	sb.WriteString(f.Name)
	sb.WriteString("(")
	sb.WriteString(strings.Join(f.Params, ", "))
	sb.WriteString("):\n")
	for _, s := range f.Body {
		sb.WriteString("    ")
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ImportStatement declares a module namespace used by the script,
// e.g. `import re`.
type ImportStatement struct {
	Token  token.Token // the 'import' token
	Module string
}

func (i *ImportStatement) statementNode()      {}
func (i *ImportStatement) Pos() token.Position { return i.Token.Pos }
func (i *ImportStatement) String() string      { return "import " + i.Module }

// Assignment is `target = value`, where target is an Identifier,
// AttrAccess, or DictAccess (the lvalue rule from §4.2).
type Assignment struct {
	Token  token.Token // the first token of the target
	Target Expression
	Value  Expression
}

func (a *Assignment) statementNode()      {}
func (a *Assignment) Pos() token.Position { return a.Target.Pos() }
func (a *Assignment) String() string {
	return a.Target.String() + " = " + a.Value.String()
}

// IfStatement is `if cond: then (elif cond: body)* (else: body)?`.
type IfStatement struct {
	Token     token.Token // the 'if' token
	Cond      Expression
	Then      []Statement
	ElifConds []Expression
	ElifBody  [][]Statement
	Else      []Statement
}

func (s *IfStatement) statementNode()      {}
func (s *IfStatement) Pos() token.Position { return s.Token.Pos }
func (s *IfStatement) String() string {
	return "if " + s.Cond.String() + ": ..."
}

// ForLoop is `for var in iterable: body`.
type ForLoop struct {
	Token    token.Token // the 'for' token
	Var      string
	Iterable Expression
	Body     []Statement
}

func (s *ForLoop) statementNode()      {}
func (s *ForLoop) Pos() token.Position { return s.Token.Pos }
func (s *ForLoop) String() string {
	return "for " + s.Var + " in " + s.Iterable.String() + ": ..."
}

// WhileLoop is `while cond: body`. Not named in the distilled grammar
// but reserved as a keyword by §3 and specified in SPEC_FULL.md.
type WhileLoop struct {
	Token token.Token // the 'while' token
	Cond  Expression
	Body  []Statement
}

func (s *WhileLoop) statementNode()      {}
func (s *WhileLoop) Pos() token.Position { return s.Token.Pos }
func (s *WhileLoop) String() string {
	return "while " + s.Cond.String() + ": ..."
}

// ReturnStatement is `return expr`; Value is nil for a bare `return`.
type ReturnStatement struct {
	Token token.Token // the 'return' token
	Value Expression
}

func (s *ReturnStatement) statementNode()      {}
func (s *ReturnStatement) Pos() token.Position { return s.Token.Pos }
func (s *ReturnStatement) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}

// BreakStatement is `break`.
type BreakStatement struct{ Token token.Token }

func (s *BreakStatement) statementNode()      {}
func (s *BreakStatement) Pos() token.Position { return s.Token.Pos }
func (s *BreakStatement) String() string      { return "break" }

// ContinueStatement is `continue`.
type ContinueStatement struct{ Token token.Token }

func (s *ContinueStatement) statementNode()      {}
func (s *ContinueStatement) Pos() token.Position { return s.Token.Pos }
func (s *ContinueStatement) String() string      { return "continue" }

// ExpressionStatement wraps a bare expression used for its side
// effect (a standalone method call, a docstring literal).
type ExpressionStatement struct {
	Token token.Token
	Expr  Expression
}

func (s *ExpressionStatement) statementNode()      {}
func (s *ExpressionStatement) Pos() token.Position { return s.Token.Pos }
func (s *ExpressionStatement) String() string      { return s.Expr.String() }

// FunctionCallStatement is a call used as a whole statement, e.g.
// `OUTPUT.setdefault("x", [])` with no assignment around it.
type FunctionCallStatement struct {
	Token token.Token
	Call  Expression // always a *FunctionCallExpression or *MethodCall
}

func (s *FunctionCallStatement) statementNode()      {}
func (s *FunctionCallStatement) Pos() token.Position { return s.Token.Pos }
func (s *FunctionCallStatement) String() string      { return s.Call.String() }
