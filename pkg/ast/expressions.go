package ast

import (
	"strconv"
	"strings"

	"github.com/shantanunp/grizzly/internal/token"
)

// Identifier is a bare name reference.
type Identifier struct {
	Token token.Token
	Name  string
}

func (e *Identifier) expressionNode()     {}
func (e *Identifier) Pos() token.Position { return e.Token.Pos }
func (e *Identifier) String() string      { return e.Name }

// StringLiteral is a quoted string literal (already escape-processed
// by the lexer, or left raw if the source used the `r` prefix).
type StringLiteral struct {
	Token token.Token
	Value string
}

func (e *StringLiteral) expressionNode()     {}
func (e *StringLiteral) Pos() token.Position { return e.Token.Pos }
func (e *StringLiteral) String() string      { return strconv.Quote(e.Value) }

// NumberLiteral is an integer or double literal; IsInt records which,
// decided purely by presence of a decimal point in the source.
type NumberLiteral struct {
	Token  token.Token
	IsInt  bool
	Int    int64
	Double float64
}

func (e *NumberLiteral) expressionNode()     {}
func (e *NumberLiteral) Pos() token.Position { return e.Token.Pos }
func (e *NumberLiteral) String() string      { return e.Token.Literal }

// BooleanLiteral is `True` or `False`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (e *BooleanLiteral) expressionNode()     {}
func (e *BooleanLiteral) Pos() token.Position { return e.Token.Pos }
func (e *BooleanLiteral) String() string      { return e.Token.Literal }

// NullLiteral is `None`.
type NullLiteral struct{ Token token.Token }

func (e *NullLiteral) expressionNode()     {}
func (e *NullLiteral) Pos() token.Position { return e.Token.Pos }
func (e *NullLiteral) String() string      { return "None" }

// ListLiteral is `[e1, e2, ...]`.
type ListLiteral struct {
	Token    token.Token // the '['
	Elements []Expression
}

func (e *ListLiteral) expressionNode()     {}
func (e *ListLiteral) Pos() token.Position { return e.Token.Pos }
func (e *ListLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DictEntry is one `key: value` pair of a DictLiteral.
type DictEntry struct {
	Key   Expression
	Value Expression
}

// DictLiteral is `{k1: v1, k2: v2, ...}`.
type DictLiteral struct {
	Token   token.Token // the '{'
	Entries []DictEntry
}

func (e *DictLiteral) expressionNode()     {}
func (e *DictLiteral) Pos() token.Position { return e.Token.Pos }
func (e *DictLiteral) String() string {
	parts := make([]string, len(e.Entries))
	for i, kv := range e.Entries {
		parts[i] = kv.Key.String() + ": " + kv.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// BinaryOp is `left op right`, covering arithmetic, comparison, and
// and/or/in operators per the §4.2 precedence ladder.
type BinaryOp struct {
	Token token.Token // the operator token
	Left  Expression
	Op    string
	Right Expression
}

func (e *BinaryOp) expressionNode()     {}
func (e *BinaryOp) Pos() token.Position { return e.Token.Pos }
func (e *BinaryOp) String() string {
	return "(" + e.Left.String() + " " + e.Op + " " + e.Right.String() + ")"
}

// UnaryOp is a prefix operator: `not x` or `-x`.
type UnaryOp struct {
	Token token.Token
	Op    string
	Right Expression
}

func (e *UnaryOp) expressionNode()     {}
func (e *UnaryOp) Pos() token.Position { return e.Token.Pos }
func (e *UnaryOp) String() string      { return "(" + e.Op + " " + e.Right.String() + ")" }

// AttrAccess is `object.attr` or, when Safe is true, `object?.attr`.
type AttrAccess struct {
	Token  token.Token // the '.' or '?.' token
	Object Expression
	Attr   string
	Safe   bool
}

func (e *AttrAccess) expressionNode()     {}
func (e *AttrAccess) Pos() token.Position { return e.Token.Pos }
func (e *AttrAccess) String() string {
	op := "."
	if e.Safe {
		op = "?."
	}
	return e.Object.String() + op + e.Attr
}

// DictAccess is `object[key]` or, when Safe is true, `object?[key]`.
type DictAccess struct {
	Token  token.Token // the '[' or '?[' token
	Object Expression
	Key    Expression
	Safe   bool
}

func (e *DictAccess) expressionNode()     {}
func (e *DictAccess) Pos() token.Position { return e.Token.Pos }
func (e *DictAccess) String() string {
	op := "["
	if e.Safe {
		op = "?["
	}
	return e.Object.String() + op + e.Key.String() + "]"
}

// MethodCall is `object.name(args)`.
type MethodCall struct {
	Token  token.Token // the method-name token
	Object Expression
	Name   string
	Args   []Expression
}

func (e *MethodCall) expressionNode()     {}
func (e *MethodCall) Pos() token.Position { return e.Token.Pos }
func (e *MethodCall) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Object.String() + "." + e.Name + "(" + strings.Join(parts, ", ") + ")"
}

// FunctionCallExpression is `name(args)`, either a built-in, a
// user-defined function, or a module-namespaced call like `re.match`.
type FunctionCallExpression struct {
	Token token.Token // the function-name token
	Name  string      // e.g. "len" or "re.match"
	Args  []Expression
}

func (e *FunctionCallExpression) expressionNode()     {}
func (e *FunctionCallExpression) Pos() token.Position { return e.Token.Pos }
func (e *FunctionCallExpression) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Name + "(" + strings.Join(parts, ", ") + ")"
}
