// Package parser implements Grizzly's recursive-descent parser with a
// Pratt expression core (§4.2): it consumes the token stream produced
// by internal/lexer and builds a pkg/ast.Program.
//
// The precedence ladder follows the teacher repository's expression
// parser (internal/parser/parser.go), generalized from the source
// language's operator set to Grizzly's; binding powers come from the
// infixPrecedence switch rather than prefix/infix function maps.
package parser

import (
	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/lexer"
	"github.com/shantanunp/grizzly/internal/token"
	"github.com/shantanunp/grizzly/pkg/ast"
)

// Parser holds the token stream and one token of lookahead (two for
// `not in`).
type Parser struct {
	tokens []token.Token
	pos    int
	source string

	errors []*diag.Error
}

// New creates a Parser over source, running the lexer first. Lexical
// errors are folded into the parser's error list so Parse reports
// both kinds uniformly.
func New(source string) *Parser {
	lx := lexer.New(source)
	toks := lx.Tokenize()
	p := &Parser{tokens: toks, source: source}
	for _, lerr := range lx.Errors() {
		p.errors = append(p.errors, diag.NewError(lerr.Pos, "%s", lerr.Message).WithSource(source))
	}
	return p
}

// Parse compiles source into a Program, or returns the first of the
// accumulated parse errors. It also rejects a program whose transform
// function is missing or does not take exactly one parameter.
func Parse(source string) (*ast.Program, error) {
	p := New(source)
	prog := p.parseProgram()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	fn := prog.FunctionByName("transform")
	if fn == nil {
		return nil, diag.NewError(prog.Pos(), "no functions found: program must define transform(INPUT)").WithSource(source)
	}
	if len(fn.Params) != 1 {
		return nil, diag.NewError(fn.Pos(), "transform must take exactly one parameter, got %d", len(fn.Params)).WithSource(source)
	}
	return prog, nil
}

// ParseOnly parses source and returns the Program alongside every
// accumulated parse error, without enforcing Parse's "must define
// transform" rule — used by tooling (the `grizzly parse` CLI command)
// that wants to inspect a tree even when compilation would fail.
func ParseOnly(source string) (*ast.Program, []*diag.Error) {
	p := New(source)
	prog := p.parseProgram()
	return prog, p.errors
}

func (p *Parser) cur() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) curIs(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.curIs(k) {
		return p.advance(), true
	}
	p.errorf(expected(p.cur().Pos, k.String(), p.cur()))
	return p.cur(), false
}

func (p *Parser) errorf(e *diag.Error) {
	p.errors = append(p.errors, e.WithSource(p.source))
}

func (p *Parser) errorfString(pos token.Position, format string, args ...any) {
	p.errorf(diag.NewError(pos, format, args...))
}

// skipNewlines consumes any run of redundant NEWLINE tokens, per
// §4.2's tolerance for blank lines between statements/blocks.
func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.advance()
	}
}
