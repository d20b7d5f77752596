package parser

import (
	"strconv"

	"github.com/shantanunp/grizzly/internal/diag"
	"github.com/shantanunp/grizzly/internal/token"
	"github.com/shantanunp/grizzly/pkg/ast"
)

// Precedence levels, lowest to highest. Postfix chains (.attr, ?.attr,
// [key], ?[key], (args)) are parsed inline in parsePrimary and always
// bind tighter than any of these.
const (
	precLowest = iota
	precOr
	precAnd
	precCompare
	precAdditive
	precMultiplicative
	precUnary
	precExponent
)

func infixPrecedence(k token.Kind, isNotIn bool) int {
	switch {
	case k == token.OR:
		return precOr
	case k == token.AND:
		return precAnd
	case k == token.EQ, k == token.NEQ, k == token.LT, k == token.GT, k == token.LE, k == token.GE, k == token.IN:
		return precCompare
	case isNotIn:
		return precCompare
	case k == token.PLUS, k == token.MINUS:
		return precAdditive
	case k == token.STAR, k == token.SLASH, k == token.DSLASH, k == token.PERCENT:
		return precMultiplicative
	case k == token.DSTAR:
		return precExponent
	default:
		return precLowest
	}
}

// curIsNotIn reports whether the current token starts a `not in`
// binary operator (two tokens, NOT followed by IN), as opposed to a
// prefix `not` unary expression.
func (p *Parser) curIsNotIn() bool {
	return p.curIs(token.NOT) && p.peek().Kind == token.IN
}

func (p *Parser) curPrecedence() int {
	if p.curIsNotIn() {
		return precCompare
	}
	return infixPrecedence(p.cur().Kind, false)
}

// parseExpression is the Pratt core: parse a prefix/primary term, then
// repeatedly fold in infix operators whose precedence exceeds prec.
func (p *Parser) parseExpression(prec int) ast.Expression {
	left := p.parseUnary()
	for prec < p.curPrecedence() {
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.cur().Kind {
	case token.NOT:
		tok := p.advance()
		right := p.parseExpression(precAnd)
		return &ast.UnaryOp{Token: tok, Op: "not", Right: right}
	case token.MINUS:
		tok := p.advance()
		right := p.parseExpression(precUnary)
		return &ast.UnaryOp{Token: tok, Op: "-", Right: right}
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parseInfix(left ast.Expression) ast.Expression {
	if p.curIsNotIn() {
		tok := p.advance() // 'not'
		p.advance()        // 'in'
		right := p.parseExpression(precCompare)
		return &ast.BinaryOp{Token: tok, Left: left, Op: "not in", Right: right}
	}

	tok := p.advance()
	op := tok.Kind.String()
	prec := infixPrecedence(tok.Kind, false)
	if tok.Kind == token.DSTAR {
		// right-associative: allow the same precedence to recurse on
		// the right so `2 ** 3 ** 2` parses as `2 ** (3 ** 2)`.
		right := p.parseExpression(prec - 1)
		return &ast.BinaryOp{Token: tok, Left: left, Op: op, Right: right}
	}
	right := p.parseExpression(prec)
	return &ast.BinaryOp{Token: tok, Left: left, Op: op, Right: right}
}

// parsePrimary parses one atom and then any trailing postfix chain of
// attribute/index access and calls, which always bind tighter than any
// binary operator.
func (p *Parser) parsePrimary() ast.Expression {
	atom := p.parseAtom()
	return p.parsePostfix(atom)
}

func (p *Parser) parsePostfix(left ast.Expression) ast.Expression {
	for {
		switch p.cur().Kind {
		case token.DOT, token.QDOT:
			tok := p.advance()
			safe := tok.Kind == token.QDOT
			name, _ := p.expect(token.IDENT)
			if p.curIs(token.LPAREN) {
				args := p.parseArgs()
				left = &ast.MethodCall{Token: name, Object: left, Name: name.Literal, Args: args}
				continue
			}
			left = &ast.AttrAccess{Token: tok, Object: left, Attr: name.Literal, Safe: safe}
		case token.LBRACK, token.QBRACK:
			tok := p.advance()
			safe := tok.Kind == token.QBRACK
			key := p.parseExpression(precLowest)
			p.expect(token.RBRACK)
			left = &ast.DictAccess{Token: tok, Object: left, Key: key, Safe: safe}
		case token.LPAREN:
			if id, ok := left.(*ast.Identifier); ok {
				args := p.parseArgs()
				left = &ast.FunctionCallExpression{Token: id.Token, Name: id.Name, Args: args}
				continue
			}
			return left
		default:
			return left
		}
	}
}

func (p *Parser) parseArgs() []ast.Expression {
	p.expect(token.LPAREN)
	var args []ast.Expression
	if !p.curIs(token.RPAREN) {
		args = append(args, p.parseExpression(precLowest))
		for p.curIs(token.COMMA) {
			p.advance()
			args = append(args, p.parseExpression(precLowest))
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parseAtom() ast.Expression {
	tok := p.cur()
	switch tok.Kind {
	case token.IDENT:
		p.advance()
		// A dotted module call like `re.match(...)` is lexed as three
		// tokens (IDENT, DOT, IDENT); fold it into one qualified name
		// so evalFunctionCall can dispatch on "re.match" directly. Only
		// the `re` namespace is folded: any other `name.method(...)`
		// stays a postfix MethodCall on the value bound to name.
		if tok.Literal == "re" && p.curIs(token.DOT) && p.peek().Kind == token.IDENT {
			save := p.pos
			p.advance() // '.'
			member := p.advance() // IDENT
			if p.curIs(token.LPAREN) {
				qualified := tok.Literal + "." + member.Literal
				args := p.parseArgs()
				return &ast.FunctionCallExpression{Token: tok, Name: qualified, Args: args}
			}
			p.pos = save
		}
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	case token.NUMBER:
		p.advance()
		return p.numberLiteral(tok)
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.TRUE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: false}
	case token.NONE:
		p.advance()
		return &ast.NullLiteral{Token: tok}
	case token.LPAREN:
		p.advance()
		inner := p.parseExpression(precLowest)
		p.expect(token.RPAREN)
		return inner
	case token.LBRACK:
		return p.parseListLiteral()
	case token.LBRACE:
		return p.parseDictLiteral()
	default:
		p.errorfString(tok.Pos, "unexpected token %s %q in expression", tok.Kind, tok.Literal)
		p.advance()
		return &ast.NullLiteral{Token: tok}
	}
}

func (p *Parser) numberLiteral(tok token.Token) *ast.NumberLiteral {
	if tok.IsIntegerNumber() {
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.errorf(diag.NewError(tok.Pos, "invalid integer literal %q", tok.Literal))
			return &ast.NumberLiteral{Token: tok, IsInt: true}
		}
		return &ast.NumberLiteral{Token: tok, IsInt: true, Int: n}
	}
	f, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errorf(diag.NewError(tok.Pos, "invalid float literal %q", tok.Literal))
		return &ast.NumberLiteral{Token: tok}
	}
	return &ast.NumberLiteral{Token: tok, Double: f}
}

func (p *Parser) parseListLiteral() ast.Expression {
	tok := p.advance() // '['
	var elems []ast.Expression
	p.skipNewlines()
	if !p.curIs(token.RBRACK) {
		elems = append(elems, p.parseExpression(precLowest))
		p.skipNewlines()
		for p.curIs(token.COMMA) {
			p.advance()
			p.skipNewlines()
			if p.curIs(token.RBRACK) {
				break
			}
			elems = append(elems, p.parseExpression(precLowest))
			p.skipNewlines()
		}
	}
	p.expect(token.RBRACK)
	return &ast.ListLiteral{Token: tok, Elements: elems}
}

func (p *Parser) parseDictLiteral() ast.Expression {
	tok := p.advance() // '{'
	var entries []ast.DictEntry
	p.skipNewlines()
	if !p.curIs(token.RBRACE) {
		entries = append(entries, p.parseDictEntry())
		p.skipNewlines()
		for p.curIs(token.COMMA) {
			p.advance()
			p.skipNewlines()
			if p.curIs(token.RBRACE) {
				break
			}
			entries = append(entries, p.parseDictEntry())
			p.skipNewlines()
		}
	}
	p.expect(token.RBRACE)
	return &ast.DictLiteral{Token: tok, Entries: entries}
}

func (p *Parser) parseDictEntry() ast.DictEntry {
	key := p.parseExpression(precLowest)
	p.expect(token.COLON)
	value := p.parseExpression(precLowest)
	return ast.DictEntry{Key: key, Value: value}
}
