package parser

import (
	"github.com/shantanunp/grizzly/internal/token"
	"github.com/shantanunp/grizzly/pkg/ast"
)

// parseProgram implements `program := (import | function | NEWLINE)*`.
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		switch {
		case p.curIs(token.NEWLINE):
			p.advance()
		case p.curIs(token.IMPORT):
			prog.Imports = append(prog.Imports, p.parseImport())
		case p.curIs(token.DEF):
			prog.Functions = append(prog.Functions, p.parseFunction())
		default:
			p.errorfString(p.cur().Pos, "expected 'import' or 'def', got %s %q", p.cur().Kind, p.cur().Literal)
			p.advance()
		}
	}
	return prog
}

func (p *Parser) parseImport() *ast.ImportStatement {
	tok := p.advance() // 'import'
	name, _ := p.expect(token.IDENT)
	p.consumeStmtEnd()
	return &ast.ImportStatement{Token: tok, Module: name.Literal}
}

func (p *Parser) parseFunction() *ast.FunctionDef {
	tok := p.advance() // 'def'
	name, _ := p.expect(token.IDENT)
	p.expect(token.LPAREN)
	var params []string
	if !p.curIs(token.RPAREN) {
		id, _ := p.expect(token.IDENT)
		params = append(params, id.Literal)
		for p.curIs(token.COMMA) {
			p.advance()
			id, _ := p.expect(token.IDENT)
			params = append(params, id.Literal)
		}
	}
	p.expect(token.RPAREN)
	p.expect(token.COLON)
	body := p.parseBlock()
	return &ast.FunctionDef{Token: tok, Name: name.Literal, Params: params, Body: body}
}

// parseBlock implements `block := (NEWLINE)* INDENT? stmt+ DEDENT?`,
// tolerating a missing INDENT right after a header line by treating
// the next single statement as the block's sole child (§4.2).
func (p *Parser) parseBlock() []ast.Statement {
	p.skipNewlines()
	if !p.curIs(token.INDENT) {
		if p.blockWouldBeEmpty() {
			p.errorfString(p.cur().Pos, "expected an indented block, got %s %q", p.cur().Kind, p.cur().Literal)
			return nil
		}
		return []ast.Statement{p.parseStatement()}
	}
	p.advance() // INDENT
	var stmts []ast.Statement
	for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) {
			p.advance()
			continue
		}
		stmts = append(stmts, p.parseStatement())
	}
	if p.curIs(token.DEDENT) {
		p.advance()
	}
	if len(stmts) == 0 {
		p.errorfString(p.cur().Pos, "block must not be empty")
	}
	return stmts
}

func (p *Parser) blockWouldBeEmpty() bool {
	return p.curIs(token.DEDENT) || p.curIs(token.EOF) || p.curIs(token.DEF)
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Kind {
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		tok := p.advance()
		p.consumeStmtEnd()
		return &ast.BreakStatement{Token: tok}
	case token.CONTINUE:
		tok := p.advance()
		p.consumeStmtEnd()
		return &ast.ContinueStatement{Token: tok}
	case token.IMPORT:
		return p.parseImport()
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	default:
		return p.parseExprOrAssign()
	}
}

func (p *Parser) parseReturn() *ast.ReturnStatement {
	tok := p.advance() // 'return'
	if p.curIs(token.NEWLINE) || p.curIs(token.DEDENT) || p.curIs(token.EOF) {
		p.consumeStmtEnd()
		return &ast.ReturnStatement{Token: tok}
	}
	val := p.parseExpression(precLowest)
	p.consumeStmtEnd()
	return &ast.ReturnStatement{Token: tok, Value: val}
}

func (p *Parser) parseIf() *ast.IfStatement {
	tok := p.advance() // 'if'
	cond := p.parseExpression(precLowest)
	p.expect(token.COLON)
	then := p.parseBlock()

	stmt := &ast.IfStatement{Token: tok, Cond: cond, Then: then}
	for p.curIs(token.ELIF) {
		p.advance()
		elifCond := p.parseExpression(precLowest)
		p.expect(token.COLON)
		elifBody := p.parseBlock()
		stmt.ElifConds = append(stmt.ElifConds, elifCond)
		stmt.ElifBody = append(stmt.ElifBody, elifBody)
	}
	if p.curIs(token.ELSE) {
		p.advance()
		p.expect(token.COLON)
		stmt.Else = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseFor() *ast.ForLoop {
	tok := p.advance() // 'for'
	varName, _ := p.expect(token.IDENT)
	p.expect(token.IN)
	iterable := p.parseExpression(precLowest)
	p.expect(token.COLON)
	body := p.parseBlock()
	return &ast.ForLoop{Token: tok, Var: varName.Literal, Iterable: iterable, Body: body}
}

func (p *Parser) parseWhile() *ast.WhileLoop {
	tok := p.advance() // 'while'
	cond := p.parseExpression(precLowest)
	p.expect(token.COLON)
	body := p.parseBlock()
	return &ast.WhileLoop{Token: tok, Cond: cond, Body: body}
}

// parseExprOrAssign implements `exprOrAssign := expr ('=' expr)?`,
// turning a bare call into a FunctionCallStatement per §4.2's rule
// ("a bare expression followed by `(args)` at statement level becomes
// a FunctionCall statement; otherwise it remains an
// ExpressionStatement").
func (p *Parser) parseExprOrAssign() ast.Statement {
	tok := p.cur()
	expr := p.parseExpression(precLowest)
	if p.curIs(token.ASSIGN) {
		p.advance()
		value := p.parseExpression(precLowest)
		p.consumeStmtEnd()
		return &ast.Assignment{Token: tok, Target: expr, Value: value}
	}
	p.consumeStmtEnd()
	switch expr.(type) {
	case *ast.FunctionCallExpression, *ast.MethodCall:
		return &ast.FunctionCallStatement{Token: tok, Call: expr}
	default:
		return &ast.ExpressionStatement{Token: tok, Expr: expr}
	}
}

// consumeStmtEnd consumes the NEWLINE terminating a statement,
// tolerating DEDENT/EOF (the lexer's EOF sequence always appends a
// trailing NEWLINE, but a statement that is a block's last line
// before a DEDENT needs no extra token consumed).
func (p *Parser) consumeStmtEnd() {
	if p.curIs(token.NEWLINE) {
		p.advance()
		return
	}
	if p.curIs(token.DEDENT) || p.curIs(token.EOF) {
		return
	}
	p.errorfString(p.cur().Pos, "expected end of statement, got %s %q", p.cur().Kind, p.cur().Literal)
}
