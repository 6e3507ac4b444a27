package parser

import (
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

// classDecl → "class" IDENT ( "<" IDENT )? "{" function* "}"
func (p *parser) classDecl() ast.Stmt {
	tok := p.expect(token.CLASS)
	name := p.identifier()

	var super *ast.VariableExpr
	if p.match(token.LT) {
		sname := p.identifier()
		super = &ast.VariableExpr{Name: sname, Depth: ast.UnresolvedDepth}
	}

	p.expect(token.LBRACE)
	var methods []*ast.FunctionStmt
	for p.tok != token.RBRACE && p.tok != token.EOF {
		methods = append(methods, p.function("method"))
	}
	end := p.expect(token.RBRACE)

	return &ast.ClassStmt{Tok: tok, Name: name, Superclass: super, Methods: methods, End: end}
}

// funDecl → "fun" function
func (p *parser) funDecl() ast.Stmt {
	fun := p.expect(token.FUN)
	fn := p.function("function")
	fn.Fun = fun
	return fn
}

// function → IDENT "(" params? ")" block
func (p *parser) function(kind string) *ast.FunctionStmt {
	fun := p.val.Pos
	name := p.identifier()

	p.expect(token.LPAREN)
	var params []*ast.Ident
	if p.tok != token.RPAREN {
		for {
			if len(params) >= maxArgs {
				p.error(p.val.Pos, "can't have more than 255 parameters")
			}
			params = append(params, p.identifier())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN)

	p.expect(token.LBRACE)
	body, end := p.blockBody()
	_ = kind
	return &ast.FunctionStmt{Fun: fun, Name: name, Params: params, Body: body, End: end}
}

// varDecl → "var" IDENT ( "=" expression )? ";"
func (p *parser) varDecl() ast.Stmt {
	tok := p.expect(token.VAR)
	name := p.identifier()

	var init ast.Expr
	if p.match(token.EQ) {
		init = p.expression()
	}
	p.expect(token.SEMICOLON)
	return &ast.VarStmt{Tok: tok, Name: name, Init: init}
}

// statement → exprStmt | forStmt | ifStmt | printStmt | returnStmt | whileStmt | block
func (p *parser) statement() ast.Stmt {
	switch p.tok {
	case token.FOR:
		return p.forStmt()
	case token.IF:
		return p.ifStmt()
	case token.PRINT:
		return p.printStmt()
	case token.RETURN:
		return p.returnStmt()
	case token.WHILE:
		return p.whileStmt()
	case token.LBRACE:
		lbrace := p.expect(token.LBRACE)
		stmts, rbrace := p.blockBody()
		return &ast.BlockStmt{Lbrace: lbrace, Stmts: stmts, Rbrace: rbrace}
	default:
		return p.exprStmt()
	}
}

// block → "{" declaration* "}", with the "{" already consumed by the caller.
func (p *parser) blockBody() ([]ast.Stmt, token.Pos) {
	var stmts []ast.Stmt
	for p.tok != token.RBRACE && p.tok != token.EOF {
		if s, ok := p.declaration(); ok {
			stmts = append(stmts, s)
		}
	}
	rbrace := p.expect(token.RBRACE)
	return stmts, rbrace
}

// ifStmt → "if" "(" expression ")" statement ( "else" statement )?
func (p *parser) ifStmt() ast.Stmt {
	tok := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.expression()
	p.expect(token.RPAREN)

	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return &ast.IfStmt{Tok: tok, Cond: cond, Then: then, Else: els}
}

// whileStmt → "while" "(" expression ")" statement
func (p *parser) whileStmt() ast.Stmt {
	tok := p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.expression()
	p.expect(token.RPAREN)
	body := p.statement()
	return &ast.WhileStmt{Tok: tok, Cond: cond, Body: body}
}

// forStmt desugars "for (init; cond; incr) body" into
// Block[ init, While(cond ?? true, Block[body, Expression(incr)]) ], with
// any missing clause elided (missing condition becomes literal true).
func (p *parser) forStmt() ast.Stmt {
	lbrace := p.expect(token.FOR)
	p.expect(token.LPAREN)

	var init ast.Stmt
	switch p.tok {
	case token.SEMICOLON:
		p.advance()
	case token.VAR:
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if p.tok != token.SEMICOLON {
		cond = p.expression()
	}
	p.expect(token.SEMICOLON)

	var incr ast.Expr
	if p.tok != token.RPAREN {
		incr = p.expression()
	}
	rparen := p.expect(token.RPAREN)

	body := p.statement()
	if incr != nil {
		body = &ast.BlockStmt{
			Lbrace: lbrace,
			Stmts:  []ast.Stmt{body, &ast.ExpressionStmt{Expr: incr}},
			Rbrace: rparen,
		}
	}
	if cond == nil {
		cond = &ast.LiteralExpr{Tok: litTrue, Start: lbrace, Raw: "true", Value: true}
	}
	loop := ast.Stmt(&ast.WhileStmt{Tok: lbrace, Cond: cond, Body: body})

	if init != nil {
		loop = &ast.BlockStmt{Lbrace: lbrace, Stmts: []ast.Stmt{init, loop}, Rbrace: rparen}
	}
	return loop
}

// returnStmt → "return" expression? ";"
func (p *parser) returnStmt() ast.Stmt {
	tok := p.expect(token.RETURN)
	var val ast.Expr
	if p.tok != token.SEMICOLON {
		val = p.expression()
	}
	p.expect(token.SEMICOLON)
	return &ast.ReturnStmt{Tok: tok, Value: val}
}

// printStmt → "print" expression ";"
func (p *parser) printStmt() ast.Stmt {
	tok := p.expect(token.PRINT)
	val := p.expression()
	p.expect(token.SEMICOLON)
	return &ast.PrintStmt{Tok: tok, Expr: val}
}

// exprStmt → expression ";"
//
// A stray ";" is accepted as an expression statement whose expression is
// the NoValue sentinel literal, rather than a parse error.
func (p *parser) exprStmt() ast.Stmt {
	if p.tok == token.SEMICOLON {
		pos := p.expect(token.SEMICOLON)
		return &ast.ExpressionStmt{Expr: &ast.LiteralExpr{Start: pos, Value: ast.NoValue}}
	}

	expr := p.expression()
	p.expect(token.SEMICOLON)
	return &ast.ExpressionStmt{Expr: expr}
}

func (p *parser) identifier() *ast.Ident {
	pos := p.val.Pos
	name := p.val.Raw
	p.expect(token.IDENT)
	return &ast.Ident{Name: name, NamePos: pos}
}
