package parser

import (
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

// litTrue is the synthetic TRUE token used by forStmt to fabricate a
// "true" literal when a for-loop omits its condition clause.
var litTrue = token.TRUE

// expression → assignment
func (p *parser) expression() ast.Expr {
	return p.assignment()
}

// assignment → ( call "." )? IDENT "=" assignment | logic_or
//
// The left-hand side is parsed as an ordinary expression (logic_or and
// down) and only afterwards checked for validity as an l-value: this
// avoids needing to look ahead past an arbitrary call/get chain to decide
// whether an assignment is coming.
func (p *parser) assignment() ast.Expr {
	expr := p.or()

	if p.tok == token.EQ {
		equals := p.val.Pos
		p.advance()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Name: target.Name, Equals: equals, Value: value, Depth: ast.UnresolvedDepth}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: target.Object, Dot: target.Dot, Name: target.Name, Value: value}
		default:
			p.error(equals, "Invalid l-value.")
			return expr
		}
	}
	return expr
}

// logic_or → logic_and ( "or" logic_and )*
func (p *parser) or() ast.Expr {
	expr := p.and()
	for p.tok == token.OR {
		op, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.and()
		expr = &ast.LogicalExpr{Left: expr, Op: op, OpPos: opPos, Right: right}
	}
	return expr
}

// logic_and → equality ( "and" equality )*
func (p *parser) and() ast.Expr {
	expr := p.equality()
	for p.tok == token.AND {
		op, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.equality()
		expr = &ast.LogicalExpr{Left: expr, Op: op, OpPos: opPos, Right: right}
	}
	return expr
}

// equality → comparison ( ("!=" | "==") comparison )*
func (p *parser) equality() ast.Expr {
	expr := p.comparison()
	for p.tok == token.BANGEQ || p.tok == token.EQEQ {
		op, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Op: op, OpPos: opPos, Right: right}
	}
	return expr
}

// comparison → term ( (">" | ">=" | "<" | "<=") term )*
func (p *parser) comparison() ast.Expr {
	expr := p.term()
	for p.tok == token.GT || p.tok == token.GE || p.tok == token.LT || p.tok == token.LE {
		op, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.term()
		expr = &ast.BinaryExpr{Left: expr, Op: op, OpPos: opPos, Right: right}
	}
	return expr
}

// term → factor ( ("-" | "+") factor )*
func (p *parser) term() ast.Expr {
	expr := p.factor()
	for p.tok == token.MINUS || p.tok == token.PLUS {
		op, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.factor()
		expr = &ast.BinaryExpr{Left: expr, Op: op, OpPos: opPos, Right: right}
	}
	return expr
}

// factor → unary ( ("/" | "*") unary )*
func (p *parser) factor() ast.Expr {
	expr := p.unary()
	for p.tok == token.SLASH || p.tok == token.STAR {
		op, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Op: op, OpPos: opPos, Right: right}
	}
	return expr
}

// unary → ("!" | "-") unary | call
func (p *parser) unary() ast.Expr {
	if p.tok == token.BANG || p.tok == token.MINUS {
		op, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.unary()
		return &ast.UnaryExpr{Op: op, OpPos: opPos, Right: right}
	}
	return p.call()
}

// call → primary ( "(" arguments? ")" | "." IDENT )*
func (p *parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch p.tok {
		case token.LPAREN:
			p.advance()
			expr = p.finishCall(expr)
		case token.DOT:
			dot := p.val.Pos
			p.advance()
			name := p.identifier()
			expr = &ast.GetExpr{Object: expr, Dot: dot, Name: name}
		default:
			return expr
		}
	}
}

// finishCall parses the argument list and closing ')' of a call expression,
// the callee and opening '(' having already been consumed.
func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if p.tok != token.RPAREN {
		for {
			if len(args) >= maxArgs {
				p.error(p.val.Pos, "can't have more than 255 arguments")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.expect(token.RPAREN)
	return &ast.CallExpr{Callee: callee, Paren: paren, Args: args}
}

// primary → "true" | "false" | "nil" | NUMBER | STRING
//
//	| "this" | IDENT | "(" expression ")" | "super" "." IDENT
func (p *parser) primary() ast.Expr {
	pos := p.val.Pos
	switch p.tok {
	case token.FALSE:
		p.advance()
		return &ast.LiteralExpr{Tok: token.FALSE, Start: pos, Raw: "false", Value: false}
	case token.TRUE:
		p.advance()
		return &ast.LiteralExpr{Tok: token.TRUE, Start: pos, Raw: "true", Value: true}
	case token.NIL:
		p.advance()
		return &ast.LiteralExpr{Tok: token.NIL, Start: pos, Raw: "nil", Value: nil}
	case token.NUMBER:
		raw, val := p.val.Raw, p.val.Float
		p.advance()
		return &ast.LiteralExpr{Tok: token.NUMBER, Start: pos, Raw: raw, Value: val}
	case token.STRING:
		raw, val := p.val.Raw, p.val.String
		p.advance()
		return &ast.LiteralExpr{Tok: token.STRING, Start: pos, Raw: raw, Value: val}
	case token.SUPER:
		p.advance()
		dot := p.expect(token.DOT)
		method := p.identifier()
		return &ast.SuperExpr{Tok: pos, Dot: dot, Method: method, Depth: ast.UnresolvedDepth}
	case token.THIS:
		p.advance()
		return &ast.ThisExpr{Tok: pos, Depth: ast.UnresolvedDepth}
	case token.IDENT:
		return &ast.VariableExpr{Name: p.identifier(), Depth: ast.UnresolvedDepth}
	case token.LPAREN:
		p.advance()
		expr := p.expression()
		rparen := p.expect(token.RPAREN)
		return &ast.GroupingExpr{Lparen: pos, Expr: expr, Rparen: rparen}
	default:
		p.errorExpected(pos, "expression")
		panic(errPanicMode)
	}
}
