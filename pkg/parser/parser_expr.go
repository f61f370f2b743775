package parser

import (
	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/token"
)

// Expression parsing uses precedence climbing with dialect-aware
// precedence. The dialect table is consulted first so dialects can add
// operators (ILIKE, ::); the default ANSI table is the fallback.

// parseExpression parses an expression.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseExpressionWithPrecedence(dialect.PrecedenceNone + 1)
}

// parseExpressionWithPrecedence implements precedence climbing.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) ast.Expr {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for {
		prec := p.getInfixPrecedence()
		if prec < minPrecedence {
			break
		}

		left = p.parseInfixExpr(left, prec)
		if left == nil {
			break
		}
	}

	return left
}

// parsePrefixExpr parses unary operators and primary expressions.
func (p *Parser) parsePrefixExpr() ast.Expr {
	switch p.token.Type {
	case token.NOT:
		if p.checkPeek(token.EXISTS) {
			p.nextToken()
			return p.parseExistsExpr(true)
		}
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(dialect.PrecedenceNot)
		return &ast.UnaryExpr{Op: "NOT", Expr: expr}

	case token.MINUS:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(dialect.PrecedenceUnary)
		return &ast.UnaryExpr{Op: "-", Expr: expr}

	case token.PLUS:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(dialect.PrecedenceUnary)
		return &ast.UnaryExpr{Op: "+", Expr: expr}

	default:
		return p.parsePrimary()
	}
}

// getInfixPrecedence returns the precedence of the current token as an
// infix operator, or 0 if it is not one.
func (p *Parser) getInfixPrecedence() int {
	if prec := p.dialect.Precedence(p.token.Type); prec > 0 {
		return prec
	}
	return defaultPrecedence(p.token.Type)
}

// defaultPrecedence returns the ANSI precedence for an operator.
func defaultPrecedence(t token.TokenType) int {
	switch t {
	case token.OR:
		return dialect.PrecedenceOr
	case token.AND:
		return dialect.PrecedenceAnd
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		return dialect.PrecedenceComparison
	case token.IS, token.IN, token.BETWEEN, token.LIKE:
		return dialect.PrecedenceComparison
	case token.NOT:
		// NOT as infix introduces NOT IN / NOT BETWEEN / NOT LIKE
		return dialect.PrecedenceComparison
	case token.PLUS, token.MINUS, token.DPIPE:
		return dialect.PrecedenceAddition
	case token.STAR, token.SLASH, token.PERCENT:
		return dialect.PrecedenceMultiply
	case token.DCOLON, token.LBRACKET:
		return dialect.PrecedencePostfix
	default:
		if t == tokenIlike {
			return dialect.PrecedenceComparison
		}
		return dialect.PrecedenceNone
	}
}

// parseInfixExpr parses an infix expression given the left operand and
// the current operator's precedence.
func (p *Parser) parseInfixExpr(left ast.Expr, prec int) ast.Expr {
	// Dialect handlers win over the builtin operator forms.
	if handler := p.dialect.InfixHandler(p.token.Type); handler != nil {
		op := p.token
		p.nextToken()
		result, err := handler(p, left)
		if err != nil {
			p.addError(err.Error())
			return left
		}
		if result != nil {
			return result
		}
		return &ast.BinaryExpr{
			Left:  left,
			Op:    op.Type.String(),
			Right: p.parseExpressionWithPrecedence(prec + 1),
		}
	}

	switch p.token.Type {
	case token.NOT:
		return p.parseNotInfixExpr(left)

	case token.IS:
		return p.parseIsExpr(left)

	case token.IN:
		p.nextToken()
		return p.parseInExpr(left, false)

	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenExpr(left, false)

	case token.LIKE:
		p.nextToken()
		return p.parseLikeExpr(left, false, false)

	case token.DCOLON:
		p.nextToken()
		return &ast.CastExpr{Expr: left, Type: p.parseDataType(), Shorthand: true}

	case token.LBRACKET:
		p.nextToken()
		index := p.parseExpression()
		p.expect(token.RBRACKET)
		return &ast.IndexExpr{Expr: left, Index: index}
	}

	if p.token.Type == tokenIlike {
		p.nextToken()
		return p.parseLikeExpr(left, false, true)
	}

	// Standard binary operators, left-associative
	op := p.token
	p.nextToken()
	right := p.parseExpressionWithPrecedence(prec + 1)

	return &ast.BinaryExpr{Left: left, Op: binaryOpText(op), Right: right}
}

// binaryOpText returns the canonical operator text for a binary operator
// token.
func binaryOpText(tok token.Token) string {
	switch tok.Type {
	case token.AND:
		return "AND"
	case token.OR:
		return "OR"
	default:
		return tok.Type.String()
	}
}

// parseNotInfixExpr handles NOT as an infix modifier.
func (p *Parser) parseNotInfixExpr(left ast.Expr) ast.Expr {
	p.nextToken() // consume NOT

	switch p.token.Type {
	case token.IN:
		p.nextToken()
		return p.parseInExpr(left, true)

	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenExpr(left, true)

	case token.LIKE:
		p.nextToken()
		return p.parseLikeExpr(left, true, false)

	default:
		if p.token.Type == tokenIlike {
			p.nextToken()
			return p.parseLikeExpr(left, true, true)
		}
		p.addError("expected IN, BETWEEN, LIKE, or ILIKE after NOT")
		return left
	}
}

// parseIsExpr parses IS [NOT] NULL / TRUE / FALSE.
func (p *Parser) parseIsExpr(left ast.Expr) ast.Expr {
	p.nextToken() // consume IS

	isNot := p.match(token.NOT)

	switch p.token.Type {
	case token.NULL:
		p.nextToken()
		return &ast.IsNullExpr{Expr: left, Not: isNot}

	case token.TRUE:
		p.nextToken()
		return &ast.IsBoolExpr{Expr: left, Not: isNot, Value: true}

	case token.FALSE:
		p.nextToken()
		return &ast.IsBoolExpr{Expr: left, Not: isNot, Value: false}

	default:
		p.addError("expected NULL, TRUE, or FALSE after IS")
		return left
	}
}

// parseInExpr parses an IN list or subquery.
func (p *Parser) parseInExpr(left ast.Expr, not bool) ast.Expr {
	p.expect(token.LPAREN)
	in := &ast.InExpr{Expr: left, Not: not}

	if p.check(token.SELECT) || p.check(token.WITH) {
		in.Subquery = p.parseSelectStmt()
	} else {
		in.List = p.parseExpressionList()
	}

	p.expect(token.RPAREN)
	return in
}

// parseBetweenExpr parses BETWEEN low AND high. Bounds parse at addition
// precedence so the AND separator is not captured.
func (p *Parser) parseBetweenExpr(left ast.Expr, not bool) ast.Expr {
	between := &ast.BetweenExpr{Expr: left, Not: not}
	between.Low = p.parseExpressionWithPrecedence(dialect.PrecedenceAddition)
	p.expect(token.AND)
	between.High = p.parseExpressionWithPrecedence(dialect.PrecedenceAddition)
	return between
}

// parseLikeExpr parses a LIKE/ILIKE pattern with optional ESCAPE.
func (p *Parser) parseLikeExpr(left ast.Expr, not, ilike bool) ast.Expr {
	like := &ast.LikeExpr{Expr: left, Not: not, ILike: ilike}
	like.Pattern = p.parseExpressionWithPrecedence(dialect.PrecedenceAddition)
	if p.match(token.ESCAPE) {
		like.Escape = p.parseExpressionWithPrecedence(dialect.PrecedenceAddition)
	}
	return like
}
