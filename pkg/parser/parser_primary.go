package parser

import (
	"fmt"
	"strings"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/token"
)

// Primary expression parsing: literals, column refs, function calls,
// CASE, CAST, INTERVAL, EXTRACT, lambdas and placeholders.
//
// Grammar:
//
//	primary    → literal | column_ref | func_call | paren_expr | case_expr
//	           | cast_expr | interval | extract | exists_expr | placeholder
//	           | lambda
//	func_call  → name "(" [DISTINCT] [expr_list | "*"] ")"
//	             [WITHIN GROUP "(" ORDER BY order_list ")"]
//	             [FILTER "(" WHERE expr ")"] [IGNORE|RESPECT NULLS]
//	             [OVER window_spec]
//	lambda     → ident "->" expr | "(" ident_list ")" "->" expr

// parsePrimary parses primary expressions.
func (p *Parser) parsePrimary() ast.Expr {
	// Dialect-specific prefix handlers first
	if handler := p.dialect.PrefixHandler(p.token.Type); handler != nil {
		p.nextToken()
		expr, err := handler(p)
		if err != nil {
			p.addError(err.Error())
			return nil
		}
		return expr
	}

	switch p.token.Type {
	case token.NUMBER:
		lit := &ast.Literal{Type: ast.NumberLiteral, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.STRING:
		lit := &ast.Literal{Type: ast.StringLiteral, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.TRUE:
		p.nextToken()
		return &ast.Literal{Type: ast.BoolLiteral, Value: "TRUE"}

	case token.FALSE:
		p.nextToken()
		return &ast.Literal{Type: ast.BoolLiteral, Value: "FALSE"}

	case token.NULL:
		p.nextToken()
		return &ast.Literal{Type: ast.NullLiteral, Value: "NULL"}

	case token.CASE:
		return p.parseCaseExpr()

	case token.CAST:
		p.nextToken()
		return p.parseCastBody(false)

	case token.INTERVAL:
		return p.parseIntervalExpr()

	case token.EXTRACT:
		return p.parseExtractExpr()

	case token.EXISTS:
		return p.parseExistsExpr(false)

	case token.COLON:
		// Named placeholder :name
		p.nextToken()
		if !p.check(token.IDENT) {
			p.addError("expected name after ':'")
			return nil
		}
		ph := &ast.Placeholder{Name: p.token.Literal}
		p.nextToken()
		return ph

	case token.QUESTION:
		p.nextToken()
		return &ast.Placeholder{}

	// Keywords that also name functions (GROUPING(x), LEFT(s, n), ...)
	case token.GROUPING, token.LEFT, token.RIGHT, token.FILTER:
		if p.checkPeek(token.LPAREN) {
			name := p.token.Type.String()
			p.nextToken()
			return p.parseFuncCall(name)
		}
		p.addError(fmt.Sprintf(ErrExpectedExpression, p.token.Type))
		p.nextToken()
		return nil

	case token.IDENT:
		return p.parseIdentifierExpr()

	case token.LPAREN:
		return p.parseParenExpr()

	case token.STAR:
		p.nextToken()
		return &ast.StarExpr{}

	default:
		p.addError(fmt.Sprintf(ErrExpectedExpression, p.token.Type))
		p.nextToken()
		return nil
	}
}

// parseIdentifierExpr parses an identifier, which could be a column ref,
// function call, lambda parameter, or ARRAY constructor.
func (p *Parser) parseIdentifierExpr() ast.Expr {
	name := p.token.Literal
	quoted := p.token.Quoted

	// Single-parameter lambda: x -> expr
	if p.checkPeek(token.ARROW) {
		p.nextToken()
		p.nextToken()
		return &ast.Lambda{Params: []string{name}, Body: p.parseExpression()}
	}

	p.nextToken()

	if p.check(token.LPAREN) {
		upper := strings.ToUpper(name)
		if upper == "TRY_CAST" {
			return p.parseCastBody(true)
		}
		return p.parseFuncCall(name)
	}

	// ARRAY[1, 2, 3] constructor
	if strings.EqualFold(name, "ARRAY") && p.check(token.LBRACKET) {
		p.nextToken()
		arr := &ast.ArrayExpr{}
		if !p.check(token.RBRACKET) {
			arr.Elems = p.parseExpressionList()
		}
		p.expect(token.RBRACKET)
		return arr
	}

	if p.check(token.DOT) {
		return p.parseQualifiedColumnRef(name, quoted)
	}

	return &ast.ColumnRef{Column: name, Quoted: quoted}
}

// parseQualifiedColumnRef parses dotted references up to
// catalog.schema.table.column, and table.* stars.
func (p *Parser) parseQualifiedColumnRef(firstPart string, quoted bool) ast.Expr {
	parts := []string{firstPart}

	for p.match(token.DOT) {
		if p.check(token.STAR) {
			p.nextToken()
			return &ast.StarExpr{Table: strings.Join(parts, ".")}
		}
		if p.check(token.IDENT) {
			parts = append(parts, p.token.Literal)
			quoted = p.token.Quoted
			p.nextToken()
			continue
		}
		p.addError("expected identifier after '.'")
		break
	}

	ref := &ast.ColumnRef{Quoted: quoted}
	switch len(parts) {
	case 2:
		ref.Table = parts[0]
		ref.Column = parts[1]
	case 3:
		ref.Schema = parts[0]
		ref.Table = parts[1]
		ref.Column = parts[2]
	case 4:
		ref.Catalog = parts[0]
		ref.Schema = parts[1]
		ref.Table = parts[2]
		ref.Column = parts[3]
	default:
		ref.Column = parts[len(parts)-1]
	}
	return ref
}

// parseParenExpr parses a parenthesized expression, scalar subquery,
// tuple, or multi-parameter lambda.
func (p *Parser) parseParenExpr() ast.Expr {
	if p.checkPeek(token.SELECT) || p.checkPeek(token.WITH) {
		p.nextToken()
		sub := &ast.SubqueryExpr{Select: p.parseSelectStmt()}
		p.expect(token.RPAREN)
		return sub
	}

	p.nextToken() // consume '('
	exprs := p.parseExpressionList()
	p.expect(token.RPAREN)

	// (x, y) -> body
	if p.check(token.ARROW) {
		params := lambdaParams(exprs)
		if params == nil {
			p.addError("lambda parameters must be plain identifiers")
			return nil
		}
		p.nextToken()
		return &ast.Lambda{Params: params, Body: p.parseExpression()}
	}

	if len(exprs) == 1 {
		return &ast.ParenExpr{Expr: exprs[0]}
	}

	// Row value constructor: (a, b) IN ((1, 2), (3, 4))
	return &ast.FuncCall{Name: "TUPLE", Args: exprs}
}

// lambdaParams converts parsed expressions to lambda parameter names, or
// nil if any is not a bare column reference.
func lambdaParams(exprs []ast.Expr) []string {
	params := make([]string, 0, len(exprs))
	for _, e := range exprs {
		col, ok := e.(*ast.ColumnRef)
		if !ok || col.Table != "" {
			return nil
		}
		params = append(params, col.Column)
	}
	return params
}

// parseFuncCall parses a function call and canonicalizes it through the
// dialect's function builder, when one is registered for the name.
func (p *Parser) parseFuncCall(name string) ast.Expr {
	fn := &ast.FuncCall{Name: strings.ToUpper(name)}

	p.expect(token.LPAREN)

	if p.check(token.STAR) && p.checkPeek(token.RPAREN) {
		fn.Star = true
		p.nextToken()
	} else if !p.check(token.RPAREN) {
		if p.match(token.DISTINCT) {
			fn.Distinct = true
		}
		fn.Args = p.parseExpressionList()
	}

	p.expect(token.RPAREN)

	// WITHIN GROUP (ORDER BY ...) for ordered-set aggregates
	if p.check(token.WITHIN) && p.checkPeek(token.GROUP) {
		p.nextToken()
		p.nextToken()
		p.expect(token.LPAREN)
		p.expect(token.ORDER)
		p.expect(token.BY)
		fn.WithinGroup = p.parseOrderByList()
		p.expect(token.RPAREN)
	}

	// FILTER (WHERE ...) for aggregates
	if p.check(token.FILTER) && p.checkPeek(token.LPAREN) {
		p.nextToken()
		p.expect(token.LPAREN)
		p.expect(token.WHERE)
		fn.Filter = p.parseExpression()
		p.expect(token.RPAREN)
	}

	// IGNORE NULLS / RESPECT NULLS
	if p.checkIdent("IGNORE") && p.checkPeek(token.NULLS) {
		fn.IgnoreNulls = true
		p.nextToken()
		p.nextToken()
	} else if p.checkIdent("RESPECT") && p.checkPeek(token.NULLS) {
		p.nextToken()
		p.nextToken()
	}

	// OVER clause (window function)
	if p.match(token.OVER) {
		fn.Over = p.parseWindowSpec()
	}

	if fb := p.dialect.FunctionBuilder(fn.Name); fb != nil {
		expr, err := fb(p.dialect, fn)
		if err != nil {
			p.addError(err.Error())
			return fn
		}
		return expr
	}

	return fn
}

// parseCaseExpr parses simple and searched CASE expressions.
func (p *Parser) parseCaseExpr() ast.Expr {
	p.expect(token.CASE)
	caseExpr := &ast.CaseExpr{}

	if !p.check(token.WHEN) {
		caseExpr.Operand = p.parseExpression()
	}

	for p.match(token.WHEN) {
		when := &ast.WhenClause{}
		when.Cond = p.parseExpression()
		p.expect(token.THEN)
		when.Result = p.parseExpression()
		caseExpr.Whens = append(caseExpr.Whens, when)
	}

	if p.match(token.ELSE) {
		caseExpr.Else = p.parseExpression()
	}

	p.expect(token.END)
	return caseExpr
}

// parseCastBody parses "(" expr AS type ")" after CAST or TRY_CAST.
func (p *Parser) parseCastBody(try bool) ast.Expr {
	p.expect(token.LPAREN)
	cast := &ast.CastExpr{Try: try}
	cast.Expr = p.parseExpression()
	p.expect(token.AS)
	cast.Type = p.parseDataType()
	p.expect(token.RPAREN)
	return cast
}

// parseDataType parses a type name with optional parameters.
func (p *Parser) parseDataType() *ast.DataType {
	if !p.check(token.IDENT) {
		p.addError("expected type name")
		return &ast.DataType{Name: "UNKNOWN"}
	}
	dt := &ast.DataType{Name: strings.ToUpper(p.token.Literal)}
	p.nextToken()

	// Two-word types: DOUBLE PRECISION, TIMESTAMP WITH ... is not
	// supported; only the PRECISION suffix is folded in.
	if dt.Name == "DOUBLE" && p.checkIdent("PRECISION") {
		p.nextToken()
	}

	if p.match(token.LPAREN) {
		for p.check(token.NUMBER) {
			dt.Params = append(dt.Params, p.token.Literal)
			p.nextToken()
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}
	return dt
}

// parseIntervalExpr parses INTERVAL value [unit]. A single string value
// like '2 days' splits into value and unit.
func (p *Parser) parseIntervalExpr() ast.Expr {
	p.expect(token.INTERVAL)
	iv := &ast.IntervalExpr{}

	iv.Value = p.parsePrimary()

	if p.check(token.IDENT) {
		iv.Unit = p.token.Literal
		p.nextToken()
	} else if lit, ok := iv.Value.(*ast.Literal); ok && lit.IsString() {
		if fields := strings.Fields(lit.Value); len(fields) == 2 {
			iv.Value = &ast.Literal{Type: ast.StringLiteral, Value: fields[0]}
			iv.Unit = fields[1]
		}
	}
	return iv
}

// parseExtractExpr parses EXTRACT "(" unit FROM expr ")".
func (p *Parser) parseExtractExpr() ast.Expr {
	p.expect(token.EXTRACT)
	p.expect(token.LPAREN)

	ex := &ast.ExtractExpr{}
	if p.check(token.IDENT) {
		ex.Unit = strings.ToUpper(p.token.Literal)
		p.nextToken()
	} else {
		p.addError("expected date part in EXTRACT")
	}
	p.expect(token.FROM)
	ex.From = p.parseExpression()
	p.expect(token.RPAREN)
	return ex
}

// parseExistsExpr parses [NOT] EXISTS "(" select ")".
func (p *Parser) parseExistsExpr(not bool) ast.Expr {
	p.expect(token.EXISTS)
	p.expect(token.LPAREN)
	exists := &ast.ExistsExpr{Not: not, Select: p.parseSelectStmt()}
	p.expect(token.RPAREN)
	return exists
}
