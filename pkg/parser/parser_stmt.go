package parser

import (
	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/token"
)

// Statement-level parsing: WITH, select bodies, set operations, and the
// statement-level ORDER BY / LIMIT / OFFSET that apply after set
// operations.

// parseSelectStmt parses a full query.
func (p *Parser) parseSelectStmt() *ast.SelectStmt {
	stmt := &ast.SelectStmt{}

	if p.check(token.WITH) {
		stmt.With = p.parseWithClause()
	}

	stmt.Body = p.parseSelectBody()

	if p.check(token.ORDER) {
		p.nextToken()
		p.expect(token.BY)
		stmt.OrderBy = p.parseOrderByList()
	}
	if p.match(token.LIMIT) {
		stmt.Limit = p.parseExpression()
	}
	if p.match(token.OFFSET) {
		stmt.Offset = p.parseExpression()
	}

	return stmt
}

// parseWithClause parses WITH [RECURSIVE] cte ("," cte)*.
func (p *Parser) parseWithClause() *ast.WithClause {
	p.expect(token.WITH)
	wc := &ast.WithClause{Recursive: p.match(token.RECURSIVE)}

	for {
		cte := p.parseCTE()
		if cte == nil {
			break
		}
		wc.CTEs = append(wc.CTEs, cte)
		if !p.match(token.COMMA) {
			break
		}
	}
	return wc
}

// parseCTE parses name [(col, ...)] AS "(" select | values ")".
func (p *Parser) parseCTE() *ast.CTE {
	if !p.check(token.IDENT) {
		p.addError("expected CTE name")
		return nil
	}
	cte := &ast.CTE{Name: p.token.Literal, Quoted: p.token.Quoted}
	p.nextToken()

	if p.match(token.LPAREN) {
		cte.Columns = p.parseIdentList()
		p.expect(token.RPAREN)
	}

	p.expect(token.AS)
	p.expect(token.LPAREN)
	if p.check(token.VALUES) {
		cte.Body = p.parseValuesClause()
	} else {
		cte.Body = p.parseSelectStmt()
	}
	p.expect(token.RPAREN)
	return cte
}

// parseSelectBody parses a select core, then any set operations,
// right-recursively so the chain reads left to right.
func (p *Parser) parseSelectBody() *ast.SelectBody {
	body := &ast.SelectBody{Core: p.parseSelectCore()}

	var op ast.SetOpType
	switch p.token.Type {
	case token.UNION:
		op = ast.SetOpUnion
	case token.EXCEPT:
		op = ast.SetOpExcept
	case token.INTERSECT:
		op = ast.SetOpIntersect
	default:
		return body
	}
	p.nextToken()

	body.Op = op
	body.All = p.match(token.ALL)
	if !body.All {
		p.match(token.DISTINCT) // UNION DISTINCT is the default
	}
	body.Right = p.parseSelectBody()
	return body
}

// parseSelectCore parses one SELECT block or a VALUES row constructor.
func (p *Parser) parseSelectCore() *ast.SelectCore {
	core := &ast.SelectCore{}

	// Parenthesized select operand: flatten the inner body.
	if p.check(token.LPAREN) &&
		(p.checkPeek(token.SELECT) || p.checkPeek(token.WITH) || p.checkPeek(token.VALUES)) {
		p.nextToken()
		inner := p.parseSelectStmt()
		p.expect(token.RPAREN)
		core.From = &ast.FromClause{
			Source: &ast.DerivedTable{Select: inner},
		}
		core.Items = []*ast.SelectItem{{Expr: &ast.StarExpr{}}}
		return core
	}

	// Bare VALUES in select-core position (e.g. a CTE body or a set
	// operand) parses as a FROM-less core over the row constructor.
	if p.check(token.VALUES) {
		values := p.parseValuesClause()
		core.From = &ast.FromClause{Source: values}
		core.Items = []*ast.SelectItem{{Expr: &ast.StarExpr{}}}
		return core
	}

	p.expect(token.SELECT)

	if p.match(token.DISTINCT) {
		core.Distinct = true
	} else {
		p.match(token.ALL)
	}

	core.Items = p.parseSelectItems()

	if p.match(token.FROM) {
		core.From = p.parseFromClause()
	}
	if p.match(token.WHERE) {
		core.Where = p.parseExpression()
	}
	if p.check(token.GROUP) {
		p.nextToken()
		p.expect(token.BY)
		core.GroupBy = p.parseGroupByList()
	}
	if p.match(token.HAVING) {
		core.Having = p.parseExpression()
	}
	if p.token.Type == tokenQualify {
		p.nextToken()
		core.Qualify = p.parseExpression()
	}

	return core
}

// parseSelectItems parses the projection list.
func (p *Parser) parseSelectItems() []*ast.SelectItem {
	var items []*ast.SelectItem
	for {
		item := &ast.SelectItem{Expr: p.parseExpression()}
		if item.Expr == nil {
			break
		}
		item.Alias, item.QuotedAlias = p.parseAlias()
		items = append(items, item)
		if !p.match(token.COMMA) {
			break
		}
	}
	return items
}

// parseAlias parses [AS] alias. A bare identifier is accepted as an
// implicit alias; keywords are not.
func (p *Parser) parseAlias() (string, bool) {
	if p.match(token.AS) {
		switch p.token.Type {
		case token.IDENT:
			name := p.token.Literal
			p.nextToken()
			return name, false
		case token.STRING:
			name := p.token.Literal
			p.nextToken()
			return name, true
		default:
			p.addError("expected alias after AS")
			return "", false
		}
	}
	if p.check(token.IDENT) {
		name := p.token.Literal
		p.nextToken()
		return name, false
	}
	return "", false
}

// parseGroupByList parses GROUP BY terms, including GROUPING SETS.
func (p *Parser) parseGroupByList() []ast.Expr {
	var exprs []ast.Expr
	for {
		if p.check(token.GROUPING) && p.checkPeek(token.SETS) {
			p.nextToken()
			p.nextToken()
			exprs = append(exprs, p.parseGroupingSets())
		} else {
			expr := p.parseExpression()
			if expr == nil {
				break
			}
			exprs = append(exprs, expr)
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	return exprs
}

// parseGroupingSets parses "(" set ("," set)* ")" where each set is a
// parenthesized (possibly empty) expression list or a single expression.
func (p *Parser) parseGroupingSets() *ast.GroupingSetsExpr {
	gs := &ast.GroupingSetsExpr{}
	p.expect(token.LPAREN)
	for {
		if p.match(token.LPAREN) {
			var set []ast.Expr
			if !p.check(token.RPAREN) {
				set = p.parseExpressionList()
			}
			p.expect(token.RPAREN)
			gs.Sets = append(gs.Sets, set)
		} else {
			gs.Sets = append(gs.Sets, []ast.Expr{p.parseExpression()})
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return gs
}

// parseOrderByList parses order keys with direction and NULLS placement.
func (p *Parser) parseOrderByList() []*ast.OrderByItem {
	var items []*ast.OrderByItem
	for {
		item := &ast.OrderByItem{Expr: p.parseExpression()}
		if item.Expr == nil {
			break
		}
		if p.match(token.DESC) {
			item.Desc = true
		} else {
			p.match(token.ASC)
		}
		if p.match(token.NULLS) {
			switch {
			case p.match(token.FIRST):
				item.Nulls = "FIRST"
			case p.match(token.LAST):
				item.Nulls = "LAST"
			default:
				p.addError("expected FIRST or LAST after NULLS")
			}
		}
		items = append(items, item)
		if !p.match(token.COMMA) {
			break
		}
	}
	return items
}

// parseValuesClause parses VALUES "(" exprs ")" ("," "(" exprs ")")*.
func (p *Parser) parseValuesClause() *ast.ValuesClause {
	p.expect(token.VALUES)
	values := &ast.ValuesClause{}
	for {
		p.expect(token.LPAREN)
		row := p.parseExpressionList()
		p.expect(token.RPAREN)
		values.Rows = append(values.Rows, row)
		if !p.match(token.COMMA) {
			break
		}
	}
	return values
}

// parseIdentList parses a comma-separated identifier list.
func (p *Parser) parseIdentList() []string {
	var names []string
	for p.check(token.IDENT) {
		names = append(names, p.token.Literal)
		p.nextToken()
		if !p.match(token.COMMA) {
			break
		}
	}
	return names
}

// parseExpressionList parses a comma-separated list of expressions.
func (p *Parser) parseExpressionList() []ast.Expr {
	var exprs []ast.Expr
	for {
		expr := p.parseExpression()
		if expr == nil {
			break
		}
		exprs = append(exprs, expr)
		if !p.match(token.COMMA) {
			break
		}
	}
	return exprs
}
