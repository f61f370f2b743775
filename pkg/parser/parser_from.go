package parser

import (
	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/token"
)

// FROM clause parsing: table references, derived tables, VALUES sources,
// and joins.
//
// Grammar:
//
//	from_clause → table_ref (join)*
//	table_ref   → qualified_name [alias]
//	            | "(" (select | values) ")" [alias ["(" col_list ")"]]
//	            | VALUES row_list [alias ["(" col_list ")"]]
//	            | LATERAL "(" select ")" [alias]
//	join        → [NATURAL] join_head table_ref [ON expr | USING "(" col_list ")"]

// parseFromClause parses the FROM source and any joins.
func (p *Parser) parseFromClause() *ast.FromClause {
	fc := &ast.FromClause{Source: p.parseTableRef()}

	// Comma-separated sources parse as cross joins.
	for {
		if p.match(token.COMMA) {
			fc.Joins = append(fc.Joins, &ast.Join{
				JoinKind: "CROSS",
				Target:   p.parseTableRef(),
			})
			continue
		}
		if !p.atJoinStart() {
			break
		}
		join := p.parseJoin()
		if join == nil {
			break
		}
		fc.Joins = append(fc.Joins, join)
	}
	return fc
}

// atJoinStart returns true if the current token begins a join.
func (p *Parser) atJoinStart() bool {
	switch p.token.Type {
	case token.JOIN, token.LEFT, token.RIGHT, token.FULL, token.INNER,
		token.OUTER, token.CROSS, token.NATURAL, token.SEMI, token.ANTI:
		return true
	}
	return false
}

// parseJoin parses one join. SQL splits join syntax into a side (LEFT,
// RIGHT, FULL) and a kind (INNER, OUTER, CROSS, SEMI, ANTI); a side with
// no explicit kind implies OUTER.
func (p *Parser) parseJoin() *ast.Join {
	join := &ast.Join{}

	join.Natural = p.match(token.NATURAL)

	switch p.token.Type {
	case token.LEFT:
		join.Side = "LEFT"
		p.nextToken()
	case token.RIGHT:
		join.Side = "RIGHT"
		p.nextToken()
	case token.FULL:
		join.Side = "FULL"
		p.nextToken()
	}

	switch p.token.Type {
	case token.OUTER:
		join.JoinKind = "OUTER"
		p.nextToken()
	case token.INNER:
		join.JoinKind = "INNER"
		p.nextToken()
	case token.CROSS:
		join.JoinKind = "CROSS"
		p.nextToken()
	case token.SEMI:
		join.JoinKind = "SEMI"
		p.nextToken()
	case token.ANTI:
		join.JoinKind = "ANTI"
		p.nextToken()
	}

	if join.JoinKind == "" {
		if join.Side != "" {
			join.JoinKind = "OUTER"
		} else {
			join.JoinKind = "INNER"
		}
	}

	p.expect(token.JOIN)
	join.Target = p.parseTableRef()

	switch {
	case p.match(token.ON):
		join.On = p.parseExpression()
	case p.match(token.USING):
		p.expect(token.LPAREN)
		join.Using = p.parseIdentList()
		p.expect(token.RPAREN)
	}

	return join
}

// parseTableRef parses one table reference.
func (p *Parser) parseTableRef() ast.TableRef {
	switch p.token.Type {
	case token.LPAREN:
		return p.parseDerivedOrValues(false)

	case token.LATERAL:
		p.nextToken()
		if p.check(token.LPAREN) {
			return p.parseDerivedOrValues(true)
		}
		p.addError("expected subquery after LATERAL")
		return nil

	case token.VALUES:
		values := p.parseValuesClause()
		values.Alias, _ = p.parseAlias()
		if values.Alias != "" && p.match(token.LPAREN) {
			values.Columns = p.parseIdentList()
			p.expect(token.RPAREN)
		}
		return values

	case token.IDENT:
		return p.parseTableName()

	default:
		p.addError("expected table reference")
		return nil
	}
}

// parseDerivedOrValues parses "(" select-or-values ")" with alias.
func (p *Parser) parseDerivedOrValues(lateral bool) ast.TableRef {
	p.expect(token.LPAREN)

	if p.check(token.VALUES) {
		values := p.parseValuesClause()
		p.expect(token.RPAREN)
		values.Alias, _ = p.parseAlias()
		if values.Alias != "" && p.match(token.LPAREN) {
			values.Columns = p.parseIdentList()
			p.expect(token.RPAREN)
		}
		return values
	}

	dt := &ast.DerivedTable{
		Select:  p.parseSelectStmt(),
		Lateral: lateral,
	}
	p.expect(token.RPAREN)
	dt.Alias, _ = p.parseAlias()
	if dt.Alias != "" && p.match(token.LPAREN) {
		dt.Columns = p.parseIdentList()
		p.expect(token.RPAREN)
	}
	return dt
}

// parseTableName parses [catalog.][schema.]name [alias].
func (p *Parser) parseTableName() *ast.TableName {
	parts := []string{p.token.Literal}
	quoted := p.token.Quoted
	p.nextToken()

	for p.check(token.DOT) && p.checkPeek(token.IDENT) {
		p.nextToken()
		parts = append(parts, p.token.Literal)
		quoted = p.token.Quoted
		p.nextToken()
	}

	t := &ast.TableName{Quoted: quoted}
	switch len(parts) {
	case 1:
		t.Name = parts[0]
	case 2:
		t.Schema, t.Name = parts[0], parts[1]
	default:
		t.Catalog, t.Schema = parts[0], parts[1]
		t.Name = parts[len(parts)-1]
	}

	t.Alias, _ = p.parseAlias()
	return t
}
