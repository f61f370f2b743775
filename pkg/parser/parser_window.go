package parser

import (
	"strings"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/token"
)

// parseWindowSpec parses the parenthesized body of an OVER clause:
// "(" [PARTITION BY list] [ORDER BY list] [frame] ")".
func (p *Parser) parseWindowSpec() *ast.WindowSpec {
	spec := &ast.WindowSpec{}
	p.expect(token.LPAREN)

	if p.check(token.PARTITION) {
		p.nextToken()
		p.expect(token.BY)
		spec.PartitionBy = p.parseExpressionList()
	}

	if p.check(token.ORDER) {
		p.nextToken()
		p.expect(token.BY)
		spec.OrderBy = p.parseOrderByList()
	}

	if p.checkIdent("ROWS") || p.checkIdent("RANGE") || p.checkIdent("GROUPS") {
		spec.Frame = p.parseFrameSpec()
	}

	p.expect(token.RPAREN)
	return spec
}

// parseFrameSpec parses a window frame clause:
// ROWS|RANGE|GROUPS (bound | BETWEEN bound AND bound).
func (p *Parser) parseFrameSpec() *ast.FrameSpec {
	frame := &ast.FrameSpec{Unit: strings.ToUpper(p.token.Literal)}
	p.nextToken()

	if p.match(token.BETWEEN) {
		frame.Start = p.parseFrameBound()
		p.expect(token.AND)
		end := p.parseFrameBound()
		frame.End = &end
	} else {
		frame.Start = p.parseFrameBound()
	}
	return frame
}

// parseFrameBound parses a single frame endpoint.
func (p *Parser) parseFrameBound() ast.FrameBound {
	if p.checkIdent("UNBOUNDED") {
		p.nextToken()
		if p.checkIdent("PRECEDING") {
			p.nextToken()
			return ast.FrameBound{Type: ast.UnboundedPreceding}
		}
		if p.checkIdent("FOLLOWING") {
			p.nextToken()
			return ast.FrameBound{Type: ast.UnboundedFollowing}
		}
		p.addError("expected PRECEDING or FOLLOWING after UNBOUNDED")
		return ast.FrameBound{Type: ast.UnboundedPreceding}
	}

	if p.checkIdent("CURRENT") {
		p.nextToken()
		if !p.checkIdent("ROW") {
			p.addError("expected ROW after CURRENT")
		} else {
			p.nextToken()
		}
		return ast.FrameBound{Type: ast.CurrentRow}
	}

	offset := p.parsePrimary()
	if p.checkIdent("PRECEDING") {
		p.nextToken()
		return ast.FrameBound{Type: ast.OffsetPreceding, Offset: offset}
	}
	if p.checkIdent("FOLLOWING") {
		p.nextToken()
		return ast.FrameBound{Type: ast.OffsetFollowing, Offset: offset}
	}
	p.addError("expected PRECEDING or FOLLOWING in window frame")
	return ast.FrameBound{Type: ast.OffsetPreceding, Offset: offset}
}
