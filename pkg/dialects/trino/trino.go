// Package trino implements the Trino dialect and registers a presto
// alias. Array subscripts are one-based and the array function family
// uses the canonical argument orders.
package trino

import (
	"fmt"
	"strconv"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/dialects/ansi"
	"github.com/e6data/sqlporter/pkg/token"
)

func init() {
	dialect.Register(New())
	dialect.Register(dialect.NewDialect("presto").Base(New()).Build())
}

// New builds the Trino dialect.
func New() *dialect.Dialect {
	return dialect.NewDialect("trino").
		Base(ansi.New()).
		IndexOffset(1).
		AddInfixWithHandler(token.LBRACKET, dialect.PrecedencePostfix, parseSubscript).
		WithFunctionBuilders(map[string]dialect.FunctionBuilder{
			"ARBITRARY":   renameTo("ANY_VALUE"),
			"ELEMENT_AT":  buildElementAt,
			"TO_UNIXTIME": renameTo("TO_UNIX_TIMESTAMP"),
			"CARDINALITY": renameTo("ARRAY_SIZE"),
		}).
		WithRenderers(map[string]dialect.RenderFunc{
			"FROM_UNIXTIME_WITHUNIT": renderFromUnixtime,
			"TO_UNIX_TIMESTAMP":      renameFunc("TO_UNIXTIME"),
			"ARRAY_SIZE":             renameFunc("CARDINALITY"),
			"ANY_VALUE":              renameFunc("ARBITRARY"),
			"LOCATE":                 renderStrpos,
		}).
		AddNodeRenderer(ast.KindIndex, renderSubscript).
		Build()
}

func renameTo(canonical string) dialect.FunctionBuilder {
	return func(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
		call.Name = canonical
		return call, nil
	}
}

func renameFunc(name string) dialect.RenderFunc {
	return func(r dialect.Renderer, n ast.Node) (string, error) {
		call, ok := n.(*ast.FuncCall)
		if !ok {
			return "", fmt.Errorf("%s renderer: unexpected node %T", name, n)
		}
		clone := *call
		clone.Name = name
		return r.Render(&clone), nil
	}
}

func buildElementAt(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
	if len(call.Args) != 2 {
		return nil, fmt.Errorf("ELEMENT_AT expects 2 arguments, got %d", len(call.Args))
	}
	return &ast.IndexExpr{Expr: call.Args[0], Index: shiftIndex(call.Args[1], -1)}, nil
}

func parseSubscript(p dialect.ParserOps, left ast.Expr) (ast.Expr, error) {
	index, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.Expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.IndexExpr{Expr: left, Index: shiftIndex(index, -1)}, nil
}

func renderSubscript(r dialect.Renderer, n ast.Node) (string, error) {
	idx, ok := n.(*ast.IndexExpr)
	if !ok {
		return "", fmt.Errorf("subscript renderer: unexpected node %T", n)
	}
	return r.Render(idx.Expr) + "[" + r.Render(shiftIndex(idx.Index, 1)) + "]", nil
}

// renderFromUnixtime drops the unit argument: the engine-specific
// FROM_UNIXTIME_WITHUNIT has no Trino counterpart.
func renderFromUnixtime(r dialect.Renderer, n ast.Node) (string, error) {
	call, ok := n.(*ast.FuncCall)
	if !ok || len(call.Args) == 0 {
		return "", fmt.Errorf("FROM_UNIXTIME_WITHUNIT renderer: malformed call")
	}
	return "FROM_UNIXTIME(" + r.Render(call.Args[0]) + ")", nil
}

// renderStrpos maps the canonical LOCATE(substring, string) to
// STRPOS(string, substring).
func renderStrpos(r dialect.Renderer, n ast.Node) (string, error) {
	call, ok := n.(*ast.FuncCall)
	if !ok || len(call.Args) != 2 {
		return "", fmt.Errorf("LOCATE renderer: malformed call")
	}
	return "STRPOS(" + r.Render(call.Args[1]) + ", " + r.Render(call.Args[0]) + ")", nil
}

func shiftIndex(idx ast.Expr, delta int) ast.Expr {
	if lit, ok := idx.(*ast.Literal); ok && lit.Type == ast.NumberLiteral {
		if v, err := strconv.Atoi(lit.Value); err == nil {
			return &ast.Literal{Type: ast.NumberLiteral, Value: strconv.Itoa(v + delta)}
		}
	}
	op := "+"
	if delta < 0 {
		op = "-"
		delta = -delta
	}
	return &ast.BinaryExpr{Left: idx, Op: op, Right: &ast.Literal{Type: ast.NumberLiteral, Value: strconv.Itoa(delta)}}
}
