// Package postgres implements the PostgreSQL dialect. Unquoted
// identifiers fold to lowercase, array subscripts are one-based, and
// time formats use to_char tokens.
package postgres

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
}

var timeMapping = []dialect.TimePair{
	{Token: "Month", Strftime: "%B"},
	{Token: "YYYY", Strftime: "%Y"},
	{Token: "HH24", Strftime: "%H"},
	{Token: "HH12", Strftime: "%I"},
	{Token: "Mon", Strftime: "%b"},
	{Token: "YY", Strftime: "%y"},
	{Token: "MM", Strftime: "%m"},
	{Token: "DD", Strftime: "%d"},
	{Token: "Dy", Strftime: "%a"},
	{Token: "MI", Strftime: "%M"},
	{Token: "SS", Strftime: "%S"},
	{Token: "US", Strftime: "%f"},
}

var typeMapping = map[string]string{
	"INT4":    "INT",
	"INT8":    "BIGINT",
	"FLOAT4":  "FLOAT",
	"FLOAT8":  "DOUBLE",
	"BPCHAR":  "CHAR",
	"SERIAL":  "INT",
	"BYTEA":   "VARBINARY",
	"NUMERIC": "DECIMAL",
}

// New builds the PostgreSQL dialect.
func New() *dialect.Dialect {
	return dialect.NewDialect("postgres").
		Base(ansi.New()).
		Identifiers(`"`, `"`, `""`, dialect.NormLowercase).
		WithTimeMapping(timeMapping).
		WithTypeMapping(typeMapping).
		IndexOffset(1).
		AddInfixWithHandler(token.LBRACKET, dialect.PrecedencePostfix, parseSubscript).
		WithFunctionBuilders(map[string]dialect.FunctionBuilder{
			"NOW":        renameTo("CURRENT_TIMESTAMP"),
			"STRING_AGG": renameTo("GROUP_CONCAT"),
			"TO_CHAR":    buildToChar,
		}).
		WithRenderers(map[string]dialect.RenderFunc{
			"GROUP_CONCAT": renameFunc("STRING_AGG"),
			"LOCATE":       renderStrpos,
			"TO_CHAR":      renderToChar,
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

// parseSubscript normalizes the one-based subscript to the canonical
// zero-based form.
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

// renderSubscript restores the one-based subscript.
func renderSubscript(r dialect.Renderer, n ast.Node) (string, error) {
	idx, ok := n.(*ast.IndexExpr)
	if !ok {
		return "", fmt.Errorf("subscript renderer: unexpected node %T", n)
	}
	return r.Render(idx.Expr) + "[" + r.Render(shiftIndex(idx.Index, 1)) + "]", nil
}

func buildToChar(d *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
	if len(call.Args) != 2 {
		return nil, fmt.Errorf("TO_CHAR expects 2 arguments, got %d", len(call.Args))
	}
	if lit, ok := call.Args[1].(*ast.Literal); ok && lit.IsString() {
		call.Args[1] = &ast.Literal{Type: ast.StringLiteral, Value: d.ToStrftime(lit.Value)}
	}
	return call, nil
}

func renderToChar(r dialect.Renderer, n ast.Node) (string, error) {
	call, ok := n.(*ast.FuncCall)
	if !ok || len(call.Args) != 2 {
		return "", fmt.Errorf("TO_CHAR renderer: malformed call")
	}
	if lit, ok := call.Args[1].(*ast.Literal); ok && lit.IsString() {
		return "TO_CHAR(" + r.Render(call.Args[0]) + ", '" + r.FormatTime(lit.Value) + "')", nil
	}
	return "TO_CHAR(" + r.RenderList(call.Args) + ")", nil
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
