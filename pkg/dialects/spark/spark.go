// Package spark implements the Spark SQL dialect and registers a
// databricks alias with identical tables. Identifiers quote with
// backticks, strings accept backslash escapes, and time formats use
// Java-style tokens.
package spark

import (
	"fmt"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/dialects/ansi"
)

func init() {
	dialect.Register(New())
	dialect.Register(dialect.NewDialect("databricks").Base(New()).Build())
}

var timeMapping = []dialect.TimePair{
	{Token: "yyyy", Strftime: "%Y"},
	{Token: "MMMM", Strftime: "%B"},
	{Token: "MMM", Strftime: "%b"},
	{Token: "yy", Strftime: "%y"},
	{Token: "MM", Strftime: "%m"},
	{Token: "dd", Strftime: "%d"},
	{Token: "HH", Strftime: "%H"},
	{Token: "hh", Strftime: "%I"},
	{Token: "mm", Strftime: "%M"},
	{Token: "ss", Strftime: "%S"},
	{Token: "EE", Strftime: "%a"},
}

var typeMapping = map[string]string{
	"STRING": "VARCHAR",
	"LONG":   "BIGINT",
	"SHORT":  "SMALLINT",
	"BYTE":   "TINYINT",
}

// New builds the Spark dialect.
func New() *dialect.Dialect {
	return dialect.NewDialect("spark").
		Base(ansi.New()).
		Identifiers("`", "`", "``", dialect.NormCaseInsensitive).
		BackslashStringEscapes().
		WithTimeMapping(timeMapping).
		WithTypeMapping(typeMapping).
		PluralIntervals(true).
		WithFunctionBuilders(map[string]dialect.FunctionBuilder{
			"NVL":          buildNvl,
			"COLLECT_LIST": renameTo("ARRAY_AGG"),
			"SIZE":         renameTo("ARRAY_SIZE"),
			"INSTR":        buildInstr,
			"DATE_ADD":     buildDayArith("DATE_ADD"),
			"DATEDIFF":     buildDayArith("DATE_DIFF"),
			"DATE_FORMAT":  buildDateFormat,
		}).
		WithRenderers(map[string]dialect.RenderFunc{
			"ARRAY_AGG":  renameFunc("COLLECT_LIST"),
			"ARRAY_SIZE": renameFunc("SIZE"),
			"TO_CHAR":    renderDateFormat,
		}).
		Build()
}

func renameTo(canonical string) dialect.FunctionBuilder {
	return func(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
		call.Name = canonical
		return call, nil
	}
}

// buildNvl folds two-argument NVL into COALESCE. Spark also accepts
// NVL with more arguments; those keep their name.
func buildNvl(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
	if len(call.Args) == 2 {
		call.Name = "COALESCE"
	}
	return call, nil
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

// buildDayArith canonicalizes the two-argument day forms:
// DATE_ADD(date, n) and DATEDIFF(end, start) both imply a 'day' unit.
func buildDayArith(canonical string) dialect.FunctionBuilder {
	return func(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
		if len(call.Args) != 2 {
			return nil, fmt.Errorf("%s expects 2 arguments, got %d", call.Name, len(call.Args))
		}
		unit := &ast.Literal{Type: ast.StringLiteral, Value: "day"}
		if canonical == "DATE_ADD" {
			// DATE_ADD(date, n) -> DATE_ADD('day', n, date)
			call.Args = []ast.Expr{unit, call.Args[1], call.Args[0]}
		} else {
			// DATEDIFF(end, start) -> DATE_DIFF('day', end, start)
			call.Args = []ast.Expr{unit, call.Args[0], call.Args[1]}
		}
		call.Name = canonical
		return call, nil
	}
}

// buildInstr swaps INSTR(string, substring) into the canonical
// LOCATE(substring, string).
func buildInstr(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
	if len(call.Args) != 2 {
		return nil, fmt.Errorf("INSTR expects 2 arguments, got %d", len(call.Args))
	}
	call.Name = "LOCATE"
	call.Args = []ast.Expr{call.Args[1], call.Args[0]}
	return call, nil
}

func buildDateFormat(d *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
	if len(call.Args) != 2 {
		return nil, fmt.Errorf("DATE_FORMAT expects 2 arguments, got %d", len(call.Args))
	}
	if lit, ok := call.Args[1].(*ast.Literal); ok && lit.IsString() {
		call.Args[1] = &ast.Literal{Type: ast.StringLiteral, Value: d.ToStrftime(lit.Value)}
	}
	call.Name = "TO_CHAR"
	return call, nil
}

func renderDateFormat(r dialect.Renderer, n ast.Node) (string, error) {
	call, ok := n.(*ast.FuncCall)
	if !ok || len(call.Args) != 2 {
		return "", fmt.Errorf("TO_CHAR renderer: malformed call")
	}
	if lit, ok := call.Args[1].(*ast.Literal); ok && lit.IsString() {
		return "DATE_FORMAT(" + r.Render(call.Args[0]) + ", '" + r.FormatTime(lit.Value) + "')", nil
	}
	return "DATE_FORMAT(" + r.RenderList(call.Args) + ")", nil
}
