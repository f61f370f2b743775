// Package snowflake implements the Snowflake dialect, the most common
// source in migration workloads. Unquoted identifiers fold to
// uppercase, QUALIFY is supported, and the date arithmetic family uses
// (part, start, end) argument order.
package snowflake

import (
	"fmt"
	"strings"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/dialects/ansi"
)

func init() {
	dialect.Register(New())
}

var timeMapping = []dialect.TimePair{
	{Token: "YYYY", Strftime: "%Y"},
	{Token: "yyyy", Strftime: "%Y"},
	{Token: "MMMM", Strftime: "%B"},
	{Token: "HH24", Strftime: "%H"},
	{Token: "HH12", Strftime: "%I"},
	{Token: "MON", Strftime: "%b"},
	{Token: "YY", Strftime: "%y"},
	{Token: "MM", Strftime: "%m"},
	{Token: "DD", Strftime: "%d"},
	{Token: "dd", Strftime: "%d"},
	{Token: "DY", Strftime: "%a"},
	{Token: "MI", Strftime: "%M"},
	{Token: "SS", Strftime: "%S"},
	{Token: "FF", Strftime: "%f"},
}

// New builds the Snowflake dialect.
func New() *dialect.Dialect {
	return dialect.NewDialect("snowflake").
		Base(ansi.New()).
		Identifiers(`"`, `"`, `""`, dialect.NormUppercase).
		WithTimeMapping(timeMapping).
		WithFunctionBuilders(map[string]dialect.FunctionBuilder{
			"DATEADD":        buildDateArith("DATE_ADD", false),
			"DATE_ADD":       buildDateArith("DATE_ADD", false),
			"TIMESTAMPADD":   buildDateArith("TIMESTAMP_ADD", false),
			"DATEDIFF":       buildDateArith("DATE_DIFF", true),
			"DATE_DIFF":      buildDateArith("DATE_DIFF", true),
			"TIMESTAMPDIFF":  buildDateArith("TIMESTAMP_DIFF", true),
			"ARRAY_POSITION": buildSwapTwo("ARRAY_POSITION"),
			"ARRAY_CONTAINS": buildSwapTwo("ARRAY_CONTAINS"),
			"ARRAYAGG":       renameTo("ARRAY_AGG"),
			"NVL":            renameTo("COALESCE"),
			"IFF":            renameTo("IF"),
			"LISTAGG":        renameTo("GROUP_CONCAT"),
			"BITAND":         renameTo("BITWISE_AND"),
			"BITOR":          renameTo("BITWISE_OR"),
			"BITXOR":         renameTo("BITWISE_XOR"),
			"BITSHIFTLEFT":   renameTo("SHIFTLEFT"),
			"BITSHIFTRIGHT":  renameTo("SHIFTRIGHT"),
			"GETDATE":        renameTo("CURRENT_TIMESTAMP"),
			"SYSDATE":        renameTo("CURRENT_TIMESTAMP"),
			"STARTSWITH":     renameTo("STARTS_WITH"),
			"CHARINDEX":      renameTo("LOCATE"),
			"TO_CHAR":        buildTimeFormat,
			"TO_VARCHAR":     buildTimeFormat,
		}).
		WithRenderers(map[string]dialect.RenderFunc{
			"DATE_DIFF":      renderDateDiff("DATEDIFF"),
			"TIMESTAMP_DIFF": renderDateDiff("TIMESTAMPDIFF"),
			"GROUP_CONCAT":   renameFunc("LISTAGG"),
			"IF":             renameFunc("IFF"),
			"LOCATE":         renameFunc("CHARINDEX"),
			"ARRAY_POSITION": renderSwapTwo("ARRAY_POSITION"),
			"ARRAY_CONTAINS": renderSwapTwo("ARRAY_CONTAINS"),
			"SHIFTLEFT":      renameFunc("BITSHIFTLEFT"),
			"SHIFTRIGHT":     renameFunc("BITSHIFTRIGHT"),
			"TO_CHAR":        renderToChar,
		}).
		Build()
}

func renameTo(canonical string) dialect.FunctionBuilder {
	return func(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
		call.Name = canonical
		return call, nil
	}
}

// buildDateArith canonicalizes DATEADD / DATEDIFF. Snowflake's
// DATEDIFF(part, start, end) computes end - start; the canonical
// DATE_DIFF(unit, d1, d2) computes d1 - d2, so the date arguments swap.
func buildDateArith(canonical string, swapDates bool) dialect.FunctionBuilder {
	return func(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
		if len(call.Args) != 3 {
			return nil, fmt.Errorf("%s expects 3 arguments, got %d", call.Name, len(call.Args))
		}
		call.Name = canonical
		// Snowflake accepts the part as a bare identifier; canonical
		// form keeps it as a string literal.
		if col, ok := call.Args[0].(*ast.ColumnRef); ok && col.Table == "" && !col.Quoted {
			call.Args[0] = &ast.Literal{Type: ast.StringLiteral, Value: col.Column}
		}
		if swapDates {
			call.Args[1], call.Args[2] = call.Args[2], call.Args[1]
		}
		return call, nil
	}
}

// buildSwapTwo swaps Snowflake's (value, array) order into the
// canonical (array, value).
func buildSwapTwo(name string) dialect.FunctionBuilder {
	return func(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
		if len(call.Args) != 2 {
			return nil, fmt.Errorf("%s expects 2 arguments, got %d", name, len(call.Args))
		}
		call.Args = []ast.Expr{call.Args[1], call.Args[0]}
		return call, nil
	}
}

func buildTimeFormat(d *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
	if len(call.Args) != 2 {
		return nil, fmt.Errorf("%s expects 2 arguments, got %d", call.Name, len(call.Args))
	}
	if lit, ok := call.Args[1].(*ast.Literal); ok && lit.IsString() {
		call.Args[1] = &ast.Literal{Type: ast.StringLiteral, Value: d.ToStrftime(lit.Value)}
	}
	call.Name = "TO_CHAR"
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

// renderDateDiff restores Snowflake's (part, start, end) order from the
// canonical (unit, d1, d2) = d1 - d2.
func renderDateDiff(name string) dialect.RenderFunc {
	return func(r dialect.Renderer, n ast.Node) (string, error) {
		call, ok := n.(*ast.FuncCall)
		if !ok || len(call.Args) != 3 {
			return "", fmt.Errorf("%s renderer: malformed call", name)
		}
		unit := r.Render(call.Args[0])
		if lit, ok := call.Args[0].(*ast.Literal); ok && lit.IsString() {
			unit = strings.ToUpper(r.Dialect().UnitFor(lit.Value))
		}
		return name + "(" + unit + ", " + r.Render(call.Args[2]) + ", " + r.Render(call.Args[1]) + ")", nil
	}
}

func renderSwapTwo(name string) dialect.RenderFunc {
	return func(r dialect.Renderer, n ast.Node) (string, error) {
		call, ok := n.(*ast.FuncCall)
		if !ok || len(call.Args) != 2 {
			return "", fmt.Errorf("%s renderer: malformed call", name)
		}
		return name + "(" + r.Render(call.Args[1]) + ", " + r.Render(call.Args[0]) + ")", nil
	}
}

// renderToChar converts the canonical strftime format back to
// Snowflake's time tokens.
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
