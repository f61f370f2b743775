package e6

import (
	"fmt"
	"strings"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/dialect"
)

// renderers maps canonical function names to the engine's spellings.
// Anything not listed renders through the generator defaults.
func renderers() map[string]dialect.RenderFunc {
	return map[string]dialect.RenderFunc{
		"ANY_VALUE":       renameFunc("ARBITRARY"),
		"ARRAY_AGG":       renameFunc("COLLECT_LIST"),
		"APPROX_DISTINCT": renameFunc("APPROX_COUNT_DISTINCT"),
		"APPROX_QUANTILE": renameFunc("APPROX_PERCENTILE"),
		"ARG_MAX":         renameFunc("MAX_BY"),
		"ARG_MIN":         renameFunc("MIN_BY"),
		"ARRAY_SIZE":      renameFunc("SIZE"),
		"ARRAY_TO_STRING": renameFunc("ARRAY_JOIN"),
		"DAY":             renameFunc("DAYS"),
		"DAYOFMONTH":      renameFunc("DAYS"),
		"HEX":             renameFunc("TO_HEX"),
		"POW":             renameFunc("POWER"),
		"SPLIT_TO_ARRAY":  renameFunc("SPLIT"),
		"WEEK_OF_YEAR":    renameFunc("WEEKOFYEAR"),

		"CURRENT_DATE":      renderBareKeyword("CURRENT_DATE"),
		"CURRENT_TIMESTAMP": renderBareKeyword("CURRENT_TIMESTAMP"),

		"ARRAY_POSITION": renderArrayPosition,
		"DATE_ADD":       renderDateArith("DATE_ADD"),
		"TIMESTAMP_ADD":  renderDateArith("TIMESTAMP_ADD"),
		"DATE_DIFF":      renderDateArith("DATE_DIFF"),
		"TIMESTAMP_DIFF": renderDateArith("TIMESTAMP_DIFF"),
		"DATE_TRUNC":     renderDateArith("DATE_TRUNC"),
		"FILTER":         renderFilterArray,
		"GROUP_CONCAT":   renderStringAgg,
		"STRPOS":         renderStrpos,
		"TO_CHAR":        renderFormatDate,
	}
}

// renameFunc renders the call under a different name, everything else
// unchanged. The renamed call re-enters Render, so the new name must
// not have its own override entry.
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

func renderBareKeyword(kw string) dialect.RenderFunc {
	return func(_ dialect.Renderer, _ ast.Node) (string, error) {
		return kw, nil
	}
}

// renderArrayPosition emits the engine's (element, array) argument
// order from the canonical (array, element).
func renderArrayPosition(r dialect.Renderer, n ast.Node) (string, error) {
	call, ok := n.(*ast.FuncCall)
	if !ok || len(call.Args) != 2 {
		return "", fmt.Errorf("ARRAY_POSITION renderer: malformed call")
	}
	return funcSQL(r, "ARRAY_POSITION", call.Args[1], call.Args[0]), nil
}

// renderDateArith normalizes the unit literal in the first argument of
// the date arithmetic family: DATE_ADD('DAY', n, d) and friends.
func renderDateArith(name string) dialect.RenderFunc {
	return func(r dialect.Renderer, n ast.Node) (string, error) {
		call, ok := n.(*ast.FuncCall)
		if !ok || len(call.Args) == 0 {
			return "", fmt.Errorf("%s renderer: malformed call", name)
		}
		args := make([]string, 0, len(call.Args))
		if unit, ok := literalText(call.Args[0]); ok && isStringLiteral(call.Args[0]) {
			args = append(args, "'"+r.Dialect().UnitFor(unit)+"'")
		} else {
			args = append(args, r.Render(call.Args[0]))
		}
		for _, a := range call.Args[1:] {
			args = append(args, r.Render(a))
		}
		return name + "(" + strings.Join(args, ", ") + ")", nil
	}
}

// renderFilterArray emits the engine's FILTER_ARRAY spelling.
func renderFilterArray(r dialect.Renderer, n ast.Node) (string, error) {
	call, ok := n.(*ast.FuncCall)
	if !ok || len(call.Args) != 2 {
		return "", fmt.Errorf("FILTER renderer: malformed call")
	}
	return funcSQL(r, "FILTER_ARRAY", call.Args...), nil
}

// renderStringAgg emits STRING_AGG with the engine's default '-'
// separator when the source never specified one.
func renderStringAgg(r dialect.Renderer, n ast.Node) (string, error) {
	call, ok := n.(*ast.FuncCall)
	if !ok || len(call.Args) == 0 {
		return "", fmt.Errorf("GROUP_CONCAT renderer: malformed call")
	}
	sep := "'-'"
	switch {
	case call.Separator != nil:
		sep = r.Render(call.Separator)
	case len(call.Args) > 1:
		sep = r.Render(call.Args[1])
	}
	expr := r.Render(call.Args[0])
	if call.Distinct {
		expr = "DISTINCT " + expr
	}
	return "STRING_AGG(" + expr + ", " + sep + ")", nil
}

// renderStrpos swaps STRPOS(string, substring) into the engine's
// LOCATE(substring, string).
func renderStrpos(r dialect.Renderer, n ast.Node) (string, error) {
	call, ok := n.(*ast.FuncCall)
	if !ok || len(call.Args) != 2 {
		return "", fmt.Errorf("STRPOS renderer: malformed call")
	}
	return funcSQL(r, "LOCATE", call.Args[1], call.Args[0]), nil
}

// renderFormatDate emits FORMAT_DATE with the canonical strftime format
// rewritten into the engine's time tokens.
func renderFormatDate(r dialect.Renderer, n ast.Node) (string, error) {
	call, ok := n.(*ast.FuncCall)
	if !ok || len(call.Args) != 2 {
		return "", fmt.Errorf("TO_CHAR renderer: malformed call")
	}
	format, ok := literalText(call.Args[1])
	if !ok {
		return funcSQL(r, "FORMAT_DATE", call.Args...), nil
	}
	return "FORMAT_DATE(" + r.Render(call.Args[0]) + ", '" + r.FormatTime(format) + "')", nil
}

// renderElementAt rewrites a subscript into ELEMENT_AT with the
// engine's one-based index.
func renderElementAt(r dialect.Renderer, n ast.Node) (string, error) {
	idx, ok := n.(*ast.IndexExpr)
	if !ok {
		return "", fmt.Errorf("subscript renderer: unexpected node %T", n)
	}
	shifted := shiftIndex(idx.Index, r.Dialect().IndexOffset())
	return "ELEMENT_AT(" + r.Render(idx.Expr) + ", " + r.Render(shifted) + ")", nil
}

// funcSQL renders name(args...) in the target dialect.
func funcSQL(r dialect.Renderer, name string, args ...ast.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = r.Render(a)
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
