package e6

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/dialect"
)

// errLambdaAggregate matches the engine's own rejection of aggregate
// calls inside array filter lambdas.
var errLambdaAggregate = errors.New(
	"Lambda expressions in filter functions are not supported in 'IN' clause or on aggregate functions")

// functionBuilders maps the engine's function spellings to canonical
// form. Canonical names follow the neutral vocabulary the generator
// renders from, so a query survives an e6 -> e6 round trip unchanged.
func functionBuilders() map[string]dialect.FunctionBuilder {
	return map[string]dialect.FunctionBuilder{
		"DATEDIFF":               buildDateDiff,
		"DATE_DIFF":              buildDateDiff,
		"DATE_ADD":               buildDateAdd,
		"TIMESTAMP_ADD":          buildDateAdd,
		"TIMESTAMP_DIFF":         buildDateDiff,
		"ARRAY_POSITION":         buildArrayPosition,
		"ELEMENT_AT":             buildElementAt,
		"FILTER_ARRAY":           buildFilterArray,
		"FROM_UNIXTIME_WITHUNIT": buildFromUnixtime,
		"TO_UNIX_TIMESTAMP":      buildToUnixTimestamp,
		"ARBITRARY":              renameTo("ANY_VALUE"),
		"COLLECT_LIST":           renameTo("ARRAY_AGG"),
		"LISTAGG":                renameTo("GROUP_CONCAT"),
		"STRING_AGG":             renameTo("GROUP_CONCAT"),
		"GREATEST":               renameTo("MAX"),
		"LEAST":                  renameTo("MIN"),
		"APPROX_COUNT_DISTINCT":  renameTo("APPROX_DISTINCT"),
		"APPROX_PERCENTILE":      renameTo("APPROX_QUANTILE"),
		"APPROX_QUANTILES":       renameTo("APPROX_QUANTILE"),
		"MAX_BY":                 renameTo("ARG_MAX"),
		"MIN_BY":                 renameTo("ARG_MIN"),
		"CHARINDEX":              renameTo("LOCATE"),
		"STARTSWITH":             renameTo("STARTS_WITH"),
		"SIZE":                   renameTo("ARRAY_SIZE"),
		"DAYS":                   renameTo("DAY"),
		"TRUNC":                  renameTo("DATE_TRUNC"),
		"NOW":                    renameTo("CURRENT_TIMESTAMP"),
		"TO_HEX":                 renameTo("HEX"),
		"WEEKOFYEAR":             renameTo("WEEK_OF_YEAR"),
		"CHAR_LENGTH":            renameTo("LENGTH"),
		"CHARACTER_LENGTH":       renameTo("LENGTH"),
		"LEN":                    renameTo("LENGTH"),
		"FORMAT_DATE":            buildTimeFormat,
		"FORMAT_TIMESTAMP":       buildTimeFormat,
		"TO_CHAR":                buildTimeFormat,
		"TO_VARCHAR":             buildTimeFormat,
	}
}

// renameTo canonicalizes a spelling without touching arguments.
func renameTo(canonical string) dialect.FunctionBuilder {
	return func(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
		call.Name = canonical
		return call, nil
	}
}

// buildDateDiff canonicalizes the engine's
// DATE_DIFF([unit,] date1, date2) = date1 - date2. The two-argument
// form defaults the unit to 'day'; in the three-argument form the unit
// is the string-literal argument regardless of position.
func buildDateDiff(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
	name := "DATE_DIFF"
	if call.Name == "TIMESTAMP_DIFF" {
		name = "TIMESTAMP_DIFF"
	}
	switch len(call.Args) {
	case 2:
		call.Name = name
		call.Args = []ast.Expr{unitLiteral("day"), call.Args[0], call.Args[1]}
		return call, nil
	case 3:
		call.Name = name
		// Some sources pass the unit last; find the string literal.
		if !isStringLiteral(call.Args[0]) && isStringLiteral(call.Args[2]) {
			call.Args = []ast.Expr{call.Args[2], call.Args[0], call.Args[1]}
		}
		return call, nil
	default:
		return nil, fmt.Errorf("%s expects 2 or 3 arguments, got %d", call.Name, len(call.Args))
	}
}

// buildDateAdd canonicalizes DATE_ADD(unit, amount, date).
func buildDateAdd(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
	if len(call.Args) != 3 {
		return nil, fmt.Errorf("%s expects 3 arguments, got %d", call.Name, len(call.Args))
	}
	if call.Name != "TIMESTAMP_ADD" {
		call.Name = "DATE_ADD"
	}
	return call, nil
}

// buildArrayPosition swaps the engine's (element, array) order into
// canonical ARRAY_POSITION(array, element).
func buildArrayPosition(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
	if len(call.Args) != 2 {
		return nil, fmt.Errorf("ARRAY_POSITION expects 2 arguments, got %d", len(call.Args))
	}
	call.Args = []ast.Expr{call.Args[1], call.Args[0]}
	return call, nil
}

// buildElementAt lowers ELEMENT_AT(array, i) to a subscript. The
// engine is one-based; the canonical subscript is zero-based.
func buildElementAt(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
	if len(call.Args) != 2 {
		return nil, fmt.Errorf("ELEMENT_AT expects 2 arguments, got %d", len(call.Args))
	}
	return &ast.IndexExpr{Expr: call.Args[0], Index: shiftIndex(call.Args[1], -1)}, nil
}

// buildFilterArray canonicalizes FILTER_ARRAY(array, lambda) to FILTER
// and rejects aggregate calls inside the lambda body, matching the
// engine's own restriction.
func buildFilterArray(d *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
	if len(call.Args) != 2 {
		return nil, fmt.Errorf("FILTER_ARRAY expects 2 arguments, got %d", len(call.Args))
	}
	if lambda, ok := call.Args[1].(*ast.Lambda); ok {
		for _, fn := range ast.FindAll[*ast.FuncCall](lambda.Body) {
			if d.IsAggregate(fn.Name) {
				return nil, errLambdaAggregate
			}
		}
	}
	call.Name = "FILTER"
	return call, nil
}

// buildFromUnixtime defaults the unit argument to seconds.
func buildFromUnixtime(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
	switch len(call.Args) {
	case 1:
		call.Args = append(call.Args, unitLiteral("seconds"))
		return call, nil
	case 2:
		return call, nil
	default:
		return nil, fmt.Errorf("FROM_UNIXTIME_WITHUNIT expects 1 or 2 arguments, got %d", len(call.Args))
	}
}

// buildToUnixTimestamp wraps a bare string-literal argument in a
// timestamp cast so the engine does not see an untyped string.
func buildToUnixTimestamp(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
	if len(call.Args) == 1 {
		if lit, ok := call.Args[0].(*ast.Literal); ok && lit.IsString() {
			call.Args[0] = &ast.CastExpr{Expr: lit, Type: &ast.DataType{Name: "TIMESTAMP"}}
		}
	}
	return call, nil
}

// buildTimeFormat canonicalizes the formatting family to TO_CHAR with
// the format literal rewritten into strftime tokens.
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

// shiftIndex adjusts a subscript by delta, folding numeric literals.
func shiftIndex(idx ast.Expr, delta int) ast.Expr {
	if lit, ok := idx.(*ast.Literal); ok && lit.Type == ast.NumberLiteral {
		if n, err := strconv.Atoi(lit.Value); err == nil {
			return &ast.Literal{Type: ast.NumberLiteral, Value: strconv.Itoa(n + delta)}
		}
	}
	op := "+"
	if delta < 0 {
		op = "-"
		delta = -delta
	}
	return &ast.BinaryExpr{Left: idx, Op: op, Right: &ast.Literal{Type: ast.NumberLiteral, Value: strconv.Itoa(delta)}}
}

func unitLiteral(unit string) *ast.Literal {
	return &ast.Literal{Type: ast.StringLiteral, Value: unit}
}

func isStringLiteral(e ast.Expr) bool {
	lit, ok := e.(*ast.Literal)
	return ok && lit.IsString()
}

func literalText(e ast.Expr) (string, bool) {
	if lit, ok := e.(*ast.Literal); ok {
		return lit.Value, true
	}
	return "", false
}
