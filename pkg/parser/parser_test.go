package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/dialect"
)

func testDialect(t *testing.T) *dialect.Dialect {
	t.Helper()
	return dialect.NewDialect("test").Build()
}

func mustSelect(t *testing.T, sql string) *ast.SelectStmt {
	t.Helper()
	stmt, err := ParseOne(sql, testDialect(t))
	require.NoError(t, err)
	sel, ok := stmt.(*ast.SelectStmt)
	require.True(t, ok, "expected *ast.SelectStmt, got %T", stmt)
	return sel
}

func TestParseSimpleSelect(t *testing.T) {
	sel := mustSelect(t, "SELECT a, b FROM t")
	core := sel.Body.Core
	require.Len(t, core.Items, 2)

	col, ok := core.Items[0].Expr.(*ast.ColumnRef)
	require.True(t, ok)
	assert.Equal(t, "a", col.Column)

	require.NotNil(t, core.From)
	tbl, ok := core.From.Source.(*ast.TableName)
	require.True(t, ok)
	assert.Equal(t, "t", tbl.Name)
}

func TestParseSelectClauses(t *testing.T) {
	sel := mustSelect(t, `
		SELECT dept, COUNT(*) AS cnt
		FROM emp
		WHERE active = TRUE
		GROUP BY dept
		HAVING COUNT(*) > 5
		QUALIFY ROW_NUMBER() OVER (PARTITION BY dept ORDER BY cnt) = 1
		ORDER BY cnt DESC NULLS LAST
		LIMIT 10 OFFSET 5`)

	core := sel.Body.Core
	assert.NotNil(t, core.Where)
	assert.Len(t, core.GroupBy, 1)
	assert.NotNil(t, core.Having)
	assert.NotNil(t, core.Qualify)

	require.Len(t, sel.OrderBy, 1)
	assert.True(t, sel.OrderBy[0].Desc)
	assert.Equal(t, "LAST", sel.OrderBy[0].Nulls)
	assert.NotNil(t, sel.Limit)
	assert.NotNil(t, sel.Offset)

	cnt, ok := core.Items[1].Expr.(*ast.FuncCall)
	require.True(t, ok)
	assert.True(t, cnt.Star)
	assert.Equal(t, "cnt", core.Items[1].Alias)
}

func TestParseQualifiedColumns(t *testing.T) {
	sel := mustSelect(t, "SELECT cat.sch.tbl.col, tbl.col, tbl.* FROM cat.sch.tbl")
	core := sel.Body.Core

	full, ok := core.Items[0].Expr.(*ast.ColumnRef)
	require.True(t, ok)
	assert.Equal(t, "cat", full.Catalog)
	assert.Equal(t, "sch", full.Schema)
	assert.Equal(t, "tbl", full.Table)
	assert.Equal(t, "col", full.Column)

	star, ok := core.Items[2].Expr.(*ast.StarExpr)
	require.True(t, ok)
	assert.Equal(t, "tbl", star.Table)

	tbl, ok := core.From.Source.(*ast.TableName)
	require.True(t, ok)
	assert.Equal(t, "cat", tbl.Catalog)
	assert.Equal(t, "sch", tbl.Schema)
	assert.Equal(t, "tbl", tbl.Name)
}

func TestParseJoins(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		side string
		kind string
	}{
		{"inner", "SELECT * FROM a JOIN b ON a.id = b.id", "", "INNER"},
		{"left", "SELECT * FROM a LEFT JOIN b ON a.id = b.id", "LEFT", "OUTER"},
		{"left outer", "SELECT * FROM a LEFT OUTER JOIN b ON a.id = b.id", "LEFT", "OUTER"},
		{"full", "SELECT * FROM a FULL JOIN b ON a.id = b.id", "FULL", "OUTER"},
		{"cross", "SELECT * FROM a CROSS JOIN b", "", "CROSS"},
		{"left semi", "SELECT * FROM a LEFT SEMI JOIN b ON a.id = b.id", "LEFT", "SEMI"},
		{"left anti", "SELECT * FROM a LEFT ANTI JOIN b ON a.id = b.id", "LEFT", "ANTI"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := mustSelect(t, tt.sql)
			joins := sel.Body.Core.From.Joins
			require.Len(t, joins, 1)
			assert.Equal(t, tt.side, joins[0].Side)
			assert.Equal(t, tt.kind, joins[0].JoinKind)
		})
	}
}

func TestParseJoinUsing(t *testing.T) {
	sel := mustSelect(t, "SELECT * FROM a JOIN b USING (id, name)")
	joins := sel.Body.Core.From.Joins
	require.Len(t, joins, 1)
	assert.Equal(t, []string{"id", "name"}, joins[0].Using)
	assert.Nil(t, joins[0].On)
}

func TestParseSetOperations(t *testing.T) {
	sel := mustSelect(t, "SELECT a FROM x UNION ALL SELECT a FROM y EXCEPT SELECT a FROM z")
	body := sel.Body
	assert.Equal(t, ast.SetOpUnion, body.Op)
	assert.True(t, body.All)
	require.NotNil(t, body.Right)
	assert.Equal(t, ast.SetOpExcept, body.Right.Op)
	assert.False(t, body.Right.All)
	require.NotNil(t, body.Right.Right)
}

func TestParseWithClause(t *testing.T) {
	sel := mustSelect(t, `WITH cte1 AS (SELECT 1 AS n), cte2 (a, b) AS (SELECT 1, 2) SELECT * FROM cte1, cte2`)
	require.NotNil(t, sel.With)
	require.Len(t, sel.With.CTEs, 2)
	assert.Equal(t, "cte1", sel.With.CTEs[0].Name)
	assert.Equal(t, []string{"a", "b"}, sel.With.CTEs[1].Columns)
}

func TestParseCTEWithBareValues(t *testing.T) {
	sel := mustSelect(t, "WITH v AS (VALUES (1, 'a'), (2, 'b')) SELECT * FROM v")
	require.NotNil(t, sel.With)
	vals, ok := sel.With.CTEs[0].Body.(*ast.ValuesClause)
	require.True(t, ok)
	require.Len(t, vals.Rows, 2)
	assert.Len(t, vals.Rows[0], 2)
}

func TestParseCaseExpr(t *testing.T) {
	sel := mustSelect(t, `SELECT CASE WHEN a > 1 THEN 'big' WHEN a = 1 THEN 'one' ELSE 'small' END FROM t`)
	caseExpr, ok := sel.Body.Core.Items[0].Expr.(*ast.CaseExpr)
	require.True(t, ok)
	assert.Nil(t, caseExpr.Operand)
	assert.Len(t, caseExpr.Whens, 2)
	assert.NotNil(t, caseExpr.Else)

	sel = mustSelect(t, "SELECT CASE x WHEN 1 THEN 'a' END FROM t")
	caseExpr, ok = sel.Body.Core.Items[0].Expr.(*ast.CaseExpr)
	require.True(t, ok)
	assert.NotNil(t, caseExpr.Operand)
}

func TestParseCasts(t *testing.T) {
	sel := mustSelect(t, "SELECT CAST(a AS DECIMAL(10, 2)), TRY_CAST(b AS INT), c::DATE FROM t")
	items := sel.Body.Core.Items

	c1, ok := items[0].Expr.(*ast.CastExpr)
	require.True(t, ok)
	assert.Equal(t, "DECIMAL", c1.Type.Name)
	assert.Equal(t, []string{"10", "2"}, c1.Type.Params)
	assert.False(t, c1.Try)

	c2, ok := items[1].Expr.(*ast.CastExpr)
	require.True(t, ok)
	assert.True(t, c2.Try)

	c3, ok := items[2].Expr.(*ast.CastExpr)
	require.True(t, ok)
	assert.True(t, c3.Shorthand)
	assert.Equal(t, "DATE", c3.Type.Name)
}

func TestParsePredicates(t *testing.T) {
	sel := mustSelect(t, `
		SELECT *
		FROM t
		WHERE a IN (1, 2)
		  AND b NOT BETWEEN 1 AND 10
		  AND c LIKE 'x%' ESCAPE '\'
		  AND d IS NOT NULL
		  AND e NOT IN (SELECT id FROM u)`)
	assert.NotNil(t, sel.Body.Core.Where)

	inExprs := ast.FindAll[*ast.InExpr](sel)
	require.Len(t, inExprs, 2)
	assert.NotNil(t, inExprs[1].Subquery)
	assert.True(t, inExprs[1].Not)

	between := ast.FindAll[*ast.BetweenExpr](sel)
	require.Len(t, between, 1)
	assert.True(t, between[0].Not)

	likes := ast.FindAll[*ast.LikeExpr](sel)
	require.Len(t, likes, 1)
	assert.NotNil(t, likes[0].Escape)

	isNull := ast.FindAll[*ast.IsNullExpr](sel)
	require.Len(t, isNull, 1)
	assert.True(t, isNull[0].Not)
}

func TestParseWindowFunction(t *testing.T) {
	sel := mustSelect(t, `
		SELECT SUM(x) OVER (
			PARTITION BY dept
			ORDER BY hired
			ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW
		) FROM emp`)
	fn, ok := sel.Body.Core.Items[0].Expr.(*ast.FuncCall)
	require.True(t, ok)
	require.NotNil(t, fn.Over)
	assert.Len(t, fn.Over.PartitionBy, 1)
	assert.Len(t, fn.Over.OrderBy, 1)

	frame := fn.Over.Frame
	require.NotNil(t, frame)
	assert.Equal(t, "ROWS", frame.Unit)
	assert.Equal(t, ast.UnboundedPreceding, frame.Start.Type)
	require.NotNil(t, frame.End)
	assert.Equal(t, ast.CurrentRow, frame.End.Type)
}

func TestParseAggregateModifiers(t *testing.T) {
	sel := mustSelect(t, `
		SELECT
			COUNT(DISTINCT a),
			PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY x),
			SUM(y) FILTER (WHERE y > 0),
			FIRST_VALUE(z) IGNORE NULLS OVER (ORDER BY t)
		FROM tbl`)
	items := sel.Body.Core.Items

	count := items[0].Expr.(*ast.FuncCall)
	assert.True(t, count.Distinct)

	pct := items[1].Expr.(*ast.FuncCall)
	assert.Len(t, pct.WithinGroup, 1)

	sum := items[2].Expr.(*ast.FuncCall)
	assert.NotNil(t, sum.Filter)

	first := items[3].Expr.(*ast.FuncCall)
	assert.True(t, first.IgnoreNulls)
	assert.NotNil(t, first.Over)
}

func TestParseLambdas(t *testing.T) {
	sel := mustSelect(t, "SELECT FILTER_ARRAY(arr, x -> x > 2), REDUCE(arr, 0, (acc, x) -> acc + x) FROM t")
	items := sel.Body.Core.Items

	f1 := items[0].Expr.(*ast.FuncCall)
	lam1, ok := f1.Args[1].(*ast.Lambda)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, lam1.Params)

	f2 := items[1].Expr.(*ast.FuncCall)
	lam2, ok := f2.Args[2].(*ast.Lambda)
	require.True(t, ok)
	assert.Equal(t, []string{"acc", "x"}, lam2.Params)
}

func TestParseArrayAndSubscript(t *testing.T) {
	sel := mustSelect(t, "SELECT ARRAY[1, 2, 3], arr[1] FROM t")
	items := sel.Body.Core.Items

	arr, ok := items[0].Expr.(*ast.ArrayExpr)
	require.True(t, ok)
	assert.Len(t, arr.Elems, 3)

	idx, ok := items[1].Expr.(*ast.IndexExpr)
	require.True(t, ok)
	assert.NotNil(t, idx.Index)
}

func TestParseIntervalAndExtract(t *testing.T) {
	sel := mustSelect(t, "SELECT ts + INTERVAL '2' DAY, INTERVAL '3 hours', EXTRACT(YEAR FROM ts) FROM t")
	items := sel.Body.Core.Items

	ivs := ast.FindAll[*ast.IntervalExpr](sel)
	require.Len(t, ivs, 2)
	assert.Equal(t, "DAY", ivs[0].Unit)
	// string value splits into value and unit
	assert.Equal(t, "hours", ivs[1].Unit)

	ex, ok := items[2].Expr.(*ast.ExtractExpr)
	require.True(t, ok)
	assert.Equal(t, "YEAR", ex.Unit)
}

func TestParsePlaceholders(t *testing.T) {
	sel := mustSelect(t, "SELECT * FROM t WHERE id = :user_id AND v > ?")
	phs := ast.FindAll[*ast.Placeholder](sel)
	require.Len(t, phs, 2)
	assert.Equal(t, "user_id", phs[0].Name)
	assert.Equal(t, "", phs[1].Name)
}

func TestParseExists(t *testing.T) {
	sel := mustSelect(t, "SELECT * FROM t WHERE EXISTS (SELECT 1 FROM u) AND NOT EXISTS (SELECT 1 FROM v)")
	exists := ast.FindAll[*ast.ExistsExpr](sel)
	require.Len(t, exists, 2)
	assert.False(t, exists[0].Not)
	assert.True(t, exists[1].Not)
}

func TestParseDerivedTableAndValues(t *testing.T) {
	sel := mustSelect(t, "SELECT * FROM (SELECT a FROM t) AS sub, (VALUES (1), (2)) AS v (n)")
	from := sel.Body.Core.From

	sub, ok := from.Source.(*ast.DerivedTable)
	require.True(t, ok)
	assert.Equal(t, "sub", sub.Alias)

	require.Len(t, from.Joins, 1)
	assert.Equal(t, "CROSS", from.Joins[0].JoinKind)
	vals, ok := from.Joins[0].Target.(*ast.ValuesClause)
	require.True(t, ok)
	assert.Equal(t, "v", vals.Alias)
	assert.Equal(t, []string{"n"}, vals.Columns)
}

func TestParseGroupingSets(t *testing.T) {
	sel := mustSelect(t, "SELECT a, b, SUM(c) FROM t GROUP BY GROUPING SETS ((a, b), (a), ())")
	groupBy := sel.Body.Core.GroupBy
	require.Len(t, groupBy, 1)
	gs, ok := groupBy[0].(*ast.GroupingSetsExpr)
	require.True(t, ok)
	require.Len(t, gs.Sets, 3)
	assert.Len(t, gs.Sets[0], 2)
	assert.Len(t, gs.Sets[2], 0)
}

func TestParseBareExpressionStatement(t *testing.T) {
	stmt, err := ParseOne("NVL(x, y)", testDialect(t))
	require.NoError(t, err)
	es, ok := stmt.(*ast.ExprStmt)
	require.True(t, ok)
	fn, ok := es.Expr.(*ast.FuncCall)
	require.True(t, ok)
	assert.Equal(t, "NVL", fn.Name)
	assert.Len(t, fn.Args, 2)
}

func TestParseMultipleStatements(t *testing.T) {
	stmts, err := Parse("SELECT 1; SELECT 2;", testDialect(t))
	require.NoError(t, err)
	assert.Len(t, stmts, 2)
}

func TestParseQuotedIdentifiers(t *testing.T) {
	sel := mustSelect(t, `SELECT "order" FROM "my table"`)
	col, ok := sel.Body.Core.Items[0].Expr.(*ast.ColumnRef)
	require.True(t, ok)
	assert.Equal(t, "order", col.Column)
	assert.True(t, col.Quoted)

	tbl, ok := sel.Body.Core.From.Source.(*ast.TableName)
	require.True(t, ok)
	assert.Equal(t, "my table", tbl.Name)
	assert.True(t, tbl.Quoted)
}

func TestParseErrorRaise(t *testing.T) {
	_, err := Parse("SELECT FROM WHERE", testDialect(t))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseErrorIgnore(t *testing.T) {
	stmts, err := ParseWithOptions("SELECT a FROM", testDialect(t), Options{
		ErrorLevel: dialect.ErrorLevelIgnore,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, stmts)
}

func TestParseFunctionBuilderApplied(t *testing.T) {
	d := dialect.NewDialect("fb").
		AddFunctionBuilder("NVL", func(_ *dialect.Dialect, call *ast.FuncCall) (ast.Expr, error) {
			call.Name = "COALESCE"
			return call, nil
		}).
		Build()

	stmt, err := ParseOne("SELECT NVL(a, b) FROM t", d)
	require.NoError(t, err)
	fn := stmt.(*ast.SelectStmt).Body.Core.Items[0].Expr.(*ast.FuncCall)
	assert.Equal(t, "COALESCE", fn.Name)
}
