package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/parser"
)

func ansiDialect(t *testing.T) *dialect.Dialect {
	t.Helper()
	return dialect.NewDialect("test").Build()
}

// roundTrip parses compact-renders with the same dialect on both sides.
func roundTrip(t *testing.T, sql string) string {
	t.Helper()
	d := ansiDialect(t)
	stmts, err := parser.Parse(sql, d)
	require.NoError(t, err)
	out, err := Generate(stmts, d, Options{})
	require.NoError(t, err)
	return out
}

func TestGenerateStableAcrossRoundTrips(t *testing.T) {
	queries := []string{
		"select a, b from t where a = 1",
		"WITH c AS (SELECT 1 AS n) SELECT * FROM c",
		"SELECT dept, COUNT(*) FROM emp GROUP BY dept HAVING COUNT(*) > 5",
		"SELECT SUM(x) OVER (PARTITION BY d) FROM t",
	}
	for _, q := range queries {
		once := roundTrip(t, q)
		assert.Equal(t, once, roundTrip(t, once), q)
	}
}

func TestGenerateSimpleSelect(t *testing.T) {
	assert.Equal(t,
		"SELECT a, b FROM t WHERE a = 1",
		roundTrip(t, "select a, b from t where a = 1"))
}

func TestGenerateClauses(t *testing.T) {
	assert.Equal(t,
		"SELECT dept, COUNT(*) AS cnt FROM emp GROUP BY dept HAVING COUNT(*) > 5 ORDER BY cnt DESC LIMIT 10 OFFSET 2",
		roundTrip(t, "SELECT dept, count(*) cnt FROM emp GROUP BY dept HAVING count(*) > 5 ORDER BY cnt DESC LIMIT 10 OFFSET 2"))
}

func TestGenerateJoins(t *testing.T) {
	tests := []struct{ in, out string }{
		{"SELECT * FROM a JOIN b ON a.id = b.id", "SELECT * FROM a JOIN b ON a.id = b.id"},
		{"SELECT * FROM a LEFT OUTER JOIN b ON a.id = b.id", "SELECT * FROM a LEFT JOIN b ON a.id = b.id"},
		{"SELECT * FROM a CROSS JOIN b", "SELECT * FROM a CROSS JOIN b"},
		{"SELECT * FROM a LEFT SEMI JOIN b ON a.id = b.id", "SELECT * FROM a LEFT SEMI JOIN b ON a.id = b.id"},
		{"SELECT * FROM a JOIN b USING (id)", "SELECT * FROM a JOIN b USING (id)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, roundTrip(t, tt.in))
	}
}

func TestGenerateSetOps(t *testing.T) {
	assert.Equal(t,
		"SELECT a FROM x UNION ALL SELECT a FROM y",
		roundTrip(t, "SELECT a FROM x UNION ALL SELECT a FROM y"))
}

func TestGenerateWithClause(t *testing.T) {
	assert.Equal(t,
		"WITH c AS ( SELECT 1 AS n ) SELECT * FROM c",
		roundTrip(t, "WITH c AS (SELECT 1 AS n) SELECT * FROM c"))
}

func TestGenerateExpressions(t *testing.T) {
	tests := []struct{ in, out string }{
		{"SELECT a + b * c FROM t", "SELECT a + b * c FROM t"},
		{"SELECT a || b FROM t", "SELECT a || b FROM t"},
		{"SELECT NOT a FROM t", "SELECT NOT a FROM t"},
		{"SELECT -x FROM t", "SELECT -x FROM t"},
		{"SELECT a IN (1, 2) FROM t", "SELECT a IN (1, 2) FROM t"},
		{"SELECT a NOT BETWEEN 1 AND 2 FROM t", "SELECT a NOT BETWEEN 1 AND 2 FROM t"},
		{"SELECT a IS NOT NULL FROM t", "SELECT a IS NOT NULL FROM t"},
		{"SELECT a LIKE 'x%' ESCAPE '!' FROM t", "SELECT a LIKE 'x%' ESCAPE '!' FROM t"},
		{"SELECT CASE WHEN a THEN 1 ELSE 2 END FROM t", "SELECT CASE WHEN a THEN 1 ELSE 2 END FROM t"},
		{"SELECT ARRAY[1, 2][0] FROM t", "SELECT ARRAY[1, 2][0] FROM t"},
		{"SELECT EXTRACT(YEAR FROM ts) FROM t", "SELECT EXTRACT(YEAR FROM ts) FROM t"},
		{"SELECT FILTER_ARRAY(a, x -> x > 1) FROM t", "SELECT FILTER_ARRAY(a, x -> x > 1) FROM t"},
		{"SELECT 'it''s' FROM t", "SELECT 'it''s' FROM t"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, roundTrip(t, tt.in))
	}
}

func TestGenerateCastShorthandNormalizes(t *testing.T) {
	assert.Equal(t,
		"SELECT CAST(a AS DATE) FROM t",
		roundTrip(t, "SELECT a::DATE FROM t"))
}

func TestGenerateWindowFunction(t *testing.T) {
	assert.Equal(t,
		"SELECT SUM(x) OVER (PARTITION BY d ORDER BY h ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) FROM t",
		roundTrip(t, "SELECT SUM(x) OVER (PARTITION BY d ORDER BY h ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) FROM t"))
}

func TestGeneratePretty(t *testing.T) {
	d := ansiDialect(t)
	stmts, err := parser.Parse("SELECT a, b FROM t WHERE a = 1", d)
	require.NoError(t, err)
	out, err := Generate(stmts, d, Options{Pretty: true})
	require.NoError(t, err)
	assert.Equal(t, "SELECT\n  a,\n  b\nFROM t\nWHERE a = 1", out)
}

func TestGenerateReservedWordQuoting(t *testing.T) {
	d := dialect.NewDialect("rw").WithReservedWords("ORDER").Build()
	stmts, err := parser.Parse("SELECT my_order AS order_col, x FROM t", d)
	require.NoError(t, err)

	// force a reserved column name through the tree
	sel := stmts[0].(*ast.SelectStmt)
	sel.Body.Core.Items[0].Expr = &ast.ColumnRef{Column: "order"}

	out, err := Generate(stmts, d, Options{})
	require.NoError(t, err)
	assert.Equal(t, `SELECT "order" AS order_col, x FROM t`, out)
}

func TestGenerateIdentifyQuotesEverything(t *testing.T) {
	d := ansiDialect(t)
	stmts, err := parser.Parse("SELECT a FROM t", d)
	require.NoError(t, err)
	out, err := Generate(stmts, d, Options{Identify: true})
	require.NoError(t, err)
	assert.Equal(t, `SELECT "a" FROM "t"`, out)
}

func TestGenerateNullsOrderingDropped(t *testing.T) {
	src := ansiDialect(t)
	target := dialect.NewDialect("bare").NullsOrdering(false).Build()

	stmts, err := parser.Parse("SELECT a FROM t ORDER BY a DESC NULLS LAST", src)
	require.NoError(t, err)

	g := New(target, Options{ErrorLevel: dialect.ErrorLevelIgnore})
	out := g.Render(stmts[0])
	assert.Equal(t, "SELECT a FROM t ORDER BY a DESC", out)
	assert.Contains(t, g.Findings(), "NULLS LAST ordering")
}

func TestGeneratePluralIntervalSingularized(t *testing.T) {
	src := ansiDialect(t)
	target := dialect.NewDialect("sing").
		WithUnitMapping(map[string]string{"HOURS": "HOUR"}).
		Build()

	stmts, err := parser.Parse("SELECT ts + INTERVAL '2' HOURS FROM t", src)
	require.NoError(t, err)

	g := New(target, Options{})
	assert.Equal(t, "SELECT ts + INTERVAL '2' HOUR FROM t", g.Render(stmts[0]))
}

func TestGenerateUnsupportedCastType(t *testing.T) {
	target := dialect.NewDialect("narrow").
		WithSupportedCastTypes("INT", "VARCHAR").
		Build()

	stmts, err := parser.Parse("SELECT CAST(a AS GEOMETRY) FROM t", ansiDialect(t))
	require.NoError(t, err)

	_, err = Generate(stmts, target, Options{})
	require.Error(t, err)

	g := New(target, Options{ErrorLevel: dialect.ErrorLevelIgnore})
	g.Render(stmts[0])
	assert.Contains(t, g.Findings(), "UNSUPPORTED_CAST_TYPE:GEOMETRY")
}

func TestGenerateRendererOverride(t *testing.T) {
	target := dialect.NewDialect("ovr").
		AddRenderer("NVL", func(r dialect.Renderer, n ast.Node) (string, error) {
			fn := n.(*ast.FuncCall)
			return "COALESCE(" + r.RenderList(fn.Args) + ")", nil
		}).
		Build()

	stmts, err := parser.Parse("SELECT NVL(a, b) FROM t", ansiDialect(t))
	require.NoError(t, err)

	g := New(target, Options{})
	assert.Equal(t, "SELECT COALESCE(a, b) FROM t", g.Render(stmts[0]))
}

func TestGenerateTypeMapping(t *testing.T) {
	target := dialect.NewDialect("tm").
		WithTypeMapping(map[string]string{"TEXT": "VARCHAR"}).
		Build()

	stmts, err := parser.Parse("SELECT CAST(a AS TEXT) FROM t", ansiDialect(t))
	require.NoError(t, err)

	g := New(target, Options{})
	assert.Equal(t, "SELECT CAST(a AS VARCHAR) FROM t", g.Render(stmts[0]))
}

func TestGenerateMultipleStatements(t *testing.T) {
	assert.Equal(t, "SELECT 1;\nSELECT 2", roundTrip(t, "SELECT 1; SELECT 2"))
}

func TestGenerateBareExpression(t *testing.T) {
	assert.Equal(t, "NVL(x, y)", roundTrip(t, "NVL(x, y)"))
}
