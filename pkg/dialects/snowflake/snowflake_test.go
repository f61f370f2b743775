package snowflake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e6data/sqlporter/pkg/dialects/e6"
	"github.com/e6data/sqlporter/pkg/dialects/snowflake"
	"github.com/e6data/sqlporter/pkg/generator"
	"github.com/e6data/sqlporter/pkg/parser"
)

func toE6(t *testing.T, sql string) string {
	t.Helper()
	stmts, err := parser.Parse(sql, snowflake.New())
	require.NoError(t, err)
	out, err := generator.Generate(stmts, e6.New(), generator.Options{})
	require.NoError(t, err)
	return out
}

func toSnowflake(t *testing.T, sql string) string {
	t.Helper()
	stmts, err := parser.Parse(sql, e6.New())
	require.NoError(t, err)
	out, err := generator.Generate(stmts, snowflake.New(), generator.Options{})
	require.NoError(t, err)
	return out
}

func TestDateDiffArgumentOrder(t *testing.T) {
	// Snowflake computes end - start; the engine computes d1 - d2.
	out := toE6(t, "SELECT DATEDIFF(day, a, b) FROM t")
	assert.Equal(t, "SELECT DATE_DIFF('DAY', b, a) FROM t", out)
}

func TestDateDiffToSnowflake(t *testing.T) {
	out := toSnowflake(t, "SELECT DATE_DIFF('day', CAST('2024-11-11' AS DATE), CAST('2024-11-09' AS DATE))")
	assert.Equal(t,
		"SELECT DATEDIFF(DAY, CAST('2024-11-09' AS DATE), CAST('2024-11-11' AS DATE))", out)
}

func TestDateAddCanonicalized(t *testing.T) {
	out := toE6(t, "SELECT DATEADD(month, 3, d) FROM t")
	assert.Equal(t, "SELECT DATE_ADD('MONTH', 3, d) FROM t", out)
}

func TestArrayPositionOrder(t *testing.T) {
	// Snowflake and the engine both spell (element, array), so the
	// argument order survives the round trip through canonical form.
	out := toE6(t, "SELECT ARRAY_POSITION(x, arr) FROM t")
	assert.Equal(t, "SELECT ARRAY_POSITION(x, arr) FROM t", out)
}

func TestNvlBecomesCoalesce(t *testing.T) {
	out := toE6(t, "SELECT NVL(a, b) FROM t")
	assert.Equal(t, "SELECT COALESCE(a, b) FROM t", out)
}

func TestIffCanonicalized(t *testing.T) {
	out := toE6(t, "SELECT IFF(a > 0, 'pos', 'neg') FROM t")
	assert.Equal(t, "SELECT IF(a > 0, 'pos', 'neg') FROM t", out)
}

func TestListaggToStringAgg(t *testing.T) {
	out := toE6(t, "SELECT LISTAGG(name, ', ') FROM t")
	assert.Equal(t, "SELECT STRING_AGG(name, ', ') FROM t", out)
}

func TestGroupConcatToListagg(t *testing.T) {
	out := toSnowflake(t, "SELECT STRING_AGG(name, ',') FROM t")
	assert.Equal(t, "SELECT LISTAGG(name, ',') FROM t", out)
}

func TestQualifyClause(t *testing.T) {
	sql := "SELECT a, ROW_NUMBER() OVER (PARTITION BY a ORDER BY b) AS rn FROM t QUALIFY rn = 1"
	stmts, err := parser.Parse(sql, snowflake.New())
	require.NoError(t, err)
	require.Len(t, stmts, 1)
}

func TestToCharTimeFormat(t *testing.T) {
	out := toE6(t, "SELECT TO_CHAR(d, 'YYYY-MM-DD') FROM t")
	assert.Equal(t, "SELECT FORMAT_DATE(d, 'yyyy-MM-dd') FROM t", out)
}

func TestBitwiseFunctions(t *testing.T) {
	out := toE6(t, "SELECT BITAND(a, b), BITSHIFTLEFT(a, 2) FROM t")
	assert.Equal(t, "SELECT BITWISE_AND(a, b), SHIFTLEFT(a, 2) FROM t", out)
}
