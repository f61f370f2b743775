package spark_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/dialects/e6"
	"github.com/e6data/sqlporter/pkg/dialects/spark"
	"github.com/e6data/sqlporter/pkg/generator"
	"github.com/e6data/sqlporter/pkg/parser"
)

func toE6(t *testing.T, sql string) string {
	t.Helper()
	stmts, err := parser.Parse(sql, spark.New())
	require.NoError(t, err)
	out, err := generator.Generate(stmts, e6.New(), generator.Options{})
	require.NoError(t, err)
	return out
}

func TestDatabricksAliasRegistered(t *testing.T) {
	d, ok := dialect.Get("databricks")
	require.True(t, ok)
	assert.Equal(t, "databricks", d.Name)
	assert.Equal(t, "`", d.Identifiers.Quote)
}

func TestBacktickIdentifiers(t *testing.T) {
	out := toE6(t, "SELECT `my col` FROM `my table`")
	assert.Equal(t, `SELECT "my col" FROM "my table"`, out)
}

func TestNvlBecomesCoalesce(t *testing.T) {
	out := toE6(t, "SELECT NVL(a, b) FROM t")
	assert.Equal(t, "SELECT COALESCE(a, b) FROM t", out)
}

func TestNvlThreeArgsKeepsName(t *testing.T) {
	out := toE6(t, "SELECT NVL(x, y, z) FROM t")
	assert.Equal(t, "SELECT NVL(x, y, z) FROM t", out)
}

func TestCollectListRoundTrip(t *testing.T) {
	out := toE6(t, "SELECT COLLECT_LIST(x) FROM t")
	assert.Equal(t, "SELECT COLLECT_LIST(x) FROM t", out)
}

func TestTwoArgDateAdd(t *testing.T) {
	out := toE6(t, "SELECT DATE_ADD(d, 7) FROM t")
	assert.Equal(t, "SELECT DATE_ADD('DAY', 7, d) FROM t", out)
}

func TestTwoArgDateDiff(t *testing.T) {
	out := toE6(t, "SELECT DATEDIFF(b, a) FROM t")
	assert.Equal(t, "SELECT DATE_DIFF('DAY', b, a) FROM t", out)
}

func TestSizeCanonicalized(t *testing.T) {
	out := toE6(t, "SELECT SIZE(arr) FROM t")
	assert.Equal(t, "SELECT SIZE(arr) FROM t", out)
}

func TestDateFormat(t *testing.T) {
	out := toE6(t, "SELECT DATE_FORMAT(d, 'yyyy-MM-dd') FROM t")
	assert.Equal(t, "SELECT FORMAT_DATE(d, 'yyyy-MM-dd') FROM t", out)
}

func TestInstrSwapsToLocate(t *testing.T) {
	out := toE6(t, "SELECT INSTR(s, 'x') FROM t")
	assert.Equal(t, "SELECT LOCATE('x', s) FROM t", out)
}

func TestStringTypeMapped(t *testing.T) {
	out := toE6(t, "SELECT CAST(x AS STRING) FROM t")
	assert.Equal(t, "SELECT CAST(x AS VARCHAR) FROM t", out)
}
