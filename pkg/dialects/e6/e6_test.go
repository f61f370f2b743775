package e6_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/dialects/ansi"
	"github.com/e6data/sqlporter/pkg/dialects/e6"
	"github.com/e6data/sqlporter/pkg/generator"
	"github.com/e6data/sqlporter/pkg/parser"
)

// transpile parses with src and renders with the e6 dialect.
func transpile(t *testing.T, src *dialect.Dialect, sql string) string {
	t.Helper()
	stmts, err := parser.Parse(sql, src)
	require.NoError(t, err)
	out, err := generator.Generate(stmts, e6.New(), generator.Options{})
	require.NoError(t, err)
	return out
}

// roundTrip runs e6 -> e6.
func roundTrip(t *testing.T, sql string) string {
	t.Helper()
	return transpile(t, e6.New(), sql)
}

func TestRegistered(t *testing.T) {
	d, ok := dialect.Get("e6")
	require.True(t, ok)
	assert.Equal(t, "e6", d.Name)
	assert.Equal(t, 1, d.IndexOffset())
	assert.False(t, d.SupportsNullsOrdering())
	assert.False(t, d.AllowsPluralIntervals())
}

func TestArrayPositionRoundTrip(t *testing.T) {
	sql := "SELECT ARRAY_POSITION(1.9, ARRAY[1, 2, 3, 1.9])"
	assert.Equal(t, sql, roundTrip(t, sql))
}

func TestFilterArrayRoundTrip(t *testing.T) {
	sql := "SELECT FILTER_ARRAY(ARRAY[5, -6, NULL, 7], x -> x > 0)"
	assert.Equal(t, sql, roundTrip(t, sql))
}

func TestFilterArrayRejectsAggregateLambda(t *testing.T) {
	_, err := parser.Parse("SELECT FILTER_ARRAY(ARRAY[1, 2], x -> SUM(x) > 0)", e6.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Lambda expressions in filter functions")
}

func TestDateDiffDefaultUnit(t *testing.T) {
	out := roundTrip(t, "SELECT DATEDIFF(col1, col2) FROM t")
	assert.Equal(t, "SELECT DATE_DIFF('DAY', col1, col2) FROM t", out)
}

func TestDateDiffExplicitUnit(t *testing.T) {
	out := roundTrip(t, "SELECT DATE_DIFF('hours', a, b) FROM t")
	assert.Equal(t, "SELECT DATE_DIFF('HOUR', a, b) FROM t", out)
}

func TestElementAtRoundTrip(t *testing.T) {
	assert.Equal(t, "SELECT ELEMENT_AT(arr, 3) FROM t",
		roundTrip(t, "SELECT ELEMENT_AT(arr, 3) FROM t"))
}

func TestSubscriptBecomesElementAt(t *testing.T) {
	// ANSI subscripts are zero-based; the engine is one-based.
	out := transpile(t, ansi.New(), "SELECT arr[2] FROM t")
	assert.Equal(t, "SELECT ELEMENT_AT(arr, 3) FROM t", out)
}

func TestAggregateSpellings(t *testing.T) {
	out := roundTrip(t, "SELECT ARBITRARY(x), COLLECT_LIST(y), GREATEST(a, b), LEAST(a, b) FROM t")
	assert.Equal(t, "SELECT ARBITRARY(x), COLLECT_LIST(y), MAX(a, b), MIN(a, b) FROM t", out)
}

func TestApproxCountDistinct(t *testing.T) {
	out := roundTrip(t, "SELECT APPROX_COUNT_DISTINCT(a) FROM foo")
	assert.Equal(t, "SELECT APPROX_COUNT_DISTINCT(a) FROM foo", out)
}

func TestStringAggDefaultSeparator(t *testing.T) {
	assert.Equal(t, "SELECT STRING_AGG(x, '-') FROM t",
		roundTrip(t, "SELECT LISTAGG(x) FROM t"))
	assert.Equal(t, "SELECT STRING_AGG(x, ',') FROM t",
		roundTrip(t, "SELECT STRING_AGG(x, ',') FROM t"))
}

func TestCastTypeMapping(t *testing.T) {
	out := roundTrip(t, "SELECT CAST(x AS TEXT) FROM t")
	assert.Equal(t, "SELECT CAST(x AS VARCHAR) FROM t", out)
}

func TestUnsupportedCastType(t *testing.T) {
	stmts, err := parser.Parse("SELECT CAST(x AS GEOMETRY) FROM t", e6.New())
	require.NoError(t, err)

	g := generator.New(e6.New(), generator.Options{ErrorLevel: dialect.ErrorLevelIgnore})
	g.Render(stmts[0])
	assert.Contains(t, g.Findings(), "UNSUPPORTED_CAST_TYPE:GEOMETRY")
}

func TestNullsOrderingDropped(t *testing.T) {
	out := roundTrip(t, "SELECT a FROM t ORDER BY a DESC")
	assert.Equal(t, "SELECT a FROM t ORDER BY a DESC", out)

	stmts, err := parser.Parse("SELECT a FROM t ORDER BY a DESC NULLS LAST", ansi.New())
	require.NoError(t, err)
	g := generator.New(e6.New(), generator.Options{ErrorLevel: dialect.ErrorLevelIgnore})
	assert.Equal(t, "SELECT a FROM t ORDER BY a DESC", g.Render(stmts[0]))
	assert.NotEmpty(t, g.Findings())
}

func TestIntervalUnitSingularized(t *testing.T) {
	out := roundTrip(t, "SELECT d + INTERVAL 2 hours FROM t")
	assert.Equal(t, "SELECT d + INTERVAL 2 HOUR FROM t", out)
}

func TestTimeFormatRoundTrip(t *testing.T) {
	sql := "SELECT FORMAT_DATE(d, 'yyyy-MM-dd') FROM t"
	assert.Equal(t, sql, roundTrip(t, sql))
}

func TestToUnixTimestampWrapsStringLiteral(t *testing.T) {
	out := roundTrip(t, "SELECT TO_UNIX_TIMESTAMP('2024-01-01 00:00:00')")
	assert.Equal(t, "SELECT TO_UNIX_TIMESTAMP(CAST('2024-01-01 00:00:00' AS TIMESTAMP))", out)
}

func TestFromUnixtimeDefaultsToSeconds(t *testing.T) {
	assert.Equal(t, "SELECT FROM_UNIXTIME_WITHUNIT(ts, 'seconds') FROM t",
		roundTrip(t, "SELECT FROM_UNIXTIME_WITHUNIT(ts) FROM t"))
	assert.Equal(t, "SELECT FROM_UNIXTIME_WITHUNIT(1674797653, 'milliseconds')",
		roundTrip(t, "SELECT FROM_UNIXTIME_WITHUNIT(1674797653, 'milliseconds')"))
}

func TestReservedWordQuoted(t *testing.T) {
	out := roundTrip(t, "SELECT add FROM t")
	assert.Equal(t, `SELECT "add" FROM t`, out)
}
