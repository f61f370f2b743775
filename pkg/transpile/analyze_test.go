package transpile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e6data/sqlporter/pkg/dialects/e6"
	"github.com/e6data/sqlporter/pkg/dialects/snowflake"
	"github.com/e6data/sqlporter/pkg/transpile"
)

func testCatalog() transpile.FunctionCatalog {
	return transpile.FunctionCatalog{
		"e6":        {"SUM", "AVG", "COALESCE", "COUNT", "DATE_DIFF"},
		"snowflake": {"SUM", "AVG", "NVL", "COUNT", "DATEDIFF", "TO_GEOGRAPHY"},
	}
}

func analyze(t *testing.T, query string) *transpile.Analysis {
	t.Helper()
	res, err := transpile.Analyze(query, snowflake.New(), e6.New(),
		transpile.Options{Catalog: testCatalog()})
	require.NoError(t, err)
	return res
}

func TestAnalyzeExecutable(t *testing.T) {
	res := analyze(t, "SELECT NVL(a, b), SUM(c) FROM t")

	// NVL rewrites to COALESCE, so the transpiled query only uses
	// functions the target knows.
	assert.True(t, res.Executable)
	assert.Contains(t, res.TranspiledQuery, "COALESCE(a, b)")
	assert.Contains(t, res.Functions.Supported, "SUM")
	assert.Empty(t, res.Functions.Unsupported)
}

func TestAnalyzeUnsupportedFunction(t *testing.T) {
	res := analyze(t, "SELECT TO_GEOGRAPHY(a) FROM t")

	assert.False(t, res.Executable)
	assert.Contains(t, res.Functions.Unsupported, "TO_GEOGRAPHY")
	assert.Empty(t, res.Metadata.UDFs)
}

func TestAnalyzeUDF(t *testing.T) {
	res := analyze(t, "SELECT my_scoring_udf(a) FROM t")

	// Unknown to the source dialect as well, so it is reported as a UDF
	// rather than a missing builtin.
	assert.Contains(t, res.Metadata.UDFs, "MY_SCORING_UDF")
}

func TestAnalyzeMetadata(t *testing.T) {
	res := analyze(t, `WITH recent AS (SELECT * FROM sales.orders WHERE d > x)
SELECT *
FROM recent r
LEFT JOIN crm.customers c ON r.cid = c.id`)

	assert.Equal(t, []string{"sales.orders", "crm.customers"}, res.Metadata.Tables)
	assert.Equal(t, []string{"recent"}, res.Metadata.CTEs)
	assert.Equal(t, []string{"sales", "crm"}, res.Metadata.Schemas)
	require.Len(t, res.Metadata.Joins, 1)
	assert.Equal(t, [][]string{
		{"recent"},
		{"crm.customers", "OUTER", "LEFT"},
	}, res.Metadata.Joins[0])
}

func TestAnalyzeTiming(t *testing.T) {
	res := analyze(t, "SELECT SUM(a) FROM t")
	assert.Greater(t, res.Timing.Total, res.Timing.Parse)
}

func TestAnalyzeEmptyQuery(t *testing.T) {
	_, err := transpile.Analyze("", snowflake.New(), e6.New(), transpile.Options{})
	assert.ErrorIs(t, err, transpile.ErrEmptyQuery)
}
