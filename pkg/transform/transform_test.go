package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/generator"
	"github.com/e6data/sqlporter/pkg/parser"
)

func testDialect(t *testing.T) *dialect.Dialect {
	t.Helper()
	return dialect.NewDialect("scratch").Build()
}

func mustParse(t *testing.T, sql string) []ast.Statement {
	t.Helper()
	stmts, err := parser.Parse(sql, testDialect(t))
	require.NoError(t, err)
	return stmts
}

// regen renders the (possibly rewritten) statements back to compact SQL.
func regen(t *testing.T, stmts []ast.Statement) string {
	t.Helper()
	out, err := generator.Generate(stmts, testDialect(t), generator.Options{})
	require.NoError(t, err)
	return out
}
