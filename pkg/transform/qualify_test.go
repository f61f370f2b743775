package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualifyColumnsSingleTable(t *testing.T) {
	stmts := mustParse(t, "SELECT a, b FROM orders o WHERE c > 1")
	QualifyColumns(stmts)
	assert.Equal(t, "SELECT o.a, o.b FROM orders AS o WHERE o.c > 1", regen(t, stmts))
}

func TestQualifyColumnsNoAliasUsesTableName(t *testing.T) {
	stmts := mustParse(t, "SELECT a FROM orders")
	QualifyColumns(stmts)
	assert.Equal(t, "SELECT orders.a FROM orders", regen(t, stmts))
}

func TestQualifyColumnsLeavesQualifiedRefs(t *testing.T) {
	stmts := mustParse(t, "SELECT o.a, b FROM orders o")
	QualifyColumns(stmts)
	assert.Equal(t, "SELECT o.a, o.b FROM orders AS o", regen(t, stmts))
}

func TestQualifyColumnsSkipsJoins(t *testing.T) {
	sql := "SELECT a FROM orders o JOIN customers c ON o.id = c.id"
	stmts := mustParse(t, sql)
	QualifyColumns(stmts)
	assert.Equal(t, "SELECT a FROM orders AS o JOIN customers AS c ON o.id = c.id",
		regen(t, stmts))
}

func TestQualifyColumnsNestedSelect(t *testing.T) {
	stmts := mustParse(t, "SELECT a FROM (SELECT x FROM inner_t) sub")
	QualifyColumns(stmts)
	assert.Equal(t, "SELECT a FROM ( SELECT inner_t.x FROM inner_t ) AS sub", regen(t, stmts))
}
