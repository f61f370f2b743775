package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTables(t *testing.T) {
	stmts := mustParse(t, `SELECT * FROM sales.orders o
JOIN customers c ON o.cid = c.id
JOIN sales.orders o2 ON o2.id = o.id`)

	assert.Equal(t, []string{"sales.orders", "customers"}, ExtractTables(stmts))
}

func TestExtractTablesSkipsCTEAliases(t *testing.T) {
	stmts := mustParse(t, "WITH orders AS (SELECT 1) SELECT * FROM orders, customers")
	assert.Equal(t, []string{"customers"}, ExtractTables(stmts))
}

func TestExtractSchemas(t *testing.T) {
	schemas := ExtractSchemas([]string{"sales.orders", "sales.items", "crm.users", "bare"})
	assert.Equal(t, []string{"sales", "crm"}, schemas)
}

func TestExtractJoins(t *testing.T) {
	stmts := mustParse(t, `SELECT *
FROM sales.orders o
LEFT JOIN customers c ON o.cid = c.id
CROSS JOIN regions r`)

	joins := ExtractJoins(stmts)
	assert.Equal(t, [][][]string{{
		{"sales.orders"},
		{"customers", "OUTER", "LEFT"},
		{"regions", "CROSS"},
	}}, joins)
}

func TestExtractJoinsDerivedAndValues(t *testing.T) {
	stmts := mustParse(t, `SELECT *
FROM (SELECT 1 AS id) base
JOIN (VALUES (1, 'a')) AS v (id, name) ON base.id = v.id`)

	joins := ExtractJoins(stmts)
	assert.Equal(t, [][][]string{{
		{"base"},
		{"v(id, name)", "INNER"},
	}}, joins)
}

func TestExtractJoinsNoJoins(t *testing.T) {
	stmts := mustParse(t, "SELECT * FROM t")
	assert.Empty(t, ExtractJoins(stmts))
}
