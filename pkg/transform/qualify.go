package transform

import (
	"github.com/e6data/sqlporter/pkg/ast"
)

// QualifyColumns prefixes unqualified column references with their
// source table's alias (or name) in every SELECT that reads from
// exactly one table. Multi-table SELECTs are left alone: without
// schema information the owning table is ambiguous. Nested SELECTs
// qualify against their own FROM clause, not the enclosing one.
func QualifyColumns(stmts []ast.Statement) {
	for _, stmt := range stmts {
		for _, core := range ast.FindAll[*ast.SelectCore](stmt) {
			qualifier, ok := soleTableQualifier(core.From)
			if !ok {
				continue
			}
			qualifyCore(core, qualifier)
		}
	}
}

// soleTableQualifier returns the name to qualify columns with when the
// FROM clause is a single plain table.
func soleTableQualifier(from *ast.FromClause) (string, bool) {
	if from == nil || len(from.Joins) > 0 {
		return "", false
	}
	tbl, ok := from.Source.(*ast.TableName)
	if !ok {
		return "", false
	}
	if tbl.Alias != "" {
		return tbl.Alias, true
	}
	return tbl.Name, true
}

func qualifyCore(core *ast.SelectCore, qualifier string) {
	ast.Walk(core, func(n, parent ast.Node) bool {
		switch v := n.(type) {
		case *ast.SelectCore:
			// stop at nested SELECTs; they qualify themselves
			if v != core {
				return false
			}
		case *ast.Lambda:
			// lambda bodies reference lambda parameters, not columns
			return false
		case *ast.ColumnRef:
			if v.Table == "" {
				v.Table = qualifier
			}
		}
		return true
	})
}
