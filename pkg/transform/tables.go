package transform

import (
	"fmt"
	"strings"

	"github.com/e6data/sqlporter/pkg/ast"
)

// ExtractTables returns the physical tables a query reads, as
// "schema.name" when qualified and bare names otherwise, deduplicated in
// first-seen order. Names that turn out to be CTE aliases are excluded:
// a WITH clause shadows any table of the same name.
func ExtractTables(stmts []ast.Statement) []string {
	var tables []string
	seen := map[string]bool{}
	for _, stmt := range stmts {
		for _, tbl := range ast.FindAll[*ast.TableName](stmt) {
			name := tbl.Name
			if tbl.Schema != "" {
				name = tbl.Schema + "." + name
			}
			if !seen[name] {
				seen[name] = true
				tables = append(tables, name)
			}
		}
		for _, cte := range ast.FindAll[*ast.CTE](stmt) {
			if seen[cte.Name] {
				delete(seen, cte.Name)
				for i, t := range tables {
					if t == cte.Name {
						tables = append(tables[:i], tables[i+1:]...)
						break
					}
				}
			}
		}
	}
	return tables
}

// ExtractSchemas returns the distinct schema prefixes of tables, in
// first-seen order.
func ExtractSchemas(tables []string) []string {
	var schemas []string
	seen := map[string]bool{}
	for _, t := range tables {
		schema, _, found := strings.Cut(t, ".")
		if found && !seen[schema] {
			seen[schema] = true
			schemas = append(schemas, schema)
		}
	}
	return schemas
}

// ExtractJoins reports the join structure of every SELECT block that
// has at least one join. Each group starts with the base table, then
// one entry per join as [table, kind] or [table, kind, side]; a join
// spelled without a kind defaults to OUTER when it has a side and CROSS
// otherwise. Derived tables and VALUES sources appear by alias, with
// their column alias list in "alias(a, b)" form. Groups are
// deduplicated.
func ExtractJoins(stmts []ast.Statement) [][][]string {
	var groups [][][]string
	seen := map[string]bool{}

	for _, stmt := range stmts {
		for _, core := range ast.FindAll[*ast.SelectCore](stmt) {
			if core.From == nil || len(core.From.Joins) == 0 {
				continue
			}

			group := [][]string{{tableRefName(core.From.Source)}}
			for _, join := range core.From.Joins {
				side := strings.ToUpper(join.Side)
				kind := strings.ToUpper(join.JoinKind)
				if kind == "" {
					if side != "" {
						kind = "OUTER"
					} else {
						kind = "CROSS"
					}
				}
				entry := []string{tableRefName(join.Target), kind}
				if side != "" {
					entry = append(entry, side)
				}
				group = append(group, entry)
			}

			key := fmt.Sprint(group)
			if !seen[key] {
				seen[key] = true
				groups = append(groups, group)
			}
		}
	}
	return groups
}

// tableRefName names a FROM source for the join report.
func tableRefName(ref ast.TableRef) string {
	switch v := ref.(type) {
	case *ast.TableName:
		if v.Schema != "" {
			return v.Schema + "." + v.Name
		}
		return v.Name
	case *ast.DerivedTable:
		if len(v.Columns) > 0 {
			return v.Alias + "(" + strings.Join(v.Columns, ", ") + ")"
		}
		return v.Alias
	case *ast.ValuesClause:
		if len(v.Columns) > 0 {
			return v.Alias + "(" + strings.Join(v.Columns, ", ") + ")"
		}
		return v.Alias
	default:
		return ""
	}
}
