package transform

import (
	"strings"

	"github.com/e6data/sqlporter/pkg/ast"
)

// CTEInventory lists the alias names a query introduces itself, grouped
// by the construct that introduced them. Values entries carry their
// column alias list in "alias(a, b)" form when one is present.
type CTEInventory struct {
	CTEs       []string
	Values     []string
	Subqueries []string
}

// All returns every inventory name in one slice.
func (inv CTEInventory) All() []string {
	out := make([]string, 0, len(inv.CTEs)+len(inv.Values)+len(inv.Subqueries))
	out = append(out, inv.CTEs...)
	out = append(out, inv.Values...)
	out = append(out, inv.Subqueries...)
	return out
}

// ExtractCTEInventory collects the CTE, VALUES and derived-table aliases
// defined in stmts, deduplicated in first-seen order.
func ExtractCTEInventory(stmts []ast.Statement) CTEInventory {
	var inv CTEInventory
	seen := map[string]bool{}
	add := func(dst *[]string, name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		*dst = append(*dst, name)
	}

	for _, stmt := range stmts {
		ast.Walk(stmt, func(n, _ ast.Node) bool {
			switch v := n.(type) {
			case *ast.CTE:
				add(&inv.CTEs, v.Name)
			case *ast.ValuesClause:
				if len(v.Columns) > 0 {
					add(&inv.Values, v.Alias+"("+strings.Join(v.Columns, ", ")+")")
				} else {
					add(&inv.Values, v.Alias)
				}
			case *ast.DerivedTable:
				add(&inv.Subqueries, v.Alias)
			}
			return true
		})
	}
	return inv
}

// SetCTENamesCaseSensitively rewrites unqualified table references that
// match a CTE or subquery alias case-insensitively to the exact casing
// the alias was declared with. The target engine resolves CTE names
// case-sensitively, so "SELECT * FROM MYCTE" must be folded back to the
// declared "myCte" spelling before generation.
func SetCTENamesCaseSensitively(stmts []ast.Statement) {
	for _, stmt := range stmts {
		declared := ExtractCTEInventory([]ast.Statement{stmt}).All()
		for _, tbl := range ast.FindAll[*ast.TableName](stmt) {
			if tbl.Schema != "" || tbl.Catalog != "" {
				continue
			}
			for _, name := range declared {
				if strings.EqualFold(name, tbl.Name) {
					tbl.Name = name
					break
				}
			}
		}
	}
}
