package transform

import (
	"strings"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/dialect"
)

// IdentifyUnsupported refines the lexical scan's supported/unsupported
// split using the parsed tree:
//
//   - CTE and derived-table aliases the scan mistook for function calls
//     are dropped from the unsupported set.
//   - A FILTER that is an aggregate projection modifier is supported; a
//     FILTER call over an array with a lambda is not, and is relabeled
//     so the report says which form was meant.
//   - Bind placeholders are reported as unsupported ":name" entries.
//   - CAST target types outside the dialect's supported set are
//     reported as "UNSUPPORTED_CAST_TYPE:<TYPE>".
//   - GROUPING SETS is noted as supported when present.
//
// The refined lists are returned; the inputs are not modified.
func IdentifyUnsupported(stmts []ast.Statement, target *dialect.Dialect, supported, unsupported []string) (ok, missing []string) {
	ok = append([]string(nil), supported...)
	missing = append([]string(nil), unsupported...)

	for _, stmt := range stmts {
		for _, name := range ExtractCTEInventory([]ast.Statement{stmt}).All() {
			missing, _ = removeFirst(missing, strings.ToUpper(name))
		}

		sawGroupingSets := false
		ast.Walk(stmt, func(n, _ ast.Node) bool {
			switch v := n.(type) {
			case *ast.FuncCall:
				if v.Filter != nil {
					if dropped, removed := removeFirst(missing, "FILTER"); removed {
						missing = dropped
						ok = append(ok, "FILTER as projection")
					}
				} else if v.Name == "FILTER" {
					if dropped, removed := removeFirst(missing, "FILTER"); removed {
						missing = append(dropped, "FILTER as filter_array")
					}
				}
			case *ast.Placeholder:
				missing = append(missing, ":"+v.Name)
			case *ast.CastExpr:
				mapped := target.TypeFor(v.Type.Name)
				if !target.SupportsCastType(mapped) {
					missing = append(missing, "UNSUPPORTED_CAST_TYPE:"+v.Type.Name)
				}
			case *ast.GroupingSetsExpr:
				if !sawGroupingSets {
					sawGroupingSets = true
					ok = append(ok, "GROUPING SETS")
				}
			}
			return true
		})
	}
	return ok, missing
}

// removeFirst drops the first element equal to name, reporting whether
// one was found.
func removeFirst(list []string, name string) ([]string, bool) {
	for i, v := range list {
		if v == name {
			return append(list[:i:i], list[i+1:]...), true
		}
	}
	return list, false
}
