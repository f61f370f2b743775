package transform

import "github.com/e6data/sqlporter/pkg/ast"

// EnsureSelectFromValues rewrites every CTE whose body is a bare VALUES
// clause into SELECT * FROM VALUES (...). The values clause receives the
// alias "values_subq" when it has none, since the target engine refuses
// an unaliased row constructor in FROM position.
func EnsureSelectFromValues(stmts []ast.Statement) {
	for _, stmt := range stmts {
		for _, cte := range ast.FindAll[*ast.CTE](stmt) {
			values, ok := cte.Body.(*ast.ValuesClause)
			if !ok {
				continue
			}
			if values.Alias == "" {
				values.Alias = "values_subq"
			}
			cte.Body = &ast.SelectStmt{
				Body: &ast.SelectBody{
					Core: &ast.SelectCore{
						Items: []*ast.SelectItem{{Expr: &ast.StarExpr{}}},
						From:  &ast.FromClause{Source: values},
					},
				},
			}
		}
	}
}
