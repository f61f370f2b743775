package generator

import (
	"strings"

	"github.com/e6data/sqlporter/pkg/ast"
)

// renderSelectStmt renders WITH, body, ORDER BY, LIMIT and OFFSET.
func (g *Generator) renderSelectStmt(stmt *ast.SelectStmt) string {
	var sb strings.Builder

	if stmt.With != nil {
		sb.WriteString(g.renderWithClause(stmt.With))
		sb.WriteString(g.sep())
	}

	sb.WriteString(g.renderSelectBody(stmt.Body))

	if len(stmt.OrderBy) > 0 {
		sb.WriteString(g.sep())
		sb.WriteString("ORDER BY ")
		sb.WriteString(g.renderOrderByList(stmt.OrderBy))
	}
	if stmt.Limit != nil {
		sb.WriteString(g.sep())
		sb.WriteString("LIMIT ")
		sb.WriteString(g.Render(stmt.Limit))
	}
	if stmt.Offset != nil {
		sb.WriteString(g.sep())
		sb.WriteString("OFFSET ")
		sb.WriteString(g.Render(stmt.Offset))
	}
	return sb.String()
}

// renderWithClause renders WITH [RECURSIVE] name [(cols)] AS (...), ...
func (g *Generator) renderWithClause(with *ast.WithClause) string {
	var sb strings.Builder
	sb.WriteString("WITH ")
	if with.Recursive {
		sb.WriteString("RECURSIVE ")
	}

	for i, cte := range with.CTEs {
		if i > 0 {
			sb.WriteString(",")
			sb.WriteString(g.sep())
		}
		sb.WriteString(g.ident(cte.Name, cte.Quoted))
		if len(cte.Columns) > 0 {
			sb.WriteString(" (")
			sb.WriteString(g.identList(cte.Columns))
			sb.WriteString(")")
		}
		sb.WriteString(" AS (")
		sb.WriteString(g.indented(func() string {
			return g.sep() + g.Render(cte.Body)
		}))
		sb.WriteString(g.sep())
		sb.WriteString(")")
	}
	return sb.String()
}

// renderSelectBody renders the core and any chained set operations.
func (g *Generator) renderSelectBody(body *ast.SelectBody) string {
	if body == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(g.renderSelectCore(body.Core))

	if body.Op != ast.SetOpNone && body.Right != nil {
		sb.WriteString(g.sep())
		sb.WriteString(body.Op.String())
		if body.All {
			sb.WriteString(" ALL")
		}
		sb.WriteString(g.sep())
		sb.WriteString(g.renderSelectBody(body.Right))
	}
	return sb.String()
}

// renderSelectCore renders one SELECT ... FROM ... block.
func (g *Generator) renderSelectCore(core *ast.SelectCore) string {
	if core == nil {
		return ""
	}
	var sb strings.Builder

	sb.WriteString("SELECT")
	if core.Distinct {
		sb.WriteString(" DISTINCT")
	}
	if g.opts.Pretty {
		sb.WriteString(g.indented(func() string {
			parts := make([]string, 0, len(core.Items))
			for _, item := range core.Items {
				parts = append(parts, g.sep()+g.renderSelectItem(item))
			}
			return strings.Join(parts, ",")
		}))
	} else {
		sb.WriteString(" ")
		parts := make([]string, 0, len(core.Items))
		for _, item := range core.Items {
			parts = append(parts, g.renderSelectItem(item))
		}
		sb.WriteString(strings.Join(parts, ", "))
	}

	if core.From != nil {
		sb.WriteString(g.sep())
		sb.WriteString("FROM ")
		sb.WriteString(g.renderFromClause(core.From))
	}
	if core.Where != nil {
		sb.WriteString(g.sep())
		sb.WriteString("WHERE ")
		sb.WriteString(g.Render(core.Where))
	}
	if len(core.GroupBy) > 0 {
		sb.WriteString(g.sep())
		sb.WriteString("GROUP BY ")
		sb.WriteString(g.RenderList(core.GroupBy))
	}
	if core.Having != nil {
		sb.WriteString(g.sep())
		sb.WriteString("HAVING ")
		sb.WriteString(g.Render(core.Having))
	}
	if core.Qualify != nil {
		sb.WriteString(g.sep())
		sb.WriteString("QUALIFY ")
		sb.WriteString(g.Render(core.Qualify))
	}
	return sb.String()
}

// renderSelectItem renders a projection with its alias.
func (g *Generator) renderSelectItem(item *ast.SelectItem) string {
	s := g.Render(item.Expr)
	if item.Alias != "" {
		s += " AS " + g.ident(item.Alias, item.QuotedAlias)
	}
	return s
}

// renderOrderByList renders order keys. NULLS placement drops with a
// finding when the target cannot express it.
func (g *Generator) renderOrderByList(items []*ast.OrderByItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		s := g.Render(item.Expr)
		if item.Desc {
			s += " DESC"
		}
		if item.Nulls != "" {
			if g.dialect.SupportsNullsOrdering() {
				s += " NULLS " + item.Nulls
			} else {
				g.Unsupported("NULLS " + item.Nulls + " ordering")
			}
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

// renderFromClause renders the source and joins.
func (g *Generator) renderFromClause(fc *ast.FromClause) string {
	var sb strings.Builder
	sb.WriteString(g.Render(fc.Source))
	for _, join := range fc.Joins {
		sb.WriteString(g.sep())
		sb.WriteString(g.renderJoin(join))
	}
	return sb.String()
}

// renderJoin renders one join with its side, kind and condition.
func (g *Generator) renderJoin(join *ast.Join) string {
	var sb strings.Builder
	if join.Natural {
		sb.WriteString("NATURAL ")
	}
	if join.Side != "" {
		sb.WriteString(join.Side)
		sb.WriteString(" ")
	}
	// LEFT JOIN reads better than LEFT OUTER JOIN; other kinds stay
	// explicit.
	if join.JoinKind != "" && !(join.JoinKind == "OUTER" && join.Side != "") &&
		join.JoinKind != "INNER" {
		sb.WriteString(join.JoinKind)
		sb.WriteString(" ")
	}
	sb.WriteString("JOIN ")
	sb.WriteString(g.Render(join.Target))

	if join.On != nil {
		sb.WriteString(" ON ")
		sb.WriteString(g.Render(join.On))
	} else if len(join.Using) > 0 {
		sb.WriteString(" USING (")
		sb.WriteString(g.identList(join.Using))
		sb.WriteString(")")
	}
	return sb.String()
}

// renderTableName renders [catalog.][schema.]name [AS alias].
func (g *Generator) renderTableName(t *ast.TableName) string {
	var parts []string
	if t.Catalog != "" {
		parts = append(parts, g.ident(t.Catalog, t.Quoted))
	}
	if t.Schema != "" {
		parts = append(parts, g.ident(t.Schema, t.Quoted))
	}
	parts = append(parts, g.ident(t.Name, t.Quoted))

	s := strings.Join(parts, ".")
	if t.Alias != "" {
		s += " AS " + g.ident(t.Alias, false)
	}
	return s
}

// renderDerivedTable renders (subquery) [AS alias [(cols)]].
func (g *Generator) renderDerivedTable(dt *ast.DerivedTable) string {
	var sb strings.Builder
	if dt.Lateral {
		sb.WriteString("LATERAL ")
	}
	sb.WriteString("(")
	sb.WriteString(g.indented(func() string {
		return g.sep() + g.renderSelectStmt(dt.Select)
	}))
	sb.WriteString(g.sep())
	sb.WriteString(")")
	if dt.Alias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(g.ident(dt.Alias, false))
		if len(dt.Columns) > 0 {
			sb.WriteString(" (")
			sb.WriteString(g.identList(dt.Columns))
			sb.WriteString(")")
		}
	}
	return sb.String()
}

// renderValues renders VALUES (...), (...) [AS alias [(cols)]].
func (g *Generator) renderValues(v *ast.ValuesClause) string {
	var sb strings.Builder
	sb.WriteString("VALUES ")
	for i, row := range v.Rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		sb.WriteString(g.RenderList(row))
		sb.WriteString(")")
	}
	if v.Alias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(g.ident(v.Alias, false))
		if len(v.Columns) > 0 {
			sb.WriteString(" (")
			sb.WriteString(g.identList(v.Columns))
			sb.WriteString(")")
		}
	}
	return sb.String()
}

// identList renders a comma-separated identifier list.
func (g *Generator) identList(names []string) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, g.ident(name, false))
	}
	return strings.Join(parts, ", ")
}
