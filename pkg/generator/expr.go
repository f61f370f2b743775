package generator

import (
	"strings"

	"github.com/e6data/sqlporter/pkg/ast"
)

// renderExpr handles the default ANSI rendering of expression nodes.
func (g *Generator) renderExpr(n ast.Node) string {
	switch t := n.(type) {
	case *ast.ColumnRef:
		return g.renderColumnRef(t)

	case *ast.Literal:
		return g.renderLiteral(t)

	case *ast.BinaryExpr:
		return g.Render(t.Left) + " " + t.Op + " " + g.Render(t.Right)

	case *ast.UnaryExpr:
		if t.Op == "NOT" {
			return "NOT " + g.Render(t.Expr)
		}
		return t.Op + g.Render(t.Expr)

	case *ast.FuncCall:
		return g.renderFuncCall(t)

	case *ast.CaseExpr:
		return g.renderCaseExpr(t)

	case *ast.CastExpr:
		return g.renderCastExpr(t)

	case *ast.InExpr:
		return g.renderInExpr(t)

	case *ast.BetweenExpr:
		s := g.Render(t.Expr)
		if t.Not {
			s += " NOT"
		}
		return s + " BETWEEN " + g.Render(t.Low) + " AND " + g.Render(t.High)

	case *ast.IsNullExpr:
		if t.Not {
			return g.Render(t.Expr) + " IS NOT NULL"
		}
		return g.Render(t.Expr) + " IS NULL"

	case *ast.IsBoolExpr:
		s := g.Render(t.Expr) + " IS "
		if t.Not {
			s += "NOT "
		}
		if t.Value {
			return s + "TRUE"
		}
		return s + "FALSE"

	case *ast.LikeExpr:
		return g.renderLikeExpr(t)

	case *ast.ParenExpr:
		return "(" + g.Render(t.Expr) + ")"

	case *ast.StarExpr:
		if t.Table != "" {
			return t.Table + ".*"
		}
		return "*"

	case *ast.SubqueryExpr:
		return "(" + g.Render(t.Select) + ")"

	case *ast.ExistsExpr:
		s := "EXISTS (" + g.Render(t.Select) + ")"
		if t.Not {
			return "NOT " + s
		}
		return s

	case *ast.IntervalExpr:
		return g.renderIntervalExpr(t)

	case *ast.ExtractExpr:
		return "EXTRACT(" + g.dialect.UnitFor(t.Unit) + " FROM " + g.Render(t.From) + ")"

	case *ast.Lambda:
		if len(t.Params) == 1 {
			return t.Params[0] + " -> " + g.Render(t.Body)
		}
		return "(" + strings.Join(t.Params, ", ") + ") -> " + g.Render(t.Body)

	case *ast.Placeholder:
		if t.Name != "" {
			return ":" + t.Name
		}
		return "?"

	case *ast.ArrayExpr:
		return "ARRAY[" + g.RenderList(t.Elems) + "]"

	case *ast.IndexExpr:
		return g.Render(t.Expr) + "[" + g.Render(t.Index) + "]"

	case *ast.GroupingSetsExpr:
		return g.renderGroupingSets(t)

	case *ast.OrderByItem:
		return g.renderOrderByList([]*ast.OrderByItem{t})

	case *ast.WindowSpec:
		return g.renderWindowSpec(t)

	default:
		g.Unsupported("cannot render node")
		return ""
	}
}

// renderColumnRef renders the dotted reference with identifier quoting.
func (g *Generator) renderColumnRef(c *ast.ColumnRef) string {
	var parts []string
	if c.Catalog != "" {
		parts = append(parts, g.ident(c.Catalog, false))
	}
	if c.Schema != "" {
		parts = append(parts, g.ident(c.Schema, false))
	}
	if c.Table != "" {
		parts = append(parts, g.ident(c.Table, false))
	}
	parts = append(parts, g.ident(c.Column, c.Quoted))
	return strings.Join(parts, ".")
}

func (g *Generator) renderLiteral(l *ast.Literal) string {
	if l.Type == ast.StringLiteral {
		return quoteString(l.Value)
	}
	return l.Value
}

// renderFuncCall renders the canonical fallback NAME(args...) with the
// aggregate and window modifiers.
func (g *Generator) renderFuncCall(fn *ast.FuncCall) string {
	// Row value constructors render as bare tuples.
	if fn.Name == "TUPLE" {
		return "(" + g.RenderList(fn.Args) + ")"
	}

	var sb strings.Builder
	sb.WriteString(fn.Name)
	sb.WriteString("(")
	if fn.Distinct {
		sb.WriteString("DISTINCT ")
	}
	if fn.Star {
		sb.WriteString("*")
	} else {
		sb.WriteString(g.RenderList(fn.Args))
	}
	if fn.Separator != nil {
		if len(fn.Args) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(g.Render(fn.Separator))
	}
	sb.WriteString(")")

	if len(fn.WithinGroup) > 0 {
		sb.WriteString(" WITHIN GROUP (ORDER BY ")
		sb.WriteString(g.renderOrderByList(fn.WithinGroup))
		sb.WriteString(")")
	}
	if fn.Filter != nil {
		sb.WriteString(" FILTER (WHERE ")
		sb.WriteString(g.Render(fn.Filter))
		sb.WriteString(")")
	}
	if fn.IgnoreNulls {
		sb.WriteString(" IGNORE NULLS")
	}
	if fn.Over != nil {
		sb.WriteString(" OVER ")
		sb.WriteString(g.renderWindowSpec(fn.Over))
	}
	return sb.String()
}

// renderWindowSpec renders (PARTITION BY ... ORDER BY ... frame).
func (g *Generator) renderWindowSpec(w *ast.WindowSpec) string {
	var clauses []string
	if len(w.PartitionBy) > 0 {
		clauses = append(clauses, "PARTITION BY "+g.RenderList(w.PartitionBy))
	}
	if len(w.OrderBy) > 0 {
		clauses = append(clauses, "ORDER BY "+g.renderOrderByList(w.OrderBy))
	}
	if w.Frame != nil {
		clauses = append(clauses, g.renderFrameSpec(w.Frame))
	}
	return "(" + strings.Join(clauses, " ") + ")"
}

func (g *Generator) renderFrameSpec(f *ast.FrameSpec) string {
	if f.End == nil {
		return f.Unit + " " + g.renderFrameBound(f.Start)
	}
	return f.Unit + " BETWEEN " + g.renderFrameBound(f.Start) +
		" AND " + g.renderFrameBound(*f.End)
}

func (g *Generator) renderFrameBound(b ast.FrameBound) string {
	switch b.Type {
	case ast.UnboundedPreceding:
		return "UNBOUNDED PRECEDING"
	case ast.UnboundedFollowing:
		return "UNBOUNDED FOLLOWING"
	case ast.CurrentRow:
		return "CURRENT ROW"
	case ast.OffsetPreceding:
		return g.Render(b.Offset) + " PRECEDING"
	default:
		return g.Render(b.Offset) + " FOLLOWING"
	}
}

func (g *Generator) renderCaseExpr(c *ast.CaseExpr) string {
	var sb strings.Builder
	sb.WriteString("CASE")
	if c.Operand != nil {
		sb.WriteString(" ")
		sb.WriteString(g.Render(c.Operand))
	}
	for _, when := range c.Whens {
		sb.WriteString(" WHEN ")
		sb.WriteString(g.Render(when.Cond))
		sb.WriteString(" THEN ")
		sb.WriteString(g.Render(when.Result))
	}
	if c.Else != nil {
		sb.WriteString(" ELSE ")
		sb.WriteString(g.Render(c.Else))
	}
	sb.WriteString(" END")
	return sb.String()
}

// renderCastExpr maps the type to the target spelling and flags types the
// target cannot cast to.
func (g *Generator) renderCastExpr(c *ast.CastExpr) string {
	mapped := &ast.DataType{
		Name:   g.dialect.TypeFor(c.Type.Name),
		Params: c.Type.Params,
	}
	// The support check runs on the mapped name so aliases the mapping
	// folds away (TEXT -> VARCHAR) are not reported.
	if !g.dialect.SupportsCastType(mapped.Name) {
		g.Unsupported("UNSUPPORTED_CAST_TYPE:" + c.Type.Name)
	}
	kw := "CAST"
	if c.Try {
		kw = "TRY_CAST"
	}
	return kw + "(" + g.Render(c.Expr) + " AS " + mapped.String() + ")"
}

func (g *Generator) renderInExpr(in *ast.InExpr) string {
	s := g.Render(in.Expr)
	if in.Not {
		s += " NOT"
	}
	s += " IN ("
	if in.Subquery != nil {
		s += g.Render(in.Subquery)
	} else {
		s += g.RenderList(in.List)
	}
	return s + ")"
}

func (g *Generator) renderLikeExpr(l *ast.LikeExpr) string {
	s := g.Render(l.Expr)
	if l.Not {
		s += " NOT"
	}
	if l.ILike {
		s += " ILIKE "
	} else {
		s += " LIKE "
	}
	s += g.Render(l.Pattern)
	if l.Escape != nil {
		s += " ESCAPE " + g.Render(l.Escape)
	}
	return s
}

// renderIntervalExpr normalizes the unit spelling for the target; plural
// units singularize for dialects that reject them.
func (g *Generator) renderIntervalExpr(iv *ast.IntervalExpr) string {
	unit := strings.ToUpper(g.dialect.UnitFor(iv.Unit))
	if !g.dialect.AllowsPluralIntervals() && strings.HasSuffix(unit, "S") {
		unit = strings.TrimSuffix(unit, "S")
	}
	s := "INTERVAL " + g.Render(iv.Value)
	if unit != "" {
		s += " " + unit
	}
	return s
}

func (g *Generator) renderGroupingSets(gs *ast.GroupingSetsExpr) string {
	parts := make([]string, 0, len(gs.Sets))
	for _, set := range gs.Sets {
		parts = append(parts, "("+g.RenderList(set)+")")
	}
	return "GROUPING SETS (" + strings.Join(parts, ", ") + ")"
}
