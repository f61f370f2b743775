// Package generator renders canonical SQL trees into dialect-specific
// SQL text.
//
// The generator walks the tree top-down. For every node it first
// consults the target dialect's render overrides (by node kind, then by
// canonical function name) and falls back to the default ANSI rendering.
// Constructs the target cannot express are collected as unsupported
// findings; whether a finding aborts generation depends on the error
// level in effect.
package generator

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/dialect"
)

const indentSize = 2

// Options configures SQL generation.
type Options struct {
	// Pretty emits multi-line indented SQL. Compact single-line SQL
	// otherwise.
	Pretty bool
	// Identify quotes every identifier, not just the ones that need it.
	Identify bool
	// ErrorLevel controls reaction to unsupported constructs.
	ErrorLevel dialect.ErrorLevel
	// Logger receives warnings at ErrorLevelWarn. Defaults to a discard
	// logger.
	Logger *slog.Logger
}

// Generator renders AST nodes as SQL for one target dialect.
type Generator struct {
	dialect     *dialect.Dialect
	opts        Options
	depth       int
	unsupported []string
	errs        []error
}

// New creates a generator for the target dialect.
func New(d *dialect.Dialect, opts Options) *Generator {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{dialect: d, opts: opts}
}

// Generate renders statements joined by ";\n" and resolves accumulated
// findings against the error level.
func Generate(stmts []ast.Statement, d *dialect.Dialect, opts Options) (string, error) {
	g := New(d, opts)
	parts := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		parts = append(parts, g.Render(stmt))
	}
	return strings.Join(parts, ";\n"), g.finish()
}

// GenerateOne renders a single statement.
func GenerateOne(stmt ast.Statement, d *dialect.Dialect, opts Options) (string, error) {
	g := New(d, opts)
	sql := g.Render(stmt)
	return sql, g.finish()
}

// Findings returns the unsupported-functionality messages collected so
// far, in encounter order.
func (g *Generator) Findings() []string {
	return g.unsupported
}

// finish resolves errors against the error level.
func (g *Generator) finish() error {
	if len(g.errs) == 0 {
		return nil
	}
	switch g.opts.ErrorLevel {
	case dialect.ErrorLevelIgnore, dialect.ErrorLevelWarn:
		return nil
	default:
		return g.errs[0]
	}
}

// ---------- dialect.Renderer Implementation ----------

// Render renders one node in the target dialect.
func (g *Generator) Render(n ast.Node) string {
	if n == nil {
		return ""
	}

	if rf := g.dialect.NodeRenderer(n.Kind()); rf != nil {
		return g.applyOverride(rf, n)
	}
	if fc, ok := n.(*ast.FuncCall); ok {
		if rf := g.dialect.RendererFor(fc.Name); rf != nil {
			return g.applyOverride(rf, n)
		}
	}
	return g.renderDefault(n)
}

// RenderList renders expressions joined by ", ".
func (g *Generator) RenderList(exprs []ast.Expr) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, g.Render(e))
	}
	return strings.Join(parts, ", ")
}

// FormatTime converts a canonical strftime format into the target
// dialect's time tokens.
func (g *Generator) FormatTime(format string) string {
	return g.dialect.FromStrftime(format)
}

// Unsupported records an unsupported-functionality finding.
func (g *Generator) Unsupported(msg string) {
	g.unsupported = append(g.unsupported, msg)
	err := fmt.Errorf("unsupported for %s: %s", g.dialect.Name, msg)
	g.errs = append(g.errs, err)
	if g.opts.ErrorLevel == dialect.ErrorLevelWarn {
		g.opts.Logger.Warn("unsupported construct",
			"dialect", g.dialect.Name, "finding", msg)
	}
}

// Dialect returns the target dialect.
func (g *Generator) Dialect() *dialect.Dialect {
	return g.dialect
}

// applyOverride runs a dialect render override; errors degrade to the
// default rendering.
func (g *Generator) applyOverride(rf dialect.RenderFunc, n ast.Node) string {
	s, err := rf(g, n)
	if err != nil {
		g.errs = append(g.errs, err)
		return g.renderDefault(n)
	}
	return s
}

// renderDefault dispatches to the default ANSI rendering.
func (g *Generator) renderDefault(n ast.Node) string {
	switch t := n.(type) {
	case *ast.SelectStmt:
		return g.renderSelectStmt(t)
	case *ast.ExprStmt:
		return g.Render(t.Expr)
	case *ast.SelectBody:
		return g.renderSelectBody(t)
	case *ast.SelectCore:
		return g.renderSelectCore(t)
	case *ast.ValuesClause:
		return g.renderValues(t)
	case *ast.TableName:
		return g.renderTableName(t)
	case *ast.DerivedTable:
		return g.renderDerivedTable(t)
	case *ast.Join:
		return g.renderJoin(t)
	default:
		return g.renderExpr(n)
	}
}

// ---------- Layout Helpers ----------

// sep returns the clause separator: a newline plus indentation when
// pretty, a single space otherwise.
func (g *Generator) sep() string {
	if !g.opts.Pretty {
		return " "
	}
	return "\n" + strings.Repeat(" ", g.depth*indentSize)
}

// indented runs f with one extra indentation level.
func (g *Generator) indented(f func() string) string {
	g.depth++
	s := f()
	g.depth--
	return s
}

// ident quotes an identifier when required: the source quoted it, the
// dialect reserves the word, the name needs quoting lexically, or the
// Identify option forces it.
func (g *Generator) ident(name string, quoted bool) string {
	if name == "" {
		return ""
	}
	if g.opts.Identify || quoted || g.dialect.IsReservedWord(name) || needsQuoting(name) {
		return g.dialect.QuoteIdentifier(name)
	}
	return name
}

// needsQuoting reports whether a name cannot stand as a bare identifier.
func needsQuoting(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return true
			}
		default:
			return true
		}
	}
	return false
}

// quoteString renders a string literal with doubled-quote escaping.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
