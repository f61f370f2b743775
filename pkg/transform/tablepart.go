package transform

import (
	"regexp"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/parser"
)

// TransformTableParts merges three-part names into two parts on the
// tree: catalog.schema.table becomes catalog_schema.table, and the same
// for fully qualified column references. The target engine addresses at
// most two name levels.
func TransformTableParts(stmts []ast.Statement) {
	for _, stmt := range stmts {
		ast.Walk(stmt, func(n, _ ast.Node) bool {
			switch v := n.(type) {
			case *ast.TableName:
				if v.Catalog != "" && v.Schema != "" {
					v.Schema = v.Catalog + "_" + v.Schema
					v.Catalog = ""
				}
			case *ast.ColumnRef:
				if v.Catalog != "" && v.Schema != "" {
					v.Schema = v.Catalog + "_" + v.Schema
					v.Catalog = ""
				}
			}
			return true
		})
	}
}

// TransformCatalogSchemaOnly applies the catalog_schema merge to the raw
// query text without otherwise transpiling it. The query is parsed with
// the source dialect only to discover which qualified names occur; each
// one is then replaced in the original text with a case-insensitive
// word-boundary match, so formatting and unparsed constructs survive.
// When the query does not parse it is returned unchanged.
func TransformCatalogSchemaOnly(query string, from *dialect.Dialect) string {
	stmts, err := parser.ParseWithOptions(query, from, parser.Options{
		ErrorLevel: dialect.ErrorLevelIgnore,
	})
	if err != nil {
		return query
	}

	type replacement struct {
		pattern *regexp.Regexp
		text    string
	}
	var replacements []replacement
	add := func(parts []string, merged string) {
		var src string
		for i, p := range parts {
			if i > 0 {
				src += `\.`
			}
			src += regexp.QuoteMeta(p)
		}
		re, err := regexp.Compile(`(?i)\b` + src + `\b`)
		if err != nil {
			return
		}
		replacements = append(replacements, replacement{re, merged})
	}

	for _, stmt := range stmts {
		ast.Walk(stmt, func(n, _ ast.Node) bool {
			switch v := n.(type) {
			case *ast.TableName:
				if v.Catalog != "" && v.Schema != "" {
					add([]string{v.Catalog, v.Schema, v.Name},
						v.Catalog+"_"+v.Schema+"."+v.Name)
				}
			case *ast.ColumnRef:
				if v.Catalog != "" && v.Schema != "" && v.Table != "" {
					add([]string{v.Catalog, v.Schema, v.Table, v.Column},
						v.Catalog+"_"+v.Schema+"."+v.Table+"."+v.Column)
				}
			}
			return true
		})
	}

	for _, r := range replacements {
		query = r.pattern.ReplaceAllString(query, r.text)
	}
	return query
}
