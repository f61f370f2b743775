// Package e6 implements the e6data engine dialect, the primary
// transpilation target. The engine accepts a Calcite-flavored SQL
// surface with a restricted cast-type set, one-based array subscripts,
// and Java-style time format tokens.
package e6

import (
	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/dialects/ansi"
)

func init() {
	dialect.Register(New())
}

// timeMapping maps the engine's Java-style time tokens to canonical
// strftime. Longest tokens are listed first so "yyyy" wins over "y".
var timeMapping = []dialect.TimePair{
	{Token: "yyyy", Strftime: "%Y"},
	{Token: "YYYY", Strftime: "%Y"},
	{Token: "MMMM", Strftime: "%B"},
	{Token: "MMM", Strftime: "%b"},
	{Token: "YY", Strftime: "%y"},
	{Token: "yy", Strftime: "%y"},
	{Token: "MM", Strftime: "%m"},
	{Token: "dd", Strftime: "%d"},
	{Token: "HH", Strftime: "%H"},
	{Token: "hh", Strftime: "%I"},
	{Token: "mm", Strftime: "%M"},
	{Token: "ss", Strftime: "%S"},
	{Token: "Y", Strftime: "%Y"},
	{Token: "y", Strftime: "%Y"},
	{Token: "M", Strftime: "%-m"},
	{Token: "d", Strftime: "%-d"},
	{Token: "H", Strftime: "%-H"},
	{Token: "h", Strftime: "%-I"},
	{Token: "m", Strftime: "%-M"},
	{Token: "s", Strftime: "%-S"},
	{Token: "E", Strftime: "%a"},
}

// unitMapping normalizes date-part spellings: plural forms collapse to
// the singular uppercase unit the engine expects.
var unitMapping = map[string]string{
	"MILLISECONDS": "MILLISECOND",
	"MILLISECOND":  "MILLISECOND",
	"SECONDS":      "SECOND",
	"SECOND":       "SECOND",
	"MINUTES":      "MINUTE",
	"MINUTE":       "MINUTE",
	"HOURS":        "HOUR",
	"HOUR":         "HOUR",
	"DAYS":         "DAY",
	"DAY":          "DAY",
	"WEEKS":        "WEEK",
	"WEEK":         "WEEK",
	"MONTHS":       "MONTH",
	"MONTH":        "MONTH",
	"QUARTERS":     "QUARTER",
	"QUARTER":      "QUARTER",
	"YEARS":        "YEAR",
	"YEAR":         "YEAR",
}

// typeMapping rewrites canonical type names into the engine's spelling.
// Unsigned integer flavors and the text family collapse into the
// engine's narrower type set.
var typeMapping = map[string]string{
	"NCHAR":        "CHAR",
	"TINYINT":      "INT",
	"SMALLINT":     "INT",
	"MEDIUMINT":    "INT",
	"UTINYINT":     "INT",
	"USMALLINT":    "INT",
	"UMEDIUMINT":   "INT",
	"UINT":         "INT",
	"UBIGINT":      "BIGINT",
	"UDECIMAL":     "DECIMAL",
	"TEXT":         "VARCHAR",
	"TINYTEXT":     "VARCHAR",
	"MEDIUMTEXT":   "VARCHAR",
	"STRING":       "VARCHAR",
	"TIMESTAMPTZ":  "TIMESTAMP",
	"TIMESTAMPNTZ": "TIMESTAMP",
	"DATE32":       "DATE",
	"DATETIME":     "TIMESTAMP",
	"NUMERIC":      "DECIMAL",
	"REAL":         "FLOAT",
	"INTEGER":      "INT",
	"BOOL":         "BOOLEAN",
	"INT4":         "INT",
	"INT8":         "BIGINT",
	"FLOAT4":       "FLOAT",
	"FLOAT8":       "DOUBLE",
	"BPCHAR":       "CHAR",
}

// castTypes is the closed set of types the engine accepts in CAST.
// Anything else is reported as an unsupported cast.
var castTypes = []string{
	"CHAR", "VARCHAR", "INT", "BIGINT", "BOOLEAN",
	"DATE", "FLOAT", "DOUBLE", "TIMESTAMP", "DECIMAL",
	"JSON", "STRUCT", "ARRAY",
}

var reservedWords = []string{
	"add", "all", "and", "as", "asc", "before", "between", "bigint",
	"case", "char", "character", "continue", "convert", "cube",
	"current_date", "current_timestamp", "decimal", "dense_rank",
	"desc", "distinct", "div", "double", "else", "except", "exists",
	"false", "first_value", "float", "from", "group", "grouping",
	"groups", "having", "in", "inner", "int", "integer", "intersect",
	"interval", "is", "join", "json_table", "key", "keys", "lag",
	"last_value", "lead", "left", "like", "limit", "localtime",
	"localtimestamp", "mod", "not", "nth_value", "ntile", "null",
	"of", "on", "or", "order", "outer", "over", "partition",
	"percent_rank", "rank", "regexp", "return", "right", "rlike",
	"row", "row_number", "select", "smallint", "then", "true",
	"union", "unsigned", "update", "use", "values", "varchar",
	"when", "where", "while", "window", "with", "xor",
}

// functionsAsKeywords are names the lexical function scanner must treat
// as syntax rather than calls, even when followed by parentheses.
var functionsAsKeywords = []string{
	"CAST", "TRY_CAST", "EXTRACT", "INTERVAL", "FILTER",
	"EXISTS", "GROUPING", "TRIM", "LEFT", "RIGHT",
}

// New builds the e6 dialect on top of the ANSI base.
func New() *dialect.Dialect {
	return dialect.NewDialect("e6").
		Base(ansi.New()).
		Identifiers(`"`, `"`, `""`, dialect.NormLowercase).
		BackslashStringEscapes().
		WithTimeMapping(timeMapping).
		WithUnitMapping(unitMapping).
		WithTypeMapping(typeMapping).
		WithSupportedCastTypes(castTypes...).
		WithReservedWords(reservedWords...).
		WithFunctionsAsKeywords(functionsAsKeywords...).
		NullsOrdering(false).
		PluralIntervals(false).
		IndexOffset(1).
		WithFunctionBuilders(functionBuilders()).
		WithRenderers(renderers()).
		AddNodeRenderer(ast.KindIndex, renderElementAt).
		Build()
}
