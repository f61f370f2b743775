// Package transpile orchestrates the full translation pipeline: text
// normalization, parsing with the source dialect, semantic passes,
// generation with the target dialect, and the post-processing passes
// that run on the rendered text. Analyze additionally reports function
// compatibility and query metadata.
package transpile

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/generator"
	"github.com/e6data/sqlporter/pkg/parser"
	"github.com/e6data/sqlporter/pkg/transform"
)

// ErrEmptyQuery is returned when the query is blank after comment
// stripping.
var ErrEmptyQuery = errors.New("transpile: empty query")

// FunctionCatalog maps dialect names to the function names they
// support, as loaded from the supported-functions config file. A nil
// catalog knows no functions.
type FunctionCatalog map[string][]string

// Functions returns the supported functions of the named dialect.
func (c FunctionCatalog) Functions(dialectName string) []string {
	return c[dialectName]
}

// Options configures one transpile or analyze call.
type Options struct {
	// Pretty emits multi-line indented SQL.
	Pretty bool
	// Identify quotes every identifier in the output.
	Identify bool
	// TwoPhaseScheme merges catalog.schema name parts into a single
	// catalog_schema level before generation.
	TwoPhaseScheme bool
	// SkipTranspilation, together with TwoPhaseScheme, applies only the
	// catalog_schema merge to the raw text and skips everything else.
	SkipTranspilation bool
	// TableAliasQualification prefixes unqualified columns with their
	// table's alias in single-table SELECTs.
	TableAliasQualification bool
	// CommentTag is the marker of a routing comment ("/* tag::ID */")
	// preserved across transpilation. Empty disables comment handling.
	CommentTag string
	// ErrorLevel controls reaction to parse and generation problems.
	ErrorLevel dialect.ErrorLevel
	// Catalog resolves the supported-function sets used by Analyze.
	Catalog FunctionCatalog
	// Logger receives pipeline phase logs. Defaults to a discard logger.
	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// Transpile translates query from the source to the target dialect.
func Transpile(query string, from, to *dialect.Dialect, opts Options) (string, error) {
	log := opts.logger()

	query = transform.NormalizeUnicodeSpaces(query)
	var comment string
	if opts.CommentTag != "" {
		query, comment = transform.StripComment(query, opts.CommentTag)
	}
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}

	if opts.TwoPhaseScheme && opts.SkipTranspilation {
		log.Debug("skipping transpilation, merging catalog.schema only",
			"source", from.Name)
		out := transform.TransformCatalogSchemaOnly(query, from)
		return transform.AddComment(out, comment), nil
	}

	stmts, err := parser.ParseWithOptions(query, from, parser.Options{
		ErrorLevel: opts.ErrorLevel,
		Logger:     log,
	})
	if err != nil {
		return "", err
	}

	if opts.TwoPhaseScheme {
		transform.TransformTableParts(stmts)
	}
	if opts.TableAliasQualification {
		transform.QualifyColumns(stmts)
	}
	transform.EnsureSelectFromValues(stmts)
	transform.SetCTENamesCaseSensitively(stmts)

	out, err := generator.Generate(stmts, to, generator.Options{
		Pretty:     opts.Pretty,
		Identify:   opts.Identify,
		ErrorLevel: opts.ErrorLevel,
		Logger:     log,
	})
	if err != nil {
		return "", err
	}

	out = transform.ReplaceStruct(out)
	return transform.AddComment(out, comment), nil
}
