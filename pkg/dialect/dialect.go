// Package dialect provides SQL dialect configuration for the tokenizer,
// parser and generator.
//
// A Dialect is a set of lookup tables: lexer symbols and keywords,
// operator precedence, per-function parse builders, and per-function
// render overrides. Concrete dialects are registered from pkg/dialects/*/
// packages at init() time and composed by copying a base dialect's tables
// and overriding entries, so registration order inside one dialect never
// changes the outcome.
package dialect

import (
	"strings"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/token"
)

// NormalizationStrategy controls how unquoted identifiers are normalized.
type NormalizationStrategy int

// Normalization strategies.
const (
	NormCaseInsensitive NormalizationStrategy = iota // compare lowercased, render as written
	NormLowercase                                    // fold to lowercase
	NormUppercase                                    // fold to uppercase
	NormCaseSensitive                                // keep as written
)

// IdentifierConfig describes identifier quoting for a dialect.
type IdentifierConfig struct {
	Quote         string // opening quote, e.g. `"` or "`"
	QuoteEnd      string // closing quote
	Escape        string // replacement for QuoteEnd inside a quoted name
	Normalization NormalizationStrategy
}

// Precedence levels for expression parsing.
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1
	PrecedenceAnd        = 2
	PrecedenceNot        = 3
	PrecedenceComparison = 4 // =, <>, <, >, <=, >=, LIKE, IN, BETWEEN
	PrecedenceAddition   = 5 // +, -, ||
	PrecedenceMultiply   = 6 // *, /, %
	PrecedenceUnary      = 7 // -, +, NOT
	PrecedencePostfix    = 8 // ::, [], ->
)

// ParserOps exposes parser operations to dialect handlers without a
// package cycle: dialects depend on this interface, the parser
// implements it.
type ParserOps interface {
	Token() token.Token
	Peek() token.Token
	Match(t token.TokenType) bool
	Expect(t token.TokenType) error
	NextToken()
	Check(t token.TokenType) bool
	ParseExpression() (ast.Expr, error)
	AddError(msg string)
	Position() token.Position
}

// InfixHandler parses a dialect-specific infix operator. It is called
// after the operator token has been consumed, with the already-parsed
// left operand.
type InfixHandler func(p ParserOps, left ast.Expr) (ast.Expr, error)

// PrefixHandler parses a dialect-specific prefix construct. It is called
// after the introducing token has been consumed.
type PrefixHandler func(p ParserOps) (ast.Expr, error)

// FunctionBuilder rewrites a parsed function invocation into its
// canonical form. The parser parses the argument list generically, then
// hands the call (source name uppercased) to the builder registered for
// that name. Builders may rename the call, reorder arguments, or return
// an entirely different node.
type FunctionBuilder func(d *Dialect, call *ast.FuncCall) (ast.Expr, error)

// Renderer is the generator surface available to render overrides.
type Renderer interface {
	// Render renders a subtree in the target dialect.
	Render(n ast.Node) string
	// RenderList renders expressions joined by ", ".
	RenderList(exprs []ast.Expr) string
	// FormatTime converts a canonical strftime format string into the
	// target dialect's time tokens.
	FormatTime(format string) string
	// Unsupported records an unsupported-functionality finding. Whether
	// it aborts generation depends on the error level in effect.
	Unsupported(msg string)
	// Dialect returns the target dialect.
	Dialect() *Dialect
}

// RenderFunc renders a node for a specific dialect, overriding the
// generator's default output.
type RenderFunc func(r Renderer, n ast.Node) (string, error)

// TimePair maps one dialect time-format token to its canonical strftime
// equivalent. Pairs are matched longest-token-first in both directions.
type TimePair struct {
	Token    string // dialect token, e.g. "yyyy"
	Strftime string // canonical token, e.g. "%Y"
}

// Dialect represents a SQL dialect configuration. Immutable after Build;
// safe for concurrent use by any number of parsers and generators.
type Dialect struct {
	Name        string
	Identifiers IdentifierConfig

	// Lexing
	symbols          map[string]token.TokenType
	dynamicKw        map[string]token.TokenType
	backslashEscapes bool

	// Parsing
	precedence         map[token.TokenType]int
	infixHandlers      map[token.TokenType]InfixHandler
	prefixHandlers     map[token.TokenType]PrefixHandler
	funcBuilders       map[string]FunctionBuilder
	supportedCastTypes map[string]struct{} // empty means no restriction

	// Function classification
	aggregates map[string]struct{}

	// Generation
	renderers     map[string]RenderFunc   // by canonical function name
	nodeRenderers map[ast.Kind]RenderFunc // by node kind
	typeMapping   map[string]string       // canonical type -> dialect spelling
	timeMapping   []TimePair
	unitMapping   map[string]string // date-part normalization, e.g. "hours" -> "hour"
	reservedWords map[string]struct{}

	nullsOrdering   bool // dialect understands NULLS FIRST / NULLS LAST
	pluralIntervals bool // INTERVAL 2 DAYS is legal
	indexOffset     int  // array subscript base (0 or 1)

	functionsAsKeywords []string // names the lexical scanner treats as keywords, not calls
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case NormUppercase:
		return strings.ToUpper(name)
	case NormLowercase, NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// IsReservedWord returns true if the word needs quoting when used as an
// identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToUpper(word)]
	return ok
}

// IsAggregate returns true if the named function is an aggregate.
func (d *Dialect) IsAggregate(name string) bool {
	_, ok := d.aggregates[strings.ToUpper(name)]
	return ok
}

// Symbols returns the custom operator map for lexer symbol matching.
func (d *Dialect) Symbols() map[string]token.TokenType {
	return d.symbols
}

// LookupKeyword returns the token type for a dialect keyword. Returns
// IDENT and false when the name is not a keyword of this dialect.
func (d *Dialect) LookupKeyword(name string) (token.TokenType, bool) {
	if t, ok := d.dynamicKw[strings.ToLower(name)]; ok {
		return t, true
	}
	return token.IDENT, false
}

// BackslashEscapes reports whether a backslash escapes the next character
// inside string literals, in addition to the doubled-quote form.
func (d *Dialect) BackslashEscapes() bool {
	return d.backslashEscapes
}

// Precedence returns the precedence level for an operator token, or
// PrecedenceNone when the operator is not recognized.
func (d *Dialect) Precedence(t token.TokenType) int {
	if p, ok := d.precedence[t]; ok {
		return p
	}
	return PrecedenceNone
}

// InfixHandler returns the custom infix handler for an operator token.
func (d *Dialect) InfixHandler(t token.TokenType) InfixHandler {
	return d.infixHandlers[t]
}

// PrefixHandler returns the custom prefix handler for a token.
func (d *Dialect) PrefixHandler(t token.TokenType) PrefixHandler {
	return d.prefixHandlers[t]
}

// FunctionBuilder returns the parse-time builder for a source function
// name, or nil when the name has no dialect-specific handling.
func (d *Dialect) FunctionBuilder(name string) FunctionBuilder {
	return d.funcBuilders[strings.ToUpper(name)]
}

// RendererFor returns the render override for a canonical function name.
func (d *Dialect) RendererFor(name string) RenderFunc {
	return d.renderers[strings.ToUpper(name)]
}

// NodeRenderer returns the render override for a node kind.
func (d *Dialect) NodeRenderer(k ast.Kind) RenderFunc {
	return d.nodeRenderers[k]
}

// SupportsCastType reports whether the dialect accepts the given type
// name in CAST expressions. Dialects with no declared restriction accept
// every type.
func (d *Dialect) SupportsCastType(name string) bool {
	if len(d.supportedCastTypes) == 0 {
		return true
	}
	_, ok := d.supportedCastTypes[strings.ToUpper(name)]
	return ok
}

// TypeFor maps a canonical type name to the dialect's spelling. Unmapped
// types pass through unchanged.
func (d *Dialect) TypeFor(name string) string {
	if t, ok := d.typeMapping[strings.ToUpper(name)]; ok {
		return t
	}
	return name
}

// UnitFor normalizes a date-part or interval unit. Unmapped units pass
// through unchanged.
func (d *Dialect) UnitFor(unit string) string {
	if u, ok := d.unitMapping[strings.ToUpper(unit)]; ok {
		return u
	}
	return unit
}

// SupportsNullsOrdering reports whether the dialect accepts NULLS FIRST
// and NULLS LAST in ORDER BY.
func (d *Dialect) SupportsNullsOrdering() bool {
	return d.nullsOrdering
}

// AllowsPluralIntervals reports whether plural interval units are legal.
func (d *Dialect) AllowsPluralIntervals() bool {
	return d.pluralIntervals
}

// IndexOffset returns the dialect's array subscript base.
func (d *Dialect) IndexOffset() int {
	return d.indexOffset
}

// FunctionsAsKeywords returns names that look like calls lexically but
// are keywords in this dialect, used by the lexical function scanner.
func (d *Dialect) FunctionsAsKeywords() []string {
	return d.functionsAsKeywords
}
