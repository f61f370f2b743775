package dialect

import (
	"strings"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/token"
)

// Builder provides a fluent API for constructing dialects.
//
// Dialects compose by table merge, not inheritance: Base copies every
// table from the parent dialect, and later calls override individual
// entries. The parent is never mutated.
type Builder struct {
	dialect *Dialect
}

// Keywords every dialect understands beyond the builtin token set. They
// register once; dialects share the token identity.
var (
	tokenQualify = token.Register("QUALIFY")
	tokenIlike   = token.Register("ILIKE")
)

// NewDialect creates a new dialect builder with the given name and
// ANSI-style defaults: double-quoted identifiers, case-insensitive
// normalization, zero-based array subscripts.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: NormCaseInsensitive,
			},
			symbols: make(map[string]token.TokenType),
			dynamicKw: map[string]token.TokenType{
				"qualify": tokenQualify,
				"ilike":   tokenIlike,
			},
			precedence:         make(map[token.TokenType]int),
			infixHandlers:      make(map[token.TokenType]InfixHandler),
			prefixHandlers:     make(map[token.TokenType]PrefixHandler),
			funcBuilders:       make(map[string]FunctionBuilder),
			supportedCastTypes: make(map[string]struct{}),
			aggregates:         make(map[string]struct{}),
			renderers:          make(map[string]RenderFunc),
			nodeRenderers:      make(map[ast.Kind]RenderFunc),
			typeMapping:        make(map[string]string),
			unitMapping:        make(map[string]string),
			reservedWords:      make(map[string]struct{}),
			nullsOrdering:      true,
		},
	}
}

// Base copies all tables and settings from the parent dialect. Later
// builder calls override individual entries without touching the parent.
func (b *Builder) Base(parent *Dialect) *Builder {
	d := b.dialect
	d.Identifiers = parent.Identifiers
	d.backslashEscapes = parent.backslashEscapes
	d.nullsOrdering = parent.nullsOrdering
	d.pluralIntervals = parent.pluralIntervals
	d.indexOffset = parent.indexOffset
	d.timeMapping = append([]TimePair(nil), parent.timeMapping...)
	d.functionsAsKeywords = append([]string(nil), parent.functionsAsKeywords...)

	copyTokens := func(dst, src map[string]token.TokenType) {
		for k, v := range src {
			dst[k] = v
		}
	}
	copyTokens(d.symbols, parent.symbols)
	copyTokens(d.dynamicKw, parent.dynamicKw)
	for k, v := range parent.precedence {
		d.precedence[k] = v
	}
	for k, v := range parent.infixHandlers {
		d.infixHandlers[k] = v
	}
	for k, v := range parent.prefixHandlers {
		d.prefixHandlers[k] = v
	}
	for k, v := range parent.funcBuilders {
		d.funcBuilders[k] = v
	}
	for k := range parent.supportedCastTypes {
		d.supportedCastTypes[k] = struct{}{}
	}
	for k := range parent.aggregates {
		d.aggregates[k] = struct{}{}
	}
	for k, v := range parent.renderers {
		d.renderers[k] = v
	}
	for k, v := range parent.nodeRenderers {
		d.nodeRenderers[k] = v
	}
	for k, v := range parent.typeMapping {
		d.typeMapping[k] = v
	}
	for k, v := range parent.unitMapping {
		d.unitMapping[k] = v
	}
	for k := range parent.reservedWords {
		d.reservedWords[k] = struct{}{}
	}
	return b
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm NormalizationStrategy) *Builder {
	b.dialect.Identifiers = IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// BackslashStringEscapes enables backslash escapes in string literals.
func (b *Builder) BackslashStringEscapes() *Builder {
	b.dialect.backslashEscapes = true
	return b
}

// AddOperator registers a custom operator symbol for the lexer.
func (b *Builder) AddOperator(symbol string, t token.TokenType) *Builder {
	b.dialect.symbols[symbol] = t
	return b
}

// AddKeyword registers a dialect keyword for the lexer.
func (b *Builder) AddKeyword(name string, t token.TokenType) *Builder {
	b.dialect.dynamicKw[strings.ToLower(name)] = t
	return b
}

// AddInfix registers an infix operator with precedence.
func (b *Builder) AddInfix(t token.TokenType, precedence int) *Builder {
	b.dialect.precedence[t] = precedence
	return b
}

// AddInfixWithHandler registers an infix operator with a custom handler.
func (b *Builder) AddInfixWithHandler(t token.TokenType, precedence int, handler InfixHandler) *Builder {
	b.dialect.precedence[t] = precedence
	b.dialect.infixHandlers[t] = handler
	return b
}

// AddPrefix registers a prefix construct handler.
func (b *Builder) AddPrefix(t token.TokenType, handler PrefixHandler) *Builder {
	b.dialect.prefixHandlers[t] = handler
	return b
}

// WithFunctionBuilders registers parse-time function builders, keyed by
// source function name.
func (b *Builder) WithFunctionBuilders(builders map[string]FunctionBuilder) *Builder {
	for name, fb := range builders {
		b.dialect.funcBuilders[strings.ToUpper(name)] = fb
	}
	return b
}

// AddFunctionBuilder registers a single parse-time function builder.
func (b *Builder) AddFunctionBuilder(name string, fb FunctionBuilder) *Builder {
	b.dialect.funcBuilders[strings.ToUpper(name)] = fb
	return b
}

// WithRenderers registers render overrides keyed by canonical function
// name.
func (b *Builder) WithRenderers(renderers map[string]RenderFunc) *Builder {
	for name, rf := range renderers {
		b.dialect.renderers[strings.ToUpper(name)] = rf
	}
	return b
}

// AddRenderer registers a render override for one canonical function.
func (b *Builder) AddRenderer(name string, rf RenderFunc) *Builder {
	b.dialect.renderers[strings.ToUpper(name)] = rf
	return b
}

// AddNodeRenderer registers a render override for a node kind.
func (b *Builder) AddNodeRenderer(k ast.Kind, rf RenderFunc) *Builder {
	b.dialect.nodeRenderers[k] = rf
	return b
}

// WithTypeMapping maps canonical type names to dialect spellings.
func (b *Builder) WithTypeMapping(mapping map[string]string) *Builder {
	for k, v := range mapping {
		b.dialect.typeMapping[strings.ToUpper(k)] = v
	}
	return b
}

// WithTimeMapping sets the dialect's time-format token table.
func (b *Builder) WithTimeMapping(pairs []TimePair) *Builder {
	b.dialect.timeMapping = append([]TimePair(nil), pairs...)
	return b
}

// WithUnitMapping maps date-part and interval unit spellings to the
// dialect's canonical forms.
func (b *Builder) WithUnitMapping(mapping map[string]string) *Builder {
	for k, v := range mapping {
		b.dialect.unitMapping[strings.ToUpper(k)] = v
	}
	return b
}

// WithReservedWords registers words that need quoting as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[strings.ToUpper(w)] = struct{}{}
	}
	return b
}

// WithSupportedCastTypes restricts the types accepted in CAST
// expressions. Parsing a CAST to any other type fails.
func (b *Builder) WithSupportedCastTypes(types ...string) *Builder {
	for _, t := range types {
		b.dialect.supportedCastTypes[strings.ToUpper(t)] = struct{}{}
	}
	return b
}

// Aggregates marks function names as aggregates.
func (b *Builder) Aggregates(funcs ...string) *Builder {
	for _, f := range funcs {
		b.dialect.aggregates[strings.ToUpper(f)] = struct{}{}
	}
	return b
}

// NullsOrdering sets whether NULLS FIRST / NULLS LAST is supported.
func (b *Builder) NullsOrdering(supported bool) *Builder {
	b.dialect.nullsOrdering = supported
	return b
}

// PluralIntervals sets whether plural interval units are legal.
func (b *Builder) PluralIntervals(allowed bool) *Builder {
	b.dialect.pluralIntervals = allowed
	return b
}

// IndexOffset sets the array subscript base.
func (b *Builder) IndexOffset(offset int) *Builder {
	b.dialect.indexOffset = offset
	return b
}

// WithFunctionsAsKeywords adds names the lexical scanner should treat as
// keywords even when followed by a parenthesis.
func (b *Builder) WithFunctionsAsKeywords(names ...string) *Builder {
	b.dialect.functionsAsKeywords = append(b.dialect.functionsAsKeywords, names...)
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
