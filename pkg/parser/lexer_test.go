package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/token"
)

func tokenTypes(toks []token.Token) []token.TokenType {
	types := make([]token.TokenType, 0, len(toks))
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	return types
}

func TestTokenizeBasic(t *testing.T) {
	toks, err := Tokenize("SELECT a, b FROM t WHERE a >= 10", testDialect(t))
	require.NoError(t, err)
	assert.Equal(t, []token.TokenType{
		token.SELECT, token.IDENT, token.COMMA, token.IDENT,
		token.FROM, token.IDENT, token.WHERE, token.IDENT,
		token.GE, token.NUMBER, token.EOF,
	}, tokenTypes(toks))
}

func TestTokenizeOperators(t *testing.T) {
	toks, err := Tokenize("a || b :: INT -> [ ] <> != ?", testDialect(t))
	require.NoError(t, err)
	assert.Equal(t, []token.TokenType{
		token.IDENT, token.DPIPE, token.IDENT, token.DCOLON, token.IDENT,
		token.ARROW, token.LBRACKET, token.RBRACKET, token.NE, token.NE,
		token.QUESTION, token.EOF,
	}, tokenTypes(toks))
}

func TestTokenizeStrings(t *testing.T) {
	toks, err := Tokenize(`'it''s' 'plain'`, testDialect(t))
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, "it's", toks[0].Literal)
	assert.Equal(t, "plain", toks[1].Literal)
}

func TestTokenizeBackslashEscapes(t *testing.T) {
	d := dialect.NewDialect("bs").BackslashStringEscapes().Build()
	toks, err := Tokenize(`'a\'b'`, d)
	require.NoError(t, err)
	assert.Equal(t, "a'b", toks[0].Literal)
}

func TestTokenizeQuotedIdentifiers(t *testing.T) {
	toks, err := Tokenize(`"select" "a""b"`, testDialect(t))
	require.NoError(t, err)
	require.Len(t, toks, 3)

	assert.Equal(t, token.IDENT, toks[0].Type)
	assert.Equal(t, "select", toks[0].Literal)
	assert.True(t, toks[0].Quoted)
	assert.Equal(t, `a"b`, toks[1].Literal)
}

func TestTokenizeBacktickDialect(t *testing.T) {
	d := dialect.NewDialect("bt").
		Identifiers("`", "`", "``", dialect.NormCaseInsensitive).
		Build()
	toks, err := Tokenize("SELECT `col name` FROM t", d)
	require.NoError(t, err)
	assert.Equal(t, "col name", toks[1].Literal)
	assert.True(t, toks[1].Quoted)
}

func TestTokenizeNumbers(t *testing.T) {
	toks, err := Tokenize("1 2.5 1e10 3.14E-2", testDialect(t))
	require.NoError(t, err)
	require.Len(t, toks, 5)
	assert.Equal(t, "1", toks[0].Literal)
	assert.Equal(t, "2.5", toks[1].Literal)
	assert.Equal(t, "1e10", toks[2].Literal)
	assert.Equal(t, "3.14E-2", toks[3].Literal)
}

func TestTokenizeComments(t *testing.T) {
	l := NewLexer("SELECT 1 -- trailing\n/* block */ FROM t", testDialect(t))
	for {
		if tok := l.NextToken(); tok.Type == token.EOF {
			break
		}
	}
	require.Len(t, l.Comments, 2)
	assert.Equal(t, token.LineComment, l.Comments[0].Kind)
	assert.Equal(t, token.BlockComment, l.Comments[1].Kind)
	assert.Contains(t, l.Comments[1].Text, "block")
}

func TestTokenizeDialectKeyword(t *testing.T) {
	kw := token.Register("MYWORD")
	d := dialect.NewDialect("kw").AddKeyword("MYWORD", kw).Build()

	toks, err := Tokenize("myword other", d)
	require.NoError(t, err)
	assert.Equal(t, kw, toks[0].Type)
	assert.Equal(t, token.IDENT, toks[1].Type)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize("SELECT 'oops", testDialect(t))
	require.Error(t, err)

	var terr *TokenizeError
	require.ErrorAs(t, err, &terr)
}

func TestTokenizePositions(t *testing.T) {
	toks, err := Tokenize("SELECT\n  a", testDialect(t))
	require.NoError(t, err)
	assert.Equal(t, 1, toks[0].Pos.Line)
	assert.Equal(t, 2, toks[1].Pos.Line)
	assert.Equal(t, 3, toks[1].Pos.Column)
}
