package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUnicodeSpaces(t *testing.T) {
	assert.Equal(t,
		"SELECT a FROM t",
		NormalizeUnicodeSpaces("SELECT a FROM t"))
}

func TestNormalizeKeepsQuotedLiterals(t *testing.T) {
	got := NormalizeUnicodeSpaces("SELECT ' ' FROM t")
	assert.Equal(t, "SELECT ' ' FROM t", got)
}

func TestNormalizeEscapedQuoteInLiteral(t *testing.T) {
	// The doubled quote does not close the literal, so the non-breaking
	// space after it is still literal content.
	got := NormalizeUnicodeSpaces("SELECT 'it''s here' FROM t")
	assert.Equal(t, "SELECT 'it''s here' FROM t", got)
}

func TestNormalizeTabsAndFormFeeds(t *testing.T) {
	assert.Equal(t, "SELECT a  FROM t", NormalizeUnicodeSpaces("SELECT a\t\fFROM t"))
}

func TestNormalizeKeepsNewlines(t *testing.T) {
	assert.Equal(t, "SELECT a\nFROM t\r\n", NormalizeUnicodeSpaces("SELECT a\nFROM t\r\n"))
}
