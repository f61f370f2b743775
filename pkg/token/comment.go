package token

// CommentKind distinguishes `--` line comments from `/* */` blocks.
type CommentKind int

const (
	LineComment CommentKind = iota
	BlockComment
)

// Comment is a SQL comment the lexer collected while tokenizing. The
// lexer strips comments from the token stream but keeps them here so
// callers handling routing comments can inspect the original text,
// delimiters included.
type Comment struct {
	Kind CommentKind
	Text string
	Span Span
}
