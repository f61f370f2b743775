package token

// Position is a location in the query text. Line and Column are
// 1-based; Offset is the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Span is the half-open [Start, End) range a lexeme occupies.
type Span struct {
	Start Position
	End   Position
}
