package dialect

import "strings"

// ErrorLevel controls how parsing and generation react to recoverable
// problems. It is shared by the parser and the generator so one option
// threads through the whole pipeline.
type ErrorLevel int

// Error levels.
const (
	// ErrorLevelRaise fails on the first problem.
	ErrorLevelRaise ErrorLevel = iota
	// ErrorLevelWarn logs problems and keeps going.
	ErrorLevelWarn
	// ErrorLevelIgnore silently keeps going.
	ErrorLevelIgnore
)

// ParseErrorLevel converts a string ("raise", "warn", "ignore", any case)
// to an ErrorLevel. Unknown strings map to ErrorLevelRaise.
func ParseErrorLevel(s string) ErrorLevel {
	switch strings.ToLower(s) {
	case "warn":
		return ErrorLevelWarn
	case "ignore":
		return ErrorLevelIgnore
	default:
		return ErrorLevelRaise
	}
}

// String returns the level name.
func (l ErrorLevel) String() string {
	switch l {
	case ErrorLevelWarn:
		return "warn"
	case ErrorLevelIgnore:
		return "ignore"
	default:
		return "raise"
	}
}
