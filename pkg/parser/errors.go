package parser

import (
	"fmt"

	"github.com/e6data/sqlporter/pkg/token"
)

// TokenizeError represents a lexical analysis error.
type TokenizeError struct {
	Pos     token.Position
	Message string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("tokenize error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken    = "unexpected token %s, expected %s"
	ErrUnterminatedString = "unterminated string literal"
	ErrUnterminatedIdent  = "unterminated quoted identifier"
	ErrExpectedExpression = "unexpected token in expression: %s"
)
