// Package parser provides dialect-aware SQL parsing.
//
// # Usage
//
//	d, _ := dialect.Get("snowflake")
//	stmts, err := parser.Parse("SELECT a, b FROM t", d)
//
// # Grammar Overview
//
// The parser implements a recursive descent parser for the query subset
// of SQL:
//
//	script        → statement (";" statement)* [";"]
//	statement     → select_stmt | expr
//	select_stmt   → [WITH cte_list] select_body [ORDER BY order_list] [LIMIT expr] [OFFSET expr]
//	select_body   → select_core [(UNION|INTERSECT|EXCEPT) [ALL] select_body]
//	select_core   → SELECT [DISTINCT] select_list [FROM from_clause]
//	                [WHERE expr] [GROUP BY group_list] [HAVING expr] [QUALIFY expr]
//	              | VALUES row_list
//
// Expressions use precedence climbing with dialect-supplied operator
// tables; function invocations are rewritten to canonical form by the
// source dialect's function builders as they are parsed.
package parser

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/e6data/sqlporter/pkg/ast"
	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/token"
)

// Dialect-specific keywords used directly by the parser. Dialects that
// support them register the same names, so the token identity is shared.
var (
	tokenQualify = token.Register("QUALIFY")
	tokenIlike   = token.Register("ILIKE")
)

// Options configures parsing behavior beyond the dialect tables.
type Options struct {
	// ErrorLevel controls reaction to parse errors. With ErrorLevelWarn
	// or ErrorLevelIgnore the parser returns a best-effort tree.
	ErrorLevel dialect.ErrorLevel
	// Logger receives warnings at ErrorLevelWarn. Defaults to a discard
	// logger.
	Logger *slog.Logger
}

// Parser parses SQL into an AST.
type Parser struct {
	lexer   *Lexer
	token   token.Token // current token
	peek    token.Token // lookahead token
	peek2   token.Token // second lookahead token
	errors  []error
	dialect *dialect.Dialect
	opts    Options
}

// NewParser creates a new parser for the given SQL input and dialect.
func NewParser(sql string, d *dialect.Dialect) *Parser {
	return NewParserWithOptions(sql, d, Options{})
}

// NewParserWithOptions creates a new parser with explicit options.
func NewParserWithOptions(sql string, d *dialect.Dialect, opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := &Parser{
		lexer:   NewLexer(sql, d),
		dialect: d,
		opts:    opts,
	}
	// Read three tokens to initialize current, peek, and peek2
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a script of one or more semicolon-separated statements.
func Parse(sql string, d *dialect.Dialect) ([]ast.Statement, error) {
	return ParseWithOptions(sql, d, Options{})
}

// ParseOne parses exactly one statement.
func ParseOne(sql string, d *dialect.Dialect) (ast.Statement, error) {
	stmts, err := Parse(sql, d)
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return nil, &ParseError{Message: "empty statement"}
	}
	return stmts[0], nil
}

// ParseWithOptions parses a script with explicit options.
func ParseWithOptions(sql string, d *dialect.Dialect, opts Options) ([]ast.Statement, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	p := NewParserWithOptions(sql, d, opts)
	stmts := p.parseScript()
	return stmts, p.finish()
}

// parseScript parses semicolon-separated statements until EOF.
func (p *Parser) parseScript() []ast.Statement {
	var stmts []ast.Statement
	for !p.check(token.EOF) {
		if p.match(token.SEMICOLON) {
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if !p.check(token.SEMICOLON) && !p.check(token.EOF) {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, token.SEMICOLON))
			break
		}
	}
	return stmts
}

// parseStatement parses a single statement. Inputs that do not start a
// query are parsed as a bare expression.
func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.check(token.SELECT) || p.check(token.WITH) || p.check(token.VALUES):
		return p.parseSelectStmt()
	case p.check(token.LPAREN) &&
		(p.checkPeek(token.SELECT) || p.checkPeek(token.WITH) || p.checkPeek(token.VALUES)):
		return p.parseSelectStmt()
	default:
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		return &ast.ExprStmt{Expr: expr}
	}
}

// finish resolves accumulated errors against the error level. Tokenizer
// errors always surface first.
func (p *Parser) finish() error {
	errs := append(append([]error(nil), p.lexer.Errors...), p.errors...)
	if len(errs) == 0 {
		return nil
	}
	switch p.opts.ErrorLevel {
	case dialect.ErrorLevelIgnore:
		return nil
	case dialect.ErrorLevelWarn:
		for _, err := range errs {
			p.opts.Logger.Warn("parse issue", "dialect", p.dialect.Name, "error", err)
		}
		return nil
	default:
		return errs[0]
	}
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

// Errors returns all accumulated parse errors.
func (p *Parser) Errors() []error {
	return p.errors
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// checkPeek2 returns true if the peek2 token is of the given type.
func (p *Parser) checkPeek2(t token.TokenType) bool {
	return p.peek2.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, t))
	return false
}

// addError adds a parse error at the current position.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// checkIdent returns true if the current token is an unquoted identifier
// with the given uppercase spelling. Used for soft keywords (IGNORE,
// RESPECT, FIRST, ...) that stay usable as identifiers elsewhere.
func (p *Parser) checkIdent(upper string) bool {
	return p.check(token.IDENT) && !p.token.Quoted && equalFold(p.token.Literal, upper)
}

// equalFold compares an identifier against an uppercase keyword without
// allocating.
func equalFold(ident, upper string) bool {
	if len(ident) != len(upper) {
		return false
	}
	for i := 0; i < len(ident); i++ {
		c := ident[i]
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c != upper[i] {
			return false
		}
	}
	return true
}

// ---------- dialect.ParserOps Implementation ----------
// These methods let dialect handlers drive the parser without a
// package cycle.

// Token returns the current token.
func (p *Parser) Token() token.Token {
	return p.token
}

// Peek returns the lookahead token.
func (p *Parser) Peek() token.Token {
	return p.peek
}

// Match consumes the current token if it matches.
func (p *Parser) Match(t token.TokenType) bool {
	return p.match(t)
}

// Expect consumes the current token if it matches, otherwise returns an error.
func (p *Parser) Expect(t token.TokenType) error {
	if p.check(t) {
		p.nextToken()
		return nil
	}
	return &ParseError{
		Pos:     p.token.Pos,
		Message: fmt.Sprintf(ErrUnexpectedToken, p.token.Type, t),
	}
}

// NextToken advances to the next token.
func (p *Parser) NextToken() {
	p.nextToken()
}

// Check returns true if the current token is of the given type.
func (p *Parser) Check(t token.TokenType) bool {
	return p.check(t)
}

// ParseExpression parses an expression.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	before := len(p.errors)
	expr := p.parseExpression()
	if len(p.errors) > before {
		return nil, p.errors[len(p.errors)-1]
	}
	return expr, nil
}

// AddError adds a parse error.
func (p *Parser) AddError(msg string) {
	p.addError(msg)
}

// Position returns the current token's position.
func (p *Parser) Position() token.Position {
	return p.token.Pos
}
