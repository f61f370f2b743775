// Package ast defines the typed SQL syntax tree shared by the parser,
// the semantic passes, and the generator.
//
// Every node implements Node and reports a Kind, which the generator and
// dialect transform tables use for dispatch. Function invocations are
// normalized at parse time: FuncCall.Name always holds the canonical
// function name, so dialect-specific spellings are resolved before any
// pass runs.
package ast

// Kind identifies the concrete type of a node for dispatch.
type Kind int

// Node kinds.
const (
	KindInvalid Kind = iota

	// Statements and query structure
	KindSelectStmt
	KindExprStmt
	KindWith
	KindCTE
	KindSelectBody
	KindSelectCore
	KindSelectItem
	KindOrderBy
	KindFrom
	KindJoin
	KindTableName
	KindDerivedTable
	KindValues

	// Expressions
	KindColumnRef
	KindLiteral
	KindBinary
	KindUnary
	KindFuncCall
	KindWindowSpec
	KindFrameSpec
	KindCase
	KindWhen
	KindCast
	KindIn
	KindBetween
	KindIsNull
	KindIsBool
	KindLike
	KindParen
	KindStar
	KindSubquery
	KindExists
	KindInterval
	KindExtract
	KindLambda
	KindPlaceholder
	KindArray
	KindIndex
	KindGroupingSets
)

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() Kind
}

// Statement is a top-level parsed statement.
type Statement interface {
	Node
	stmtNode()
}

// Expr is any expression node.
type Expr interface {
	Node
	exprNode()
}

// TableRef is anything that can appear as a FROM source or join target.
type TableRef interface {
	Node
	tableRefNode()
}
