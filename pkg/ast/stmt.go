package ast

// SelectStmt is a full query: optional WITH clause, a body of one or more
// set-combined select cores, and statement-level ordering and limits.
type SelectStmt struct {
	With    *WithClause
	Body    *SelectBody
	OrderBy []*OrderByItem
	Limit   Expr
	Offset  Expr
}

func (*SelectStmt) Kind() Kind { return KindSelectStmt }
func (*SelectStmt) stmtNode()  {}

// ExprStmt wraps a bare expression parsed as a statement, e.g. when a
// caller transpiles "NVL(x, y)" without a surrounding SELECT.
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) Kind() Kind { return KindExprStmt }
func (*ExprStmt) stmtNode()  {}

// WithClause holds the CTEs of a WITH ... query.
type WithClause struct {
	Recursive bool
	CTEs      []*CTE
}

func (*WithClause) Kind() Kind { return KindWith }

// CTE is a single common table expression. Body is a *SelectStmt or, for
// WITH t AS (VALUES ...), a *ValuesClause.
type CTE struct {
	Name    string
	Quoted  bool
	Columns []string
	Body    Node
}

func (*CTE) Kind() Kind { return KindCTE }

// SetOpType enumerates set operations between select cores.
type SetOpType int

// Set operations.
const (
	SetOpNone SetOpType = iota
	SetOpUnion
	SetOpExcept
	SetOpIntersect
)

// String returns the SQL keyword for the set operation.
func (op SetOpType) String() string {
	switch op {
	case SetOpUnion:
		return "UNION"
	case SetOpExcept:
		return "EXCEPT"
	case SetOpIntersect:
		return "INTERSECT"
	default:
		return ""
	}
}

// SelectBody is one select core, optionally combined with the rest of the
// body by a set operation. Op is SetOpNone when Right is nil.
type SelectBody struct {
	Core  *SelectCore
	Op    SetOpType
	All   bool
	Right *SelectBody
}

func (*SelectBody) Kind() Kind { return KindSelectBody }

// SelectCore is a single SELECT ... FROM ... block.
type SelectCore struct {
	Distinct bool
	Items    []*SelectItem
	From     *FromClause
	Where    Expr
	GroupBy  []Expr
	Having   Expr
	Qualify  Expr
}

func (*SelectCore) Kind() Kind { return KindSelectCore }

// SelectItem is one projection in a select list.
type SelectItem struct {
	Expr        Expr
	Alias       string
	QuotedAlias bool
}

func (*SelectItem) Kind() Kind { return KindSelectItem }

// OrderByItem is one ORDER BY key. Nulls is "", "FIRST" or "LAST".
type OrderByItem struct {
	Expr  Expr
	Desc  bool
	Nulls string
}

func (*OrderByItem) Kind() Kind { return KindOrderBy }

// FromClause is the FROM source plus any joins.
type FromClause struct {
	Source TableRef
	Joins  []*Join
}

func (*FromClause) Kind() Kind { return KindFrom }

// Join attaches one table reference to the FROM clause.
//
// SQL join syntax splits into a side (LEFT, RIGHT, FULL) and a kind
// (INNER, OUTER, CROSS, SEMI, ANTI); "LEFT JOIN" has side LEFT and kind
// OUTER. Either part may be empty.
type Join struct {
	Side     string
	JoinKind string
	Natural  bool
	Target   TableRef
	On       Expr
	Using    []string
}

func (*Join) Kind() Kind { return KindJoin }

// TableName is a possibly qualified table reference:
// [catalog.][schema.]name [AS alias].
type TableName struct {
	Catalog string
	Schema  string
	Name    string
	Alias   string
	Quoted  bool
}

func (*TableName) Kind() Kind    { return KindTableName }
func (*TableName) tableRefNode() {}

// FullName returns the dotted qualified name without the alias.
func (t *TableName) FullName() string {
	s := t.Name
	if t.Schema != "" {
		s = t.Schema + "." + s
	}
	if t.Catalog != "" {
		s = t.Catalog + "." + s
	}
	return s
}

// DerivedTable is a parenthesized subquery in FROM position, optionally
// LATERAL, with an optional alias and column alias list.
type DerivedTable struct {
	Select  *SelectStmt
	Lateral bool
	Alias   string
	Columns []string
}

func (*DerivedTable) Kind() Kind    { return KindDerivedTable }
func (*DerivedTable) tableRefNode() {}

// ValuesClause is a VALUES (...), (...) row constructor. It appears as a
// FROM source, a CTE body, or a bare statement body.
type ValuesClause struct {
	Rows    [][]Expr
	Alias   string
	Columns []string
}

func (*ValuesClause) Kind() Kind    { return KindValues }
func (*ValuesClause) tableRefNode() {}
