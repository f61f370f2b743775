package ast

// ColumnRef is a possibly qualified column reference:
// [catalog.][schema.][table.]column.
type ColumnRef struct {
	Catalog string
	Schema  string
	Table   string
	Column  string
	Quoted  bool
}

func (*ColumnRef) Kind() Kind { return KindColumnRef }
func (*ColumnRef) exprNode()  {}

// LiteralType distinguishes literal values.
type LiteralType int

// Literal types.
const (
	StringLiteral LiteralType = iota
	NumberLiteral
	BoolLiteral
	NullLiteral
)

// Literal is a scalar literal. Value holds the raw text without quotes;
// for bool literals it is "TRUE" or "FALSE".
type Literal struct {
	Type  LiteralType
	Value string
}

func (*Literal) Kind() Kind { return KindLiteral }
func (*Literal) exprNode()  {}

// IsString reports whether the literal is a string.
func (l *Literal) IsString() bool { return l.Type == StringLiteral }

// BinaryExpr is a binary operation. Op is the canonical operator text
// ("=", "+", "AND", "||", ...).
type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
}

func (*BinaryExpr) Kind() Kind { return KindBinary }
func (*BinaryExpr) exprNode()  {}

// UnaryExpr is a prefix operation: NOT x, -x, +x.
type UnaryExpr struct {
	Op   string
	Expr Expr
}

func (*UnaryExpr) Kind() Kind { return KindUnary }
func (*UnaryExpr) exprNode()  {}

// FuncCall is a function invocation. Name is always the canonical
// function name; dialect-specific spellings are mapped during parsing and
// re-mapped during generation. Unrecognized functions keep their source
// name uppercased and render as NAME(args...).
type FuncCall struct {
	Name        string
	Distinct    bool
	Star        bool // COUNT(*)
	Args        []Expr
	Separator   Expr // aggregate string separator (LISTAGG / STRING_AGG)
	Filter      Expr // FILTER (WHERE ...) condition
	WithinGroup []*OrderByItem
	Over        *WindowSpec
	IgnoreNulls bool
}

func (*FuncCall) Kind() Kind { return KindFuncCall }
func (*FuncCall) exprNode()  {}

// WindowSpec is an OVER (...) specification.
type WindowSpec struct {
	PartitionBy []Expr
	OrderBy     []*OrderByItem
	Frame       *FrameSpec
}

func (*WindowSpec) Kind() Kind { return KindWindowSpec }

// FrameBoundType enumerates window frame bounds.
type FrameBoundType int

// Frame bound types.
const (
	UnboundedPreceding FrameBoundType = iota
	OffsetPreceding
	CurrentRow
	OffsetFollowing
	UnboundedFollowing
)

// FrameBound is one endpoint of a window frame.
type FrameBound struct {
	Type   FrameBoundType
	Offset Expr // set for OffsetPreceding / OffsetFollowing
}

// FrameSpec is a window frame: ROWS/RANGE/GROUPS BETWEEN ... AND ...
type FrameSpec struct {
	Unit  string // "ROWS", "RANGE" or "GROUPS"
	Start FrameBound
	End   *FrameBound // nil for single-bound frames
}

func (*FrameSpec) Kind() Kind { return KindFrameSpec }

// CaseExpr is a CASE expression, searched (Operand nil) or simple.
type CaseExpr struct {
	Operand Expr
	Whens   []*WhenClause
	Else    Expr
}

func (*CaseExpr) Kind() Kind { return KindCase }
func (*CaseExpr) exprNode()  {}

// WhenClause is one WHEN ... THEN ... arm.
type WhenClause struct {
	Cond   Expr
	Result Expr
}

func (*WhenClause) Kind() Kind { return KindWhen }

// DataType is a type name with optional parameters, e.g. DECIMAL(10, 2).
type DataType struct {
	Name   string
	Params []string
}

// String renders the type in SQL form.
func (d *DataType) String() string {
	if len(d.Params) == 0 {
		return d.Name
	}
	s := d.Name + "("
	for i, p := range d.Params {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	return s + ")"
}

// CastExpr is CAST(x AS type), TRY_CAST(x AS type), or x::type.
type CastExpr struct {
	Expr      Expr
	Type      *DataType
	Try       bool
	Shorthand bool // written with :: in the source
}

func (*CastExpr) Kind() Kind { return KindCast }
func (*CastExpr) exprNode()  {}

// InExpr is x [NOT] IN (list) or x [NOT] IN (subquery).
type InExpr struct {
	Expr     Expr
	Not      bool
	List     []Expr
	Subquery *SelectStmt
}

func (*InExpr) Kind() Kind { return KindIn }
func (*InExpr) exprNode()  {}

// BetweenExpr is x [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
}

func (*BetweenExpr) Kind() Kind { return KindBetween }
func (*BetweenExpr) exprNode()  {}

// IsNullExpr is x IS [NOT] NULL.
type IsNullExpr struct {
	Expr Expr
	Not  bool
}

func (*IsNullExpr) Kind() Kind { return KindIsNull }
func (*IsNullExpr) exprNode()  {}

// IsBoolExpr is x IS [NOT] TRUE/FALSE.
type IsBoolExpr struct {
	Expr  Expr
	Not   bool
	Value bool
}

func (*IsBoolExpr) Kind() Kind { return KindIsBool }
func (*IsBoolExpr) exprNode()  {}

// LikeExpr is x [NOT] LIKE/ILIKE pattern [ESCAPE esc].
type LikeExpr struct {
	Expr    Expr
	Not     bool
	ILike   bool
	Pattern Expr
	Escape  Expr
}

func (*LikeExpr) Kind() Kind { return KindLike }
func (*LikeExpr) exprNode()  {}

// ParenExpr preserves explicit parentheses from the source.
type ParenExpr struct {
	Expr Expr
}

func (*ParenExpr) Kind() Kind { return KindParen }
func (*ParenExpr) exprNode()  {}

// StarExpr is * or table.* in a select list or COUNT argument.
type StarExpr struct {
	Table string
}

func (*StarExpr) Kind() Kind { return KindStar }
func (*StarExpr) exprNode()  {}

// SubqueryExpr is a scalar subquery in expression position.
type SubqueryExpr struct {
	Select *SelectStmt
}

func (*SubqueryExpr) Kind() Kind { return KindSubquery }
func (*SubqueryExpr) exprNode()  {}

// ExistsExpr is [NOT] EXISTS (subquery).
type ExistsExpr struct {
	Not    bool
	Select *SelectStmt
}

func (*ExistsExpr) Kind() Kind { return KindExists }
func (*ExistsExpr) exprNode()  {}

// IntervalExpr is INTERVAL value unit. Unit is stored as parsed; the
// generator normalizes it for dialects that reject plural unit forms.
type IntervalExpr struct {
	Value Expr
	Unit  string
}

func (*IntervalExpr) Kind() Kind { return KindInterval }
func (*IntervalExpr) exprNode()  {}

// ExtractExpr is EXTRACT(unit FROM expr).
type ExtractExpr struct {
	Unit string
	From Expr
}

func (*ExtractExpr) Kind() Kind { return KindExtract }
func (*ExtractExpr) exprNode()  {}

// Lambda is a higher-order function argument: x -> body or (x, y) -> body.
type Lambda struct {
	Params []string
	Body   Expr
}

func (*Lambda) Kind() Kind { return KindLambda }
func (*Lambda) exprNode()  {}

// Placeholder is a bind parameter: :name, or ? when Name is empty.
type Placeholder struct {
	Name string
}

func (*Placeholder) Kind() Kind { return KindPlaceholder }
func (*Placeholder) exprNode()  {}

// ArrayExpr is an ARRAY[...] or ARRAY(...) constructor.
type ArrayExpr struct {
	Elems []Expr
}

func (*ArrayExpr) Kind() Kind { return KindArray }
func (*ArrayExpr) exprNode()  {}

// IndexExpr is subscript access: expr[index].
type IndexExpr struct {
	Expr  Expr
	Index Expr
}

func (*IndexExpr) Kind() Kind { return KindIndex }
func (*IndexExpr) exprNode()  {}

// GroupingSetsExpr is GROUPING SETS ((...), (...)) in a GROUP BY list.
type GroupingSetsExpr struct {
	Sets [][]Expr
}

func (*GroupingSetsExpr) Kind() Kind { return KindGroupingSets }
func (*GroupingSetsExpr) exprNode()  {}
