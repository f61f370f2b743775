package ast

// Walk traverses the tree rooted at n in depth-first pre-order, calling
// visit for each node with its parent (nil for the root). If visit
// returns false the node's children are skipped.
//
// Parents are passed to the callback instead of being stored on nodes, so
// subtrees can be moved between parents without fixing up back-references.
func Walk(n Node, visit func(n, parent Node) bool) {
	walk(n, nil, visit)
}

func walk(n, parent Node, visit func(n, parent Node) bool) {
	if n == nil {
		return
	}
	if !visit(n, parent) {
		return
	}
	for _, c := range children(n) {
		walk(c, n, visit)
	}
}

// FindAll returns every node in the tree assignable to T, in pre-order.
func FindAll[T Node](root Node) []T {
	var out []T
	Walk(root, func(n, _ Node) bool {
		if v, ok := n.(T); ok {
			out = append(out, v)
		}
		return true
	})
	return out
}

// children returns the direct child nodes of n, skipping nil fields.
func children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	addExpr := func(e Expr) {
		if e != nil {
			out = append(out, e)
		}
	}
	addExprs := func(es []Expr) {
		for _, e := range es {
			addExpr(e)
		}
	}
	addOrder := func(items []*OrderByItem) {
		for _, o := range items {
			add(o)
		}
	}

	switch v := n.(type) {
	case *SelectStmt:
		if v.With != nil {
			add(v.With)
		}
		if v.Body != nil {
			add(v.Body)
		}
		addOrder(v.OrderBy)
		addExpr(v.Limit)
		addExpr(v.Offset)
	case *ExprStmt:
		addExpr(v.Expr)
	case *WithClause:
		for _, cte := range v.CTEs {
			add(cte)
		}
	case *CTE:
		add(v.Body)
	case *SelectBody:
		if v.Core != nil {
			add(v.Core)
		}
		if v.Right != nil {
			add(v.Right)
		}
	case *SelectCore:
		for _, item := range v.Items {
			add(item)
		}
		if v.From != nil {
			add(v.From)
		}
		addExpr(v.Where)
		addExprs(v.GroupBy)
		addExpr(v.Having)
		addExpr(v.Qualify)
	case *SelectItem:
		addExpr(v.Expr)
	case *OrderByItem:
		addExpr(v.Expr)
	case *FromClause:
		add(v.Source)
		for _, j := range v.Joins {
			add(j)
		}
	case *Join:
		add(v.Target)
		addExpr(v.On)
	case *DerivedTable:
		if v.Select != nil {
			add(v.Select)
		}
	case *ValuesClause:
		for _, row := range v.Rows {
			addExprs(row)
		}
	case *BinaryExpr:
		addExpr(v.Left)
		addExpr(v.Right)
	case *UnaryExpr:
		addExpr(v.Expr)
	case *FuncCall:
		addExprs(v.Args)
		addExpr(v.Separator)
		addExpr(v.Filter)
		addOrder(v.WithinGroup)
		if v.Over != nil {
			add(v.Over)
		}
	case *WindowSpec:
		addExprs(v.PartitionBy)
		addOrder(v.OrderBy)
		if v.Frame != nil {
			add(v.Frame)
		}
	case *FrameSpec:
		addExpr(v.Start.Offset)
		if v.End != nil {
			addExpr(v.End.Offset)
		}
	case *CaseExpr:
		addExpr(v.Operand)
		for _, w := range v.Whens {
			add(w)
		}
		addExpr(v.Else)
	case *WhenClause:
		addExpr(v.Cond)
		addExpr(v.Result)
	case *CastExpr:
		addExpr(v.Expr)
	case *InExpr:
		addExpr(v.Expr)
		addExprs(v.List)
		if v.Subquery != nil {
			add(v.Subquery)
		}
	case *BetweenExpr:
		addExpr(v.Expr)
		addExpr(v.Low)
		addExpr(v.High)
	case *IsNullExpr:
		addExpr(v.Expr)
	case *IsBoolExpr:
		addExpr(v.Expr)
	case *LikeExpr:
		addExpr(v.Expr)
		addExpr(v.Pattern)
		addExpr(v.Escape)
	case *ParenExpr:
		addExpr(v.Expr)
	case *SubqueryExpr:
		if v.Select != nil {
			add(v.Select)
		}
	case *ExistsExpr:
		if v.Select != nil {
			add(v.Select)
		}
	case *IntervalExpr:
		addExpr(v.Value)
	case *ExtractExpr:
		addExpr(v.From)
	case *Lambda:
		addExpr(v.Body)
	case *ArrayExpr:
		addExprs(v.Elems)
	case *IndexExpr:
		addExpr(v.Expr)
		addExpr(v.Index)
	case *GroupingSetsExpr:
		for _, set := range v.Sets {
			addExprs(set)
		}
	}
	return out
}
