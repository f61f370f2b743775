package ast

// Replace swaps old for new within the tree rooted at root. It returns
// false when old is not found, old is the root, or new cannot occupy the
// slot old was in (e.g. replacing a TableRef with a plain expression).
func Replace(root, old, new Node) bool {
	done := false
	Walk(root, func(n, parent Node) bool {
		if done {
			return false
		}
		if n == old && parent != nil {
			done = replaceChild(parent, old, new)
			return false
		}
		return true
	})
	return done
}

// replaceChild rewires the field of parent that points at old.
func replaceChild(parent, old, new Node) bool {
	newExpr, newIsExpr := new.(Expr)
	newRef, newIsRef := new.(TableRef)

	swapExpr := func(slot *Expr) bool {
		if *slot == old && newIsExpr {
			*slot = newExpr
			return true
		}
		return false
	}
	swapExprs := func(slots []Expr) bool {
		for i := range slots {
			if slots[i] == old && newIsExpr {
				slots[i] = newExpr
				return true
			}
		}
		return false
	}

	switch p := parent.(type) {
	case *SelectStmt:
		if swapExpr(&p.Limit) || swapExpr(&p.Offset) {
			return true
		}
	case *ExprStmt:
		return swapExpr(&p.Expr)
	case *CTE:
		p.Body = new
		return true
	case *SelectCore:
		return swapExpr(&p.Where) || swapExprs(p.GroupBy) ||
			swapExpr(&p.Having) || swapExpr(&p.Qualify)
	case *SelectItem:
		return swapExpr(&p.Expr)
	case *OrderByItem:
		return swapExpr(&p.Expr)
	case *FromClause:
		if p.Source == old && newIsRef {
			p.Source = newRef
			return true
		}
	case *Join:
		if p.Target == old && newIsRef {
			p.Target = newRef
			return true
		}
		return swapExpr(&p.On)
	case *ValuesClause:
		for _, row := range p.Rows {
			if swapExprs(row) {
				return true
			}
		}
	case *BinaryExpr:
		return swapExpr(&p.Left) || swapExpr(&p.Right)
	case *UnaryExpr:
		return swapExpr(&p.Expr)
	case *FuncCall:
		return swapExprs(p.Args) || swapExpr(&p.Separator) || swapExpr(&p.Filter)
	case *WindowSpec:
		return swapExprs(p.PartitionBy)
	case *FrameSpec:
		if swapExpr(&p.Start.Offset) {
			return true
		}
		if p.End != nil {
			return swapExpr(&p.End.Offset)
		}
	case *CaseExpr:
		return swapExpr(&p.Operand) || swapExpr(&p.Else)
	case *WhenClause:
		return swapExpr(&p.Cond) || swapExpr(&p.Result)
	case *CastExpr:
		return swapExpr(&p.Expr)
	case *InExpr:
		return swapExpr(&p.Expr) || swapExprs(p.List)
	case *BetweenExpr:
		return swapExpr(&p.Expr) || swapExpr(&p.Low) || swapExpr(&p.High)
	case *IsNullExpr:
		return swapExpr(&p.Expr)
	case *IsBoolExpr:
		return swapExpr(&p.Expr)
	case *LikeExpr:
		return swapExpr(&p.Expr) || swapExpr(&p.Pattern) || swapExpr(&p.Escape)
	case *ParenExpr:
		return swapExpr(&p.Expr)
	case *IntervalExpr:
		return swapExpr(&p.Value)
	case *ExtractExpr:
		return swapExpr(&p.From)
	case *Lambda:
		return swapExpr(&p.Body)
	case *ArrayExpr:
		return swapExprs(p.Elems)
	case *IndexExpr:
		return swapExpr(&p.Expr) || swapExpr(&p.Index)
	case *GroupingSetsExpr:
		for _, set := range p.Sets {
			if swapExprs(set) {
				return true
			}
		}
	}
	return false
}
