package chardiff

// solve fills the cost and direction matrices for old and new, which must
// already match the logical matrix size minus the border row and column.
//
// cost[i][j] is the edit distance between old[:i] and new[:j]. dirs[i][j]
// records the operation that produced it, with ties broken in the order
// Update, Remove, Insert.
func (e *Engine) solve(old, new []rune) {
	cost := e.cost
	dirs := e.dirs

	// 1. Distances to and from the empty prefix
	for c := 0; c < cost.Cols(); c++ {
		cost.Set(0, c, uint32(c))
	}
	for r := 0; r < cost.Rows(); r++ {
		cost.Set(r, 0, uint32(r))
	}

	// 2. Interior cells
	for i, oc := range old {
		for j, nc := range new {
			if oc == nc {
				cost.Set(i+1, j+1, cost.At(i, j))
				dirs.Set(i+1, j+1, None)
				continue
			}
			diag := cost.At(i, j)
			up := cost.At(i, j+1)
			left := cost.At(i+1, j)
			v := min(diag, up, left) + 1
			cost.Set(i+1, j+1, v)
			dirs.Set(i+1, j+1, direction(v, diag, up, left))
		}
	}
}

// direction picks the operation that explains cost v. The order of the
// checks decides which of several equal-cost paths the backtrack follows.
func direction(v, diag, up, left uint32) OpKind {
	switch {
	case v == diag+1:
		return Update
	case v == up+1:
		return Remove
	case v == left+1:
		return Insert
	default:
		return None
	}
}
