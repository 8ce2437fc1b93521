package chardiff

// backtrack walks the direction matrix from the bottom-right corner towards
// the origin and appends one record per run of identical operations to out.
//
// Records come out in walk order, so changes near the end of the texts are
// reported first. A run is only followed while both indices are positive.
func (e *Engine) backtrack(out []DiffRecord) []DiffRecord {
	dirs := e.dirs
	row := dirs.Rows() - 1
	col := dirs.Cols() - 1

	inside := func() bool { return row > 0 && col > 0 }

	for inside() {
		// 1. Skip unchanged characters
		for inside() && dirs.At(row, col) == None {
			row--
			col--
		}

		// 2. Substitutions move diagonally
		n := 0
		for inside() && dirs.At(row, col) == Update {
			row--
			col--
			n++
		}
		if n > 0 {
			out = append(out, DiffRecord{Start: row, Count: n, Op: Update})
		}

		// 3. Removals move up
		n = 0
		for inside() && dirs.At(row, col) == Remove {
			row--
			n++
		}
		if n > 0 {
			out = append(out, DiffRecord{Start: row, Count: n, Op: Remove})
		}

		// 4. Insertions move left
		n = 0
		for inside() && dirs.At(row, col) == Insert {
			col--
			n++
		}
		if n > 0 {
			out = append(out, DiffRecord{Start: row, Count: n, Op: Insert})
		}
	}
	return out
}
