package chardiff

// equalize sizes the matrices for texts of oldLen and newLen codepoints.
//
// The "+1" on each side is the empty-prefix row and column. When the sizes
// differ, the surplus of the longer side becomes a single gap record and the
// longer side is cut to the shorter length, so only the first
// min(oldLen, newLen) codepoints of each text are solved.
func equalize(oldLen, newLen int) (rows, cols int, gap *DiffRecord) {
	rows = oldLen + 1
	cols = newLen + 1

	switch {
	case rows > cols:
		gap = &DiffRecord{Start: cols - 1, Count: rows - cols, Op: Remove}
		rows = cols
	case cols > rows:
		gap = &DiffRecord{Start: rows - 1, Count: cols - rows, Op: Insert}
		cols = rows
	}
	return rows, cols, gap
}
