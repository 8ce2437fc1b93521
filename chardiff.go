// Package chardiff computes character-level edit scripts between two texts
// with a full-matrix Wagner-Fischer solver.
//
// The result is a run-length-compressed list of insert, remove and update
// records. Unlike a Myers diff, chardiff:
//   - Equalizes lengths first: a length mismatch is reported as one leading
//     or trailing block and only the common prefix length is solved
//   - Breaks cost ties in a fixed order: Update, then Remove, then Insert
//   - Reports records from the end of the texts towards the start
//
// An Engine keeps its matrices between calls, so one Engine should be reused
// for many comparisons from a single goroutine.
package chardiff

import (
	"fmt"
	"slices"
)

// OpKind identifies the type of edit operation.
type OpKind uint8

const (
	// None means the character is unchanged. It never appears in results.
	None OpKind = iota
	// Insert means characters are present only in the new text.
	Insert
	// Remove means characters are present only in the old text.
	Remove
	// Update means characters were substituted in place.
	Update
)

// String returns a string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case None:
		return "None"
	case Insert:
		return "Insert"
	case Remove:
		return "Remove"
	case Update:
		return "Update"
	default:
		return "Unknown"
	}
}

// Symbol returns the short marker used in rendered output.
func (k OpKind) Symbol() string {
	switch k {
	case Insert:
		return "(i)"
	case Remove:
		return "(r)"
	case Update:
		return "(u)"
	default:
		return "(-)"
	}
}

// DiffRecord describes one run of identical edit operations.
//
// Start is a codepoint offset into the old text for Remove and Update. For
// Insert it is the old-text row at which the run was found; the inserted
// codepoints are read from the new text at the same offset.
type DiffRecord struct {
	Start int
	Count int
	Op    OpKind
}

func (r DiffRecord) String() string {
	return fmt.Sprintf("{start:%d count:%d %s}", r.Start, r.Count, r.Op)
}

// defaultCapacity is the side length of the matrices a new Engine allocates.
const defaultCapacity = 512

// options holds configuration for an Engine.
type options struct {
	rowCap int
	colCap int
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() *options {
	return &options{
		rowCap: defaultCapacity,
		colCap: defaultCapacity,
	}
}

// Option configures an Engine.
type Option func(*options)

// WithCapacity sets the initial matrix allocation. Each dimension needs one
// more slot than the longest text it will hold. Negative values are treated
// as zero.
// Default: 512 x 512.
func WithCapacity(rows, cols int) Option {
	return func(o *options) {
		o.rowCap = max(rows, 0)
		o.colCap = max(cols, 0)
	}
}

// Engine computes diffs and keeps its cost and direction matrices between
// calls. An Engine must not be used from more than one goroutine at a time.
type Engine struct {
	cost *Grid[uint32]
	dirs *Grid[OpKind]
}

// New returns an Engine with preallocated matrices.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Engine{
		cost: NewGrid[uint32](o.rowCap, o.colCap),
		dirs: NewGrid[OpKind](o.rowCap, o.colCap),
	}
}

// Capacity returns the allocated matrix size.
func (e *Engine) Capacity() (rows, cols int) {
	return e.cost.Cap()
}

// Diff compares two strings by codepoint.
func (e *Engine) Diff(old, new string) []DiffRecord {
	if old == new {
		return nil
	}
	return e.DiffRunes([]rune(old), []rune(new))
}

// DiffRunes compares two codepoint sequences. A nil result means the
// sequences are equal.
func (e *Engine) DiffRunes(old, new []rune) []DiffRecord {
	if slices.Equal(old, new) {
		return nil
	}

	// Length equalization: the gap record, if any, is always first
	rows, cols, gap := equalize(len(old), len(new))
	var out []DiffRecord
	if gap != nil {
		out = append(out, *gap)
	}

	// Nothing left to solve when one side was empty
	if rows == 1 || cols == 1 {
		return out
	}

	e.reserve(rows, cols)
	e.solve(old[:rows-1], new[:cols-1])
	return e.backtrack(out)
}

// reserve sets the logical size of both matrices, replacing them with exact
// fits when either dimension exceeds the current allocation.
func (e *Engine) reserve(rows, cols int) {
	if !e.cost.Fits(rows, cols) || !e.dirs.Fits(rows, cols) {
		e.cost = NewGrid[uint32](rows, cols)
		e.dirs = NewGrid[OpKind](rows, cols)
		return
	}
	e.cost.Resize(rows, cols)
	e.dirs.Resize(rows, cols)
}

// Diff compares two strings with a throwaway Engine sized for them.
func Diff(old, new string) []DiffRecord {
	return New(WithCapacity(0, 0)).Diff(old, new)
}
