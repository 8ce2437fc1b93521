// Package linediff compares two texts line by line with chardiff.
//
// Line n of the old text is compared with line n of the new text. When one
// text has more lines, its surplus lines are compared with the empty string.
// Sequential comparisons reuse a single chardiff.Engine for the whole
// session; parallel comparisons give every worker its own Engine.
package linediff

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dacharyc/chardiff"
)

// DefaultMaxLineBytes bounds a single line. Both engine matrices grow with
// the square of the line length, so callers should keep this modest.
const DefaultMaxLineBytes = 1 << 20

// LineDiff is the comparison of one line pair.
type LineDiff struct {
	Line    int // 1-based
	Old     string
	New     string
	Records []chardiff.DiffRecord
}

// Changed reports whether the two lines differ.
func (d LineDiff) Changed() bool {
	return len(d.Records) > 0
}

type options struct {
	workers      int
	normalize    bool
	capacity     int
	maxLineBytes int
	logger       zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		workers:      1,
		maxLineBytes: DefaultMaxLineBytes,
		logger:       zerolog.Nop(),
	}
}

// Option configures a comparison.
type Option func(*options)

// WithWorkers sets how many goroutines compare line pairs. Values below 2
// compare sequentially.
// Default: 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithNormalization applies Unicode NFC normalization to every line, so
// composed and decomposed forms of the same text compare equal.
// Default: false.
func WithNormalization(enabled bool) Option {
	return func(o *options) {
		o.normalize = enabled
	}
}

// WithCapacity sets the initial matrix side length of each engine.
// 0 keeps the chardiff default.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithMaxLineBytes sets the longest accepted line.
// Default: DefaultMaxLineBytes.
func WithMaxLineBytes(n int) Option {
	return func(o *options) {
		o.maxLineBytes = n
	}
}

// WithLogger sets the logger for per-line debug events.
// Default: zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func (o *options) newEngine() *chardiff.Engine {
	if o.capacity > 0 {
		return chardiff.New(chardiff.WithCapacity(o.capacity, o.capacity))
	}
	return chardiff.New()
}

// Walk compares old and new line by line and calls fn for every pair in
// order, including unchanged ones. It stops at the first error from fn, from
// reading, or from ctx.
func Walk(ctx context.Context, old, new io.Reader, fn func(LineDiff) error, opts ...Option) error {
	o := buildOptions(opts)
	engine := o.newEngine()
	pairs := newPairReader(old, new, o)

	for {
		d, ok, err := pairs.next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		d.Records = engine.Diff(d.Old, d.New)
		o.logger.Debug().Int("line", d.Line).Int("records", len(d.Records)).Msg("line compared")
		if err := fn(d); err != nil {
			return err
		}
	}
}

// Compare returns the comparison of every line pair in order.
func Compare(ctx context.Context, old, new io.Reader, opts ...Option) ([]LineDiff, error) {
	o := buildOptions(opts)
	if o.workers < 2 {
		var out []LineDiff
		err := Walk(ctx, old, new, func(d LineDiff) error {
			out = append(out, d)
			return nil
		}, opts...)
		return out, err
	}

	var diffs []LineDiff
	pairs := newPairReader(old, new, o)
	for {
		d, ok, err := pairs.next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		diffs = append(diffs, d)
	}

	if err := compareParallel(ctx, diffs, o); err != nil {
		return nil, err
	}
	return diffs, nil
}

// compareParallel fills in Records for every entry of diffs. Worker w owns
// indices w, w+workers, w+2*workers, ... and its own engine.
func compareParallel(ctx context.Context, diffs []LineDiff, o *options) error {
	workers := min(o.workers, max(len(diffs), 1))
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			engine := o.newEngine()
			for i := w; i < len(diffs); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				diffs[i].Records = engine.Diff(diffs[i].Old, diffs[i].New)
				o.logger.Debug().Int("worker", w).Int("line", diffs[i].Line).
					Int("records", len(diffs[i].Records)).Msg("line compared")
			}
			return nil
		})
	}
	return g.Wait()
}

// WalkFiles opens two files and walks them with Walk.
func WalkFiles(ctx context.Context, oldPath, newPath string, fn func(LineDiff) error, opts ...Option) error {
	oldFile, newFile, err := openPair(oldPath, newPath)
	if err != nil {
		return err
	}
	defer oldFile.Close()
	defer newFile.Close()

	return Walk(ctx, oldFile, newFile, fn, opts...)
}

// CompareFiles opens two files and compares them with Compare.
func CompareFiles(ctx context.Context, oldPath, newPath string, opts ...Option) ([]LineDiff, error) {
	oldFile, newFile, err := openPair(oldPath, newPath)
	if err != nil {
		return nil, err
	}
	defer oldFile.Close()
	defer newFile.Close()

	return Compare(ctx, oldFile, newFile, opts...)
}

func openPair(oldPath, newPath string) (*os.File, *os.File, error) {
	oldFile, err := os.Open(oldPath)
	if err != nil {
		return nil, nil, fmt.Errorf("can not open file %s: %w", oldPath, err)
	}
	newFile, err := os.Open(newPath)
	if err != nil {
		oldFile.Close()
		return nil, nil, fmt.Errorf("can not open file %s: %w", newPath, err)
	}
	return oldFile, newFile, nil
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// pairReader yields line pairs from two readers, padding the shorter input
// with empty lines.
type pairReader struct {
	old, new  *lineReader
	line      int
	normalize bool
}

func newPairReader(old, new io.Reader, o *options) *pairReader {
	return &pairReader{
		old:       newLineReader(old, o.maxLineBytes),
		new:       newLineReader(new, o.maxLineBytes),
		normalize: o.normalize,
	}
}

func (p *pairReader) next(ctx context.Context) (LineDiff, bool, error) {
	if err := ctx.Err(); err != nil {
		return LineDiff{}, false, err
	}

	oldLine, oldOK, err := p.old.next()
	if err != nil {
		return LineDiff{}, false, fmt.Errorf("reading old input at line %d: %w", p.line+1, err)
	}
	newLine, newOK, err := p.new.next()
	if err != nil {
		return LineDiff{}, false, fmt.Errorf("reading new input at line %d: %w", p.line+1, err)
	}
	if !oldOK && !newOK {
		return LineDiff{}, false, nil
	}

	if p.normalize {
		oldLine = norm.NFC.String(oldLine)
		newLine = norm.NFC.String(newLine)
	}
	p.line++
	return LineDiff{Line: p.line, Old: oldLine, New: newLine}, true, nil
}

// lineReader splits an input into lines with line terminators removed. A
// leading BOM selects UTF-8 or UTF-16 decoding and is dropped; input without
// a BOM is read as UTF-8.
type lineReader struct {
	sc   *bufio.Scanner
	done bool
}

func newLineReader(r io.Reader, maxLineBytes int) *lineReader {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	decoded := transform.NewReader(r, xunicode.BOMOverride(transform.Nop))
	sc := bufio.NewScanner(decoded)
	sc.Buffer(make([]byte, 0, min(64*1024, maxLineBytes)), maxLineBytes)
	return &lineReader{sc: sc}
}

// next returns the next line. At end of input it returns "", false.
func (r *lineReader) next() (string, bool, error) {
	if r.done {
		return "", false, nil
	}
	if r.sc.Scan() {
		return strings.Trim(r.sc.Text(), "\r\n"), true, nil
	}
	r.done = true
	return "", false, r.sc.Err()
}
