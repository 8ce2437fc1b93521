// Package present renders chardiff records as annotated text: the affected
// line followed by a marker line pointing at the changed columns.
package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/dacharyc/chardiff"
)

// ColorMode selects when markers are coloured.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const headerRule = "***********************************************************"

type options struct {
	color    ColorMode
	collapse bool
}

// Option configures a Presenter.
type Option func(*options)

// WithColor sets the colour mode.
// Default: ColorNever.
func WithColor(mode ColorMode) Option {
	return func(o *options) {
		o.color = mode
	}
}

// WithCollapseMirrored drops adjacent Insert/Remove pairs that cancel out.
// Default: true.
func WithCollapseMirrored(enabled bool) Option {
	return func(o *options) {
		o.collapse = enabled
	}
}

// Presenter writes diff records for humans.
type Presenter struct {
	w        io.Writer
	profile  termenv.Profile
	collapse bool
}

// New returns a Presenter writing to w.
func New(w io.Writer, opts ...Option) *Presenter {
	o := &options{color: ColorNever, collapse: true}
	for _, opt := range opts {
		opt(o)
	}
	return &Presenter{
		w:        w,
		profile:  profileFor(w, o.color),
		collapse: o.collapse,
	}
}

func profileFor(w io.Writer, mode ColorMode) termenv.Profile {
	switch mode {
	case ColorAlways:
		return termenv.ANSI
	case ColorAuto:
		return termenv.NewOutput(w).EnvColorProfile()
	default:
		return termenv.Ascii
	}
}

// Header writes the banner naming the two inputs.
func (p *Presenter) Header(old, new string) error {
	var b strings.Builder
	b.WriteString("/" + headerRule + "\n")
	b.WriteString("* Difference between : \n")
	fmt.Fprintf(&b, "* %s \n", old)
	b.WriteString("* - and - \n")
	fmt.Fprintf(&b, "* %s \n", new)
	b.WriteString(headerRule + "/\n")
	_, err := io.WriteString(p.w, b.String())
	return err
}

// Present writes one block per record. line is the 1-based line number shown
// in each block; string comparisons pass 0. Empty records write nothing.
func (p *Presenter) Present(old, new string, line int, records []chardiff.DiffRecord) error {
	if p.collapse {
		records = CollapseMirrored(records)
	}
	if len(records) == 0 {
		return nil
	}

	oldRunes := []rune(old)
	newRunes := []rune(new)

	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "\nLine: %d, ===%s===\n", line, r.Op.Symbol())
		switch r.Op {
		case chardiff.Insert:
			p.insert(&b, oldRunes, newRunes, r)
		case chardiff.Remove:
			p.remove(&b, oldRunes, r)
		case chardiff.Update:
			p.update(&b, oldRunes, newRunes, r)
		}
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

// insert shows the inserted text spliced into the old line at r.Start.
func (p *Presenter) insert(b *strings.Builder, old, new []rune, r chardiff.DiffRecord) {
	at := clamp(r.Start, len(old))
	added := slice(new, r.Start, r.Count)
	before := string(old[:at])

	b.WriteString(before + added + string(old[at:]) + "\n")
	p.markers(b, before, added, "+", "2")
}

// remove shows the old line with the removed span crossed out.
func (p *Presenter) remove(b *strings.Builder, old []rune, r chardiff.DiffRecord) {
	at := clamp(r.Start, len(old))
	gone := slice(old, r.Start, r.Count)

	b.WriteString(string(old) + "\n")
	p.markers(b, string(old[:at]), gone, "x", "1")
}

// update shows the old line with the replacement text under the changed span.
func (p *Presenter) update(b *strings.Builder, old, new []rune, r chardiff.DiffRecord) {
	at := clamp(r.Start, len(old))
	before := string(old[:at])
	span := slice(old, r.Start, r.Count)

	b.WriteString(string(old) + "\n")
	pad := strings.Repeat(" ", runewidth.StringWidth(before))
	b.WriteString(pad + p.paint(spanLine(runewidth.StringWidth(span)), "3") + "\n")
	b.WriteString(pad + p.paint(slice(new, r.Start, r.Count), "3") + "\n")
}

// markers writes the span line and a row of mark under text, which starts
// after prefix. Widths are terminal columns, so wide characters get two marks.
func (p *Presenter) markers(b *strings.Builder, prefix, text, mark, color string) {
	width := runewidth.StringWidth(text)
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
	b.WriteString(pad + p.paint(spanLine(width), color) + "\n")
	b.WriteString(pad + p.paint(strings.Repeat(mark, max(width, 1)), color) + "\n")
}

func (p *Presenter) paint(s, color string) string {
	if p.profile == termenv.Ascii {
		return s
	}
	return p.profile.String(s).Foreground(p.profile.Color(color)).String()
}

// spanLine brackets a span of width columns: "|" for one column, "|  |" for
// wider spans.
func spanLine(width int) string {
	if width <= 1 {
		return "|"
	}
	return "|" + strings.Repeat(" ", width-2) + "|"
}

// slice returns up to count runes of rs starting at start.
func slice(rs []rune, start, count int) string {
	from := clamp(start, len(rs))
	to := clamp(start+count, len(rs))
	return string(rs[from:to])
}

func clamp(i, n int) int {
	return min(max(i, 0), n)
}
