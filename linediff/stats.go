package linediff

import "github.com/dacharyc/chardiff"

// Stats summarizes a comparison. Codepoint counts are summed over records.
type Stats struct {
	Lines    int
	Changed  int
	Inserted int
	Removed  int
	Updated  int
}

// Add accounts for one line pair.
func (s *Stats) Add(d LineDiff) {
	s.Lines++
	if d.Changed() {
		s.Changed++
	}
	for _, r := range d.Records {
		switch r.Op {
		case chardiff.Insert:
			s.Inserted += r.Count
		case chardiff.Remove:
			s.Removed += r.Count
		case chardiff.Update:
			s.Updated += r.Count
		}
	}
}

// Summarize returns the Stats of diffs.
func Summarize(diffs []LineDiff) Stats {
	var s Stats
	for _, d := range diffs {
		s.Add(d)
	}
	return s
}
