// Comparison tool for checking chardiff output against go-diff on character input
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	godiff "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dacharyc/chardiff"
)

type testCase struct {
	name string
	a, b string
}

func main() {
	run(os.Stdout, defaultCases())
}

func defaultCases() []testCase {
	cases := []testCase{
		{name: "Transposed letters", a: "Hleol world", b: "Hello world"},
		{name: "Trailing swap", a: "Hello world", b: "Hello wordl"},
		{name: "Appended text", a: "Hallo", b: "Hello world"},
		{name: "Middle deletion", a: "abcdef", b: "abdef"},
		{name: "CJK truncation", a: "你好，世界", b: "你好"},
		{name: "Armenian update", a: "դա կատարյալ է", b: "դա կատարյալ  "},
	}

	// A long line with scattered edits
	cases = append(cases, testCase{
		name: "Long line (2000 chars, scattered edits)",
		a:    generateLine(2000, 0),
		b:    generateLine(2000, 7),
	})
	return cases
}

func run(w io.Writer, cases []testCase) {
	engine := chardiff.New()
	dmp := godiff.New()

	for _, tc := range cases {
		fmt.Fprintf(w, "\n=== %s ===\n", tc.name)
		fmt.Fprintf(w, "A: %d codepoints, B: %d codepoints\n", len([]rune(tc.a)), len([]rune(tc.b)))

		// Test chardiff
		start := time.Now()
		records := engine.Diff(tc.a, tc.b)
		chardiffTime := time.Since(start)

		// Test go-diff
		start = time.Now()
		diffs := dmp.DiffMain(tc.a, tc.b, false)
		goDiffTime := time.Since(start)

		cs := analyzeChardiff(records)
		gs := analyzeGoDiff(dmp, diffs)

		fmt.Fprintf(w, "\nchardiff: %v\n", chardiffTime)
		fmt.Fprintf(w, "  Records: %d (Insert: %d, Remove: %d, Update: %d)\n",
			cs.total, cs.insert, cs.remove, cs.update)
		fmt.Fprintf(w, "  Edited codepoints: %d\n", cs.edited)

		fmt.Fprintf(w, "\ngo-diff:  %v\n", goDiffTime)
		fmt.Fprintf(w, "  Operations: %d (Equal: %d, Insert: %d, Delete: %d)\n",
			gs.total, gs.equal, gs.insert, gs.remove)
		fmt.Fprintf(w, "  Levenshtein: %d\n", gs.edited)

		// Show detailed output for small cases
		if len(tc.a) <= 40 {
			fmt.Fprintln(w, "\nchardiff output:")
			for _, r := range records {
				fmt.Fprintf(w, "  %s\n", r)
			}
		}
	}
}

type diffStats struct {
	total, equal, insert, remove, update int
	edited                               int
}

func analyzeChardiff(records []chardiff.DiffRecord) diffStats {
	var s diffStats
	s.total = len(records)
	for _, r := range records {
		switch r.Op {
		case chardiff.Insert:
			s.insert++
		case chardiff.Remove:
			s.remove++
		case chardiff.Update:
			s.update++
		}
		s.edited += r.Count
	}
	return s
}

func analyzeGoDiff(dmp *godiff.DiffMatchPatch, diffs []godiff.Diff) diffStats {
	var s diffStats
	s.total = len(diffs)
	for _, d := range diffs {
		switch d.Type {
		case godiff.DiffEqual:
			s.equal++
		case godiff.DiffInsert:
			s.insert++
		case godiff.DiffDelete:
			s.remove++
		}
	}
	s.edited = dmp.DiffLevenshtein(diffs)
	return s
}

func generateLine(length int, seed int) string {
	const alphabet = "the quick brown fox jumps over the lazy dog "

	var b strings.Builder
	for i := 0; i < length; i++ {
		c := alphabet[(i*7+i/len(alphabet))%len(alphabet)]
		// Introduce some changes based on seed
		if seed > 0 && i%(50+seed) == seed {
			c = 'X'
		}
		b.WriteByte(c)
	}
	return b.String()
}
