package chardiff

import (
	"reflect"
	"strings"
	"testing"
)

func TestDiff_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     []DiffRecord
	}{
		{
			name: "equal strings",
			old:  "Hello world",
			new:  "Hello world",
			want: nil,
		},
		{
			name: "swap first characters",
			old:  "Hleol world",
			new:  "Hello world",
			want: []DiffRecord{
				{Start: 4, Count: 1, Op: Remove},
				{Start: 2, Count: 1, Op: Update},
				{Start: 1, Count: 1, Op: Insert},
			},
		},
		{
			name: "swap last characters",
			old:  "Hello world",
			new:  "Hello wordl",
			want: []DiffRecord{{Start: 9, Count: 2, Op: Update}},
		},
		{
			name: "remove to empty",
			old:  "H",
			new:  "",
			want: []DiffRecord{{Start: 0, Count: 1, Op: Remove}},
		},
		{
			name: "add to empty",
			old:  "",
			new:  "Hello",
			want: []DiffRecord{{Start: 0, Count: 5, Op: Insert}},
		},
		{
			name: "add character",
			old:  "Hello worl",
			new:  "Hello world",
			want: []DiffRecord{{Start: 10, Count: 1, Op: Insert}},
		},
		{
			name: "remove multiple characters",
			old:  "Hello world",
			new:  "H",
			want: []DiffRecord{{Start: 1, Count: 10, Op: Remove}},
		},
		{
			name: "update and insert",
			old:  "Hallo",
			new:  "Hello world",
			want: []DiffRecord{
				{Start: 5, Count: 6, Op: Insert},
				{Start: 1, Count: 1, Op: Update},
			},
		},
		{
			name: "update and remove",
			old:  "Ha#%o      xxxx",
			new:  "Hello world",
			want: []DiffRecord{
				{Start: 11, Count: 4, Op: Remove},
				{Start: 6, Count: 5, Op: Update},
				{Start: 1, Count: 3, Op: Update},
			},
		},
		{
			name: "chinese remove",
			old:  "你好，世界",
			new:  "你好",
			want: []DiffRecord{{Start: 2, Count: 3, Op: Remove}},
		},
		{
			name: "armenian update",
			old:  "դա կատարյալ է",
			new:  "դա կատարյալ  ",
			want: []DiffRecord{{Start: 12, Count: 1, Op: Update}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().Diff(tt.old, tt.new)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Diff(%q, %q) = %v, want %v", tt.old, tt.new, got, tt.want)
			}
		})
	}
}

func TestDiff_Identity(t *testing.T) {
	e := New()
	for _, s := range []string{"", "a", "Hello world", "你好，世界", strings.Repeat("xy", 300)} {
		if got := e.Diff(s, s); len(got) != 0 {
			t.Errorf("Diff(%q, %q) = %v, want no records", s, s, got)
		}
	}
}

func TestDiff_EmptySide(t *testing.T) {
	inputs := []string{"a", "Hello", "դա կատարյալ է"}
	for _, s := range inputs {
		n := len([]rune(s))

		got := Diff("", s)
		want := []DiffRecord{{Start: 0, Count: n, Op: Insert}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Diff(\"\", %q) = %v, want %v", s, got, want)
		}

		got = Diff(s, "")
		want = []DiffRecord{{Start: 0, Count: n, Op: Remove}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Diff(%q, \"\") = %v, want %v", s, got, want)
		}
	}
}

func TestDiff_NoNoneRecords(t *testing.T) {
	pairs := [][2]string{
		{"abcdef", "abdef"},
		{"aXbc", "abcX"},
		{"kitten", "sitting"},
		{"the quick brown fox", "the quack brown fax"},
		{"你好，世界", "你们好，世界"},
	}
	e := New()
	for _, p := range pairs {
		for _, r := range e.Diff(p[0], p[1]) {
			if r.Op == None {
				t.Errorf("Diff(%q, %q) contains a None record: %v", p[0], p[1], r)
			}
			if r.Count <= 0 {
				t.Errorf("Diff(%q, %q) contains an empty record: %v", p[0], p[1], r)
			}
		}
	}
}

func TestDiff_GapRecordFirst(t *testing.T) {
	tests := []struct {
		old, new string
		want     DiffRecord
	}{
		{"hello", "jello world", DiffRecord{Start: 5, Count: 6, Op: Insert}},
		{"hello world", "jelly", DiffRecord{Start: 5, Count: 6, Op: Remove}},
		{"hello", "help", DiffRecord{Start: 4, Count: 1, Op: Remove}},
	}
	for _, tt := range tests {
		got := Diff(tt.old, tt.new)
		if len(got) < 2 {
			t.Fatalf("Diff(%q, %q) = %v, want gap record plus solved records", tt.old, tt.new, got)
		}
		if got[0] != tt.want {
			t.Errorf("Diff(%q, %q)[0] = %v, want %v", tt.old, tt.new, got[0], tt.want)
		}
	}
}

func TestDiff_BackwardOrder(t *testing.T) {
	got := Diff("aXbc", "abcX")
	want := []DiffRecord{
		{Start: 4, Count: 1, Op: Insert},
		{Start: 1, Count: 1, Op: Remove},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() = %v, want %v", got, want)
	}
}

func TestDiff_MirroredPair(t *testing.T) {
	// Removing a middle character with no length equalization on the
	// solved prefix produces a mirrored Remove/Insert pair at the tail.
	got := Diff("abcdef", "abdef")
	want := []DiffRecord{
		{Start: 5, Count: 1, Op: Remove},
		{Start: 5, Count: 1, Op: Insert},
		{Start: 2, Count: 1, Op: Remove},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() = %v, want %v", got, want)
	}
}

func TestDiff_TieBreakPrefersUpdate(t *testing.T) {
	// Every cell on the diagonal ties between Update and the Remove/Insert
	// detour; Update must win.
	tests := []struct {
		old, new string
		want     []DiffRecord
	}{
		{"ab", "ba", []DiffRecord{{Start: 0, Count: 2, Op: Update}}},
		{"abc", "xyz", []DiffRecord{{Start: 0, Count: 3, Op: Update}}},
		{"cat", "hat", []DiffRecord{{Start: 0, Count: 1, Op: Update}}},
	}
	for _, tt := range tests {
		got := Diff(tt.old, tt.new)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Diff(%q, %q) = %v, want %v", tt.old, tt.new, got, tt.want)
		}
	}
}

func TestDiffRunes_MatchesDiff(t *testing.T) {
	e := New()
	old, new := "Hleol world", "Hello world"
	got := e.DiffRunes([]rune(old), []rune(new))
	want := e.Diff(old, new)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiffRunes() = %v, Diff() = %v", got, want)
	}
}

func TestEngine_ReuseAcrossCalls(t *testing.T) {
	e := New(WithCapacity(4, 4))

	// Grow, then shrink back: the smaller result must not see stale cells.
	long := e.Diff("Ha#%o      xxxx", "Hello world")
	if len(long) != 3 {
		t.Fatalf("expected 3 records, got %v", long)
	}
	got := e.Diff("Hleol", "Hello")
	want := []DiffRecord{
		{Start: 4, Count: 1, Op: Remove},
		{Start: 2, Count: 1, Op: Update},
		{Start: 1, Count: 1, Op: Insert},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() after reuse = %v, want %v", got, want)
	}
}

func TestEngine_GrowthPolicy(t *testing.T) {
	e := New(WithCapacity(4, 4))
	if r, c := e.Capacity(); r != 4 || c != 4 {
		t.Fatalf("Capacity() = %d, %d, want 4, 4", r, c)
	}

	// Fits: storage is kept.
	e.Diff("abc", "abd")
	if r, c := e.Capacity(); r != 4 || c != 4 {
		t.Errorf("Capacity() after small diff = %d, %d, want 4, 4", r, c)
	}

	// Too large: reallocated to exactly the solved size.
	e.Diff("abcdefg", "abcdefh")
	if r, c := e.Capacity(); r != 8 || c != 8 {
		t.Errorf("Capacity() after growth = %d, %d, want 8, 8", r, c)
	}

	// Smaller again: never shrinks.
	e.Diff("ab", "ac")
	if r, c := e.Capacity(); r != 8 || c != 8 {
		t.Errorf("Capacity() after shrink = %d, %d, want 8, 8", r, c)
	}

	// Gap records do not count towards the solved size.
	e.Diff("abcdefghij", "abcdefghiX"+strings.Repeat("z", 50))
	if r, c := e.Capacity(); r != 11 || c != 11 {
		t.Errorf("Capacity() after gap = %d, %d, want 11, 11", r, c)
	}
}

func TestEngine_ShortCircuitSkipsAllocation(t *testing.T) {
	e := New(WithCapacity(0, 0))
	e.Diff("", strings.Repeat("a", 1000))
	e.Diff(strings.Repeat("a", 1000), "")
	if r, c := e.Capacity(); r != 0 || c != 0 {
		t.Errorf("Capacity() = %d, %d, want 0, 0", r, c)
	}
}

func TestOpKind_String(t *testing.T) {
	tests := []struct {
		kind       OpKind
		name, mark string
	}{
		{None, "None", "(-)"},
		{Insert, "Insert", "(i)"},
		{Remove, "Remove", "(r)"},
		{Update, "Update", "(u)"},
		{OpKind(99), "Unknown", "(-)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("OpKind(%d).String() = %q, want %q", tt.kind, got, tt.name)
		}
		if got := tt.kind.Symbol(); got != tt.mark {
			t.Errorf("OpKind(%d).Symbol() = %q, want %q", tt.kind, got, tt.mark)
		}
	}
}

func TestDiffRecord_String(t *testing.T) {
	r := DiffRecord{Start: 4, Count: 1, Op: Remove}
	if got, want := r.String(), "{start:4 count:1 Remove}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
