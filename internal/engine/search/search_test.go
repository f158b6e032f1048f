package search

import (
	"reflect"
	"testing"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []Match
	}{
		{
			name:  "empty query",
			text:  "hello",
			query: "",
			want:  nil,
		},
		{
			name:  "no match",
			text:  "hello",
			query: "xyz",
			want:  nil,
		},
		{
			name:  "single match",
			text:  "hello world",
			query: "world",
			want:  []Match{{6, 11}},
		},
		{
			name:  "multiple matches",
			text:  "foo bar foo baz foo",
			query: "foo",
			want:  []Match{{0, 3}, {8, 11}, {16, 19}},
		},
		{
			name:  "overlapping candidates scan past match end",
			text:  "ababab",
			query: "abab",
			want:  []Match{{0, 4}},
		},
		{
			name:  "adjacent matches",
			text:  "ababab",
			query: "ab",
			want:  []Match{{0, 2}, {2, 4}, {4, 6}},
		},
		{
			name:  "self overlap",
			text:  "aaaa",
			query: "aa",
			want:  []Match{{0, 2}, {2, 4}},
		},
		{
			name:  "multibyte text",
			text:  "héllo héllo",
			query: "héllo",
			want:  []Match{{0, 6}, {7, 13}},
		},
		{
			name:  "query longer than text",
			text:  "ab",
			query: "abc",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Find(tt.text, tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Find(%q, %q) = %v, want %v", tt.text, tt.query, got, tt.want)
			}
		})
	}
}

func TestUpdateSelectsMatchAtOrAfterCaret(t *testing.T) {
	tests := []struct {
		name  string
		caret ByteOffset
		want  int
	}{
		{"caret before all", 0, 0},
		{"caret inside first match", 1, 1},
		{"caret at second match start", 8, 1},
		{"caret between matches", 12, 2},
		{"caret past all wraps to first", 17, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.Update("foo bar foo baz foo", "foo", tt.caret)
			idx, ok := s.CurrentIndex()
			if !ok {
				t.Fatal("no current match")
			}
			if idx != tt.want {
				t.Errorf("current index = %d, want %d", idx, tt.want)
			}
		})
	}
}

func TestUpdateWithNoMatches(t *testing.T) {
	s := NewState()
	s.Update("hello", "xyz", 0)
	if s.Count() != 0 {
		t.Errorf("Count() = %d, want 0", s.Count())
	}
	if _, ok := s.Current(); ok {
		t.Error("Current() reported a match with none present")
	}
	if _, ok := s.Next(); ok {
		t.Error("Next() advanced with no matches")
	}
	if _, ok := s.Prev(); ok {
		t.Error("Prev() stepped back with no matches")
	}
}

func TestNextPrevWrap(t *testing.T) {
	s := NewState()
	s.Update("ababab", "ab", 0)

	// Forward through all matches and around.
	wantStarts := []ByteOffset{2, 4, 0}
	for _, want := range wantStarts {
		m, ok := s.Next()
		if !ok {
			t.Fatal("Next() failed")
		}
		if m.Start != want {
			t.Errorf("Next() start = %d, want %d", m.Start, want)
		}
	}

	// Backward wraps from the first match to the last.
	m, ok := s.Prev()
	if !ok {
		t.Fatal("Prev() failed")
	}
	if m.Start != 4 {
		t.Errorf("Prev() start = %d, want 4", m.Start)
	}
}

func TestSelectAfter(t *testing.T) {
	tests := []struct {
		name string
		pos  ByteOffset
		want int
	}{
		{"before first", 0, 1}, // strictly after 0 skips the match at 0
		{"between second and third", 11, 2},
		{"after last wraps", 16, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.Update("foo bar foo baz foo", "foo", 0)
			s.SelectAfter(tt.pos)
			idx, ok := s.CurrentIndex()
			if !ok {
				t.Fatal("no current match")
			}
			if idx != tt.want {
				t.Errorf("current index = %d, want %d", idx, tt.want)
			}
		})
	}
}

func TestClear(t *testing.T) {
	s := NewState()
	s.Update("foo foo", "foo", 0)
	s.Clear()

	if s.Query() != "" {
		t.Errorf("Query() = %q after Clear", s.Query())
	}
	if s.Count() != 0 {
		t.Errorf("Count() = %d after Clear", s.Count())
	}
	if _, ok := s.Current(); ok {
		t.Error("Current() reported a match after Clear")
	}
}
