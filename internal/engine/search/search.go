// Package search implements literal text search over the buffer.
package search

import (
	"strings"

	"github.com/ThymeKeeper/texteditor/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset.
type ByteOffset = buffer.ByteOffset

// Match is a matched byte range, [Start, End).
type Match struct {
	Start ByteOffset
	End   ByteOffset
}

// Find returns every occurrence of query in text, scanning left to
// right. Matches never overlap: scanning resumes at the end of each
// match, so "aa" occurs twice in "aaaa". An empty query matches
// nothing.
func Find(text, query string) []Match {
	if query == "" {
		return nil
	}

	var matches []Match
	off := 0
	for {
		i := strings.Index(text[off:], query)
		if i < 0 {
			return matches
		}
		start := off + i
		end := start + len(query)
		matches = append(matches, Match{Start: ByteOffset(start), End: ByteOffset(end)})
		off = end
	}
}

// State tracks the active query, its matches, and which match is
// current.
type State struct {
	query   string
	matches []Match
	current int // index into matches, -1 when unset
}

// NewState returns an empty search state.
func NewState() *State {
	return &State{current: -1}
}

// Query returns the active query.
func (s *State) Query() string {
	return s.query
}

// Matches returns the matched ranges in document order.
func (s *State) Matches() []Match {
	return s.matches
}

// Count returns the number of matches.
func (s *State) Count() int {
	return len(s.matches)
}

// Current returns the current match, if any.
func (s *State) Current() (Match, bool) {
	if s.current < 0 || s.current >= len(s.matches) {
		return Match{}, false
	}
	return s.matches[s.current], true
}

// CurrentIndex returns the index of the current match, if any.
func (s *State) CurrentIndex() (int, bool) {
	if s.current < 0 || s.current >= len(s.matches) {
		return 0, false
	}
	return s.current, true
}

// Update rescans text for query and selects the first match at or
// after caret, wrapping to the first match if none follows. With no
// matches (or an empty query) the current match is unset.
func (s *State) Update(text, query string, caret ByteOffset) {
	s.query = query
	s.matches = Find(text, query)
	s.current = -1

	if len(s.matches) == 0 {
		return
	}
	s.current = 0
	for i, m := range s.matches {
		if m.Start >= caret {
			s.current = i
			break
		}
	}
}

// SelectAfter moves the current match to the first one starting
// strictly after pos, wrapping to the first match. It does nothing
// when there are no matches.
func (s *State) SelectAfter(pos ByteOffset) {
	if len(s.matches) == 0 {
		return
	}
	s.current = 0
	for i, m := range s.matches {
		if m.Start > pos {
			s.current = i
			break
		}
	}
}

// Next advances to the following match, wrapping at the end. It is a
// no-op without a current match.
func (s *State) Next() (Match, bool) {
	if s.current < 0 || len(s.matches) == 0 {
		return Match{}, false
	}
	s.current = (s.current + 1) % len(s.matches)
	return s.matches[s.current], true
}

// Prev steps back to the preceding match, wrapping at the start. It is
// a no-op without a current match.
func (s *State) Prev() (Match, bool) {
	if s.current < 0 || len(s.matches) == 0 {
		return Match{}, false
	}
	if s.current == 0 {
		s.current = len(s.matches) - 1
	} else {
		s.current--
	}
	return s.matches[s.current], true
}

// Clear discards the query and all match state.
func (s *State) Clear() {
	s.query = ""
	s.matches = nil
	s.current = -1
}
