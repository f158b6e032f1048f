package engine

import (
	"github.com/ThymeKeeper/texteditor/internal/engine/cursor"
	"github.com/ThymeKeeper/texteditor/internal/engine/search"
)

// ============================================================================
// Find and replace
// ============================================================================

// SetFindQuery rescans the document for query and selects the first
// match at or after the caret, wrapping to the first match. It returns
// the number of matches.
func (e *Editor) SetFindQuery(query string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.finder.Update(e.buf.Text(), query, e.sel.Caret())
	return e.finder.Count()
}

// RefreshMatches rescans the document for the active query so match
// highlights keep up with edits. It is a no-op without a query.
func (e *Editor) RefreshMatches() {
	e.mu.Lock()
	defer e.mu.Unlock()
	query := e.finder.Query()
	if query == "" {
		return
	}
	e.finder.Update(e.buf.Text(), query, e.sel.Caret())
}

// ClearFindMatches discards the query and all match state.
func (e *Editor) ClearFindMatches() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.finder.Clear()
}

// FindQuery returns the active query.
func (e *Editor) FindQuery() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.finder.Query()
}

// Matches returns a copy of the matched ranges in document order.
func (e *Editor) Matches() []Match {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Match(nil), e.finder.Matches()...)
}

// MatchCount returns the number of matches for the active query.
func (e *Editor) MatchCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.finder.Count()
}

// CurrentMatch returns the current match, if any.
func (e *Editor) CurrentMatch() (Match, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.finder.Current()
}

// CurrentMatchIndex returns the index of the current match, if any.
func (e *Editor) CurrentMatchIndex() (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.finder.CurrentIndex()
}

// FindNext advances to the following match, wrapping at the end, and
// moves the caret to it. It reports whether the caret moved.
func (e *Editor) FindNext() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.finder.Next(); !ok {
		return false
	}
	return e.jumpToCurrentLocked()
}

// FindPrevious steps back to the preceding match, wrapping at the
// start, and moves the caret to it. It reports whether the caret
// moved.
func (e *Editor) FindPrevious() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.finder.Prev(); !ok {
		return false
	}
	return e.jumpToCurrentLocked()
}

// JumpToCurrentMatch moves the caret to the start of the current
// match, clearing the selection. It reports whether the caret moved.
func (e *Editor) JumpToCurrentMatch() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.jumpToCurrentLocked()
}

func (e *Editor) jumpToCurrentLocked() bool {
	m, ok := e.finder.Current()
	if !ok {
		return false
	}
	e.sel = cursor.At(m.Start)
	e.preferredCol = 0
	return true
}

// ReplaceCurrent replaces the current match with replacement as its
// own undo group, rescans, and jumps to the first match after the
// replaced text. It reports whether a replacement happened.
func (e *Editor) ReplaceCurrent(replacement string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, ok := e.finder.Current()
	if !ok {
		return false
	}
	query := e.finder.Query()

	e.hist.Finalize()
	e.sel = cursor.Anchored(m.End, m.Start)
	if replacement == "" {
		e.deleteSelectionLocked()
	} else {
		e.insertTextLocked(replacement)
	}
	e.hist.Finalize()

	after := e.sel.Caret()
	e.finder.Update(e.buf.Text(), query, after)
	e.finder.SelectAfter(after)
	e.jumpToCurrentLocked()
	return true
}

// ReplaceAll replaces every match of the active query as one undo
// group and returns the number of replacements. The scan moves
// strictly forward, so a replacement that still contains the query is
// not matched again. The caret is left after the last replacement
// rather than jumping to a remaining match.
func (e *Editor) ReplaceAll(replacement string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	query := e.finder.Query()
	if query == "" {
		return 0
	}

	e.hist.Finalize()

	count := 0
	floor := ByteOffset(0)
	for {
		m, ok := firstMatchAtOrAfter(search.Find(e.buf.Text(), query), floor)
		if !ok {
			break
		}
		e.sel = cursor.Anchored(m.End, m.Start)
		if replacement == "" {
			e.deleteSelectionLocked()
		} else {
			e.insertTextLocked(replacement)
		}
		floor = m.Start + ByteOffset(len(replacement))
		count++
	}

	e.finder.Update(e.buf.Text(), query, e.sel.Caret())
	e.hist.Finalize()
	return count
}

// firstMatchAtOrAfter returns the first match starting at or after pos.
func firstMatchAtOrAfter(matches []Match, pos ByteOffset) (Match, bool) {
	for _, m := range matches {
		if m.Start >= pos {
			return m, true
		}
	}
	return Match{}, false
}
