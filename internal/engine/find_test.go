package engine

import (
	"testing"
)

// ============================================================================
// Query and navigation
// ============================================================================

func TestSetFindQuery(t *testing.T) {
	e := newTestEditor(t, "foo bar foo baz foo", 80)

	if got := e.SetFindQuery("foo"); got != 3 {
		t.Errorf("expected 3 matches, got %d", got)
	}
	idx, ok := e.CurrentMatchIndex()
	if !ok {
		t.Fatal("expected a current match")
	}
	if idx != 0 {
		t.Errorf("expected first match current, got %d", idx)
	}
}

func TestSetFindQuerySelectsMatchAfterCaret(t *testing.T) {
	e := newTestEditor(t, "foo bar foo baz foo", 80)
	for i := 0; i < 5; i++ {
		e.MoveRight(false)
	}

	e.SetFindQuery("foo")
	m, ok := e.CurrentMatch()
	if !ok {
		t.Fatal("expected a current match")
	}
	if m.Start != 8 {
		t.Errorf("expected match at 8, got %d", m.Start)
	}
}

func TestSetFindQueryNoMatches(t *testing.T) {
	e := newTestEditor(t, "hello", 80)

	if got := e.SetFindQuery("zzz"); got != 0 {
		t.Errorf("expected 0 matches, got %d", got)
	}
	if _, ok := e.CurrentMatchIndex(); ok {
		t.Error("expected no current match")
	}
	if e.FindNext() {
		t.Error("expected FindNext to fail with no matches")
	}
}

func TestFindNextWrapsAndMovesCaret(t *testing.T) {
	e := newTestEditor(t, "foo bar foo", 80)
	e.SetFindQuery("foo")

	if !e.FindNext() {
		t.Fatal("expected FindNext to succeed")
	}
	if e.Caret() != 8 {
		t.Errorf("expected caret at second match, got %d", e.Caret())
	}

	if !e.FindNext() {
		t.Fatal("expected FindNext to wrap")
	}
	if e.Caret() != 0 {
		t.Errorf("expected caret wrapped to first match, got %d", e.Caret())
	}
}

func TestFindPreviousWraps(t *testing.T) {
	e := newTestEditor(t, "foo bar foo", 80)
	e.SetFindQuery("foo")

	if !e.FindPrevious() {
		t.Fatal("expected FindPrevious to succeed")
	}
	if e.Caret() != 8 {
		t.Errorf("expected caret wrapped to last match, got %d", e.Caret())
	}
}

func TestJumpToCurrentMatchClearsSelection(t *testing.T) {
	e := newTestEditor(t, "foo bar foo", 80)
	e.SelectAll()
	e.SetFindQuery("bar")

	if !e.JumpToCurrentMatch() {
		t.Fatal("expected jump to succeed")
	}
	if e.Caret() != 4 {
		t.Errorf("expected caret at match start, got %d", e.Caret())
	}
	if _, ok := e.SelectionRange(); ok {
		t.Error("expected selection cleared by jump")
	}
}

func TestMatchesAreNonOverlapping(t *testing.T) {
	e := newTestEditor(t, "aaaa", 80)

	if got := e.SetFindQuery("aa"); got != 2 {
		t.Errorf("expected 2 non-overlapping matches, got %d", got)
	}
	matches := e.Matches()
	if matches[0].Start != 0 || matches[0].End != 2 || matches[1].Start != 2 || matches[1].End != 4 {
		t.Errorf("unexpected match ranges %+v", matches)
	}
}

func TestRefreshMatchesAfterEdit(t *testing.T) {
	e := newTestEditor(t, "foo bar", 80)
	e.SetFindQuery("foo")
	e.MoveDocEnd(false)
	e.Paste(" foo")

	e.RefreshMatches()
	if got := e.MatchCount(); got != 2 {
		t.Errorf("expected 2 matches after edit, got %d", got)
	}
}

func TestClearFindMatches(t *testing.T) {
	e := newTestEditor(t, "foo foo", 80)
	e.SetFindQuery("foo")
	e.ClearFindMatches()

	if e.MatchCount() != 0 {
		t.Error("expected matches cleared")
	}
	if e.FindQuery() != "" {
		t.Error("expected query cleared")
	}
}

// ============================================================================
// Replace
// ============================================================================

func TestReplaceCurrent(t *testing.T) {
	e := newTestEditor(t, "foo bar foo", 80)
	e.SetFindQuery("foo")

	if !e.ReplaceCurrent("qux") {
		t.Fatal("expected first replacement to succeed")
	}
	if e.Text() != "qux bar foo" {
		t.Errorf("expected %q, got %q", "qux bar foo", e.Text())
	}
	if e.Caret() != 8 {
		t.Errorf("expected caret jumped to the remaining match, got %d", e.Caret())
	}

	if !e.ReplaceCurrent("qux") {
		t.Fatal("expected second replacement to succeed")
	}
	if e.Text() != "qux bar qux" {
		t.Errorf("expected %q, got %q", "qux bar qux", e.Text())
	}

	if e.ReplaceCurrent("qux") {
		t.Error("expected no replacement with no matches left")
	}
}

func TestReplaceCurrentEmptyReplacement(t *testing.T) {
	e := newTestEditor(t, "a foo b", 80)
	e.SetFindQuery("foo")

	if !e.ReplaceCurrent("") {
		t.Fatal("expected replacement to succeed")
	}
	if e.Text() != "a  b" {
		t.Errorf("expected match deleted, got %q", e.Text())
	}
}

func TestReplaceCurrentUndoesAsOneGroup(t *testing.T) {
	e := newTestEditor(t, "foo bar", 80)
	e.SetFindQuery("foo")
	e.ReplaceCurrent("long replacement")

	if !e.Undo() {
		t.Fatal("expected undo to succeed")
	}
	if e.Text() != "foo bar" {
		t.Errorf("expected replacement undone in one step, got %q", e.Text())
	}
}

func TestReplaceCurrentSkipsReplacementText(t *testing.T) {
	e := newTestEditor(t, "foo foo", 80)
	e.SetFindQuery("foo")

	// The replacement still contains the query; the jump must land on
	// the match after it, not inside it.
	if !e.ReplaceCurrent("foofoo") {
		t.Fatal("expected replacement to succeed")
	}
	if e.Text() != "foofoo foo" {
		t.Errorf("expected %q, got %q", "foofoo foo", e.Text())
	}
	if e.Caret() != 7 {
		t.Errorf("expected caret on the original second match, got %d", e.Caret())
	}
}

func TestReplaceAll(t *testing.T) {
	e := newTestEditor(t, "foo bar foo baz foo", 80)
	e.SetFindQuery("foo")

	if got := e.ReplaceAll("qux"); got != 3 {
		t.Errorf("expected 3 replacements, got %d", got)
	}
	if e.Text() != "qux bar qux baz qux" {
		t.Errorf("expected %q, got %q", "qux bar qux baz qux", e.Text())
	}
	if e.MatchCount() != 0 {
		t.Errorf("expected no matches left, got %d", e.MatchCount())
	}
	if !e.Modified() {
		t.Error("expected document modified")
	}
}

func TestReplaceAllEmptyQuery(t *testing.T) {
	e := newTestEditor(t, "hello", 80)
	if got := e.ReplaceAll("x"); got != 0 {
		t.Errorf("expected no replacements without a query, got %d", got)
	}
}

func TestReplaceAllEmptyReplacement(t *testing.T) {
	e := newTestEditor(t, "a b a", 80)
	e.SetFindQuery("a")

	if got := e.ReplaceAll(""); got != 2 {
		t.Errorf("expected 2 replacements, got %d", got)
	}
	if e.Text() != " b " {
		t.Errorf("expected %q, got %q", " b ", e.Text())
	}
}

func TestReplaceAllReplacementContainsQuery(t *testing.T) {
	e := newTestEditor(t, "foo foo", 80)
	e.SetFindQuery("foo")

	if got := e.ReplaceAll("foofoo"); got != 2 {
		t.Errorf("expected 2 replacements, got %d", got)
	}
	if e.Text() != "foofoo foofoo" {
		t.Errorf("expected %q, got %q", "foofoo foofoo", e.Text())
	}
	if e.MatchCount() != 4 {
		t.Errorf("expected rescan to report matches inside replacements, got %d", e.MatchCount())
	}
}

func TestReplaceAllUndoesAsOneGroup(t *testing.T) {
	e := newTestEditor(t, "x x x x", 80)
	e.SetFindQuery("x")
	e.ReplaceAll("yy")

	if e.Text() != "yy yy yy yy" {
		t.Fatalf("expected %q, got %q", "yy yy yy yy", e.Text())
	}
	if !e.Undo() {
		t.Fatal("expected undo to succeed")
	}
	if e.Text() != "x x x x" {
		t.Errorf("expected all replacements undone in one step, got %q", e.Text())
	}
}

func TestReplaceAllEveryWord(t *testing.T) {
	e := newTestEditor(t, "foo foo foo", 80)
	e.SetFindQuery("foo")

	if got := e.ReplaceAll("bar"); got != 3 {
		t.Errorf("expected 3 replacements, got %d", got)
	}
	if e.Text() != "bar bar bar" {
		t.Errorf("expected %q, got %q", "bar bar bar", e.Text())
	}
}
