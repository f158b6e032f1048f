package engine

import (
	"testing"
)

// ============================================================================
// Horizontal motion
// ============================================================================

func TestMoveRightAndLeft(t *testing.T) {
	e := newTestEditor(t, "a日b", 80)

	e.MoveRight(false)
	if e.Caret() != 1 {
		t.Errorf("expected caret 1, got %d", e.Caret())
	}
	e.MoveRight(false)
	if e.Caret() != 4 {
		t.Errorf("expected caret to step over the multibyte rune, got %d", e.Caret())
	}
	e.MoveLeft(false)
	if e.Caret() != 1 {
		t.Errorf("expected caret back at 1, got %d", e.Caret())
	}
}

func TestMoveRightAtEnd(t *testing.T) {
	e := newTestEditor(t, "ab", 80)
	e.MoveDocEnd(false)
	e.MoveRight(false)
	if e.Caret() != 2 {
		t.Errorf("expected caret pinned at end, got %d", e.Caret())
	}
}

func TestMoveLeftAtStart(t *testing.T) {
	e := newTestEditor(t, "ab", 80)
	e.MoveLeft(false)
	if e.Caret() != 0 {
		t.Errorf("expected caret pinned at start, got %d", e.Caret())
	}
}

func TestMoveLeftCollapsesSelectionToStart(t *testing.T) {
	e := newTestEditor(t, "hello", 80)
	e.MoveRight(false)
	e.MoveRight(true)
	e.MoveRight(true)

	e.MoveLeft(false)
	if e.Caret() != 1 {
		t.Errorf("expected caret at selection start, got %d", e.Caret())
	}
	if _, ok := e.SelectionRange(); ok {
		t.Error("expected selection cleared")
	}
}

func TestMoveRightCollapsesSelectionToEnd(t *testing.T) {
	e := newTestEditor(t, "hello", 80)
	e.MoveRight(true)
	e.MoveRight(true)

	e.MoveRight(false)
	if e.Caret() != 2 {
		t.Errorf("expected caret at selection end without moving further, got %d", e.Caret())
	}
	if _, ok := e.SelectionRange(); ok {
		t.Error("expected selection cleared")
	}
}

func TestMoveLeftAfterClickStaysPut(t *testing.T) {
	e := newTestEditor(t, "hello", 80)
	e.Click(e.VirtualRows(), 3, false)

	// The click leaves an empty anchor behind for drag support, so the
	// first plain move collapses it without moving the caret.
	e.MoveLeft(false)
	if e.Caret() != 3 {
		t.Errorf("expected caret still at 3, got %d", e.Caret())
	}

	e.MoveLeft(false)
	if e.Caret() != 2 {
		t.Errorf("expected caret at 2 after second move, got %d", e.Caret())
	}
}

func TestMoveRightExtendPlantsAnchor(t *testing.T) {
	e := newTestEditor(t, "hello", 80)
	e.MoveRight(false)
	e.MoveRight(true)

	rng, ok := e.SelectionRange()
	if !ok {
		t.Fatal("expected a selection")
	}
	if rng.Start != 1 || rng.End != 2 {
		t.Errorf("expected [1,2), got [%d,%d)", rng.Start, rng.End)
	}
}

// ============================================================================
// Vertical motion
// ============================================================================

func TestMoveDownKeepsPreferredColumn(t *testing.T) {
	e := newTestEditor(t, "abcdefgh\nxy\nabcdefgh", 80)
	for i := 0; i < 8; i++ {
		e.MoveRight(false)
	}

	e.MoveDown(false)
	if e.Caret() != 11 {
		t.Errorf("expected caret clamped to the short line end, got %d", e.Caret())
	}

	e.MoveDown(false)
	if e.Caret() != 20 {
		t.Errorf("expected caret back at the preferred column, got %d", e.Caret())
	}
}

func TestMoveUpKeepsPreferredColumn(t *testing.T) {
	e := newTestEditor(t, "abcdefgh\nxy\nabcdefgh", 80)
	e.MoveDocEnd(false)

	e.MoveUp(false)
	if e.Caret() != 11 {
		t.Errorf("expected caret clamped to the short line end, got %d", e.Caret())
	}

	e.MoveUp(false)
	if e.Caret() != 8 {
		t.Errorf("expected caret back at the preferred column, got %d", e.Caret())
	}
}

func TestMoveUpFromFirstRowJumpsToStart(t *testing.T) {
	e := newTestEditor(t, "hello", 80)
	e.Click(e.VirtualRows(), 3, false)

	e.MoveUp(false)
	if e.Caret() != 0 {
		t.Errorf("expected caret at document start, got %d", e.Caret())
	}
}

func TestMoveDownOnLastRowStays(t *testing.T) {
	e := newTestEditor(t, "ab\ncd", 80)
	e.MoveDocEnd(false)
	e.MoveDown(false)
	if e.Caret() != 5 {
		t.Errorf("expected caret unchanged on last row, got %d", e.Caret())
	}
}

func TestMoveDownThroughWrappedRows(t *testing.T) {
	e := newTestEditor(t, "aaaabbbbcccc", 4)

	e.MoveDown(false)
	if e.Caret() != 4 {
		t.Errorf("expected caret on first continuation row, got %d", e.Caret())
	}
	e.MoveDown(false)
	if e.Caret() != 8 {
		t.Errorf("expected caret on second continuation row, got %d", e.Caret())
	}
}

func TestVerticalMotionExtendsSelection(t *testing.T) {
	e := newTestEditor(t, "ab\ncd\nef", 80)
	e.MoveDown(true)
	e.MoveDown(true)

	rng, ok := e.SelectionRange()
	if !ok {
		t.Fatal("expected a selection")
	}
	if rng.Start != 0 || rng.End != 6 {
		t.Errorf("expected [0,6), got [%d,%d)", rng.Start, rng.End)
	}
}

// ============================================================================
// Line and document motion
// ============================================================================

func TestMoveLineStartEnd(t *testing.T) {
	e := newTestEditor(t, "hello world\nsecond", 80)
	for i := 0; i < 5; i++ {
		e.MoveRight(false)
	}

	e.MoveLineEnd(false)
	if e.Caret() != 11 {
		t.Errorf("expected caret before the newline, got %d", e.Caret())
	}

	e.MoveLineStart(false)
	if e.Caret() != 0 {
		t.Errorf("expected caret at line start, got %d", e.Caret())
	}
}

func TestMoveLineEndExtendSelectsRest(t *testing.T) {
	e := newTestEditor(t, "hello world", 80)
	for i := 0; i < 6; i++ {
		e.MoveRight(false)
	}

	e.MoveLineEnd(true)
	rng, ok := e.SelectionRange()
	if !ok {
		t.Fatal("expected a selection")
	}
	if got := e.Slice(rng.Start, rng.End); got != "world" {
		t.Errorf("expected %q selected, got %q", "world", got)
	}
}

func TestMoveDocStartEnd(t *testing.T) {
	e := newTestEditor(t, "ab\ncd", 80)

	e.MoveDocEnd(false)
	if e.Caret() != 5 {
		t.Errorf("expected caret at end, got %d", e.Caret())
	}

	e.MoveDocStart(false)
	if e.Caret() != 0 {
		t.Errorf("expected caret at start, got %d", e.Caret())
	}

	e.MoveDocEnd(true)
	rng, ok := e.SelectionRange()
	if !ok {
		t.Fatal("expected a selection")
	}
	if rng.Start != 0 || rng.End != 5 {
		t.Errorf("expected whole document selected, got [%d,%d)", rng.Start, rng.End)
	}
}

func TestSelectAll(t *testing.T) {
	e := newTestEditor(t, "hello", 80)
	e.SelectAll()

	rng, ok := e.SelectionRange()
	if !ok {
		t.Fatal("expected a selection")
	}
	if rng.Start != 0 || rng.End != 5 {
		t.Errorf("expected [0,5), got [%d,%d)", rng.Start, rng.End)
	}
	if e.Caret() != 5 {
		t.Errorf("expected caret at end, got %d", e.Caret())
	}
}

// ============================================================================
// Mouse
// ============================================================================

func TestClickPlacesCaret(t *testing.T) {
	e := newTestEditor(t, "hello\nworld", 80)

	e.Click(e.VirtualRows()+1, 3, false)
	if e.Caret() != 9 {
		t.Errorf("expected caret at 9, got %d", e.Caret())
	}
}

func TestClickPastLineEndClampsToLineEnd(t *testing.T) {
	e := newTestEditor(t, "ab\ncdef", 80)

	e.Click(e.VirtualRows(), 99, false)
	if e.Caret() != 2 {
		t.Errorf("expected caret at line end, got %d", e.Caret())
	}
}

func TestClickOnVirtualRowCollapsesSelection(t *testing.T) {
	e := newTestEditor(t, "hello", 80)
	e.MoveRight(false)
	e.MoveRight(true)
	e.MoveRight(true)

	e.Click(0, 0, false)
	if e.Caret() != 3 {
		t.Errorf("expected caret unchanged, got %d", e.Caret())
	}
	if rng, ok := e.SelectionRange(); ok && rng.Start < rng.End {
		t.Errorf("expected selection collapsed, got [%d,%d)", rng.Start, rng.End)
	}
}

func TestClickContinuationRowClampsToIndent(t *testing.T) {
	e := newTestEditor(t, "- aaa bbb", 6)

	row, ok := e.RowAt(e.VirtualRows() + 1)
	if !ok || !row.Continuation {
		t.Fatalf("expected a continuation row, got %+v ok=%v", row, ok)
	}

	e.Click(e.VirtualRows()+1, 1, false)
	if e.Caret() != row.Start {
		t.Errorf("expected caret clamped to row start %d, got %d", row.Start, e.Caret())
	}
}

func TestShiftClickExtendsFromCaret(t *testing.T) {
	e := newTestEditor(t, "hello world", 80)

	e.Click(e.VirtualRows(), 8, true)
	rng, ok := e.SelectionRange()
	if !ok {
		t.Fatal("expected a selection")
	}
	if rng.Start != 0 || rng.End != 8 {
		t.Errorf("expected [0,8), got [%d,%d)", rng.Start, rng.End)
	}
}

func TestDragSelects(t *testing.T) {
	e := newTestEditor(t, "hello world", 80)

	e.Click(e.VirtualRows(), 2, false)
	e.Drag(e.VirtualRows(), 7)

	rng, ok := e.SelectionRange()
	if !ok {
		t.Fatal("expected a selection")
	}
	if rng.Start != 2 || rng.End != 7 {
		t.Errorf("expected [2,7), got [%d,%d)", rng.Start, rng.End)
	}
	if e.Caret() != 7 {
		t.Errorf("expected caret at drag position, got %d", e.Caret())
	}
}

func TestDragOutsideContentIgnored(t *testing.T) {
	e := newTestEditor(t, "hello", 80)

	e.Click(e.VirtualRows(), 2, false)
	e.Drag(0, 0)

	if e.Caret() != 2 {
		t.Errorf("expected caret unchanged, got %d", e.Caret())
	}
}
