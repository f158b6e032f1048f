package engine

import (
	"github.com/ThymeKeeper/texteditor/internal/engine/cursor"
)

// ============================================================================
// Caret motion
// ============================================================================

// prepareMotionLocked plants or clears the anchor before a caret move.
func (e *Editor) prepareMotionLocked(extend bool) {
	if extend && !e.sel.HasAnchor() {
		e.sel = e.sel.Extend(e.sel.Caret())
	} else if !extend {
		e.sel = e.sel.Drop()
	}
}

// MoveLeft moves the caret one character left. Without extend, an
// existing selection collapses to its start instead of moving.
func (e *Editor) MoveLeft(extend bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !extend && e.sel.HasAnchor() {
		rng, _ := e.sel.Range()
		e.sel = cursor.At(rng.Start)
		e.preferredCol = e.caretColLocked()
		return
	}
	e.prepareMotionLocked(extend)

	caret := e.sel.Caret()
	_, size := e.buf.RuneBefore(caret)
	if size > 0 {
		e.sel = e.sel.WithCaret(caret - ByteOffset(size))
		e.preferredCol = e.caretColLocked()
	}
}

// MoveRight moves the caret one character right. Without extend, an
// existing selection collapses to its end instead of moving.
func (e *Editor) MoveRight(extend bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !extend && e.sel.HasAnchor() {
		rng, _ := e.sel.Range()
		e.sel = cursor.At(rng.End)
		e.preferredCol = e.caretColLocked()
		return
	}
	e.prepareMotionLocked(extend)

	caret := e.sel.Caret()
	_, size := e.buf.RuneAt(caret)
	if size > 0 {
		e.sel = e.sel.WithCaret(caret + ByteOffset(size))
		e.preferredCol = e.caretColLocked()
	}
}

// MoveUp moves the caret one visual row up, steering toward the
// preferred column. On the first content row it jumps to the start of
// the document. The preferred column is left alone so a run of
// vertical moves keeps aiming at the same column.
func (e *Editor) MoveUp(extend bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepareMotionLocked(extend)

	row, _ := e.vmap.PositionFor(e.buf, e.sel.Caret())
	first := e.vmap.FirstContentRow()
	if row > first {
		e.sel = e.sel.WithCaret(e.vmap.OffsetAt(e.buf, row-1, e.preferredCol))
	} else if row == first && e.buf.Len() > 0 {
		e.sel = e.sel.WithCaret(0)
	}
}

// MoveDown moves the caret one visual row down, steering toward the
// preferred column.
func (e *Editor) MoveDown(extend bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepareMotionLocked(extend)

	row, _ := e.vmap.PositionFor(e.buf, e.sel.Caret())
	if row < e.vmap.LastContentRow(e.buf) {
		e.sel = e.sel.WithCaret(e.vmap.OffsetAt(e.buf, row+1, e.preferredCol))
	}
}

// MoveLineStart moves the caret to the start of its logical line.
func (e *Editor) MoveLineStart(extend bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepareMotionLocked(extend)

	line := e.buf.ByteToLine(e.sel.Caret())
	e.sel = e.sel.WithCaret(e.buf.LineStart(line))
	e.preferredCol = e.caretColLocked()
}

// MoveLineEnd moves the caret to the end of its logical line, before
// the newline.
func (e *Editor) MoveLineEnd(extend bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepareMotionLocked(extend)

	line := e.buf.ByteToLine(e.sel.Caret())
	e.sel = e.sel.WithCaret(e.buf.LineEnd(line))
	e.preferredCol = e.caretColLocked()
}

// MoveDocStart moves the caret to the start of the document.
func (e *Editor) MoveDocStart(extend bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepareMotionLocked(extend)

	e.sel = e.sel.WithCaret(0)
	e.preferredCol = e.caretColLocked()
}

// MoveDocEnd moves the caret to the end of the document.
func (e *Editor) MoveDocEnd(extend bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepareMotionLocked(extend)

	e.sel = e.sel.WithCaret(e.buf.Len())
	e.preferredCol = e.caretColLocked()
}

// SelectAll selects the whole document, leaving the caret at the end.
func (e *Editor) SelectAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel = cursor.Anchored(0, e.buf.Len())
}

// ============================================================================
// Mouse
// ============================================================================

// Click places the caret at a visual position. A plain click clears
// the selection and re-anchors at the new caret so a following drag
// can select; a shift click extends the selection from the current
// caret. Clicks on virtual padding rows collapse the selection without
// moving the caret.
func (e *Editor) Click(row, col int, shift bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, ok := e.vmap.RowAt(e.buf, row)
	if !ok {
		if !shift {
			caret := e.sel.Caret()
			e.sel = cursor.Anchored(caret, caret)
		}
		return
	}

	actual := col
	if r.Continuation && actual < r.Indent {
		actual = r.Indent
	}
	pos := e.vmap.OffsetAt(e.buf, row, actual)

	if shift {
		e.sel = e.sel.Extend(pos)
	} else {
		e.sel = cursor.Anchored(pos, pos)
	}
	e.preferredCol = actual
}

// Drag moves the caret during a mouse drag, keeping the anchor planted
// by the initiating click. Positions outside the content rows are
// ignored.
func (e *Editor) Drag(row, col int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, ok := e.vmap.RowAt(e.buf, row)
	if !ok {
		return
	}

	actual := col
	if r.Continuation && actual < r.Indent {
		actual = r.Indent
	}
	e.sel = e.sel.WithCaret(e.vmap.OffsetAt(e.buf, row, actual))
	e.preferredCol = actual
}
