package engine

import (
	"github.com/ThymeKeeper/texteditor/internal/engine/cursor"
	"github.com/ThymeKeeper/texteditor/internal/engine/history"
)

// ============================================================================
// Editing
// ============================================================================

// InsertChar inserts a single rune at the caret, replacing any
// selection.
func (e *Editor) InsertChar(r rune) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.insertTextLocked(string(r))
}

// InsertNewline inserts a line break at the caret, replacing any
// selection.
func (e *Editor) InsertNewline() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.insertTextLocked("\n")
}

// Paste inserts text at the caret as a single undoable operation,
// replacing any selection. Empty text is a no-op.
func (e *Editor) Paste(text string) {
	if text == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.insertTextLocked(text)
}

// insertTextLocked replaces the selection with text and records one op.
func (e *Editor) insertTextLocked(text string) {
	e.deleteSelectionLocked()

	pos := e.sel.Caret()
	end := e.buf.Insert(pos, text)
	e.sel = cursor.At(end)
	e.recordLocked(history.Insert(pos, text), pos, end)
	e.preferredCol = e.caretColLocked()
}

// Backspace removes the selection, or the rune before the caret.
func (e *Editor) Backspace() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleteSelectionLocked() {
		return
	}

	caret := e.sel.Caret()
	_, size := e.buf.RuneBefore(caret)
	if size == 0 {
		return
	}
	start := caret - ByteOffset(size)
	text := e.buf.Remove(start, caret)
	e.sel = cursor.At(start)
	e.recordLocked(history.Delete(start, text), caret, start)
}

// Delete removes the selection, or the rune after the caret.
func (e *Editor) Delete() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleteSelectionLocked() {
		return
	}

	caret := e.sel.Caret()
	_, size := e.buf.RuneAt(caret)
	if size == 0 {
		return
	}
	text := e.buf.Remove(caret, caret+ByteOffset(size))
	e.recordLocked(history.Delete(caret, text), caret, caret)
}

// DeleteSelection removes the selected text. It reports whether the
// buffer changed.
func (e *Editor) DeleteSelection() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deleteSelectionLocked()
}

// deleteSelectionLocked removes the selected region and collapses the
// caret to its start. An empty anchor left behind by a click is
// dropped without touching the buffer.
func (e *Editor) deleteSelectionLocked() bool {
	rng, ok := e.sel.Range()
	if !ok {
		return false
	}
	if rng.Start >= rng.End {
		e.sel = e.sel.Drop()
		return false
	}

	caretBefore := e.sel.Caret()
	text := e.buf.Remove(rng.Start, rng.End)
	e.sel = cursor.At(rng.Start)
	e.recordLocked(history.Delete(rng.Start, text), caretBefore, rng.Start)
	return true
}

// Copy returns the selected text. It reports false when nothing is
// selected.
func (e *Editor) Copy() (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	rng, ok := e.sel.Range()
	if !ok || rng.Start >= rng.End {
		return "", false
	}
	return e.buf.Slice(rng.Start, rng.End), true
}

// Cut removes the selected text and returns it. It reports false when
// nothing is selected.
func (e *Editor) Cut() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rng, ok := e.sel.Range()
	if !ok || rng.Start >= rng.End {
		return "", false
	}
	text := e.buf.Slice(rng.Start, rng.End)
	e.deleteSelectionLocked()
	return text, true
}

// ============================================================================
// Indentation
// ============================================================================

// Indent inserts one indent unit at the start of every line touched by
// the selection, or of the caret's line when nothing is selected. The
// whole command is bracketed by undo boundaries so it never coalesces
// with surrounding typing.
func (e *Editor) Indent() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.hist.Finalize()
	defer e.hist.Finalize()

	unit := e.indentUnit
	width := ByteOffset(len(unit))

	if rng, ok := e.sel.Range(); ok {
		startLine := e.buf.ByteToLine(rng.Start)
		endLine := e.buf.ByteToLine(rng.End)

		caretBefore := e.sel.Caret()
		anchor, _ := e.sel.Anchor()

		// Bottom-up so earlier line starts stay valid.
		var caretAdj, anchorAdj ByteOffset
		var ops []history.Op
		for line := endLine; ; line-- {
			ls := e.buf.LineStart(line)
			e.buf.Insert(ls, unit)
			if caretBefore >= ls {
				caretAdj += width
			}
			if anchor >= ls {
				anchorAdj += width
			}
			ops = append(ops, history.Insert(ls, unit))
			if line == startLine {
				break
			}
		}

		caret := caretBefore + caretAdj
		e.sel = cursor.Anchored(anchor+anchorAdj, caret)
		for _, op := range ops {
			e.recordLocked(op, caretBefore, caret)
		}
		e.preferredCol = e.caretColLocked()
		return
	}

	caretBefore := e.sel.Caret()
	ls := e.buf.LineStart(e.buf.ByteToLine(caretBefore))
	e.buf.Insert(ls, unit)
	caret := caretBefore + width
	e.sel = cursor.At(caret)
	e.recordLocked(history.Insert(ls, unit), caretBefore, caret)
	e.preferredCol = e.caretColLocked()
}

// Dedent removes up to one indent unit of leading spaces from every
// line touched by the selection, or from the caret's line when nothing
// is selected.
func (e *Editor) Dedent() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.hist.Finalize()
	defer e.hist.Finalize()

	max := len(e.indentUnit)

	if rng, ok := e.sel.Range(); ok {
		startLine := e.buf.ByteToLine(rng.Start)
		endLine := e.buf.ByteToLine(rng.End)

		caretBefore := e.sel.Caret()
		anchor, _ := e.sel.Anchor()

		var caretAdj, anchorAdj ByteOffset
		var ops []history.Op
		for line := endLine; ; line-- {
			spaces := leadingSpaces(e.buf.LineText(line), max)
			if spaces > 0 {
				ls := e.buf.LineStart(line)
				w := ByteOffset(spaces)
				removed := e.buf.Remove(ls, ls+w)
				caretAdj += dedentShift(caretBefore, ls, w)
				anchorAdj += dedentShift(anchor, ls, w)
				ops = append(ops, history.Delete(ls, removed))
			}
			if line == startLine {
				break
			}
		}

		caret := caretBefore - caretAdj
		e.sel = cursor.Anchored(anchor-anchorAdj, caret)
		for _, op := range ops {
			e.recordLocked(op, caretBefore, caret)
		}
		e.preferredCol = e.caretColLocked()
		return
	}

	caretBefore := e.sel.Caret()
	line := e.buf.ByteToLine(caretBefore)
	spaces := leadingSpaces(e.buf.LineText(line), max)
	if spaces == 0 {
		return
	}
	ls := e.buf.LineStart(line)
	w := ByteOffset(spaces)
	removed := e.buf.Remove(ls, ls+w)
	caret := caretBefore - dedentShift(caretBefore, ls, w)
	e.sel = cursor.At(caret)
	e.recordLocked(history.Delete(ls, removed), caretBefore, caret)
	e.preferredCol = e.caretColLocked()
}

// dedentShift is how far a position moves left when w bytes of leading
// space are removed at lineStart. Positions inside the removed run
// shift only as far as the line start.
func dedentShift(pos, lineStart, w ByteOffset) ByteOffset {
	if pos <= lineStart {
		return 0
	}
	if pos >= lineStart+w {
		return w
	}
	return pos - lineStart
}

// leadingSpaces counts spaces at the start of line, up to max.
func leadingSpaces(line string, max int) int {
	n := 0
	for _, r := range line {
		if r != ' ' || n == max {
			break
		}
		n++
	}
	return n
}

// ============================================================================
// Undo/redo
// ============================================================================

// Undo reverses the most recent edit group and restores the caret
// recorded before it. It reports whether anything was undone.
func (e *Editor) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	caret, err := e.hist.Undo(e.buf)
	if err != nil {
		return false
	}
	if max := e.buf.Len(); caret > max {
		caret = max
	}
	e.sel = cursor.At(caret)
	e.modified = e.hist.CanUndo()
	return true
}

// Redo reapplies the most recently undone edit group. It reports
// whether anything was redone.
func (e *Editor) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	caret, err := e.hist.Redo(e.buf)
	if err != nil {
		return false
	}
	if max := e.buf.Len(); caret > max {
		caret = max
	}
	e.sel = cursor.At(caret)
	e.modified = true
	return true
}

// CanUndo reports whether an undo group is available.
func (e *Editor) CanUndo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hist.CanUndo()
}

// CanRedo reports whether a redo group is available.
func (e *Editor) CanRedo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hist.CanRedo()
}
