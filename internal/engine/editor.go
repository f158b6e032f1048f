package engine

import (
	"strings"
	"sync"
	"time"

	"github.com/ThymeKeeper/texteditor/internal/engine/buffer"
	"github.com/ThymeKeeper/texteditor/internal/engine/cursor"
	"github.com/ThymeKeeper/texteditor/internal/engine/history"
	"github.com/ThymeKeeper/texteditor/internal/engine/search"
	"github.com/ThymeKeeper/texteditor/internal/renderer/layout"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Range is a byte range in the buffer.
	Range = buffer.Range

	// Selection is a caret with an optional anchor.
	Selection = cursor.Selection

	// Match is a matched byte range from a search.
	Match = search.Match

	// Row is a visual row of the wrapped document.
	Row = layout.Row
)

// NoName is the display name of a document without a file name.
const NoName = "[No Name]"

// Editor is the facade over the editing core. It owns the buffer, the
// selection, the undo history, the search state, and the visual row
// map, and exposes the operation vocabulary the UI drives.
//
// All methods are safe for concurrent use.
type Editor struct {
	mu sync.RWMutex

	buf    *buffer.Buffer
	sel    cursor.Selection
	hist   *history.History
	finder *search.State
	vmap   *layout.Map

	// preferredCol is the display column vertical motion steers toward.
	preferredCol int

	modified bool
	fileName string

	indentUnit string

	// Configuration captured by options.
	tabWidth       int
	maxUndoEntries int
	coalesceWindow time.Duration
	initContent    string
	initWrap       bool
}

// New creates an editor with the given options.
func New(opts ...Option) *Editor {
	e := &Editor{
		tabWidth:       DefaultTabWidth,
		maxUndoEntries: DefaultMaxUndoEntries,
		initWrap:       true,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.initContent != "" {
		e.buf = buffer.FromString(e.initContent)
	} else {
		e.buf = buffer.New()
	}
	e.sel = cursor.At(0)
	e.hist = history.New(e.maxUndoEntries)
	if e.coalesceWindow > 0 {
		e.hist.SetWindow(e.coalesceWindow)
	}
	e.finder = search.NewState()
	e.vmap = layout.New()
	e.vmap.SetWrap(e.initWrap)
	e.indentUnit = strings.Repeat(" ", e.tabWidth)

	return e
}

// ============================================================================
// Document access
// ============================================================================

// Text returns the full document content.
func (e *Editor) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// Slice returns the text in [start, end).
func (e *Editor) Slice(start, end ByteOffset) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Slice(start, end)
}

// Len returns the document length in bytes.
func (e *Editor) Len() ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Len()
}

// LineCount returns the number of logical lines.
func (e *Editor) LineCount() uint32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineCount()
}

// Caret returns the caret byte offset.
func (e *Editor) Caret() ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel.Caret()
}

// Selection returns the current selection value.
func (e *Editor) Selection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel
}

// SelectionRange returns the normalized selection range. The range may
// be empty when the anchor sits on the caret.
func (e *Editor) SelectionRange() (Range, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel.Range()
}

// SelectedChars returns the number of characters inside the selection.
// It reports false when no selection exists.
func (e *Editor) SelectedChars() (int64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	rng, ok := e.sel.Range()
	if !ok {
		return 0, false
	}
	return e.buf.ByteToChar(rng.End) - e.buf.ByteToChar(rng.Start), true
}

// Position returns the caret's 1-based line and character column.
func (e *Editor) Position() (line, col int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	caret := e.sel.Caret()
	ln := e.buf.ByteToLine(caret)
	startChar := e.buf.ByteToChar(e.buf.LineStart(ln))
	return int(ln) + 1, int(e.buf.ByteToChar(caret)-startChar) + 1
}

// Modified reports whether the document has unsaved changes.
func (e *Editor) Modified() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.modified
}

// MarkSaved clears the modified flag after a successful save.
func (e *Editor) MarkSaved() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modified = false
}

// SetFileName sets the display file name, normally the base name of
// the backing file.
func (e *Editor) SetFileName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fileName = name
}

// FileName returns the display file name, empty for a new document.
func (e *Editor) FileName() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fileName
}

// DisplayName returns the file name or the no-name placeholder, with a
// trailing "*" when the document is modified.
func (e *Editor) DisplayName() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	name := e.fileName
	if name == "" {
		name = NoName
	}
	if e.modified {
		return name + "*"
	}
	return name
}

// SetText replaces the whole document and resets editing state: the
// caret returns to the start, the selection, history, and search state
// clear, and the document counts as unmodified.
func (e *Editor) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buf.SetText(text)
	e.sel = cursor.At(0)
	e.preferredCol = 0
	e.modified = false
	e.hist.Clear()
	e.finder.Clear()
}

// ============================================================================
// Visual queries
// ============================================================================

// SetViewWidth sets the column width used for wrapping.
func (e *Editor) SetViewWidth(w int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vmap.SetWidth(w)
}

// ViewWidth returns the column width used for wrapping.
func (e *Editor) ViewWidth() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vmap.Width()
}

// Wrap reports whether word wrap is on.
func (e *Editor) Wrap() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vmap.Wrap()
}

// SetWrap switches word wrap on or off.
func (e *Editor) SetWrap(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vmap.SetWrap(on)
}

// ToggleWrap flips word wrap and returns the new state.
func (e *Editor) ToggleWrap() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	on := !e.vmap.Wrap()
	e.vmap.SetWrap(on)
	return on
}

// SetTabWidth sets the number of spaces per indent level.
func (e *Editor) SetTabWidth(width int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if width < 1 {
		width = 1
	}
	e.tabWidth = width
	e.indentUnit = strings.Repeat(" ", width)
}

// SetCoalesceWindow sets the pause that separates undo groups.
func (e *Editor) SetCoalesceWindow(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d > 0 {
		e.hist.SetWindow(d)
	}
}

// TotalRows returns the visual row count including virtual padding.
func (e *Editor) TotalRows() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vmap.TotalRows(e.buf)
}

// VirtualRows returns the number of padding rows above the document.
func (e *Editor) VirtualRows() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vmap.VirtualRows()
}

// LastContentRow returns the absolute index of the last content row.
func (e *Editor) LastContentRow() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vmap.LastContentRow(e.buf)
}

// RowAt returns the content row at an absolute row index, reporting
// false for virtual padding rows.
func (e *Editor) RowAt(row int) (Row, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vmap.RowAt(e.buf, row)
}

// CaretPosition returns the caret's visual (row, col).
func (e *Editor) CaretPosition() (row, col int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vmap.PositionFor(e.buf, e.sel.Caret())
}

// PositionFor maps a byte offset to its visual (row, col).
func (e *Editor) PositionFor(offset ByteOffset) (row, col int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vmap.PositionFor(e.buf, offset)
}

// OffsetAt maps a visual (row, col) to a byte offset.
func (e *Editor) OffsetAt(row, col int) ByteOffset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vmap.OffsetAt(e.buf, row, col)
}

// caretColLocked returns the caret's visual column.
func (e *Editor) caretColLocked() int {
	_, col := e.vmap.PositionFor(e.buf, e.sel.Caret())
	return col
}

// recordLocked pushes an applied op into the history and marks the
// document modified.
func (e *Editor) recordLocked(op history.Op, caretBefore, caretAfter ByteOffset) {
	e.hist.Record(op, caretBefore, caretAfter)
	e.modified = true
}
