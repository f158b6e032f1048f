// Package engine provides the text editing core behind the terminal UI.
//
// The Editor facade combines the document buffer, the selection, the
// undo history, the search state, and the visual row map into one
// thread-safe API. Callers interact with it through an operation
// vocabulary that mirrors what a user does at the keyboard: insert a
// character, delete backward, move with or without extending the
// selection, indent the selected lines, undo, search, replace.
//
// # Structure
//
// The engine is built from focused subpackages:
//
//   - rope: immutable chunked storage with O(log n) conversions
//   - buffer: the document layer (revisions, snapshots, line access)
//   - cursor: the Selection value type (caret plus optional anchor)
//   - history: time-coalesced undo/redo groups
//   - search: literal match scanning and navigation state
//
// The facade also owns a layout.Map so caret motion can work in visual
// rows: vertical movement, mouse placement, and the preferred column
// all operate on the wrapped view of the document rather than logical
// lines.
//
// # Editing model
//
// Every mutation flows through the buffer and is recorded as an
// invertible operation in the history. Consecutive edits within the
// coalescing window undo as one step; replace operations close the
// open group around themselves so they always undo atomically.
//
// Motion operations take an extend flag. Extending plants the anchor
// at the caret if none is set; plain motion clears the selection, and
// plain left/right collapse a selection to its near edge instead of
// moving. The caret's preferred column is remembered across vertical
// movement so the caret tracks the same display column through short
// rows.
//
// # Concurrency
//
// All Editor methods are safe for concurrent use. The expected setup
// is still a single event loop driving the editor; the lock exists so
// background readers (status updates, periodic saves) never observe a
// half-applied edit.
//
// # Example
//
//	ed := engine.New(engine.WithContent("hello world"))
//	ed.SetViewWidth(80)
//	ed.MoveDocEnd(false)
//	ed.InsertChar('!')
//	if ed.Undo() {
//	    // "hello world" again
//	}
package engine
