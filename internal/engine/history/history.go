// Package history provides time-coalesced undo and redo for buffer edits.
//
// Edits recorded in quick succession collapse into a single undo group;
// a pause longer than the coalescing window, or an explicit Finalize,
// starts a new group. Undo replays a group's inverted ops in reverse
// order, redo replays them forward, and either direction restores the
// caret recorded on the group boundary.
package history

import (
	"errors"
	"sync"
	"time"

	"github.com/ThymeKeeper/texteditor/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

const (
	// DefaultMaxEntries bounds the undo stack.
	DefaultMaxEntries = 1000

	// DefaultCoalesceWindow is the pause that separates undo groups.
	DefaultCoalesceWindow = time.Second
)

// recorded is an op plus the caret on either side of it.
type recorded struct {
	op          Op
	caretBefore ByteOffset
	caretAfter  ByteOffset
}

// group is one undo unit: a run of ops applied close together in time.
type group struct {
	ops []recorded
}

// caretBefore is the caret to restore after undoing the whole group.
func (g *group) caretBefore() ByteOffset {
	return g.ops[0].caretBefore
}

// caretAfter is the caret to restore after redoing the whole group.
func (g *group) caretAfter() ByteOffset {
	return g.ops[len(g.ops)-1].caretAfter
}

// History manages undo/redo state for a buffer.
//
// Ops are recorded after the caller has already applied them to the
// buffer; Undo and Redo apply the stored ops themselves and return the
// caret position to restore.
type History struct {
	mu sync.Mutex

	undoStack []*group
	redoStack []*group

	// current accumulates ops until the coalescing window lapses or a
	// Finalize call closes it.
	current  *group
	lastEdit time.Time

	maxEntries int
	window     time.Duration
	now        func() time.Time
}

// New creates a history manager.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
		window:     DefaultCoalesceWindow,
		now:        time.Now,
	}
}

// SetWindow sets the coalescing window. Non-positive durations are
// ignored.
func (h *History) SetWindow(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if d > 0 {
		h.window = d
	}
}

// Record adds an op that has already been applied to the buffer.
// caretBefore and caretAfter are the caret positions around the op.
// Recording always clears the redo stack.
func (h *History) Record(op Op, caretBefore, caretAfter ByteOffset) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	fresh := h.lastEdit.IsZero() || now.Sub(h.lastEdit) > h.window

	if fresh {
		h.flushLocked()
	}
	if h.current == nil {
		h.current = &group{}
	}
	h.current.ops = append(h.current.ops, recorded{op: op, caretBefore: caretBefore, caretAfter: caretAfter})

	h.redoStack = nil
	h.lastEdit = now
}

// Finalize closes the in-progress group so the next recorded op starts
// a new undo unit regardless of timing.
func (h *History) Finalize() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.flushLocked()
	h.lastEdit = time.Time{}
}

// flushLocked moves the in-progress group onto the undo stack.
func (h *History) flushLocked() {
	if h.current == nil {
		return
	}
	if len(h.current.ops) > 0 {
		h.undoStack = append(h.undoStack, h.current)
		if len(h.undoStack) > h.maxEntries {
			excess := len(h.undoStack) - h.maxEntries
			h.undoStack = h.undoStack[excess:]
		}
	}
	h.current = nil
}

// Undo reverses the most recent group against the buffer and returns
// the caret position recorded before the group's first op.
func (h *History) Undo(buf *buffer.Buffer) (ByteOffset, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.flushLocked()
	h.lastEdit = time.Time{}

	if len(h.undoStack) == 0 {
		return 0, ErrNothingToUndo
	}
	g := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	for i := len(g.ops) - 1; i >= 0; i-- {
		g.ops[i].op.Invert().Apply(buf)
	}

	h.redoStack = append(h.redoStack, g)
	return g.caretBefore(), nil
}

// Redo reapplies the most recently undone group and returns the caret
// position recorded after the group's last op.
func (h *History) Redo(buf *buffer.Buffer) (ByteOffset, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastEdit = time.Time{}

	if len(h.redoStack) == 0 {
		return 0, ErrNothingToRedo
	}
	g := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	for _, rec := range g.ops {
		rec.op.Apply(buf)
	}

	h.undoStack = append(h.undoStack, g)
	return g.caretAfter(), nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0 || (h.current != nil && len(h.current.ops) > 0)
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo groups available, counting the
// in-progress group.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.undoStack)
	if h.current != nil && len(h.current.ops) > 0 {
		n++
	}
	return n
}

// RedoCount returns the number of redo groups available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.current = nil
	h.lastEdit = time.Time{}
}
