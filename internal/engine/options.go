package engine

import (
	"time"

	"github.com/ThymeKeeper/texteditor/internal/engine/history"
)

// Default configuration values.
const (
	// DefaultTabWidth is the number of spaces one indent level inserts.
	DefaultTabWidth = 4

	// DefaultMaxUndoEntries caps the undo stack.
	DefaultMaxUndoEntries = history.DefaultMaxEntries
)

// Option configures an Editor.
type Option func(*Editor)

// WithContent sets the initial document text.
func WithContent(text string) Option {
	return func(e *Editor) {
		e.initContent = text
	}
}

// WithTabWidth sets the indent width in spaces. Values below 1 fall
// back to the default.
func WithTabWidth(width int) Option {
	return func(e *Editor) {
		if width >= 1 {
			e.tabWidth = width
		}
	}
}

// WithMaxUndoEntries caps the number of undo groups kept.
func WithMaxUndoEntries(max int) Option {
	return func(e *Editor) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithCoalesceWindow sets the pause that separates undo groups.
func WithCoalesceWindow(d time.Duration) Option {
	return func(e *Editor) {
		if d > 0 {
			e.coalesceWindow = d
		}
	}
}

// WithWrap sets the initial word-wrap mode.
func WithWrap(on bool) Option {
	return func(e *Editor) {
		e.initWrap = on
	}
}
