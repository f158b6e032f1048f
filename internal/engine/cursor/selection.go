// Package cursor tracks the caret and its optional selection anchor.
package cursor

import (
	"fmt"

	"github.com/ThymeKeeper/texteditor/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range.
type Range = buffer.Range

// Selection is the caret position plus an optional anchor. A selection
// exists exactly while the anchor is set; the selected region runs between
// the anchor and the caret and may be empty. Selection is an immutable
// value type: methods return modified copies.
type Selection struct {
	caret    ByteOffset
	anchor   ByteOffset
	anchored bool
}

// At returns a bare caret at the given offset, with no anchor.
func At(offset ByteOffset) Selection {
	return Selection{caret: offset}
}

// Anchored returns a selection from anchor to caret.
func Anchored(anchor, caret ByteOffset) Selection {
	return Selection{caret: caret, anchor: anchor, anchored: true}
}

// Caret returns the caret offset.
func (s Selection) Caret() ByteOffset {
	return s.caret
}

// Anchor returns the anchor offset and whether it is set.
func (s Selection) Anchor() (ByteOffset, bool) {
	return s.anchor, s.anchored
}

// HasAnchor reports whether an anchor is set, even if the selected
// region is empty.
func (s Selection) HasAnchor() bool {
	return s.anchored
}

// IsEmpty reports whether no region is selected: either the anchor is
// unset or it coincides with the caret.
func (s Selection) IsEmpty() bool {
	return !s.anchored || s.anchor == s.caret
}

// Range returns the selected region normalized to Start <= End, and
// whether an anchor is set. The range may be empty.
func (s Selection) Range() (Range, bool) {
	if !s.anchored {
		return Range{}, false
	}
	if s.anchor <= s.caret {
		return Range{Start: s.anchor, End: s.caret}, true
	}
	return Range{Start: s.caret, End: s.anchor}, true
}

// Len returns the length of the selected region in bytes.
func (s Selection) Len() ByteOffset {
	r, ok := s.Range()
	if !ok {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether the offset falls inside the selected region.
func (s Selection) Contains(offset ByteOffset) bool {
	r, ok := s.Range()
	return ok && offset >= r.Start && offset < r.End
}

// WithCaret moves the caret, preserving the anchor state.
func (s Selection) WithCaret(offset ByteOffset) Selection {
	s.caret = offset
	return s
}

// Extend moves the caret to offset, anchoring at the current caret
// first if no anchor is set.
func (s Selection) Extend(offset ByteOffset) Selection {
	if !s.anchored {
		s.anchor = s.caret
		s.anchored = true
	}
	s.caret = offset
	return s
}

// Drop clears the anchor, leaving the caret in place.
func (s Selection) Drop() Selection {
	s.anchored = false
	s.anchor = 0
	return s
}

// MoveTo moves the caret to offset. When extend is true the anchor is
// kept (or planted at the old caret); otherwise it is dropped.
func (s Selection) MoveTo(offset ByteOffset, extend bool) Selection {
	if extend {
		return s.Extend(offset)
	}
	return s.Drop().WithCaret(offset)
}

// Clamp limits caret and anchor to [0, max].
func (s Selection) Clamp(max ByteOffset) Selection {
	s.caret = clampOffset(s.caret, max)
	if s.anchored {
		s.anchor = clampOffset(s.anchor, max)
	}
	return s
}

func clampOffset(off, max ByteOffset) ByteOffset {
	if off < 0 {
		return 0
	}
	if off > max {
		return max
	}
	return off
}

// String returns a debug representation.
func (s Selection) String() string {
	if !s.anchored {
		return fmt.Sprintf("Caret(%d)", s.caret)
	}
	return fmt.Sprintf("Selection(%d..%d)", s.anchor, s.caret)
}
