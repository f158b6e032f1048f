package input

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Field is a single-line text input. The caret and selection anchor are
// byte offsets into the text; the scroll offset is measured in display
// cells so wide runes window correctly.
type Field struct {
	text   string
	caret  int
	anchor int // -1 when no selection anchor is set
	scroll int
}

// NewField creates a field with the caret after the initial text.
func NewField(text string) Field {
	return Field{text: text, caret: len(text), anchor: -1}
}

// Text returns the field content.
func (f *Field) Text() string { return f.text }

// Caret returns the caret byte offset.
func (f *Field) Caret() int { return f.caret }

// ScrollOffset returns the horizontal scroll position in display cells.
func (f *Field) ScrollOffset() int { return f.scroll }

// Selection returns the normalized selection range. ok is true whenever
// an anchor is set, even if the range is empty.
func (f *Field) Selection() (start, end int, ok bool) {
	if f.anchor < 0 {
		return 0, 0, false
	}
	if f.anchor <= f.caret {
		return f.anchor, f.caret, true
	}
	return f.caret, f.anchor, true
}

// SelectedText returns the selected text. ok is false for an empty
// selection.
func (f *Field) SelectedText() (string, bool) {
	start, end, ok := f.Selection()
	if !ok || start >= end {
		return "", false
	}
	return f.text[start:end], true
}

// InsertRune inserts r at the caret, replacing any selection.
func (f *Field) InsertRune(r rune) {
	f.InsertText(string(r))
}

// InsertText inserts s at the caret, replacing any selection.
func (f *Field) InsertText(s string) {
	f.deleteSelection()
	f.text = f.text[:f.caret] + s + f.text[f.caret:]
	f.caret += len(s)
}

// Backspace removes the selection if one exists, otherwise the rune
// before the caret.
func (f *Field) Backspace() {
	if f.deleteSelection() {
		return
	}
	if f.caret > 0 {
		_, size := utf8.DecodeLastRuneInString(f.text[:f.caret])
		f.text = f.text[:f.caret-size] + f.text[f.caret:]
		f.caret -= size
	}
}

// Delete removes the selection if one exists, otherwise the rune after
// the caret.
func (f *Field) Delete() {
	if f.deleteSelection() {
		return
	}
	if f.caret < len(f.text) {
		_, size := utf8.DecodeRuneInString(f.text[f.caret:])
		f.text = f.text[:f.caret] + f.text[f.caret+size:]
	}
}

// DeleteSelection removes the selected text and reports whether
// anything was removed.
func (f *Field) DeleteSelection() bool {
	return f.deleteSelection()
}

// deleteSelection removes the selected range. An empty anchor is
// dropped without removing anything so a stale click anchor cannot
// swallow the next typed rune.
func (f *Field) deleteSelection() bool {
	start, end, ok := f.Selection()
	if !ok {
		return false
	}
	if start >= end {
		f.anchor = -1
		return false
	}
	f.text = f.text[:start] + f.text[end:]
	f.caret = start
	f.anchor = -1
	return true
}

// Left moves the caret one rune left. Without extend an active
// selection collapses to its start instead.
func (f *Field) Left(extend bool) {
	if !extend {
		if f.anchor >= 0 {
			start, _, _ := f.Selection()
			f.caret = start
			f.anchor = -1
			return
		}
	} else if f.anchor < 0 {
		f.anchor = f.caret
	}
	if f.caret > 0 {
		_, size := utf8.DecodeLastRuneInString(f.text[:f.caret])
		f.caret -= size
	}
}

// Right moves the caret one rune right. Without extend an active
// selection collapses to its end instead.
func (f *Field) Right(extend bool) {
	if !extend {
		if f.anchor >= 0 {
			_, end, _ := f.Selection()
			f.caret = end
			f.anchor = -1
			return
		}
	} else if f.anchor < 0 {
		f.anchor = f.caret
	}
	if f.caret < len(f.text) {
		_, size := utf8.DecodeRuneInString(f.text[f.caret:])
		f.caret += size
	}
}

// Home moves the caret to the start of the field.
func (f *Field) Home(extend bool) {
	if extend {
		if f.anchor < 0 {
			f.anchor = f.caret
		}
	} else {
		f.anchor = -1
	}
	f.caret = 0
}

// End moves the caret to the end of the field.
func (f *Field) End(extend bool) {
	if extend {
		if f.anchor < 0 {
			f.anchor = f.caret
		}
	} else {
		f.anchor = -1
	}
	f.caret = len(f.text)
}

// SelectAll selects the whole field.
func (f *Field) SelectAll() {
	f.anchor = 0
	f.caret = len(f.text)
}

// Click places the caret at the given display column. Without shift the
// click also plants the anchor so a following drag extends from here.
func (f *Field) Click(col int, shift bool) {
	pos := f.byteAtCol(col)
	if shift {
		if f.anchor < 0 {
			f.anchor = f.caret
		}
		f.caret = pos
	} else {
		f.caret = pos
		f.anchor = pos
	}
}

// Drag moves the caret to the given display column, keeping the anchor.
func (f *Field) Drag(col int) {
	f.caret = f.byteAtCol(col)
}

// byteAtCol maps a display column to a byte offset. Columns past the
// text map to the end.
func (f *Field) byteAtCol(col int) int {
	visual := 0
	for i, r := range f.text {
		if visual >= col {
			return i
		}
		visual += runewidth.RuneWidth(r)
	}
	return len(f.text)
}

// VisualCaret returns the caret position in display cells.
func (f *Field) VisualCaret() int {
	return runewidth.StringWidth(f.text[:f.caret])
}

// Follow adjusts the scroll offset so the caret stays inside a window
// of the given width.
func (f *Field) Follow(width int) {
	if width <= 0 {
		return
	}
	v := f.VisualCaret()
	if v < f.scroll {
		f.scroll = v
	} else if v >= f.scroll+width {
		f.scroll = v - width + 1
	}
}
