package layout

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/ThymeKeeper/texteditor/internal/engine/buffer"
)

// PositionFor maps a byte offset to its visual (row, col). A position
// at the end of a row that continues onto the next row resolves to the
// start of the continuation row, so the caret lands where the next
// typed rune will appear. Offsets not covered by any row, such as
// spaces consumed by a wrap break, resolve to the last content row at
// column zero.
func (m *Map) PositionFor(buf *buffer.Buffer, offset ByteOffset) (row, col int) {
	m.ensure(buf)

	for i := range m.rows {
		r := &m.rows[i]

		if offset == r.End && i+1 < len(m.rows) {
			next := &m.rows[i+1]
			if next.Continuation && next.Start == r.End {
				return m.virtual + i + 1, next.Indent
			}
		}

		if offset >= r.Start && offset <= r.End {
			return m.virtual + i, r.Indent + Width(buf.Slice(r.Start, offset))
		}
	}

	if len(m.rows) > 0 {
		return m.virtual + len(m.rows) - 1, 0
	}
	return m.virtual, 0
}

// OffsetAt maps a visual (row, col) back to a byte offset. Virtual
// padding rows and out-of-range rows map to the end of the buffer. A
// column inside a continuation row's indent maps to the row start, and
// a column past the end of a row maps to the row end.
func (m *Map) OffsetAt(buf *buffer.Buffer, row, col int) ByteOffset {
	m.ensure(buf)

	i := row - m.virtual
	if i < 0 || i >= len(m.rows) {
		return buf.Len()
	}
	r := m.rows[i]

	if r.Continuation && col < r.Indent {
		return r.Start
	}
	adjusted := col - r.Indent
	if adjusted < 0 {
		adjusted = 0
	}

	w := 0
	off := r.Start
	for _, ch := range buf.Slice(r.Start, r.End) {
		if w >= adjusted {
			break
		}
		w += runewidth.RuneWidth(ch)
		off += ByteOffset(utf8.RuneLen(ch))
	}
	return off
}
