// Package layout computes the visual row map for a document.
//
// A document is presented as a sequence of visual rows. With word wrap
// off each logical line is one row; with wrap on a line becomes one or
// more rows, broken at word boundaries to fit the view width, with
// continuation rows indented to align under the line's content. The
// map also reserves virtual padding rows above and below the document
// so the first and last lines can scroll toward the middle of the
// screen.
//
// Row indices are absolute: index 0 is the first virtual padding row
// and content begins at VirtualRows(). The map is rebuilt lazily
// whenever the buffer revision, view width, or wrap mode changes.
package layout

import (
	"github.com/ThymeKeeper/texteditor/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset.
type ByteOffset = buffer.ByteOffset

// DefaultVirtualRows is the number of padding rows kept above and
// below the document.
const DefaultVirtualRows = 2

// Row is a single visual row produced from one logical line.
type Row struct {
	Start ByteOffset // first byte of the row
	End   ByteOffset // end of the row, exclusive of any newline

	// Indent is the number of columns a continuation row is shifted
	// right. Zero for the first row of a line.
	Indent int

	// Continuation marks the second and later rows of a wrapped line.
	Continuation bool

	// Line is the 0-indexed logical line this row belongs to.
	Line uint32
}

// Map holds the visual rows for an entire document plus the virtual
// padding rows around it. It caches the computed rows and rebuilds
// them when the buffer revision, width, or wrap mode changes. It is
// not safe for concurrent use.
type Map struct {
	virtual int
	wrap    bool
	width   int

	rows  []Row
	valid bool

	builtRev   buffer.RevisionID
	builtWidth int
	builtWrap  bool
}

// New returns a map with wrap enabled and the default virtual padding.
func New() *Map {
	return &Map{
		virtual: DefaultVirtualRows,
		wrap:    true,
	}
}

// SetWrap switches word wrapping on or off.
func (m *Map) SetWrap(on bool) {
	m.wrap = on
}

// Wrap reports whether word wrapping is on.
func (m *Map) Wrap() bool {
	return m.wrap
}

// SetWidth sets the view width in columns used for wrapping.
func (m *Map) SetWidth(w int) {
	if w < 0 {
		w = 0
	}
	m.width = w
}

// Width returns the view width in columns.
func (m *Map) Width() int {
	return m.width
}

// VirtualRows returns the number of padding rows above the document.
// The same number is kept below it.
func (m *Map) VirtualRows() int {
	return m.virtual
}

// Invalidate forces a rebuild on the next query.
func (m *Map) Invalidate() {
	m.valid = false
}

// TotalRows returns the row count including virtual padding.
func (m *Map) TotalRows(buf *buffer.Buffer) int {
	m.ensure(buf)
	return len(m.rows) + 2*m.virtual
}

// FirstContentRow returns the index of the first content row.
func (m *Map) FirstContentRow() int {
	return m.virtual
}

// LastContentRow returns the index of the last content row.
func (m *Map) LastContentRow(buf *buffer.Buffer) int {
	m.ensure(buf)
	return m.virtual + len(m.rows) - 1
}

// RowAt returns the content row at an absolute index. It reports false
// for virtual padding rows and indices outside the map.
func (m *Map) RowAt(buf *buffer.Buffer, row int) (Row, bool) {
	m.ensure(buf)
	i := row - m.virtual
	if i < 0 || i >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[i], true
}

func (m *Map) ensure(buf *buffer.Buffer) {
	if m.valid && m.builtRev == buf.Revision() && m.builtWidth == m.width && m.builtWrap == m.wrap {
		return
	}
	m.rebuild(buf)
}

func (m *Map) rebuild(buf *buffer.Buffer) {
	m.rows = m.rows[:0]

	lines := buf.LineCount()
	for line := uint32(0); line < lines; line++ {
		start := buf.LineStart(line)

		if !m.wrap {
			m.rows = append(m.rows, Row{Start: start, End: buf.LineEnd(line), Line: line})
			continue
		}

		content := buf.LineText(line)
		if content == "" {
			m.rows = append(m.rows, Row{Start: start, End: start, Line: line})
			continue
		}

		indent := continuationIndent(content)
		for i, seg := range wrapLine(content, m.width, indent) {
			row := Row{
				Start: start + ByteOffset(seg.start),
				End:   start + ByteOffset(seg.end),
				Line:  line,
			}
			if i > 0 {
				row.Continuation = true
				row.Indent = indent
			}
			m.rows = append(m.rows, row)
		}
	}

	m.builtRev = buf.Revision()
	m.builtWidth = m.width
	m.builtWrap = m.wrap
	m.valid = true
}
