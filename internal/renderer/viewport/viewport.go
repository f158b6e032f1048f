// Package viewport tracks the visible window into the visual row map.
package viewport

// DefaultScrollOff is the number of rows kept visible around the caret
// while scrolling.
const DefaultScrollOff = 3

// WheelStep is the number of rows a mouse wheel tick scrolls.
const WheelStep = 3

// Viewport holds the scroll offsets and size of the text area. Row and
// column offsets are in visual map coordinates; the size is the area
// available for text, excluding the status line and any open prompt
// bar. It is not safe for concurrent use.
type Viewport struct {
	rowOffset int
	colOffset int

	width  int
	height int

	scrolloff int
}

// New returns a viewport with the default scroll margin.
func New(width, height int) *Viewport {
	v := &Viewport{scrolloff: DefaultScrollOff}
	v.Resize(width, height)
	return v
}

// Resize sets the text area size, clamped to at least one cell.
func (v *Viewport) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height
}

// Width returns the text area width in columns.
func (v *Viewport) Width() int {
	return v.width
}

// Height returns the text area height in rows.
func (v *Viewport) Height() int {
	return v.height
}

// RowOffset returns the first visible map row.
func (v *Viewport) RowOffset() int {
	return v.rowOffset
}

// ColOffset returns the first visible column.
func (v *Viewport) ColOffset() int {
	return v.colOffset
}

// SetScrollOff sets the scroll margin in rows.
func (v *Viewport) SetScrollOff(n int) {
	if n < 0 {
		n = 0
	}
	v.scrolloff = n
}

// ScrollOff returns the scroll margin.
func (v *Viewport) ScrollOff() int {
	return v.scrolloff
}

// Follow scrolls so the caret at (row, col) stays at least the scroll
// margin away from the view edges. Columns only scroll when wrap is
// off; with wrap on the column offset is pinned to zero.
func (v *Viewport) Follow(row, col int, wrap bool) {
	if row < v.rowOffset+v.scrolloff {
		v.rowOffset = row - v.scrolloff
	} else if row >= v.rowOffset+v.height-v.scrolloff {
		v.rowOffset = row + v.scrolloff + 1 - v.height
	}
	if v.rowOffset < 0 {
		v.rowOffset = 0
	}

	if wrap {
		v.colOffset = 0
		return
	}
	if col < v.colOffset+v.scrolloff {
		v.colOffset = col - v.scrolloff
	} else if col >= v.colOffset+v.width-v.scrolloff {
		v.colOffset = col + v.scrolloff + 1 - v.width
	}
	if v.colOffset < 0 {
		v.colOffset = 0
	}
}

// ScrollBy scrolls vertically by delta rows, clamped to [0, totalRows
// minus the view height] so the last row never scrolls above the
// bottom of the view.
func (v *Viewport) ScrollBy(delta, totalRows int) {
	off := v.rowOffset + delta
	if off < 0 {
		off = 0
	}
	max := totalRows - v.height
	if max < 0 {
		max = 0
	}
	if off > max {
		off = max
	}
	v.rowOffset = off
}

// ScreenToMap translates text-area coordinates to map coordinates.
func (v *Viewport) ScreenToMap(x, y int) (row, col int) {
	return v.rowOffset + y, v.colOffset + x
}

// MapToScreen translates map coordinates to text-area coordinates. It
// reports false when the position is outside the view.
func (v *Viewport) MapToScreen(row, col int) (x, y int, ok bool) {
	y = row - v.rowOffset
	x = col - v.colOffset
	if y < 0 || y >= v.height || x < 0 || x >= v.width {
		return 0, 0, false
	}
	return x, y, true
}
