package renderer

import (
	"fmt"
	"sort"

	"github.com/mattn/go-runewidth"

	"github.com/ThymeKeeper/texteditor/internal/engine"
	"github.com/ThymeKeeper/texteditor/internal/input"
	"github.com/ThymeKeeper/texteditor/internal/renderer/backend"
	"github.com/ThymeKeeper/texteditor/internal/renderer/viewport"
)

// View is everything a frame needs: the editor, the viewport tracking
// it, and the open prompt if any.
type View struct {
	Editor   *engine.Editor
	Viewport *viewport.Viewport
	Prompt   *input.Prompt
}

// EditorHeight returns the text area height for a terminal of the
// given height. The status line takes one row; an open find bar takes
// three more.
func EditorHeight(height int, findBarOpen bool) int {
	h := height - 1
	if findBarOpen {
		h -= FindBarHeight
	}
	if h < 0 {
		h = 0
	}
	return h
}

// Renderer paints frames onto a backend. Every Draw call repaints the
// whole screen; the backend diffs against what the terminal shows.
type Renderer struct {
	b     backend.Backend
	theme Theme
}

// New creates a renderer.
func New(b backend.Backend, theme Theme) *Renderer {
	return &Renderer{b: b, theme: theme}
}

// SetTheme swaps the theme, taking effect on the next Draw.
func (r *Renderer) SetTheme(theme Theme) {
	r.theme = theme
}

// Theme returns the current theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Draw paints a complete frame: text area, find bar, status line,
// dialogs, and the cursor.
func (r *Renderer) Draw(v View) {
	width, height := r.b.Size()
	if width <= 0 || height <= 0 {
		return
	}
	r.b.Clear()

	findBar := v.Prompt != nil && v.Prompt.Kind() == input.KindFindReplace
	edHeight := EditorHeight(height, findBar)

	r.drawEditor(v, width, edHeight)
	if findBar {
		r.drawFindBar(v.Prompt, width, height)
	}
	r.drawStatus(v, height-1, width, findBar)

	if v.Prompt != nil {
		switch v.Prompt.Kind() {
		case input.KindSaveAs:
			r.drawSaveAs(v.Prompt, width, height)
		case input.KindConfirmSave:
			r.drawConfirm(v.Prompt, width, height)
		}
	}

	r.placeCursor(v, width, height)
	r.b.SetCursorStyle(cursorStyle(v.Editor))
	r.b.Show()
}

// drawEditor paints the visible rows of the buffer.
func (r *Renderer) drawEditor(v View, width, height int) {
	ed, vp := v.Editor, v.Viewport
	sel, selOK := ed.SelectionRange()
	matches := ed.Matches()
	current, curOK := ed.CurrentMatch()
	hoff := vp.ColOffset()

	for y := 0; y < height; y++ {
		row, ok := ed.RowAt(vp.RowOffset() + y)
		if !ok {
			r.b.SetCell(0, y, backend.Cell{Rune: '~', Style: r.theme.Virtual})
			r.fill(1, y, width-1, r.theme.Text)
			continue
		}

		x := 0
		// Continuation indent is never highlighted.
		for i := 0; i < row.Indent && x < width; i++ {
			r.b.SetCell(x, y, backend.Cell{Rune: ' ', Style: r.theme.Text})
			x++
		}

		text := ed.Slice(row.Start, row.End)
		visual := 0
		for i, ch := range text {
			cw := runewidth.RuneWidth(ch)
			visual += cw
			// Runes wholly left of the horizontal scroll are skipped; a
			// rune straddling the edge is drawn in full.
			if visual <= hoff {
				continue
			}
			if x >= width {
				break
			}
			off := row.Start + engine.ByteOffset(i)
			r.b.SetCell(x, y, backend.Cell{
				Rune:  ch,
				Style: r.styleAt(off, sel, selOK, matches, current, curOK),
			})
			x += cw
		}
		r.fill(x, y, width-x, r.theme.Text)
	}
}

// styleAt resolves the style for one buffer position. The current
// match wins over other matches, which win over the selection.
func (r *Renderer) styleAt(off engine.ByteOffset, sel engine.Range, selOK bool, matches []engine.Match, current engine.Match, curOK bool) backend.Style {
	if curOK && off >= current.Start && off < current.End {
		return r.theme.CurrentMatch
	}
	if matchAt(matches, off) {
		return r.theme.Match
	}
	if selOK && off >= sel.Start && off < sel.End {
		return r.theme.Selection
	}
	return r.theme.Text
}

// matchAt reports whether off falls inside any match. Matches are
// sorted and non-overlapping.
func matchAt(matches []engine.Match, off engine.ByteOffset) bool {
	i := sort.Search(len(matches), func(i int) bool {
		return matches[i].End > off
	})
	return i < len(matches) && matches[i].Start <= off
}

// drawStatus paints the status line. With the find bar open the match
// summary is appended.
func (r *Renderer) drawStatus(v View, y, width int, findBar bool) {
	ed := v.Editor

	wrapLabel := "No-Wrap"
	if ed.Wrap() {
		wrapLabel = "Wrap"
	}
	line, col := ed.Position()
	selPart := ""
	if n, ok := ed.SelectedChars(); ok && n > 0 {
		selPart = fmt.Sprintf(" | %d chars selected", n)
	}

	status := fmt.Sprintf(" %s | %s | %d/%d:%d%s",
		ed.DisplayName(), wrapLabel, line, ed.LineCount(), col, selPart)
	if findBar {
		status += " | " + matchSummary(ed)
	}
	status += " "

	r.writeString(0, y, width, status, r.theme.Status)
}

// matchSummary formats the find bar's match counter.
func matchSummary(ed *engine.Editor) string {
	n := ed.MatchCount()
	if n == 0 {
		return "0 matches"
	}
	if i, ok := ed.CurrentMatchIndex(); ok {
		return fmt.Sprintf("%d/%d matches", i+1, n)
	}
	return fmt.Sprintf("%d matches", n)
}

// placeCursor positions the terminal cursor for the current state.
func (r *Renderer) placeCursor(v View, width, height int) {
	if v.Prompt == nil {
		r.editorCursor(v)
		return
	}
	switch v.Prompt.Kind() {
	case input.KindConfirmSave:
		r.b.HideCursor()
	case input.KindSaveAs:
		geo := DialogGeometry(width, height)
		pos := v.Prompt.Input().VisualCaret()
		if pos > geo.InnerW-1 {
			pos = geo.InnerW - 1
		}
		if pos < 0 {
			pos = 0
		}
		r.b.ShowCursor(geo.InnerX+pos, geo.InputY)
	case input.KindFindReplace:
		if v.Prompt.Focus() == input.FocusBuffer {
			r.editorCursor(v)
			return
		}
		geo := FindBarGeometry(width, height)
		x, w := geo.FindX, geo.FindW
		field := v.Prompt.Input()
		if v.Prompt.Focus() == input.FocusReplace {
			x, w = geo.ReplaceX, geo.ReplaceW
			field = v.Prompt.Replace()
		}
		pos := field.VisualCaret() - field.ScrollOffset()
		if pos > w-1 {
			pos = w - 1
		}
		if pos < 0 {
			pos = 0
		}
		r.b.ShowCursor(x+pos, geo.InputY)
	}
}

// editorCursor shows the cursor at the caret, or hides it when the
// caret is scrolled out of view.
func (r *Renderer) editorCursor(v View) {
	row, col := v.Editor.CaretPosition()
	if x, y, ok := v.Viewport.MapToScreen(row, col); ok {
		r.b.ShowCursor(x, y)
		return
	}
	r.b.HideCursor()
}

// cursorStyle picks the cursor shape: an underscore while a selection
// anchor is set, a block otherwise.
func cursorStyle(ed *engine.Editor) backend.CursorStyle {
	if _, ok := ed.SelectionRange(); ok {
		return backend.CursorUnderline
	}
	return backend.CursorBlock
}

// writeString draws s starting at (x, y), truncated to width cells,
// and pads the remainder with the same style.
func (r *Renderer) writeString(x, y, width int, s string, style backend.Style) {
	shown := 0
	for _, ch := range s {
		cw := runewidth.RuneWidth(ch)
		if shown+cw > width {
			break
		}
		r.b.SetCell(x+shown, y, backend.Cell{Rune: ch, Style: style})
		shown += cw
	}
	r.fill(x+shown, y, width-shown, style)
}

// fill paints n cells of background starting at (x, y).
func (r *Renderer) fill(x, y, n int, style backend.Style) {
	for i := 0; i < n; i++ {
		r.b.SetCell(x+i, y, backend.Cell{Rune: ' ', Style: style})
	}
}
