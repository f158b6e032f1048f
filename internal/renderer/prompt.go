package renderer

import (
	"github.com/mattn/go-runewidth"

	"github.com/ThymeKeeper/texteditor/internal/input"
	"github.com/ThymeKeeper/texteditor/internal/renderer/backend"
)

// FindBarHeight is the number of rows the find/replace bar occupies
// above the status line.
const FindBarHeight = 3

const (
	findBarTitle = " Find/Replace (Tab to switch focus) "
	findLabel    = "Find: "
	replaceLabel = "Replace: "
	labelWidth   = 10
	saveAsTitle  = "Save As"
	confirmTitle = "Unsaved Changes"
)

// FindBarLayout is the screen geometry of the find bar. The app uses
// it to route mouse clicks to the fields.
type FindBarLayout struct {
	Top    int // top border row
	InputY int // row holding both fields

	FindX, FindW       int
	ReplaceX, ReplaceW int
}

// FindBarGeometry computes the find bar layout for a terminal size.
// The bar sits directly above the status line; the space left after
// both labels is split between the two fields.
func FindBarGeometry(width, height int) FindBarLayout {
	top := height - 1 - FindBarHeight
	inner := width - 2
	remaining := inner - 2*labelWidth
	if remaining < 2 {
		remaining = 2
	}
	findW := remaining / 2
	return FindBarLayout{
		Top:      top,
		InputY:   top + 1,
		FindX:    1 + labelWidth,
		FindW:    findW,
		ReplaceX: 1 + labelWidth + findW + labelWidth,
		ReplaceW: remaining - findW,
	}
}

// DialogLayout is the geometry of a centered dialog.
type DialogLayout struct {
	X, Y, W, H int

	InnerX, InnerY, InnerW int

	// InputY is the row of the input field in dialogs that have one.
	InputY int
}

// DialogGeometry computes the centered dialog rectangle: 60% of the
// width, 20% of the height, never shorter than the border plus one
// content row.
func DialogGeometry(width, height int) DialogLayout {
	w := width * 60 / 100
	h := height * 20 / 100
	if h < 3 {
		h = 3
	}
	x := width * 20 / 100
	y := height * 40 / 100
	return DialogLayout{
		X: x, Y: y, W: w, H: h,
		InnerX: x + 1,
		InnerY: y + 1,
		InnerW: w - 2,
		InputY: y + 2,
	}
}

// drawFindBar paints the three-row find/replace bar. With buffer focus
// the whole bar is dimmed.
func (r *Renderer) drawFindBar(p *input.Prompt, width, height int) {
	geo := FindBarGeometry(width, height)
	dim := p.Focus() == input.FocusBuffer

	chrome := r.theme.Text
	if dim {
		chrome = r.theme.Dim
	}
	r.drawBox(0, geo.Top, width, FindBarHeight, findBarTitle, chrome)

	r.writeString(1, geo.InputY, labelWidth, findLabel, chrome)
	r.writeString(geo.ReplaceX-labelWidth, geo.InputY, labelWidth, replaceLabel, chrome)

	r.drawField(p.Input(), geo.FindX, geo.InputY, geo.FindW,
		!dim && p.Focus() == input.FocusInput, dim)
	r.drawField(p.Replace(), geo.ReplaceX, geo.InputY, geo.ReplaceW,
		!dim && p.Focus() == input.FocusReplace, dim)
}

// drawField paints one prompt field, windowed by its scroll offset.
// Selection highlighting only shows in the active field.
func (r *Renderer) drawField(f *input.Field, x, y, width int, active, dim bool) {
	f.Follow(width)

	style := r.theme.Field
	if active {
		style = r.theme.FieldActive
	}
	if dim {
		style = r.theme.Dim
		style.Underline = true
	}

	scroll := f.ScrollOffset()
	selStart, selEnd, selOK := f.Selection()
	shown := 0
	visual := 0
	for i, ch := range f.Text() {
		cw := runewidth.RuneWidth(ch)
		if visual >= scroll {
			if shown+cw > width {
				break
			}
			st := style
			if active && selOK && i >= selStart && i < selEnd {
				st = r.theme.Selection
			}
			r.b.SetCell(x+shown, y, backend.Cell{Rune: ch, Style: st})
			shown += cw
		}
		visual += cw
	}
	r.fill(x+shown, y, width-shown, r.theme.Text)
}

// drawSaveAs paints the save-as dialog: message row, then the path
// field underlined across the inner width.
func (r *Renderer) drawSaveAs(p *input.Prompt, width, height int) {
	geo := DialogGeometry(width, height)
	r.clearRect(geo.X, geo.Y, geo.W, geo.H)
	r.drawBox(geo.X, geo.Y, geo.W, geo.H, saveAsTitle, r.theme.Text)

	r.writeString(geo.InnerX, geo.InnerY, geo.InnerW, p.Message(), r.theme.Text)

	f := p.Input()
	selStart, selEnd, selOK := f.Selection()
	shown := 0
	for i, ch := range f.Text() {
		cw := runewidth.RuneWidth(ch)
		if shown+cw > geo.InnerW {
			break
		}
		st := r.theme.Field
		if selOK && i >= selStart && i < selEnd {
			st = r.theme.Selection
		}
		r.b.SetCell(geo.InnerX+shown, geo.InputY, backend.Cell{Rune: ch, Style: st})
		shown += cw
	}
	r.fill(geo.InnerX+shown, geo.InputY, geo.InnerW-shown, r.theme.Field)
}

// drawConfirm paints the unsaved-changes dialog.
func (r *Renderer) drawConfirm(p *input.Prompt, width, height int) {
	geo := DialogGeometry(width, height)
	r.clearRect(geo.X, geo.Y, geo.W, geo.H)
	r.drawBox(geo.X, geo.Y, geo.W, geo.H, confirmTitle, r.theme.Text)
	r.writeString(geo.InnerX, geo.InnerY, geo.InnerW, p.Message(), r.theme.Text)
}

// clearRect blanks a rectangle to the text background, covering
// whatever was painted underneath.
func (r *Renderer) clearRect(x, y, w, h int) {
	for row := 0; row < h; row++ {
		r.fill(x, y+row, w, r.theme.Text)
	}
}

// drawBox draws a single-line border with a title in the top edge.
func (r *Renderer) drawBox(x, y, w, h int, title string, style backend.Style) {
	if w < 2 || h < 2 {
		return
	}

	r.b.SetCell(x, y, backend.Cell{Rune: '┌', Style: style})
	tx := x + 1
	for _, ch := range title {
		cw := runewidth.RuneWidth(ch)
		if tx+cw > x+w-1 {
			break
		}
		r.b.SetCell(tx, y, backend.Cell{Rune: ch, Style: style})
		tx += cw
	}
	for ; tx < x+w-1; tx++ {
		r.b.SetCell(tx, y, backend.Cell{Rune: '─', Style: style})
	}
	r.b.SetCell(x+w-1, y, backend.Cell{Rune: '┐', Style: style})

	for row := y + 1; row < y+h-1; row++ {
		r.b.SetCell(x, row, backend.Cell{Rune: '│', Style: style})
		r.b.SetCell(x+w-1, row, backend.Cell{Rune: '│', Style: style})
	}

	r.b.SetCell(x, y+h-1, backend.Cell{Rune: '└', Style: style})
	for col := x + 1; col < x+w-1; col++ {
		r.b.SetCell(col, y+h-1, backend.Cell{Rune: '─', Style: style})
	}
	r.b.SetCell(x+w-1, y+h-1, backend.Cell{Rune: '┘', Style: style})
}
