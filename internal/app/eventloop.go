package app

import (
	"github.com/ThymeKeeper/texteditor/internal/input"
	"github.com/ThymeKeeper/texteditor/internal/renderer"
	"github.com/ThymeKeeper/texteditor/internal/renderer/backend"
	"github.com/ThymeKeeper/texteditor/internal/renderer/viewport"
)

// handleEvent processes one backend event. ErrQuit means a clean exit.
func (a *App) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		if err := a.handleKey(ev); err != nil {
			return err
		}
	case backend.EventMouse:
		a.handleMouse(ev)
	case backend.EventPaste:
		a.handlePaste(ev)
	case backend.EventResize:
		// The next draw reads the new size from the backend.
	}
	a.backend.SetTitle(a.editor.DisplayName())
	return nil
}

func (a *App) handleKey(ev backend.Event) error {
	mode := a.inputMode()
	cmd := a.keymap.Lookup(mode, ev)
	if cmd == input.CmdNone {
		return nil
	}
	switch mode {
	case input.ModeEdit:
		return a.execEdit(cmd, ev)
	case input.ModeFindBuffer:
		return a.execFindBuffer(cmd, ev)
	default:
		if a.prompt.Kind() == input.KindConfirmSave {
			return a.execConfirm(cmd, ev)
		}
		return a.execPrompt(cmd, ev)
	}
}

// execEdit handles a key while no prompt is open.
func (a *App) execEdit(cmd input.Command, ev backend.Event) error {
	switch cmd {
	case input.CmdQuit:
		if a.editor.Modified() {
			a.prompt = input.NewConfirmSave()
			return nil
		}
		return ErrQuit
	case input.CmdSave:
		a.save()
	case input.CmdSaveAs:
		a.openSaveAs()
	case input.CmdToggleWrap:
		a.editor.ToggleWrap()
	case input.CmdOpenFind:
		a.prompt = input.NewFindReplace()
	case input.CmdIndent:
		a.editor.Indent()
	case input.CmdDedent:
		a.editor.Dedent()
	default:
		a.bufferCommand(cmd, ev)
	}
	return nil
}

// execFindBuffer handles a key while the find bar is open with focus
// cycled to the buffer. Buffer edits rescan the matches.
func (a *App) execFindBuffer(cmd input.Command, ev backend.Event) error {
	switch cmd {
	case input.CmdClosePrompt:
		a.closeFindBar()
	case input.CmdFocusFind:
		a.prompt.SetFocus(input.FocusInput)
	case input.CmdFindNext:
		a.editor.FindNext()
	case input.CmdFindPrev:
		a.editor.FindPrevious()
	case input.CmdReplace:
		a.replaceCurrent()
	case input.CmdReplaceAll:
		a.replaceAll()
	default:
		if a.bufferCommand(cmd, ev) {
			a.updateFindMatches()
		}
	}
	return nil
}

// execPrompt handles a key for the save-as dialog or a focused find
// bar field. Find, replace, and buffer undo stay reachable from the
// find bar; the save-as dialog only edits its path field.
func (a *App) execPrompt(cmd input.Command, ev backend.Event) error {
	p := a.prompt
	fr := p.Kind() == input.KindFindReplace
	switch cmd {
	case input.CmdClosePrompt:
		if fr {
			a.closeFindBar()
		} else {
			a.prompt = nil
		}
	case input.CmdSubmit:
		a.submitPrompt()
	case input.CmdCycleFocus:
		p.CycleFocus()
	case input.CmdFindNext:
		if fr {
			a.editor.FindNext()
		}
	case input.CmdFindPrev:
		if fr {
			a.editor.FindPrevious()
		}
	case input.CmdReplace:
		if fr {
			a.replaceCurrent()
		}
	case input.CmdReplaceAll:
		if fr {
			a.replaceAll()
		}
	case input.CmdUndo:
		if fr {
			a.editor.Undo()
			a.updateFindMatches()
		}
	case input.CmdRedo:
		if fr {
			a.editor.Redo()
			a.updateFindMatches()
		}
	case input.CmdSelectAll:
		p.SelectAll()
	case input.CmdCopy:
		a.promptCopy()
	case input.CmdCut:
		a.promptCut()
	case input.CmdPaste:
		a.promptPaste()
	case input.CmdInsertRune:
		p.InsertRune(ev.Rune)
		a.afterFieldEdit()
	case input.CmdBackspace:
		p.Backspace()
		a.afterFieldEdit()
	case input.CmdDelete:
		p.Delete()
		a.afterFieldEdit()
	case input.CmdMoveLeft:
		p.Left(false)
	case input.CmdSelectLeft:
		p.Left(true)
	case input.CmdMoveRight:
		p.Right(false)
	case input.CmdSelectRight:
		p.Right(true)
	case input.CmdMoveLineStart:
		p.Home(false)
	case input.CmdSelectLineStart:
		p.Home(true)
	case input.CmdMoveLineEnd:
		p.End(false)
	case input.CmdSelectLineEnd:
		p.End(true)
	}
	return nil
}

// execConfirm handles the unsaved-changes dialog. Answers arrive as
// plain runes.
func (a *App) execConfirm(cmd input.Command, ev backend.Event) error {
	switch cmd {
	case input.CmdClosePrompt:
		a.prompt = nil
	case input.CmdInsertRune:
		switch ev.Rune {
		case 'y', 'Y':
			if a.filePath == "" {
				// Nowhere to save yet: ask for a path instead of
				// quitting.
				a.openSaveAs()
				return nil
			}
			if err := a.saveTo(a.filePath); err != nil {
				a.logger.Error("save %s: %v", a.filePath, err)
			}
			return ErrQuit
		case 'n', 'N':
			return ErrQuit
		case 'c', 'C':
			a.prompt = nil
		}
	}
	return nil
}

// bufferCommand applies an editing or motion command to the buffer. It
// reports whether the command may have changed the text.
func (a *App) bufferCommand(cmd input.Command, ev backend.Event) bool {
	ed := a.editor
	switch cmd {
	case input.CmdInsertRune:
		ed.InsertChar(ev.Rune)
	case input.CmdInsertNewline:
		ed.InsertNewline()
	case input.CmdBackspace:
		ed.Backspace()
	case input.CmdDelete:
		ed.Delete()
	case input.CmdPaste:
		a.pasteClipboard()
	case input.CmdCut:
		return a.cutSelection()
	case input.CmdUndo:
		ed.Undo()
	case input.CmdRedo:
		ed.Redo()
	case input.CmdCopy:
		a.copySelection()
		return false
	case input.CmdSelectAll:
		ed.SelectAll()
		return false
	case input.CmdMoveLeft:
		ed.MoveLeft(false)
		return false
	case input.CmdMoveRight:
		ed.MoveRight(false)
		return false
	case input.CmdMoveUp:
		ed.MoveUp(false)
		return false
	case input.CmdMoveDown:
		ed.MoveDown(false)
		return false
	case input.CmdMoveLineStart:
		ed.MoveLineStart(false)
		return false
	case input.CmdMoveLineEnd:
		ed.MoveLineEnd(false)
		return false
	case input.CmdMoveDocStart:
		ed.MoveDocStart(false)
		return false
	case input.CmdMoveDocEnd:
		ed.MoveDocEnd(false)
		return false
	case input.CmdSelectLeft:
		ed.MoveLeft(true)
		return false
	case input.CmdSelectRight:
		ed.MoveRight(true)
		return false
	case input.CmdSelectUp:
		ed.MoveUp(true)
		return false
	case input.CmdSelectDown:
		ed.MoveDown(true)
		return false
	case input.CmdSelectLineStart:
		ed.MoveLineStart(true)
		return false
	case input.CmdSelectLineEnd:
		ed.MoveLineEnd(true)
		return false
	case input.CmdSelectDocStart:
		ed.MoveDocStart(true)
		return false
	case input.CmdSelectDocEnd:
		ed.MoveDocEnd(true)
		return false
	default:
		return false
	}
	return true
}

// submitPrompt handles Enter in a prompt field.
func (a *App) submitPrompt() {
	p := a.prompt
	switch p.Kind() {
	case input.KindSaveAs:
		path := p.Query()
		if path == "" {
			return
		}
		if err := a.saveAs(path); err != nil {
			a.logger.Error("save as %s: %v", path, err)
		}
		a.editor.ClearFindMatches()
		a.prompt = nil
	case input.KindFindReplace:
		a.updateFindMatches()
	}
}

func (a *App) openSaveAs() {
	a.prompt = input.NewSaveAs(a.savePathSuggestion())
}

func (a *App) closeFindBar() {
	a.editor.ClearFindMatches()
	a.prompt = nil
}

// updateFindMatches rescans for the current query. While a find bar
// field has focus the view follows the current match; with the buffer
// focused the caret stays put.
func (a *App) updateFindMatches() {
	n := a.editor.SetFindQuery(a.prompt.Query())
	if n > 0 && a.prompt.Focus() != input.FocusBuffer {
		a.editor.JumpToCurrentMatch()
	}
}

// afterFieldEdit runs after any edit to a prompt field so the match
// list tracks the query as it is typed.
func (a *App) afterFieldEdit() {
	if a.prompt != nil && a.prompt.Kind() == input.KindFindReplace &&
		a.prompt.Focus() == input.FocusInput {
		a.updateFindMatches()
	}
}

func (a *App) replaceCurrent() {
	a.editor.ReplaceCurrent(a.prompt.Replacement())
}

// replaceAll substitutes every match and closes the find bar.
func (a *App) replaceAll() {
	a.editor.SetFindQuery(a.prompt.Query())
	if n := a.editor.ReplaceAll(a.prompt.Replacement()); n > 0 {
		a.logger.Debug("replaced %d matches", n)
	}
	a.closeFindBar()
}

// copySelection puts the selected text on the system clipboard.
func (a *App) copySelection() {
	text, ok := a.editor.Copy()
	if !ok {
		return
	}
	if err := a.clip.Write(text); err != nil {
		a.logger.Warn("clipboard write: %v", err)
	}
}

// cutSelection removes the selection only once the clipboard has
// accepted it, so a failed copy never loses text. Reports whether the
// buffer changed.
func (a *App) cutSelection() bool {
	text, ok := a.editor.Copy()
	if !ok {
		return false
	}
	if err := a.clip.Write(text); err != nil {
		a.logger.Warn("clipboard write: %v", err)
		return false
	}
	a.editor.DeleteSelection()
	return true
}

func (a *App) pasteClipboard() {
	text, err := a.clip.Read()
	if err != nil {
		a.logger.Warn("clipboard read: %v", err)
		return
	}
	a.editor.Paste(text)
}

func (a *App) promptCopy() {
	f := a.prompt.Active()
	if f == nil {
		return
	}
	text, ok := f.SelectedText()
	if !ok {
		return
	}
	if err := a.clip.Write(text); err != nil {
		a.logger.Warn("clipboard write: %v", err)
	}
}

func (a *App) promptCut() {
	f := a.prompt.Active()
	if f == nil {
		return
	}
	text, ok := f.SelectedText()
	if !ok {
		return
	}
	if err := a.clip.Write(text); err != nil {
		a.logger.Warn("clipboard write: %v", err)
		return
	}
	f.DeleteSelection()
	a.afterFieldEdit()
}

func (a *App) promptPaste() {
	f := a.prompt.Active()
	if f == nil {
		return
	}
	text, err := a.clip.Read()
	if err != nil {
		a.logger.Warn("clipboard read: %v", err)
		return
	}
	if text == "" {
		return
	}
	f.InsertText(text)
	a.afterFieldEdit()
}

// handleMouse routes a mouse event by prompt state. The wheel only
// scrolls the text area in normal editing.
func (a *App) handleMouse(ev backend.Event) {
	if ev.Button == backend.MouseWheelUp || ev.Button == backend.MouseWheelDown {
		if a.prompt == nil {
			delta := viewport.WheelStep
			if ev.Button == backend.MouseWheelUp {
				delta = -delta
			}
			a.vp.ScrollBy(delta, a.editor.TotalRows())
		}
		return
	}
	if ev.Action == backend.MouseRelease {
		a.dragging = false
		return
	}

	switch {
	case a.prompt == nil:
		a.mouseEdit(ev)
	case a.prompt.Kind() == input.KindSaveAs:
		a.mouseDialog(ev)
	case a.prompt.Kind() == input.KindFindReplace:
		a.mouseFindBar(ev)
	}
}

func (a *App) mouseEdit(ev backend.Event) {
	switch ev.Action {
	case backend.MousePress:
		if ev.Button != backend.MouseLeft {
			return
		}
		row, col := a.vp.ScreenToMap(ev.MouseX, ev.MouseY)
		a.editor.Click(row, col, ev.Mod.Has(backend.ModShift))
		a.dragging = true
	case backend.MouseDrag:
		if !a.dragging {
			return
		}
		row, col := a.vp.ScreenToMap(ev.MouseX, ev.MouseY)
		a.editor.Drag(row, col)
	}
}

// mouseDialog places the caret in the save-as path field.
func (a *App) mouseDialog(ev backend.Event) {
	w, h := a.backend.Size()
	geo := renderer.DialogGeometry(w, h)
	if ev.MouseY != geo.InputY || ev.MouseX < geo.InnerX || ev.MouseX >= geo.InnerX+geo.InnerW {
		return
	}
	f := a.prompt.Input()
	col := ev.MouseX - geo.InnerX + f.ScrollOffset()
	switch ev.Action {
	case backend.MousePress:
		if ev.Button != backend.MouseLeft {
			return
		}
		f.Click(col, ev.Mod.Has(backend.ModShift))
	case backend.MouseDrag:
		f.Drag(col)
	}
}

// mouseFindBar focuses whichever field was clicked, or hands the click
// to the buffer above the bar.
func (a *App) mouseFindBar(ev backend.Event) {
	w, h := a.backend.Size()
	geo := renderer.FindBarGeometry(w, h)

	switch ev.Action {
	case backend.MousePress:
		if ev.Button != backend.MouseLeft {
			return
		}
		switch {
		case ev.MouseY == geo.InputY && ev.MouseX >= geo.FindX && ev.MouseX < geo.FindX+geo.FindW:
			a.prompt.SetFocus(input.FocusInput)
			f := a.prompt.Input()
			f.Click(ev.MouseX-geo.FindX+f.ScrollOffset(), ev.Mod.Has(backend.ModShift))
		case ev.MouseY == geo.InputY && ev.MouseX >= geo.ReplaceX && ev.MouseX < geo.ReplaceX+geo.ReplaceW:
			a.prompt.SetFocus(input.FocusReplace)
			f := a.prompt.Replace()
			f.Click(ev.MouseX-geo.ReplaceX+f.ScrollOffset(), ev.Mod.Has(backend.ModShift))
		case ev.MouseY < geo.Top:
			a.prompt.SetFocus(input.FocusBuffer)
			row, col := a.vp.ScreenToMap(ev.MouseX, ev.MouseY)
			a.editor.Click(row, col, ev.Mod.Has(backend.ModShift))
			a.dragging = true
		}
	case backend.MouseDrag:
		switch {
		case a.dragging:
			row, col := a.vp.ScreenToMap(ev.MouseX, ev.MouseY)
			a.editor.Drag(row, col)
		case ev.MouseY == geo.InputY:
			f := a.prompt.Active()
			if f == nil {
				return
			}
			x := ev.MouseX - geo.FindX
			if a.prompt.Focus() == input.FocusReplace {
				x = ev.MouseX - geo.ReplaceX
			}
			f.Drag(x + f.ScrollOffset())
		}
	}
}

// handlePaste routes bracketed paste text to whatever owns the
// keyboard.
func (a *App) handlePaste(ev backend.Event) {
	if ev.Paste == "" {
		return
	}
	switch a.inputMode() {
	case input.ModeEdit:
		a.editor.Paste(ev.Paste)
	case input.ModeFindBuffer:
		a.editor.Paste(ev.Paste)
		a.updateFindMatches()
	default:
		if a.prompt.Kind() == input.KindConfirmSave {
			return
		}
		a.prompt.InsertText(ev.Paste)
		a.afterFieldEdit()
	}
}
