package input

import "github.com/ThymeKeeper/texteditor/internal/renderer/backend"

// Mode selects which binding table resolves a key event.
type Mode int

const (
	// ModeEdit is the normal state: keys edit the buffer.
	ModeEdit Mode = iota
	// ModePrompt is active while a dialog field owns the keyboard.
	ModePrompt
	// ModeFindBuffer is active while the find bar is open but focus has
	// been cycled back to the buffer.
	ModeFindBuffer
)

type chord struct {
	key backend.Key
	mod backend.ModMask
}

// Keymap resolves key events to commands per mode.
type Keymap struct {
	tables map[Mode]map[chord]Command
}

// DefaultKeymap builds the built-in bindings.
func DefaultKeymap() *Keymap {
	km := &Keymap{tables: map[Mode]map[chord]Command{
		ModeEdit:       {},
		ModePrompt:     {},
		ModeFindBuffer: {},
	}}
	bind := func(mode Mode, key backend.Key, mod backend.ModMask, cmd Command) {
		km.tables[mode][chord{key, mod}] = cmd
	}
	shared := func(mode Mode) {
		bind(mode, backend.KeyCtrlA, backend.ModNone, CmdSelectAll)
		bind(mode, backend.KeyCtrlC, backend.ModNone, CmdCopy)
		bind(mode, backend.KeyCtrlX, backend.ModNone, CmdCut)
		bind(mode, backend.KeyCtrlV, backend.ModNone, CmdPaste)
		bind(mode, backend.KeyCtrlZ, backend.ModNone, CmdUndo)
		bind(mode, backend.KeyCtrlY, backend.ModNone, CmdRedo)
		bind(mode, backend.KeyBackspace, backend.ModNone, CmdBackspace)
		bind(mode, backend.KeyDelete, backend.ModNone, CmdDelete)
		bind(mode, backend.KeyLeft, backend.ModNone, CmdMoveLeft)
		bind(mode, backend.KeyRight, backend.ModNone, CmdMoveRight)
		bind(mode, backend.KeyLeft, backend.ModShift, CmdSelectLeft)
		bind(mode, backend.KeyRight, backend.ModShift, CmdSelectRight)
		bind(mode, backend.KeyHome, backend.ModNone, CmdMoveLineStart)
		bind(mode, backend.KeyEnd, backend.ModNone, CmdMoveLineEnd)
		bind(mode, backend.KeyHome, backend.ModShift, CmdSelectLineStart)
		bind(mode, backend.KeyEnd, backend.ModShift, CmdSelectLineEnd)
	}
	buffer := func(mode Mode) {
		shared(mode)
		bind(mode, backend.KeyEnter, backend.ModNone, CmdInsertNewline)
		bind(mode, backend.KeyUp, backend.ModNone, CmdMoveUp)
		bind(mode, backend.KeyDown, backend.ModNone, CmdMoveDown)
		bind(mode, backend.KeyUp, backend.ModShift, CmdSelectUp)
		bind(mode, backend.KeyDown, backend.ModShift, CmdSelectDown)
		bind(mode, backend.KeyHome, backend.ModCtrl, CmdMoveDocStart)
		bind(mode, backend.KeyEnd, backend.ModCtrl, CmdMoveDocEnd)
		bind(mode, backend.KeyHome, backend.ModCtrl|backend.ModShift, CmdSelectDocStart)
		bind(mode, backend.KeyEnd, backend.ModCtrl|backend.ModShift, CmdSelectDocEnd)
	}

	buffer(ModeEdit)
	bind(ModeEdit, backend.KeyCtrlQ, backend.ModNone, CmdQuit)
	bind(ModeEdit, backend.KeyCtrlS, backend.ModNone, CmdSave)
	bind(ModeEdit, backend.KeyCtrlS, backend.ModShift, CmdSaveAs)
	bind(ModeEdit, backend.KeyCtrlS, backend.ModAlt, CmdSaveAs)
	bind(ModeEdit, backend.KeyF12, backend.ModNone, CmdSaveAs)
	bind(ModeEdit, backend.KeyCtrlW, backend.ModNone, CmdToggleWrap)
	bind(ModeEdit, backend.KeyCtrlF, backend.ModNone, CmdOpenFind)
	bind(ModeEdit, backend.KeyTab, backend.ModNone, CmdIndent)
	bind(ModeEdit, backend.KeyTab, backend.ModShift, CmdDedent)
	bind(ModeEdit, backend.KeyBacktab, backend.ModNone, CmdDedent)

	shared(ModePrompt)
	bind(ModePrompt, backend.KeyEscape, backend.ModNone, CmdClosePrompt)
	bind(ModePrompt, backend.KeyEnter, backend.ModNone, CmdSubmit)
	bind(ModePrompt, backend.KeyTab, backend.ModNone, CmdCycleFocus)
	bind(ModePrompt, backend.KeyCtrlF, backend.ModNone, CmdFindNext)
	bind(ModePrompt, backend.KeyCtrlF, backend.ModAlt, CmdFindPrev)
	bind(ModePrompt, backend.KeyCtrlR, backend.ModNone, CmdReplace)
	bind(ModePrompt, backend.KeyCtrlR, backend.ModAlt, CmdReplaceAll)

	buffer(ModeFindBuffer)
	bind(ModeFindBuffer, backend.KeyEscape, backend.ModNone, CmdClosePrompt)
	bind(ModeFindBuffer, backend.KeyTab, backend.ModNone, CmdFocusFind)
	bind(ModeFindBuffer, backend.KeyCtrlF, backend.ModNone, CmdFindNext)
	bind(ModeFindBuffer, backend.KeyCtrlF, backend.ModShift, CmdFindPrev)
	bind(ModeFindBuffer, backend.KeyCtrlH, backend.ModNone, CmdReplace)
	bind(ModeFindBuffer, backend.KeyCtrlH, backend.ModShift, CmdReplaceAll)

	return km
}

// Lookup resolves a key event for the given mode. Unknown chords return
// CmdNone.
//
// Printable runes insert regardless of Shift or Alt; a rune carrying
// Ctrl is never an insertion. For other keys the chord is retried with
// progressively fewer modifiers, so Shift+Enter still submits while
// modifier noise on unbound combinations falls through cleanly.
func (km *Keymap) Lookup(mode Mode, ev backend.Event) Command {
	if ev.Type != backend.EventKey {
		return CmdNone
	}
	if ev.Key == backend.KeyRune {
		if ev.Mod.Has(backend.ModCtrl) {
			return CmdNone
		}
		return CmdInsertRune
	}
	table, ok := km.tables[mode]
	if !ok {
		return CmdNone
	}
	for _, mod := range [...]backend.ModMask{
		ev.Mod,
		ev.Mod & (backend.ModShift | backend.ModCtrl),
		ev.Mod & backend.ModShift,
		backend.ModNone,
	} {
		if cmd, ok := table[chord{ev.Key, mod}]; ok {
			return cmd
		}
	}
	return CmdNone
}
