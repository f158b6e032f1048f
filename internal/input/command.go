package input

// Command is an editor action resolved from a key event. The app layer
// interprets commands against the current editor and prompt state.
type Command int

const (
	CmdNone Command = iota

	// Text entry.
	CmdInsertRune
	CmdInsertNewline
	CmdIndent
	CmdDedent
	CmdBackspace
	CmdDelete

	// Caret motion.
	CmdMoveLeft
	CmdMoveRight
	CmdMoveUp
	CmdMoveDown
	CmdMoveLineStart
	CmdMoveLineEnd
	CmdMoveDocStart
	CmdMoveDocEnd

	// Motion extending the selection.
	CmdSelectLeft
	CmdSelectRight
	CmdSelectUp
	CmdSelectDown
	CmdSelectLineStart
	CmdSelectLineEnd
	CmdSelectDocStart
	CmdSelectDocEnd
	CmdSelectAll

	// Clipboard.
	CmdCopy
	CmdCut
	CmdPaste

	// History.
	CmdUndo
	CmdRedo

	// Files and session.
	CmdSave
	CmdSaveAs
	CmdToggleWrap
	CmdQuit

	// Search.
	CmdOpenFind
	CmdFindNext
	CmdFindPrev
	CmdReplace
	CmdReplaceAll

	// Prompt control.
	CmdClosePrompt
	CmdSubmit
	CmdCycleFocus
	CmdFocusFind
)

// String returns the command name for logs.
func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdInsertRune:
		return "insert-rune"
	case CmdInsertNewline:
		return "insert-newline"
	case CmdIndent:
		return "indent"
	case CmdDedent:
		return "dedent"
	case CmdBackspace:
		return "backspace"
	case CmdDelete:
		return "delete"
	case CmdMoveLeft:
		return "move-left"
	case CmdMoveRight:
		return "move-right"
	case CmdMoveUp:
		return "move-up"
	case CmdMoveDown:
		return "move-down"
	case CmdMoveLineStart:
		return "move-line-start"
	case CmdMoveLineEnd:
		return "move-line-end"
	case CmdMoveDocStart:
		return "move-doc-start"
	case CmdMoveDocEnd:
		return "move-doc-end"
	case CmdSelectLeft:
		return "select-left"
	case CmdSelectRight:
		return "select-right"
	case CmdSelectUp:
		return "select-up"
	case CmdSelectDown:
		return "select-down"
	case CmdSelectLineStart:
		return "select-line-start"
	case CmdSelectLineEnd:
		return "select-line-end"
	case CmdSelectDocStart:
		return "select-doc-start"
	case CmdSelectDocEnd:
		return "select-doc-end"
	case CmdSelectAll:
		return "select-all"
	case CmdCopy:
		return "copy"
	case CmdCut:
		return "cut"
	case CmdPaste:
		return "paste"
	case CmdUndo:
		return "undo"
	case CmdRedo:
		return "redo"
	case CmdSave:
		return "save"
	case CmdSaveAs:
		return "save-as"
	case CmdToggleWrap:
		return "toggle-wrap"
	case CmdQuit:
		return "quit"
	case CmdOpenFind:
		return "open-find"
	case CmdFindNext:
		return "find-next"
	case CmdFindPrev:
		return "find-prev"
	case CmdReplace:
		return "replace"
	case CmdReplaceAll:
		return "replace-all"
	case CmdClosePrompt:
		return "close-prompt"
	case CmdSubmit:
		return "submit"
	case CmdCycleFocus:
		return "cycle-focus"
	case CmdFocusFind:
		return "focus-find"
	}
	return "unknown"
}
