// Package input turns terminal events into editor commands and hosts
// the modal prompt state.
//
// A Keymap resolves a key event to a Command for the current mode:
// ModeEdit while typing in the buffer, ModePrompt while a dialog or the
// find bar owns the keyboard, and ModeFindBuffer while the find bar is
// open but focus has been handed back to the buffer.
//
// Prompt models the three dialogs the editor shows: save-as, the
// unsaved-changes confirmation, and find/replace. Its text fields are
// Field values, single-line editors with byte-offset carets, selection
// anchors and a horizontal scroll window measured in display cells.
package input
