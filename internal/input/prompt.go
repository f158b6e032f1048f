package input

// Kind identifies which prompt is open.
type Kind int

const (
	// KindSaveAs asks for a path to write the buffer to.
	KindSaveAs Kind = iota
	// KindConfirmSave asks whether to save before quitting.
	KindConfirmSave
	// KindFindReplace is the find/replace bar.
	KindFindReplace
)

// Focus identifies which part of a prompt receives keys.
type Focus int

const (
	// FocusInput targets the primary field: the path for save-as, the
	// query for find/replace.
	FocusInput Focus = iota
	// FocusReplace targets the replacement field of the find bar.
	FocusReplace
	// FocusBuffer hands keys back to the buffer while the find bar
	// stays open.
	FocusBuffer
)

// Prompt is the state of an open dialog. Field edits go through the
// active field; the confirm prompt has no editable field at all.
type Prompt struct {
	kind    Kind
	message string
	input   Field
	replace Field
	focus   Focus
}

// NewSaveAs creates a save-as prompt seeded with a path suggestion. The
// caret starts at the end so typing appends a file name.
func NewSaveAs(path string) *Prompt {
	return &Prompt{
		kind:    KindSaveAs,
		message: "Save as:",
		input:   NewField(path),
		replace: NewField(""),
	}
}

// NewConfirmSave creates the unsaved-changes prompt.
func NewConfirmSave() *Prompt {
	return &Prompt{
		kind:    KindConfirmSave,
		message: "Save changes before closing? (y/n/c)",
		input:   NewField(""),
		replace: NewField(""),
	}
}

// NewFindReplace creates the find/replace bar with empty fields.
func NewFindReplace() *Prompt {
	return &Prompt{
		kind:    KindFindReplace,
		input:   NewField(""),
		replace: NewField(""),
	}
}

// Kind returns the prompt kind.
func (p *Prompt) Kind() Kind { return p.kind }

// Message returns the dialog message, if any.
func (p *Prompt) Message() string { return p.message }

// Focus returns the current focus.
func (p *Prompt) Focus() Focus { return p.focus }

// SetFocus moves focus. Only the find bar has more than one target.
func (p *Prompt) SetFocus(focus Focus) {
	if p.kind != KindFindReplace && focus != FocusInput {
		return
	}
	p.focus = focus
}

// CycleFocus advances find bar focus: query, replacement, buffer.
func (p *Prompt) CycleFocus() {
	if p.kind != KindFindReplace {
		return
	}
	switch p.focus {
	case FocusInput:
		p.focus = FocusReplace
	case FocusReplace:
		p.focus = FocusBuffer
	default:
		p.focus = FocusInput
	}
}

// Input returns the primary field.
func (p *Prompt) Input() *Field { return &p.input }

// Replace returns the replacement field.
func (p *Prompt) Replace() *Field { return &p.replace }

// Active returns the focused field, or nil when keys should not edit a
// field: buffer focus, or the confirm prompt.
func (p *Prompt) Active() *Field {
	if p.kind == KindConfirmSave {
		return nil
	}
	switch p.focus {
	case FocusInput:
		return &p.input
	case FocusReplace:
		return &p.replace
	}
	return nil
}

// Query returns the find query text.
func (p *Prompt) Query() string { return p.input.Text() }

// Replacement returns the replacement text.
func (p *Prompt) Replacement() string { return p.replace.Text() }

// InsertRune types into the active field.
func (p *Prompt) InsertRune(r rune) {
	if f := p.Active(); f != nil {
		f.InsertRune(r)
	}
}

// InsertText pastes into the active field.
func (p *Prompt) InsertText(s string) {
	if f := p.Active(); f != nil {
		f.InsertText(s)
	}
}

// Backspace edits the active field.
func (p *Prompt) Backspace() {
	if f := p.Active(); f != nil {
		f.Backspace()
	}
}

// Delete edits the active field.
func (p *Prompt) Delete() {
	if f := p.Active(); f != nil {
		f.Delete()
	}
}

// Left moves the caret in the active field.
func (p *Prompt) Left(extend bool) {
	if f := p.Active(); f != nil {
		f.Left(extend)
	}
}

// Right moves the caret in the active field.
func (p *Prompt) Right(extend bool) {
	if f := p.Active(); f != nil {
		f.Right(extend)
	}
}

// Home moves the caret in the active field.
func (p *Prompt) Home(extend bool) {
	if f := p.Active(); f != nil {
		f.Home(extend)
	}
}

// End moves the caret in the active field.
func (p *Prompt) End(extend bool) {
	if f := p.Active(); f != nil {
		f.End(extend)
	}
}

// SelectAll selects the active field.
func (p *Prompt) SelectAll() {
	if f := p.Active(); f != nil {
		f.SelectAll()
	}
}

// SelectedText returns the active field's selection.
func (p *Prompt) SelectedText() (string, bool) {
	if f := p.Active(); f != nil {
		return f.SelectedText()
	}
	return "", false
}

// DeleteSelection removes the active field's selection.
func (p *Prompt) DeleteSelection() bool {
	if f := p.Active(); f != nil {
		return f.DeleteSelection()
	}
	return false
}
