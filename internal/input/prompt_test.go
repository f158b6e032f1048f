package input

import "testing"

func TestNewSaveAsSeedsPath(t *testing.T) {
	p := NewSaveAs("/home/user/")
	if p.Kind() != KindSaveAs {
		t.Fatalf("Kind = %v, want KindSaveAs", p.Kind())
	}
	if p.Message() != "Save as:" {
		t.Errorf("Message = %q, want %q", p.Message(), "Save as:")
	}
	p.InsertRune('f')
	if got := p.Input().Text(); got != "/home/user/f" {
		t.Errorf("Input text = %q, want %q", got, "/home/user/f")
	}
}

func TestConfirmSaveIgnoresEdits(t *testing.T) {
	p := NewConfirmSave()
	if p.Message() != "Save changes before closing? (y/n/c)" {
		t.Fatalf("Message = %q", p.Message())
	}
	if p.Active() != nil {
		t.Fatal("confirm prompt should have no active field")
	}
	p.InsertRune('y')
	p.InsertText("spam")
	p.Backspace()
	p.SelectAll()
	if got := p.Input().Text(); got != "" {
		t.Errorf("Input text = %q, want empty", got)
	}
	if _, ok := p.SelectedText(); ok {
		t.Error("SelectedText should report false")
	}
	if p.DeleteSelection() {
		t.Error("DeleteSelection should report false")
	}
}

func TestFindReplaceFocusCycle(t *testing.T) {
	p := NewFindReplace()
	if p.Focus() != FocusInput {
		t.Fatalf("initial focus = %v, want FocusInput", p.Focus())
	}
	p.CycleFocus()
	if p.Focus() != FocusReplace {
		t.Fatalf("focus = %v, want FocusReplace", p.Focus())
	}
	p.CycleFocus()
	if p.Focus() != FocusBuffer {
		t.Fatalf("focus = %v, want FocusBuffer", p.Focus())
	}
	if p.Active() != nil {
		t.Error("buffer focus should have no active field")
	}
	p.CycleFocus()
	if p.Focus() != FocusInput {
		t.Errorf("focus = %v, want FocusInput again", p.Focus())
	}
}

func TestSaveAsFocusDoesNotCycle(t *testing.T) {
	p := NewSaveAs("x")
	p.CycleFocus()
	if p.Focus() != FocusInput {
		t.Errorf("focus = %v, want FocusInput", p.Focus())
	}
	p.SetFocus(FocusBuffer)
	if p.Focus() != FocusInput {
		t.Errorf("SetFocus(FocusBuffer) on save-as: focus = %v, want FocusInput", p.Focus())
	}
}

func TestFindReplaceEditsFollowFocus(t *testing.T) {
	p := NewFindReplace()
	p.InsertText("needle")
	p.CycleFocus()
	p.InsertText("thread")
	if p.Query() != "needle" {
		t.Errorf("Query = %q, want %q", p.Query(), "needle")
	}
	if p.Replacement() != "thread" {
		t.Errorf("Replacement = %q, want %q", p.Replacement(), "thread")
	}

	// Buffer focus: field edits are ignored.
	p.CycleFocus()
	p.InsertRune('!')
	p.Backspace()
	if p.Query() != "needle" || p.Replacement() != "thread" {
		t.Errorf("buffer focus edited a field: %q / %q", p.Query(), p.Replacement())
	}
}

func TestFindReplaceFocusFind(t *testing.T) {
	p := NewFindReplace()
	p.CycleFocus()
	p.CycleFocus() // buffer
	p.SetFocus(FocusInput)
	if p.Focus() != FocusInput {
		t.Fatalf("focus = %v, want FocusInput", p.Focus())
	}
	p.InsertRune('a')
	if p.Query() != "a" {
		t.Errorf("Query = %q, want %q", p.Query(), "a")
	}
}

func TestPromptFieldMotions(t *testing.T) {
	p := NewSaveAs("abc")
	p.Home(false)
	p.Right(true)
	p.Right(true)
	got, ok := p.SelectedText()
	if !ok || got != "ab" {
		t.Fatalf("SelectedText = (%q, %v), want (%q, true)", got, ok, "ab")
	}
	p.End(false)
	p.Left(false)
	p.Delete()
	if p.Input().Text() != "ab" {
		t.Errorf("Text = %q, want %q", p.Input().Text(), "ab")
	}
}
