package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestNullBackendCells(t *testing.T) {
	b := NewNullBackend(10, 4)
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer b.Fini()

	w, h := b.Size()
	if w != 10 || h != 4 {
		t.Fatalf("Size = %dx%d, want 10x4", w, h)
	}

	style := Style{FG: RGB(255, 0, 0), Bold: true}
	b.SetCell(2, 1, Cell{Rune: 'x', Style: style})
	got := b.CellAt(2, 1)
	if got.Rune != 'x' || got.Style != style {
		t.Errorf("CellAt(2,1) = %+v, want rune x with style %+v", got, style)
	}

	// Out-of-bounds writes are dropped.
	b.SetCell(-1, 0, Cell{Rune: 'a'})
	b.SetCell(10, 0, Cell{Rune: 'a'})
	b.SetCell(0, 4, Cell{Rune: 'a'})

	b.Clear()
	if got := b.CellAt(2, 1); got.Rune != 0 {
		t.Errorf("after Clear, CellAt(2,1).Rune = %q, want 0", got.Rune)
	}
}

func TestNullBackendRowText(t *testing.T) {
	b := NewNullBackend(8, 2)
	for i, r := range "hi" {
		b.SetCell(i, 0, Cell{Rune: r})
	}
	if got := b.RowText(0); got != "hi" {
		t.Errorf("RowText(0) = %q, want %q", got, "hi")
	}
	if got := b.RowText(1); got != "" {
		t.Errorf("RowText(1) = %q, want empty", got)
	}
	if got := b.RowText(5); got != "" {
		t.Errorf("RowText out of range = %q, want empty", got)
	}
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(5, 5)
	if _, _, visible := b.Cursor(); visible {
		t.Fatal("cursor visible before ShowCursor")
	}
	b.ShowCursor(3, 2)
	x, y, visible := b.Cursor()
	if !visible || x != 3 || y != 2 {
		t.Errorf("Cursor = (%d, %d, %v), want (3, 2, true)", x, y, visible)
	}
	b.HideCursor()
	if _, _, visible := b.Cursor(); visible {
		t.Error("cursor still visible after HideCursor")
	}
	b.SetCursorStyle(CursorUnderline)
	if got := b.CursorShape(); got != CursorUnderline {
		t.Errorf("CursorShape = %v, want CursorUnderline", got)
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(5, 5)
	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'a'})
	ev := b.PollEvent()
	if ev.Type != EventKey || ev.Rune != 'a' {
		t.Fatalf("PollEvent = %+v, want key event for 'a'", ev)
	}

	b.Resize(20, 10)
	ev = b.PollEvent()
	if ev.Type != EventResize || ev.Width != 20 || ev.Height != 10 {
		t.Fatalf("PollEvent after Resize = %+v, want 20x10 resize", ev)
	}
	if w, h := b.Size(); w != 20 || h != 10 {
		t.Errorf("Size after Resize = %dx%d, want 20x10", w, h)
	}

	b.Fini()
	if ev := b.PollEvent(); ev.Type != EventClosed {
		t.Errorf("PollEvent after Fini = %+v, want EventClosed", ev)
	}
	// Fini twice and posting after close must not panic.
	b.Fini()
	b.PostEvent(Event{Type: EventKey})
}

func TestNullBackendTitle(t *testing.T) {
	b := NewNullBackend(5, 5)
	b.SetTitle("doc.txt")
	if got := b.Title(); got != "doc.txt" {
		t.Errorf("Title = %q, want %q", got, "doc.txt")
	}
}

func TestModMaskHas(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.Has(ModCtrl) || !m.Has(ModShift) || !m.Has(ModCtrl|ModShift) {
		t.Error("Has should report contained modifiers")
	}
	if m.Has(ModAlt) {
		t.Error("Has(ModAlt) = true for Ctrl|Shift mask")
	}
	if !ModNone.Has(ModNone) {
		t.Error("Has(ModNone) should always be true")
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name    string
		ev      *tcell.EventKey
		wantKey Key
		wantRn  rune
		wantMod ModMask
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'q', 0), KeyRune, 'q', ModNone},
		{"rune alt", tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModAlt), KeyRune, 'f', ModAlt},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, 0), KeyEnter, 0, ModNone},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, 0), KeyTab, 0, ModNone},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), KeyBacktab, 0, ModShift},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, 0), KeyEscape, 0, ModNone},
		{"del backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), KeyBackspace, 0, ModNone},
		{"legacy backspace is ctrl+h", tcell.NewEventKey(tcell.KeyBackspace, 0, 0), KeyCtrlH, 0, ModNone},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, 0), KeyDelete, 0, ModNone},
		{"arrow shift", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), KeyLeft, 0, ModShift},
		{"f12", tcell.NewEventKey(tcell.KeyF12, 0, 0), KeyF12, 0, ModNone},
		{"ctrl+s strips ctrl", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), KeyCtrlS, 0, ModNone},
		{"ctrl+shift+s keeps shift", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl | tcell.ModShift), KeyCtrlS, 0, ModShift},
		{"ctrl+alt+s keeps alt", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl | tcell.ModAlt), KeyCtrlS, 0, ModAlt},
		{"ctrl+q", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), KeyCtrlQ, 0, ModNone},
		{"unmapped", tcell.NewEventKey(tcell.KeyF20, 0, 0), KeyNone, 0, ModNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, r, mod := convertKey(tt.ev)
			if key != tt.wantKey || r != tt.wantRn || mod != tt.wantMod {
				t.Errorf("convertKey = (%v, %q, %v), want (%v, %q, %v)",
					key, r, mod, tt.wantKey, tt.wantRn, tt.wantMod)
			}
		})
	}
}

func TestConvertButton(t *testing.T) {
	tests := []struct {
		mask tcell.ButtonMask
		want MouseButton
	}{
		{tcell.Button1, MouseLeft},
		{tcell.Button2, MouseRight},
		{tcell.Button3, MouseMiddle},
		{0, MouseNone},
	}
	for _, tt := range tests {
		if got := convertButton(tt.mask); got != tt.want {
			t.Errorf("convertButton(%v) = %v, want %v", tt.mask, got, tt.want)
		}
	}
}

func TestConvertMouseGesture(t *testing.T) {
	term := &Terminal{}

	press := term.convertMouse(tcell.NewEventMouse(4, 2, tcell.Button1, 0))
	if press.Action != MousePress || press.Button != MouseLeft || press.MouseX != 4 || press.MouseY != 2 {
		t.Fatalf("press = %+v", press)
	}

	drag := term.convertMouse(tcell.NewEventMouse(6, 2, tcell.Button1, 0))
	if drag.Action != MouseDrag || drag.Button != MouseLeft {
		t.Fatalf("drag = %+v", drag)
	}

	release := term.convertMouse(tcell.NewEventMouse(6, 2, 0, 0))
	if release.Action != MouseRelease || release.Button != MouseLeft {
		t.Fatalf("release = %+v", release)
	}

	move := term.convertMouse(tcell.NewEventMouse(7, 3, 0, 0))
	if move.Action != MouseMove || move.Button != MouseNone {
		t.Fatalf("move = %+v", move)
	}

	wheel := term.convertMouse(tcell.NewEventMouse(1, 1, tcell.WheelUp, 0))
	if wheel.Action != MousePress || wheel.Button != MouseWheelUp {
		t.Fatalf("wheel = %+v", wheel)
	}

	// A wheel event must not disturb drag tracking.
	term.convertMouse(tcell.NewEventMouse(4, 2, tcell.Button1, 0))
	term.convertMouse(tcell.NewEventMouse(4, 2, tcell.WheelDown, 0))
	ev := term.convertMouse(tcell.NewEventMouse(5, 2, tcell.Button1, 0))
	if ev.Action != MouseDrag {
		t.Errorf("after wheel interleave, action = %v, want MouseDrag", ev.Action)
	}
}

func TestToTcellStyle(t *testing.T) {
	st := toTcellStyle(Style{FG: RGB(10, 20, 30), BG: RGB(1, 2, 3), Bold: true, Underline: true})
	fg, bg, attrs := st.Decompose()
	if fg != tcell.NewRGBColor(10, 20, 30) {
		t.Errorf("fg = %v", fg)
	}
	if bg != tcell.NewRGBColor(1, 2, 3) {
		t.Errorf("bg = %v", bg)
	}
	if attrs&tcell.AttrBold == 0 || attrs&tcell.AttrUnderline == 0 {
		t.Errorf("attrs = %v, want bold|underline", attrs)
	}

	def := toTcellStyle(Style{})
	dfg, dbg, dattrs := def.Decompose()
	if dfg != tcell.ColorDefault || dbg != tcell.ColorDefault || dattrs != tcell.AttrNone {
		t.Errorf("zero style = (%v, %v, %v), want defaults", dfg, dbg, dattrs)
	}
}
