package backend

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal is the tcell-backed Backend used in production.
//
// Draw calls are serialized with a mutex; PollEvent is unguarded and
// must be called from a single goroutine.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen

	// prevButtons tracks held buttons across mouse events so presses,
	// drags and releases can be told apart. Only PollEvent touches it.
	prevButtons tcell.ButtonMask
}

// NewTerminal creates a Terminal for the current TTY.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// Init implements Backend. Mouse reporting and bracketed paste are
// enabled up front.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnablePaste()
	return nil
}

// Fini implements Backend. The cursor shape is restored before the
// screen is torn down.
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetCursorStyle(tcell.CursorStyleDefault)
	t.screen.Fini()
}

// Size implements Backend.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// SetCell implements Backend.
func (t *Terminal) SetCell(x, y int, cell Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetContent(x, y, cell.Rune, nil, toTcellStyle(cell.Style))
}

// Clear implements Backend.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

// Show implements Backend.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

// ShowCursor implements Backend.
func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.ShowCursor(x, y)
}

// HideCursor implements Backend.
func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.HideCursor()
}

// SetCursorStyle implements Backend.
func (t *Terminal) SetCursorStyle(style CursorStyle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch style {
	case CursorBlock:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	case CursorUnderline:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyUnderline)
	default:
		t.screen.SetCursorStyle(tcell.CursorStyleDefault)
	}
}

// SetTitle implements Backend.
func (t *Terminal) SetTitle(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetTitle(title)
}

// PollEvent implements Backend. Bracketed pastes are collected into a
// single EventPaste; a nil event from tcell means the screen was
// finalized and maps to EventClosed.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventClosed}
		}
		switch e := ev.(type) {
		case *tcell.EventKey:
			key, r, mod := convertKey(e)
			if key == KeyNone {
				continue
			}
			return Event{Type: EventKey, Key: key, Rune: r, Mod: mod}
		case *tcell.EventMouse:
			return t.convertMouse(e)
		case *tcell.EventResize:
			t.screen.Sync()
			w, h := e.Size()
			return Event{Type: EventResize, Width: w, Height: h}
		case *tcell.EventPaste:
			if e.Start() {
				return t.collectPaste()
			}
		case *tcell.EventInterrupt:
			if posted, ok := e.Data().(Event); ok {
				return posted
			}
		}
	}
}

// PostEvent implements Backend. The event is delivered through tcell's
// interrupt queue so it interleaves with real terminal input.
func (t *Terminal) PostEvent(ev Event) {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(ev))
}

// collectPaste gathers the key events between bracketed paste markers
// into one paste event.
func (t *Terminal) collectPaste() Event {
	var sb strings.Builder
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			break
		}
		switch e := ev.(type) {
		case *tcell.EventPaste:
			if e.End() {
				return Event{Type: EventPaste, Paste: sb.String()}
			}
		case *tcell.EventKey:
			switch e.Key() {
			case tcell.KeyRune:
				sb.WriteRune(e.Rune())
			case tcell.KeyEnter:
				sb.WriteByte('\n')
			case tcell.KeyTab:
				sb.WriteByte('\t')
			}
		}
	}
	return Event{Type: EventPaste, Paste: sb.String()}
}

func (t *Terminal) convertMouse(e *tcell.EventMouse) Event {
	x, y := e.Position()
	ev := Event{
		Type:   EventMouse,
		MouseX: x,
		MouseY: y,
		Mod:    convertMod(e.Modifiers()),
	}

	buttons := e.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		ev.Button = MouseWheelUp
		ev.Action = MousePress
		return ev
	case buttons&tcell.WheelDown != 0:
		ev.Button = MouseWheelDown
		ev.Action = MousePress
		return ev
	}

	held := buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	prev := t.prevButtons
	t.prevButtons = held
	switch {
	case held != 0 && prev == 0:
		ev.Button = convertButton(held)
		ev.Action = MousePress
	case held != 0:
		ev.Button = convertButton(held)
		ev.Action = MouseDrag
	case prev != 0:
		ev.Button = convertButton(prev)
		ev.Action = MouseRelease
	default:
		ev.Button = MouseNone
		ev.Action = MouseMove
	}
	return ev
}

func convertButton(mask tcell.ButtonMask) MouseButton {
	switch {
	case mask&tcell.Button1 != 0:
		return MouseLeft
	case mask&tcell.Button3 != 0:
		return MouseMiddle
	case mask&tcell.Button2 != 0:
		return MouseRight
	}
	return MouseNone
}

// convertKey maps a tcell key event to backend types. tcell aliases the
// control bytes: 0x08 is both Ctrl+H and the legacy backspace key, 0x09
// is Tab, 0x0D is Enter, 0x1B is Escape. Each byte gets exactly one
// meaning here; modern terminals send 0x7F (KeyBackspace2) for the
// backspace key, so 0x08 is treated as Ctrl+H.
func convertKey(e *tcell.EventKey) (Key, rune, ModMask) {
	mod := convertMod(e.Modifiers())

	var key Key
	switch e.Key() {
	case tcell.KeyRune:
		return KeyRune, e.Rune(), mod
	case tcell.KeyEnter:
		key = KeyEnter
	case tcell.KeyTab:
		key = KeyTab
	case tcell.KeyBacktab:
		key = KeyBacktab
	case tcell.KeyEscape:
		key = KeyEscape
	case tcell.KeyBackspace:
		key = KeyCtrlH
	case tcell.KeyBackspace2:
		key = KeyBackspace
	case tcell.KeyDelete:
		key = KeyDelete
	case tcell.KeyInsert:
		key = KeyInsert
	case tcell.KeyUp:
		key = KeyUp
	case tcell.KeyDown:
		key = KeyDown
	case tcell.KeyLeft:
		key = KeyLeft
	case tcell.KeyRight:
		key = KeyRight
	case tcell.KeyHome:
		key = KeyHome
	case tcell.KeyEnd:
		key = KeyEnd
	case tcell.KeyPgUp:
		key = KeyPageUp
	case tcell.KeyPgDn:
		key = KeyPageDown
	case tcell.KeyF1:
		key = KeyF1
	case tcell.KeyF2:
		key = KeyF2
	case tcell.KeyF3:
		key = KeyF3
	case tcell.KeyF4:
		key = KeyF4
	case tcell.KeyF5:
		key = KeyF5
	case tcell.KeyF6:
		key = KeyF6
	case tcell.KeyF7:
		key = KeyF7
	case tcell.KeyF8:
		key = KeyF8
	case tcell.KeyF9:
		key = KeyF9
	case tcell.KeyF10:
		key = KeyF10
	case tcell.KeyF11:
		key = KeyF11
	case tcell.KeyF12:
		key = KeyF12
	case tcell.KeyCtrlA:
		key = KeyCtrlA
	case tcell.KeyCtrlB:
		key = KeyCtrlB
	case tcell.KeyCtrlC:
		key = KeyCtrlC
	case tcell.KeyCtrlD:
		key = KeyCtrlD
	case tcell.KeyCtrlE:
		key = KeyCtrlE
	case tcell.KeyCtrlF:
		key = KeyCtrlF
	case tcell.KeyCtrlG:
		key = KeyCtrlG
	case tcell.KeyCtrlJ:
		key = KeyCtrlJ
	case tcell.KeyCtrlK:
		key = KeyCtrlK
	case tcell.KeyCtrlL:
		key = KeyCtrlL
	case tcell.KeyCtrlN:
		key = KeyCtrlN
	case tcell.KeyCtrlO:
		key = KeyCtrlO
	case tcell.KeyCtrlP:
		key = KeyCtrlP
	case tcell.KeyCtrlQ:
		key = KeyCtrlQ
	case tcell.KeyCtrlR:
		key = KeyCtrlR
	case tcell.KeyCtrlS:
		key = KeyCtrlS
	case tcell.KeyCtrlT:
		key = KeyCtrlT
	case tcell.KeyCtrlU:
		key = KeyCtrlU
	case tcell.KeyCtrlV:
		key = KeyCtrlV
	case tcell.KeyCtrlW:
		key = KeyCtrlW
	case tcell.KeyCtrlX:
		key = KeyCtrlX
	case tcell.KeyCtrlY:
		key = KeyCtrlY
	case tcell.KeyCtrlZ:
		key = KeyCtrlZ
	default:
		return KeyNone, 0, mod
	}

	// The Ctrl modifier is implied by the key itself; keymap chords
	// record only the extra modifiers.
	if key >= KeyCtrlA && key <= KeyCtrlZ {
		mod &^= ModCtrl
	}
	return key, 0, mod
}

func convertMod(m tcell.ModMask) ModMask {
	var mod ModMask
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mod |= ModMeta
	}
	return mod
}

func toTcellStyle(s Style) tcell.Style {
	st := tcell.StyleDefault
	if s.FG.Set {
		st = st.Foreground(tcell.NewRGBColor(int32(s.FG.R), int32(s.FG.G), int32(s.FG.B)))
	}
	if s.BG.Set {
		st = st.Background(tcell.NewRGBColor(int32(s.BG.R), int32(s.BG.G), int32(s.BG.B)))
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	if s.Reverse {
		st = st.Reverse(true)
	}
	return st
}
