// Package backend abstracts the terminal so the renderer and the event
// loop can be tested without a real TTY. The production implementation
// wraps tcell; NullBackend records cells and replays scripted events.
package backend

import "sync"

// EventType identifies what kind of terminal event occurred.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventPaste
	// EventClosed is delivered once the backend has been shut down and
	// no further events will arrive.
	EventClosed
)

// Key identifies a non-printable key. Printable input arrives as KeyRune
// with the rune in Event.Rune.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyTab
	KeyBacktab
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// ModMask is a bitmask of modifier keys held during an event.
type ModMask int

const (
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta

	ModNone ModMask = 0
)

// Has reports whether all modifiers in mask are set.
func (m ModMask) Has(mask ModMask) bool {
	return m&mask == mask
}

// MouseButton identifies which button a mouse event refers to.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction distinguishes the phases of a button gesture. Wheel events
// always carry MousePress.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseDrag
	MouseMove
)

// CursorStyle selects the terminal cursor shape.
type CursorStyle int

const (
	CursorDefault CursorStyle = iota
	CursorBlock
	CursorUnderline
)

// Event is a single terminal event. Only the fields relevant to Type
// are populated.
type Event struct {
	Type EventType

	// Key events.
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse events.
	MouseX int
	MouseY int
	Button MouseButton
	Action MouseAction

	// Resize events.
	Width  int
	Height int

	// Paste events carry the full pasted text.
	Paste string
}

// Color is a 24-bit RGB color. The zero value means the terminal default.
type Color struct {
	R, G, B uint8
	Set     bool
}

// RGB builds a concrete color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// Style describes how a cell is painted.
type Style struct {
	FG        Color
	BG        Color
	Bold      bool
	Underline bool
	Reverse   bool
}

// Cell is one screen cell: a rune and its style.
type Cell struct {
	Rune  rune
	Style Style
}

// Backend is the terminal surface the editor draws on and reads events
// from. PollEvent blocks; after Fini it returns an EventClosed event so
// pumping goroutines can exit.
type Backend interface {
	Init() error
	Fini()
	Size() (width, height int)
	SetCell(x, y int, cell Cell)
	Clear()
	Show()
	ShowCursor(x, y int)
	HideCursor()
	SetCursorStyle(style CursorStyle)
	SetTitle(title string)
	PollEvent() Event
	PostEvent(ev Event)
}

// NullBackend is an in-memory Backend for tests. Cells are kept in a
// grid that tests can inspect, and events are fed through a channel via
// PostEvent.
type NullBackend struct {
	mu        sync.Mutex
	width     int
	height    int
	cells     []Cell
	title     string
	cursorX   int
	cursorY   int
	cursorOn  bool
	cursor    CursorStyle
	events    chan Event
	closeOnce sync.Once
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		events: make(chan Event, 100),
	}
}

// Init implements Backend.
func (n *NullBackend) Init() error { return nil }

// Fini implements Backend. It closes the event channel so PollEvent
// reports EventClosed.
func (n *NullBackend) Fini() {
	n.closeOnce.Do(func() { close(n.events) })
}

// Size implements Backend.
func (n *NullBackend) Size() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.width, n.height
}

// SetCell implements Backend.
func (n *NullBackend) SetCell(x, y int, cell Cell) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if x < 0 || y < 0 || x >= n.width || y >= n.height {
		return
	}
	n.cells[y*n.width+x] = cell
}

// Clear implements Backend.
func (n *NullBackend) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.cells {
		n.cells[i] = Cell{}
	}
}

// Show implements Backend. The null backend has nothing to flush.
func (n *NullBackend) Show() {}

// ShowCursor implements Backend.
func (n *NullBackend) ShowCursor(x, y int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cursorX, n.cursorY = x, y
	n.cursorOn = true
}

// HideCursor implements Backend.
func (n *NullBackend) HideCursor() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cursorOn = false
}

// SetCursorStyle implements Backend.
func (n *NullBackend) SetCursorStyle(style CursorStyle) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cursor = style
}

// SetTitle implements Backend.
func (n *NullBackend) SetTitle(title string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.title = title
}

// PollEvent implements Backend. It blocks until an event is posted or
// the backend is finalized.
func (n *NullBackend) PollEvent() Event {
	ev, ok := <-n.events
	if !ok {
		return Event{Type: EventClosed}
	}
	return ev
}

// PostEvent implements Backend. The event is dropped if the queue is
// full or the backend is closed.
func (n *NullBackend) PostEvent(ev Event) {
	defer func() { recover() }()
	select {
	case n.events <- ev:
	default:
	}
}

// Resize changes the grid dimensions and posts a resize event.
func (n *NullBackend) Resize(width, height int) {
	n.mu.Lock()
	n.width, n.height = width, height
	n.cells = make([]Cell, width*height)
	n.mu.Unlock()
	n.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}

// CellAt returns the cell at (x, y) for test assertions.
func (n *NullBackend) CellAt(x, y int) Cell {
	n.mu.Lock()
	defer n.mu.Unlock()
	if x < 0 || y < 0 || x >= n.width || y >= n.height {
		return Cell{}
	}
	return n.cells[y*n.width+x]
}

// RowText returns the runes of row y as a string, with trailing blank
// cells trimmed. Zero cells read as spaces.
func (n *NullBackend) RowText(y int) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if y < 0 || y >= n.height {
		return ""
	}
	runes := make([]rune, 0, n.width)
	for x := 0; x < n.width; x++ {
		r := n.cells[y*n.width+x].Rune
		if r == 0 {
			r = ' '
		}
		runes = append(runes, r)
	}
	end := len(runes)
	for end > 0 && runes[end-1] == ' ' {
		end--
	}
	return string(runes[:end])
}

// Title returns the last title set on the backend.
func (n *NullBackend) Title() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.title
}

// Cursor returns the cursor position and whether it is visible.
func (n *NullBackend) Cursor() (x, y int, visible bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cursorX, n.cursorY, n.cursorOn
}

// CursorShape returns the last cursor style set on the backend.
func (n *NullBackend) CursorShape() CursorStyle {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cursor
}
