package terminal

import "github.com/gdamore/tcell/v2"

// Key represents a parsed input key
type Key uint16

// Key constants
const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
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

	KeyCtrlC
	KeyCtrlQ
)

// EventType discriminates Event
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventClosed
)

// Event is a single input event
type Event struct {
	Type   EventType
	Key    Key
	Rune   rune
	Width  int // For EventResize
	Height int // For EventResize
}

// tcellKeys maps tcell special keys to Key
var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
	tcell.KeyCtrlC:      KeyCtrlC,
	tcell.KeyCtrlQ:      KeyCtrlQ,
}

// translateEvent converts a tcell event; ok is false for events the viewer ignores
func translateEvent(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if e.Key() == tcell.KeyRune {
			return Event{Type: EventKey, Key: KeyRune, Rune: e.Rune()}, true
		}
		k, ok := tcellKeys[e.Key()]
		if !ok {
			return Event{}, false
		}
		return Event{Type: EventKey, Key: k}, true
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true
	case nil:
		// PollEvent returns nil once the screen is finalized
		return Event{Type: EventClosed}, true
	}
	return Event{}, false
}
