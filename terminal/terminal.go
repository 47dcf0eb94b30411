package terminal

import (
	"io"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

var (
	// ErrNotActive is returned by output operations outside Init/Fini
	ErrNotActive = errors.New("terminal not active")

	// ErrNotTTY is returned by Init when stdout is not a terminal
	ErrNotTTY = errors.New("stdout is not a terminal")
)

// Terminal provides the raw terminal services the viewer depends on
type Terminal interface {
	// Init enters raw mode and hides the cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions in cells, re-queried on every call
	Size() (width, height int)

	// SetCell queues a glyph at (x, y), origin top-left; out-of-grid writes are dropped
	SetCell(x, y int, r rune, fg Color)

	// Print queues a string starting at (x, y), clipped at the right edge
	Print(x, y int, s string, fg Color)

	// Clear blanks the back buffer
	Clear() error

	// Flush writes queued cells to the terminal
	Flush() error

	// PollEvent returns the next pending event without blocking
	PollEvent() (Event, bool)
}

// termImpl implements Terminal on a tcell screen
type termImpl struct {
	screen    tcell.Screen
	colorMode ColorMode
	checkTTY  bool

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal on the process tty
func New(colorMode ColorMode) (Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	return &termImpl{screen: screen, colorMode: colorMode, checkTTY: true}, nil
}

// NewWithScreen wraps an existing tcell screen, e.g. a simulation screen in tests
func NewWithScreen(screen tcell.Screen, colorMode ColorMode) Terminal {
	return &termImpl{screen: screen, colorMode: colorMode}
}

// Init enters raw mode and sets up terminal
func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if t.checkTTY && !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTTY
	}

	if err := t.screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}

	t.screen.SetStyle(tcell.StyleDefault)
	t.screen.HideCursor()
	t.screen.Clear()

	t.initialized = true
	return nil
}

// Fini restores terminal state
func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	// tcell restores cursor visibility and termios in Fini
	t.screen.Fini()
	t.finalized = true
}

func (t *termImpl) active() bool {
	return t.initialized && !t.finalized
}

// Size returns current terminal dimensions
func (t *termImpl) Size() (int, int) {
	return t.screen.Size()
}

// SetCell queues a single styled glyph
func (t *termImpl) SetCell(x, y int, r rune, fg Color) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active() {
		return
	}

	w, h := t.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	t.screen.SetContent(x, y, r, nil, style(fg, t.colorMode))
}

// Print queues a string, one rune per cell
func (t *termImpl) Print(x, y int, s string, fg Color) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active() {
		return
	}

	w, h := t.screen.Size()
	if y < 0 || y >= h {
		return
	}
	st := style(fg, t.colorMode)
	for _, r := range s {
		if x >= w {
			return
		}
		if x >= 0 {
			t.screen.SetContent(x, y, r, nil, st)
		}
		x++
	}
}

// Clear blanks the back buffer; the physical screen changes on Flush
func (t *termImpl) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active() {
		return ErrNotActive
	}
	t.screen.Clear()
	return nil
}

// Flush writes pending cell changes to the terminal
func (t *termImpl) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active() {
		return ErrNotActive
	}
	t.screen.Show()
	return nil
}

// PollEvent returns at most one pending event without blocking
func (t *termImpl) PollEvent() (Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active() {
		return Event{Type: EventClosed}, true
	}

	if !t.screen.HasPendingEvent() {
		return Event{}, false
	}
	// One raw event per call; events with no mapping are consumed and reported as none
	ev, ok := translateEvent(t.screen.PollEvent())
	if !ok {
		return Event{}, false
	}
	if ev.Type == EventResize {
		// Physical screen no longer matches the front buffer
		t.screen.Sync()
	}
	return ev, true
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiMouseSGROff)
	w.Write(csiBracketPasteOff)

	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
		// Escape sequences alone don't restore termios
		resetTerminalMode(int(f.Fd()))
	}
}
