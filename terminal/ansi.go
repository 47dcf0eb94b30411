// @focus: #terminal { ansi }
package terminal

// Raw restore sequences, written only on crash paths where tcell cannot run Fini
var (
	csiSGR0 = []byte("\x1b[0m")
	csiRIS  = []byte("\x1bc") // Reset to Initial State (emergency)

	csiCursorShow      = []byte("\x1b[?25h")
	csiAltScreenExit   = []byte("\x1b[?1049l")
	csiAutoWrapOn      = []byte("\x1b[?7h")
	csiMouseClickOff   = []byte("\x1b[?1000l")
	csiMouseDragOff    = []byte("\x1b[?1002l")
	csiMouseMotionOff  = []byte("\x1b[?1003l")
	csiMouseSGROff     = []byte("\x1b[?1006l")
	csiBracketPasteOff = []byte("\x1b[?2004l")
)
