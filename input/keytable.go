package input

import "github.com/lixenwraith/wireview/terminal"

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (arrows, Tab, function keys)
	Keys map[terminal.Key]Intent

	// Printable rune bindings
	Runes map[rune]Intent
}

// DefaultKeyTable returns the default key bindings
// Keys not listed here are ignored
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[terminal.Key]Intent{
			terminal.KeyUp:    IntentScaleUp,
			terminal.KeyDown:  IntentScaleDown,
			terminal.KeyLeft:  IntentYawLeft,
			terminal.KeyRight: IntentYawRight,
			terminal.KeyTab:   IntentToggleOverlay,
		},
		Runes: map[rune]Intent{
			'q': IntentQuit,
			'j': IntentPitchUp,
			'k': IntentPitchDown,
			'h': IntentRollLeft,
			'l': IntentRollRight,
		},
	}
}

// Lookup resolves an event to an intent, IntentNone for unbound keys and non-key events
func (kt *KeyTable) Lookup(ev terminal.Event) Intent {
	if ev.Type != terminal.EventKey {
		return IntentNone
	}
	if ev.Key == terminal.KeyRune {
		return kt.Runes[ev.Rune]
	}
	return kt.Keys[ev.Key]
}
