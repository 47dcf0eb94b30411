package input

// Intent discriminates semantic viewer actions
type Intent uint8

const (
	IntentNone Intent = iota

	// System-level intents
	IntentQuit
	IntentToggleOverlay
	IntentReset // restore the initially loaded vertex positions

	// Scale
	IntentScaleUp
	IntentScaleDown

	// Rotation: yaw around Y, pitch around X, roll around Z
	IntentYawLeft
	IntentYawRight
	IntentPitchUp
	IntentPitchDown
	IntentRollLeft
	IntentRollRight
)

var intentNames = [...]string{
	IntentNone:          "none",
	IntentQuit:          "quit",
	IntentToggleOverlay: "toggle_overlay",
	IntentReset:         "reset",
	IntentScaleUp:       "scale_up",
	IntentScaleDown:     "scale_down",
	IntentYawLeft:       "yaw_left",
	IntentYawRight:      "yaw_right",
	IntentPitchUp:       "pitch_up",
	IntentPitchDown:     "pitch_down",
	IntentRollLeft:      "roll_left",
	IntentRollRight:     "roll_right",
}

// String returns the canonical action name used in keymap config
func (i Intent) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "unknown"
}

// actionRegistry maps canonical action names to intents
// Used by keymap config loader to resolve TOML action strings to bindings
var actionRegistry map[string]Intent

func init() {
	actionRegistry = make(map[string]Intent, len(intentNames))
	for i, name := range intentNames {
		actionRegistry[name] = Intent(i)
	}
}

// IntentByName resolves an action name; "none" yields IntentNone (unbind)
func IntentByName(name string) (Intent, bool) {
	i, ok := actionRegistry[name]
	return i, ok
}
