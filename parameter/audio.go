package parameter

import "time"

// Key Feedback Audio
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 48000

	// AudioBufferDuration sizes the speaker buffer
	AudioBufferDuration = 50 * time.Millisecond

	// ClickDuration is the total length of a feedback click
	ClickDuration = 40 * time.Millisecond

	// ClickAttack and ClickRelease shape the click envelope
	ClickAttack  = 2 * time.Millisecond
	ClickRelease = 30 * time.Millisecond

	// ClickVolume is the linear gain applied to clicks (0..1)
	ClickVolume = 0.3

	// Click frequencies per feedback kind
	ClickFreqToggle = 880.0
	ClickFreqReset  = 660.0
	ClickFreqQuit   = 440.0
)
