package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/lixenwraith/wireview/input"
	"github.com/lixenwraith/wireview/parameter"
)

// Clicker plays short feedback clicks for viewer intents
// Safe to use uninitialized; every call is then a no-op
type Clicker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	initialized bool
}

// NewClicker creates a clicker at the given linear volume (0..1)
func NewClicker(volume float64) *Clicker {
	return &Clicker{
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		volume: volume,
	}
}

// Initialize opens the speaker and starts the mixer
func (c *Clicker) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(c.rate, c.rate.N(parameter.AudioBufferDuration)); err != nil {
		return errors.Wrap(err, "init speaker")
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Play queues a click into the mixer
func (c *Clicker) Play(click Click) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	s := CreateClick(click, c.volume, c.rate)
	if s == nil {
		return
	}

	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// OnIntent plays the click bound to intent, if any
func (c *Clicker) OnIntent(intent input.Intent) {
	c.Play(ClickFor(intent))
}

// ClickFor maps an intent to its feedback click
func ClickFor(intent input.Intent) Click {
	switch intent {
	case input.IntentToggleOverlay:
		return ClickToggle
	case input.IntentReset:
		return ClickReset
	case input.IntentQuit:
		return ClickQuit
	}
	return ClickNone
}

// Close lets queued clicks finish, bounded by one click length, then closes
// the speaker
func (c *Clicker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	deadline := time.Now().Add(parameter.ClickDuration + parameter.AudioBufferDuration)
	for time.Now().Before(deadline) {
		speaker.Lock()
		pending := c.mixer.Len()
		speaker.Unlock()
		if pending == 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	speaker.Clear()
	speaker.Close()
	c.initialized = false
	log.Printf("audio: speaker closed")
}
