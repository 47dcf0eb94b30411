package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/wireview/parameter"
)

// oscillator generates a sine tone for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewOscillator creates a sine streamer of the given frequency and length
func NewOscillator(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release ramps to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		switch {
		case e.position < e.attackSamples:
			vol = float64(e.position) / float64(e.attackSamples)
		case e.position >= releaseStart && e.releaseSamples > 0:
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume applies linear gain; math.Log2(0) is -Inf so zero is mapped to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Click identifies a feedback sound
type Click uint8

const (
	ClickNone Click = iota
	ClickToggle
	ClickReset
	ClickQuit
)

func (c Click) freq() float64 {
	switch c {
	case ClickToggle:
		return parameter.ClickFreqToggle
	case ClickReset:
		return parameter.ClickFreqReset
	case ClickQuit:
		return parameter.ClickFreqQuit
	}
	return 0
}

// CreateClick builds the enveloped, volume-scaled streamer for a click
// Returns nil for ClickNone
func CreateClick(c Click, volume float64, rate beep.SampleRate) beep.Streamer {
	if c == ClickNone {
		return nil
	}
	osc := NewOscillator(c.freq(), parameter.ClickDuration, rate)
	shaped := NewEnvelope(osc, parameter.ClickDuration, parameter.ClickAttack, parameter.ClickRelease, rate)
	return newVolume(shaped, volume)
}
