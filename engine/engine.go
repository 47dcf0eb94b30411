package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/lixenwraith/wireview/input"
	"github.com/lixenwraith/wireview/model"
	"github.com/lixenwraith/wireview/parameter"
	"github.com/lixenwraith/wireview/render"
	"github.com/lixenwraith/wireview/terminal"
	"github.com/lixenwraith/wireview/vmath"
)

// State is the engine lifecycle state
type State uint8

const (
	StateRunning  State = iota
	StateStopping       // quit received, frame loop exits before rendering
	StateStopped        // terminal released, Run returned
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Terminal is the terminal the engine acquires for the duration of Run
type Terminal interface {
	render.Surface
	Init() error
	Fini()
	PollEvent() (terminal.Event, bool)
}

// Config holds engine tunables
type Config struct {
	FieldOfView  float32
	MaxFrameRate float32

	// RotateSpeed is radians per second of frame time per rotation event
	RotateSpeed float32
	ScaleUp     float32
	ScaleDown   float32

	ShowOverlay bool
	Glyph       rune

	Keys  *input.KeyTable
	Clock TimeProvider

	// OnIntent observes every dispatched intent, after it is applied
	OnIntent func(input.Intent)
}

// DefaultConfig returns the stock viewer settings
func DefaultConfig() Config {
	return Config{
		FieldOfView:  parameter.FieldOfView,
		MaxFrameRate: parameter.MaxFrameRate,
		RotateSpeed:  parameter.RotateSpeed,
		ScaleUp:      parameter.ScaleUpFactor,
		ScaleDown:    parameter.ScaleDownFactor,
		ShowOverlay:  parameter.ShowOverlay,
		Glyph:        parameter.Glyph,
	}
}

// Engine runs the frame loop: poll input, transform vertices, render
// Single-threaded; all state is owned by the goroutine calling Run or Tick
type Engine struct {
	term   Terminal
	canvas *render.Canvas
	cfg    Config

	frameInterval time.Duration
	initial       []vmath.Vec3

	state       State
	showOverlay bool
	lastFrame   time.Time

	frames     uint64
	drawnEdges int
}

// New creates an engine drawing to term; missing Keys and Clock get defaults
func New(term Terminal, cfg Config) *Engine {
	if cfg.Keys == nil {
		cfg.Keys = input.DefaultKeyTable()
	}
	if cfg.Clock == nil {
		cfg.Clock = NewMonotonicTimeProvider()
	}

	canvas := render.NewCanvas(term)
	if cfg.Glyph != 0 {
		canvas.Glyph = cfg.Glyph
	}

	e := &Engine{
		term:          term,
		canvas:        canvas,
		cfg:           cfg,
		frameInterval: time.Duration(float64(time.Second) / float64(cfg.MaxFrameRate)),
		state:         StateRunning,
		showOverlay:   cfg.ShowOverlay,
	}
	e.lastFrame = cfg.Clock.Now()
	return e
}

// SetModel replaces the rendered model and records its pose for reset
func (e *Engine) SetModel(m *model.Model) {
	e.canvas.SetModel(m)
	e.initial = make([]vmath.Vec3, len(m.Vertices))
	copy(e.initial, m.Vertices)
}

// Canvas exposes the canvas owning the vertex and edge lists
func (e *Engine) Canvas() *render.Canvas { return e.canvas }

// State returns the lifecycle state
func (e *Engine) State() State { return e.state }

// OverlayVisible reports whether the status line is drawn
func (e *Engine) OverlayVisible() bool { return e.showOverlay }

// Frames returns the number of rendered frames
func (e *Engine) Frames() uint64 { return e.frames }

// DrawnEdges returns the number of edges rasterized in the last frame
func (e *Engine) DrawnEdges() int { return e.drawnEdges }

// Run acquires the terminal, loops until quit, and releases the terminal on
// every exit path. A render error ends the loop and is returned after release
func (e *Engine) Run() (err error) {
	if err := e.term.Init(); err != nil {
		return errors.Wrap(err, "acquire terminal")
	}
	defer func() {
		if rerr := e.release(); err == nil {
			err = rerr
		}
	}()

	e.state = StateRunning
	e.lastFrame = e.cfg.Clock.Now()
	log.Printf("engine: running, fov=%.1f max_fps=%.1f vertices=%d edges=%d",
		e.cfg.FieldOfView, e.cfg.MaxFrameRate, e.canvas.VertexCount(), e.canvas.EdgeCount())

	for e.state == StateRunning {
		rendered, err := e.Tick()
		if err != nil {
			return err
		}
		if !rendered {
			e.idle()
		}
	}

	log.Printf("engine: stopped after %d frames", e.frames)
	return nil
}

// Tick runs one pass of the loop. Before a full frame interval has elapsed
// since the last rendered frame it does nothing. Otherwise it consumes at
// most one input event, applies it, and renders unless quit was requested
func (e *Engine) Tick() (rendered bool, err error) {
	if e.state != StateRunning {
		return false, nil
	}

	elapsed := e.cfg.Clock.Now().Sub(e.lastFrame)
	if elapsed < e.frameInterval {
		return false, nil
	}
	dt := float32(elapsed.Seconds())

	if ev, ok := e.term.PollEvent(); ok {
		if ev.Type == terminal.EventClosed {
			e.dispatch(input.IntentQuit, dt)
		} else {
			e.dispatch(e.cfg.Keys.Lookup(ev), dt)
		}
	}

	if e.state == StateStopping {
		return false, nil
	}

	if err := e.render(dt); err != nil {
		return false, err
	}
	e.lastFrame = e.cfg.Clock.Now()
	return true, nil
}

// idle waits out part of the remaining frame interval
func (e *Engine) idle() {
	remaining := e.frameInterval - e.cfg.Clock.Now().Sub(e.lastFrame)
	if remaining <= 0 {
		return
	}
	time.Sleep(min(remaining, parameter.IdleWait))
}

func (e *Engine) dispatch(intent input.Intent, dt float32) {
	if intent == input.IntentNone {
		return
	}

	angle := dt * e.cfg.RotateSpeed
	switch intent {
	case input.IntentQuit:
		e.state = StateStopping
	case input.IntentScaleUp:
		e.scale(e.cfg.ScaleUp)
	case input.IntentScaleDown:
		e.scale(e.cfg.ScaleDown)
	case input.IntentYawLeft:
		e.canvas.Transform(func(v vmath.Vec3) vmath.Vec3 { return v.RotateY(angle) })
	case input.IntentYawRight:
		e.canvas.Transform(func(v vmath.Vec3) vmath.Vec3 { return v.RotateY(-angle) })
	case input.IntentPitchUp:
		e.canvas.Transform(func(v vmath.Vec3) vmath.Vec3 { return v.RotateX(angle) })
	case input.IntentPitchDown:
		e.canvas.Transform(func(v vmath.Vec3) vmath.Vec3 { return v.RotateX(-angle) })
	case input.IntentRollLeft:
		e.canvas.Transform(func(v vmath.Vec3) vmath.Vec3 { return v.RotateZ(angle) })
	case input.IntentRollRight:
		e.canvas.Transform(func(v vmath.Vec3) vmath.Vec3 { return v.RotateZ(-angle) })
	case input.IntentToggleOverlay:
		e.showOverlay = !e.showOverlay
	case input.IntentReset:
		copy(e.canvas.Vertices, e.initial)
	}

	if e.cfg.OnIntent != nil {
		e.cfg.OnIntent(intent)
	}
}

func (e *Engine) scale(factor float32) {
	e.canvas.Transform(func(v vmath.Vec3) vmath.Vec3 { return v.Scale(factor) })
}

func (e *Engine) render(dt float32) error {
	if err := e.canvas.Clear(); err != nil {
		return errors.Wrap(err, "clear")
	}

	e.drawnEdges = e.canvas.Draw(e.cfg.FieldOfView)

	if e.showOverlay {
		e.canvas.Print(0, 0, e.statusLine(dt))
	}

	if err := e.canvas.Update(); err != nil {
		return errors.Wrap(err, "flush")
	}
	e.frames++
	return nil
}

// statusLine reports the instantaneous frame rate of the frame being drawn
func (e *Engine) statusLine(dt float32) string {
	fps := 0
	if dt > 0 {
		fps = int(math32.Round(1 / dt))
	}
	return fmt.Sprintf("%s | 'q' quit, arrows/h/j/k/l rotate, tab overlay | FPS: %d | %d vertices, %d edges",
		parameter.OverlayTitle, fps, e.canvas.VertexCount(), e.canvas.EdgeCount())
}

// release clears the screen, flushes, and restores the terminal
func (e *Engine) release() error {
	defer func() {
		e.term.Fini()
		e.state = StateStopped
	}()

	if err := e.canvas.Clear(); err != nil {
		return errors.Wrap(err, "clear on exit")
	}
	if err := e.canvas.Update(); err != nil {
		return errors.Wrap(err, "flush on exit")
	}
	return nil
}
