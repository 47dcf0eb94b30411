package engine

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wireview/input"
	"github.com/lixenwraith/wireview/model"
	"github.com/lixenwraith/wireview/terminal"
	"github.com/lixenwraith/wireview/vmath"
)

// fakeTerminal is a scripted Terminal recording lifecycle and output calls
type fakeTerminal struct {
	w, h    int
	events  []terminal.Event
	cells   int
	printed []string

	inits, finis    int
	clears, flushes int
	polls           int

	initErr  error
	flushErr error
}

func (f *fakeTerminal) Init() error {
	f.inits++
	return f.initErr
}

func (f *fakeTerminal) Fini() { f.finis++ }

func (f *fakeTerminal) Size() (int, int) { return f.w, f.h }

func (f *fakeTerminal) SetCell(_, _ int, _ rune, _ terminal.Color) { f.cells++ }

func (f *fakeTerminal) Print(_, _ int, s string, _ terminal.Color) {
	f.printed = append(f.printed, s)
}

func (f *fakeTerminal) Clear() error {
	f.clears++
	f.cells = 0
	f.printed = nil
	return nil
}

func (f *fakeTerminal) Flush() error {
	f.flushes++
	return f.flushErr
}

func (f *fakeTerminal) PollEvent() (terminal.Event, bool) {
	f.polls++
	if len(f.events) == 0 {
		return terminal.Event{}, false
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, true
}

func keyEvent(k terminal.Key) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: k}
}

func runeEvent(r rune) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: r}
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, events ...terminal.Event) (*Engine, *fakeTerminal, *MockTimeProvider) {
	t.Helper()
	term := &fakeTerminal{w: 120, h: 60, events: events}
	clock := NewMockTimeProvider(epoch)
	cfg := DefaultConfig()
	cfg.Clock = clock
	e := New(term, cfg)
	e.SetModel(model.Cube())
	return e, term, clock
}

// tick advances the clock by d and runs one Tick, failing on error
func tick(t *testing.T, e *Engine, clock *MockTimeProvider, d time.Duration) bool {
	t.Helper()
	clock.Advance(d)
	rendered, err := e.Tick()
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	return rendered
}

func checkVerticesNear(t *testing.T, want, got []vmath.Vec3) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("Expected %d vertices, got %d", len(want), len(got))
	}
	for i := range want {
		d := want[i].Sub(got[i])
		if math32.Abs(d.X) > 1e-4 || math32.Abs(d.Y) > 1e-4 || math32.Abs(d.Z) > 1e-4 {
			t.Errorf("Vertex %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

// frame is one 60 FPS interval rounded up, dt = 0.02s
const frame = 20 * time.Millisecond

func TestTickFrameLimiter(t *testing.T) {
	e, term, clock := newTestEngine(t, keyEvent(terminal.KeyUp))
	before := append([]vmath.Vec3(nil), e.Canvas().Vertices...)

	if tick(t, e, clock, 10*time.Millisecond) {
		t.Error("Expected no render before the frame interval")
	}
	if term.polls != 0 {
		t.Errorf("Input must not be polled before the interval elapses, got %d polls", term.polls)
	}
	if term.flushes != 0 {
		t.Errorf("Expected no flush, got %d", term.flushes)
	}
	if !reflect.DeepEqual(before, e.Canvas().Vertices) {
		t.Error("Vertices changed before the frame interval")
	}

	if !tick(t, e, clock, 10*time.Millisecond) {
		t.Error("Expected render once the interval elapsed")
	}
	if term.polls != 1 {
		t.Errorf("Expected 1 poll, got %d", term.polls)
	}
	if reflect.DeepEqual(before, e.Canvas().Vertices) {
		t.Error("Expected scale-up to change vertices")
	}
}

func TestTickRendersCube(t *testing.T) {
	e, term, clock := newTestEngine(t)

	if !tick(t, e, clock, frame) {
		t.Fatal("Expected first frame to render")
	}
	if e.DrawnEdges() != 12 {
		t.Errorf("Expected 12 edges drawn, got %d", e.DrawnEdges())
	}
	if e.Frames() != 1 {
		t.Errorf("Expected 1 frame, got %d", e.Frames())
	}
	if term.cells == 0 {
		t.Error("Expected cells to be written")
	}
	if term.clears != 1 || term.flushes != 1 {
		t.Errorf("Expected 1 clear and 1 flush, got %d and %d", term.clears, term.flushes)
	}

	// Next tick is limited again until another interval passes
	if tick(t, e, clock, 0) {
		t.Error("Expected the limiter to hold the next tick")
	}
}

func TestTickOverlay(t *testing.T) {
	e, term, clock := newTestEngine(t, keyEvent(terminal.KeyTab))

	tick(t, e, clock, frame)
	if e.OverlayVisible() {
		t.Error("Expected first Tab to hide the overlay")
	}
	if len(term.printed) != 0 {
		t.Errorf("Expected no overlay output, got %v", term.printed)
	}

	term.events = []terminal.Event{keyEvent(terminal.KeyTab)}
	tick(t, e, clock, frame)
	if !e.OverlayVisible() {
		t.Error("Expected second Tab to show the overlay")
	}
	if len(term.printed) != 1 {
		t.Fatalf("Expected one status line, got %v", term.printed)
	}

	line := term.printed[0]
	if !strings.HasPrefix(line, "wireview") {
		t.Errorf("Expected status line to start with the title, got %q", line)
	}
	for _, want := range []string{"FPS: 50", "8 vertices, 12 edges"} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected status line to contain %q, got %q", want, line)
		}
	}
}

func TestTickQuitSkipsRender(t *testing.T) {
	e, term, clock := newTestEngine(t, runeEvent('q'))

	if tick(t, e, clock, frame) {
		t.Error("Expected quit frame not to render")
	}
	if e.State() != StateStopping {
		t.Errorf("Expected state stopping, got %v", e.State())
	}
	if term.clears != 0 || term.flushes != 0 {
		t.Errorf("Expected no clear or flush, got %d and %d", term.clears, term.flushes)
	}

	// Stopped engines ignore further ticks
	if tick(t, e, clock, frame) {
		t.Error("Expected no render after quit")
	}
	if term.polls != 1 {
		t.Errorf("Expected no further polls, got %d", term.polls)
	}
}

func TestTickClosedInputStops(t *testing.T) {
	e, _, clock := newTestEngine(t, terminal.Event{Type: terminal.EventClosed})

	tick(t, e, clock, frame)
	if e.State() != StateStopping {
		t.Errorf("Expected state stopping, got %v", e.State())
	}
}

func TestTickOneEventPerFrame(t *testing.T) {
	e, term, clock := newTestEngine(t, keyEvent(terminal.KeyUp), keyEvent(terminal.KeyUp))

	tick(t, e, clock, frame)

	if len(term.events) != 1 {
		t.Errorf("Expected one event left queued, got %d", len(term.events))
	}
	want := model.Cube().Vertices[0].Scale(1.01)
	if got := e.Canvas().Vertices[0]; math32.Abs(want.X-got.X) > 1e-4 {
		t.Errorf("Expected a single scale step, got %+v want %+v", got, want)
	}
}

func TestTickTransforms(t *testing.T) {
	angle := float32(0.02) * DefaultConfig().RotateSpeed

	cases := []struct {
		name string
		ev   terminal.Event
		want func(vmath.Vec3) vmath.Vec3
	}{
		{"scale up", keyEvent(terminal.KeyUp), func(v vmath.Vec3) vmath.Vec3 { return v.Scale(1.01) }},
		{"scale down", keyEvent(terminal.KeyDown), func(v vmath.Vec3) vmath.Vec3 { return v.Scale(0.99) }},
		{"yaw left", keyEvent(terminal.KeyLeft), func(v vmath.Vec3) vmath.Vec3 { return v.RotateY(angle) }},
		{"yaw right", keyEvent(terminal.KeyRight), func(v vmath.Vec3) vmath.Vec3 { return v.RotateY(-angle) }},
		{"pitch j", runeEvent('j'), func(v vmath.Vec3) vmath.Vec3 { return v.RotateX(angle) }},
		{"pitch k", runeEvent('k'), func(v vmath.Vec3) vmath.Vec3 { return v.RotateX(-angle) }},
		{"roll h", runeEvent('h'), func(v vmath.Vec3) vmath.Vec3 { return v.RotateZ(angle) }},
		{"roll l", runeEvent('l'), func(v vmath.Vec3) vmath.Vec3 { return v.RotateZ(-angle) }},
		{"unbound", runeEvent('x'), func(v vmath.Vec3) vmath.Vec3 { return v }},
		{"resize", terminal.Event{Type: terminal.EventResize, Width: 40, Height: 20}, func(v vmath.Vec3) vmath.Vec3 { return v }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, _, clock := newTestEngine(t, tc.ev)

			if !tick(t, e, clock, frame) {
				t.Fatal("Expected frame to render")
			}

			cube := model.Cube().Vertices
			want := make([]vmath.Vec3, len(cube))
			for i, v := range cube {
				want[i] = tc.want(v)
			}
			checkVerticesNear(t, want, e.Canvas().Vertices)
		})
	}
}

func TestTickReset(t *testing.T) {
	e, term, clock := newTestEngine(t, keyEvent(terminal.KeyLeft), runeEvent('j'), keyEvent(terminal.KeyUp))
	e.cfg.Keys.Runes['r'] = input.IntentReset

	for range 3 {
		tick(t, e, clock, frame)
	}
	if reflect.DeepEqual(model.Cube().Vertices, e.Canvas().Vertices) {
		t.Fatal("Expected vertices to move before reset")
	}

	term.events = []terminal.Event{runeEvent('r')}
	tick(t, e, clock, frame)
	if !reflect.DeepEqual(model.Cube().Vertices, e.Canvas().Vertices) {
		t.Errorf("Expected reset to restore the loaded pose, got %+v", e.Canvas().Vertices)
	}
}

func TestTickSurvivesScaleOverflow(t *testing.T) {
	e, term, clock := newTestEngine(t)

	// Enough scale-up steps to push every coordinate past float32 range
	for range 9000 {
		e.Canvas().Transform(func(v vmath.Vec3) vmath.Vec3 { return v.Scale(1.01) })
	}
	if !math32.IsInf(e.Canvas().Vertices[0].X, 0) {
		t.Fatalf("Expected overflowed vertex, got %+v", e.Canvas().Vertices[0])
	}

	if !tick(t, e, clock, frame) {
		t.Fatal("Expected frame to render")
	}
	if e.DrawnEdges() != 0 {
		t.Errorf("Expected no drawable edges, got %d", e.DrawnEdges())
	}
	if term.cells != 0 {
		t.Errorf("Expected no cells, got %d", term.cells)
	}

	// Quit is still reachable on the next frame
	term.events = []terminal.Event{runeEvent('q')}
	tick(t, e, clock, frame)
	if e.State() != StateStopping {
		t.Errorf("Expected state stopping, got %v", e.State())
	}
}

func TestOnIntentHook(t *testing.T) {
	term := &fakeTerminal{w: 80, h: 40, events: []terminal.Event{runeEvent('x'), keyEvent(terminal.KeyTab), runeEvent('q')}}
	clock := NewMockTimeProvider(epoch)

	var seen []input.Intent
	cfg := DefaultConfig()
	cfg.Clock = clock
	cfg.OnIntent = func(i input.Intent) { seen = append(seen, i) }
	e := New(term, cfg)
	e.SetModel(model.Cube())

	for range 3 {
		tick(t, e, clock, frame)
	}

	// Unbound keys are not reported
	want := []input.Intent{input.IntentToggleOverlay, input.IntentQuit}
	if !reflect.DeepEqual(want, seen) {
		t.Errorf("Expected intents %v, got %v", want, seen)
	}
}

func TestTickFlushError(t *testing.T) {
	e, term, clock := newTestEngine(t)
	boom := errors.New("boom")
	term.flushErr = boom

	clock.Advance(frame)
	rendered, err := e.Tick()
	if rendered {
		t.Error("Expected failed frame not to count as rendered")
	}
	if !errors.Is(err, boom) {
		t.Errorf("Expected flush error, got %v", err)
	}
	if e.Frames() != 0 {
		t.Errorf("Expected 0 frames, got %d", e.Frames())
	}
}

func TestRunQuitReleasesTerminal(t *testing.T) {
	term := &fakeTerminal{w: 80, h: 40, events: []terminal.Event{runeEvent('q')}}
	e := New(term, DefaultConfig())
	e.SetModel(model.Cube())

	if err := e.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if e.State() != StateStopped {
		t.Errorf("Expected state stopped, got %v", e.State())
	}
	if term.inits != 1 || term.finis != 1 {
		t.Errorf("Expected 1 init and 1 fini, got %d and %d", term.inits, term.finis)
	}
	// Only the exit clear and flush, quit frame is not rendered
	if term.clears != 1 || term.flushes != 1 {
		t.Errorf("Expected 1 clear and 1 flush, got %d and %d", term.clears, term.flushes)
	}
	if e.Frames() != 0 {
		t.Errorf("Expected 0 frames, got %d", e.Frames())
	}
}

func TestRunErrorReleasesTerminal(t *testing.T) {
	boom := errors.New("boom")
	term := &fakeTerminal{w: 80, h: 40, flushErr: boom}
	e := New(term, DefaultConfig())
	e.SetModel(model.Cube())

	err := e.Run()
	if !errors.Is(err, boom) {
		t.Fatalf("Expected flush error, got %v", err)
	}
	if !strings.Contains(err.Error(), "flush") {
		t.Errorf("Expected error to mention flush, got %q", err.Error())
	}

	if e.State() != StateStopped {
		t.Errorf("Expected state stopped, got %v", e.State())
	}
	if term.finis != 1 {
		t.Errorf("Expected 1 fini, got %d", term.finis)
	}
	if term.clears != 2 {
		t.Errorf("Expected render clear plus exit clear, got %d", term.clears)
	}
}

func TestRunInitError(t *testing.T) {
	term := &fakeTerminal{w: 80, h: 40, initErr: terminal.ErrNotTTY}
	e := New(term, DefaultConfig())
	e.SetModel(model.Cube())

	if err := e.Run(); !errors.Is(err, terminal.ErrNotTTY) {
		t.Errorf("Expected ErrNotTTY, got %v", err)
	}
	if term.finis != 0 || term.flushes != 0 {
		t.Errorf("Expected untouched terminal, got %d finis and %d flushes", term.finis, term.flushes)
	}
}

func TestRunOnSimulationScreen(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	term := terminal.NewWithScreen(sim, terminal.ColorModeColor)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	sim.SetSize(100, 50)
	t.Cleanup(term.Fini)

	clock := NewMockTimeProvider(epoch)
	cfg := DefaultConfig()
	cfg.Clock = clock
	e := New(term, cfg)
	e.SetModel(model.Cube())

	if !tick(t, e, clock, frame) {
		t.Fatal("Expected frame to render")
	}

	cells, w, h := sim.GetContents()
	if w != 100 || h != 50 {
		t.Fatalf("Expected 100x50 screen, got %dx%d", w, h)
	}

	glyphs := 0
	for _, c := range cells {
		if len(c.Runes) > 0 && c.Runes[0] == '#' {
			glyphs++
		}
	}
	if glyphs == 0 {
		t.Error("Expected wireframe glyphs on screen")
	}

	var top strings.Builder
	for x := 0; x < len("wireview"); x++ {
		top.WriteRune(cells[x].Runes[0])
	}
	if top.String() != "wireview" {
		t.Errorf("Expected status line title, got %q", top.String())
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateRunning:  "running",
		StateStopping: "stopping",
		StateStopped:  "stopped",
		State(9):      "unknown",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
