package clock

import (
	"errors"
	"testing"
	"time"

	"github.com/nd70/bigclock/internal/host"
)

type fakeBuffer struct {
	lines  []string
	closed bool
}

func (b *fakeBuffer) Valid() bool { return !b.closed }

func (b *fakeBuffer) SetLines(lines []string) error {
	if b.closed {
		return errors.New("buffer is closed")
	}
	b.lines = append(b.lines[:0:0], lines...)
	return nil
}

func (b *fakeBuffer) Close() { b.closed = true }

type fakeWindow struct {
	cfg    host.WindowConfig
	closed bool
}

func (w *fakeWindow) Valid() bool { return !w.closed }

func (w *fakeWindow) Move(cfg host.WindowConfig) error {
	if w.closed {
		return errors.New("window is closed")
	}
	w.cfg = cfg
	return nil
}

func (w *fakeWindow) SetStyle(style string, blend int) error {
	w.cfg.Style = style
	w.cfg.Blend = blend
	return nil
}

func (w *fakeWindow) Close() { w.closed = true }

type fakeTask struct {
	stops int
}

func (t *fakeTask) Stop() { t.stops++ }

type pendingAfter struct {
	fn   func()
	task *fakeTask
}

// fakeHost drives the session by hand: ticks fire when the test calls
// fireTick, single-shot timers when it calls fireAfter.
type fakeHost struct {
	cols, rows int
	now        time.Time

	recurringOK bool
	tickFn      func()
	tasks       []*fakeTask

	afters []pendingAfter

	subs   map[int]func(host.Event)
	nextID int

	buffers []*fakeBuffer
	windows []*fakeWindow
	styles  map[string]host.StyleSpec
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		cols:        80,
		rows:        24,
		now:         time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		recurringOK: true,
		subs:        map[int]func(host.Event){},
		styles:      map[string]host.StyleSpec{},
	}
}

func (h *fakeHost) Size() (int, int) { return h.cols, h.rows }

func (h *fakeHost) Now() time.Time { return h.now }

func (h *fakeHost) NewBuffer(lines []string) (host.Buffer, error) {
	b := &fakeBuffer{lines: append([]string(nil), lines...)}
	h.buffers = append(h.buffers, b)
	return b, nil
}

func (h *fakeHost) NewWindow(_ host.Buffer, cfg host.WindowConfig) (host.Window, error) {
	w := &fakeWindow{cfg: cfg}
	h.windows = append(h.windows, w)
	return w, nil
}

func (h *fakeHost) RegisterStyle(name string, spec host.StyleSpec) {
	h.styles[name] = spec
}

func (h *fakeHost) Subscribe(fn func(host.Event)) func() {
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	return func() { delete(h.subs, id) }
}

func (h *fakeHost) Every(_ time.Duration, fn func()) (host.Task, bool) {
	if !h.recurringOK {
		return nil, false
	}
	h.tickFn = fn
	t := &fakeTask{}
	h.tasks = append(h.tasks, t)
	fn() // immediate first firing
	return t, true
}

func (h *fakeHost) After(_ time.Duration, fn func()) host.Task {
	t := &fakeTask{}
	h.afters = append(h.afters, pendingAfter{fn: fn, task: t})
	return t
}

func (h *fakeHost) fireTick() {
	if h.tickFn != nil {
		h.tickFn()
	}
}

func (h *fakeHost) fireAfter(t *testing.T) {
	t.Helper()
	if len(h.afters) == 0 {
		t.Fatalf("expected a pending single-shot timer")
	}
	next := h.afters[0]
	h.afters = h.afters[1:]
	next.fn()
}

func (h *fakeHost) dispatch(ev host.Event) {
	for _, fn := range h.subs {
		fn(ev)
	}
}

func (h *fakeHost) liveWindows() int {
	n := 0
	for _, w := range h.windows {
		if !w.closed {
			n++
		}
	}
	return n
}

func TestStartRendersBothSurfaces(t *testing.T) {
	h := newFakeHost()
	s := New(h)

	s.Start()
	if !s.IsActive() {
		t.Fatalf("expected active session")
	}
	if h.liveWindows() != 2 {
		t.Fatalf("expected main and shadow windows, got %d", h.liveWindows())
	}
	// Shadow attaches before main and stacks below it.
	if h.windows[0].cfg.Style != StyleShadow {
		t.Fatalf("expected shadow window first, got %s", h.windows[0].cfg.Style)
	}
	if h.windows[1].cfg.Style != StyleMain {
		t.Fatalf("expected main window second, got %s", h.windows[1].cfg.Style)
	}
	if h.windows[0].cfg.ZIndex >= h.windows[1].cfg.ZIndex {
		t.Fatalf("expected shadow below main, got z %d vs %d",
			h.windows[0].cfg.ZIndex, h.windows[1].cfg.ZIndex)
	}
}

func TestToggleTwiceReleasesEverythingOnce(t *testing.T) {
	h := newFakeHost()
	s := New(h)

	s.Toggle()
	if !s.IsActive() {
		t.Fatalf("expected active after first toggle")
	}
	s.Toggle()
	if s.IsActive() {
		t.Fatalf("expected inactive after second toggle")
	}
	if h.liveWindows() != 0 {
		t.Fatalf("expected all windows closed, got %d live", h.liveWindows())
	}
	for i, b := range h.buffers {
		if !b.closed {
			t.Fatalf("buffer %d leaked", i)
		}
	}
	if len(h.tasks) != 1 || h.tasks[0].stops != 1 {
		t.Fatalf("expected exactly one task stopped exactly once, got %+v", h.tasks)
	}
	if len(h.subs) != 0 {
		t.Fatalf("expected event subscription released")
	}
}

func TestStartStopAreIdempotent(t *testing.T) {
	h := newFakeHost()
	s := New(h)

	s.Start()
	s.Start()
	if len(h.tasks) != 1 {
		t.Fatalf("expected a single recurring task, got %d", len(h.tasks))
	}

	s.Stop()
	s.Stop()
	if h.tasks[0].stops != 1 {
		t.Fatalf("expected task stopped once, got %d", h.tasks[0].stops)
	}
}

func TestTickUpdatesContentInPlace(t *testing.T) {
	h := newFakeHost()
	s := New(h)

	s.Start()
	windows := len(h.windows)
	h.now = h.now.Add(time.Second)
	h.fireTick()

	if len(h.windows) != windows {
		t.Fatalf("expected window reuse across ticks, got %d new windows", len(h.windows)-windows)
	}
	if h.liveWindows() != 2 {
		t.Fatalf("expected 2 live windows, got %d", h.liveWindows())
	}
}

func TestTooSmallDisplayHidesAndRecovers(t *testing.T) {
	h := newFakeHost()
	s := New(h)

	s.Start()
	if h.liveWindows() != 2 {
		t.Fatalf("expected surfaces at 80x24, got %d", h.liveWindows())
	}

	h.cols, h.rows = 30, 8
	h.fireTick()
	if h.liveWindows() != 0 {
		t.Fatalf("expected surfaces destroyed below minimum size, got %d", h.liveWindows())
	}
	if !s.IsActive() {
		t.Fatalf("expected session to stay active while hidden")
	}

	h.cols, h.rows = 80, 24
	h.fireTick()
	if h.liveWindows() != 2 {
		t.Fatalf("expected surfaces recreated after the display grew, got %d", h.liveWindows())
	}
}

func TestResizeForcesImmediateReposition(t *testing.T) {
	h := newFakeHost()
	s := New(h)

	s.Start()
	mainWin := h.windows[1]
	colBefore := mainWin.cfg.Col

	h.cols = 120
	h.dispatch(host.ResizeEvent{Cols: 120, Rows: 24})

	if mainWin.cfg.Col == colBefore {
		t.Fatalf("expected recentered window without waiting for a tick")
	}
}

func TestShutdownEventTearsDown(t *testing.T) {
	h := newFakeHost()
	s := New(h)

	s.Start()
	h.dispatch(host.ShutdownEvent{})

	if s.IsActive() {
		t.Fatalf("expected inactive session after shutdown event")
	}
	if h.liveWindows() != 0 {
		t.Fatalf("expected all windows closed, got %d live", h.liveWindows())
	}
}

func TestFallbackSchedulerRearmsItself(t *testing.T) {
	h := newFakeHost()
	h.recurringOK = false
	s := New(h)

	s.Start()
	// Immediate first firing happened without any timer.
	if h.liveWindows() != 2 {
		t.Fatalf("expected immediate first render, got %d live windows", h.liveWindows())
	}
	if len(h.afters) != 1 {
		t.Fatalf("expected one pending single-shot timer, got %d", len(h.afters))
	}

	h.fireAfter(t)
	if len(h.afters) != 1 {
		t.Fatalf("expected the timer to re-arm, got %d pending", len(h.afters))
	}

	s.Stop()
	if len(h.afters) != 1 {
		// The armed timer stays with the host but its callback must
		// now be a no-op.
		t.Fatalf("unexpected pending timers: %d", len(h.afters))
	}
	windows := len(h.windows)
	h.fireAfter(t)
	if len(h.windows) != windows {
		t.Fatalf("expected stopped fallback to stop rendering")
	}
}

func TestSetupAccumulatesAcrossCalls(t *testing.T) {
	h := newFakeHost()
	s := New(h)

	scale := 2
	if err := s.Setup(Options{Scale: &scale}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	padding := 3
	if err := s.Setup(Options{Padding: &padding}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := s.Config()
	if cfg.Scale != 2 || cfg.Padding != 3 {
		t.Fatalf("expected scale=2 padding=3, got scale=%d padding=%d", cfg.Scale, cfg.Padding)
	}
}

func TestSetupRejectsInvalidValues(t *testing.T) {
	h := newFakeHost()
	s := New(h)

	zero := 0
	if err := s.Setup(Options{Scale: &zero}); err == nil {
		t.Fatalf("expected error for scale 0")
	}
	negative := -1
	if err := s.Setup(Options{Padding: &negative}); err == nil {
		t.Fatalf("expected error for negative padding")
	}
	interval := time.Duration(0)
	if err := s.Setup(Options{TickInterval: &interval}); err == nil {
		t.Fatalf("expected error for zero interval")
	}
	if cfg := s.Config(); cfg != Defaults() {
		t.Fatalf("expected rejected setup to leave config untouched")
	}
}

func TestSetupRegistersStyles(t *testing.T) {
	h := newFakeHost()
	s := New(h)

	fg := "#FF0000"
	if err := s.Setup(Options{Foreground: &fg}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.styles[StyleMain].Foreground != "#FF0000" {
		t.Fatalf("expected main style re-registered, got %+v", h.styles[StyleMain])
	}
	if h.styles[StyleShadow].Foreground != Defaults().ShadowColor {
		t.Fatalf("expected shadow style at default, got %+v", h.styles[StyleShadow])
	}
}

func TestShadowDisabledLeavesSingleSurface(t *testing.T) {
	h := newFakeHost()
	s := New(h)

	off := false
	if err := s.Setup(Options{UseShadow: &off}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Start()

	if h.liveWindows() != 1 {
		t.Fatalf("expected only the main window, got %d", h.liveWindows())
	}
	if h.windows[0].cfg.Style != StyleMain {
		t.Fatalf("expected main style, got %s", h.windows[0].cfg.Style)
	}
}
