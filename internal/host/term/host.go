// Package term implements the clock host on top of a Bubble Tea
// program. Buffers and windows are in-memory surfaces composited onto a
// cell canvas each View; timers post closures into the program loop so
// every callback runs on the single UI goroutine.
package term

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nd70/bigclock/internal/host"
)

// ExecMsg carries a scheduled callback into the program loop.
type ExecMsg struct {
	Fn func()
}

// Host implements host.Host for a terminal.
type Host struct {
	cols int
	rows int

	queue   chan tea.Msg
	styles  map[string]host.StyleSpec
	windows []*window
	subs    map[int]func(host.Event)
	nextSub int
}

// New returns a host with the given initial display size.
func New(cols, rows int) *Host {
	return &Host{
		cols:   cols,
		rows:   rows,
		queue:  make(chan tea.Msg, 16),
		styles: map[string]host.StyleSpec{},
		subs:   map[int]func(host.Event){},
	}
}

// Queue exposes the channel carrying scheduled callbacks. The Bubble
// Tea model forwards messages from it into its Update loop.
func (h *Host) Queue() <-chan tea.Msg {
	return h.queue
}

// post hands a message to the program loop. Dropping when the UI is
// behind is fine: a later tick supersedes the missed one.
func (h *Host) post(msg tea.Msg) {
	select {
	case h.queue <- msg:
	default:
	}
}

// Resize records the new display size and notifies subscribers.
func (h *Host) Resize(cols, rows int) {
	h.cols = cols
	h.rows = rows
	h.dispatch(host.ResizeEvent{Cols: cols, Rows: rows})
}

// Shutdown notifies subscribers that the host is going away.
func (h *Host) Shutdown() {
	h.dispatch(host.ShutdownEvent{})
}

func (h *Host) dispatch(ev host.Event) {
	ids := make([]int, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		// Re-check: a handler may unsubscribe others (or itself).
		if fn, ok := h.subs[id]; ok {
			fn(ev)
		}
	}
}

// Size implements host.Host.
func (h *Host) Size() (int, int) {
	return h.cols, h.rows
}

// Now implements host.Host.
func (h *Host) Now() time.Time {
	return time.Now()
}

// RegisterStyle implements host.Host.
func (h *Host) RegisterStyle(name string, spec host.StyleSpec) {
	h.styles[name] = spec
}

// Subscribe implements host.Host.
func (h *Host) Subscribe(fn func(host.Event)) func() {
	id := h.nextSub
	h.nextSub++
	h.subs[id] = fn
	return func() { delete(h.subs, id) }
}

// NewBuffer implements host.Host.
func (h *Host) NewBuffer(lines []string) (host.Buffer, error) {
	return &buffer{lines: append([]string(nil), lines...)}, nil
}

// NewWindow implements host.Host.
func (h *Host) NewWindow(buf host.Buffer, cfg host.WindowConfig) (host.Window, error) {
	b, ok := buf.(*buffer)
	if !ok {
		return nil, fmt.Errorf("buffer was not allocated by this host")
	}
	if err := validateWindowConfig(cfg); err != nil {
		return nil, err
	}
	w := &window{owner: h, buf: b, cfg: cfg}
	h.windows = append(h.windows, w)
	return w, nil
}

func validateWindowConfig(cfg host.WindowConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Row < 0 || cfg.Col < 0 {
		return fmt.Errorf("invalid window position %d,%d", cfg.Row, cfg.Col)
	}
	return nil
}

func (h *Host) remove(w *window) {
	for i, other := range h.windows {
		if other == w {
			h.windows = append(h.windows[:i], h.windows[i+1:]...)
			return
		}
	}
}

// Every implements host.Host: immediate first run on the caller's
// goroutine, then a ticker posting into the program loop.
func (h *Host) Every(d time.Duration, fn func()) (host.Task, bool) {
	t := newTimerTask()
	fn()
	go func() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				h.post(ExecMsg{Fn: fn})
			}
		}
	}()
	return t, true
}

// After implements host.Host.
func (h *Host) After(d time.Duration, fn func()) host.Task {
	t := newTimerTask()
	go func() {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-t.stop:
		case <-timer.C:
			h.post(ExecMsg{Fn: fn})
		}
	}()
	return t
}

// View composites all live windows, lowest z-index first.
func (h *Host) View() string {
	c := newCanvas(h.cols, h.rows)
	live := make([]*window, 0, len(h.windows))
	for _, w := range h.windows {
		if !w.closed && !w.buf.closed {
			live = append(live, w)
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].cfg.ZIndex < live[j].cfg.ZIndex
	})
	for _, w := range live {
		c.drawWindow(w)
	}
	return c.render(h.styles)
}

type timerTask struct {
	stop chan struct{}
	once sync.Once
}

func newTimerTask() *timerTask {
	return &timerTask{stop: make(chan struct{})}
}

func (t *timerTask) Stop() {
	t.once.Do(func() { close(t.stop) })
}

// buffer is an in-memory scratch buffer, write-locked outside SetLines.
type buffer struct {
	lines  []string
	locked bool
	closed bool
}

func (b *buffer) Valid() bool { return !b.closed }

func (b *buffer) SetLines(lines []string) error {
	if b.closed {
		return errors.New("buffer is closed")
	}
	b.locked = false
	b.lines = append(b.lines[:0:0], lines...)
	b.locked = true
	return nil
}

func (b *buffer) Close() { b.closed = true }

// window is a floating, non-focusable surface over a buffer.
type window struct {
	owner  *Host
	buf    *buffer
	cfg    host.WindowConfig
	closed bool
}

func (w *window) Valid() bool { return !w.closed }

func (w *window) Move(cfg host.WindowConfig) error {
	if w.closed {
		return errors.New("window is closed")
	}
	if err := validateWindowConfig(cfg); err != nil {
		return err
	}
	w.cfg = cfg
	return nil
}

func (w *window) SetStyle(style string, blend int) error {
	if w.closed {
		return errors.New("window is closed")
	}
	w.cfg.Style = style
	w.cfg.Blend = blend
	return nil
}

func (w *window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.owner.remove(w)
}
