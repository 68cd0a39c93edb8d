// Package clock ties the renderer, layout engine and overlay manager to
// a host: one Session owns the configuration, the surfaces and the
// recurring tick.
package clock

import (
	"github.com/nd70/bigclock/internal/host"
	"github.com/nd70/bigclock/internal/layout"
	"github.com/nd70/bigclock/internal/overlay"
	"github.com/nd70/bigclock/internal/render"
)

// TimeLayout is the wall-clock format the renderer receives.
const TimeLayout = "15:04:05"

// Session is the clock's control surface. All methods must be called
// from the host's UI goroutine; the host delivers ticks and events on
// that same goroutine, so no locking is needed.
type Session struct {
	host   host.Host
	cfg    Config
	mgr    *overlay.Manager
	active bool

	task         host.Task
	cancelEvents func()

	debugf func(format string, args ...any)
}

// New returns an inactive session with default configuration.
func New(h host.Host) *Session {
	s := &Session{
		host:   h,
		cfg:    Defaults(),
		debugf: func(string, ...any) {},
	}
	s.mgr = overlay.NewManager(h, func(format string, args ...any) {
		s.debugf(format, args...)
	})
	s.applyStyles()
	return s
}

// SetDebugf installs a debug log sink. Failures in this package are
// recovered locally and only ever reported here.
func (s *Session) SetDebugf(fn func(format string, args ...any)) {
	if fn == nil {
		fn = func(string, ...any) {}
	}
	s.debugf = fn
}

// Config returns the current configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Setup merges o over the current configuration. Safe to call any
// number of times; unset fields keep their previous values.
func (s *Session) Setup(o Options) error {
	next := s.cfg.merged(o)
	if err := next.validate(); err != nil {
		return err
	}
	s.cfg = next
	s.applyStyles()
	if s.active {
		s.tick()
	}
	return nil
}

func (s *Session) applyStyles() {
	s.host.RegisterStyle(StyleMain, host.StyleSpec{Foreground: s.cfg.Foreground})
	s.host.RegisterStyle(StyleShadow, host.StyleSpec{Foreground: s.cfg.ShadowColor})
	s.mgr.SetRoleStyle(overlay.RoleMain, overlay.RoleStyle{
		Style:  StyleMain,
		Border: s.cfg.Border,
		Blend:  s.cfg.BlendMain,
		ZIndex: 50,
	})
	s.mgr.SetRoleStyle(overlay.RoleShadow, overlay.RoleStyle{
		Style:  StyleShadow,
		Border: s.cfg.Border,
		Blend:  s.cfg.BlendShadow,
		ZIndex: 40,
	})
}

// IsActive reports whether the clock is currently shown.
func (s *Session) IsActive() bool {
	return s.active
}

// Toggle flips between active and inactive.
func (s *Session) Toggle() {
	if s.active {
		s.Stop()
	} else {
		s.Start()
	}
}

// Start activates the clock: subscribes to host events and installs the
// recurring tick with an immediate first firing. No-op when active.
func (s *Session) Start() {
	if s.active {
		return
	}
	s.active = true
	s.cancelEvents = s.host.Subscribe(s.handleEvent)
	s.task = s.schedule()
}

// Stop deactivates the clock and releases the task, the event
// subscription and both surfaces. Idempotent and safe to call from
// within an event handler.
func (s *Session) Stop() {
	if !s.active {
		return
	}
	s.active = false
	if s.task != nil {
		s.task.Stop()
		s.task = nil
	}
	if s.cancelEvents != nil {
		s.cancelEvents()
		s.cancelEvents = nil
	}
	s.mgr.DestroyAll()
}

func (s *Session) schedule() host.Task {
	if task, ok := s.host.Every(s.cfg.TickInterval, s.tick); ok {
		return task
	}
	s.debugf("clock: recurring timer unavailable, chaining single-shot timers")
	return s.scheduleFallback()
}

// scheduleFallback re-arms a single-shot timer after each firing,
// preserving the cadence and the immediate first firing.
func (s *Session) scheduleFallback() host.Task {
	t := &rearmTask{}
	var fire func()
	fire = func() {
		if t.stopped || !s.active {
			return
		}
		s.tick()
		if t.stopped || !s.active {
			return
		}
		t.inner = s.host.After(s.cfg.TickInterval, fire)
	}
	fire()
	return t
}

type rearmTask struct {
	stopped bool
	inner   host.Task
}

func (t *rearmTask) Stop() {
	t.stopped = true
	if t.inner != nil {
		t.inner.Stop()
		t.inner = nil
	}
}

func (s *Session) handleEvent(ev host.Event) {
	switch ev.(type) {
	case host.ResizeEvent:
		// Re-center immediately instead of waiting for the next tick.
		if s.active {
			s.tick()
		}
	case host.ShutdownEvent:
		s.Stop()
	}
}

// tick runs one pass of the render pipeline.
func (s *Session) tick() {
	if !s.active {
		return
	}
	cols, rows := s.host.Size()
	if cols < s.cfg.MinCols || rows < s.cfg.MinRows {
		// Defined state, not an error: hide until the display grows.
		s.mgr.DestroyAll()
		return
	}

	frame := render.Render(s.host.Now().Format(TimeLayout), s.cfg.Scale, s.cfg.Padding)

	// Shadow first so the main surface layers above it.
	if s.cfg.UseShadow {
		p := layout.Place(frame, cols, rows, s.cfg.ShadowRowOffset, s.cfg.ShadowColOffset)
		if err := s.mgr.Sync(frame, p, overlay.RoleShadow); err != nil {
			s.debugf("clock: shadow sync failed: %v", err)
		}
	} else {
		s.mgr.Destroy(overlay.RoleShadow)
	}

	p := layout.Place(frame, cols, rows, 0, 0)
	if err := s.mgr.Sync(frame, p, overlay.RoleMain); err != nil {
		s.debugf("clock: sync failed: %v", err)
	}
}
