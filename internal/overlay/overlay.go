// Package overlay owns the lifecycle of the clock's floating surfaces.
package overlay

import (
	"fmt"

	"github.com/nd70/bigclock/internal/host"
	"github.com/nd70/bigclock/internal/layout"
	"github.com/nd70/bigclock/internal/render"
)

// Role identifies one of the two surfaces the clock draws.
type Role int

const (
	RoleMain Role = iota
	RoleShadow
)

// String implements fmt.Stringer.
func (r Role) String() string {
	if r == RoleShadow {
		return "shadow"
	}
	return "main"
}

// RoleStyle carries the per-role window attributes.
type RoleStyle struct {
	Style  string
	Border string
	Blend  int
	ZIndex int
}

type surfacePair struct {
	buf host.Buffer
	win host.Window
}

// Manager creates, repositions and destroys the overlay surfaces. A
// surface is a buffer/window pair; an invalid handle is treated as
// absent, never as an error.
type Manager struct {
	host   host.Host
	styles map[Role]RoleStyle
	pairs  map[Role]*surfacePair
	debugf func(format string, args ...any)
}

// NewManager returns a manager with no surfaces. debugf may be nil.
func NewManager(h host.Host, debugf func(string, ...any)) *Manager {
	if debugf == nil {
		debugf = func(string, ...any) {}
	}
	return &Manager{
		host:   h,
		styles: map[Role]RoleStyle{},
		pairs:  map[Role]*surfacePair{},
		debugf: debugf,
	}
}

// SetRoleStyle sets the window attributes used for role from the next
// Sync on.
func (m *Manager) SetRoleStyle(role Role, rs RoleStyle) {
	m.styles[role] = rs
}

// Sync brings the surface for role up to date with frame and placement,
// reusing the existing buffer/window pair when a reposition suffices
// and recreating it otherwise.
func (m *Manager) Sync(frame render.Frame, p layout.Placement, role Role) error {
	rs := m.styles[role]
	cfg := host.WindowConfig{
		Row:    p.Row,
		Col:    p.Col,
		Width:  p.Width,
		Height: p.Height,
		Border: rs.Border,
		Style:  rs.Style,
		Blend:  rs.Blend,
		ZIndex: rs.ZIndex,
	}

	pair := m.pairs[role]
	if pair != nil && (!pair.buf.Valid() || !pair.win.Valid()) {
		m.Destroy(role)
		pair = nil
	}
	if pair == nil {
		return m.create(frame, cfg, role)
	}

	if err := pair.win.Move(cfg); err != nil {
		m.debugf("clock: %s window refused reposition, recreating: %v", role, err)
		m.Destroy(role)
		return m.create(frame, cfg, role)
	}
	if err := pair.buf.SetLines(frame); err != nil {
		m.Destroy(role)
		return fmt.Errorf("failed to update %s buffer: %w", role, err)
	}
	return nil
}

func (m *Manager) create(frame render.Frame, cfg host.WindowConfig, role Role) error {
	buf, err := m.host.NewBuffer(frame)
	if err != nil {
		return fmt.Errorf("failed to create %s buffer: %w", role, err)
	}
	win, err := m.host.NewWindow(buf, cfg)
	if err != nil {
		buf.Close()
		return fmt.Errorf("failed to create %s window: %w", role, err)
	}
	m.pairs[role] = &surfacePair{buf: buf, win: win}
	return nil
}

// Has reports whether a live surface exists for role.
func (m *Manager) Has(role Role) bool {
	pair := m.pairs[role]
	return pair != nil && pair.buf.Valid() && pair.win.Valid()
}

// Destroy tears down the surface for role, if any.
func (m *Manager) Destroy(role Role) {
	pair := m.pairs[role]
	if pair == nil {
		return
	}
	if pair.win.Valid() {
		pair.win.Close()
	}
	if pair.buf.Valid() {
		pair.buf.Close()
	}
	delete(m.pairs, role)
}

// DestroyAll tears down both surfaces.
func (m *Manager) DestroyAll() {
	m.Destroy(RoleShadow)
	m.Destroy(RoleMain)
}
