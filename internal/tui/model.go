// Package tui provides the Bubble Tea front end for the clock.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nd70/bigclock/internal/clock"
	"github.com/nd70/bigclock/internal/host/term"
)

// KeyMap defines the front end's key bindings.
type KeyMap struct {
	Toggle key.Binding
	Quit   key.Binding
}

// defaultKeyMap binds the toggle key from the configuration, but only
// when auto-binding is on and the key is not already claimed.
func defaultKeyMap(cfg clock.Config) KeyMap {
	km := KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	if cfg.AutoBindKey && cfg.ToggleKey != "" && !km.claimed(cfg.ToggleKey) {
		km.Toggle = key.NewBinding(
			key.WithKeys(cfg.ToggleKey),
			key.WithHelp(cfg.ToggleKey, "toggle clock"),
		)
	}
	return km
}

func (km KeyMap) claimed(k string) bool {
	for _, taken := range km.Quit.Keys() {
		if taken == k {
			return true
		}
	}
	return false
}

var hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))

// Model drives a clock session inside a Bubble Tea program.
type Model struct {
	host    *term.Host
	session *clock.Session
	keys    KeyMap
}

// NewModel wires a session and its terminal host into a model.
func NewModel(h *term.Host, s *clock.Session) *Model {
	return &Model{
		host:    h,
		session: s,
		keys:    defaultKeyMap(s.Config()),
	}
}

func waitExec(h *term.Host) tea.Cmd {
	return func() tea.Msg {
		return <-h.Queue()
	}
}

// Init implements tea.Model. The clock starts shown.
func (m *Model) Init() tea.Cmd {
	m.session.Start()
	return waitExec(m.host)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case term.ExecMsg:
		msg.Fn()
		return m, waitExec(m.host)
	case tea.WindowSizeMsg:
		m.host.Resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.host.Shutdown()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.session.Toggle()
			return m, nil
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	cols, rows := m.host.Size()
	if cols == 0 || rows == 0 {
		return ""
	}
	if !m.session.IsActive() {
		hint := "clock hidden"
		if len(m.keys.Toggle.Keys()) > 0 {
			hint = fmt.Sprintf("clock hidden, press %s to show", m.keys.Toggle.Help().Key)
		}
		return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, hintStyle.Render(hint))
	}
	return m.host.View()
}
