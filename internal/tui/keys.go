package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/render"
)

// keyMap defines the day view bindings.
type keyMap struct {
	PrevDay    key.Binding
	NextDay    key.Binding
	PrevWeek   key.Binding
	NextWeek   key.Binding
	Today      key.Binding
	NextStaff  key.Binding
	PrevStaff  key.Binding
	NextAppt   key.Binding
	PrevAppt   key.Binding
	Zoom       key.Binding
	ScrollDown key.Binding
	ScrollUp   key.Binding
	Copy       key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevDay:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "prev day")),
		NextDay:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next day")),
		PrevWeek:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev week")),
		NextWeek:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next week")),
		Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		NextStaff:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "next staff")),
		PrevStaff:  key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "prev staff")),
		NextAppt:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next appointment")),
		PrevAppt:   key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "prev appointment")),
		Zoom:       key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zoom")),
		ScrollDown: key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("ctrl+d", "scroll down")),
		ScrollUp:   key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("ctrl+u", "scroll up")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy day")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek, k.NextStaff, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek, k.Today},
		{k.NextStaff, k.PrevStaff, k.NextAppt, k.PrevAppt},
		{k.Zoom, k.ScrollDown, k.ScrollUp},
		{k.Copy, k.Reload, k.Help, k.Quit},
	}
}

// Rows per hour the zoom key cycles through, as minutes per row.
var zoomLevels = []int{60, 30, 15}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug("key pressed", zap.String("key", msg.String()))

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	// Navigation
	case key.Matches(msg, m.keys.PrevDay):
		m.nav.PreviousDay()
		m.resetDay()
	case key.Matches(msg, m.keys.NextDay):
		m.nav.NextDay()
		m.resetDay()
	case key.Matches(msg, m.keys.PrevWeek):
		m.nav.PreviousWeek()
		m.resetDay()
	case key.Matches(msg, m.keys.NextWeek):
		m.nav.NextWeek()
		m.resetDay()
	case key.Matches(msg, m.keys.Today):
		m.nav.GoTo(m.today())
		m.resetDay()

	// Staff filter
	case key.Matches(msg, m.keys.NextStaff):
		m.staffIdx = (m.staffIdx + 1) % len(m.staff)
		m.resetDay()
	case key.Matches(msg, m.keys.PrevStaff):
		m.staffIdx = (m.staffIdx - 1 + len(m.staff)) % len(m.staff)
		m.resetDay()

	// Appointment selection
	case key.Matches(msg, m.keys.NextAppt):
		if n := len(m.dayLayout()); n > 0 {
			m.selected = (m.selected + 1) % n
			m.scrollToSelected()
		}
	case key.Matches(msg, m.keys.PrevAppt):
		if n := len(m.dayLayout()); n > 0 {
			if m.selected <= 0 {
				m.selected = n - 1
			} else {
				m.selected--
			}
			m.scrollToSelected()
		}

	// View
	case key.Matches(msg, m.keys.Zoom):
		m.zoomIdx = (m.zoomIdx + 1) % len(zoomLevels)
		m.scroll = 0
	case key.Matches(msg, m.keys.ScrollDown):
		m.scroll += max(m.bodyHeight()/2, 1)
	case key.Matches(msg, m.keys.ScrollUp):
		m.scroll = max(m.scroll-max(m.bodyHeight()/2, 1), 0)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	// Actions
	case key.Matches(msg, m.keys.Copy):
		laid := m.dayLayout()
		if len(laid) == 0 {
			m.statusMsg = "No appointments to copy"
			return m, clearStatusAfter(statusTimeout)
		}
		if err := m.copy(render.PlainText(m.nav.Selected(), m.staffFilter(), laid)); err != nil {
			m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
			return m, clearStatusAfter(statusTimeout)
		}
		m.statusMsg = fmt.Sprintf("Copied %d appointments", len(laid))
		return m, clearStatusAfter(statusTimeout)
	case key.Matches(msg, m.keys.Reload):
		if m.repo == nil {
			return m, nil
		}
		// The store may have changed without a new version, e.g. an edited config.
		m.cache.Invalidate()
		m.loading = true
		m.reloading = true
		return m, loadSnapshot(m.repo, m.cfg, m.logger)
	}

	return m, nil
}

const statusTimeout = 3 * time.Second
