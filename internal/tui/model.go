// Package tui provides the interactive day view.
package tui

import (
	"fmt"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/appointment"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/config"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/layout"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/render"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/week"
)

// Options configures a Model.
type Options struct {
	Repo   appointment.Repository
	Config *config.Config
	Logger *zap.Logger

	// Now returns the current time; defaults to time.Now.
	Now func() time.Time
	// Copy writes text to the clipboard; defaults to clipboard.WriteAll.
	Copy func(string) error
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   appointment.Repository
	cfg    *config.Config
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time
	copy   func(string) error

	// State
	nav      *week.Navigator
	cache    *layout.Cache
	staff    []string // filter choices, wildcard first
	staffIdx int
	selected int // index into the day layout, -1 for none
	loading   bool
	reloading bool // the pending load was asked for with the reload key
	dropped   int  // records in the snapshot that did not normalize

	// Terminal dimensions and layout
	width   int
	height  int
	zoomIdx int // index into zoomLevels
	scroll  int // first grid row shown

	keys   keyMap
	help   help.Model
	styles render.Styles

	statusMsg string
	err       error
}

// New creates a model anchored on today's week.
func New(opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	cp := opts.Copy
	if cp == nil {
		cp = clipboard.WriteAll
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	loc, err := cfg.Location()
	if err != nil {
		loc = time.Local
	}

	return Model{
		repo:     opts.Repo,
		cfg:      cfg,
		logger:   logger,
		loc:      loc,
		now:      now,
		copy:     cp,
		nav:      week.New(now().In(loc), cfg.FirstWeekday()),
		cache:    layout.NewCache(cfg.Layout.AllStaffLabel),
		staff:    []string{cfg.Layout.AllStaffLabel},
		selected: -1,
		loading:  opts.Repo != nil,
		zoomIdx:  1,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   render.DefaultStyles(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	return loadSnapshot(m.repo, m.cfg, m.logger)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case snapshotLoadedMsg:
		m.loading = false
		m.err = nil
		m.applySnapshot(msg.snap.Version, msg.snap.Intervals)
		m.dropped = msg.snap.Dropped()
		reloaded := m.reloading
		m.reloading = false
		switch {
		case m.dropped > 0:
			m.statusMsg = fmt.Sprintf("%d records could not be shown", m.dropped)
		case reloaded:
			m.statusMsg = reloadStatus(m.cache.Version(), msg.snap.ImportedAt.In(m.loc))
		default:
			return m, nil
		}
		return m, clearStatusAfter(statusTimeout)

	case errMsg:
		m.loading = false
		m.reloading = false
		m.err = msg.err
		m.logger.Error("loading snapshot", zap.Error(msg.err))
		return m, nil

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// applySnapshot loads intervals into the cache and rebuilds the staff
// choices, keeping the current filter when it still exists.
func (m *Model) applySnapshot(version int64, intervals []appointment.Interval) {
	current := m.staffFilter()
	m.cache.SetSnapshot(version, intervals)

	wildcard := m.cfg.Layout.AllStaffLabel
	labels := layout.StaffLabels(m.cache.Intervals())
	labels = slices.DeleteFunc(labels, func(s string) bool { return s == wildcard })
	m.staff = append([]string{wildcard}, labels...)

	m.staffIdx = max(slices.Index(m.staff, current), 0)
	m.resetDay()
}

// reloadStatus reports the snapshot a reload brought in.
func reloadStatus(version int64, importedAt time.Time) string {
	if importedAt.IsZero() {
		return fmt.Sprintf("Reloaded snapshot %d", version)
	}
	return fmt.Sprintf("Reloaded snapshot %d, imported %s", version, importedAt.Format("Mon 02 Jan 15:04"))
}

// today returns the current time in the configured timezone.
func (m Model) today() time.Time {
	return m.now().In(m.loc)
}

// staffFilter returns the active staff choice.
func (m Model) staffFilter() string {
	if m.staffIdx < 0 || m.staffIdx >= len(m.staff) {
		return m.cfg.Layout.AllStaffLabel
	}
	return m.staff[m.staffIdx]
}

// dayLayout returns the laid-out appointments for the selected day and staff.
func (m Model) dayLayout() []layout.Interval {
	return m.cache.View(m.nav.Selected(), m.staffFilter())
}

// selectedAppointment returns the highlighted appointment, if any.
func (m Model) selectedAppointment() (layout.Interval, bool) {
	laid := m.dayLayout()
	if m.selected < 0 || m.selected >= len(laid) {
		return layout.Interval{}, false
	}
	return laid[m.selected], true
}

// resetDay clears per-day view state after the day or filter changes.
func (m *Model) resetDay() {
	m.selected = -1
	m.scroll = 0
}

// slotMinutes returns the minutes per grid row at the current zoom.
func (m Model) slotMinutes() int {
	return zoomLevels[m.zoomIdx]
}

// scrollToSelected moves the scroll offset so the selected box's first row
// is visible.
func (m *Model) scrollToSelected() {
	iv, ok := m.selectedAppointment()
	if !ok {
		return
	}
	rph := 60 / m.slotMinutes()
	startHour, _ := m.gridHours()
	row := int(iv.Start*float64(rph)) - startHour*rph
	body := m.bodyHeight()
	if row < m.scroll {
		m.scroll = row
	} else if body > 0 && row >= m.scroll+body {
		m.scroll = row - body + 1
	}
}

// gridHours is the hour range drawn for the current day.
func (m Model) gridHours() (int, int) {
	return render.FitHours(m.dayLayout())
}

// Run starts the TUI.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
