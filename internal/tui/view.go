package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/render"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/summary"
)

const defaultWidth = 80

// chromeLines is the number of lines around the grid: header, week strip,
// blank, status.
const chromeLines = 4

// View renders the model.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	laid := m.dayLayout()
	staff := m.staffFilter()

	sections := []string{
		render.Header(m.styles, m.nav.SelectedDate(), staff, len(laid)),
		render.WeekStrip(m.styles, m.nav.Days(), m.nav.SelectedDate(), m.today(), m.weekCounts()),
		"",
		m.body(width),
		m.statusLine(),
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// body renders the day grid, cropped to the available height.
func (m Model) body(width int) string {
	switch {
	case m.err != nil:
		return m.styles.Empty.Render(fmt.Sprintf("Error: %v", m.err))
	case m.loading:
		return m.styles.Muted.Render("Loading appointments…")
	}

	laid := m.dayLayout()
	if len(laid) == 0 {
		return render.EmptyDay(m.styles, m.staffFilter(), m.cfg.Layout.AllStaffLabel)
	}

	opts := render.Options{
		Width:       width,
		SlotMinutes: m.slotMinutes(),
	}
	opts.StartHour, opts.EndHour = m.gridHours()
	if iv, ok := m.selectedAppointment(); ok {
		opts.Selected = iv.ID
	}

	lines := strings.Split(render.DayView(laid, m.styles, opts), "\n")
	height := m.bodyHeight()
	if height <= 0 || len(lines) <= height {
		return strings.Join(lines, "\n")
	}
	start := min(m.scroll, len(lines)-height)
	return strings.Join(lines[start:start+height], "\n")
}

// bodyHeight is the number of grid rows that fit, 0 when unknown.
func (m Model) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	helpLines := strings.Count(m.help.View(m.keys), "\n") + 1
	return max(m.height-chromeLines-helpLines, 1)
}

// statusLine shows the selected appointment, or a transient message.
func (m Model) statusLine() string {
	if m.statusMsg != "" {
		return m.styles.Title.Render(m.statusMsg)
	}
	iv, ok := m.selectedAppointment()
	if !ok {
		return m.styles.Muted.Render(m.nav.Selected())
	}
	return m.styles.Header.Render(fmt.Sprintf("%s  %s  %s  lane %d/%d",
		render.TimeRange(iv.Interval), iv.Title, iv.StaffLabel, iv.Column+1, iv.ColumnsCount))
}

// weekCounts counts appointments per day of the visible week for the active
// staff filter.
func (m Model) weekCounts() map[string]int {
	return summary.SummarizeWeek(m.cache, m.nav.Days(), m.staffFilter()).Counts()
}
