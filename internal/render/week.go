package render

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/dateutil"
)

// WeekStrip draws the navigator's seven days on one line. counts maps
// YYYY-MM-DD to the number of appointments on that day.
func WeekStrip(styles Styles, days [7]time.Time, selected, today time.Time, counts map[string]int) string {
	cells := make([]string, 0, len(days))
	for _, d := range days {
		label := d.Format("Mon 02")
		if n := counts[dateutil.Format(d)]; n > 0 {
			label += fmt.Sprintf(" ·%d", n)
		}

		style := styles.Day
		switch {
		case d.Equal(selected):
			style = styles.DayActive
		case dateutil.Format(d) == dateutil.Format(today):
			style = styles.DayToday
		}
		cells = append(cells, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
