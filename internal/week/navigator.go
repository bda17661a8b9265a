// Package week keeps the selected day of the day view inside a 7-day window.
package week

import (
	"time"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/dateutil"
)

// Navigator holds the selected date and the start of the week shown around
// it. After every transition the selected date lies within
// [WeekStart, WeekStart+6 days]; a date outside is clamped to WeekStart.
type Navigator struct {
	firstDay  time.Weekday
	weekStart time.Time
	selected  time.Time
}

// New anchors a navigator on the week containing today, with weeks starting
// on firstDay. today becomes the selected date.
func New(today time.Time, firstDay time.Weekday) *Navigator {
	day := dateutil.TruncateToDay(today)
	return &Navigator{
		firstDay:  firstDay,
		weekStart: dateutil.StartOfWeek(day, firstDay),
		selected:  day,
	}
}

// SelectedDate returns the selected day at midnight.
func (n *Navigator) SelectedDate() time.Time {
	return n.selected
}

// Selected returns the selected day as YYYY-MM-DD.
func (n *Navigator) Selected() string {
	return dateutil.Format(n.selected)
}

// WeekStart returns the first day of the current window.
func (n *Navigator) WeekStart() time.Time {
	return n.weekStart
}

// WeekEnd returns the last day of the current window.
func (n *Navigator) WeekEnd() time.Time {
	_, end := dateutil.WeekRange(n.weekStart, n.firstDay)
	return end
}

// Days returns the seven days of the current window.
func (n *Navigator) Days() [7]time.Time {
	var days [7]time.Time
	for i := range days {
		days[i] = n.weekStart.AddDate(0, 0, i)
	}
	return days
}

// DayIndex returns the selected day's offset from WeekStart (0-6).
func (n *Navigator) DayIndex() int {
	for i, d := range n.Days() {
		if d.Equal(n.selected) {
			return i
		}
	}
	return 0
}

// Contains reports whether date falls inside the current window.
func (n *Navigator) Contains(date time.Time) bool {
	d := dateutil.TruncateToDay(date.In(n.weekStart.Location()))
	return !d.Before(n.weekStart) && !d.After(n.WeekEnd())
}

// NextWeek moves the window forward 7 days and selects its first day.
func (n *Navigator) NextWeek() {
	n.weekStart = n.weekStart.AddDate(0, 0, 7)
	n.selected = n.weekStart
}

// PreviousWeek moves the window back 7 days and selects its first day.
func (n *Navigator) PreviousWeek() {
	n.weekStart = n.weekStart.AddDate(0, 0, -7)
	n.selected = n.weekStart
}

// Select changes the selected date. A date outside the window is clamped
// to WeekStart; the window itself does not move.
func (n *Navigator) Select(date time.Time) {
	n.selected = dateutil.TruncateToDay(date.In(n.weekStart.Location()))
	n.clamp()
}

// NextDay selects the following day, staying on the last day of the window.
func (n *Navigator) NextDay() {
	if idx := n.DayIndex(); idx < 6 {
		n.selected = n.weekStart.AddDate(0, 0, idx+1)
	}
}

// PreviousDay selects the preceding day, staying on the first day of the
// window.
func (n *Navigator) PreviousDay() {
	if idx := n.DayIndex(); idx > 0 {
		n.selected = n.weekStart.AddDate(0, 0, idx-1)
	}
}

// GoTo re-anchors the window on the week containing date and selects it.
func (n *Navigator) GoTo(date time.Time) {
	day := dateutil.TruncateToDay(date.In(n.weekStart.Location()))
	n.weekStart = dateutil.StartOfWeek(day, n.firstDay)
	n.selected = day
}

func (n *Navigator) clamp() {
	if !n.Contains(n.selected) {
		n.selected = n.weekStart
	}
}
