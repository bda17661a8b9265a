// Package summary provides shared week summary utilities.
package summary

import (
	"time"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/dateutil"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/layout"
)

// DayViewer returns the laid-out appointments of one day for a staff filter.
// *layout.Cache satisfies it.
type DayViewer interface {
	View(date, staff string) []layout.Interval
}

// DaySummary aggregates one laid-out day.
type DaySummary struct {
	Date         time.Time
	Appointments int
	Lanes        int     // most side-by-side lanes needed
	BookedHours  float64 // sum of durations, overlaps counted per appointment
	FirstStart   float64 // zero when the day is empty
	LastEnd      float64
}

// WeekSummary holds aggregated data for the seven days of a week.
type WeekSummary struct {
	Start   time.Time
	End     time.Time
	Staff   string
	Days    [7]DaySummary
	Total   int
	Busiest int // index into Days, -1 when the week is empty
}

// SummarizeDay aggregates a laid-out day.
func SummarizeDay(date time.Time, laid []layout.Interval) DaySummary {
	s := DaySummary{Date: date, Appointments: len(laid), Lanes: layout.MaxColumns(laid)}
	for i, iv := range laid {
		s.BookedHours += iv.End - iv.Start
		if i == 0 || iv.Start < s.FirstStart {
			s.FirstStart = iv.Start
		}
		s.LastEnd = max(s.LastEnd, iv.End)
	}
	return s
}

// SummarizeWeek lays out each of days through v and aggregates the results.
// The busiest day is the one with the most appointments, the earliest on a
// tie.
func SummarizeWeek(v DayViewer, days [7]time.Time, staff string) *WeekSummary {
	w := &WeekSummary{
		Start:   days[0],
		End:     days[6],
		Staff:   staff,
		Busiest: -1,
	}
	for i, d := range days {
		day := SummarizeDay(d, v.View(dateutil.Format(d), staff))
		w.Days[i] = day
		w.Total += day.Appointments
		if day.Appointments > 0 && (w.Busiest < 0 || day.Appointments > w.Days[w.Busiest].Appointments) {
			w.Busiest = i
		}
	}
	return w
}

// Counts returns appointments per day keyed by YYYY-MM-DD.
func (w *WeekSummary) Counts() map[string]int {
	counts := make(map[string]int, len(w.Days))
	for _, d := range w.Days {
		counts[dateutil.Format(d.Date)] = d.Appointments
	}
	return counts
}

// BookedHours returns the week's summed appointment hours.
func (w *WeekSummary) BookedHours() float64 {
	var total float64
	for _, d := range w.Days {
		total += d.BookedHours
	}
	return total
}
