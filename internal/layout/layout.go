// Package layout assigns side-by-side columns to the appointments of one day
// so that overlapping appointments never share a lane.
//
// The column pass is a greedy first-fit coloring of the interval graph: it is
// deterministic for a given input order but does not promise the minimum
// number of columns. ColumnsCount is widened by any pairwise overlap, so a
// chain A-B-C where A and C do not touch can give A or C more lanes than
// their own overlaps need; renderers rely on that behavior.
package layout

import (
	"cmp"
	"slices"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/appointment"
)

// Interval is an appointment with its lane assignment.
type Interval struct {
	appointment.Interval

	Column       int // 0-based lane
	ColumnsCount int // lanes the renderer divides the width into, >= 1
}

// Filter returns the intervals on date that belong to staff, or to anyone
// when staff equals wildcard. The result is stably sorted by (start, end),
// which is the order Assign expects.
func Filter(intervals []appointment.Interval, date, staff, wildcard string) []appointment.Interval {
	out := make([]appointment.Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Date != date {
			continue
		}
		if staff != wildcard && iv.StaffLabel != staff {
			continue
		}
		out = append(out, iv)
	}
	SortByTime(out)
	return out
}

// SortByTime stably sorts intervals by start, then end. Equal keys keep
// their input order.
func SortByTime(intervals []appointment.Interval) {
	slices.SortStableFunc(intervals, func(a, b appointment.Interval) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
}

// Assign lays out intervals that are already filtered to one day and sorted
// with SortByTime.
//
// Each interval takes the lowest column not held by an interval still in
// play at its start. A second pass sets ColumnsCount to one more than the
// highest column among the interval and everything overlapping it.
func Assign(sorted []appointment.Interval) []Interval {
	out := make([]Interval, 0, len(sorted))
	var active []int // indexes into out

	for _, iv := range sorted {
		kept := active[:0]
		for _, idx := range active {
			if out[idx].End > iv.Start {
				kept = append(kept, idx)
			}
		}
		active = kept

		out = append(out, Interval{
			Interval:     iv,
			Column:       firstFreeColumn(out, active),
			ColumnsCount: 1,
		})
		active = append(active, len(out)-1)
	}

	// O(n^2); fine for a day of appointments, revisit for bulk layouts.
	for i := range out {
		highest := out[i].Column
		for j := range out {
			if i == j || !out[i].Overlaps(out[j].Interval) {
				continue
			}
			highest = max(highest, out[j].Column)
		}
		out[i].ColumnsCount = highest + 1
	}

	return out
}

// firstFreeColumn returns the lowest column not used by the active set.
func firstFreeColumn(out []Interval, active []int) int {
	used := make(map[int]bool, len(active))
	for _, idx := range active {
		used[out[idx].Column] = true
	}
	col := 0
	for used[col] {
		col++
	}
	return col
}

// Overlaps reports whether two laid-out intervals share any time. Intervals
// are half-open, so one ending exactly when the other starts does not
// overlap it.
func Overlaps(a, b Interval) bool {
	return appointment.HoursOverlap(a.Start, a.End, b.Start, b.End)
}

// Build filters intervals to one day and staff view and lays them out.
func Build(intervals []appointment.Interval, date, staff, wildcard string) []Interval {
	return Assign(Filter(intervals, date, staff, wildcard))
}

// MaxColumns returns the widest ColumnsCount in a layout, 0 when empty.
func MaxColumns(laid []Interval) int {
	n := 0
	for _, iv := range laid {
		n = max(n, iv.ColumnsCount)
	}
	return n
}

// StaffLabels returns the distinct staff labels in intervals, sorted.
func StaffLabels(intervals []appointment.Interval) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, iv := range intervals {
		if seen[iv.StaffLabel] {
			continue
		}
		seen[iv.StaffLabel] = true
		labels = append(labels, iv.StaffLabel)
	}
	slices.Sort(labels)
	return labels
}
