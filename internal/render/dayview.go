package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/appointment"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/layout"
)

const (
	labelWidth   = 6 // "09:30 "
	minLaneWidth = 4

	defaultDayStart = 9
	defaultDayEnd   = 17
)

// Options controls the day grid.
type Options struct {
	Width       int // total columns including time labels
	SlotMinutes int // minutes per row; must divide 60, default 30

	// StartHour and EndHour bound the rows drawn. When EndHour is not after
	// StartHour the range is fitted to the appointments, never narrower
	// than 09:00-17:00.
	StartHour int
	EndHour   int

	Selected string // id of the appointment drawn highlighted
}

func (o Options) rowsPerHour() int {
	if o.SlotMinutes <= 0 || o.SlotMinutes > 60 || 60%o.SlotMinutes != 0 {
		return 2
	}
	return 60 / o.SlotMinutes
}

func (o Options) hourRange(laid []layout.Interval) (int, int) {
	if o.EndHour > o.StartHour {
		return max(o.StartHour, 0), min(o.EndHour, 24)
	}
	return FitHours(laid)
}

// FitHours returns the whole hours covering laid, never narrower than
// 09:00-17:00.
func FitHours(laid []layout.Interval) (start, end int) {
	start, end = defaultDayStart, defaultDayEnd
	for _, iv := range laid {
		start = min(start, int(math.Floor(iv.Start)))
		end = max(end, int(math.Ceil(iv.End)))
	}
	return max(start, 0), min(end, 24)
}

// box is an appointment's cell rectangle in the grid, half-open on both axes.
type box struct {
	top, bottom int
	left, right int
	visible     bool
}

// DayView draws laid as a time grid: one row per slot, one lane per column.
// Boxes come from layout.Geometry with one cell per unit, so lanes follow
// the same formulas as any other renderer.
func DayView(laid []layout.Interval, styles Styles, opts Options) string {
	rph := opts.rowsPerHour()
	startHour, endHour := opts.hourRange(laid)
	rows := (endHour - startHour) * rph
	lanes := max(opts.Width, labelWidth+minLaneWidth) - labelWidth

	g := layout.Geometry{
		RowHeightPerHour: float64(rph),
		ContainerWidth:   float64(lanes),
		GapPadding:       1,
	}

	grid := make([][]int, rows)
	for y := range grid {
		grid[y] = make([]int, lanes)
		for x := range grid[y] {
			grid[y][x] = -1
		}
	}

	boxes := make([]box, len(laid))
	offset := startHour * rph
	for i, iv := range laid {
		r := g.Rect(iv)
		b := box{
			top:    max(int(math.Floor(r.Top))-offset, 0),
			bottom: min(int(math.Ceil(r.Top+r.Height))-offset, rows),
			left:   max(int(math.Round(r.Left)), 0),
			right:  min(int(math.Round(r.Left+r.Width)), lanes),
		}
		if b.bottom <= b.top || b.right <= b.left {
			continue
		}
		b.visible = true
		boxes[i] = b
		for y := b.top; y < b.bottom; y++ {
			for x := b.left; x < b.right; x++ {
				if grid[y][x] < 0 {
					grid[y][x] = i
				}
			}
		}
	}

	lines := make([]string, 0, rows)
	var sb strings.Builder
	for y := range rows {
		sb.Reset()
		at := float64(startHour) + float64(y)/float64(rph)
		label := fmt.Sprintf("%-*s", labelWidth, appointment.FormatHour(at))
		if y%rph == 0 {
			sb.WriteString(styles.HourLabel.Render(label))
		} else {
			sb.WriteString(styles.SlotLabel.Render(label))
		}

		for x := 0; x < lanes; {
			idx := grid[y][x]
			end := x
			for end < lanes && grid[y][end] == idx {
				end++
			}
			width := end - x
			if idx < 0 {
				sb.WriteString(strings.Repeat(" ", width))
			} else {
				iv := laid[idx]
				text := fit(boxLine(iv, y-boxes[idx].top), width)
				style := styles.boxStyle(iv.Color, iv.Column, iv.ID == opts.Selected)
				sb.WriteString(style.Render(text))
			}
			x = end
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}

	return strings.Join(lines, "\n")
}

// boxLine is the text on row n of an appointment box.
func boxLine(iv layout.Interval, n int) string {
	switch n {
	case 0:
		return iv.Title
	case 1:
		return TimeRange(iv.Interval)
	case 2:
		return iv.StaffLabel
	default:
		return ""
	}
}

// fit pads or truncates s to exactly width cells, with a leading space.
func fit(s string, width int) string {
	if s != "" {
		s = " " + s
	}
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// TimeRange formats an interval as "09:30-10:00".
func TimeRange(iv appointment.Interval) string {
	return appointment.FormatHour(iv.Start) + "-" + appointment.FormatHour(iv.End)
}

// Header is the line above the grid: date, staff filter and count.
func Header(styles Styles, date time.Time, staff string, count int) string {
	noun := "appointments"
	if count == 1 {
		noun = "appointment"
	}
	return styles.Title.Render(date.Format("Mon 02 Jan 2006")) +
		styles.Muted.Render("  ·  ") +
		styles.Header.Render(staff) +
		styles.Muted.Render(fmt.Sprintf("  ·  %d %s", count, noun))
}

// EmptyDay is the message shown when a day view has no appointments.
func EmptyDay(styles Styles, staff, allStaff string) string {
	if staff == allStaff {
		return styles.Empty.Render("No appointments scheduled for this day.")
	}
	return styles.Empty.Render(fmt.Sprintf("No appointments for %s on this day.", staff))
}
