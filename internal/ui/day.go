package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/appointment"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/config"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/dateutil"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/layout"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/render"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/snapshot"
)

// dayOutput is the --json shape of a laid-out day.
type dayOutput struct {
	Date         string           `json:"date"`
	Staff        string           `json:"staff"`
	Columns      int              `json:"columns"`
	Appointments []appointmentOut `json:"appointments"`
}

type appointmentOut struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Staff        string  `json:"staff"`
	Color        string  `json:"color,omitempty"`
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Column       int     `json:"column"`
	ColumnsCount int     `json:"columnsCount"`
	Rect         rectOut `json:"rect"`
}

type rectOut struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
}

func (a *App) dayCmd() *cobra.Command {
	var (
		date    string
		staff   string
		asJSON  bool
		grid    bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show one day's appointments laid out in lanes",
		Long: `Show the appointments of one day with their lane assignment.

Overlapping appointments get different lanes; "lane 2/3" means the second of
three side-by-side lanes. The box geometry uses the [geometry] settings.

Date formats:
  YYYY-MM-DD, today, tomorrow, yesterday, monday..sunday, next-monday

Example:
  dayview day --date tomorrow --staff Maya
  dayview day --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			now, err := a.today()
			if err != nil {
				return err
			}
			day, err := dateutil.ParseRelativeDate(date, now)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", date, err)
			}
			if staff == "" {
				staff = a.config.Layout.AllStaffLabel
			}

			snap, err := snapshot.Load(context.Background(), a.repo, a.config, a.logger)
			if err != nil {
				return err
			}

			dateStr := dateutil.Format(day)
			laid := layout.Build(snap.Intervals, dateStr, staff, a.config.Layout.AllStaffLabel)
			geom := geometry(a.config.Geometry)

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(dayJSON(dateStr, staff, laid, geom))
			case len(laid) == 0:
				fmt.Fprintf(out, "No appointments on %s for %s.\n", day.Format("Mon Jan 2, 2006"), staff)
				return nil
			case grid:
				fmt.Fprintln(out, render.Header(render.DefaultStyles(), day, staff, len(laid)))
				fmt.Fprintln(out, render.DayView(laid, render.DefaultStyles(), render.Options{Width: termWidth()}))
				return nil
			default:
				printDay(out, day, staff, laid, geom)
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "today", "Day to show")
	cmd.Flags().StringVarP(&staff, "staff", "s", "", "Only show this staff member (default: all staff)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the layout as JSON")
	cmd.Flags().BoolVar(&grid, "grid", false, "Draw the day as a time grid")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

// geometry converts the configured measurements.
func geometry(c config.GeometryConfig) layout.Geometry {
	return layout.Geometry{
		RowHeightPerHour: c.RowHeightPerHour,
		LabelColumnWidth: c.LabelColumnWidth,
		ContainerWidth:   c.ContainerWidth,
		GapPadding:       c.GapPadding,
	}
}

func dayJSON(date, staff string, laid []layout.Interval, g layout.Geometry) dayOutput {
	out := dayOutput{
		Date:         date,
		Staff:        staff,
		Columns:      layout.MaxColumns(laid),
		Appointments: make([]appointmentOut, 0, len(laid)),
	}
	rects := g.Rects(laid)
	for i, iv := range laid {
		r := rects[i]
		out.Appointments = append(out.Appointments, appointmentOut{
			ID:           iv.ID,
			Title:        iv.Title,
			Staff:        iv.StaffLabel,
			Color:        iv.Color,
			Start:        iv.Start,
			End:          iv.End,
			StartTime:    appointment.FormatHour(iv.Start),
			EndTime:      appointment.FormatHour(iv.End),
			Column:       iv.Column,
			ColumnsCount: iv.ColumnsCount,
			Rect:         rectOut{Top: r.Top, Height: r.Height, Left: r.Left, Width: r.Width},
		})
	}
	return out
}

// printDay prints one line per appointment in start order.
func printDay(out io.Writer, day time.Time, staff string, laid []layout.Interval, g layout.Geometry) {
	noun := "appointments"
	if len(laid) == 1 {
		noun = "appointment"
	}
	header := fmt.Sprintf("%s  ·  %s  ·  %d %s", day.Format("Mon Jan 2, 2006"), staff, len(laid), noun)
	fmt.Fprintf(out, "\n  %s\n", formatHeader(header))
	fmt.Fprintln(out, strings.Repeat("─", 74))

	rects := g.Rects(laid)
	for i, iv := range laid {
		r := rects[i]
		lane := fmt.Sprintf("lane %d/%d", iv.Column+1, iv.ColumnsCount)
		box := fmt.Sprintf("top %.0f h %.0f left %.0f w %.0f", r.Top, r.Height, r.Left, r.Width)
		fmt.Fprintf(out, "  %s  %s  %-24s %-16s %s\n",
			formatTime(render.TimeRange(iv.Interval)),
			formatLane(lane, iv.ColumnsCount > 1),
			ansi.Truncate(iv.Title, 24, "…"),
			ansi.Truncate(iv.StaffLabel, 16, "…"),
			formatMuted(box),
		)
	}
	fmt.Fprintln(out)
}
