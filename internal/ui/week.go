package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/appointment"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/dateutil"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/layout"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/snapshot"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/summary"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/week"
)

func (a *App) weekCmd() *cobra.Command {
	var (
		date    string
		staff   string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show appointment counts for each day of a week",
		Long: `Show the week containing a date, one line per day, with the number of
appointments and the most lanes any of them needs.

The week starts on the configured [calendar] week_start.`,
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

			nav := week.New(day, a.config.FirstWeekday())
			cache := layout.NewCache(a.config.Layout.AllStaffLabel)
			cache.SetSnapshot(snap.Version, snap.Intervals)

			out := cmd.OutOrStdout()
			header := fmt.Sprintf("WEEK: %s - %s  ·  %s",
				nav.WeekStart().Format("Mon Jan 2"), nav.WeekEnd().Format("Mon Jan 2, 2006"), staff)
			fmt.Fprintf(out, "\n  %s\n", formatHeader(header))
			fmt.Fprintln(out, strings.Repeat("─", 50))

			sum := summary.SummarizeWeek(cache, nav.Days(), staff)
			for i, d := range sum.Days {
				line := fmt.Sprintf("  %s  %3d appointments", d.Date.Format("Mon 2006-01-02"), d.Appointments)
				if d.Appointments == 0 {
					fmt.Fprintln(out, formatMuted(line))
					continue
				}
				line += "  " + formatLane(fmt.Sprintf("%d lanes", d.Lanes), d.Lanes > 1)
				line += formatMuted(fmt.Sprintf("  %s-%s  %.1fh booked",
					appointment.FormatHour(d.FirstStart), appointment.FormatHour(d.LastEnd), d.BookedHours))
				if i == sum.Busiest {
					line += "  " + formatStats("busiest")
				}
				fmt.Fprintln(out, line)
			}

			fmt.Fprintln(out, strings.Repeat("─", 50))
			fmt.Fprintf(out, "  Total: %s  ·  %.1fh booked\n", formatStats(fmt.Sprint(sum.Total)), sum.BookedHours())
			if n := snap.Dropped(); n > 0 {
				fmt.Fprintln(out, formatWarn(fmt.Sprintf("  %d stored records could not be shown", n)))
			}
			if !snap.ImportedAt.IsZero() {
				fmt.Fprintln(out, formatMuted(fmt.Sprintf("  Snapshot %d imported %s",
					snap.Version, snap.ImportedAt.In(now.Location()).Format("2006-01-02 15:04"))))
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "today", "Any day in the week to show")
	cmd.Flags().StringVarP(&staff, "staff", "s", "", "Only count this staff member (default: all staff)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
