package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	var path string
	var initFile bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View the effective configuration",
		Long: `Print the configuration in effect: defaults, overlaid by the config file,
overlaid by DAYVIEW_* environment variables.

With --init, writes the current values to the config file if it does not
exist yet.

Example:
  dayview config
  dayview config --init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config file: %s\n\n", path)

			if initFile {
				_, err := os.Stat(path)
				switch {
				case err == nil:
					fmt.Fprintln(out, "Config file already exists, leaving it unchanged.")
				case os.IsNotExist(err):
					if err := a.config.SaveTo(path); err != nil {
						return fmt.Errorf("saving config: %w", err)
					}
					fmt.Fprintf(out, "Created %s\n\n", path)
				default:
					return fmt.Errorf("checking config file: %w", err)
				}
			}

			printConfig(out, a.config)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Config file to write with --init (default: ~/.config/dayview/config.toml)")
	cmd.Flags().BoolVar(&initFile, "init", false, "Write the config file if missing")

	return cmd
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[layout]")
	fmt.Fprintf(out, "  default_duration_minutes = %d\n", cfg.Layout.DefaultDurationMinutes)
	fmt.Fprintf(out, "  all_staff_label          = %s\n", cfg.Layout.AllStaffLabel)
	fmt.Fprintf(out, "  unknown_staff_label      = %s\n", cfg.Layout.UnknownStaffLabel)
	fmt.Fprintf(out, "  untitled_label           = %s\n", cfg.Layout.UntitledLabel)
	fmt.Fprintln(out, "\n[geometry]")
	fmt.Fprintf(out, "  row_height_per_hour      = %g\n", cfg.Geometry.RowHeightPerHour)
	fmt.Fprintf(out, "  label_column_width       = %g\n", cfg.Geometry.LabelColumnWidth)
	fmt.Fprintf(out, "  container_width          = %g\n", cfg.Geometry.ContainerWidth)
	fmt.Fprintf(out, "  gap_padding              = %g\n", cfg.Geometry.GapPadding)
	fmt.Fprintln(out, "\n[calendar]")
	fmt.Fprintf(out, "  week_start               = %s\n", cfg.Calendar.WeekStart)
	tz := cfg.Calendar.Timezone
	if tz == "" {
		tz = "(local)"
	}
	fmt.Fprintf(out, "  timezone                 = %s\n", tz)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path                  = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level                    = %s\n", cfg.Log.Level)
	file := cfg.Log.File
	if file == "" {
		file = "(stderr)"
	}
	fmt.Fprintf(out, "  file                     = %s\n", file)
}
