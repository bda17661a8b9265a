package ui

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/snapshot"
)

func (a *App) staffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage the staff directory",
		Long: `The staff directory maps staff ids found in appointment records to
display names.`,
	}

	cmd.AddCommand(a.staffImportCmd())
	cmd.AddCommand(a.staffListCmd())
	return cmd
}

func (a *App) staffImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [staff.yaml]",
		Short: "Add or update staff names from a YAML file",
		Long: `Add or update staff names. The file is either a list:

  staff:
    - id: s1
      name: Maya

or a flat mapping of id to name:

  s1: Maya
  s2: Jo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			data, source, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			dir, err := snapshot.ParseStaff(data)
			if err != nil {
				return err
			}

			if err := a.repo.SaveStaff(context.Background(), dir); err != nil {
				return fmt.Errorf("saving staff: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s staff entries from %s\n", formatStats(fmt.Sprint(len(dir))), source)
			return nil
		},
	}
}

func (a *App) staffListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the staff directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			dir, err := a.repo.StaffDirectory(context.Background())
			if err != nil {
				return fmt.Errorf("loading staff: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(dir) == 0 {
				fmt.Fprintln(out, "No staff entries. Add some with \"dayview staff import\".")
				return nil
			}
			for _, id := range slices.Sorted(maps.Keys(dir)) {
				fmt.Fprintf(out, "  %-12s %s\n", formatMuted(id), dir[id])
			}
			return nil
		},
	}
}
