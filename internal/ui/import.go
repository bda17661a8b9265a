package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/snapshot"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [records.json]",
		Short: "Import a snapshot of appointment records",
		Long: `Replace the stored appointment snapshot with the records in a JSON file.

The file holds an array of raw appointment records, optionally wrapped in
{"data": [...]}. Records that cannot be decoded are skipped and reported.
Use "-" to read from standard input.

Example:
  dayview import appointments.json
  curl -s https://example.com/appointments | dayview import -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			data, source, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			res, err := snapshot.Import(context.Background(), a.repo, data, a.logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %s records from %s (snapshot %d)\n",
				formatStats(fmt.Sprint(res.Stored)), source, res.Version)
			if res.Skipped > 0 {
				fmt.Fprintln(out, formatWarn(fmt.Sprintf("Skipped %d records that could not be decoded", res.Skipped)))
			}
			return nil
		},
	}

	return cmd
}

// readInput reads a file argument, or stdin for "-".
func readInput(stdin io.Reader, arg string) ([]byte, string, error) {
	if arg == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		return data, "stdin", nil
	}

	path, err := resolvePath(arg)
	if err != nil {
		return nil, "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("file does not exist: %s", path)
		}
		return nil, "", fmt.Errorf("checking file: %w", err)
	}
	if info.IsDir() {
		return nil, "", fmt.Errorf("path is a directory: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading file: %w", err)
	}
	return data, path, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
