package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/appointment"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/config"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/snapshot"
)

// snapshotLoadedMsg is sent when the stored records have been normalized.
type snapshotLoadedMsg struct {
	snap *snapshot.Snapshot
}

// errMsg is sent when an error occurs.
type errMsg struct {
	err error
}

// clearStatusMsg is sent to clear the status message.
type clearStatusMsg struct{}

// loadSnapshot reads and normalizes the stored snapshot.
func loadSnapshot(repo appointment.Repository, cfg *config.Config, logger *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		snap, err := snapshot.Load(context.Background(), repo, cfg, logger)
		if err != nil {
			return errMsg{err: err}
		}
		return snapshotLoadedMsg{snap: snap}
	}
}

// clearStatusAfter clears the status line after d.
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
