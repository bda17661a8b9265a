package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Times: cyan so the schedule column scans quickly
	colorTime = color.New(color.FgCyan)

	// Lanes: yellow when an appointment shares its time with others
	colorLane = color.New(color.FgYellow)

	// Stats: green for counts
	colorStats = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Warnings: skipped or dropped records
	colorWarn = color.New(color.FgRed)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatTime formats a time range.
func formatTime(s string) string {
	return colorTime.Sprint(s)
}

// formatLane formats a lane marker, highlighted when shared.
func formatLane(s string, shared bool) string {
	if !shared {
		return colorMuted.Sprint(s)
	}
	return colorLane.Sprint(s)
}

// formatStats formats text for statistics.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatWarn formats a warning.
func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}
