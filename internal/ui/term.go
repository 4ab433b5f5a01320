package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the CLI.
var (
	// Upcoming intervals: bold blue like the web timeline blocks
	colorEvent = color.New(color.FgBlue, color.Bold)

	// Intervals that already ended: grey
	colorPast = color.New(color.FgWhite, color.Faint)

	// Free spans: green
	colorFree = color.New(color.FgGreen)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Warnings and skipped items: yellow
	colorWarning = color.New(color.FgYellow)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatEvent(s string) string   { return colorEvent.Sprint(s) }
func formatPast(s string) string    { return colorPast.Sprint(s) }
func formatFree(s string) string    { return colorFree.Sprint(s) }
func formatHeader(s string) string  { return colorHeader.Sprint(s) }
func formatWarning(s string) string { return colorWarning.Sprint(s) }
func formatMuted(s string) string   { return colorMuted.Sprint(s) }
