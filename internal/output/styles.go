package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Every color used by the CLI is declared here.
var (
	// ColorCyan is used for identifiable nouns: project names, package ids, paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for enabled packages and completed steps.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for warnings and skipped steps.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for failures (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	// ColorHeader is used for table headers.
	ColorHeader = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (project names, package ids, paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs and step messages.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (counters, separators, scopes).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Package status values shown by the packages listing.
const (
	StatusEnabled  = "enabled"
	StatusDisabled = "disabled"
	StatusFailed   = "failed"
)

// StatusStyle returns the lipgloss style for a given status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusEnabled:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusDisabled:
		return lipgloss.NewStyle().Faint(true)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatStep renders a progress line such as "[3/7] Creating shared configs".
func FormatStep(current, total int, message string) string {
	counter := StyleDim.Render(fmt.Sprintf("[%d/%d]", current, total))
	return counter + " " + StyleAction.Render(message)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatCross renders a red cross with a message.
func FormatCross(msg string) string {
	cross := lipgloss.NewStyle().Foreground(ColorBoldRed).Render("✘")
	return cross + " " + msg
}
