package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorFailure   = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorInfo      = lipgloss.Color("#3B82F6")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorHighlight = lipgloss.Color("#1F2937")

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(ColorPrimary).
			Padding(0, 1)

	StyleSelected = lipgloss.NewStyle().
			Bold(true).
			Background(ColorHighlight)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleStatusBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D1D5DB")).
			Background(lipgloss.Color("#111827")).
			Padding(0, 1)

	StyleError = lipgloss.NewStyle().Bold(true).Foreground(ColorFailure)
)

func StatusStyle(text string) lipgloss.Style {
	switch text {
	case "Success":
		return StyleSuccess
	case "Failure", "Timed Out", "Startup Failure":
		return StyleFailure
	case "Cancelled", "Action Required":
		return StyleWarning
	case "Skipped", "Neutral", "Stale":
		return StyleMuted
	default:
		return StyleInfo
	}
}

func StatusIcon(status, conclusion string) string {
	switch conclusion {
	case "success":
		return StyleSuccess.Render("V")
	case "failure", "timed_out", "startup_failure":
		return StyleFailure.Render("X")
	case "cancelled", "action_required":
		return StyleWarning.Render("!")
	case "skipped", "neutral", "stale":
		return StyleMuted.Render("-")
	}
	switch status {
	case "in_progress":
		return StyleInfo.Render("*")
	case "queued", "waiting", "pending", "requested":
		return StyleMuted.Render("o")
	}
	return StyleMuted.Render("?")
}
