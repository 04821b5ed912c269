package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/altin/gh-watch/internal/api"
	"github.com/altin/gh-watch/internal/ui"
)

func renderHeader(breadcrumb string, rate api.RateLimit, width int) string {
	left := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(" gh-watch | " + breadcrumb)

	right := ""
	if rate.Limit > 0 {
		color := ui.ColorSuccess
		if rate.Remaining < 100 {
			color = ui.ColorFailure
		} else if rate.Remaining < 500 {
			color = ui.ColorWarning
		}
		right = lipgloss.NewStyle().Foreground(color).
			Render(fmt.Sprintf("API: %d/%d ", rate.Remaining, rate.Limit))
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#1F2937")).
		Width(width).
		Render(left + padding + right)
}
