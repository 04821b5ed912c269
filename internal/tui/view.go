package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var body, hints string
	switch a.view {
	case ViewRepoList:
		body = a.renderRepoList()
		hints = "enter select · / filter · o open · r refresh · q quit"
	case ViewRunList:
		body = a.renderRunList()
		hints = "enter jobs · n/p page · R rerun · C cancel · esc back"
	case ViewRunDetail:
		body = a.renderRunDetail()
		hints = "enter logs · R rerun · C cancel · o open · esc back"
	case ViewLogView:
		body = a.renderLogView()
		hints = "j/k scroll · esc back"
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(a.breadcrumb(), a.rate, a.width),
		body,
		renderStatusBar(a.status, hints, a.width),
	)

	if a.confirmDialog.IsActive() {
		dialog := a.confirmDialog.View()
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, dialog)
	}

	return view
}

func (a App) breadcrumb() string {
	var parts []string
	if a.client.HasRepo() {
		parts = append(parts, a.client.Owner()+"/"+a.client.Repo())
	} else {
		parts = append(parts, "repositories")
	}
	if a.currentRun != nil && (a.view == ViewRunDetail || a.view == ViewLogView) {
		parts = append(parts, fmt.Sprintf("#%d", a.currentRun.RunNumber))
	}
	if a.view == ViewLogView && a.logJobName != "" {
		parts = append(parts, a.logJobName)
	}
	return strings.Join(parts, " > ")
}

// bodyHeight is the vertical space left for list content.
func (a App) bodyHeight() int {
	h := a.height - logChrome
	if h < 1 {
		h = 1
	}
	return h
}

// windowAround keeps the selection visible when the list outgrows the
// body, returning the [start,end) slice bounds to draw.
func windowAround(selected, count, window int) (int, int) {
	if count <= window {
		return 0, count
	}
	start := selected - window/2
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > count {
		end = count
		start = end - window
	}
	return start, end
}
