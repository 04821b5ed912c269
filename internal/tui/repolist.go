package tui

import (
	"fmt"
	"strings"

	"github.com/altin/gh-watch/internal/ui"
)

func (a App) renderRepoList() string {
	var b strings.Builder

	if a.searching || a.filterInput.Value() != "" {
		b.WriteString(" " + a.filterInput.View() + "\n")
	}

	repos := a.filteredRepos()
	if len(repos) == 0 {
		if a.loading {
			b.WriteString(ui.StyleMuted.Render("  Loading repositories..."))
		} else if a.filterInput.Value() != "" {
			b.WriteString(ui.StyleMuted.Render("  No repositories match the filter"))
		} else {
			b.WriteString(ui.StyleMuted.Render("  No repositories"))
		}
		return padBody(b.String(), a.bodyHeight())
	}

	start, end := windowAround(a.repoSelected, len(repos), a.bodyHeight())
	for i := start; i < end; i++ {
		r := repos[i]

		vis := " "
		if r.Private {
			vis = ui.StyleWarning.Render("*")
		}
		name := r.FullName
		meta := ui.StyleMuted.Render(r.Language)
		age := ui.StyleMuted.Render(r.LastActive())

		line := fmt.Sprintf(" %s %-45s %-12s %s", vis, name, meta, age)
		if i == a.repoSelected {
			line = ui.StyleSelected.Width(a.width).Render(line)
		}
		b.WriteString(line + "\n")
	}

	return padBody(b.String(), a.bodyHeight())
}

// padBody pads content to a fixed height so the status bar stays pinned.
func padBody(s string, height int) string {
	lines := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		lines++
	}
	for ; lines < height; lines++ {
		s += "\n"
	}
	return strings.TrimSuffix(s, "\n")
}
