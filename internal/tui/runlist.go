package tui

import (
	"fmt"
	"strings"

	"github.com/altin/gh-watch/internal/model"
	"github.com/altin/gh-watch/internal/ui"
)

func (a App) renderRunList() string {
	var b strings.Builder

	if len(a.runs) == 0 {
		if a.loading {
			b.WriteString(ui.StyleMuted.Render("  Loading runs..."))
		} else {
			b.WriteString(ui.StyleMuted.Render("  No workflow runs"))
		}
		return padBody(b.String(), a.bodyHeight())
	}

	// Two rows per run.
	window := a.bodyHeight() / 2
	if window < 1 {
		window = 1
	}
	start, end := windowAround(a.runsSelected, len(a.runs), window)
	for i := start; i < end; i++ {
		r := a.runs[i]

		icon := ui.StatusIcon(string(r.Status), string(r.Conclusion))
		branch := ui.StyleInfo.Render(r.HeadBranch)
		age := ui.StyleMuted.Render(r.Age())
		state := ui.StatusStyle(r.StatusText()).Render(r.StatusText())
		dur := ui.StyleMuted.Render(model.FormatDuration(r.Duration()))

		line1 := fmt.Sprintf(" %s #%-5d %s  %s  %s  %s", icon, r.RunNumber, state, branch, dur, age)
		line2 := fmt.Sprintf("      %s %s", r.DisplayTitle, ui.StyleMuted.Render("("+r.ShortSHA()+" by "+r.Actor.Login+")"))

		if i == a.runsSelected {
			line1 = ui.StyleSelected.Width(a.width).Render(line1)
			line2 = ui.StyleSelected.Width(a.width).Render(line2)
		}
		b.WriteString(line1 + "\n" + line2 + "\n")
	}

	b.WriteString(ui.StyleMuted.Render(fmt.Sprintf("\n  page %d/%d (%d runs)", a.page, a.totalPages(), a.runsTotal)))

	return padBody(b.String(), a.bodyHeight())
}
