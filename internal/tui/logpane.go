package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/altin/gh-watch/internal/ui"
)

func (a App) renderLogView() string {
	var b strings.Builder

	if len(a.logLines) == 0 {
		if a.loading {
			b.WriteString(ui.StyleMuted.Render("  Fetching log..."))
		} else {
			b.WriteString(ui.StyleMuted.Render("  Log is empty"))
		}
		return padBody(b.String(), a.bodyHeight())
	}

	window := a.logWindow()
	start := a.logScroll
	end := start + window
	if end > len(a.logLines) {
		end = len(a.logLines)
	}

	for _, line := range a.logLines[start:end] {
		if a.width > 2 {
			// Display-width aware, so wide runes and escape
			// sequences never get split mid-cell.
			line = ansi.Truncate(line, a.width-2, "")
		}
		b.WriteString(" " + line + "\n")
	}

	b.WriteString(ui.StyleMuted.Render(fmt.Sprintf("  lines %d-%d of %d", start+1, end, len(a.logLines))))

	return padBody(b.String(), a.bodyHeight())
}
