package tui

import (
	"fmt"
	"strings"

	"github.com/altin/gh-watch/internal/model"
	"github.com/altin/gh-watch/internal/ui"
)

func (a App) renderRunDetail() string {
	var b strings.Builder

	if run := a.currentRun; run != nil {
		title := fmt.Sprintf(" #%d %s", run.RunNumber, run.DisplayTitle)
		b.WriteString(ui.StyleHeader.Render(title) + "\n")
		b.WriteString(ui.StyleMuted.Render(fmt.Sprintf(
			"  %s · %s · %s · attempt %d\n",
			run.Event, run.HeadBranch, run.ShortSHA(), run.RunAttempt)))
		b.WriteString("\n")
	}

	if len(a.jobs) == 0 {
		if a.loading {
			b.WriteString(ui.StyleMuted.Render("  Loading jobs..."))
		} else {
			b.WriteString(ui.StyleMuted.Render("  No jobs for this run"))
		}
		return padBody(b.String(), a.bodyHeight())
	}

	for i, job := range a.jobs {
		icon := ui.StatusIcon(string(job.Status), string(job.Conclusion))
		state := ui.StatusStyle(job.StatusText()).Render(job.StatusText())
		dur := ui.StyleMuted.Render(model.FormatDuration(job.Duration()))

		line := fmt.Sprintf(" %s %-40s %s  %s  %s", icon, job.Name, state, dur, stepProgress(job))
		if i == a.jobsSelected {
			line = ui.StyleSelected.Width(a.width).Render(line)
		}
		b.WriteString(line + "\n")

		if i == a.jobsSelected {
			for _, step := range job.Steps {
				sIcon := ui.StatusIcon(string(step.Status), string(step.Conclusion))
				b.WriteString(fmt.Sprintf("      %s %d. %s\n", sIcon, step.Number, step.Name))
			}
		}
	}

	return padBody(b.String(), a.bodyHeight())
}

func stepProgress(job model.Job) string {
	if len(job.Steps) == 0 {
		return ""
	}
	done := 0
	for _, s := range job.Steps {
		if s.Status == model.RunStatusCompleted {
			done++
		}
	}
	return ui.StyleMuted.Render(fmt.Sprintf("[%d/%d steps]", done, len(job.Steps)))
}
