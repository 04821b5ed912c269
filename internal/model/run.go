package model

import (
	"fmt"
	"time"
)

// RunStatus is the lifecycle state reported before a run or job has
// finished. The API treats this as an open string space; unknown values
// pass through unmodified.
type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusWaiting    RunStatus = "waiting"
	RunStatusRequested  RunStatus = "requested"
	RunStatusPending    RunStatus = "pending"
)

// RunConclusion is the terminal outcome once a run or job has completed.
// Empty while still running.
type RunConclusion string

const (
	ConclusionSuccess   RunConclusion = "success"
	ConclusionFailure   RunConclusion = "failure"
	ConclusionCancelled RunConclusion = "cancelled"
	ConclusionSkipped   RunConclusion = "skipped"
	ConclusionTimedOut  RunConclusion = "timed_out"
	ConclusionNeutral   RunConclusion = "neutral"
)

type Run struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	DisplayTitle string        `json:"display_title"`
	Status       RunStatus     `json:"status"`
	Conclusion   RunConclusion `json:"conclusion"`
	RunNumber    int           `json:"run_number"`
	RunAttempt   int           `json:"run_attempt"`
	Event        string        `json:"event"`
	HeadBranch   string        `json:"head_branch"`
	HeadSHA      string        `json:"head_sha"`
	Actor        Actor         `json:"actor"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	RunStartedAt time.Time     `json:"run_started_at"`
	HTMLURL      string        `json:"html_url"`
}

type Actor struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

type RunsResponse struct {
	TotalCount int   `json:"total_count"`
	Runs       []Run `json:"workflow_runs"`
}

// StatusText renders the run's state for the UI. A conclusion always wins
// over the lifecycle status; unrecognized values render as-is instead of
// failing.
func (r Run) StatusText() string {
	if r.Conclusion != "" {
		return conclusionText(r.Conclusion)
	}
	return statusText(r.Status)
}

func conclusionText(c RunConclusion) string {
	switch c {
	case ConclusionSuccess:
		return "Success"
	case ConclusionFailure:
		return "Failure"
	case ConclusionCancelled:
		return "Cancelled"
	case ConclusionSkipped:
		return "Skipped"
	case ConclusionTimedOut:
		return "Timed Out"
	case ConclusionNeutral:
		return "Neutral"
	default:
		return string(c)
	}
}

func statusText(s RunStatus) string {
	switch s {
	case RunStatusQueued:
		return "Queued"
	case RunStatusInProgress:
		return "In Progress"
	case RunStatusWaiting:
		return "Waiting"
	case RunStatusCompleted:
		return "Completed"
	case "":
		return "Unknown"
	default:
		return string(s)
	}
}

// Duration reports how long the run took, or how long it has been running
// for runs that have not completed yet.
func (r Run) Duration() time.Duration {
	if r.RunStartedAt.IsZero() {
		return 0
	}
	end := time.Now()
	if r.Status == RunStatusCompleted && !r.UpdatedAt.IsZero() {
		end = r.UpdatedAt
	}
	return end.Sub(r.RunStartedAt)
}

func (r Run) ShortSHA() string {
	if len(r.HeadSHA) >= 7 {
		return r.HeadSHA[:7]
	}
	return r.HeadSHA
}

// Age is the relative time since the run was created.
func (r Run) Age() string {
	return relativeAge(time.Since(r.CreatedAt))
}

// FormatDuration renders a duration the way run rows display it.
func FormatDuration(d time.Duration) string {
	secs := int64(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm %ds", secs/60, secs%60)
	default:
		return fmt.Sprintf("%dh %dm", secs/3600, (secs%3600)/60)
	}
}
