package ui

import (
	"github.com/altin/gh-watch/internal/api"
	"github.com/altin/gh-watch/internal/model"
)

// Completion messages posted by dispatched fetch tasks. Each carries
// either data or Err, never both meaningfully.

type ReposLoadedMsg struct {
	Repos []model.Repository
	Rate  api.RateLimit
	Err   error
}

type RunsLoadedMsg struct {
	Runs       []model.Run
	TotalCount int
	Page       int
	Rate       api.RateLimit
	Err        error
}

type JobsLoadedMsg struct {
	RunNumber int
	Jobs      []model.Job
	Rate      api.RateLimit
	Err       error
}

type LogLoadedMsg struct {
	JobName string
	Lines   []string
	Err     error
}

// ActionResultMsg reports the outcome of a rerun or cancel request.
type ActionResultMsg struct {
	Action    string
	RunNumber int
	Err       error
}

type StatusMsg struct {
	Text string
}
