package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/altin/gh-watch/internal/api"
	"github.com/altin/gh-watch/internal/config"
	"github.com/altin/gh-watch/internal/model"
	"github.com/altin/gh-watch/internal/tui/confirm"
	"github.com/altin/gh-watch/internal/ui"
)

type View int

const (
	ViewRepoList View = iota
	ViewRunList
	ViewRunDetail
	ViewLogView
)

const (
	runsPerPage   = 20
	logScrollStep = 3

	// Rows taken by header, title and status bar around the log pane.
	logChrome = 4
)

type tickMsg time.Time

// App owns all mutable state. Dispatched commands only carry value
// copies of the client; results come back as ui messages.
type App struct {
	cfg    config.Config
	client api.Client

	view       View
	singleRepo bool

	// Repo browser
	repos        []model.Repository
	repoSelected int
	filterInput  textinput.Model
	searching    bool

	// Run list
	runs         []model.Run
	runsSelected int
	runsTotal    int
	page         int

	// Run detail
	currentRun   *model.Run
	jobs         []model.Job
	jobsSelected int

	// Log pane
	logJobName string
	logLines   []string
	logScroll  int

	confirmDialog confirm.Model

	status  string
	loading bool
	width   int
	height  int
	rate    api.RateLimit

	// Seconds since the current view's data was last refreshed.
	sinceRefresh int
}

func NewApp(cfg config.Config, client api.Client) App {
	ti := textinput.New()
	ti.Placeholder = "filter repositories"
	ti.Prompt = "/ "
	ti.CharLimit = 100

	a := App{
		cfg:         cfg,
		client:      client,
		filterInput: ti,
		page:        1,
		status:      "Loading...",
		loading:     true,
	}
	if client.HasRepo() {
		a.singleRepo = true
		a.view = ViewRunList
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.tick()}
	if a.singleRepo {
		cmds = append(cmds, a.fetchRuns(1))
	} else {
		cmds = append(cmds, a.fetchRepos())
	}
	return tea.Batch(cmds...)
}

func (a App) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// --- Data fetching commands ---

func (a App) fetchRepos() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		repos, rate, err := client.ListRepos(context.Background(), 100, 1)
		return ui.ReposLoadedMsg{Repos: repos, Rate: rate, Err: err}
	}
}

func (a App) fetchRuns(page int) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		resp, rate, err := client.ListRuns(context.Background(), api.RunsFilter{
			PerPage: runsPerPage,
			Page:    page,
		})
		if err != nil {
			return ui.RunsLoadedMsg{Page: page, Rate: rate, Err: err}
		}
		return ui.RunsLoadedMsg{
			Runs:       resp.Runs,
			TotalCount: resp.TotalCount,
			Page:       page,
			Rate:       rate,
		}
	}
}

func (a App) fetchJobs(run model.Run) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		resp, rate, err := client.ListJobs(context.Background(), run.ID)
		if err != nil {
			return ui.JobsLoadedMsg{RunNumber: run.RunNumber, Rate: rate, Err: err}
		}
		return ui.JobsLoadedMsg{RunNumber: run.RunNumber, Jobs: resp.Jobs, Rate: rate, Err: err}
	}
}

func (a App) fetchJobLog(job model.Job) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		content, err := client.JobLogs(context.Background(), job.ID)
		if err != nil {
			return ui.LogLoadedMsg{JobName: job.Name, Err: err}
		}
		return ui.LogLoadedMsg{JobName: job.Name, Lines: splitLogLines(content)}
	}
}

func splitLogLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// --- Action commands ---

func (a App) doRerun(runID int64, runNumber int) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		err := client.RerunRun(context.Background(), runID)
		return ui.ActionResultMsg{Action: "Rerun", RunNumber: runNumber, Err: err}
	}
}

func (a App) doCancel(runID int64, runNumber int) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		err := client.CancelRun(context.Background(), runID)
		return ui.ActionResultMsg{Action: "Cancel", RunNumber: runNumber, Err: err}
	}
}

func openInBrowser(url string) tea.Cmd {
	return func() tea.Msg {
		if url == "" {
			return ui.StatusMsg{Text: "No URL for selection"}
		}
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			cmd = exec.Command("xdg-open", url)
		}
		if err := cmd.Start(); err != nil {
			return ui.StatusMsg{Text: fmt.Sprintf("Open failed: %v", err)}
		}
		return ui.StatusMsg{Text: "Opened in browser"}
	}
}

// --- Derived state ---

func (a *App) filteredRepos() []model.Repository {
	query := strings.ToLower(strings.TrimSpace(a.filterInput.Value()))
	if query == "" {
		return a.repos
	}
	var out []model.Repository
	for _, r := range a.repos {
		hay := strings.ToLower(r.FullName + " " + r.Description + " " + r.Language)
		if strings.Contains(hay, query) {
			out = append(out, r)
		}
	}
	return out
}

func (a *App) selectedRepo() *model.Repository {
	repos := a.filteredRepos()
	if a.repoSelected < 0 || a.repoSelected >= len(repos) {
		return nil
	}
	return &repos[a.repoSelected]
}

func (a *App) selectedRun() *model.Run {
	if a.runsSelected < 0 || a.runsSelected >= len(a.runs) {
		return nil
	}
	return &a.runs[a.runsSelected]
}

func (a *App) selectedJob() *model.Job {
	if a.jobsSelected < 0 || a.jobsSelected >= len(a.jobs) {
		return nil
	}
	return &a.jobs[a.jobsSelected]
}

func (a *App) totalPages() int {
	pages := (a.runsTotal + runsPerPage - 1) / runsPerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// logWindow is the number of log lines visible at once. Before the
// first WindowSizeMsg the height is zero, so we floor the window.
func (a *App) logWindow() int {
	vis := a.height - logChrome
	if vis < 10 {
		vis = 10
	}
	return vis
}

func (a *App) logMaxScroll() int {
	max := len(a.logLines) - a.logWindow()
	if max < 0 {
		max = 0
	}
	return max
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- Update ---

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Confirm dialog answer arrives after the dialog deactivates itself.
	if result, ok := msg.(confirm.ResultMsg); ok {
		if result.Confirmed {
			switch result.Action {
			case "rerun":
				a.status = fmt.Sprintf("Requesting rerun of #%d...", result.RunNumber)
				cmds = append(cmds, a.doRerun(result.RunID, result.RunNumber))
			case "cancel":
				a.status = fmt.Sprintf("Cancelling #%d...", result.RunNumber)
				cmds = append(cmds, a.doCancel(result.RunID, result.RunNumber))
			}
		}
		return a, tea.Batch(cmds...)
	}

	// Key events while the dialog is up go only to the dialog.
	if a.confirmDialog.IsActive() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			a.confirmDialog, cmd = a.confirmDialog.Update(msg)
			return a, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.logScroll = clamp(a.logScroll, 0, a.logMaxScroll())
		return a, nil

	case tickMsg:
		a.sinceRefresh++
		if a.cfg.RefreshSeconds > 0 && a.sinceRefresh >= a.cfg.RefreshSeconds && !a.loading {
			a.sinceRefresh = 0
			cmds = append(cmds, a.refreshCurrent())
		}
		cmds = append(cmds, a.tick())
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		return a.handleKey(msg)

	case ui.ReposLoadedMsg:
		a.loading = false
		if msg.Err != nil {
			a.status = fmt.Sprintf("Error: %v", msg.Err)
			return a, nil
		}
		a.repos = msg.Repos
		a.rate = msg.Rate
		a.repoSelected = 0
		a.status = fmt.Sprintf("%d repositories", len(msg.Repos))
		return a, nil

	case ui.RunsLoadedMsg:
		a.loading = false
		if msg.Err != nil {
			a.status = fmt.Sprintf("Error: %v", msg.Err)
			return a, nil
		}
		a.runs = msg.Runs
		a.runsTotal = msg.TotalCount
		a.page = msg.Page
		a.rate = msg.Rate
		a.runsSelected = clamp(a.runsSelected, 0, maxIndex(len(a.runs)))
		a.status = fmt.Sprintf("%d runs — page %d/%d", msg.TotalCount, a.page, a.totalPages())
		return a, nil

	case ui.JobsLoadedMsg:
		a.loading = false
		if msg.Err != nil {
			a.status = fmt.Sprintf("Error loading jobs: %v", msg.Err)
			return a, nil
		}
		// Applies even if the user already navigated to another run; the
		// next scheduled refresh reconciles.
		a.jobs = msg.Jobs
		a.jobsSelected = 0
		if msg.Rate.Limit > 0 {
			a.rate = msg.Rate
		}
		a.status = fmt.Sprintf("%d jobs for #%d", len(msg.Jobs), msg.RunNumber)
		return a, nil

	case ui.LogLoadedMsg:
		a.loading = false
		if msg.Err != nil {
			a.status = fmt.Sprintf("Error loading log: %v", msg.Err)
			return a, nil
		}
		a.logJobName = msg.JobName
		a.logLines = msg.Lines
		a.logScroll = 0
		a.status = fmt.Sprintf("%s: %d lines", msg.JobName, len(msg.Lines))
		return a, nil

	case ui.ActionResultMsg:
		if msg.Err != nil {
			a.status = fmt.Sprintf("%s #%d failed: %v", msg.Action, msg.RunNumber, msg.Err)
			return a, nil
		}
		a.status = fmt.Sprintf("%s #%d requested", msg.Action, msg.RunNumber)
		a.sinceRefresh = 0
		return a, a.fetchRuns(a.page)

	case ui.StatusMsg:
		a.status = msg.Text
		return a, nil
	}

	return a, nil
}

func maxIndex(count int) int {
	if count == 0 {
		return 0
	}
	return count - 1
}

func (a App) refreshCurrent() tea.Cmd {
	switch a.view {
	case ViewRepoList:
		return a.fetchRepos()
	case ViewRunList:
		return a.fetchRuns(a.page)
	case ViewRunDetail:
		if a.currentRun != nil {
			return a.fetchJobs(*a.currentRun)
		}
	case ViewLogView:
		if job := a.selectedJob(); job != nil {
			return a.fetchJobLog(*job)
		}
	}
	return nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Filter input captures keys while searching; esc and enter fall
	// through to the navigation handlers below.
	if a.view == ViewRepoList && a.searching {
		switch msg.String() {
		case "esc":
			if a.filterInput.Value() == "" {
				a.searching = false
				a.filterInput.Blur()
				return a, nil
			}
			a.filterInput.SetValue("")
			a.repoSelected = 0
			return a, nil
		case "enter":
			a.searching = false
			a.filterInput.Blur()
			return a, nil
		case "up", "down":
			// Allow list movement without leaving the filter.
		default:
			var cmd tea.Cmd
			before := a.filterInput.Value()
			a.filterInput, cmd = a.filterInput.Update(msg)
			if a.filterInput.Value() != before {
				a.repoSelected = 0
			}
			return a, cmd
		}
	}

	switch ui.ActionFor(msg) {
	case ui.ActionQuit:
		return a, tea.Quit

	case ui.ActionUp:
		a.moveSelection(-1)
	case ui.ActionDown:
		a.moveSelection(1)

	case ui.ActionEnter:
		return a.enter()

	case ui.ActionBack:
		return a.back()

	case ui.ActionRefresh:
		a.loading = true
		a.sinceRefresh = 0
		a.status = "Refreshing..."
		return a, a.refreshCurrent()

	case ui.ActionSearch:
		if a.view == ViewRepoList {
			a.searching = true
			a.filterInput.Focus()
			return a, textinput.Blink
		}

	case ui.ActionNextPage:
		if a.view == ViewRunList && a.page < a.totalPages() {
			a.runsSelected = 0
			a.loading = true
			a.status = fmt.Sprintf("Loading page %d...", a.page+1)
			return a, a.fetchRuns(a.page + 1)
		}
	case ui.ActionPrevPage:
		if a.view == ViewRunList && a.page > 1 {
			a.runsSelected = 0
			a.loading = true
			a.status = fmt.Sprintf("Loading page %d...", a.page-1)
			return a, a.fetchRuns(a.page - 1)
		}

	case ui.ActionLogs:
		if a.view == ViewRunDetail {
			if job := a.selectedJob(); job != nil {
				a.view = ViewLogView
				a.logJobName = job.Name
				a.logLines = nil
				a.logScroll = 0
				a.loading = true
				a.status = fmt.Sprintf("Fetching log for %s...", job.Name)
				return a, a.fetchJobLog(*job)
			}
		}

	case ui.ActionRerun:
		if a.view == ViewRunList || a.view == ViewRunDetail {
			if run := a.currentOrSelectedRun(); run != nil {
				a.confirmDialog = confirm.New(
					"Rerun Workflow",
					fmt.Sprintf("Rerun all jobs for run #%d (%s)?", run.RunNumber, run.DisplayTitle),
					"rerun", run.ID, run.RunNumber,
				)
			}
		}
	case ui.ActionCancel:
		if a.view == ViewRunList || a.view == ViewRunDetail {
			if run := a.currentOrSelectedRun(); run != nil {
				a.confirmDialog = confirm.New(
					"Cancel Run",
					fmt.Sprintf("Cancel run #%d?", run.RunNumber),
					"cancel", run.ID, run.RunNumber,
				)
			}
		}

	case ui.ActionOpen:
		switch a.view {
		case ViewRepoList:
			if repo := a.selectedRepo(); repo != nil {
				return a, openInBrowser(repo.HTMLURL)
			}
		case ViewRunList, ViewRunDetail, ViewLogView:
			if run := a.currentOrSelectedRun(); run != nil {
				return a, openInBrowser(run.HTMLURL)
			}
		}
	}

	return a, nil
}

func (a *App) currentOrSelectedRun() *model.Run {
	if a.view == ViewRunList {
		return a.selectedRun()
	}
	return a.currentRun
}

func (a *App) moveSelection(delta int) {
	switch a.view {
	case ViewRepoList:
		a.repoSelected = clamp(a.repoSelected+delta, 0, maxIndex(len(a.filteredRepos())))
	case ViewRunList:
		a.runsSelected = clamp(a.runsSelected+delta, 0, maxIndex(len(a.runs)))
	case ViewRunDetail:
		a.jobsSelected = clamp(a.jobsSelected+delta, 0, maxIndex(len(a.jobs)))
	case ViewLogView:
		a.logScroll = clamp(a.logScroll+delta*logScrollStep, 0, a.logMaxScroll())
	}
}

func (a App) enter() (tea.Model, tea.Cmd) {
	switch a.view {
	case ViewRepoList:
		repo := a.selectedRepo()
		if repo == nil {
			return a, nil
		}
		a.client = a.client.WithRepo(repo.Owner.Login, repo.Name)
		a.searching = false
		a.filterInput.SetValue("")
		a.filterInput.Blur()
		a.view = ViewRunList
		a.runs = nil
		a.runsSelected = 0
		a.runsTotal = 0
		a.page = 1
		a.loading = true
		a.sinceRefresh = 0
		a.status = fmt.Sprintf("Loading runs for %s...", repo.FullName)
		return a, a.fetchRuns(1)

	case ViewRunList:
		run := a.selectedRun()
		if run == nil {
			return a, nil
		}
		r := *run
		a.currentRun = &r
		a.view = ViewRunDetail
		a.jobs = nil
		a.jobsSelected = 0
		a.loading = true
		a.sinceRefresh = 0
		a.status = fmt.Sprintf("Loading jobs for #%d...", run.RunNumber)
		return a, a.fetchJobs(r)

	case ViewRunDetail:
		job := a.selectedJob()
		if job == nil {
			return a, nil
		}
		a.view = ViewLogView
		a.logJobName = job.Name
		a.logLines = nil
		a.logScroll = 0
		a.loading = true
		a.status = fmt.Sprintf("Fetching log for %s...", job.Name)
		return a, a.fetchJobLog(*job)
	}
	return a, nil
}

func (a App) back() (tea.Model, tea.Cmd) {
	switch a.view {
	case ViewRepoList:
		return a, tea.Quit

	case ViewRunList:
		if a.singleRepo || len(a.repos) == 0 {
			return a, tea.Quit
		}
		a.view = ViewRepoList
		a.runs = nil
		a.runsSelected = 0
		a.runsTotal = 0
		a.page = 1
		a.sinceRefresh = 0
		a.status = fmt.Sprintf("%d repositories", len(a.repos))
		return a, nil

	case ViewRunDetail:
		a.view = ViewRunList
		a.currentRun = nil
		a.jobs = nil
		a.jobsSelected = 0
		a.sinceRefresh = 0
		return a, nil

	case ViewLogView:
		a.view = ViewRunDetail
		a.logLines = nil
		a.logScroll = 0
		a.logJobName = ""
		return a, nil
	}
	return a, nil
}
