package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/m-mizutani/goerr/v2"

	"github.com/altin/gh-watch/internal/model"
)

// Client maps domain operations onto the request engine. It is a small
// value type: dispatched tasks capture a copy, so the owner/repo target is
// fixed at dispatch time and never shared mutably across goroutines.
type Client struct {
	engine *Engine
	owner  string
	repo   string
}

// RateLimit is the quota snapshot GitHub attaches to every response.
type RateLimit struct {
	Remaining int
	Limit     int
	Reset     int64
}

func NewClient(engine *Engine, owner, repo string) Client {
	return Client{engine: engine, owner: owner, repo: repo}
}

// WithRepo returns a copy of the client targeting a different repository.
func (c Client) WithRepo(owner, repo string) Client {
	c.owner = owner
	c.repo = repo
	return c
}

func (c Client) Owner() string { return c.owner }
func (c Client) Repo() string  { return c.repo }

// HasRepo reports whether a repository target has been fixed yet; browsing
// mode starts without one.
func (c Client) HasRepo() bool {
	return c.owner != "" && c.repo != ""
}

func (c Client) runsPath(suffix string) string {
	return fmt.Sprintf("/repos/%s/%s/actions/%s", c.owner, c.repo, suffix)
}

// RunsFilter narrows a run listing. Zero values are omitted from the query.
type RunsFilter struct {
	Branch  string
	Status  string
	PerPage int
	Page    int
}

func (f RunsFilter) Query() url.Values {
	v := url.Values{}
	perPage := f.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	v.Set("per_page", strconv.Itoa(perPage))
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Branch != "" {
		v.Set("branch", f.Branch)
	}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	return v
}

// ListRepos fetches the authenticated user's repositories, most recently
// pushed first.
func (c Client) ListRepos(ctx context.Context, perPage, page int) ([]model.Repository, RateLimit, error) {
	query := url.Values{
		"per_page":  {strconv.Itoa(perPage)},
		"page":      {strconv.Itoa(page)},
		"sort":      {"pushed"},
		"direction": {"desc"},
		"type":      {"all"},
	}

	var repos []model.Repository
	rate, err := c.getJSON(ctx, "/user/repos", query, &repos)
	if err != nil {
		return nil, rate, goerr.Wrap(err, "list repositories")
	}
	return repos, rate, nil
}

// ListRuns fetches one page of workflow runs for the target repository.
func (c Client) ListRuns(ctx context.Context, filter RunsFilter) (*model.RunsResponse, RateLimit, error) {
	var resp model.RunsResponse
	rate, err := c.getJSON(ctx, c.runsPath("runs"), filter.Query(), &resp)
	if err != nil {
		// Repo may have no actions enabled or have been deleted.
		if isNotFound(err) {
			return &model.RunsResponse{}, rate, nil
		}
		return nil, rate, goerr.Wrap(err, "list runs")
	}
	return &resp, rate, nil
}

// ListJobs fetches the jobs of a run. A single 100-item page is assumed
// sufficient.
func (c Client) ListJobs(ctx context.Context, runID int64) (*model.JobsResponse, RateLimit, error) {
	path := c.runsPath(fmt.Sprintf("runs/%d/jobs", runID))
	query := url.Values{"per_page": {"100"}}

	var resp model.JobsResponse
	rate, err := c.getJSON(ctx, path, query, &resp)
	if err != nil {
		if isNotFound(err) {
			return &model.JobsResponse{}, rate, nil
		}
		return nil, rate, goerr.Wrap(err, fmt.Sprintf("list jobs for run %d", runID))
	}
	return &resp, rate, nil
}

// JobLogs fetches the raw log text of a job.
func (c Client) JobLogs(ctx context.Context, jobID int64) (string, error) {
	path := c.runsPath(fmt.Sprintf("jobs/%d/logs", jobID))
	resp, err := c.engine.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", goerr.Wrap(err, fmt.Sprintf("fetch logs for job %d", jobID))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ErrDecode.Wrap(err)
	}
	return string(data), nil
}

// RerunRun triggers a re-run of all jobs in a run.
func (c Client) RerunRun(ctx context.Context, runID int64) error {
	return c.post(ctx, c.runsPath(fmt.Sprintf("runs/%d/rerun", runID)))
}

// CancelRun requests cancellation of an in-progress run.
func (c Client) CancelRun(ctx context.Context, runID int64) error {
	return c.post(ctx, c.runsPath(fmt.Sprintf("runs/%d/cancel", runID)))
}

func (c Client) post(ctx context.Context, path string) error {
	resp, err := c.engine.Do(ctx, http.MethodPost, path, nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

func (c Client) getJSON(ctx context.Context, path string, query url.Values, out any) (RateLimit, error) {
	resp, err := c.engine.Do(ctx, http.MethodGet, path, query)
	if err != nil {
		return RateLimit{}, err
	}
	defer resp.Body.Close()

	rate := ParseRateLimit(resp)
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return rate, ErrDecode.Wrap(err)
	}
	return rate, nil
}

func ParseRateLimit(resp *http.Response) RateLimit {
	rl := RateLimit{}
	if resp == nil {
		return rl
	}
	rl.Remaining, _ = strconv.Atoi(resp.Header.Get("x-ratelimit-remaining"))
	rl.Limit, _ = strconv.Atoi(resp.Header.Get("x-ratelimit-limit"))
	rl.Reset, _ = strconv.ParseInt(resp.Header.Get("x-ratelimit-reset"), 10, 64)
	return rl
}

func isNotFound(err error) bool {
	var herr *HTTPError
	return errors.Is(err, ErrClient) && errors.As(err, &herr) && herr.Status == http.StatusNotFound
}
