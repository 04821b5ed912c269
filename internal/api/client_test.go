package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
)

func testClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	e := NewEngine("test-token", srv.URL)
	e.sleep = func(d time.Duration) {}
	return NewClient(e, "octocat", "hello-world")
}

func TestListReposQuery(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/user/repos")
		q := r.URL.Query()
		gt.Equal(t, q.Get("sort"), "pushed")
		gt.Equal(t, q.Get("direction"), "desc")
		gt.Equal(t, q.Get("type"), "all")
		gt.Equal(t, q.Get("per_page"), "100")
		gt.Equal(t, q.Get("page"), "1")
		fmt.Fprint(w, `[{"id":1,"name":"hello-world","full_name":"octocat/hello-world","owner":{"login":"octocat"},"private":true}]`)
	})

	repos, _, err := c.ListRepos(context.Background(), 100, 1)
	gt.NoError(t, err)
	gt.Equal(t, len(repos), 1)
	gt.Equal(t, repos[0].FullName, "octocat/hello-world")
	gt.True(t, repos[0].Private)
}

func TestListRunsPathAndFilter(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/repos/octocat/hello-world/actions/runs")
		q := r.URL.Query()
		gt.Equal(t, q.Get("per_page"), "20")
		gt.Equal(t, q.Get("page"), "2")
		gt.Equal(t, q.Get("branch"), "main")
		gt.Equal(t, q.Get("status"), "failure")
		w.Header().Set("x-ratelimit-remaining", "4321")
		w.Header().Set("x-ratelimit-limit", "5000")
		fmt.Fprint(w, `{"total_count":45,"workflow_runs":[{"id":7,"run_number":42,"status":"completed","conclusion":"success","head_sha":"abc1234567890"}]}`)
	})

	resp, rate, err := c.ListRuns(context.Background(), RunsFilter{
		Page: 2, Branch: "main", Status: "failure",
	})
	gt.NoError(t, err)
	gt.Equal(t, resp.TotalCount, 45)
	gt.Equal(t, len(resp.Runs), 1)
	gt.Equal(t, resp.Runs[0].RunNumber, 42)
	gt.Equal(t, rate.Remaining, 4321)
	gt.Equal(t, rate.Limit, 5000)
}

func TestListRunsNotFoundIsEmpty(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	resp, _, err := c.ListRuns(context.Background(), RunsFilter{})
	gt.NoError(t, err)
	gt.Equal(t, resp.TotalCount, 0)
	gt.Equal(t, len(resp.Runs), 0)
}

func TestListJobsPathAndDecoding(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/repos/octocat/hello-world/actions/runs/7/jobs")
		gt.Equal(t, r.URL.Query().Get("per_page"), "100")
		fmt.Fprint(w, `{"total_count":2,"jobs":[{"id":11,"run_id":7,"name":"build","status":"completed","conclusion":"success","steps":[{"name":"checkout","status":"completed","conclusion":"success","number":1}]},{"id":12,"run_id":7,"name":"test","status":"in_progress"}]}`)
	})

	resp, _, err := c.ListJobs(context.Background(), 7)
	gt.NoError(t, err)
	gt.Equal(t, len(resp.Jobs), 2)
	gt.Equal(t, resp.Jobs[0].Name, "build")
	gt.Equal(t, len(resp.Jobs[0].Steps), 1)
	gt.Equal(t, resp.Jobs[0].Steps[0].Number, 1)
}

func TestJobLogsRawText(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/repos/octocat/hello-world/actions/jobs/11/logs")
		fmt.Fprint(w, "line one\nline two\n")
	})

	logs, err := c.JobLogs(context.Background(), 11)
	gt.NoError(t, err)
	gt.Equal(t, logs, "line one\nline two\n")
}

func TestRerunAndCancelPaths(t *testing.T) {
	var gotMethod, gotPath string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
	})

	gt.NoError(t, c.RerunRun(context.Background(), 7))
	gt.Equal(t, gotMethod, http.MethodPost)
	gt.Equal(t, gotPath, "/repos/octocat/hello-world/actions/runs/7/rerun")

	gt.NoError(t, c.CancelRun(context.Background(), 7))
	gt.Equal(t, gotPath, "/repos/octocat/hello-world/actions/runs/7/cancel")
}

func TestDecodeErrorIsFatalAndNotRetried(t *testing.T) {
	calls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"total_count": "not a number"`)
	})

	_, _, err := c.ListRuns(context.Background(), RunsFilter{})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, ErrDecode))
	gt.Equal(t, calls, 1)
}

func TestWithRepoReturnsRetargetedCopy(t *testing.T) {
	e := NewEngine("tok", "")
	c := NewClient(e, "", "")
	gt.False(t, c.HasRepo())

	fixed := c.WithRepo("octocat", "hello-world")
	gt.True(t, fixed.HasRepo())
	gt.Equal(t, fixed.Owner(), "octocat")
	gt.Equal(t, fixed.Repo(), "hello-world")

	// Original is untouched; dispatched tasks rely on value semantics.
	gt.False(t, c.HasRepo())
}

func TestEngineDefaultBaseURL(t *testing.T) {
	e := NewEngine("tok", "")
	gt.Equal(t, e.BaseURL(), DefaultBaseURL)

	e = NewEngine("tok", "https://github.example.com/api/v3/")
	gt.Equal(t, e.BaseURL(), "https://github.example.com/api/v3")
}
