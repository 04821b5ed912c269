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

func testEngine(t *testing.T, baseURL string) (*Engine, *[]time.Duration) {
	t.Helper()
	e := NewEngine("test-token", baseURL)
	sleeps := &[]time.Duration{}
	e.sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	return e, sleeps
}

func TestDoSuccessFirstAttempt(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gt.Equal(t, r.Header.Get("Authorization"), "Bearer test-token")
		gt.Equal(t, r.Header.Get("Accept"), "application/vnd.github+json")
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	e, sleeps := testEngine(t, srv.URL)
	resp, err := e.Do(context.Background(), http.MethodGet, "/user/repos", nil)
	gt.NoError(t, err)
	resp.Body.Close()

	gt.Equal(t, calls, 1)
	gt.Equal(t, len(*sleeps), 0)
}

func TestDoRetriesServerErrorWithBackoff(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	e, sleeps := testEngine(t, srv.URL)
	resp, err := e.Do(context.Background(), http.MethodGet, "/", nil)
	gt.NoError(t, err)
	resp.Body.Close()

	gt.Equal(t, calls, 3)
	gt.Equal(t, *sleeps, []time.Duration{500 * time.Millisecond, 1 * time.Second})
}

func TestDoServerErrorExhaustsAttempts(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	e, _ := testEngine(t, srv.URL)
	_, err := e.Do(context.Background(), http.MethodGet, "/", nil)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, ErrServer))
	gt.Equal(t, calls, 3)
}

func TestDoClientErrorIsFatal(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	e, sleeps := testEngine(t, srv.URL)
	_, err := e.Do(context.Background(), http.MethodGet, "/", nil)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, ErrClient))

	var herr *HTTPError
	gt.True(t, errors.As(err, &herr))
	gt.Equal(t, herr.Status, http.StatusNotFound)

	gt.Equal(t, calls, 1)
	gt.Equal(t, len(*sleeps), 0)
}

func TestDoRateLimit429WaitReplacesBackoff(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("x-ratelimit-remaining", "0")
			w.Header().Set("x-ratelimit-reset", fmt.Sprint(now.Unix()+10))
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	e, sleeps := testEngine(t, srv.URL)
	e.now = func() time.Time { return now }

	resp, err := e.Do(context.Background(), http.MethodGet, "/", nil)
	gt.NoError(t, err)
	resp.Body.Close()

	gt.Equal(t, calls, 2)
	// The rate-limit wait is the only sleep; no exponential delay on top.
	gt.Equal(t, *sleeps, []time.Duration{10 * time.Second})
}

func TestDoRateLimit403ZeroRemaining(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			// No reset header: default 5s wait applies.
			w.Header().Set("x-ratelimit-remaining", "0")
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	e, sleeps := testEngine(t, srv.URL)
	resp, err := e.Do(context.Background(), http.MethodGet, "/", nil)
	gt.NoError(t, err)
	resp.Body.Close()

	gt.Equal(t, calls, 2)
	gt.Equal(t, *sleeps, []time.Duration{5 * time.Second})
}

func TestDo403WithQuotaLeftIsFatal(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("x-ratelimit-remaining", "4999")
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	e, _ := testEngine(t, srv.URL)
	_, err := e.Do(context.Background(), http.MethodGet, "/", nil)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, ErrClient))
	gt.Equal(t, calls, 1)
}

func TestDoConnectFailureIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listens here anymore

	e, sleeps := testEngine(t, url)
	_, err := e.Do(context.Background(), http.MethodGet, "/", nil)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, ErrTransient))
	gt.Equal(t, *sleeps, []time.Duration{500 * time.Millisecond, 1 * time.Second})
}

func TestRateLimitWait(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	resp := func(reset string) *http.Response {
		h := http.Header{}
		if reset != "" {
			h.Set("x-ratelimit-reset", reset)
		}
		return &http.Response{Header: h}
	}

	gt.Equal(t, rateLimitWait(resp(fmt.Sprint(now.Unix()+30)), now), 30*time.Second)
	// Reset already passed: at least 1s.
	gt.Equal(t, rateLimitWait(resp(fmt.Sprint(now.Unix()-100)), now), 1*time.Second)
	// Far-future reset: capped at 60s.
	gt.Equal(t, rateLimitWait(resp(fmt.Sprint(now.Unix()+600)), now), 60*time.Second)
	// Missing or garbage header: 5s default.
	gt.Equal(t, rateLimitWait(resp(""), now), 5*time.Second)
	gt.Equal(t, rateLimitWait(resp("soon"), now), 5*time.Second)
}
