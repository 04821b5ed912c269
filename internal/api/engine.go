package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultBaseURL = "https://api.github.com"

	requestTimeout = 30 * time.Second
	connectTimeout = 10 * time.Second
	maxAttempts    = 3

	userAgent = "gh-watch"
	acceptHdr = "application/vnd.github+json"
)

// HTTPError is a non-2xx response surfaced as an error. It is always
// wrapped by ErrServer or ErrClient.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Body)
}

// Engine issues one logical HTTP operation against the GitHub API with
// bounded retry, exponential backoff and rate-limit-aware waiting. It holds
// no application state; callers own the returned response body.
type Engine struct {
	httpClient *http.Client
	baseURL    string
	token      string

	// Injection seams for tests. Production uses time.Sleep/time.Now.
	sleep func(time.Duration)
	now   func() time.Time
}

func NewEngine(token, baseURL string) *Engine {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Engine{
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: connectTimeout,
				}).DialContext,
				MaxIdleConnsPerHost: 5,
			},
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		sleep:   time.Sleep,
		now:     time.Now,
	}
}

// BaseURL returns the API root the engine talks to.
func (e *Engine) BaseURL() string {
	return e.baseURL
}

// Do executes method+path with the given query, retrying transient
// failures, server errors and rate limits up to maxAttempts total attempts.
// On success the response body is still open and must be closed by the
// caller. All failures are classified via the sentinel errors in errors.go.
func (e *Engine) Do(ctx context.Context, method, path string, query url.Values) (*http.Response, error) {
	reqURL := e.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var lastErr error
	// A rate-limit wait replaces the backoff delay for the retry it triggers.
	skipBackoff := false

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 && !skipBackoff {
			delay := 500 * time.Millisecond << (attempt - 1)
			slog.Debug("retrying request", "attempt", attempt, "delay", delay)
			e.sleep(delay)
		}
		skipBackoff = false

		req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
		if err != nil {
			return nil, goerr.Wrap(err, "build request")
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", acceptHdr)
		req.Header.Set("Authorization", "Bearer "+e.token)

		resp, err := e.httpClient.Do(req)
		if err != nil {
			if isTransient(err) {
				slog.Warn("request failed (transient)", "attempt", attempt+1, "error", err)
				lastErr = ErrTransient.Wrap(err)
				continue
			}
			return nil, goerr.Wrap(err, "request failed")
		}

		if isRateLimited(resp) {
			wait := rateLimitWait(resp, e.now())
			drain(resp)
			slog.Warn("rate limited", "wait", wait, "attempt", attempt+1)
			e.sleep(wait)
			lastErr = ErrRateLimited.Wrap(fmt.Errorf("rate limited, waited %s", wait))
			skipBackoff = true
			continue
		}

		if resp.StatusCode >= 500 {
			slog.Warn("server error", "status", resp.StatusCode, "attempt", attempt+1)
			lastErr = ErrServer.Wrap(&HTTPError{Status: resp.StatusCode, Body: readBody(resp)})
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, ErrClient.Wrap(&HTTPError{Status: resp.StatusCode, Body: readBody(resp)})
		}

		return resp, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrExhausted.Wrap(fmt.Errorf("%s %s: no attempt recorded an error", method, path))
}

// isTransient reports whether a transport failure is worth retrying:
// timeouts and connection failures are, anything else is fatal.
func isTransient(err error) bool {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	var oerr *net.OpError
	if errors.As(err, &oerr) && oerr.Op == "dial" {
		return true
	}
	return false
}

func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.StatusCode == http.StatusForbidden &&
		resp.Header.Get("x-ratelimit-remaining") == "0"
}

// rateLimitWait derives the sleep before retrying a rate-limited request
// from the x-ratelimit-reset epoch, clamped to [1s, 60s]. Missing or
// unparseable headers fall back to 5s.
func rateLimitWait(resp *http.Response, now time.Time) time.Duration {
	reset, err := strconv.ParseInt(resp.Header.Get("x-ratelimit-reset"), 10, 64)
	if err != nil {
		return 5 * time.Second
	}
	secs := reset - now.Unix()
	if secs < 1 {
		secs = 1
	} else if secs > 60 {
		secs = 60
	}
	return time.Duration(secs) * time.Second
}

func readBody(resp *http.Response) string {
	defer resp.Body.Close()
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return strings.TrimSpace(string(data))
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
