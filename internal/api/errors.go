package api

import "github.com/m-mizutani/goerr/v2"

// Outcome classes for a single logical request. Transient, rate-limited and
// server errors are resolved inside the engine's retry loop; everything
// else surfaces to the caller unchanged. Match with errors.Is.
var (
	ErrTransient   = goerr.New("transient network failure")
	ErrRateLimited = goerr.New("rate limited")
	ErrServer      = goerr.New("server error")
	ErrClient      = goerr.New("client error")
	ErrDecode      = goerr.New("malformed response body")
	ErrExhausted   = goerr.New("request failed after all retries")
)
