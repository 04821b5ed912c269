package auth

import (
	"os"

	ghauth "github.com/cli/go-gh/v2/pkg/auth"

	"github.com/m-mizutani/goerr/v2"
)

var ErrNoToken = goerr.New("no GitHub token found; set GITHUB_TOKEN or run `gh auth login`")

// ResolveToken finds a GitHub token. Explicit wins, then the standard
// environment variables, then whatever gh has stored for the host.
func ResolveToken(explicit, host string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if tok := os.Getenv("GITHUB_TOKEN"); tok != "" {
		return tok, nil
	}
	if tok := os.Getenv("GH_TOKEN"); tok != "" {
		return tok, nil
	}
	if host == "" {
		host = "github.com"
	}
	if tok, _ := ghauth.TokenForHost(host); tok != "" {
		return tok, nil
	}
	return "", ErrNoToken
}

// TokenSource reports where ResolveToken found its token, for
// `auth status` output.
func TokenSource(explicit, host string) string {
	switch {
	case explicit != "":
		return "flag"
	case os.Getenv("GITHUB_TOKEN") != "":
		return "GITHUB_TOKEN"
	case os.Getenv("GH_TOKEN") != "":
		return "GH_TOKEN"
	}
	if host == "" {
		host = "github.com"
	}
	if tok, src := ghauth.TokenForHost(host); tok != "" {
		return src
	}
	return "none"
}
