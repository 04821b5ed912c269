package auth

import (
	"errors"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")
	t.Setenv("GH_ENTERPRISE_TOKEN", "")
	t.Setenv("GITHUB_ENTERPRISE_TOKEN", "")
	// Point gh config at an empty dir so no stored credentials leak in.
	t.Setenv("GH_CONFIG_DIR", t.TempDir())
}

func TestResolveTokenExplicitWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "from-env")

	tok, err := ResolveToken("from-flag", "github.com")
	if err != nil {
		t.Fatalf("ResolveToken returned error: %v", err)
	}
	if tok != "from-flag" {
		t.Fatalf("token = %q, want %q", tok, "from-flag")
	}
}

func TestResolveTokenEnvOrder(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "primary")
	t.Setenv("GH_TOKEN", "secondary")

	tok, err := ResolveToken("", "github.com")
	if err != nil {
		t.Fatalf("ResolveToken returned error: %v", err)
	}
	if tok != "primary" {
		t.Fatalf("token = %q, want GITHUB_TOKEN to win", tok)
	}

	t.Setenv("GITHUB_TOKEN", "")
	tok, err = ResolveToken("", "github.com")
	if err != nil {
		t.Fatalf("ResolveToken returned error: %v", err)
	}
	if tok != "secondary" {
		t.Fatalf("token = %q, want GH_TOKEN fallback", tok)
	}
}

func TestResolveTokenNoneFound(t *testing.T) {
	clearEnv(t)

	_, err := ResolveToken("", "github.com")
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("err = %v, want ErrNoToken", err)
	}
}

func TestTokenSource(t *testing.T) {
	clearEnv(t)
	if src := TokenSource("x", ""); src != "flag" {
		t.Fatalf("source = %q, want flag", src)
	}
	t.Setenv("GH_TOKEN", "tok")
	if src := TokenSource("", ""); src != "GH_TOKEN" {
		t.Fatalf("source = %q, want GH_TOKEN", src)
	}
}
