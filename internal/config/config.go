package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config carries settings resolved from flags, the config file and the
// environment, in that order of precedence.
type Config struct {
	Repo           string
	Token          string
	APIURL         string
	RefreshSeconds int
	LogPath        string
	Verbose        bool
}

const (
	defaultConfigPath     = "~/.config/gh-watch/config.toml"
	defaultLogPath        = "~/.local/state/gh-watch/gh-watch.log"
	defaultRefreshSeconds = 10
)

// Load locates and parses the config file, falling back to defaults
// when it does not exist.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		RefreshSeconds: defaultRefreshSeconds,
		LogPath:        mustExpand(defaultLogPath),
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Repo           string `toml:"repo"`
		APIURL         string `toml:"api_url"`
		RefreshSeconds int    `toml:"refresh_seconds"`
		LogPath        string `toml:"log_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Repo = strings.TrimSpace(raw.Repo)
	cfg.APIURL = strings.TrimSpace(raw.APIURL)
	if raw.RefreshSeconds > 0 {
		cfg.RefreshSeconds = raw.RefreshSeconds
	}
	if lp := strings.TrimSpace(raw.LogPath); lp != "" {
		cfg.LogPath = mustExpand(lp)
	}

	return cfg, nil
}

// ParseRepo splits an "owner/name" argument.
func ParseRepo(s string) (owner, name string, err error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/name", s)
	}
	return parts[0], parts[1], nil
}

// DetectRepo reads the git remote of the working directory and returns
// the owner/name it points at. Remotes are tried in a fixed preference
// order before falling back to whatever exists.
func DetectRepo(ctx context.Context, dir string) (owner, name string, err error) {
	for _, remote := range []string{"origin", "upstream", "github"} {
		if o, n, ok := remoteRepo(ctx, dir, remote); ok {
			return o, n, nil
		}
	}

	cmd := exec.CommandContext(ctx, "git", "remote")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", "", fmt.Errorf("not a git repository")
	}
	for _, remote := range strings.Fields(string(output)) {
		if o, n, ok := remoteRepo(ctx, dir, remote); ok {
			return o, n, nil
		}
	}
	return "", "", fmt.Errorf("no GitHub remote found")
}

func remoteRepo(ctx context.Context, dir, remote string) (owner, name string, ok bool) {
	cmd := exec.CommandContext(ctx, "git", "remote", "get-url", remote)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", "", false
	}
	owner, name = parseRemoteURL(strings.TrimSpace(string(output)))
	return owner, name, owner != "" && name != ""
}

func parseRemoteURL(url string) (owner, repo string) {
	url = strings.TrimSuffix(url, ".git")

	if strings.HasPrefix(url, "git@github.com:") {
		parts := strings.Split(strings.TrimPrefix(url, "git@github.com:"), "/")
		if len(parts) == 2 {
			return parts[0], parts[1]
		}
		return "", ""
	}

	if strings.HasPrefix(url, "ssh://git@github.com/") {
		parts := strings.Split(strings.TrimPrefix(url, "ssh://git@github.com/"), "/")
		if len(parts) == 2 {
			return parts[0], parts[1]
		}
		return "", ""
	}

	if strings.HasPrefix(url, "https://github.com/") {
		parts := strings.Split(strings.TrimPrefix(url, "https://github.com/"), "/")
		if len(parts) == 2 {
			return parts[0], parts[1]
		}
		return "", ""
	}

	return "", ""
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
