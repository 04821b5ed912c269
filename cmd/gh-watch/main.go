package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/altin/gh-watch/internal/api"
	"github.com/altin/gh-watch/internal/auth"
	"github.com/altin/gh-watch/internal/config"
	"github.com/altin/gh-watch/internal/logging"
	"github.com/altin/gh-watch/internal/tui"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

type options struct {
	repo       string
	token      string
	apiURL     string
	configPath string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "gh-watch",
		Short: "Watch GitHub Actions runs from the terminal",
		Long: `gh-watch is a terminal dashboard for GitHub Actions.

Without -R it opens a repository browser over the repositories your
token can see. With -R owner/repo (or inside a git checkout with a
GitHub remote) it goes straight to that repository's workflow runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.repo, "repo", "R", "", "Repository in owner/name format")
	cmd.PersistentFlags().StringVar(&opts.token, "token", "", "GitHub token (defaults to env or gh credentials)")
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "API base URL for GitHub Enterprise")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Write debug logs to the log file")

	cmd.AddCommand(newAuthCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("gh-watch", version)
		},
	}
}

func newAuthCmd(opts *options) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication helpers",
	}
	authCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show which token gh-watch would use",
		RunE: func(cmd *cobra.Command, args []string) error {
			src := auth.TokenSource(opts.token, "")
			if src == "none" {
				fmt.Println("No token found. Set GITHUB_TOKEN or run `gh auth login`.")
				return nil
			}
			fmt.Printf("Token found (source: %s)\n", src)
			return nil
		},
	})
	return authCmd
}

func runWatch(ctx context.Context, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.repo != "" {
		cfg.Repo = opts.repo
	}
	if opts.apiURL != "" {
		cfg.APIURL = opts.apiURL
	}
	cfg.Verbose = opts.verbose

	closer, err := logging.Setup(cfg.LogPath, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer closer.Close()

	token, err := auth.ResolveToken(opts.token, "")
	if err != nil {
		return err
	}
	cfg.Token = token

	engine := api.NewEngine(token, cfg.APIURL)
	client := api.NewClient(engine, "", "")

	// Repo preference: flag/config, then the working directory's remote.
	if cfg.Repo != "" {
		owner, name, err := config.ParseRepo(cfg.Repo)
		if err != nil {
			return err
		}
		client = client.WithRepo(owner, name)
	} else {
		detectCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		owner, name, err := config.DetectRepo(detectCtx, ".")
		cancel()
		if err == nil {
			client = client.WithRepo(owner, name)
		} else {
			slog.Debug("no repository detected, starting browser", "error", err)
		}
	}

	app := tui.NewApp(cfg, client)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
