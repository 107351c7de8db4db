package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/awwong1/semscrape/internal/config"
	"github.com/awwong1/semscrape/internal/searchapi"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// envLogFile names a log file to write diagnostics to without --debug.
const envLogFile = "SEMSCRAPE_LOG"

var (
	flagConfig string
	flagAPI    string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "semscrape",
	Short: "Search scraped news articles and their sentiment",
	Long: `semscrape is a terminal client for a semantic news search API.

It lists the newest articles, searches them by keyword, pages through results
and shows the sentiment of every sentence in an article.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "search API base URL (overrides config and "+config.EnvAPIURL+")")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "write diagnostics to the log file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(searchCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "semscrape %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// loadConfig reads the config file and applies --api on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagAPI != "" {
		// The flag wins over the environment too
		os.Unsetenv(config.EnvAPIURL)
		cfg.APIURL = flagAPI
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newClient(cfg *config.Config) (*searchapi.Client, error) {
	client, err := searchapi.New(searchapi.Options{
		BaseURL:  cfg.ResolvedAPIURL(),
		PageSize: cfg.GetPageSize(),
		Ordering: cfg.GetOrdering(),
		Timeout:  cfg.TimeoutDuration(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating search client: %w", err)
	}
	return client, nil
}

// newLogger returns a logger writing to a file when debugging is on, and a
// discarding logger otherwise. The TUI owns the terminal, so nothing is
// logged to stderr.
func newLogger(debug bool) (*slog.Logger, io.Closer, error) {
	path := os.Getenv(envLogFile)
	if path == "" && debug {
		path = config.LogPath()
	}
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "semscrape")
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}
