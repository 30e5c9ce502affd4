package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jfenner/pagedlist"
	"github.com/jfenner/pagedlist/config"
	"github.com/jfenner/pagedlist/internal/ui"
	"github.com/jfenner/pagedlist/teabind"
)

// newLogger creates a JSON logger for CLI use. It writes to a file
// rather than stderr because the TUI owns the terminal while browsing.
func newLogger(path string) (*slog.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})), f, nil
}

// browseCmd opens the interactive list browser for a configured source.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse a configured source in the terminal",
	Long: `Open an interactive terminal list over a paged JSON API.

The browser will:
  - Load configuration from the specified YAML file
  - Fetch the first page of the selected source
  - Load further pages on demand (press n), never re-fetching a page

Keys: ↑/↓ move, n next page, r retry a failed page, q quit.

Example:
  pagedlist browse -c config.yaml
  pagedlist browse -c config.yaml --source users`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	browseCmd.Flags().StringP("source", "s", "", "source name (defaults to the first configured source)")
	browseCmd.Flags().String("log-file", "pagedlist.log", "path for diagnostic logs")
	_ = browseCmd.MarkFlagRequired("config")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	sources, err := config.BuildSources(cfg)
	if err != nil {
		return fmt.Errorf("failed to build sources: %w", err)
	}

	name, _ := cmd.Flags().GetString("source")
	if name == "" {
		name = cfg.Sources[0].Name
	}
	src, ok := sources[name]
	if !ok {
		return fmt.Errorf("unknown source %q", name)
	}

	var display string
	for _, sc := range cfg.Sources {
		if sc.Name == name {
			display = sc.DisplayField
		}
	}

	logFile, _ := cmd.Flags().GetString("log-file")
	logger, f, err := newLogger(logFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	store, err := pagedlist.New(src.Fetcher(nil), pagedlist.ItemID,
		pagedlist.WithLogger[string, pagedlist.Item](logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	title := cfg.Title
	if title == "" {
		title = src.Name()
	}

	logger.Info("browse starting", "source", name, "url_template", src.URLTemplate())

	model := ui.NewModel(ui.Options{
		Store:        store,
		Title:        title,
		DisplayField: display,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	teabind.Bind(p, store)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser exited with error: %w", err)
	}
	return nil
}
