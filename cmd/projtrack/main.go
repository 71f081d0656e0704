// Package main is the entry point for the projtrack application.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hy4ri/projtrack/internal/api"
	"github.com/hy4ri/projtrack/internal/config"
	"github.com/hy4ri/projtrack/internal/format"
	"github.com/hy4ri/projtrack/internal/logging"
	"github.com/hy4ri/projtrack/internal/store"
	"github.com/hy4ri/projtrack/internal/tui"
	"github.com/hy4ri/projtrack/internal/tui/styles"
)

const version = "0.1.0"

const configTemplate = `# projtrack configuration
# Location: ~/.config/projtrack/config.yaml

source:
  # http(s) URL, file:// URL or local path of the project list document
  url: "./challenge.json"
  timeout: 30s

ui:
  # Filter shown on start: all, active or inactive
  default_filter: all
  # auto, always or never
  color: auto
  # glamour style for descriptions: dark, light, notty, ...
  markdown_style: dark
  # IANA time zone for due dates (empty = local)
  timezone: ""

notify:
  # Send a desktop notification for active projects due within this many days (0 = off)
  due_within_days: 0

log:
  # Empty = ~/.local/state/projtrack/projtrack.log
  file: ""
  level: info
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the persistent flags.
type options struct {
	configPath string
	source     string
	filter     string
	logFile    string
	debug      bool
	noColor    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "projtrack",
		Short:         "Browse and annotate a project list in the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Start the interactive TUI on ./challenge.json
  projtrack

  # Read the document from a server, showing active projects first
  projtrack --source https://example.com/challenge.json --filter active

  # Print the table for scripts
  projtrack list --filter inactive
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/projtrack/config.yaml)")
	flags.StringVar(&opts.source, "source", "", "project list URL or path (overrides config)")
	flags.StringVar(&opts.filter, "filter", "", "initial filter: all, active or inactive")
	flags.StringVar(&opts.logFile, "log-file", "", "log file (overrides config)")
	flags.BoolVar(&opts.debug, "debug", false, "log at debug level")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colors")

	cmd.AddCommand(newInitCmd(opts), newListCmd(opts))
	return cmd
}

func newInitCmd(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a template config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return createConfigTemplate(cmd.InOrStdin(), cmd.OutOrStdout(), opts.configPath, force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the project table and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
}

// createConfigTemplate writes the commented template, asking before
// overwriting unless force is set.
func createConfigTemplate(in io.Reader, out io.Writer, path string, force bool) error {
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(out, "Config file already exists: %s\n", path)
		fmt.Fprint(out, "Overwrite? [y/N]: ")

		response, _ := bufio.NewReader(in).ReadString('\n')
		response = strings.TrimSpace(response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(out, "Config file created: %s\n", path)
	return nil
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.source != "" {
		cfg.Source.URL = opts.source
	}
	if opts.filter != "" {
		cfg.UI.DefaultFilter = opts.filter
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if opts.noColor {
		cfg.UI.Color = "never"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup builds everything both commands share.
func setup(opts *options) (*config.Config, *zap.Logger, *store.Store, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, nil, err
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := logging.New(logging.Options{Path: logPath, Level: cfg.Log.Level, Debug: opts.debug})
	if err != nil {
		return nil, nil, nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, nil, err
	}

	styles.ApplyColorMode(cfg.UI.Color)

	logger.Info("starting",
		zap.String("version", version),
		zap.String("source", cfg.Source.URL),
		zap.String("filter", cfg.UI.DefaultFilter),
	)

	src := api.NewSource(cfg.Source.URL, cfg.Source.Timeout)
	s := store.New(src, format.New(loc), logger.Named("store"))
	return cfg, logger, s, nil
}

// runTUI starts the main TUI application.
func runTUI(ctx context.Context, opts *options) error {
	cfg, logger, s, err := setup(opts)
	if err != nil {
		return err
	}
	defer logger.Sync()

	app := tui.NewApp(tui.Options{
		Store:   s,
		Config:  cfg,
		Logger:  logger.Named("tui"),
		Context: ctx,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// runList prints the filtered table without entering the TUI.
func runList(ctx context.Context, out, errOut io.Writer, opts *options) error {
	cfg, logger, s, err := setup(opts)
	if err != nil {
		return err
	}
	defer logger.Sync()

	filter, err := store.ParseFilter(cfg.UI.DefaultFilter)
	if err != nil {
		return err
	}

	if err := s.Load(ctx); err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	if n := s.Skipped(); n > 0 {
		fmt.Fprintf(errOut, "Warning: skipped %d malformed project(s)\n", n)
	}

	records := s.Filter(filter)
	if len(records) == 0 {
		fmt.Fprintln(out, "No projects.")
		return nil
	}
	fmt.Fprintln(out, tui.RenderPlainTable(records))
	return nil
}
