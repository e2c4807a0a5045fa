package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/radiantjxn/groups-catalog/internal/config"
	"github.com/radiantjxn/groups-catalog/internal/logger"
	"github.com/radiantjxn/groups-catalog/internal/refresh"
	"github.com/radiantjxn/groups-catalog/internal/server"
	"github.com/radiantjxn/groups-catalog/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagAddr    string
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups-catalog",
		Short: "Build and serve the community groups catalog",
		Long: `Scrapes the configured group listing pages, classifies every group,
and publishes a catalog JSON artifact. Run once with "refresh" or serve
the catalog and refresh endpoint over HTTP with "serve".`,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newRefreshCmd(), newServeCmd())

	return cmd
}

func newRefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Run one refresh pass and print a summary",
		RunE:  runRefresh,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and refresh endpoint over HTTP",
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides config)")
	return cmd
}

// setup builds the shared pieces both commands need.
func setup() (*config.Config, *logger.Logger, *storage.Store, *refresh.Coordinator, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	level := logger.Level(strings.ToUpper(cfg.LogLevel))
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stderr)
	logger.SetDefault(log)

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("initializing storage: %w", err)
	}

	coord := refresh.New(refresh.Config{
		Headless:      cfg.Headless,
		PageTimeout:   cfg.PageTimeout.Std(),
		DetailTimeout: cfg.DetailTimeout.Std(),
		Cooldown:      cfg.Cooldown.Std(),
		OverridesPath: cfg.OverridesPath,
	}, store, log)

	return cfg, log, store, coord, nil
}

// runRefresh is the one-shot pipeline command
func runRefresh(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, _, _, coord, err := setup()
	if err != nil {
		return err
	}

	res, err := coord.Refresh(cmd.Context(), cfg.SourcePages)
	if err != nil {
		return fmt.Errorf("refreshing catalog: %w", err)
	}

	result := &OutputResult{
		RefreshedAt: res.LastUpdated,
		GroupCount:  res.GroupCount,
		Logs:        res.Logs,
	}
	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// runServe starts the HTTP layer and blocks
func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, store, coord, err := setup()
	if err != nil {
		return err
	}

	addr := cfg.Addr
	if flagAddr != "" {
		addr = flagAddr
	}

	srv := server.New(coord, store, cfg.SourcePages, log)
	return srv.ListenAndServe(addr)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
