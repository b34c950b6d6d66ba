package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustinanglin/StrikeGen/internal/cli/config"
	"github.com/dustinanglin/StrikeGen/internal/cli/output"
	"github.com/dustinanglin/StrikeGen/internal/rulebook"
	"github.com/dustinanglin/StrikeGen/internal/store"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *store.SQLiteStore
	Rulebook *rulebook.Rulebook
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with the character store open
// and the rulebook loaded. Returns the context and a cleanup function that
// must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx, err := NewCommandContextWithoutStore(cmd)
	if err != nil {
		return nil, nil, err
	}

	st, err := openStore(cmdCtx.Cfg)
	if err != nil {
		return nil, nil, err
	}
	cmdCtx.Store = st

	cleanup := func() {
		_ = st.Close()
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without opening the
// character store. Useful for commands that only read the rulebook.
func NewCommandContextWithoutStore(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	rb, err := rulebook.Load(cfg.HomebrewDir)
	if err != nil {
		return nil, fmt.Errorf("load rulebook: %w", err)
	}

	// The root command stores a renderer built from the resolved output
	// mode; fall back to building one when the command runs standalone.
	r, ok := output.FromContext(cmd.Context())
	if !ok {
		mode := output.Mode(cfg.OutputFormat)
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Rulebook: rb,
		Renderer: r,
	}, nil
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	return &config.Config{
		HomebrewDir:  getEnvOrDefault("STRIKEGEN_HOMEBREW_DIR", config.DefaultHomebrewDir),
		StorePath:    getEnvOrDefault("STRIKEGEN_STORE_PATH", config.DefaultStoreFile),
		ExportDir:    getEnvOrDefault("STRIKEGEN_EXPORT_DIR", config.DefaultExportDir),
		Verbose:      os.Getenv("STRIKEGEN_VERBOSE") == "true",
		OutputFormat: os.Getenv("STRIKEGEN_OUTPUT"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openStore opens the character store, creating its directory and running
// migrations as needed.
func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	if cfg.StorePath != ":memory:" {
		storeDir := filepath.Dir(cfg.StorePath)
		if storeDir != "." && storeDir != "" {
			if err := os.MkdirAll(storeDir, 0750); err != nil {
				return nil, fmt.Errorf("create store directory: %w", err)
			}
		}
	}

	st := store.NewSQLiteStore()
	if err := st.Open(cfg.StorePath); err != nil {
		return nil, fmt.Errorf("open character store: %w", err)
	}
	if err := st.Migrate(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("migrate character store: %w", err)
	}
	return st, nil
}
