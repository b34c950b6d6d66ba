package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustinanglin/StrikeGen/internal/cli/config"
	"github.com/spf13/cobra"

	// sqlite driver for character store queries.
	_ "modernc.org/sqlite"
)

// resolveStorePath returns the character store path from config or the default.
func resolveStorePath(cfg *config.Config) string {
	if cfg.StorePath != "" {
		return cfg.StorePath
	}
	return config.DefaultStoreFile
}

// openStoreDBReadOnly opens the character store in read-only mode.
func openStoreDBReadOnly(path string) (*sql.DB, error) {
	return sql.Open("sqlite", path+"?mode=ro")
}

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	Input  string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Query the character store",
		Long: `Query the StrikeGen character store directly.

Execute SQL queries against the store to inspect saved characters and
their raw responses. Supports multiple output formats for scripting
and integration.

When invoked without arguments, enters interactive REPL mode.`,
		Example: `  # Execute SQL directly
  strikegen query "SELECT id, name FROM characters"

  # List available tables
  strikegen query tables

  # Show schema for a table
  strikegen query schema characters

  # Search characters by name or response text
  strikegen query search "Brambles"

  # Output as JSON
  strikegen query "SELECT * FROM characters" --format json

  # Interactive mode
  strikegen query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, csv, md")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	// Subcommands
	cmd.AddCommand(newQueryTablesCommand(opts))
	cmd.AddCommand(newQuerySchemaCommand(opts))
	cmd.AddCommand(newQuerySearchCommand(opts))

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	cfg := getConfig()
	storePath := resolveStorePath(cfg)

	// Check if store exists
	if _, err := os.Stat(storePath); os.IsNotExist(err) {
		return fmt.Errorf("character store not found at %s (run 'strikegen new' first)", storePath)
	}

	// Determine SQL source
	var sqlQuery string

	switch {
	case len(args) > 0:
		sqlQuery = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	case !isTerminal(os.Stdin):
		// Read from stdin (piped input)
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	default:
		// No input, TTY detected - enter REPL mode
		return runQueryREPL(cmd, storePath, opts)
	}

	// Execute the query
	return executeAndRender(cmd.Context(), cmd, storePath, sqlQuery, opts.Format)
}

func executeAndRender(ctx context.Context, cmd *cobra.Command, storePath, sqlQuery, format string) error {
	db, err := openStoreDBReadOnly(storePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, sqlQuery)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return renderResults(cmd.OutOrStdout(), rows, format)
}

// newQueryTablesCommand creates the tables subcommand.
func newQueryTablesCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List all tables in the character store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			storePath := resolveStorePath(getConfig())
			return listTables(cmd, storePath, opts.Format)
		},
	}
}

// newQuerySchemaCommand creates the schema subcommand.
func newQuerySchemaCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <table>",
		Short: "Show schema for a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storePath := resolveStorePath(getConfig())
			return showSchema(cmd, storePath, args[0], opts.Format)
		},
	}
}

// newQuerySearchCommand creates the search subcommand.
func newQuerySearchCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search characters by name or response text",
		Example: `  strikegen query search "Brambles"
  strikegen query search "Archer" --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storePath := resolveStorePath(getConfig())
			return searchCharacters(cmd, storePath, args[0], opts.Format)
		},
	}
}

func searchCharacters(cmd *cobra.Command, storePath, term, format string) error {
	// Responses are stored as a JSON blob, so a LIKE match covers both keys
	// and values.
	query := `
		SELECT id, name, updated_at
		FROM characters
		WHERE name LIKE ? OR responses LIKE ?
		ORDER BY updated_at DESC
		LIMIT 50
	`

	db, err := openStoreDBReadOnly(storePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	pattern := "%" + term + "%"
	rows, err := db.QueryContext(cmd.Context(), query, pattern, pattern)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return renderResults(cmd.OutOrStdout(), rows, format)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
