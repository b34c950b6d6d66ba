package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustinanglin/StrikeGen/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new StrikeGen project",
		Long: `Initialize a new StrikeGen project with default configuration.

This creates:
  - strikegen.yaml configuration file
  - homebrew/ directory for custom rulebook content
  - .gitignore for local state`,
		Example: `  # Initialize in current directory
  strikegen init

  # Initialize in a new directory
  strikegen init my-campaign

  # Force overwrite existing config
  strikegen init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			// Create renderer
			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Check if config already exists
	configPath := filepath.Join(dir, "strikegen.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("strikegen.yaml already exists. Use --force to overwrite")
	}

	if err := copyTemplate("minimal", dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	// List created files
	files, _ := listTemplateFiles("minimal")
	for _, f := range files {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Success("StrikeGen project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Run 'strikegen new' to build a character")
	r.Println("  2. Add homebrew content to homebrew/")
	r.Println("  3. Run 'strikegen show <name>' to see a sheet")

	return nil
}
