package config

import (
	"fmt"
	"os"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.StorePath == "" {
		return fmt.Errorf("store_path is required")
	}

	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("invalid output format %q (want auto, text, markdown, or json)", c.OutputFormat)
	}
	return nil
}

// ValidateHomebrewDir checks if the homebrew directory exists when one is
// configured. A missing default directory is fine; most projects will not
// have custom content.
func (c *Config) ValidateHomebrewDir() error {
	if c.HomebrewDir == "" {
		return nil
	}
	if info, err := os.Stat(c.HomebrewDir); err == nil && !info.IsDir() {
		return fmt.Errorf("homebrew path is not a directory: %s", c.HomebrewDir)
	}
	return nil
}
