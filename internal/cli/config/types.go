// Package config provides configuration management for the StrikeGen CLI.
//
// Configuration is layered: built-in defaults, then the project's
// strikegen.yaml, then STRIKEGEN_ environment variables, then CLI flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	HomebrewDir  string `koanf:"homebrew_dir"`
	StorePath    string `koanf:"store_path"`
	ExportDir    string `koanf:"export_dir"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`

	// ProjectRoot is the resolved project root, not read from config.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultHomebrewDir = "homebrew"
	DefaultStoreFile   = ".strikegen/characters.db"
	DefaultExportDir   = "sheets"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
