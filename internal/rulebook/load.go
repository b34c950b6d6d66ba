package rulebook

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

// document is the YAML shape of a rulebook file. A file may carry any
// subset of the sections.
type document struct {
	Backgrounds []Background `yaml:"backgrounds"`
	Origins     []Origin     `yaml:"origins"`
	Classes     []Class      `yaml:"classes"`
	Roles       []Role       `yaml:"roles"`
	Feats       []Feat       `yaml:"feats"`
	Kits        []Kit        `yaml:"kits"`
}

// Load builds the rulebook from the embedded reference data, then overlays
// any YAML files found in homebrewDir. Pass an empty dir to load the
// shipped content only.
func Load(homebrewDir string) (*Rulebook, error) {
	rb := New()

	if err := loadFS(rb, embedded, "data"); err != nil {
		return nil, fmt.Errorf("load embedded rulebook: %w", err)
	}

	if homebrewDir != "" {
		if err := loadDir(rb, homebrewDir); err != nil {
			return nil, err
		}
	}

	return rb, nil
}

func loadFS(rb *Rulebook, fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, dir+"/"+entry.Name())
		if err != nil {
			return err
		}
		if err := mergeYAML(rb, data); err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}
	}
	return nil
}

// loadDir overlays homebrew YAML files onto the rulebook. A missing
// directory is not an error; a player without homebrew content should not
// need to create one.
func loadDir(rb *Rulebook, dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read homebrew dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read homebrew file: %w", err)
		}
		if err := mergeYAML(rb, data); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func mergeYAML(rb *Rulebook, data []byte) error {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return rb.merge(&doc)
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
