package rulebook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedData(t *testing.T) {
	rb, err := Load("")
	require.NoError(t, err)

	assert.NotEmpty(t, rb.BackgroundNames())
	assert.NotEmpty(t, rb.OriginNames())
	assert.NotEmpty(t, rb.ClassNames())
	assert.NotEmpty(t, rb.RoleNames())
	assert.NotEmpty(t, rb.FeatNames())
	assert.NotEmpty(t, rb.KitNames())

	// Shipped content carries at least one complex origin; the builder's
	// choice resolution depends on it.
	var foundComplex bool
	for _, name := range rb.OriginNames() {
		o, _ := rb.Origin(name)
		if o.Complex() {
			foundComplex = true
			break
		}
	}
	assert.True(t, foundComplex, "embedded data should include a complex origin")
}

func TestLoad_MissingHomebrewDirIsNotAnError(t *testing.T) {
	rb, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.NotEmpty(t, rb.BackgroundNames())
}

func TestLoad_HomebrewOverlay(t *testing.T) {
	dir := t.TempDir()
	homebrew := `
backgrounds:
  - name: Rat Catcher
    skills:
      options: [Vermin, Alleys]
    trick: The rats of this city report to you.
    wealth: 1
origins:
  - name: Human
    skills:
      options: [Stubbornness]
    wealth_bonus: 1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "homebrew.yaml"), []byte(homebrew), 0o644))

	rb, err := Load(dir)
	require.NoError(t, err)

	// New entry added.
	b, ok := rb.Background("Rat Catcher")
	require.True(t, ok)
	assert.Equal(t, 1, b.Wealth)

	// Shipped entry overridden by name.
	o, ok := rb.Origin("Human")
	require.True(t, ok)
	assert.Equal(t, 1, o.WealthBonus)
	assert.Equal(t, []string{"Stubbornness"}, o.Skills.Options)
}

func TestLoad_BadHomebrewYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("backgrounds: {not: a list}"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestLoad_IgnoresNonYAMLFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not yaml at all {"), 0o644))

	_, err := Load(dir)
	require.NoError(t, err)
}
