package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/doctree/internal/converter"
	"github.com/dusk-indust/doctree/internal/frontend"
)

func TestLoad_ReadsYaml(t *testing.T) {
	dir := t.TempDir()
	content := `
converter:
  name: My Library
  mode: file
  language: typescript
  excludeExternals: true
outputDir: build/docs
excludeDirs:
  - vendor
  - node_modules
verbose: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doctree.yml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "My Library", cfg.Converter.Name)
	assert.Equal(t, converter.ModeSingleFile, cfg.Converter.Mode)
	assert.Equal(t, frontend.LangTypeScript, cfg.Converter.Language)
	assert.True(t, cfg.Converter.ExcludeExternals)
	assert.Equal(t, "build/docs", cfg.OutputDir)
	assert.Equal(t, []string{"vendor", "node_modules"}, cfg.ExcludeDirs)
	assert.True(t, cfg.Verbose)
}

func TestLoad_PrefersYmlOverYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doctree.yml"), []byte("outputDir: from-yml"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doctree.yaml"), []byte("outputDir: from-yaml"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-yml", cfg.OutputDir)
}

func TestLoad_MissingFileYieldsZeroConfig(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoad_InvalidYamlFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doctree.yml"), []byte("outputDir: [unterminated"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
