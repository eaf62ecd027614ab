package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/doctree/internal/converter"
)

// ProjectConfig holds project-level settings loaded from doctree.yml.
// The Converter section feeds the conversion engine directly; the rest
// configures file collection and output.
type ProjectConfig struct {
	Converter   converter.Options `yaml:"converter,omitempty"`
	OutputDir   string            `yaml:"outputDir,omitempty"`
	ExcludeDirs []string          `yaml:"excludeDirs,omitempty"`
	Verbose     bool              `yaml:"verbose,omitempty"`
}

// Load attempts to read doctree.yml or doctree.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"doctree.yml", "doctree.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
