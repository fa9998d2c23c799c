package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional per-vault configuration file.
const ConfigFileName = "notelet.yaml"

// FileConfig is the on-disk vault configuration. Every field is optional;
// flags and options win over file values.
type FileConfig struct {
	Adapter   string `yaml:"adapter"`
	Highlight struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"highlight"`
	TrashRetentionDays int `yaml:"trashRetentionDays"`
}

// LoadConfig reads notelet.yaml from the vault directory. A missing file is
// not an error and yields the zero config.
func LoadConfig(dir string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", ConfigFileName, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", ConfigFileName, err)
	}
	return cfg, nil
}

// Options converts the file config into vault options.
func (c FileConfig) Options() []Option {
	var opts []Option
	if c.Adapter != "" {
		opts = append(opts, WithAdapter(c.Adapter))
	}
	if c.Highlight.Start != "" || c.Highlight.End != "" {
		opts = append(opts, WithHighlightMarkers(c.Highlight.Start, c.Highlight.End))
	}
	return opts
}
