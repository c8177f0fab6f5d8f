package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// FileConfig is the content of quill.yaml. Zero values keep the defaults.
type FileConfig struct {
	Adapter        string `yaml:"adapter,omitempty"`
	Slot           string `yaml:"slot,omitempty"`
	ReadOnly       bool   `yaml:"read_only,omitempty"`
	RequireContent bool   `yaml:"require_content,omitempty"`
}

// LoadConfig reads quill.yaml from dir. A missing file yields the zero config.
func LoadConfig(dir string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	if cfg.Adapter != "" && !slices.Contains(Adapters, cfg.Adapter) {
		return cfg, fmt.Errorf("invalid %s: unknown adapter %q", ConfigFile, cfg.Adapter)
	}
	return cfg, nil
}

// SaveConfig writes cfg as dir/quill.yaml.
func SaveConfig(dir string, cfg FileConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", ConfigFile, err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigFile, err)
	}
	return nil
}

// Options turns the file settings into options. Options passed after these win.
func (c FileConfig) Options() []Option {
	var opts []Option
	if c.Adapter != "" {
		opts = append(opts, WithAdapter(c.Adapter))
	}
	if c.Slot != "" {
		opts = append(opts, WithSlot(c.Slot))
	}
	if c.ReadOnly {
		opts = append(opts, WithReadOnly(true))
	}
	return opts
}
