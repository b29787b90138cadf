package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"bookchat/internal/datadir"
)

// DataDirConfig holds the optional config value for the data directory.
// Set this before calling config functions so a --data-dir flag is respected.
var DataDirConfig string

// Config holds the client configuration, persisted as YAML in the data dir.
type Config struct {
	ServerURL         string `yaml:"server_url"`
	Lang              string `yaml:"lang"`
	AssistantName     string `yaml:"assistant_name,omitempty"`
	AutocompleteLimit int    `yaml:"autocomplete_limit,omitempty"`
	DebounceMs        int    `yaml:"debounce_ms,omitempty"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec,omitempty"`
	DataDir           string `yaml:"data_dir,omitempty"`
}

// configPath returns the client config file path
func configPath() (string, error) {
	dir, err := datadir.Resolve(DataDirConfig)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadOrCreateConfig loads the saved config or creates a new one.
// Non-empty serverURL and lang arguments override any saved values.
func LoadOrCreateConfig(serverURL, lang string) (*Config, error) {
	cfg := &Config{}

	cfgPath, err := configPath()
	if err == nil {
		if data, err := os.ReadFile(cfgPath); err == nil {
			yaml.Unmarshal(data, cfg) // ignore parse errors, use defaults
		}
	}

	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if lang != "" {
		cfg.Lang = lang
	}

	cfg.applyDefaults()

	if cfgPath != "" {
		cfg.save(cfgPath)
	}

	return cfg, nil
}

// applyDefaults fills in anything still unset after load and overrides.
func (c *Config) applyDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = "http://localhost:8000"
	}
	if c.Lang == "" {
		c.Lang = "en"
	}
	if c.AssistantName == "" {
		c.AssistantName = "BookBot"
	}
	if c.AutocompleteLimit <= 0 {
		c.AutocompleteLimit = 5
	}
	if c.DebounceMs <= 0 {
		c.DebounceMs = 300
	}
	if c.RequestTimeoutSec <= 0 {
		c.RequestTimeoutSec = 15
	}
}

// save writes the config to disk
func (c *Config) save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
