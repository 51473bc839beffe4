package authz

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls the authorizer's evaluation gates.
type Config struct {
	// Enabled turns ACL enforcement on. When false every request is
	// allowed without consulting the pipeline.
	Enabled bool `yaml:"enabled"`

	// Whitelist lists actions that bypass authorization entirely, such as
	// heartbeat-style operations.
	Whitelist []Action `yaml:"whitelist"`

	// StorePath locates the metadata store. Only the CLI wiring reads it;
	// the authorizer itself is handed constructed managers.
	StorePath string `yaml:"store_path"`
}

// DefaultConfig returns a config with enforcement enabled and an empty
// whitelist.
func DefaultConfig() Config {
	return Config{Enabled: true}
}

// LoadConfig reads a YAML config file. Missing fields keep their zero
// values, so a file containing only "enabled: true" is valid.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	for _, a := range cfg.Whitelist {
		if _, err := ParseAction(string(a)); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	return cfg, nil
}
