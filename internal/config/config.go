// Package config loads the CLI's optional .miniscript.yml file: default
// verbosity, output format, and quiet mode, overridable by explicit flags.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds the CLI defaults that can be set from a config file instead
// of repeated on every invocation. The compiler core never reads this type;
// it is consumed only by cmd/miniscript.
type Config struct {
	Verbose bool   `yaml:"verbose"`
	Format  string `yaml:"format"`
	Quiet   bool   `yaml:"quiet"`
}

// Default returns the Config used when no config file is found.
func Default() Config {
	return Config{Format: "text"}
}

// Load reads and parses the YAML config file at path. A missing file is not
// an error: it returns Default() unchanged, since the config file is
// entirely optional.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
