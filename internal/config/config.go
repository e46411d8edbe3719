// Package config loads crewplan's configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces overrides, e.g. CREWPLAN_LOGGING__LEVEL=debug or
// CREWPLAN_DB__PATH=/tmp/crewplan.db.
const envPrefix = "CREWPLAN_"

type Config struct {
	DB       DBConfig       `json:"db"`
	Schedule ScheduleConfig `json:"schedule"`
	Logging  LoggingConfig  `json:"logging"`
}

type DBConfig struct {
	Path string `json:"path"`
}

type ScheduleConfig struct {
	// MaxIterations bounds the forward scan when resolving a project's
	// start date. Zero means the scheduler default.
	MaxIterations int `json:"maxIterations"`
	// LinkBaseURL, when set, prefixes the click directives emitted in
	// timeline charts.
	LinkBaseURL string `json:"linkBaseUrl"`
}

type LoggingConfig struct {
	Level string `json:"level"`
}

func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

func (c *LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		return nil
	}
	return fmt.Errorf("unknown log level %q", c.Level)
}

// DefaultPath returns the conventional config file location. The file is
// optional; Load falls back to defaults when it does not exist.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".crewplan", "config.yaml")
}

// DefaultDBPath returns the database location used when none is configured.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "crewplan.db"
	}
	return filepath.Join(home, ".crewplan", "crewplan.db")
}

// Load reads the YAML config at path (skipped when empty or missing) and
// applies CREWPLAN_ environment overrides on top.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.DB.Path == "" {
		cfg.DB.Path = DefaultDBPath()
	}
	cfg.Logging.SetDefaults()
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
