// Package config resolves the fully explicit configuration the solvers
// consume. Sources are applied lowest to highest precedence: built-in
// defaults, ROTA_-prefixed environment variables, a JSON or YAML config
// file, then command-line flags (bound by the caller).
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/me/rota/pkg/model"
)

// EnvPrefix is the prefix of every recognized environment variable.
const EnvPrefix = "ROTA_"

// RosterConfig holds a roster problem plus solver settings.
type RosterConfig struct {
	Problem      model.RosterProblem `json:"problem" yaml:"problem"`
	Rules        []model.RequestRule `json:"rules,omitempty" yaml:"rules,omitempty"`
	TimeLimitSec int                 `json:"time_limit_sec" yaml:"time_limit_sec"`
}

// TimetableConfig holds a timetable problem plus solver settings.
type TimetableConfig struct {
	Problem      model.TimetableProblem `json:"problem" yaml:"problem"`
	TimeLimitSec int                    `json:"time_limit_sec" yaml:"time_limit_sec"`
}

// ServerConfig holds configuration for the rotad server.
type ServerConfig struct {
	Addr      string // Listen address (default ":8080")
	LogLevel  string // Log level: debug, info, warn, error
	LogFormat string // Log format: text, json
	DBPath    string // SQLite database path (":memory:" for testing)
}

// DefaultTimeLimitSec bounds a solve when no limit is configured.
const DefaultTimeLimitSec = 30

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// ApplyEnv overrides server settings from the environment.
func (c *ServerConfig) ApplyEnv() {
	applyString(&c.Addr, "ADDR")
	applyString(&c.LogLevel, "LOG_LEVEL")
	applyString(&c.LogFormat, "LOG_FORMAT")
	applyString(&c.DBPath, "DB")
}

// LoadRoster resolves a roster configuration. An empty path keeps the
// defaults and environment only.
func LoadRoster(path string) (*RosterConfig, error) {
	cfg := &RosterConfig{TimeLimitSec: DefaultTimeLimitSec}
	applyInt(&cfg.TimeLimitSec, "TIME_LIMIT")
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTimetable resolves a timetable configuration.
func LoadTimetable(path string) (*TimetableConfig, error) {
	cfg := &TimetableConfig{TimeLimitSec: DefaultTimeLimitSec}
	applyInt(&cfg.TimeLimitSec, "TIME_LIMIT")
	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast before any model is built.
func (c *RosterConfig) Validate() error {
	if c.TimeLimitSec <= 0 {
		return fmt.Errorf("config: time limit must be positive, got %d", c.TimeLimitSec)
	}
	for _, r := range c.Rules {
		if r.Expr == "" {
			return fmt.Errorf("config: request rule %q has an empty expression", r.Name)
		}
	}
	return c.Problem.Validate()
}

// Validate fails fast before any model is built.
func (c *TimetableConfig) Validate() error {
	if c.TimeLimitSec <= 0 {
		return fmt.Errorf("config: time limit must be positive, got %d", c.TimeLimitSec)
	}
	return c.Problem.Validate()
}

// loadFile parses a YAML or JSON config file into dst. JSON is a subset
// of YAML, so a single parser covers both.
func loadFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyString(dst *string, key string) {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		*dst = v
	}
}

func applyInt(dst *int, key string) {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
