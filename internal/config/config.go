// Package config loads the server configuration from YAML, with
// defaults that run a single demo farm out of the box.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agrinexus/farm-twin/internal/engine"
)

// Duration wraps time.Duration so YAML values like "2s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig holds the HTTP surface settings.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StorageConfig holds persistence settings. PersistEveryTicks thins
// the sensor history; alerts are always logged.
type StorageConfig struct {
	DBPath            string `yaml:"db_path"`
	PersistEveryTicks int64  `yaml:"persist_every_ticks"`
}

// AIConfig holds the assistant budget limits.
type AIConfig struct {
	DailyBudgetUSD   float64 `yaml:"daily_budget_usd"`
	MonthlyBudgetUSD float64 `yaml:"monthly_budget_usd"`
}

// Config is the root server configuration.
type Config struct {
	Server       ServerConfig  `yaml:"server"`
	Storage      StorageConfig `yaml:"storage"`
	AI           AIConfig      `yaml:"ai"`
	Simulation   engine.Config `yaml:"simulation"`
	TickInterval Duration      `yaml:"tick_interval"`
	GeoBaseURL   string        `yaml:"geo_base_url"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8000",
			AllowedOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			DBPath:            "data/farm.db",
			PersistEveryTicks: 5,
		},
		AI: AIConfig{
			DailyBudgetUSD:   1.0,
			MonthlyBudgetUSD: 20.0,
		},
		Simulation:   engine.DefaultConfig(),
		TickInterval: Duration(engine.DefaultTickInterval),
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config file: %w", err)
	}

	if err := cfg.Simulation.Validate(); err != nil {
		return cfg, err
	}
	if cfg.TickInterval <= 0 {
		return cfg, fmt.Errorf("tick_interval must be positive, got %s", cfg.TickInterval.Std())
	}
	return cfg, nil
}
