// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Profile identifies the local trainee whose progress is recorded.
type Profile struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Storage selects the progress store backend.
type Storage struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

// Greptime configures the optional time-series export.
type Greptime struct {
	Endpoint    string `yaml:"endpoint"`
	Database    string `yaml:"database"`
	LogTable    string `yaml:"log_table"`
	ResultTable string `yaml:"result_table"`
}

// NATS configures the optional run result publisher.
type NATS struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// SimulationConfig is the root configuration for a training session.
type SimulationConfig struct {
	TickInterval string   `yaml:"tick_interval"`
	LogLevel     string   `yaml:"log_level"`
	MissionsFile string   `yaml:"missions_file"`
	AdminAddr    string   `yaml:"admin_addr"`
	ExportDir    string   `yaml:"export_dir"`
	Profile      Profile  `yaml:"profile"`
	Storage      Storage  `yaml:"storage"`
	Greptime     Greptime `yaml:"greptime"`
	NATS         NATS     `yaml:"nats"`
}

// Default returns the configuration used when no file is given.
func Default() *SimulationConfig {
	cfg := &SimulationConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *SimulationConfig) applyDefaults() {
	if c.TickInterval == "" {
		c.TickInterval = "1s"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Profile.ID == "" {
		c.Profile.ID = "local"
	}
	if c.Profile.Name == "" {
		c.Profile.Name = "Defender"
	}
	if c.Storage.Type == "" {
		c.Storage.Type = StorageMemory
	}
	if c.Greptime.Database == "" {
		c.Greptime.Database = "public"
	}
	if c.Greptime.LogTable == "" {
		c.Greptime.LogTable = "mission_log"
	}
	if c.Greptime.ResultTable == "" {
		c.Greptime.ResultTable = "mission_results"
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = "vncrypt.results"
	}
}

// ApplyEnv overrides settings from the environment.
func (c *SimulationConfig) ApplyEnv() {
	if v := os.Getenv("TICK_INTERVAL"); v != "" {
		c.TickInterval = v
	}
	if v := os.Getenv("GREPTIMEDB_ENDPOINT"); v != "" {
		c.Greptime.Endpoint = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		c.NATS.URL = v
	}
	if v := os.Getenv("PROGRESS_DB"); v != "" {
		c.Storage.Type = StorageSQLite
		c.Storage.Path = v
	}
}

// Tick parses the configured tick interval.
func (c *SimulationConfig) Tick() (time.Duration, error) {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0, fmt.Errorf("parse tick_interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("tick_interval must be positive, got %s", d)
	}
	return d, nil
}

// Load loads YAML config and validates it against a CUE schema
func Load(configPath, cueSchemaPath string) (*SimulationConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg SimulationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()

	slog.Debug("loaded configuration", "path", configPath, "storage", cfg.Storage.Type, "tick", cfg.TickInterval)
	return &cfg, nil
}
