package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"vncrypt-sim/internal/config"
	"vncrypt-sim/internal/logging"
	"vncrypt-sim/internal/mission"
	"vncrypt-sim/internal/progress"
)

// loadConfig reads the config file, falling back to defaults when the
// default path does not exist. Environment overrides are applied last.
func loadConfig(cmd *cobra.Command) (*config.SimulationConfig, error) {
	var cfg *config.SimulationConfig
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
		cfg = config.Default()
	} else {
		c, err := config.Load(configPath, schemaPath)
		if err != nil {
			return nil, fmt.Errorf("config load failed: %w", err)
		}
		cfg = c
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func newLogger(cfg *config.SimulationConfig, w io.Writer) *slog.Logger {
	logger := logging.New(w, cfg.LogLevel)
	slog.SetDefault(logger)
	return logger
}

func loadCatalog(cfg *config.SimulationConfig) (*mission.Catalog, error) {
	if cfg.MissionsFile == "" {
		return mission.BuiltIn(), nil
	}
	return mission.Load(cfg.MissionsFile)
}

func openStore(cfg *config.SimulationConfig) (progress.Store, error) {
	switch cfg.Storage.Type {
	case config.StorageSQLite:
		db, err := progress.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		store, err := progress.NewSQLStore(db, cfg.Profile.ID, cfg.Profile.Name)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageMemory, "":
		return progress.NewMemoryStore(cfg.Profile.ID, cfg.Profile.Name), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
}

// newSink adds the NATS publisher next to the store when a URL is configured.
func newSink(cfg *config.SimulationConfig, store progress.Store, logger *slog.Logger) (progress.Sink, func(), error) {
	if cfg.NATS.URL == "" {
		return store, func() {}, nil
	}
	ns, err := progress.NewNATSSink(cfg.NATS.URL, cfg.NATS.Subject, cfg.Profile.ID, logger)
	if err != nil {
		return nil, nil, err
	}
	return progress.MultiSink{store, ns}, func() { ns.Close() }, nil
}
