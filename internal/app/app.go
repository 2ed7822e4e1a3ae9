package app

import (
	"fmt"
	"log/slog"

	"github.com/heartmarshall/shima-pokedex/internal/config"
)

// Bootstrap loads configuration and installs the logger. Every command
// starts with it. An empty configPath uses config.Load (CONFIG_PATH, then
// ./config.yaml); a non-empty one must exist.
func Bootstrap(configPath, command string) (*config.Config, *slog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath, true)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap: %w", err)
	}

	logger := NewLogger(cfg.Log).With("cmd", command)
	logger.Info("starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	return cfg, logger, nil
}
