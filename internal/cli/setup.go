package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/oerlens/oerlens/internal/connectivity"
	"github.com/oerlens/oerlens/internal/engine"
	"github.com/oerlens/oerlens/internal/model"
	"github.com/oerlens/oerlens/internal/provider"
	"github.com/oerlens/oerlens/internal/store"
)

// loadConfig merges defaults, the config file and OERLENS_* env vars.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	// API keys prefer the environment over the config file
	if key := os.Getenv("YOUTUBE_API_KEY"); key != "" {
		cfg.Providers.YouTube.APIKey = key
	}
	if key := os.Getenv("GOOGLE_BOOKS_API_KEY"); key != "" {
		cfg.Providers.Books.APIKey = key
	}

	if err := expandCachePaths(&cfg.Cache); err != nil {
		return nil, err
	}

	cfg.Output.Verbose = verbose
	return cfg, nil
}

// expandCachePaths fills in the default cache locations under ~/.oerlens.
func expandCachePaths(cfg *model.CacheConfig) error {
	if cfg.Dir != "" && cfg.SQLitePath != "" {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("find home directory: %w", err)
	}

	if cfg.Dir == "" {
		cfg.Dir = filepath.Join(home, ".oerlens", "cache")
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(home, ".oerlens", "oerlens.db")
	}
	return nil
}

// buildEngine wires the evaluation engine from configuration. The caller
// owns the returned store and must Close it.
func buildEngine(cfg *model.Config) (*engine.Engine, *store.Store, error) {
	s, err := store.Open(cfg.Cache)
	if err != nil {
		return nil, nil, fmt.Errorf("open evaluation cache: %w", err)
	}

	registry := provider.NewRegistry(cfg)
	checker := newChecker(cfg.Connectivity)

	return engine.New(s, registry, checker), s, nil
}

// newChecker builds the connectivity snapshot source: a forced mode or a
// probe against a well-known endpoint.
func newChecker(cfg model.ConnectivityConfig) connectivity.Checker {
	switch cfg.Mode {
	case "online":
		return connectivity.Static(true)
	case "offline":
		return connectivity.Static(false)
	default:
		return connectivity.NewProber(cfg.ProbeURL, cfg.ProbeTimeout)
	}
}
