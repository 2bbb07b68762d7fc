package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oerlens/oerlens/internal/store"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the evaluation cache",
	Long: `Manage the persistent evaluation cache.

Cached reports never expire on their own; they are replaced when a URL is
re-evaluated online, or removed here.`,
}

var cacheDeleteCmd = &cobra.Command{
	Use:   "delete <url>",
	Short: "Remove the cached report for a URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		if err := s.Delete(args[0]); err != nil {
			return fmt.Errorf("delete cache entry: %w", err)
		}
		fmt.Printf("✓ Removed cached report for %s\n", args[0])
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		if err := s.Clear(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Println("✓ Cleared evaluation cache")
		return nil
	},
}

func openStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cacheBackend != "" {
		cfg.Cache.Backend = cacheBackend
	}

	s, err := store.Open(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("open evaluation cache: %w", err)
	}
	return s, nil
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheDeleteCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cacheCmd.PersistentFlags().StringVar(&cacheBackend, "cache-backend", "", "cache backend (disk, sqlite)")
}
