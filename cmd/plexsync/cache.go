package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/xenon-nito/Plex-Taiga-Sync/internal/matchcache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the persistent match cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached matches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, db, err := openCacheStore(configPath)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		entries, err := cache.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list cache: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("cache is empty")
			return nil
		}
		for _, e := range entries {
			path := e.Path
			if path == "" {
				path = "(metadata only)"
			}
			fmt.Printf("%-40s %s\n", e.Key, path)
		}
		return nil
	},
}

var cacheEvictCmd = &cobra.Command{
	Use:   "evict <key>",
	Short: "Remove a cache entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, db, err := openCacheStore(configPath)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := cache.Evict(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("evict: %w", err)
		}
		fmt.Printf("evicted %s\n", args[0])
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheEvictCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openCacheStore(configPath string) (*matchcache.Cache, *sql.DB, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := openCache(cfg.Cache.Path)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	return matchcache.New(db, logger), db, nil
}
