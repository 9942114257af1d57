package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/xenon-nito/Plex-Taiga-Sync/internal/config"
	"github.com/xenon-nito/Plex-Taiga-Sync/internal/covers"
	"github.com/xenon-nito/Plex-Taiga-Sync/internal/engine"
	"github.com/xenon-nito/Plex-Taiga-Sync/internal/library"
	"github.com/xenon-nito/Plex-Taiga-Sync/internal/matchcache"
	"github.com/xenon-nito/Plex-Taiga-Sync/internal/migrations"
	"github.com/xenon-nito/Plex-Taiga-Sync/internal/player"
	"github.com/xenon-nito/Plex-Taiga-Sync/internal/plex"
	"github.com/xenon-nito/Plex-Taiga-Sync/internal/resolver"
	"github.com/xenon-nito/Plex-Taiga-Sync/pkg/anilist"
	"github.com/xenon-nito/Plex-Taiga-Sync/pkg/tvdb"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the sync loop",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon(configPath)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadConfig reads the config file and reports validation problems.
// Warnings are printed but do not fail startup.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	errs, warns := cfg.Validate()
	for _, msg := range warns {
		fmt.Fprintf(os.Stderr, "config: warning: %s\n", msg)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return cfg, nil
}

// openCache opens the match cache database and applies migrations.
func openCache(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// buildResolver wires the metadata providers from config.
func buildResolver(cfg *config.Config, logger *slog.Logger) *resolver.Resolver {
	var anilistOpts []anilist.Option
	if cfg.Metadata.AniListURL != "" {
		anilistOpts = append(anilistOpts, anilist.WithBaseURL(cfg.Metadata.AniListURL))
	}
	anilistOpts = append(anilistOpts, anilist.WithLogger(logger))
	primary := anilist.New(anilistOpts...)

	var secondary resolver.SecondaryProvider
	if cfg.Metadata.TVDBAPIKey != "" {
		secondary = tvdb.New(cfg.Metadata.TVDBAPIKey, tvdb.WithLogger(logger))
	}

	return resolver.New(primary, secondary, cfg.Metadata.Timeout, logger)
}

// libraryRoots uses the configured roots when set, otherwise asks the
// Plex server for the section locations.
func libraryRoots(ctx context.Context, cfg *config.Config, plexClient *plex.Client) ([]string, error) {
	if len(cfg.Library.Roots) > 0 {
		return cfg.Library.Roots, nil
	}
	roots, err := plexClient.LibraryRoots(ctx, cfg.Plex.Libraries)
	if err != nil {
		return nil, fmt.Errorf("discover library roots: %w", err)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("no usable library roots; set library.roots in the config")
	}
	return roots, nil
}

func runDaemon(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	db, err := openCache(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	plexClient := plex.NewClient(cfg.Plex.URL, cfg.Plex.Token, cfg.Plex.User, cfg.Plex.Libraries, logger)

	roots, err := libraryRoots(ctx, cfg, plexClient)
	if err != nil {
		return err
	}

	coverStore, err := covers.NewStore(cfg.Cache.CoversDir, logger)
	if err != nil {
		return fmt.Errorf("covers: %w", err)
	}

	eng := engine.New(
		plexClient,
		buildResolver(cfg, logger),
		matchcache.New(db, logger),
		library.NewMatcher(roots, logger),
		player.New(cfg.Player.Path, cfg.Player.Socket, logger),
		coverStore,
		cfg.Sync.PollInterval,
		logger,
	)

	logger.Info("plexsync starting",
		"plex", cfg.Plex.URL,
		"user", cfg.Plex.User,
		"libraries", cfg.Plex.Libraries,
		"roots", roots,
		"cache", cfg.Cache.Path,
		"tvdb", cfg.Metadata.TVDBAPIKey != "",
		"log_level", cfg.Log.Level,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return eng.Run(gctx)
	})
	return g.Wait()
}
