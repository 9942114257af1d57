package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/xenon-nito/Plex-Taiga-Sync/internal/library"
	"github.com/xenon-nito/Plex-Taiga-Sync/internal/plex"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <title>",
	Short: "Dry-run title resolution against the local library",
	Long: `Resolve a title the way the sync loop would: query the metadata
providers for candidate names and report which library folder, if any,
they match. Nothing is written to the cache.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolve(cmd.Context(), configPath, args[0])
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(ctx context.Context, configPath, title string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	candidates, rec := buildResolver(cfg, logger).Resolve(ctx, title)

	fmt.Printf("Title:      %s\n", title)
	fmt.Printf("Normalized: %s\n", library.Normalize(title))
	fmt.Println("Candidates:")
	for _, c := range candidates {
		fmt.Printf("  %s\n", c)
	}
	if rec != nil {
		fmt.Printf("Metadata:   anilist %d (%s / %s)\n", rec.ID, rec.Romaji, rec.English)
	} else {
		fmt.Println("Metadata:   none (provider lookup failed or no match)")
	}

	plexClient := plex.NewClient(cfg.Plex.URL, cfg.Plex.Token, cfg.Plex.User, cfg.Plex.Libraries, logger)
	roots, err := libraryRoots(ctx, cfg, plexClient)
	if err != nil {
		return err
	}
	matcher := library.NewMatcher(roots, logger)
	if folder, ok := matcher.FindSeriesFolder(candidates); ok {
		fmt.Printf("Folder:     %s\n", folder)
	} else {
		fmt.Println("Folder:     no match")
	}
	return nil
}
