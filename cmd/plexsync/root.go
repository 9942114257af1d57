package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "plexsync",
	Short: "Mirror Plex playback onto a local mpv player",
	Long: `plexsync - mirror Plex playback onto a local mpv player

Watches the configured Plex server for an active session, resolves the
playing title to a file in your local library, and keeps a local mpv
instance converged on the remote position and pause state.

Run 'plexsync run' to start the sync loop.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to config file")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("plexsync {{.Version}}\n")
}
