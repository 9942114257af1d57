// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Plex     PlexConfig     `toml:"plex"`
	Library  LibraryConfig  `toml:"library"`
	Metadata MetadataConfig `toml:"metadata"`
	Player   PlayerConfig   `toml:"player"`
	Sync     SyncConfig     `toml:"sync"`
	Cache    CacheConfig    `toml:"cache"`
	Log      LogConfig      `toml:"log"`
}

type PlexConfig struct {
	URL       string   `toml:"url"`
	Token     string   `toml:"token"`
	User      string   `toml:"user"`
	Libraries []string `toml:"libraries"`
}

type LibraryConfig struct {
	// Roots overrides server-reported section locations when set.
	Roots []string `toml:"roots"`
}

type MetadataConfig struct {
	AniListURL string        `toml:"anilist_url"`
	TVDBAPIKey string        `toml:"tvdb_api_key"`
	Timeout    time.Duration `toml:"timeout"`
}

type PlayerConfig struct {
	Path   string `toml:"path"`
	Socket string `toml:"socket"`
}

type SyncConfig struct {
	PollInterval time.Duration `toml:"poll_interval"`
}

type CacheConfig struct {
	Path      string `toml:"path"`
	CoversDir string `toml:"covers_dir"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Player.Path == "" {
		c.Player.Path = "mpv"
	}
	if c.Player.Socket == "" {
		c.Player.Socket = defaultSocketPath()
	}
	if c.Sync.PollInterval == 0 {
		c.Sync.PollInterval = 3 * time.Second
	}
	if c.Metadata.Timeout == 0 {
		c.Metadata.Timeout = 6 * time.Second
	}
	if c.Cache.Path == "" {
		c.Cache.Path = "./data/plexsync.db"
	}
	if c.Cache.CoversDir == "" {
		c.Cache.CoversDir = filepath.Join(filepath.Dir(c.Cache.Path), "thumbs")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func defaultSocketPath() string {
	return filepath.Join(os.TempDir(), "plexsync-mpv.sock")
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
