package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[plex]
url = "http://plex.local:32400"
token = "secret"
user = "bob"
libraries = ["Anime", "Anime Movies"]

[library]
roots = ["/mnt/anime"]

[metadata]
tvdb_api_key = "tvdb-key"

[player]
path = "/usr/local/bin/mpv"
socket = "/tmp/custom.sock"

[sync]
poll_interval = 5000000000

[cache]
path = "/var/lib/plexsync/cache.db"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://plex.local:32400", cfg.Plex.URL)
	assert.Equal(t, "secret", cfg.Plex.Token)
	assert.Equal(t, "bob", cfg.Plex.User)
	assert.Equal(t, []string{"Anime", "Anime Movies"}, cfg.Plex.Libraries)
	assert.Equal(t, []string{"/mnt/anime"}, cfg.Library.Roots)
	assert.Equal(t, "tvdb-key", cfg.Metadata.TVDBAPIKey)
	assert.Equal(t, "/usr/local/bin/mpv", cfg.Player.Path)
	assert.Equal(t, "/tmp/custom.sock", cfg.Player.Socket)
	assert.Equal(t, 5*time.Second, cfg.Sync.PollInterval)
	assert.Equal(t, "/var/lib/plexsync/cache.db", cfg.Cache.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[plex]
url = "http://plex.local:32400"
token = "secret"
user = "bob"
libraries = ["Anime"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mpv", cfg.Player.Path)
	assert.NotEmpty(t, cfg.Player.Socket)
	assert.Equal(t, 3*time.Second, cfg.Sync.PollInterval)
	assert.Equal(t, 6*time.Second, cfg.Metadata.Timeout)
	assert.Equal(t, "./data/plexsync.db", cfg.Cache.Path)
	assert.Equal(t, filepath.Join("./data", "thumbs"), cfg.Cache.CoversDir)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("PLEXSYNC_TEST_TOKEN", "from-env")

	path := writeConfig(t, `
[plex]
url = "http://plex.local:32400"
token = "${PLEXSYNC_TEST_TOKEN}"
user = "bob"
libraries = ["Anime"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Plex.Token)
}

func TestLoad_UnsetEnvVarLeftVerbatim(t *testing.T) {
	path := writeConfig(t, `
[plex]
url = "http://plex.local:32400"
token = "${PLEXSYNC_DOES_NOT_EXIST}"
user = "bob"
libraries = ["Anime"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "${PLEXSYNC_DOES_NOT_EXIST}", cfg.Plex.Token)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, `[plex`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Plex: PlexConfig{
				URL:       "http://plex.local:32400",
				Token:     "secret",
				User:      "bob",
				Libraries: []string{"Anime"},
			},
			Log: LogConfig{Level: "info"},
		}
	}

	t.Run("valid config", func(t *testing.T) {
		errs, warns := valid().Validate()
		assert.Empty(t, errs)
		assert.Empty(t, warns)
	})

	t.Run("missing plex fields", func(t *testing.T) {
		cfg := &Config{}
		errs, _ := cfg.Validate()
		assert.Contains(t, errs, "plex.url: required")
		assert.Contains(t, errs, "plex.token: required")
		assert.Contains(t, errs, "plex.user: required")
		assert.Contains(t, errs, "plex.libraries: at least one library section must be configured")
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := valid()
		cfg.Log.Level = "verbose"
		errs, _ := cfg.Validate()
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "log.level")
	})

	t.Run("nonexistent library root is a warning, not an error", func(t *testing.T) {
		cfg := valid()
		cfg.Library.Roots = []string{"/definitely/not/here"}
		errs, warns := cfg.Validate()
		assert.Empty(t, errs)
		require.Len(t, warns, 1)
		assert.Contains(t, warns[0], "library.roots")
	})
}
