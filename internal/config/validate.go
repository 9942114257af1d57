// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"os"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration. Fatal problems and non-fatal
// warnings are returned separately (both empty if valid).
func (c *Config) Validate() (errs, warns []string) {

	if c.Plex.URL == "" {
		errs = append(errs, "plex.url: required")
	} else if _, err := url.Parse(c.Plex.URL); err != nil {
		errs = append(errs, fmt.Sprintf("plex.url: invalid URL %q", c.Plex.URL))
	}
	if c.Plex.Token == "" {
		errs = append(errs, "plex.token: required")
	}
	if c.Plex.User == "" {
		errs = append(errs, "plex.user: required")
	}
	if len(c.Plex.Libraries) == 0 {
		errs = append(errs, "plex.libraries: at least one library section must be configured")
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if c.Sync.PollInterval < 0 {
		errs = append(errs, fmt.Sprintf("sync.poll_interval: must be positive, got %s", c.Sync.PollInterval))
	}

	// Library root warnings (non-fatal)
	for _, root := range c.Library.Roots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			warns = append(warns, fmt.Sprintf("library.roots: directory %q does not exist", root))
		}
	}

	return errs, warns
}
