// Package covers caches provider cover images on disk.
package covers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Store downloads cover images into a thumbs directory, keyed by
// metadata provider id. Failures are reported, never fatal.
type Store struct {
	dir        string
	httpClient *http.Client
	log        *slog.Logger
}

// NewStore creates a cover store rooted at dir, creating it if needed.
func NewStore(dir string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create covers dir: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		dir:        dir,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.With("component", "covers"),
	}, nil
}

// Path returns the on-disk location for a provider id's cover.
func (s *Store) Path(providerID int) string {
	return filepath.Join(s.dir, fmt.Sprintf("anilist_%d.jpg", providerID))
}

// Ensure downloads the cover for providerID from url unless it is
// already cached. Returns the cached file path.
func (s *Store) Ensure(ctx context.Context, providerID int, url string) (string, error) {
	if providerID == 0 || url == "" {
		return "", fmt.Errorf("no cover reference")
	}
	dest := s.Path(providerID)
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download cover: unexpected status %d", resp.StatusCode)
	}

	tmp := dest + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create cover file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write cover file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("close cover file: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("finalize cover file: %w", err)
	}

	s.log.Debug("cover cached", "provider_id", providerID, "path", dest)
	return dest, nil
}
