package library

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbollon/go-edlib"
)

// videoExtensions are the recognized episode file extensions.
var videoExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".avi":  true,
	".m4v":  true,
	".ts":   true,
	".webm": true,
}

// Matcher scans a fixed, ordered list of library root directories.
type Matcher struct {
	roots []string
	log   *slog.Logger
}

// NewMatcher creates a matcher over the given root directories. The
// roots are searched in the given order and are assumed to exist.
func NewMatcher(roots []string, log *slog.Logger) *Matcher {
	if log == nil {
		log = slog.Default()
	}
	return &Matcher{roots: roots, log: log.With("component", "matcher")}
}

// FindSeriesFolder returns the first directory entry across the roots
// whose normalized name is equivalent to any candidate. Roots are
// visited in configured order; entries in whatever order the
// filesystem yields. There is no ranking: the first equivalent entry
// wins. An unreadable root is logged and skipped.
func (m *Matcher) FindSeriesFolder(candidates []string) (string, bool) {
	for _, root := range m.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			m.log.Warn("cannot list library root, skipping", "root", root, "error", err)
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			name := Normalize(entry.Name())
			for _, cand := range candidates {
				if Equivalent(name, cand) {
					full := filepath.Join(root, entry.Name())
					m.log.Info("matched series folder", "folder", entry.Name(), "candidate", cand)
					return full, true
				}
			}
		}
	}

	if suggestion, score := m.closestFolder(candidates); suggestion != "" {
		m.log.Debug("no equivalent folder; closest by similarity",
			"folder", suggestion, "score", fmt.Sprintf("%.2f", score))
	}
	return "", false
}

// closestFolder returns the directory entry nearest to any candidate by
// Jaro-Winkler similarity. Diagnostic only; never used for matching.
func (m *Matcher) closestFolder(candidates []string) (string, float64) {
	var bestName string
	var bestScore float64
	for _, root := range m.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			name := Normalize(entry.Name())
			for _, cand := range candidates {
				score := float64(edlib.JaroWinklerSimilarity(name, cand))
				if score > bestScore {
					bestScore = score
					bestName = entry.Name()
				}
			}
		}
	}
	if bestScore < 0.7 {
		return "", 0
	}
	return bestName, bestScore
}

// FindEpisodeFile walks the matched folder recursively and returns the
// first video file whose lowercased name contains the zero-padded
// s<SS>e<EE> pattern or the unpadded <season>x<episode> pattern.
//
// The unpadded pattern can false-positive on numeric prefixes ("1x1"
// also matches "1x10"). Known limitation, kept deliberately.
func (m *Matcher) FindEpisodeFile(folder string, season, episode int) (string, bool) {
	if season < 1 {
		season = 1
	}
	if episode < 1 {
		episode = 1
	}
	padded := fmt.Sprintf("s%02de%02d", season, episode)
	unpadded := fmt.Sprintf("%dx%d", season, episode)

	var found string
	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			m.log.Warn("cannot read directory during episode scan", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		low := strings.ToLower(d.Name())
		if !videoExtensions[filepath.Ext(low)] {
			return nil
		}
		if strings.Contains(low, padded) || strings.Contains(low, unpadded) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil || found == "" {
		return "", false
	}
	m.log.Info("matched episode file", "file", found, "season", season, "episode", episode)
	return found, true
}
