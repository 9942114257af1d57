// Package resolver turns a playback title into a set of normalized
// candidate names and, when the primary provider answers, a metadata
// record. Provider failures are expected and never fatal: the caller
// retries naturally on its next poll cycle.
package resolver

import (
	"context"
	"log/slog"
	"time"

	"github.com/xenon-nito/Plex-Taiga-Sync/internal/library"
	"github.com/xenon-nito/Plex-Taiga-Sync/pkg/anilist"
)

// Record is the metadata kept alongside a resolved match. Immutable
// once stored; only overwritten by a fresh successful resolution.
type Record struct {
	ID       int    `json:"id"`
	Romaji   string `json:"romaji"`
	English  string `json:"english"`
	Native   string `json:"native"`
	Synopsis string `json:"synopsis"`
	CoverURL string `json:"cover_url"`
}

// PrimaryProvider supplies title variants plus a full metadata record.
type PrimaryProvider interface {
	Search(ctx context.Context, title string) (*anilist.Media, error)
}

// SecondaryProvider supplies additional title candidates only.
type SecondaryProvider interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// Resolver queries the metadata providers with bounded timeouts.
type Resolver struct {
	primary   PrimaryProvider
	secondary SecondaryProvider // nil when not configured
	timeout   time.Duration
	log       *slog.Logger
}

// New creates a resolver. secondary may be nil.
func New(primary PrimaryProvider, secondary SecondaryProvider, timeout time.Duration, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 6 * time.Second
	}
	return &Resolver{
		primary:   primary,
		secondary: secondary,
		timeout:   timeout,
		log:       log.With("component", "resolver"),
	}
}

// Resolve returns the normalized candidate name set for a title and,
// when the primary provider succeeded, its metadata record. The
// candidate set always contains at least the normalized input title;
// the record is nil on primary failure. No retries here.
func (r *Resolver) Resolve(ctx context.Context, title string) ([]string, *Record) {
	seen := make(map[string]bool)
	var candidates []string
	add := func(name string) {
		for _, v := range library.Variants(name) {
			if !seen[v] {
				seen[v] = true
				candidates = append(candidates, v)
			}
		}
	}
	add(title)

	var rec *Record

	pctx, cancel := context.WithTimeout(ctx, r.timeout)
	media, err := r.primary.Search(pctx, title)
	cancel()
	switch {
	case err != nil:
		r.log.Warn("primary metadata lookup failed", "title", title, "error", err)
	default:
		for _, t := range media.Titles() {
			add(t)
		}
		rec = &Record{
			ID:       media.ID,
			Romaji:   media.Romaji,
			English:  media.English,
			Native:   media.Native,
			Synopsis: media.Synopsis,
			CoverURL: media.CoverURL,
		}
		r.log.Info("metadata resolved", "title", title, "id", rec.ID)
	}

	if r.secondary != nil {
		sctx, cancel := context.WithTimeout(ctx, r.timeout)
		names, err := r.secondary.Search(sctx, title)
		cancel()
		if err != nil {
			r.log.Debug("secondary title lookup failed", "title", title, "error", err)
		} else {
			for _, n := range names {
				add(n)
			}
		}
	}

	return candidates, rec
}
