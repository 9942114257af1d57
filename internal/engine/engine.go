// Package engine drives the synchronization loop: it polls the remote
// session source, resolves titles to local files through the cache,
// resolver and matcher, and keeps the local player converged on the
// remote position and pause state. Any failure inside a cycle is
// logged and retried on the next poll; only context cancellation ends
// the loop.
package engine

import (
	"context"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/xenon-nito/Plex-Taiga-Sync/internal/library"
	"github.com/xenon-nito/Plex-Taiga-Sync/internal/matchcache"
	"github.com/xenon-nito/Plex-Taiga-Sync/internal/plex"
	"github.com/xenon-nito/Plex-Taiga-Sync/internal/resolver"
)

//go:generate mockgen -source=engine.go -destination=mocks/mocks.go -package=mocks

// driftTolerance is the maximum position difference, in seconds, that
// goes uncorrected. Strictly greater-than: a delta of exactly 5 does
// not trigger a seek.
const driftTolerance = 5.0

// SessionSource reports the active remote playback session, nil when
// there is none.
type SessionSource interface {
	ActiveSession(ctx context.Context) (*plex.Session, error)
}

// MetadataResolver builds the candidate name set for a title.
type MetadataResolver interface {
	Resolve(ctx context.Context, title string) ([]string, *resolver.Record)
}

// MatchStore is the persistent match cache.
type MatchStore interface {
	Lookup(ctx context.Context, key string) (matchcache.Entry, bool)
	Store(ctx context.Context, keys []string, entry matchcache.Entry) error
}

// LibraryFinder locates series folders and episode files on disk.
type LibraryFinder interface {
	FindSeriesFolder(candidates []string) (string, bool)
	FindEpisodeFile(folder string, season, episode int) (string, bool)
}

// Player controls the local player process and its command channel.
type Player interface {
	Launch(path string) error
	Stop()
	IsAlive() bool
	Position() (float64, error)
	Seek(seconds float64) error
	SetPaused(paused bool) error
}

// CoverFetcher caches cover images; optional.
type CoverFetcher interface {
	Ensure(ctx context.Context, providerID int, url string) (string, error)
}

// Status is the coarse user-visible state of the loop.
type Status int32

const (
	StatusIdle Status = iota
	StatusSyncing
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusSyncing:
		return "syncing"
	case StatusStopped:
		return "stopped"
	default:
		return "idle"
	}
}

// Engine owns all mutable sync state: the remembered playback
// identifier, the remembered pause flag, and the player. Everything is
// touched only from the loop goroutine; Status is safe to read from
// anywhere.
type Engine struct {
	sessions SessionSource
	resolver MetadataResolver
	cache    MatchStore
	finder   LibraryFinder
	player   Player
	covers   CoverFetcher // nil disables cover caching
	interval time.Duration
	log      *slog.Logger

	lastGUID  string
	wasPaused bool
	status    atomic.Int32
}

// New creates an engine. covers may be nil.
func New(sessions SessionSource, res MetadataResolver, cache MatchStore, finder LibraryFinder, player Player, covers CoverFetcher, interval time.Duration, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Engine{
		sessions: sessions,
		resolver: res,
		cache:    cache,
		finder:   finder,
		player:   player,
		covers:   covers,
		interval: interval,
		log:      log.With("component", "engine"),
	}
}

// Status returns the current loop status.
func (e *Engine) Status() Status {
	return Status(e.status.Load())
}

// Run executes the loop until ctx is canceled, sleeping the poll
// interval after every cycle regardless of outcome. The player is
// stopped on the way out; external stop requests must route through
// ctx cancellation rather than touching the player concurrently.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info("sync started", "interval", e.interval)
	defer func() {
		e.player.Stop()
		e.status.Store(int32(StatusStopped))
		e.log.Info("sync stopped")
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}
		e.safeTick(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(e.interval):
		}
	}
}

// safeTick confines a panicking cycle; the loop itself never dies.
func (e *Engine) safeTick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("unexpected error in sync cycle", "panic", r)
		}
	}()
	e.Tick(ctx)
}

// Tick runs exactly one reconciliation cycle.
func (e *Engine) Tick(ctx context.Context) {
	sess, err := e.sessions.ActiveSession(ctx)
	if err != nil {
		// Transient source failure: leave the player alone, retry
		// next cycle.
		e.log.Warn("session query failed", "error", err)
		return
	}

	if sess == nil {
		if e.player.IsAlive() {
			e.player.Stop()
		}
		e.lastGUID = ""
		e.status.Store(int32(StatusIdle))
		return
	}

	e.status.Store(int32(StatusSyncing))
	e.log.Debug("active session",
		"title", sess.Title, "season", sess.Season, "episode", sess.Episode,
		"position", sess.Position, "paused", sess.Paused)

	entry, candidates := e.resolveMetadata(ctx, sess)

	if !e.player.IsAlive() || sess.GUID != e.lastGUID {
		e.player.Stop()
		if path, ok := e.locateEpisode(ctx, sess, entry, candidates); !ok {
			e.log.Warn("local episode not found",
				"title", sess.Title, "season", sess.Season, "episode", sess.Episode)
		} else if err := e.player.Launch(path); err != nil {
			e.log.Error("player launch failed", "file", path, "error", err)
		} else {
			e.lastGUID = sess.GUID
		}
	}

	e.correctDrift(sess)
	e.mirrorPause(sess)
}

// resolveMetadata implements the cache-first metadata step: lookup by
// identifier, then by normalized title. A hit without a metadata
// record does not settle the question: a path can be cached while the
// provider is down, and the record is re-fetched on later cycles until
// it exists. A fresh record is merged into the entry, keeping its
// path, and persisted before any file is located. Returns the cache
// entry (possibly empty) and, when the resolver ran, the candidate set
// it produced.
func (e *Engine) resolveMetadata(ctx context.Context, sess *plex.Session) (matchcache.Entry, []string) {
	idKey := matchcache.IDKey(sess.GUID)
	titleKey := matchcache.TitleKey(library.Normalize(sess.Title))

	entry, hit := e.cache.Lookup(ctx, idKey)
	if !hit {
		entry, hit = e.cache.Lookup(ctx, titleKey)
	}
	if hit && entry.Record != nil {
		return entry, nil
	}

	candidates, rec := e.resolver.Resolve(ctx, sess.Title)
	if rec != nil {
		entry.Record = rec
		if err := e.cache.Store(ctx, []string{idKey, titleKey}, entry); err != nil {
			e.log.Warn("cache write failed", "error", err)
		}
		e.fetchCover(ctx, rec)
	}
	return entry, candidates
}

// locateEpisode finds the episode file for the session, short-
// circuiting the folder scan on a cache hit. A fresh folder match is
// persisted under both keys.
func (e *Engine) locateEpisode(ctx context.Context, sess *plex.Session, entry matchcache.Entry, candidates []string) (string, bool) {
	folder := entry.Path
	if folder == "" {
		if candidates == nil {
			// Cache held metadata but no path; the resolver has not
			// run this cycle yet.
			var rec *resolver.Record
			candidates, rec = e.resolver.Resolve(ctx, sess.Title)
			if entry.Record == nil {
				entry.Record = rec
			}
		}
		var ok bool
		folder, ok = e.finder.FindSeriesFolder(candidates)
		if !ok {
			return "", false
		}
		entry.Path = folder
		keys := []string{
			matchcache.IDKey(sess.GUID),
			matchcache.TitleKey(library.Normalize(sess.Title)),
		}
		if err := e.cache.Store(ctx, keys, entry); err != nil {
			e.log.Warn("cache write failed", "error", err)
		}
	}

	return e.finder.FindEpisodeFile(folder, sess.Season, sess.Episode)
}

// correctDrift seeks the player to the remote position when the gap
// exceeds the tolerance. Skipped while the remote session is paused or
// the player position is unknown.
func (e *Engine) correctDrift(sess *plex.Session) {
	if !e.player.IsAlive() || sess.Paused {
		return
	}
	local, err := e.player.Position()
	if err != nil {
		e.log.Debug("player position unknown", "error", err)
		return
	}
	delta := math.Abs(local - sess.Position)
	if delta > driftTolerance {
		if err := e.player.Seek(sess.Position); err != nil {
			e.log.Debug("seek failed", "error", err)
			return
		}
		e.log.Info("corrected drift", "delta_seconds", int(delta), "position", sess.Position)
	}
}

// mirrorPause issues exactly one pause/resume command per flag edge
// and remembers the new flag. Steady state issues nothing.
func (e *Engine) mirrorPause(sess *plex.Session) {
	if !e.player.IsAlive() || sess.Paused == e.wasPaused {
		return
	}
	if err := e.player.SetPaused(sess.Paused); err != nil {
		e.log.Debug("pause command failed", "error", err)
	}
	e.wasPaused = sess.Paused
	if sess.Paused {
		e.log.Info("paused player to match remote")
	} else {
		e.log.Info("resumed player to match remote")
	}
}

func (e *Engine) fetchCover(ctx context.Context, rec *resolver.Record) {
	if e.covers == nil || rec == nil || rec.CoverURL == "" {
		return
	}
	if _, err := e.covers.Ensure(ctx, rec.ID, rec.CoverURL); err != nil {
		e.log.Debug("cover fetch failed", "provider_id", rec.ID, "error", err)
	}
}
