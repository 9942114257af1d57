package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/xenon-nito/Plex-Taiga-Sync/internal/engine/mocks"
	"github.com/xenon-nito/Plex-Taiga-Sync/internal/matchcache"
	"github.com/xenon-nito/Plex-Taiga-Sync/internal/plex"
	"github.com/xenon-nito/Plex-Taiga-Sync/internal/resolver"
)

type testMocks struct {
	sessions *mocks.MockSessionSource
	resolver *mocks.MockMetadataResolver
	cache    *mocks.MockMatchStore
	finder   *mocks.MockLibraryFinder
	player   *mocks.MockPlayer
	covers   *mocks.MockCoverFetcher
}

func newTestEngine(t *testing.T) (*Engine, *testMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &testMocks{
		sessions: mocks.NewMockSessionSource(ctrl),
		resolver: mocks.NewMockMetadataResolver(ctrl),
		cache:    mocks.NewMockMatchStore(ctrl),
		finder:   mocks.NewMockLibraryFinder(ctrl),
		player:   mocks.NewMockPlayer(ctrl),
		covers:   nil,
	}
	eng := New(m.sessions, m.resolver, m.cache, m.finder, m.player, nil, time.Second, nil)
	return eng, m
}

func narutoSession() *plex.Session {
	return &plex.Session{
		GUID:     "plex://episode/abc123",
		Title:    "Naruto",
		Season:   1,
		Episode:  1,
		Position: 95.5,
		Paused:   false,
		User:     "bob",
		Library:  "Anime",
	}
}

var narutoKeys = []string{"id:plex://episode/abc123", "title:naruto"}

func TestEngine_Tick_NoSessionStopsPlayer(t *testing.T) {
	eng, m := newTestEngine(t)

	m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(nil, nil)
	m.player.EXPECT().IsAlive().Return(true)
	m.player.EXPECT().Stop()

	eng.Tick(context.Background())
	assert.Equal(t, StatusIdle, eng.Status())
}

func TestEngine_Tick_NoSessionPlayerAlreadyDown(t *testing.T) {
	eng, m := newTestEngine(t)

	m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(nil, nil)
	m.player.EXPECT().IsAlive().Return(false)

	eng.Tick(context.Background())
	assert.Equal(t, StatusIdle, eng.Status())
}

func TestEngine_Tick_SessionErrorLeavesPlayerAlone(t *testing.T) {
	eng, m := newTestEngine(t)

	// Transient failure: no player, cache or resolver interaction.
	m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(nil, errors.New("connection refused"))

	eng.Tick(context.Background())
}

func TestEngine_Tick_ColdStartLaunch(t *testing.T) {
	eng, m := newTestEngine(t)
	sess := narutoSession()
	rec := &resolver.Record{ID: 20, Romaji: "Naruto"}

	m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(sess, nil)

	// Cache cold: both keys miss, then the resolver runs once and its
	// record is persisted before any file is located.
	m.cache.EXPECT().Lookup(gomock.Any(), narutoKeys[0]).Return(matchcache.Entry{}, false)
	m.cache.EXPECT().Lookup(gomock.Any(), narutoKeys[1]).Return(matchcache.Entry{}, false)
	m.resolver.EXPECT().Resolve(gomock.Any(), "Naruto").Return([]string{"naruto"}, rec).Times(1)
	m.cache.EXPECT().Store(gomock.Any(), narutoKeys, matchcache.Entry{Record: rec}).Return(nil)

	// Local file found and played.
	m.finder.EXPECT().FindSeriesFolder([]string{"naruto"}).Return("/lib/Naruto", true)
	m.cache.EXPECT().Store(gomock.Any(), narutoKeys, matchcache.Entry{Path: "/lib/Naruto", Record: rec}).Return(nil)
	m.finder.EXPECT().FindEpisodeFile("/lib/Naruto", 1, 1).Return("/lib/Naruto/S01E01.mkv", true)

	gomock.InOrder(
		m.player.EXPECT().IsAlive().Return(false),
		m.player.EXPECT().Stop(),
		m.player.EXPECT().Launch("/lib/Naruto/S01E01.mkv").Return(nil),
		m.player.EXPECT().IsAlive().Return(true).Times(2),
	)
	m.player.EXPECT().Position().Return(sess.Position, nil)

	eng.Tick(context.Background())
	assert.Equal(t, StatusSyncing, eng.Status())
}

func TestEngine_Tick_CacheHitSkipsResolver(t *testing.T) {
	eng, m := newTestEngine(t)
	sess := narutoSession()
	cached := matchcache.Entry{
		Key:    narutoKeys[0],
		Path:   "/lib/Naruto",
		Record: &resolver.Record{ID: 20},
	}

	m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(sess, nil)
	m.cache.EXPECT().Lookup(gomock.Any(), narutoKeys[0]).Return(cached, true)

	// No resolver call and no folder scan: the cached path goes straight
	// to the episode search.
	m.finder.EXPECT().FindEpisodeFile("/lib/Naruto", 1, 1).Return("/lib/Naruto/S01E01.mkv", true)

	gomock.InOrder(
		m.player.EXPECT().IsAlive().Return(false),
		m.player.EXPECT().Stop(),
		m.player.EXPECT().Launch("/lib/Naruto/S01E01.mkv").Return(nil),
		m.player.EXPECT().IsAlive().Return(true).Times(2),
	)
	m.player.EXPECT().Position().Return(sess.Position, nil)

	eng.Tick(context.Background())
}

func TestEngine_Tick_MetadataOnlyCacheEntryResolvesForPath(t *testing.T) {
	eng, m := newTestEngine(t)
	sess := narutoSession()
	rec := &resolver.Record{ID: 20}

	m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(sess, nil)
	// Metadata was cached on an earlier cycle, before the folder existed.
	m.cache.EXPECT().Lookup(gomock.Any(), narutoKeys[0]).Return(matchcache.Entry{Record: rec}, true)

	// The resolver must run again to rebuild the candidate set.
	m.resolver.EXPECT().Resolve(gomock.Any(), "Naruto").Return([]string{"naruto"}, rec).Times(1)
	m.finder.EXPECT().FindSeriesFolder([]string{"naruto"}).Return("/lib/Naruto", true)
	m.cache.EXPECT().Store(gomock.Any(), narutoKeys, matchcache.Entry{Path: "/lib/Naruto", Record: rec}).Return(nil)
	m.finder.EXPECT().FindEpisodeFile("/lib/Naruto", 1, 1).Return("/lib/Naruto/S01E01.mkv", true)

	gomock.InOrder(
		m.player.EXPECT().IsAlive().Return(false),
		m.player.EXPECT().Stop(),
		m.player.EXPECT().Launch("/lib/Naruto/S01E01.mkv").Return(nil),
		m.player.EXPECT().IsAlive().Return(true).Times(2),
	)
	m.player.EXPECT().Position().Return(sess.Position, nil)

	eng.Tick(context.Background())
}

func TestEngine_Tick_PathOnlyCacheEntryBackfillsMetadata(t *testing.T) {
	eng, m := newTestEngine(t)
	sess := narutoSession()
	rec := &resolver.Record{ID: 20, Romaji: "Naruto"}

	// A folder was matched while the provider was down: the cached
	// entry has a path but no record. Playback proceeds from the path,
	// and the resolver keeps running each cycle until a record exists
	// and is merged back under both keys.
	pathOnly := matchcache.Entry{Path: "/lib/Naruto"}
	m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(sess, nil).Times(2)
	m.cache.EXPECT().Lookup(gomock.Any(), narutoKeys[0]).Return(pathOnly, true).Times(2)

	gomock.InOrder(
		m.resolver.EXPECT().Resolve(gomock.Any(), "Naruto").Return([]string{"naruto"}, nil),
		m.resolver.EXPECT().Resolve(gomock.Any(), "Naruto").Return([]string{"naruto"}, rec),
	)
	m.cache.EXPECT().Store(gomock.Any(), narutoKeys, matchcache.Entry{Path: "/lib/Naruto", Record: rec}).Return(nil)

	m.finder.EXPECT().FindEpisodeFile("/lib/Naruto", 1, 1).Return("/lib/Naruto/S01E01.mkv", true)
	gomock.InOrder(
		m.player.EXPECT().IsAlive().Return(false),
		m.player.EXPECT().Stop(),
		m.player.EXPECT().Launch("/lib/Naruto/S01E01.mkv").Return(nil),
		m.player.EXPECT().IsAlive().Return(true).AnyTimes(),
	)
	m.player.EXPECT().Position().Return(sess.Position, nil).Times(2)

	ctx := context.Background()
	eng.Tick(ctx)
	eng.Tick(ctx)
}

func TestEngine_Tick_EpisodeNotFound(t *testing.T) {
	eng, m := newTestEngine(t)
	sess := narutoSession()
	cached := matchcache.Entry{Path: "/lib/Naruto", Record: &resolver.Record{ID: 20}}

	m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(sess, nil)
	m.cache.EXPECT().Lookup(gomock.Any(), narutoKeys[0]).Return(cached, true)
	m.finder.EXPECT().FindEpisodeFile("/lib/Naruto", 1, 1).Return("", false)

	// Not found: no launch, and the dead player skips drift and pause.
	m.player.EXPECT().IsAlive().Return(false).Times(3)
	m.player.EXPECT().Stop()

	eng.Tick(context.Background())
	// Retried next cycle rather than remembered as playing.
	assert.Equal(t, StatusSyncing, eng.Status())
}

func TestEngine_Tick_LaunchFailureRetriesNextCycle(t *testing.T) {
	eng, m := newTestEngine(t)
	sess := narutoSession()
	cached := matchcache.Entry{Path: "/lib/Naruto", Record: &resolver.Record{ID: 20}}

	m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(sess, nil).Times(2)
	m.cache.EXPECT().Lookup(gomock.Any(), narutoKeys[0]).Return(cached, true).Times(2)
	m.finder.EXPECT().FindEpisodeFile("/lib/Naruto", 1, 1).Return("/lib/Naruto/S01E01.mkv", true).Times(2)

	// First launch fails, so the playback id is not remembered and the
	// second cycle tries again.
	m.player.EXPECT().IsAlive().Return(false).AnyTimes()
	m.player.EXPECT().Stop().Times(2)
	gomock.InOrder(
		m.player.EXPECT().Launch("/lib/Naruto/S01E01.mkv").Return(errors.New("exec failed")),
		m.player.EXPECT().Launch("/lib/Naruto/S01E01.mkv").Return(nil),
	)

	ctx := context.Background()
	eng.Tick(ctx)
	eng.Tick(ctx)
}

func TestEngine_Tick_SameSessionNoRelaunch(t *testing.T) {
	eng, m := newTestEngine(t)
	sess := narutoSession()
	cached := matchcache.Entry{Path: "/lib/Naruto", Record: &resolver.Record{ID: 20}}

	m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(sess, nil).Times(2)
	m.cache.EXPECT().Lookup(gomock.Any(), narutoKeys[0]).Return(cached, true).Times(2)

	// Launch happens once; the second cycle sees a live player with the
	// same playback id and leaves it alone.
	m.finder.EXPECT().FindEpisodeFile("/lib/Naruto", 1, 1).Return("/lib/Naruto/S01E01.mkv", true).Times(1)
	gomock.InOrder(
		m.player.EXPECT().IsAlive().Return(false),
		m.player.EXPECT().Stop(),
		m.player.EXPECT().Launch("/lib/Naruto/S01E01.mkv").Return(nil),
		m.player.EXPECT().IsAlive().Return(true).AnyTimes(),
	)
	m.player.EXPECT().Position().Return(sess.Position, nil).Times(2)

	ctx := context.Background()
	eng.Tick(ctx)
	eng.Tick(ctx)
}

func TestEngine_Tick_NewGUIDRelaunches(t *testing.T) {
	eng, m := newTestEngine(t)
	first := narutoSession()
	second := narutoSession()
	second.GUID = "plex://episode/def456"
	second.Episode = 2

	entry := matchcache.Entry{Path: "/lib/Naruto", Record: &resolver.Record{ID: 20}}
	m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(first, nil)
	m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(second, nil)
	m.cache.EXPECT().Lookup(gomock.Any(), narutoKeys[0]).Return(entry, true)
	m.cache.EXPECT().Lookup(gomock.Any(), "id:plex://episode/def456").Return(entry, true)

	m.finder.EXPECT().FindEpisodeFile("/lib/Naruto", 1, 1).Return("/lib/Naruto/S01E01.mkv", true)
	m.finder.EXPECT().FindEpisodeFile("/lib/Naruto", 1, 2).Return("/lib/Naruto/S01E02.mkv", true)

	gomock.InOrder(
		m.player.EXPECT().IsAlive().Return(false),
		m.player.EXPECT().Stop(),
		m.player.EXPECT().Launch("/lib/Naruto/S01E01.mkv").Return(nil),
		m.player.EXPECT().IsAlive().Return(true).Times(3),
		// Second cycle: alive but the playback id changed.
		m.player.EXPECT().Stop(),
		m.player.EXPECT().Launch("/lib/Naruto/S01E02.mkv").Return(nil),
		m.player.EXPECT().IsAlive().Return(true).AnyTimes(),
	)
	m.player.EXPECT().Position().Return(first.Position, nil).Times(2)

	ctx := context.Background()
	eng.Tick(ctx)
	eng.Tick(ctx)
}

func TestEngine_DriftCorrection(t *testing.T) {
	testCases := []struct {
		name       string
		local      float64
		remote     float64
		expectSeek bool
	}{
		{"in sync", 95.5, 95.5, false},
		{"small drift", 92.0, 95.5, false},
		{"exactly at tolerance", 100.0, 95.0, false},
		{"just over tolerance", 100.1, 95.0, true},
		{"player ahead", 200.0, 95.0, true},
		{"player behind", 10.0, 95.0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			eng, m := newTestEngine(t)
			sess := narutoSession()
			sess.Position = tc.remote

			m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(sess, nil)
			m.cache.EXPECT().Lookup(gomock.Any(), narutoKeys[0]).
				Return(matchcache.Entry{Path: "/lib/Naruto", Record: &resolver.Record{ID: 20}}, true)
			m.finder.EXPECT().FindEpisodeFile("/lib/Naruto", 1, 1).
				Return("/lib/Naruto/S01E01.mkv", true)

			gomock.InOrder(
				m.player.EXPECT().IsAlive().Return(false),
				m.player.EXPECT().Stop(),
				m.player.EXPECT().Launch("/lib/Naruto/S01E01.mkv").Return(nil),
				m.player.EXPECT().IsAlive().Return(true).Times(2),
			)
			m.player.EXPECT().Position().Return(tc.local, nil)
			if tc.expectSeek {
				m.player.EXPECT().Seek(tc.remote).Return(nil)
			}

			eng.Tick(context.Background())
		})
	}
}

func TestEngine_DriftSkippedWhilePaused(t *testing.T) {
	eng, m := newTestEngine(t)
	sess := narutoSession()
	sess.Paused = true

	m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(sess, nil)
	m.cache.EXPECT().Lookup(gomock.Any(), narutoKeys[0]).
		Return(matchcache.Entry{Path: "/lib/Naruto", Record: &resolver.Record{ID: 20}}, true)
	m.finder.EXPECT().FindEpisodeFile("/lib/Naruto", 1, 1).
		Return("/lib/Naruto/S01E01.mkv", true)

	gomock.InOrder(
		m.player.EXPECT().IsAlive().Return(false),
		m.player.EXPECT().Stop(),
		m.player.EXPECT().Launch("/lib/Naruto/S01E01.mkv").Return(nil),
		m.player.EXPECT().IsAlive().Return(true).Times(2),
	)
	// No Position query while paused; the pause edge is mirrored.
	m.player.EXPECT().SetPaused(true).Return(nil)

	eng.Tick(context.Background())
}

func TestEngine_PauseMirroredOnEdgeOnly(t *testing.T) {
	eng, m := newTestEngine(t)

	// Remote pause flag over five cycles: play, pause, pause, play, play.
	flags := []bool{false, true, true, false, false}
	for _, paused := range flags {
		sess := narutoSession()
		sess.Paused = paused
		m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(sess, nil)
	}
	m.cache.EXPECT().Lookup(gomock.Any(), narutoKeys[0]).
		Return(matchcache.Entry{Path: "/lib/Naruto", Record: &resolver.Record{ID: 20}}, true).Times(5)
	m.finder.EXPECT().FindEpisodeFile("/lib/Naruto", 1, 1).
		Return("/lib/Naruto/S01E01.mkv", true).Times(1)

	gomock.InOrder(
		m.player.EXPECT().IsAlive().Return(false),
		m.player.EXPECT().Stop(),
		m.player.EXPECT().Launch("/lib/Naruto/S01E01.mkv").Return(nil),
		m.player.EXPECT().IsAlive().Return(true).AnyTimes(),
	)
	m.player.EXPECT().Position().Return(95.5, nil).AnyTimes()

	// Exactly one command per edge: pause once, resume once.
	gomock.InOrder(
		m.player.EXPECT().SetPaused(true).Return(nil).Times(1),
		m.player.EXPECT().SetPaused(false).Return(nil).Times(1),
	)

	ctx := context.Background()
	for range flags {
		eng.Tick(ctx)
	}
}

func TestEngine_CoverFetchedWithMetadata(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := &testMocks{
		sessions: mocks.NewMockSessionSource(ctrl),
		resolver: mocks.NewMockMetadataResolver(ctrl),
		cache:    mocks.NewMockMatchStore(ctrl),
		finder:   mocks.NewMockLibraryFinder(ctrl),
		player:   mocks.NewMockPlayer(ctrl),
		covers:   mocks.NewMockCoverFetcher(ctrl),
	}
	eng := New(m.sessions, m.resolver, m.cache, m.finder, m.player, m.covers, time.Second, nil)

	sess := narutoSession()
	rec := &resolver.Record{ID: 20, CoverURL: "https://img.example/20.jpg"}

	m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(sess, nil)
	m.cache.EXPECT().Lookup(gomock.Any(), narutoKeys[0]).Return(matchcache.Entry{}, false)
	m.cache.EXPECT().Lookup(gomock.Any(), narutoKeys[1]).Return(matchcache.Entry{}, false)
	m.resolver.EXPECT().Resolve(gomock.Any(), "Naruto").Return([]string{"naruto"}, rec)
	m.cache.EXPECT().Store(gomock.Any(), narutoKeys, gomock.Any()).Return(nil).Times(2)
	m.covers.EXPECT().Ensure(gomock.Any(), 20, "https://img.example/20.jpg").Return("/thumbs/anilist_20.jpg", nil)

	m.finder.EXPECT().FindSeriesFolder([]string{"naruto"}).Return("/lib/Naruto", true)
	m.finder.EXPECT().FindEpisodeFile("/lib/Naruto", 1, 1).Return("/lib/Naruto/S01E01.mkv", true)

	gomock.InOrder(
		m.player.EXPECT().IsAlive().Return(false),
		m.player.EXPECT().Stop(),
		m.player.EXPECT().Launch("/lib/Naruto/S01E01.mkv").Return(nil),
		m.player.EXPECT().IsAlive().Return(true).Times(2),
	)
	m.player.EXPECT().Position().Return(sess.Position, nil)

	eng.Tick(context.Background())
}

func TestEngine_Run_StopsOnCancel(t *testing.T) {
	eng, m := newTestEngine(t)

	m.sessions.EXPECT().ActiveSession(gomock.Any()).Return(nil, nil).AnyTimes()
	m.player.EXPECT().IsAlive().Return(false).AnyTimes()
	m.player.EXPECT().Stop().MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- eng.Run(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.Equal(t, StatusStopped, eng.Status())
}

func TestEngine_SafeTick_RecoversPanic(t *testing.T) {
	eng, m := newTestEngine(t)

	m.sessions.EXPECT().ActiveSession(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (*plex.Session, error) {
			panic("boom")
		})

	// Must not propagate.
	eng.safeTick(context.Background())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "syncing", StatusSyncing.String())
	assert.Equal(t, "stopped", StatusStopped.String())
}
