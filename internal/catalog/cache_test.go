// ABOUTME: Tests for the route cache freshness window and stale fallback
// ABOUTME: Uses a fake clock and a counting handler to observe refresh behavior

package catalog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/harper/rsshub-mcp/internal/catalog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCacheRoutes_FreshSnapshotSkipsNetwork(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(namespacePayload))
	}))
	defer server.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	cache := catalog.NewCache(catalog.NewClient(server.URL, server.Client()), 24*time.Hour, clock, discardLogger())

	for i := 0; i < 3; i++ {
		routes, err := cache.Routes(context.Background())
		if err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
		if len(routes) != 3 {
			t.Fatalf("expected 3 routes, got %d", len(routes))
		}
	}

	if got := hits.Load(); got != 1 {
		t.Errorf("expected exactly 1 upstream fetch for fresh cache, got %d", got)
	}
}

func TestCacheRoutes_RefreshAfterTTL(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(namespacePayload))
	}))
	defer server.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	cache := catalog.NewCache(catalog.NewClient(server.URL, server.Client()), 24*time.Hour, clock, discardLogger())

	if _, err := cache.Routes(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now = now.Add(24*time.Hour + time.Minute)
	if _, err := cache.Routes(context.Background()); err != nil {
		t.Fatalf("unexpected error after expiry: %v", err)
	}

	if got := hits.Load(); got != 2 {
		t.Errorf("expected a second upstream fetch after TTL expiry, got %d", got)
	}
}

func TestCacheRoutes_StaleFallbackOnRefreshFailure(t *testing.T) {
	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(namespacePayload))
	}))
	defer server.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	cache := catalog.NewCache(catalog.NewClient(server.URL, server.Client()), 24*time.Hour, clock, discardLogger())

	first, err := cache.Routes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fail.Store(true)
	now = now.Add(48 * time.Hour)

	stale, err := cache.Routes(context.Background())
	if err != nil {
		t.Fatalf("expected stale fallback instead of error, got %v", err)
	}
	if len(stale) != len(first) {
		t.Errorf("expected stale snapshot with %d routes, got %d", len(first), len(stale))
	}
}

func TestCacheRoutes_NoSnapshotPropagatesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	clock := func() time.Time { return time.Now() }
	cache := catalog.NewCache(catalog.NewClient(server.URL, server.Client()), 24*time.Hour, clock, discardLogger())

	_, err := cache.Routes(context.Background())
	if !errors.Is(err, catalog.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable with no prior snapshot, got %v", err)
	}

	if _, _, ok := cache.Stats(); ok {
		t.Error("expected Stats to report no snapshot after failed fetch")
	}
}

func TestCacheStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(namespacePayload))
	}))
	defer server.Close()

	fetchTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return fetchTime }
	cache := catalog.NewCache(catalog.NewClient(server.URL, server.Client()), 24*time.Hour, clock, discardLogger())

	if _, err := cache.Routes(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count, fetchedAt, ok := cache.Stats()
	if !ok {
		t.Fatal("expected a snapshot to be present")
	}
	if count != 3 {
		t.Errorf("expected 3 routes in snapshot, got %d", count)
	}
	if !fetchedAt.Equal(fetchTime) {
		t.Errorf("expected fetchedAt %v, got %v", fetchTime, fetchedAt)
	}
}
