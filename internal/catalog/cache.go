// ABOUTME: In-process cache for the flattened route catalog with a freshness window
// ABOUTME: Serves a stale snapshot when a refresh fails rather than surfacing the error

package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/harper/rsshub-mcp/internal/models"
)

// Cache memoizes the flattened catalog. A snapshot is fresh while its age is
// below the TTL; an expired snapshot is still returned when the refresh
// fails, because a stale catalog beats no catalog for search purposes.
type Cache struct {
	client *Client
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	mu        sync.Mutex
	routes    []models.Route
	fetchedAt time.Time
}

// NewCache wraps client with snapshot reuse. now is the clock used for
// freshness checks; pass time.Now outside of tests.
func NewCache(client *Client, ttl time.Duration, now func() time.Time, logger *slog.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, now: now, logger: logger}
}

// Routes returns the cached snapshot, refreshing it first when it is missing
// or expired. Callers must treat the returned slice as read-only.
func (c *Cache) Routes(ctx context.Context) ([]models.Route, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.routes != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.routes, nil
	}

	routes, err := c.client.FetchNamespaces(ctx)
	if err != nil {
		if c.routes != nil {
			c.logger.Warn("catalog refresh failed, serving stale snapshot",
				slog.String("error", err.Error()),
				slog.Time("fetched_at", c.fetchedAt),
				slog.Int("routes", len(c.routes)))
			return c.routes, nil
		}
		return nil, err
	}

	c.routes = routes
	c.fetchedAt = c.now()
	c.logger.Debug("catalog snapshot refreshed", slog.Int("routes", len(routes)))
	return c.routes, nil
}

// Stats reports the current snapshot size and fetch time without triggering
// a refresh. ok is false when no snapshot has been taken yet.
func (c *Cache) Stats() (count int, fetchedAt time.Time, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.routes == nil {
		return 0, time.Time{}, false
	}
	return len(c.routes), c.fetchedAt, true
}
