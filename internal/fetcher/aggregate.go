// ABOUTME: Fan-out fetch across all subscriptions with independent per-item failure isolation
// ABOUTME: Bounded concurrency; one failing or slow route never aborts the batch

package fetcher

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/harper/rsshub-mcp/internal/models"
)

// SubscriptionResult tags one subscription's outcome in an aggregate fetch.
type SubscriptionResult struct {
	Subscription models.Subscription
	Result       *Result
}

// FetchSubscriptions fetches every subscription and collects per-item
// outcomes in input order. Each item merges its stored default params with
// the call-site override (override wins per key) and fetches independently:
// failures land in that item's Result.Diagnostic and never abort the batch.
func (c *Client) FetchSubscriptions(ctx context.Context, subs []models.Subscription, override map[string]any) []SubscriptionResult {
	results := make([]SubscriptionResult, len(subs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)
	for i, sub := range subs {
		g.Go(func() error {
			params := Merge(sub.Params, override)
			res, err := c.FetchRoute(ctx, sub.Route, params)
			if err != nil {
				res = c.unreachable(c.base+normalizePath(sub.Route), err.Error(), 0)
			}
			results[i] = SubscriptionResult{Subscription: sub, Result: res}
			return nil
		})
	}
	// Workers never return errors; failures are captured per item.
	_ = g.Wait()

	return results
}
