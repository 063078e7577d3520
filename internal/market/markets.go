package market

import (
	"context"
	"cryptodesk/internal/adapters"
	"cryptodesk/internal/domain"
	"cryptodesk/internal/platform/metrics"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const marketsCacheName = "markets"

// PriceLookup resolves a price without touching the provider.
type PriceLookup interface {
	CachedOrDefault(symbol string) float64
}

// MarketsCache keeps the top markets list in memory only.
type MarketsCache struct {
	provider adapters.PriceProvider
	prices   PriceLookup
	ttl      time.Duration
	limit    int
	now      func() time.Time

	mu         sync.RWMutex
	markets    []domain.MarketSummary
	capturedAt time.Time
}

func NewMarketsCache(provider adapters.PriceProvider, prices PriceLookup, ttl time.Duration, limit int, now func() time.Time) *MarketsCache {
	if now == nil {
		now = time.Now
	}
	if limit <= 0 {
		limit = 10
	}
	return &MarketsCache{provider: provider, prices: prices, ttl: ttl, limit: limit, now: now}
}

// GetMarkets returns at most limit summaries: fresh cache, a new fetch, the
// stale list, or a synthesized list priced from the price cache, in that order.
func (c *MarketsCache) GetMarkets(ctx context.Context) []domain.MarketSummary {
	c.mu.RLock()
	cached, capturedAt := c.markets, c.capturedAt
	c.mu.RUnlock()

	if len(cached) > 0 && c.now().Sub(capturedAt) < c.ttl {
		metrics.CacheLookups.WithLabelValues(marketsCacheName, "fresh").Inc()
		return slices.Clone(cached)
	}

	fetched, err := c.provider.GetTopMarkets(ctx, c.limit)
	switch {
	case err != nil:
		metrics.ProviderRequests.WithLabelValues("markets", "error").Inc()
		logrus.WithError(err).Warn("Markets provider failed")
	case len(fetched) == 0:
		metrics.ProviderRequests.WithLabelValues("markets", "empty").Inc()
		logrus.Warn("Markets provider returned an empty list")
	default:
		metrics.ProviderRequests.WithLabelValues("markets", "ok").Inc()
		if len(fetched) > c.limit {
			fetched = fetched[:c.limit]
		}
		c.mu.Lock()
		c.markets = slices.Clone(fetched)
		c.capturedAt = c.now()
		c.mu.Unlock()
		metrics.CacheLookups.WithLabelValues(marketsCacheName, "refreshed").Inc()
		return fetched
	}

	c.mu.RLock()
	stale := slices.Clone(c.markets)
	c.mu.RUnlock()
	if len(stale) > 0 {
		metrics.CacheLookups.WithLabelValues(marketsCacheName, "stale").Inc()
		return stale
	}
	metrics.CacheLookups.WithLabelValues(marketsCacheName, "fallback").Inc()
	return c.synthesize()
}

func (c *MarketsCache) synthesize() []domain.MarketSummary {
	markets := make([]domain.MarketSummary, 0, len(fallbackMarketSymbols))
	for _, sym := range fallbackMarketSymbols {
		price := c.prices.CachedOrDefault(sym)
		markets = append(markets, domain.MarketSummary{
			ID:           strings.ToLower(sym),
			Name:         sym,
			Symbol:       strings.ToLower(sym),
			CurrentPrice: &price,
		})
	}
	return markets
}
