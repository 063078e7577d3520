package market

import (
	"context"
	"cryptodesk/internal/adapters"
	"cryptodesk/internal/domain"
	"cryptodesk/internal/platform/metrics"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const priceCacheName = "prices"

// PriceCache serves USD prices for symbols. Lookups never fail: a fresh
// snapshot is used as is, otherwise the provider is asked once and every
// symbol it cannot answer falls back to the stale snapshot, then to the
// default table, then to zero.
type PriceCache struct {
	provider adapters.PriceProvider
	store    adapters.SnapshotStore
	ttl      time.Duration
	now      func() time.Time

	mu       sync.RWMutex
	snapshot domain.PriceSnapshot
}

func NewPriceCache(provider adapters.PriceProvider, store adapters.SnapshotStore, ttl time.Duration, now func() time.Time) *PriceCache {
	if now == nil {
		now = time.Now
	}
	return &PriceCache{
		provider: provider,
		store:    store,
		ttl:      ttl,
		now:      now,
		snapshot: domain.PriceSnapshot{Prices: map[string]float64{}},
	}
}

// LoadSnapshot restores the persisted snapshot. A missing or unreadable one leaves the cache empty.
func (c *PriceCache) LoadSnapshot(ctx context.Context) {
	snap, err := c.store.Load(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Price snapshot wasn't loaded, starting with an empty cache")
		return
	}
	if snap.Prices == nil {
		snap.Prices = map[string]float64{}
	}

	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()
	logrus.Infof("✅ Price snapshot loaded, %d symbols", len(snap.Prices))
}

// GetPrices returns a price for every requested symbol.
func (c *PriceCache) GetPrices(ctx context.Context, symbols []string) map[string]float64 {
	wanted := normalizeSymbols(symbols)
	snap := c.current()

	if !c.fresh(snap) {
		snap = c.refresh(ctx, wanted, snap)
	} else {
		metrics.CacheLookups.WithLabelValues(priceCacheName, "fresh").Inc()
	}

	result := make(map[string]float64, len(wanted))
	for _, sym := range wanted {
		if v, ok := snap.Prices[sym]; ok {
			result[sym] = v
			continue
		}
		result[sym] = fallbackPrice(sym)
	}
	return result
}

// CachedOrDefault resolves symbol without calling the provider.
func (c *PriceCache) CachedOrDefault(symbol string) float64 {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	c.mu.RLock()
	v, ok := c.snapshot.Prices[sym]
	c.mu.RUnlock()
	if ok {
		return v
	}
	return fallbackPrice(sym)
}

func (c *PriceCache) current() domain.PriceSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

func (c *PriceCache) fresh(snap domain.PriceSnapshot) bool {
	return !snap.IsEmpty() && c.now().Sub(snap.CapturedAt) < c.ttl
}

// refresh fetches every mappable symbol in wanted and merges the answer into
// the snapshot. The provider call is made without holding the lock.
func (c *PriceCache) refresh(ctx context.Context, wanted []string, prev domain.PriceSnapshot) domain.PriceSnapshot {
	idToSymbol := make(map[string]string, len(wanted))
	ids := make([]string, 0, len(wanted))
	for _, sym := range wanted {
		if id, ok := ProviderID(sym); ok {
			if _, seen := idToSymbol[id]; !seen {
				ids = append(ids, id)
			}
			idToSymbol[id] = sym
		}
	}
	if len(ids) == 0 {
		return prev
	}

	fetched, err := c.provider.GetUSDPrices(ctx, ids)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues("prices", "error").Inc()
		metrics.CacheLookups.WithLabelValues(priceCacheName, "stale").Inc()
		logrus.WithError(err).WithField("ids", ids).Warn("Price provider failed, serving last known prices")
		return prev
	}
	metrics.ProviderRequests.WithLabelValues("prices", "ok").Inc()

	c.mu.Lock()
	next := c.snapshot.Clone()
	if next.Prices == nil {
		next.Prices = map[string]float64{}
	}
	merged := 0
	for id, v := range fetched {
		sym, ok := idToSymbol[id]
		if !ok || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		next.Prices[sym] = v
		merged++
	}
	if merged == 0 {
		c.mu.Unlock()
		metrics.CacheLookups.WithLabelValues(priceCacheName, "stale").Inc()
		return prev
	}
	next.CapturedAt = c.now()
	c.snapshot = next
	c.mu.Unlock()
	metrics.CacheLookups.WithLabelValues(priceCacheName, "refreshed").Inc()

	if saveErr := c.store.Save(ctx, next.Clone()); saveErr != nil {
		metrics.SnapshotSaveFailures.Inc()
		logrus.WithError(saveErr).Warn("Price snapshot wasn't persisted")
	}
	return next
}

func fallbackPrice(symbol string) float64 {
	if v, ok := DefaultPrice(symbol); ok {
		return v
	}
	return 0
}

func normalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		sym := strings.ToUpper(strings.TrimSpace(s))
		if sym == "" {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out
}
