package ticker

import (
	"context"
	"cryptodesk/internal/adapters"
	"cryptodesk/internal/domain"
	"cryptodesk/internal/platform/metrics"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const TaskName = "ticker"

// basket ids are fetched straight from the provider on every tick.
var basket = [...]string{"bitcoin", "ethereum", "solana", "ripple"}

// TaskSupervisor runs named background tasks, at most one per name.
type TaskSupervisor interface {
	StartOnce(name string, every time.Duration, task func(ctx context.Context)) (bool, error)
}

// Broadcaster polls the provider for the live basket and publishes to the hub.
type Broadcaster struct {
	provider   adapters.PriceProvider
	hub        *Hub
	supervisor TaskSupervisor
	interval   time.Duration
	now        func() time.Time

	mu     sync.Mutex
	lastTS int64
}

func NewBroadcaster(provider adapters.PriceProvider, hub *Hub, supervisor TaskSupervisor, interval time.Duration, now func() time.Time) *Broadcaster {
	if interval <= 0 {
		interval = 1500 * time.Millisecond
	}
	if now == nil {
		now = time.Now
	}
	return &Broadcaster{provider: provider, hub: hub, supervisor: supervisor, interval: interval, now: now}
}

// Subscribe adds a subscriber and starts polling on first use.
// The subscriber is registered first so the immediate first tick reaches it.
func (b *Broadcaster) Subscribe() (*Subscription, error) {
	sub := b.hub.Subscribe()
	if err := b.EnsureStarted(); err != nil {
		sub.Close()
		return nil, err
	}
	return sub, nil
}

func (b *Broadcaster) EnsureStarted() error {
	if _, err := b.supervisor.StartOnce(TaskName, b.interval, func(ctx context.Context) { b.Tick(ctx) }); err != nil {
		return fmt.Errorf("failed to start ticker: %w", err)
	}
	return nil
}

// Tick fetches the basket once and publishes it. A failed or incomplete fetch
// skips the tick, and so does an empty hub, to spare the provider's rate limit.
func (b *Broadcaster) Tick(ctx context.Context) bool {
	if b.hub.Count() == 0 {
		metrics.TickerEvents.WithLabelValues("idle").Inc()
		return false
	}

	prices, err := b.provider.GetUSDPrices(ctx, basket[:])
	if err != nil {
		metrics.ProviderRequests.WithLabelValues("ticker", "error").Inc()
		metrics.TickerEvents.WithLabelValues("skipped").Inc()
		logrus.WithError(err).Debug("Ticker fetch failed, skipping tick")
		return false
	}
	metrics.ProviderRequests.WithLabelValues("ticker", "ok").Inc()

	for _, id := range basket {
		if _, ok := prices[id]; !ok {
			metrics.TickerEvents.WithLabelValues("skipped").Inc()
			logrus.WithField("missing", id).Debug("Ticker payload incomplete, skipping tick")
			return false
		}
	}

	update := domain.TickerUpdate{
		BTC: prices["bitcoin"],
		ETH: prices["ethereum"],
		SOL: prices["solana"],
		XRP: prices["ripple"],
		TS:  b.nextTS(),
	}
	b.hub.Publish(Event{Name: EventUpdate, Data: update})
	metrics.TickerEvents.WithLabelValues("published").Inc()
	return true
}

// nextTS is the current epoch millis, bumped past the previous value when the clock stalls or steps back.
func (b *Broadcaster) nextTS() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	ts := b.now().UnixMilli()
	if ts <= b.lastTS {
		ts = b.lastTS + 1
	}
	b.lastTS = ts
	return ts
}
