package market

import (
	"context"
	"sync"
	"time"

	"cryptodesk/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockPriceProvider struct{ mock.Mock }

func (m *MockPriceProvider) GetUSDPrices(ctx context.Context, ids []string) (map[string]float64, error) {
	args := m.Called(ctx, ids)
	prices, _ := args.Get(0).(map[string]float64)
	return prices, args.Error(1)
}

func (m *MockPriceProvider) GetTopMarkets(ctx context.Context, limit int) ([]domain.MarketSummary, error) {
	args := m.Called(ctx, limit)
	markets, _ := args.Get(0).([]domain.MarketSummary)
	return markets, args.Error(1)
}

type MockSnapshotStore struct{ mock.Mock }

func (m *MockSnapshotStore) Load(ctx context.Context) (domain.PriceSnapshot, error) {
	args := m.Called(ctx)
	snap, _ := args.Get(0).(domain.PriceSnapshot)
	return snap, args.Error(1)
}

func (m *MockSnapshotStore) Save(ctx context.Context, snapshot domain.PriceSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
