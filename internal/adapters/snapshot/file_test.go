package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cryptodesk/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestFileStore_Load_MissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "instance", "price_cache.json"))

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	require.True(t, snap.IsEmpty())
	require.True(t, snap.CapturedAt.IsZero())
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance", "price_cache.json")
	s := NewFileStore(path)
	capturedAt := time.Unix(1_700_000_000, 250_000_000)

	err := s.Save(context.Background(), domain.PriceSnapshot{
		CapturedAt: capturedAt,
		Prices:     map[string]float64{"BTC": 64000.5, "ETH": 3100},
	})
	require.NoError(t, err)

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	require.WithinDuration(t, capturedAt, snap.CapturedAt, time.Millisecond)
	require.InDelta(t, 64000.5, snap.Prices["BTC"], 1e-9)
	require.InDelta(t, 3100.0, snap.Prices["ETH"], 1e-9)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFileStore_Save_WritesDocumentedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "price_cache.json")
	s := NewFileStore(path)

	require.NoError(t, s.Save(context.Background(), domain.PriceSnapshot{
		CapturedAt: time.Unix(1_700_000_000, 0),
		Prices:     map[string]float64{"SOL": 100},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"ts": 1700000000, "prices": {"SOL": 100}}`, string(data))
}

func TestFileStore_Load_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "price_cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode snapshot")
}

func TestFileStore_Load_DropsInvalidPrices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "price_cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ts": 1700000000.5, "prices": {"btc": 1, "BAD": -3}}`), 0o600))

	snap, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"BTC": 1}, snap.Prices)
	require.Equal(t, int64(1_700_000_000), snap.CapturedAt.Unix())
}
