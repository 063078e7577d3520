package domain

import (
	"maps"
	"time"
)

// PriceSnapshot is the last known set of USD prices keyed by upper-case symbol.
type PriceSnapshot struct {
	CapturedAt time.Time
	Prices     map[string]float64
}

func (s PriceSnapshot) IsEmpty() bool {
	return len(s.Prices) == 0
}

// Clone returns a copy whose price map can be mutated without affecting s.
func (s PriceSnapshot) Clone() PriceSnapshot {
	return PriceSnapshot{CapturedAt: s.CapturedAt, Prices: maps.Clone(s.Prices)}
}

type MarketSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Symbol       string   `json:"symbol"`
	ImageURL     string   `json:"image"`
	CurrentPrice *float64 `json:"current_price"`
	High24h      *float64 `json:"high_24h"`
	Low24h       *float64 `json:"low_24h"`
}

// TickerUpdate is one live price event of the ticker basket.
type TickerUpdate struct {
	BTC float64 `json:"BTC"`
	ETH float64 `json:"ETH"`
	SOL float64 `json:"SOL"`
	XRP float64 `json:"XRP"`
	TS  int64   `json:"ts"`
}
