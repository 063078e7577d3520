package snapshot

import (
	"cryptodesk/internal/domain"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

type payload struct {
	TS     float64            `json:"ts"`
	Prices map[string]float64 `json:"prices"`
}

func encode(s domain.PriceSnapshot) ([]byte, error) {
	p := payload{Prices: s.Prices}
	if !s.CapturedAt.IsZero() {
		p.TS = float64(s.CapturedAt.UnixNano()) / float64(time.Second)
	}
	if p.Prices == nil {
		p.Prices = map[string]float64{}
	}
	return json.Marshal(p)
}

// decode drops entries that could never have been stored: negative or non-finite prices.
func decode(data []byte) (domain.PriceSnapshot, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.PriceSnapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	prices := make(map[string]float64, len(p.Prices))
	for sym, v := range p.Prices {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		prices[strings.ToUpper(sym)] = v
	}

	var capturedAt time.Time
	if p.TS > 0 {
		sec, frac := math.Modf(p.TS)
		capturedAt = time.Unix(int64(sec), int64(frac*float64(time.Second)))
	}
	return domain.PriceSnapshot{CapturedAt: capturedAt, Prices: prices}, nil
}
