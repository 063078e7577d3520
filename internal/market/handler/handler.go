package handler

import (
	"context"
	"cryptodesk/internal/domain"
	"encoding/json"
	"net/http"
)

type PriceSource interface {
	GetPrices(ctx context.Context, symbols []string) map[string]float64
}

type MarketSource interface {
	GetMarkets(ctx context.Context) []domain.MarketSummary
}

type Handler struct {
	prices  PriceSource
	markets MarketSource
	// symbols served when the caller asks for none
	defaultSymbols []string
}

func NewMarketHandler(prices PriceSource, markets MarketSource, defaultSymbols []string) *Handler {
	return &Handler{prices: prices, markets: markets, defaultSymbols: defaultSymbols}
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
