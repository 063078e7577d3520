package handler

import (
	"net/http"
	"slices"
	"strings"
)

// GetPrices godoc
// @Summary USD prices
// @Description Prices for the requested symbols. Never fails: unknown symbols are priced from defaults or 0
// @Tags Market
// @Produce json
// @Param symbols query string false "Comma separated symbols, e.g. BTC,ETH"
// @Success 200 {object} map[string]float64 "Symbol to USD price"
// @Router /prices [get]
func (h *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	symbols := splitSymbols(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		symbols = slices.Clone(h.defaultSymbols)
	}

	writeJSON(w, http.StatusOK, h.prices.GetPrices(r.Context(), symbols))
}

func splitSymbols(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.ToUpper(strings.TrimSpace(p)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
