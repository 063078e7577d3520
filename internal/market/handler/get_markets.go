package handler

import "net/http"

// GetMarkets godoc
// @Summary Top markets
// @Description Top coins by market cap, served from cache or a synthesized fallback when the provider is unavailable
// @Tags Market
// @Produce json
// @Success 200 {array} domain.MarketSummary
// @Router /markets [get]
func (h *Handler) GetMarkets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.markets.GetMarkets(r.Context()))
}
