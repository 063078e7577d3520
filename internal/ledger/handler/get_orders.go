package handler

import "net/http"

// GetOrders godoc
// @Summary List orders
// @Description Trading is not supported, the list is always empty
// @Tags Accounts
// @Produce json
// @Success 200 {array} object
// @Router /orders [get]
func (h *Handler) GetOrders(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, []struct{}{})
}
