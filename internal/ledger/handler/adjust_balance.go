package handler

import (
	"cryptodesk/internal/domain"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type AdjustBalanceRequest struct {
	Username string           `json:"username" example:"alice"`
	Coin     string           `json:"coin" example:"USDT"`
	Delta    *decimal.Decimal `json:"delta" swaggertype:"string" example:"-30"`
}

// AdjustBalance godoc
// @Summary Adjust a balance
// @Description Add a signed delta to a user's coin balance and record an audit transaction
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body AdjustBalanceRequest true "Balance delta"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /admin/balances/adjust [post]
func (h *Handler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	var req AdjustBalanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Delta == nil {
		writeError(w, http.StatusBadRequest, "delta is required")
		return
	}
	username := strings.TrimSpace(req.Username)

	row, err := h.service.AdjustBalance(r.Context(), username, req.Coin, *req.Delta)
	if err != nil {
		if isValidationErr(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		msg := "ups, couldn't adjust balance this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "AdjustBalance", "username": username, "coin": req.Coin}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, toBalanceResponse(username, row))
}
