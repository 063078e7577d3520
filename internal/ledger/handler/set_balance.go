package handler

import (
	"cryptodesk/internal/domain"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type SetBalanceRequest struct {
	Username string           `json:"username" example:"alice"`
	Coin     string           `json:"coin" example:"USDT"`
	Amount   *decimal.Decimal `json:"amount" swaggertype:"string" example:"100"`
}

// SetBalance godoc
// @Summary Set a balance
// @Description Overwrite a user's coin balance and record an audit transaction
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body SetBalanceRequest true "Target balance"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /admin/balances/set [post]
func (h *Handler) SetBalance(w http.ResponseWriter, r *http.Request) {
	var req SetBalanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Amount == nil {
		writeError(w, http.StatusBadRequest, "amount is required")
		return
	}
	username := strings.TrimSpace(req.Username)

	row, err := h.service.SetBalance(r.Context(), username, req.Coin, *req.Amount)
	if err != nil {
		if isValidationErr(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		msg := "ups, couldn't set balance this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "SetBalance", "username": username, "coin": req.Coin}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, toBalanceResponse(username, row))
}
