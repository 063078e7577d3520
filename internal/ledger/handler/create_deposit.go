package handler

import (
	"cryptodesk/internal/domain"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CreateDepositRequest struct {
	Username string           `json:"username" example:"alice"`
	Coin     string           `json:"coin" example:"USDT"`
	Amount   *decimal.Decimal `json:"amount" swaggertype:"string" example:"50"`
	Network  string           `json:"network" example:"TRC20"`
}

type CreateDepositResponse struct {
	TxID string `json:"tx_id" example:"77b5d9f5-0569-47e3-aee2-f659d59fbd97"`
}

// CreateDeposit godoc
// @Summary Create a pending deposit
// @Description Record a deposit that is confirmed and credited after the maturation delay
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body CreateDepositRequest true "Deposit"
// @Success 202 {object} CreateDepositResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /admin/deposits [post]
func (h *Handler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	var req CreateDepositRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Amount == nil {
		writeError(w, http.StatusBadRequest, "amount is required")
		return
	}
	username := strings.TrimSpace(req.Username)

	txID, err := h.service.CreatePendingDeposit(r.Context(), username, req.Coin, *req.Amount, req.Network)
	if err != nil {
		if isValidationErr(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		msg := "ups, couldn't create deposit this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "CreateDeposit", "username": username, "coin": req.Coin}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusAccepted, CreateDepositResponse{TxID: txID.String()})
}
