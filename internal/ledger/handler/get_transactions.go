package handler

import (
	"cryptodesk/internal/domain"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// GetTransactions godoc
// @Summary Account transaction history
// @Description Transactions of an account, oldest first
// @Tags Accounts
// @Produce json
// @Security ApiKeyAuth
// @Param username path string true "Username"
// @Success 200 {array} ledger.TransactionView
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /accounts/{username}/transactions [get]
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	txs, err := h.service.GetTransactions(r.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		msg := "ups, couldn't get transactions this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetTransactions", "username": username}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, txs)
}
