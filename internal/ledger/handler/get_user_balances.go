package handler

import (
	"cryptodesk/internal/domain"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// GetUserBalances godoc
// @Summary Raw balances of a user
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param username path string true "Username"
// @Success 200 {array} ledger.BalanceView
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /admin/users/{username}/assets [get]
func (h *Handler) GetUserBalances(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	balances, err := h.service.GetBalances(r.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		msg := "ups, couldn't get balances this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetUserBalances", "username": username}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, balances)
}
