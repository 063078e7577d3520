package handler

import (
	"cryptodesk/internal/domain"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// GetAssets godoc
// @Summary Account portfolio
// @Description Balances of an account valued in USD
// @Tags Accounts
// @Produce json
// @Security ApiKeyAuth
// @Param username path string true "Username"
// @Success 200 {object} ledger.Portfolio
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /accounts/{username}/assets [get]
func (h *Handler) GetAssets(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	portfolio, err := h.service.GetPortfolio(r.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		msg := "ups, couldn't get assets this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetAssets", "username": username}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, portfolio)
}
