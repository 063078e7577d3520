package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// ListUsers godoc
// @Summary List users
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} ledger.UserView
// @Failure 500 {object} errorResponse
// @Router /admin/users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		msg := "ups, couldn't list users this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "ListUsers"}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
