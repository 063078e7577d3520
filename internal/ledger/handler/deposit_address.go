package handler

import (
	"cryptodesk/internal/domain"
	"cryptodesk/internal/ledger"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
)

type DepositAddressResponse struct {
	Coin    string `json:"coin" example:"USDT"`
	Network string `json:"network" example:"TRC20"`
	Address string `json:"address" example:"TXyz..."`
}

// GetDepositAddress godoc
// @Summary Deposit address
// @Description Custodial address for a coin and network, USDT on TRC20 by default
// @Tags Accounts
// @Produce json
// @Param coin query string false "Coin"
// @Param network query string false "Network"
// @Success 200 {object} DepositAddressResponse
// @Failure 400 {object} errorResponse
// @Router /deposit-address [get]
func (h *Handler) GetDepositAddress(w http.ResponseWriter, r *http.Request) {
	coin := ledger.NormalizeCode(r.URL.Query().Get("coin"))
	network := ledger.NormalizeCode(r.URL.Query().Get("network"))
	if coin == "" {
		coin = ledger.DefaultDepositCoin
	}
	if network == "" {
		network = ledger.DefaultDepositNetwork
	}

	addr, err := h.book.Lookup(coin, network)
	if err != nil {
		if errors.Is(err, domain.ErrDepositAddressNotConfigured) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		msg := "ups, couldn't get deposit address this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetDepositAddress", "coin": coin, "network": network}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, DepositAddressResponse{Coin: coin, Network: network, Address: addr})
}
