package handler

import (
	"cryptodesk/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

type BalanceResponse struct {
	Username  string          `json:"username" example:"alice"`
	Coin      string          `json:"coin" example:"USDT"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"120.5"`
	UpdatedAt time.Time       `json:"updated_at" example:"2025-01-02T15:04:05Z"`
}

func toBalanceResponse(username string, row domain.BalanceRow) BalanceResponse {
	return BalanceResponse{Username: username, Coin: row.Coin, Amount: row.Amount, UpdatedAt: row.UpdatedAt}
}
