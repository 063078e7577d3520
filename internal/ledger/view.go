package ledger

import (
	"cryptodesk/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

// stableCoins count towards the available USD figure of a portfolio.
var stableCoins = map[string]struct{}{"USDT": {}, "USD": {}, "USDC": {}, "CAD": {}}

type TransactionView struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Asset     string          `json:"asset"`
	Coin      string          `json:"coin"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	Note      string          `json:"note"`
	Network   *string         `json:"network"`
	Timestamp time.Time       `json:"timestamp"`
}

type AssetView struct {
	Coin     string          `json:"coin"`
	Amount   decimal.Decimal `json:"amount"`
	ValueUSD float64         `json:"value_usd"`
}

type Portfolio struct {
	AvailableUSD float64     `json:"available_usd"`
	TotalUSD     float64     `json:"total_usd"`
	Assets       []AssetView `json:"assets"`
}

type BalanceView struct {
	Coin      string          `json:"coin"`
	Amount    decimal.Decimal `json:"amount"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type UserView struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// toTransactionView shows admin adjustments as deposits in the account history.
func toTransactionView(tx domain.Transaction) TransactionView {
	typ := tx.Type
	if typ == domain.TypeAdminAdjust {
		typ = domain.TypeDeposit
	}
	return TransactionView{
		ID:        tx.ID.String(),
		Type:      string(typ),
		Asset:     tx.Coin,
		Coin:      tx.Coin,
		Amount:    tx.Amount,
		Status:    string(tx.Status),
		Note:      tx.Note,
		Network:   tx.Network,
		Timestamp: tx.CreatedAt,
	}
}

// buildPortfolio values balances with prices; figures are rounded to cents.
func buildPortfolio(balances []domain.BalanceRow, prices map[string]float64) Portfolio {
	p := Portfolio{Assets: make([]AssetView, 0, len(balances))}
	total := decimal.Zero
	available := decimal.Zero

	for _, b := range balances {
		value := b.Amount.Mul(decimal.NewFromFloat(prices[b.Coin]))
		total = total.Add(value)
		if _, ok := stableCoins[b.Coin]; ok {
			available = available.Add(b.Amount)
		}
		p.Assets = append(p.Assets, AssetView{
			Coin:     b.Coin,
			Amount:   b.Amount,
			ValueUSD: value.Round(2).InexactFloat64(),
		})
	}

	p.TotalUSD = total.Round(2).InexactFloat64()
	p.AvailableUSD = available.Round(2).InexactFloat64()
	return p
}
