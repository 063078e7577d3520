package adapters

import (
	"context"
	"cryptodesk/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceProvider is the upstream market data service.
type PriceProvider interface {
	// GetUSDPrices returns USD prices keyed by provider id. Ids unknown to the provider are absent.
	GetUSDPrices(ctx context.Context, ids []string) (map[string]float64, error)
	GetTopMarkets(ctx context.Context, limit int) ([]domain.MarketSummary, error)
}

type SnapshotStore interface {
	Load(ctx context.Context) (domain.PriceSnapshot, error)
	Save(ctx context.Context, snapshot domain.PriceSnapshot) error
}

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type UserCache interface {
	Get(username string) (domain.User, bool)
	Set(user domain.User)
}

type LedgerRepository interface {
	GetBalances(ctx context.Context, userID int64) ([]domain.BalanceRow, error)
	GetTransactions(ctx context.Context, userID int64) ([]domain.Transaction, error)
	// AppendTransaction stores a row that does not touch any balance (e.g. a PENDING deposit).
	AppendTransaction(ctx context.Context, tx domain.Transaction) error
	// SetBalance overwrites the balance and appends the audit row in one database transaction.
	SetBalance(ctx context.Context, userID int64, coin string, amount decimal.Decimal, audit domain.Transaction) (domain.BalanceRow, error)
	// AdjustBalance atomically increments the balance and appends the audit row in one database transaction.
	AdjustBalance(ctx context.Context, userID int64, coin string, delta decimal.Decimal, audit domain.Transaction) (domain.BalanceRow, error)
	GetPending(ctx context.Context) ([]domain.Transaction, error)
	// ConfirmDeposit flips a PENDING row to CONFIRMED and credits its amount in one database transaction.
	// It reports false when the row was no longer PENDING, in which case nothing is credited.
	ConfirmDeposit(ctx context.Context, txID uuid.UUID, noteSuffix string) (bool, error)
}
