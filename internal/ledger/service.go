package ledger

import (
	"context"
	"cryptodesk/internal/adapters"
	"cryptodesk/internal/domain"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	pendingDepositNote = "Awaiting confirmations"
	adjustNote         = "Admin adjusted balance"
)

// Pricer values coins in USD.
type Pricer interface {
	GetPrices(ctx context.Context, symbols []string) map[string]float64
}

// WorkerStarter makes sure the deposit worker runs.
type WorkerStarter interface {
	EnsureStarted() error
}

type Service struct {
	users   adapters.UserRepository
	cache   adapters.UserCache
	ledger  adapters.LedgerRepository
	prices  Pricer
	deposit WorkerStarter
	now     func() time.Time
}

func NewService(users adapters.UserRepository, cache adapters.UserCache, ledger adapters.LedgerRepository, prices Pricer, deposit WorkerStarter, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{users: users, cache: cache, ledger: ledger, prices: prices, deposit: deposit, now: now}
}

func (s *Service) SetBalance(ctx context.Context, username, coin string, amount decimal.Decimal) (domain.BalanceRow, error) {
	username, coin = strings.TrimSpace(username), NormalizeCode(coin)
	if err := validateSet(username, coin, amount); err != nil {
		return domain.BalanceRow{}, err
	}
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return domain.BalanceRow{}, err
	}

	audit := s.adminAudit(user.ID, coin, amount, fmt.Sprintf("Admin set balance to %s", amount.String()))
	row, err := s.ledger.SetBalance(ctx, user.ID, coin, amount, audit)
	if err != nil {
		return domain.BalanceRow{}, fmt.Errorf("failed to set %s balance of '%s': %w", coin, username, err)
	}
	return row, nil
}

func (s *Service) AdjustBalance(ctx context.Context, username, coin string, delta decimal.Decimal) (domain.BalanceRow, error) {
	username, coin = strings.TrimSpace(username), NormalizeCode(coin)
	if err := validateAdjust(username, coin, delta); err != nil {
		return domain.BalanceRow{}, err
	}
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return domain.BalanceRow{}, err
	}

	audit := s.adminAudit(user.ID, coin, delta, adjustNote)
	row, err := s.ledger.AdjustBalance(ctx, user.ID, coin, delta, audit)
	if err != nil {
		return domain.BalanceRow{}, fmt.Errorf("failed to adjust %s balance of '%s': %w", coin, username, err)
	}
	return row, nil
}

// CreatePendingDeposit records a deposit that the worker confirms once it matures.
func (s *Service) CreatePendingDeposit(ctx context.Context, username, coin string, amount decimal.Decimal, network string) (uuid.UUID, error) {
	username, coin, network = strings.TrimSpace(username), NormalizeCode(coin), NormalizeCode(network)
	if err := validateDeposit(username, coin, amount); err != nil {
		return uuid.Nil, err
	}
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return uuid.Nil, err
	}

	tx := domain.Transaction{
		ID:        uuid.New(),
		UserID:    user.ID,
		Type:      domain.TypeDeposit,
		Coin:      coin,
		Amount:    amount,
		Status:    domain.StatusPending,
		Note:      pendingDepositNote,
		CreatedAt: s.now().UTC(),
	}
	if network != "" {
		tx.Network = &network
	}
	if err = s.ledger.AppendTransaction(ctx, tx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create pending deposit for '%s': %w", username, err)
	}

	// The row is committed, so a worker start failure must not be reported as a failed deposit:
	// a retry would store it twice. The next deposit or the boot-time resume starts the worker.
	if err = s.deposit.EnsureStarted(); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"tx_id": tx.ID, "username": username}).
			Error("Deposit stored but confirmation worker wasn't started")
	}
	return tx.ID, nil
}

func (s *Service) GetTransactions(ctx context.Context, username string) ([]TransactionView, error) {
	user, err := s.resolveUser(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	txs, err := s.ledger.GetTransactions(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	views := make([]TransactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, toTransactionView(tx))
	}
	return views, nil
}

func (s *Service) GetPortfolio(ctx context.Context, username string) (Portfolio, error) {
	user, err := s.resolveUser(ctx, strings.TrimSpace(username))
	if err != nil {
		return Portfolio{}, err
	}
	balances, err := s.ledger.GetBalances(ctx, user.ID)
	if err != nil {
		return Portfolio{}, err
	}

	coins := make([]string, 0, len(balances))
	for _, b := range balances {
		coins = append(coins, b.Coin)
	}
	var prices map[string]float64
	if len(coins) > 0 {
		prices = s.prices.GetPrices(ctx, coins)
	}
	return buildPortfolio(balances, prices), nil
}

func (s *Service) GetBalances(ctx context.Context, username string) ([]BalanceView, error) {
	user, err := s.resolveUser(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	balances, err := s.ledger.GetBalances(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	views := make([]BalanceView, 0, len(balances))
	for _, b := range balances {
		views = append(views, BalanceView{Coin: b.Coin, Amount: b.Amount, UpdatedAt: b.UpdatedAt})
	}
	return views, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, UserView{Username: u.Username, Email: u.Email})
	}
	return views, nil
}

// resolveUser looks in the cache first; users are never mutated by this service.
func (s *Service) resolveUser(ctx context.Context, username string) (domain.User, error) {
	if username == "" {
		return domain.User{}, ErrUsernameRequired
	}
	if user, ok := s.cache.Get(username); ok {
		return user, nil
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return domain.User{}, err
	}
	s.cache.Set(user)
	return user, nil
}

func (s *Service) adminAudit(userID int64, coin string, amount decimal.Decimal, note string) domain.Transaction {
	return domain.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      domain.TypeAdminAdjust,
		Coin:      coin,
		Amount:    amount,
		Status:    domain.StatusConfirmed,
		Note:      note,
		CreatedAt: s.now().UTC(),
	}
}
