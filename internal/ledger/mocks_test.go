package ledger

import (
	"context"
	"sync"
	"time"

	"cryptodesk/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(domain.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

type MockUserCache struct{ mock.Mock }

func (m *MockUserCache) Get(username string) (domain.User, bool) {
	args := m.Called(username)
	u, _ := args.Get(0).(domain.User)
	return u, args.Bool(1)
}

func (m *MockUserCache) Set(user domain.User) {
	m.Called(user)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) GetBalances(ctx context.Context, userID int64) ([]domain.BalanceRow, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]domain.BalanceRow)
	return rows, args.Error(1)
}

func (m *MockLedgerRepository) GetTransactions(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	txs, _ := args.Get(0).([]domain.Transaction)
	return txs, args.Error(1)
}

func (m *MockLedgerRepository) AppendTransaction(ctx context.Context, tx domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) SetBalance(ctx context.Context, userID int64, coin string, amount decimal.Decimal, audit domain.Transaction) (domain.BalanceRow, error) {
	args := m.Called(ctx, userID, coin, amount, audit)
	row, _ := args.Get(0).(domain.BalanceRow)
	return row, args.Error(1)
}

func (m *MockLedgerRepository) AdjustBalance(ctx context.Context, userID int64, coin string, delta decimal.Decimal, audit domain.Transaction) (domain.BalanceRow, error) {
	args := m.Called(ctx, userID, coin, delta, audit)
	row, _ := args.Get(0).(domain.BalanceRow)
	return row, args.Error(1)
}

func (m *MockLedgerRepository) GetPending(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	txs, _ := args.Get(0).([]domain.Transaction)
	return txs, args.Error(1)
}

func (m *MockLedgerRepository) ConfirmDeposit(ctx context.Context, txID uuid.UUID, noteSuffix string) (bool, error) {
	args := m.Called(ctx, txID, noteSuffix)
	return args.Bool(0), args.Error(1)
}

type MockPricer struct{ mock.Mock }

func (m *MockPricer) GetPrices(ctx context.Context, symbols []string) map[string]float64 {
	args := m.Called(ctx, symbols)
	prices, _ := args.Get(0).(map[string]float64)
	return prices
}

type MockWorkerStarter struct{ mock.Mock }

func (m *MockWorkerStarter) EnsureStarted() error {
	return m.Called().Error(0)
}

type MockSupervisor struct{ mock.Mock }

func (m *MockSupervisor) StartOnce(name string, every time.Duration, task func(ctx context.Context)) (bool, error) {
	args := m.Called(name, every, task)
	return args.Bool(0), args.Error(1)
}

// memLedger is an in-memory ledger store with the same atomicity as the postgres one.
type memLedger struct {
	mu       sync.Mutex
	balances map[int64]map[string]decimal.Decimal
	txs      []domain.Transaction
}

func newMemLedger() *memLedger {
	return &memLedger{balances: map[int64]map[string]decimal.Decimal{}}
}

func (l *memLedger) credit(userID int64, coin string, delta decimal.Decimal, set bool) domain.BalanceRow {
	if l.balances[userID] == nil {
		l.balances[userID] = map[string]decimal.Decimal{}
	}
	if set {
		l.balances[userID][coin] = delta
	} else {
		l.balances[userID][coin] = l.balances[userID][coin].Add(delta)
	}
	return domain.BalanceRow{UserID: userID, Coin: coin, Amount: l.balances[userID][coin]}
}

func (l *memLedger) GetBalances(_ context.Context, userID int64) ([]domain.BalanceRow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows := make([]domain.BalanceRow, 0)
	for coin, amount := range l.balances[userID] {
		rows = append(rows, domain.BalanceRow{UserID: userID, Coin: coin, Amount: amount})
	}
	return rows, nil
}

func (l *memLedger) GetTransactions(_ context.Context, userID int64) ([]domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Transaction, 0)
	for _, tx := range l.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (l *memLedger) AppendTransaction(_ context.Context, tx domain.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.txs = append(l.txs, tx)
	return nil
}

func (l *memLedger) SetBalance(_ context.Context, userID int64, coin string, amount decimal.Decimal, audit domain.Transaction) (domain.BalanceRow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.txs = append(l.txs, audit)
	return l.credit(userID, coin, amount, true), nil
}

func (l *memLedger) AdjustBalance(_ context.Context, userID int64, coin string, delta decimal.Decimal, audit domain.Transaction) (domain.BalanceRow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.txs = append(l.txs, audit)
	return l.credit(userID, coin, delta, false), nil
}

func (l *memLedger) GetPending(_ context.Context) ([]domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Transaction, 0)
	for _, tx := range l.txs {
		if tx.Status == domain.StatusPending {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (l *memLedger) ConfirmDeposit(_ context.Context, txID uuid.UUID, noteSuffix string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.txs {
		tx := &l.txs[i]
		if tx.ID != txID || tx.Status != domain.StatusPending {
			continue
		}
		tx.Status = domain.StatusConfirmed
		tx.Note += noteSuffix
		l.credit(tx.UserID, tx.Coin, tx.Amount, false)
		return true, nil
	}
	return false, nil
}
