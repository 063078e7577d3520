package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"cryptodesk/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var alice = domain.User{ID: 1, Username: "alice", Email: "alice@example.com"}

type serviceDeps struct {
	users  *MockUserRepository
	cache  *MockUserCache
	ledger *MockLedgerRepository
	prices *MockPricer
	worker *MockWorkerStarter
}

func newTestService(now time.Time) (*Service, serviceDeps) {
	d := serviceDeps{
		users:  new(MockUserRepository),
		cache:  new(MockUserCache),
		ledger: new(MockLedgerRepository),
		prices: new(MockPricer),
		worker: new(MockWorkerStarter),
	}
	s := NewService(d.users, d.cache, d.ledger, d.prices, d.worker, func() time.Time { return now })
	return s, d
}

func (d serviceDeps) cachedUser(u domain.User) {
	d.cache.On("Get", u.Username).Return(u, true)
}

// --- resolveUser ---

func TestService_ResolveUser_CacheMissLoadsAndCaches(t *testing.T) {
	s, d := newTestService(time.Now())
	d.cache.On("Get", "alice").Return(domain.User{}, false).Once()
	d.users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil).Once()
	d.cache.On("Set", alice).Once()

	u, err := s.resolveUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, alice, u)
	d.cache.AssertExpectations(t)
	d.users.AssertExpectations(t)
}

func TestService_ResolveUser_NotFound(t *testing.T) {
	s, d := newTestService(time.Now())
	d.cache.On("Get", "ghost").Return(domain.User{}, false).Once()
	d.users.On("GetByUsername", mock.Anything, "ghost").Return(domain.User{}, domain.ErrUserNotFound).Once()

	_, err := s.resolveUser(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	d.cache.AssertNotCalled(t, "Set", mock.Anything)
}

// --- SetBalance / AdjustBalance ---

func TestService_SetBalance_AppendsAuditRow(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s, d := newTestService(now)
	d.cachedUser(alice)

	amount := decimal.RequireFromString("100.5")
	d.ledger.On("SetBalance", mock.Anything, alice.ID, "USDT", amount, mock.MatchedBy(func(tx domain.Transaction) bool {
		return tx.Type == domain.TypeAdminAdjust &&
			tx.Status == domain.StatusConfirmed &&
			tx.Coin == "USDT" &&
			tx.Amount.Equal(amount) &&
			tx.Note == "Admin set balance to 100.5" &&
			tx.UserID == alice.ID &&
			tx.CreatedAt.Equal(now) &&
			tx.ID != uuid.Nil
	})).Return(domain.BalanceRow{UserID: alice.ID, Coin: "USDT", Amount: amount}, nil).Once()

	row, err := s.SetBalance(context.Background(), " alice ", " usdt ", amount)
	require.NoError(t, err)
	require.True(t, amount.Equal(row.Amount))
	d.ledger.AssertExpectations(t)
}

func TestService_AdjustBalance_AuditCarriesDelta(t *testing.T) {
	s, d := newTestService(time.Now())
	d.cachedUser(alice)

	delta := decimal.NewFromInt(-30)
	d.ledger.On("AdjustBalance", mock.Anything, alice.ID, "BTC", delta, mock.MatchedBy(func(tx domain.Transaction) bool {
		return tx.Amount.Equal(delta) && tx.Note == "Admin adjusted balance" && tx.Type == domain.TypeAdminAdjust
	})).Return(domain.BalanceRow{Amount: decimal.NewFromInt(70)}, nil).Once()

	row, err := s.AdjustBalance(context.Background(), "alice", "btc", delta)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(70).Equal(row.Amount))
	d.ledger.AssertExpectations(t)
}

func TestService_BalanceMutations_Validation(t *testing.T) {
	s, d := newTestService(time.Now())
	ctx := context.Background()

	_, err := s.SetBalance(ctx, "", "BTC", decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrUsernameRequired)
	_, err = s.SetBalance(ctx, "alice", " ", decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrCoinRequired)
	_, err = s.SetBalance(ctx, "alice", "BTC", decimal.NewFromInt(-1))
	require.ErrorIs(t, err, ErrAmountNegative)
	_, err = s.AdjustBalance(ctx, "alice", "BTC", decimal.Zero)
	require.ErrorIs(t, err, ErrDeltaZero)
	_, err = s.CreatePendingDeposit(ctx, "alice", "USDT", decimal.Zero, "TRC20")
	require.ErrorIs(t, err, ErrAmountNotPositive)

	d.ledger.AssertNotCalled(t, "SetBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	d.ledger.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	d.ledger.AssertNotCalled(t, "AppendTransaction", mock.Anything, mock.Anything)
}

func TestService_SetBalance_StoreError(t *testing.T) {
	s, d := newTestService(time.Now())
	d.cachedUser(alice)
	d.ledger.On("SetBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.BalanceRow{}, errors.New("boom")).Once()

	_, err := s.SetBalance(context.Background(), "alice", "BTC", decimal.NewFromInt(1))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to set BTC balance of 'alice'")
}

// --- CreatePendingDeposit ---

func TestService_CreatePendingDeposit_StoresPendingRowAndStartsWorker(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s, d := newTestService(now)
	d.cachedUser(alice)

	var stored domain.Transaction
	d.ledger.On("AppendTransaction", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(domain.Transaction)
	}).Return(nil).Once()
	d.worker.On("EnsureStarted").Return(nil).Once()

	id, err := s.CreatePendingDeposit(context.Background(), "alice", "usdt", decimal.NewFromInt(50), "trc20")
	require.NoError(t, err)
	require.Equal(t, stored.ID, id)
	require.Equal(t, domain.TypeDeposit, stored.Type)
	require.Equal(t, domain.StatusPending, stored.Status)
	require.Equal(t, "USDT", stored.Coin)
	require.Equal(t, "Awaiting confirmations", stored.Note)
	require.NotNil(t, stored.Network)
	require.Equal(t, "TRC20", *stored.Network)
	require.Equal(t, now, stored.CreatedAt)
	d.worker.AssertExpectations(t)
}

func TestService_CreatePendingDeposit_WorkerStartFailure_StillReturnsID(t *testing.T) {
	s, d := newTestService(time.Now())
	d.cachedUser(alice)

	var stored domain.Transaction
	d.ledger.On("AppendTransaction", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(domain.Transaction)
	}).Return(nil).Once()
	d.worker.On("EnsureStarted").Return(errors.New("scheduler not started")).Once()

	id, err := s.CreatePendingDeposit(context.Background(), "alice", "USDT", decimal.NewFromInt(50), "")
	require.NoError(t, err)
	require.Equal(t, stored.ID, id)
	d.ledger.AssertNumberOfCalls(t, "AppendTransaction", 1)
	d.worker.AssertExpectations(t)
}

func TestService_CreatePendingDeposit_UnknownUser(t *testing.T) {
	s, d := newTestService(time.Now())
	d.cache.On("Get", "ghost").Return(domain.User{}, false).Once()
	d.users.On("GetByUsername", mock.Anything, "ghost").Return(domain.User{}, domain.ErrUserNotFound).Once()

	_, err := s.CreatePendingDeposit(context.Background(), "ghost", "USDT", decimal.NewFromInt(5), "")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	d.worker.AssertNotCalled(t, "EnsureStarted")
}

// --- reads ---

func TestService_GetTransactions_AdminAdjustShownAsDeposit(t *testing.T) {
	s, d := newTestService(time.Now())
	d.cachedUser(alice)
	network := "TRC20"
	txs := []domain.Transaction{
		{ID: uuid.New(), UserID: 1, Type: domain.TypeAdminAdjust, Coin: "BTC", Amount: decimal.NewFromInt(1), Status: domain.StatusConfirmed},
		{ID: uuid.New(), UserID: 1, Type: domain.TypeDeposit, Coin: "USDT", Amount: decimal.NewFromInt(50), Status: domain.StatusPending, Network: &network},
	}
	d.ledger.On("GetTransactions", mock.Anything, alice.ID).Return(txs, nil).Once()

	views, err := s.GetTransactions(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, "DEPOSIT", views[0].Type)
	require.Equal(t, "BTC", views[0].Asset)
	require.Equal(t, "DEPOSIT", views[1].Type)
	require.Equal(t, "PENDING", views[1].Status)
	require.Equal(t, &network, views[1].Network)
}

func TestService_GetPortfolio_ValuesAndRounds(t *testing.T) {
	s, d := newTestService(time.Now())
	d.cachedUser(alice)
	d.ledger.On("GetBalances", mock.Anything, alice.ID).Return([]domain.BalanceRow{
		{Coin: "BTC", Amount: decimal.RequireFromString("0.5")},
		{Coin: "USDT", Amount: decimal.RequireFromString("100.004")},
		{Coin: "CAD", Amount: decimal.NewFromInt(10)},
	}, nil).Once()
	d.prices.On("GetPrices", mock.Anything, []string{"BTC", "USDT", "CAD"}).
		Return(map[string]float64{"BTC": 43000.123, "USDT": 1, "CAD": 1}).Once()

	p, err := s.GetPortfolio(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, p.Assets, 3)
	require.Equal(t, 21500.06, p.Assets[0].ValueUSD)
	require.Equal(t, 100.0, p.Assets[1].ValueUSD)
	require.Equal(t, 110.0, p.AvailableUSD)
	require.Equal(t, 21610.07, p.TotalUSD)
}

func TestService_GetPortfolio_NoBalances_NoPriceLookup(t *testing.T) {
	s, d := newTestService(time.Now())
	d.cachedUser(alice)
	d.ledger.On("GetBalances", mock.Anything, alice.ID).Return([]domain.BalanceRow{}, nil).Once()

	p, err := s.GetPortfolio(context.Background(), "alice")
	require.NoError(t, err)
	require.Empty(t, p.Assets)
	require.Zero(t, p.TotalUSD)
	d.prices.AssertNotCalled(t, "GetPrices", mock.Anything, mock.Anything)
}

func TestService_ListUsers(t *testing.T) {
	s, d := newTestService(time.Now())
	d.users.On("List", mock.Anything).Return([]domain.User{alice, {ID: 2, Username: "bob", Email: "bob@example.com"}}, nil).Once()

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Equal(t, []UserView{{Username: "alice", Email: "alice@example.com"}, {Username: "bob", Email: "bob@example.com"}}, users)
}

// --- end to end on the in-memory store ---

func TestLedger_AliceDepositScenario(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := start
	now := func() time.Time { return clock }

	store := newMemLedger()
	users := new(MockUserRepository)
	users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)
	cache := new(MockUserCache)
	cache.On("Get", mock.Anything).Return(domain.User{}, false)
	cache.On("Set", mock.Anything)
	sup := new(MockSupervisor)
	sup.On("StartOnce", DepositWorkerName, mock.Anything, mock.Anything).Return(true, nil).Once()
	sup.On("StartOnce", DepositWorkerName, mock.Anything, mock.Anything).Return(false, nil)

	worker := NewDepositWorker(store, sup, maturation, 3*time.Second, now)
	s := NewService(users, cache, store, new(MockPricer), worker, now)
	ctx := context.Background()

	_, err := s.SetBalance(ctx, "alice", "USDT", decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = s.AdjustBalance(ctx, "alice", "USDT", decimal.NewFromInt(-30))
	require.NoError(t, err)

	txID, err := s.CreatePendingDeposit(ctx, "alice", "USDT", decimal.NewFromInt(50), "TRC20")
	require.NoError(t, err)

	history, err := s.GetTransactions(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Equal(t, "PENDING", history[2].Status)

	// not mature yet
	clock = start.Add(14 * time.Second)
	require.NoError(t, ConfirmMatureDeposits(ctx, "exec-1", store, maturation, clock))
	balances, _ := s.GetBalances(ctx, "alice")
	require.True(t, decimal.NewFromInt(70).Equal(balances[0].Amount))

	// mature: exactly one confirmation
	clock = start.Add(maturation)
	require.NoError(t, ConfirmMatureDeposits(ctx, "exec-2", store, maturation, clock))
	require.NoError(t, ConfirmMatureDeposits(ctx, "exec-3", store, maturation, clock.Add(time.Minute)))

	history, err = s.GetTransactions(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 3)
	dep := history[2]
	require.Equal(t, txID.String(), dep.ID)
	require.Equal(t, "USDT", dep.Coin)
	require.True(t, decimal.NewFromInt(50).Equal(dep.Amount))
	require.Equal(t, "CONFIRMED", dep.Status)
	require.Equal(t, "Awaiting confirmations | Auto-confirmed", dep.Note)

	balances, err = s.GetBalances(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, balances, 1)
	require.True(t, decimal.NewFromInt(120).Equal(balances[0].Amount))

	// one audit row per admin call
	audits := 0
	for _, tx := range store.txs {
		if tx.Type == domain.TypeAdminAdjust {
			audits++
		}
	}
	require.Equal(t, 2, audits)
}
