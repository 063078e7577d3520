package postgres

import (
	"context"
	"cryptodesk/internal/domain"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// LedgerRepository owns balances and the transaction log.
// Amounts cross the driver boundary as text to keep numeric precision.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

const selectTransactions = `
	select id, user_id, type, coin, amount::text, status, note, network, created_at
	from transactions
`

func (r *LedgerRepository) GetBalances(ctx context.Context, userID int64) ([]domain.BalanceRow, error) {
	const q = `
		select user_id, coin, amount::text, updated_at
		from balances
		where user_id = $1
		order by coin
	`

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances of user %d: %w", userID, err)
	}
	defer rows.Close()

	balances := make([]domain.BalanceRow, 0, 8)
	for rows.Next() {
		var (
			b      domain.BalanceRow
			amount string
		)
		if err = rows.Scan(&b.UserID, &b.Coin, &amount, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		if b.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse balance amount %q: %w", amount, err)
		}
		balances = append(balances, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balances: %w", err)
	}
	return balances, nil
}

func (r *LedgerRepository) GetTransactions(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	txs, err := r.queryTransactions(ctx, selectTransactions+`where user_id = $1 order by created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions of user %d: %w", userID, err)
	}
	return txs, nil
}

func (r *LedgerRepository) GetPending(ctx context.Context) ([]domain.Transaction, error) {
	txs, err := r.queryTransactions(ctx, selectTransactions+`where status = 'PENDING' order by created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending transactions: %w", err)
	}
	return txs, nil
}

func (r *LedgerRepository) AppendTransaction(ctx context.Context, tx domain.Transaction) error {
	if err := insertTransaction(ctx, r.pool, tx); err != nil {
		return fmt.Errorf("failed to append transaction %s: %w", tx.ID, err)
	}
	return nil
}

func (r *LedgerRepository) SetBalance(ctx context.Context, userID int64, coin string, amount decimal.Decimal, audit domain.Transaction) (domain.BalanceRow, error) {
	const q = `
		insert into balances (user_id, coin, amount, updated_at)
		values ($1, $2, $3::numeric, now())
		on conflict (user_id, coin) do update
		set amount = excluded.amount, updated_at = now()
		returning amount::text, updated_at
	`
	return r.writeBalance(ctx, q, userID, coin, amount, audit)
}

func (r *LedgerRepository) AdjustBalance(ctx context.Context, userID int64, coin string, delta decimal.Decimal, audit domain.Transaction) (domain.BalanceRow, error) {
	// the increment happens under the row lock taken by the upsert
	const q = `
		insert into balances (user_id, coin, amount, updated_at)
		values ($1, $2, $3::numeric, now())
		on conflict (user_id, coin) do update
		set amount = balances.amount + excluded.amount, updated_at = now()
		returning amount::text, updated_at
	`
	return r.writeBalance(ctx, q, userID, coin, delta, audit)
}

// writeBalance runs the balance upsert q and inserts the audit row in one database transaction.
func (r *LedgerRepository) writeBalance(ctx context.Context, q string, userID int64, coin string, value decimal.Decimal, audit domain.Transaction) (domain.BalanceRow, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.BalanceRow{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := domain.BalanceRow{UserID: userID, Coin: coin}
	var amount string
	if err = tx.QueryRow(ctx, q, userID, coin, value.String()).Scan(&amount, &row.UpdatedAt); err != nil {
		return domain.BalanceRow{}, fmt.Errorf("failed to write balance %s of user %d: %w", coin, userID, err)
	}
	if row.Amount, err = decimal.NewFromString(amount); err != nil {
		return domain.BalanceRow{}, fmt.Errorf("failed to parse balance amount %q: %w", amount, err)
	}

	if err = insertTransaction(ctx, tx, audit); err != nil {
		return domain.BalanceRow{}, fmt.Errorf("failed to append audit transaction: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return domain.BalanceRow{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return row, nil
}

func (r *LedgerRepository) ConfirmDeposit(ctx context.Context, txID uuid.UUID, noteSuffix string) (bool, error) {
	// compare-and-set on status: a row already confirmed matches nothing and is never credited twice
	const confirmQ = `
		update transactions
		set status = 'CONFIRMED', note = note || $2
		where id = $1 and status = 'PENDING'
		returning user_id, coin, amount::text
	`
	const creditQ = `
		insert into balances (user_id, coin, amount, updated_at)
		values ($1, $2, $3::numeric, now())
		on conflict (user_id, coin) do update
		set amount = balances.amount + excluded.amount, updated_at = now()
	`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		userID int64
		coin   string
		amount string
	)
	err = tx.QueryRow(ctx, confirmQ, txID, noteSuffix).Scan(&userID, &coin, &amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to confirm deposit %s: %w", txID, err)
	}

	if _, err = tx.Exec(ctx, creditQ, userID, coin, amount); err != nil {
		return false, fmt.Errorf("failed to credit deposit %s: %w", txID, err)
	}
	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *LedgerRepository) queryTransactions(ctx context.Context, q string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]domain.Transaction, 0, 32)
	for rows.Next() {
		var (
			t           domain.Transaction
			typ, status string
			amount      string
		)
		if err = rows.Scan(&t.ID, &t.UserID, &typ, &t.Coin, &amount, &status, &t.Note, &t.Network, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Type = domain.TransactionType(typ)
		t.Status = domain.TransactionStatus(status)
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse transaction amount %q: %w", amount, err)
		}
		txs = append(txs, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txs, nil
}

func insertTransaction(ctx context.Context, db querier, t domain.Transaction) error {
	const q = `
		insert into transactions (id, user_id, type, coin, amount, status, note, network, created_at)
		values ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9)
	`
	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := db.Exec(ctx, q, t.ID, t.UserID, string(t.Type), t.Coin, t.Amount.String(), string(t.Status), t.Note, t.Network, createdAt)
	return err
}

func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}
