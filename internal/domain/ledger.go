package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeDeposit     TransactionType = "DEPOSIT"
	TypeWithdrawal  TransactionType = "WITHDRAWAL"
	TypeAdminAdjust TransactionType = "ADMIN_ADJUST"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusConfirmed TransactionStatus = "CONFIRMED"
)

type User struct {
	ID       int64
	Username string
	Email    string
}

type Transaction struct {
	ID        uuid.UUID
	UserID    int64
	Type      TransactionType
	Coin      string
	Amount    decimal.Decimal
	Status    TransactionStatus
	Note      string
	Network   *string
	CreatedAt time.Time
}

type BalanceRow struct {
	UserID    int64
	Coin      string
	Amount    decimal.Decimal
	UpdatedAt time.Time
}
