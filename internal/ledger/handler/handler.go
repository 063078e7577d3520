package handler

import (
	"context"
	"cryptodesk/internal/domain"
	"cryptodesk/internal/ledger"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 10

type Service interface {
	SetBalance(ctx context.Context, username, coin string, amount decimal.Decimal) (domain.BalanceRow, error)
	AdjustBalance(ctx context.Context, username, coin string, delta decimal.Decimal) (domain.BalanceRow, error)
	CreatePendingDeposit(ctx context.Context, username, coin string, amount decimal.Decimal, network string) (uuid.UUID, error)
	GetTransactions(ctx context.Context, username string) ([]ledger.TransactionView, error)
	GetPortfolio(ctx context.Context, username string) (ledger.Portfolio, error)
	GetBalances(ctx context.Context, username string) ([]ledger.BalanceView, error)
	ListUsers(ctx context.Context) ([]ledger.UserView, error)
}

type AddressBook interface {
	Lookup(coin, network string) (string, error)
}

type Handler struct {
	service Service
	book    AddressBook
}

func NewLedgerHandler(service Service, book AddressBook) *Handler {
	return &Handler{service: service, book: book}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeBody reads a small JSON body and rejects unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// isValidationErr reports errors caused by the caller's input.
func isValidationErr(err error) bool {
	for _, target := range validationErrs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var validationErrs = []error{
	ledger.ErrUsernameRequired,
	ledger.ErrCoinRequired,
	ledger.ErrAmountNotPositive,
	ledger.ErrAmountNegative,
	ledger.ErrDeltaZero,
}
