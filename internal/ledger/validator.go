package ledger

import (
	"cryptodesk/internal/domain"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrUsernameRequired  = errors.New("username is required")
	ErrCoinRequired      = errors.New("coin is required")
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrAmountNegative    = errors.New("amount must not be negative")
	ErrDeltaZero         = errors.New("delta must not be zero")
)

const (
	DefaultDepositCoin    = "USDT"
	DefaultDepositNetwork = "TRC20"
	placeholderMarker     = "YOUR_"
)

// NormalizeCode trims and upper-cases a coin or network code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validateUserCoin(username, coin string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if coin == "" {
		return ErrCoinRequired
	}
	return nil
}

func validateSet(username, coin string, amount decimal.Decimal) error {
	if err := validateUserCoin(username, coin); err != nil {
		return err
	}
	if amount.IsNegative() {
		return ErrAmountNegative
	}
	return nil
}

func validateAdjust(username, coin string, delta decimal.Decimal) error {
	if err := validateUserCoin(username, coin); err != nil {
		return err
	}
	if delta.IsZero() {
		return ErrDeltaZero
	}
	return nil
}

func validateDeposit(username, coin string, amount decimal.Decimal) error {
	if err := validateUserCoin(username, coin); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	return nil
}

// AddressNotConfiguredError names the coin and network that have no usable address.
type AddressNotConfiguredError struct {
	Coin    string
	Network string
}

func (e *AddressNotConfiguredError) Error() string {
	return fmt.Sprintf("Deposit address not configured for %s on %s.", e.Coin, e.Network)
}

func (e *AddressNotConfiguredError) Is(target error) bool {
	return target == domain.ErrDepositAddressNotConfigured
}

// AddressBook resolves custodial deposit addresses by coin and network.
type AddressBook struct {
	addresses map[string]map[string]string // normalized read only copy
}

func NewAddressBook(addresses map[string]map[string]string) *AddressBook {
	book := make(map[string]map[string]string, len(addresses))
	for coin, networks := range addresses {
		c := NormalizeCode(coin)
		if book[c] == nil {
			book[c] = make(map[string]string, len(networks))
		}
		for network, addr := range networks {
			book[c][NormalizeCode(network)] = strings.TrimSpace(addr)
		}
	}
	return &AddressBook{addresses: book}
}

// Lookup defaults an empty coin to USDT and an empty network to TRC20.
// Placeholder addresses count as not configured.
func (b *AddressBook) Lookup(coin, network string) (string, error) {
	coin = NormalizeCode(coin)
	network = NormalizeCode(network)
	if coin == "" {
		coin = DefaultDepositCoin
	}
	if network == "" {
		network = DefaultDepositNetwork
	}

	addr := b.addresses[coin][network]
	if addr == "" || strings.Contains(addr, placeholderMarker) {
		return "", &AddressNotConfiguredError{Coin: coin, Network: network}
	}
	return addr, nil
}
