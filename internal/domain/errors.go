package domain

import "errors"

var (
	ErrUserNotFound                = errors.New("user not found")
	ErrDepositAddressNotConfigured = errors.New("deposit address not configured")
)
