package ledger

import "errors"

// Service errors
var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrRateUnavailable     = errors.New("exchange rate unavailable")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidAction       = errors.New("invalid trade action")
	ErrAmountTooSmall      = errors.New("amount too small to convert")
	ErrTransactionNotFound = errors.New("transaction not found")
)
