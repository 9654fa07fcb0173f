package errors

var (
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient wallet balance",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
	}
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
	}
	ErrRateUnavailable = &DomainError{
		Code:    "RATE_UNAVAILABLE",
		Message: "exchange rate unavailable",
	}
	ErrInvalidAction = &DomainError{
		Code:    "INVALID_ACTION",
		Message: "invalid trade action",
	}
	ErrAmountTooSmall = &DomainError{
		Code:    "AMOUNT_TOO_SMALL",
		Message: "amount too small to convert",
	}
	ErrTransactionNotFound = &DomainError{
		Code:    "TRANSACTION_NOT_FOUND",
		Message: "transaction not found",
	}
)
