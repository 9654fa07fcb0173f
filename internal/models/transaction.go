package models

import (
	"time"
)

// Transaction types
const (
	TransactionTypeFunding    = "funding"
	TransactionTypeConversion = "conversion"
	TransactionTypeTrade      = "trade"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeFee        = "fee"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusAbandoned = "abandoned"
	TransactionStatusFailed    = "failed"
	TransactionStatusCompleted = "completed"
	TransactionStatusSuccess   = "success"
	TransactionStatusReversed  = "reversed"
)

// Transaction flows
const (
	TransactionFlowDebit  = "debit"
	TransactionFlowCredit = "credit"
)

// Transaction is the immutable ledger entry paired with every wallet balance
// change. Rows are created inside the same database transaction as the
// balance mutation they record and are never deleted; status transitions are
// the only permitted update.
type Transaction struct {
	ID             uint   `gorm:"primarykey" json:"transaction_id"`
	UserID         uint   `gorm:"not null;index" json:"user_id"`
	WalletID       uint   `gorm:"not null;index" json:"wallet_id"`
	SessionID      string `json:"session_id,omitempty"`
	Currency       string `gorm:"not null;size:3" json:"currency"`
	Reference      string `gorm:"not null;uniqueIndex" json:"reference"`
	Amount         int64  `gorm:"not null" json:"amount"`
	Description    string `json:"description"`
	Status         string `gorm:"not null;default:'pending'" json:"status"`
	Type           string `gorm:"not null;default:'funding'" json:"type"`
	ExchangeRate   string `gorm:"type:decimal(18,8);not null" json:"exchange_rate"`
	Flow           string `gorm:"not null" json:"flow"`
	IsTransfer     bool   `gorm:"default:false" json:"is_transfer"`
	IsDisputed     bool   `gorm:"default:false" json:"is_disputed"`
	DisputeDetails string `gorm:"type:text" json:"dispute_details,omitempty"`
	Metadata       JSON   `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
