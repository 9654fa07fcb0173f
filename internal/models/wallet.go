package models

import (
	"time"
)

// Wallet holds a user's balance for a single currency. Balances are stored
// as integers in the smallest currency unit (kobo, cents) and are mutated
// only through the ledger service.
type Wallet struct {
	ID        uint      `gorm:"primarykey" json:"wallet_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wallets_user_currency" json:"user_id"`
	Currency  string    `gorm:"not null;size:3;default:'NGN';uniqueIndex:idx_wallets_user_currency" json:"currency"`
	Balance   int64     `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
