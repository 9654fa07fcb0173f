package models

import (
	"time"
)

// Country is reference data mapping a currency code to its USD-relative
// exchange rate. Rates are decimal strings with fixed precision; pair rates
// are derived from two rows by the exchange service.
type Country struct {
	ID           uint      `gorm:"primarykey" json:"country_id"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	CountryCode  string    `gorm:"uniqueIndex;size:2;not null" json:"country_code"`
	CurrencyCode string    `gorm:"index;size:3;not null" json:"currency_code"`
	CurrencyName string    `json:"currency_name"`
	ExchangeRate string    `gorm:"type:decimal(18,8)" json:"exchange_rate"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
