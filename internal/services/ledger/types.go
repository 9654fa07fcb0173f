package ledger

import (
	"vesta/internal/models"

	"github.com/shopspring/decimal"
)

// TradeAction is the direction of a currency trade.
type TradeAction string

const (
	TradeActionBuy  TradeAction = "buy"
	TradeActionSell TradeAction = "sell"
)

// FundRequest credits a user's wallet. Amount is in the smallest unit of
// Currency.
type FundRequest struct {
	Amount   int64
	Currency string
}

// ConvertRequest moves value between two of a user's wallets. Amount is in
// the smallest unit of FromCurrency.
type ConvertRequest struct {
	FromCurrency string
	ToCurrency   string
	Amount       int64
}

// TradeRequest buys or sells Amount (smallest unit of BaseCurrency) against
// QuoteCurrency.
type TradeRequest struct {
	BaseCurrency  string
	QuoteCurrency string
	Amount        int64
	Action        TradeAction
}

// ConversionResult carries both legs of a conversion plus the applied rate.
type ConversionResult struct {
	DebitTransaction  *models.Transaction `json:"debit_transaction"`
	CreditTransaction *models.Transaction `json:"credit_transaction"`
	Rate              string              `json:"rate"`
	ConvertedAmount   decimal.Decimal     `json:"converted_amount"`
}

// TradeResult is a ConversionResult tagged with the trade direction.
type TradeResult struct {
	ConversionResult
	Action TradeAction `json:"action"`
}

// mutation describes one debit or credit leg handed to the balance mutator.
type mutation struct {
	WalletID     uint
	Amount       int64
	ExchangeRate string
	Type         string
	Description  string
	Metadata     models.JSON
}
