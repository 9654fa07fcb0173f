package ledger

import (
	"context"

	"vesta/internal/models"

	"github.com/shopspring/decimal"
)

// Service is the wallet ledger facade exposed to the HTTP layer.
type Service interface {
	Fund(ctx context.Context, user *models.User, req FundRequest, meta models.RequestMeta) (*models.Transaction, error)
	Convert(ctx context.Context, user *models.User, req ConvertRequest, meta models.RequestMeta) (*ConversionResult, error)
	Trade(ctx context.Context, user *models.User, req TradeRequest, meta models.RequestMeta) (*TradeResult, error)

	GetWallets(ctx context.Context, userID uint, currency string) ([]models.Wallet, error)
	GetTransactions(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, int64, error)
	GetTransaction(ctx context.Context, userID uint, reference string) (*models.Transaction, error)
}

// RateProvider supplies exchange rates. GetRate returns the from→to pair
// rate; Convert applies it to a major-unit decimal amount and returns the
// rate actually used as a decimal string plus the converted amount rounded
// half-up to two decimal places. Identity pairs convert at rate "1".
type RateProvider interface {
	GetRate(ctx context.Context, from, to string) (decimal.Decimal, error)
	Convert(ctx context.Context, from, to string, amount decimal.Decimal) (rate string, converted decimal.Decimal, err error)
}

// ActivityPublisher delivers activity events to the async worker queue.
type ActivityPublisher interface {
	Publish(ctx context.Context, event models.ActivityEvent) error
}
