package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"vesta/internal/models"
	"vesta/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type service struct {
	repo     repositories.LedgerRepository
	rates    RateProvider
	activity ActivityPublisher
}

// NewService creates the wallet ledger service.
func NewService(repo repositories.LedgerRepository, rates RateProvider, activity ActivityPublisher) Service {
	if repo == nil {
		panic("ledger repository is required")
	}
	if rates == nil {
		panic("rate provider is required")
	}
	if activity == nil {
		activity = NoopPublisher{}
	}
	return &service{
		repo:     repo,
		rates:    rates,
		activity: activity,
	}
}

// NoopPublisher drops activity events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, models.ActivityEvent) error { return nil }

func (s *service) GetWallets(ctx context.Context, userID uint, currency string) ([]models.Wallet, error) {
	wallets, err := s.repo.ListWallets(userID, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallets: %w", err)
	}
	return wallets, nil
}

func (s *service) GetTransactions(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, int64, error) {
	return s.repo.ListTransactions(ctx, userID, limit, offset)
}

// GetTransaction looks up a single ledger entry by its reference. Entries
// belonging to other users are reported as not found.
func (s *service) GetTransaction(ctx context.Context, userID uint, reference string) (*models.Transaction, error) {
	txn, err := s.repo.GetTransactionByReference(reference)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidTransaction) {
			return nil, fmt.Errorf("%s: %w", reference, ErrTransactionNotFound)
		}
		return nil, err
	}
	if txn.UserID != userID {
		return nil, fmt.Errorf("%s: %w", reference, ErrTransactionNotFound)
	}
	return txn, nil
}

// resolveWallet returns the wallet for (userID, currency), creating it with a
// zero balance inside tx when it does not exist yet.
func (s *service) resolveWallet(tx repositories.LedgerRepository, userID uint, currency string) (*models.Wallet, error) {
	wallet, err := tx.FindWallet(userID, currency)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, repositories.ErrWalletNotFound) {
		return nil, err
	}

	wallet = &models.Wallet{
		UserID:   userID,
		Currency: currency,
		Balance:  0,
	}
	if err := tx.CreateWallet(wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// debitWallet subtracts m.Amount from the wallet balance and records the
// matching debit entry. The wallet row is locked until the enclosing
// transaction ends, so the balance check and the write are atomic with
// respect to every other mutation on the same wallet.
func (s *service) debitWallet(tx repositories.LedgerRepository, m mutation) (*models.Transaction, error) {
	if m.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	wallet, err := tx.GetWalletByIDForUpdate(m.WalletID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	if wallet.Balance < m.Amount {
		return nil, ErrInsufficientBalance
	}

	wallet.Balance -= m.Amount
	if err := tx.UpdateWalletBalance(wallet); err != nil {
		return nil, err
	}

	return s.recordTransaction(tx, wallet, m, models.TransactionFlowDebit)
}

// creditWallet adds m.Amount to the wallet balance and records the matching
// credit entry. Credits have no upper bound.
func (s *service) creditWallet(tx repositories.LedgerRepository, m mutation) (*models.Transaction, error) {
	if m.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	wallet, err := tx.GetWalletByIDForUpdate(m.WalletID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}

	wallet.Balance += m.Amount
	if err := tx.UpdateWalletBalance(wallet); err != nil {
		return nil, err
	}

	return s.recordTransaction(tx, wallet, m, models.TransactionFlowCredit)
}

func (s *service) recordTransaction(tx repositories.LedgerRepository, wallet *models.Wallet, m mutation, flow string) (*models.Transaction, error) {
	reference := uuid.NewString()
	txn := &models.Transaction{
		UserID:       wallet.UserID,
		WalletID:     wallet.ID,
		SessionID:    reference,
		Currency:     wallet.Currency,
		Reference:    reference,
		Amount:       m.Amount,
		Description:  m.Description,
		Status:       models.TransactionStatusCompleted,
		Type:         m.Type,
		ExchangeRate: m.ExchangeRate,
		Flow:         flow,
		Metadata:     m.Metadata,
	}
	if err := tx.CreateTransaction(txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// publishActivity emits an activity event off the request path. Failures are
// logged and swallowed so they can never surface as an operation failure.
func (s *service) publishActivity(userID uint, text, event string, meta models.RequestMeta) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := s.activity.Publish(ctx, models.ActivityEvent{
			EntityID:  userID,
			Activity:  text,
			Entity:    "user",
			Resource:  "Wallet",
			Event:     event,
			EventDate: time.Now().UTC(),
			Request:   meta,
		})
		if err != nil {
			log.Printf("failed to publish activity for user %d: %v", userID, err)
		}
	}()
}

// minorToMajor converts a smallest-unit integer amount to its decimal
// major-unit representation.
func minorToMajor(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount).Div(decimal.NewFromInt(100))
}

// majorToMinor rounds a major-unit decimal back to the smallest unit.
func majorToMinor(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
