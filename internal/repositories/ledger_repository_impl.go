package repositories

import (
	"context"
	"fmt"

	"vesta/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

func (r *ledgerRepository) CreateWallet(wallet *models.Wallet) error {
	result := r.db.Create(wallet)
	if result.Error != nil {
		return fmt.Errorf("failed to create wallet: %w", result.Error)
	}
	return nil
}

func (r *ledgerRepository) GetWalletByID(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.First(&wallet, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

// GetWalletByIDForUpdate loads a wallet under a row-level lock. Only
// meaningful inside ExecuteInTransaction; the lock is held until commit or
// rollback.
func (r *ledgerRepository) GetWalletByIDForUpdate(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&wallet, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *ledgerRepository) FindWallet(userID uint, currency string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Where("user_id = ? AND currency = ?", userID, currency).First(&wallet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}
	return &wallet, nil
}

func (r *ledgerRepository) ListWallets(userID uint, currency string) ([]models.Wallet, error) {
	var wallets []models.Wallet
	query := r.db.Where("user_id = ?", userID)
	if currency != "" {
		query = query.Where("currency = ?", currency)
	}
	if err := query.Order("created_at ASC").Find(&wallets).Error; err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return wallets, nil
}

func (r *ledgerRepository) UpdateWalletBalance(wallet *models.Wallet) error {
	result := r.db.Save(wallet)
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet: %w", result.Error)
	}
	return nil
}

func (r *ledgerRepository) CreateTransaction(txn *models.Transaction) error {
	result := r.db.Create(txn)
	if result.Error != nil {
		return fmt.Errorf("failed to create transaction: %w", result.Error)
	}
	return nil
}

func (r *ledgerRepository) GetTransactionByReference(reference string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.Where("reference = ?", reference).First(&txn).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidTransaction
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &txn, nil
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, int64, error) {
	var (
		txns  []models.Transaction
		total int64
	)
	base := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	err := base.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txns).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, total, nil
}

// ExecuteInTransaction binds a fresh repository to one gorm transaction and
// hands it to fn. A context cancellation or deadline aborts the transaction
// with everything it has done so far.
func (r *ledgerRepository) ExecuteInTransaction(ctx context.Context, fn func(LedgerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &ledgerRepository{db: tx}
		return fn(txRepo)
	})
}
