package repositories

import (
	"context"
	"errors"

	"vesta/internal/models"
)

var (
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// LedgerRepository is the data access surface of the wallet ledger. All
// balance reads on a mutation path go through the ForUpdate variants so the
// read-modify-write in the ledger service is serializable across processes.
type LedgerRepository interface {
	// Wallet access
	CreateWallet(wallet *models.Wallet) error
	GetWalletByID(id uint) (*models.Wallet, error)
	GetWalletByIDForUpdate(id uint) (*models.Wallet, error)
	FindWallet(userID uint, currency string) (*models.Wallet, error)
	ListWallets(userID uint, currency string) ([]models.Wallet, error)
	UpdateWalletBalance(wallet *models.Wallet) error

	// Ledger entries
	CreateTransaction(txn *models.Transaction) error
	GetTransactionByReference(reference string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, int64, error)

	// ExecuteInTransaction runs fn against a repository bound to a single
	// database transaction. fn returning an error rolls everything back.
	ExecuteInTransaction(ctx context.Context, fn func(LedgerRepository) error) error
}
