package ledger

import (
	"context"
	"errors"
	"sync"

	"vesta/internal/models"
	"vesta/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeLedgerRepo is an in-memory LedgerRepository. ExecuteInTransaction
// snapshots state before running fn and restores it on error, mirroring a
// database rollback, which lets tests assert the all-or-nothing contract.
type fakeLedgerRepo struct {
	mu           sync.Mutex
	wallets      map[uint]*models.Wallet
	transactions []models.Transaction
	nextWalletID uint

	// failCreateTxnFlow makes CreateTransaction fail for the given flow,
	// injecting a storage failure mid-operation.
	failCreateTxnFlow string

	// txCtx is the context of the transaction in flight. Mutating methods
	// observe it the way statements on a context-bound connection would.
	txCtx context.Context

	// onCreateTxn runs after a transaction row is stored, letting tests
	// cancel the context between the debit and credit legs.
	onCreateTxn func(txn *models.Transaction)
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		wallets:      make(map[uint]*models.Wallet),
		nextWalletID: 1,
	}
}

func (f *fakeLedgerRepo) seedWallet(userID uint, currency string, balance int64) *models.Wallet {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := &models.Wallet{
		ID:       f.nextWalletID,
		UserID:   userID,
		Currency: currency,
		Balance:  balance,
	}
	f.nextWalletID++
	f.wallets[w.ID] = w
	return w
}

func (f *fakeLedgerRepo) CreateWallet(wallet *models.Wallet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.wallets {
		if w.UserID == wallet.UserID && w.Currency == wallet.Currency {
			return errors.New("duplicate wallet")
		}
	}
	wallet.ID = f.nextWalletID
	f.nextWalletID++
	cp := *wallet
	f.wallets[wallet.ID] = &cp
	return nil
}

func (f *fakeLedgerRepo) GetWalletByID(id uint) (*models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[id]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeLedgerRepo) GetWalletByIDForUpdate(id uint) (*models.Wallet, error) {
	return f.GetWalletByID(id)
}

func (f *fakeLedgerRepo) FindWallet(userID uint, currency string) (*models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.wallets {
		if w.UserID == userID && w.Currency == currency {
			cp := *w
			return &cp, nil
		}
	}
	return nil, repositories.ErrWalletNotFound
}

func (f *fakeLedgerRepo) ListWallets(userID uint, currency string) ([]models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Wallet
	for _, w := range f.wallets {
		if w.UserID != userID {
			continue
		}
		if currency != "" && w.Currency != currency {
			continue
		}
		out = append(out, *w)
	}
	return out, nil
}

func (f *fakeLedgerRepo) UpdateWalletBalance(wallet *models.Wallet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.txErr(); err != nil {
		return err
	}
	if _, ok := f.wallets[wallet.ID]; !ok {
		return repositories.ErrWalletNotFound
	}
	cp := *wallet
	f.wallets[wallet.ID] = &cp
	return nil
}

func (f *fakeLedgerRepo) CreateTransaction(txn *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.txErr(); err != nil {
		return err
	}
	if f.failCreateTxnFlow != "" && txn.Flow == f.failCreateTxnFlow {
		return errors.New("injected storage failure")
	}
	txn.ID = uint(len(f.transactions) + 1)
	f.transactions = append(f.transactions, *txn)
	if f.onCreateTxn != nil {
		f.onCreateTxn(txn)
	}
	return nil
}

// txErr reports the state of the in-flight transaction context. Callers must
// hold f.mu.
func (f *fakeLedgerRepo) txErr() error {
	if f.txCtx == nil {
		return nil
	}
	return f.txCtx.Err()
}

func (f *fakeLedgerRepo) GetTransactionByReference(reference string) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.transactions {
		if f.transactions[i].Reference == reference {
			cp := f.transactions[i]
			return &cp, nil
		}
	}
	return nil, repositories.ErrInvalidTransaction
}

func (f *fakeLedgerRepo) ListTransactions(_ context.Context, userID uint, limit, offset int) ([]models.Transaction, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Transaction
	for _, t := range f.transactions {
		if t.UserID == userID {
			all = append(all, t)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeLedgerRepo) ExecuteInTransaction(ctx context.Context, fn func(repositories.LedgerRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	savedWallets := make(map[uint]*models.Wallet, len(f.wallets))
	for id, w := range f.wallets {
		cp := *w
		savedWallets[id] = &cp
	}
	savedTxns := make([]models.Transaction, len(f.transactions))
	copy(savedTxns, f.transactions)
	savedNextID := f.nextWalletID
	f.txCtx = ctx
	f.mu.Unlock()

	err := fn(f)

	f.mu.Lock()
	f.txCtx = nil
	if err != nil {
		f.wallets = savedWallets
		f.transactions = savedTxns
		f.nextWalletID = savedNextID
	}
	f.mu.Unlock()
	return err
}

func (f *fakeLedgerRepo) walletCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.wallets)
}

func (f *fakeLedgerRepo) transactionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.transactions)
}

// mockRateProvider is a testify mock for the RateProvider dependency.
type mockRateProvider struct {
	mock.Mock
}

func (m *mockRateProvider) GetRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockRateProvider) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (string, decimal.Decimal, error) {
	args := m.Called(ctx, from, to, amount)
	return args.String(0), args.Get(1).(decimal.Decimal), args.Error(2)
}

// failingPublisher always errors, for asserting publish failures never leak.
type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, models.ActivityEvent) error {
	return errors.New("broker down")
}
