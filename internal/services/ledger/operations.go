package ledger

import (
	"context"
	"errors"
	"fmt"

	"vesta/internal/models"
	"vesta/internal/repositories"

	"github.com/shopspring/decimal"
)

// Fund credits the user's wallet for the given currency, creating the wallet
// on first use. Funding has no exchange component, so the recorded rate is
// always "1".
func (s *service) Fund(ctx context.Context, user *models.User, req FundRequest, meta models.RequestMeta) (*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var txn *models.Transaction
	err := s.repo.ExecuteInTransaction(ctx, func(tx repositories.LedgerRepository) error {
		wallet, err := s.resolveWallet(tx, user.ID, req.Currency)
		if err != nil {
			return err
		}

		txn, err = s.creditWallet(tx, mutation{
			WalletID:     wallet.ID,
			Amount:       req.Amount,
			ExchangeRate: "1",
			Type:         models.TransactionTypeFunding,
			Description:  fmt.Sprintf("Wallet funding - %s", req.Currency),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishActivity(user.ID,
		fmt.Sprintf("Funded %s wallet with %d", req.Currency, req.Amount),
		"Credit", meta)

	return txn, nil
}

// Convert debits req.Amount from the user's from-currency wallet and credits
// the converted amount to the to-currency wallet. The from-wallet must
// already exist; the to-wallet is created on demand. Both legs commit
// together or not at all.
func (s *service) Convert(ctx context.Context, user *models.User, req ConvertRequest, meta models.RequestMeta) (*ConversionResult, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	rate, converted, err := s.rates.Convert(ctx, req.FromCurrency, req.ToCurrency, minorToMajor(req.Amount))
	if err != nil {
		return nil, rateError(req.FromCurrency, req.ToCurrency, err)
	}
	creditAmount := majorToMinor(converted)
	if creditAmount <= 0 {
		return nil, fmt.Errorf("%w: %d %s at rate %s", ErrAmountTooSmall, req.Amount, req.FromCurrency, rate)
	}

	description := fmt.Sprintf("Currency conversion: %s to %s", req.FromCurrency, req.ToCurrency)

	var result ConversionResult
	err = s.repo.ExecuteInTransaction(ctx, func(tx repositories.LedgerRepository) error {
		fromWallet, err := tx.FindWallet(user.ID, req.FromCurrency)
		if err != nil {
			if errors.Is(err, repositories.ErrWalletNotFound) {
				return fmt.Errorf("%s wallet: %w", req.FromCurrency, ErrWalletNotFound)
			}
			return err
		}

		toWallet, err := s.resolveWallet(tx, user.ID, req.ToCurrency)
		if err != nil {
			return err
		}

		debitTxn, err := s.debitWallet(tx, mutation{
			WalletID:     fromWallet.ID,
			Amount:       req.Amount,
			ExchangeRate: rate,
			Type:         models.TransactionTypeConversion,
			Description:  description,
		})
		if err != nil {
			return err
		}

		creditTxn, err := s.creditWallet(tx, mutation{
			WalletID:     toWallet.ID,
			Amount:       creditAmount,
			ExchangeRate: rate,
			Type:         models.TransactionTypeConversion,
			Description:  description,
		})
		if err != nil {
			return err
		}

		result = ConversionResult{
			DebitTransaction:  debitTxn,
			CreditTransaction: creditTxn,
			Rate:              rate,
			ConvertedAmount:   converted,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishActivity(user.ID,
		fmt.Sprintf("Converted %d %s to %d %s at rate %s",
			req.Amount, req.FromCurrency, creditAmount, req.ToCurrency, rate),
		"Update", meta)

	return &result, nil
}

// Trade buys or sells req.Amount of the base currency against the quote
// currency. On a buy the spend amount is sized with ceiling division so the
// user never under-pays for the requested base amount; on a sell the base
// amount is debited directly. Both legs record the same rate and the trade
// action in their metadata.
func (s *service) Trade(ctx context.Context, user *models.User, req TradeRequest, meta models.RequestMeta) (*TradeResult, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var (
		fromCurrency string
		toCurrency   string
		fromAmount   int64
	)

	switch req.Action {
	case TradeActionBuy:
		// Spending quote currency to acquire req.Amount of base currency.
		fromCurrency = req.QuoteCurrency
		toCurrency = req.BaseCurrency

		rate, err := s.rates.GetRate(ctx, fromCurrency, toCurrency)
		if err != nil {
			return nil, rateError(fromCurrency, toCurrency, err)
		}
		if !rate.IsPositive() {
			return nil, rateError(fromCurrency, toCurrency, nil)
		}
		fromAmount = decimal.NewFromInt(req.Amount).Div(rate).Ceil().IntPart()
	case TradeActionSell:
		fromCurrency = req.BaseCurrency
		toCurrency = req.QuoteCurrency
		fromAmount = req.Amount
	default:
		return nil, ErrInvalidAction
	}

	rate, converted, err := s.rates.Convert(ctx, fromCurrency, toCurrency, minorToMajor(fromAmount))
	if err != nil {
		return nil, rateError(fromCurrency, toCurrency, err)
	}
	creditAmount := majorToMinor(converted)
	if creditAmount <= 0 {
		return nil, fmt.Errorf("%w: %d %s at rate %s", ErrAmountTooSmall, fromAmount, fromCurrency, rate)
	}

	description := fmt.Sprintf("Trade %s: %s to %s", req.Action, fromCurrency, toCurrency)
	metadata := models.JSON{"action": string(req.Action)}

	var result TradeResult
	err = s.repo.ExecuteInTransaction(ctx, func(tx repositories.LedgerRepository) error {
		fromWallet, err := tx.FindWallet(user.ID, fromCurrency)
		if err != nil {
			if errors.Is(err, repositories.ErrWalletNotFound) {
				return fmt.Errorf("%s wallet: %w", fromCurrency, ErrWalletNotFound)
			}
			return err
		}

		toWallet, err := s.resolveWallet(tx, user.ID, toCurrency)
		if err != nil {
			return err
		}

		debitTxn, err := s.debitWallet(tx, mutation{
			WalletID:     fromWallet.ID,
			Amount:       fromAmount,
			ExchangeRate: rate,
			Type:         models.TransactionTypeTrade,
			Description:  description,
			Metadata:     metadata,
		})
		if err != nil {
			return err
		}

		creditTxn, err := s.creditWallet(tx, mutation{
			WalletID:     toWallet.ID,
			Amount:       creditAmount,
			ExchangeRate: rate,
			Type:         models.TransactionTypeTrade,
			Description:  description,
			Metadata:     metadata,
		})
		if err != nil {
			return err
		}

		result = TradeResult{
			ConversionResult: ConversionResult{
				DebitTransaction:  debitTxn,
				CreditTransaction: creditTxn,
				Rate:              rate,
				ConvertedAmount:   converted,
			},
			Action: req.Action,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishActivity(user.ID,
		fmt.Sprintf("Executed trade: %s %d %s with %s. Final exchange: %d %s for %d %s at rate %s",
			req.Action, req.Amount, req.BaseCurrency, req.QuoteCurrency,
			fromAmount, fromCurrency, creditAmount, toCurrency, rate),
		"Update", meta)

	return &result, nil
}

func rateError(from, to string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s to %s", ErrRateUnavailable, from, to)
	}
	return fmt.Errorf("%w: %s to %s: %v", ErrRateUnavailable, from, to, err)
}
