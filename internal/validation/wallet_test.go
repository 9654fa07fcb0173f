package validation

import (
	"testing"

	"vesta/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func domainMessage(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	derr, ok := err.(*errors.DomainError)
	require.True(t, ok, "expected a DomainError, got %T", err)
	return derr.Message
}

func TestFundWalletInput(t *testing.T) {
	assert.NoError(t, ValidateStruct(FundWalletInput{Amount: 100000, Currency: "NGN"}))

	msg := domainMessage(t, ValidateStruct(FundWalletInput{Amount: 0, Currency: "NGN"}))
	assert.Contains(t, msg, "amount")

	msg = domainMessage(t, ValidateStruct(FundWalletInput{Amount: 100, Currency: "ngn"}))
	assert.Contains(t, msg, "currency code")

	msg = domainMessage(t, ValidateStruct(FundWalletInput{Amount: 100, Currency: "NAIRA"}))
	assert.Contains(t, msg, "currency code")
}

func TestConvertCurrencyInput(t *testing.T) {
	assert.NoError(t, ValidateStruct(ConvertCurrencyInput{
		FromCurrency: "NGN",
		ToCurrency:   "USD",
		Amount:       50000,
	}))

	msg := domainMessage(t, ValidateStruct(ConvertCurrencyInput{
		FromCurrency: "NGN",
		ToCurrency:   "NGN",
		Amount:       50000,
	}))
	assert.Contains(t, msg, "differ")
}

func TestTradeCurrencyInput(t *testing.T) {
	assert.NoError(t, ValidateStruct(TradeCurrencyInput{
		BaseCurrency:  "USD",
		QuoteCurrency: "NGN",
		Amount:        1000,
		Action:        "buy",
	}))

	msg := domainMessage(t, ValidateStruct(TradeCurrencyInput{
		BaseCurrency:  "USD",
		QuoteCurrency: "NGN",
		Amount:        1000,
		Action:        "hold",
	}))
	assert.Contains(t, msg, "one of")
}
