package validation

import (
	stderrors "errors"
	"fmt"
	"strings"

	"vesta/internal/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FundWalletInput is the fund endpoint payload. Amount is in the smallest
// currency unit.
type FundWalletInput struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"required,len=3,alpha,uppercase"`
}

// ConvertCurrencyInput is the convert endpoint payload. Identity conversions
// are rejected here, before the ledger is involved.
type ConvertCurrencyInput struct {
	FromCurrency string `json:"from_currency" validate:"required,len=3,alpha,uppercase"`
	ToCurrency   string `json:"to_currency" validate:"required,len=3,alpha,uppercase,nefield=FromCurrency"`
	Amount       int64  `json:"amount" validate:"required,gt=0"`
}

// TradeCurrencyInput is the trade endpoint payload. Amount is in the
// smallest unit of the base currency.
type TradeCurrencyInput struct {
	BaseCurrency  string `json:"base_currency" validate:"required,len=3,alpha,uppercase"`
	QuoteCurrency string `json:"quote_currency" validate:"required,len=3,alpha,uppercase,nefield=BaseCurrency"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	Action        string `json:"action" validate:"required,oneof=buy sell"`
}

// ValidateStruct runs the struct tags and flattens the first failure into a
// DomainError the handlers can return directly.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return &errors.DomainError{
			Code:    "INVALID_REQUEST",
			Message: "invalid request payload",
		}
	}

	fe := verrs[0]
	return &errors.DomainError{
		Code:    "INVALID_REQUEST",
		Message: fieldMessage(fe),
	}
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "len", "alpha", "uppercase":
		return fmt.Sprintf("%s must be a 3-letter uppercase currency code", field)
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", field, strings.ToLower(fe.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
