package validation

// UpsertCountryInput is the admin payload for creating or updating a
// currency's reference row. ExchangeRate is the USD-relative rate as a
// decimal string.
type UpsertCountryInput struct {
	Name         string `json:"name" validate:"required"`
	CountryCode  string `json:"country_code" validate:"required,len=2,alpha,uppercase"`
	CurrencyCode string `json:"currency_code" validate:"required,len=3,alpha,uppercase"`
	ExchangeRate string `json:"exchange_rate" validate:"required"`
}
