package handlers

import (
	"errors"

	"vesta/internal/models"
	"vesta/internal/repositories"
	"vesta/internal/utils"
	"vesta/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CountryHandler struct {
	countryRepo repositories.CountryRepository
}

func NewCountryHandler(countryRepo repositories.CountryRepository) *CountryHandler {
	return &CountryHandler{
		countryRepo: countryRepo,
	}
}

// GetCountries lists the currency reference data, including the current
// USD-relative exchange rates.
func (h *CountryHandler) GetCountries(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	countries, total, err := h.countryRepo.List(limit, (page-1)*limit)
	if err != nil {
		return utils.InternalError(c, "Failed to get countries")
	}

	return utils.Success(c, fiber.Map{
		"countries": countries,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// UpsertCountry creates or updates a currency's reference row, keyed by
// country code. Cached pair rates expire on their own TTL, so a new rate
// takes effect within the hour.
func (h *CountryHandler) UpsertCountry(c *fiber.Ctx) error {
	var input validation.UpsertCountryInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if err := validation.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	rate, err := decimal.NewFromString(input.ExchangeRate)
	if err != nil || !rate.IsPositive() {
		return utils.BadRequest(c, "exchange_rate must be a positive decimal")
	}

	country, err := h.countryRepo.GetByCountryCode(input.CountryCode)
	switch {
	case err == nil:
		country.Name = input.Name
		country.CurrencyCode = input.CurrencyCode
		country.ExchangeRate = rate.String()
		if err := h.countryRepo.Save(country); err != nil {
			return utils.InternalError(c, "Failed to update country")
		}
		return utils.Success(c, fiber.Map{"country": country})
	case errors.Is(err, repositories.ErrCountryNotFound):
		country = &models.Country{
			Name:         input.Name,
			CountryCode:  input.CountryCode,
			CurrencyCode: input.CurrencyCode,
			ExchangeRate: rate.String(),
		}
		if err := h.countryRepo.Save(country); err != nil {
			return utils.InternalError(c, "Failed to create country")
		}
		return utils.Created(c, fiber.Map{"country": country})
	default:
		return utils.InternalError(c, "Failed to get country")
	}
}
