// Package exchange derives currency pair rates from USD-relative reference
// rates and caches them in Redis. The ledger consumes it as its rate
// provider.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"vesta/internal/repositories"
	"vesta/internal/repositories/cache"

	"github.com/shopspring/decimal"
)

const (
	rateCacheTTL     = time.Hour
	rateCachePrefix  = "fx:rate"
	identityRate     = "1"
	conversionPlaces = 2
)

// Service supplies exchange rates and conversions.
type Service interface {
	GetRate(ctx context.Context, from, to string) (decimal.Decimal, error)
	Convert(ctx context.Context, from, to string, amount decimal.Decimal) (rate string, converted decimal.Decimal, err error)
}

type service struct {
	countries repositories.CountryRepository
	cache     *cache.CacheService
}

func NewService(countries repositories.CountryRepository, cacheService *cache.CacheService) Service {
	if countries == nil {
		panic("country repository is required")
	}
	return &service{
		countries: countries,
		cache:     cacheService,
	}
}

// GetRate returns the from→to pair rate. Rates in the countries table are
// quoted per USD, so pair rate = to_rate / from_rate. Cached for an hour per
// pair.
func (s *service) GetRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	key := fmt.Sprintf("%s:%s:%s", rateCachePrefix, from, to)

	if s.cache != nil {
		var cached string
		if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
			if rate, err := decimal.NewFromString(cached); err == nil {
				return rate, nil
			}
		}
	}

	fromRate, err := s.usdRate(from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := s.usdRate(to)
	if err != nil {
		return decimal.Zero, err
	}
	if !fromRate.IsPositive() || !toRate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s to %s", ErrRateUnavailable, from, to)
	}

	rate := toRate.Div(fromRate)

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, key, rate.String(), rateCacheTTL); err != nil {
			log.Printf("failed to cache rate %s: %v", key, err)
		}
	}
	return rate, nil
}

// Convert applies the pair rate to a major-unit amount. The result is
// rounded half-up to two decimal places; identity pairs short-circuit at
// rate "1" so the ledger never performs a same-currency conversion.
func (s *service) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (string, decimal.Decimal, error) {
	if from == to {
		return identityRate, amount, nil
	}

	rate, err := s.GetRate(ctx, from, to)
	if err != nil {
		return "", decimal.Zero, err
	}
	if !rate.IsPositive() {
		return "", decimal.Zero, fmt.Errorf("%w: %s to %s", ErrRateUnavailable, from, to)
	}

	converted := amount.Mul(rate).Round(conversionPlaces)
	return rate.String(), converted, nil
}

func (s *service) usdRate(currency string) (decimal.Decimal, error) {
	country, err := s.countries.GetByCurrencyCode(currency)
	if err != nil {
		if errors.Is(err, repositories.ErrCountryNotFound) {
			return decimal.Zero, fmt.Errorf("%w: unknown currency %s", ErrRateUnavailable, currency)
		}
		return decimal.Zero, err
	}
	if country.ExchangeRate == "" {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s", ErrRateUnavailable, currency)
	}
	rate, err := decimal.NewFromString(country.ExchangeRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: malformed rate for %s", ErrRateUnavailable, currency)
	}
	return rate, nil
}
