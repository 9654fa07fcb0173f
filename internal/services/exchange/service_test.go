package exchange

import (
	"context"
	"testing"

	"vesta/internal/models"
	"vesta/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCountryRepo struct {
	mock.Mock
}

func (m *mockCountryRepo) GetByCurrencyCode(code string) (*models.Country, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Country), args.Error(1)
}

func (m *mockCountryRepo) GetByCountryCode(code string) (*models.Country, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Country), args.Error(1)
}

func (m *mockCountryRepo) List(limit, offset int) ([]models.Country, int64, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]models.Country), args.Get(1).(int64), args.Error(2)
}

func (m *mockCountryRepo) Save(country *models.Country) error {
	return m.Called(country).Error(0)
}

func countryWithRate(currency, rate string) *models.Country {
	return &models.Country{CurrencyCode: currency, ExchangeRate: rate}
}

func TestGetRate(t *testing.T) {
	t.Run("derives pair rate from USD reference rates", func(t *testing.T) {
		repo := new(mockCountryRepo)
		repo.On("GetByCurrencyCode", "NGN").Return(countryWithRate("NGN", "1500"), nil)
		repo.On("GetByCurrencyCode", "USD").Return(countryWithRate("USD", "1"), nil)
		s := NewService(repo, nil)

		rate, err := s.GetRate(context.Background(), "NGN", "USD")
		require.NoError(t, err)

		// 1 / 1500
		expected := decimal.NewFromInt(1).Div(decimal.NewFromInt(1500))
		assert.True(t, rate.Equal(expected), "got %s", rate)
		repo.AssertExpectations(t)
	})

	t.Run("inverse direction inverts the rate", func(t *testing.T) {
		repo := new(mockCountryRepo)
		repo.On("GetByCurrencyCode", "USD").Return(countryWithRate("USD", "1"), nil)
		repo.On("GetByCurrencyCode", "NGN").Return(countryWithRate("NGN", "1500"), nil)
		s := NewService(repo, nil)

		rate, err := s.GetRate(context.Background(), "USD", "NGN")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.NewFromInt(1500)), "got %s", rate)
	})

	t.Run("unknown currency is unavailable", func(t *testing.T) {
		repo := new(mockCountryRepo)
		repo.On("GetByCurrencyCode", "XXX").Return(nil, repositories.ErrCountryNotFound)
		s := NewService(repo, nil)

		_, err := s.GetRate(context.Background(), "XXX", "USD")
		assert.ErrorIs(t, err, ErrRateUnavailable)
	})

	t.Run("zero reference rate is unavailable", func(t *testing.T) {
		repo := new(mockCountryRepo)
		repo.On("GetByCurrencyCode", "OLD").Return(countryWithRate("OLD", "0"), nil)
		repo.On("GetByCurrencyCode", "USD").Return(countryWithRate("USD", "1"), nil)
		s := NewService(repo, nil)

		_, err := s.GetRate(context.Background(), "OLD", "USD")
		assert.ErrorIs(t, err, ErrRateUnavailable)
	})

	t.Run("malformed stored rate is unavailable", func(t *testing.T) {
		repo := new(mockCountryRepo)
		repo.On("GetByCurrencyCode", "BAD").Return(countryWithRate("BAD", "n/a"), nil)
		s := NewService(repo, nil)

		_, err := s.GetRate(context.Background(), "BAD", "USD")
		assert.ErrorIs(t, err, ErrRateUnavailable)
	})
}

func TestServiceConvert(t *testing.T) {
	t.Run("rounds half-up to two places", func(t *testing.T) {
		repo := new(mockCountryRepo)
		repo.On("GetByCurrencyCode", "NGN").Return(countryWithRate("NGN", "1500"), nil)
		repo.On("GetByCurrencyCode", "USD").Return(countryWithRate("USD", "1"), nil)
		s := NewService(repo, nil)

		// 507.50 NGN at 1/1500 = 0.3383... rounds to 0.34
		rate, converted, err := s.Convert(context.Background(), "NGN", "USD", decimal.RequireFromString("507.50"))
		require.NoError(t, err)
		assert.NotEmpty(t, rate)
		assert.True(t, converted.Equal(decimal.RequireFromString("0.34")), "got %s", converted)
	})

	t.Run("identity pair short-circuits at rate 1", func(t *testing.T) {
		repo := new(mockCountryRepo)
		s := NewService(repo, nil)

		amount := decimal.RequireFromString("42.42")
		rate, converted, err := s.Convert(context.Background(), "NGN", "NGN", amount)
		require.NoError(t, err)
		assert.Equal(t, "1", rate)
		assert.True(t, converted.Equal(amount))
		repo.AssertNotCalled(t, "GetByCurrencyCode", mock.Anything)
	})

	t.Run("propagates unavailable rate", func(t *testing.T) {
		repo := new(mockCountryRepo)
		repo.On("GetByCurrencyCode", "XXX").Return(nil, repositories.ErrCountryNotFound)
		s := NewService(repo, nil)

		_, _, err := s.Convert(context.Background(), "XXX", "USD", decimal.NewFromInt(10))
		assert.ErrorIs(t, err, ErrRateUnavailable)
	})
}
