package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"vesta/internal/middleware"
	"vesta/internal/models"
	"vesta/internal/repositories"

	"github.com/gofiber/fiber/v2"
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

// upsertApp mounts the admin upsert route behind claims injected for the
// given role, standing in for the JWT middleware.
func upsertApp(repo repositories.CountryRepository, role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("claims", &models.UserClaims{UserID: 1, Role: role})
		return c.Next()
	})
	handler := NewCountryHandler(repo)
	app.Put("/admin/countries", middleware.AdminAuthMiddleware, handler.UpsertCountry)
	return app
}

func doUpsert(t *testing.T, app *fiber.App, body interface{}) int {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPut, "/admin/countries", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestUpsertCountry(t *testing.T) {
	validBody := fiber.Map{
		"name":          "Nigeria",
		"country_code":  "NG",
		"currency_code": "NGN",
		"exchange_rate": "1500",
	}

	t.Run("creates a missing row", func(t *testing.T) {
		repo := new(mockCountryRepo)
		repo.On("GetByCountryCode", "NG").Return(nil, repositories.ErrCountryNotFound)
		repo.On("Save", mock.MatchedBy(func(c *models.Country) bool {
			return c.CountryCode == "NG" && c.CurrencyCode == "NGN" && c.ExchangeRate == "1500"
		})).Return(nil)

		status := doUpsert(t, upsertApp(repo, "admin"), validBody)
		assert.Equal(t, fiber.StatusCreated, status)
		repo.AssertExpectations(t)
	})

	t.Run("updates an existing row", func(t *testing.T) {
		repo := new(mockCountryRepo)
		existing := &models.Country{Name: "Nigeria", CountryCode: "NG", CurrencyCode: "NGN", ExchangeRate: "1450"}
		repo.On("GetByCountryCode", "NG").Return(existing, nil)
		repo.On("Save", mock.MatchedBy(func(c *models.Country) bool {
			return c.ExchangeRate == "1500"
		})).Return(nil)

		status := doUpsert(t, upsertApp(repo, "admin"), validBody)
		assert.Equal(t, fiber.StatusOK, status)
		repo.AssertExpectations(t)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		repo := new(mockCountryRepo)

		status := doUpsert(t, upsertApp(repo, "user"), validBody)
		assert.Equal(t, fiber.StatusForbidden, status)
		repo.AssertNotCalled(t, "Save", mock.Anything)
	})

	t.Run("non-positive rate is rejected", func(t *testing.T) {
		repo := new(mockCountryRepo)

		status := doUpsert(t, upsertApp(repo, "admin"), fiber.Map{
			"name":          "Nigeria",
			"country_code":  "NG",
			"currency_code": "NGN",
			"exchange_rate": "0",
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
		repo.AssertNotCalled(t, "Save", mock.Anything)
	})

	t.Run("malformed rate is rejected", func(t *testing.T) {
		repo := new(mockCountryRepo)

		status := doUpsert(t, upsertApp(repo, "admin"), fiber.Map{
			"name":          "Nigeria",
			"country_code":  "NG",
			"currency_code": "NGN",
			"exchange_rate": "about 1500",
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
		repo.AssertNotCalled(t, "Save", mock.Anything)
	})
}
