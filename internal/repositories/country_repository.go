package repositories

import (
	"errors"
	"fmt"

	"vesta/internal/models"

	"gorm.io/gorm"
)

var ErrCountryNotFound = errors.New("country not found")

// CountryRepository serves the currency reference data consumed by the
// exchange service.
type CountryRepository interface {
	GetByCurrencyCode(code string) (*models.Country, error)
	GetByCountryCode(code string) (*models.Country, error)
	List(limit, offset int) ([]models.Country, int64, error)
	Save(country *models.Country) error
}

type countryRepository struct {
	db *gorm.DB
}

func NewCountryRepository(db *gorm.DB) CountryRepository {
	return &countryRepository{db: db}
}

func (r *countryRepository) GetByCurrencyCode(code string) (*models.Country, error) {
	var country models.Country
	err := r.db.Where("currency_code = ?", code).First(&country).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCountryNotFound
		}
		return nil, fmt.Errorf("failed to get country by currency: %w", err)
	}
	return &country, nil
}

func (r *countryRepository) GetByCountryCode(code string) (*models.Country, error) {
	var country models.Country
	err := r.db.Where("country_code = ?", code).First(&country).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCountryNotFound
		}
		return nil, fmt.Errorf("failed to get country: %w", err)
	}
	return &country, nil
}

func (r *countryRepository) List(limit, offset int) ([]models.Country, int64, error) {
	var (
		countries []models.Country
		total     int64
	)
	if err := r.db.Model(&models.Country{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count countries: %w", err)
	}
	err := r.db.Order("name ASC").Limit(limit).Offset(offset).Find(&countries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, total, nil
}

func (r *countryRepository) Save(country *models.Country) error {
	if err := r.db.Save(country).Error; err != nil {
		return fmt.Errorf("failed to save country: %w", err)
	}
	return nil
}
