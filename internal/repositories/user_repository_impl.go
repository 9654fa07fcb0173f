package repositories

import (
	"context"
	"log"

	"vesta/internal/models"
	"vesta/internal/repositories/cache"

	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB, cache *cache.CacheService) UserRepository {
	return &userRepository{
		db:    db,
		cache: cache,
	}
}

func (r *userRepository) Create(user *models.User) error {
	result := r.db.Create(user)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	// Try cache first
	key := r.cache.GenerateKey("user", "id", id)
	if user, err := r.cache.GetUser(context.Background(), key); err == nil {
		return user, nil
	}

	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := r.cache.CacheUser(context.Background(), &user); err != nil {
		log.Printf("Failed to cache user %d: %v", user.ID, err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &user, nil
}

func (r *userRepository) GetByPhone(phone string) (*models.User, error) {
	var user models.User
	result := r.db.Where("phone = ?", phone).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	result := r.db.Save(user)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	r.invalidate(user.ID)
	return nil
}

func (r *userRepository) IncrementTokenVersion(userID uint) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1"))
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	r.invalidate(userID)
	return nil
}

func (r *userRepository) invalidate(userID uint) {
	key := r.cache.GenerateKey("user", "id", userID)
	if err := r.cache.Delete(context.Background(), key); err != nil {
		log.Printf("Failed to invalidate user cache %d: %v", userID, err)
	}
}
