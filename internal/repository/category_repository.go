package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"sareehouse/internal/models"
)

// Cache TTLs; categories rarely change
const (
	categoryCacheTTL     = 30 * time.Minute
	categoryListCacheTTL = 15 * time.Minute
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepositoryInterface defines category persistence operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id uuid.UUID) (*models.Category, error)
	GetAll() ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id uuid.UUID) error
}

type CategoryRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

var _ CategoryRepositoryInterface = (*CategoryRepository)(nil)

func NewCategoryRepository(db *gorm.DB, redis *redis.Client) *CategoryRepository {
	return &CategoryRepository{db: db, redis: redis}
}

func (r *CategoryRepository) invalidateCaches(ctx context.Context, categoryID *uuid.UUID) {
	if r.redis == nil {
		return
	}
	if categoryID != nil {
		r.redis.Del(ctx, fmt.Sprintf("sareehouse:categories:category:%s", categoryID))
	}
	r.redis.Del(ctx, "sareehouse:categories:list")
}

func (r *CategoryRepository) Create(category *models.Category) error {
	err := r.db.Create(category).Error
	if err == nil {
		r.invalidateCaches(context.Background(), nil)
	}
	return err
}

func (r *CategoryRepository) GetByID(id uuid.UUID) (*models.Category, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("sareehouse:categories:category:%s", id)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var category models.Category
			if err := json.Unmarshal([]byte(val), &category); err == nil {
				return &category, nil
			}
		}
	}

	var category models.Category
	err := r.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(category); err == nil {
			r.redis.Set(ctx, cacheKey, data, categoryCacheTTL)
		}
	}

	return &category, nil
}

func (r *CategoryRepository) GetAll() ([]models.Category, error) {
	ctx := context.Background()
	const cacheKey = "sareehouse:categories:list"

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var categories []models.Category
			if err := json.Unmarshal([]byte(val), &categories); err == nil {
				return categories, nil
			}
		}
	}

	var categories []models.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(categories); err == nil {
			r.redis.Set(ctx, cacheKey, data, categoryListCacheTTL)
		}
	}

	return categories, nil
}

func (r *CategoryRepository) Update(category *models.Category) error {
	var existing models.Category
	err := r.db.Where("id = ?", category.ID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	err = r.db.Save(category).Error
	if err == nil {
		r.invalidateCaches(context.Background(), &category.ID)
	}
	return err
}

func (r *CategoryRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	r.invalidateCaches(context.Background(), &id)
	return nil
}
