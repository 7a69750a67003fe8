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

const productCacheTTL = 10 * time.Minute

var (
	ErrProductNotFound = errors.New("product not found")
	ErrImageNotFound   = errors.New("product image not found")
)

// ProductRepositoryInterface defines product and gallery persistence operations
type ProductRepositoryInterface interface {
	Create(product *models.Product) error
	GetByID(id uuid.UUID) (*models.Product, error)
	List(filters models.ProductListFilters) ([]models.Product, int64, error)
	Update(product *models.Product) error
	Delete(id uuid.UUID) error
	Count() (int64, error)
	CountLowStock(threshold int) (int64, error)
	CountByCategory(categoryID uuid.UUID) (int64, error)
	GetAll() ([]models.Product, error)

	AddImage(image *models.ProductImage) error
	GetImages(productID uuid.UUID) ([]models.ProductImage, error)
	DeleteImage(productID, imageID uuid.UUID) error
	ReorderImages(productID uuid.UUID, imageIDs []uuid.UUID) error
}

type ProductRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

var _ ProductRepositoryInterface = (*ProductRepository)(nil)

func NewProductRepository(db *gorm.DB, redis *redis.Client) *ProductRepository {
	return &ProductRepository{db: db, redis: redis}
}

func productCacheKey(productID uuid.UUID) string {
	return fmt.Sprintf("sareehouse:products:product:%s", productID)
}

func (r *ProductRepository) invalidateCache(ctx context.Context, productID uuid.UUID) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, productCacheKey(productID))
}

func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *ProductRepository) GetByID(id uuid.UUID) (*models.Product, error) {
	ctx := context.Background()
	cacheKey := productCacheKey(id)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(val), &product); err == nil {
				return &product, nil
			}
		}
	}

	var product models.Product
	err := r.db.Preload("Category").Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC")
	}).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(product); err == nil {
			r.redis.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}

	return &product, nil
}

func (r *ProductRepository) List(filters models.ProductListFilters) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.Model(&models.Product{})

	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}
	if filters.Bestseller != nil {
		query = query.Where("bestseller = ?", *filters.Bestseller)
	}
	if filters.Search != "" {
		term := "%" + filters.Search + "%"
		query = query.Where("(name ILIKE ? OR description ILIKE ?)", term, term)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("Category").Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductRepository) Update(product *models.Product) error {
	var existing models.Product
	err := r.db.Where("id = ?", product.ID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	err = r.db.Save(product).Error
	if err == nil {
		r.invalidateCache(context.Background(), product.ID)
	}
	return err
}

func (r *ProductRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	r.invalidateCache(context.Background(), id)
	return nil
}

func (r *ProductRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *ProductRepository) CountLowStock(threshold int) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("stock <= ?", threshold).Count(&count).Error
	return count, err
}

func (r *ProductRepository) CountByCategory(categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// GetAll fetches every product row; the analytics aggregator joins these
// in memory against order items.
func (r *ProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Find(&products).Error
	return products, err
}

func (r *ProductRepository) AddImage(image *models.ProductImage) error {
	err := r.db.Create(image).Error
	if err == nil {
		r.invalidateCache(context.Background(), image.ProductID)
	}
	return err
}

func (r *ProductRepository) GetImages(productID uuid.UUID) ([]models.ProductImage, error) {
	var images []models.ProductImage
	err := r.db.Where("product_id = ?", productID).
		Order("display_order ASC").
		Find(&images).Error
	return images, err
}

func (r *ProductRepository) DeleteImage(productID, imageID uuid.UUID) error {
	result := r.db.Where("id = ? AND product_id = ?", imageID, productID).
		Delete(&models.ProductImage{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrImageNotFound
	}
	r.invalidateCache(context.Background(), productID)
	return nil
}

// ReorderImages re-persists every affected row's display order in the
// sequence given.
func (r *ProductRepository) ReorderImages(productID uuid.UUID, imageIDs []uuid.UUID) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for position, imageID := range imageIDs {
			result := tx.Model(&models.ProductImage{}).
				Where("id = ? AND product_id = ?", imageID, productID).
				Update("display_order", position)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrImageNotFound
			}
		}
		return nil
	})
	if err == nil {
		r.invalidateCache(context.Background(), productID)
	}
	return err
}
