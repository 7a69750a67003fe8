package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sareehouse/internal/models"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartRepositoryInterface defines cart persistence operations
type CartRepositoryInterface interface {
	GetOrCreate(userID uuid.UUID) (*models.Cart, error)
	GetByUser(userID uuid.UUID) (*models.Cart, error)
	GetItem(cartID, productID uuid.UUID) (*models.CartItem, error)
	GetItemByID(itemID uuid.UUID) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQuantity(itemID uuid.UUID, quantity int) error
	DeleteItem(itemID uuid.UUID) error
	ClearCart(cartID uuid.UUID) error
}

type CartRepository struct {
	db *gorm.DB
}

var _ CartRepositoryInterface = (*CartRepository)(nil)

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// GetOrCreate returns the user's cart, creating a row on first use
func (r *CartRepository) GetOrCreate(userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := r.db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetByUser returns the cart with items and live product rows preloaded
func (r *CartRepository) GetByUser(userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) GetItem(cartID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *CartRepository) GetItemByID(itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Preload("Product").Where("id = ?", itemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *CartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

func (r *CartRepository) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	result := r.db.Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) DeleteItem(itemID uuid.UUID) error {
	result := r.db.Where("id = ?", itemID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) ClearCart(cartID uuid.UUID) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
