package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sareehouse/internal/models"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// OrderRepositoryInterface defines order persistence operations
type OrderRepositoryInterface interface {
	GetByID(id uuid.UUID) (*models.Order, error)
	ListAll() ([]models.Order, error)
	ListByUser(userID uuid.UUID) ([]models.Order, error)
	UpdateStatus(orderID uuid.UUID, status models.OrderStatus) error
	Delete(orderID uuid.UUID) error
	GetAllItems() ([]models.OrderItem, error)
}

type OrderRepository struct {
	db *gorm.DB
}

var _ OrderRepositoryInterface = (*OrderRepository)(nil)

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) GetByID(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items.Product").Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListAll returns every order with items and product display data joined
func (r *OrderRepository) ListAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListByUser(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) UpdateStatus(orderID uuid.UUID, status models.OrderStatus) error {
	result := r.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Delete removes order items first, then the order. The store is not
// assumed to cascade.
func (r *OrderRepository) Delete(orderID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", orderID).Delete(&models.Order{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return nil
	})
}

// GetAllItems fetches every order item row for in-memory aggregation
func (r *OrderRepository) GetAllItems() ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.Find(&items).Error
	return items, err
}
