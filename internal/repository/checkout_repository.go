package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sareehouse/internal/models"
)

// CheckoutRepositoryInterface groups the writes checkout performs inside
// one transaction: order creation, stock decrement, cart clearing.
// InvalidateProducts runs after commit so cached product rows do not keep
// serving pre-checkout stock.
type CheckoutRepositoryInterface interface {
	WithTransaction(fn func(txRepo CheckoutRepositoryInterface) error) error
	GetCartForCheckout(userID uuid.UUID) (*models.Cart, error)
	CreateOrder(order *models.Order) error
	CreateOrderItems(items []models.OrderItem) error
	DecrementStock(productID uuid.UUID, quantity int) error
	ClearCart(cartID uuid.UUID) error
	InvalidateProducts(productIDs []uuid.UUID)
}

type CheckoutRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

var _ CheckoutRepositoryInterface = (*CheckoutRepository)(nil)

func NewCheckoutRepository(db *gorm.DB, redis *redis.Client) *CheckoutRepository {
	return &CheckoutRepository{db: db, redis: redis}
}

// WithTransaction runs fn against a repository bound to one database
// transaction; any error rolls every sub-step back.
func (r *CheckoutRepository) WithTransaction(fn func(txRepo CheckoutRepositoryInterface) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&CheckoutRepository{db: tx, redis: r.redis})
	})
}

// GetCartForCheckout loads the cart with items and live product rows,
// locking the product rows when called inside a transaction.
func (r *CheckoutRepository) GetCartForCheckout(userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items.Product", func(db *gorm.DB) *gorm.DB {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}).Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

func (r *CheckoutRepository) CreateOrder(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *CheckoutRepository) CreateOrderItems(items []models.OrderItem) error {
	return r.db.Create(&items).Error
}

// DecrementStock atomically reduces stock and bumps sales_count, refusing
// when current stock is below the requested quantity.
func (r *CheckoutRepository) DecrementStock(productID uuid.UUID, quantity int) error {
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"stock":       gorm.Expr("stock - ?", quantity),
			"sales_count": gorm.Expr("sales_count + ?", quantity),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *CheckoutRepository) ClearCart(cartID uuid.UUID) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// InvalidateProducts drops the cached rows for products whose stock the
// checkout just decremented.
func (r *CheckoutRepository) InvalidateProducts(productIDs []uuid.UUID) {
	if r.redis == nil {
		return
	}
	ctx := context.Background()
	for _, id := range productIDs {
		r.redis.Del(ctx, productCacheKey(id))
	}
}
