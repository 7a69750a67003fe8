package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is a single cart per user, created lazily on first add
type Cart struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_carts_user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// CartItem is a line item; at most one row per (cart, product)
type CartItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CartID    uuid.UUID `json:"cartId" gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// AddToCartRequest represents an add-to-cart submission
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest updates a line item's quantity; <=0 removes it
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartView is the cart reshaped for display with live prices
type CartView struct {
	ID       uuid.UUID      `json:"id"`
	Items    []CartItemView `json:"items"`
	Subtotal float64        `json:"subtotal"`
	Count    int            `json:"count"`
}

// CartItemView is a line item with its current product display data
type CartItemView struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"productId"`
	Name       string    `json:"name"`
	ImageURL   string    `json:"imageUrl"`
	Price      float64   `json:"price"`
	Discount   float64   `json:"discount"`
	FinalPrice float64   `json:"finalPrice"`
	Quantity   int       `json:"quantity"`
	Stock      int       `json:"stock"`
	LineTotal  float64   `json:"lineTotal"`
}

// TableName returns the table name for the Cart model
func (Cart) TableName() string {
	return "carts"
}

// TableName returns the table name for the CartItem model
func (CartItem) TableName() string {
	return "cart_items"
}
