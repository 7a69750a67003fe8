package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderStatus represents the lifecycle status of an order.
// Admins may set any status; customers may only cancel from
// pending or processing.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatuses lists every accepted status value.
var ValidOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	for _, v := range ValidOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CustomerCancellable reports whether a customer may self-cancel
// an order in this status.
func (s OrderStatus) CustomerCancellable() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

// ShippingAddress is the denormalized snapshot persisted on the order row
// at checkout time, independent of the user's current profile address.
type ShippingAddress struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	ZipCode   string `json:"zipCode" binding:"required"`
	Phone     string `json:"phone"`
}

// FullName returns the snapshot's display name, empty when neither part is set.
func (a *ShippingAddress) FullName() string {
	if a == nil {
		return ""
	}
	switch {
	case a.FirstName != "" && a.LastName != "":
		return a.FirstName + " " + a.LastName
	case a.FirstName != "":
		return a.FirstName
	case a.LastName != "":
		return a.LastName
	}
	return ""
}

// Order represents a placed order
type Order struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID          uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index:idx_orders_user"`
	Total           float64        `json:"total" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus    `json:"status" gorm:"type:varchar(20);not null;default:'pending';index:idx_orders_status"`
	PaymentMethod   string         `json:"paymentMethod" gorm:"type:varchar(50)"`
	ShippingAddress datatypes.JSON `json:"shippingAddress" gorm:"type:jsonb"`
	CreatedAt       time.Time      `json:"createdAt" gorm:"index:idx_orders_created,sort:desc"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// Address decodes the shipping snapshot; nil when the column is empty or malformed.
func (o *Order) Address() *ShippingAddress {
	if len(o.ShippingAddress) == 0 {
		return nil
	}
	var addr ShippingAddress
	if err := json.Unmarshal(o.ShippingAddress, &addr); err != nil {
		return nil
	}
	return &addr
}

// OrderItem captures a product line at order time; UnitPrice is the
// discounted price the customer saw, never re-read from the live product.
type OrderItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID   uuid.UUID `json:"orderId" gorm:"type:uuid;not null;index:idx_order_items_order"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index:idx_order_items_product"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	UnitPrice float64   `json:"unitPrice" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time `json:"createdAt"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// CheckoutRequest hands the shipping form and payment choice to checkout
type CheckoutRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required"`
}

// UpdateOrderStatusRequest represents an admin status change
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

// OrderView is an order reshaped for the admin list with a resolved
// customer display name.
type OrderView struct {
	Order
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
