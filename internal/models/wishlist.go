package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem is a membership entry; at most one row per (user, product)
type WishlistItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_wishlists_user_product"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;uniqueIndex:idx_wishlists_user_product"`
	CreatedAt time.Time `json:"createdAt"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// AddToWishlistRequest represents a wishlist add
type AddToWishlistRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
}

// TableName returns the table name for the WishlistItem model
func (WishlistItem) TableName() string {
	return "wishlists"
}
