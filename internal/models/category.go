package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a product category (Silk Sarees, Cotton Sarees, Lehengas...)
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_name"`
	ImageURL  string    `json:"imageUrl" gorm:"type:varchar(500)"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"imageUrl"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
