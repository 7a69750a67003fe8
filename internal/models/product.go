package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a saree or ethnic-wear item in the catalog
type Product struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	Description string     `json:"description" gorm:"type:text"`
	Price       float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	Discount    float64    `json:"discount" gorm:"type:decimal(5,2);default:0"` // percent, 0-100
	CategoryID  *uuid.UUID `json:"categoryId" gorm:"type:uuid;index:idx_products_category"`
	ImageURL    string     `json:"imageUrl" gorm:"type:varchar(500)"`
	Stock       int        `json:"stock" gorm:"not null;default:0"`
	Featured    bool       `json:"featured" gorm:"default:false;index:idx_products_featured"`
	Bestseller  bool       `json:"bestseller" gorm:"default:false"`
	Rating      float64    `json:"rating" gorm:"type:decimal(3,2);default:0"`
	SalesCount  int        `json:"salesCount" gorm:"default:0"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"index:idx_products_created,sort:desc"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Category *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images   []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// FinalPrice returns the effective selling price after discount.
// Always <= Price.
func (p *Product) FinalPrice() float64 {
	if p.Discount > 0 {
		return p.Price * (1 - p.Discount/100)
	}
	return p.Price
}

// ProductImage represents an ordered gallery entry beyond the primary image
type ProductImage struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID    uuid.UUID `json:"productId" gorm:"type:uuid;not null;index:idx_product_images_product"`
	ImageURL     string    `json:"imageUrl" gorm:"type:varchar(500);not null"`
	DisplayOrder int       `json:"displayOrder" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Price       float64    `json:"price" binding:"required,gt=0"`
	Discount    float64    `json:"discount" binding:"min=0,max=100"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	ImageURL    string     `json:"imageUrl"`
	Stock       int        `json:"stock" binding:"min=0"`
	Featured    bool       `json:"featured"`
	Bestseller  bool       `json:"bestseller"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	Discount    *float64   `json:"discount,omitempty"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	Stock       *int       `json:"stock,omitempty"`
	Featured    *bool      `json:"featured,omitempty"`
	Bestseller  *bool      `json:"bestseller,omitempty"`
}

// ReorderImagesRequest re-persists the display order of every gallery entry
type ReorderImagesRequest struct {
	ImageIDs []uuid.UUID `json:"imageIds" binding:"required,min=1"`
}

// ProductListFilters narrows product listings
type ProductListFilters struct {
	CategoryID *uuid.UUID
	Featured   *bool
	Bestseller *bool
	Search     string
	Limit      int
	Offset     int
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// TableName returns the table name for the ProductImage model
func (ProductImage) TableName() string {
	return "product_images"
}
