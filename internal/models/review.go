package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStatus represents the moderation status of a review
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// IsValid reports whether s is a known review status.
func (s ReviewStatus) IsValid() bool {
	return s == ReviewStatusPending || s == ReviewStatusApproved || s == ReviewStatusRejected
}

// Review represents a customer product review. New reviews start pending
// and become publicly visible only after admin approval.
type Review struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID    `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product"`
	ProductID uuid.UUID    `json:"productId" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product;index:idx_reviews_product"`
	Rating    int          `json:"rating" gorm:"not null"`
	Comment   string       `json:"comment" gorm:"type:text"`
	Status    ReviewStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index:idx_reviews_status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// CreateReviewRequest represents a review submission
type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	OrderID   uuid.UUID `json:"orderId" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment"`
}

// UpdateReviewStatusRequest represents an admin moderation decision
type UpdateReviewStatusRequest struct {
	Status ReviewStatus `json:"status" binding:"required"`
}

// ReviewView is a review reshaped for public display with the reviewer's
// resolved display name.
type ReviewView struct {
	Review
	CustomerName string `json:"customerName"`
}

// TableName returns the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}
