package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sareehouse/internal/models"
)

var ErrReviewNotFound = errors.New("review not found")

// ReviewRepositoryInterface defines review persistence operations
type ReviewRepositoryInterface interface {
	Create(review *models.Review) error
	GetByID(id uuid.UUID) (*models.Review, error)
	ListAll() ([]models.Review, error)
	ListApproved(productID *uuid.UUID) ([]models.Review, error)
	ExistsForUserAndProduct(userID, productID uuid.UUID) (bool, error)
	UpdateStatus(reviewID uuid.UUID, status models.ReviewStatus) error
	Delete(reviewID uuid.UUID) error
	CountSince(cutoff time.Time) (int64, error)
}

type ReviewRepository struct {
	db *gorm.DB
}

var _ ReviewRepositoryInterface = (*ReviewRepository)(nil)

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) GetByID(id uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("id = ?", id).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) ListAll() ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

// ListApproved is the public read path, optionally scoped to one product
func (r *ReviewRepository) ListApproved(productID *uuid.UUID) ([]models.Review, error) {
	query := r.db.Where("status = ?", models.ReviewStatusApproved)
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}

	var reviews []models.Review
	err := query.Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) ExistsForUserAndProduct(userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) UpdateStatus(reviewID uuid.UUID, status models.ReviewStatus) error {
	result := r.db.Model(&models.Review{}).
		Where("id = ?", reviewID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(reviewID uuid.UUID) error {
	result := r.db.Where("id = ?", reviewID).Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) CountSince(cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Where("created_at >= ?", cutoff).Count(&count).Error
	return count, err
}
