package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sareehouse/internal/events"
	"sareehouse/internal/models"
	"sareehouse/internal/repository"
)

const anonymousReviewerName = "Anonymous User"

var ErrNotEligibleToReview = errors.New("not eligible to review this product")

// ReviewService gates review creation on purchase history and runs the
// admin moderation queue. New reviews start pending; only approved ones
// are publicly readable.
type ReviewService struct {
	reviews   repository.ReviewRepositoryInterface
	orders    repository.OrderRepositoryInterface
	users     repository.UserRepositoryInterface
	publisher *events.Publisher
	logger    *logrus.Entry
}

func NewReviewService(reviews repository.ReviewRepositoryInterface, orders repository.OrderRepositoryInterface, users repository.UserRepositoryInterface, publisher *events.Publisher, logger *logrus.Logger) *ReviewService {
	return &ReviewService{
		reviews:   reviews,
		orders:    orders,
		users:     users,
		publisher: publisher,
		logger:    logger.WithField("component", "reviews"),
	}
}

// CanReview reports whether the user may review the product against the
// given order. All four conditions must hold: the order exists and belongs
// to the user, it is completed, it contains the product, and the user has
// not already reviewed the product.
func (s *ReviewService) CanReview(userID, productID, orderID uuid.UUID) (bool, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return false, nil
		}
		return false, err
	}
	if order.UserID != userID {
		return false, nil
	}
	if order.Status != models.OrderStatusCompleted {
		return false, nil
	}

	containsProduct := false
	for _, item := range order.Items {
		if item.ProductID == productID {
			containsProduct = true
			break
		}
	}
	if !containsProduct {
		return false, nil
	}

	reviewed, err := s.reviews.ExistsForUserAndProduct(userID, productID)
	if err != nil {
		return false, err
	}
	return !reviewed, nil
}

// AddReview inserts a pending review after re-running the eligibility gate
func (s *ReviewService) AddReview(userID uuid.UUID, req models.CreateReviewRequest) (*models.Review, error) {
	eligible, err := s.CanReview(userID, req.ProductID, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrNotEligibleToReview
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Status:    models.ReviewStatusPending,
	}
	if err := s.reviews.Create(review); err != nil {
		return nil, err
	}

	s.publisher.PublishReviewSubmitted(review.ID, review.ProductID, userID, review.Rating)
	return review, nil
}

// ListAll returns every review for the moderation queue
func (s *ReviewService) ListAll() ([]models.ReviewView, error) {
	reviews, err := s.reviews.ListAll()
	if err != nil {
		return nil, err
	}
	return s.withReviewerNames(reviews), nil
}

// ApprovedReviews is the public read path, optionally scoped to a product
func (s *ReviewService) ApprovedReviews(productID *uuid.UUID) ([]models.ReviewView, error) {
	reviews, err := s.reviews.ListApproved(productID)
	if err != nil {
		return nil, err
	}
	return s.withReviewerNames(reviews), nil
}

// UpdateStatus flips a review's moderation status
func (s *ReviewService) UpdateStatus(reviewID uuid.UUID, status models.ReviewStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	review, err := s.reviews.GetByID(reviewID)
	if err != nil {
		return err
	}

	if err := s.reviews.UpdateStatus(reviewID, status); err != nil {
		return err
	}
	s.publisher.PublishReviewModerated(reviewID, review.ProductID, review.UserID, string(status))
	return nil
}

// DeleteReview hard deletes a review
func (s *ReviewService) DeleteReview(reviewID uuid.UUID) error {
	return s.reviews.Delete(reviewID)
}

func (s *ReviewService) withReviewerNames(reviews []models.Review) []models.ReviewView {
	userIDs := make([]uuid.UUID, 0, len(reviews))
	seen := make(map[uuid.UUID]bool)
	for _, review := range reviews {
		if !seen[review.UserID] {
			seen[review.UserID] = true
			userIDs = append(userIDs, review.UserID)
		}
	}

	profiles := make(map[uuid.UUID]models.Profile)
	if rows, err := s.users.GetProfilesByUserIDs(userIDs); err != nil {
		s.logger.WithError(err).Warn("Failed to fetch profiles for reviews")
	} else {
		for _, p := range rows {
			profiles[p.UserID] = p
		}
	}

	views := make([]models.ReviewView, 0, len(reviews))
	for _, review := range reviews {
		review := review
		profile, hasProfile := profiles[review.UserID]
		name := ResolveName(anonymousReviewerName, func() string {
			if !hasProfile {
				return ""
			}
			return profile.FullName()
		})
		views = append(views, models.ReviewView{Review: review, CustomerName: name})
	}
	return views
}
