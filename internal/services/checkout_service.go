package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"sareehouse/internal/events"
	"sareehouse/internal/models"
	"sareehouse/internal/repository"
)

var ErrEmptyCart = errors.New("cart is empty")

// CheckoutService converts a cart into a persisted order in one database
// transaction: order row with the denormalized shipping snapshot, order
// items at currently-displayed prices, per-item stock decrement, cart
// clearing. Any sub-step failure rolls the whole checkout back.
type CheckoutService struct {
	repo      repository.CheckoutRepositoryInterface
	publisher *events.Publisher
	logger    *logrus.Entry
}

func NewCheckoutService(repo repository.CheckoutRepositoryInterface, publisher *events.Publisher, logger *logrus.Logger) *CheckoutService {
	return &CheckoutService{
		repo:      repo,
		publisher: publisher,
		logger:    logger.WithField("component", "checkout"),
	}
}

// ProcessCheckout places the order for the user's current cart
func (s *CheckoutService) ProcessCheckout(userID uuid.UUID, req models.CheckoutRequest) (*models.Order, error) {
	snapshot, err := json.Marshal(req.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to encode shipping address: %w", err)
	}

	var order *models.Order
	var productIDs []uuid.UUID
	err = s.repo.WithTransaction(func(tx repository.CheckoutRepositoryInterface) error {
		cart, err := tx.GetCartForCheckout(userID)
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		var total float64
		orderItems := make([]models.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			if item.Product == nil {
				return repository.ErrProductNotFound
			}
			if item.Quantity > item.Product.Stock {
				return repository.ErrInsufficientStock
			}
			unitPrice := item.Product.FinalPrice()
			total += unitPrice * float64(item.Quantity)
			productIDs = append(productIDs, item.ProductID)
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
			})
		}

		order = &models.Order{
			UserID:          userID,
			Total:           total,
			Status:          models.OrderStatusPending,
			PaymentMethod:   req.PaymentMethod,
			ShippingAddress: datatypes.JSON(snapshot),
		}
		if err := tx.CreateOrder(order); err != nil {
			return err
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := tx.CreateOrderItems(orderItems); err != nil {
			return err
		}

		for _, item := range cart.Items {
			if err := tx.DecrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := tx.ClearCart(cart.ID); err != nil {
			return err
		}

		order.Items = orderItems
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The decrement bypassed the product cache; drop the stale entries so
	// stock checks and product reads see the post-checkout values.
	s.repo.InvalidateProducts(productIDs)

	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.Total,
	}).Info("Order placed")
	s.publisher.PublishOrderPlaced(order.ID, userID, order.Total)

	return order, nil
}
