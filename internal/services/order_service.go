package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sareehouse/internal/events"
	"sareehouse/internal/models"
	"sareehouse/internal/repository"
)

const unknownCustomerName = "Unknown Customer"

var (
	ErrNotCancellable = errors.New("order can no longer be cancelled")
	ErrNotOrderOwner  = errors.New("order does not belong to this user")
	ErrInvalidStatus  = errors.New("invalid order status")
)

// NameResolver produces one candidate display name; empty means "no answer"
type NameResolver func() string

// ResolveName tries resolvers in order and returns the first non-empty
// result, falling back to fallback.
func ResolveName(fallback string, resolvers ...NameResolver) string {
	for _, resolve := range resolvers {
		if name := resolve(); name != "" {
			return name
		}
	}
	return fallback
}

// AdminChecker reports whether a user holds the admin role
type AdminChecker interface {
	IsAdmin(userID uuid.UUID) bool
}

// OrderService exposes order reads and transitions. The admin listing
// resolves each order's customer display name through the fallback chain
// profile name, shipping snapshot name, account email.
type OrderService struct {
	orders    repository.OrderRepositoryInterface
	users     repository.UserRepositoryInterface
	admin     AdminChecker
	publisher *events.Publisher
	logger    *logrus.Entry
}

func NewOrderService(orders repository.OrderRepositoryInterface, users repository.UserRepositoryInterface, admin AdminChecker, publisher *events.Publisher, logger *logrus.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		users:     users,
		admin:     admin,
		publisher: publisher,
		logger:    logger.WithField("component", "orders"),
	}
}

// ListOrders returns every order for the admin back office. Fails closed:
// a non-admin caller gets an empty list, not an error page.
func (s *OrderService) ListOrders(callerID uuid.UUID) ([]models.OrderView, error) {
	if !s.admin.IsAdmin(callerID) {
		s.logger.WithField("user_id", callerID).Warn("Non-admin attempted to list all orders")
		return []models.OrderView{}, nil
	}

	orders, err := s.orders.ListAll()
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, len(orders))
	seen := make(map[uuid.UUID]bool)
	for _, order := range orders {
		if !seen[order.UserID] {
			seen[order.UserID] = true
			userIDs = append(userIDs, order.UserID)
		}
	}

	// The order row does not reliably carry a usable customer identity on
	// its own, so emails and profile names are fetched separately.
	emails := make(map[uuid.UUID]string)
	if users, err := s.users.GetUsersByIDs(userIDs); err != nil {
		s.logger.WithError(err).Warn("Failed to fetch user emails for order list")
	} else {
		for _, u := range users {
			emails[u.ID] = u.Email
		}
	}

	profiles := make(map[uuid.UUID]models.Profile)
	if rows, err := s.users.GetProfilesByUserIDs(userIDs); err != nil {
		s.logger.WithError(err).Warn("Failed to fetch profiles for order list")
	} else {
		for _, p := range rows {
			profiles[p.UserID] = p
		}
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, order := range orders {
		order := order
		profile, hasProfile := profiles[order.UserID]
		name := ResolveName(unknownCustomerName,
			func() string {
				if !hasProfile {
					return ""
				}
				return profile.FullName()
			},
			func() string { return order.Address().FullName() },
			func() string { return emails[order.UserID] },
		)
		views = append(views, models.OrderView{
			Order:         order,
			CustomerName:  name,
			CustomerEmail: emails[order.UserID],
		})
	}

	return views, nil
}

// ListUserOrders returns one user's orders with product display data
func (s *OrderService) ListUserOrders(userID uuid.UUID) ([]models.Order, error) {
	return s.orders.ListByUser(userID)
}

// GetOrder returns one order scoped to its owner
func (s *OrderService) GetOrder(orderID, userID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotOrderOwner
	}
	return order, nil
}

// UpdateStatus sets an order's status unconditionally. There is no
// validated transition graph for admins; any status may follow any other.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, status models.OrderStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return err
	}

	if err := s.orders.UpdateStatus(orderID, status); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": orderID,
		"from":     order.Status,
		"to":       status,
	}).Info("Order status changed")
	s.publisher.PublishOrderStatusChanged(orderID, order.UserID, string(status))
	return nil
}

// CancelOrder is the customer self-cancel path, allowed only while the
// order is pending or processing.
func (s *OrderService) CancelOrder(orderID, userID uuid.UUID) error {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return ErrNotOrderOwner
	}
	if !order.Status.CustomerCancellable() {
		return ErrNotCancellable
	}

	if err := s.orders.UpdateStatus(orderID, models.OrderStatusCancelled); err != nil {
		return err
	}
	s.publisher.PublishOrderCancelled(orderID, userID)
	return nil
}

// DeleteOrder removes the order and its items
func (s *OrderService) DeleteOrder(orderID uuid.UUID) error {
	return s.orders.Delete(orderID)
}
