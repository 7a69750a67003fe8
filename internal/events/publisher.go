package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Subjects published by the storefront
const (
	SubjectOrderPlaced        = "order.placed"
	SubjectOrderStatusChanged = "order.status_changed"
	SubjectOrderCancelled     = "order.cancelled"
	SubjectReviewSubmitted    = "review.submitted"
	SubjectReviewModerated    = "review.moderated"
)

// OrderEvent is the payload for order lifecycle events
type OrderEvent struct {
	OrderID   uuid.UUID `json:"orderId"`
	UserID    uuid.UUID `json:"userId"`
	Status    string    `json:"status"`
	Total     float64   `json:"total,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ReviewEvent is the payload for review lifecycle events
type ReviewEvent struct {
	ReviewID  uuid.UUID `json:"reviewId"`
	ProductID uuid.UUID `json:"productId"`
	UserID    uuid.UUID `json:"userId"`
	Rating    int       `json:"rating,omitempty"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher emits storefront events over NATS. All publishes are best
// effort: a nil Publisher or a lost connection never fails the caller.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS. Returns an error when the server is
// unreachable; callers treat that as "events disabled".
func NewPublisher(url string, logger *logrus.Logger) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("sareehouse"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "events.publisher"),
	}, nil
}

// Close drains the connection
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Drain()
}

func (p *Publisher) publish(subject string, payload interface{}) {
	if p == nil || p.conn == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to encode event")
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to publish event")
	}
}

// PublishOrderPlaced publishes an order.placed event
func (p *Publisher) PublishOrderPlaced(orderID, userID uuid.UUID, total float64) {
	p.publish(SubjectOrderPlaced, OrderEvent{
		OrderID:   orderID,
		UserID:    userID,
		Status:    "pending",
		Total:     total,
		Timestamp: time.Now(),
	})
}

// PublishOrderStatusChanged publishes an order.status_changed event
func (p *Publisher) PublishOrderStatusChanged(orderID, userID uuid.UUID, status string) {
	p.publish(SubjectOrderStatusChanged, OrderEvent{
		OrderID:   orderID,
		UserID:    userID,
		Status:    status,
		Timestamp: time.Now(),
	})
}

// PublishOrderCancelled publishes an order.cancelled event
func (p *Publisher) PublishOrderCancelled(orderID, userID uuid.UUID) {
	p.publish(SubjectOrderCancelled, OrderEvent{
		OrderID:   orderID,
		UserID:    userID,
		Status:    "cancelled",
		Timestamp: time.Now(),
	})
}

// PublishReviewSubmitted publishes a review.submitted event
func (p *Publisher) PublishReviewSubmitted(reviewID, productID, userID uuid.UUID, rating int) {
	p.publish(SubjectReviewSubmitted, ReviewEvent{
		ReviewID:  reviewID,
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Status:    "pending",
		Timestamp: time.Now(),
	})
}

// PublishReviewModerated publishes a review.moderated event
func (p *Publisher) PublishReviewModerated(reviewID, productID, userID uuid.UUID, status string) {
	p.publish(SubjectReviewModerated, ReviewEvent{
		ReviewID:  reviewID,
		ProductID: productID,
		UserID:    userID,
		Status:    status,
		Timestamp: time.Now(),
	})
}
