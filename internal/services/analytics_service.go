package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sareehouse/internal/models"
	"sareehouse/internal/repository"
)

const (
	recentReviewWindow = 30 * 24 * time.Hour
	topProductsLimit   = 10
)

// AnalyticsService computes the admin dashboard numbers by in-memory
// reduction over fetched rows. Every method fails soft: on any fetch
// error it returns a zeroed default so the dashboard always renders.
type AnalyticsService struct {
	orders            repository.OrderRepositoryInterface
	products          repository.ProductRepositoryInterface
	users             repository.UserRepositoryInterface
	reviews           repository.ReviewRepositoryInterface
	lowStockThreshold int
	logger            *logrus.Entry
}

func NewAnalyticsService(orders repository.OrderRepositoryInterface, products repository.ProductRepositoryInterface, users repository.UserRepositoryInterface, reviews repository.ReviewRepositoryInterface, lowStockThreshold int, logger *logrus.Logger) *AnalyticsService {
	return &AnalyticsService{
		orders:            orders,
		products:          products,
		users:             users,
		reviews:           reviews,
		lowStockThreshold: lowStockThreshold,
		logger:            logger.WithField("component", "analytics"),
	}
}

// DashboardStats computes the summary widgets in a single pass over all
// order rows plus count queries.
func (s *AnalyticsService) DashboardStats() models.DashboardStats {
	stats := models.DashboardStats{}

	orders, err := s.orders.ListAll()
	if err != nil {
		s.logger.WithError(err).Warn("Failed to fetch orders for dashboard stats")
	} else {
		for _, order := range orders {
			stats.TotalOrders++
			stats.TotalRevenue += order.Total
			if order.Status == models.OrderStatusPending {
				stats.PendingOrders++
			}
		}
	}

	// Customer count prefers the privileged users lookup, falling back to
	// the profile count when that fails.
	if count, err := s.users.CountUsers(); err == nil {
		stats.TotalCustomers = int(count)
	} else {
		s.logger.WithError(err).Warn("Users lookup failed, falling back to profile count")
		if count, err := s.users.CountProfiles(); err == nil {
			stats.TotalCustomers = int(count)
		}
	}

	if count, err := s.products.Count(); err == nil {
		stats.TotalProducts = int(count)
	} else {
		s.logger.WithError(err).Warn("Failed to count products")
	}
	if count, err := s.products.CountLowStock(s.lowStockThreshold); err == nil {
		stats.LowStock = int(count)
	} else {
		s.logger.WithError(err).Warn("Failed to count low-stock products")
	}

	if count, err := s.reviews.CountSince(time.Now().Add(-recentReviewWindow)); err == nil {
		stats.RecentReviews = int(count)
	} else {
		s.logger.WithError(err).Warn("Failed to count recent reviews")
	}

	return stats
}

// SalesOverTime groups orders by calendar day, summing totals per day
func (s *AnalyticsService) SalesOverTime() []models.SalesPoint {
	orders, err := s.orders.ListAll()
	if err != nil {
		s.logger.WithError(err).Warn("Failed to fetch orders for sales series")
		return []models.SalesPoint{}
	}

	byDay := make(map[string]float64)
	for _, order := range orders {
		day := order.CreatedAt.Format("2006-01-02")
		byDay[day] += order.Total
	}

	points := make([]models.SalesPoint, 0, len(byDay))
	for day, revenue := range byDay {
		points = append(points, models.SalesPoint{Date: day, Revenue: revenue})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

// TopProducts ranks products by revenue over all order items
func (s *AnalyticsService) TopProducts() []models.TopProduct {
	items, err := s.orders.GetAllItems()
	if err != nil {
		s.logger.WithError(err).Warn("Failed to fetch order items for top products")
		return []models.TopProduct{}
	}

	names := make(map[uuid.UUID]string)
	if products, err := s.products.GetAll(); err != nil {
		s.logger.WithError(err).Warn("Failed to fetch products for top products")
	} else {
		for _, p := range products {
			names[p.ID] = p.Name
		}
	}

	byProduct := make(map[uuid.UUID]*models.TopProduct)
	for _, item := range items {
		entry, ok := byProduct[item.ProductID]
		if !ok {
			entry = &models.TopProduct{
				ProductID: item.ProductID,
				Name:      names[item.ProductID],
			}
			byProduct[item.ProductID] = entry
		}
		entry.Sales += item.Quantity
		entry.Revenue += item.UnitPrice * float64(item.Quantity)
	}

	ranked := make([]models.TopProduct, 0, len(byProduct))
	for _, entry := range byProduct {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Revenue > ranked[j].Revenue
	})

	if len(ranked) > topProductsLimit {
		ranked = ranked[:topProductsLimit]
	}
	return ranked
}

// StatusHistogram counts orders per status
func (s *AnalyticsService) StatusHistogram() []models.StatusCount {
	orders, err := s.orders.ListAll()
	if err != nil {
		s.logger.WithError(err).Warn("Failed to fetch orders for status histogram")
		return []models.StatusCount{}
	}

	byStatus := make(map[models.OrderStatus]int)
	for _, order := range orders {
		byStatus[order.Status]++
	}

	counts := make([]models.StatusCount, 0, len(models.ValidOrderStatuses))
	for _, status := range models.ValidOrderStatuses {
		if n, ok := byStatus[status]; ok {
			counts = append(counts, models.StatusCount{Status: status, Count: n})
		}
	}
	return counts
}
