package models

import "github.com/google/uuid"

// DashboardStats is the admin dashboard summary, computed by a single
// pass over fetched order rows plus count queries.
type DashboardStats struct {
	TotalOrders    int     `json:"totalOrders"`
	TotalRevenue   float64 `json:"totalRevenue"`
	PendingOrders  int     `json:"pendingOrders"`
	TotalCustomers int     `json:"totalCustomers"`
	TotalProducts  int     `json:"totalProducts"`
	LowStock       int     `json:"lowStock"`
	RecentReviews  int     `json:"recentReviews"`
}

// SalesPoint is one calendar day's revenue
type SalesPoint struct {
	Date    string  `json:"date"` // ISO date, e.g. 2026-08-30
	Revenue float64 `json:"revenue"`
}

// TopProduct is one entry in the per-product sales/revenue ranking
type TopProduct struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Sales     int       `json:"sales"`
	Revenue   float64   `json:"revenue"`
}

// StatusCount is one bucket of the order-status histogram
type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int         `json:"count"`
}
