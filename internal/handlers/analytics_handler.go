package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sareehouse/internal/services"
)

// AnalyticsHandler serves the admin dashboard aggregates. Every endpoint
// is read-only and degrades to zeroed figures when a source query fails.
type AnalyticsHandler struct {
	service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Dashboard handles GET /api/v1/admin/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.DashboardStats())
}

// SalesOverTime handles GET /api/v1/admin/analytics/sales
func (h *AnalyticsHandler) SalesOverTime(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sales": h.service.SalesOverTime()})
}

// TopProducts handles GET /api/v1/admin/analytics/top-products
func (h *AnalyticsHandler) TopProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.service.TopProducts()})
}

// StatusHistogram handles GET /api/v1/admin/analytics/order-statuses
func (h *AnalyticsHandler) StatusHistogram(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"statuses": h.service.StatusHistogram()})
}
