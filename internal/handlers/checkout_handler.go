package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sareehouse/internal/middleware"
	"sareehouse/internal/models"
	"sareehouse/internal/repository"
	"sareehouse/internal/services"
)

// CheckoutHandler handles order placement
type CheckoutHandler struct {
	service *services.CheckoutService
}

func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// Checkout handles POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.ProcessCheckout(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		case errors.Is(err, repository.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "one or more items exceed the available stock"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
		}
		return
	}

	c.JSON(http.StatusCreated, order)
}
