package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sareehouse/internal/models"
	"sareehouse/internal/repository"
)

func TestAddToCart_NewLineItem(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}

	mockCarts := new(MockCartRepository)
	mockProducts := new(MockProductRepository)
	service := NewCartService(mockCarts, mockProducts, testLogger())

	mockCarts.On("GetOrCreate", userID).Return(cart, nil)
	mockProducts.On("GetByID", productID).Return(&models.Product{ID: productID, Stock: 10}, nil)
	mockCarts.On("GetItem", cart.ID, productID).Return(nil, repository.ErrCartItemNotFound)
	mockCarts.On("CreateItem", mock.MatchedBy(func(item *models.CartItem) bool {
		return item.CartID == cart.ID && item.ProductID == productID && item.Quantity == 3
	})).Return(nil)

	err := service.AddToCart(userID, productID, 3)

	assert.NoError(t, err)
	mockCarts.AssertExpectations(t)
}

func TestAddToCart_MergesIntoExistingLine(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	existing := &models.CartItem{ID: uuid.New(), CartID: cart.ID, ProductID: productID, Quantity: 2}

	mockCarts := new(MockCartRepository)
	mockProducts := new(MockProductRepository)
	service := NewCartService(mockCarts, mockProducts, testLogger())

	mockCarts.On("GetOrCreate", userID).Return(cart, nil)
	mockProducts.On("GetByID", productID).Return(&models.Product{ID: productID, Stock: 10}, nil)
	mockCarts.On("GetItem", cart.ID, productID).Return(existing, nil)
	mockCarts.On("UpdateItemQuantity", existing.ID, 5).Return(nil)

	err := service.AddToCart(userID, productID, 3)

	assert.NoError(t, err)
	mockCarts.AssertNotCalled(t, "CreateItem", mock.Anything)
	mockCarts.AssertExpectations(t)
}

func TestAddToCart_CombinedQuantityExceedsStock(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	existing := &models.CartItem{ID: uuid.New(), CartID: cart.ID, ProductID: productID, Quantity: 3}

	mockCarts := new(MockCartRepository)
	mockProducts := new(MockProductRepository)
	service := NewCartService(mockCarts, mockProducts, testLogger())

	mockCarts.On("GetOrCreate", userID).Return(cart, nil)
	mockProducts.On("GetByID", productID).Return(&models.Product{ID: productID, Stock: 5}, nil)
	mockCarts.On("GetItem", cart.ID, productID).Return(existing, nil)

	err := service.AddToCart(userID, productID, 3)

	assert.ErrorIs(t, err, ErrExceedsStock)
	mockCarts.AssertNotCalled(t, "UpdateItemQuantity", mock.Anything, mock.Anything)
	mockCarts.AssertNotCalled(t, "CreateItem", mock.Anything)
}

func TestAddToCart_NewLineExceedsStock(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}

	mockCarts := new(MockCartRepository)
	mockProducts := new(MockProductRepository)
	service := NewCartService(mockCarts, mockProducts, testLogger())

	mockCarts.On("GetOrCreate", userID).Return(cart, nil)
	mockProducts.On("GetByID", productID).Return(&models.Product{ID: productID, Stock: 2}, nil)
	mockCarts.On("GetItem", cart.ID, productID).Return(nil, repository.ErrCartItemNotFound)

	err := service.AddToCart(userID, productID, 3)

	assert.ErrorIs(t, err, ErrExceedsStock)
	mockCarts.AssertNotCalled(t, "CreateItem", mock.Anything)
}

func TestUpdateItemQuantity_ZeroRemovesLine(t *testing.T) {
	itemID := uuid.New()

	mockCarts := new(MockCartRepository)
	mockProducts := new(MockProductRepository)
	service := NewCartService(mockCarts, mockProducts, testLogger())

	mockCarts.On("DeleteItem", itemID).Return(nil)

	err := service.UpdateItemQuantity(itemID, 0)

	assert.NoError(t, err)
	mockCarts.AssertNotCalled(t, "UpdateItemQuantity", mock.Anything, mock.Anything)
	mockCarts.AssertExpectations(t)
}

func TestUpdateItemQuantity_RechecksStock(t *testing.T) {
	itemID := uuid.New()
	productID := uuid.New()

	mockCarts := new(MockCartRepository)
	mockProducts := new(MockProductRepository)
	service := NewCartService(mockCarts, mockProducts, testLogger())

	mockCarts.On("GetItemByID", itemID).Return(&models.CartItem{ID: itemID, ProductID: productID, Quantity: 1}, nil)
	mockProducts.On("GetByID", productID).Return(&models.Product{ID: productID, Stock: 4}, nil)

	err := service.UpdateItemQuantity(itemID, 5)

	assert.ErrorIs(t, err, ErrExceedsStock)
	mockCarts.AssertNotCalled(t, "UpdateItemQuantity", mock.Anything, mock.Anything)
}

func TestGetCartView_ComputesDiscountedTotals(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	cart := &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []models.CartItem{
			{
				ID:        uuid.New(),
				ProductID: productID,
				Quantity:  2,
				Product:   &models.Product{ID: productID, Name: "Kanjeevaram Silk", Price: 100, Discount: 10, Stock: 8},
			},
		},
	}

	mockCarts := new(MockCartRepository)
	mockProducts := new(MockProductRepository)
	service := NewCartService(mockCarts, mockProducts, testLogger())

	mockCarts.On("GetByUser", userID).Return(cart, nil)

	view, err := service.GetCartView(userID)

	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.InDelta(t, 90.0, view.Items[0].FinalPrice, 0.001)
	assert.InDelta(t, 180.0, view.Items[0].LineTotal, 0.001)
	assert.InDelta(t, 180.0, view.Subtotal, 0.001)
	assert.Equal(t, 2, view.Count)
}

func TestGetCartView_NoCartYieldsEmptyView(t *testing.T) {
	userID := uuid.New()

	mockCarts := new(MockCartRepository)
	mockProducts := new(MockProductRepository)
	service := NewCartService(mockCarts, mockProducts, testLogger())

	mockCarts.On("GetByUser", userID).Return(nil, repository.ErrCartNotFound)

	view, err := service.GetCartView(userID)

	assert.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Subtotal)
	assert.Zero(t, view.Count)
}

func TestClearCart_EmptiesExistingCart(t *testing.T) {
	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}

	mockCarts := new(MockCartRepository)
	mockProducts := new(MockProductRepository)
	service := NewCartService(mockCarts, mockProducts, testLogger())

	mockCarts.On("GetByUser", userID).Return(cart, nil)
	mockCarts.On("ClearCart", cart.ID).Return(nil)

	err := service.ClearCart(userID)

	assert.NoError(t, err)
	mockCarts.AssertExpectations(t)
}

func TestClearCart_NoCartIsANoOp(t *testing.T) {
	userID := uuid.New()

	mockCarts := new(MockCartRepository)
	mockProducts := new(MockProductRepository)
	service := NewCartService(mockCarts, mockProducts, testLogger())

	mockCarts.On("GetByUser", userID).Return(nil, repository.ErrCartNotFound)

	err := service.ClearCart(userID)

	assert.NoError(t, err)
	mockCarts.AssertNotCalled(t, "ClearCart", mock.Anything)
}
