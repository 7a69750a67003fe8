package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sareehouse/internal/models"
	"sareehouse/internal/repository"
)

// ErrExceedsStock is returned when an add or update would push a line
// item's quantity beyond the product's current stock.
var ErrExceedsStock = errors.New("requested quantity exceeds available stock")

// CartService resolves one cart per user and enforces the stock ceiling at
// write time. Each operation is an independent read-check-write; two
// concurrent updates to the same line item race last-write-wins, exactly
// as the storefront behaves today.
type CartService struct {
	carts    repository.CartRepositoryInterface
	products repository.ProductRepositoryInterface
	logger   *logrus.Entry
}

func NewCartService(carts repository.CartRepositoryInterface, products repository.ProductRepositoryInterface, logger *logrus.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		logger:   logger.WithField("component", "cart"),
	}
}

// ClearCart removes every line item from the user's cart. A user without a
// cart has nothing to clear, so that reads as success.
func (s *CartService) ClearCart(userID uuid.UUID) error {
	cart, err := s.carts.GetByUser(userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil
		}
		return err
	}
	return s.carts.ClearCart(cart.ID)
}

// AddToCart adds a product to the user's cart. A repeated add increments
// the existing line item instead of inserting a second row; the combined
// quantity is checked against current stock.
func (s *CartService) AddToCart(userID, productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return errors.New("quantity must be at least 1")
	}

	cart, err := s.carts.GetOrCreate(userID)
	if err != nil {
		return err
	}

	product, err := s.products.GetByID(productID)
	if err != nil {
		return err
	}

	existing, err := s.carts.GetItem(cart.ID, productID)
	if err != nil && !errors.Is(err, repository.ErrCartItemNotFound) {
		return err
	}

	if existing != nil {
		combined := existing.Quantity + quantity
		if combined > product.Stock {
			return ErrExceedsStock
		}
		return s.carts.UpdateItemQuantity(existing.ID, combined)
	}

	if quantity > product.Stock {
		return ErrExceedsStock
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return s.carts.CreateItem(item)
}

// UpdateItemQuantity sets a line item's quantity; zero or less removes it
func (s *CartService) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return s.carts.DeleteItem(itemID)
	}

	item, err := s.carts.GetItemByID(itemID)
	if err != nil {
		return err
	}

	product, err := s.products.GetByID(item.ProductID)
	if err != nil {
		return err
	}
	if quantity > product.Stock {
		return ErrExceedsStock
	}

	return s.carts.UpdateItemQuantity(itemID, quantity)
}

// RemoveItem deletes a line item
func (s *CartService) RemoveItem(itemID uuid.UUID) error {
	return s.carts.DeleteItem(itemID)
}

// GetCartView reads the cart with live product data and computes per-item
// discounted prices and the running total.
func (s *CartService) GetCartView(userID uuid.UUID) (*models.CartView, error) {
	cart, err := s.carts.GetByUser(userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return &models.CartView{Items: []models.CartItemView{}}, nil
		}
		return nil, err
	}

	view := &models.CartView{
		ID:    cart.ID,
		Items: make([]models.CartItemView, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		if item.Product == nil {
			continue
		}
		finalPrice := item.Product.FinalPrice()
		lineTotal := finalPrice * float64(item.Quantity)
		view.Items = append(view.Items, models.CartItemView{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Name:       item.Product.Name,
			ImageURL:   item.Product.ImageURL,
			Price:      item.Product.Price,
			Discount:   item.Product.Discount,
			FinalPrice: finalPrice,
			Quantity:   item.Quantity,
			Stock:      item.Product.Stock,
			LineTotal:  lineTotal,
		})
		view.Subtotal += lineTotal
		view.Count += item.Quantity
	}

	return view, nil
}
