package services

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"sareehouse/internal/models"
	"sareehouse/internal/repository"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// MockOrderRepository is a mock implementation of OrderRepositoryInterface
type MockOrderRepository struct {
	mock.Mock
}

var _ repository.OrderRepositoryInterface = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) GetByID(id uuid.UUID) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAll() ([]models.Order, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(userID uuid.UUID) ([]models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(orderID uuid.UUID, status models.OrderStatus) error {
	args := m.Called(orderID, status)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(orderID uuid.UUID) error {
	args := m.Called(orderID)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAllItems() ([]models.OrderItem, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderItem), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

var _ repository.UserRepositoryInterface = (*MockUserRepository)(nil)

func (m *MockUserRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	if args.Error(0) == nil && user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(id uuid.UUID) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsersByIDs(ids []uuid.UUID) ([]models.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(userID uuid.UUID, passwordHash string) error {
	args := m.Called(userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpsertProfile(profile *models.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockUserRepository) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockUserRepository) GetProfilesByUserIDs(ids []uuid.UUID) ([]models.Profile, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}

func (m *MockUserRepository) ListUsers(limit, offset int) ([]models.User, int64, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) CountUsers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountProfiles() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepositoryInterface
type MockProductRepository struct {
	mock.Mock
}

var _ repository.ProductRepositoryInterface = (*MockProductRepository)(nil)

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	if args.Error(0) == nil && product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(id uuid.UUID) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) List(filters models.ProductListFilters) ([]models.Product, int64, error) {
	args := m.Called(filters)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountLowStock(threshold int) (int64, error) {
	args := m.Called(threshold)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(categoryID uuid.UUID) (int64, error) {
	args := m.Called(categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) AddImage(image *models.ProductImage) error {
	args := m.Called(image)
	if args.Error(0) == nil && image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockProductRepository) GetImages(productID uuid.UUID) ([]models.ProductImage, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductImage), args.Error(1)
}

func (m *MockProductRepository) DeleteImage(productID, imageID uuid.UUID) error {
	args := m.Called(productID, imageID)
	return args.Error(0)
}

func (m *MockProductRepository) ReorderImages(productID uuid.UUID, imageIDs []uuid.UUID) error {
	args := m.Called(productID, imageIDs)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of CategoryRepositoryInterface
type MockCategoryRepository struct {
	mock.Mock
}

var _ repository.CategoryRepositoryInterface = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	if args.Error(0) == nil && category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(id uuid.UUID) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetAll() ([]models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCartRepository is a mock implementation of CartRepositoryInterface
type MockCartRepository struct {
	mock.Mock
}

var _ repository.CartRepositoryInterface = (*MockCartRepository)(nil)

func (m *MockCartRepository) GetOrCreate(userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartRepository) GetByUser(userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartRepository) GetItem(cartID, productID uuid.UUID) (*models.CartItem, error) {
	args := m.Called(cartID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartRepository) GetItemByID(itemID uuid.UUID) (*models.CartItem, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartRepository) CreateItem(item *models.CartItem) error {
	args := m.Called(item)
	if args.Error(0) == nil && item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockCartRepository) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	args := m.Called(itemID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteItem(itemID uuid.UUID) error {
	args := m.Called(itemID)
	return args.Error(0)
}

func (m *MockCartRepository) ClearCart(cartID uuid.UUID) error {
	args := m.Called(cartID)
	return args.Error(0)
}

// MockCheckoutRepository is a mock implementation of CheckoutRepositoryInterface
type MockCheckoutRepository struct {
	mock.Mock
}

var _ repository.CheckoutRepositoryInterface = (*MockCheckoutRepository)(nil)

// WithTransaction executes the callback against the mock itself, standing
// in for a real database transaction.
func (m *MockCheckoutRepository) WithTransaction(fn func(txRepo repository.CheckoutRepositoryInterface) error) error {
	return fn(m)
}

func (m *MockCheckoutRepository) GetCartForCheckout(userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCheckoutRepository) CreateOrder(order *models.Order) error {
	args := m.Called(order)
	if args.Error(0) == nil && order.ID == uuid.Nil {
		order.ID = uuid.New()
		order.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockCheckoutRepository) CreateOrderItems(items []models.OrderItem) error {
	args := m.Called(items)
	return args.Error(0)
}

func (m *MockCheckoutRepository) DecrementStock(productID uuid.UUID, quantity int) error {
	args := m.Called(productID, quantity)
	return args.Error(0)
}

func (m *MockCheckoutRepository) ClearCart(cartID uuid.UUID) error {
	args := m.Called(cartID)
	return args.Error(0)
}

func (m *MockCheckoutRepository) InvalidateProducts(productIDs []uuid.UUID) {
	m.Called(productIDs)
}

// MockReviewRepository is a mock implementation of ReviewRepositoryInterface
type MockReviewRepository struct {
	mock.Mock
}

var _ repository.ReviewRepositoryInterface = (*MockReviewRepository)(nil)

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	if args.Error(0) == nil && review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(id uuid.UUID) (*models.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListAll() ([]models.Review, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListApproved(productID *uuid.UUID) ([]models.Review, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsForUserAndProduct(userID, productID uuid.UUID) (bool, error) {
	args := m.Called(userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) UpdateStatus(reviewID uuid.UUID, status models.ReviewStatus) error {
	args := m.Called(reviewID, status)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(reviewID uuid.UUID) error {
	args := m.Called(reviewID)
	return args.Error(0)
}

func (m *MockReviewRepository) CountSince(cutoff time.Time) (int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Error(1)
}
