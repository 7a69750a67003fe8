package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sareehouse/internal/models"
	"sareehouse/internal/storage"
)

// MockImageStore is a mock implementation of storage.ImageStore
type MockImageStore struct {
	mock.Mock
}

var _ storage.ImageStore = (*MockImageStore)(nil)

func (m *MockImageStore) Upload(ctx context.Context, file io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, file, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func newCatalogService(products *MockProductRepository, categories *MockCategoryRepository, images storage.ImageStore) *CatalogService {
	return NewCatalogService(products, categories, images, testLogger())
}

func TestCreateProduct_RejectsMissingName(t *testing.T) {
	mockProducts := new(MockProductRepository)
	service := newCatalogService(mockProducts, new(MockCategoryRepository), nil)

	_, err := service.CreateProduct(models.CreateProductRequest{Price: 100})

	assert.ErrorIs(t, err, ErrInvalidProduct)
	mockProducts.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateProduct_RejectsNonPositivePrice(t *testing.T) {
	mockProducts := new(MockProductRepository)
	service := newCatalogService(mockProducts, new(MockCategoryRepository), nil)

	_, err := service.CreateProduct(models.CreateProductRequest{Name: "Mysore Silk", Price: 0})

	assert.ErrorIs(t, err, ErrInvalidProduct)
	mockProducts.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateProduct_RejectsDiscountOutOfRange(t *testing.T) {
	mockProducts := new(MockProductRepository)
	service := newCatalogService(mockProducts, new(MockCategoryRepository), nil)

	_, err := service.CreateProduct(models.CreateProductRequest{Name: "Mysore Silk", Price: 150, Discount: 120})

	assert.ErrorIs(t, err, ErrInvalidProduct)
	mockProducts.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUpdateProduct_RejectsDiscountOutOfRange(t *testing.T) {
	productID := uuid.New()
	discount := 120.0

	mockProducts := new(MockProductRepository)
	service := newCatalogService(mockProducts, new(MockCategoryRepository), nil)

	mockProducts.On("GetByID", productID).Return(&models.Product{ID: productID, Name: "Silk", Price: 100}, nil)

	_, err := service.UpdateProduct(productID, models.UpdateProductRequest{Discount: &discount})

	assert.ErrorIs(t, err, ErrInvalidProduct)
	mockProducts.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateProduct_PartialUpdateKeepsOtherFields(t *testing.T) {
	productID := uuid.New()
	newPrice := 180.0

	mockProducts := new(MockProductRepository)
	service := newCatalogService(mockProducts, new(MockCategoryRepository), nil)

	mockProducts.On("GetByID", productID).Return(&models.Product{ID: productID, Name: "Pochampally", Price: 150, Stock: 6}, nil)
	mockProducts.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "Pochampally" && p.Price == 180 && p.Stock == 6
	})).Return(nil)

	product, err := service.UpdateProduct(productID, models.UpdateProductRequest{Price: &newPrice})

	assert.NoError(t, err)
	assert.Equal(t, 180.0, product.Price)
	mockProducts.AssertExpectations(t)
}

func TestUploadImage_RejectsUnsupportedType(t *testing.T) {
	mockImages := new(MockImageStore)
	service := newCatalogService(new(MockProductRepository), new(MockCategoryRepository), mockImages)

	_, err := service.UploadImage(context.Background(), strings.NewReader("data"), "application/pdf", 100)

	assert.ErrorIs(t, err, ErrUnsupportedImage)
	mockImages.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadImage_RejectsOversizedFile(t *testing.T) {
	mockImages := new(MockImageStore)
	service := newCatalogService(new(MockProductRepository), new(MockCategoryRepository), mockImages)

	_, err := service.UploadImage(context.Background(), strings.NewReader("data"), "image/jpeg", 11<<20)

	assert.ErrorIs(t, err, ErrImageTooLarge)
	mockImages.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddGalleryImage_AppendsAtEnd(t *testing.T) {
	productID := uuid.New()
	existing := []models.ProductImage{
		{ID: uuid.New(), ProductID: productID, DisplayOrder: 0},
		{ID: uuid.New(), ProductID: productID, DisplayOrder: 1},
	}

	mockProducts := new(MockProductRepository)
	service := newCatalogService(mockProducts, new(MockCategoryRepository), nil)

	mockProducts.On("GetByID", productID).Return(&models.Product{ID: productID, Name: "Silk", Price: 100}, nil)
	mockProducts.On("GetImages", productID).Return(existing, nil)
	mockProducts.On("AddImage", mock.MatchedBy(func(img *models.ProductImage) bool {
		return img.ProductID == productID && img.DisplayOrder == 2
	})).Return(nil)

	image, err := service.AddGalleryImage(productID, "https://example.com/img.jpg")

	assert.NoError(t, err)
	assert.Equal(t, 2, image.DisplayOrder)
	mockProducts.AssertExpectations(t)
}

func TestDeleteProduct_BestEffortObjectDelete(t *testing.T) {
	productID := uuid.New()
	product := &models.Product{ID: productID, Name: "Silk", Price: 100, ImageURL: "https://example.com/primary.jpg"}
	gallery := []models.ProductImage{
		{ID: uuid.New(), ProductID: productID, ImageURL: "https://example.com/one.jpg"},
	}

	mockProducts := new(MockProductRepository)
	mockImages := new(MockImageStore)
	service := newCatalogService(mockProducts, new(MockCategoryRepository), mockImages)

	mockProducts.On("GetByID", productID).Return(product, nil)
	mockProducts.On("GetImages", productID).Return(gallery, nil)
	mockProducts.On("Delete", productID).Return(nil)
	mockImages.On("Delete", mock.Anything, "https://example.com/primary.jpg").Return(errors.New("object gone"))
	mockImages.On("Delete", mock.Anything, "https://example.com/one.jpg").Return(nil)

	err := service.DeleteProduct(context.Background(), productID)

	// a failed object delete never fails the product delete
	assert.NoError(t, err)
	mockProducts.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}

func TestDeleteCategory_RefusedWhileProductsRemain(t *testing.T) {
	categoryID := uuid.New()

	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := newCatalogService(mockProducts, mockCategories, nil)

	mockProducts.On("CountByCategory", categoryID).Return(int64(4), nil)

	err := service.DeleteCategory(categoryID)

	assert.ErrorIs(t, err, ErrCategoryInUse)
	mockCategories.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDeleteCategory_AllowedWhenEmpty(t *testing.T) {
	categoryID := uuid.New()

	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := newCatalogService(mockProducts, mockCategories, nil)

	mockProducts.On("CountByCategory", categoryID).Return(int64(0), nil)
	mockCategories.On("Delete", categoryID).Return(nil)

	err := service.DeleteCategory(categoryID)

	assert.NoError(t, err)
	mockCategories.AssertExpectations(t)
}
