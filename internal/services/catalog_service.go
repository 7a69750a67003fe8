package services

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sareehouse/internal/models"
	"sareehouse/internal/repository"
	"sareehouse/internal/storage"
)

var (
	ErrInvalidProduct   = errors.New("product requires a non-empty name and a price greater than zero")
	ErrCategoryInUse    = errors.New("category still has products and cannot be deleted")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image exceeds the maximum upload size")
)

const maxImageSizeBytes = 10 << 20 // 10MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// CatalogService owns product and category management for the back
// office, including the image gallery. Validation runs before any remote
// write; object-store deletes are best effort.
type CatalogService struct {
	products   repository.ProductRepositoryInterface
	categories repository.CategoryRepositoryInterface
	images     storage.ImageStore
	logger     *logrus.Entry
}

func NewCatalogService(products repository.ProductRepositoryInterface, categories repository.CategoryRepositoryInterface, images storage.ImageStore, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		images:     images,
		logger:     logger.WithField("component", "catalog"),
	}
}

// CreateProduct validates and inserts a product
func (s *CatalogService) CreateProduct(req models.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" || req.Price <= 0 {
		return nil, ErrInvalidProduct
	}
	if req.Discount < 0 || req.Discount > 100 {
		return nil, ErrInvalidProduct
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		Featured:    req.Featured,
		Bestseller:  req.Bestseller,
	}
	if err := s.products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts returns a filtered page of products plus the unfiltered-page total
func (s *CatalogService) ListProducts(filters models.ProductListFilters) ([]models.Product, int64, error) {
	return s.products.List(filters)
}

func (s *CatalogService) GetProduct(id uuid.UUID) (*models.Product, error) {
	return s.products.GetByID(id)
}

// UpdateProduct applies a partial update, re-validating name and price
func (s *CatalogService) UpdateProduct(id uuid.UUID, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Discount != nil {
		product.Discount = *req.Discount
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.Bestseller != nil {
		product.Bestseller = *req.Bestseller
	}

	if product.Name == "" || product.Price <= 0 {
		return nil, ErrInvalidProduct
	}
	if product.Discount < 0 || product.Discount > 100 {
		return nil, ErrInvalidProduct
	}

	if err := s.products.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes the row and best-effort deletes stored images
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.GetByID(id)
	if err != nil {
		return err
	}

	gallery, err := s.products.GetImages(id)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", id).Warn("Failed to load gallery before delete")
	}

	if err := s.products.Delete(id); err != nil {
		return err
	}

	if s.images != nil {
		if product.ImageURL != "" {
			if err := s.images.Delete(ctx, product.ImageURL); err != nil {
				s.logger.WithError(err).WithField("url", product.ImageURL).Warn("Failed to delete stored image")
			}
		}
		for _, img := range gallery {
			if err := s.images.Delete(ctx, img.ImageURL); err != nil {
				s.logger.WithError(err).WithField("url", img.ImageURL).Warn("Failed to delete stored image")
			}
		}
	}
	return nil
}

// UploadImage validates and stores an image file, returning its URL
func (s *CatalogService) UploadImage(ctx context.Context, file io.Reader, contentType string, size int64) (string, error) {
	if !allowedImageTypes[contentType] {
		return "", ErrUnsupportedImage
	}
	if size > maxImageSizeBytes {
		return "", ErrImageTooLarge
	}
	return s.images.Upload(ctx, file, contentType)
}

// AddGalleryImage appends an image to the product gallery
func (s *CatalogService) AddGalleryImage(productID uuid.UUID, imageURL string) (*models.ProductImage, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		return nil, err
	}

	existing, err := s.products.GetImages(productID)
	if err != nil {
		return nil, err
	}

	image := &models.ProductImage{
		ProductID:    productID,
		ImageURL:     imageURL,
		DisplayOrder: len(existing),
	}
	if err := s.products.AddImage(image); err != nil {
		return nil, err
	}
	return image, nil
}

// ReorderGallery re-persists every entry's display order
func (s *CatalogService) ReorderGallery(productID uuid.UUID, imageIDs []uuid.UUID) error {
	return s.products.ReorderImages(productID, imageIDs)
}

// DeleteGalleryImage removes a gallery entry and best-effort deletes the object
func (s *CatalogService) DeleteGalleryImage(ctx context.Context, productID, imageID uuid.UUID) error {
	images, err := s.products.GetImages(productID)
	if err != nil {
		return err
	}
	var imageURL string
	for _, img := range images {
		if img.ID == imageID {
			imageURL = img.ImageURL
			break
		}
	}

	if err := s.products.DeleteImage(productID, imageID); err != nil {
		return err
	}

	if s.images != nil && imageURL != "" {
		if err := s.images.Delete(ctx, imageURL); err != nil {
			s.logger.WithError(err).WithField("url", imageURL).Warn("Failed to delete stored image")
		}
	}
	return nil
}

// GalleryImages lists a product's gallery ordered by display order
func (s *CatalogService) GalleryImages(productID uuid.UUID) ([]models.ProductImage, error) {
	return s.products.GetImages(productID)
}

// ListCategories returns every category
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categories.GetAll()
}

func (s *CatalogService) GetCategory(id uuid.UUID) (*models.Category, error) {
	return s.categories.GetByID(id)
}

// CreateCategory validates and inserts a category
func (s *CatalogService) CreateCategory(req models.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:     req.Name,
		ImageURL: req.ImageURL,
	}
	if err := s.categories.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory applies a partial update
func (s *CatalogService) UpdateCategory(id uuid.UUID, req models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && *req.Name != "" {
		category.Name = *req.Name
	}
	if req.ImageURL != nil {
		category.ImageURL = *req.ImageURL
	}
	if err := s.categories.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory refuses to delete while any product still references the
// category; the count is checked live before the delete is issued.
func (s *CatalogService) DeleteCategory(id uuid.UUID) error {
	count, err := s.products.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.categories.Delete(id)
}
