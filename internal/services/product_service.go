package services

import (
	"fmt"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
)

// ProductService handles business logic related to the catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts returns one page of the catalog plus the total count.
// Page numbering starts at 1.
func (s *ProductService) ListProducts(page, limit int) ([]models.Product, int64, error) {
	if page < 1 {
		return nil, 0, fmt.Errorf("page must be a positive integer: %w", apperrors.ErrInvalidInput)
	}
	if limit < 1 {
		return nil, 0, fmt.Errorf("limit must be a positive integer: %w", apperrors.ErrInvalidInput)
	}
	return s.repo.FindPage((page-1)*limit, limit)
}

// GetProductByID retrieves a single product by its numeric ID.
func (s *ProductService) GetProductByID(id int) (*models.Product, error) {
	if id < 1 {
		return nil, fmt.Errorf("product ID must be a positive integer: %w", apperrors.ErrInvalidInput)
	}
	return s.repo.GetByID(id)
}

// CreateProduct creates a new catalog entry under its externally assigned ID.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if product.ID < 1 {
		return fmt.Errorf("product ID must be a positive integer: %w", apperrors.ErrInvalidInput)
	}
	return s.repo.Create(product)
}

// UpdateProduct applies a partial update: only non-nil fields change.
func (s *ProductService) UpdateProduct(id int, upd models.ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		product.Name = *upd.Name
	}
	if upd.Price != nil {
		product.Price = *upd.Price
	}
	if upd.Description != nil {
		product.Description = *upd.Description
	}
	if upd.Category != nil {
		product.Category = *upd.Category
	}
	if upd.Stock != nil {
		product.Stock = *upd.Stock
	}
	if upd.IsActive != nil {
		product.IsActive = *upd.IsActive
	}
	if upd.Image != nil {
		product.Image = *upd.Image
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID. Removing an associated image
// file is the caller's responsibility.
func (s *ProductService) DeleteProduct(id int) error {
	return s.repo.Delete(id)
}

// DecrementStock subtracts qty from the product's stock. It fails with a
// domain error when stock is insufficient, never leaving stock negative.
func (s *ProductService) DecrementStock(id, qty int) error {
	if qty < 1 {
		return fmt.Errorf("quantity must be at least 1: %w", apperrors.ErrDomain)
	}
	return s.repo.DecrementStock(id, qty)
}
