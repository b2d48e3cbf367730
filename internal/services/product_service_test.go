package services_test

import (
	"testing"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/stretchr/testify/assert"
)

func seedProduct(t *testing.T, repo repositories.ProductRepository, id int, name string, price float64, stock int) {
	t.Helper()
	err := repo.Create(&models.Product{
		ID:          id,
		Name:        name,
		Price:       price,
		Description: "test product",
		Category:    "test",
		Stock:       stock,
		IsActive:    true,
	})
	assert.NoError(t, err)
}

func TestProductService_CreateProduct(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo)

	product := &models.Product{ID: 10, Name: "Laptop", Price: 1200, Description: "d", Category: "c", Stock: 5, IsActive: true}
	assert.NoError(t, service.CreateProduct(product))

	// The id is externally assigned; reusing it is a conflict.
	err := service.CreateProduct(&models.Product{ID: 10, Name: "Other", Price: 1, Description: "d", Category: "c"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	err = service.CreateProduct(&models.Product{ID: 0, Name: "No ID", Price: 1, Description: "d", Category: "c"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestProductService_GetProductByID(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo)
	seedProduct(t, repo, 1, "Keyboard", 75, 25)

	product, err := service.GetProductByID(1)
	assert.NoError(t, err)
	assert.Equal(t, "Keyboard", product.Name)

	_, err = service.GetProductByID(99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = service.GetProductByID(0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestProductService_UpdateProduct_PartialFields(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo)
	seedProduct(t, repo, 1, "Mouse", 25, 50)

	// Only the supplied fields change.
	newPrice := 30.0
	updated, err := service.UpdateProduct(1, models.ProductUpdate{Price: &newPrice})
	assert.NoError(t, err)
	assert.Equal(t, 30.0, updated.Price)
	assert.Equal(t, "Mouse", updated.Name)
	assert.Equal(t, 50, updated.Stock)

	_, err = service.UpdateProduct(99, models.ProductUpdate{Price: &newPrice})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo)
	seedProduct(t, repo, 1, "Mouse", 25, 50)

	assert.NoError(t, service.DeleteProduct(1))
	err := service.DeleteProduct(1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductService_ListProducts(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo)
	for i := 1; i <= 5; i++ {
		seedProduct(t, repo, i, "Product", 10, 1)
	}

	// A page slice plus the total count.
	page, total, err := service.ListProducts(1, 2)
	assert.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, int64(5), total)

	page, total, err = service.ListProducts(3, 2)
	assert.NoError(t, err)
	assert.Len(t, page, 1)
	assert.Equal(t, int64(5), total)

	// Non-positive page or limit fails validation.
	_, _, err = service.ListProducts(0, 2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, _, err = service.ListProducts(1, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, _, err = service.ListProducts(-1, -5)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestProductService_DecrementStock(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo)
	seedProduct(t, repo, 1, "Laptop", 1200, 3)

	assert.NoError(t, service.DecrementStock(1, 2))
	product, _ := service.GetProductByID(1)
	assert.Equal(t, 1, product.Stock)

	// Decrementing past the remaining stock is refused and leaves it intact.
	err := service.DecrementStock(1, 2)
	assert.ErrorIs(t, err, apperrors.ErrDomain)
	product, _ = service.GetProductByID(1)
	assert.Equal(t, 1, product.Stock)

	err = service.DecrementStock(99, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = service.DecrementStock(1, 0)
	assert.ErrorIs(t, err, apperrors.ErrDomain)
}
