package repositories

import (
	"gerai/internal/models"
)

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id int) (*models.Product, error)
	Update(product *models.Product) error
	Delete(id int) error
	// FindPage returns one page of products plus the total count.
	FindPage(skip, limit int) ([]models.Product, int64, error)
	// DecrementStock atomically subtracts qty from the product's stock. It
	// fails when the product is absent or the remaining stock is below qty,
	// so two concurrent checkouts of the last unit cannot both succeed.
	DecrementStock(id, qty int) error
}
