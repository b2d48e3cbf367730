package repositories

import (
	"gerai/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// never deleted; cancellation is a status transition.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	// FindByUserID returns the user's orders, newest first.
	FindByUserID(userID string) ([]models.Order, error)
	UpdateStatus(id string, status string) error
}
