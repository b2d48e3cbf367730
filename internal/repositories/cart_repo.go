package repositories

import "gerai/internal/models"

// CartRepository defines the interface for cart data access. There is at most
// one cart document per user.
type CartRepository interface {
	// GetByUserID returns the user's cart, or a not-found error when the
	// user never added anything.
	GetByUserID(userID string) (*models.Cart, error)
	// Save upserts the cart keyed by its UserID.
	Save(cart *models.Cart) error
}
