package repositories

import (
	"fmt"
	"sync"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart // keyed by user ID
	mu    sync.RWMutex

	// FailSave forces Save to error, for exercising the checkout path where
	// clearing the cart fails after the order is already persisted.
	FailSave bool
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// GetByUserID returns the user's cart.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, fmt.Errorf("cart for user %s: %w", userID, apperrors.ErrNotFound)
	}
	return &cart, nil
}

// Save upserts the cart keyed by its UserID.
func (r *MockCartRepository) Save(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailSave {
		return fmt.Errorf("failed to save cart for user %s: store unavailable", cart.UserID)
	}
	now := time.Now()
	if existing, ok := r.carts[cart.UserID]; ok {
		cart.CreatedAt = existing.CreatedAt
	} else {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now
	r.carts[cart.UserID] = *cart
	return nil
}
