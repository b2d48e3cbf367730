package services_test

import (
	"testing"

	"gerai/internal/apperrors"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/stretchr/testify/assert"
)

func newCartFixture(t *testing.T) (*services.CartService, *repositories.MockCartRepository, *repositories.MockProductRepository) {
	t.Helper()
	cartRepo := repositories.NewMockCartRepository()
	productRepo := repositories.NewMockProductRepository()
	productService := services.NewProductService(productRepo)
	return services.NewCartService(cartRepo, productService), cartRepo, productRepo
}

func TestCartService_AddToCart(t *testing.T) {
	service, _, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, 1, "Keyboard", 75, 25)

	// Unknown product fails; no cart is created.
	_, err := service.AddToCart("user-1", 99, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// First add lazily creates the cart.
	cart, err := service.AddToCart("user-1", 1, 2)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// Adding the same product accumulates quantity instead of duplicating.
	cart, err = service.AddToCart("user-1", 1, 3)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	_, err = service.AddToCart("user-1", 1, 0)
	assert.ErrorIs(t, err, apperrors.ErrDomain)
}

func TestCartService_GetCart_SyntheticWhenEmpty(t *testing.T) {
	service, cartRepo, _ := newCartFixture(t)

	// A user who never added anything gets an empty cart back.
	cart, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Read-only convenience: nothing was persisted.
	_, err = cartRepo.GetByUserID("user-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	service, _, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, 1, "Mouse", 25, 50)
	seedProduct(t, productRepo, 2, "Pad", 5, 50)

	_, err := service.AddToCart("user-1", 1, 2)
	assert.NoError(t, err)

	// Quantity below 1 is a domain error.
	_, err = service.UpdateItemQuantity("user-1", 1, 0)
	assert.ErrorIs(t, err, apperrors.ErrDomain)

	// A valid quantity sticks and shows up on the next read.
	_, err = service.UpdateItemQuantity("user-1", 1, 7)
	assert.NoError(t, err)
	cart, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	// A product that is not in the cart is not found.
	_, err = service.UpdateItemQuantity("user-1", 2, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// No cart at all is not found either.
	_, err = service.UpdateItemQuantity("user-2", 1, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	service, _, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, 1, "Mouse", 25, 50)
	seedProduct(t, productRepo, 2, "Pad", 5, 50)

	_, err := service.AddToCart("user-1", 1, 1)
	assert.NoError(t, err)
	_, err = service.AddToCart("user-1", 2, 1)
	assert.NoError(t, err)

	cart, err := service.RemoveFromCart("user-1", 1)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].ProductID)

	_, err = service.RemoveFromCart("user-1", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = service.RemoveFromCart("user-2", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	service, _, productRepo := newCartFixture(t)
	seedProduct(t, productRepo, 1, "Mouse", 25, 50)

	_, err := service.ClearCart("user-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = service.AddToCart("user-1", 1, 3)
	assert.NoError(t, err)

	cart, err := service.ClearCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	cart, err = service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
}
