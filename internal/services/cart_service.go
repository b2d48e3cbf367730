package services

import (
	"errors"
	"fmt"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
)

// CartService handles business logic for per-user carts. It depends on the
// ProductService for existence checks; the product side never depends back.
type CartService struct {
	cartRepo       repositories.CartRepository
	productService *ProductService
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productService *ProductService) *CartService {
	return &CartService{
		cartRepo:       cartRepo,
		productService: productService,
	}
}

// AddToCart puts qty units of a product into the user's cart, creating the
// cart on first use. Adding a product already in the cart accumulates its
// quantity instead of duplicating the line.
func (s *CartService) AddToCart(userID string, productID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", apperrors.ErrDomain)
	}
	if _, err := s.productService.GetProductByID(productID); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCart returns the user's cart. A user who never added anything gets an
// empty cart back; nothing is persisted for them.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, err
	}
	return cart, nil
}

// RemoveFromCart deletes a product line from the user's cart.
func (s *CartService) RemoveFromCart(userID string, productID int) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("product %d not in cart: %w", productID, apperrors.ErrNotFound)
	}
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItemQuantity sets the quantity of an existing cart line.
func (s *CartService) UpdateItemQuantity(userID string, productID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", apperrors.ErrDomain)
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			if err := s.cartRepo.Save(cart); err != nil {
				return nil, err
			}
			return cart, nil
		}
	}
	return nil, fmt.Errorf("product %d not in cart: %w", productID, apperrors.ErrNotFound)
}

// ClearCart empties the user's cart.
func (s *CartService) ClearCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	cart.Items = []models.CartItem{}
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}
