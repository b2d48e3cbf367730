package services

import (
	"encoding/json"
	"fmt"
	"log"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderService handles the checkout workflow and order lifecycle. It sits on
// top of both the product and cart services; neither depends back on it.
type OrderService struct {
	orderRepo      repositories.OrderRepository
	productService *ProductService
	cartService    *CartService
	mqClient       *rabbitmq.Client // optional, nil skips event publishing
}

// CreateOrderInput is the checkout request. Item prices are the unit prices
// the caller saw; they are snapshotted into the order as-is.
type CreateOrderInput struct {
	Products        []models.OrderItem
	TotalAmount     float64
	ShippingAddress string
	PhoneNumber     string
	Notes           string
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productService *ProductService, cartService *CartService, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		productService: productService,
		cartService:    cartService,
		mqClient:       mqClient,
	}
}

// CreateOrder places an order for the user.
//
// Every line is validated before any stock is touched, so a missing product
// or an oversized quantity aborts the whole order with no partial effects.
// After the order document is saved, clearing the cart is best-effort: the
// order is the durable source of truth and the cart only a convenience cache,
// so a failure there is logged and swallowed.
func (s *OrderService) CreateOrder(userID string, input CreateOrderInput) (*models.Order, error) {
	if len(input.Products) == 0 {
		return nil, fmt.Errorf("order needs at least one item: %w", apperrors.ErrInvalidInput)
	}

	for _, item := range input.Products {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("quantity for product %d must be at least 1: %w", item.ProductID, apperrors.ErrDomain)
		}
		product, err := s.productService.GetProductByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("not enough stock for product %s (requested %d, available %d): %w",
				product.Name, item.Quantity, product.Stock, apperrors.ErrDomain)
		}
	}

	// All lines validated; now decrement. The conditional decrement re-checks
	// stock per line, so a concurrent checkout racing past the validation
	// above still cannot oversell.
	for _, item := range input.Products {
		if err := s.productService.DecrementStock(item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Products:        input.Products,
		TotalAmount:     input.TotalAmount,
		Status:          models.OrderStatusPending,
		ShippingAddress: input.ShippingAddress,
		PhoneNumber:     input.PhoneNumber,
		Notes:           input.Notes,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if _, err := s.cartService.ClearCart(userID); err != nil {
		log.Printf("Warning: could not clear cart for user %s after order %s: %v", userID, order.ID, err)
	}

	s.publishOrderEvent("order.created", order)

	return order, nil
}

// GetOrderHistory returns the user's orders, newest first.
func (s *OrderService) GetOrderHistory(userID string) ([]models.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

// GetOrder returns one order, verifying that the requester owns it. An
// ownership mismatch reads as not-found so the response does not leak that
// the order exists.
func (s *OrderService) GetOrder(orderID, requesterID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID {
		return nil, fmt.Errorf("order with ID %s: %w", orderID, apperrors.ErrNotFound)
	}
	return order, nil
}

// UpdateOrderStatus moves an order out of pending. Cancelled and completed
// are terminal; nothing transitions out of them.
func (s *OrderService) UpdateOrderStatus(orderID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("invalid order status %q: %w", status, apperrors.ErrInvalidInput)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if models.TerminalOrderStatus(order.Status) {
		return nil, fmt.Errorf("order %s is already %s: %w", orderID, order.Status, apperrors.ErrDomain)
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.publishOrderEvent("order.status_updated", order)

	return order, nil
}

// CancelOrder cancels the requester's own pending order. Cancelling an order
// that already left pending (including a second cancel) is a domain error.
func (s *OrderService) CancelOrder(orderID, requesterID string) (*models.Order, error) {
	order, err := s.GetOrder(orderID, requesterID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("order %s is %s and cannot be cancelled: %w", orderID, order.Status, apperrors.ErrDomain)
	}

	if err := s.orderRepo.UpdateStatus(orderID, models.OrderStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusCancelled

	s.publishOrderEvent("order.status_updated", order)

	return order, nil
}

// publishOrderEvent sends an order event to the broker. Publishing is
// best-effort: a missing client or a broker error never fails the operation
// that produced the event.
func (s *OrderService) publishOrderEvent(eventType string, order *models.Order) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderId": order.ID,
		"userId":  order.UserID,
		"status":  order.Status,
		"total":   order.TotalAmount,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", eventType, order.ID, err)
		return
	}
	if err := s.mqClient.PublishOrderEvent(eventType, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", eventType, order.ID, err)
	}
}
