package handlers

import (
	"log"

	"gerai/internal/models"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderService *services.OrderService
	validate     *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the order routes behind the auth middleware.
// The history route must come before the :id route.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authMW, adminMW fiber.Handler) {
	orderRoutes := router.Group("/orders", authMW)
	orderRoutes.Post("/", h.HandleCreate)
	orderRoutes.Post("/create", h.HandleCreate) // alias kept for older clients
	orderRoutes.Get("/history", h.HandleHistory)
	orderRoutes.Get("/:id", h.HandleGet)
	orderRoutes.Patch("/:id/status", adminMW, h.HandleUpdateStatus)
	orderRoutes.Delete("/:id", h.HandleCancel)
}

// OrderItemRequest is one checkout line; price is the unit price the caller
// saw, snapshotted into the order.
type OrderItemRequest struct {
	ProductID int     `json:"product_id" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// CreateOrderRequest is the checkout request body.
type CreateOrderRequest struct {
	Products        []OrderItemRequest `json:"products" validate:"required,min=1,dive"`
	TotalAmount     float64            `json:"total_amount" validate:"gte=0"`
	ShippingAddress string             `json:"shipping_address" validate:"required"`
	PhoneNumber     string             `json:"phone_number"`
	Notes           string             `json:"notes"`
}

// HandleCreate places an order for the caller.
func (h *OrderHandler) HandleCreate(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  fiber.StatusBadRequest,
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	items := make([]models.OrderItem, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, models.OrderItem{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
			Price:     p.Price,
		})
	}

	order, err := h.orderService.CreateOrder(userID, services.CreateOrderInput{
		Products:        items,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
		Notes:           req.Notes,
	})
	if err != nil {
		log.Printf("Error creating order for user %s: %v", userID, err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    order,
		"message": "Order created successfully",
	})
}

// HandleHistory returns the caller's orders, newest first.
func (h *OrderHandler) HandleHistory(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	orders, err := h.orderService.GetOrderHistory(userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
	})
}

// HandleGet returns one of the caller's orders.
func (h *OrderHandler) HandleGet(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	orderID := c.Params("id")

	order, err := h.orderService.GetOrder(orderID, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatusRequest is the admin status transition body.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateStatus transitions an order's status (admin only).
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  fiber.StatusBadRequest,
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	order, err := h.orderService.UpdateOrderStatus(orderID, req.Status)
	if err != nil {
		log.Printf("Error updating status of order %s: %v", orderID, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
		"message": "Order status updated",
	})
}

// HandleCancel cancels one of the caller's own pending orders.
func (h *OrderHandler) HandleCancel(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	orderID := c.Params("id")

	order, err := h.orderService.CancelOrder(orderID, userID)
	if err != nil {
		log.Printf("Error cancelling order %s: %v", orderID, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
		"message": "Order cancelled successfully",
	})
}
