package handlers

import (
	"fmt"
	"log"

	"gerai/internal/apperrors"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's own cart. Every route
// requires a bearer token; the user is always taken from the decoded token,
// never from the request body.
type CartHandler struct {
	cartService *services.CartService
	validate    *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the cart routes behind the auth middleware.
func (h *CartHandler) RegisterRoutes(router fiber.Router, authMW fiber.Handler) {
	cartRoutes := router.Group("/cart", authMW)
	cartRoutes.Post("/add", h.HandleAdd)
	cartRoutes.Get("/", h.HandleGet)
	cartRoutes.Delete("/remove/:productId", h.HandleRemove)
	cartRoutes.Put("/update", h.HandleUpdateQuantity)
	cartRoutes.Delete("/clear", h.HandleClear)
}

// AddToCartRequest is the request body for adding a product to the cart.
type AddToCartRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gte=1"`
}

// HandleAdd puts a product into the caller's cart.
func (h *CartHandler) HandleAdd(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  fiber.StatusBadRequest,
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	cart, err := h.cartService.AddToCart(userID, req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding product %d to cart of user %s: %v", req.ProductID, userID, err)
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// HandleGet returns the caller's cart; an empty one if nothing was ever added.
func (h *CartHandler) HandleGet(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	cart, err := h.cartService.GetCart(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// HandleRemove deletes one product line from the caller's cart.
func (h *CartHandler) HandleRemove(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	productID, err := c.ParamsInt("productId")
	if err != nil {
		return respondError(c, fmt.Errorf("product ID must be an integer: %w", apperrors.ErrInvalidInput))
	}

	cart, err := h.cartService.RemoveFromCart(userID, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// UpdateCartRequest is the request body for changing a line's quantity.
type UpdateCartRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gte=1"`
}

// HandleUpdateQuantity sets the quantity of an existing cart line.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req UpdateCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  fiber.StatusBadRequest,
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	cart, err := h.cartService.UpdateItemQuantity(userID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// HandleClear empties the caller's cart.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	cart, err := h.cartService.ClearCart(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}
