package handlers

import (
	"fmt"
	"log"

	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for accounts and authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the auth routes. authMW guards the self-service
// routes; adminMW additionally guards the moderation routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authMW, adminMW fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/ban/:email", authMW, adminMW, h.HandleBanUser)
	authRoutes.Post("/unban/:email", authMW, adminMW, h.HandleUnbanUser)
	authRoutes.Get("/user-status/:email", authMW, adminMW, h.HandleUserStatus)
	authRoutes.Patch("/update/:email", authMW, h.HandleUpdate)
	authRoutes.Delete("/delete/:email", authMW, h.HandleRemove)
}

// RegisterRequest is the request body for registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister handles new account registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  fiber.StatusBadRequest,
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user, err := h.authService.RegisterUser(req.Email, req.Password)
	if err != nil {
		log.Printf("Error registering user %s: %v", req.Email, err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"data":    user,
	})
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles login and issues a JWT.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  fiber.StatusBadRequest,
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	token, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		log.Printf("Login failed for %s: %v", req.Email, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"method": "LOGIN",
		"data":   fiber.Map{"token": token},
	})
}

// HandleBanUser deactivates a customer account (admin only).
func (h *AuthHandler) HandleBanUser(c *fiber.Ctx) error {
	email := c.Params("email")
	user, err := h.authService.BanUser(email)
	if err != nil {
		log.Printf("Error banning user %s: %v", email, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User banned successfully",
		"data": fiber.Map{
			"email":     user.Email,
			"is_active": user.IsActive,
		},
	})
}

// HandleUnbanUser reactivates an account (admin only).
func (h *AuthHandler) HandleUnbanUser(c *fiber.Ctx) error {
	email := c.Params("email")
	user, err := h.authService.UnbanUser(email)
	if err != nil {
		log.Printf("Error unbanning user %s: %v", email, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User unbanned successfully",
		"data": fiber.Map{
			"email":     user.Email,
			"is_active": user.IsActive,
		},
	})
}

// HandleUserStatus returns an account by email (admin only).
func (h *AuthHandler) HandleUserStatus(c *fiber.Ctx) error {
	email := c.Params("email")
	user, err := h.authService.GetUserStatus(email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": user,
	})
}

// UpdateUserRequest is the request body for a profile update.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// HandleUpdate updates the caller's own profile.
func (h *AuthHandler) HandleUpdate(c *fiber.Ctx) error {
	email := c.Params("email")
	requesterEmail, _ := c.Locals("email").(string)

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  fiber.StatusBadRequest,
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user, err := h.authService.UpdateUser(email, services.UpdateUserInput{
		Email:    req.Email,
		Password: req.Password,
	}, requesterEmail)
	if err != nil {
		log.Printf("Error updating user %s: %v", email, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"method": "UPDATE",
		"data":   user,
	})
}

// HandleRemove deletes the caller's own account.
func (h *AuthHandler) HandleRemove(c *fiber.Ctx) error {
	email := c.Params("email")
	requesterEmail, _ := c.Locals("email").(string)

	if err := h.authService.RemoveUser(email, requesterEmail); err != nil {
		log.Printf("Error deleting user %s: %v", email, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"method": "DELETE",
		"data": fiber.Map{
			"message": fmt.Sprintf("User with email %s deleted successfully", email),
		},
	})
}
