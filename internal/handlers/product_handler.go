package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxImageSize = 5 * 1024 * 1024 // 5MB

// ProductHandler handles HTTP requests for the catalog, including image
// upload and removal on local disk.
type ProductHandler struct {
	productService *services.ProductService
	uploadDir      string
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler. uploadDir is the directory
// uploaded images are written to; it is served back under /uploads.
func NewProductHandler(productService *services.ProductService, uploadDir string) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		uploadDir:      uploadDir,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the product routes. The list and delete routes are
// public; create, update and detail require a bearer token.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authMW fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/create", authMW, h.HandleCreate)
	productRoutes.Post("/update/:id", authMW, h.HandleUpdate)
	productRoutes.Get("/list", h.HandleList)
	productRoutes.Get("/detail/:id", authMW, h.HandleDetail)
	productRoutes.Delete("/delete/:id", h.HandleDelete)
}

// saveImage validates and stores an uploaded image, returning its URL path.
func (h *ProductHandler) saveImage(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif":
	default:
		return "", fmt.Errorf("only PNG, JPEG or GIF images are allowed: %w", apperrors.ErrInvalidInput)
	}
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image exceeds the 5MB limit: %w", apperrors.ErrInvalidInput)
	}

	filename := fmt.Sprintf("image-%s%s", uuid.New().String(), ext)
	if err := c.SaveFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return "/uploads/" + filename, nil
}

// removeImage deletes a previously stored image file. Best-effort: deletion
// failure is logged, never surfaced.
func (h *ProductHandler) removeImage(imageURL string) {
	if imageURL == "" {
		return
	}
	path := filepath.Join(h.uploadDir, filepath.Base(imageURL))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not remove image %s: %v", path, err)
	}
}

// HandleCreate creates a product from a multipart form with an optional
// image file. The numeric product id is assigned by the caller.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.FormValue("id"))
	if err != nil || id < 1 {
		return respondError(c, fmt.Errorf("product ID is required and must be a positive integer: %w", apperrors.ErrInvalidInput))
	}
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price < 0 {
		return respondError(c, fmt.Errorf("price is required and must be a non-negative number: %w", apperrors.ErrInvalidInput))
	}

	product := &models.Product{
		ID:          id,
		Name:        c.FormValue("name"),
		Price:       price,
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Stock:       0,
		IsActive:    true,
	}
	if v := c.FormValue("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil || stock < 0 {
			return respondError(c, fmt.Errorf("stock must be a non-negative integer: %w", apperrors.ErrInvalidInput))
		}
		product.Stock = stock
	}
	if v := c.FormValue("isActive"); v != "" {
		product.IsActive = v == "true"
	}

	if err := h.validate.Struct(product); err != nil {
		return respondValidationError(c, err)
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		imageURL, err := h.saveImage(c, file)
		if err != nil {
			return respondError(c, err)
		}
		product.Image = imageURL
	}

	if err := h.productService.CreateProduct(product); err != nil {
		log.Printf("Error creating product %d: %v", id, err)
		// The image is already on disk; do not leave it orphaned.
		h.removeImage(product.Image)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"method": "CREATE",
		"data":   product,
	})
}

// HandleUpdate updates a product from a multipart form. A replacement image
// supersedes the old file, which is removed after a successful update.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fmt.Errorf("product ID must be an integer: %w", apperrors.ErrInvalidInput))
	}

	// The boundary expects the full payload even though the service applies
	// fields individually.
	name := c.FormValue("name")
	if name == "" {
		return respondError(c, fmt.Errorf("product name is required: %w", apperrors.ErrInvalidInput))
	}
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price < 0 {
		return respondError(c, fmt.Errorf("price is required and must be a non-negative number: %w", apperrors.ErrInvalidInput))
	}
	description := c.FormValue("description")
	if description == "" {
		return respondError(c, fmt.Errorf("product description is required: %w", apperrors.ErrInvalidInput))
	}
	category := c.FormValue("category")
	if category == "" {
		return respondError(c, fmt.Errorf("product category is required: %w", apperrors.ErrInvalidInput))
	}

	upd := models.ProductUpdate{
		Name:        &name,
		Price:       &price,
		Description: &description,
		Category:    &category,
	}
	if v := c.FormValue("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil || stock < 0 {
			return respondError(c, fmt.Errorf("stock must be a non-negative integer: %w", apperrors.ErrInvalidInput))
		}
		upd.Stock = &stock
	}
	if v := c.FormValue("isActive"); v != "" {
		isActive := v == "true"
		upd.IsActive = &isActive
	}

	var newImage string
	if file, err := c.FormFile("image"); err == nil && file != nil {
		newImage, err = h.saveImage(c, file)
		if err != nil {
			return respondError(c, err)
		}
		upd.Image = &newImage
	}

	var oldImage string
	if existing, err := h.productService.GetProductByID(id); err == nil {
		oldImage = existing.Image
	}

	product, err := h.productService.UpdateProduct(id, upd)
	if err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		h.removeImage(newImage)
		return respondError(c, err)
	}

	if newImage != "" && oldImage != "" && oldImage != newImage {
		h.removeImage(oldImage)
	}

	return c.JSON(fiber.Map{
		"method": "UPDATE",
		"data":   product,
	})
}

// HandleList returns one catalog page plus the total count.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page")
	limit := c.QueryInt("limit")
	if page == 0 || limit == 0 {
		return respondError(c, fmt.Errorf("page and limit are required: %w", apperrors.ErrInvalidInput))
	}

	products, total, err := h.productService.ListProducts(page, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"method": "GET_ALL",
		"data": fiber.Map{
			"data":  products,
			"total": total,
		},
	})
}

// HandleDetail returns a single product.
func (h *ProductHandler) HandleDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fmt.Errorf("product ID must be an integer: %w", apperrors.ErrInvalidInput))
	}

	product, err := h.productService.GetProductByID(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"method": "GET_ONE",
		"data":   product,
	})
}

// HandleDelete deletes a product and its uploaded image file.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondError(c, fmt.Errorf("product ID must be an integer: %w", apperrors.ErrInvalidInput))
	}

	product, err := h.productService.GetProductByID(id)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return respondError(c, err)
	}

	h.removeImage(product.Image)

	return c.JSON(fiber.Map{
		"method": "DELETE",
		"data": fiber.Map{
			"message": fmt.Sprintf("Product with ID %d deleted successfully", id),
		},
	})
}
