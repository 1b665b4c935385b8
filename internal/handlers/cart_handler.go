package handlers

import (
	"errors"
	"log"

	"kickstore/internal/middleware"
	"kickstore/internal/repositories"
	"kickstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AddItemRequest is the body of POST /carts/:id/items. A missing quantity
// adds one unit.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID string `json:"variantId" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"omitempty,min=1"`
}

// UpdateQuantityRequest is the body of PATCH /carts/:id/items/:variantId.
// A quantity of zero or less removes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CartHandler handles HTTP requests for carts.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRequired := middleware.CartRequired(h.service)

	cartRoutes := router.Group("/carts")
	cartRoutes.Post("/", h.HandleCreateCart)
	cartRoutes.Get("/:id", cartRequired, h.HandleGetCart)
	cartRoutes.Delete("/:id", cartRequired, h.HandleDeleteCart)
	cartRoutes.Post("/:id/items", cartRequired, h.HandleAddItem)
	cartRoutes.Patch("/:id/items/:variantId", cartRequired, h.HandleUpdateQuantity)
	cartRoutes.Delete("/:id/items/:variantId", cartRequired, h.HandleRemoveItem)
}

// cartError maps service errors to status codes.
func cartError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Could not update cart"
	switch {
	case errors.Is(err, services.ErrCartNotFound):
		status, message = fiber.StatusNotFound, "Cart not found"
	case errors.Is(err, repositories.ErrProductNotFound), errors.Is(err, services.ErrVariantNotFound):
		status, message = fiber.StatusNotFound, "Product variant not found"
	case errors.Is(err, services.ErrInvalidQuantity):
		status, message = fiber.StatusBadRequest, "Quantity must be greater than 0"
	case errors.Is(err, services.ErrOutOfStock):
		status, message = fiber.StatusConflict, "Product variant is out of stock"
	default:
		log.Printf("Error updating cart %s: %v", c.Params("id"), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// HandleCreateCart creates an empty cart and returns it with its new ID.
func (h *CartHandler) HandleCreateCart(c *fiber.Ctx) error {
	_, summary := h.service.CreateCart(c.UserContext())
	return c.Status(fiber.StatusCreated).JSON(summary)
}

// HandleGetCart returns the cart lines and totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	summary := middleware.CartStore(c).Summary()
	summary.ID = middleware.CartID(c)
	return c.JSON(summary)
}

// HandleDeleteCart forgets a cart.
func (h *CartHandler) HandleDeleteCart(c *fiber.Ctx) error {
	if err := h.service.DeleteCart(c.UserContext(), middleware.CartID(c)); err != nil {
		return cartError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAddItem adds a product variant to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add item request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "productId and variantId are required and quantity must be at least 1",
			"error":   err.Error(),
		})
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	summary, err := h.service.AddItem(c.UserContext(), middleware.CartID(c), req.ProductID, req.VariantID, quantity)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(summary)
}

// HandleUpdateQuantity sets the quantity of a cart line.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update quantity request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Quantity is required",
			"error":   err.Error(),
		})
	}

	summary, err := h.service.UpdateQuantity(c.UserContext(), middleware.CartID(c), c.Params("variantId"), *req.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(summary)
}

// HandleRemoveItem drops a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	summary, err := h.service.RemoveItem(c.UserContext(), middleware.CartID(c), c.Params("variantId"))
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(summary)
}
