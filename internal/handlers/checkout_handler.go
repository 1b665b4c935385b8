package handlers

import (
	"errors"
	"log"

	"kickstore/internal/middleware"
	"kickstore/internal/models"
	"kickstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles order placement.
type CheckoutHandler struct {
	service *services.CheckoutService
	carts   *services.CartService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService, carts *services.CartService) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		carts:   carts,
	}
}

// RegisterRoutes registers the checkout route with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/carts/:id/checkout", middleware.CartRequired(h.carts), h.HandleCheckout)
}

// HandleCheckout validates the checkout form and places the order.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var form models.CheckoutForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing checkout form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cartID := middleware.CartID(c)
	result, err := h.service.Checkout(c.UserContext(), cartID, form)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Checkout form is invalid",
				"errors":  validationErr.Fields,
			})
		case errors.Is(err, services.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cart is empty",
			})
		case errors.Is(err, services.ErrCartNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart not found",
			})
		case errors.Is(err, services.ErrOrderSubmission):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"message": "Order could not be placed",
				"error":   err.Error(),
			})
		}
		log.Printf("Error checking out cart %s: %v", cartID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not place order",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ref":         result.Ref,
		"synthesized": result.Synthesized,
		"total":       result.Summary.Total,
	})
}
