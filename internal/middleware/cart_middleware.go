package middleware

import (
	"errors"
	"log"

	"kickstore/internal/cart"
	"kickstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	cartIDKey    = "cart_id"
	cartStoreKey = "cart"
)

// CartRequired is a Fiber middleware that resolves the :id route parameter to
// an existing cart.
func CartRequired(carts *services.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cartID := c.Params("id")
		if cartID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cart ID is required",
			})
		}

		store, err := carts.Cart(c.UserContext(), cartID)
		if err != nil {
			if errors.Is(err, services.ErrCartNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"message": "Cart not found",
				})
			}
			log.Printf("Failed to resolve cart %s: %v", cartID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not load cart",
				"error":   err.Error(),
			})
		}

		// Store the cart in Fiber context for subsequent handlers
		c.Locals(cartIDKey, cartID)
		c.Locals(cartStoreKey, store)

		return c.Next()
	}
}

// CartID returns the cart ID resolved by CartRequired.
func CartID(c *fiber.Ctx) string {
	id, _ := c.Locals(cartIDKey).(string)
	return id
}

// CartStore returns the cart resolved by CartRequired, or nil when the
// middleware did not run.
func CartStore(c *fiber.Ctx) *cart.Store {
	store, _ := c.Locals(cartStoreKey).(*cart.Store)
	return store
}
