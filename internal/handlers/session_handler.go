package handlers

import (
	"log"

	"kickstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SetSessionRequest stores a token issued by the admin backend.
type SetSessionRequest struct {
	Token    string `json:"token" validate:"required"`
	Username string `json:"username" validate:"required"`
}

// SessionHandler exposes the persisted admin session record.
type SessionHandler struct {
	service  *services.SessionService
	validate *validator.Validate
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the session routes with the Fiber app.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	sessionRoutes := router.Group("/session")
	sessionRoutes.Get("/", h.HandleGetSession)
	sessionRoutes.Put("/", h.HandleSetSession)
	sessionRoutes.Delete("/", h.HandleLogout)
}

func (h *SessionHandler) sessionBody() fiber.Map {
	authenticated := h.service.IsAuthenticated()
	username := ""
	if authenticated {
		username = h.service.State().Username
	}
	return fiber.Map{
		"authenticated": authenticated,
		"username":      username,
	}
}

// HandleGetSession reports whether an unexpired admin token is stored.
func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	return c.JSON(h.sessionBody())
}

// HandleSetSession replaces the stored token and username.
func (h *SessionHandler) HandleSetSession(c *fiber.Ctx) error {
	var req SetSessionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing session request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Token and username are required",
			"error":   err.Error(),
		})
	}

	h.service.SetAuth(c.UserContext(), req.Token, req.Username)
	return c.JSON(h.sessionBody())
}

// HandleLogout clears the stored session.
func (h *SessionHandler) HandleLogout(c *fiber.Ctx) error {
	h.service.Logout(c.UserContext())
	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}
