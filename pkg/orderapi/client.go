package orderapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"kickstore/internal/models"
)

// ErrUpstream wraps every failure reported by the order API.
var ErrUpstream = errors.New("order API request failed")

// Config holds the order API connection details.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the external order API.
type Client struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a new order API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
	}
}

// apiResponse mirrors the API's envelope.
type apiResponse struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Success bool            `json:"success"`
}

// CreateOrder posts the order and returns the reference generated upstream.
// token, when non-empty, is sent as a bearer token.
func (c *Client) CreateOrder(ctx context.Context, req models.CreateOrderRequest, token string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	agent := fiber.Post(c.baseURL + "/orders")
	agent.JSON(req)
	agent.Timeout(timeout)
	if token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return "", fmt.Errorf("%w: %w", ErrUpstream, errors.Join(errs...))
	}

	var envelope apiResponse
	decodeErr := json.Unmarshal(body, &envelope)

	if code < 200 || code > 299 {
		if decodeErr == nil && envelope.Message != "" {
			return "", fmt.Errorf("%w: %s", ErrUpstream, envelope.Message)
		}
		return "", fmt.Errorf("%w: HTTP %d", ErrUpstream, code)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: invalid response body: %w", ErrUpstream, decodeErr)
	}

	var order models.Order
	if err := json.Unmarshal(envelope.Data, &order); err != nil {
		return "", fmt.Errorf("%w: invalid order payload: %w", ErrUpstream, err)
	}
	if order.Ref == "" {
		return "", fmt.Errorf("%w: response carries no order reference", ErrUpstream)
	}
	return order.Ref, nil
}
