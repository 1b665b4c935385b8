package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strconv"
	"strings"
	"time"

	"kickstore/internal/models"
	"kickstore/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
)

// FailureMode decides what happens when the order API cannot be reached or
// rejects an order.
type FailureMode string

const (
	// FailureOptimistic synthesizes a local reference and reports success.
	FailureOptimistic FailureMode = "optimistic"
	// FailureStrict surfaces the error and keeps the cart.
	FailureStrict FailureMode = "strict"
)

// ParseFailureMode maps a configuration value to a FailureMode.
func ParseFailureMode(s string) (FailureMode, error) {
	switch mode := FailureMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case FailureOptimistic, FailureStrict:
		return mode, nil
	case "":
		return FailureOptimistic, nil
	default:
		return "", fmt.Errorf("unknown checkout failure mode %q", s)
	}
}

// OrderSubmitter sends an order to the order backend and returns its reference.
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest, token string) (string, error)
}

// EventPublisher announces placed orders.
type EventPublisher interface {
	PublishOrderPlaced(event rabbitmq.OrderPlaced) error
}

// CheckoutResult is the outcome shown to the customer.
type CheckoutResult struct {
	Ref         string             `json:"ref"`
	Synthesized bool               `json:"synthesized"`
	Summary     models.CartSummary `json:"summary"`
}

// CheckoutService turns a cart and a checkout form into an order request.
type CheckoutService struct {
	carts    *CartService
	orders   OrderSubmitter
	events   EventPublisher
	session  *SessionService
	validate *validator.Validate
	mode     FailureMode
	now      func() time.Time
}

// NewCheckoutService creates a new CheckoutService. events and session may be nil.
func NewCheckoutService(carts *CartService, orders OrderSubmitter, events EventPublisher, session *SessionService, mode FailureMode) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		orders:   orders,
		events:   events,
		session:  session,
		validate: newValidator(),
		mode:     mode,
		now:      time.Now,
	}
}

// NormalizeForm trims every text field.
func NormalizeForm(form models.CheckoutForm) models.CheckoutForm {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Email = strings.TrimSpace(form.Email)
	form.City = strings.TrimSpace(form.City)
	form.Street = strings.TrimSpace(form.Street)
	form.Building = strings.TrimSpace(form.Building)
	form.Apartment = strings.TrimSpace(form.Apartment)
	form.Notes = strings.TrimSpace(form.Notes)
	form.PaymentMethod = models.PaymentMethod(strings.TrimSpace(string(form.PaymentMethod)))
	return form
}

// ValidateForm checks a normalized form and reports every failing field.
func (s *CheckoutService) ValidateForm(form models.CheckoutForm) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate checkout form: %w", err)
	}
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return &ValidationError{Fields: fields}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// BuildOrderRequest packages cart lines and form values for POST /orders.
func BuildOrderRequest(items []models.CartItem, form models.CheckoutForm) models.CreateOrderRequest {
	lines := make([]models.OrderLine, len(items))
	for i, item := range items {
		lines[i] = models.OrderLine{VariantID: item.Variant.ID, Quantity: item.Quantity}
	}
	return models.CreateOrderRequest{
		Items:    lines,
		Customer: models.CustomerInfo{FullName: form.FullName, Phone: form.Phone, Email: form.Email},
		ShippingAddress: models.ShippingAddress{
			City:      form.City,
			Street:    form.Street,
			Building:  form.Building,
			Apartment: form.Apartment,
		},
		PaymentMethod: form.PaymentMethod,
		Notes:         form.Notes,
	}
}

// SyntheticRef builds a local order reference from a timestamp.
func SyntheticRef(t time.Time) string {
	return "KS-" + strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}

// Checkout validates the form, submits the cart and removes the submitted
// lines once an order reference is obtained. Checkouts of the same cart run
// one at a time.
func (s *CheckoutService) Checkout(ctx context.Context, cartID string, form models.CheckoutForm) (*CheckoutResult, error) {
	store, err := s.carts.Cart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	form = NormalizeForm(form)
	if err := s.ValidateForm(form); err != nil {
		return nil, err
	}

	end := store.BeginCheckout()
	defer end()

	state := store.State()
	if len(state.Items) == 0 {
		return nil, ErrEmptyCart
	}
	summary := state.Summary()
	summary.ID = cartID

	var token string
	if s.session != nil {
		token = s.session.Token()
	}

	result := &CheckoutResult{Summary: summary}
	req := BuildOrderRequest(state.Items, form)
	ref, err := s.orders.CreateOrder(ctx, req, token)
	if err != nil {
		if s.mode == FailureStrict {
			log.Printf("Checkout of cart %s failed: %v", cartID, err)
			return nil, fmt.Errorf("%w: %w", ErrOrderSubmission, err)
		}
		ref = SyntheticRef(s.now())
		result.Synthesized = true
		log.Printf("Warning: order API failed for cart %s, continuing with local reference %s: %v", cartID, ref, err)
	}
	result.Ref = ref

	// Only what was submitted leaves the cart; lines changed while the order
	// was in flight stay.
	store.Deduct(ctx, req.Items)
	s.publish(cartID, result)
	return result, nil
}

func (s *CheckoutService) publish(cartID string, result *CheckoutResult) {
	if s.events == nil {
		return
	}
	event := rabbitmq.OrderPlaced{
		Ref:         result.Ref,
		CartID:      cartID,
		ItemCount:   result.Summary.ItemCount,
		Total:       result.Summary.Total,
		Synthesized: result.Synthesized,
		PlacedAt:    s.now(),
	}
	if err := s.events.PublishOrderPlaced(event); err != nil {
		log.Printf("Warning: failed to publish order placed event for %s: %v", result.Ref, err)
	}
}
