package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"kickstore/internal/models"
	"kickstore/internal/services"
	"kickstore/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderSubmitter is a mock implementation of services.OrderSubmitter
type MockOrderSubmitter struct {
	mock.Mock
}

func (m *MockOrderSubmitter) CreateOrder(ctx context.Context, req models.CreateOrderRequest, token string) (string, error) {
	args := m.Called(ctx, req, token)
	return args.String(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishOrderPlaced(event rabbitmq.OrderPlaced) error {
	args := m.Called(event)
	return args.Error(0)
}

func validForm() models.CheckoutForm {
	return models.CheckoutForm{
		FullName:      "  Dana Levi ",
		Phone:         "0501234567",
		City:          "Haifa",
		Street:        "Herzl",
		Building:      "12",
		PaymentMethod: models.PaymentBit,
	}
}

type checkoutFixture struct {
	carts    *services.CartService
	orders   *MockOrderSubmitter
	events   *MockEventPublisher
	session  *services.SessionService
	cartID   string
	checkout func(mode services.FailureMode) *services.CheckoutService
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	ctx := context.Background()
	carts, storage := newCartService(t)
	id, _ := carts.CreateCart(ctx)
	_, err := carts.AddItem(ctx, id, "barca", "barca-m", 2)
	require.NoError(t, err)

	f := &checkoutFixture{
		carts:   carts,
		orders:  new(MockOrderSubmitter),
		events:  new(MockEventPublisher),
		session: services.NewSessionService(ctx, storage),
		cartID:  id,
	}
	f.checkout = func(mode services.FailureMode) *services.CheckoutService {
		return services.NewCheckoutService(f.carts, f.orders, f.events, f.session, mode)
	}
	return f
}

func TestCheckoutService_Success(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.session.SetAuth(ctx, "admin-token", "admin")

	expected := models.CreateOrderRequest{
		Items:           []models.OrderLine{{VariantID: "barca-m", Quantity: 2}},
		Customer:        models.CustomerInfo{FullName: "Dana Levi", Phone: "0501234567"},
		ShippingAddress: models.ShippingAddress{City: "Haifa", Street: "Herzl", Building: "12"},
		PaymentMethod:   models.PaymentBit,
	}
	f.orders.On("CreateOrder", mock.Anything, expected, "admin-token").Return("KS-UPSTREAM", nil).Once()
	f.events.On("PublishOrderPlaced", mock.MatchedBy(func(e rabbitmq.OrderPlaced) bool {
		return e.Ref == "KS-UPSTREAM" && !e.Synthesized && e.ItemCount == 2 && e.Total == 225
	})).Return(nil).Once()

	result, err := f.checkout(services.FailureStrict).Checkout(ctx, f.cartID, validForm())
	require.NoError(t, err)
	assert.Equal(t, "KS-UPSTREAM", result.Ref)
	assert.False(t, result.Synthesized)
	assert.Equal(t, 225.0, result.Summary.Total)

	summary, err := f.carts.Summary(ctx, f.cartID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items, "cart is cleared after a placed order")

	f.orders.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestCheckoutService_OptimisticFallback(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.orders.On("CreateOrder", mock.Anything, mock.Anything, "").Return("", errors.New("connection refused")).Once()
	f.events.On("PublishOrderPlaced", mock.Anything).Return(errors.New("broker down")).Once()

	result, err := f.checkout(services.FailureOptimistic).Checkout(ctx, f.cartID, validForm())
	require.NoError(t, err)
	assert.True(t, result.Synthesized)
	assert.True(t, strings.HasPrefix(result.Ref, "KS-"))

	summary, err := f.carts.Summary(ctx, f.cartID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}

func TestCheckoutService_StrictKeepsCart(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.orders.On("CreateOrder", mock.Anything, mock.Anything, "").Return("", errors.New("HTTP 500")).Once()

	_, err := f.checkout(services.FailureStrict).Checkout(ctx, f.cartID, validForm())
	assert.ErrorIs(t, err, services.ErrOrderSubmission)
	assert.Contains(t, err.Error(), "HTTP 500")

	summary, err := f.carts.Summary(ctx, f.cartID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ItemCount)
	f.events.AssertNotCalled(t, "PublishOrderPlaced", mock.Anything)
}

func TestCheckoutService_ValidationReportsEveryField(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)

	form := models.CheckoutForm{
		FullName:      " A ",
		Phone:         "123",
		Email:         "not-an-email",
		City:          "H",
		Street:        "",
		Building:      "",
		Notes:         strings.Repeat("x", 501),
		PaymentMethod: "card",
	}
	_, err := f.checkout(services.FailureOptimistic).Checkout(ctx, f.cartID, form)

	var validationErr *services.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ErrorIs(t, err, services.ErrInvalidCheckout)
	for _, field := range []string{"fullName", "phone", "email", "city", "street", "building", "notes", "paymentMethod"} {
		assert.Contains(t, validationErr.Fields, field)
	}
	assert.NotContains(t, validationErr.Fields, "apartment")
	f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_EmptyCart(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	_, err := f.carts.ClearCart(ctx, f.cartID)
	require.NoError(t, err)

	_, err = f.checkout(services.FailureOptimistic).Checkout(ctx, f.cartID, validForm())
	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestCheckoutService_UnknownCart(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.checkout(services.FailureOptimistic).Checkout(context.Background(), "missing", validForm())
	assert.ErrorIs(t, err, services.ErrCartNotFound)
}

func TestBuildOrderRequest_OptionalFields(t *testing.T) {
	items := []models.CartItem{{Variant: models.ProductVariant{ID: "v1"}, Quantity: 3}}
	form := validForm()
	form.Email = "dana@example.com"
	form.Apartment = "4"
	form.Notes = "Call before delivery"

	req := services.BuildOrderRequest(items, form)
	assert.Equal(t, []models.OrderLine{{VariantID: "v1", Quantity: 3}}, req.Items)
	assert.Equal(t, "dana@example.com", req.Customer.Email)
	assert.Equal(t, "4", req.ShippingAddress.Apartment)
	assert.Equal(t, "Call before delivery", req.Notes)
}

func TestSyntheticRef(t *testing.T) {
	ref := services.SyntheticRef(time.UnixMilli(1700000000000))
	assert.Equal(t, "KS-LOYW3V28", ref)
}

func TestParseFailureMode(t *testing.T) {
	mode, err := services.ParseFailureMode("STRICT")
	assert.NoError(t, err)
	assert.Equal(t, services.FailureStrict, mode)

	mode, err = services.ParseFailureMode("")
	assert.NoError(t, err)
	assert.Equal(t, services.FailureOptimistic, mode)

	_, err = services.ParseFailureMode("pessimistic")
	assert.Error(t, err)
}

func TestCheckoutService_KeepsLinesAddedDuringSubmission(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req models.CreateOrderRequest) bool {
		return len(req.Items) == 1 && req.Items[0].VariantID == "barca-m"
	}), "").Run(func(mock.Arguments) {
		_, err := f.carts.AddItem(ctx, f.cartID, "barca", "barca-xl", 1)
		require.NoError(t, err)
	}).Return("ORD-7", nil).Once()
	f.events.On("PublishOrderPlaced", mock.Anything).Return(nil).Once()

	result, err := f.checkout(services.FailureStrict).Checkout(ctx, f.cartID, validForm())
	require.NoError(t, err)
	assert.Equal(t, "ORD-7", result.Ref)
	assert.Equal(t, 2, result.Summary.ItemCount)

	summary, err := f.carts.Summary(ctx, f.cartID)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1, "the line added in flight was not ordered and stays")
	assert.Equal(t, "barca-xl", summary.Items[0].Variant.ID)
	assert.Equal(t, 1, summary.Items[0].Quantity)
	f.orders.AssertExpectations(t)
}

func TestCheckoutService_ConcurrentCheckoutSubmitsOnce(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.orders.On("CreateOrder", mock.Anything, mock.Anything, "").Run(func(mock.Arguments) {
		time.Sleep(20 * time.Millisecond)
	}).Return("ORD-1", nil)
	f.events.On("PublishOrderPlaced", mock.Anything).Return(nil)
	service := f.checkout(services.FailureStrict)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Checkout(ctx, f.cartID, validForm())
		}(i)
	}
	wg.Wait()

	succeeded, empty := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, services.ErrEmptyCart):
			empty++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, empty)
	f.orders.AssertNumberOfCalls(t, "CreateOrder", 1)
}
