package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"kickstore/internal/cart"
	"kickstore/internal/models"
	"kickstore/internal/repositories"

	"github.com/google/uuid"
)

// CartIdleTimeout is how long a cart stays cached after its last use. Evicted
// carts are reloaded from storage on their next request.
const CartIdleTimeout = 30 * time.Minute

const sweepInterval = time.Minute

type cachedCart struct {
	store    *cart.Store
	lastUsed time.Time
}

// CartService manages the carts of all clients. Each cart is persisted
// under cart.Key(id).
type CartService struct {
	storage   repositories.StateRepository
	products  repositories.ProductRepository
	carts     map[string]*cachedCart
	lastSweep time.Time
	now       func() time.Time
	mu        sync.Mutex
}

// NewCartService creates a new CartService.
func NewCartService(storage repositories.StateRepository, products repositories.ProductRepository) *CartService {
	return &CartService{
		storage:  storage,
		products: products,
		carts:    make(map[string]*cachedCart),
		now:      time.Now,
	}
}

// CreateCart starts an empty cart and returns its ID.
func (s *CartService) CreateCart(ctx context.Context) (string, models.CartSummary) {
	id := uuid.New().String()
	store := cart.Open(ctx, s.storage, cart.Key(id))
	store.Clear(ctx) // persist the empty record so the cart can be found later

	s.mu.Lock()
	s.carts[id] = &cachedCart{store: store, lastUsed: s.now()}
	s.mu.Unlock()

	return id, s.summary(id, store)
}

// Cart returns the store of an existing cart. Carts not cached in memory are
// rehydrated from storage.
func (s *CartService) Cart(ctx context.Context, id string) (*cart.Store, error) {
	key, err := cartKey(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= sweepInterval {
		s.evictLocked(now.Add(-CartIdleTimeout))
		s.lastSweep = now
	}

	if cached, ok := s.carts[key]; ok {
		cached.lastUsed = now
		return cached.store, nil
	}

	store, err := cart.Load(ctx, s.storage, cart.Key(key))
	if err != nil {
		if errors.Is(err, repositories.ErrStateNotFound) {
			return nil, fmt.Errorf("cart %s: %w", key, ErrCartNotFound)
		}
		return nil, err
	}
	s.carts[key] = &cachedCart{store: store, lastUsed: now}
	return store, nil
}

// cartKey canonicalizes a cart ID. The id passed in may alias a request
// buffer that is reused later; the canonical form is a fresh string and safe
// to keep as a map key.
func cartKey(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("cart %q: %w", id, ErrCartNotFound)
	}
	return parsed.String(), nil
}

// EvictIdle drops cached carts last used before cutoff and returns how many
// were dropped. Their persisted records are kept.
func (s *CartService) EvictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictLocked(cutoff)
}

func (s *CartService) evictLocked(cutoff time.Time) int {
	evicted := 0
	for key, cached := range s.carts {
		if cached.lastUsed.Before(cutoff) {
			delete(s.carts, key)
			evicted++
		}
	}
	return evicted
}

// CachedCarts returns the number of carts held in memory.
func (s *CartService) CachedCarts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

// Summary returns the cart lines and pricing.
func (s *CartService) Summary(ctx context.Context, id string) (models.CartSummary, error) {
	store, err := s.Cart(ctx, id)
	if err != nil {
		return models.CartSummary{}, err
	}
	return s.summary(id, store), nil
}

// AddItem adds quantity of a product variant to the cart.
func (s *CartService) AddItem(ctx context.Context, id, productID, variantID string, quantity int) (models.CartSummary, error) {
	if quantity <= 0 {
		return models.CartSummary{}, ErrInvalidQuantity
	}
	store, err := s.Cart(ctx, id)
	if err != nil {
		return models.CartSummary{}, err
	}

	product, err := s.products.GetByID(productID)
	if err != nil {
		return models.CartSummary{}, err
	}
	variant, ok := product.VariantByID(variantID)
	if !ok {
		return models.CartSummary{}, fmt.Errorf("variant %s of product %s: %w", variantID, productID, ErrVariantNotFound)
	}
	if variant.Stock <= 0 {
		return models.CartSummary{}, fmt.Errorf("variant %s: %w", variantID, ErrOutOfStock)
	}

	store.AddItem(ctx, *product, variant, quantity)
	return s.summary(id, store), nil
}

// UpdateQuantity sets the quantity of a line, clamped to stock. Zero or less
// removes it; unknown variants are ignored.
func (s *CartService) UpdateQuantity(ctx context.Context, id, variantID string, quantity int) (models.CartSummary, error) {
	store, err := s.Cart(ctx, id)
	if err != nil {
		return models.CartSummary{}, err
	}
	store.UpdateQuantity(ctx, variantID, quantity)
	return s.summary(id, store), nil
}

// RemoveItem deletes a line. Removing a variant that is not in the cart is a
// no-op.
func (s *CartService) RemoveItem(ctx context.Context, id, variantID string) (models.CartSummary, error) {
	store, err := s.Cart(ctx, id)
	if err != nil {
		return models.CartSummary{}, err
	}
	store.RemoveItem(ctx, variantID)
	return s.summary(id, store), nil
}

// ClearCart empties the cart but keeps it.
func (s *CartService) ClearCart(ctx context.Context, id string) (models.CartSummary, error) {
	store, err := s.Cart(ctx, id)
	if err != nil {
		return models.CartSummary{}, err
	}
	store.Clear(ctx)
	return s.summary(id, store), nil
}

// DeleteCart forgets the cart and its persisted record.
func (s *CartService) DeleteCart(ctx context.Context, id string) error {
	store, err := s.Cart(ctx, id)
	if err != nil {
		return err
	}
	if err := store.Discard(ctx); err != nil {
		return err
	}

	key, _ := cartKey(id) // Cart has already validated id
	s.mu.Lock()
	delete(s.carts, key)
	s.mu.Unlock()
	return nil
}

func (s *CartService) summary(id string, store *cart.Store) models.CartSummary {
	summary := store.Summary()
	summary.ID = id
	return summary
}
