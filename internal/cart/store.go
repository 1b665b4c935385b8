package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"kickstore/internal/models"
	"kickstore/internal/repositories"
)

// Namespace is the storage key of the process-wide cart. Per-client carts
// are stored under Key(id).
const Namespace = "kickstore-cart"

// Key returns the storage key for a client cart.
func Key(cartID string) string {
	return Namespace + ":" + cartID
}

// Storage persists raw cart records by key.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store owns one cart. Every mutation runs through the State reducer and the
// result is then written to Storage.
type Store struct {
	mu      sync.Mutex
	key     string
	storage Storage
	state   State

	// checkoutMu is held from reading the lines to submit until they are
	// deducted, so one cart is never submitted twice at once.
	checkoutMu sync.Mutex
}

// Open creates a Store and rehydrates it from storage. Missing or corrupt
// records yield an empty cart; Open never fails because of them.
func Open(ctx context.Context, storage Storage, key string) *Store {
	s, _ := Load(ctx, storage, key)
	return s
}

// Load is Open for carts that must already exist. When storage has no record
// for key it returns an empty Store together with repositories.ErrStateNotFound.
// Other load failures and corrupt records are logged and yield an empty cart.
func Load(ctx context.Context, storage Storage, key string) (*Store, error) {
	s := &Store{key: key, storage: storage, state: State{Items: []models.CartItem{}}}
	if storage == nil {
		return s, nil
	}

	raw, err := storage.Load(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrStateNotFound) {
			return s, err
		}
		log.Printf("Cart %s: failed to load persisted state, starting empty: %v", key, err)
		return s, nil
	}

	state, err := decode(raw)
	if err != nil {
		log.Printf("Cart %s: discarding corrupt persisted state: %v", key, err)
		return s, nil
	}
	s.state = state
	return s, nil
}

func decode(raw []byte) (State, error) {
	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return State{}, fmt.Errorf("failed to decode cart: %w", err)
	}
	if state.Items == nil {
		state.Items = []models.CartItem{}
	}
	for _, item := range state.Items {
		if item.Variant.ID == "" || item.Quantity <= 0 {
			return State{}, fmt.Errorf("invalid cart line for variant %q with quantity %d", item.Variant.ID, item.Quantity)
		}
	}
	return state, nil
}

// Key is the storage key of this cart.
func (s *Store) Key() string {
	return s.key
}

// State returns the current cart state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Items: s.state.copyItems()}
}

// Summary returns the cart lines with derived pricing.
func (s *Store) Summary() models.CartSummary {
	return s.State().Summary()
}

// AddItem adds quantity of the variant to the cart.
func (s *Store) AddItem(ctx context.Context, product models.Product, variant models.ProductVariant, quantity int) State {
	return s.apply(ctx, func(st State) State { return st.AddItem(product, variant, quantity) })
}

// RemoveItem deletes the line for variantID if present.
func (s *Store) RemoveItem(ctx context.Context, variantID string) State {
	return s.apply(ctx, func(st State) State { return st.RemoveItem(variantID) })
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (s *Store) UpdateQuantity(ctx context.Context, variantID string, quantity int) State {
	return s.apply(ctx, func(st State) State { return st.UpdateQuantity(variantID, quantity) })
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) State {
	return s.apply(ctx, State.Clear)
}

// Deduct removes submitted quantities, keeping lines added or raised since
// the submission was built.
func (s *Store) Deduct(ctx context.Context, submitted []models.OrderLine) State {
	return s.apply(ctx, func(st State) State { return st.Deduct(submitted) })
}

// BeginCheckout blocks until no other checkout of this cart is running and
// returns the function that ends this one.
func (s *Store) BeginCheckout() (end func()) {
	s.checkoutMu.Lock()
	return s.checkoutMu.Unlock
}

func (s *Store) apply(ctx context.Context, transition func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = transition(s.state)
	s.persist(ctx)
	return State{Items: s.state.copyItems()}
}

// persist writes the current state. Failures are logged and the in-memory
// state stays authoritative.
func (s *Store) persist(ctx context.Context) {
	if s.storage == nil {
		return
	}
	raw, err := json.Marshal(s.state)
	if err != nil {
		log.Printf("Cart %s: failed to encode state: %v", s.key, err)
		return
	}
	if err := s.storage.Save(ctx, s.key, raw); err != nil {
		log.Printf("Cart %s: failed to persist state: %v", s.key, err)
	}
}

// Discard removes the persisted record of the cart.
func (s *Store) Discard(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.Clear()
	if s.storage == nil {
		return nil
	}
	if err := s.storage.Delete(ctx, s.key); err != nil && !errors.Is(err, repositories.ErrStateNotFound) {
		return fmt.Errorf("failed to delete cart %s: %w", s.key, err)
	}
	return nil
}
