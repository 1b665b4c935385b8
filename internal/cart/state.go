// Package cart holds the shopping cart: a pure state reducer with derived
// pricing, and a Store that persists every transition.
package cart

import "kickstore/internal/models"

const (
	// FreeShippingThreshold is the subtotal that must be exceeded for free shipping.
	FreeShippingThreshold = 200.0
	// FlatShippingFee is charged when the subtotal does not exceed the threshold.
	FlatShippingFee = 25.0
)

// State is the authoritative list of cart lines, unique by variant ID.
// Transitions return a new State and leave the receiver untouched.
type State struct {
	Items []models.CartItem `json:"items"`
}

func (s State) indexOf(variantID string) int {
	for i, item := range s.Items {
		if item.Variant.ID == variantID {
			return i
		}
	}
	return -1
}

func (s State) copyItems() []models.CartItem {
	items := make([]models.CartItem, len(s.Items))
	copy(items, s.Items)
	return items
}

// AddItem merges quantity into an existing line for the variant, clamped to
// the variant's stock, or appends a new line. A new line is not clamped.
func (s State) AddItem(product models.Product, variant models.ProductVariant, quantity int) State {
	items := s.copyItems()
	if i := s.indexOf(variant.ID); i >= 0 {
		items[i].Quantity = min(items[i].Quantity+quantity, variant.Stock)
		return State{Items: items}
	}
	items = append(items, models.CartItem{Product: product, Variant: variant, Quantity: quantity})
	return State{Items: items}
}

// RemoveItem drops the line for variantID if present.
func (s State) RemoveItem(variantID string) State {
	items := make([]models.CartItem, 0, len(s.Items))
	for _, item := range s.Items {
		if item.Variant.ID != variantID {
			items = append(items, item)
		}
	}
	return State{Items: items}
}

// UpdateQuantity sets the line quantity to min(quantity, stock). A quantity of
// zero or less removes the line.
func (s State) UpdateQuantity(variantID string, quantity int) State {
	if quantity <= 0 {
		return s.RemoveItem(variantID)
	}
	items := s.copyItems()
	if i := s.indexOf(variantID); i >= 0 {
		items[i].Quantity = min(quantity, items[i].Variant.Stock)
	}
	return State{Items: items}
}

// Clear returns an empty cart.
func (s State) Clear() State {
	return State{Items: []models.CartItem{}}
}

// Deduct subtracts submitted quantities from the matching lines. Lines that
// reach zero are dropped; lines that were not submitted are kept.
func (s State) Deduct(submitted []models.OrderLine) State {
	ordered := make(map[string]int, len(submitted))
	for _, line := range submitted {
		ordered[line.VariantID] += line.Quantity
	}
	items := make([]models.CartItem, 0, len(s.Items))
	for _, item := range s.Items {
		item.Quantity -= ordered[item.Variant.ID]
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}
	return State{Items: items}
}

// Contains reports whether the cart has a line for variantID.
func (s State) Contains(variantID string) bool {
	return s.indexOf(variantID) >= 0
}

// ItemCount sums the quantities of all lines.
func (s State) ItemCount() int {
	count := 0
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal sums price times quantity over all lines.
func (s State) Subtotal() float64 {
	var subtotal float64
	for _, item := range s.Items {
		subtotal += item.LineTotal()
	}
	return subtotal
}

// Shipping is free above FreeShippingThreshold and FlatShippingFee otherwise.
func (s State) Shipping() float64 {
	if s.Subtotal() > FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// Total is the subtotal plus shipping.
func (s State) Total() float64 {
	return s.Subtotal() + s.Shipping()
}

// Summary computes all derived values from the current lines.
func (s State) Summary() models.CartSummary {
	return models.CartSummary{
		Items:     s.copyItems(),
		ItemCount: s.ItemCount(),
		Subtotal:  s.Subtotal(),
		Shipping:  s.Shipping(),
		Total:     s.Total(),
	}
}
