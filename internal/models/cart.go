package models

// CartItem is a snapshot of a product and variant with the quantity the
// customer intends to buy. Stock changes upstream are not reflected until the
// product is fetched again.
type CartItem struct {
	Product  Product        `json:"product"`
	Variant  ProductVariant `json:"variant"`
	Quantity int            `json:"quantity"`
}

// LineTotal is the variant price times the quantity.
func (i CartItem) LineTotal() float64 {
	return i.Variant.Price * float64(i.Quantity)
}

// CartSummary is a cart with its derived pricing.
type CartSummary struct {
	ID        string     `json:"id,omitempty"`
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"itemCount"`
	Subtotal  float64    `json:"subtotal"`
	Shipping  float64    `json:"shipping"`
	Total     float64    `json:"total"`
}
