package cart_test

import (
	"testing"

	"kickstore/internal/cart"
	"kickstore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variant(id string, price float64, stock int) models.ProductVariant {
	return models.ProductVariant{ID: id, ProductID: "p-" + id, Size: models.SizeM, Stock: stock, Price: price}
}

func product(id string) models.Product {
	return models.Product{ID: id, Name: "Product " + id, Club: "Barcelona"}
}

func TestState_AddDistinctVariants(t *testing.T) {
	var s cart.State
	s = s.AddItem(product("a"), variant("va", 10, 5), 2)
	s = s.AddItem(product("b"), variant("vb", 20, 5), 3)
	s = s.AddItem(product("c"), variant("vc", 30, 1), 4) // new lines are not clamped

	assert.Len(t, s.Items, 3)
	assert.Equal(t, 9, s.ItemCount())
}

func TestState_AddMergesAndClamps(t *testing.T) {
	v := variant("va", 10, 5)
	var s cart.State
	s = s.AddItem(product("a"), v, 3)
	s = s.AddItem(product("a"), v, 1)
	require.Len(t, s.Items, 1)
	assert.Equal(t, 4, s.Items[0].Quantity)

	s = s.AddItem(product("a"), v, 10)
	require.Len(t, s.Items, 1)
	assert.Equal(t, 5, s.Items[0].Quantity)
}

func TestState_AddClampsToIncomingVariantStock(t *testing.T) {
	var s cart.State
	s = s.AddItem(product("a"), variant("va", 10, 5), 4)
	s = s.AddItem(product("a"), variant("va", 10, 2), 1)
	assert.Equal(t, 2, s.Items[0].Quantity)
}

func TestState_TransitionsDoNotMutateInput(t *testing.T) {
	var s cart.State
	s = s.AddItem(product("a"), variant("va", 10, 5), 1)
	before := s.Items[0].Quantity

	_ = s.AddItem(product("a"), variant("va", 10, 5), 2)
	_ = s.UpdateQuantity("va", 4)
	_ = s.RemoveItem("va")
	_ = s.Clear()

	require.Len(t, s.Items, 1)
	assert.Equal(t, before, s.Items[0].Quantity)
}

func TestState_UpdateQuantity(t *testing.T) {
	var s cart.State
	s = s.AddItem(product("a"), variant("va", 10, 5), 1)

	tests := []struct {
		name     string
		quantity int
		want     int
	}{
		{"below stock", 3, 3},
		{"at stock", 5, 5},
		{"above stock", 9, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := s.UpdateQuantity("va", tt.quantity)
			require.Len(t, updated.Items, 1)
			assert.Equal(t, tt.want, updated.Items[0].Quantity)
		})
	}
}

func TestState_UpdateQuantityNonPositiveRemoves(t *testing.T) {
	var s cart.State
	s = s.AddItem(product("a"), variant("va", 10, 5), 2)
	s = s.AddItem(product("b"), variant("vb", 10, 5), 2)

	assert.False(t, s.UpdateQuantity("va", 0).Contains("va"))
	assert.False(t, s.UpdateQuantity("va", -1).Contains("va"))
	assert.Len(t, s.UpdateQuantity("va", -1).Items, 1)
}

func TestState_UpdateQuantityUnknownVariant(t *testing.T) {
	var s cart.State
	s = s.AddItem(product("a"), variant("va", 10, 5), 2)
	updated := s.UpdateQuantity("nope", 3)
	assert.Equal(t, s.Items, updated.Items)
}

func TestState_RemoveItem(t *testing.T) {
	var s cart.State
	s = s.AddItem(product("a"), variant("va", 10, 5), 2)
	s = s.AddItem(product("b"), variant("vb", 10, 5), 2)

	assert.Len(t, s.RemoveItem("missing").Items, 2)
	removed := s.RemoveItem("va")
	require.Len(t, removed.Items, 1)
	assert.Equal(t, "vb", removed.Items[0].Variant.ID)
}

func TestState_Clear(t *testing.T) {
	var s cart.State
	s = s.AddItem(product("a"), variant("va", 10, 5), 2)
	s = s.Clear()
	assert.Equal(t, 0, s.ItemCount())
	assert.Equal(t, 0.0, s.Subtotal())
	assert.NotNil(t, s.Items)
}

func TestState_SubtotalRecomputedAfterMutation(t *testing.T) {
	var s cart.State
	s = s.AddItem(product("a"), variant("va", 12.5, 10), 2)
	assert.Equal(t, 25.0, s.Subtotal())

	s = s.UpdateQuantity("va", 4)
	assert.Equal(t, 50.0, s.Subtotal())

	s = s.AddItem(product("b"), variant("vb", 7, 10), 1)
	assert.Equal(t, 57.0, s.Subtotal())

	s = s.RemoveItem("va")
	assert.Equal(t, 7.0, s.Subtotal())
}

func TestState_Shipping(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		shipping float64
	}{
		{"below threshold", 199, cart.FlatShippingFee},
		{"at threshold", 200, cart.FlatShippingFee},
		{"above threshold", 200.01, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s cart.State
			s = s.AddItem(product("a"), variant("va", tt.price, 1), 1)
			assert.Equal(t, tt.shipping, s.Shipping())
			assert.Equal(t, tt.price+tt.shipping, s.Total())
		})
	}
}

func TestState_PricingScenarios(t *testing.T) {
	t.Run("free shipping", func(t *testing.T) {
		var s cart.State
		s = s.AddItem(product("a"), variant("va", 100, 5), 1)
		s = s.AddItem(product("b"), variant("vb", 150, 5), 1)
		assert.Equal(t, 250.0, s.Subtotal())
		assert.Equal(t, 0.0, s.Shipping())
		assert.Equal(t, 250.0, s.Total())
	})

	t.Run("flat shipping", func(t *testing.T) {
		var s cart.State
		s = s.AddItem(product("a"), variant("va", 50, 5), 2)
		assert.Equal(t, 100.0, s.Subtotal())
		assert.Equal(t, 25.0, s.Shipping())
		assert.Equal(t, 125.0, s.Total())
	})
}

func TestState_Summary(t *testing.T) {
	var s cart.State
	s = s.AddItem(product("a"), variant("va", 50, 5), 2)
	summary := s.Summary()
	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, 100.0, summary.Subtotal)
	assert.Equal(t, 25.0, summary.Shipping)
	assert.Equal(t, 125.0, summary.Total)
	assert.Len(t, summary.Items, 1)
}

func TestState_Deduct(t *testing.T) {
	var s cart.State
	s = s.AddItem(product("a"), variant("va", 10, 5), 2)
	s = s.AddItem(product("b"), variant("vb", 20, 5), 3)
	s = s.AddItem(product("c"), variant("vc", 30, 5), 1)

	after := s.Deduct([]models.OrderLine{
		{VariantID: "va", Quantity: 2},
		{VariantID: "vb", Quantity: 1},
		{VariantID: "gone", Quantity: 4},
	})

	require.Len(t, after.Items, 2)
	assert.False(t, after.Contains("va"), "fully submitted lines are dropped")
	assert.Equal(t, "vb", after.Items[0].Variant.ID)
	assert.Equal(t, 2, after.Items[0].Quantity, "quantity added after submission stays")
	assert.Equal(t, "vc", after.Items[1].Variant.ID, "unsubmitted lines stay")
	assert.Len(t, s.Items, 3, "receiver is not mutated")
}
