package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aeropizza/backend/internal/order"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name         string
		items        []order.PricedItem
		deliveryType order.DeliveryType
		discount     float64
		want         order.Totals
	}{
		{
			name: "delivery_order",
			items: []order.PricedItem{
				{UnitPrice: 30.00, Quantity: 2},
				{UnitPrice: 15.50, Quantity: 1},
			},
			deliveryType: order.DeliveryTypeDelivery,
			want:         order.Totals{Subtotal: 75.50, DeliveryFee: 8.00, Final: 83.50},
		},
		{
			name: "pickup_has_no_fee",
			items: []order.PricedItem{
				{UnitPrice: 30.00, Quantity: 2},
				{UnitPrice: 15.50, Quantity: 1},
			},
			deliveryType: order.DeliveryTypePickup,
			want:         order.Totals{Subtotal: 75.50, Final: 75.50},
		},
		{
			name:         "empty_cart",
			items:        nil,
			deliveryType: order.DeliveryTypePickup,
			want:         order.Totals{},
		},
		{
			name: "discount_applied",
			items: []order.PricedItem{
				{UnitPrice: 50.00, Quantity: 1},
			},
			deliveryType: order.DeliveryTypeDelivery,
			discount:     10.00,
			want:         order.Totals{Subtotal: 50.00, DeliveryFee: 8.00, Discount: 10.00, Final: 48.00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := order.Quote(tt.items, tt.deliveryType, tt.discount)
			assert.InDelta(t, tt.want.Subtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tt.want.DeliveryFee, got.DeliveryFee, 1e-9)
			assert.InDelta(t, tt.want.Discount, got.Discount, 1e-9)
			assert.InDelta(t, tt.want.Final, got.Final, 1e-9)
		})
	}
}

func TestQuote_IndependentOfItemOrder(t *testing.T) {
	items := []order.PricedItem{
		{UnitPrice: 12.30, Quantity: 3},
		{UnitPrice: 45.00, Quantity: 1},
		{UnitPrice: 7.77, Quantity: 2},
	}
	reversed := []order.PricedItem{items[2], items[1], items[0]}

	forward := order.Quote(items, order.DeliveryTypeDelivery, 0)
	backward := order.Quote(reversed, order.DeliveryTypeDelivery, 0)

	assert.InDelta(t, forward.Subtotal, backward.Subtotal, 1e-9)
	assert.InDelta(t, forward.Final, backward.Final, 1e-9)
}

func TestQuote_DeliveryCostsExactlyTheFeeMore(t *testing.T) {
	items := []order.PricedItem{
		{UnitPrice: 19.90, Quantity: 2},
		{UnitPrice: 5.00, Quantity: 4},
	}

	delivery := order.Quote(items, order.DeliveryTypeDelivery, 0)
	pickup := order.Quote(items, order.DeliveryTypePickup, 0)

	assert.InDelta(t, pickup.Final+order.DeliveryFeeAmount, delivery.Final, 1e-9)
}
