package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aeropizza/backend/internal/order"
)

func TestOrderStatus_Next(t *testing.T) {
	assert.Equal(t, order.StatusConfirmed, order.StatusPending.Next())
	assert.Equal(t, order.StatusPreparing, order.StatusConfirmed.Next())
	assert.Equal(t, order.StatusReady, order.StatusPreparing.Next())
	assert.Equal(t, order.StatusOutForDelivery, order.StatusReady.Next())
	assert.Equal(t, order.StatusDelivered, order.StatusOutForDelivery.Next())
	assert.Empty(t, order.StatusDelivered.Next())
	assert.Empty(t, order.StatusCancelled.Next())
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, order.StatusDelivered.Terminal())
	assert.True(t, order.StatusCancelled.Terminal())
	assert.False(t, order.StatusPending.Terminal())
	assert.False(t, order.StatusOutForDelivery.Terminal())
}

func TestOrderStatus_Label(t *testing.T) {
	assert.Equal(t, "Pendente", order.StatusPending.Label())
	assert.Equal(t, "Saiu para Entrega", order.StatusOutForDelivery.Label())
	assert.Equal(t, "SOMETHING", order.OrderStatus("SOMETHING").Label())
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from order.OrderStatus
		to   order.OrderStatus
		want bool
	}{
		{"forward_edge", order.StatusPending, order.StatusConfirmed, true},
		{"skip_a_step", order.StatusPending, order.StatusPreparing, false},
		{"backwards", order.StatusPreparing, order.StatusConfirmed, false},
		{"cancel_pending", order.StatusPending, order.StatusCancelled, true},
		{"cancel_out_for_delivery", order.StatusOutForDelivery, order.StatusCancelled, true},
		{"cancel_delivered", order.StatusDelivered, order.StatusCancelled, false},
		{"cancel_cancelled", order.StatusCancelled, order.StatusCancelled, false},
		{"resurrect_cancelled", order.StatusCancelled, order.StatusConfirmed, false},
		{"deliver_after_delivered", order.StatusDelivered, order.StatusDelivered, false},
		{"unknown_from", order.OrderStatus("WAT"), order.StatusConfirmed, false},
		{"unknown_to", order.StatusPending, order.OrderStatus("WAT"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.CanTransition(tt.from, tt.to))
		})
	}
}
