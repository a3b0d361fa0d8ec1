package order

// DeliveryFeeAmount is the fixed surcharge applied to home deliveries.
const DeliveryFeeAmount = 8.00

// PricedItem is the minimal shape the calculator needs from a cart or
// order line item.
type PricedItem struct {
	UnitPrice float64
	Quantity  int
}

type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Discount    float64 `json:"discount"`
	Final       float64 `json:"final"`
}

// Quote computes order totals from raw line items. It is the single source
// of truth for pricing: both the cart preview and order creation go through
// it, so the two can never drift.
func Quote(items []PricedItem, deliveryType DeliveryType, discount float64) Totals {
	subtotal := 0.0
	for _, item := range items {
		subtotal += float64(item.Quantity) * item.UnitPrice
	}

	fee := 0.0
	if deliveryType == DeliveryTypeDelivery {
		fee = DeliveryFeeAmount
	}

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Discount:    discount,
		Final:       subtotal + fee - discount,
	}
}
