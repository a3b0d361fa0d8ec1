package order

import (
	"time"

	"github.com/gofrs/uuid"
)

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "DELIVERY"
	DeliveryTypePickup   DeliveryType = "PICKUP"
)

func (d DeliveryType) String() string {
	return string(d)
}

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "CASH"
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentPix        PaymentMethod = "PIX"
)

func (p PaymentMethod) String() string {
	return string(p)
}

// Label returns the customer-facing name of the payment method.
func (p PaymentMethod) Label() string {
	switch p {
	case PaymentCash:
		return "Dinheiro"
	case PaymentCreditCard:
		return "Cartão de Crédito"
	case PaymentDebitCard:
		return "Cartão de Débito"
	case PaymentPix:
		return "Pix"
	default:
		return string(p)
	}
}

type OrderItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OrderID     uuid.UUID `json:"order_id" db:"order_id"`
	ProductID   uuid.UUID `json:"product_id" db:"product_id"`
	ProductName string    `json:"product_name" db:"-"` // joined from products
	Quantity    int       `json:"quantity" db:"quantity"`
	UnitPrice   float64   `json:"unit_price" db:"unit_price"`
	TotalPrice  float64   `json:"total_price" db:"total_price"`
	Notes       string    `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// StatusHistoryEntry is an append-only audit record. Entries are never
// mutated or deleted once written.
type StatusHistoryEntry struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	OrderID   uuid.UUID   `json:"order_id" db:"order_id"`
	Status    OrderStatus `json:"status" db:"status"`
	Notes     string      `json:"notes" db:"notes"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

type Order struct {
	ID              uuid.UUID            `json:"id" db:"id"`
	OrderNumber     string               `json:"order_number" db:"order_number"`
	UserID          uuid.UUID            `json:"user_id" db:"user_id"`
	Status          OrderStatus          `json:"status" db:"status"`
	PaymentStatus   string               `json:"payment_status" db:"payment_status"`
	PaymentMethod   PaymentMethod        `json:"payment_method" db:"payment_method"`
	DeliveryType    DeliveryType         `json:"delivery_type" db:"delivery_type"`
	TotalAmount     float64              `json:"total_amount" db:"total_amount"`
	DeliveryFee     float64              `json:"delivery_fee" db:"delivery_fee"`
	DiscountAmount  float64              `json:"discount_amount" db:"discount_amount"`
	FinalAmount     float64              `json:"final_amount" db:"final_amount"`
	DeliveryAddress string               `json:"delivery_address,omitempty" db:"delivery_address"`
	CustomerPhone   string               `json:"customer_phone" db:"customer_phone"`
	Notes           string               `json:"notes,omitempty" db:"notes"`
	Items           []OrderItem          `json:"items" db:"-"`
	StatusHistory   []StatusHistoryEntry `json:"status_history,omitempty" db:"-"`
	CreatedAt       time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at" db:"updated_at"`
}
