package order

type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusReady          OrderStatus = "READY"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

func (os OrderStatus) String() string {
	return string(os)
}

type statusInfo struct {
	label string
	next  OrderStatus // empty for terminal statuses
}

var statusRegistry = map[OrderStatus]statusInfo{
	StatusPending:        {label: "Pendente", next: StatusConfirmed},
	StatusConfirmed:      {label: "Confirmado", next: StatusPreparing},
	StatusPreparing:      {label: "Preparando", next: StatusReady},
	StatusReady:          {label: "Pronto", next: StatusOutForDelivery},
	StatusOutForDelivery: {label: "Saiu para Entrega", next: StatusDelivered},
	StatusDelivered:      {label: "Entregue"},
	StatusCancelled:      {label: "Cancelado"},
}

// Valid reports whether s is a known order status.
func (os OrderStatus) Valid() bool {
	_, ok := statusRegistry[os]
	return ok
}

// Label returns the customer-facing name of the status, or the raw value
// when the status is unknown.
func (os OrderStatus) Label() string {
	if info, ok := statusRegistry[os]; ok {
		return info.label
	}
	return string(os)
}

// Next returns the single advisory successor of s, or empty when s is
// terminal or unknown.
func (os OrderStatus) Next() OrderStatus {
	return statusRegistry[os].next
}

// Terminal reports whether no forward transition exists from s.
func (os OrderStatus) Terminal() bool {
	info, ok := statusRegistry[os]
	return ok && info.next == ""
}

// CanTransition reports whether an order may move from one status to
// another. The only legal moves are the registry's forward edge and an
// administrative cancellation of a non-terminal order. Delivered and
// cancelled orders cannot be cancelled again.
func CanTransition(from, to OrderStatus) bool {
	info, ok := statusRegistry[from]
	if !ok || !to.Valid() {
		return false
	}
	if to == StatusCancelled {
		return info.next != ""
	}
	return info.next == to
}
