package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoItems                 = errors.New("order must contain at least one item")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrUnknownProduct          = errors.New("order item references an unknown or unavailable product")
)

// PriceProvider supplies current catalog prices. Unit prices submitted by
// the client are never trusted; every order is re-priced against the
// catalog before it is persisted.
type PriceProvider interface {
	GetPrices(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]float64, error)
}

type CreateOrderInput struct {
	UserID          uuid.UUID
	Items           []CreateOrderItem
	DeliveryType    DeliveryType
	PaymentMethod   PaymentMethod
	DeliveryAddress string
	CustomerPhone   string
	Notes           string
	DiscountAmount  float64
}

type CreateOrderItem struct {
	ProductID uuid.UUID
	Quantity  int
	Notes     string
}

type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus OrderStatus) (*Order, error)
}

type service struct {
	repo   Repository
	prices PriceProvider
	now    func() time.Time
}

func NewService(repo Repository, prices PriceProvider) Service {
	return &service{
		repo:   repo,
		prices: prices,
		now:    time.Now,
	}
}

// newOrderNumber builds a human-readable, time-increasing order number with
// a random suffix so that two submissions in the same millisecond cannot
// collide.
func (s *service) newOrderNumber() (string, error) {
	suffix, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("service: failed to generate order number suffix: %w", err)
	}
	return fmt.Sprintf("AERO%d%X", s.now().UnixMilli(), suffix.Bytes()[:2]), nil
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	if len(input.Items) == 0 {
		log.Warn().Stringer("user_id", input.UserID).Msg("service: attempt to create order with no items")
		return nil, ErrNoItems
	}
	if input.UserID == uuid.Nil {
		return nil, errors.New("service: user id is required")
	}
	if input.DeliveryType != DeliveryTypeDelivery && input.DeliveryType != DeliveryTypePickup {
		return nil, fmt.Errorf("service: invalid delivery type %q", input.DeliveryType)
	}
	if input.DeliveryType == DeliveryTypeDelivery && input.DeliveryAddress == "" {
		return nil, errors.New("service: delivery address is required for delivery orders")
	}

	productIDs := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return nil, errors.New("service: product id in order item cannot be nil")
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("service: order item quantity for product %s must be greater than zero", item.ProductID)
		}
		productIDs = append(productIDs, item.ProductID)
	}

	currentPrices, err := s.prices.GetPrices(ctx, productIDs)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to fetch catalog prices for order")
		return nil, fmt.Errorf("service: failed to price order: %w", err)
	}

	items := make([]OrderItem, 0, len(input.Items))
	priced := make([]PricedItem, 0, len(input.Items))
	for _, item := range input.Items {
		unitPrice, ok := currentPrices[item.ProductID]
		if !ok {
			log.Warn().Stringer("product_id", item.ProductID).Msg("service: order references unknown product")
			return nil, ErrUnknownProduct
		}
		items = append(items, OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: float64(item.Quantity) * unitPrice,
			Notes:      item.Notes,
		})
		priced = append(priced, PricedItem{UnitPrice: unitPrice, Quantity: item.Quantity})
	}

	totals := Quote(priced, input.DeliveryType, input.DiscountAmount)

	orderNumber, err := s.newOrderNumber()
	if err != nil {
		return nil, err
	}

	o := &Order{
		OrderNumber:     orderNumber,
		UserID:          input.UserID,
		Status:          StatusPending,
		PaymentStatus:   "PENDING",
		PaymentMethod:   input.PaymentMethod,
		DeliveryType:    input.DeliveryType,
		TotalAmount:     totals.Subtotal,
		DeliveryFee:     totals.DeliveryFee,
		DiscountAmount:  totals.Discount,
		FinalAmount:     totals.Final,
		DeliveryAddress: input.DeliveryAddress,
		CustomerPhone:   input.CustomerPhone,
		Notes:           input.Notes,
		Items:           items,
	}

	if _, err := s.repo.CreateOrder(ctx, o); err != nil {
		log.Error().Err(err).Msg("service: failed to create order in repository")
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().
		Stringer("order_id", o.ID).
		Str("order_number", o.OrderNumber).
		Stringer("user_id", o.UserID).
		Float64("final_amount", o.FinalAmount).
		Msg("service: order created")

	return o, nil
}

func (s *service) GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		log.Error().Err(err).Stringer("order_id", id).Msg("service: failed to fetch order by id")
		return nil, fmt.Errorf("service: failed to fetch order by id: %w", err)
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context) ([]Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list orders")
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *service) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	orders, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("service: failed to list user orders")
		return nil, fmt.Errorf("service: failed to list user orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus advances an order through the lifecycle. Only the registry's
// forward edge or cancellation of a non-terminal order is accepted.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus OrderStatus) (*Order, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatusTransition, newStatus)
	}

	current, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			log.Warn().Stringer("order_id", orderID).Stringer("new_status", newStatus).Msg("service: order not found, cannot update status")
			return nil, ErrOrderNotFound
		}
		log.Error().Err(err).Stringer("order_id", orderID).Msg("service: failed to get order for status update")
		return nil, fmt.Errorf("service: failed to get order for status update: %w", err)
	}

	if current.Status == newStatus {
		log.Info().Stringer("order_id", orderID).Stringer("status", newStatus).Msg("service: order status unchanged, no update needed")
		return current, nil
	}

	if !CanTransition(current.Status, newStatus) {
		log.Warn().
			Stringer("order_id", orderID).
			Stringer("current_status", current.Status).
			Stringer("new_status", newStatus).
			Msg("service: invalid status transition attempt")
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, newStatus)
	}

	note := fmt.Sprintf("Status atualizado para %s", newStatus.Label())
	if err := s.repo.UpdateOrderStatus(ctx, orderID, newStatus, note); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		log.Error().Err(err).Stringer("order_id", orderID).Stringer("new_status", newStatus).Msg("service: failed to update order status")
		return nil, fmt.Errorf("service: failed to update order status: %w", err)
	}

	log.Info().
		Stringer("order_id", orderID).
		Stringer("old_status", current.Status).
		Stringer("new_status", newStatus).
		Msg("service: order status updated")

	current.Status = newStatus
	return current, nil
}
