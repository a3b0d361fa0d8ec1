// Package cart holds a shopper's in-progress selection. It is the
// storefront-side component: carts live with the client and never cross the
// HTTP API; only the finished selection is submitted as an order. The store
// keeps a snapshot of each product at the time it was added, so later
// catalog edits do not silently change an open cart.
package cart

import (
	"sync"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aeropizza/backend/internal/catalog"
	"github.com/aeropizza/backend/internal/order"
)

type Item struct {
	ProductID       uuid.UUID `json:"product_id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	CategoryName    string    `json:"category_name"`
	PreparationTime int       `json:"preparation_time"`
	Quantity        int       `json:"quantity"`
	Notes           string    `json:"notes"`
}

// Persistence is the storage port for cart snapshots. Implementations are
// best-effort: a load failure resets the cart to empty instead of blocking
// the shopper.
type Persistence interface {
	Load() ([]Item, error)
	Save(items []Item) error
	Clear() error
}

type Store struct {
	mu    sync.Mutex
	items []Item
	port  Persistence
}

// NewStore creates a cart backed by the given persistence port and restores
// any previously saved snapshot. A corrupt snapshot is discarded.
func NewStore(port Persistence) *Store {
	s := &Store{port: port}

	items, err := port.Load()
	if err != nil {
		log.Warn().Err(err).Msg("cart: discarding corrupt snapshot")
		_ = port.Clear()
		items = nil
	}
	s.items = items

	return s
}

func (s *Store) persist() {
	var err error
	if len(s.items) == 0 {
		err = s.port.Clear()
	} else {
		err = s.port.Save(s.items)
	}
	if err != nil {
		log.Warn().Err(err).Msg("cart: failed to persist snapshot")
	}
}

// Add puts a product into the cart. Adding a product that is already
// present increments its quantity instead of creating a duplicate entry.
func (s *Store) Add(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == p.ID {
			s.items[i].Quantity++
			s.persist()
			return
		}
	}

	s.items = append(s.items, Item{
		ProductID:       p.ID,
		Name:            p.Name,
		Price:           p.Price,
		CategoryName:    p.CategoryName,
		PreparationTime: p.PreparationTime,
		Quantity:        1,
	})
	s.persist()
}

// ChangeQuantity adds delta to the matching item's quantity. A result of
// zero or less removes the item. Unknown product IDs are a no-op.
func (s *Store) ChangeQuantity(productID uuid.UUID, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID != productID {
			continue
		}
		newQuantity := s.items[i].Quantity + delta
		if newQuantity > 0 {
			s.items[i].Quantity = newQuantity
		} else {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
		s.persist()
		return
	}
}

// SetNotes replaces the free-text notes of the matching item only.
func (s *Store) SetNotes(productID uuid.UUID, notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Notes = notes
			s.persist()
			return
		}
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist()
}

// Items returns a copy of the current cart contents.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) pricedLocked() []order.PricedItem {
	priced := make([]order.PricedItem, 0, len(s.items))
	for _, item := range s.items {
		priced = append(priced, order.PricedItem{UnitPrice: item.Price, Quantity: item.Quantity})
	}
	return priced
}

func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return order.Quote(s.pricedLocked(), order.DeliveryTypePickup, 0).Subtotal
}

// Total returns the cart preview total, including the delivery fee when
// applicable. It goes through the same pricing function the order service
// uses, so preview and persisted totals cannot diverge.
func (s *Store) Total(deliveryType order.DeliveryType) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return order.Quote(s.pricedLocked(), deliveryType, 0).Final
}

// Count returns the sum of quantities, not the number of distinct items.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}
