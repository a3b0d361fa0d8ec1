package cart_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeropizza/backend/internal/cart"
	"github.com/aeropizza/backend/internal/catalog"
	"github.com/aeropizza/backend/internal/order"
)

func newProduct(name string, price float64) catalog.Product {
	return catalog.Product{
		ID:              uuid.Must(uuid.NewV4()),
		Name:            name,
		Price:           price,
		CategoryName:    "Pizzas Tradicionais",
		PreparationTime: 25,
	}
}

func TestStore_Add_MergesByProduct(t *testing.T) {
	store := cart.NewStore(cart.NewMemoryStore())
	margherita := newProduct("Margherita", 30.00)

	store.Add(margherita)
	store.Add(margherita)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, store.Count())
}

func TestStore_Add_SnapshotsProduct(t *testing.T) {
	store := cart.NewStore(cart.NewMemoryStore())
	p := newProduct("Calabresa", 35.00)

	store.Add(p)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Calabresa", items[0].Name)
	assert.InDelta(t, 35.00, items[0].Price, 1e-9)
	assert.Equal(t, "Pizzas Tradicionais", items[0].CategoryName)
	assert.Equal(t, 25, items[0].PreparationTime)
	assert.Empty(t, items[0].Notes)
}

func TestStore_ChangeQuantity(t *testing.T) {
	store := cart.NewStore(cart.NewMemoryStore())
	p := newProduct("Margherita", 30.00)
	store.Add(p)
	store.Add(p)

	t.Run("increments", func(t *testing.T) {
		store.ChangeQuantity(p.ID, 1)
		assert.Equal(t, 3, store.Count())
	})

	t.Run("decrement_to_zero_removes", func(t *testing.T) {
		store.ChangeQuantity(p.ID, -3)
		assert.Empty(t, store.Items())
		assert.Equal(t, 0, store.Count())
	})

	t.Run("unknown_product_is_noop", func(t *testing.T) {
		store.Add(p)
		before := store.Count()
		store.ChangeQuantity(uuid.Must(uuid.NewV4()), -1)
		assert.Equal(t, before, store.Count())
	})
}

func TestStore_ChangeQuantity_DecrementFromOneRemovesItem(t *testing.T) {
	store := cart.NewStore(cart.NewMemoryStore())
	p := newProduct("Margherita", 30.00)
	q := newProduct("Quatro Queijos", 42.00)
	store.Add(p)
	store.Add(q)

	before := store.Count()
	store.ChangeQuantity(p.ID, -1)

	assert.Equal(t, before-1, store.Count())
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, q.ID, items[0].ProductID)
}

func TestStore_SetNotes(t *testing.T) {
	store := cart.NewStore(cart.NewMemoryStore())
	p := newProduct("Margherita", 30.00)
	q := newProduct("Calabresa", 35.00)
	store.Add(p)
	store.Add(q)

	store.SetNotes(p.ID, "sem cebola")

	items := store.Items()
	for _, item := range items {
		if item.ProductID == p.ID {
			assert.Equal(t, "sem cebola", item.Notes)
		} else {
			assert.Empty(t, item.Notes)
		}
	}
}

func TestStore_Totals(t *testing.T) {
	store := cart.NewStore(cart.NewMemoryStore())
	pizza := newProduct("Margherita", 30.00)
	soda := newProduct("Guaraná", 15.50)

	store.Add(pizza)
	store.Add(pizza)
	store.Add(soda)

	assert.InDelta(t, 75.50, store.Subtotal(), 1e-9)
	assert.InDelta(t, 83.50, store.Total(order.DeliveryTypeDelivery), 1e-9)
	assert.InDelta(t, 75.50, store.Total(order.DeliveryTypePickup), 1e-9)
}

func TestStore_Clear_IsIdempotent(t *testing.T) {
	store := cart.NewStore(cart.NewMemoryStore())
	store.Add(newProduct("Margherita", 30.00))

	store.Clear()
	assert.Empty(t, store.Items())

	store.Clear()
	assert.Empty(t, store.Items())
	assert.Equal(t, 0, store.Count())
}

func TestStore_FilePersistence_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	p := newProduct("Margherita", 30.00)

	store := cart.NewStore(cart.NewFileStore(dir))
	store.Add(p)
	store.Add(p)
	store.SetNotes(p.ID, "borda recheada")

	reopened := cart.NewStore(cart.NewFileStore(dir))
	items := reopened.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "borda recheada", items[0].Notes)
}

func TestStore_FilePersistence_CorruptSnapshotResetsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, cart.Namespace+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := cart.NewStore(cart.NewFileStore(dir))

	assert.Empty(t, store.Items())

	// the corrupt file is gone, so a further restart is clean too
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStore_ClearRemovesSnapshotFile(t *testing.T) {
	dir := t.TempDir()
	store := cart.NewStore(cart.NewFileStore(dir))
	store.Add(newProduct("Margherita", 30.00))

	path := filepath.Join(dir, cart.Namespace+".json")
	_, err := os.Stat(path)
	require.NoError(t, err)

	store.Clear()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
