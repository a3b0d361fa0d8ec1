package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Namespace is the fixed key under which the cart snapshot is stored,
// matching the storefront's storage key.
const Namespace = "aeropizza_cart"

// FileStore persists the cart snapshot as a JSON file in a directory. An
// absent file means an empty cart; malformed content surfaces as an error
// so the store can reset.
type FileStore struct {
	path string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, Namespace+".json")}
}

func (f *FileStore) Load() ([]Item, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("cart: failed to read snapshot: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("cart: malformed snapshot: %w", err)
	}
	return items, nil
}

func (f *FileStore) Save(items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cart: failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("cart: failed to write snapshot: %w", err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cart: failed to remove snapshot: %w", err)
	}
	return nil
}

// MemoryStore is an in-process persistence port, used in tests and for
// session-scoped carts that do not need to survive a restart.
type MemoryStore struct {
	items []Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() ([]Item, error) {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MemoryStore) Save(items []Item) error {
	m.items = make([]Item, len(items))
	copy(m.items, items)
	return nil
}

func (m *MemoryStore) Clear() error {
	m.items = nil
	return nil
}
