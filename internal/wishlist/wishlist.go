package wishlist

import (
	"context"

	"github.com/Skotchmaster/stylehub/internal/models"
	"github.com/Skotchmaster/stylehub/internal/store"
)

const StorageKey = "styleHub_wishlist"

// Set holds product snapshots, at most one per product id, in insertion order.
type Set struct {
	store store.Store
	items []models.Product
}

func Load(ctx context.Context, s store.Store) (*Set, error) {
	var items []models.Product
	if err := store.LoadJSON(ctx, s, StorageKey, &items); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(items))
	uniq := make([]models.Product, 0, len(items))
	for _, p := range items {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		uniq = append(uniq, p)
	}
	return &Set{store: s, items: uniq}, nil
}

// Add is a no-op when the product is already present.
func (w *Set) Add(ctx context.Context, p models.Product) error {
	if w.index(p.ID) >= 0 {
		return nil
	}
	w.items = append(w.items, p)
	return w.persist(ctx)
}

func (w *Set) Remove(ctx context.Context, productID int) error {
	i := w.index(productID)
	if i < 0 {
		return nil
	}
	w.items = append(w.items[:i], w.items[i+1:]...)
	return w.persist(ctx)
}

// Toggle removes the product if present, otherwise adds it, and reports
// whether the product is in the wishlist afterwards.
func (w *Set) Toggle(ctx context.Context, p models.Product) (bool, error) {
	if i := w.index(p.ID); i >= 0 {
		w.items = append(w.items[:i], w.items[i+1:]...)
		return false, w.persist(ctx)
	}
	w.items = append(w.items, p)
	return true, w.persist(ctx)
}

func (w *Set) Contains(productID int) bool {
	return w.index(productID) >= 0
}

func (w *Set) Count() int {
	return len(w.items)
}

func (w *Set) Items() []models.Product {
	out := make([]models.Product, len(w.items))
	copy(out, w.items)
	return out
}

func (w *Set) index(productID int) int {
	for i, p := range w.items {
		if p.ID == productID {
			return i
		}
	}
	return -1
}

func (w *Set) persist(ctx context.Context) error {
	items := w.items
	if items == nil {
		items = []models.Product{}
	}
	return store.SaveJSON(ctx, w.store, StorageKey, items)
}
