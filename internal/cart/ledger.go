package cart

import (
	"context"
	"errors"

	"github.com/Skotchmaster/stylehub/internal/models"
	"github.com/Skotchmaster/stylehub/internal/store"
)

const StorageKey = "styleHub_cart"

// MaxQuantity caps the units of a single line.
const MaxQuantity = 99

var ErrLineNotFound = errors.New("cart line not found")

// Ledger is the cart of one session. Every mutation writes the full ledger
// back to the store before returning. Not safe for concurrent use.
type Ledger struct {
	store store.Store
	items []models.CartLineItem
}

// Load hydrates the ledger from the store. Corrupt data yields an empty cart.
func Load(ctx context.Context, s store.Store) (*Ledger, error) {
	var items []models.CartLineItem
	if err := store.LoadJSON(ctx, s, StorageKey, &items); err != nil {
		return nil, err
	}
	return &Ledger{store: s, items: sanitize(items)}, nil
}

// sanitize re-establishes the ledger invariants on hydrated data: quantity
// within [1, MaxQuantity] and one line per key, merging duplicates in
// first-seen order.
func sanitize(items []models.CartLineItem) []models.CartLineItem {
	out := make([]models.CartLineItem, 0, len(items))
	index := make(map[models.LineKey]int, len(items))
	for _, it := range items {
		it.Quantity = clampQuantity(it.Quantity)
		if i, ok := index[it.Key()]; ok {
			out[i].Quantity = addQuantity(out[i].Quantity, it.Quantity)
			continue
		}
		index[it.Key()] = len(out)
		out = append(out, it)
	}
	return out
}

// AddItem merges into an existing line; the merged quantity saturates at
// MaxQuantity.
func (l *Ledger) AddItem(ctx context.Context, p models.Product, size, color string, quantity int) error {
	quantity = clampQuantity(quantity)

	key := models.LineKey{ProductID: p.ID, Size: size, Color: color}
	if i := l.find(key); i >= 0 {
		l.items[i].Quantity = addQuantity(l.items[i].Quantity, quantity)
		return l.persist(ctx)
	}

	l.items = append(l.items, models.CartLineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		Price:     p.EffectivePrice(),
		Image:     p.PrimaryImage(),
		Size:      size,
		Color:     color,
		Quantity:  quantity,
	})
	return l.persist(ctx)
}

// UpdateQuantity never removes a line: quantities below 1 become 1 and
// quantities above MaxQuantity become MaxQuantity.
func (l *Ledger) UpdateQuantity(ctx context.Context, key models.LineKey, quantity int) error {
	i := l.find(key)
	if i < 0 {
		return ErrLineNotFound
	}
	l.items[i].Quantity = clampQuantity(quantity)
	return l.persist(ctx)
}

func (l *Ledger) RemoveItem(ctx context.Context, key models.LineKey) error {
	if i := l.find(key); i >= 0 {
		l.items = append(l.items[:i], l.items[i+1:]...)
	}
	return l.persist(ctx)
}

// RemoveProduct drops every variant of the product.
func (l *Ledger) RemoveProduct(ctx context.Context, productID int) error {
	kept := l.items[:0]
	for _, it := range l.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	l.items = kept
	return l.persist(ctx)
}

func (l *Ledger) Clear(ctx context.Context) error {
	l.items = nil
	return l.persist(ctx)
}

func (l *Ledger) Items() []models.CartLineItem {
	out := make([]models.CartLineItem, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Ledger) Line(key models.LineKey) (models.CartLineItem, bool) {
	i := l.find(key)
	if i < 0 {
		return models.CartLineItem{}, false
	}
	return l.items[i], true
}

func (l *Ledger) Total() float64 {
	var sum float64
	for _, it := range l.items {
		sum += it.LineTotal()
	}
	return sum
}

// Count is the number of units, not lines.
func (l *Ledger) Count() int {
	n := 0
	for _, it := range l.items {
		n += it.Quantity
	}
	return n
}

func (l *Ledger) Len() int {
	return len(l.items)
}

func (l *Ledger) find(key models.LineKey) int {
	for i, it := range l.items {
		if it.Key() == key {
			return i
		}
	}
	return -1
}

func clampQuantity(q int) int {
	switch {
	case q < 1:
		return 1
	case q > MaxQuantity:
		return MaxQuantity
	}
	return q
}

// addQuantity expects both operands already clamped, so the sum cannot overflow.
func addQuantity(a, b int) int {
	return clampQuantity(a + b)
}

func (l *Ledger) persist(ctx context.Context) error {
	items := l.items
	if items == nil {
		items = []models.CartLineItem{}
	}
	return store.SaveJSON(ctx, l.store, StorageKey, items)
}
