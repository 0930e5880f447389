package recent

import (
	"context"
	"time"

	"github.com/Skotchmaster/stylehub/internal/models"
	"github.com/Skotchmaster/stylehub/internal/store"
)

const (
	StorageKey = "recentlyViewed"
	MaxItems   = 10
)

type Catalog interface {
	GetAll(ctx context.Context) ([]models.Product, error)
}

// List is the most-recent-first history of viewed product ids.
type List struct {
	store store.Store
	views []models.RecentView
	now   func() time.Time
}

func Load(ctx context.Context, s store.Store) (*List, error) {
	var views []models.RecentView
	if err := store.LoadJSON(ctx, s, StorageKey, &views); err != nil {
		return nil, err
	}
	// keep the most recent entry per id, then cap
	seen := make(map[int]bool, len(views))
	uniq := make([]models.RecentView, 0, len(views))
	for _, v := range views {
		if seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		uniq = append(uniq, v)
		if len(uniq) == MaxItems {
			break
		}
	}
	return &List{store: s, views: uniq, now: time.Now}, nil
}

// WithClock replaces the time source used for view timestamps.
func (l *List) WithClock(now func() time.Time) *List {
	l.now = now
	return l
}

func (l *List) Add(ctx context.Context, productID int) error {
	next := make([]models.RecentView, 0, MaxItems)
	next = append(next, models.RecentView{ID: productID, Timestamp: l.now().UnixMilli()})
	for _, v := range l.views {
		if v.ID == productID {
			continue
		}
		if len(next) == MaxItems {
			break
		}
		next = append(next, v)
	}
	l.views = next
	return store.SaveJSON(ctx, l.store, StorageKey, l.views)
}

func (l *List) Views() []models.RecentView {
	out := make([]models.RecentView, len(l.views))
	copy(out, l.views)
	return out
}

func (l *List) IDs() []int {
	ids := make([]int, len(l.views))
	for i, v := range l.views {
		ids[i] = v.ID
	}
	return ids
}

func (l *List) Clear(ctx context.Context) error {
	l.views = nil
	return l.store.Delete(ctx, StorageKey)
}

// Products resolves the history against the catalog in history order,
// skipping products that no longer exist.
func (l *List) Products(ctx context.Context, c Catalog) ([]models.Product, error) {
	if len(l.views) == 0 {
		return []models.Product{}, nil
	}

	all, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]models.Product, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}

	out := make([]models.Product, 0, len(l.views))
	for _, v := range l.views {
		if p, ok := byID[v.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
