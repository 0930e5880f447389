package recent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Skotchmaster/stylehub/internal/models"
	"github.com/Skotchmaster/stylehub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCatalog struct {
	products []models.Product
	err      error
}

func (c staticCatalog) GetAll(context.Context) ([]models.Product, error) {
	return c.products, c.err
}

func newList(t *testing.T) (*List, store.Store) {
	t.Helper()
	s := store.NewMemoryStore()
	l, err := Load(context.Background(), s)
	require.NoError(t, err)
	return l, s
}

func TestAdd_PromotesExistingID(t *testing.T) {
	ctx := context.Background()
	l, _ := newList(t)

	require.NoError(t, l.Add(ctx, 5))
	require.NoError(t, l.Add(ctx, 7))
	require.NoError(t, l.Add(ctx, 5))

	assert.Equal(t, []int{5, 7}, l.IDs())
}

func TestAdd_CapsAtMaxItems(t *testing.T) {
	ctx := context.Background()
	l, s := newList(t)

	for id := 1; id <= 15; id++ {
		require.NoError(t, l.Add(ctx, id))
	}
	assert.Equal(t, []int{15, 14, 13, 12, 11, 10, 9, 8, 7, 6}, l.IDs())

	reloaded, err := Load(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, l.IDs(), reloaded.IDs())
}

func TestAdd_RecordsTimestamp(t *testing.T) {
	ctx := context.Background()
	l, s := newList(t)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l.WithClock(func() time.Time { return at })

	require.NoError(t, l.Add(ctx, 3))

	raw, err := s.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":3,"timestamp":1740830400000}]`, string(raw))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	l, s := newList(t)
	require.NoError(t, l.Add(ctx, 1))

	require.NoError(t, l.Clear(ctx))
	assert.Empty(t, l.IDs())
	_, err := s.Get(ctx, StorageKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestProducts_ResolvesInHistoryOrder(t *testing.T) {
	ctx := context.Background()
	l, _ := newList(t)
	for _, id := range []int{1, 2, 3} {
		require.NoError(t, l.Add(ctx, id))
	}

	c := staticCatalog{products: []models.Product{{ID: 1, Name: "a"}, {ID: 3, Name: "c"}}}
	got, err := l.Products(ctx, c)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].ID)
	assert.Equal(t, 1, got[1].ID)
}

func TestProducts_EmptyHistorySkipsCatalog(t *testing.T) {
	l, _ := newList(t)
	got, err := l.Products(context.Background(), staticCatalog{err: errors.New("unreachable")})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_DropsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Set(ctx, StorageKey, []byte(`[{"id":5,"timestamp":3},{"id":7,"timestamp":2},{"id":5,"timestamp":1}]`)))

	l, err := Load(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 7}, l.IDs())
	assert.Equal(t, int64(3), l.Views()[0].Timestamp)
}

func TestLoad_CorruptIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Set(ctx, StorageKey, []byte(`[{"id":`)))

	l, err := Load(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, l.IDs())
}
