package catalog

import (
	"context"
	"errors"

	"github.com/Skotchmaster/stylehub/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidRecord = errors.New("invalid record")
)

const FeaturedLimit = 8

// Provider is the read side of a product catalog.
type Provider interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	GetByCategory(ctx context.Context, category string) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	Featured(ctx context.Context, limit int) ([]models.Product, error)
}

type CategoryStore interface {
	Categories(ctx context.Context) ([]models.Category, error)
	CategoryByID(ctx context.Context, id int) (models.Category, error)
}

// Searcher replaces a provider's own search, e.g. with a full-text index.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.Product, error)
}

type searchOverride struct {
	Provider
	searcher Searcher
}

// WithSearcher routes Search to s and everything else to p.
func WithSearcher(p Provider, s Searcher) Provider {
	if s == nil {
		return p
	}
	return &searchOverride{Provider: p, searcher: s}
}

func (o *searchOverride) Search(ctx context.Context, query string) ([]models.Product, error) {
	return o.searcher.Search(ctx, query)
}
