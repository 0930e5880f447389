package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Skotchmaster/stylehub/internal/logging"
	"github.com/Skotchmaster/stylehub/internal/models"
)

//go:embed mockdata/*.json
var mockFS embed.FS

// MockProvider serves the bundled JSON catalog from memory.
type MockProvider struct {
	products   []models.Product
	categories []models.Category
}

func NewMockProvider(ctx context.Context) (*MockProvider, error) {
	products, err := mockFS.ReadFile("mockdata/products.json")
	if err != nil {
		return nil, err
	}
	categories, err := mockFS.ReadFile("mockdata/categories.json")
	if err != nil {
		return nil, err
	}
	return NewMockProviderFrom(ctx, products, categories)
}

func NewMockProviderFrom(ctx context.Context, productsJSON, categoriesJSON []byte) (*MockProvider, error) {
	l := logging.FromContext(ctx).With("provider", "mock")

	var records []MockRecord
	if err := json.Unmarshal(productsJSON, &records); err != nil {
		return nil, fmt.Errorf("decode mock products: %w", err)
	}
	products := make([]models.Product, 0, len(records))
	for _, r := range records {
		p, err := FromMock(r)
		if err != nil {
			l.Warn("mock_product_skipped", "id", r.ID, "error", err)
			continue
		}
		products = append(products, p)
	}

	var cats []MockCategory
	if len(categoriesJSON) > 0 {
		if err := json.Unmarshal(categoriesJSON, &cats); err != nil {
			return nil, fmt.Errorf("decode mock categories: %w", err)
		}
	}
	categories := make([]models.Category, 0, len(cats))
	for _, c := range cats {
		categories = append(categories, models.Category{
			ID:            c.ID,
			Name:          c.Name,
			ImageURL:      c.ImageURL,
			Subcategories: nonNil(c.Subcategories),
		})
	}

	return &MockProvider{products: products, categories: categories}, nil
}

func (m *MockProvider) GetAll(_ context.Context) ([]models.Product, error) {
	return clone(m.products), nil
}

func (m *MockProvider) GetByID(_ context.Context, id int) (models.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
}

func (m *MockProvider) GetByCategory(_ context.Context, category string) ([]models.Product, error) {
	out := make([]models.Product, 0)
	for _, p := range m.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockProvider) Search(_ context.Context, query string) ([]models.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Product, 0)
	if q == "" {
		return out, nil
	}
	for _, p := range m.products {
		if matchesQuery(p, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockProvider) Featured(_ context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 || limit > len(m.products) {
		limit = len(m.products)
	}
	return clone(m.products[:limit]), nil
}

func (m *MockProvider) Categories(_ context.Context) ([]models.Category, error) {
	out := make([]models.Category, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

func (m *MockProvider) CategoryByID(_ context.Context, id int) (models.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, fmt.Errorf("category %d: %w", id, ErrNotFound)
}

// matchesQuery expects q already lower-cased.
func matchesQuery(p models.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

func clone(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}
