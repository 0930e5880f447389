package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/stylehub/internal/catalog"
	"github.com/Skotchmaster/stylehub/internal/models"
)

type CatalogService struct {
	Products   catalog.Provider
	Categories catalog.CategoryStore
}

type ListQuery struct {
	Filters catalog.Filters
	Sort    catalog.SortKey
	Page    int
	Size    int
}

type ProductPage struct {
	Items []models.Product `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
}

func (s *CatalogService) ListProducts(ctx context.Context, q ListQuery) (ProductPage, error) {
	all, err := s.Products.GetAll(ctx)
	if err != nil {
		return ProductPage{}, fmt.Errorf("load products: %w", err)
	}
	return page(catalog.Apply(all, q.Filters, q.Sort), q), nil
}

func (s *CatalogService) Featured(ctx context.Context) ([]models.Product, error) {
	return s.Products.Featured(ctx, catalog.FeaturedLimit)
}

func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query must not be empty: %w", ErrValidation)
	}
	return s.Products.Search(ctx, query)
}

func (s *CatalogService) Product(ctx context.Context, id int) (models.Product, error) {
	if id <= 0 {
		return models.Product{}, fmt.Errorf("product id must be positive: %w", ErrValidation)
	}
	p, err := s.Products.GetByID(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return models.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, err
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Categories.Categories(ctx)
}

func (s *CatalogService) Category(ctx context.Context, id int) (models.Category, error) {
	c, err := s.Categories.CategoryByID(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return models.Category{}, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return c, err
}

// CategoryProducts lists the category's products through the same filter
// and sort pipeline as ListProducts. Categories match by name, ignoring case.
func (s *CatalogService) CategoryProducts(ctx context.Context, id int, q ListQuery) (models.Category, ProductPage, error) {
	c, err := s.Category(ctx, id)
	if err != nil {
		return models.Category{}, ProductPage{}, err
	}
	products, err := s.Products.GetByCategory(ctx, c.Name)
	if err != nil {
		return models.Category{}, ProductPage{}, fmt.Errorf("load category products: %w", err)
	}
	return c, page(catalog.Apply(products, q.Filters, q.Sort), q), nil
}

func (s *CatalogService) FacetOptions() catalog.FacetOptions {
	return catalog.DefaultFacetOptions()
}

func page(products []models.Product, q ListQuery) ProductPage {
	items, total := catalog.Paginate(products, q.Page, q.Size)
	_, size := catalog.Page(q.Page, q.Size)
	p := q.Page
	if p < 1 {
		p = 1
	}
	return ProductPage{Items: items, Total: total, Page: p, Size: size}
}
