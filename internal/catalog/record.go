package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/stylehub/internal/models"
)

// MockRecord is the shape of the bundled JSON catalog.
type MockRecord struct {
	ID            int        `json:"Id"`
	Name          string     `json:"name"`
	Brand         string     `json:"brand"`
	Price         float64    `json:"price"`
	DiscountPrice *float64   `json:"discountPrice"`
	SaleEndTime   *time.Time `json:"saleEndTime"`
	Images        []string   `json:"images"`
	Sizes         []string   `json:"sizes"`
	Colors        []string   `json:"colors"`
	Category      string     `json:"category"`
	Subcategory   string     `json:"subcategory"`
	InStock       bool       `json:"inStock"`
}

// BackendRecord is the shape returned by the hosted records API. List
// fields arrive either as JSON arrays or as comma separated strings.
type BackendRecord struct {
	ID            int        `json:"Id"`
	Name          string     `json:"Name"`
	Tags          string     `json:"Tags"`
	Brand         string     `json:"brand"`
	Price         float64    `json:"price"`
	DiscountPrice *float64   `json:"discount_price"`
	SaleEndTime   *time.Time `json:"sale_end_time"`
	Images        StringList `json:"images"`
	Sizes         StringList `json:"sizes"`
	Colors        StringList `json:"colors"`
	Category      string     `json:"category"`
	Subcategory   string     `json:"subcategory"`
	InStock       bool       `json:"in_stock"`
}

type MockCategory struct {
	ID            int      `json:"Id"`
	Name          string   `json:"name"`
	ImageURL      string   `json:"imageUrl"`
	Subcategories []string `json:"subcategories"`
}

func FromMock(r MockRecord) (models.Product, error) {
	p := models.Product{
		ID:            r.ID,
		Name:          r.Name,
		Brand:         r.Brand,
		Price:         r.Price,
		DiscountPrice: r.DiscountPrice,
		SaleEndTime:   r.SaleEndTime,
		Images:        nonNil(r.Images),
		Sizes:         nonNil(r.Sizes),
		Colors:        nonNil(r.Colors),
		Category:      r.Category,
		Subcategory:   r.Subcategory,
		InStock:       r.InStock,
	}
	return p, validate(p)
}

func FromBackend(r BackendRecord) (models.Product, error) {
	p := models.Product{
		ID:            r.ID,
		Name:          strings.TrimSpace(r.Name),
		Brand:         strings.TrimSpace(r.Brand),
		Price:         r.Price,
		DiscountPrice: r.DiscountPrice,
		SaleEndTime:   r.SaleEndTime,
		Images:        nonNil(r.Images),
		Sizes:         nonNil(r.Sizes),
		Colors:        nonNil(r.Colors),
		Category:      strings.TrimSpace(r.Category),
		Subcategory:   strings.TrimSpace(r.Subcategory),
		InStock:       r.InStock,
	}
	return p, validate(p)
}

func FromRecord(r models.ProductRecord) models.Product {
	return models.Product{
		ID:            int(r.ID),
		Name:          r.Name,
		Brand:         r.Brand,
		Price:         r.Price,
		DiscountPrice: r.DiscountPrice,
		SaleEndTime:   r.SaleEndTime,
		Images:        nonNil(r.Images),
		Sizes:         nonNil(r.Sizes),
		Colors:        nonNil(r.Colors),
		Category:      r.Category,
		Subcategory:   r.Subcategory,
		InStock:       r.InStock,
	}
}

func ToRecord(p models.Product) models.ProductRecord {
	return models.ProductRecord{
		ID:            uint(p.ID),
		Name:          p.Name,
		Brand:         p.Brand,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		SaleEndTime:   p.SaleEndTime,
		Images:        p.Images,
		Sizes:         p.Sizes,
		Colors:        p.Colors,
		Category:      p.Category,
		Subcategory:   p.Subcategory,
		InStock:       p.InStock,
	}
}

func validate(p models.Product) error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("product id must be positive: %w", ErrInvalidRecord)
	case p.Name == "":
		return fmt.Errorf("product %d has no name: %w", p.ID, ErrInvalidRecord)
	case p.Price < 0:
		return fmt.Errorf("product %d has negative price: %w", p.ID, ErrInvalidRecord)
	case p.DiscountPrice != nil && *p.DiscountPrice < 0:
		return fmt.Errorf("product %d has negative discount price: %w", p.ID, ErrInvalidRecord)
	}
	return nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
