package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/stylehub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepo serves the catalog from the products and categories tables.
type GormRepo struct {
	DB *gorm.DB
}

func NewGormRepo(db *gorm.DB) (*GormRepo, error) {
	if err := db.AutoMigrate(&models.ProductRecord{}, &models.CategoryRecord{}); err != nil {
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}
	return &GormRepo{DB: db}, nil
}

// Seed upserts the given products and categories by primary key.
func (r *GormRepo) Seed(ctx context.Context, products []models.Product, categories []models.Category) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range products {
			rec := ToRecord(p)
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
				return fmt.Errorf("seed product %d: %w", p.ID, err)
			}
		}
		for _, c := range categories {
			rec := models.CategoryRecord{
				ID:            uint(c.ID),
				Name:          c.Name,
				ImageURL:      c.ImageURL,
				Subcategories: c.Subcategories,
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
				return fmt.Errorf("seed category %d: %w", c.ID, err)
			}
		}
		return nil
	})
}

func (r *GormRepo) GetAll(ctx context.Context) ([]models.Product, error) {
	var recs []models.ProductRecord
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func (r *GormRepo) GetByID(ctx context.Context, id int) (models.Product, error) {
	var rec models.ProductRecord
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return models.Product{}, err
	}
	return FromRecord(rec), nil
}

func (r *GormRepo) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var recs []models.ProductRecord
	if err := r.DB.WithContext(ctx).
		Where("LOWER(category) = ?", strings.ToLower(category)).
		Order("id ASC").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func (r *GormRepo) Search(ctx context.Context, query string) ([]models.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.Product{}, nil
	}
	like := "%" + q + "%"

	var recs []models.ProductRecord
	if err := r.DB.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(category) LIKE ?", like, like, like).
		Order("id ASC").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func (r *GormRepo) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = FeaturedLimit
	}
	var recs []models.ProductRecord
	if err := r.DB.WithContext(ctx).Order("id ASC").Limit(limit).Find(&recs).Error; err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func (r *GormRepo) Categories(ctx context.Context) ([]models.Category, error) {
	var recs []models.CategoryRecord
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(recs))
	for _, c := range recs {
		out = append(out, categoryFromRecord(c))
	}
	return out, nil
}

func (r *GormRepo) CategoryByID(ctx context.Context, id int) (models.Category, error) {
	var rec models.CategoryRecord
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return models.Category{}, err
	}
	return categoryFromRecord(rec), nil
}

func fromRecords(recs []models.ProductRecord) []models.Product {
	out := make([]models.Product, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FromRecord(rec))
	}
	return out
}

func categoryFromRecord(c models.CategoryRecord) models.Category {
	return models.Category{
		ID:            int(c.ID),
		Name:          c.Name,
		ImageURL:      c.ImageURL,
		Subcategories: nonNil(c.Subcategories),
	}
}
