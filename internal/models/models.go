package models

import (
	"time"
)

type Product struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Brand         string     `json:"brand"`
	Price         float64    `json:"price"`
	DiscountPrice *float64   `json:"discountPrice,omitempty"`
	SaleEndTime   *time.Time `json:"saleEndTime,omitempty"`
	Images        []string   `json:"images"`
	Sizes         []string   `json:"sizes"`
	Colors        []string   `json:"colors"`
	Category      string     `json:"category"`
	Subcategory   string     `json:"subcategory"`
	InStock       bool       `json:"inStock"`
}

// EffectivePrice is the discount price when one is set, otherwise the base price.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 {
		return *p.DiscountPrice
	}
	return p.Price
}

func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p Product) HasSize(size string) bool {
	return contains(p.Sizes, size)
}

func (p Product) HasColor(color string) bool {
	return contains(p.Colors, color)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

type Category struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	ImageURL      string   `json:"imageUrl"`
	Subcategories []string `json:"subcategories"`
}

// LineKey identifies a cart line: one product in one size and color.
type LineKey struct {
	ProductID int    `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type CartLineItem struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
}

func (i CartLineItem) Key() LineKey {
	return LineKey{ProductID: i.ProductID, Size: i.Size, Color: i.Color}
}

func (i CartLineItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

type RecentView struct {
	ID        int   `json:"id"`
	Timestamp int64 `json:"timestamp"`
}

type ProductRecord struct {
	ID            uint       `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name          string     `gorm:"not null"                  json:"name"`
	Brand         string     `gorm:"index;not null"            json:"brand"`
	Price         float64    `gorm:"not null"                  json:"price"`
	DiscountPrice *float64   `json:"discount_price"`
	SaleEndTime   *time.Time `json:"sale_end_time"`
	Images        []string   `gorm:"serializer:json;type:text" json:"images"`
	Sizes         []string   `gorm:"serializer:json;type:text" json:"sizes"`
	Colors        []string   `gorm:"serializer:json;type:text" json:"colors"`
	Category      string     `gorm:"index;not null"            json:"category"`
	Subcategory   string     `json:"subcategory"`
	InStock       bool       `gorm:"not null"                  json:"in_stock"`
}

func (ProductRecord) TableName() string {
	return "products"
}

type CategoryRecord struct {
	ID            uint     `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name          string   `gorm:"unique;not null"           json:"name"`
	ImageURL      string   `json:"image_url"`
	Subcategories []string `gorm:"serializer:json;type:text" json:"subcategories"`
}

func (CategoryRecord) TableName() string {
	return "categories"
}

type StorageEntry struct {
	Key       string    `gorm:"column:storage_key;primaryKey;size:255"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}
