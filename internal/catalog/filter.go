package catalog

import (
	"net/url"
	"sort"
	"strings"

	"github.com/Skotchmaster/stylehub/internal/models"
)

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNewest    SortKey = "newest"
	SortRating    SortKey = "rating"
)

var SortKeys = []SortKey{SortFeatured, SortPriceLow, SortPriceHigh, SortNewest, SortRating}

func ParseSortKey(s string) SortKey {
	for _, k := range SortKeys {
		if string(k) == s {
			return k
		}
	}
	return SortFeatured
}

type PriceBucket string

const (
	PriceUnder500   PriceBucket = "under-500"
	Price500To1000  PriceBucket = "500-1000"
	Price1000To2000 PriceBucket = "1000-2000"
	Price2000To5000 PriceBucket = "2000-5000"
	PriceOver5000   PriceBucket = "over-5000"
)

var PriceBuckets = []PriceBucket{PriceUnder500, Price500To1000, Price1000To2000, Price2000To5000, PriceOver5000}

// Contains reports whether price falls in the bucket. Listed bounds are
// inclusive, so 1000 is in both 500-1000 and 1000-2000. Unknown buckets
// match everything.
func (b PriceBucket) Contains(price float64) bool {
	switch b {
	case PriceUnder500:
		return price < 500
	case Price500To1000:
		return price >= 500 && price <= 1000
	case Price1000To2000:
		return price >= 1000 && price <= 2000
	case Price2000To5000:
		return price >= 2000 && price <= 5000
	case PriceOver5000:
		return price > 5000
	default:
		return true
	}
}

// Filters holds the selected values per facet. An empty facet does not
// constrain. Facets combine with AND; values within a facet with OR.
type Filters struct {
	Subcategories []string      `json:"subcategories"`
	Brands        []string      `json:"brands"`
	Sizes         []string      `json:"sizes"`
	Colors        []string      `json:"colors"`
	PriceRanges   []PriceBucket `json:"price_ranges"`
}

func (f Filters) Empty() bool {
	return len(f.Subcategories) == 0 && len(f.Brands) == 0 && len(f.Sizes) == 0 &&
		len(f.Colors) == 0 && len(f.PriceRanges) == 0
}

func (f Filters) Match(p models.Product) bool {
	if len(f.Subcategories) > 0 && !containsString(f.Subcategories, p.Subcategory) {
		return false
	}
	if len(f.Brands) > 0 && !containsString(f.Brands, p.Brand) {
		return false
	}
	if len(f.Sizes) > 0 && !intersects(p.Sizes, f.Sizes) {
		return false
	}
	if len(f.Colors) > 0 && !intersects(p.Colors, f.Colors) {
		return false
	}
	if len(f.PriceRanges) > 0 {
		price := p.EffectivePrice()
		in := false
		for _, b := range f.PriceRanges {
			if b.Contains(price) {
				in = true
				break
			}
		}
		if !in {
			return false
		}
	}
	return true
}

// Apply filters and sorts products without modifying the input slice.
func Apply(products []models.Product, f Filters, key SortKey) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}

	switch key {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() < out[j].EffectivePrice()
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() > out[j].EffectivePrice()
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ID > out[j].ID
		})
	}
	return out
}

// ParseFilters reads facets from repeated or comma separated query values:
// subcategory, brand, sizes, color, price.
func ParseFilters(q url.Values) Filters {
	f := Filters{
		Subcategories: queryList(q, "subcategory"),
		Brands:        queryList(q, "brand"),
		Sizes:         queryList(q, "sizes"),
		Colors:        queryList(q, "color"),
	}
	for _, v := range queryList(q, "price") {
		f.PriceRanges = append(f.PriceRanges, PriceBucket(v))
	}
	return f
}

func queryList(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// FacetOptions are the values offered for each facet in the storefront.
type FacetOptions struct {
	Subcategories []string      `json:"subcategories"`
	Brands        []string      `json:"brands"`
	Sizes         []string      `json:"sizes"`
	Colors        []string      `json:"colors"`
	PriceRanges   []PriceBucket `json:"price_ranges"`
	SortKeys      []SortKey     `json:"sort_keys"`
}

func DefaultFacetOptions() FacetOptions {
	return FacetOptions{
		Subcategories: []string{"Topwear", "Bottomwear", "Footwear", "Accessories"},
		Brands:        []string{"Nike", "Adidas", "Zara", "H&M", "Uniqlo", "Forever 21"},
		Sizes:         []string{"XS", "S", "M", "L", "XL", "XXL"},
		Colors:        []string{"Black", "White", "Blue", "Red", "Green", "Yellow", "Pink"},
		PriceRanges:   PriceBuckets,
		SortKeys:      SortKeys,
	}
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(have, want []string) bool {
	for _, h := range have {
		if containsString(want, h) {
			return true
		}
	}
	return false
}
