package catalog

import (
	"math"
	"strconv"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Page converts a 1-based page number and size into an offset and limit.
// An offset past math.MaxInt saturates there.
func Page(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if page-1 > math.MaxInt/size {
		return math.MaxInt, size
	}
	return (page - 1) * size, size
}

// Paginate returns the slice of products for the page along with the total.
func Paginate[T any](items []T, page, size int) ([]T, int) {
	from, limit := Page(page, size)
	total := len(items)
	if from >= total {
		return []T{}, total
	}
	end := from + limit
	if end > total {
		end = total
	}
	return items[from:end], total
}

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
