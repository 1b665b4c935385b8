// Package catalog derives the product listing shown to customers: filtering,
// sorting, pagination, facets and locale projection over an in-memory
// product collection. Nothing here mutates its inputs.
package catalog

import (
	"slices"
	"strings"

	"kickstore/internal/models"
)

// SortKey selects the listing order.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	// SortPopularity keeps the input order; no popularity metric is tracked.
	SortPopularity SortKey = "popularity"
)

// ParseSort maps a query value to a SortKey. Unknown and empty values fall
// back to SortNewest, the listing default.
func ParseSort(s string) SortKey {
	switch key := SortKey(s); key {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortPopularity:
		return key
	default:
		return SortNewest
	}
}

// Filters holds the listing parameters. Zero values mean "not active".
type Filters struct {
	Search      string
	Club        string
	League      string
	Player      string
	Category    models.Category
	KitType     models.KitType
	Size        models.Size
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
	Sort        SortKey
}

// Active reports whether any predicate filter is set.
func (f Filters) Active() bool {
	return f.Search != "" || f.Club != "" || f.League != "" || f.Player != "" ||
		f.Category != "" || f.KitType != "" || f.Size != "" ||
		f.MinPrice != nil || f.MaxPrice != nil || f.InStockOnly
}

// Match reports whether p passes every active filter.
func (f Filters) Match(p models.Product) bool {
	if f.Search != "" && !matchesSearch(p, f.Search) {
		return false
	}
	if f.Club != "" && p.Club != f.Club {
		return false
	}
	if f.League != "" && p.League != f.League {
		return false
	}
	if f.Player != "" && (p.Player == nil || *p.Player != f.Player) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.KitType != "" && p.KitType != f.KitType {
		return false
	}
	if f.Size != "" && !p.HasSize(f.Size) {
		return false
	}
	if f.MinPrice != nil && p.BasePrice < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.BasePrice > *f.MaxPrice {
		return false
	}
	if f.InStockOnly && !p.InStock() {
		return false
	}
	return true
}

// matchesSearch is a case-insensitive substring match over the names, clubs
// and players in both locales. Absent players never match.
func matchesSearch(p models.Product, query string) bool {
	q := strings.ToLower(query)
	fields := []string{p.Name, p.NameAr, p.Club, p.ClubAr}
	if p.Player != nil {
		fields = append(fields, *p.Player)
	}
	if p.PlayerAr != nil {
		fields = append(fields, *p.PlayerAr)
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Apply filters products conjunctively and then sorts the result stably.
// The returned slice is always newly allocated.
func Apply(products []models.Product, f Filters) []models.Product {
	result := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			result = append(result, p)
		}
	}
	Sort(result, f.Sort)
	return result
}

// Sort orders products in place by key. Equal keys keep their relative order.
func Sort(products []models.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return compareFloat(a.BasePrice, b.BasePrice)
		})
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return compareFloat(b.BasePrice, a.BasePrice)
		})
	case SortNewest:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
