package catalog

import "kickstore/internal/models"

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is one slice of a listing.
type Page struct {
	Products []models.Product
	Total    int
	Page     int
	Limit    int
}

// Paginate returns the 1-based page of products. Out-of-range limits use
// DefaultLimit and pages below 1 are treated as the first page.
func Paginate(products []models.Product, page, limit int) Page {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * limit
	if start > len(products) {
		start = len(products)
	}
	end := min(start+limit, len(products))

	items := make([]models.Product, end-start)
	copy(items, products[start:end])
	return Page{Products: items, Total: len(products), Page: page, Limit: limit}
}

// Clubs lists the distinct clubs in first-seen order.
func Clubs(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	clubs := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Club]; ok {
			continue
		}
		seen[p.Club] = struct{}{}
		clubs = append(clubs, p.Club)
	}
	return clubs
}

// Featured returns the products flagged as featured.
func Featured(products []models.Product) []models.Product {
	featured := make([]models.Product, 0)
	for _, p := range products {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured
}

// Related returns up to n other products of the same club.
func Related(products []models.Product, product models.Product, n int) []models.Product {
	related := make([]models.Product, 0, n)
	for _, p := range products {
		if len(related) == n {
			break
		}
		if p.ID != product.ID && p.Club == product.Club {
			related = append(related, p)
		}
	}
	return related
}
