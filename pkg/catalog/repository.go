// Package catalog serves product and category reads. The repository
// interface is backed by a static in-memory seed (development, mirrors the
// mock API the storefront launched with), a MySQL store, and a Redis
// cache-aside decorator for the hot single-product lookups.
package catalog

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jaan-distributors/storefront/pkg/model"
)

// ErrNotFound is returned when a product or category does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Sort orders accepted by ListProducts.
const (
	SortName      = "name"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
)

// Filters narrows and pages a product listing. Zero values mean "no
// constraint".
type Filters struct {
	CategoryID  int64
	Search      string
	MinPrice    float64
	MaxPrice    float64
	InStockOnly bool
	SortBy      string
	Page        int
	PerPage     int
}

func (f Filters) page() int {
	if f.Page < 1 {
		return 1
	}
	return f.Page
}

func (f Filters) perPage() int {
	if f.PerPage < 1 {
		return 12
	}
	return f.PerPage
}

type ProductRepository interface {
	ListProducts(ctx context.Context, f Filters) (model.PaginatedResponse[model.Product], error)
	GetProductByID(ctx context.Context, id int64) (model.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (model.Product, error)
	FeaturedProducts(ctx context.Context) ([]model.Product, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (model.Category, error)
}
