package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/jaan-distributors/storefront/pkg/model"
)

// staticRepo serves the seed catalog from memory. It exists so the
// storefront runs without a database, and so tests have deterministic data.
// The seed mirrors the wholesale grocery catalog the storefront launched
// with; swap CATALOG_DSN in to serve from MySQL instead.
type staticRepo struct {
	products   []model.Product
	categories []model.Category
}

var _ ProductRepository = (*staticRepo)(nil)

func NewStaticRepo() ProductRepository {
	return &staticRepo{products: seedProducts, categories: seedCategories}
}

func (r *staticRepo) ListProducts(ctx context.Context, f Filters) (model.PaginatedResponse[model.Product], error) {
	filtered := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		if f.CategoryID != 0 && p.CategoryID != f.CategoryID {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Name), q) &&
				!strings.Contains(strings.ToLower(p.Description), q) {
				continue
			}
		}
		if f.InStockOnly && p.StockStatus == model.StockOut {
			continue
		}
		if f.MinPrice > 0 && p.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && p.Price > f.MaxPrice {
			continue
		}
		filtered = append(filtered, p)
	}

	switch f.SortBy {
	case SortName:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Name < filtered[j].Name })
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	case SortNewest:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].CreatedAt > filtered[j].CreatedAt })
	}

	return paginate(filtered, f), nil
}

// paginate slices a fully filtered result set into one page and fills the
// envelope counters.
func paginate(all []model.Product, f Filters) model.PaginatedResponse[model.Product] {
	page, perPage := f.page(), f.perPage()
	start := (page - 1) * perPage
	if start > len(all) {
		start = len(all)
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	totalPages := (len(all) + perPage - 1) / perPage
	return model.PaginatedResponse[model.Product]{
		Data:       all[start:end],
		Total:      len(all),
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
}

func (r *staticRepo) GetProductByID(ctx context.Context, id int64) (model.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, ErrNotFound
}

func (r *staticRepo) GetProductBySlug(ctx context.Context, slug string) (model.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return model.Product{}, ErrNotFound
}

func (r *staticRepo) FeaturedProducts(ctx context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *staticRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	out := make([]model.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *staticRepo) GetCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return model.Category{}, ErrNotFound
}
