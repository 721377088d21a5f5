package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaan-distributors/storefront/pkg/model"
)

func TestListProductsDefaults(t *testing.T) {
	repo := NewStaticRepo()

	page, err := repo.ListProducts(context.Background(), Filters{})
	require.NoError(t, err)

	assert.Equal(t, len(seedProducts), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 12, page.PerPage)
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Data, len(seedProducts))
}

func TestListProductsByCategory(t *testing.T) {
	repo := NewStaticRepo()

	page, err := repo.ListProducts(context.Background(), Filters{CategoryID: 1})
	require.NoError(t, err)

	require.Len(t, page.Data, 2)
	for _, p := range page.Data {
		assert.Equal(t, int64(1), p.CategoryID)
	}
}

func TestListProductsSearchMatchesNameAndDescription(t *testing.T) {
	repo := NewStaticRepo()

	byName, err := repo.ListProducts(context.Background(), Filters{Search: "banana"})
	require.NoError(t, err)
	require.Len(t, byName.Data, 1)
	assert.Equal(t, "Organic Bananas", byName.Data[0].Name)

	byDesc, err := repo.ListProducts(context.Background(), Filters{Search: "omega-3"})
	require.NoError(t, err)
	require.Len(t, byDesc.Data, 1)
	assert.Equal(t, "Atlantic Salmon Fillet", byDesc.Data[0].Name)
}

func TestListProductsInStockOnly(t *testing.T) {
	repo := NewStaticRepo()

	page, err := repo.ListProducts(context.Background(), Filters{InStockOnly: true})
	require.NoError(t, err)

	assert.Equal(t, len(seedProducts)-1, page.Total, "only the out-of-stock product is excluded")
	for _, p := range page.Data {
		assert.NotEqual(t, model.StockOut, p.StockStatus)
	}
}

func TestListProductsPriceRange(t *testing.T) {
	repo := NewStaticRepo()

	page, err := repo.ListProducts(context.Background(), Filters{MinPrice: 5, MaxPrice: 7})
	require.NoError(t, err)

	for _, p := range page.Data {
		assert.GreaterOrEqual(t, p.Price, 5.0)
		assert.LessOrEqual(t, p.Price, 7.0)
	}
	assert.Equal(t, 3, page.Total)
}

func TestListProductsSorting(t *testing.T) {
	repo := NewStaticRepo()

	asc, err := repo.ListProducts(context.Background(), Filters{SortBy: SortPriceAsc})
	require.NoError(t, err)
	for i := 1; i < len(asc.Data); i++ {
		assert.LessOrEqual(t, asc.Data[i-1].Price, asc.Data[i].Price)
	}

	desc, err := repo.ListProducts(context.Background(), Filters{SortBy: SortPriceDesc})
	require.NoError(t, err)
	for i := 1; i < len(desc.Data); i++ {
		assert.GreaterOrEqual(t, desc.Data[i-1].Price, desc.Data[i].Price)
	}

	newest, err := repo.ListProducts(context.Background(), Filters{SortBy: SortNewest})
	require.NoError(t, err)
	assert.Equal(t, "Artisan Sourdough Bread", newest.Data[0].Name)

	byName, err := repo.ListProducts(context.Background(), Filters{SortBy: SortName})
	require.NoError(t, err)
	assert.Equal(t, "Artisan Sourdough Bread", byName.Data[0].Name)
}

func TestListProductsPagination(t *testing.T) {
	repo := NewStaticRepo()

	first, err := repo.ListProducts(context.Background(), Filters{PerPage: 3, SortBy: SortName})
	require.NoError(t, err)
	assert.Len(t, first.Data, 3)
	assert.Equal(t, len(seedProducts), first.Total)
	assert.Equal(t, 3, first.TotalPages)

	last, err := repo.ListProducts(context.Background(), Filters{Page: 3, PerPage: 3, SortBy: SortName})
	require.NoError(t, err)
	assert.Len(t, last.Data, 2)

	beyond, err := repo.ListProducts(context.Background(), Filters{Page: 9, PerPage: 3})
	require.NoError(t, err)
	assert.Empty(t, beyond.Data)
	assert.Equal(t, len(seedProducts), beyond.Total)
}

func TestGetProductByID(t *testing.T) {
	repo := NewStaticRepo()

	p, err := repo.GetProductByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Organic Bananas", p.Name)
	assert.Equal(t, 2.99, p.Price)

	_, err = repo.GetProductByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProductBySlug(t *testing.T) {
	repo := NewStaticRepo()

	p, err := repo.GetProductBySlug(context.Background(), "greek-yogurt")
	require.NoError(t, err)
	assert.Equal(t, model.StockOut, p.StockStatus)

	_, err = repo.GetProductBySlug(context.Background(), "no-such-product")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFeaturedProducts(t *testing.T) {
	repo := NewStaticRepo()

	featured, err := repo.FeaturedProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 4)
	for _, p := range featured {
		assert.True(t, p.IsFeatured)
	}
}

func TestCategories(t *testing.T) {
	repo := NewStaticRepo()

	cats, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 8)

	c, err := repo.GetCategoryBySlug(context.Background(), "dairy-eggs")
	require.NoError(t, err)
	assert.Equal(t, "Dairy & Eggs", c.Name)

	_, err = repo.GetCategoryBySlug(context.Background(), "no-such-category")
	assert.ErrorIs(t, err, ErrNotFound)
}
