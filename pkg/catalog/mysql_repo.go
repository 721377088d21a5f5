package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/jaan-distributors/storefront/pkg/model"
)

// productRow is the gorm mapping of the products table. Kept separate from
// model.Product because the wire type carries a string image list and string
// dates that don't map onto columns one to one.
type productRow struct {
	ID               int64 `gorm:"primaryKey"`
	Name             string
	Slug             string `gorm:"uniqueIndex;type:varchar(128)"`
	Description      string
	ShortDescription string
	Price            float64
	ComparePrice     float64
	SKU              string `gorm:"column:sku;type:varchar(32)"`
	CategoryID       int64  `gorm:"index"`
	CategoryName     string
	Image            string
	StockQuantity    int
	StockStatus      string `gorm:"type:varchar(16)"`
	Unit             string
	Weight           float64
	IsFeatured       bool
	IsNew            bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (productRow) TableName() string { return "products" }

type categoryRow struct {
	ID           int64 `gorm:"primaryKey"`
	Name         string
	Slug         string `gorm:"uniqueIndex;type:varchar(128)"`
	Description  string
	Image        string
	ParentID     int64
	ProductCount int
}

func (categoryRow) TableName() string { return "categories" }

const dateLayout = "2006-01-02"

func (r productRow) toModel() model.Product {
	return model.Product{
		ID:               r.ID,
		Name:             r.Name,
		Slug:             r.Slug,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Price:            r.Price,
		ComparePrice:     r.ComparePrice,
		SKU:              r.SKU,
		CategoryID:       r.CategoryID,
		CategoryName:     r.CategoryName,
		Images:           []string{r.Image},
		StockQuantity:    r.StockQuantity,
		StockStatus:      model.StockStatus(r.StockStatus),
		Unit:             r.Unit,
		Weight:           r.Weight,
		IsFeatured:       r.IsFeatured,
		IsNew:            r.IsNew,
		CreatedAt:        r.CreatedAt.Format(dateLayout),
		UpdatedAt:        r.UpdatedAt.Format(dateLayout),
	}
}

func (r categoryRow) toModel() model.Category {
	return model.Category{
		ID:           r.ID,
		Name:         r.Name,
		Slug:         r.Slug,
		Description:  r.Description,
		Image:        r.Image,
		ParentID:     r.ParentID,
		ProductCount: r.ProductCount,
	}
}

type mysqlRepo struct {
	db *gorm.DB
}

var _ ProductRepository = (*mysqlRepo)(nil)

func NewMysqlRepo(db *gorm.DB) ProductRepository {
	return &mysqlRepo{db: db}
}

func (r *mysqlRepo) ListProducts(ctx context.Context, f Filters) (model.PaginatedResponse[model.Product], error) {
	var resp model.PaginatedResponse[model.Product]

	q := r.db.WithContext(ctx).Model(&productRow{})
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Search != "" {
		like := fmt.Sprintf("%%%s%%", f.Search)
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if f.InStockOnly {
		q = q.Where("stock_status <> ?", string(model.StockOut))
	}
	if f.MinPrice > 0 {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return resp, errors.Wrap(err, "failed to count products")
	}

	switch f.SortBy {
	case SortName:
		q = q.Order("name ASC")
	case SortPriceAsc:
		q = q.Order("price ASC")
	case SortPriceDesc:
		q = q.Order("price DESC")
	case SortNewest:
		q = q.Order("created_at DESC")
	}

	page, perPage := f.page(), f.perPage()
	var rows []productRow
	if err := q.Offset((page - 1) * perPage).Limit(perPage).Find(&rows).Error; err != nil {
		return resp, errors.Wrap(err, "failed to list products")
	}

	out := make([]model.Product, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	resp = model.PaginatedResponse[model.Product]{
		Data:       out,
		Total:      int(total),
		Page:       page,
		PerPage:    perPage,
		TotalPages: int((total + int64(perPage) - 1) / int64(perPage)),
	}
	return resp, nil
}

func (r *mysqlRepo) getProduct(ctx context.Context, cond string, arg interface{}) (model.Product, error) {
	var row productRow
	err := r.db.WithContext(ctx).Where(cond, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, ErrNotFound
	}
	if err != nil {
		return model.Product{}, errors.Wrap(err, "failed to get product")
	}
	return row.toModel(), nil
}

func (r *mysqlRepo) GetProductByID(ctx context.Context, id int64) (model.Product, error) {
	return r.getProduct(ctx, "id = ?", id)
}

func (r *mysqlRepo) GetProductBySlug(ctx context.Context, slug string) (model.Product, error) {
	return r.getProduct(ctx, "slug = ?", strings.TrimSpace(slug))
}

func (r *mysqlRepo) FeaturedProducts(ctx context.Context) ([]model.Product, error) {
	var rows []productRow
	if err := r.db.WithContext(ctx).Where("is_featured = ?", true).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list featured products")
	}
	out := make([]model.Product, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, nil
}

func (r *mysqlRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	var rows []categoryRow
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}
	out := make([]model.Category, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, nil
}

func (r *mysqlRepo) GetCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	var row categoryRow
	err := r.db.WithContext(ctx).Where("slug = ?", strings.TrimSpace(slug)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, ErrNotFound
	}
	if err != nil {
		return model.Category{}, errors.Wrap(err, "failed to get category")
	}
	return row.toModel(), nil
}
