package catalog

import (
	"context"
	"strings"

	"github.com/chronovahq/chronova-backend/pkg/db/models"
	"github.com/chronovahq/chronova-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository wires together product and category persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindActiveByID loads an active product without associations. Cart and
// checkout read stock and price through this path.
func (r *Repository) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		First(&product, "id = ? AND is_active = true", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByID loads a product regardless of active state, for the back office.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindActiveBySlug loads an active product with its category for detail pages.
func (r *Repository) FindActiveBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, "slug = ? AND is_active = true", slug).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts applies the storefront filters, sort, and paging.
func (r *Repository) ListProducts(ctx context.Context, params ListParams) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).Preload("Category")

	if !params.IncludeInactive {
		query = query.Where("is_active = true")
	}
	if params.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", params.CategorySlug)
	}
	if params.FeaturedOnly {
		query = query.Where("is_featured = true")
	}
	if params.InStockOnly {
		query = query.Where("products.stock > 0")
	}
	if params.MinPriceCents > 0 {
		query = query.Where("products.price_cents >= ?", params.MinPriceCents)
	}
	if params.MaxPriceCents > 0 {
		query = query.Where("products.price_cents <= ?", params.MaxPriceCents)
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(COALESCE(products.brand, '')) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(params.Sort)).
		Limit(params.Limit).
		Offset(params.Offset)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func orderClause(sort enums.ProductSort) string {
	switch sort {
	case enums.ProductSortPriceAsc:
		return "products.price_cents ASC, products.created_at DESC"
	case enums.ProductSortPriceDesc:
		return "products.price_cents DESC, products.created_at DESC"
	case enums.ProductSortRating:
		return "products.rating_avg DESC, products.rating_count DESC, products.created_at DESC"
	default:
		return "products.created_at DESC"
	}
}

// CreateProduct persists a new product.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct saves the mutable catalog fields. Rating columns are owned
// by the reviews layer and never written here.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Model(product).
		Select("slug", "name", "brand", "description", "category_id", "price_cents",
			"compare_at_price_cents", "stock", "images", "is_active", "is_featured").
		Updates(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes the product row.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// DecrementStock reduces stock without going below zero. Returns the number
// of rows touched so callers can detect a sold-out race.
func (r *Repository) DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	return result.RowsAffected, result.Error
}

// ListCategories returns categories in display order.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).
		Order("position ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindCategoryByID loads a single category.
func (r *Repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory persists a new category.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory saves the mutable category fields.
func (r *Repository) UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Model(category).
		Select("slug", "name", "position").
		Updates(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category; products keep a dangling nil category.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}
