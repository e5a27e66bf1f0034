package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pkgdb "github.com/chronovahq/chronova-backend/pkg/db"
	"github.com/chronovahq/chronova-backend/pkg/db/models"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type catalogRepo interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindActiveBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListProducts(ctx context.Context, params ListParams) ([]models.Product, int64, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// Service exposes the storefront catalog plus the back-office CRUD surface.
type Service interface {
	ListProducts(ctx context.Context, params ListParams) (*ProductListDTO, error)
	GetProductBySlug(ctx context.Context, slug string) (*ProductDetailDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)

	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDetailDTO, error)
	CreateProduct(ctx context.Context, input UpsertProductInput) (*ProductDetailDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpsertProductInput) (*ProductDetailDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	CreateCategory(ctx context.Context, input UpsertCategoryInput) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input UpsertCategoryInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo catalogRepo
}

// NewService builds a catalog service.
func NewService(repo catalogRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// UpsertProductInput carries the admin payload for creating or editing a product.
type UpsertProductInput struct {
	Slug                string
	Name                string
	Brand               *string
	Description         *string
	CategoryID          *uuid.UUID
	PriceCents          int64
	CompareAtPriceCents *int64
	Stock               int
	Images              []string
	IsActive            bool
	IsFeatured          bool
}

// UpsertCategoryInput carries the admin payload for categories.
type UpsertCategoryInput struct {
	Slug     string
	Name     string
	Position int
}

func (s *service) ListProducts(ctx context.Context, params ListParams) (*ProductListDTO, error) {
	params = params.Normalize()

	products, total, err := s.repo.ListProducts(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	summaries := make([]ProductSummaryDTO, 0, len(products))
	for _, product := range products {
		summaries = append(summaries, toSummaryDTO(product))
	}

	return &ProductListDTO{
		Products: summaries,
		Total:    total,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}, nil
}

func (s *service) GetProductBySlug(ctx context.Context, slug string) (*ProductDetailDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}

	product, err := s.repo.FindActiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return toDetailDTO(product), nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, *toCategoryDTO(&categories[i]))
	}
	return out, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDetailDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return toDetailDTO(product), nil
}

func (s *service) CreateProduct(ctx context.Context, input UpsertProductInput) (*ProductDetailDTO, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &models.Product{}
	applyProductInput(product, input)

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return toDetailDTO(created), nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpsertProductInput) (*ProductDetailDTO, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	applyProductInput(product, input)
	product.Category = nil

	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return toDetailDTO(updated), nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) CreateCategory(ctx context.Context, input UpsertCategoryInput) (*CategoryDTO, error) {
	if err := validateCategoryInput(input); err != nil {
		return nil, err
	}

	category := &models.Category{
		Slug:     strings.TrimSpace(input.Slug),
		Name:     strings.TrimSpace(input.Name),
		Position: input.Position,
	}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return toCategoryDTO(created), nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input UpsertCategoryInput) (*CategoryDTO, error) {
	if err := validateCategoryInput(input); err != nil {
		return nil, err
	}

	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	category.Slug = strings.TrimSpace(input.Slug)
	category.Name = strings.TrimSpace(input.Name)
	category.Position = input.Position

	updated, err := s.repo.UpdateCategory(ctx, category)
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return toCategoryDTO(updated), nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func applyProductInput(product *models.Product, input UpsertProductInput) {
	product.Slug = strings.TrimSpace(input.Slug)
	product.Name = strings.TrimSpace(input.Name)
	product.Brand = input.Brand
	product.Description = input.Description
	product.CategoryID = input.CategoryID
	product.PriceCents = input.PriceCents
	product.CompareAtPriceCents = input.CompareAtPriceCents
	product.Stock = input.Stock
	product.Images = pq.StringArray(input.Images)
	product.IsActive = input.IsActive
	product.IsFeatured = input.IsFeatured
}

func validateProductInput(input UpsertProductInput) error {
	if strings.TrimSpace(input.Slug) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.PriceCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.CompareAtPriceCents != nil && *input.CompareAtPriceCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "compare-at price must be non-negative")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}
	return nil
}

func validateCategoryInput(input UpsertCategoryInput) error {
	if strings.TrimSpace(input.Slug) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category slug is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	return nil
}
