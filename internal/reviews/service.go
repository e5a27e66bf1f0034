package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chronovahq/chronova-backend/pkg/db/models"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/chronovahq/chronova-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reviewRepo interface {
	CreateWithRatingBump(ctx context.Context, review *models.Review) (*models.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]models.Review, error)
}

type productChecker interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// SubmitReviewInput is the storefront review payload.
type SubmitReviewInput struct {
	ProductID uuid.UUID
	Author    string
	Rating    int
	Body      *string
}

// Service exposes review submission and listing.
type Service interface {
	Submit(ctx context.Context, input SubmitReviewInput) (*models.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]models.Review, error)
}

type service struct {
	repo     reviewRepo
	products productChecker
}

// NewService builds a review service.
func NewService(repo reviewRepo, products productChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitReviewInput) (*models.Review, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	author := strings.TrimSpace(input.Author)
	if author == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "author is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	if _, err := s.products.FindActiveByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	review := &models.Review{
		ProductID: input.ProductID,
		Author:    author,
		Rating:    input.Rating,
		Body:      input.Body,
	}
	created, err := s.repo.CreateWithRatingBump(ctx, review)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return created, nil
}

func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]models.Review, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	reviews, err := s.repo.ListByProduct(ctx, productID, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return reviews, nil
}
