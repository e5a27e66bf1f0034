package coupons

import (
	"context"
	"errors"
	"fmt"

	"github.com/chronovahq/chronova-backend/internal/pricing"
	"github.com/chronovahq/chronova-backend/pkg/db/models"
	pkgdb "github.com/chronovahq/chronova-backend/pkg/db"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rejection reasons surfaced to the storefront. The wording is part of the
// API contract.
const (
	ReasonNotFound = "not found"
	ReasonInactive = "inactive"
)

type couponRepo interface {
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	List(ctx context.Context) ([]models.Coupon, error)
	Create(ctx context.Context, coupon *models.Coupon) (*models.Coupon, error)
	Update(ctx context.Context, coupon *models.Coupon) (*models.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ValidationResult is the outcome of checking a coupon code. Invalid codes
// carry a reason; valid ones carry the discount to apply.
type ValidationResult struct {
	Valid    bool
	Reason   string
	Discount *pricing.CouponDiscount
}

// Service exposes storefront validation plus the back-office CRUD surface.
type Service interface {
	Validate(ctx context.Context, code string) (*ValidationResult, error)
	List(ctx context.Context) ([]models.Coupon, error)
	Create(ctx context.Context, input UpsertCouponInput) (*models.Coupon, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertCouponInput) (*models.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo couponRepo
}

// NewService builds a coupon service.
func NewService(repo couponRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	return &service{repo: repo}, nil
}

// UpsertCouponInput carries the admin payload for creating or editing a coupon.
type UpsertCouponInput struct {
	Code            string
	DiscountPercent int
	Active          bool
}

// Validate resolves a code case-insensitively. An unknown or inactive code
// is not an error; it is a negative result with a reason.
func (s *service) Validate(ctx context.Context, code string) (*ValidationResult, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}

	coupon, err := s.repo.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ValidationResult{Valid: false, Reason: ReasonNotFound}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	if !coupon.Active {
		return &ValidationResult{Valid: false, Reason: ReasonInactive}, nil
	}

	return &ValidationResult{
		Valid: true,
		Discount: &pricing.CouponDiscount{
			Code:    coupon.Code,
			Percent: coupon.DiscountPercent,
		},
	}, nil
}

func (s *service) List(ctx context.Context) ([]models.Coupon, error) {
	coupons, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	return coupons, nil
}

func (s *service) Create(ctx context.Context, input UpsertCouponInput) (*models.Coupon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	coupon := &models.Coupon{
		Code:            NormalizeCode(input.Code),
		DiscountPercent: input.DiscountPercent,
		Active:          input.Active,
	}
	created, err := s.repo.Create(ctx, coupon)
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create coupon")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertCouponInput) (*models.Coupon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	coupon, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	coupon.Code = NormalizeCode(input.Code)
	coupon.DiscountPercent = input.DiscountPercent
	coupon.Active = input.Active

	updated, err := s.repo.Update(ctx, coupon)
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update coupon")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete coupon")
	}
	return nil
}

func validateInput(input UpsertCouponInput) error {
	if NormalizeCode(input.Code) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	if input.DiscountPercent < 1 || input.DiscountPercent > 100 {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 1 and 100")
	}
	return nil
}
