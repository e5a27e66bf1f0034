package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/chronovahq/chronova-backend/pkg/db/models"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/chronovahq/chronova-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, params pagination.Params) ([]models.Customer, string, error)
	OrdersFor(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
}

// CustomerDetail bundles a customer with their order history.
type CustomerDetail struct {
	Customer models.Customer `json:"customer"`
	Orders   []models.Order  `json:"orders"`
}

// Service exposes the back-office customer read surface.
type Service interface {
	List(ctx context.Context, params pagination.Params) ([]models.Customer, string, error)
	Get(ctx context.Context, id uuid.UUID) (*CustomerDetail, error)
}

type service struct {
	repo customerRepo
}

// NewService builds a customer service.
func NewService(repo customerRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.Customer, string, error) {
	customers, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	return customers, next, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CustomerDetail, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}

	orders, err := s.repo.OrdersFor(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer orders")
	}

	return &CustomerDetail{Customer: *customer, Orders: orders}, nil
}
