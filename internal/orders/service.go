package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/chronovahq/chronova-backend/pkg/db/models"
	"github.com/chronovahq/chronova-backend/pkg/enums"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/chronovahq/chronova-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// allowedTransitions is the order lifecycle. Terminal states have no exits;
// everything not listed is rejected.
var allowedTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:   {enums.OrderStatusConfirmed, enums.OrderStatusCancelled},
	enums.OrderStatusConfirmed: {enums.OrderStatusShipped, enums.OrderStatusCancelled},
	enums.OrderStatusShipped:   {enums.OrderStatusDelivered},
}

// CanTransition reports whether the move between the two statuses is allowed.
func CanTransition(from, to enums.OrderStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type orderRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

// Service exposes the back-office order surface. Orders are created by
// checkout; here they are only read and moved through the lifecycle.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo orderRepo
	logg *logger.Logger
}

// NewService builds an order service.
func NewService(repo orderRepo, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Order, string, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid order status filter")
	}
	orders, next, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, next, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == status {
		return order, nil
	}
	if !CanTransition(order.Status, status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "status transition disallowed").
			WithDetails(map[string]any{"from": order.Status, "to": status})
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	order.Status = status

	if s.logg != nil {
		logCtx := s.logg.WithOrderID(ctx, id.String())
		logCtx = s.logg.WithField(logCtx, "status", status.String())
		s.logg.Info(logCtx, "order.status_changed")
	}

	return order, nil
}
