package orders

import (
	"context"
	"testing"

	"github.com/chronovahq/chronova-backend/pkg/db/models"
	"github.com/chronovahq/chronova-backend/pkg/enums"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubOrderRepo struct {
	orders map[uuid.UUID]*models.Order
}

func newStubOrderRepo(orders ...*models.Order) *stubOrderRepo {
	repo := &stubOrderRepo{orders: map[uuid.UUID]*models.Order{}}
	for _, order := range orders {
		repo.orders[order.ID] = order
	}
	return repo
}

func (r *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if order, ok := r.orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubOrderRepo) List(ctx context.Context, filter ListFilter) ([]models.Order, string, error) {
	out := []models.Order{}
	for _, order := range r.orders {
		if filter.Status == "" || order.Status == filter.Status {
			out = append(out, *order)
		}
	}
	return out, "", nil
}

func (r *stubOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	r.orders[id].Status = status
	return nil
}

func pendingOrder() *models.Order {
	return &models.Order{
		ID:     uuid.New(),
		Status: enums.OrderStatusPending,
	}
}

func TestCanTransitionTable(t *testing.T) {
	cases := []struct {
		from, to enums.OrderStatus
		ok       bool
	}{
		{enums.OrderStatusPending, enums.OrderStatusConfirmed, true},
		{enums.OrderStatusPending, enums.OrderStatusCancelled, true},
		{enums.OrderStatusPending, enums.OrderStatusShipped, false},
		{enums.OrderStatusConfirmed, enums.OrderStatusShipped, true},
		{enums.OrderStatusConfirmed, enums.OrderStatusCancelled, true},
		{enums.OrderStatusConfirmed, enums.OrderStatusDelivered, false},
		{enums.OrderStatusShipped, enums.OrderStatusDelivered, true},
		{enums.OrderStatusShipped, enums.OrderStatusCancelled, false},
		{enums.OrderStatusDelivered, enums.OrderStatusPending, false},
		{enums.OrderStatusCancelled, enums.OrderStatusConfirmed, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.ok {
			t.Fatalf("transition %s -> %s: expected %v got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}

func TestUpdateStatusHappyPath(t *testing.T) {
	order := pendingOrder()
	repo := newStubOrderRepo(order)
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != enums.OrderStatusConfirmed {
		t.Fatalf("expected confirmed got %s", updated.Status)
	}
	if repo.orders[order.ID].Status != enums.OrderStatusConfirmed {
		t.Fatal("expected persisted status change")
	}
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	order := pendingOrder()
	svc, err := NewService(newStubOrderRepo(order), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusPending)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != enums.OrderStatusPending {
		t.Fatalf("unexpected status %s", updated.Status)
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	order := pendingOrder()
	svc, err := NewService(newStubOrderRepo(order), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusDelivered)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict got %v", err)
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, err := NewService(newStubOrderRepo(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusConfirmed)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found got %v", err)
	}
}
