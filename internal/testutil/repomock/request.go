package repomock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"sport-inventory/internal/entities"
	"sport-inventory/pkg/constants"
	"sport-inventory/pkg/types"
)

// RequestRepo: мок на функциях для repositories.RequestRepositoryInterface.
type RequestRepo struct {
	CreateFn                func(ctx context.Context, req *entities.Request) (*entities.Request, error)
	ListFn                  func(ctx context.Context, filter types.Filter) ([]entities.RequestDetails, uint64, error)
	ListByUserFn            func(ctx context.Context, userID uuid.UUID) ([]entities.RequestDetails, error)
	FindFn                  func(ctx context.Context, id uuid.UUID) (*entities.Request, error)
	FindForUpdateInTxFn     func(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Request, error)
	ResolveInTxFn           func(ctx context.Context, tx pgx.Tx, id uuid.UUID, status constants.RequestStatus, at time.Time) (bool, error)
	ClearCategoryInTxFn     func(ctx context.Context, tx pgx.Tx, categoryID uuid.UUID) (int64, error)
	DeleteResolvedBeforeFn  func(ctx context.Context, cutoff time.Time) (int64, error)
	ListResolvedSinceFn     func(ctx context.Context, since time.Time) ([]entities.Request, error)
	ListApprovedPurchasesFn func(ctx context.Context, limit uint64) ([]entities.RequestDetails, error)
	SetBoughtFn             func(ctx context.Context, id uuid.UUID, bought bool) (*entities.Request, error)
}

func (m *RequestRepo) Create(ctx context.Context, req *entities.Request) (*entities.Request, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, req)
	}
	return req, nil
}

func (m *RequestRepo) List(ctx context.Context, filter types.Filter) ([]entities.RequestDetails, uint64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return nil, 0, nil
}

func (m *RequestRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.RequestDetails, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *RequestRepo) Find(ctx context.Context, id uuid.UUID) (*entities.Request, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *RequestRepo) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Request, error) {
	if m.FindForUpdateInTxFn != nil {
		return m.FindForUpdateInTxFn(ctx, tx, id)
	}
	return nil, errNotImplemented
}

func (m *RequestRepo) ResolveInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status constants.RequestStatus, at time.Time) (bool, error) {
	if m.ResolveInTxFn != nil {
		return m.ResolveInTxFn(ctx, tx, id, status, at)
	}
	return true, nil
}

func (m *RequestRepo) ClearCategoryInTx(ctx context.Context, tx pgx.Tx, categoryID uuid.UUID) (int64, error) {
	if m.ClearCategoryInTxFn != nil {
		return m.ClearCategoryInTxFn(ctx, tx, categoryID)
	}
	return 0, nil
}

func (m *RequestRepo) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteResolvedBeforeFn != nil {
		return m.DeleteResolvedBeforeFn(ctx, cutoff)
	}
	return 0, nil
}

func (m *RequestRepo) ListResolvedSince(ctx context.Context, since time.Time) ([]entities.Request, error) {
	if m.ListResolvedSinceFn != nil {
		return m.ListResolvedSinceFn(ctx, since)
	}
	return nil, nil
}

func (m *RequestRepo) ListApprovedPurchases(ctx context.Context, limit uint64) ([]entities.RequestDetails, error) {
	if m.ListApprovedPurchasesFn != nil {
		return m.ListApprovedPurchasesFn(ctx, limit)
	}
	return nil, nil
}

func (m *RequestRepo) SetBought(ctx context.Context, id uuid.UUID, bought bool) (*entities.Request, error) {
	if m.SetBoughtFn != nil {
		return m.SetBoughtFn(ctx, id, bought)
	}
	return nil, errNotImplemented
}
