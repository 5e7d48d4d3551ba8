package repomock

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"sport-inventory/internal/entities"
	"sport-inventory/pkg/types"
)

type EquipmentRepo struct {
	ListFn               func(ctx context.Context, filter types.Filter) ([]entities.EquipmentWithCategory, uint64, error)
	FindFn               func(ctx context.Context, id uuid.UUID) (*entities.EquipmentWithCategory, error)
	FindForUpdateInTxFn  func(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Equipment, error)
	CreateFn             func(ctx context.Context, e *entities.Equipment) (*entities.Equipment, error)
	CreateInTxFn         func(ctx context.Context, tx pgx.Tx, e *entities.Equipment) (*entities.Equipment, error)
	UpdateFn             func(ctx context.Context, e *entities.Equipment) (*entities.Equipment, error)
	DeleteFn             func(ctx context.Context, id uuid.UUID) error
	DecrementInUseInTxFn func(ctx context.Context, tx pgx.Tx, id uuid.UUID, n int) (bool, error)
	ClearCategoryInTxFn  func(ctx context.Context, tx pgx.Tx, categoryID uuid.UUID) (int64, error)
}

func (m *EquipmentRepo) List(ctx context.Context, filter types.Filter) ([]entities.EquipmentWithCategory, uint64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return nil, 0, nil
}

func (m *EquipmentRepo) Find(ctx context.Context, id uuid.UUID) (*entities.EquipmentWithCategory, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *EquipmentRepo) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Equipment, error) {
	if m.FindForUpdateInTxFn != nil {
		return m.FindForUpdateInTxFn(ctx, tx, id)
	}
	return nil, errNotImplemented
}

func (m *EquipmentRepo) Create(ctx context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return e, nil
}

func (m *EquipmentRepo) CreateInTx(ctx context.Context, tx pgx.Tx, e *entities.Equipment) (*entities.Equipment, error) {
	if m.CreateInTxFn != nil {
		return m.CreateInTxFn(ctx, tx, e)
	}
	return e, nil
}

func (m *EquipmentRepo) Update(ctx context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, e)
	}
	return e, nil
}

func (m *EquipmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *EquipmentRepo) DecrementInUseInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, n int) (bool, error) {
	if m.DecrementInUseInTxFn != nil {
		return m.DecrementInUseInTxFn(ctx, tx, id, n)
	}
	return true, nil
}

func (m *EquipmentRepo) ClearCategoryInTx(ctx context.Context, tx pgx.Tx, categoryID uuid.UUID) (int64, error) {
	if m.ClearCategoryInTxFn != nil {
		return m.ClearCategoryInTxFn(ctx, tx, categoryID)
	}
	return 0, nil
}
