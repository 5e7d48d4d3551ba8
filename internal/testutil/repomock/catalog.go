package repomock

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"sport-inventory/internal/entities"
	"sport-inventory/pkg/constants"
	"sport-inventory/pkg/types"
)

type CategoryRepo struct {
	ListFn       func(ctx context.Context) ([]entities.CategoryWithCount, error)
	FindFn       func(ctx context.Context, id uuid.UUID) (*entities.Category, error)
	CreateFn     func(ctx context.Context, name string) (*entities.Category, error)
	CreateInTxFn func(ctx context.Context, tx pgx.Tx, name string) (*entities.Category, error)
	UpdateFn     func(ctx context.Context, id uuid.UUID, name string) (*entities.Category, error)
	DeleteInTxFn func(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

func (m *CategoryRepo) List(ctx context.Context) ([]entities.CategoryWithCount, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *CategoryRepo) Find(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx, id)
	}
	return &entities.Category{ID: id}, nil
}

func (m *CategoryRepo) Create(ctx context.Context, name string) (*entities.Category, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, name)
	}
	return &entities.Category{ID: uuid.New(), Name: name}, nil
}

func (m *CategoryRepo) CreateInTx(ctx context.Context, tx pgx.Tx, name string) (*entities.Category, error) {
	if m.CreateInTxFn != nil {
		return m.CreateInTxFn(ctx, tx, name)
	}
	return &entities.Category{ID: uuid.New(), Name: name}, nil
}

func (m *CategoryRepo) Update(ctx context.Context, id uuid.UUID, name string) (*entities.Category, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, name)
	}
	return &entities.Category{ID: id, Name: name}, nil
}

func (m *CategoryRepo) DeleteInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	if m.DeleteInTxFn != nil {
		return m.DeleteInTxFn(ctx, tx, id)
	}
	return nil
}

type PriceHistoryRepo struct {
	CreateInTxFn    func(ctx context.Context, tx pgx.Tx, ph *entities.PriceHistory) error
	ListByRequestFn func(ctx context.Context, requestID uuid.UUID) ([]entities.PriceHistory, error)
}

func (m *PriceHistoryRepo) CreateInTx(ctx context.Context, tx pgx.Tx, ph *entities.PriceHistory) error {
	if m.CreateInTxFn != nil {
		return m.CreateInTxFn(ctx, tx, ph)
	}
	return nil
}

func (m *PriceHistoryRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]entities.PriceHistory, error) {
	if m.ListByRequestFn != nil {
		return m.ListByRequestFn(ctx, requestID)
	}
	return nil, nil
}

type ProfileRepo struct {
	FindByIDFn   func(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
	EnsureFn     func(ctx context.Context, id uuid.UUID) error
	EnsureInTxFn func(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	ListFn       func(ctx context.Context, filter types.Filter) ([]entities.ProfileWithEmail, error)
	UpdateRoleFn func(ctx context.Context, id uuid.UUID, role constants.Role) (*entities.Profile, error)
}

func (m *ProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *ProfileRepo) Ensure(ctx context.Context, id uuid.UUID) error {
	if m.EnsureFn != nil {
		return m.EnsureFn(ctx, id)
	}
	return nil
}

func (m *ProfileRepo) EnsureInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	if m.EnsureInTxFn != nil {
		return m.EnsureInTxFn(ctx, tx, id)
	}
	return nil
}

func (m *ProfileRepo) List(ctx context.Context, filter types.Filter) ([]entities.ProfileWithEmail, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return nil, nil
}

func (m *ProfileRepo) UpdateRole(ctx context.Context, id uuid.UUID, role constants.Role) (*entities.Profile, error) {
	if m.UpdateRoleFn != nil {
		return m.UpdateRoleFn(ctx, id, role)
	}
	return &entities.Profile{ID: id, Role: role}, nil
}

type UserRepo struct {
	CreateInTxFn  func(ctx context.Context, tx pgx.Tx, user *entities.User) error
	FindByEmailFn func(ctx context.Context, email string) (*entities.User, error)
	FindByIDFn    func(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

func (m *UserRepo) CreateInTx(ctx context.Context, tx pgx.Tx, user *entities.User) error {
	if m.CreateInTxFn != nil {
		return m.CreateInTxFn(ctx, tx, user)
	}
	return nil
}

func (m *UserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(ctx, email)
	}
	return nil, errNotImplemented
}

func (m *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return &entities.User{ID: id, Email: "user@school.ru"}, nil
}
