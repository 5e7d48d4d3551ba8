package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sport-inventory/internal/entities"
	"sport-inventory/internal/events"
	"sport-inventory/internal/testutil/repomock"
	"sport-inventory/pkg/constants"
	apperrors "sport-inventory/pkg/errors"
	"sport-inventory/pkg/eventbus"
)

func TestCategoryService_DeleteClearsReferencesInOneTransaction(t *testing.T) {
	id := uuid.New()
	var steps []string
	tx := &repomock.TxManager{}
	requests := &repomock.RequestRepo{
		ClearCategoryInTxFn: func(ctx context.Context, _ pgx.Tx, categoryID uuid.UUID) (int64, error) {
			steps = append(steps, "requests")
			return 1, nil
		},
	}
	equipment := &repomock.EquipmentRepo{
		ClearCategoryInTxFn: func(ctx context.Context, _ pgx.Tx, categoryID uuid.UUID) (int64, error) {
			steps = append(steps, "equipment")
			return 2, nil
		},
	}
	categories := &repomock.CategoryRepo{
		DeleteInTxFn: func(ctx context.Context, _ pgx.Tx, categoryID uuid.UUID) error {
			steps = append(steps, "category")
			return nil
		},
	}
	views, cache := newTestViews()
	views.Store(context.Background(), constants.CacheKeyCategories, []entities.CategoryWithCount{})
	service := NewCategoryService(tx, categories, equipment, requests, views, zap.NewNop())

	require.NoError(t, service.Delete(context.Background(), id))

	assert.Equal(t, []string{"requests", "equipment", "category"}, steps)
	assert.Equal(t, 1, tx.Committed)
	assert.False(t, cache.Has(constants.CacheKeyCategories))
}

func TestCategoryService_DeleteFailureRollsBack(t *testing.T) {
	tx := &repomock.TxManager{}
	categories := &repomock.CategoryRepo{
		DeleteInTxFn: func(ctx context.Context, _ pgx.Tx, id uuid.UUID) error {
			return apperrors.ErrNotFound
		},
	}
	views, _ := newTestViews()
	service := NewCategoryService(tx, categories, &repomock.EquipmentRepo{}, &repomock.RequestRepo{}, views, zap.NewNop())

	err := service.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, 1, tx.RolledBack)
}

func TestCategoryService_ListIsCached(t *testing.T) {
	calls := 0
	categories := &repomock.CategoryRepo{
		ListFn: func(ctx context.Context) ([]entities.CategoryWithCount, error) {
			calls++
			return []entities.CategoryWithCount{{Category: entities.Category{ID: uuid.New(), Name: "Мячи"}, ItemCount: 2}}, nil
		},
	}
	views, _ := newTestViews()
	service := NewCategoryService(&repomock.TxManager{}, categories, &repomock.EquipmentRepo{}, &repomock.RequestRepo{}, views, zap.NewNop())
	ctx := context.Background()

	first, err := service.List(ctx)
	require.NoError(t, err)
	second, err := service.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first[0].Name, second[0].Name)
	assert.Equal(t, 2, second[0].ItemCount)

	_, err = service.Create(ctx, "Лыжи")
	require.NoError(t, err)
	_, err = service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestUserService_UpdateRole(t *testing.T) {
	bus := newTestBus()
	changed := make(chan events.ProfileRoleChangedEvent, 1)
	bus.Subscribe(events.ProfileRoleChanged, func(ctx context.Context, e eventbus.Event) error {
		changed <- e.(events.ProfileRoleChangedEvent)
		return nil
	})
	service := NewUserService(&repomock.ProfileRepo{}, bus, zap.NewNop())
	admin := entities.NewSession(uuid.New(), "admin@school.ru", "sid", constants.RoleAdmin)
	target := uuid.New()

	_, err := service.UpdateRole(context.Background(), admin, admin.UserID, constants.RoleUser)
	assert.ErrorIs(t, err, apperrors.ErrCannotChangeOwnRole)

	_, err = service.UpdateRole(context.Background(), admin, target, constants.Role("owner"))
	assert.True(t, apperrors.IsInvalidInput(err))

	profile, err := service.UpdateRole(context.Background(), admin, target, constants.RoleBlocked)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleBlocked, profile.Role)

	bus.Wait()
	select {
	case e := <-changed:
		assert.Equal(t, target, e.UserID)
		assert.Equal(t, constants.RoleBlocked, e.Role)
	default:
		t.Fatal("событие не опубликовано")
	}
}

func TestUserService_UpdateRoleNotFound(t *testing.T) {
	profiles := &repomock.ProfileRepo{
		UpdateRoleFn: func(ctx context.Context, id uuid.UUID, role constants.Role) (*entities.Profile, error) {
			return nil, apperrors.ErrNotFound
		},
	}
	service := NewUserService(profiles, newTestBus(), zap.NewNop())
	admin := entities.NewSession(uuid.New(), "admin@school.ru", "sid", constants.RoleAdmin)

	_, err := service.UpdateRole(context.Background(), admin, uuid.New(), constants.RoleAdmin)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
