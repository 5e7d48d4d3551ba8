package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
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

type approvalFixture struct {
	tx        *repomock.TxManager
	requests  *repomock.RequestRepo
	equipment *repomock.EquipmentRepo
	category  *repomock.CategoryRepo
	prices    *repomock.PriceHistoryRepo
	bus       *eventbus.Bus
	service   ApprovalServiceInterface

	createdEquipment []*entities.Equipment
	createdPrices    []*entities.PriceHistory
	createdCategory  []string
}

func newApprovalFixture(req *entities.Request) *approvalFixture {
	f := &approvalFixture{
		tx:        &repomock.TxManager{},
		requests:  &repomock.RequestRepo{},
		equipment: &repomock.EquipmentRepo{},
		category:  &repomock.CategoryRepo{},
		prices:    &repomock.PriceHistoryRepo{},
		bus:       newTestBus(),
	}
	f.requests.FindForUpdateInTxFn = func(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Request, error) {
		if id != req.ID {
			return nil, apperrors.ErrNotFound
		}
		copied := *req
		return &copied, nil
	}
	f.equipment.CreateInTxFn = func(ctx context.Context, tx pgx.Tx, e *entities.Equipment) (*entities.Equipment, error) {
		f.createdEquipment = append(f.createdEquipment, e)
		return e, nil
	}
	f.prices.CreateInTxFn = func(ctx context.Context, tx pgx.Tx, ph *entities.PriceHistory) error {
		f.createdPrices = append(f.createdPrices, ph)
		return nil
	}
	f.category.CreateInTxFn = func(ctx context.Context, tx pgx.Tx, name string) (*entities.Category, error) {
		f.createdCategory = append(f.createdCategory, name)
		return &entities.Category{ID: uuid.New(), Name: name}, nil
	}
	views, _ := newTestViews()
	f.service = NewApprovalService(f.tx, f.requests, f.equipment, f.category, f.prices, views, f.bus,
		func() time.Time { return testNow }, zap.NewNop())
	return f
}

func pendingRequest(t constants.RequestType) *entities.Request {
	return &entities.Request{
		ID:     uuid.New(),
		Type:   t,
		Name:   "Мяч футбольный",
		Status: constants.RequestStatusPending,
		UserID: uuid.New(),
	}
}

func TestApprovalService_ApproveItemInsertsEquipment(t *testing.T) {
	req := pendingRequest(constants.RequestTypeItem)
	req.Quantity = null.IntFrom(4)
	req.CategoryID = uuid.NullUUID{UUID: uuid.New(), Valid: true}
	f := newApprovalFixture(req)

	got, err := f.service.Resolve(context.Background(), req.ID, constants.RequestStatusApproved)
	require.NoError(t, err)

	assert.Equal(t, constants.RequestStatusApproved, got.Status)
	assert.Equal(t, testNow, got.UpdatedAt)
	require.Len(t, f.createdEquipment, 1)
	assert.Equal(t, "Мяч футбольный", f.createdEquipment[0].Name)
	assert.Equal(t, 4, f.createdEquipment[0].Quantity)
	assert.Equal(t, constants.EquipmentStatusNew, f.createdEquipment[0].Status)
	assert.Equal(t, req.CategoryID, f.createdEquipment[0].CategoryID)
	assert.Equal(t, 1, f.tx.Committed)
}

func TestApprovalService_ApprovePurchaseRecordsPrice(t *testing.T) {
	req := pendingRequest(constants.RequestTypePurchase)
	req.CategoryID = uuid.NullUUID{UUID: uuid.New(), Valid: true}
	req.BestPrice = null.Float64From(1500)
	req.Seller = null.StringFrom("Спортмастер")
	f := newApprovalFixture(req)

	_, err := f.service.Resolve(context.Background(), req.ID, constants.RequestStatusApproved)
	require.NoError(t, err)

	require.Len(t, f.createdPrices, 1)
	assert.Equal(t, req.ID, f.createdPrices[0].RequestID)
	assert.Equal(t, 1500.0, f.createdPrices[0].Price)
	assert.Equal(t, "Спортмастер", f.createdPrices[0].Seller)
	assert.Equal(t, testNow, f.createdPrices[0].RecordedAt)
	assert.Empty(t, f.createdEquipment)
}

func TestApprovalService_ApproveCategoryCreatesCategory(t *testing.T) {
	req := pendingRequest(constants.RequestTypeCategory)
	req.Name = "Лыжи"
	f := newApprovalFixture(req)

	_, err := f.service.Resolve(context.Background(), req.ID, constants.RequestStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, []string{"Лыжи"}, f.createdCategory)
}

func TestApprovalService_ApproveRepairMovesUnitsToBroken(t *testing.T) {
	source := &entities.Equipment{
		ID:         uuid.New(),
		Name:       "Мяч волейбольный",
		Quantity:   5,
		Status:     constants.EquipmentStatusInUse,
		CategoryID: uuid.NullUUID{UUID: uuid.New(), Valid: true},
	}
	req := pendingRequest(constants.RequestTypeRepair)
	req.EquipmentID = uuid.NullUUID{UUID: source.ID, Valid: true}
	req.Quantity = null.IntFrom(2)
	req.Description = null.StringFrom("порваны после турнира")
	f := newApprovalFixture(req)
	f.equipment.FindForUpdateInTxFn = func(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Equipment, error) {
		return source, nil
	}
	var decremented int
	f.equipment.DecrementInUseInTxFn = func(ctx context.Context, tx pgx.Tx, id uuid.UUID, n int) (bool, error) {
		decremented = n
		return true, nil
	}

	_, err := f.service.Resolve(context.Background(), req.ID, constants.RequestStatusApproved)
	require.NoError(t, err)

	assert.Equal(t, 2, decremented)
	require.Len(t, f.createdEquipment, 1)
	assert.Equal(t, constants.EquipmentStatusBroken, f.createdEquipment[0].Status)
	assert.Equal(t, 2, f.createdEquipment[0].Quantity)
	assert.Equal(t, source.Name, f.createdEquipment[0].Name)
	assert.Equal(t, source.CategoryID, f.createdEquipment[0].CategoryID)
	assert.Equal(t, null.StringFrom("порваны после турнира"), f.createdEquipment[0].Description)
}

func TestApprovalService_RepairWithoutNoteDescribesSource(t *testing.T) {
	source := &entities.Equipment{
		ID:          uuid.New(),
		Name:        "Скакалка",
		Description: null.StringFrom("резиновая"),
		Quantity:    4,
		Status:      constants.EquipmentStatusInUse,
	}
	req := pendingRequest(constants.RequestTypeRepair)
	req.EquipmentID = uuid.NullUUID{UUID: source.ID, Valid: true}
	req.Quantity = null.IntFrom(1)
	f := newApprovalFixture(req)
	f.equipment.FindForUpdateInTxFn = func(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Equipment, error) {
		return source, nil
	}

	_, err := f.service.Resolve(context.Background(), req.ID, constants.RequestStatusApproved)
	require.NoError(t, err)

	require.Len(t, f.createdEquipment, 1)
	assert.Equal(t, "Сломанные единицы из «Скакалка»", f.createdEquipment[0].Description.String)
}

func TestApprovalService_ApproveAfterReferencesCleared(t *testing.T) {
	t.Run("item keeps no category", func(t *testing.T) {
		req := pendingRequest(constants.RequestTypeItem)
		req.Quantity = null.IntFrom(3)
		f := newApprovalFixture(req)

		got, err := f.service.Resolve(context.Background(), req.ID, constants.RequestStatusApproved)
		require.NoError(t, err)

		assert.Equal(t, constants.RequestStatusApproved, got.Status)
		require.Len(t, f.createdEquipment, 1)
		assert.False(t, f.createdEquipment[0].CategoryID.Valid)
		assert.Equal(t, 3, f.createdEquipment[0].Quantity)
		assert.Equal(t, 1, f.tx.Committed)
	})

	t.Run("purchase still records price", func(t *testing.T) {
		req := pendingRequest(constants.RequestTypePurchase)
		req.BestPrice = null.Float64From(750)
		req.Seller = null.StringFrom("Wildberries")
		f := newApprovalFixture(req)

		_, err := f.service.Resolve(context.Background(), req.ID, constants.RequestStatusApproved)
		require.NoError(t, err)

		require.Len(t, f.createdPrices, 1)
		assert.Equal(t, 750.0, f.createdPrices[0].Price)
		assert.Equal(t, 1, f.tx.Committed)
	})

	t.Run("repair only changes status", func(t *testing.T) {
		req := pendingRequest(constants.RequestTypeRepair)
		req.Quantity = null.IntFrom(2)
		f := newApprovalFixture(req)
		looked := false
		f.equipment.FindForUpdateInTxFn = func(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Equipment, error) {
			looked = true
			return nil, apperrors.ErrNotFound
		}

		got, err := f.service.Resolve(context.Background(), req.ID, constants.RequestStatusApproved)
		require.NoError(t, err)

		assert.Equal(t, constants.RequestStatusApproved, got.Status)
		assert.False(t, looked)
		assert.Empty(t, f.createdEquipment)
		assert.Equal(t, 1, f.tx.Committed)
	})
}

func TestApprovalService_RepairWithInsufficientStockRollsBack(t *testing.T) {
	req := pendingRequest(constants.RequestTypeRepair)
	req.EquipmentID = uuid.NullUUID{UUID: uuid.New(), Valid: true}
	req.Quantity = null.IntFrom(10)
	f := newApprovalFixture(req)
	f.equipment.FindForUpdateInTxFn = func(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Equipment, error) {
		return &entities.Equipment{ID: id, Quantity: 3, Status: constants.EquipmentStatusInUse}, nil
	}
	f.equipment.DecrementInUseInTxFn = func(ctx context.Context, tx pgx.Tx, id uuid.UUID, n int) (bool, error) {
		return false, nil
	}

	_, err := f.service.Resolve(context.Background(), req.ID, constants.RequestStatusApproved)
	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	assert.Empty(t, f.createdEquipment)
	assert.Equal(t, 1, f.tx.RolledBack)
	assert.Equal(t, 0, f.tx.Committed)
}

func TestApprovalService_RejectHasNoSideEffects(t *testing.T) {
	req := pendingRequest(constants.RequestTypeItem)
	req.CategoryID = uuid.NullUUID{UUID: uuid.New(), Valid: true}
	f := newApprovalFixture(req)

	got, err := f.service.Resolve(context.Background(), req.ID, constants.RequestStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, constants.RequestStatusRejected, got.Status)
	assert.Empty(t, f.createdEquipment)
	assert.Empty(t, f.createdPrices)
}

func TestApprovalService_AlreadyResolved(t *testing.T) {
	req := pendingRequest(constants.RequestTypeCategory)
	req.Status = constants.RequestStatusApproved
	f := newApprovalFixture(req)

	_, err := f.service.Resolve(context.Background(), req.ID, constants.RequestStatusRejected)
	assert.ErrorIs(t, err, apperrors.ErrRequestAlreadyResolved)
}

func TestApprovalService_ConcurrentResolveLosesRace(t *testing.T) {
	req := pendingRequest(constants.RequestTypeCategory)
	f := newApprovalFixture(req)
	f.requests.ResolveInTxFn = func(ctx context.Context, tx pgx.Tx, id uuid.UUID, status constants.RequestStatus, at time.Time) (bool, error) {
		return false, nil
	}

	_, err := f.service.Resolve(context.Background(), req.ID, constants.RequestStatusApproved)
	assert.ErrorIs(t, err, apperrors.ErrRequestAlreadyResolved)
	assert.Empty(t, f.createdCategory)
}

func TestApprovalService_InvalidTarget(t *testing.T) {
	req := pendingRequest(constants.RequestTypeCategory)
	f := newApprovalFixture(req)

	_, err := f.service.Resolve(context.Background(), req.ID, constants.RequestStatusPending)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	assert.Equal(t, 0, f.tx.Committed+f.tx.RolledBack)
}

func TestApprovalService_PublishesResolvedEvent(t *testing.T) {
	req := pendingRequest(constants.RequestTypeCategory)
	f := newApprovalFixture(req)

	received := make(chan events.RequestResolvedEvent, 1)
	f.bus.Subscribe(events.RequestResolvedEvent{}.Name(), func(ctx context.Context, e eventbus.Event) error {
		received <- e.(events.RequestResolvedEvent)
		return nil
	})

	_, err := f.service.Resolve(context.Background(), req.ID, constants.RequestStatusRejected)
	require.NoError(t, err)
	f.bus.Wait()

	select {
	case e := <-received:
		assert.Equal(t, req.ID, e.Request.ID)
		assert.Equal(t, constants.RequestStatusRejected, e.Request.Status)
	default:
		t.Fatal("событие не опубликовано")
	}
}
