package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sport-inventory/internal/dto"
	"sport-inventory/internal/entities"
	"sport-inventory/internal/testutil/repomock"
	"sport-inventory/pkg/constants"
	apperrors "sport-inventory/pkg/errors"
	"sport-inventory/pkg/types"
)

func intPtr(v int) *int { return &v }

func newRequestFixture(equipment *entities.EquipmentWithCategory) (RequestServiceInterface, *repomock.RequestRepo) {
	requests := &repomock.RequestRepo{}
	eqRepo := &repomock.EquipmentRepo{
		FindFn: func(ctx context.Context, id uuid.UUID) (*entities.EquipmentWithCategory, error) {
			if equipment == nil || equipment.ID != id {
				return nil, apperrors.ErrNotFound
			}
			return equipment, nil
		},
	}
	notifier, _, _ := newNotificationFixture()
	service := NewRequestService(requests, eqRepo, notifier, testLifecycle(), func() time.Time { return testNow }, zap.NewNop())
	return service, requests
}

func TestSubmit_Validation(t *testing.T) {
	inUse := &entities.EquipmentWithCategory{Equipment: entities.Equipment{
		ID: uuid.New(), Name: "Обруч", Quantity: 3, Status: constants.EquipmentStatusInUse,
	}}
	fresh := &entities.EquipmentWithCategory{Equipment: entities.Equipment{
		ID: uuid.New(), Name: "Обруч", Quantity: 3, Status: constants.EquipmentStatusNew,
	}}
	categoryID := uuid.New()

	cases := []struct {
		name      string
		equipment *entities.EquipmentWithCategory
		payload   dto.CreateRequestDTO
		message   string
	}{
		{
			name:    "item without category",
			payload: dto.CreateRequestDTO{Type: "item", Name: "Мяч"},
			message: "Пожалуйста, выберите категорию",
		},
		{
			name:    "repair without equipment",
			payload: dto.CreateRequestDTO{Type: "repair"},
			message: "Пожалуйста, выберите оборудование для ремонта/замены",
		},
		{
			name:      "repair more than in stock",
			equipment: inUse,
			payload:   dto.CreateRequestDTO{Type: "repair", EquipmentID: &inUse.ID, Quantity: intPtr(5)},
			message:   "Нельзя запросить больше единиц, чем имеется в наличии (3)",
		},
		{
			name:      "repair of new equipment",
			equipment: fresh,
			payload:   dto.CreateRequestDTO{Type: "repair", EquipmentID: &fresh.ID, Quantity: intPtr(1)},
			message:   "Для ремонта можно выбрать только используемое оборудование",
		},
		{
			name:    "purchase without price",
			payload: dto.CreateRequestDTO{Type: "purchase", Name: "Мяч", CategoryID: &categoryID, Seller: "Ozon"},
			message: "Укажите лучшую цену",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service, _ := newRequestFixture(tc.equipment)
			session := entities.NewSession(uuid.New(), "a@school.ru", "sid", constants.RoleUser)

			_, err := service.Submit(context.Background(), session, tc.payload)
			require.Error(t, err)
			assert.True(t, apperrors.IsInvalidInput(err))
			assert.Equal(t, tc.message, err.Error())
		})
	}
}

func TestSubmit_RepairTakesEquipmentName(t *testing.T) {
	eq := &entities.EquipmentWithCategory{Equipment: entities.Equipment{
		ID: uuid.New(), Name: "Гантели", Quantity: 4, Status: constants.EquipmentStatusInUse,
	}}
	service, _ := newRequestFixture(eq)
	session := entities.NewSession(uuid.New(), "a@school.ru", "sid", constants.RoleUser)

	created, err := service.Submit(context.Background(), session, dto.CreateRequestDTO{
		Type: "repair", EquipmentID: &eq.ID, Quantity: intPtr(4), Description: "треснули",
	})
	require.NoError(t, err)

	assert.Equal(t, constants.RequestTypeRepair, created.Type)
	assert.Equal(t, constants.RequestStatusPending, created.Status)
	assert.Equal(t, "Гантели", created.Name)
	assert.Equal(t, session.UserID, created.UserID)
	assert.Equal(t, null.IntFrom(4), created.Quantity)
	assert.Equal(t, uuid.NullUUID{UUID: eq.ID, Valid: true}, created.EquipmentID)
}

func TestListMine_ExpiryCountdown(t *testing.T) {
	service, requests := newRequestFixture(nil)
	userID := uuid.New()
	requests.ListByUserFn = func(ctx context.Context, id uuid.UUID) ([]entities.RequestDetails, error) {
		return []entities.RequestDetails{
			{Request: entities.Request{ID: uuid.New(), Status: constants.RequestStatusPending, UserID: id}},
			{Request: entities.Request{ID: uuid.New(), Status: constants.RequestStatusApproved, UserID: id, UpdatedAt: testNow.Add(-time.Minute)}},
		}, nil
	}

	mine, err := service.ListMine(context.Background(), entities.NewSession(userID, "a@school.ru", "sid", constants.RoleUser))
	require.NoError(t, err)

	require.Len(t, mine.Requests, 2)
	assert.Nil(t, mine.Requests[0].ExpiresInSeconds)
	require.NotNil(t, mine.Requests[1].ExpiresInSeconds)
	assert.Equal(t, 240, *mine.Requests[1].ExpiresInSeconds)
	assert.NotNil(t, mine.Notifications)
}

func TestSecondsUntilRemoval(t *testing.T) {
	grace := 5 * time.Minute
	assert.Equal(t, 300, SecondsUntilRemoval(testNow, testNow, grace))
	assert.Equal(t, 1, SecondsUntilRemoval(testNow, testNow.Add(grace-500*time.Millisecond), grace))
	assert.Equal(t, 0, SecondsUntilRemoval(testNow, testNow.Add(grace), grace))
	assert.Equal(t, 0, SecondsUntilRemoval(testNow, testNow.Add(time.Hour), grace))
}

func TestCanApprove(t *testing.T) {
	repair := func(requested, inStock int) entities.RequestDetails {
		return entities.RequestDetails{
			Request: entities.Request{
				Type:        constants.RequestTypeRepair,
				Status:      constants.RequestStatusPending,
				Quantity:    null.IntFrom(requested),
				EquipmentID: uuid.NullUUID{UUID: uuid.New(), Valid: true},
			},
			EquipmentQuantity: null.IntFrom(inStock),
		}
	}

	assert.True(t, CanApprove(repair(2, 3)))
	assert.True(t, CanApprove(repair(3, 3)))
	assert.False(t, CanApprove(repair(4, 3)))

	cleared := repair(2, 0)
	cleared.EquipmentID = uuid.NullUUID{}
	cleared.EquipmentQuantity = null.Int{}
	assert.True(t, CanApprove(cleared))
	assert.False(t, CanApprove(entities.RequestDetails{Request: entities.Request{
		Type: constants.RequestTypeRepair, Status: constants.RequestStatusPending, Quantity: null.IntFrom(1),
		EquipmentID: uuid.NullUUID{UUID: uuid.New(), Valid: true},
	}}))
	assert.True(t, CanApprove(entities.RequestDetails{Request: entities.Request{
		Type: constants.RequestTypeItem, Status: constants.RequestStatusPending,
	}}))
	assert.False(t, CanApprove(entities.RequestDetails{Request: entities.Request{
		Type: constants.RequestTypeItem, Status: constants.RequestStatusApproved,
	}}))
}

func TestListAll_MarksApprovable(t *testing.T) {
	service, requests := newRequestFixture(nil)

	var got types.Filter
	requests.ListFn = func(ctx context.Context, filter types.Filter) ([]entities.RequestDetails, uint64, error) {
		got = filter
		return []entities.RequestDetails{
			{Request: entities.Request{Type: constants.RequestTypeItem, Status: constants.RequestStatusPending}},
			{
				Request: entities.Request{
					Type: constants.RequestTypeRepair, Status: constants.RequestStatusPending, Quantity: null.IntFrom(5),
					EquipmentID: uuid.NullUUID{UUID: uuid.New(), Valid: true},
				},
				EquipmentQuantity: null.IntFrom(2),
			},
		}, 7, nil
	}

	filter := types.Filter{Filter: map[string]interface{}{"status": "pending"}, Limit: 10}
	rows, total, err := service.ListAll(context.Background(), filter)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), total)
	assert.Equal(t, "pending", got.Filter["status"])
	require.Len(t, rows, 2)
	assert.True(t, rows[0].CanApprove)
	assert.False(t, rows[1].CanApprove)
}
