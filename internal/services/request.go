package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sport-inventory/internal/dto"
	"sport-inventory/internal/entities"
	"sport-inventory/internal/repositories"
	"sport-inventory/pkg/config"
	"sport-inventory/pkg/constants"
	apperrors "sport-inventory/pkg/errors"
	"sport-inventory/pkg/metrics"
	"sport-inventory/pkg/types"
)

type RequestServiceInterface interface {
	Submit(ctx context.Context, session *entities.Session, payload dto.CreateRequestDTO) (*entities.Request, error)
	ListMine(ctx context.Context, session *entities.Session) (*dto.MyRequestsDTO, error)
	ListAll(ctx context.Context, filter types.Filter) ([]dto.AdminRequestDTO, uint64, error)
}

type RequestService struct {
	requestRepo   repositories.RequestRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	notifier      NotificationServiceInterface
	cfg           config.LifecycleConfig
	now           func() time.Time
	logger        *zap.Logger
}

func NewRequestService(
	requestRepo repositories.RequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	notifier NotificationServiceInterface,
	cfg config.LifecycleConfig,
	now func() time.Time,
	logger *zap.Logger,
) RequestServiceInterface {
	return &RequestService{
		requestRepo:   requestRepo,
		equipmentRepo: equipmentRepo,
		notifier:      notifier,
		cfg:           cfg,
		now:           now,
		logger:        logger,
	}
}

func (s *RequestService) Submit(ctx context.Context, session *entities.Session, payload dto.CreateRequestDTO) (*entities.Request, error) {
	variant, err := s.buildVariant(ctx, payload)
	if err != nil {
		return nil, err
	}

	created, err := s.requestRepo.Create(ctx, entities.NewPendingRequest(session.UserID, variant))
	if err != nil {
		return nil, err
	}

	metrics.RequestsSubmitted.WithLabelValues(string(created.Type)).Inc()
	s.logger.Info("Создана заявка",
		zap.String("requestID", created.ID.String()),
		zap.String("type", string(created.Type)),
		zap.String("userID", session.UserID.String()),
	)
	return created, nil
}

// buildVariant проверяет поля формы для выбранного типа заявки.
func (s *RequestService) buildVariant(ctx context.Context, p dto.CreateRequestDTO) (entities.RequestVariant, error) {
	name := strings.TrimSpace(p.Name)
	quantity := 1
	if p.Quantity != nil {
		quantity = *p.Quantity
	}

	switch constants.RequestType(p.Type) {
	case constants.RequestTypeItem:
		if p.CategoryID == nil {
			return nil, apperrors.NewInvalidInputError("Пожалуйста, выберите категорию")
		}
		if name == "" {
			return nil, apperrors.NewInvalidInputError("Укажите название")
		}
		return entities.ItemRequest{Name: name, Description: p.Description, Quantity: quantity, CategoryID: uuid.NullUUID{UUID: *p.CategoryID, Valid: true}}, nil

	case constants.RequestTypeRepair:
		if p.EquipmentID == nil {
			return nil, apperrors.NewInvalidInputError("Пожалуйста, выберите оборудование для ремонта/замены")
		}
		eq, err := s.equipmentRepo.Find(ctx, *p.EquipmentID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidInputError("Выбранное оборудование не найдено")
		}
		if err != nil {
			return nil, err
		}
		if eq.Status != constants.EquipmentStatusInUse {
			return nil, apperrors.NewInvalidInputError("Для ремонта можно выбрать только используемое оборудование")
		}
		if quantity > eq.Quantity {
			return nil, apperrors.NewInvalidInputError("Нельзя запросить больше единиц, чем имеется в наличии (%d)", eq.Quantity)
		}
		return entities.RepairRequest{EquipmentID: uuid.NullUUID{UUID: eq.ID, Valid: true}, Name: eq.Name, Description: p.Description, Quantity: quantity}, nil

	case constants.RequestTypePurchase:
		if p.CategoryID == nil {
			return nil, apperrors.NewInvalidInputError("Пожалуйста, выберите категорию")
		}
		if name == "" {
			return nil, apperrors.NewInvalidInputError("Укажите название")
		}
		if p.BestPrice == nil {
			return nil, apperrors.NewInvalidInputError("Укажите лучшую цену")
		}
		if strings.TrimSpace(p.Seller) == "" {
			return nil, apperrors.NewInvalidInputError("Укажите продавца")
		}
		return entities.PurchaseRequest{
			Name:        name,
			Description: p.Description,
			Quantity:    quantity,
			CategoryID:  uuid.NullUUID{UUID: *p.CategoryID, Valid: true},
			BestPrice:   *p.BestPrice,
			Seller:      strings.TrimSpace(p.Seller),
			PurchaseURL: p.PurchaseURL,
		}, nil

	case constants.RequestTypeCategory:
		if name == "" {
			return nil, apperrors.NewInvalidInputError("Укажите название категории")
		}
		return entities.CategoryRequest{Name: name, Description: p.Description}, nil
	}

	return nil, apperrors.ErrInvalidRequestVariant
}

func (s *RequestService) ListMine(ctx context.Context, session *entities.Session) (*dto.MyRequestsDTO, error) {
	rows, err := s.requestRepo.ListByUser(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	notifications, err := s.notifier.Pending(ctx, session.UserID)
	if err != nil {
		s.logger.Warn("Не удалось получить уведомления", zap.Error(err))
		notifications = []entities.Notification{}
	}

	now := s.now()
	views := make([]dto.RequestViewDTO, 0, len(rows))
	for _, row := range rows {
		view := dto.RequestViewDTO{RequestDetails: row}
		if row.Resolved() {
			left := SecondsUntilRemoval(row.UpdatedAt, now, s.cfg.GracePeriod)
			view.ExpiresInSeconds = &left
		}
		views = append(views, view)
	}
	return &dto.MyRequestsDTO{Requests: views, Notifications: notifications}, nil
}

// SecondsUntilRemoval: сколько целых секунд осталось до удаления обработанной заявки.
func SecondsUntilRemoval(resolvedAt, now time.Time, grace time.Duration) int {
	left := resolvedAt.Add(grace).Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Seconds()))
}

func (s *RequestService) ListAll(ctx context.Context, filter types.Filter) ([]dto.AdminRequestDTO, uint64, error) {
	rows, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.AdminRequestDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.AdminRequestDTO{RequestDetails: row, CanApprove: CanApprove(row)})
	}
	return result, total, nil
}

// CanApprove: заявку можно одобрить: она в ожидании, а для ремонта на складе хватает единиц.
// Ремонт удалённого оборудования одобряется без движения по складу.
func CanApprove(r entities.RequestDetails) bool {
	if r.Status != constants.RequestStatusPending {
		return false
	}
	if r.Type != constants.RequestTypeRepair || !r.EquipmentID.Valid {
		return true
	}
	requested := 1
	if r.Quantity.Valid {
		requested = r.Quantity.Int
	}
	return r.EquipmentQuantity.Valid && r.EquipmentQuantity.Int >= requested
}
