package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"sport-inventory/internal/entities"
	"sport-inventory/internal/events"
	"sport-inventory/internal/repositories"
	"sport-inventory/pkg/constants"
	apperrors "sport-inventory/pkg/errors"
	"sport-inventory/pkg/eventbus"
	"sport-inventory/pkg/metrics"
)

type ApprovalServiceInterface interface {
	Resolve(ctx context.Context, requestID uuid.UUID, target constants.RequestStatus) (*entities.Request, error)
}

type ApprovalService struct {
	txManager        repositories.TxManagerInterface
	requestRepo      repositories.RequestRepositoryInterface
	equipmentRepo    repositories.EquipmentRepositoryInterface
	categoryRepo     repositories.CategoryRepositoryInterface
	priceHistoryRepo repositories.PriceHistoryRepositoryInterface
	views            *ViewCache
	bus              *eventbus.Bus
	now              func() time.Time
	logger           *zap.Logger
}

func NewApprovalService(
	txManager repositories.TxManagerInterface,
	requestRepo repositories.RequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	priceHistoryRepo repositories.PriceHistoryRepositoryInterface,
	views *ViewCache,
	bus *eventbus.Bus,
	now func() time.Time,
	logger *zap.Logger,
) ApprovalServiceInterface {
	return &ApprovalService{
		txManager:        txManager,
		requestRepo:      requestRepo,
		equipmentRepo:    equipmentRepo,
		categoryRepo:     categoryRepo,
		priceHistoryRepo: priceHistoryRepo,
		views:            views,
		bus:              bus,
		now:              now,
		logger:           logger,
	}
}

// Resolve переводит заявку из pending в target и применяет последствия одобрения.
// Смена статуса и все побочные записи выполняются в одной транзакции.
func (s *ApprovalService) Resolve(ctx context.Context, requestID uuid.UUID, target constants.RequestStatus) (*entities.Request, error) {
	if !target.Resolved() {
		return nil, apperrors.ErrInvalidStatus
	}
	logger := s.logger.With(zap.String("requestID", requestID.String()), zap.String("status", string(target)))

	var resolved *entities.Request
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.requestRepo.FindForUpdateInTx(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if req.Status != constants.RequestStatusPending {
			return apperrors.ErrRequestAlreadyResolved
		}

		at := s.now()
		ok, err := s.requestRepo.ResolveInTx(ctx, tx, req.ID, target, at)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrRequestAlreadyResolved
		}
		req.Status = target
		req.UpdatedAt = at

		if target == constants.RequestStatusApproved {
			if err := s.applyApproval(ctx, tx, req, at); err != nil {
				return err
			}
		}
		resolved = req
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrRequestAlreadyResolved) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Заявка не обработана", zap.Error(err))
		}
		return nil, err
	}

	metrics.RequestsResolved.WithLabelValues(string(resolved.Type), string(resolved.Status)).Inc()
	logger.Info("Заявка обработана", zap.String("type", string(resolved.Type)))
	s.views.Invalidate(ctx)
	s.bus.Publish(ctx, events.RequestResolvedEvent{Request: *resolved})
	return resolved, nil
}

func (s *ApprovalService) applyApproval(ctx context.Context, tx pgx.Tx, req *entities.Request, at time.Time) error {
	variant, err := req.Variant()
	if err != nil {
		return err
	}

	switch v := variant.(type) {
	case entities.RepairRequest:
		if !v.EquipmentID.Valid {
			// оборудование удалено после подачи заявки, списывать нечего
			return nil
		}
		source, err := s.equipmentRepo.FindForUpdateInTx(ctx, tx, v.EquipmentID.UUID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInsufficientStock
		}
		if err != nil {
			return err
		}
		ok, err := s.equipmentRepo.DecrementInUseInTx(ctx, tx, source.ID, v.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrInsufficientStock
		}
		description := v.Description
		if strings.TrimSpace(description) == "" {
			description = fmt.Sprintf("Сломанные единицы из «%s»", source.Name)
		}
		_, err = s.equipmentRepo.CreateInTx(ctx, tx, &entities.Equipment{
			Name:        source.Name,
			Description: null.StringFrom(description),
			Owner:       source.Owner,
			CategoryID:  source.CategoryID,
			Quantity:    v.Quantity,
			Status:      constants.EquipmentStatusBroken,
		})
		return err

	case entities.ItemRequest:
		_, err := s.equipmentRepo.CreateInTx(ctx, tx, &entities.Equipment{
			Name:        v.Name,
			Description: null.NewString(v.Description, v.Description != ""),
			CategoryID:  v.CategoryID,
			Quantity:    v.Quantity,
			Status:      constants.EquipmentStatusNew,
		})
		return err

	case entities.CategoryRequest:
		_, err := s.categoryRepo.CreateInTx(ctx, tx, v.Name)
		return err

	case entities.PurchaseRequest:
		return s.priceHistoryRepo.CreateInTx(ctx, tx, &entities.PriceHistory{
			RequestID:  req.ID,
			Price:      v.BestPrice,
			Seller:     v.Seller,
			RecordedAt: at,
		})
	}
	return apperrors.ErrInvalidRequestVariant
}
