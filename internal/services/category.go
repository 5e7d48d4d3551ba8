package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"sport-inventory/internal/entities"
	"sport-inventory/internal/repositories"
	"sport-inventory/pkg/constants"
	"sport-inventory/pkg/types"
)

type CategoryServiceInterface interface {
	List(ctx context.Context) ([]entities.CategoryWithCount, error)
	Create(ctx context.Context, name string) (*entities.Category, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*entities.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListEquipment(ctx context.Context, id uuid.UUID) ([]entities.EquipmentWithCategory, error)
}

type CategoryService struct {
	txManager     repositories.TxManagerInterface
	categoryRepo  repositories.CategoryRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	requestRepo   repositories.RequestRepositoryInterface
	views         *ViewCache
	logger        *zap.Logger
}

func NewCategoryService(
	txManager repositories.TxManagerInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	views *ViewCache,
	logger *zap.Logger,
) CategoryServiceInterface {
	return &CategoryService{
		txManager:     txManager,
		categoryRepo:  categoryRepo,
		equipmentRepo: equipmentRepo,
		requestRepo:   requestRepo,
		views:         views,
		logger:        logger,
	}
}

func (s *CategoryService) List(ctx context.Context) ([]entities.CategoryWithCount, error) {
	var cached []entities.CategoryWithCount
	if s.views.Load(ctx, constants.CacheKeyCategories, &cached) {
		return cached, nil
	}
	list, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.views.Store(ctx, constants.CacheKeyCategories, list)
	return list, nil
}

func (s *CategoryService) Create(ctx context.Context, name string) (*entities.Category, error) {
	c, err := s.categoryRepo.Create(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	s.views.Invalidate(ctx)
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, name string) (*entities.Category, error) {
	c, err := s.categoryRepo.Update(ctx, id, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	s.views.Invalidate(ctx)
	return c, nil
}

// Delete снимает ссылки на категорию с заявок и оборудования и удаляет её, всё в одной транзакции.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	var requests, items int64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		if requests, err = s.requestRepo.ClearCategoryInTx(ctx, tx, id); err != nil {
			return err
		}
		if items, err = s.equipmentRepo.ClearCategoryInTx(ctx, tx, id); err != nil {
			return err
		}
		return s.categoryRepo.DeleteInTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	s.views.Invalidate(ctx)
	s.logger.Info("Категория удалена",
		zap.String("categoryID", id.String()),
		zap.Int64("requests", requests),
		zap.Int64("equipment", items),
	)
	return nil
}

func (s *CategoryService) ListEquipment(ctx context.Context, id uuid.UUID) ([]entities.EquipmentWithCategory, error) {
	if _, err := s.categoryRepo.Find(ctx, id); err != nil {
		return nil, err
	}
	items, _, err := s.equipmentRepo.List(ctx, types.Filter{Filter: map[string]interface{}{"category_id": id}})
	return items, err
}
