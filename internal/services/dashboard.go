package services

import (
	"context"

	"go.uber.org/zap"

	"sport-inventory/internal/dto"
	"sport-inventory/internal/entities"
	"sport-inventory/internal/repositories"
	"sport-inventory/pkg/constants"
	"sport-inventory/pkg/types"
)

const recentLimit = 3

type DashboardServiceInterface interface {
	Get(ctx context.Context) (*dto.DashboardDTO, error)
}

type DashboardService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	requestRepo   repositories.RequestRepositoryInterface
	views         *ViewCache
	logger        *zap.Logger
}

func NewDashboardService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	views *ViewCache,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{equipmentRepo: equipmentRepo, requestRepo: requestRepo, views: views, logger: logger}
}

func (s *DashboardService) Get(ctx context.Context) (*dto.DashboardDTO, error) {
	var cached dto.DashboardDTO
	if s.views.Load(ctx, constants.CacheKeyDashboard, &cached) {
		return &cached, nil
	}

	items, _, err := s.equipmentRepo.List(ctx, types.Filter{})
	if err != nil {
		return nil, err
	}
	purchases, err := s.requestRepo.ListApprovedPurchases(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	result := SummarizeEquipment(items)
	result.RecentPurchases = purchases
	s.views.Store(ctx, constants.CacheKeyDashboard, result)
	return result, nil
}

// SummarizeEquipment считает позиции по статусам и выбирает недавние и сломанные.
// items должны быть отсортированы от новых к старым.
func SummarizeEquipment(items []entities.EquipmentWithCategory) *dto.DashboardDTO {
	result := &dto.DashboardDTO{
		RecentItems:     []entities.EquipmentWithCategory{},
		BrokenItems:     []entities.EquipmentWithCategory{},
		RecentPurchases: []entities.RequestDetails{},
	}
	result.Total = len(items)
	for _, item := range items {
		switch item.Status {
		case constants.EquipmentStatusNew:
			result.New++
		case constants.EquipmentStatusInUse:
			result.InUse++
		case constants.EquipmentStatusBroken:
			result.Broken++
			result.BrokenItems = append(result.BrokenItems, item)
		}
		if len(result.RecentItems) < recentLimit {
			result.RecentItems = append(result.RecentItems, item)
		}
	}
	return result
}
