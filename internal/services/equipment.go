package services

import (
	"context"
	"sort"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sport-inventory/internal/dto"
	"sport-inventory/internal/entities"
	"sport-inventory/internal/repositories"
	"sport-inventory/pkg/constants"
	"sport-inventory/pkg/types"
)

const uncategorizedName = "Без категории"

type EquipmentServiceInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.EquipmentWithCategory, uint64, error)
	Grouped(ctx context.Context, search string) ([]dto.EquipmentGroupDTO, error)
	Create(ctx context.Context, payload dto.EquipmentDTO) (*entities.Equipment, error)
	Update(ctx context.Context, id uuid.UUID, payload dto.EquipmentDTO) (*entities.Equipment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	views         *ViewCache
	logger        *zap.Logger
}

func NewEquipmentService(equipmentRepo repositories.EquipmentRepositoryInterface, views *ViewCache, logger *zap.Logger) EquipmentServiceInterface {
	return &EquipmentService{equipmentRepo: equipmentRepo, views: views, logger: logger}
}

func (s *EquipmentService) List(ctx context.Context, filter types.Filter) ([]entities.EquipmentWithCategory, uint64, error) {
	return s.equipmentRepo.List(ctx, filter)
}

func (s *EquipmentService) Grouped(ctx context.Context, search string) ([]dto.EquipmentGroupDTO, error) {
	items, _, err := s.equipmentRepo.List(ctx, types.Filter{Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, err
	}
	return GroupByCategory(items), nil
}

// GroupByCategory раскладывает оборудование по категориям в алфавитном порядке.
// Пустые категории не попадают в результат, оборудование без категории идёт последним.
func GroupByCategory(items []entities.EquipmentWithCategory) []dto.EquipmentGroupDTO {
	byCategory := make(map[uuid.UUID]*dto.EquipmentGroupDTO)
	var uncategorized *dto.EquipmentGroupDTO

	for _, item := range items {
		if !item.CategoryID.Valid {
			if uncategorized == nil {
				uncategorized = &dto.EquipmentGroupDTO{CategoryName: uncategorizedName}
			}
			uncategorized.Items = append(uncategorized.Items, item)
			continue
		}
		group, ok := byCategory[item.CategoryID.UUID]
		if !ok {
			group = &dto.EquipmentGroupDTO{CategoryID: item.CategoryID, CategoryName: item.CategoryName.String}
			byCategory[item.CategoryID.UUID] = group
		}
		group.Items = append(group.Items, item)
	}

	groups := make([]dto.EquipmentGroupDTO, 0, len(byCategory)+1)
	for _, g := range byCategory {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].CategoryName < groups[j].CategoryName })
	if uncategorized != nil {
		groups = append(groups, *uncategorized)
	}
	return groups
}

func (s *EquipmentService) Create(ctx context.Context, payload dto.EquipmentDTO) (*entities.Equipment, error) {
	created, err := s.equipmentRepo.Create(ctx, equipmentFromDTO(uuid.Nil, payload))
	if err != nil {
		return nil, err
	}
	s.views.Invalidate(ctx)
	s.logger.Info("Добавлено оборудование", zap.String("equipmentID", created.ID.String()))
	return created, nil
}

func (s *EquipmentService) Update(ctx context.Context, id uuid.UUID, payload dto.EquipmentDTO) (*entities.Equipment, error) {
	updated, err := s.equipmentRepo.Update(ctx, equipmentFromDTO(id, payload))
	if err != nil {
		return nil, err
	}
	s.views.Invalidate(ctx)
	return updated, nil
}

func (s *EquipmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.equipmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.views.Invalidate(ctx)
	s.logger.Info("Удалено оборудование", zap.String("equipmentID", id.String()))
	return nil
}

func equipmentFromDTO(id uuid.UUID, p dto.EquipmentDTO) *entities.Equipment {
	e := &entities.Equipment{
		ID:          id,
		Name:        strings.TrimSpace(p.Name),
		Status:      constants.EquipmentStatus(p.Status),
		Description: null.NewString(p.Description, strings.TrimSpace(p.Description) != ""),
		Owner:       null.NewString(p.Owner, strings.TrimSpace(p.Owner) != ""),
	}
	if p.Quantity != nil {
		e.Quantity = *p.Quantity
	}
	if p.CategoryID != nil {
		e.CategoryID = uuid.NullUUID{UUID: *p.CategoryID, Valid: true}
	}
	return e
}
