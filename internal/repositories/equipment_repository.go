package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sport-inventory/internal/entities"
	"sport-inventory/pkg/constants"
	apperrors "sport-inventory/pkg/errors"
	"sport-inventory/pkg/types"
)

const equipmentTable = "equipment"

var (
	equipmentColumns = []string{
		"e.id", "e.name", "e.quantity", "e.status", "e.category_id",
		"e.description", "e.owner", "e.created_at", "e.updated_at",
	}
	equipmentReturning     = "RETURNING id, name, quantity, status, category_id, description, owner, created_at, updated_at"
	equipmentAllowedSort   = map[string]string{"name": "e.name", "quantity": "e.quantity", "created_at": "e.created_at"}
	equipmentAllowedFilter = map[string]string{"status": "e.status", "category_id": "e.category_id"}
)

type EquipmentRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.EquipmentWithCategory, uint64, error)
	Find(ctx context.Context, id uuid.UUID) (*entities.EquipmentWithCategory, error)
	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Equipment, error)
	Create(ctx context.Context, e *entities.Equipment) (*entities.Equipment, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, e *entities.Equipment) (*entities.Equipment, error)
	Update(ctx context.Context, e *entities.Equipment) (*entities.Equipment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DecrementInUseInTx списывает n единиц с исправного оборудования; false, если остатка не хватило.
	DecrementInUseInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, n int) (bool, error)
	ClearCategoryInTx(ctx context.Context, tx pgx.Tx, categoryID uuid.UUID) (int64, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func (r *EquipmentRepository) baseSelect() sq.SelectBuilder {
	return psql.Select(append(equipmentColumns, "c.name AS category_name")...).
		From(equipmentTable + " e").
		LeftJoin(categoriesTable + " c ON c.id = e.category_id")
}

func applyEquipmentFilter(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		b = b.Where(sq.Or{sq.ILike{"e.name": pattern}, sq.ILike{"e.description": pattern}})
	}
	for key, value := range filter.Filter {
		if column, ok := equipmentAllowedFilter[key]; ok {
			b = b.Where(sq.Eq{column: value})
		}
	}
	if v, ok := filter.Filter["uncategorized"]; ok && fmt.Sprint(v) == "true" {
		b = b.Where(sq.Eq{"e.category_id": nil})
	}
	return b
}

func (r *EquipmentRepository) List(ctx context.Context, filter types.Filter) ([]entities.EquipmentWithCategory, uint64, error) {
	total, err := count(ctx, r.storage, applyEquipmentFilter(psql.Select("COUNT(*)").From(equipmentTable+" e"), filter))
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.EquipmentWithCategory{}, 0, nil
	}

	b := applyEquipmentFilter(r.baseSelect(), filter)
	b = applySort(b, filter, equipmentAllowedSort, "e.created_at DESC")
	items, err := selectMany[entities.EquipmentWithCategory](ctx, r.storage, applyPagination(b, filter))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *EquipmentRepository) Find(ctx context.Context, id uuid.UUID) (*entities.EquipmentWithCategory, error) {
	return selectOne[entities.EquipmentWithCategory](ctx, r.storage, r.baseSelect().Where("e.id = ?", id))
}

func (r *EquipmentRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Equipment, error) {
	b := psql.Select(equipmentColumns...).
		From(equipmentTable + " e").
		Where("e.id = ?", id).
		Suffix("FOR UPDATE")
	return selectOne[entities.Equipment](ctx, tx, b)
}

func (r *EquipmentRepository) Create(ctx context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	return r.create(ctx, r.storage, e)
}

func (r *EquipmentRepository) CreateInTx(ctx context.Context, tx pgx.Tx, e *entities.Equipment) (*entities.Equipment, error) {
	return r.create(ctx, tx, e)
}

func (r *EquipmentRepository) create(ctx context.Context, q querier, e *entities.Equipment) (*entities.Equipment, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now()
	b := psql.Insert(equipmentTable).
		Columns("id", "name", "quantity", "status", "category_id", "description", "owner", "created_at", "updated_at").
		Values(e.ID, e.Name, e.Quantity, e.Status, e.CategoryID, e.Description, e.Owner, now, now).
		Suffix(equipmentReturning)
	created, err := selectOne[entities.Equipment](ctx, q, b)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать оборудование: %w", err)
	}
	return created, nil
}

func (r *EquipmentRepository) Update(ctx context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	b := psql.Update(equipmentTable).
		Set("name", e.Name).
		Set("quantity", e.Quantity).
		Set("status", e.Status).
		Set("category_id", e.CategoryID).
		Set("description", e.Description).
		Set("owner", e.Owner).
		Set("updated_at", time.Now()).
		Where("id = ?", e.ID).
		Suffix(equipmentReturning)
	return selectOne[entities.Equipment](ctx, r.storage, b)
}

func (r *EquipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := exec(ctx, r.storage, psql.Delete(equipmentTable).Where("id = ?", id))
	if err != nil {
		return fmt.Errorf("не удалось удалить оборудование: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DecrementInUseInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, n int) (bool, error) {
	b := psql.Update(equipmentTable).
		Set("quantity", sq.Expr("quantity - ?", n)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id, "status": constants.EquipmentStatusInUse}).
		Where("quantity >= ?", n)
	affected, err := exec(ctx, tx, b)
	if err != nil {
		return false, fmt.Errorf("не удалось списать оборудование: %w", err)
	}
	return affected == 1, nil
}

func (r *EquipmentRepository) ClearCategoryInTx(ctx context.Context, tx pgx.Tx, categoryID uuid.UUID) (int64, error) {
	return exec(ctx, tx, psql.Update(equipmentTable).
		Set("category_id", nil).
		Where("category_id = ?", categoryID))
}
