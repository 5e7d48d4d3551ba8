package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sport-inventory/internal/entities"
	apperrors "sport-inventory/pkg/errors"
)

const categoriesTable = "equipment_categories"

type CategoryRepositoryInterface interface {
	List(ctx context.Context) ([]entities.CategoryWithCount, error)
	Find(ctx context.Context, id uuid.UUID) (*entities.Category, error)
	Create(ctx context.Context, name string) (*entities.Category, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, name string) (*entities.Category, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*entities.Category, error)
	DeleteInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

type CategoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCategoryRepository(storage *pgxpool.Pool, logger *zap.Logger) CategoryRepositoryInterface {
	return &CategoryRepository{storage: storage, logger: logger}
}

// List возвращает категории по алфавиту с количеством оборудования в каждой.
func (r *CategoryRepository) List(ctx context.Context) ([]entities.CategoryWithCount, error) {
	b := psql.Select("c.id", "c.name", "c.created_at", "c.updated_at", "COUNT(e.id) AS item_count").
		From(categoriesTable + " c").
		LeftJoin(equipmentTable + " e ON e.category_id = c.id").
		GroupBy("c.id").
		OrderBy("c.name ASC")
	return selectMany[entities.CategoryWithCount](ctx, r.storage, b)
}

func (r *CategoryRepository) Find(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	b := psql.Select("id", "name", "created_at", "updated_at").
		From(categoriesTable).
		Where("id = ?", id)
	return selectOne[entities.Category](ctx, r.storage, b)
}

func (r *CategoryRepository) Create(ctx context.Context, name string) (*entities.Category, error) {
	return r.create(ctx, r.storage, name)
}

func (r *CategoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, name string) (*entities.Category, error) {
	return r.create(ctx, tx, name)
}

func (r *CategoryRepository) create(ctx context.Context, q querier, name string) (*entities.Category, error) {
	now := time.Now()
	b := psql.Insert(categoriesTable).
		Columns("id", "name", "created_at", "updated_at").
		Values(uuid.New(), name, now, now).
		Suffix("RETURNING id, name, created_at, updated_at")
	c, err := selectOne[entities.Category](ctx, q, b)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать категорию: %w", err)
	}
	return c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id uuid.UUID, name string) (*entities.Category, error) {
	b := psql.Update(categoriesTable).
		Set("name", name).
		Set("updated_at", time.Now()).
		Where("id = ?", id).
		Suffix("RETURNING id, name, created_at, updated_at")
	return selectOne[entities.Category](ctx, r.storage, b)
}

// DeleteInTx удаляет саму категорию. Ссылки на неё из заявок и оборудования
// должны быть сняты в той же транзакции заранее.
func (r *CategoryRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	affected, err := exec(ctx, tx, psql.Delete(categoriesTable).Where("id = ?", id))
	if err != nil {
		return fmt.Errorf("не удалось удалить категорию: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
