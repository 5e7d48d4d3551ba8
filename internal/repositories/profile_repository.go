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
	"sport-inventory/pkg/types"
)

const profilesTable = "profiles"

type ProfileRepositoryInterface interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
	// Ensure создаёт профиль с ролью user, если его нет. Повторный вызов ничего не меняет.
	Ensure(ctx context.Context, id uuid.UUID) error
	EnsureInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	List(ctx context.Context, filter types.Filter) ([]entities.ProfileWithEmail, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role constants.Role) (*entities.Profile, error)
}

type ProfileRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewProfileRepository(storage *pgxpool.Pool, logger *zap.Logger) ProfileRepositoryInterface {
	return &ProfileRepository{storage: storage, logger: logger}
}

func (r *ProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	b := psql.Select("id", "role", "created_at", "updated_at").
		From(profilesTable).
		Where("id = ?", id)
	return selectOne[entities.Profile](ctx, r.storage, b)
}

func (r *ProfileRepository) Ensure(ctx context.Context, id uuid.UUID) error {
	return r.ensure(ctx, r.storage, id)
}

func (r *ProfileRepository) EnsureInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	return r.ensure(ctx, tx, id)
}

func (r *ProfileRepository) ensure(ctx context.Context, q querier, id uuid.UUID) error {
	b := psql.Insert(profilesTable).
		Columns("id", "role").
		Values(id, constants.RoleUser).
		Suffix("ON CONFLICT (id) DO NOTHING")
	if _, err := exec(ctx, q, b); err != nil {
		return fmt.Errorf("не удалось создать профиль: %w", err)
	}
	return nil
}

func (r *ProfileRepository) List(ctx context.Context, filter types.Filter) ([]entities.ProfileWithEmail, error) {
	b := psql.Select("p.id", "p.role", "p.created_at", "p.updated_at", "u.email").
		From(profilesTable + " p").
		Join(usersTable + " u ON u.id = p.id").
		OrderBy("p.created_at DESC")
	if filter.Search != "" {
		b = b.Where(sq.ILike{"u.email": searchPattern(filter.Search)})
	}
	if role, ok := filter.Filter["role"]; ok {
		b = b.Where(sq.Eq{"p.role": role})
	}
	return selectMany[entities.ProfileWithEmail](ctx, r.storage, applyPagination(b, filter))
}

func (r *ProfileRepository) UpdateRole(ctx context.Context, id uuid.UUID, role constants.Role) (*entities.Profile, error) {
	b := psql.Update(profilesTable).
		Set("role", role).
		Set("updated_at", time.Now()).
		Where("id = ?", id).
		Suffix("RETURNING id, role, created_at, updated_at")
	return selectOne[entities.Profile](ctx, r.storage, b)
}
