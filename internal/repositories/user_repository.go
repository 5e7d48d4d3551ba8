package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sport-inventory/internal/entities"
	apperrors "sport-inventory/pkg/errors"
)

const usersTable = "users"

type UserRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, user *entities.User) error
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func (r *UserRepository) CreateInTx(ctx context.Context, tx pgx.Tx, user *entities.User) error {
	b := psql.Insert(usersTable).
		Columns("id", "email", "password_hash", "created_at").
		Values(user.ID, strings.ToLower(user.Email), user.PasswordHash, user.CreatedAt)
	if _, err := exec(ctx, tx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("не удалось создать пользователя: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	b := psql.Select("id", "email", "password_hash", "created_at").
		From(usersTable).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email)))
	return selectOne[entities.User](ctx, r.storage, b)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	b := psql.Select("id", "email", "password_hash", "created_at").
		From(usersTable).
		Where("id = ?", id)
	return selectOne[entities.User](ctx, r.storage, b)
}
