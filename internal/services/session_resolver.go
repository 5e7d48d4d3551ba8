package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"sport-inventory/internal/entities"
	"sport-inventory/internal/repositories"
	"sport-inventory/pkg/config"
	"sport-inventory/pkg/constants"
	apperrors "sport-inventory/pkg/errors"
	"sport-inventory/pkg/metrics"
)

type SessionResolverInterface interface {
	Resolve(ctx context.Context, userID uuid.UUID, sessionID string) (*entities.Session, error)
	ResolveRole(ctx context.Context, userID uuid.UUID) constants.Role
}

type SessionResolver struct {
	userRepo    repositories.UserRepositoryInterface
	profileRepo repositories.ProfileRepositoryInterface
	sessions    SessionStoreInterface
	cacheRepo   repositories.CacheRepositoryInterface
	cfg         config.AuthConfig
	logger      *zap.Logger
}

func NewSessionResolver(
	userRepo repositories.UserRepositoryInterface,
	profileRepo repositories.ProfileRepositoryInterface,
	sessions SessionStoreInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cfg config.AuthConfig,
	logger *zap.Logger,
) *SessionResolver {
	return &SessionResolver{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		sessions:    sessions,
		cacheRepo:   cacheRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

// Resolve проверяет, что сессия жива, и собирает контекст пользователя с ролью.
// Заблокированный пользователь теряет все сессии и получает ErrAccountBlocked.
func (s *SessionResolver) Resolve(ctx context.Context, userID uuid.UUID, sessionID string) (*entities.Session, error) {
	ok, err := s.sessions.Exists(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	role := s.ResolveRole(ctx, userID)
	if role == constants.RoleBlocked {
		if err := s.sessions.RevokeAll(ctx, userID); err != nil {
			s.logger.Error("Не удалось завершить сессии заблокированного пользователя", zap.Error(err))
		}
		return nil, apperrors.ErrAccountBlocked
	}

	return entities.NewSession(user.ID, user.Email, sessionID, role), nil
}

// ResolveRole читает роль из кеша или из профиля. Отсутствующий профиль создаётся с ролью user.
// При сбоях чтение повторяется с линейно растущей задержкой; если все попытки
// неудачны, возвращается user.
func (s *SessionResolver) ResolveRole(ctx context.Context, userID uuid.UUID) constants.Role {
	cacheKey := fmt.Sprintf(constants.CacheKeyRole, userID)
	if cached, err := s.cacheRepo.Get(ctx, cacheKey); err == nil && constants.Role(cached).Valid() {
		return constants.Role(cached)
	}

	var role constants.Role
	attempt := 0
	err := retry.Do(ctx, roleBackoff(s.cfg.RoleRetryDelay, s.cfg.RoleRetries), func(ctx context.Context) error {
		attempt++
		r, err := s.lookupRole(ctx, userID)
		if err != nil {
			s.logger.Warn("Ошибка чтения роли",
				zap.String("userID", userID.String()),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			metrics.RoleLookupRetries.Inc()
			return retry.RetryableError(err)
		}
		role = r
		return nil
	})
	if err != nil {
		s.logger.Error("Роль не получена, выдаётся роль по умолчанию",
			zap.String("userID", userID.String()),
			zap.Error(err),
		)
		metrics.RoleLookupFallbacks.Inc()
		return constants.RoleUser
	}

	if err := s.cacheRepo.Set(ctx, cacheKey, string(role), s.cfg.RoleCacheTTL); err != nil {
		s.logger.Warn("Не удалось закешировать роль", zap.Error(err))
	}
	return role
}

func (s *SessionResolver) lookupRole(ctx context.Context, userID uuid.UUID) (constants.Role, error) {
	profile, err := s.profileRepo.FindByID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		if err := s.profileRepo.Ensure(ctx, userID); err != nil {
			return "", err
		}
		return constants.RoleUser, nil
	}
	if err != nil {
		return "", err
	}
	return profile.Role, nil
}

// roleBackoff даёт задержки base, 2*base, 3*base ... не более retries повторов.
func roleBackoff(base time.Duration, retries uint64) retry.Backoff {
	var n int64
	linear := retry.BackoffFunc(func() (time.Duration, bool) {
		n++
		return time.Duration(n) * base, false
	})
	return retry.WithMaxRetries(retries, linear)
}
