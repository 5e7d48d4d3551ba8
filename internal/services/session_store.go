package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sport-inventory/internal/repositories"
	"sport-inventory/pkg/constants"
)

// SessionStoreInterface хранит активные сессии пользователей в кеше.
type SessionStoreInterface interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Exists(ctx context.Context, userID uuid.UUID, sessionID string) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID, sessionID string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

type SessionStore struct {
	cache  repositories.CacheRepositoryInterface
	ttl    time.Duration
	logger *zap.Logger
}

func NewSessionStore(cache repositories.CacheRepositoryInterface, ttl time.Duration, logger *zap.Logger) SessionStoreInterface {
	return &SessionStore{cache: cache, ttl: ttl, logger: logger}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf(constants.CacheKeySession, sessionID)
}

func userSessionsKey(userID uuid.UUID) string {
	return fmt.Sprintf(constants.CacheKeyUserSessions, userID)
}

func (s *SessionStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	sessionID := uuid.NewString()
	if err := s.cache.Set(ctx, sessionKey(sessionID), userID.String(), s.ttl); err != nil {
		return "", fmt.Errorf("не удалось сохранить сессию: %w", err)
	}
	if err := s.cache.SAdd(ctx, userSessionsKey(userID), sessionID); err != nil {
		return "", fmt.Errorf("не удалось сохранить сессию: %w", err)
	}
	if _, err := s.cache.Expire(ctx, userSessionsKey(userID), s.ttl); err != nil {
		s.logger.Warn("Не удалось продлить список сессий", zap.Error(err))
	}
	return sessionID, nil
}

func (s *SessionStore) Exists(ctx context.Context, userID uuid.UUID, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	owner, err := s.cache.Get(ctx, sessionKey(sessionID))
	if repositories.IsCacheMiss(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("не удалось прочитать сессию: %w", err)
	}
	return owner == userID.String(), nil
}

func (s *SessionStore) Revoke(ctx context.Context, userID uuid.UUID, sessionID string) error {
	if err := s.cache.Del(ctx, sessionKey(sessionID)); err != nil {
		return fmt.Errorf("не удалось завершить сессию: %w", err)
	}
	return s.cache.SRem(ctx, userSessionsKey(userID), sessionID)
}

// RevokeAll завершает все сессии пользователя.
func (s *SessionStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	ids, err := s.cache.SMembers(ctx, userSessionsKey(userID))
	if err != nil && !repositories.IsCacheMiss(err) {
		return fmt.Errorf("не удалось получить сессии пользователя: %w", err)
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, userSessionsKey(userID))
	if err := s.cache.Del(ctx, keys...); err != nil {
		return fmt.Errorf("не удалось завершить сессии пользователя: %w", err)
	}
	s.logger.Info("Все сессии пользователя завершены", zap.String("userID", userID.String()), zap.Int("count", len(ids)))
	return nil
}
