package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sport-inventory/internal/events"
	"sport-inventory/internal/repositories"
	"sport-inventory/internal/services"
	"sport-inventory/pkg/constants"
	"sport-inventory/pkg/eventbus"
)

// AuthStateListener сбрасывает закешированную роль при смене роли или выходе
// и завершает сессии пользователя, которого заблокировали.
type AuthStateListener struct {
	cacheRepo repositories.CacheRepositoryInterface
	sessions  services.SessionStoreInterface
	logger    *zap.Logger
}

func NewAuthStateListener(cacheRepo repositories.CacheRepositoryInterface, sessions services.SessionStoreInterface, logger *zap.Logger) *AuthStateListener {
	return &AuthStateListener{cacheRepo: cacheRepo, sessions: sessions, logger: logger}
}

func (l *AuthStateListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.ProfileRoleChanged, l.handleRoleChanged)
	bus.Subscribe(events.SignedOut, l.handleSignedOut)
}

func (l *AuthStateListener) handleRoleChanged(ctx context.Context, e eventbus.Event) error {
	event, ok := e.(events.ProfileRoleChangedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", e)
	}
	if err := l.cacheRepo.Del(ctx, fmt.Sprintf(constants.CacheKeyRole, event.UserID)); err != nil {
		return err
	}
	if event.Role == constants.RoleBlocked {
		return l.sessions.RevokeAll(ctx, event.UserID)
	}
	return nil
}

func (l *AuthStateListener) handleSignedOut(ctx context.Context, e eventbus.Event) error {
	event, ok := e.(events.SignedOutEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", e)
	}
	l.logger.Debug("Пользователь вышел", zap.String("userID", event.UserID.String()))
	return l.cacheRepo.Del(ctx, fmt.Sprintf(constants.CacheKeyRole, event.UserID))
}
