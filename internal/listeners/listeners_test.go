package listeners

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sport-inventory/internal/entities"
	"sport-inventory/internal/events"
	"sport-inventory/internal/services"
	"sport-inventory/internal/testutil/cachemock"
	"sport-inventory/internal/testutil/pushermock"
	"sport-inventory/pkg/config"
	"sport-inventory/pkg/constants"
	"sport-inventory/pkg/eventbus"
)

func TestAuthStateListener_BlockRevokesSessions(t *testing.T) {
	ctx := context.Background()
	cache := cachemock.New()
	sessions := services.NewSessionStore(cache, time.Hour, zap.NewNop())
	bus := eventbus.New(zap.NewNop())
	NewAuthStateListener(cache, sessions, zap.NewNop()).Register(bus)

	userID := uuid.New()
	sid, err := sessions.Create(ctx, userID)
	require.NoError(t, err)
	roleKey := fmt.Sprintf(constants.CacheKeyRole, userID)
	require.NoError(t, cache.Set(ctx, roleKey, "user", time.Minute))

	bus.Publish(ctx, events.ProfileRoleChangedEvent{UserID: userID, Role: constants.RoleBlocked})
	bus.Wait()

	assert.False(t, cache.Has(roleKey))
	ok, err := sessions.Exists(ctx, userID, sid)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthStateListener_PromotionKeepsSessions(t *testing.T) {
	ctx := context.Background()
	cache := cachemock.New()
	sessions := services.NewSessionStore(cache, time.Hour, zap.NewNop())
	bus := eventbus.New(zap.NewNop())
	NewAuthStateListener(cache, sessions, zap.NewNop()).Register(bus)

	userID := uuid.New()
	sid, err := sessions.Create(ctx, userID)
	require.NoError(t, err)

	bus.Publish(ctx, events.ProfileRoleChangedEvent{UserID: userID, Role: constants.RoleAdmin})
	bus.Wait()

	ok, err := sessions.Exists(ctx, userID, sid)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRequestResolvedListener_NotifiesAuthor(t *testing.T) {
	cache := cachemock.New()
	pusher := &pushermock.Pusher{}
	cfg := config.LifecycleConfig{GracePeriod: 5 * time.Minute, NotificationTTL: 5 * time.Second}
	notifier := services.NewNotificationService(cache, pusher, cfg, time.Now, zap.NewNop())
	bus := eventbus.New(zap.NewNop())
	NewRequestResolvedListener(notifier, zap.NewNop()).Register(bus)

	req := entities.Request{ID: uuid.New(), Name: "Мяч", Status: constants.RequestStatusApproved, UserID: uuid.New()}
	bus.Publish(context.Background(), events.RequestResolvedEvent{Request: req})
	bus.Publish(context.Background(), events.RequestResolvedEvent{Request: req})
	bus.Wait()

	require.Equal(t, 1, pusher.Count())
	assert.Equal(t, req.UserID, pusher.Sent[0].UserID)
}
