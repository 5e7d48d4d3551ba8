package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sport-inventory/internal/entities"
	"sport-inventory/internal/repositories"
	"sport-inventory/pkg/config"
	"sport-inventory/pkg/constants"
	"sport-inventory/pkg/metrics"
	"sport-inventory/pkg/websocket"
)

// Pusher доставляет сообщение в открытые соединения пользователя.
type Pusher interface {
	SendMessageToUser(userID uuid.UUID, payload interface{}, messageType string) error
}

type NotificationServiceInterface interface {
	// NotifyResolved создаёт уведомление о решении, если по этой паре заявка+статус его ещё не было.
	NotifyResolved(ctx context.Context, req *entities.Request) (bool, error)
	Pending(ctx context.Context, userID uuid.UUID) ([]entities.Notification, error)
}

type NotificationService struct {
	cacheRepo repositories.CacheRepositoryInterface
	pusher    Pusher
	cfg       config.LifecycleConfig
	now       func() time.Time
	logger    *zap.Logger
}

func NewNotificationService(
	cacheRepo repositories.CacheRepositoryInterface,
	pusher Pusher,
	cfg config.LifecycleConfig,
	now func() time.Time,
	logger *zap.Logger,
) NotificationServiceInterface {
	return &NotificationService{cacheRepo: cacheRepo, pusher: pusher, cfg: cfg, now: now, logger: logger}
}

func (s *NotificationService) NotifyResolved(ctx context.Context, req *entities.Request) (bool, error) {
	if !req.Resolved() {
		return false, nil
	}

	// Отметка живёт столько же, сколько заявка после решения.
	markKey := fmt.Sprintf(constants.CacheKeyNotified, req.ID, req.Status)
	created, err := s.cacheRepo.SetNX(ctx, markKey, 1, s.cfg.GracePeriod)
	if err != nil {
		return false, fmt.Errorf("не удалось отметить уведомление: %w", err)
	}
	if !created {
		return false, nil
	}

	n := entities.NewResolutionNotification(req, s.now(), s.cfg.NotificationTTL)
	raw, err := json.Marshal(n)
	if err != nil {
		return false, err
	}
	if err := s.cacheRepo.Set(ctx, fmt.Sprintf(constants.CacheKeyNotification, n.UserID, n.ID), raw, s.cfg.NotificationTTL); err != nil {
		return false, fmt.Errorf("не удалось сохранить уведомление: %w", err)
	}
	listKey := fmt.Sprintf(constants.CacheKeyUserNotifications, n.UserID)
	if err := s.cacheRepo.SAdd(ctx, listKey, n.ID); err != nil {
		return false, fmt.Errorf("не удалось сохранить уведомление: %w", err)
	}
	_, _ = s.cacheRepo.Expire(ctx, listKey, s.cfg.GracePeriod)

	if err := s.pusher.SendMessageToUser(n.UserID, n, websocket.MessageTypeNotification); err != nil {
		s.logger.Warn("Не удалось отправить уведомление по WebSocket", zap.Error(err))
	}
	metrics.NotificationsSent.WithLabelValues(string(n.Kind)).Inc()
	s.logger.Debug("Уведомление создано", zap.String("notificationID", n.ID))
	return true, nil
}

// Pending возвращает неистёкшие уведомления пользователя в порядке создания.
func (s *NotificationService) Pending(ctx context.Context, userID uuid.UUID) ([]entities.Notification, error) {
	listKey := fmt.Sprintf(constants.CacheKeyUserNotifications, userID)
	ids, err := s.cacheRepo.SMembers(ctx, listKey)
	if err != nil && !repositories.IsCacheMiss(err) {
		return nil, err
	}

	now := s.now()
	result := make([]entities.Notification, 0, len(ids))
	for _, id := range ids {
		raw, err := s.cacheRepo.Get(ctx, fmt.Sprintf(constants.CacheKeyNotification, userID, id))
		if repositories.IsCacheMiss(err) {
			_ = s.cacheRepo.SRem(ctx, listKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		var n entities.Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			s.logger.Warn("Повреждённое уведомление в кеше", zap.String("id", id), zap.Error(err))
			continue
		}
		if n.Expired(now) {
			_ = s.cacheRepo.SRem(ctx, listKey, id)
			continue
		}
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}
