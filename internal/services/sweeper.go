package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"sport-inventory/internal/repositories"
	"sport-inventory/pkg/config"
	"sport-inventory/pkg/metrics"
)

type SweeperInterface interface {
	// Sweep удаляет заявки, обработанные раньше окна ожидания.
	Sweep(ctx context.Context) (int64, error)
	// NotifyRecent уведомляет авторов заявок, обработанных в пределах окна.
	NotifyRecent(ctx context.Context) (int, error)
}

type Sweeper struct {
	requestRepo repositories.RequestRepositoryInterface
	notifier    NotificationServiceInterface
	views       *ViewCache
	cfg         config.LifecycleConfig
	now         func() time.Time
	logger      *zap.Logger
}

func NewSweeper(
	requestRepo repositories.RequestRepositoryInterface,
	notifier NotificationServiceInterface,
	views *ViewCache,
	cfg config.LifecycleConfig,
	now func() time.Time,
	logger *zap.Logger,
) SweeperInterface {
	return &Sweeper{requestRepo: requestRepo, notifier: notifier, views: views, cfg: cfg, now: now, logger: logger}
}

func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	deleted, err := s.requestRepo.DeleteResolvedBefore(ctx, s.now().Add(-s.cfg.GracePeriod))
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		metrics.RequestsSwept.Add(float64(deleted))
		// удалённые закупки не должны оставаться в дашборде и сводке
		s.views.Invalidate(ctx)
		s.logger.Info("Удалены обработанные заявки", zap.Int64("count", deleted))
	}
	return deleted, nil
}

func (s *Sweeper) NotifyRecent(ctx context.Context) (int, error) {
	resolved, err := s.requestRepo.ListResolvedSince(ctx, s.now().Add(-s.cfg.GracePeriod))
	if err != nil {
		return 0, err
	}
	sent := 0
	for i := range resolved {
		ok, err := s.notifier.NotifyResolved(ctx, &resolved[i])
		if err != nil {
			s.logger.Warn("Уведомление не создано", zap.String("requestID", resolved[i].ID.String()), zap.Error(err))
			continue
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}
