package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"sport-inventory/internal/services"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler периодически удаляет обработанные заявки и рассылает уведомления о решениях.
type Scheduler struct {
	cron    *cron.Cron
	sweeper services.SweeperInterface
	logger  *zap.Logger
	timeout time.Duration
}

func New(sweeper services.SweeperInterface, interval time.Duration, logger *zap.Logger) (*Scheduler, error) {
	if interval < time.Second {
		return nil, fmt.Errorf("интервал планировщика должен быть не меньше секунды: %s", interval)
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithParser(cronParser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sweeper: sweeper,
		logger:  logger,
		timeout: interval,
	}

	schedule := fmt.Sprintf("@every %s", interval)
	if _, err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return nil, fmt.Errorf("не удалось зарегистрировать задачу очистки: %w", err)
	}
	if _, err := s.cron.AddFunc(schedule, s.notify); err != nil {
		return nil, fmt.Errorf("не удалось зарегистрировать задачу уведомлений: %w", err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Планировщик запущен", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop останавливает планировщик и ждёт завершения запущенных задач.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Планировщик остановлен")
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.sweeper.Sweep(ctx); err != nil {
		s.logger.Error("Ошибка очистки обработанных заявок", zap.Error(err))
	}
}

func (s *Scheduler) notify() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.sweeper.NotifyRecent(ctx); err != nil {
		s.logger.Error("Ошибка рассылки уведомлений", zap.Error(err))
	}
}
