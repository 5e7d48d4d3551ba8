package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sport-inventory/internal/events"
	"sport-inventory/internal/services"
	"sport-inventory/pkg/eventbus"
)

// RequestResolvedListener уведомляет автора сразу после решения по заявке,
// не дожидаясь очередного прохода планировщика.
type RequestResolvedListener struct {
	notifier services.NotificationServiceInterface
	logger   *zap.Logger
}

func NewRequestResolvedListener(notifier services.NotificationServiceInterface, logger *zap.Logger) *RequestResolvedListener {
	return &RequestResolvedListener{notifier: notifier, logger: logger}
}

func (l *RequestResolvedListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.RequestResolved, l.handle)
}

func (l *RequestResolvedListener) handle(ctx context.Context, e eventbus.Event) error {
	event, ok := e.(events.RequestResolvedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", e)
	}
	req := event.Request
	_, err := l.notifier.NotifyResolved(ctx, &req)
	return err
}
