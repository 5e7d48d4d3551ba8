package services

import (
	"time"

	"go.uber.org/zap"

	"sport-inventory/internal/testutil/cachemock"
	"sport-inventory/pkg/config"
	"sport-inventory/pkg/eventbus"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testLifecycle() config.LifecycleConfig {
	return config.LifecycleConfig{
		GracePeriod:     5 * time.Minute,
		NotificationTTL: 5 * time.Second,
		SweepInterval:   5 * time.Second,
	}
}

func newTestViews() (*ViewCache, *cachemock.Cache) {
	cache := cachemock.New()
	return NewViewCache(cache, time.Minute, zap.NewNop()), cache
}

func newTestBus() *eventbus.Bus {
	return eventbus.New(zap.NewNop())
}
