package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"sport-inventory/internal/repositories"
	"sport-inventory/pkg/constants"
)

// ViewCache хранит в кеше производные представления (дашборд, категории, закупки)
// и сбрасывает их после изменений данных.
type ViewCache struct {
	cacheRepo repositories.CacheRepositoryInterface
	ttl       time.Duration
	logger    *zap.Logger
}

func NewViewCache(cacheRepo repositories.CacheRepositoryInterface, ttl time.Duration, logger *zap.Logger) *ViewCache {
	return &ViewCache{cacheRepo: cacheRepo, ttl: ttl, logger: logger}
}

// Load читает значение в dst; false, если значения нет или оно повреждено.
func (v *ViewCache) Load(ctx context.Context, key string, dst interface{}) bool {
	raw, err := v.cacheRepo.Get(ctx, key)
	if err != nil {
		if !repositories.IsCacheMiss(err) {
			v.logger.Warn("Ошибка чтения кеша", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return json.Unmarshal([]byte(raw), dst) == nil
}

func (v *ViewCache) Store(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := v.cacheRepo.Set(ctx, key, raw, v.ttl); err != nil {
		v.logger.Warn("Ошибка записи кеша", zap.String("key", key), zap.Error(err))
	}
}

func (v *ViewCache) Invalidate(ctx context.Context) {
	err := v.cacheRepo.Del(ctx, constants.CacheKeyDashboard, constants.CacheKeyCategories, constants.CacheKeyApprovedPurchase)
	if err != nil {
		v.logger.Warn("Не удалось сбросить кеш представлений", zap.Error(err))
	}
}
