package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	"github.com/m04kA/SPS-AvailabilityService/pkg/metrics"
)

const cacheName = "availability"

// Cache кеш результатов расчёта доступности в Redis.
// Ключ availability:{tenantId}:{packageId}:{YYYY-MM-DD}, TTL фиксированный.
// Пути мутации бронирований удаляют ключ затронутого дня, но корректность
// ограничена TTL, а не фактом инвалидации.
type Cache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewCache создает кеш доступности с заданным TTL.
// Коллектор метрик может быть nil, если метрики выключены.
func NewCache(client *redis.Client, ttl time.Duration, m *metrics.Metrics) *Cache {
	return &Cache{client: client, ttl: ttl, metrics: m}
}

// Get возвращает закешированную доступность дня или ErrCacheMiss.
// Любая другая ошибка означает деградацию кеша: вызывающая сторона
// пересчитывает результат напрямую.
func (c *Cache) Get(ctx context.Context, tenantID, packageID int64, date time.Time) (*domain.DayAvailability, error) {
	key := buildKey(tenantID, packageID, date)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.metrics.IncCacheOperation(cacheName, "get", metrics.CacheResultMiss)
		return nil, ErrCacheMiss
	}
	if err != nil {
		c.metrics.IncCacheOperation(cacheName, "get", metrics.CacheResultError)
		return nil, fmt.Errorf("%w: Get - read %s: %v", ErrExecCommand, key, err)
	}

	var payload dayPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.metrics.IncCacheOperation(cacheName, "get", metrics.CacheResultError)
		return nil, fmt.Errorf("%w: Get - decode %s: %v", ErrDecodePayload, key, err)
	}

	day, err := payload.toDomain()
	if err != nil {
		c.metrics.IncCacheOperation(cacheName, "get", metrics.CacheResultError)
		return nil, fmt.Errorf("%w: Get - restore %s: %v", ErrDecodePayload, key, err)
	}

	c.metrics.IncCacheOperation(cacheName, "get", metrics.CacheResultHit)
	return day, nil
}

// Set сохраняет доступность дня с TTL кеша
func (c *Cache) Set(ctx context.Context, day *domain.DayAvailability) error {
	key := buildKey(day.TenantID, day.PackageID, day.Date)

	data, err := json.Marshal(fromDomain(day))
	if err != nil {
		c.metrics.IncCacheOperation(cacheName, "set", metrics.CacheResultError)
		return fmt.Errorf("%w: Set - encode %s: %v", ErrEncodePayload, key, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.metrics.IncCacheOperation(cacheName, "set", metrics.CacheResultError)
		return fmt.Errorf("%w: Set - write %s: %v", ErrExecCommand, key, err)
	}

	c.metrics.IncCacheOperation(cacheName, "set", metrics.CacheResultOK)
	return nil
}

// Delete удаляет доступность дня после мутации бронирований
func (c *Cache) Delete(ctx context.Context, tenantID, packageID int64, date time.Time) error {
	key := buildKey(tenantID, packageID, date)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.metrics.IncCacheOperation(cacheName, "delete", metrics.CacheResultError)
		return fmt.Errorf("%w: Delete - del %s: %v", ErrExecCommand, key, err)
	}

	c.metrics.IncCacheOperation(cacheName, "delete", metrics.CacheResultOK)
	return nil
}

func buildKey(tenantID, packageID int64, date time.Time) string {
	return fmt.Sprintf("availability:%d:%d:%s", tenantID, packageID, date.UTC().Format(domain.DateFormat))
}
