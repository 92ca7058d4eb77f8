package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/config"
)

// Ключи кэша занятости
const (
	bookedSlotsKeyPrefix     = "availability:date:"
	availabilityMapKeyPrefix = "availability:from:"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// NewRedisClient создает клиент Redis на основе конфигурации
func NewRedisClient(cfg config.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("cache: failed to ping redis: %w", err)
	}
	return nil
}

// AvailabilityCache advisory-кэш занятости слотов с коротким TTL.
// Источник истины - всегда БД: кэш обслуживает только путь чтения,
// путь записи его не смотрит. Любая ошибка Redis трактуется как промах
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// NewAvailabilityCache создает кэш занятости
func NewAvailabilityCache(client *redis.Client, ttl time.Duration, log Logger) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl, log: log}
}

// GetBookedSlots возвращает закэшированные занятые слоты на дату
// Второй результат false означает промах
func (c *AvailabilityCache) GetBookedSlots(ctx context.Context, date string) ([]string, bool) {
	raw, err := c.client.Get(ctx, bookedSlotsKeyPrefix+date).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache: GetBookedSlots redis error: %v", err)
		}
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.log.Warn("cache: GetBookedSlots corrupt payload: %v", err)
		return nil, false
	}

	return slots, true
}

// SetBookedSlots сохраняет занятые слоты на дату
func (c *AvailabilityCache) SetBookedSlots(ctx context.Context, date string, slots []string) {
	raw, err := json.Marshal(slots)
	if err != nil {
		c.log.Warn("cache: SetBookedSlots marshal error: %v", err)
		return
	}

	if err := c.client.Set(ctx, bookedSlotsKeyPrefix+date, raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache: SetBookedSlots redis error: %v", err)
	}
}

// GetAvailabilityMap возвращает закэшированную карту занятости от даты
func (c *AvailabilityCache) GetAvailabilityMap(ctx context.Context, fromDate string) (map[string][]string, bool) {
	raw, err := c.client.Get(ctx, availabilityMapKeyPrefix+fromDate).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache: GetAvailabilityMap redis error: %v", err)
		}
		return nil, false
	}

	var m map[string][]string
	if err := json.Unmarshal(raw, &m); err != nil {
		c.log.Warn("cache: GetAvailabilityMap corrupt payload: %v", err)
		return nil, false
	}

	return m, true
}

// SetAvailabilityMap сохраняет карту занятости от даты
func (c *AvailabilityCache) SetAvailabilityMap(ctx context.Context, fromDate string, m map[string][]string) {
	raw, err := json.Marshal(m)
	if err != nil {
		c.log.Warn("cache: SetAvailabilityMap marshal error: %v", err)
		return
	}

	if err := c.client.Set(ctx, availabilityMapKeyPrefix+fromDate, raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache: SetAvailabilityMap redis error: %v", err)
	}
}
