// Package cache хранит JSON-снимки публичных списков каталога в redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/shop-backend/internal/config"
)

// Cache — кеш поверх клиента redis.
type Cache struct {
	Db *redis.Client
}

// InitServer подключается к redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// Get читает значение key в result. Отсутствие ключа не ошибка: found = false.
func (c *Cache) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "cache.Get"
	val, err := c.Db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err = json.Unmarshal(val, result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет value в JSON с временем жизни expiration.
func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	const op = "cache.Set"
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = c.Db.Set(ctx, key, jsonData, expiration).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Invalidate удаляет ключи.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	const op = "cache.Invalidate"
	if len(keys) == 0 {
		return nil
	}
	if err := c.Db.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение.
func (c *Cache) Close() error {
	return c.Db.Close()
}
