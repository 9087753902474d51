package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"hobbyhub/config"
)

var client *redis.Client

// Connect dials Redis when an address is configured. The cache is strictly
// optional: when unconfigured or unreachable every operation becomes a no-op
// and callers fall through to the database.
func Connect() {
	if config.Cfg.RedisAddr == "" {
		return
	}

	c := redis.NewClient(&redis.Options{
		Addr:     config.Cfg.RedisAddr,
		Password: config.Cfg.RedisPass,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable, bypassing cache: %v", err)
		_ = c.Close()
		return
	}

	client = c
	log.Println("Redis cache connected")
}

func Close() {
	if client != nil {
		client.Close()
	}
}

// GetJSON reports whether the key was present and unmarshaled into out.
func GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if client == nil {
		return false, nil
	}
	b, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}
