// Package kv bootstraps the Redis client shared by Redis-backed stores.
package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qcharged/product-service/config"
)

// Connect opens a client for the configured REDIS_ADDR and verifies it with
// a ping. It returns (nil, nil) when no address is configured.
func Connect(ctx context.Context) (*redis.Client, error) {
	addr := config.RedisAddr()
	if addr == "" {
		return nil, nil
	}
	return Open(ctx, addr, config.RedisPassword())
}

// Open connects to addr and pings it.
func Open(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          0,
		DialTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("kv: redis ping %s: %w", addr, err)
	}
	return client, nil
}
