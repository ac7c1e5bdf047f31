// Package redis holds the connection behind the session result store,
// the only Redis consumer in this service.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"quote-service/internal/config"
)

// Client wraps the go-redis client the result store reads and writes
// through.
type Client struct {
	client *redis.Client
}

// Connect opens and pings the session store connection.
func Connect(cfg config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("Connected to Redis", "host", cfg.Host, "port", cfg.Port, "db", cfg.DB)
	return &Client{client: client}, nil
}

// GetClient returns the underlying go-redis client.
func (c *Client) GetClient() *redis.Client {
	return c.client
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.client.Close()
}
