package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client persists serialized carts in Redis. Keys are namespaced under
// cart: and expire after the configured TTL so abandoned carts age out.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient connects to Redis and verifies the connection
func NewClient(addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

func cartKey(key string) string {
	return fmt.Sprintf("cart:%s", key)
}

// Load retrieves a cart payload. A missing key is not an error.
func (c *Client) Load(ctx context.Context, key string) (string, bool, error) {
	payload, err := c.rdb.Get(ctx, cartKey(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load cart %s: %w", key, err)
	}
	return payload, true, nil
}

// Save writes a cart payload, refreshing the TTL
func (c *Client) Save(ctx context.Context, key, payload string) error {
	if err := c.rdb.Set(ctx, cartKey(key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", key, err)
	}
	return nil
}

// Remove deletes a cart payload. Deleting an absent key is a no-op.
func (c *Client) Remove(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, cartKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to remove cart %s: %w", key, err)
	}
	return nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
