package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"resume-checkout/internal/config"
	"resume-checkout/internal/domain/ports/repository"
)

type RedisClient interface {
	Ping(ctx context.Context) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Close() error
}

var _ RedisClient = (*Client)(nil)

type Client struct {
	cli *redis.Client
}

func NewClient(ctx context.Context, cfg *config.RedisConfig) (*Client, error) {
	opts := &redis.Options{
		Addr:     cfg.URL,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	c := redis.NewClient(opts)
	if err := c.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Client{cli: c}, nil
}

func (c *Client) Ping(ctx context.Context) error { return c.cli.Ping(ctx).Err() }

func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.cli.Set(ctx, key, value, expiration).Err()
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.cli.Get(ctx, key).Result()
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.cli.Del(ctx, keys...).Err()
}

func (c *Client) Close() error { return c.cli.Close() }

var _ repository.KVCache = (*KVCache)(nil)

// KVCache adapts the client to the repository.KVCache port, translating
// redis.Nil into the port's miss sentinel.
type KVCache struct {
	cli *Client
}

func NewKVCache(cli *Client) *KVCache { return &KVCache{cli: cli} }

func (c *KVCache) Get(ctx context.Context, key string) (string, error) {
	v, err := c.cli.Get(ctx, key)
	if err == redis.Nil {
		return "", repository.ErrCacheMiss
	}
	return v, err
}

func (c *KVCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.cli.Set(ctx, key, value, ttl)
}
