// Package cache provides the Redis-backed raw response cache.
// This package is internal and should not be imported by external projects.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// ErrCacheMiss 键不存在或已过期.
	ErrCacheMiss = errors.New("cache: miss")
	// ErrClosed Redis 连接已关闭.
	ErrClosed = errors.New("cache: closed")
)

// IsCacheMiss 判断是否为未命中.
func IsCacheMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}

// Config Redis 连接参数.
type Config struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	// DialTimeout 同时用作启动时 Ping 的超时.
	DialTimeout time.Duration
	// DefaultTTL 在 Set 的 ttl 为 0 时使用.
	DefaultTTL time.Duration
}

// DefaultConfig 默认只重试一次: 缓存失败时请求直接发往供应商, 不值得等待.
func DefaultConfig() Config {
	return Config{
		Addr:         "localhost:6379",
		PoolSize:     10,
		MinIdleConns: 1,
		MaxRetries:   1,
		DialTimeout:  2 * time.Second,
		DefaultTTL:   24 * time.Hour,
	}
}

// Redis 是 Store 的 Redis 实现.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
	closed atomic.Bool
}

// NewRedis 连接 Redis 并 Ping 一次, 失败时关闭客户端并返回错误.
func NewRedis(ctx context.Context, cfg Config, logger *zap.Logger) (*Redis, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
	})

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: connect %s: %w", cfg.Addr, err)
	}

	logger = logger.With(zap.String("component", "cache"))
	logger.Info("raw response cache connected",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB),
		zap.Duration("default_ttl", cfg.DefaultTTL))

	return &Redis{client: client, ttl: cfg.DefaultTTL, logger: logger}, nil
}

// Get 读取键值, 不存在时返回 ErrCacheMiss.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}
	val, err := r.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, ErrCacheMiss
	case err != nil:
		return nil, r.wrap("get", err)
	}
	return val, nil
}

// Set 写入键值. ttl 为 0 时使用 DefaultTTL.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if r.closed.Load() {
		return ErrClosed
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return r.wrap("set", err)
	}
	return nil
}

// Ping 用于就绪检查.
func (r *Redis) Ping(ctx context.Context) error {
	if r.closed.Load() {
		return ErrClosed
	}
	return r.wrap("ping", r.client.Ping(ctx).Err())
}

// Close 可重复调用.
func (r *Redis) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	r.logger.Info("closing raw response cache")
	return r.client.Close()
}

func (r *Redis) wrap(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.ErrClosed):
		return ErrClosed
	default:
		return fmt.Errorf("cache: %s: %w", op, err)
	}
}
