package cache

import (
	"context"
	"time"
)

// Store 是 RawResponseCache 依赖的键值存储. Redis 实现了该接口.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// HitRecorder 记录缓存命中情况. internal/metrics.Collector 实现了该接口.
type HitRecorder interface {
	RecordCacheHit(cacheType string)
	RecordCacheMiss(cacheType string)
}

const rawCacheType = "raw_response"

// RawResponseCache 保存供应商成功响应的原始字节, 满足 ocr.RawCache.
type RawResponseCache struct {
	store    Store
	recorder HitRecorder
}

// NewRawResponseCache 创建原始响应缓存. recorder 可为 nil.
func NewRawResponseCache(store Store, recorder HitRecorder) *RawResponseCache {
	return &RawResponseCache{store: store, recorder: recorder}
}

// Lookup 查找原始响应. 未命中返回 (nil, false, nil).
func (c *RawResponseCache) Lookup(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.store.Get(ctx, key)
	switch {
	case IsCacheMiss(err):
		c.miss()
		return nil, false, nil
	case err != nil:
		c.miss()
		return nil, false, err
	}
	if c.recorder != nil {
		c.recorder.RecordCacheHit(rawCacheType)
	}
	return raw, true, nil
}

// Store 写入原始响应.
func (c *RawResponseCache) Store(ctx context.Context, key string, raw []byte, ttl time.Duration) error {
	return c.store.Set(ctx, key, raw, ttl)
}

func (c *RawResponseCache) miss() {
	if c.recorder != nil {
		c.recorder.RecordCacheMiss(rawCacheType)
	}
}
