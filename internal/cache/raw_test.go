package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	hits, misses int
}

func (r *countingRecorder) RecordCacheHit(cacheType string) {
	if cacheType == rawCacheType {
		r.hits++
	}
}

func (r *countingRecorder) RecordCacheMiss(cacheType string) {
	if cacheType == rawCacheType {
		r.misses++
	}
}

func TestRawResponseCache_RoundTrip(t *testing.T) {
	mr, store := newTestRedis(t)
	rec := &countingRecorder{}
	c := NewRawResponseCache(store, rec)
	ctx := context.Background()

	raw, ok, err := c.Lookup(ctx, "ocrflow:raw:mindee:abc")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, raw)

	body := []byte(`{"document":{"inference":{"prediction":{}}}}`)
	require.NoError(t, c.Store(ctx, "ocrflow:raw:mindee:abc", body, time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("ocrflow:raw:mindee:abc"))

	raw, ok, err = c.Lookup(ctx, "ocrflow:raw:mindee:abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, body, raw)

	assert.Equal(t, 1, rec.hits)
	assert.Equal(t, 1, rec.misses)
}

func TestRawResponseCache_Expiry(t *testing.T) {
	mr, store := newTestRedis(t)
	c := NewRawResponseCache(store, nil)
	ctx := context.Background()

	require.NoError(t, c.Store(ctx, "k", []byte("{}"), time.Second))
	mr.FastForward(2 * time.Second)

	_, ok, err := c.Lookup(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRawResponseCache_BackendError(t *testing.T) {
	mr, store := newTestRedis(t)
	rec := &countingRecorder{}
	c := NewRawResponseCache(store, rec)
	mr.Close()

	_, ok, err := c.Lookup(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, rec.misses)
}
