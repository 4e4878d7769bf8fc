package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound 表示没有该供应商的可用凭据.
var ErrNotFound = errors.New("credentials: not found")

// Credential 是调用一个文档解析供应商所需的凭据.
type Credential struct {
	Provider string
	APIKey   string
	BaseURL  string
}

// String 只暴露密钥末尾四位.
func (c Credential) String() string {
	return fmt.Sprintf("Credential{Provider:%s, APIKey:%s, BaseURL:%s}", c.Provider, Mask(c.APIKey), c.BaseURL)
}

// Mask 隐藏密钥, 长度不足 8 时全部隐藏.
func Mask(key string) string {
	if key == "" {
		return ""
	}
	if len(key) < 8 {
		return "***"
	}
	return "***" + key[len(key)-4:]
}

// Store 按供应商名称解析凭据.
type Store interface {
	Resolve(ctx context.Context, provider string) (Credential, error)
}

// StaticStore 是基于配置文件的只读凭据表.
type StaticStore map[string]Credential

// Resolve 实现 Store.
func (s StaticStore) Resolve(_ context.Context, provider string) (Credential, error) {
	c, ok := s[normalize(provider)]
	if !ok || c.APIKey == "" {
		return Credential{}, fmt.Errorf("%w: %s", ErrNotFound, provider)
	}
	return c, nil
}

// ChainStore 依次查询各个 Store, 返回第一个找到的凭据. ErrNotFound 之外的错误立即返回.
type ChainStore []Store

// Resolve 实现 Store.
func (s ChainStore) Resolve(ctx context.Context, provider string) (Credential, error) {
	for _, store := range s {
		if store == nil {
			continue
		}
		c, err := store.Resolve(ctx, provider)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Credential{}, err
		}
	}
	return Credential{}, fmt.Errorf("%w: %s", ErrNotFound, provider)
}

func normalize(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}
