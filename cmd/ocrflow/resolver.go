package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/ocrflow/config"
	"github.com/BaSui01/ocrflow/credentials"
	"github.com/BaSui01/ocrflow/internal/tlsutil"
	"github.com/BaSui01/ocrflow/ocr"
	"github.com/BaSui01/ocrflow/types"
)

const mindeeProvider = "mindee"

// mindeeResolver 每次请求从凭证存储取密钥并构造 Mindee 供应商.
// HTTP 客户端与缓存在实例之间共享, 配置按值复制.
type mindeeResolver struct {
	store    credentials.Store
	base     ocr.MindeeConfig
	client   *http.Client
	cache    ocr.RawCache
	recorder ocr.Recorder
	logger   *zap.Logger
}

func newMindeeResolver(store credentials.Store, cfg config.MindeeConfig, cacheTTL time.Duration, logger *zap.Logger) *mindeeResolver {
	base := ocr.DefaultMindeeConfig()
	if cfg.BaseURL != "" {
		base.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		base.Timeout = cfg.Timeout
	}
	if cfg.MaxDocumentBytes > 0 {
		base.MaxDocumentBytes = cfg.MaxDocumentBytes
	}
	if cacheTTL > 0 {
		base.CacheTTL = cacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &mindeeResolver{
		store:  store,
		base:   base,
		client: tlsutil.NewClient(tlsutil.Options{Timeout: base.Timeout}),
		logger: logger,
	}
}

// withCache 启用原始响应缓存. c 为 nil 时不启用.
func (r *mindeeResolver) withCache(c ocr.RawCache) *mindeeResolver {
	r.cache = c
	return r
}

// withRecorder 设置指标记录器.
func (r *mindeeResolver) withRecorder(rec ocr.Recorder) *mindeeResolver {
	r.recorder = rec
	return r
}

func (r *mindeeResolver) Name() string { return mindeeProvider }

func (r *mindeeResolver) Resolve(ctx context.Context) (ocr.Provider, error) {
	cred, err := r.store.Resolve(ctx, mindeeProvider)
	if errors.Is(err, credentials.ErrNotFound) {
		return nil, types.NewError(types.ErrCredentialMissing, "no credentials configured for "+mindeeProvider).
			WithProvider(mindeeProvider).
			WithCause(err)
	}
	if err != nil {
		return nil, types.NewError(types.ErrServiceUnavailable, "credential store unavailable").
			WithRetryable(true).
			WithCause(err)
	}

	cfg := r.base
	cfg.APIKey = cred.APIKey
	if cred.BaseURL != "" {
		cfg.BaseURL = cred.BaseURL
	}

	opts := []ocr.MindeeOption{ocr.WithLogger(r.logger), ocr.WithHTTPClient(r.client)}
	if r.cache != nil {
		opts = append(opts, ocr.WithRawCache(r.cache))
	}
	return ocr.Instrument(ocr.NewMindeeProvider(cfg, opts...), r.recorder, r.logger), nil
}
