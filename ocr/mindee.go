package ocr

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/ocrflow/internal/tlsutil"
	"github.com/BaSui01/ocrflow/ocr/fields"
	"github.com/BaSui01/ocrflow/types"
)

const (
	mindeeName       = "mindee"
	maxResponseBytes = 16 << 20
)

// mindeeEndpoints 每种文档类型对应的固定预测端点.
var mindeeEndpoints = map[Kind]string{
	KindInvoice:   "/v1/products/mindee/invoices/v3/predict",
	KindReceipt:   "/v1/products/mindee/expense_receipts/v5/predict",
	KindIdentity:  "/v1/products/mindee/passport/v1/predict",
	KindFinancial: "/v1/products/mindee/financial_document/v1/predict",
}

// RawCache 保存供应商成功响应的原始字节. 命中时跳过 HTTP 调用.
type RawCache interface {
	Lookup(ctx context.Context, key string) ([]byte, bool, error)
	Store(ctx context.Context, key string, raw []byte, ttl time.Duration) error
}

// MindeeProvider 使用 Mindee API 解析小票、发票、财务单据与护照.
type MindeeProvider struct {
	cfg    MindeeConfig
	client *http.Client
	cache  RawCache
	logger *zap.Logger
}

// MindeeOption 配置 MindeeProvider 的可选依赖.
type MindeeOption func(*MindeeProvider)

// WithRawCache 启用原始响应缓存.
func WithRawCache(c RawCache) MindeeOption {
	return func(p *MindeeProvider) { p.cache = c }
}

// WithLogger 设置日志记录器.
func WithLogger(logger *zap.Logger) MindeeOption {
	return func(p *MindeeProvider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithHTTPClient 替换默认 HTTP 客户端.
func WithHTTPClient(c *http.Client) MindeeOption {
	return func(p *MindeeProvider) {
		if c != nil {
			p.client = c
		}
	}
}

// NewMindeeProvider 创建新的 Mindee 提供者. cfg 按值保存, 实例之间不共享状态.
func NewMindeeProvider(cfg MindeeConfig, opts ...MindeeOption) *MindeeProvider {
	defaults := DefaultMindeeConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = defaults.MaxDocumentBytes
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaults.CacheTTL
	}

	p := &MindeeProvider{
		cfg:    cfg,
		client: tlsutil.NewClient(tlsutil.Options{Timeout: cfg.Timeout}),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(zap.String("provider", mindeeName))
	return p
}

func (p *MindeeProvider) Name() string { return mindeeName }

// ParseReceipt 解析小票.
func (p *MindeeProvider) ParseReceipt(ctx context.Context, doc *Document, language string) (*ResultEnvelope[ReceiptParserResult], error) {
	resp, err := p.predict(ctx, KindReceipt, doc, language)
	if err != nil {
		return nil, err
	}
	root, err := p.requireDocument(resp)
	if err != nil {
		return nil, err
	}
	rec, err := mapReceipt(prediction(root))
	if err != nil {
		return nil, fmt.Errorf("mindee receipt: %w", err)
	}
	p.remember(ctx, resp)
	return NewResultEnvelope(resp.body, ReceiptParserResult{ExtractedData: []ReceiptRecord{rec}}), nil
}

// ParseInvoice 解析发票.
func (p *MindeeProvider) ParseInvoice(ctx context.Context, doc *Document, language string) (*ResultEnvelope[InvoiceParserResult], error) {
	resp, err := p.predict(ctx, KindInvoice, doc, language)
	if err != nil {
		return nil, err
	}
	root, err := p.requireDocument(resp)
	if err != nil {
		return nil, err
	}
	rec, err := mapInvoice(prediction(root))
	if err != nil {
		return nil, fmt.Errorf("mindee invoice: %w", err)
	}
	p.remember(ctx, resp)
	return NewResultEnvelope(resp.body, InvoiceParserResult{ExtractedData: []InvoiceRecord{rec}}), nil
}

// ParseFinancialDocument 解析财务单据.
func (p *MindeeProvider) ParseFinancialDocument(ctx context.Context, doc *Document, language string) (*ResultEnvelope[InvoiceParserResult], error) {
	resp, err := p.predict(ctx, KindFinancial, doc, language)
	if err != nil {
		return nil, err
	}
	root, err := p.requireDocument(resp)
	if err != nil {
		return nil, err
	}
	rec, err := mapFinancial(prediction(root))
	if err != nil {
		return nil, fmt.Errorf("mindee financial document: %w", err)
	}
	p.remember(ctx, resp)
	return NewResultEnvelope(resp.body, InvoiceParserResult{ExtractedData: []InvoiceRecord{rec}}), nil
}

// ParseIdentity 解析护照. 与其他端点不同, 成功条件是 HTTP 201.
func (p *MindeeProvider) ParseIdentity(ctx context.Context, doc *Document) (*ResultEnvelope[IdentityParserResult], error) {
	resp, err := p.predict(ctx, KindIdentity, doc, "")
	if err != nil {
		return nil, err
	}
	root, err := p.requireCreated(resp)
	if err != nil {
		return nil, err
	}
	rec, err := mapIdentity(prediction(root))
	if err != nil {
		return nil, fmt.Errorf("mindee identity: %w", err)
	}
	p.remember(ctx, resp)
	return NewResultEnvelope(resp.body, IdentityParserResult{ExtractedData: []IdentityRecord{rec}}), nil
}

// ============================================================
// 传输
// ============================================================

type mindeeResponse struct {
	kind     Kind
	status   int
	body     []byte
	cacheKey string
	cached   bool
}

func (p *MindeeProvider) predict(ctx context.Context, kind Kind, doc *Document, language string) (*mindeeResponse, error) {
	if doc == nil || doc.Body == nil {
		return nil, types.NewInvalidRequestError("document is required").WithProvider(mindeeName)
	}

	data, err := io.ReadAll(io.LimitReader(doc.Body, p.cfg.MaxDocumentBytes+1))
	if err != nil {
		return nil, types.NewInvalidRequestError("failed to read document").WithCause(err).WithProvider(mindeeName)
	}
	if int64(len(data)) > p.cfg.MaxDocumentBytes {
		return nil, types.NewError(types.ErrPayloadTooLarge,
			fmt.Sprintf("document exceeds %d bytes", p.cfg.MaxDocumentBytes)).WithProvider(mindeeName)
	}

	params := localeParams(language)
	baseURL := strings.TrimRight(p.cfg.BaseURL, "/")
	key := rawCacheKey(baseURL, kind, params, data)

	if p.cache != nil {
		raw, ok, err := p.cache.Lookup(ctx, key)
		switch {
		case err != nil:
			p.logger.Warn("raw response cache lookup failed", zap.String("kind", string(kind)), zap.Error(err))
		case ok:
			p.logger.Debug("raw response cache hit", zap.String("kind", string(kind)))
			return &mindeeResponse{kind: kind, status: http.StatusCreated, body: raw, cacheKey: key, cached: true}, nil
		}
	}

	endpoint := baseURL + mindeeEndpoints[kind]
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	body, contentType, err := multipartBody(doc.Name, data)
	if err != nil {
		return nil, types.NewError(types.ErrInternalError, "failed to build upload").WithCause(err).WithProvider(mindeeName)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, types.NewError(types.ErrInternalError, "failed to build request").WithCause(err).WithProvider(mindeeName)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Authorization", authorization(p.cfg.APIKey))

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(fmt.Errorf("failed to read mindee response: %w", err))
	}

	p.logger.Debug("mindee prediction finished",
		zap.String("kind", string(kind)),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(raw)),
		zap.Duration("latency", time.Since(start)))

	return &mindeeResponse{kind: kind, status: resp.StatusCode, body: raw, cacheKey: key}, nil
}

// requireDocument 是小票、发票与财务单据的成功条件: 顶层必须存在 document 键.
func (p *MindeeProvider) requireDocument(resp *mindeeResponse) (fields.Tree, error) {
	root, err := fields.Parse(resp.body)
	if err != nil {
		return fields.Tree{}, types.NewProviderError(mindeeName, "invalid JSON response", resp.status).WithCause(err)
	}
	if !root.Get("document").Exists() {
		return fields.Tree{}, types.NewProviderError(mindeeName, errorMessage(root), resp.status)
	}
	return root, nil
}

// requireCreated 是护照端点的成功条件: HTTP 状态码必须是 201.
func (p *MindeeProvider) requireCreated(resp *mindeeResponse) (fields.Tree, error) {
	root, err := fields.Parse(resp.body)
	if resp.status != http.StatusCreated {
		msg := ""
		if err == nil {
			msg = errorMessage(root)
		}
		return fields.Tree{}, types.NewProviderError(mindeeName, msg, resp.status)
	}
	if err != nil {
		return fields.Tree{}, types.NewProviderError(mindeeName, "invalid JSON response", resp.status).WithCause(err)
	}
	return root, nil
}

// remember 在映射成功后写入缓存. 缓存失败只记录日志.
func (p *MindeeProvider) remember(ctx context.Context, resp *mindeeResponse) {
	if p.cache == nil || resp.cached {
		return
	}
	if err := p.cache.Store(ctx, resp.cacheKey, resp.body, p.cfg.CacheTTL); err != nil {
		p.logger.Warn("raw response cache store failed", zap.String("kind", string(resp.kind)), zap.Error(err))
	}
}

func errorMessage(root fields.Tree) string {
	if msg := fields.SafeGet(root, "api_request", "error", "message").String(); msg != nil {
		return *msg
	}
	return ""
}

func prediction(root fields.Tree) fields.Tree {
	return fields.SafeGet(root, "document", "inference", "prediction")
}

// localeParams 将 "fr-FR" 拆成 language=fr 与 country=FR, 第三段起忽略. 空字符串不产生任何参数.
func localeParams(language string) url.Values {
	params := url.Values{}
	language = strings.TrimSpace(language)
	if language == "" {
		return params
	}
	parts := strings.Split(language, "-")
	if parts[0] != "" {
		params.Set("language", parts[0])
	}
	if len(parts) > 1 && parts[1] != "" {
		params.Set("country", parts[1])
	}
	return params
}

func authorization(key string) string {
	if strings.HasPrefix(key, "Token ") {
		return key
	}
	return "Token " + key
}

func multipartBody(name string, data []byte) (io.Reader, string, error) {
	if name == "" {
		name = "document"
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("document", filepath.Base(name))
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// rawCacheKey 包含 baseURL: 凭证行可以改写端点, 而缓存在所有凭证之间共享.
func rawCacheKey(baseURL string, kind Kind, params url.Values, data []byte) string {
	h := sha256.New()
	h.Write([]byte(mindeeName))
	h.Write([]byte{0})
	h.Write([]byte(baseURL))
	h.Write([]byte{0})
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(params.Encode()))
	h.Write([]byte{0})
	h.Write(data)
	return "ocrflow:raw:" + mindeeName + ":" + hex.EncodeToString(h.Sum(nil))
}

func transportError(err error) *types.Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return types.NewError(types.ErrUpstreamTimeout, "mindee request timed out").
			WithCause(err).WithRetryable(true).WithProvider(mindeeName)
	}
	return types.NewUpstreamError(mindeeName, err)
}
