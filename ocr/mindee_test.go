package ocr

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BaSui01/ocrflow/types"
)

type capturedRequest struct {
	path     string
	query    map[string][]string
	auth     string
	filename string
	content  []byte
}

// newMindeeServer 返回一个按固定状态码和响应体回复的假 Mindee 服务.
func newMindeeServer(t *testing.T, status int, body []byte) (*httptest.Server, *capturedRequest, *atomic.Int32) {
	t.Helper()
	captured := &capturedRequest{}
	calls := &atomic.Int32{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		captured.path = r.URL.Path
		captured.query = r.URL.Query()
		captured.auth = r.Header.Get("Authorization")

		file, header, err := r.FormFile("document")
		if assert.NoError(t, err) {
			defer file.Close()
			captured.filename = header.Filename
			captured.content, _ = io.ReadAll(file)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, captured, calls
}

func newTestMindee(t *testing.T, baseURL string, opts ...MindeeOption) *MindeeProvider {
	t.Helper()
	opts = append([]MindeeOption{WithLogger(zaptest.NewLogger(t))}, opts...)
	return NewMindeeProvider(MindeeConfig{APIKey: "secret-key", BaseURL: baseURL, Timeout: 5 * time.Second}, opts...)
}

func testDoc(content string) *Document {
	return &Document{Name: "/tmp/scans/receipt.jpg", Body: strings.NewReader(content)}
}

func TestNewMindeeProvider_Defaults(t *testing.T) {
	p := NewMindeeProvider(MindeeConfig{APIKey: "k"})

	assert.Equal(t, "mindee", p.Name())
	assert.Equal(t, "https://api.mindee.net", p.cfg.BaseURL)
	assert.Equal(t, 60*time.Second, p.cfg.Timeout)
	assert.Equal(t, int64(20<<20), p.cfg.MaxDocumentBytes)
	assert.Equal(t, 60*time.Second, p.client.Timeout)
}

func TestMindee_ParseReceipt(t *testing.T) {
	srv, req, _ := newMindeeServer(t, http.StatusCreated, loadFixture(t, "mindee_receipt.json"))
	p := newTestMindee(t, srv.URL)

	env, err := p.ParseReceipt(context.Background(), testDoc("jpeg-bytes"), "fr-FR")
	require.NoError(t, err)

	assert.Equal(t, "/v1/products/mindee/expense_receipts/v5/predict", req.path)
	assert.Equal(t, "Token secret-key", req.auth)
	assert.Equal(t, []string{"fr"}, req.query["language"])
	assert.Equal(t, []string{"FR"}, req.query["country"])
	assert.Equal(t, "receipt.jpg", req.filename)
	assert.Equal(t, []byte("jpeg-bytes"), req.content)

	rec := env.Standardized().ExtractedData[0]
	assert.Len(t, rec.Taxes, 2)
	assert.Len(t, rec.ItemLines, 3)
	assert.JSONEq(t, string(loadFixture(t, "mindee_receipt.json")), string(env.OriginalResponse()))
}

func TestMindee_EndpointsPerKind(t *testing.T) {
	tests := []struct {
		kind    Kind
		fixture string
		path    string
	}{
		{KindReceipt, "mindee_receipt.json", "/v1/products/mindee/expense_receipts/v5/predict"},
		{KindInvoice, "mindee_invoice.json", "/v1/products/mindee/invoices/v3/predict"},
		{KindFinancial, "mindee_financial.json", "/v1/products/mindee/financial_document/v1/predict"},
		{KindIdentity, "mindee_passport.json", "/v1/products/mindee/passport/v1/predict"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			srv, req, _ := newMindeeServer(t, http.StatusCreated, loadFixture(t, tt.fixture))
			p := newTestMindee(t, srv.URL+"/")

			env, err := Parse(context.Background(), p, tt.kind, testDoc("x"), "en-US")
			require.NoError(t, err)
			require.NotNil(t, env)
			assert.Equal(t, tt.path, req.path)
			assert.NotNil(t, env.StandardizedAny())
		})
	}
}

func TestMindee_LocaleParams(t *testing.T) {
	tests := []struct {
		name     string
		language string
		want     map[string][]string
	}{
		{name: "absent", language: "", want: map[string][]string{}},
		{name: "language and country", language: "de-CH", want: map[string][]string{"language": {"de"}, "country": {"CH"}}},
		{name: "language only", language: "it", want: map[string][]string{"language": {"it"}}},
		{name: "trailing dash", language: "es-", want: map[string][]string{"language": {"es"}}},
		{name: "extra subtag", language: "fr-FR-x", want: map[string][]string{"language": {"fr"}, "country": {"FR"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, req, _ := newMindeeServer(t, http.StatusCreated, loadFixture(t, "mindee_invoice.json"))
			p := newTestMindee(t, srv.URL)

			_, err := p.ParseInvoice(context.Background(), testDoc("pdf"), tt.language)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.query)
		})
	}
}

func TestMindee_IdentitySendsNoLocale(t *testing.T) {
	srv, req, _ := newMindeeServer(t, http.StatusCreated, loadFixture(t, "mindee_passport.json"))
	p := newTestMindee(t, srv.URL)

	_, err := p.ParseIdentity(context.Background(), testDoc("passport"))
	require.NoError(t, err)
	assert.Empty(t, req.query)
}

func TestMindee_AuthorizationKeepsExistingPrefix(t *testing.T) {
	srv, req, _ := newMindeeServer(t, http.StatusCreated, loadFixture(t, "mindee_receipt.json"))
	p := NewMindeeProvider(MindeeConfig{APIKey: "Token already-prefixed", BaseURL: srv.URL})

	_, err := p.ParseReceipt(context.Background(), testDoc("x"), "")
	require.NoError(t, err)
	assert.Equal(t, "Token already-prefixed", req.auth)
}

func TestMindee_MissingDocumentIsProviderError(t *testing.T) {
	for _, kind := range []Kind{KindReceipt, KindInvoice, KindFinancial} {
		t.Run(string(kind), func(t *testing.T) {
			srv, _, _ := newMindeeServer(t, http.StatusUnauthorized, loadFixture(t, "mindee_error.json"))
			p := newTestMindee(t, srv.URL)

			env, err := Parse(context.Background(), p, kind, testDoc("x"), "fr-FR")
			require.Error(t, err)
			assert.Nil(t, env)

			e, ok := types.AsError(err)
			require.True(t, ok)
			assert.Equal(t, types.ErrProviderError, e.Code)
			assert.Equal(t, "Authorization required", e.Message)
			assert.Equal(t, http.StatusUnauthorized, e.HTTPStatus)
			assert.Equal(t, "mindee", e.Provider)
		})
	}
}

func TestMindee_MissingDocumentWithSuccessStatus(t *testing.T) {
	// 成功状态码不能掩盖缺失的 document 键
	body := []byte(`{"api_request": {"error": {"message": "Document could not be processed"}}}`)
	srv, _, _ := newMindeeServer(t, http.StatusOK, body)
	p := newTestMindee(t, srv.URL)

	_, err := p.ParseReceipt(context.Background(), testDoc("x"), "")
	require.Error(t, err)
	e, _ := types.AsError(err)
	assert.Equal(t, types.ErrProviderError, e.Code)
	assert.Equal(t, "Document could not be processed", e.Message)
	assert.Equal(t, http.StatusOK, e.HTTPStatus)
}

func TestMindee_IdentityRequiresCreated(t *testing.T) {
	// 即使响应里带有 document 键, 非 201 仍视为失败
	body := []byte(`{"api_request": {"error": {"message": "Too many requests"}}, "document": {}}`)
	srv, _, _ := newMindeeServer(t, http.StatusTooManyRequests, body)
	p := newTestMindee(t, srv.URL)

	_, err := p.ParseIdentity(context.Background(), testDoc("x"))
	require.Error(t, err)

	e, ok := types.AsError(err)
	require.True(t, ok)
	assert.Equal(t, types.ErrProviderError, e.Code)
	assert.Equal(t, "Too many requests", e.Message)
	assert.Equal(t, http.StatusTooManyRequests, e.HTTPStatus)
}

func TestMindee_IdentityNon201WithoutJSONBody(t *testing.T) {
	srv, _, _ := newMindeeServer(t, http.StatusBadGateway, []byte("<html>bad gateway</html>"))
	p := newTestMindee(t, srv.URL)

	_, err := p.ParseIdentity(context.Background(), testDoc("x"))
	e, ok := types.AsError(err)
	require.True(t, ok)
	assert.Equal(t, types.ErrProviderError, e.Code)
	assert.Equal(t, "Bad Gateway", e.Message)
	assert.True(t, e.Retryable)
}

func TestMindee_InvalidJSONIsProviderError(t *testing.T) {
	srv, _, _ := newMindeeServer(t, http.StatusCreated, []byte("not json"))
	p := newTestMindee(t, srv.URL)

	_, err := p.ParseReceipt(context.Background(), testDoc("x"), "")
	e, ok := types.AsError(err)
	require.True(t, ok)
	assert.Equal(t, types.ErrProviderError, e.Code)
	assert.Equal(t, http.StatusCreated, e.HTTPStatus)
}

func TestMindee_ConversionErrorIsNotProviderError(t *testing.T) {
	body := []byte(`{"document": {"inference": {"prediction": {"total_amount": {"value": "n/a"}}}}}`)
	srv, _, _ := newMindeeServer(t, http.StatusCreated, body)
	p := newTestMindee(t, srv.URL)

	_, err := p.ParseReceipt(context.Background(), testDoc("x"), "")
	require.Error(t, err)
	assert.True(t, types.IsConversionError(err))
	assert.False(t, types.IsProviderError(err))
}

func TestMindee_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := newTestMindee(t, url)
	_, err := p.ParseReceipt(context.Background(), testDoc("x"), "")
	require.Error(t, err)
	assert.Equal(t, types.ErrUpstreamError, types.GetErrorCode(err))
	assert.False(t, types.IsProviderError(err))
	assert.True(t, types.IsRetryable(err))
}

func TestMindee_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	p := NewMindeeProvider(MindeeConfig{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := p.ParseInvoice(context.Background(), testDoc("x"), "")
	require.Error(t, err)
	assert.Equal(t, types.ErrUpstreamTimeout, types.GetErrorCode(err))
}

func TestMindee_ContextCancelled(t *testing.T) {
	srv, _, _ := newMindeeServer(t, http.StatusCreated, loadFixture(t, "mindee_receipt.json"))
	p := newTestMindee(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ParseReceipt(ctx, testDoc("x"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, types.ErrUpstreamError, types.GetErrorCode(err))
}

func TestMindee_RequestValidation(t *testing.T) {
	p := NewMindeeProvider(MindeeConfig{APIKey: "k", BaseURL: "http://127.0.0.1:0", MaxDocumentBytes: 4})

	_, err := p.ParseReceipt(context.Background(), nil, "")
	assert.Equal(t, types.ErrInvalidRequest, types.GetErrorCode(err))

	_, err = p.ParseReceipt(context.Background(), &Document{Name: "x"}, "")
	assert.Equal(t, types.ErrInvalidRequest, types.GetErrorCode(err))

	_, err = p.ParseReceipt(context.Background(), testDoc("too large"), "")
	assert.Equal(t, types.ErrPayloadTooLarge, types.GetErrorCode(err))
}

// memoryCache 是测试用的 RawCache.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Lookup(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, false, errors.New("cache down")
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *memoryCache) Store(_ context.Context, key string, raw []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = append([]byte(nil), raw...)
	c.ttls[key] = ttl
	return nil
}

func TestMindee_RawCache(t *testing.T) {
	fixture := loadFixture(t, "mindee_receipt.json")
	srv, _, calls := newMindeeServer(t, http.StatusCreated, fixture)
	cache := newMemoryCache()
	p := newTestMindee(t, srv.URL, WithRawCache(cache))

	first, err := p.ParseReceipt(context.Background(), testDoc("same-bytes"), "fr-FR")
	require.NoError(t, err)
	second, err := p.ParseReceipt(context.Background(), testDoc("same-bytes"), "fr-FR")
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load(), "second call must be served from cache")
	assert.Equal(t, first.Standardized(), second.Standardized())
	assert.Equal(t, first.OriginalResponse(), second.OriginalResponse())
	require.Len(t, cache.entries, 1)
	for _, ttl := range cache.ttls {
		assert.Equal(t, 24*time.Hour, ttl)
	}

	// 不同的语言参数或文档内容不会命中
	_, err = p.ParseReceipt(context.Background(), testDoc("same-bytes"), "en-GB")
	require.NoError(t, err)
	_, err = p.ParseReceipt(context.Background(), testDoc("other-bytes"), "fr-FR")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestMindee_RawCacheIsPerEndpoint(t *testing.T) {
	fixture := loadFixture(t, "mindee_receipt.json")
	primary, _, primaryCalls := newMindeeServer(t, http.StatusCreated, fixture)
	regional, _, regionalCalls := newMindeeServer(t, http.StatusCreated, fixture)
	cache := newMemoryCache()

	for _, base := range []string{primary.URL, regional.URL, primary.URL + "/"} {
		p := newTestMindee(t, base, WithRawCache(cache))
		_, err := p.ParseReceipt(context.Background(), testDoc("same-bytes"), "fr-FR")
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), primaryCalls.Load())
	assert.Equal(t, int32(1), regionalCalls.Load())
	assert.Len(t, cache.entries, 2)
}

func TestMindee_RawCacheSkipsFailures(t *testing.T) {
	srv, _, calls := newMindeeServer(t, http.StatusUnauthorized, loadFixture(t, "mindee_error.json"))
	cache := newMemoryCache()
	p := newTestMindee(t, srv.URL, WithRawCache(cache))

	for i := 0; i < 2; i++ {
		_, err := p.ParseReceipt(context.Background(), testDoc("x"), "")
		require.Error(t, err)
	}
	assert.Empty(t, cache.entries)
	assert.Equal(t, int32(2), calls.Load())
}

func TestMindee_RawCacheErrorFallsThrough(t *testing.T) {
	srv, _, calls := newMindeeServer(t, http.StatusCreated, loadFixture(t, "mindee_passport.json"))
	cache := newMemoryCache()
	cache.failGet = true
	p := newTestMindee(t, srv.URL, WithRawCache(cache))

	_, err := p.ParseIdentity(context.Background(), testDoc("x"))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestMindee_ConcurrentCalls(t *testing.T) {
	srv, _, calls := newMindeeServer(t, http.StatusCreated, loadFixture(t, "mindee_invoice.json"))
	p := newTestMindee(t, srv.URL)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			env, err := p.ParseInvoice(context.Background(), &Document{Name: "inv.pdf", Body: bytes.NewReader([]byte{byte(i)})}, "en")
			if err == nil && len(env.Standardized().ExtractedData) != 1 {
				err = errors.New("unexpected record count")
			}
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(8), calls.Load())
}
