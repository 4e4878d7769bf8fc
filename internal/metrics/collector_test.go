package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestNewCollector_IndependentRegistries(t *testing.T) {
	// 同一 namespace 创建两次不会重复注册
	a := NewCollector("ocrflow", nil)
	b := NewCollector("ocrflow", zap.NewNop())

	a.RecordDocumentRequest("mindee", "receipt", "", time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.documents.WithLabelValues("mindee", "receipt", outcomeSuccess)))
	assert.Equal(t, 0, testutil.CollectAndCount(b.documents))
}

func TestCollector_RecordHTTPRequest(t *testing.T) {
	c := NewCollector("ocrflow", zap.NewNop())

	c.RecordHTTPRequest("POST", "/api/v1/documents/{kind}", 200, 800*time.Millisecond, 250_000, 2048)
	c.RecordHTTPRequest("POST", "/api/v1/documents/{kind}", 502, 50*time.Millisecond, 512, 128)
	c.RecordHTTPRequest("GET", "/health", 200, time.Millisecond, 0, 64)

	assert.Equal(t, 3, testutil.CollectAndCount(c.httpRequests))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("POST", "/api/v1/documents/{kind}", "5xx")))
	// GET 无请求体, 只记录 out
	assert.Equal(t, 3, testutil.CollectAndCount(c.httpBytes))
}

func TestCollector_RecordDocumentRequest(t *testing.T) {
	c := NewCollector("ocrflow", zap.NewNop())

	c.RecordDocumentRequest("mindee", "receipt", "", 300*time.Millisecond)
	c.RecordDocumentRequest("mindee", "receipt", "PROVIDER_ERROR", 200*time.Millisecond)
	c.RecordDocumentRequest("mindee", "identity", "CONVERSION_ERROR", 100*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.documents.WithLabelValues("mindee", "receipt", outcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.documents.WithLabelValues("mindee", "receipt", outcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.documentErrors.WithLabelValues("mindee", "identity", "CONVERSION_ERROR")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.documentErrors))
	assert.Equal(t, 2, testutil.CollectAndCount(c.documentDuration))
}

func TestCollector_CacheLookups(t *testing.T) {
	c := NewCollector("ocrflow", zap.NewNop())

	c.RecordCacheHit("raw_response")
	c.RecordCacheMiss("raw_response")
	c.RecordCacheMiss("raw_response")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheLookups.WithLabelValues("raw_response", lookupHit)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.cacheLookups.WithLabelValues("raw_response", lookupMiss)))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("ocrflow", zap.NewNop())
	c.RecordDocumentRequest("mindee", "invoice", "", 2*time.Second)

	body := scrape(t, c)

	assert.Contains(t, body, `ocrflow_document_parses_total{kind="invoice",outcome="success",provider="mindee"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestCollector_RegisterDBStats(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	c := NewCollector("ocrflow", zap.NewNop())
	require.NoError(t, c.RegisterDBStats(db, "credentials"))
	// 同名重复注册报错
	assert.Error(t, c.RegisterDBStats(db, "credentials"))

	assert.Contains(t, scrape(t, c), `go_sql_open_connections{db_name="credentials"}`)
}

func TestCollector_ConcurrentRecording(t *testing.T) {
	c := NewCollector("ocrflow", zap.NewNop())

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordHTTPRequest("GET", "/health", 200, 10*time.Millisecond, 0, 64)
			c.RecordDocumentRequest("mindee", "invoice", "", 500*time.Millisecond)
			c.RecordCacheHit("raw_response")
		}()
	}
	wg.Wait()

	assert.Equal(t, 10.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/health", "2xx")))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.documents.WithLabelValues("mindee", "invoice", outcomeSuccess)))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.cacheLookups.WithLabelValues("raw_response", lookupHit)))
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{
		201: "2xx",
		302: "3xx",
		404: "4xx",
		503: "5xx",
		0:   "unknown",
		999: "unknown",
	}
	for code, want := range tests {
		assert.Equal(t, want, statusClass(code), "code %d", code)
	}
}
