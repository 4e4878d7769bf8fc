package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// 解析结果标签
const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

// 缓存查询结果标签
const (
	lookupHit  = "hit"
	lookupMiss = "miss"
)

// documentBuckets 覆盖供应商同步接口的典型耗时, 上限为默认 60s 超时.
var documentBuckets = []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60}

// Collector 持有独立的 Registry. 每个 Collector 互不影响, 测试无需区分 namespace.
type Collector struct {
	registry *prometheus.Registry
	logger   *zap.Logger

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpBytes    *prometheus.HistogramVec

	documents        *prometheus.CounterVec
	documentDuration *prometheus.HistogramVec
	documentErrors   *prometheus.CounterVec

	cacheLookups *prometheus.CounterVec
}

// NewCollector 创建 Collector 并注册 Go 运行时与进程指标.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
	)
	f := promauto.With(reg)

	c := &Collector{
		registry: reg,
		logger:   logger.With(zap.String("component", "metrics")),

		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern and status class.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency including the upstream provider call.",
			Buckets:   documentBuckets,
		}, []string{"method", "route"}),
		// 上传体积与响应体积共用一个 histogram, 由 direction 区分
		httpBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "body_bytes",
			Help:      "HTTP body sizes; uploads are usually images or PDFs.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 10),
		}, []string{"route", "direction"}),

		documents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "document",
			Name:      "parses_total",
			Help:      "Documents sent to a provider, by kind and outcome.",
		}, []string{"provider", "kind", "outcome"}),
		documentDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "document",
			Name:      "parse_duration_seconds",
			Help:      "Provider call plus normalization time.",
			Buckets:   documentBuckets,
		}, []string{"provider", "kind"}),
		documentErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "document",
			Name:      "errors_total",
			Help:      "Failed parses by error code, e.g. PROVIDER_ERROR or CONVERSION_ERROR.",
		}, []string{"provider", "kind", "code"}),

		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Raw response cache lookups by result.",
		}, []string{"cache", "result"}),
	}

	c.logger.Debug("metrics collector initialized", zap.String("namespace", namespace))
	return c
}

// Handler 返回只暴露本 Collector 指标的 /metrics handler.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		Registry:      c.registry,
		ErrorLog:      zap.NewStdLog(c.logger),
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// RegisterDBStats 导出凭证库连接池状态.
func (c *Collector) RegisterDBStats(db *sql.DB, name string) error {
	return c.registry.Register(collectors.NewDBStatsCollector(db, name))
}

// RecordHTTPRequest 记录一次 HTTP 请求. route 应为路由模板而不是原始路径.
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration, requestSize, responseSize int64) {
	c.httpRequests.WithLabelValues(method, route, statusClass(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	if requestSize > 0 {
		c.httpBytes.WithLabelValues(route, "in").Observe(float64(requestSize))
	}
	c.httpBytes.WithLabelValues(route, "out").Observe(float64(responseSize))
}

// RecordDocumentRequest 记录一次文档解析. code 为空表示成功.
func (c *Collector) RecordDocumentRequest(provider, kind, code string, duration time.Duration) {
	outcome := outcomeSuccess
	if code != "" {
		outcome = outcomeError
		c.documentErrors.WithLabelValues(provider, kind, code).Inc()
	}
	c.documents.WithLabelValues(provider, kind, outcome).Inc()
	c.documentDuration.WithLabelValues(provider, kind).Observe(duration.Seconds())
}

// RecordCacheHit 记录缓存命中.
func (c *Collector) RecordCacheHit(cache string) {
	c.cacheLookups.WithLabelValues(cache, lookupHit).Inc()
}

// RecordCacheMiss 记录缓存未命中.
func (c *Collector) RecordCacheMiss(cache string) {
	c.cacheLookups.WithLabelValues(cache, lookupMiss).Inc()
}

// statusClass 把状态码归为 2xx 等类别, 控制标签基数.
func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}
