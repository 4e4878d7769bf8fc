package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/ocrflow/types"
)

const tracerName = "github.com/BaSui01/ocrflow/api"

// HTTPRecorder 接收每个请求的指标, 由 metrics.Collector 实现.
type HTTPRecorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration, requestSize, responseSize int64)
}

// ObserveConfig 的字段都可以为空, 为空时跳过对应的输出.
type ObserveConfig struct {
	Logger   *zap.Logger
	Recorder HTTPRecorder
	// TracerProvider 为空时使用全局 provider.
	TracerProvider trace.TracerProvider
	Propagator     propagation.TextMapPropagator
	// Quiet 中的路径只记 debug 日志, 避免探针刷屏.
	Quiet []string
}

// Observe 为每个请求开启 server span, 并在请求结束后记录指标与访问日志.
func Observe(cfg ObserveConfig) func(http.Handler) http.Handler {
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	prop := cfg.Propagator
	if prop == nil {
		prop = otel.GetTextMapPropagator()
	}
	tracer := tp.Tracer(tracerName)
	quiet := make(map[string]bool, len(cfg.Quiet))
	for _, p := range cfg.Quiet {
		quiet[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.URLPath(r.URL.Path),
				),
			)
			defer span.End()

			if id, ok := types.RequestID(ctx); ok {
				span.SetAttributes(attribute.String("http.request_id", id))
			}
			if sc := span.SpanContext(); sc.IsValid() {
				ctx = types.WithTraceID(ctx, sc.TraceID().String())
			}

			rec := &statusRecorder{ResponseWriter: w}
			r = r.WithContext(ctx)
			next.ServeHTTP(rec, r)

			// 路由在 next 中完成匹配, 此时才拿得到模板
			route := routeOf(r)
			status := rec.Status()
			elapsed := time.Since(start)

			span.SetName(r.Method + " " + route)
			span.SetAttributes(semconv.HTTPRoute(route), semconv.HTTPResponseStatusCode(status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			if cfg.Recorder != nil {
				cfg.Recorder.RecordHTTPRequest(r.Method, route, status, elapsed, max(r.ContentLength, 0), rec.bytes)
			}
			if cfg.Logger != nil {
				logAccess(cfg.Logger, r, route, status, rec.bytes, elapsed, quiet[r.URL.Path])
			}
		})
	}
}

func logAccess(logger *zap.Logger, r *http.Request, route string, status int, size int64, elapsed time.Duration, quiet bool) {
	level := zap.InfoLevel
	switch {
	case status >= http.StatusInternalServerError:
		level = zap.ErrorLevel
	case quiet:
		level = zap.DebugLevel
	}
	ce := logger.Check(level, "request completed")
	if ce == nil {
		return
	}

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("route", route),
		zap.Int("status", status),
		zap.Int64("bytes", size),
		zap.Duration("duration", elapsed),
		zap.String("remote_addr", r.RemoteAddr),
	}
	ctx := r.Context()
	if id, ok := types.RequestID(ctx); ok {
		fields = append(fields, zap.String("request_id", id))
	}
	if id, ok := types.TraceID(ctx); ok {
		fields = append(fields, zap.String("trace_id", id))
	}
	if sub, ok := types.Subject(ctx); ok {
		fields = append(fields, zap.String("subject", sub))
	}
	ce.Write(fields...)
}

// routeOf 优先返回 chi 的路由模板, 未匹配的请求把 ID 形式的路径段替换为 :id.
func routeOf(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return collapseIDs(r.URL.Path)
}

func collapseIDs(path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if looksLikeID(s) {
			segs[i] = ":id"
		}
	}
	return strings.Join(segs, "/")
}

// looksLikeID 纯数字, UUID, 或 8 位以上的十六进制串.
func looksLikeID(s string) bool {
	if s == "" {
		return false
	}
	if uuid.Validate(s) == nil {
		return true
	}
	digits, hex := true, len(s) >= 8
	for i := 0; i < len(s); i++ {
		c := s[i]
		isDigit := c >= '0' && c <= '9'
		digits = digits && isDigit
		hex = hex && (isDigit || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F'))
	}
	return digits || hex
}
