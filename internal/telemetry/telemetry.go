package telemetry

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"

	"github.com/BaSui01/ocrflow/config"
)

// serviceNamespace 所有 OCRFlow 进程 (serve 与 parse) 共用.
const serviceNamespace = "ocrflow"

// Providers 持有 SDK 的 TracerProvider 与 MeterProvider. 禁用时两者都为 nil.
type Providers struct {
	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

// exporters 创建导出端. 生产使用 OTLP gRPC, 测试替换为内存实现.
type exporters struct {
	spans   func(ctx context.Context, cfg config.TelemetryConfig) (sdktrace.SpanExporter, error)
	metrics func(ctx context.Context, cfg config.TelemetryConfig) (sdkmetric.Reader, error)
}

var otlpExporters = exporters{
	spans:   newOTLPSpanExporter,
	metrics: newOTLPMetricReader,
}

// Init 按配置初始化 OTel 并注册为全局 provider.
func Init(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*Providers, error) {
	return initWith(ctx, cfg, logger, otlpExporters)
}

func initWith(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger, ex exporters) (*Providers, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		// 全局 provider 保持 noop
		logger.Debug("telemetry off")
		return &Providers{}, nil
	}

	res, err := newResource(ctx, cfg.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("telemetry resource: %w", err)
	}

	spans, err := ex.spans(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("span exporter: %w", err)
	}
	reader, err := ex.metrics(ctx, cfg)
	if err != nil {
		_ = spans.Shutdown(ctx)
		return nil, fmt.Errorf("metric reader: %w", err)
	}

	p := &Providers{
		tp: sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(spans),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sampler(cfg.SampleRate)),
		),
		mp: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(reader),
			sdkmetric.WithResource(res),
		),
	}

	otel.SetTracerProvider(p.tp)
	otel.SetMeterProvider(p.mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("exporting traces and metrics",
		zap.String("service", cfg.ServiceName),
		zap.String("otlp_endpoint", cfg.OTLPEndpoint),
		zap.Bool("insecure", cfg.Insecure),
		zap.Float64("sample_rate", cfg.SampleRate),
	)
	return p, nil
}

func newResource(ctx context.Context, serviceName string) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceNamespaceKey.String(serviceNamespace),
			semconv.ServiceVersionKey.String(BuildVersion()),
		),
		resource.WithHost(),
		resource.WithProcessRuntimeVersion(),
	)
}

// sampler 以父 span 的决定为准, 只对根 span 按比例采样.
func sampler(rate float64) sdktrace.Sampler {
	var root sdktrace.Sampler
	switch {
	case rate >= 1:
		root = sdktrace.AlwaysSample()
	case rate <= 0:
		root = sdktrace.NeverSample()
	default:
		root = sdktrace.TraceIDRatioBased(rate)
	}
	return sdktrace.ParentBased(root)
}

func newOTLPSpanExporter(ctx context.Context, cfg config.TelemetryConfig) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	return otlptracegrpc.New(ctx, opts...)
}

func newOTLPMetricReader(ctx context.Context, cfg config.TelemetryConfig) (sdkmetric.Reader, error) {
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exp), nil
}

// Shutdown 刷新未导出的数据并关闭 exporter. nil 或 noop 时直接返回.
// 两个 provider 都会尝试关闭, 错误合并返回.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p == nil || p.tp == nil {
		return nil
	}
	return errors.Join(
		wrapShutdown("traces", p.tp.Shutdown(ctx)),
		wrapShutdown("metrics", p.mp.Shutdown(ctx)),
	)
}

func wrapShutdown(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("flush %s: %w", what, err)
}

// BuildVersion 返回构建信息中的模块版本, 无法获取时返回 "dev".
func BuildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "dev"
	}
	return info.Main.Version
}
