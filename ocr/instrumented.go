package ocr

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/ocrflow/types"
)

const instrumentationName = "github.com/BaSui01/ocrflow/ocr"

// Recorder 接收每次解析的结果指标. internal/metrics.Collector 实现了该接口.
type Recorder interface {
	RecordDocumentRequest(provider, kind, code string, duration time.Duration)
}

// instrumentedProvider 为每次调用添加 span、指标与日志, 不改变结果与错误.
type instrumentedProvider struct {
	inner    Provider
	recorder Recorder
	tracer   trace.Tracer
	logger   *zap.Logger
}

// Instrument 包装 p. recorder 与 logger 均可为 nil.
func Instrument(p Provider, recorder Recorder, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &instrumentedProvider{
		inner:    p,
		recorder: recorder,
		tracer:   otel.Tracer(instrumentationName),
		logger:   logger.With(zap.String("component", "ocr"), zap.String("provider", p.Name())),
	}
}

func (p *instrumentedProvider) Name() string { return p.inner.Name() }

func (p *instrumentedProvider) ParseReceipt(ctx context.Context, doc *Document, language string) (*ResultEnvelope[ReceiptParserResult], error) {
	ctx, done := p.start(ctx, KindReceipt, language)
	env, err := p.inner.ParseReceipt(ctx, doc, language)
	done(err)
	return env, err
}

func (p *instrumentedProvider) ParseInvoice(ctx context.Context, doc *Document, language string) (*ResultEnvelope[InvoiceParserResult], error) {
	ctx, done := p.start(ctx, KindInvoice, language)
	env, err := p.inner.ParseInvoice(ctx, doc, language)
	done(err)
	return env, err
}

func (p *instrumentedProvider) ParseFinancialDocument(ctx context.Context, doc *Document, language string) (*ResultEnvelope[InvoiceParserResult], error) {
	ctx, done := p.start(ctx, KindFinancial, language)
	env, err := p.inner.ParseFinancialDocument(ctx, doc, language)
	done(err)
	return env, err
}

func (p *instrumentedProvider) ParseIdentity(ctx context.Context, doc *Document) (*ResultEnvelope[IdentityParserResult], error) {
	ctx, done := p.start(ctx, KindIdentity, "")
	env, err := p.inner.ParseIdentity(ctx, doc)
	done(err)
	return env, err
}

func (p *instrumentedProvider) start(ctx context.Context, kind Kind, language string) (context.Context, func(error)) {
	provider := p.inner.Name()
	ctx = types.WithProvider(ctx, provider)
	ctx, span := p.tracer.Start(ctx, "ocr.parse",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("ocr.provider", provider),
			attribute.String("ocr.kind", string(kind)),
			attribute.String("ocr.language", language),
		))
	start := time.Now()

	return ctx, func(err error) {
		defer span.End()
		elapsed := time.Since(start)

		logFields := []zap.Field{
			zap.String("kind", string(kind)),
			zap.Duration("latency", elapsed),
		}
		if id, ok := types.RequestID(ctx); ok {
			logFields = append(logFields, zap.String("request_id", id))
		}

		code := ""
		if err != nil {
			code = string(types.GetErrorCode(err))
			if code == "" {
				code = string(types.ErrInternalError)
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, code)
			span.SetAttributes(attribute.String("ocr.error_code", code))
			if e, ok := types.AsError(err); ok && e.HTTPStatus != 0 {
				span.SetAttributes(attribute.Int("ocr.upstream_status", e.HTTPStatus))
			}
			p.logger.Warn("document parsing failed", append(logFields, zap.String("code", code), zap.Error(err))...)
		} else {
			span.SetStatus(codes.Ok, "")
			p.logger.Info("document parsed", logFields...)
		}

		if p.recorder != nil {
			p.recorder.RecordDocumentRequest(provider, string(kind), code, elapsed)
		}
	}
}
