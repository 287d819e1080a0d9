// Package tracing 基于OpenTelemetry的链路追踪
//
// 一个HTTP请求对应一个根Span（middleware.Tracing创建），
// 请求内的每条SQL由查询观察插件创建子Span，结算等用例可再用StartSpan细分。
//
// 日志与追踪的关联：访问日志写入ExtractTraceID(ctx)，
// 在Jaeger中按trace_id即可找到对应链路。
//
// 使用示例：
//
//	shutdown, err := tracing.InitTracer(tracing.Config{
//	    ServiceName: "bookstore-api",
//	    Endpoint:    "localhost:4317",
//	    SampleRatio: 1,
//	})
//	if err != nil {
//	    return err
//	}
//	defer shutdown(context.Background())
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName 业务代码使用的Tracer名称
const TracerName = "github.com/TheJisus28/bookstore-api"

// Config 追踪配置
type Config struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string  // OTLP gRPC端点（host:port，如localhost:4317）
	Insecure       bool    // 禁用TLS（本地Jaeger）
	SampleRatio    float64 // 采样率，>=1表示全部采样
}

// ShutdownFunc 关闭函数（刷新未发送的Span）
type ShutdownFunc func(context.Context) error

// InitTracer 初始化全局Tracer Provider
//
// 返回的shutdown必须在程序退出前调用，否则最后一批Span会丢失。
// 注意：otlptracegrpc不会在这里阻塞连接，Collector不可达时Span在导出阶段丢弃。
func InitTracer(cfg Config) (ShutdownFunc, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	tp, err := newProvider(ctx, cfg, sdktrace.WithBatcher(exporter))
	if err != nil {
		return nil, err
	}
	install(tp)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}, nil
}

// newProvider 构造TracerProvider，exporter由调用方决定（测试使用内存记录器）
func newProvider(ctx context.Context, cfg Config, opts ...sdktrace.TracerProviderOption) (*sdktrace.TracerProvider, error) {
	attrs := []resource.Option{resource.WithAttributes(semconv.ServiceName(cfg.ServiceName))}
	if cfg.ServiceVersion != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.ServiceVersion(cfg.ServiceVersion)))
	}
	res, err := resource.New(ctx, attrs...)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	opts = append(opts,
		sdktrace.WithSampler(sampler(cfg.SampleRatio)),
		sdktrace.WithResource(res),
	)
	return sdktrace.NewTracerProvider(opts...), nil
}

func sampler(ratio float64) sdktrace.Sampler {
	if ratio >= 1 {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
	if ratio <= 0 {
		return sdktrace.NeverSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

func install(tp *sdktrace.TracerProvider) {
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)
}

// StartSpan 创建Span，未初始化Tracer时返回no-op Span
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, spanName, opts...)
}

// ExtractTraceID 从Context提取TraceID（用于关联日志）
func ExtractTraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.SpanID().String()
}
