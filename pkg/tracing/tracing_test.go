package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// newRecorder 安装一个内存记录器作为全局Provider
func newRecorder(t *testing.T, ratio float64) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp, err := newProvider(context.Background(), Config{ServiceName: "bookstore-api-test", SampleRatio: ratio},
		sdktrace.WithSpanProcessor(recorder))
	require.NoError(t, err)
	install(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return recorder
}

func TestInitTracer(t *testing.T) {
	shutdown, err := InitTracer(Config{
		ServiceName: "bookstore-api-test",
		Endpoint:    "localhost:4317",
		Insecure:    true,
		SampleRatio: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	t.Cleanup(func() { _ = shutdown(context.Background()) })
}

func TestStartSpan(t *testing.T) {
	recorder := newRecorder(t, 1)

	ctx, root := StartSpan(context.Background(), "POST /api/v1/orders")
	_, child := StartSpan(ctx, "checkout")

	assert.Equal(t, root.SpanContext().TraceID(), child.SpanContext().TraceID())
	assert.NotEqual(t, root.SpanContext().SpanID(), child.SpanContext().SpanID())

	child.SetAttributes(attribute.Int("order.items", 3))
	child.RecordError(errors.New("Insufficient stock"))
	child.SetStatus(codes.Error, "Insufficient stock")
	child.End()
	root.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "checkout", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, root.SpanContext().SpanID(), ended[0].Parent().SpanID())
}

func TestExtractIDs(t *testing.T) {
	newRecorder(t, 1)

	assert.Empty(t, ExtractTraceID(context.Background()))
	assert.Empty(t, ExtractSpanID(context.Background()))

	ctx, span := StartSpan(context.Background(), "GET /health")
	defer span.End()

	assert.Len(t, ExtractTraceID(ctx), 32)
	assert.Len(t, ExtractSpanID(ctx), 16)
	assert.Equal(t, span.SpanContext().TraceID().String(), ExtractTraceID(ctx))
}

func TestSampler(t *testing.T) {
	recorder := newRecorder(t, 0)

	ctx, span := StartSpan(context.Background(), "dropped")
	span.End()

	assert.False(t, span.SpanContext().IsSampled())
	assert.NotEmpty(t, ExtractTraceID(ctx)) // 未采样的Span仍然有TraceID，可用于日志关联
	assert.Empty(t, recorder.Ended())
}
