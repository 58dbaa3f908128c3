package observability

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// recordSpans installs an in-memory tracer provider for the test.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		tp.Shutdown(context.Background())
	})
	return rec
}

func attr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestDefaultTracingConfig(t *testing.T) {
	cfg := DefaultTracingConfig()
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.ServiceName != "ranker" {
		t.Fatalf("expected service name 'ranker', got %s", cfg.ServiceName)
	}
	if cfg.SampleRate != 1.0 {
		t.Fatalf("expected sample rate 1.0, got %f", cfg.SampleRate)
	}
}

func TestInitTracing_NoEndpoint(t *testing.T) {
	ctx := context.Background()
	tp, err := InitTracing(ctx, &TracingConfig{
		ServiceName: "test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tp.Tracer() == nil {
		t.Fatal("expected non-nil tracer")
	}
	// Should be no-op, shutdown should succeed
	if err := tp.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestInitTracing_NilConfig(t *testing.T) {
	tp, err := InitTracing(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tp == nil {
		t.Fatal("expected non-nil tracer provider")
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1, "AlwaysOnSampler"},
		{2, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
	}
	for _, tt := range tests {
		if got := samplerFor(tt.rate).Description(); got != tt.want {
			t.Errorf("samplerFor(%v) = %s, want %s", tt.rate, got, tt.want)
		}
	}
}

func TestScoreSpan(t *testing.T) {
	rec := recordSpans(t)

	_, span := StartScoreSpan(context.Background(), "dataset", 10)
	RecordScoreResult(span, 42, 10)
	span.End()

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	s := ended[0]
	if s.Name() != "score.dataset" {
		t.Fatalf("unexpected span name %q", s.Name())
	}
	if v, ok := attr(s.Attributes(), "score.returned"); !ok || v.AsInt64() != 10 {
		t.Fatalf("score.returned = %v", v)
	}
	if v, ok := attr(s.Attributes(), "score.num_results"); !ok || v.AsInt64() != 10 {
		t.Fatalf("score.num_results = %v", v)
	}
}

func TestPopulateSpanNestsLoad(t *testing.T) {
	rec := recordSpans(t)

	ctx, populate := StartPopulateSpan(context.Background(), "paper")
	_, load := StartLoadSpan(ctx, "paper")
	load.End()
	RecordPopulateResult(populate, 3, 12, "gen-1")
	populate.End()

	ended := rec.Ended()
	if len(ended) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(ended))
	}
	loadSpan, popSpan := ended[0], ended[1]
	if loadSpan.Parent().SpanID() != popSpan.SpanContext().SpanID() {
		t.Fatal("load span should be a child of the populate span")
	}
	if v, _ := attr(popSpan.Attributes(), "populate.generation"); v.AsString() != "gen-1" {
		t.Fatalf("populate.generation = %v", v)
	}
}

func TestRecordError(t *testing.T) {
	rec := recordSpans(t)
	_, span := StartPopulateSpan(context.Background(), "paper")

	// Should not panic with nil
	RecordError(span, nil)

	RecordError(span, errors.New("db down"))
	span.End()

	s := rec.Ended()[0]
	if s.Status().Code != codes.Error {
		t.Fatalf("expected error status, got %v", s.Status().Code)
	}
	if len(s.Events()) == 0 {
		t.Fatal("expected an exception event")
	}
}

func TestTracerName(t *testing.T) {
	if TracerName != "github.com/efebarandurmaz/ranker" {
		t.Fatalf("unexpected tracer name: %s", TracerName)
	}
}

func TestTracerProvider_Shutdown_NilProvider(t *testing.T) {
	tp := &TracerProvider{}
	if err := tp.Shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil error for nil provider, got: %v", err)
	}
}
