package scene

import (
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"satscan/internal/config"
	"satscan/internal/events"
	"satscan/internal/patrol"
)

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTransition_RecordsSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	var cfg config.Config
	cfg.ApplyDefaults()
	m, err := NewManager(cfg.Scene, Options{Registry: events.New(), Slot: &patrol.Slot{}, Tick: time.Second, Tracing: tp})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(m.Close)

	if _, _, err := m.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	bad := m.Current().Config()
	bad.Satellite.Speed = config.Float(-1)
	if _, err := m.Transition(bad); err == nil {
		t.Fatalf("expected failed transition")
	}

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("spans=%d", len(spans))
	}
	ok := spans[0]
	if ok.Name() != "scene.transition" || ok.Status().Code == codes.Error {
		t.Fatalf("first span name=%s status=%v", ok.Name(), ok.Status())
	}
	if v, found := attrValue(ok.Attributes(), "scene.prev"); !found || v.AsString() != "main" {
		t.Fatalf("scene.prev=%v found=%v", v, found)
	}
	if v, found := attrValue(ok.Attributes(), "registry.purged"); !found || v.AsInt64() != 1 {
		t.Fatalf("registry.purged=%v found=%v", v, found)
	}
	if spans[1].Status().Code != codes.Error {
		t.Fatalf("failed transition span should carry an error status")
	}
}
