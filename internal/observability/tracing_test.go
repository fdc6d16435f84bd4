package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestMiddlewareRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp, err := NewTracerProvider(TracingConfig{ServiceName: "engage-escrow-test", SampleRatio: 1},
		sdktrace.WithSpanProcessor(recorder))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	m := New(WithTracerProvider(tp))
	r := chi.NewRouter()
	r.Use(m.Middleware)
	var inHandler trace.SpanContext
	r.Get("/campaigns/{address}", func(w http.ResponseWriter, r *http.Request) {
		inHandler = trace.SpanFromContext(r.Context()).SpanContext()
		w.WriteHeader(http.StatusConflict)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/campaigns/0xabc", nil))

	assert.True(t, inHandler.IsValid())
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "GET /campaigns/{address}", span.Name())
	assert.Equal(t, inHandler.SpanID(), span.SpanContext().SpanID())
	assert.Equal(t, trace.SpanKindServer, span.SpanKind())
	assert.Contains(t, span.Attributes(), attribute.String("http.route", "/campaigns/{address}"))
	assert.Contains(t, span.Attributes(), attribute.Int("http.status_code", http.StatusConflict))
}

func TestNewTracerProviderValidates(t *testing.T) {
	_, err := NewTracerProvider(TracingConfig{SampleRatio: 1})
	assert.Error(t, err)
	_, err = NewTracerProvider(TracingConfig{ServiceName: "svc", SampleRatio: 1.5})
	assert.Error(t, err)
}

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" authorization = Bearer x ,broken,=nokey,team=escrow")
	assert.Equal(t, map[string]string{"authorization": "Bearer x", "team": "escrow"}, got)
}
