package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func spanRoute(span sdktrace.ReadOnlySpan) string {
	for _, kv := range span.Attributes() {
		if kv.Key == attribute.Key("http.route") {
			return kv.Value.AsString()
		}
	}
	return ""
}

func TestObservabilityMiddleware_LabelsByRoutePattern(t *testing.T) {
	recorder := recordSpans(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/departments/{code}/cinemas", func(w http.ResponseWriter, r *http.Request) {})
	handler := ObservabilityMiddleware(nil, MuxRoutes(mux))(mux)

	for _, code := range []string{"75", "69", "2A"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/departments/"+code+"/cinemas", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-login.php", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 4)
	for _, span := range spans[:3] {
		assert.Equal(t, "GET /api/departments/{code}/cinemas", span.Name())
		assert.Equal(t, "/api/departments/{code}/cinemas", spanRoute(span))
	}
	assert.Equal(t, "GET "+UnmatchedRoute, spans[3].Name())
	assert.Equal(t, UnmatchedRoute, spanRoute(spans[3]))
}

func TestObservabilityMiddleware_CacheHitsKeepRoute(t *testing.T) {
	recorder := recordSpans(t)

	mux := http.NewServeMux()
	calls := 0
	mux.Handle("GET /api/overview", countingHandler(&calls, http.StatusOK, `{}`))
	cached := NewCacheMiddleware(newMemoryCache(), 60, nil).Middleware(mux)
	handler := ObservabilityMiddleware(nil, MuxRoutes(mux))(cached)

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/overview", nil))
	}

	assert.Equal(t, 1, calls)
	spans := recorder.Ended()
	require.Len(t, spans, 2)
	for _, span := range spans {
		assert.Equal(t, "/api/overview", spanRoute(span))
	}
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/health", routeLabel("GET /health"))
	assert.Equal(t, "/health", routeLabel("/health"))
	assert.Equal(t, UnmatchedRoute, routeLabel(""))
}
