package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func installRecorder(t *testing.T, sampleRatio float64) *tracetest.SpanRecorder {
	t.Helper()
	prevProvider, prevPropagator, prevTracer := otel.GetTracerProvider(), otel.GetTextMapPropagator(), Tracer

	sr := tracetest.NewSpanRecorder()
	tp := newTracerProvider("test", sampleRatio, sdktrace.WithSpanProcessor(sr))
	install(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
		otel.SetTracerProvider(prevProvider)
		otel.SetTextMapPropagator(prevPropagator)
		Tracer = prevTracer
	})
	return sr
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/api/children/:childId/assessments", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/api/assessments/:id", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})
	return r
}

func TestGinMiddlewareNamesSpanByRoute(t *testing.T) {
	sr := installRecorder(t, 1)
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/children/42/assessments", nil))
	require.Equal(t, http.StatusOK, w.Code)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "GET /api/children/:childId/assessments", span.Name())
	assert.Equal(t, span.SpanContext().TraceID().String(), w.Header().Get(TraceIDHeader))
	assert.Contains(t, span.Attributes(), semconv.HTTPRoute("/api/children/:childId/assessments"))
	assert.Contains(t, span.Attributes(), semconv.HTTPResponseStatusCode(http.StatusOK))
	assert.Equal(t, codes.Unset, span.Status().Code)
}

func TestGinMiddlewareMarksServerErrors(t *testing.T) {
	sr := installRecorder(t, 1)
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/assessments/1", nil))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestSamplingFollowsSampledParent(t *testing.T) {
	sr := installRecorder(t, 0)
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/children/1/assessments", nil))
	assert.Empty(t, sr.Ended(), "ratio 0 drops root spans")

	req := httptest.NewRequest(http.MethodGet, "/api/children/1/assessments", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext().TraceID().String())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", w.Header().Get(TraceIDHeader))
}
