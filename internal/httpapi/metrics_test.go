package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := NewMux(newSvc())
	c := httpRequestsTotal.WithLabelValues("/v1/models", http.MethodGet, "200")
	before := testutil.ToFloat64(c)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/models", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("requests_total=%v, want %v", got, before+1)
	}
}

func TestMetricsMiddleware_UnmatchedLabel(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	c := httpRequestsTotal.WithLabelValues("unmatched", http.MethodGet, "418")
	before := testutil.ToFloat64(c)
	MetricsMiddleware(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/123", nil))
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("requests_total=%v", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := NewMux(newSvc())
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("sdx_http_requests_total")) {
		t.Fatalf("expected sdx_http_requests_total in /metrics output")
	}

	// the default handler serves the same registry
	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !bytes.Contains(mrr.Body.Bytes(), []byte("sdx_http_inflight_requests")) {
		t.Fatalf("expected inflight gauge to be registered")
	}
}
