package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsMiddleware_Basic(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	mw := HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(204) }))
	mw.ServeHTTP(rec, r)
	if rec.Result().StatusCode != 204 {
		t.Fatalf("want 204")
	}
}

func TestHTTPMetricsMiddleware_RoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(HTTPMetricsMiddleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/items/{id}", http.MethodGet, "OK"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/7", nil))
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/items/{id}", http.MethodGet, "OK"))
	if after != before+1 {
		t.Fatalf("want counter +1, got %v -> %v", before, after)
	}
}

func TestExtractionAndRelayHelpers(t *testing.T) {
	InitMetrics()
	InitMetrics()

	before := testutil.ToFloat64(FilesParsedTotal.WithLabelValues("pdf", "error"))
	ObserveExtraction("pdf", 5*time.Millisecond, errors.New("boom"))
	if got := testutil.ToFloat64(FilesParsedTotal.WithLabelValues("pdf", "error")); got != before+1 {
		t.Fatalf("files_parsed_total not incremented: %v", got)
	}
	ObserveExtraction("csv", time.Millisecond, nil)
	ObserveExtractedTokens("csv", 42)

	before = testutil.ToFloat64(RelayRequestsTotal.WithLabelValues("error"))
	ObserveRelay(0, time.Second)
	if got := testutil.ToFloat64(RelayRequestsTotal.WithLabelValues("error")); got != before+1 {
		t.Fatalf("relay error not counted: %v", got)
	}
	ObserveRelay(401, time.Second)
	if got := testutil.ToFloat64(RelayRequestsTotal.WithLabelValues("401")); got < 1 {
		t.Fatalf("relay 401 not counted: %v", got)
	}

	before = testutil.ToFloat64(TempFileCleanupFailuresTotal)
	TempFileCleanupFailed()
	if got := testutil.ToFloat64(TempFileCleanupFailuresTotal); got != before+1 {
		t.Fatalf("cleanup failure not counted: %v", got)
	}
}
