package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	FilesParsedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "files_parsed_total",
			Help: "Total number of parse requests by detected format and outcome",
		},
		[]string{"format", "outcome"},
	)
	ExtractionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "extraction_duration_seconds",
			Help:    "Text extraction duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"format"},
	)
	ExtractedTextTokens = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "extracted_text_tokens",
			Help:    "Size of extracted text in model tokens",
			Buckets: prometheus.ExponentialBuckets(16, 4, 9),
		},
		[]string{"format"},
	)

	RelayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_requests_total",
			Help: "Total number of Files API uploads by remote status (or \"error\" for transport failures)",
		},
		[]string{"status"},
	)
	RelayRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "relay_request_duration_seconds",
			Help:    "Files API upload duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)
	TempFileCleanupFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "temp_file_cleanup_failures_total",
			Help: "Total number of relay temp files that could not be removed",
		},
	)
)

var initOnce sync.Once

// InitMetrics registers all collectors with the default registry. Safe to
// call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(FilesParsedTotal)
		prometheus.MustRegister(ExtractionDuration)
		prometheus.MustRegister(ExtractedTextTokens)
		prometheus.MustRegister(RelayRequestsTotal)
		prometheus.MustRegister(RelayRequestDuration)
		prometheus.MustRegister(TempFileCleanupFailuresTotal)
	})
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// ObserveExtraction records one parse attempt.
func ObserveExtraction(format string, dur time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	FilesParsedTotal.WithLabelValues(format, outcome).Inc()
	ExtractionDuration.WithLabelValues(format).Observe(dur.Seconds())
}

// ObserveExtractedTokens records the token size of a successful extraction.
func ObserveExtractedTokens(format string, tokens int) {
	ExtractedTextTokens.WithLabelValues(format).Observe(float64(tokens))
}

// ObserveRelay records one Files API call; status 0 means the request never
// produced a response.
func ObserveRelay(status int, dur time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	RelayRequestsTotal.WithLabelValues(label).Inc()
	RelayRequestDuration.Observe(dur.Seconds())
}

// TempFileCleanupFailed counts a temp file left behind by the relay.
func TempFileCleanupFailed() { TempFileCleanupFailuresTotal.Inc() }
