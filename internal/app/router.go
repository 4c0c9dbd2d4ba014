package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpserver "github.com/fairyhunter13/file-parser/internal/adapter/httpserver"
	"github.com/fairyhunter13/file-parser/internal/adapter/observability"
	"github.com/fairyhunter13/file-parser/internal/config"
)

// ParseOrigins splits a comma-separated origin list into a slice, trimming spaces.
// If the input is empty, returns ["*"].
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	// Tracing first so the request logger carries the span ids.
	r.Use(httpserver.TraceMiddleware)
	r.Use(httpserver.RequestID())
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", srv.RootHandler())

	r.Group(func(wr chi.Router) {
		if cfg.RateLimitPerMin > 0 {
			wr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
		}
		parse := srv.ParseFileHandler()
		wr.Post("/parse-file", parse)
		wr.Post("/parse-file/", parse)
		wr.Post("/upload-file-openai", srv.UploadFileOpenAIHandler())
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) { promhttp.Handler().ServeHTTP(w, r) })
	r.Get("/readyz", srv.ReadyzHandler())
	r.Get("/openapi.yaml", srv.OpenAPIServe())

	return httpserver.SecurityHeaders(r)
}
