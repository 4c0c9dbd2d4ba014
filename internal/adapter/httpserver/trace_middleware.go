package httpserver

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
)

// TraceMiddleware starts a span for each HTTP request, continuing any trace
// context carried by the incoming headers.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		tr := otel.Tracer("http.server")
		ctx, span := tr.Start(ctx, r.Method+" "+r.URL.Path)
		defer span.End()
		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
			attribute.Int64("http.request_content_length", r.ContentLength),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
