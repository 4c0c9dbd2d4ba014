package httpserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fairyhunter13/file-parser/api"
	"github.com/fairyhunter13/file-parser/internal/config"
	"github.com/fairyhunter13/file-parser/internal/domain"
	"github.com/fairyhunter13/file-parser/internal/usecase"
)

const (
	// OctetStream is the only Content-Type accepted by the parse routes.
	OctetStream = "application/octet-stream"

	welcomeMessage     = "Welcome to the file parser API!"
	invalidContentType = "Invalid Content-Type. Expected application/octet-stream"
)

// Server aggregates handlers dependencies.
type Server struct {
	Cfg          config.Config
	Extract      usecase.ExtractService
	Relay        usecase.RelayService
	RelayCheck   func(ctx context.Context) error
	TempDirCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, extract usecase.ExtractService, relay usecase.RelayService, relayCheck, tempDirCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Extract: extract, Relay: relay, RelayCheck: relayCheck, TempDirCheck: tempDirCheck}
}

// RootHandler returns the welcome message.
func (s *Server) RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
	}
}

// ParseFileHandler extracts text from a raw request body. The body must be
// sent as application/octet-stream; its format is inferred from its bytes.
func (s *Server) ParseFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lg := LoggerFrom(r)
		contentType := r.Header.Get("Content-Type")
		lg.Debug("parse request received",
			slog.String("method", r.Method),
			slog.String("url", r.URL.String()),
			slog.Any("headers", redactHeaders(r.Header)),
			slog.String("content_type", contentType))

		if contentType != OctetStream {
			lg.Warn("rejected content type", slog.String("content_type", contentType))
			writeParseError(w, http.StatusBadRequest, invalidContentType)
			return
		}

		data, err := io.ReadAll(r.Body)
		if err != nil {
			lg.Error("failed to read request body", slog.Any("error", err))
			writeParseError(w, http.StatusInternalServerError, err.Error())
			return
		}
		lg.Debug("request body read",
			slog.Int("body_length", len(data)),
			slog.String("sniffed_mime", mimetype.Detect(data).String()))

		format, text, err := s.Extract.Parse(r.Context(), data)
		if err != nil {
			lg.Error("extraction failed", slog.String("format", format.String()), slog.Any("error", err))
			writeParseError(w, http.StatusInternalServerError, err.Error())
			return
		}
		lg.Debug("extraction complete", slog.String("format", format.String()), slog.Int("text_length", len(text)))
		writeJSON(w, http.StatusOK, parseResponse{Success: 1, Raw: text, Error: ""})
	}
}

// UploadFileOpenAIHandler stages the raw body in a temp file and relays it
// to the OpenAI Files API. Any Content-Type is accepted. A non-200 reply
// from the API is passed through with its status and body.
func (s *Server) UploadFileOpenAIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lg := LoggerFrom(r)
		lg.Debug("relay request received",
			slog.String("method", r.Method),
			slog.String("url", r.URL.String()),
			slog.Any("headers", redactHeaders(r.Header)),
			slog.String("content_type", r.Header.Get("Content-Type")))

		data, err := io.ReadAll(r.Body)
		if err != nil {
			lg.Error("failed to read request body", slog.Any("error", err))
			writeRelayError(w, http.StatusInternalServerError, err.Error())
			return
		}

		res, err := s.Relay.Relay(r.Context(), data)
		if err != nil {
			lg.Error("relay failed", slog.Bool("transport", errors.Is(err, domain.ErrRelayTransport)), slog.Any("error", err))
			writeRelayError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if res.StatusCode != http.StatusOK {
			lg.Error("openai rejected upload", slog.Int("status", res.StatusCode), slog.String("body", res.Body))
			writeRelayError(w, res.StatusCode, res.Body)
			return
		}
		writeJSON(w, http.StatusOK, relayResponse{Success: 1, FileID: res.FileID, Error: ""})
	}
}

// ReadyzHandler reports whether the relay has credentials and the temp
// directory is writable.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		probes := []struct {
			name string
			fn   func(context.Context) error
		}{
			{"openai", s.RelayCheck},
			{"temp_dir", s.TempDirCheck},
		}
		checks := make([]check, 0, len(probes))
		ok := true
		for _, p := range probes {
			if p.fn == nil {
				continue
			}
			if err := p.fn(ctx); err != nil {
				ok = false
				checks = append(checks, check{Name: p.name, OK: false, Details: err.Error()})
				continue
			}
			checks = append(checks, check{Name: p.name, OK: true})
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}

// OpenAPIServe serves the embedded OpenAPI document.
func (s *Server) OpenAPIServe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(api.OpenAPI)
	}
}

var sensitiveHeaders = map[string]bool{
	"Authorization":       true,
	"Cookie":              true,
	"Proxy-Authorization": true,
	"Set-Cookie":          true,
	"X-Api-Key":           true,
}

// redactHeaders flattens h for logging with credentials masked.
func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if sensitiveHeaders[http.CanonicalHeaderKey(k)] {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = strings.Join(v, ", ")
	}
	return out
}
