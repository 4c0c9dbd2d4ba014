// Command server starts the file parser HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fairyhunter13/file-parser/internal/adapter/observability"
	"github.com/fairyhunter13/file-parser/internal/app"
	"github.com/fairyhunter13/file-parser/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		host    string
		port    int
		envFile string
	)
	cmd := &cobra.Command{
		Use:           "file-parser",
		Short:         "HTTP service that extracts text from uploaded files and relays them to OpenAI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadDotEnv(envFile); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, host, port)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "interface to bind (overrides HOST)")
	cmd.Flags().IntVar(&port, "port", 8000, "port to listen on (overrides PORT)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded when present")
	return cmd
}

// loadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// loadConfig reads the environment and applies flags that were set
// explicitly on the command line.
func loadConfig(cmd *cobra.Command, host string, port int) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("host") {
		cfg.Host = host
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(cfg config.Config) error {
	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	if !cfg.RelayConfigured() {
		slog.Warn("OPENAI_API_KEY not set; /upload-file-openai will be rejected upstream")
	}

	srv := app.NewServer(cfg)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.String("addr", srvHTTP.Addr))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var serveErr error
	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
			serveErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	if err := srvHTTP.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", slog.Any("error", err))
	}
	return serveErr
}
