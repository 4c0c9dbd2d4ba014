// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// DefaultOpenAIFilesURL is the OpenAI Files API endpoint used by the relay.
const DefaultOpenAIFilesURL = "https://api.openai.com/v1/files"

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	// LogLevel overrides the environment-derived level (debug in dev, info otherwise).
	LogLevel string `env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
	Host     string `env:"HOST" envDefault:"0.0.0.0"`
	Port     int    `env:"PORT" envDefault:"8000" validate:"min=1,max=65535"`

	OpenAIAPIKey   string `env:"OPENAI_API_KEY"`
	OpenAIFilesURL string `env:"OPENAI_FILES_URL" envDefault:"https://api.openai.com/v1/files" validate:"required,url"`
	// UploadTempDir holds relay temp files; empty means the OS temp dir.
	UploadTempDir string `env:"UPLOAD_TEMP_DIR"`
	// TokenCountModel enables the extracted-text token histogram when non-empty.
	TokenCountModel string `env:"TOKEN_COUNT_MODEL"`

	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	// RateLimitPerMin caps POST requests per client IP; 0 disables the limiter.
	RateLimitPerMin int `env:"RATE_LIMIT_PER_MIN" envDefault:"0" validate:"gte=0"`

	OTLPEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"file-parser"`

	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"0s" validate:"gte=0"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"0s" validate:"gte=0"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s" validate:"gte=0"`
}

// Load parses environment variables into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints. It is re-run after CLI flags override
// the environment.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, fe.Field()+"("+fe.Tag()+")")
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c Config) Addr() string { return net.JoinHostPort(c.Host, strconv.Itoa(c.Port)) }

// TempDir returns the directory for relay temp files.
func (c Config) TempDir() string {
	if c.UploadTempDir != "" {
		return c.UploadTempDir
	}
	return os.TempDir()
}

// RelayConfigured reports whether an OpenAI API key is present.
func (c Config) RelayConfigured() bool { return c.OpenAIAPIKey != "" }

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }
