package observability

import (
	"log/slog"
	"os"

	"github.com/fairyhunter13/file-parser/internal/config"
)

// SetupLogger configures a JSON slog logger with environment fields.
func SetupLogger(cfg config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level(cfg)})).With(
		slog.String("service", cfg.OTELServiceName),
		slog.String("env", cfg.AppEnv),
	)
}

// level is debug in dev and info elsewhere unless LOG_LEVEL says otherwise.
func level(cfg config.Config) slog.Level {
	var lvl slog.Level
	if cfg.LogLevel != "" && lvl.UnmarshalText([]byte(cfg.LogLevel)) == nil {
		return lvl
	}
	if cfg.IsDev() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
